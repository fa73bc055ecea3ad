package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (that *fakeClock) Now() time.Time {
	return that.now
}

func TestMemorySessionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateOrUpdate and GetByID", func(t *testing.T) {
		// Given: a stored session with one move
		repo := NewMemorySessionRepository(time.Hour)
		session := tictactoe.StartSession("123", "Ann", "Bob")
		require.NoError(t, tictactoe.PlayMove(session, 1, 1))

		err := repo.CreateOrUpdate(ctx, session)
		require.NoError(t, err)

		// When: GetByID is called
		stored, err := repo.GetByID(ctx, "123")

		// Then: the stored session matches the saved one
		require.NoError(t, err)
		assert.Equal(t, session.ID, stored.ID)
		assert.Equal(t, session.Board.Snapshot(), stored.Board.Snapshot())
		assert.Equal(t, session.Players, stored.Players)
		assert.Equal(t, session.ActiveIndex, stored.ActiveIndex)
		assert.Equal(t, session.Outcome, stored.Outcome)
		assert.Equal(t, 1, stored.Moves)
	})

	t.Run("Returned sessions are copies", func(t *testing.T) {
		repo := NewMemorySessionRepository(time.Hour)
		require.NoError(t, repo.CreateOrUpdate(ctx, tictactoe.StartSession("123", "Ann", "Bob")))

		stored, err := repo.GetByID(ctx, "123")
		require.NoError(t, err)
		require.NoError(t, tictactoe.PlayMove(stored, 0, 0))

		again, err := repo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Zero(t, again.Board.Filled())
	})

	t.Run("GetByID not found", func(t *testing.T) {
		repo := NewMemorySessionRepository(time.Hour)

		stored, err := repo.GetByID(ctx, "9999999")

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Nil(t, stored)
	})

	t.Run("Expired sessions are gone", func(t *testing.T) {
		// Given: a session stored with a one minute ttl
		clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
		repo := newMemorySessionRepository(time.Minute, clock.Now)
		require.NoError(t, repo.CreateOrUpdate(ctx, tictactoe.StartSession("123", "Ann", "Bob")))

		// When: the ttl passes
		clock.now = clock.now.Add(time.Minute)

		// Then: the session is not found and is evicted on the next write
		_, err := repo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)

		require.NoError(t, repo.CreateOrUpdate(ctx, tictactoe.StartSession("456", "Ann", "Bob")))
		assert.Len(t, repo.entries, 1)
	})

	t.Run("DeleteByID", func(t *testing.T) {
		repo := NewMemorySessionRepository(time.Hour)
		require.NoError(t, repo.CreateOrUpdate(ctx, tictactoe.StartSession("123", "Ann", "Bob")))

		require.NoError(t, repo.DeleteByID(ctx, "123"))

		_, err := repo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		require.ErrorIs(t, repo.DeleteByID(ctx, "123"), apperror.ErrSessionNotFound)
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, NewMemorySessionRepository(time.Hour).Ping(ctx))
	})
}
