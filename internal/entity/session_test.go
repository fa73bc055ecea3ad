package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_ActivePlayer(t *testing.T) {
	// Given: a session where player two is to move
	session := &Session{
		Players: [2]Player{
			{Name: "Ann", Token: TokenX},
			{Name: "Bob", Token: TokenO},
		},
		ActiveIndex: 1,
		Outcome:     Outcome{State: StateInProgress},
	}

	// Then: player two and its cell are active
	assert.Equal(t, "Bob", session.ActivePlayer().Name)
	assert.Equal(t, PlayerTwo, session.ActiveCell())
	assert.True(t, session.IsInProgress())
	assert.False(t, session.IsFinished())
}

func TestSession_WinnerPlayer(t *testing.T) {
	players := [2]Player{{Name: "Ann", Token: TokenX}, {Name: "Bob", Token: TokenO}}

	t.Run("Returns the winner of a won session", func(t *testing.T) {
		winner := 0
		session := &Session{Players: players, Outcome: Outcome{State: StateWon, Winner: &winner}}

		player, ok := session.WinnerPlayer()

		assert.True(t, ok)
		assert.Equal(t, "Ann", player.Name)
		assert.True(t, session.IsFinished())
	})

	t.Run("Reports no winner for a tie", func(t *testing.T) {
		session := &Session{Players: players, Outcome: Outcome{State: StateTied}}

		_, ok := session.WinnerPlayer()

		assert.False(t, ok)
		assert.True(t, session.IsFinished())
	})
}

func TestSession_PlayerFor(t *testing.T) {
	session := &Session{Players: [2]Player{{Name: "Ann", Token: TokenX}, {Name: "Bob", Token: TokenO}}}

	one, ok := session.PlayerFor(PlayerOne)
	assert.True(t, ok)
	assert.Equal(t, TokenX, one.Token)

	two, ok := session.PlayerFor(PlayerTwo)
	assert.True(t, ok)
	assert.Equal(t, TokenO, two.Token)

	_, ok = session.PlayerFor(Empty)
	assert.False(t, ok)
}

func TestSession_UnmarshalJSON(t *testing.T) {
	players := [2]Player{{Name: "Ann", Token: TokenX}, {Name: "Bob", Token: TokenO}}

	t.Run("Decodes a stored session", func(t *testing.T) {
		// Given: an encoded session won by player two
		winner := 1
		original := Session{ID: "abc", Players: players, ActiveIndex: 1, Outcome: Outcome{State: StateWon, Winner: &winner}, Moves: 6}
		original.Board.Place(0, 2, PlayerTwo)
		data, err := json.Marshal(original)
		require.NoError(t, err)

		// When: it is decoded
		var decoded Session
		require.NoError(t, json.Unmarshal(data, &decoded))

		// Then: the state survives
		assert.Equal(t, "abc", decoded.ID)
		assert.Equal(t, PlayerTwo, decoded.Board.At(0, 2))
		player, ok := decoded.WinnerPlayer()
		require.True(t, ok)
		assert.Equal(t, "Bob", player.Name)
	})

	t.Run("Rejects out of range player indexes", func(t *testing.T) {
		for name, data := range map[string]string{
			"active index": `{"id":"abc","active_index":2,"outcome":{"state":"in_progress"}}`,
			"negative":     `{"id":"abc","active_index":-1,"outcome":{"state":"in_progress"}}`,
			"winner":       `{"id":"abc","active_index":0,"outcome":{"state":"won","winner":5}}`,
			"state":        `{"id":"abc","active_index":0,"outcome":{"state":"paused"}}`,
		} {
			// When: a corrupted session is decoded
			var decoded Session
			err := json.Unmarshal([]byte(data), &decoded)

			// Then: it is refused instead of panicking later
			require.ErrorIs(t, err, ErrInvalidSession, name)
		}
	})
}
