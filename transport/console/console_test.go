package console

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe/internal/repository"
	"github.com/rocketscienceinc/tictactoe/internal/service"
	"github.com/rocketscienceinc/tictactoe/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lockedBuffer is read by the test while Run writes to it.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (that *lockedBuffer) Write(p []byte) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.buf.Write(p)
}

func (that *lockedBuffer) String() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.buf.String()
}

func newConsole(in io.Reader, out io.Writer) *Console {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	repo := repository.NewMemorySessionRepository(time.Hour)
	game := usecase.NewGameUseCase(logger, service.NewSessionService(repo, service.DefaultNames{One: "Player One", Two: "Player Two"}))

	return New(logger, game, in, out)
}

func run(t *testing.T, input string) string {
	t.Helper()

	var out bytes.Buffer
	require.NoError(t, newConsole(strings.NewReader(input), &out).Run(context.Background()))

	return out.String()
}

func TestConsole_Run(t *testing.T) {
	t.Run("Plays a winning game", func(t *testing.T) {
		// When: Ann completes the top row
		out := run(t, "Ann\nBob\n0 0\n1 1\n0 1\n1 0\n0 2\n")

		// Then: the board and the win are printed
		assert.Contains(t, out, "Ann's turn.")
		assert.Contains(t, out, "Drawing Bob's token into cell (1, 1)...")
		assert.Contains(t, out, "X | X | X\n---------\nO | O | 0\n---------\n0 | 0 | 0")
		assert.Contains(t, out, "Player X (Ann) wins!")
	})

	t.Run("Blank names use defaults", func(t *testing.T) {
		out := run(t, "\n\nquit\n")

		assert.Contains(t, out, "Player One's turn.")
	})

	t.Run("Rejected moves keep the turn", func(t *testing.T) {
		// When: Bob tries Ann's cell, then types garbage and an out of range cell
		out := run(t, "Ann\nBob\n1,1\n1 1\nfoo\n5 5\n")

		// Then: each problem is reported and it stays Bob's turn
		assert.Contains(t, out, "Invalid move! Cell already taken.")
		assert.Contains(t, out, `enter a move as "row col"`)
		assert.Contains(t, out, "Invalid move! Row and column must be between 0 and 2.")
		assert.Equal(t, 1, strings.Count(out, "Bob's turn."))
	})

	t.Run("Finished game rejects moves until restart", func(t *testing.T) {
		// Given: Ann has won
		out := run(t, "Ann\nBob\n0 0\n1 1\n0 1\n1 0\n0 2\n2 2\nrestart\n")

		// Then: the next move is refused and restart deals an empty board to the same players
		tail := out[strings.LastIndex(out, "Player X (Ann) wins!"):]
		assert.Contains(t, tail, `Type "restart" to play again`)
		assert.Contains(t, tail, "The game is over.")
		assert.Contains(t, tail, "0 | 0 | 0\n---------\n0 | 0 | 0\n---------\n0 | 0 | 0")
		assert.Contains(t, tail, "Ann's turn.")
	})

	t.Run("Tie", func(t *testing.T) {
		out := run(t, "Ann\nBob\n0 0\n0 1\n0 2\n1 1\n1 0\n1 2\n2 1\n2 0\n2 2\n")

		assert.Contains(t, out, "It's a tie!")
		assert.NotContains(t, out, "wins!")
	})
}

func TestConsole_Run_StopsOnCancel(t *testing.T) {
	// Given: a game waiting for a move on input that never arrives
	pending, writer := io.Pipe()
	t.Cleanup(func() { _ = writer.Close() })

	out := &lockedBuffer{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- newConsole(io.MultiReader(strings.NewReader("Ann\nBob\n"), pending), out).Run(ctx)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Ann's turn.")
	}, 2*time.Second, 10*time.Millisecond)

	// When: the context is canceled, as on Ctrl-C
	cancel()

	// Then: Run returns without waiting for more input
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestParseMove(t *testing.T) {
	row, col, err := parseMove("2, 1")
	require.NoError(t, err)
	assert.Equal(t, 2, row)
	assert.Equal(t, 1, col)

	_, _, err = parseMove("2")
	require.ErrorIs(t, err, errBadInput)

	_, _, err = parseMove("a b")
	require.ErrorIs(t, err, errBadInput)
}
