package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = entity.PlayerOne
	o = entity.PlayerTwo
	e = entity.Empty
)

func TestWinner(t *testing.T) {
	t.Run("Every line is detected", func(t *testing.T) {
		for i, line := range Lines {
			// Given: a grid where only this line is filled by player two
			var grid entity.Grid
			for _, square := range line {
				grid[square.Row][square.Col] = o
			}

			// When: the winner is evaluated
			cell, ok := Winner(grid)

			// Then: player two wins through exactly this line
			require.True(t, ok, "line %d", i)
			assert.Equal(t, o, cell)

			found, ok := WinningLine(grid)
			require.True(t, ok)
			assert.Equal(t, line, found)
		}
	})

	t.Run("Column win for player one", func(t *testing.T) {
		grid := entity.Grid{
			{x, o, e},
			{x, o, e},
			{x, e, e},
		}

		cell, ok := Winner(grid)

		require.True(t, ok)
		assert.Equal(t, x, cell)
	})

	t.Run("No winner on an ongoing grid", func(t *testing.T) {
		grid := entity.Grid{
			{x, o, x},
			{e, o, e},
			{x, e, e},
		}

		_, ok := Winner(grid)

		assert.False(t, ok)
		assert.False(t, IsTie(grid))
	})

	t.Run("Mixed line does not win", func(t *testing.T) {
		grid := entity.Grid{
			{x, x, o},
			{e, e, e},
			{e, e, e},
		}

		_, ok := Winner(grid)

		assert.False(t, ok)
	})

	t.Run("Rows are checked before diagonals", func(t *testing.T) {
		// Given: a grid with both the top row and the main diagonal complete
		grid := entity.Grid{
			{x, x, x},
			{o, x, o},
			{o, o, x},
		}

		// When: the winning line is looked up
		line, ok := WinningLine(grid)

		// Then: the top row is reported
		require.True(t, ok)
		assert.Equal(t, Lines[0], line)
	})
}

func TestIsTie(t *testing.T) {
	t.Run("Full grid without a line", func(t *testing.T) {
		grid := entity.Grid{
			{x, o, x},
			{x, o, o},
			{o, x, x},
		}

		_, won := Winner(grid)

		assert.False(t, won)
		assert.True(t, IsTie(grid))
	})

	t.Run("Empty grid", func(t *testing.T) {
		assert.False(t, IsTie(entity.Grid{}))
	})
}
