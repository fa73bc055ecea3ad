package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Size is the side length of the board.
const Size = 3

// Cell is the content of a single board square.
type Cell uint8

const (
	Empty Cell = iota
	PlayerOne
	PlayerTwo
)

var ErrInvalidBoard = errors.New("invalid board")

func (that Cell) IsEmpty() bool {
	return that == Empty
}

func (that Cell) valid() bool {
	return that == Empty || that == PlayerOne || that == PlayerTwo
}

// Grid is a read-only copy of the board state.
type Grid [Size][Size]Cell

// Board holds a fixed 3x3 grid. Once a cell is filled it is never cleared.
type Board struct {
	cells Grid
}

func InBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// Place puts cell into the square at row, col. It reports false without touching
// the board when the square is taken, out of range, or cell is Empty.
func (that *Board) Place(row, col int, cell Cell) bool {
	if !InBounds(row, col) || cell.IsEmpty() || !cell.valid() {
		return false
	}

	if !that.cells[row][col].IsEmpty() {
		return false
	}

	that.cells[row][col] = cell

	return true
}

func (that *Board) At(row, col int) Cell {
	return that.cells[row][col]
}

// Snapshot returns a copy of the current grid.
func (that *Board) Snapshot() Grid {
	return that.cells
}

// Filled returns the number of non-empty cells.
func (that *Board) Filled() int {
	return that.cells.Filled()
}

func (that *Board) IsFull() bool {
	return that.Filled() == Size*Size
}

func (that Grid) Filled() int {
	count := 0
	for _, row := range that {
		for _, cell := range row {
			if !cell.IsEmpty() {
				count++
			}
		}
	}

	return count
}

func (that Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.cells)
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var cells Grid
	if err := json.Unmarshal(data, &cells); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	for _, row := range cells {
		for _, cell := range row {
			if !cell.valid() {
				return fmt.Errorf("%w: cell value %d", ErrInvalidBoard, cell)
			}
		}
	}

	that.cells = cells

	return nil
}
