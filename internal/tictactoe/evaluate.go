package tictactoe

import "github.com/rocketscienceinc/tictactoe/internal/entity"

// Square is a row, column pair on the board.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Line is one of the winning triples.
type Line [3]Square

// Lines lists every winning triple in evaluation order: rows top to bottom,
// columns left to right, the main diagonal, then the anti-diagonal.
var Lines = [8]Line{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// WinningLine returns the first line whose three cells hold the same token.
func WinningLine(grid entity.Grid) (Line, bool) {
	for _, line := range Lines {
		a := grid[line[0].Row][line[0].Col]
		b := grid[line[1].Row][line[1].Col]
		c := grid[line[2].Row][line[2].Col]

		if !a.IsEmpty() && a == b && b == c {
			return line, true
		}
	}

	return Line{}, false
}

// Winner returns the cell value of the completed line, if any.
func Winner(grid entity.Grid) (entity.Cell, bool) {
	line, ok := WinningLine(grid)
	if !ok {
		return entity.Empty, false
	}

	return grid[line[0].Row][line[0].Col], true
}

// IsTie reports a full grid. Callers check Winner first: a full grid with a line is a win.
func IsTie(grid entity.Grid) bool {
	return grid.Filled() == entity.Size*entity.Size
}
