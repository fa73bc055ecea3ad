// Package presenter turns session state into the models the transports render.
package presenter

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

const (
	cellSeparator = " | "
	rowSeparator  = "---------"
	emptyText     = "0"
)

// View is the render model of a session shared by the HTML, JSON and WebSocket adapters.
type View struct {
	ID           string                           `json:"id"`
	Board        [entity.Size][entity.Size]string `json:"board"`
	Players      [2]entity.Player                 `json:"players"`
	ActivePlayer *entity.Player                   `json:"active_player,omitempty"`
	Outcome      entity.State                     `json:"outcome"`
	Winner       *entity.Player                   `json:"winner,omitempty"`
	WinningLine  []tictactoe.Square               `json:"winning_line,omitempty"`
	Moves        int                              `json:"moves"`
	Message      string                           `json:"message"`
}

func NewView(session *entity.Session) *View {
	grid := session.Board.Snapshot()

	view := &View{
		ID:      session.ID,
		Players: session.Players,
		Outcome: session.Outcome.State,
		Moves:   session.Moves,
		Message: Message(session),
	}

	for row := range grid {
		for col, cell := range grid[row] {
			if player, ok := session.PlayerFor(cell); ok {
				view.Board[row][col] = player.Token
			}
		}
	}

	switch session.Outcome.State {
	case entity.StateWon:
		if winner, ok := session.WinnerPlayer(); ok {
			view.Winner = &winner
		}

		if line, ok := tictactoe.WinningLine(grid); ok {
			view.WinningLine = line[:]
		}
	case entity.StateInProgress:
		active := session.ActivePlayer()
		view.ActivePlayer = &active
	case entity.StateTied:
	}

	return view
}

// Playable reports whether a click on row, col would be forwarded to the game.
func (that *View) Playable(row, col int) bool {
	return that.Outcome == entity.StateInProgress && that.Board[row][col] == ""
}

// Highlighted reports whether row, col is part of the winning line.
func (that *View) Highlighted(row, col int) bool {
	for _, square := range that.WinningLine {
		if square.Row == row && square.Col == col {
			return true
		}
	}

	return false
}

// Message is the status line shown under the board.
func Message(session *entity.Session) string {
	switch session.Outcome.State {
	case entity.StateWon:
		winner, _ := session.WinnerPlayer()
		return fmt.Sprintf("Player %s (%s) wins!", winner.Token, winner.Name)
	case entity.StateTied:
		return "It's a tie!"
	default:
		return fmt.Sprintf("%s's turn.", session.ActivePlayer().Name)
	}
}

// Text renders the board as rows of tokens, with 0 for empty cells.
func Text(session *entity.Session) string {
	grid := session.Board.Snapshot()

	rows := make([]string, 0, len(grid))
	for _, cells := range grid {
		values := make([]string, 0, len(cells))
		for _, cell := range cells {
			player, ok := session.PlayerFor(cell)
			if !ok {
				values = append(values, emptyText)
				continue
			}
			values = append(values, player.Token)
		}
		rows = append(rows, strings.Join(values, cellSeparator))
	}

	return strings.Join(rows, "\n"+rowSeparator+"\n")
}
