package tictactoe

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

// StartSession creates a session in progress with player one to move.
func StartSession(id, playerOneName, playerTwoName string) *entity.Session {
	now := time.Now().UTC()

	return &entity.Session{
		ID: id,
		Players: [2]entity.Player{
			{Name: playerOneName, Token: entity.TokenX},
			{Name: playerTwoName, Token: entity.TokenO},
		},
		ActiveIndex: 0,
		Outcome:     entity.Outcome{State: entity.StateInProgress},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// PlayMove places the active player's token at row, col. A rejected move returns an
// apperror sentinel and leaves the session untouched.
func PlayMove(session *entity.Session, row, col int) error {
	if session.IsFinished() {
		return apperror.ErrGameFinished
	}

	if !entity.InBounds(row, col) {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrInvalidCell, row, col)
	}

	if !session.Board.Place(row, col, session.ActiveCell()) {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrCellOccupied, row, col)
	}

	session.Moves++
	session.UpdatedAt = time.Now().UTC()
	updateOutcome(session)

	return nil
}

// updateOutcome - settles the session after an accepted move.
func updateOutcome(session *entity.Session) {
	grid := session.Board.Snapshot()

	if _, won := Winner(grid); won {
		winner := session.ActiveIndex
		session.Outcome = entity.Outcome{State: entity.StateWon, Winner: &winner}
		return
	}

	if IsTie(grid) {
		session.Outcome = entity.Outcome{State: entity.StateTied}
		return
	}

	session.ActiveIndex = 1 - session.ActiveIndex
}
