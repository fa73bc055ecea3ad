package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type State string

var ErrInvalidSession = errors.New("invalid session")

const (
	StateInProgress State = "in_progress"
	StateWon        State = "won"
	StateTied       State = "tied"
)

// Outcome is the result of a session. Winner is set only when State is StateWon
// and holds the index of the winning player.
type Outcome struct {
	State  State `json:"state"`
	Winner *int  `json:"winner,omitempty"`
}

func (that Outcome) IsTerminal() bool {
	return that.State == StateWon || that.State == StateTied
}

// Session is a single game between two players sharing one board.
type Session struct {
	ID          string    `json:"id"`
	Board       Board     `json:"board"`
	Players     [2]Player `json:"players"`
	ActiveIndex int       `json:"active_index"`
	Outcome     Outcome   `json:"outcome"`
	Moves       int       `json:"moves"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UnmarshalJSON rejects stored sessions whose player indexes or state are out of range,
// so the accessors below can index Players directly.
func (that *Session) UnmarshalJSON(data []byte) error {
	type stored Session

	var decoded stored
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if !validPlayerIndex(decoded.ActiveIndex) {
		return fmt.Errorf("%w: active index %d", ErrInvalidSession, decoded.ActiveIndex)
	}

	switch decoded.Outcome.State {
	case StateInProgress, StateWon, StateTied:
	default:
		return fmt.Errorf("%w: state %q", ErrInvalidSession, decoded.Outcome.State)
	}

	if winner := decoded.Outcome.Winner; winner != nil && !validPlayerIndex(*winner) {
		return fmt.Errorf("%w: winner %d", ErrInvalidSession, *winner)
	}

	*that = Session(decoded)

	return nil
}

func (that *Session) ActivePlayer() Player {
	return that.Players[that.ActiveIndex]
}

// ActiveCell is the cell value the active player places.
func (that *Session) ActiveCell() Cell {
	return CellFor(that.ActiveIndex)
}

// WinnerPlayer returns the winner when the session has been won.
func (that *Session) WinnerPlayer() (Player, bool) {
	if that.Outcome.State != StateWon || that.Outcome.Winner == nil {
		return Player{}, false
	}

	return that.Players[*that.Outcome.Winner], true
}

func (that *Session) IsFinished() bool {
	return that.Outcome.IsTerminal()
}

func (that *Session) IsInProgress() bool {
	return that.Outcome.State == StateInProgress
}

// PlayerFor maps a filled cell to the player that owns it.
func (that *Session) PlayerFor(cell Cell) (Player, bool) {
	switch cell {
	case PlayerOne:
		return that.Players[0], true
	case PlayerTwo:
		return that.Players[1], true
	default:
		return Player{}, false
	}
}

func validPlayerIndex(index int) bool {
	return index == 0 || index == 1
}

// CellFor maps a player index to its cell value.
func CellFor(playerIndex int) Cell {
	if playerIndex == 0 {
		return PlayerOne
	}
	return PlayerTwo
}
