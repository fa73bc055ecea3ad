package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrInvalidCell       = errors.New("invalid cell")
	ErrSessionNotFound   = errors.New("session not found")
	ErrInvalidPlayerName = errors.New("invalid player name")
)

// IsRejectedMove reports whether err is a move the rules refused. Such moves leave the
// session unchanged and are not failures of the application.
func IsRejectedMove(err error) bool {
	return errors.Is(err, ErrGameFinished) ||
		errors.Is(err, ErrCellOccupied) ||
		errors.Is(err, ErrInvalidCell)
}
