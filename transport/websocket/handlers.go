package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/presenter"
)

var errInvalidPayload = errors.New("invalid payload")

func viewOf(session *entity.Session) *presenter.View {
	return presenter.NewView(session)
}

func decode(raw json.RawMessage, target any) error {
	if len(raw) == 0 {
		return errInvalidPayload
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: %w", errInvalidPayload, err)
	}

	return nil
}

func (that *Server) handleStart(ctx context.Context, msg *Message) (*entity.Session, error) {
	var payload StartPayload
	if len(msg.Payload) > 0 {
		if err := decode(msg.Payload, &payload); err != nil {
			return nil, err
		}
	}

	return that.game.StartSession(ctx, payload.PlayerOne, payload.PlayerTwo)
}

func (that *Server) handleGet(ctx context.Context, msg *Message) (*entity.Session, error) {
	var payload SessionPayload
	if err := decode(msg.Payload, &payload); err != nil {
		return nil, err
	}

	return that.game.GetSession(ctx, payload.SessionID)
}

// handleMove - a rejected move still answers with the unchanged session.
func (that *Server) handleMove(ctx context.Context, msg *Message) (*entity.Session, error) {
	var payload MovePayload
	if err := decode(msg.Payload, &payload); err != nil {
		return nil, err
	}

	if payload.Row == nil || payload.Col == nil {
		return nil, fmt.Errorf("%w: row and col are required", errInvalidPayload)
	}

	return that.game.PlayMove(ctx, payload.SessionID, *payload.Row, *payload.Col)
}

func (that *Server) handleRestart(ctx context.Context, msg *Message) (*entity.Session, error) {
	var payload SessionPayload
	if err := decode(msg.Payload, &payload); err != nil {
		return nil, err
	}

	return that.game.Restart(ctx, payload.SessionID)
}

func (that *Server) errorText(err error) string {
	switch {
	case errors.Is(err, apperror.ErrCellOccupied):
		return "Invalid move! Cell already taken."
	case errors.Is(err, apperror.ErrGameFinished):
		return "The game is over."
	case errors.Is(err, apperror.ErrInvalidCell):
		return "Invalid move! No such cell."
	case errors.Is(err, apperror.ErrSessionNotFound):
		return "Game not found."
	case errors.Is(err, apperror.ErrInvalidPlayerName):
		return "Invalid player name."
	case errors.Is(err, errInvalidPayload), errors.Is(err, errUnknownAction):
		return err.Error()
	default:
		that.logger.Error("failed to process message", "error", err)
		return "Internal Server Error"
	}
}
