package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/presenter"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

type GameUseCase interface {
	StartSession(ctx context.Context, playerOneName, playerTwoName string) (*entity.Session, error)
	GetSession(ctx context.Context, id string) (*entity.Session, error)
	PlayMove(ctx context.Context, id string, row, col int) (*entity.Session, error)
	Restart(ctx context.Context, id string) (*entity.Session, error)
}

type sessionService interface {
	Create(ctx context.Context, playerOneName, playerTwoName string) (*entity.Session, error)
	Get(ctx context.Context, id string) (*entity.Session, error)
	Save(ctx context.Context, session *entity.Session) error
	Delete(ctx context.Context, id string) error
}

type gameUseCase struct {
	logger *slog.Logger

	sessionService sessionService

	// moves are applied one at a time so a session is never read and written by two requests at once.
	mu sync.Mutex
}

func NewGameUseCase(logger *slog.Logger, sessionService sessionService) GameUseCase {
	return &gameUseCase{
		logger:         logger.With("component", "game"),
		sessionService: sessionService,
	}
}

func (that *gameUseCase) StartSession(ctx context.Context, playerOneName, playerTwoName string) (*entity.Session, error) {
	session, err := that.sessionService.Create(ctx, playerOneName, playerTwoName)
	if err != nil {
		return nil, fmt.Errorf("could not start session: %w", err)
	}

	that.logger.Info("session started",
		"sessionID", session.ID,
		"playerOne", session.Players[0].Name,
		"playerTwo", session.Players[1].Name,
	)

	return session, nil
}

func (that *gameUseCase) GetSession(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.sessionService.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// PlayMove applies a move for the active player. A move the rules reject returns the
// unchanged session along with the rejection error.
func (that *gameUseCase) PlayMove(ctx context.Context, id string, row, col int) (*entity.Session, error) {
	log := that.logger.With("method", "PlayMove", "sessionID", id, "row", row, "col", col)

	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.sessionService.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	player := session.ActivePlayer()

	if err = tictactoe.PlayMove(session, row, col); err != nil {
		if apperror.IsRejectedMove(err) {
			log.Info("move rejected", "player", player.Name, "reason", err)
			return session, err
		}

		return nil, fmt.Errorf("failed to play move: %w", err)
	}

	if err = that.sessionService.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	log.Info("move accepted", "player", player.Name, "token", player.Token, "outcome", session.Outcome.State)
	log.Debug("board\n" + presenter.Text(session))

	if session.IsFinished() {
		log.Info("session finished", "result", presenter.Message(session))
	}

	return session, nil
}

// Restart starts a fresh session for the same players and drops the old one.
func (that *gameUseCase) Restart(ctx context.Context, id string) (*entity.Session, error) {
	log := that.logger.With("method", "Restart", "sessionID", id)

	// a move still in flight on the old session must not save it back after the delete.
	that.mu.Lock()
	defer that.mu.Unlock()

	previous, err := that.sessionService.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session, err := that.StartSession(ctx, previous.Players[0].Name, previous.Players[1].Name)
	if err != nil {
		return nil, err
	}

	if err = that.sessionService.Delete(ctx, previous.ID); err != nil {
		log.Error("failed to delete previous session", "error", err)
	}

	return session, nil
}
