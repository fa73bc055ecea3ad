package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

const MaxPlayerNameLength = 32

type SessionService interface {
	Create(ctx context.Context, playerOneName, playerTwoName string) (*entity.Session, error)
	Get(ctx context.Context, id string) (*entity.Session, error)
	Save(ctx context.Context, session *entity.Session) error
	Delete(ctx context.Context, id string) error
}

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// DefaultNames are used for players who leave their name blank.
type DefaultNames struct {
	One string
	Two string
}

type sessionService struct {
	sessionRepo sessionRepo
	defaults    DefaultNames
	newID       func() string
}

func NewSessionService(sessionRepo sessionRepo, defaults DefaultNames) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		defaults:    defaults,
		newID:       uuid.NewString,
	}
}

func (that *sessionService) Create(ctx context.Context, playerOneName, playerTwoName string) (*entity.Session, error) {
	one, err := normalizeName(playerOneName, that.defaults.One)
	if err != nil {
		return nil, fmt.Errorf("player one: %w", err)
	}

	two, err := normalizeName(playerTwoName, that.defaults.Two)
	if err != nil {
		return nil, fmt.Errorf("player two: %w", err)
	}

	session := tictactoe.StartSession(that.newID(), one, two)
	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session in storage: %w", err)
	}

	return session, nil
}

func (that *sessionService) Get(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve session from storage: %w", err)
	}

	return session, nil
}

func (that *sessionService) Save(ctx context.Context, session *entity.Session) error {
	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

func (that *sessionService) Delete(ctx context.Context, id string) error {
	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// normalizeName - trims the name and falls back to the default when it is blank.
func normalizeName(name, fallback string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback, nil
	}

	if !utf8.ValidString(name) || utf8.RuneCountInString(name) > MaxPlayerNameLength {
		return "", fmt.Errorf("%w: must be valid text of at most %d characters", apperror.ErrInvalidPlayerName, MaxPlayerNameLength)
	}

	return name, nil
}
