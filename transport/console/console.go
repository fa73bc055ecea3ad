// Package console plays a hot-seat game over a text stream, one move per line.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/presenter"
)

const (
	commandQuit    = "quit"
	commandRestart = "restart"
)

var errBadInput = errors.New(`enter a move as "row col", e.g. "0 2"`)

type gameUseCase interface {
	StartSession(ctx context.Context, playerOneName, playerTwoName string) (*entity.Session, error)
	PlayMove(ctx context.Context, id string, row, col int) (*entity.Session, error)
	Restart(ctx context.Context, id string) (*entity.Session, error)
}

type Console struct {
	logger *slog.Logger
	game   gameUseCase

	in  *bufio.Scanner
	out io.Writer

	// lines is fed by readLines; scanErr is set before lines is closed.
	lines   chan string
	scanErr error
}

func New(logger *slog.Logger, game gameUseCase, in io.Reader, out io.Writer) *Console {
	return &Console{
		logger: logger.With("component", "console"),
		game:   game,
		in:     bufio.NewScanner(in),
		out:    out,
		lines:  make(chan string),
	}
}

// Run - plays until the input ends, ctx is canceled or a player types quit.
// A pending read does not hold Run once ctx is canceled. A Console runs once.
func (that *Console) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go that.readLines(ctx)

	playerOne, ok := that.prompt(ctx, "Player X name: ")
	if !ok {
		return that.stopReason(ctx)
	}

	playerTwo, ok := that.prompt(ctx, "Player O name: ")
	if !ok {
		return that.stopReason(ctx)
	}

	session, err := that.game.StartSession(ctx, playerOne, playerTwo)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	that.printRound(session)

	for ctx.Err() == nil {
		line, ok := that.prompt(ctx, "> ")
		if !ok {
			return that.stopReason(ctx)
		}

		switch strings.ToLower(line) {
		case commandQuit:
			return nil
		case commandRestart:
			if session, err = that.game.Restart(ctx, session.ID); err != nil {
				return fmt.Errorf("failed to restart session: %w", err)
			}
			that.printRound(session)
			continue
		}

		row, col, err := parseMove(line)
		if err != nil {
			that.println(err.Error())
			continue
		}

		that.printf("Drawing %s's token into cell (%d, %d)...\n", session.ActivePlayer().Name, row, col)

		updated, err := that.game.PlayMove(ctx, session.ID, row, col)
		if err != nil {
			if !apperror.IsRejectedMove(err) {
				if ctx.Err() != nil {
					return that.stopReason(ctx)
				}
				return fmt.Errorf("failed to play move: %w", err)
			}

			that.println(rejection(err))
			continue
		}

		session = updated
		that.printRound(session)
	}

	return nil
}

func (that *Console) printRound(session *entity.Session) {
	that.println(presenter.Text(session))
	that.println(presenter.Message(session))

	if session.IsFinished() {
		that.println(`Type "restart" to play again or "quit" to leave.`)
	}
}

// readLines - scans input until it ends or ctx is canceled. A read blocked in the
// underlying reader outlives ctx until the reader returns.
func (that *Console) readLines(ctx context.Context) {
	for that.in.Scan() {
		select {
		case that.lines <- that.in.Text():
		case <-ctx.Done():
			return
		}
	}

	that.scanErr = that.in.Err()
	close(that.lines)
}

func (that *Console) prompt(ctx context.Context, text string) (string, bool) {
	that.printf("%s", text)

	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-that.lines:
		if !ok {
			return "", false
		}
		return strings.TrimSpace(line), true
	}
}

// stopReason - cancellation is a normal stop; a failed read is not.
func (that *Console) stopReason(ctx context.Context) error {
	if ctx.Err() != nil {
		that.println("")
		return nil
	}

	if that.scanErr != nil {
		return fmt.Errorf("failed to read input: %w", that.scanErr)
	}

	return nil
}

func (that *Console) println(text string) {
	that.printf("%s\n", text)
}

func (that *Console) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Debug("failed to write output", "error", err)
	}
}

// parseMove - accepts "row col" or "row,col".
func parseMove(line string) (int, int, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(fields) != 2 {
		return 0, 0, errBadInput
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, errBadInput
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, errBadInput
	}

	return row, col, nil
}

func rejection(err error) string {
	switch {
	case errors.Is(err, apperror.ErrCellOccupied):
		return "Invalid move! Cell already taken."
	case errors.Is(err, apperror.ErrGameFinished):
		return "The game is over."
	default:
		return fmt.Sprintf("Invalid move! Row and column must be between 0 and %d.", entity.Size-1)
	}
}
