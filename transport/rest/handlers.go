package rest

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/presenter"
	"github.com/rocketscienceinc/tictactoe/internal/service"
)

//go:embed templates/*.html
var templatesFS embed.FS

var (
	errBadRequest = errors.New("bad request")
	pages         = template.Must(template.ParseFS(templatesFS, "templates/*.html"))
)

type gameUseCase interface {
	StartSession(ctx context.Context, playerOneName, playerTwoName string) (*entity.Session, error)
	GetSession(ctx context.Context, id string) (*entity.Session, error)
	PlayMove(ctx context.Context, id string, row, col int) (*entity.Session, error)
	Restart(ctx context.Context, id string) (*entity.Session, error)
}

type Handlers struct {
	logger *slog.Logger
	game   gameUseCase

	defaults service.DefaultNames
}

func NewHandlers(logger *slog.Logger, game gameUseCase, defaults service.DefaultNames) *Handlers {
	return &Handlers{
		logger:   logger.With("component", "rest"),
		game:     game,
		defaults: defaults,
	}
}

type indexPage struct {
	PlayerOne string
	PlayerTwo string
	MaxName   int
	Error     string
}

type sessionPage struct {
	View  *presenter.View
	Error string
}

type createSessionRequest struct {
	PlayerOne string `json:"player_one"`
	PlayerTwo string `json:"player_two"`
}

type moveRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type errorResponse struct {
	Error   string          `json:"error"`
	Session *presenter.View `json:"session,omitempty"`
}

func (that *Handlers) Index(w http.ResponseWriter, _ *http.Request) {
	that.renderIndex(w, http.StatusOK, "")
}

func (that *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.game.StartSession(r.Context(), r.PostFormValue("player_one"), r.PostFormValue("player_two"))
	if err != nil {
		status, message := that.statusFor(err)
		that.renderIndex(w, status, message)
		return
	}

	http.Redirect(w, r, "/sessions/"+session.ID, http.StatusSeeOther)
}

func (that *Handlers) ShowSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.game.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.renderPageError(w, err)
		return
	}

	that.renderSession(w, http.StatusOK, session, "")
}

func (that *Handlers) PlayMove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	row, col, err := parseSquare(r.PostFormValue("row"), r.PostFormValue("col"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := that.game.PlayMove(r.Context(), id, row, col)
	if err != nil {
		if apperror.IsRejectedMove(err) && session != nil {
			status, message := that.statusFor(err)
			that.renderSession(w, status, session, message)
			return
		}

		that.renderPageError(w, err)
		return
	}

	http.Redirect(w, r, "/sessions/"+session.ID, http.StatusSeeOther)
}

func (that *Handlers) Restart(w http.ResponseWriter, r *http.Request) {
	session, err := that.game.Restart(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.renderPageError(w, err)
		return
	}

	http.Redirect(w, r, "/sessions/"+session.ID, http.StatusSeeOther)
}

func (that *Handlers) APICreateSession(w http.ResponseWriter, r *http.Request) {
	// an empty body means both players keep the default names.
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	session, err := that.game.StartSession(r.Context(), req.PlayerOne, req.PlayerTwo)
	if err != nil {
		that.writeError(w, err, nil)
		return
	}

	that.writeJSON(w, http.StatusCreated, presenter.NewView(session))
}

func (that *Handlers) APIGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.game.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err, nil)
		return
	}

	that.writeJSON(w, http.StatusOK, presenter.NewView(session))
}

func (that *Handlers) APIPlayMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Row == nil || req.Col == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "row and col are required"})
		return
	}

	session, err := that.game.PlayMove(r.Context(), chi.URLParam(r, "id"), *req.Row, *req.Col)
	if err != nil {
		that.writeError(w, err, session)
		return
	}

	that.writeJSON(w, http.StatusOK, presenter.NewView(session))
}

func (that *Handlers) APIRestart(w http.ResponseWriter, r *http.Request) {
	session, err := that.game.Restart(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err, nil)
		return
	}

	that.writeJSON(w, http.StatusCreated, presenter.NewView(session))
}

// statusFor - maps an application error to an HTTP status and a message safe to show.
func (that *Handlers) statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound, "Game not found."
	case errors.Is(err, apperror.ErrCellOccupied):
		return http.StatusConflict, "Invalid move! Cell already taken."
	case errors.Is(err, apperror.ErrGameFinished):
		return http.StatusConflict, "The game is over."
	case errors.Is(err, apperror.ErrInvalidCell):
		return http.StatusBadRequest, "Invalid move! No such cell."
	case errors.Is(err, apperror.ErrInvalidPlayerName):
		return http.StatusBadRequest, "Player names must be at most " + strconv.Itoa(service.MaxPlayerNameLength) + " characters."
	default:
		that.logger.Error("request failed", "error", err)
		return http.StatusInternalServerError, "Internal Server Error"
	}
}

func (that *Handlers) writeError(w http.ResponseWriter, err error, session *entity.Session) {
	status, message := that.statusFor(err)

	resp := errorResponse{Error: message}
	if session != nil {
		resp.Session = presenter.NewView(session)
	}

	that.writeJSON(w, status, resp)
}

func (that *Handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *Handlers) renderPageError(w http.ResponseWriter, err error) {
	status, message := that.statusFor(err)
	http.Error(w, message, status)
}

func (that *Handlers) renderIndex(w http.ResponseWriter, status int, message string) {
	that.render(w, status, "index", indexPage{
		PlayerOne: that.defaults.One,
		PlayerTwo: that.defaults.Two,
		MaxName:   service.MaxPlayerNameLength,
		Error:     message,
	})
}

func (that *Handlers) renderSession(w http.ResponseWriter, status int, session *entity.Session, message string) {
	that.render(w, status, "session", sessionPage{
		View:  presenter.NewView(session),
		Error: message,
	})
}

func (that *Handlers) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		that.logger.Error("failed to render page", "page", name, "error", err)
	}
}

// parseSquare - reads form coordinates. Range checks are left to the game.
func parseSquare(rawRow, rawCol string) (int, int, error) {
	row, err := strconv.Atoi(rawRow)
	if err != nil {
		return 0, 0, errBadRequest
	}

	col, err := strconv.Atoi(rawCol)
	if err != nil {
		return 0, 0, errBadRequest
	}

	return row, col, nil
}
