package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/pkg/server"
)

var errUnknownAction = errors.New("unknown action")

type gameUseCase interface {
	StartSession(ctx context.Context, playerOneName, playerTwoName string) (*entity.Session, error)
	GetSession(ctx context.Context, id string) (*entity.Session, error)
	PlayMove(ctx context.Context, id string, row, col int) (*entity.Session, error)
	Restart(ctx context.Context, id string) (*entity.Session, error)
}

type handlerFunc func(ctx context.Context, msg *Message) (*entity.Session, error)

type Server struct {
	logger *slog.Logger
	game   gameUseCase

	originPatterns []string
	handlers       map[string]handlerFunc
}

func New(logger *slog.Logger, game gameUseCase, originPatterns []string) *Server {
	srv := &Server{
		logger:         logger.With("component", "websocket"),
		game:           game,
		originPatterns: originPatterns,
	}

	srv.handlers = map[string]handlerFunc{
		actionStart:   srv.handleStart,
		actionGet:     srv.handleGet,
		actionMove:    srv.handleMove,
		actionRestart: srv.handleRestart,
	}

	return srv
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Get("/ws", that.ServeHTTP)

	// websocket connections are long lived, so only the header read is bounded.
	srv := server.New(port, router)
	srv.ReadTimeout = 0
	srv.WriteTimeout = 0
	srv.ReadHeaderTimeout = 10 * time.Second
	// open connections see ctx canceled on shutdown, Shutdown itself does not wait for hijacked ones.
	srv.BaseContext = func(net.Listener) context.Context { return ctx }

	if err := server.Serve(ctx, srv); err != nil {
		return fmt.Errorf("websocket server: %w", err)
	}

	return nil
}

// ServeHTTP upgrades the connection and processes messages until the client leaves.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP", "remote", r.RemoteAddr)

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: that.originPatterns,
	})
	if err != nil {
		log.Error("failed to accept websocket", "error", err)
		return
	}
	defer func() {
		if closeErr := conn.Close(websocket.StatusNormalClosure, "bye"); closeErr != nil {
			log.Debug("failed to close websocket", "error", closeErr)
		}
	}()

	log.Info("WebSocket connection established")

	if err = that.handleMessages(r.Context(), conn); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != -1 || errors.Is(err, context.Canceled) {
				log.Debug("websocket closed", "reason", err)
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			if err = that.send(ctx, conn, actionError, nil, "invalid message"); err != nil {
				return err
			}
			continue
		}

		session, err := that.dispatch(ctx, &message)
		errText := ""
		if err != nil {
			errText = that.errorText(err)
		}

		if err = that.send(ctx, conn, message.Action, session, errText); err != nil {
			return err
		}
	}
}

func (that *Server) dispatch(ctx context.Context, message *Message) (*entity.Session, error) {
	handler, ok := that.handlers[message.Action]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnknownAction, message.Action)
	}

	return handler(ctx, message)
}

func (that *Server) send(ctx context.Context, conn *websocket.Conn, action string, session *entity.Session, errText string) error {
	response := Response{
		Action:  action,
		Payload: ResponsePayload{Error: errText},
	}

	if session != nil {
		response.Payload.Session = viewOf(session)
	}

	if err := wsjson.Write(ctx, conn, response); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}
