package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rocketscienceinc/tictactoe/pkg/server"
)

// NewRouter - builds the HTTP routes of the game.
func NewRouter(logger *slog.Logger, handlers *Handlers, ping http.HandlerFunc) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(RequestLogger(logger))
	router.Use(middleware.Recoverer)

	router.Get("/ping", ping)

	router.Get("/", handlers.Index)
	router.Post("/sessions", handlers.CreateSession)
	router.Route("/sessions/{id}", func(r chi.Router) {
		r.Get("/", handlers.ShowSession)
		r.Post("/moves", handlers.PlayMove)
		r.Post("/restart", handlers.Restart)
	})

	router.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", handlers.APICreateSession)
		r.Get("/{id}", handlers.APIGetSession)
		r.Post("/{id}/moves", handlers.APIPlayMove)
		r.Post("/{id}/restart", handlers.APIRestart)
	})

	return router
}

// Start - serves handler on port until ctx is canceled.
func Start(ctx context.Context, port string, handler http.Handler) error {
	if err := server.Serve(ctx, server.New(port, handler)); err != nil {
		return fmt.Errorf("http server: %w", err)
	}

	return nil
}

// RequestLogger logs each request with the slog logger.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	log := logger.With("component", "http")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"requestID", middleware.GetReqID(r.Context()),
			)
		})
	}
}
