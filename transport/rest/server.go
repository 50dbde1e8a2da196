package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const (
	shutdownTimeout = 5 * time.Second
	handlerTimeout  = 10 * time.Second
)

type Server struct {
	logger *slog.Logger
	router *chi.Mux
}

func New(logger *slog.Logger, handlers Handlers) *Server {
	router := chi.NewRouter()

	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Recoverer)
	router.Use(chimw.Timeout(handlerTimeout))

	router.Get("/ping", handlers.PingHandler)

	router.Route("/rounds", func(r chi.Router) {
		r.Post("/", handlers.StartRound)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handlers.GetRound)
			r.Delete("/", handlers.DeleteRound)
			r.Post("/place", handlers.PlaceTile)
			r.Post("/undo", handlers.Undo)
			r.Post("/restart", handlers.Restart)
		})
	})

	return &Server{
		logger: logger.With("component", "rest"),
		router: router,
	}
}

// Router exposes the routes, mainly for tests.
func (that *Server) Router() http.Handler {
	return that.router
}

// Start serves on port until ctx is done, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
		that.logger.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}

		return nil
	}
}
