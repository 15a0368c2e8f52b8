package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	NewGame(ctx context.Context, req *entity.NewGameRequest) (*entity.GameView, error)
	GetGame(ctx context.Context, gameID string) (*entity.GameView, error)
	MakeTurn(ctx context.Context, gameID string, x, y int) (*entity.GameView, error)
	RestartGame(ctx context.Context, gameID string, req *entity.NewGameRequest) (*entity.GameView, error)
	DeleteGame(ctx context.Context, gameID string) error
}

type Server struct {
	logger *slog.Logger
	games  gameUseCase
}

func New(logger *slog.Logger, games gameUseCase) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		games:  games,
	}
}

// Router wires the HTTP routes.
func (that *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get("/ping", that.ping)

	router.Route("/games", func(r chi.Router) {
		r.Post("/", that.createGame)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", that.getGame)
			r.Delete("/", that.deleteGame)
			r.Post("/moves", that.makeTurn)
			r.Post("/restart", that.restartGame)
		})
	})

	return router
}

// Start serves the API on port until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
