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

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/usecase"
)

type sessionRegistry interface {
	Get(id string) (*usecase.MatchSession, error)
}

type resultRepo interface {
	GetByID(ctx context.Context, id string) (*entity.MatchResult, error)
}

type Server struct {
	logger   *slog.Logger
	router   *chi.Mux
	sessions sessionRegistry
	results  resultRepo
}

func New(logger *slog.Logger, sessions sessionRegistry, results resultRepo) *Server {
	server := &Server{
		logger:   logger.With("component", "rest"),
		router:   chi.NewRouter(),
		sessions: sessions,
		results:  results,
	}

	server.router.Use(chimw.RequestID)
	server.router.Use(chimw.Recoverer)
	server.router.Use(chimw.Timeout(10 * time.Second))

	server.router.Get("/ping", server.handlePing)
	server.router.Get("/matches/{id}", server.handleGetMatch)
	server.router.Get("/results/{id}", server.handleGetResult)

	return server
}

// Router exposes the router, mostly for tests.
func (that *Server) Router() chi.Router {
	return that.router
}

func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
