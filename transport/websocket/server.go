package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	gws "github.com/gorilla/websocket"

	"github.com/rocketscienceinc/battleship-backend/internal/lobby"
	"github.com/rocketscienceinc/battleship-backend/internal/usecase"
)

// SessionFactory builds a fresh session for every paired match.
type SessionFactory func() *usecase.MatchSession

type Server struct {
	logger     *slog.Logger
	upgrader   gws.Upgrader
	room       *lobby.WaitingRoom[*peer]
	registry   *usecase.SessionRegistry
	newSession SessionFactory

	// ctx bounds every running match; it is replaced by Start.
	ctx context.Context
}

func New(logger *slog.Logger, registry *usecase.SessionRegistry, newSession SessionFactory) *Server {
	return &Server{
		logger: logger.With("component", "websocket"),
		upgrader: gws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		room:       lobby.NewWaitingRoom[*peer](),
		registry:   registry,
		newSession: newSession,
		ctx:        context.Background(),
	}
}

// Handler returns the http handler serving /ws.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.upgradeToWebSocket)

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	that.ctx = ctx

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
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

// upgradeToWebSocket - upgrades the connection and seats it in the waiting room.
// The connection that completes a pair drives the match for both.
func (that *Server) upgradeToWebSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	log.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	p := newPeer(conn)

	_, pair, full, err := that.room.JoinFunc(p, func(seat int) error {
		return p.sendInfo(fmt.Sprintf("You are player %d/2.", seat))
	})
	if err != nil {
		log.Error("failed to greet player", "error", err)
		_ = conn.Close()

		return
	}

	if !full {
		return
	}

	that.runMatch(that.ctx, [2]*peer{pair[0], pair[1]})
}
