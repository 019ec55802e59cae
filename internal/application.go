package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/battleship-backend/internal/battleship"
	"github.com/rocketscienceinc/battleship-backend/internal/config"
	"github.com/rocketscienceinc/battleship-backend/internal/console"
	"github.com/rocketscienceinc/battleship-backend/internal/repository"
	"github.com/rocketscienceinc/battleship-backend/internal/repository/storage"
	"github.com/rocketscienceinc/battleship-backend/internal/repository/storage/sqlite"
	"github.com/rocketscienceinc/battleship-backend/internal/usecase"
	"github.com/rocketscienceinc/battleship-backend/transport/rest"
	"github.com/rocketscienceinc/battleship-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	if conf.Mode == config.ModeConsole {
		return runConsole(ctx, logger, conf)
	}

	return runServer(ctx, logger, conf)
}

// NewMatch builds a match from the game section of the config.
func NewMatch(conf config.Game) *battleship.Match {
	opts := []battleship.Option{battleship.WithFleet(conf.Fleet)}
	if conf.LegacyWinCheck {
		opts = append(opts, battleship.WithLegacyWinCheck())
	}

	return battleship.NewMatch(conf.BoardSize, opts...)
}

func runConsole(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	game := console.New(os.Stdin, os.Stdout,
		console.WithMaxAttempts(conf.Console.MaxAttempts),
		console.WithLogger(logger),
	)

	if _, err := game.Run(ctx, NewMatch(conf.Game)); err != nil {
		return fmt.Errorf("console game failed: %w", err)
	}

	return nil
}

func runServer(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	results, closeResults, err := openResults(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeResults(); err != nil {
			log.Error("could not close results storage", "error", err)
		}
	}()

	registry := usecase.NewSessionRegistry()
	newSession := func() *usecase.MatchSession {
		return usecase.NewMatchSession(logger, NewMatch(conf.Game), results)
	}

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		restServer := rest.New(logger, registry, results)
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, registry, newSession)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// openResults picks the result log backend. The returned func releases it.
func openResults(ctx context.Context, conf *config.Config) (repository.ResultRepository, func() error, error) {
	switch conf.Results.Storage {
	case config.StorageRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewRedisResultRepository(redisStorage.Connection), redisStorage.Close, nil
	case config.StorageSQLite:
		sqliteStorage, err := sqlite.New(conf.Results.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return repository.NewSQLiteResultRepository(sqliteStorage.Connection), sqliteStorage.Close, nil
	default:
		return repository.NewDiscardResultRepository(), func() error { return nil }, nil
	}
}
