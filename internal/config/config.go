package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	ModeServer  = "server"
	ModeConsole = "console"

	StorageNone   = "none"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

type Config struct {
	LogLevel   string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Mode       string  `yaml:"mode" env:"MODE" env-default:"server"`
	HTTPPort   string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string  `yaml:"socket-port" env:"SOCKET_PORT" env-default:"3000"`
	Game       Game    `yaml:"game"`
	Console    Console `yaml:"console"`
	Results    Results `yaml:"results"`
	Redis      Redis   `yaml:"redis"`
}

type Game struct {
	BoardSize      int   `yaml:"board-size" env:"GAME_BOARD_SIZE" env-default:"10"`
	Fleet          []int `yaml:"fleet" env:"GAME_FLEET" env-default:"2,3,3,4,5"`
	LegacyWinCheck bool  `yaml:"legacy-win-check" env:"GAME_LEGACY_WIN_CHECK" env-default:"false"`
}

type Console struct {
	MaxAttempts int `yaml:"max-attempts" env:"CONSOLE_MAX_ATTEMPTS" env-default:"10"`
}

type Results struct {
	Storage    string `yaml:"storage" env:"RESULTS_STORAGE" env-default:"none"`
	SQLitePath string `yaml:"sqlite-path" env:"RESULTS_SQLITE_PATH" env-default:"results.db"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - loads .env, then config.yml at path when present, then the environment.
func MustLoad(path string) *Config {
	conf, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return conf
}

func Load(path string) (*Config, error) {
	// a missing .env file is normal outside development
	_ = godotenv.Load()

	config := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	} else {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

var (
	ErrInvalidMode      = errors.New("unknown mode")
	ErrInvalidStorage   = errors.New("unknown results storage")
	ErrInvalidBoardSize = errors.New("board size must be between 1 and 26")
	ErrInvalidFleet     = errors.New("fleet must have at least one ship, each between 1 and the board size long")
)

func (that *Config) Validate() error {
	switch that.Mode {
	case ModeServer, ModeConsole:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, that.Mode)
	}

	switch that.Results.Storage {
	case StorageNone, StorageRedis, StorageSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStorage, that.Results.Storage)
	}

	if that.Game.BoardSize < 1 || that.Game.BoardSize > 26 {
		return fmt.Errorf("%w: %d", ErrInvalidBoardSize, that.Game.BoardSize)
	}

	if len(that.Game.Fleet) == 0 {
		return fmt.Errorf("%w: empty fleet", ErrInvalidFleet)
	}

	for _, length := range that.Game.Fleet {
		if length < 1 || length > that.Game.BoardSize {
			return fmt.Errorf("%w: %v on a %d board", ErrInvalidFleet, that.Game.Fleet, that.Game.BoardSize)
		}
	}

	return nil
}

// GetRedisAddr returns host:port, or "" when no host is configured.
func (that *Redis) GetRedisAddr() string {
	if that.Host == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
