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

	"github.com/rocketscienceinc/battleship-backend/internal/battleship"
	"github.com/rocketscienceinc/battleship-backend/internal/display"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

const (
	defaultMaxAttempts = 10

	promptStartX      = "Enter the starting X coordinate: "
	promptStartY      = "Enter the starting Y coordinate: "
	promptOrientation = "Do you want it to be horizontal ('H') or vertical ('V'): "
	promptGuessX      = "Enter the X coordinate: "
	promptGuessY      = "Enter the Y coordinate: "
	retryInteger      = "Please enter a valid integer: "
	retryOrientation  = "Please enter either H or V: "
	separator         = "================"
)

var ErrTooManyAttempts = errors.New("too many invalid answers")

type Option func(*Game)

func WithMaxAttempts(n int) Option {
	return func(g *Game) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// Game drives a match from a terminal: both players share the same input and output.
type Game struct {
	logger      *slog.Logger
	scanner     *bufio.Scanner
	out         io.Writer
	maxAttempts int
}

func New(in io.Reader, out io.Writer, opts ...Option) *Game {
	game := &Game{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		scanner:     bufio.NewScanner(in),
		out:         out,
		maxAttempts: defaultMaxAttempts,
	}

	for _, opt := range opts {
		opt(game)
	}

	return game
}

// Run plays match to the end and returns the winner.
func (that *Game) Run(ctx context.Context, match *battleship.Match) (entity.Player, error) {
	log := that.logger.With("method", "Run")

	for _, player := range []entity.Player{entity.PlayerOne, entity.PlayerTwo} {
		that.println(fmt.Sprintf("%s please place your ships on the grid:", player))

		if err := that.PlaceFleet(ctx, match, player); err != nil {
			return 0, fmt.Errorf("failed to place fleet of %s: %w", player, err)
		}
	}

	if err := match.BeginPlay(); err != nil {
		return 0, fmt.Errorf("failed to begin play: %w", err)
	}

	log.Info("fleets placed, match started")

	for player := entity.PlayerOne; ; player = player.Other() {
		winner, ok, err := that.Turn(ctx, match, player)
		if err != nil {
			return 0, fmt.Errorf("turn of %s failed: %w", player, err)
		}

		if ok {
			that.println(fmt.Sprintf("Congratulations Player %d!", winner.Number()))
			log.Info("match finished", "winner", winner.Number())

			return winner, nil
		}
	}
}

// PlaceFleet prompts the player until every vessel of the fleet is on the board.
func (that *Game) PlaceFleet(ctx context.Context, match *battleship.Match, player entity.Player) error {
	for {
		length, ok := match.NextVesselLength(player)
		if !ok {
			return nil
		}

		that.println(display.Owner(match.BoardOf(player)).Render())
		that.println(fmt.Sprintf("Placing a ship of length %d.", length))

		if err := that.placeVessel(ctx, match, player); err != nil {
			return err
		}
	}
}

func (that *Game) placeVessel(ctx context.Context, match *battleship.Match, player entity.Player) error {
	for {
		start, err := that.readCoordinate(ctx, promptStartX, promptStartY)
		if err != nil {
			return err
		}

		orientation, err := that.readOrientation(ctx)
		if err != nil {
			return err
		}

		err = match.PlaceVessel(player, start, orientation)
		if err == nil {
			return nil
		}

		that.println(fmt.Sprintf("The ship could not be placed because: %v", err))
	}
}

// Turn reads one guess from player and then asks the match for a winner.
func (that *Game) Turn(ctx context.Context, match *battleship.Match, player entity.Player) (entity.Player, bool, error) {
	that.println(separator)
	that.println(display.Opponent(match.BoardOf(player.Other())).Render())
	that.println(fmt.Sprintf("Player %d please type your guess:", player.Number()))

	coord, err := that.readCoordinate(ctx, promptGuessX, promptGuessY)
	if err != nil {
		return 0, false, err
	}

	hit, err := match.Guess(player, coord)
	if err != nil {
		return 0, false, fmt.Errorf("failed to guess: %w", err)
	}

	if hit {
		that.println("You have hit an enemy ship!")
	} else {
		that.println("You missed.")
	}

	that.println(display.Opponent(match.BoardOf(player.Other())).Render())

	winner, ok, err := match.CheckWinner()
	if err != nil {
		return 0, false, fmt.Errorf("failed to check winner: %w", err)
	}

	return winner, ok, nil
}

// readCoordinate reads 1-indexed X and Y and returns the 0-indexed coordinate.
func (that *Game) readCoordinate(ctx context.Context, promptX, promptY string) (entity.Coordinate, error) {
	x, err := readParsed(ctx, that, promptX, retryInteger, strconv.Atoi)
	if err != nil {
		return entity.Coordinate{}, err
	}

	y, err := readParsed(ctx, that, promptY, retryInteger, strconv.Atoi)
	if err != nil {
		return entity.Coordinate{}, err
	}

	return entity.NewCoordinate(x-1, y-1), nil
}

func (that *Game) readOrientation(ctx context.Context) (entity.Orientation, error) {
	return readParsed(ctx, that, promptOrientation, retryOrientation, func(s string) (entity.Orientation, error) {
		// only the single letters are accepted at the prompt
		if len(s) != 1 {
			return 0, entity.ErrUnknownOrientation
		}
		return entity.ParseOrientation(s)
	})
}

// readParsed prints prompt, then retry after every line parse rejects.
func readParsed[T any](ctx context.Context, g *Game, prompt, retry string, parse func(string) (T, error)) (T, error) {
	var zero T

	g.print(prompt)

	for range g.maxAttempts {
		if err := ctx.Err(); err != nil {
			return zero, fmt.Errorf("input canceled: %w", err)
		}

		if !g.scanner.Scan() {
			if err := g.scanner.Err(); err != nil {
				return zero, fmt.Errorf("failed to read input: %w", err)
			}
			return zero, io.ErrUnexpectedEOF
		}

		value, err := parse(strings.TrimSpace(g.scanner.Text()))
		if err == nil {
			return value, nil
		}

		g.print(retry)
	}

	return zero, ErrTooManyAttempts
}

func (that *Game) print(s string) {
	if _, err := io.WriteString(that.out, s); err != nil {
		that.logger.Error("failed to write to console", "error", err)
	}
}

func (that *Game) println(s string) {
	that.print(s + "\n")
}
