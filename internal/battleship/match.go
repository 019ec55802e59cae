package battleship

import (
	"fmt"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

// DefaultFleet is the ship lengths each player places, in placement order.
var DefaultFleet = []int{2, 3, 3, 4, 5}

// Phase is one of Setup, Active or Finished.
type Phase interface {
	phase()
	String() string
}

// Setup - both players are placing their fleets.
type Setup struct{}

// Active - players alternate guesses, Turn guesses next.
type Active struct {
	Turn entity.Player
}

// Finished - one fleet is destroyed.
type Finished struct {
	Winner entity.Player
}

func (Setup) phase()    {}
func (Active) phase()   {}
func (Finished) phase() {}

func (Setup) String() string    { return "setup" }
func (Active) String() string   { return "active" }
func (Finished) String() string { return "finished" }

type Option func(*Match)

// WithFleet replaces the fleet composition.
func WithFleet(fleet []int) Option {
	return func(m *Match) {
		m.fleet = append([]int(nil), fleet...)
	}
}

// WithLegacyWinCheck keeps the match active when CheckWinner finds Player Two's fleet destroyed.
// Only a destroyed Player One fleet finishes the match in this mode.
func WithLegacyWinCheck() Option {
	return func(m *Match) {
		m.legacyWinCheck = true
	}
}

// Match is the rules engine for one game. It is not safe for concurrent use.
type Match struct {
	boards         [2]*entity.Board
	phase          Phase
	fleet          []int
	legacyWinCheck bool
}

func NewMatch(size int, opts ...Option) *Match {
	match := &Match{
		boards: [2]*entity.Board{entity.NewBoard(size), entity.NewBoard(size)},
		phase:  Setup{},
		fleet:  append([]int(nil), DefaultFleet...),
	}

	for _, opt := range opts {
		opt(match)
	}

	return match
}

func (that *Match) Phase() Phase {
	return that.phase
}

func (that *Match) Fleet() []int {
	return append([]int(nil), that.fleet...)
}

// NextVesselLength returns the length of the player's next vessel, false once the fleet is placed.
func (that *Match) NextVesselLength(player entity.Player) (int, bool) {
	count := that.boards[player].VesselCount()
	if count >= len(that.fleet) {
		return 0, false
	}

	return that.fleet[count], true
}

// BoardOf returns a copy of the player's board.
func (that *Match) BoardOf(player entity.Player) *entity.Board {
	return that.boards[player].Clone()
}

func (that *Match) PlaceVessel(player entity.Player, start entity.Coordinate, orientation entity.Orientation) error {
	if _, ok := that.phase.(Setup); !ok {
		return fmt.Errorf("place vessel: %w", apperror.ErrWrongPhase)
	}

	length, ok := that.NextVesselLength(player)
	if !ok {
		return fmt.Errorf("place vessel: %w", apperror.ErrFleetComplete)
	}

	if err := that.boards[player].PlaceVessel(entity.NewVessel(start, orientation, length)); err != nil {
		return fmt.Errorf("place vessel: %w", err)
	}

	return nil
}

// BeginPlay moves the match from Setup to Active once both fleets are complete. Player One guesses first.
func (that *Match) BeginPlay() error {
	if _, ok := that.phase.(Setup); !ok {
		return fmt.Errorf("begin play: %w", apperror.ErrWrongPhase)
	}

	for _, board := range that.boards {
		if board.VesselCount() < len(that.fleet) {
			return fmt.Errorf("begin play: %w", apperror.ErrIncompleteFleet)
		}
	}

	that.phase = Active{Turn: entity.PlayerOne}

	return nil
}

// Guess fires at the opponent's board and hands the turn over, hit or miss.
func (that *Match) Guess(player entity.Player, coord entity.Coordinate) (bool, error) {
	active, ok := that.phase.(Active)
	if !ok {
		return false, fmt.Errorf("guess: %w", apperror.ErrWrongPhase)
	}

	if player != active.Turn {
		return false, fmt.Errorf("guess: %w", apperror.ErrWrongPlayer)
	}

	hit := that.boards[player.Other()].ResolveGuess(coord)
	that.phase = Active{Turn: player.Other()}

	return hit, nil
}

// CheckWinner reports the winner, if any. Player One's fleet is checked first.
func (that *Match) CheckWinner() (entity.Player, bool, error) {
	if _, ok := that.phase.(Setup); ok {
		return 0, false, fmt.Errorf("check winner: %w", apperror.ErrWrongPhase)
	}

	switch {
	case that.boards[entity.PlayerOne].IsFullyDestroyed():
		that.phase = Finished{Winner: entity.PlayerTwo}
		return entity.PlayerTwo, true, nil
	case that.boards[entity.PlayerTwo].IsFullyDestroyed():
		if !that.legacyWinCheck {
			that.phase = Finished{Winner: entity.PlayerOne}
		}
		return entity.PlayerOne, true, nil
	default:
		return 0, false, nil
	}
}
