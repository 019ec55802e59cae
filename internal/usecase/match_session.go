package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/battleship"
	"github.com/rocketscienceinc/battleship-backend/internal/display"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

type resultRepoDep interface {
	Save(ctx context.Context, result *entity.MatchResult) error
}

// GuessOutcome is what a single guess produced.
type GuessOutcome struct {
	Hit    bool
	Winner *entity.Player
}

// Summary is a point-in-time description of a session, safe to show to anyone.
type Summary struct {
	ID     string            `json:"id"`
	Phase  string            `json:"phase"`
	Turn   int               `json:"turn,omitempty"`
	Winner int               `json:"winner,omitempty"`
	Boards map[string]string `json:"boards"`
}

// View holds both renderings a player sees.
type View struct {
	Own      string
	Opponent string
}

// MatchSession serialises every call on one match.
type MatchSession struct {
	id      string
	logger  *slog.Logger
	results resultRepoDep
	now     func() time.Time

	mu        sync.Mutex
	match     *battleship.Match
	startedAt time.Time
	guesses   int
	hits      int
	recorded  bool
}

func NewMatchSession(logger *slog.Logger, match *battleship.Match, results resultRepoDep) *MatchSession {
	id := uuid.NewString()

	return &MatchSession{
		id:      id,
		logger:  logger.With("component", "match-session", "matchID", id),
		results: results,
		now:     time.Now,
		match:   match,
	}
}

func (that *MatchSession) ID() string {
	return that.id
}

// PlaceVessel places the player's next vessel and starts play as soon as both fleets are complete.
func (that *MatchSession) PlaceVessel(
	ctx context.Context,
	player entity.Player,
	start entity.Coordinate,
	orientation entity.Orientation,
) (bool, error) {
	log := that.logger.With("method", "PlaceVessel", "player", player.Number())

	that.mu.Lock()
	defer that.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("place vessel canceled: %w", err)
	}

	if err := that.match.PlaceVessel(player, start, orientation); err != nil {
		return false, fmt.Errorf("failed to place vessel: %w", err)
	}

	err := that.match.BeginPlay()
	if errors.Is(err, apperror.ErrIncompleteFleet) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to begin play: %w", err)
	}

	that.startedAt = that.now()
	log.Info("both fleets placed, match started")

	return true, nil
}

// Guess fires for player and reports a winner when the guess decided the match.
func (that *MatchSession) Guess(ctx context.Context, player entity.Player, coord entity.Coordinate) (GuessOutcome, error) {
	log := that.logger.With("method", "Guess", "player", player.Number())

	that.mu.Lock()
	defer that.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return GuessOutcome{}, fmt.Errorf("guess canceled: %w", err)
	}

	hit, err := that.match.Guess(player, coord)
	if err != nil {
		return GuessOutcome{}, fmt.Errorf("failed to guess: %w", err)
	}

	that.guesses++
	if hit {
		that.hits++
	}

	winner, ok, err := that.match.CheckWinner()
	if err != nil {
		return GuessOutcome{}, fmt.Errorf("failed to check winner: %w", err)
	}

	outcome := GuessOutcome{Hit: hit}
	if !ok {
		return outcome, nil
	}

	outcome.Winner = &winner
	log.Info("match won", "winner", winner.Number(), "guesses", that.guesses)

	that.recordResult(ctx, winner)

	return outcome, nil
}

// Fleets returns the vessel coordinates of each player, indexed by entity.Player.
func (that *MatchSession) Fleets() [2][][]entity.Coordinate {
	that.mu.Lock()
	defer that.mu.Unlock()

	return [2][][]entity.Coordinate{
		that.match.BoardOf(entity.PlayerOne).Vessels(),
		that.match.BoardOf(entity.PlayerTwo).Vessels(),
	}
}

// View renders the player's own board and what they know of the opponent's.
func (that *MatchSession) View(player entity.Player) View {
	that.mu.Lock()
	defer that.mu.Unlock()

	return View{
		Own:      display.Owner(that.match.BoardOf(player)).Render(),
		Opponent: display.Opponent(that.match.BoardOf(player.Other())).Render(),
	}
}

func (that *MatchSession) Summary() Summary {
	that.mu.Lock()
	defer that.mu.Unlock()

	phase := that.match.Phase()
	summary := Summary{
		ID:    that.id,
		Phase: phase.String(),
		Boards: map[string]string{
			entity.PlayerOne.String(): display.Opponent(that.match.BoardOf(entity.PlayerOne)).Render(),
			entity.PlayerTwo.String(): display.Opponent(that.match.BoardOf(entity.PlayerTwo)).Render(),
		},
	}

	switch p := phase.(type) {
	case battleship.Active:
		summary.Turn = p.Turn.Number()
	case battleship.Finished:
		summary.Winner = p.Winner.Number()
	}

	return summary
}

// recordResult stores the result once. Storage failures are logged only; the match itself is over either way.
func (that *MatchSession) recordResult(ctx context.Context, winner entity.Player) {
	if that.recorded {
		return
	}

	that.recorded = true

	result := &entity.MatchResult{
		ID:         that.id,
		Winner:     winner.Number(),
		Guesses:    that.guesses,
		Hits:       that.hits,
		StartedAt:  that.startedAt,
		FinishedAt: that.now(),
	}

	if err := that.results.Save(ctx, result); err != nil {
		that.logger.Error("failed to save match result", "error", err)
	}
}
