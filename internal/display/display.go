package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

const (
	cellHit   = "x"
	cellShip  = "o"
	cellEmpty = "."
)

// Display renders a board as text. Columns are numbered from 1, rows are lettered from A.
type Display struct {
	board       *entity.Board
	revealUnhit bool
}

func New(board *entity.Board, revealUnhit bool) *Display {
	return &Display{
		board:       board,
		revealUnhit: revealUnhit,
	}
}

// Owner shows the player's own ships as well as the hits taken.
func Owner(board *entity.Board) *Display {
	return New(board, true)
}

// Opponent shows only confirmed hits.
func Opponent(board *entity.Board) *Display {
	return New(board, false)
}

func (that *Display) Render() string {
	size := that.board.Size()

	hits := toSet(that.board.HitCoordinates())
	occupied := toSet(that.board.OccupiedCoordinates())

	var sb strings.Builder

	sb.WriteString("  ")
	for x := 1; x <= size; x++ {
		fmt.Fprintf(&sb, "%d ", x)
	}
	sb.WriteString("\n")

	for y := range size {
		fmt.Fprintf(&sb, "%c ", rune('A'+y))
		for x := range size {
			sb.WriteString(that.cell(entity.NewCoordinate(x, y), hits, occupied))
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (that *Display) String() string {
	return that.Render()
}

func (that *Display) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, that.Render())
	if err != nil {
		return int64(n), fmt.Errorf("failed to write board: %w", err)
	}

	return int64(n), nil
}

func (that *Display) cell(coord entity.Coordinate, hits, occupied map[entity.Coordinate]struct{}) string {
	if _, ok := hits[coord]; ok {
		return cellHit
	}

	if _, ok := occupied[coord]; ok && that.revealUnhit {
		return cellShip
	}

	return cellEmpty
}

func toSet(coords []entity.Coordinate) map[entity.Coordinate]struct{} {
	set := make(map[entity.Coordinate]struct{}, len(coords))
	for _, c := range coords {
		set[c] = struct{}{}
	}

	return set
}
