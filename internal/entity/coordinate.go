package entity

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrUnknownDirection = errors.New("unknown direction")

// Coordinate is a cell position on a board. X grows to the right, Y grows downwards in the rendered grid.
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewCoordinate(x, y int) Coordinate {
	return Coordinate{X: x, Y: y}
}

// Distance returns the euclidean distance between two coordinates.
func (that Coordinate) Distance(other Coordinate) float64 {
	dx := absDiff(that.X, other.X)
	dy := absDiff(that.Y, other.Y)

	return math.Sqrt(float64(dx*dx + dy*dy))
}

// IsAdjacent is true unless both axis deltas exceed 1.
// Cells on the same row or column are "adjacent" whatever the distance along the other axis.
func (that Coordinate) IsAdjacent(other Coordinate) bool {
	return !(absDiff(that.X, other.X) > 1 && absDiff(that.Y, other.Y) > 1)
}

func (that Coordinate) Sub(other Coordinate) Coordinate {
	return Coordinate{X: that.X - other.X, Y: that.Y - other.Y}
}

// Less orders coordinates by X, then by Y.
func (that Coordinate) Less(other Coordinate) bool {
	if that.X != other.X {
		return that.X < other.X
	}

	return that.Y < other.Y
}

func (that Coordinate) Step(dir Direction) Coordinate {
	switch dir {
	case Up:
		return Coordinate{X: that.X, Y: that.Y + 1}
	case Down:
		return Coordinate{X: that.X, Y: that.Y - 1}
	case Left:
		return Coordinate{X: that.X - 1, Y: that.Y}
	case Right:
		return Coordinate{X: that.X + 1, Y: that.Y}
	default:
		return that
	}
}

func (that Coordinate) String() string {
	return fmt.Sprintf("(%d, %d)", that.X, that.Y)
}

type Direction int

const (
	Up Direction = iota + 1
	Down
	Left
	Right
)

func ParseDirection(input string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(input)) {
	case "UP", "U":
		return Up, nil
	case "DOWN", "D":
		return Down, nil
	case "LEFT", "L":
		return Left, nil
	case "RIGHT", "R":
		return Right, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, input)
	}
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}

	return b - a
}
