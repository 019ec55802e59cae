package entity

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownOrientation = errors.New("unknown orientation")

type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// ParseOrientation accepts "H"/"V" in any case as well as the long forms.
func ParseOrientation(input string) (Orientation, error) {
	switch strings.ToUpper(strings.TrimSpace(input)) {
	case "H", "HORZ", "HORIZONTAL":
		return Horizontal, nil
	case "V", "VERT", "VERTICAL":
		return Vertical, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOrientation, input)
	}
}

func (that Orientation) String() string {
	if that == Vertical {
		return "V"
	}

	return "H"
}

func (that Orientation) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Orientation) UnmarshalText(text []byte) error {
	orientation, err := ParseOrientation(string(text))
	if err != nil {
		return err
	}

	*that = orientation

	return nil
}

// Vessel is one ship: a run of coordinates and a hit flag for each of them.
type Vessel struct {
	coords []Coordinate
	hits   []bool
}

// NewVessel lays out length cells from start along the orientation axis. Bounds are the board's concern.
// A length below 1 gives an empty vessel.
func NewVessel(start Coordinate, orientation Orientation, length int) *Vessel {
	length = max(length, 0)

	coords := make([]Coordinate, 0, length)
	for offset := range length {
		if orientation == Horizontal {
			coords = append(coords, Coordinate{X: start.X + offset, Y: start.Y})
		} else {
			coords = append(coords, Coordinate{X: start.X, Y: start.Y + offset})
		}
	}

	return &Vessel{
		coords: coords,
		hits:   make([]bool, len(coords)),
	}
}

// RecordGuess marks coord as hit when the vessel occupies it. Guessing a hit cell again still reports a hit.
func (that *Vessel) RecordGuess(coord Coordinate) bool {
	for i, c := range that.coords {
		if c == coord {
			that.hits[i] = true
			return true
		}
	}

	return false
}

func (that *Vessel) IsDestroyed() bool {
	for _, hit := range that.hits {
		if !hit {
			return false
		}
	}

	return true
}

func (that *Vessel) Contains(coord Coordinate) bool {
	for _, c := range that.coords {
		if c == coord {
			return true
		}
	}

	return false
}

func (that *Vessel) Len() int {
	return len(that.coords)
}

func (that *Vessel) Coordinates() []Coordinate {
	coords := make([]Coordinate, len(that.coords))
	copy(coords, that.coords)

	return coords
}

func (that *Vessel) HitCoordinates() []Coordinate {
	var found []Coordinate
	for i, c := range that.coords {
		if that.hits[i] {
			found = append(found, c)
		}
	}

	return found
}

func (that *Vessel) clone() *Vessel {
	hits := make([]bool, len(that.hits))
	copy(hits, that.hits)

	return &Vessel{
		coords: that.Coordinates(),
		hits:   hits,
	}
}
