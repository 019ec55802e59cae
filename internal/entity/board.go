package entity

import (
	"fmt"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
)

// Board is one player's size x size grid and the fleet placed on it.
type Board struct {
	size    int
	vessels []*Vessel
}

func NewBoard(size int) *Board {
	return &Board{size: size}
}

func (that *Board) Size() int {
	return that.size
}

func (that *Board) VesselCount() int {
	return len(that.vessels)
}

func (that *Board) InBounds(coord Coordinate) bool {
	return coord.X >= 0 && coord.X < that.size && coord.Y >= 0 && coord.Y < that.size
}

// PlaceVessel appends the vessel to the fleet. Overlap is reported before out of bounds.
func (that *Board) PlaceVessel(vessel *Vessel) error {
	occupied := make(map[Coordinate]struct{}, len(that.vessels)*5)
	for _, c := range that.OccupiedCoordinates() {
		occupied[c] = struct{}{}
	}

	for _, c := range vessel.coords {
		if _, ok := occupied[c]; ok {
			return fmt.Errorf("%w: cell %s", apperror.ErrOverlap, c)
		}
	}

	for _, c := range vessel.coords {
		if !that.InBounds(c) {
			return fmt.Errorf("%w: cell %s", apperror.ErrOutOfBounds, c)
		}
	}

	that.vessels = append(that.vessels, vessel)

	return nil
}

// ResolveGuess reports whether coord hits a vessel. Vessels are tried in placement order.
func (that *Board) ResolveGuess(coord Coordinate) bool {
	for _, vessel := range that.vessels {
		if vessel.RecordGuess(coord) {
			return true
		}
	}

	return false
}

func (that *Board) OccupiedCoordinates() []Coordinate {
	var all []Coordinate
	for _, vessel := range that.vessels {
		all = append(all, vessel.coords...)
	}

	return all
}

func (that *Board) HitCoordinates() []Coordinate {
	var found []Coordinate
	for _, vessel := range that.vessels {
		found = append(found, vessel.HitCoordinates()...)
	}

	return found
}

// IsFullyDestroyed compares hit and occupied cell counts; placement guarantees no cell is shared.
func (that *Board) IsFullyDestroyed() bool {
	return len(that.HitCoordinates()) == len(that.OccupiedCoordinates())
}

// Vessels returns the coordinates of every vessel in placement order.
func (that *Board) Vessels() [][]Coordinate {
	fleet := make([][]Coordinate, 0, len(that.vessels))
	for _, vessel := range that.vessels {
		fleet = append(fleet, vessel.Coordinates())
	}

	return fleet
}

func (that *Board) Clone() *Board {
	vessels := make([]*Vessel, 0, len(that.vessels))
	for _, vessel := range that.vessels {
		vessels = append(vessels, vessel.clone())
	}

	return &Board{
		size:    that.size,
		vessels: vessels,
	}
}
