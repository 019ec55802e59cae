package entity

import (
	"testing"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_PlaceVessel(t *testing.T) {
	t.Run("Accepts a vessel fully in bounds", func(t *testing.T) {
		// Given: an empty 5x5 board
		board := NewBoard(5)

		// When: placing a vessel touching both edges
		err := board.PlaceVessel(NewVessel(NewCoordinate(0, 4), Horizontal, 5))

		// Then: it should be accepted
		require.NoError(t, err)
		assert.Equal(t, 1, board.VesselCount())
	})

	t.Run("Rejects coordinates outside the grid", func(t *testing.T) {
		testCases := []struct {
			Name   string
			Vessel *Vessel
		}{
			{Name: "Past the right edge", Vessel: NewVessel(NewCoordinate(3, 0), Horizontal, 3)},
			{Name: "Past the bottom edge", Vessel: NewVessel(NewCoordinate(0, 4), Vertical, 2)},
			{Name: "Negative X", Vessel: NewVessel(NewCoordinate(-1, 0), Horizontal, 2)},
			{Name: "Negative Y", Vessel: NewVessel(NewCoordinate(0, -1), Vertical, 2)},
		}

		for _, tc := range testCases {
			t.Run(tc.Name, func(t *testing.T) {
				board := NewBoard(5)

				err := board.PlaceVessel(tc.Vessel)

				require.ErrorIs(t, err, apperror.ErrOutOfBounds)
				assert.Zero(t, board.VesselCount())
			})
		}
	})

	t.Run("Rejects overlapping vessels", func(t *testing.T) {
		// Given: a board with a vertical vessel in column 2
		board := NewBoard(5)
		require.NoError(t, board.PlaceVessel(NewVessel(NewCoordinate(2, 0), Vertical, 3)))

		// When: placing a horizontal vessel crossing it
		err := board.PlaceVessel(NewVessel(NewCoordinate(1, 1), Horizontal, 3))

		// Then: it should fail with ErrOverlap and the fleet is unchanged
		require.ErrorIs(t, err, apperror.ErrOverlap)
		assert.Equal(t, 1, board.VesselCount())
	})

	t.Run("Overlap takes precedence over out of bounds", func(t *testing.T) {
		// Given: a board with a vessel on the last row
		board := NewBoard(5)
		require.NoError(t, board.PlaceVessel(NewVessel(NewCoordinate(0, 4), Horizontal, 2)))

		// When: placing a vessel that both overlaps and leaves the grid
		err := board.PlaceVessel(NewVessel(NewCoordinate(1, 3), Vertical, 3))

		// Then: the overlap should be reported
		require.ErrorIs(t, err, apperror.ErrOverlap)
		assert.NotErrorIs(t, err, apperror.ErrOutOfBounds)
	})
}

func TestBoard_ResolveGuess(t *testing.T) {
	newBoard := func(t *testing.T) *Board {
		t.Helper()

		board := NewBoard(6)
		require.NoError(t, board.PlaceVessel(NewVessel(NewCoordinate(0, 0), Horizontal, 2)))
		require.NoError(t, board.PlaceVessel(NewVessel(NewCoordinate(3, 2), Vertical, 3)))

		return board
	}

	t.Run("Hit and miss", func(t *testing.T) {
		board := newBoard(t)

		assert.True(t, board.ResolveGuess(NewCoordinate(3, 3)))
		assert.False(t, board.ResolveGuess(NewCoordinate(5, 5)))
		assert.Equal(t, []Coordinate{{X: 3, Y: 3}}, board.HitCoordinates())
	})

	t.Run("Occupied cells do not change under guesses", func(t *testing.T) {
		board := newBoard(t)
		before := board.OccupiedCoordinates()

		for x := range 6 {
			for y := range 6 {
				board.ResolveGuess(NewCoordinate(x, y))
			}
		}

		assert.Equal(t, before, board.OccupiedCoordinates())
		assert.True(t, board.IsFullyDestroyed())
	})

	t.Run("Repeated hit stays a hit", func(t *testing.T) {
		board := newBoard(t)

		for range 3 {
			assert.True(t, board.ResolveGuess(NewCoordinate(1, 0)))
		}

		assert.Len(t, board.HitCoordinates(), 1)
		assert.False(t, board.IsFullyDestroyed())
	})
}

func TestBoard_OccupiedCoordinates(t *testing.T) {
	// Given: two vessels placed in order
	board := NewBoard(6)
	require.NoError(t, board.PlaceVessel(NewVessel(NewCoordinate(4, 4), Horizontal, 2)))
	require.NoError(t, board.PlaceVessel(NewVessel(NewCoordinate(0, 0), Vertical, 2)))

	// When: listing occupied coordinates
	all := board.OccupiedCoordinates()

	// Then: placement order then within-vessel order
	expected := []Coordinate{{X: 4, Y: 4}, {X: 5, Y: 4}, {X: 0, Y: 0}, {X: 0, Y: 1}}
	assert.Equal(t, expected, all)
	assert.Equal(t, [][]Coordinate{{{X: 4, Y: 4}, {X: 5, Y: 4}}, {{X: 0, Y: 0}, {X: 0, Y: 1}}}, board.Vessels())
}

func TestBoard_IsFullyDestroyed(t *testing.T) {
	board := NewBoard(4)
	require.NoError(t, board.PlaceVessel(NewVessel(NewCoordinate(0, 0), Horizontal, 2)))

	board.ResolveGuess(NewCoordinate(0, 0))
	assert.False(t, board.IsFullyDestroyed())

	board.ResolveGuess(NewCoordinate(1, 0))
	assert.True(t, board.IsFullyDestroyed())
}

func TestBoard_Clone(t *testing.T) {
	// Given: a board with one vessel
	board := NewBoard(4)
	require.NoError(t, board.PlaceVessel(NewVessel(NewCoordinate(0, 0), Horizontal, 2)))

	// When: guessing on a clone
	clone := board.Clone()
	clone.ResolveGuess(NewCoordinate(0, 0))

	// Then: the source board is untouched
	assert.Empty(t, board.HitCoordinates())
	assert.Len(t, clone.HitCoordinates(), 1)
	assert.Equal(t, board.Size(), clone.Size())
}

func TestPlayer(t *testing.T) {
	assert.Equal(t, PlayerTwo, PlayerOne.Other())
	assert.Equal(t, PlayerOne, PlayerTwo.Other())
	assert.Equal(t, PlayerOne, PlayerOne.Other().Other())
	assert.Equal(t, "Player 2", PlayerTwo.String())

	player, ok := PlayerFromNumber(1)
	assert.True(t, ok)
	assert.Equal(t, PlayerOne, player)

	_, ok = PlayerFromNumber(3)
	assert.False(t, ok)
}
