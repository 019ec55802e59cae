package apperror

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsProtocolError(t *testing.T) {
	t.Run("Wrapped phase and player errors are protocol errors", func(t *testing.T) {
		assert.True(t, IsProtocolError(fmt.Errorf("guess: %w", ErrWrongPhase)))
		assert.True(t, IsProtocolError(fmt.Errorf("guess: %w", ErrWrongPlayer)))
	})

	t.Run("Placement errors can be retried", func(t *testing.T) {
		for _, err := range []error{ErrOverlap, ErrOutOfBounds, ErrFleetComplete, ErrIncompleteFleet} {
			assert.False(t, IsProtocolError(err), err.Error())
		}
	})
}
