package apperror

import "errors"

var (
	ErrWrongPhase      = errors.New("the match is not in the correct phase for this action")
	ErrWrongPlayer     = errors.New("it's not your turn")
	ErrFleetComplete   = errors.New("too many ships on the board")
	ErrIncompleteFleet = errors.New("at least one player's fleet is not complete")
	ErrOverlap         = errors.New("ship overlaps an existing ship")
	ErrOutOfBounds     = errors.New("ship is out of bounds")
)

// IsProtocolError reports whether err means the driver and the match went out of sync,
// as opposed to a mistake the player can correct and retry.
func IsProtocolError(err error) bool {
	return errors.Is(err, ErrWrongPhase) || errors.Is(err, ErrWrongPlayer)
}
