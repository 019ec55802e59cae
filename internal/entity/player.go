package entity

import "fmt"

type Player int

const (
	PlayerOne Player = iota
	PlayerTwo
)

func (that Player) Other() Player {
	if that == PlayerOne {
		return PlayerTwo
	}

	return PlayerOne
}

// Number is the 1-based seat shown to people.
func (that Player) Number() int {
	return int(that) + 1
}

func (that Player) Valid() bool {
	return that == PlayerOne || that == PlayerTwo
}

func (that Player) String() string {
	return fmt.Sprintf("Player %d", that.Number())
}

// PlayerFromNumber maps a 1-based seat back to a Player.
func PlayerFromNumber(n int) (Player, bool) {
	player := Player(n - 1)

	return player, player.Valid()
}
