package board

import (
	"errors"
	"fmt"
)

var ErrUnknownCell = errors.New("unknown cell value")

// Cell is the state of one board position.
type Cell uint8

const (
	Empty Cell = iota
	PlayerX
	PlayerO
)

func (that Cell) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Opponent returns the other player's mark. Empty has no opponent.
func (that Cell) Opponent() Cell {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return Empty
	}
}

func (that Cell) String() string {
	switch that {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return ""
	}
}

// Symbol is like String but renders Empty as "-".
func (that Cell) Symbol() string {
	if that == Empty {
		return "-"
	}

	return that.String()
}

func (that Cell) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Cell) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*that = Empty
	case "X":
		*that = PlayerX
	case "O":
		*that = PlayerO
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCell, text)
	}

	return nil
}

// State is the coarse game result.
type State uint8

const (
	InProgress State = iota
	Win
	Draw
)

func (that State) String() string {
	switch that {
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "in_progress"
	}
}

// Outcome is derived from a board; Winner is set only for Win.
type Outcome struct {
	State  State
	Winner Cell
}

func (that Outcome) IsOver() bool {
	return that.State != InProgress
}
