package board

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

const Size = 3

// Lines holds the 8 winning triples: 3 rows, 3 columns and 2 diagonals.
var Lines = [8][3]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{2, 0}, {1, 1}, {0, 2}},
}

// Move identifies a cell by row and column.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Move) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// Board is a 3x3 grid of cells. The zero value is an empty board; assigning a
// Board copies it.
type Board [Size][Size]Cell

func inRange(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// Mark places player's mark on an empty cell. The board is left unchanged when
// an error is returned.
func (that *Board) Mark(row, col int, player Cell) error {
	if !inRange(row, col) || !player.IsPlayer() {
		return fmt.Errorf("%w: row %d col %d player %q", apperror.ErrInvalidCell, row, col, player)
	}

	if that[row][col] != Empty {
		return fmt.Errorf("%w: row %d col %d", apperror.ErrCellOccupied, row, col)
	}

	that[row][col] = player

	return nil
}

// Unmark empties a cell. Out of range coordinates are ignored.
func (that *Board) Unmark(row, col int) {
	if inRange(row, col) {
		that[row][col] = Empty
	}
}

func (that *Board) IsAvailable(row, col int) bool {
	return inRange(row, col) && that[row][col] == Empty
}

func (that *Board) IsFull() bool {
	for _, row := range that {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}

	return true
}

// CheckWin reports whether any line is entirely occupied by player.
func (that *Board) CheckWin(player Cell) bool {
	if !player.IsPlayer() {
		return false
	}

	for _, line := range Lines {
		if that[line[0].Row][line[0].Col] == player &&
			that[line[1].Row][line[1].Col] == player &&
			that[line[2].Row][line[2].Col] == player {
			return true
		}
	}

	return false
}

func (that *Board) Reset() {
	*that = Board{}
}

// EmptyCells lists the empty cells in row-major order.
func (that *Board) EmptyCells() []Move {
	moves := make([]Move, 0, Size*Size)
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if that[row][col] == Empty {
				moves = append(moves, Move{Row: row, Col: col})
			}
		}
	}

	return moves
}

// Outcome derives the game result from the cells. X is checked before O; both
// cannot hold a line under alternating play.
func (that *Board) Outcome() Outcome {
	switch {
	case that.CheckWin(PlayerX):
		return Outcome{State: Win, Winner: PlayerX}
	case that.CheckWin(PlayerO):
		return Outcome{State: Win, Winner: PlayerO}
	case that.IsFull():
		return Outcome{State: Draw}
	default:
		return Outcome{State: InProgress}
	}
}

// Try marks move for player, runs fn and empties the cell again on every exit
// path, including a panic inside fn. The cell must be empty.
func (that *Board) Try(move Move, player Cell, fn func()) error {
	if err := that.Mark(move.Row, move.Col, player); err != nil {
		return err
	}
	defer that.Unmark(move.Row, move.Col)

	fn()

	return nil
}

func (that *Board) String() string {
	var sb strings.Builder

	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if col > 0 {
				sb.WriteByte('|')
			}

			sb.WriteString(that[row][col].Symbol())
		}

		if row < Size-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}
