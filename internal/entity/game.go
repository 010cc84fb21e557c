package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/board"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

const (
	// ModePlayers is two humans sharing one board.
	ModePlayers = "pvp"
	// ModeComputer is a human playing X against the computer playing O.
	ModeComputer = "ai"
)

// ComputerMark is the mark the computer plays in ModeComputer.
const ComputerMark = board.PlayerO

// Game is one session. The game-over flag is kept here, the board only holds
// the cells.
type Game struct {
	ID     string      `json:"id"`
	Mode   string      `json:"mode"`
	Board  board.Board `json:"board"`
	Turn   board.Cell  `json:"turn"`
	Status string      `json:"status"`
}

func NewGame(id, mode string) *Game {
	return &Game{
		ID:     id,
		Mode:   mode,
		Turn:   board.PlayerX,
		Status: StatusOngoing,
	}
}

func IsKnownMode(mode string) bool {
	return mode == ModePlayers || mode == ModeComputer
}

// MakeTurn places mark at (row, col) and passes the turn. The game finishes
// when mark completes a line or the board fills up.
func (that *Game) MakeTurn(mark board.Cell, row, col int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if err := that.Board.Mark(row, col, mark); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	if that.Board.CheckWin(mark) || that.Board.IsFull() {
		that.Status = StatusFinished
		that.Turn = board.Empty

		return nil
	}

	that.Turn = mark.Opponent()

	return nil
}

// Restart clears the board and gives the first turn back to X.
func (that *Game) Restart() {
	that.Board.Reset()
	that.Turn = board.PlayerX
	that.Status = StatusOngoing
}

func (that *Game) Outcome() board.Outcome {
	return that.Board.Outcome()
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWithComputer() bool {
	return that.Mode == ModeComputer
}

// IsComputerTurn reports whether the computer should move now.
func (that *Game) IsComputerTurn() bool {
	return that.IsWithComputer() && that.IsOngoing() && that.Turn == ComputerMark
}
