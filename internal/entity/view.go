package entity

import "github.com/rocketscienceinc/tictactoe-minimax/internal/board"

// GameView is the game as sent to network clients, with the outcome derived
// from the board.
type GameView struct {
	ID      string      `json:"id"`
	Mode    string      `json:"mode"`
	Board   board.Board `json:"board"`
	Turn    board.Cell  `json:"turn"`
	Status  string      `json:"status"`
	Outcome string      `json:"outcome"`
	Winner  board.Cell  `json:"winner"`
}

func NewGameView(game *Game) *GameView {
	outcome := game.Outcome()

	return &GameView{
		ID:      game.ID,
		Mode:    game.Mode,
		Board:   game.Board,
		Turn:    game.Turn,
		Status:  game.Status,
		Outcome: outcome.State.String(),
		Winner:  outcome.Winner,
	}
}
