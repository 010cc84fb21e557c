package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
)

var (
	ErrNotComputerTurn  = errors.New("it's not the computer's turn")
	ErrNoAvailableMoves = errors.New("no available moves")
)

type BotService interface {
	MakeTurn(game *entity.Game) error
}

type botService struct {
	logger   *slog.Logger
	searcher minimax.Searcher
}

func NewBotService(logger *slog.Logger, searcher minimax.Searcher) BotService {
	return &botService{
		logger:   logger,
		searcher: searcher,
	}
}

// MakeTurn plays the computer's mark on the cell chosen by the search.
func (that *botService) MakeTurn(game *entity.Game) error {
	if !game.IsComputerTurn() {
		return ErrNotComputerTurn
	}

	board := game.Board
	res := that.searcher.Search(&board, entity.ComputerMark)
	if !res.Found {
		return ErrNoAvailableMoves
	}

	that.logger.Debug("computer move chosen",
		"gameID", game.ID,
		"move", res.Move.String(),
		"score", res.Score,
		"nodes", res.Nodes,
	)

	if err := game.MakeTurn(entity.ComputerMark, res.Move.Row, res.Move.Col); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}
