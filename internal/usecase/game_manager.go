package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type botService interface {
	MakeTurn(game *entity.Game) error
}

// GameManager runs game sessions: it applies the player's turn, lets the
// computer answer in computer mode and persists the result.
type GameManager struct {
	logger     *slog.Logger
	gameRepo   gameRepo
	botService botService

	// mu serializes read-modify-write cycles on stored games.
	mu sync.Mutex
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, botService botService) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo:   gameRepo,
		botService: botService,
	}
}

func (that *GameManager) CreateGame(ctx context.Context, mode string) (*entity.Game, error) {
	if !entity.IsKnownMode(mode) {
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownMode, mode)
	}

	game := entity.NewGame(uuid.NewString(), mode)
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID, "mode", mode)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn plays the current player's mark at (row, col). In computer mode the
// computer's reply is applied before the game is saved.
func (that *GameManager) MakeTurn(ctx context.Context, id string, row, col int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", id)

	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if game.IsComputerTurn() {
		return game, apperror.ErrNotYourTurn
	}

	if err = game.MakeTurn(game.Turn, row, col); err != nil {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	if game.IsComputerTurn() {
		if err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	if game.IsFinished() {
		outcome := game.Outcome()
		log.Info("game finished", "outcome", outcome.State.String(), "winner", outcome.Winner.String())
	}

	return game, nil
}

func (that *GameManager) RestartGame(ctx context.Context, id string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	game.Restart()

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Info("game restarted", "gameID", id)

	return game, nil
}

func (that *GameManager) LeaveGame(ctx context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", id)

	return nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
