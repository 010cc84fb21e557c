// Package terminal is the interactive front end: a mode menu and a clickable
// board drawn with tcell.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/board"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type gameUseCase interface {
	CreateGame(ctx context.Context, mode string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, row, col int) (*entity.Game, error)
	RestartGame(ctx context.Context, id string) (*entity.Game, error)
	LeaveGame(ctx context.Context, id string) error
}

type viewKind uint8

const (
	viewMenu viewKind = iota
	viewGame
)

type App struct {
	logger *slog.Logger
	screen tcell.Screen
	game   gameUseCase

	view    viewKind
	current *entity.Game
	buttons tcell.ButtonMask
}

// New creates the app on an initialized screen.
func New(logger *slog.Logger, screen tcell.Screen, game gameUseCase) *App {
	return &App{
		logger: logger.With("component", "terminal"),
		screen: screen,
		game:   game,
		view:   viewMenu,
	}
}

// NewScreen creates and initializes the terminal screen with mouse support.
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	if err = screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}

	screen.EnableMouse(tcell.MouseButtonEvents)

	return screen, nil
}

// Run draws and handles events until the user quits or ctx is canceled.
func (that *App) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	go func() {
		<-ctx.Done()
		_ = that.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	for {
		that.draw()

		ev := that.screen.PollEvent()
		if ev == nil {
			return nil
		}

		if ctx.Err() != nil {
			log.Info("context canceled, leaving terminal")
			return nil
		}

		quit, err := that.handleEvent(ctx, ev)
		if err != nil {
			return err
		}

		if quit {
			log.Info("user quit")
			return nil
		}
	}
}

func (that *App) handleEvent(ctx context.Context, ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		that.screen.Sync()
	case *tcell.EventKey:
		return that.handleKey(ctx, ev)
	case *tcell.EventMouse:
		return false, that.handleMouse(ctx, ev)
	}

	return false, nil
}

func (that *App) handleKey(ctx context.Context, ev *tcell.EventKey) (bool, error) {
	switch {
	case ev.Key() == tcell.KeyCtrlC:
		return true, nil
	case ev.Key() == tcell.KeyEscape:
		return false, that.leaveGame(ctx)
	case ev.Key() == tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true, nil
		case 'r', 'R':
			return false, that.restartGame(ctx)
		case '1':
			return false, that.startGame(ctx, entity.ModePlayers)
		case '2':
			return false, that.startGame(ctx, entity.ModeComputer)
		}
	}

	return false, nil
}

// handleMouse reacts to the press of the primary button only.
func (that *App) handleMouse(ctx context.Context, ev *tcell.EventMouse) error {
	pressed := ev.Buttons()&tcell.Button1 != 0 && that.buttons&tcell.Button1 == 0
	that.buttons = ev.Buttons()

	if !pressed {
		return nil
	}

	x, y := ev.Position()

	switch that.view {
	case viewMenu:
		if btn, ok := buttonAt(x, y); ok {
			return that.startGame(ctx, btn.mode)
		}
	case viewGame:
		if move, ok := cellAt(x, y); ok {
			return that.playCell(ctx, move)
		}
	}

	return nil
}

func (that *App) startGame(ctx context.Context, mode string) error {
	if that.view != viewMenu {
		return nil
	}

	game, err := that.game.CreateGame(ctx, mode)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	that.current = game
	that.view = viewGame

	return nil
}

// playCell plays the clicked cell. Clicks on occupied cells or a finished
// board are ignored.
func (that *App) playCell(ctx context.Context, move board.Move) error {
	if that.current.IsFinished() {
		return nil
	}

	game, err := that.game.MakeTurn(ctx, that.current.ID, move.Row, move.Col)
	if errors.Is(err, apperror.ErrCellOccupied) || errors.Is(err, apperror.ErrGameFinished) {
		that.logger.Debug("click ignored", "cell", move.String(), "error", err)
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to play %s: %w", move, err)
	}

	that.current = game

	return nil
}

func (that *App) restartGame(ctx context.Context) error {
	if that.view != viewGame {
		return nil
	}

	game, err := that.game.RestartGame(ctx, that.current.ID)
	if err != nil {
		return fmt.Errorf("failed to restart game: %w", err)
	}

	that.current = game

	return nil
}

func (that *App) leaveGame(ctx context.Context) error {
	if that.view != viewGame {
		return nil
	}

	if err := that.game.LeaveGame(ctx, that.current.ID); err != nil {
		return fmt.Errorf("failed to leave game: %w", err)
	}

	that.current = nil
	that.view = viewMenu

	return nil
}
