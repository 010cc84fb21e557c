package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/board"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

var (
	styleDefault = tcell.StyleDefault
	styleButton  = tcell.StyleDefault.Reverse(true)
	styleInfo    = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

func (that *App) draw() {
	that.screen.Clear()

	switch that.view {
	case viewMenu:
		that.drawMenu()
	case viewGame:
		that.drawGame()
	}

	that.screen.Show()
}

func (that *App) drawMenu() {
	drawText(that.screen, 2, 1, styleDefault.Bold(true), "Tic-Tac-Toe")

	for _, btn := range menuButtons {
		fillRect(that.screen, btn.rect, styleButton)

		labelX := btn.rect.x + (btn.rect.w-len(btn.label))/2
		drawText(that.screen, labelX, btn.rect.y+btn.rect.h/2, styleButton, btn.label)
	}

	drawText(that.screen, 2, 11, styleInfo, "q = Quit")
}

func (that *App) drawGame() {
	game := that.current
	style := outcomeStyle(game.Outcome())

	drawText(that.screen, 2, 1, styleDefault.Bold(true), modeTitle(game.Mode))

	that.drawGrid(style)

	for _, move := range allCells() {
		mark := game.Board[move.Row][move.Col]
		if !mark.IsPlayer() {
			continue
		}

		x, y := cellCenter(move)
		that.screen.SetContent(x, y, []rune(mark.String())[0], nil, style)
	}

	drawText(that.screen, boardOriginX, infoLineY, styleInfo, infoText)
	drawText(that.screen, boardOriginX, statusLineY, style, statusText(game))
}

func (that *App) drawGrid(style tcell.Style) {
	width := board.Size*squareW - 1
	height := board.Size*squareH - 1

	for line := 1; line < board.Size; line++ {
		gx := boardOriginX + line*squareW - 1
		for y := boardOriginY; y < boardOriginY+height; y++ {
			that.screen.SetContent(gx, y, tcell.RuneVLine, nil, style)
		}

		gy := boardOriginY + line*squareH - 1
		for x := boardOriginX; x < boardOriginX+width; x++ {
			that.screen.SetContent(x, gy, tcell.RuneHLine, nil, style)
		}
	}

	for row := 1; row < board.Size; row++ {
		for col := 1; col < board.Size; col++ {
			that.screen.SetContent(boardOriginX+col*squareW-1, boardOriginY+row*squareH-1, tcell.RunePlus, nil, style)
		}
	}
}

// outcomeStyle colors the board once the game is over: green when X wins,
// red when O wins and gray on a draw.
func outcomeStyle(outcome board.Outcome) tcell.Style {
	switch {
	case outcome.State == board.Win && outcome.Winner == board.PlayerX:
		return styleDefault.Foreground(tcell.ColorGreen)
	case outcome.State == board.Win && outcome.Winner == board.PlayerO:
		return styleDefault.Foreground(tcell.ColorRed)
	case outcome.State == board.Draw:
		return styleDefault.Foreground(tcell.ColorGray)
	default:
		return styleDefault
	}
}

func statusText(game *entity.Game) string {
	outcome := game.Outcome()

	switch outcome.State {
	case board.Win:
		if game.IsWithComputer() && outcome.Winner == entity.ComputerMark {
			return "Computer wins!"
		}

		return fmt.Sprintf("%s wins!", outcome.Winner)
	case board.Draw:
		return "Draw!"
	default:
		return fmt.Sprintf("%s to move", game.Turn)
	}
}

func modeTitle(mode string) string {
	for _, btn := range menuButtons {
		if btn.mode == mode {
			return btn.label
		}
	}

	return mode
}

func allCells() []board.Move {
	moves := make([]board.Move, 0, board.Size*board.Size)
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			moves = append(moves, board.Move{Row: row, Col: col})
		}
	}

	return moves
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

func fillRect(screen tcell.Screen, area rect, style tcell.Style) {
	for y := area.y; y < area.y+area.h; y++ {
		for x := area.x; x < area.x+area.w; x++ {
			screen.SetContent(x, y, ' ', nil, style)
		}
	}
}
