package terminal

import (
	"github.com/rocketscienceinc/tictactoe-minimax/internal/board"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	boardOriginX = 2
	boardOriginY = 3

	// squareW and squareH include the grid line on the right and bottom.
	squareW = 8
	squareH = 4

	infoText = "R = Reset Board  |  ESC = Main Menu"
)

var (
	infoLineY   = boardOriginY + board.Size*squareH
	statusLineY = infoLineY + 1
)

type rect struct {
	x, y, w, h int
}

func (that rect) contains(x, y int) bool {
	return x >= that.x && x < that.x+that.w && y >= that.y && y < that.y+that.h
}

type button struct {
	label string
	mode  string
	rect  rect
}

var menuButtons = []button{
	{label: "Player vs. Player", mode: entity.ModePlayers, rect: rect{x: 2, y: 3, w: 23, h: 3}},
	{label: "Player vs. AI", mode: entity.ModeComputer, rect: rect{x: 2, y: 7, w: 23, h: 3}},
}

// buttonAt returns the menu button under (x, y).
func buttonAt(x, y int) (button, bool) {
	for _, btn := range menuButtons {
		if btn.rect.contains(x, y) {
			return btn, true
		}
	}

	return button{}, false
}

// cellAt maps screen coordinates to a board cell. Grid lines belong to no cell.
func cellAt(x, y int) (board.Move, bool) {
	dx, dy := x-boardOriginX, y-boardOriginY
	if dx < 0 || dy < 0 {
		return board.Move{}, false
	}

	move := board.Move{Row: dy / squareH, Col: dx / squareW}
	if move.Row >= board.Size || move.Col >= board.Size {
		return board.Move{}, false
	}

	if dx%squareW == squareW-1 || dy%squareH == squareH-1 {
		return board.Move{}, false
	}

	return move, true
}

// cellCenter is where the mark of a cell is drawn.
func cellCenter(move board.Move) (int, int) {
	return boardOriginX + move.Col*squareW + (squareW-1)/2,
		boardOriginY + move.Row*squareH + (squareH-1)/2
}
