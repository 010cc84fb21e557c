// Package minimax picks moves for the computer player by searching the whole
// game tree from the current position.
package minimax

import (
	"github.com/rocketscienceinc/tictactoe-minimax/internal/board"
)

// Scores are depth independent: a win found at ply 1 and a win found at ply 7
// are worth the same.
const (
	ScoreWin  = 100
	ScoreLoss = -100
	ScoreDraw = 0

	// bounds lie outside every reachable score.
	minBound = -1000
	maxBound = 1000
)

// Result describes a finished search.
type Result struct {
	Move  board.Move
	Score int
	Nodes int
	Found bool
}

// Searcher runs the search. Pruning enables alpha-beta cutoffs, which reduce
// Nodes but never change the chosen move.
type Searcher struct {
	Pruning bool
}

// BestMove returns the move with the best worst-case score for player, using
// the exhaustive search. It reports false when the board has no empty cell.
func BestMove(b *board.Board, player board.Cell) (board.Move, bool) {
	res := Searcher{}.Search(b, player)

	return res.Move, res.Found
}

// Evaluate scores b from maximizer's point of view. maximizing tells whose
// turn it is: maximizer's when true, the opponent's otherwise.
func Evaluate(b *board.Board, maximizer board.Cell, maximizing bool) int {
	s := &search{maximizer: maximizer}

	return s.evaluate(b, maximizing, minBound, maxBound)
}

// Search tries every empty cell in row-major order and keeps the first one
// with the strictly greatest score. b is mutated during the search and
// restored before Search returns.
func (that Searcher) Search(b *board.Board, player board.Cell) Result {
	s := &search{maximizer: player, pruning: that.Pruning}
	res := Result{Score: minBound}

	for _, move := range b.EmptyCells() {
		var score int
		_ = b.Try(move, player, func() {
			// at the root beta stays open, so a child that beats res.Score
			// is scored exactly.
			score = s.evaluate(b, false, res.Score, maxBound)
		})

		if score > res.Score {
			res.Score = score
			res.Move = move
			res.Found = true
		}
	}

	res.Nodes = s.nodes
	if !res.Found {
		res.Score = ScoreDraw
	}

	return res
}

type search struct {
	maximizer board.Cell
	pruning   bool
	nodes     int
}

func (that *search) evaluate(b *board.Board, maximizing bool, alpha, beta int) int {
	that.nodes++

	switch {
	case b.CheckWin(that.maximizer):
		return ScoreWin
	case b.CheckWin(that.maximizer.Opponent()):
		return ScoreLoss
	case b.IsFull():
		return ScoreDraw
	}

	mark := that.maximizer
	best := minBound
	if !maximizing {
		mark = that.maximizer.Opponent()
		best = maxBound
	}

	for _, move := range b.EmptyCells() {
		var score int
		_ = b.Try(move, mark, func() {
			score = that.evaluate(b, !maximizing, alpha, beta)
		})

		if maximizing {
			best = max(best, score)
			alpha = max(alpha, best)
		} else {
			best = min(best, score)
			beta = min(beta, best)
		}

		if that.pruning && alpha >= beta {
			break
		}
	}

	return best
}
