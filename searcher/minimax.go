package searcher

import (
	"draughts/game"
	"math"
)

// minimax returns the minimax value of board searched depth plies deep and
// the move achieving it. Depth 0, a terminal board or an exhausted budget
// end the recursion with the static evaluation and no move.
func (s *Searcher) minimax(board *game.Board, depth int, maximizing bool) (float64, game.Move, bool) {
	if depth == 0 || board.IsTerminal() || s.timeExceeded() {
		return s.evaluate(board), game.Move{}, false
	}
	s.metrics.AddNode()

	side, value := turn(maximizing)
	var best game.Move
	found := false
	for _, move := range board.LegalMoves(side) {
		score, _, _ := s.minimax(board.Apply(move), depth-1, !maximizing)
		if !found || improves(score, value, maximizing) {
			value, best, found = score, move, true
		}
	}
	return value, best, found
}

// Extremes of the score range. They stay finite so a stalemate score can
// still be encoded.
const (
	lowest  = -math.MaxFloat64
	highest = math.MaxFloat64
)

// turn maps the maximizing flag to the side to move and the worst value
// for it. A side without moves keeps that value.
func turn(maximizing bool) (game.Side, float64) {
	if maximizing {
		return game.Black, lowest
	}
	return game.White, highest
}

func improves(score, value float64, maximizing bool) bool {
	if maximizing {
		return score > value
	}
	return score < value
}
