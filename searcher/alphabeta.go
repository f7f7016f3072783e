package searcher

import (
	"cmp"
	"draughts/game"
	"math"

	"golang.org/x/exp/slices"
)

// alphaBeta visits the tree in the same order as minimax and returns the
// same value, skipping the remaining children of a node once beta <= alpha.
// With ordered set, children are sorted by the evaluation of the position
// they lead to before being searched.
func (s *Searcher) alphaBeta(board *game.Board, depth int, alpha, beta float64, maximizing, ordered bool) (float64, game.Move, bool) {
	if depth == 0 || board.IsTerminal() || s.timeExceeded() {
		return s.evaluate(board), game.Move{}, false
	}
	s.metrics.AddNode()

	side, value := turn(maximizing)
	moves := board.LegalMoves(side)
	if ordered {
		moves = s.orderMoves(board, moves, maximizing)
	}

	var best game.Move
	found := false
	for _, move := range moves {
		score, _, _ := s.alphaBeta(board.Apply(move), depth-1, alpha, beta, !maximizing, ordered)
		if !found || improves(score, value, maximizing) {
			value, best, found = score, move, true
		}

		if maximizing {
			alpha = math.Max(alpha, value)
		} else {
			beta = math.Min(beta, value)
		}
		if beta <= alpha {
			s.metrics.AddPrune()
			if ordered {
				s.metrics.AddOrderingGain()
			}
			break
		}
	}
	return value, best, found
}

type scoredMove struct {
	move  game.Move
	score float64
}

// orderMoves stable-sorts moves by one-ply lookahead, best first for the
// side to move
func (s *Searcher) orderMoves(board *game.Board, moves []game.Move, maximizing bool) []game.Move {
	scored := make([]scoredMove, len(moves))
	for i, move := range moves {
		scored[i] = scoredMove{move: move, score: s.evaluate(board.Apply(move))}
	}

	slices.SortStableFunc(scored, func(a, b scoredMove) int {
		if maximizing {
			return cmp.Compare(b.score, a.score)
		}
		return cmp.Compare(a.score, b.score)
	})

	ordered := make([]game.Move, len(scored))
	for i, sm := range scored {
		ordered[i] = sm.move
	}
	return ordered
}
