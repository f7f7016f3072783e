package engine

import (
	"draughts/experiments/metrics"
	"draughts/game"
)

type Engine interface {
	// Run plays a game until a side runs out of pieces, the side to move is
	// stuck or the turn limit is reached
	Run() (outcome string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

// Update is a played ply and the position key it led to.
type Update struct {
	Move game.Move      `json:"move"`
	Side game.Side      `json:"side"`
	Hash game.StateHash `json:"hash"`
}

// Outcome names the result of a finished game. A board where both sides
// still have pieces is a draw: a stuck side or the turn limit ends the game
// without a winner.
func Outcome(b *game.Board) string {
	winner, ok := b.Winner()
	if !ok {
		return metrics.Draw
	}
	if winner == game.White {
		return metrics.WhiteWins
	}
	return metrics.BlackWins
}

func isLegal(b *game.Board, side game.Side, move game.Move) bool {
	for _, legal := range b.LegalMoves(side) {
		if legal.Equal(move) {
			return true
		}
	}
	return false
}
