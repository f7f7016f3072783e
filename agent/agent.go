package agent

import (
	"draughts/game"
	"draughts/searcher"
)

// Decision is the move an agent settled on together with how it got there.
type Decision struct {
	Move     game.Move
	Score    float64
	Strategy string
	Metric   searcher.SearchMetric
}

type Agent interface {
	Side() game.Side
	// FindMove returns the move to play on board, ok is false when the
	// agent's side has no legal move
	FindMove(board *game.Board) (decision Decision, ok bool)
}
