package agent

import (
	"draughts/game"
	"draughts/searcher"
)

type searchAgent struct {
	searcher *searcher.Searcher
	strategy searcher.Strategy
}

// NewSearchAgent returns an agent that plays the searcher's choice under
// strategy.
func NewSearchAgent(s *searcher.Searcher, strategy searcher.Strategy) Agent {
	return searchAgent{searcher: s, strategy: strategy}
}

func (a searchAgent) Side() game.Side {
	return a.searcher.Side()
}

func (a searchAgent) FindMove(board *game.Board) (Decision, bool) {
	move, score, ok := a.searcher.ChooseMove(board, a.strategy)
	return Decision{
		Move:     move,
		Score:    score,
		Strategy: a.strategy.String(),
		Metric:   a.searcher.Stats(),
	}, ok
}
