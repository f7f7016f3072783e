package agent

import (
	"draughts/game"

	"golang.org/x/exp/rand"
)

const RandomStrategy = "random"

type randomAgent struct {
	side game.Side
	rng  *rand.Rand
}

// NewRandomAgent returns an agent that plays a uniformly random legal move.
// Agents with the same seed play the same moves.
func NewRandomAgent(side game.Side, seed uint64) Agent {
	return &randomAgent{side: side, rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) Side() game.Side {
	return a.side
}

func (a *randomAgent) FindMove(board *game.Board) (Decision, bool) {
	moves := board.LegalMoves(a.side)
	if len(moves) == 0 {
		return Decision{Strategy: RandomStrategy}, false
	}
	move := moves[a.rng.Intn(len(moves))]
	return Decision{
		Move:     move,
		Score:    board.Apply(move).Evaluate(),
		Strategy: RandomStrategy,
	}, true
}
