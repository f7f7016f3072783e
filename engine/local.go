package engine

import (
	"draughts/agent"
	"draughts/experiments/metrics"
	"draughts/game"
	"draughts/meta"

	"github.com/rs/zerolog/log"
)

type Option func(e *Local)

// Local plays two agents against each other in process. White moves first.
type Local struct {
	Board        *game.Board
	History      []Update
	agents       map[game.Side]agent.Agent
	openers      map[game.Side]agent.Agent
	openingPlies int
	maxTurns     int
	collector    metrics.Collector
}

func WithBoard(b *game.Board) Option {
	return func(e *Local) {
		if b != nil {
			e.Board = b.Clone()
		}
	}
}

func WithMaxTurns(turns int) Option {
	return func(e *Local) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

// WithOpening plays the first plies with random agents seeded by seed so
// repeated games between the same agents diverge.
func WithOpening(plies int, seed uint64) Option {
	return func(e *Local) {
		if plies > 0 {
			e.openingPlies = plies
			e.openers = map[game.Side]agent.Agent{
				game.White: agent.NewRandomAgent(game.White, seed),
				game.Black: agent.NewRandomAgent(game.Black, seed+1),
			}
		}
	}
}

func LocalEngine(white, black agent.Agent, options ...Option) *Local {
	if white.Side() != game.White || black.Side() != game.Black {
		panic("agents do not play the sides they are seated on")
	}

	e := &Local{
		Board:     game.InitializeBoard(),
		History:   []Update{},
		agents:    map[game.Side]agent.Agent{game.White: white, game.Black: black},
		maxTurns:  meta.MAX_TURNS,
		collector: metrics.NewCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the entire game loop.
func (e *Local) Run() (string, metrics.GameMetric, []metrics.MoveMetric) {
	side := game.White
	e.collector.Start(side)
	log.Debug().Msgf("%s is starting", side)

	for turn := 1; turn <= e.maxTurns && !e.Board.IsTerminal(); turn++ {
		player := e.agents[side]
		if turn <= e.openingPlies {
			player = e.openers[side]
		}

		decision, ok := player.FindMove(e.Board)
		if !ok {
			log.Debug().Msgf("%s has no legal moves", side)
			break
		}
		if !isLegal(e.Board, side, decision.Move) {
			log.Warn().Str("move", decision.Move.String()).Msgf("%s agent returned an illegal move, forcing the first legal move", side)
			decision.Move = e.Board.LegalMoves(side)[0]
		}

		e.Board = e.Board.Apply(decision.Move)
		e.History = append(e.History, Update{
			Move: decision.Move,
			Side: side,
			Hash: e.Board.Hash(side.Opponent()),
		})
		e.collector.AddMove(metrics.MoveMetric{
			Step:         turn,
			Side:         side,
			Strategy:     decision.Strategy,
			Move:         decision.Move.String(),
			Score:        decision.Score,
			SearchMetric: decision.Metric,
		})

		side = side.Opponent()
	}

	outcome := Outcome(e.Board)
	gameMetric, moveMetrics := e.collector.Complete(outcome)
	log.Debug().Str("outcome", outcome).Int("moves", gameMetric.TotalMoves).Msg("game over")
	return outcome, gameMetric, moveMetrics
}
