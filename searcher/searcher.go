package searcher

import (
	"draughts/game"
	"draughts/meta"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

type Option func(s *Searcher)

// Searcher picks moves for one side with iterative deepening under a soft
// time budget. A Searcher runs one search at a time.
type Searcher struct {
	duration time.Duration
	maxDepth int
	side     game.Side
	evaluate game.Evaluate
	now      func() time.Time
	start    time.Time
	metrics  collector
	last     SearchMetric
}

// WithDuration sets the time budget. It is polled, not enforced, so a
// search may run slightly over. A negative budget is spent before the
// first depth.
func WithDuration(duration time.Duration) Option {
	return func(s *Searcher) {
		s.duration = duration
	}
}

// WithMaxDepth caps iterative deepening. Below 1 no depth is searched and
// ChooseMove falls back to the first legal move.
func WithMaxDepth(depth int) Option {
	return func(s *Searcher) {
		s.maxDepth = depth
	}
}

// WithSide sets the side the searcher moves for. Black maximizes the
// evaluation, White minimizes it.
func WithSide(side game.Side) Option {
	return func(s *Searcher) {
		if side == game.White || side == game.Black {
			s.side = side
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(s *Searcher) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func New(options ...Option) *Searcher {
	s := &Searcher{ // Default values
		duration: meta.TIME_LIMIT,
		maxDepth: meta.MAX_DEPTH,
		side:     game.Black,
		evaluate: game.EvaluateBoard,
		now:      time.Now,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *Searcher) Side() game.Side {
	return s.side
}

func (s *Searcher) MaxDepth() int {
	return s.maxDepth
}

func (s *Searcher) Duration() time.Duration {
	return s.duration
}

// Stats returns the counters of the last ChooseMove call.
func (s *Searcher) Stats() SearchMetric {
	return s.last
}

// ChooseMove searches board at depths 1, 2, ... up to the max depth and
// returns the best move of the deepest iteration that completed within the
// time budget. The budget is checked before every iteration. ok is false
// when the searcher's side cannot move, the score is then meaningless.
func (s *Searcher) ChooseMove(board *game.Board, strategy Strategy) (move game.Move, score float64, ok bool) {
	s.start = s.now()
	s.metrics.Start(s.start)
	defer func() {
		s.last = s.metrics.Complete(s.now())
		log.Debug().
			Str("strategy", strategy.String()).
			Dur("elapsed", s.last.Duration).
			Int64("nodes", s.last.Nodes).
			Int64("prunes", s.last.Prunes).
			Int64("orderingGains", s.last.OrderingGains).
			Int("depths", s.last.Depths).
			Msg("search completed")
	}()

	if board.IsTerminal() || len(board.LegalMoves(s.side)) == 0 {
		return game.Move{}, 0, false
	}

	for depth := 1; depth <= s.maxDepth; depth++ {
		if s.timeExceeded() {
			log.Debug().Int("depth", depth).Msg("time budget exhausted before depth")
			break
		}

		depthScore, depthMove, found := s.search(board, depth, strategy)
		if !found {
			break
		}

		// An iteration cut short by the budget only serves as a fallback
		expired := s.timeExceeded()
		if expired && ok {
			break
		}
		move, score, ok = depthMove, depthScore, true
		if expired {
			break
		}
		s.metrics.CompleteDepth()
		log.Debug().Int("depth", depth).Float64("score", score).Str("move", move.String()).Msg("depth completed")
	}

	if !ok {
		// The budget ran out before the root expanded a single move
		move = board.LegalMoves(s.side)[0]
		score, ok = s.evaluate(board.Apply(move)), true
		log.Warn().Str("move", move.String()).Msg("no depth completed, falling back to the first legal move")
	}

	return move, score, ok
}

// search runs one depth-limited search from the root with the chosen strategy
func (s *Searcher) search(board *game.Board, depth int, strategy Strategy) (float64, game.Move, bool) {
	maximizing := s.side == game.Black
	switch strategy {
	case Minimax:
		return s.minimax(board, depth, maximizing)
	case AlphaBeta:
		return s.alphaBeta(board, depth, lowest, highest, maximizing, false)
	case AlphaBetaOrdering:
		return s.alphaBeta(board, depth, lowest, highest, maximizing, true)
	default:
		panic(fmt.Sprintf("unexpected strategy %v", strategy))
	}
}

func (s *Searcher) timeExceeded() bool {
	return s.now().Sub(s.start) > s.duration
}
