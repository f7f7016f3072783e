package searcher

import (
	"draughts/game"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

const generous = time.Minute

func mustParse(t *testing.T, diagram string) *game.Board {
	t.Helper()
	b, err := game.ParseBoard(diagram)
	require.NoError(t, err)
	return b
}

// midgames plays random plies from the opening and keeps the positions
// where Black is to move and can move
func midgames(t *testing.T, count int) []*game.Board {
	t.Helper()
	r := rand.New(rand.NewSource(11))
	boards := []*game.Board{}
	for len(boards) < count {
		b := game.InitializeBoard()
		side := game.White
		for ply := 0; ply < 13; ply++ {
			moves := b.LegalMoves(side)
			if len(moves) == 0 {
				break
			}
			b = b.Apply(moves[r.Intn(len(moves))])
			side = side.Opponent()
		}
		if side == game.Black && !b.IsTerminal() && len(b.LegalMoves(game.Black)) > 0 {
			boards = append(boards, b)
		}
	}
	return boards
}

func containsMove(moves []game.Move, move game.Move) bool {
	for _, m := range moves {
		if m.Equal(move) {
			return true
		}
	}
	return false
}

func TestChooseMoveOpening(t *testing.T) {
	b := game.InitializeBoard()
	s := New(WithDuration(generous), WithMaxDepth(1))

	move, _, ok := s.ChooseMove(b, AlphaBeta)

	require.True(t, ok)
	require.True(t, containsMove(b.LegalMoves(game.Black), move), "Move %v should be a legal opening move", move)
	require.False(t, move.IsCapture(), "No capture is available in the opening")
	require.Equal(t, 1, s.Stats().Depths)
}

func TestChooseMoveDepthOneIsGreedy(t *testing.T) {
	for _, b := range midgames(t, 3) {
		s := New(WithDuration(generous), WithMaxDepth(1))

		_, score, ok := s.ChooseMove(b, Minimax)
		require.True(t, ok)

		best := -1e18
		for _, move := range b.LegalMoves(game.Black) {
			if v := b.Apply(move).Evaluate(); v > best {
				best = v
			}
		}
		require.Equal(t, best, score, "Depth 1 should pick the best one-ply evaluation")
	}
}

func TestStrategiesAgreeOnScore(t *testing.T) {
	boards := append([]*game.Board{game.InitializeBoard()}, midgames(t, 4)...)

	for _, b := range boards {
		for depth := 1; depth <= 3; depth++ {
			minimax := New(WithDuration(generous), WithMaxDepth(depth))
			alphaBeta := New(WithDuration(generous), WithMaxDepth(depth))
			ordering := New(WithDuration(generous), WithMaxDepth(depth))

			_, minimaxScore, ok := minimax.ChooseMove(b, Minimax)
			require.True(t, ok)
			_, alphaBetaScore, _ := alphaBeta.ChooseMove(b, AlphaBeta)
			_, orderingScore, _ := ordering.ChooseMove(b, AlphaBetaOrdering)

			require.Equal(t, minimaxScore, alphaBetaScore, "Pruning must not change the score at depth %d", depth)
			require.Equal(t, minimaxScore, orderingScore, "Ordering must not change the score at depth %d", depth)

			require.LessOrEqual(t, alphaBeta.Stats().Nodes, minimax.Stats().Nodes)
			require.Zero(t, minimax.Stats().Prunes, "Minimax never prunes")
			require.Zero(t, alphaBeta.Stats().OrderingGains, "Plain alpha-beta has no ordering gains")
			require.Equal(t, ordering.Stats().Prunes, ordering.Stats().OrderingGains,
				"Every cutoff of the ordering search counts as an ordering gain")
		}
	}
}

func TestAlphaBetaMatchesMinimaxMove(t *testing.T) {
	for _, b := range midgames(t, 3) {
		minimax := New(WithDuration(generous), WithMaxDepth(2))
		alphaBeta := New(WithDuration(generous), WithMaxDepth(2))

		minimaxMove, _, _ := minimax.ChooseMove(b, Minimax)
		alphaBetaMove, _, _ := alphaBeta.ChooseMove(b, AlphaBeta)

		require.Equal(t, minimaxMove, alphaBetaMove, "Same traversal order should pick the same move")
	}
}

func TestChooseMoveCompletesAllDepths(t *testing.T) {
	s := New(WithDuration(generous), WithMaxDepth(3))

	_, _, ok := s.ChooseMove(game.InitializeBoard(), AlphaBetaOrdering)

	require.True(t, ok)
	require.Equal(t, 3, s.Stats().Depths)
	require.Positive(t, s.Stats().Nodes)
}

func TestChooseMoveResetsCounters(t *testing.T) {
	b := game.InitializeBoard()
	s := New(WithDuration(generous), WithMaxDepth(2))

	s.ChooseMove(b, AlphaBeta)
	first := s.Stats()
	s.ChooseMove(b, AlphaBeta)
	second := s.Stats()

	require.Equal(t, first.Nodes, second.Nodes, "Counters should not accumulate across calls")
	require.Equal(t, first.Prunes, second.Prunes)
	require.Equal(t, first.Depths, second.Depths)
}

func TestChooseMoveNoLegalMoves(t *testing.T) {
	t.Run("blocked side", func(t *testing.T) {
		b := mustParse(t, `
			.......b
			......w.
			.....w..
			........
			........
			........
			........
			........`)
		s := New(WithDuration(generous), WithMaxDepth(3))

		_, _, ok := s.ChooseMove(b, AlphaBeta)

		require.False(t, ok, "A side with pieces but no moves gets no move")
		require.Zero(t, s.Stats().Nodes)
	})

	t.Run("terminal board", func(t *testing.T) {
		b := mustParse(t, `
			........
			........
			........
			........
			........
			........
			........
			w.......`)

		for _, strategy := range []Strategy{Minimax, AlphaBeta, AlphaBetaOrdering} {
			_, _, ok := New().ChooseMove(b, strategy)
			require.False(t, ok)
		}
	})
}

func TestChooseMoveForWhite(t *testing.T) {
	b := game.InitializeBoard()
	s := New(WithDuration(generous), WithMaxDepth(2), WithSide(game.White))

	move, _, ok := s.ChooseMove(b, AlphaBetaOrdering)

	require.True(t, ok)
	require.True(t, containsMove(b.LegalMoves(game.White), move))
}

func TestChooseMoveTakesTheWin(t *testing.T) {
	// Black can take the last white piece
	b := mustParse(t, `
		........
		........
		........
		....b...
		.....w..
		........
		........
		........`)
	s := New(WithDuration(generous), WithMaxDepth(3))

	move, _, ok := s.ChooseMove(b, AlphaBeta)

	require.True(t, ok)
	require.Equal(t, []game.Square{{Row: 4, Col: 5}}, move.Captured)
}

func TestChooseMoveTimeBudget(t *testing.T) {
	t.Run("budget exhausted before the first depth", func(t *testing.T) {
		b := game.InitializeBoard()
		s := New(WithDuration(time.Second), WithMaxDepth(5))
		start := time.Now()
		calls := 0
		s.now = func() time.Time {
			calls++
			if calls == 1 {
				return start
			}
			return start.Add(time.Hour)
		}

		move, _, ok := s.ChooseMove(b, Minimax)

		require.True(t, ok, "A side that can move always gets a move")
		require.Equal(t, b.LegalMoves(game.Black)[0], move)
		require.Zero(t, s.Stats().Depths)
		require.Zero(t, s.Stats().Nodes)
	})

	t.Run("stops deepening once the budget is spent", func(t *testing.T) {
		b := game.InitializeBoard()
		s := New(WithDuration(time.Second), WithMaxDepth(5))
		current := time.Now()
		s.now = func() time.Time { return current }

		// Spend the budget as soon as the first depth completes
		s.evaluate = func(board *game.Board) float64 {
			if s.metrics.depths == 1 {
				current = current.Add(time.Hour)
			}
			return board.Evaluate()
		}

		_, _, ok := s.ChooseMove(b, AlphaBeta)

		require.True(t, ok)
		require.Equal(t, 1, s.Stats().Depths, "Only the first depth completes within budget")
	})
}

func TestChooseMoveStalemate(t *testing.T) {
	// The black king can take away the white man's last square
	b := mustParse(t, `
		........
		w.......
		...B....
		........
		........
		........
		........
		........`)
	stalemate := game.Move{From: game.Square{Row: 2, Col: 3}, To: game.Square{Row: 0, Col: 1}}

	for _, strategy := range []Strategy{Minimax, AlphaBeta, AlphaBetaOrdering} {
		s := New(WithDuration(generous), WithMaxDepth(2))

		move, score, ok := s.ChooseMove(b, strategy)

		require.True(t, ok)
		require.True(t, move.Equal(stalemate), "%v should block the white man, got %v", strategy, move)
		require.False(t, math.IsInf(score, 0), "Scores should stay finite")
		require.Equal(t, math.MaxFloat64, score, "A stuck opponent keeps its worst value")
		require.Equal(t, 2, s.Stats().Depths)
	}
}

func TestChooseMoveWithoutDepth(t *testing.T) {
	b := game.InitializeBoard()
	s := New(WithDuration(generous), WithMaxDepth(0))

	move, score, ok := s.ChooseMove(b, AlphaBeta)

	require.True(t, ok)
	require.Equal(t, b.LegalMoves(game.Black)[0], move)
	require.Equal(t, b.Apply(move).Evaluate(), score)
	require.Zero(t, s.Stats().Depths)
	require.Zero(t, s.Stats().Nodes)
	require.Zero(t, s.MaxDepth())
}
