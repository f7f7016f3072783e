package experiments

import (
	"fmt"
	"time"

	"draughts/experiments/metrics"
	"draughts/game"
	"draughts/meta"
	"draughts/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type SearchConfig struct {
	Name      string
	Root      string
	Positions int
	Plies     int // Random plies played to reach each position, odd so black is to move
	MaxDepth  int
	Seed      uint64
}

func DefaultSearchConfig(root string) SearchConfig {
	return SearchConfig{
		Name:      "search",
		Root:      root,
		Positions: 20,
		Plies:     11,
		MaxDepth:  meta.MAX_DEPTH + 1,
		Seed:      1,
	}
}

// RunSearchExperiment searches the same random positions with every
// strategy at every depth up to cfg.MaxDepth and records the node and
// cutoff counters. The budget is unbounded so every depth completes.
func RunSearchExperiment(cfg SearchConfig) (string, error) {
	positions := randomPositions(cfg.Positions, cfg.Plies, cfg.Seed)
	strategies := []searcher.Strategy{searcher.Minimax, searcher.AlphaBeta, searcher.AlphaBetaOrdering}
	records := []metrics.SearchRecord{}

	log.Info().Msgf("starting %s experiment on %d positions...", cfg.Name, len(positions))
	start := time.Now()

	for pi, position := range positions {
		for depth := 1; depth <= cfg.MaxDepth; depth++ {
			for _, strategy := range strategies {
				s := searcher.New(searcher.WithMaxDepth(depth), searcher.WithDuration(time.Hour))
				move, score, _ := s.ChooseMove(position, strategy)
				records = append(records, metrics.SearchRecord{
					Position:     pi + 1,
					Strategy:     strategy.String(),
					Depth:        depth,
					Move:         move.String(),
					Score:        score,
					SearchMetric: s.Stats(),
				})
			}
		}
		log.Debug().Msgf("completed position %d of %d", pi+1, len(positions))
	}

	writer, err := metrics.NewWriter(cfg.Root, cfg.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	end := time.Now()
	err = writer.WriteSetup(metrics.Setup{
		Name:      cfg.Name,
		Seed:      cfg.Seed,
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
	})
	if err != nil {
		return "", err
	}
	if err := writer.WriteSearchRecords(records); err != nil {
		return "", err
	}
	log.Info().Str("dir", writer.Dir()).Msgf("completed %s experiment", cfg.Name)
	return writer.Dir(), nil
}

// randomPositions plays random games from the initial position and keeps
// those where black still has a move after plies plies.
func randomPositions(count, plies int, seed uint64) []*game.Board {
	rng := rand.New(rand.NewSource(seed))
	positions := []*game.Board{}
	for attempts := 0; len(positions) < count && attempts < count*10; attempts++ {
		b := game.InitializeBoard()
		side := game.White
		for i := 0; i < plies && !b.IsTerminal(); i++ {
			moves := b.LegalMoves(side)
			if len(moves) == 0 {
				break
			}
			b = b.Apply(moves[rng.Intn(len(moves))])
			side = side.Opponent()
		}
		if side == game.Black && !b.IsTerminal() && len(b.LegalMoves(game.Black)) > 0 {
			positions = append(positions, b)
		}
	}
	return positions
}
