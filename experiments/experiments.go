package experiments

import (
	"fmt"
	"time"

	"draughts/agent"
	"draughts/engine"
	"draughts/experiments/metrics"
	"draughts/game"
	"draughts/meta"
	"draughts/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const (
	NumGames   = 10 // Per matchup
	TimeBudget = 500 * time.Millisecond
)

type Config struct {
	Name         string
	Root         string // Records go to Root/Name/<timestamp>
	Agents       []metrics.AgentConfig
	NumGames     int
	OpeningPlies int
	MaxTurns     int
	Seed         uint64
}

// StrategyConfig pits every search strategy and a random baseline against
// each other under the same budget.
func StrategyConfig(root string) Config {
	return Config{
		Name: "strategies",
		Root: root,
		Agents: []metrics.AgentConfig{
			{ID: 0, Strategy: agent.RandomStrategy},
			{ID: 1, Strategy: searcher.Minimax.String(), Duration: TimeBudget, MaxDepth: meta.MAX_DEPTH},
			{ID: 2, Strategy: searcher.AlphaBeta.String(), Duration: TimeBudget, MaxDepth: meta.MAX_DEPTH},
			{ID: 3, Strategy: searcher.AlphaBetaOrdering.String(), Duration: TimeBudget, MaxDepth: meta.MAX_DEPTH},
		},
		NumGames:     NumGames,
		OpeningPlies: meta.OPENING_PLIES,
		MaxTurns:     meta.MAX_TURNS,
		Seed:         1,
	}
}

// RunStrategyExperiment plays cfg.NumGames games for every ordered pair of
// distinct agents, the first playing white, and returns the directory the
// records were written to.
func RunStrategyExperiment(cfg Config) (string, error) {
	matchUps := [][]metrics.AgentConfig{}
	for _, white := range cfg.Agents {
		for _, black := range cfg.Agents {
			if white.ID != black.ID {
				matchUps = append(matchUps, []metrics.AgentConfig{white, black})
			}
		}
	}
	return runExperiment(cfg, matchUps)
}

func runExperiment(cfg Config, matchUps [][]metrics.AgentConfig) (string, error) {
	setup := metrics.Setup{
		Name:      cfg.Name,
		Agents:    cfg.Agents,
		Matchups:  matchUps,
		NumGames:  cfg.NumGames,
		Seed:      cfg.Seed,
		StartTime: time.Now(),
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", cfg.Name)

	for mi, matchup := range matchUps {
		white, black := matchup[0], matchup[1]
		log.Info().Msgf("starting matchup %d of %d between white=%+v and black=%+v...", mi+1, len(matchUps), white, black)

		for i := 0; i < cfg.NumGames; i++ {
			count++
			seed := rng.Uint64()
			e := engine.LocalEngine(
				createAgent(white, game.White, seed),
				createAgent(black, game.Black, seed),
				engine.WithOpening(cfg.OpeningPlies, seed),
				engine.WithMaxTurns(cfg.MaxTurns),
			)
			outcome, gameMetric, moveMetrics := e.Run()

			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				White:      white.ID,
				Black:      black.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with outcome: %s", mi+1, len(matchUps), i+1, outcome)
		}
	}

	setup.EndTime = time.Now()
	setup.Duration = setup.EndTime.Sub(setup.StartTime)
	log.Info().Dur("duration", setup.Duration).Msgf("completed %s experiment", cfg.Name)

	writer, err := metrics.NewWriter(cfg.Root, cfg.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteSetup(setup); err != nil {
		return "", err
	}
	if err := writer.WriteAgentConfigs(cfg.Agents); err != nil {
		return "", err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", err
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment records")
	return writer.Dir(), nil
}

// createAgent panics on an unknown strategy name.
func createAgent(config metrics.AgentConfig, side game.Side, seed uint64) agent.Agent {
	if config.Strategy == agent.RandomStrategy {
		if side == game.Black {
			seed++
		}
		return agent.NewRandomAgent(side, seed)
	}

	strategy, err := searcher.ParseStrategy(config.Strategy)
	if err != nil {
		panic(fmt.Sprintf("agent %d: %v", config.ID, err))
	}
	options := []searcher.Option{searcher.WithSide(side)}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.MaxDepth > 0 {
		options = append(options, searcher.WithMaxDepth(config.MaxDepth))
	}
	return agent.NewSearchAgent(searcher.New(options...), strategy)
}
