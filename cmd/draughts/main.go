package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"draughts/agent"
	"draughts/engine"
	"draughts/experiments"
	"draughts/game"
	"draughts/meta"
	"draughts/searcher"
	"draughts/server"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "serve", "One of serve, selfplay, strategies or search")
	strategyName := flag.String("strategy", searcher.AlphaBetaOrdering.String(), "Search strategy of the engine")
	duration := flag.Duration("time", meta.TIME_LIMIT, "Time budget per move")
	depth := flag.Int("depth", meta.MAX_DEPTH, "Max search depth")
	addr := flag.String("addr", meta.SERVER_ADDR, "Listen address of the server")
	remote := flag.String("remote", "", "Base URL of a server to play black in selfplay")
	out := flag.String("out", "results", "Directory experiment records are written to")
	debug := flag.Bool("debug", false, "Enable debug logs")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	strategy, err := searcher.ParseStrategy(*strategyName)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid strategy")
	}

	switch *mode {
	case "serve":
		cfg := server.DefaultConfig()
		cfg.Strategy = strategy
		cfg.TimeLimit = *duration
		cfg.MaxDepth = *depth

		app := server.New(cfg, server.NewManager())
		log.Info().Str("addr", *addr).Msg("serving")
		if err := app.Listen(*addr); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}

	case "selfplay":
		newSearchAgent := func(side game.Side) agent.Agent {
			s := searcher.New(searcher.WithSide(side), searcher.WithDuration(*duration), searcher.WithMaxDepth(*depth))
			return agent.NewSearchAgent(s, strategy)
		}
		black := newSearchAgent(game.Black)
		if *remote != "" {
			black = agent.NewRemoteAgent(game.Black, *remote, 2*(*duration)+time.Second)
		}

		e := engine.LocalEngine(newSearchAgent(game.White), black)
		outcome, gameMetric, _ := e.Run()
		fmt.Print(e.Board.String())
		log.Info().Str("outcome", outcome).Int("moves", gameMetric.TotalMoves).Dur("duration", gameMetric.Duration).Msg("selfplay over")

	case "strategies":
		cfg := experiments.StrategyConfig(*out)
		for i := range cfg.Agents {
			if cfg.Agents[i].Strategy != agent.RandomStrategy {
				cfg.Agents[i].Duration = *duration
				cfg.Agents[i].MaxDepth = *depth
			}
		}
		if _, err := experiments.RunStrategyExperiment(cfg); err != nil {
			log.Fatal().Err(err).Msg("strategy experiment failed")
		}

	case "search":
		cfg := experiments.DefaultSearchConfig(*out)
		cfg.MaxDepth = *depth
		if _, err := experiments.RunSearchExperiment(cfg); err != nil {
			log.Fatal().Err(err).Msg("search experiment failed")
		}

	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}
}
