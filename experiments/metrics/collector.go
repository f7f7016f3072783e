package metrics

import (
	"draughts/game"
	"draughts/searcher"
	"time"
)

// Outcomes of a game
const (
	WhiteWins = "white"
	BlackWins = "black"
	Draw      = "draw"
)

type AgentConfig struct {
	ID       int
	Strategy string // A searcher strategy name, or "random"
	Duration time.Duration
	MaxDepth int
}

// MoveMetric records one ply and the search counters behind it.
type MoveMetric struct {
	Step     int
	Side     game.Side
	Strategy string
	Move     string
	Score    float64
	searcher.SearchMetric
}

type GameMetric struct {
	StartingSide game.Side
	Outcome      string
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	TotalMoves   int
}

// Collector accumulates the metrics of a single game as it is played.
type Collector interface {
	Start(starting game.Side)
	AddMove(metric MoveMetric)
	Complete(outcome string) (GameMetric, []MoveMetric)
}

type collector struct {
	starting  game.Side
	startTime time.Time
	moves     []MoveMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(starting game.Side) {
	c.starting = starting
	c.startTime = time.Now()
	c.moves = []MoveMetric{}
}

func (c *collector) AddMove(metric MoveMetric) {
	c.moves = append(c.moves, metric)
}

func (c *collector) Complete(outcome string) (GameMetric, []MoveMetric) {
	end := time.Now()
	return GameMetric{
		StartingSide: c.starting,
		Outcome:      outcome,
		StartTime:    c.startTime,
		EndTime:      end,
		Duration:     end.Sub(c.startTime),
		TotalMoves:   len(c.moves),
	}, c.moves
}
