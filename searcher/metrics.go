package searcher

import "time"

// SearchMetric holds the counters of the last ChooseMove call.
type SearchMetric struct {
	StartTime     time.Time     `json:"startTime"`
	Duration      time.Duration `json:"duration"`
	Nodes         int64         `json:"nodes"`         // Internal nodes expanded
	Prunes        int64         `json:"prunes"`        // Alpha-beta cutoffs
	OrderingGains int64         `json:"orderingGains"` // Cutoffs at nodes whose children were ordered
	Depths        int           `json:"depths"`        // Depth iterations completed within budget
}

// collector accumulates counters for the single in-flight search. It is
// not safe for concurrent use, searches never run concurrently.
type collector struct {
	startTime     time.Time
	nodes         int64
	prunes        int64
	orderingGains int64
	depths        int
}

func (m *collector) Start(now time.Time) {
	*m = collector{startTime: now}
}

func (m *collector) AddNode() {
	m.nodes++
}

func (m *collector) AddPrune() {
	m.prunes++
}

func (m *collector) AddOrderingGain() {
	m.orderingGains++
}

func (m *collector) CompleteDepth() {
	m.depths++
}

func (m *collector) Complete(now time.Time) SearchMetric {
	return SearchMetric{
		StartTime:     m.startTime,
		Duration:      now.Sub(m.startTime),
		Nodes:         m.nodes,
		Prunes:        m.prunes,
		OrderingGains: m.orderingGains,
		Depths:        m.depths,
	}
}
