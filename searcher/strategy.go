package searcher

import "fmt"

// Strategy selects the tree search run at every depth of ChooseMove.
type Strategy int

const (
	Minimax Strategy = iota
	AlphaBeta
	AlphaBetaOrdering // Alpha-beta with children sorted by a one-ply lookahead
)

var strategyNames = map[Strategy]string{
	Minimax:           "minimax",
	AlphaBeta:         "alphabeta",
	AlphaBetaOrdering: "alphabeta_ordering",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

func ParseStrategy(name string) (Strategy, error) {
	for strategy, n := range strategyNames {
		if n == name {
			return strategy, nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q", name)
}

func (s Strategy) MarshalText() ([]byte, error) {
	if _, ok := strategyNames[s]; !ok {
		return nil, fmt.Errorf("unknown strategy %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
