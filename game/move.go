package game

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Square is a zero-based (row, column) coordinate.
type Square struct {
	Row int
	Col int
}

func (s Square) OnBoard() bool {
	return s.Row >= 0 && s.Row < Size && s.Col >= 0 && s.Col < Size
}

// step moves n cells along direction d
func (s Square) step(d direction, n int) Square {
	return Square{Row: s.Row + d.row*n, Col: s.Col + d.col*n}
}

func (s Square) String() string {
	return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
}

// Squares travel as [row, col] pairs.
func (s Square) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{s.Row, s.Col})
}

func (s *Square) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("square must be a [row, col] pair: %w", err)
	}
	s.Row, s.Col = pair[0], pair[1]
	return nil
}

type direction struct {
	row int
	col int
}

var diagonals = [4]direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

// Move moves the piece on From to To, removing every piece on Captured in
// the order they were jumped.
type Move struct {
	From     Square   `json:"from"`
	To       Square   `json:"to"`
	Captured []Square `json:"captured"`
}

func (m Move) IsCapture() bool {
	return len(m.Captured) > 0
}

func (m Move) Equal(other Move) bool {
	return m.From == other.From && m.To == other.To && slices.Equal(m.Captured, other.Captured)
}

func (m Move) String() string {
	var sb strings.Builder
	sb.WriteString(m.From.String())
	sb.WriteString("->")
	sb.WriteString(m.To.String())
	if m.IsCapture() {
		sb.WriteString(" x")
		for _, sq := range m.Captured {
			sb.WriteString(sq.String())
		}
	}
	return sb.String()
}
