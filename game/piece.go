package game

import (
	"encoding/json"
	"fmt"
)

// Side is one of the two players. White is side A: it starts on rows 5-7
// and moves toward row 0. Black is side B: it starts on rows 0-2 and moves
// toward row 7.
type Side int8

const (
	White Side = 1
	Black Side = -1
)

func (s Side) Opponent() Side {
	return -s
}

func (s Side) String() string {
	switch s {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

func ParseSide(name string) (Side, error) {
	switch name {
	case "white":
		return White, nil
	case "black":
		return Black, nil
	default:
		return 0, fmt.Errorf("unknown side %q", name)
	}
}

func (s Side) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Side) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	side, err := ParseSide(name)
	if err != nil {
		return err
	}
	*s = side
	return nil
}

// forward is the row delta a man of this side moves along
func (s Side) forward() int {
	if s == White {
		return -1
	}
	return 1
}

func (s Side) promotionRow() int {
	if s == White {
		return 0
	}
	return Size - 1
}

func (s Side) backRow() int {
	return Size - 1 - s.promotionRow()
}

// Piece is the content of a single cell. The sign gives the side and the
// magnitude the rank (1 man, 2 king).
type Piece int8

const (
	Empty     Piece = 0
	WhiteMan  Piece = 1
	WhiteKing Piece = 2
	BlackMan  Piece = -1
	BlackKing Piece = -2
)

// Side returns the owner of the piece. It is meaningless for Empty.
func (p Piece) Side() Side {
	if p < 0 {
		return Black
	}
	return White
}

func (p Piece) BelongsTo(s Side) bool {
	return p != Empty && p.Side() == s
}

func (p Piece) IsMan() bool {
	return p == WhiteMan || p == BlackMan
}

func (p Piece) IsKing() bool {
	return p == WhiteKing || p == BlackKing
}

// opposes reports whether q is a piece of the other side
func (p Piece) opposes(q Piece) bool {
	return p != Empty && q != Empty && p.Side() != q.Side()
}

func (p Piece) crowned() Piece {
	if p.IsMan() {
		return p * 2
	}
	return p
}

func (p Piece) rune() rune {
	switch p {
	case WhiteMan:
		return 'w'
	case WhiteKing:
		return 'W'
	case BlackMan:
		return 'b'
	case BlackKing:
		return 'B'
	default:
		return '.'
	}
}

func pieceFromRune(r rune) (Piece, error) {
	switch r {
	case '.':
		return Empty, nil
	case 'w':
		return WhiteMan, nil
	case 'W':
		return WhiteKing, nil
	case 'b':
		return BlackMan, nil
	case 'B':
		return BlackKing, nil
	default:
		return Empty, fmt.Errorf("unknown piece symbol %q", r)
	}
}
