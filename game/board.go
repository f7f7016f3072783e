package game

import (
	"encoding/binary"
	"hash/fnv"
)

// Board is an 8x8 draughts position. Boards are values: operations that
// change the position return a fresh copy and leave the receiver untouched.
type Board struct {
	cells [Size][Size]Piece
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// InitializeBoard returns the standard starting position: Black men on the
// dark squares of rows 0-2 and White men on the dark squares of rows 5-7.
func InitializeBoard() *Board {
	b := NewBoard()
	for row := 0; row < 3; row++ {
		for col := 0; col < Size; col++ {
			if (row+col)%2 == 1 {
				b.cells[row][col] = BlackMan
			}
		}
	}
	for row := Size - 3; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if (row+col)%2 == 1 {
				b.cells[row][col] = WhiteMan
			}
		}
	}
	return b
}

func (b *Board) Clone() *Board {
	clone := *b
	return &clone
}

func (b *Board) At(sq Square) Piece {
	return b.cells[sq.Row][sq.Col]
}

// Set places p on sq. It is meant for building positions, search code
// should go through Apply.
func (b *Board) Set(sq Square, p Piece) {
	b.cells[sq.Row][sq.Col] = p
}

func (b *Board) PieceCount(side Side) int {
	count := 0
	for row := range b.cells {
		for _, piece := range b.cells[row] {
			if piece.BelongsTo(side) {
				count++
			}
		}
	}
	return count
}

func (b *Board) TotalPieces() int {
	return b.PieceCount(White) + b.PieceCount(Black)
}

// IsTerminal reports whether either side has run out of pieces. A side
// that has pieces but no legal moves is not terminal here, LegalMoves
// signals that case with an empty result.
func (b *Board) IsTerminal() bool {
	return b.PieceCount(White) == 0 || b.PieceCount(Black) == 0
}

// Winner returns the side that still has pieces on a terminal board.
func (b *Board) Winner() (Side, bool) {
	white, black := b.PieceCount(White), b.PieceCount(Black)
	switch {
	case white == 0 && black > 0:
		return Black, true
	case black == 0 && white > 0:
		return White, true
	default:
		return 0, false
	}
}

// Apply returns the board after m: the origin is cleared, the piece lands
// on the destination, captured squares are emptied and finally a man
// reaching its promotion row is crowned.
func (b *Board) Apply(m Move) *Board {
	next := b.Clone()
	piece := next.At(m.From)
	next.Set(m.From, Empty)
	next.Set(m.To, piece)

	for _, sq := range m.Captured {
		next.Set(sq, Empty)
	}

	if piece.IsMan() && m.To.Row == piece.Side().promotionRow() {
		next.Set(m.To, piece.crowned())
	}
	return next
}

// Hash returns the position key of this board with toMove to play.
func (b *Board) Hash(toMove Side) StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int8(toMove))
	for row := range b.cells {
		for _, piece := range b.cells[row] {
			binary.Write(hasher, binary.LittleEndian, int8(piece))
		}
	}

	return StateHash(hasher.Sum64())
}
