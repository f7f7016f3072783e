package game

import "math"

// Heuristic weights
const (
	MaterialWeight   = 10
	ManCenterWeight  = 0.05
	KingCenterWeight = 0.1
	BackRowBonus     = 0.1
	MobilityWeight   = 0.1
	EndgamePieces    = 3   // A side with this many pieces or fewer means endgame
	EndgameFactor    = 1.5 // Endgame amplification of the whole score
)

// EvaluateBoard is the default Evaluate function.
func EvaluateBoard(b *Board) float64 {
	return b.Evaluate()
}

// Evaluate scores the board from Black's point of view: material counts
// most, followed by center control, back-row men and mobility. The whole
// score is amplified once either side is down to EndgamePieces pieces.
// Terms are summed positional first in row-major order, then mobility, then
// material.
func (b *Board) Evaluate() float64 {
	score := 0.0
	material := 0

	whiteMobility := len(b.LegalMoves(White))
	blackMobility := len(b.LegalMoves(Black))

	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			piece := b.cells[row][col]
			switch piece {
			case WhiteMan:
				material -= 1
				score -= positionalValue(row, col, piece)
			case WhiteKing:
				material -= 2
				score -= positionalValue(row, col, piece)
			case BlackMan:
				material += 1
				score += positionalValue(row, col, piece)
			case BlackKing:
				material += 2
				score += positionalValue(row, col, piece)
			}
		}
	}

	score += float64(blackMobility-whiteMobility) * MobilityWeight
	score += float64(material * MaterialWeight)

	if b.isEndgame() {
		score *= EndgameFactor
	}
	return score
}

// positionalValue rewards center control, kings twice as much as men, and
// men that still guard their own back row.
func positionalValue(row, col int, piece Piece) float64 {
	centerDistance := math.Abs(3.5-float64(row)) + math.Abs(3.5-float64(col))

	if piece.IsKing() {
		return (7 - centerDistance) * KingCenterWeight
	}

	centerBonus := (7 - centerDistance) * ManCenterWeight
	backRow := 0.0
	if row == piece.Side().backRow() {
		backRow = BackRowBonus
	}
	return centerBonus + backRow
}

func (b *Board) isEndgame() bool {
	return b.PieceCount(White) <= EndgamePieces || b.PieceCount(Black) <= EndgamePieces
}
