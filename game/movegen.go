package game

import "golang.org/x/exp/slices"

// Capture is one capture chain reachable from a square: where the piece
// ends up and the enemy squares it jumps, in order.
type Capture struct {
	To       Square
	Captured []Square
}

// LegalMoves returns every move side may play. Capturing is mandatory: if
// any piece of side can capture, only capturing moves are returned. Chains
// of every length are returned, the longest capture is not enforced.
func (b *Board) LegalMoves(side Side) []Move {
	var moves []Move

	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			from := Square{Row: row, Col: col}
			piece := b.At(from)
			if !piece.BelongsTo(side) {
				continue
			}
			for _, c := range b.FindCaptures(from, piece, nil) {
				moves = append(moves, Move{From: from, To: c.To, Captured: c.Captured})
			}
		}
	}
	if len(moves) > 0 {
		return moves
	}

	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			from := Square{Row: row, Col: col}
			piece := b.At(from)
			if !piece.BelongsTo(side) {
				continue
			}
			moves = b.appendSimpleMoves(moves, from, piece)
		}
	}
	return moves
}

func (b *Board) appendSimpleMoves(moves []Move, from Square, piece Piece) []Move {
	if piece.IsMan() {
		forward := piece.Side().forward()
		for _, d := range [2]direction{{forward, -1}, {forward, 1}} {
			to := from.step(d, 1)
			if to.OnBoard() && b.At(to) == Empty {
				moves = append(moves, Move{From: from, To: to})
			}
		}
		return moves
	}

	// Kings slide until blocked, every empty square on the way is a move
	for _, d := range diagonals {
		for n := 1; ; n++ {
			to := from.step(d, n)
			if !to.OnBoard() || b.At(to) != Empty {
				break
			}
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

// FindCaptures enumerates the capture chains piece can make starting from
// from. Squares in captured belong to the chain being built and are never
// jumped again. Each chain that cannot be extended further is returned,
// including single jumps.
func (b *Board) FindCaptures(from Square, piece Piece, captured []Square) []Capture {
	var chains []Capture

	for _, d := range captureDirections(piece) {
		if piece.IsMan() {
			enemy := from.step(d, 1)
			landing := from.step(d, 2)
			if !enemy.OnBoard() || !landing.OnBoard() {
				continue
			}
			if piece.opposes(b.At(enemy)) && b.At(landing) == Empty && !slices.Contains(captured, enemy) {
				chains = b.extendChain(chains, from, enemy, landing, piece, captured)
			}
			continue
		}

		// A king slides up to the first occupied square, jumps it if it is an
		// uncaptured enemy and may land on any empty square beyond it
		for n := 1; ; n++ {
			enemy := from.step(d, n)
			if !enemy.OnBoard() {
				break
			}
			target := b.At(enemy)
			if target == Empty {
				continue
			}
			if piece.opposes(target) && !slices.Contains(captured, enemy) {
				for m := n + 1; ; m++ {
					landing := from.step(d, m)
					if !landing.OnBoard() || b.At(landing) != Empty {
						break
					}
					chains = b.extendChain(chains, from, enemy, landing, piece, captured)
				}
			}
			break
		}
	}

	return chains
}

// extendChain plays the jump over enemy on a scratch board and appends every
// continuation from landing, or the single jump when there is none.
func (b *Board) extendChain(chains []Capture, from, enemy, landing Square, piece Piece, captured []Square) []Capture {
	scratch := b.Clone()
	scratch.Set(from, Empty)
	scratch.Set(enemy, Empty)
	scratch.Set(landing, piece)

	continuations := scratch.FindCaptures(landing, piece, append(slices.Clone(captured), enemy))
	if len(continuations) == 0 {
		return append(chains, Capture{To: landing, Captured: []Square{enemy}})
	}
	for _, c := range continuations {
		chains = append(chains, Capture{
			To:       c.To,
			Captured: append([]Square{enemy}, c.Captured...),
		})
	}
	return chains
}

func captureDirections(piece Piece) []direction {
	if piece.IsKing() {
		return diagonals[:]
	}
	forward := piece.Side().forward()
	return []direction{{forward, -1}, {forward, 1}}
}
