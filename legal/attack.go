package legal

import "math/bits"

// PieceSet is a set of piece handles. Handles are dense and a board never
// holds more than 64 pieces, so one word is enough.
type PieceSet uint64

func (s PieceSet) Has(id PieceID) bool { return s&(1<<uint(id)) != 0 }

func (s PieceSet) Add(id PieceID) PieceSet { return s | 1<<uint(id) }

func (s PieceSet) Remove(id PieceID) PieceSet { return s &^ (1 << uint(id)) }

func (s PieceSet) Count() int { return bits.OnesCount64(uint64(s)) }

// IDs lists the members in ascending handle order.
func (s PieceSet) IDs() []PieceID {
	out := make([]PieceID, 0, s.Count())
	for bb := uint64(s); bb != 0; bb &= bb - 1 {
		out = append(out, PieceID(bits.TrailingZeros64(bb)))
	}
	return out
}

// AttackIndex maps every square to the pieces whose control set contains it.
// It is the inverse of Piece.Control over live pieces.
type AttackIndex [64]PieceSet

// Add registers p on every square of p.Control.
func (idx *AttackIndex) Add(p *Piece) {
	for bb := uint64(p.Control); bb != 0; bb &= bb - 1 {
		sq := bits.TrailingZeros64(bb)
		idx[sq] = idx[sq].Add(p.ID)
	}
}

// Remove drops p from every square of its current p.Control.
func (idx *AttackIndex) Remove(p *Piece) {
	for bb := uint64(p.Control); bb != 0; bb &= bb - 1 {
		sq := bits.TrailingZeros64(bb)
		idx[sq] = idx[sq].Remove(p.ID)
	}
}

// At returns the pieces controlling sq.
func (idx *AttackIndex) At(sq Square) PieceSet { return idx[sq] }
