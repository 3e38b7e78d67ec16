package legal

import (
	"fmt"
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Square represents a board position (0-63). The file lives in the high three
// bits and the rank in the low three: a1=0, a2=1, ..., h8=63.
type Square int

const NoSquare Square = -1

// NewSquare builds a square from zero-based file and rank.
func NewSquare(file, rank int) Square { return Square(file<<3 | rank) }

// File returns the zero-based file (a=0).
func (s Square) File() int { return int(s) >> 3 }

// Rank returns the zero-based rank (rank 1 = 0).
func (s Square) Rank() int { return int(s) & 7 }

// Valid reports whether s is on the board.
func (s Square) Valid() bool { return s >= 0 && s < 64 }

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(s.File()), '1' + byte(s.Rank())})
}

// ParseSquare converts coordinates such as "e4" into a Square.
func ParseSquare(alg string) (Square, error) {
	if len(alg) != 2 {
		return NoSquare, fmt.Errorf("%w: square %q must be two characters", ErrInvalidNotation, alg)
	}
	file, rank := alg[0], alg[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, fmt.Errorf("%w: square %q out of range", ErrInvalidNotation, alg)
	}
	return NewSquare(int(file-'a'), int(rank-'1')), nil
}

// inBounds reports whether (file, rank) lies on the board.
func inBounds(file, rank int) bool {
	return file >= 0 && file < 8 && rank >= 0 && rank < 8
}

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType is a colorless piece kind.
type PieceType uint8

const (
	PieceTypeNone PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var typeLetters = [...]byte{PieceTypeNone: '?', Pawn: 'P', Knight: 'N', Bishop: 'B', Rook: 'R', Queen: 'Q', King: 'K'}

func (t PieceType) String() string {
	switch t {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "none"
}

// Sliding reports whether pieces of this type walk rays.
func (t PieceType) Sliding() bool { return t == Bishop || t == Rook || t == Queen }

// Kind identifies a piece by side and type. It is the key of the board's
// piece registry.
type Kind struct {
	Color Color
	Type  PieceType
}

// Letter returns the position-string letter: upper case for White.
func (k Kind) Letter() byte {
	l := typeLetters[k.Type]
	if k.Color == Black {
		l += 'a' - 'A'
	}
	return l
}

func (k Kind) String() string { return k.Color.String() + " " + k.Type.String() }

// kindFromLetter is the inverse of Kind.Letter.
func kindFromLetter(ch byte) (Kind, bool) {
	color := White
	if ch >= 'a' && ch <= 'z' {
		color = Black
		ch -= 'a' - 'A'
	}
	for t := Pawn; t <= King; t++ {
		if typeLetters[t] == ch {
			return Kind{Color: color, Type: t}, true
		}
	}
	return Kind{}, false
}

// Direction is a (file, rank) step.
type Direction struct {
	DF, DR int
}

// Opposite returns the reversed step.
func (d Direction) Opposite() Direction { return Direction{-d.DF, -d.DR} }

var (
	rookDirections   = []Direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirections = []Direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirections  = append(append([]Direction{}, rookDirections...), bishopDirections...)
	knightOffsets    = []Direction{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
)

func sign[T constraints.Signed](n T) T {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

func abs[T constraints.Signed](n T) T {
	if n < 0 {
		return -n
	}
	return n
}

// lineDirection returns the unit step leading from one square to another when
// both share a rank, file or diagonal.
func lineDirection(from, to Square) (Direction, bool) {
	df, dr := to.File()-from.File(), to.Rank()-from.Rank()
	if df == 0 && dr == 0 {
		return Direction{}, false
	}
	if df != 0 && dr != 0 && abs(df) != abs(dr) {
		return Direction{}, false
	}
	return Direction{sign(df), sign(dr)}, true
}

// between returns the squares strictly between two aligned squares.
func between(from, to Square) Bitboard {
	dir, ok := lineDirection(from, to)
	if !ok {
		return 0
	}
	var set Bitboard
	f, r := from.File()+dir.DF, from.Rank()+dir.DR
	for s := NewSquare(f, r); s != to; s = NewSquare(f, r) {
		set = set.Add(s)
		f, r = f+dir.DF, r+dir.DR
	}
	return set
}

// Bitboard represents a 64-bit set of squares.
type Bitboard uint64

func (b Bitboard) Has(s Square) bool { return b&(1<<uint(s)) != 0 }

func (b Bitboard) Add(s Square) Bitboard { return b | 1<<uint(s) }

func (b Bitboard) Remove(s Square) Bitboard { return b &^ (1 << uint(s)) }

func (b Bitboard) Count() int { return bits.OnesCount64(uint64(b)) }

// Squares lists the members in ascending order.
func (b Bitboard) Squares() []Square {
	out := make([]Square, 0, b.Count())
	for bb := uint64(b); bb != 0; bb &= bb - 1 {
		out = append(out, Square(bits.TrailingZeros64(bb)))
	}
	return out
}
