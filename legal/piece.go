package legal

import "golang.org/x/exp/slices"

// PieceID is a stable handle into the board's piece arena.
type PieceID int

const NoPiece PieceID = -1

// Piece is a single man on the board together with its derived sets.
// Control holds the squares it attacks or defends; Moves holds the squares
// it may legally move to this turn. Both are maintained by the Engine.
type Piece struct {
	ID       PieceID
	Kind     Kind
	Square   Square
	Captured bool
	HasMoved bool
	Control  Bitboard
	Moves    Bitboard
}

func (p *Piece) Color() Color    { return p.Kind.Color }
func (p *Piece) Type() PieceType { return p.Kind.Type }
func (p *Piece) Sliding() bool   { return p.Kind.Type.Sliding() }

func (p *Piece) String() string { return p.Kind.String() + " on " + p.Square.String() }

// forward is the rank step of a pawn of this piece's color.
func (p *Piece) forward() int {
	if p.Color() == White {
		return 1
	}
	return -1
}

// Directions returns the movement pattern of the piece. For pawns the list
// is built from the current state: one-step push, two-step push while the
// pawn has not moved, then both diagonals.
func (p *Piece) Directions() []Direction {
	switch p.Type() {
	case Knight:
		return knightOffsets
	case Bishop:
		return bishopDirections
	case Rook:
		return rookDirections
	case Queen, King:
		return queenDirections
	case Pawn:
		fw := p.forward()
		dirs := make([]Direction, 0, 4)
		dirs = append(dirs, Direction{0, fw})
		if !p.HasMoved {
			dirs = append(dirs, Direction{0, 2 * fw})
		}
		return append(dirs, Direction{-1, fw}, Direction{1, fw})
	}
	return nil
}

// aims returns the ray of a sliding piece that passes through sq.
func (p *Piece) aims(sq Square) (Direction, bool) {
	if !p.Sliding() {
		return Direction{}, false
	}
	dir, ok := lineDirection(p.Square, sq)
	if !ok || !slices.Contains(p.Directions(), dir) {
		return Direction{}, false
	}
	return dir, true
}

// Cursor walks the geometrically reachable squares of a piece, ignoring
// legality. Sliding pieces produce each ray square by square until the board
// edge or until the consumer calls StopRay; every other piece produces each
// in-bounds offset once.
type Cursor struct {
	origin  Square
	dirs    []Direction
	slide   bool
	dir     int
	f, r    int
	started bool
	first   bool
}

// Cursor returns a fresh cursor positioned before the first candidate.
func (p *Piece) Cursor() *Cursor {
	return &Cursor{origin: p.Square, dirs: p.Directions(), slide: p.Sliding()}
}

// Next returns the next candidate square, or false when the sequence is done.
func (c *Cursor) Next() (Square, bool) {
	for c.dir < len(c.dirs) {
		d := c.dirs[c.dir]
		if !c.started {
			c.f, c.r = c.origin.File(), c.origin.Rank()
		}
		f, r := c.f+d.DF, c.r+d.DR
		if !c.slide {
			c.dir++
			if inBounds(f, r) {
				c.first = true
				return NewSquare(f, r), true
			}
			continue
		}
		if !inBounds(f, r) {
			c.dir++
			c.started = false
			continue
		}
		c.first = !c.started
		c.started = true
		c.f, c.r = f, r
		return NewSquare(f, r), true
	}
	return NoSquare, false
}

// StopRay ends the current ray; the next call to Next starts the following
// direction. It is a no-op for stepping pieces.
func (c *Cursor) StopRay() {
	if c.slide && c.started {
		c.dir++
		c.started = false
	}
}

// RayStart reports whether the last square returned was the first one of its ray.
func (c *Cursor) RayStart() bool { return c.first }

// Reset rewinds the cursor to its first candidate.
func (c *Cursor) Reset() {
	c.dir = 0
	c.started = false
	c.first = false
}
