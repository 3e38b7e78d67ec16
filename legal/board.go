package legal

import (
	"fmt"

	"golang.org/x/exp/slices"
)

var registryOrder = [...]PieceType{Pawn, Knight, Bishop, Rook, Queen, King}

// Board owns every piece of a game. The by-square array and the registry
// hold handles into the arena, never copies.
type Board struct {
	// Piece arena; a handle is the index into it. Captured pieces stay in
	// the arena so handles never move.
	pieces []*Piece

	// Handle on each square, NoPiece when empty.
	squares [64]PieceID

	// Occupancy for each side.
	occupancy [2]Bitboard

	// Live pieces per (color, type).
	registry map[Kind][]PieceID

	kings [2]PieceID

	// Pawn that just advanced two squares, NoPiece otherwise.
	epCandidate PieceID

	sideToMove     Color
	halfmoveClock  int
	fullmoveNumber int
}

func newBoard() *Board {
	b := &Board{
		registry:       make(map[Kind][]PieceID),
		kings:          [2]PieceID{NoPiece, NoPiece},
		epCandidate:    NoPiece,
		fullmoveNumber: 1,
	}
	for i := range b.squares {
		b.squares[i] = NoPiece
	}
	return b
}

// put places a new piece on an empty square during setup.
func (b *Board) put(kind Kind, sq Square) (*Piece, error) {
	if b.squares[sq] != NoPiece {
		return nil, fmt.Errorf("%w: square %s occupied twice", ErrInvalidNotation, sq)
	}
	if kind.Type == King && b.kings[kind.Color] != NoPiece {
		return nil, fmt.Errorf("%w: more than one %s king", ErrInvalidNotation, kind.Color)
	}
	p := &Piece{ID: PieceID(len(b.pieces)), Kind: kind, Square: sq}
	if kind.Type == Pawn {
		startRank := 1
		if kind.Color == Black {
			startRank = 6
		}
		p.HasMoved = sq.Rank() != startRank
	}
	b.pieces = append(b.pieces, p)
	b.squares[sq] = p.ID
	b.occupancy[kind.Color] = b.occupancy[kind.Color].Add(sq)
	b.registry[kind] = append(b.registry[kind], p.ID)
	if kind.Type == King {
		b.kings[kind.Color] = p.ID
	}
	return p, nil
}

// Piece resolves a handle.
func (b *Board) Piece(id PieceID) *Piece { return b.pieces[id] }

// PieceAt returns the piece standing on sq.
func (b *Board) PieceAt(sq Square) (*Piece, bool) {
	if !sq.Valid() || b.squares[sq] == NoPiece {
		return nil, false
	}
	return b.pieces[b.squares[sq]], true
}

func (b *Board) IsEmpty(sq Square) bool { return b.squares[sq] == NoPiece }

// isOwn reports whether sq holds a piece of color c.
func (b *Board) isOwn(c Color, sq Square) bool { return b.occupancy[c].Has(sq) }

// Occupancy returns every occupied square.
func (b *Board) Occupancy() Bitboard { return b.occupancy[White] | b.occupancy[Black] }

// ColorOccupancy returns the squares held by c.
func (b *Board) ColorOccupancy(c Color) Bitboard { return b.occupancy[c] }

// King returns the king of c.
func (b *Board) King(c Color) *Piece {
	id := b.kings[c]
	if id == NoPiece {
		panic(fmt.Sprintf("legal: no %s king on the board", c))
	}
	return b.pieces[id]
}

// PiecesOf returns the live pieces of one kind.
func (b *Board) PiecesOf(kind Kind) []*Piece {
	ids := b.registry[kind]
	out := make([]*Piece, len(ids))
	for i, id := range ids {
		out[i] = b.pieces[id]
	}
	return out
}

// Pieces returns the live pieces of c, pawns first and the king last.
func (b *Board) Pieces(c Color) []*Piece {
	out := make([]*Piece, 0, 16)
	for _, t := range registryOrder {
		for _, id := range b.registry[Kind{c, t}] {
			out = append(out, b.pieces[id])
		}
	}
	return out
}

// EnPassantCandidate returns the pawn that just advanced two squares.
func (b *Board) EnPassantCandidate() (*Piece, bool) {
	if b.epCandidate == NoPiece {
		return nil, false
	}
	return b.pieces[b.epCandidate], true
}

// SideToMove reports the side expected to play next.
func (b *Board) SideToMove() Color { return b.sideToMove }

// capture removes p from the board and the registry. The piece stays in the
// arena, flagged as captured.
func (b *Board) capture(p *Piece) {
	p.Captured = true
	if b.squares[p.Square] == p.ID {
		b.squares[p.Square] = NoPiece
	}
	b.occupancy[p.Color()] = b.occupancy[p.Color()].Remove(p.Square)
	ids := b.registry[p.Kind]
	if i := slices.Index(ids, p.ID); i >= 0 {
		b.registry[p.Kind] = slices.Delete(ids, i, i+1)
	}
	if b.epCandidate == p.ID {
		b.epCandidate = NoPiece
	}
}

// relocate moves p to an empty square.
func (b *Board) relocate(p *Piece, to Square) {
	c := p.Color()
	b.squares[p.Square] = NoPiece
	b.occupancy[c] = b.occupancy[c].Remove(p.Square)
	b.squares[to] = p.ID
	b.occupancy[c] = b.occupancy[c].Add(to)
	p.Square = to
	p.HasMoved = true
}

// clone returns a deep copy sharing nothing with b.
func (b *Board) clone() *Board {
	nb := *b
	nb.pieces = make([]*Piece, len(b.pieces))
	for i, p := range b.pieces {
		cp := *p
		nb.pieces[i] = &cp
	}
	nb.registry = make(map[Kind][]PieceID, len(b.registry))
	for k, ids := range b.registry {
		nb.registry[k] = slices.Clone(ids)
	}
	return &nb
}

// validate checks that squares, occupancy and registry agree with the arena.
func (b *Board) validate() error {
	var occ [2]Bitboard
	live := 0
	for sq, id := range b.squares {
		if id == NoPiece {
			continue
		}
		p := b.pieces[id]
		if p.Captured || p.Square != Square(sq) {
			return fmt.Errorf("square %s holds stale handle %d (%s)", Square(sq), id, p)
		}
		occ[p.Color()] = occ[p.Color()].Add(Square(sq))
		live++
	}
	if occ != b.occupancy {
		return fmt.Errorf("occupancy out of sync with squares")
	}
	registered := 0
	for kind, ids := range b.registry {
		for _, id := range ids {
			p := b.pieces[id]
			if p.Captured || p.Kind != kind || b.squares[p.Square] != id {
				return fmt.Errorf("registry entry %d (%s) is stale", id, p)
			}
			registered++
		}
	}
	if registered != live {
		return fmt.Errorf("registry holds %d pieces, board holds %d", registered, live)
	}
	return nil
}
