package legal

import (
	"fmt"
	"strings"
)

// Move is a source and destination square pair.
type Move struct {
	From, To Square
}

// String renders the move as coordinates, e.g. "e2e4".
func (m Move) String() string { return m.From.String() + m.To.String() }

// ParseMove converts coordinates such as "e2e4" into a Move.
func ParseMove(movestr string) (Move, error) {
	movestr = strings.TrimSpace(strings.ToLower(movestr))
	if len(movestr) != 4 {
		return Move{}, fmt.Errorf("%w: move %q must be four characters", ErrInvalidNotation, movestr)
	}
	from, err := ParseSquare(movestr[:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(movestr[2:])
	if err != nil {
		return Move{}, err
	}
	return Move{From: from, To: to}, nil
}

// LegalMoveList returns every legal move of c, ordered by piece then square.
func (e *Engine) LegalMoveList(c Color) []Move {
	var out []Move
	for _, p := range e.board.Pieces(c) {
		for _, to := range p.Moves.Squares() {
			out = append(out, Move{From: p.Square, To: to})
		}
	}
	return out
}

// Play moves the piece standing on m.From.
func (e *Engine) Play(m Move) error {
	p, ok := e.board.PieceAt(m.From)
	if !ok {
		return fmt.Errorf("%w: no piece on %s", ErrIllegalMove, m.From)
	}
	return e.MovePiece(p, m.To)
}

// MovePiece moves p to dest and brings every derived set up to date before
// returning. dest must come from p's legal-move set.
func (e *Engine) MovePiece(p *Piece, dest Square) error {
	if p == nil || int(p.ID) >= len(e.board.pieces) || e.board.pieces[p.ID] != p || p.Captured {
		return fmt.Errorf("%w: piece is not on this board", ErrIllegalMove)
	}
	if !dest.Valid() || !p.Moves.Has(dest) {
		return fmt.Errorf("%w: %s cannot reach %s", ErrIllegalMove, p, dest)
	}
	e.stats.Moves++

	dirty := e.affectedBy(p, dest)
	e.apply(p, dest)
	e.settle(dirty)
	return nil
}

// affectedBy collects the pieces whose control or legal moves may change
// when p moves to dest. It must run before the board is touched.
func (e *Engine) affectedBy(p *Piece, dest Square) PieceSet {
	b := e.board
	from := p.Square
	set := PieceSet(0).Add(p.ID)
	set |= e.attacks.At(dest) | e.attacks.At(from)
	set |= e.pushersOf(dest) | e.pushersOf(from)

	if target, ok := b.PieceAt(dest); ok {
		set = set.Add(target.ID)
	}

	if p.Type() == Pawn {
		if dest.File() != from.File() && b.IsEmpty(dest) {
			if victim, ok := b.EnPassantCandidate(); ok {
				set = set.Add(victim.ID)
				set |= e.attacks.At(victim.Square) | e.pushersOf(victim.Square)
			}
		}
		if abs(dest.Rank()-from.Rank()) == 2 {
			set |= e.adjacentPawns(dest, p.Color().Other())
		}
	}

	// The previous window closes with this move.
	if old, ok := b.EnPassantCandidate(); ok {
		set |= e.adjacentPawns(old.Square, old.Color().Other())
	}
	return set
}

// pushersOf returns the pawns of either color that could advance onto sq.
func (e *Engine) pushersOf(sq Square) PieceSet {
	var set PieceSet
	for _, dr := range [...]int{-2, -1, 1, 2} {
		r := sq.Rank() + dr
		if r < 0 || r > 7 {
			continue
		}
		if q, ok := e.board.PieceAt(NewSquare(sq.File(), r)); ok && q.Type() == Pawn {
			set = set.Add(q.ID)
		}
	}
	return set
}

// adjacentPawns returns the pawns of color c beside sq on the same rank.
func (e *Engine) adjacentPawns(sq Square, c Color) PieceSet {
	var set PieceSet
	for _, df := range [...]int{-1, 1} {
		f := sq.File() + df
		if f < 0 || f > 7 {
			continue
		}
		if q, ok := e.board.PieceAt(NewSquare(f, sq.Rank())); ok && q.Kind == (Kind{c, Pawn}) {
			set = set.Add(q.ID)
		}
	}
	return set
}

// apply mutates the board for p moving to dest: captures, the move itself,
// the en passant window and the clocks.
func (e *Engine) apply(p *Piece, dest Square) {
	b := e.board
	from := p.Square
	captured := false

	if target, ok := b.PieceAt(dest); ok {
		b.capture(target)
		captured = true
	} else if p.Type() == Pawn && dest.File() != from.File() {
		victim, ok := b.EnPassantCandidate()
		if !ok {
			panic(fmt.Sprintf("legal: diagonal pawn move %s%s without en passant candidate", from, dest))
		}
		b.capture(victim)
		captured = true
	}

	b.epCandidate = NoPiece
	b.relocate(p, dest)
	if p.Type() == Pawn && abs(dest.Rank()-from.Rank()) == 2 {
		b.epCandidate = p.ID
	}

	if captured || p.Type() == Pawn {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}
	if p.Color() == Black {
		b.fullmoveNumber++
	}
	b.sideToMove = p.Color().Other()
}
