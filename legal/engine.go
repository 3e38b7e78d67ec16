package legal

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Engine keeps every piece's control and legal-move sets, the check state of
// both kings, the pinned pieces and the en passant window consistent with the
// board after each move.
//
// An Engine is not safe for concurrent use; callers serialize access per game.
type Engine struct {
	board   *Board
	attacks AttackIndex

	// restraints maps a king to its checkers (in attack-index order) and a
	// pinned piece to its single pinner.
	restraints map[PieceID][]PieceID

	// checkSig records, per color, the checker squares plus the king square
	// while in check; zero when not in check.
	checkSig [2]Bitboard

	queue  []PieceID
	queued PieceSet

	fen   string
	stats Stats
}

// NewEngine sets up a game from a position string.
func NewEngine(fen string) (*Engine, error) {
	board, err := ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	for _, c := range [...]Color{White, Black} {
		if board.kings[c] == NoPiece {
			return nil, fmt.Errorf("%w: missing %s king", ErrInvalidNotation, c)
		}
	}
	e := &Engine{
		board:      board,
		restraints: make(map[PieceID][]PieceID),
		fen:        fen,
	}
	var all PieceSet
	for _, p := range board.pieces {
		all = all.Add(p.ID)
	}
	e.settle(all)
	return e, nil
}

// NewGame returns an engine for the standard initial position.
func NewGame() *Engine {
	e, err := NewEngine(FENStartPos)
	if err != nil {
		panic(err)
	}
	return e
}

// Reset rebuilds the game from the position it was created with.
func (e *Engine) Reset() {
	fresh, err := NewEngine(e.fen)
	if err != nil {
		panic(fmt.Sprintf("legal: reset from %q: %v", e.fen, err))
	}
	*e = *fresh
}

// Clone returns an independent copy of the game state.
func (e *Engine) Clone() *Engine {
	ne := &Engine{
		board:      e.board.clone(),
		attacks:    e.attacks,
		restraints: make(map[PieceID][]PieceID, len(e.restraints)),
		checkSig:   e.checkSig,
		fen:        e.fen,
	}
	for id, by := range e.restraints {
		ne.restraints[id] = slices.Clone(by)
	}
	return ne
}

// Board exposes the position for read-only use.
func (e *Engine) Board() *Board { return e.board }

// PieceAt returns the piece standing on sq.
func (e *Engine) PieceAt(sq Square) (*Piece, bool) { return e.board.PieceAt(sq) }

// Pieces returns the live pieces of c.
func (e *Engine) Pieces(c Color) []*Piece { return e.board.Pieces(c) }

// SideToMove reports the side expected to play next.
func (e *Engine) SideToMove() Color { return e.board.sideToMove }

// EnPassantCandidate returns the pawn that may be captured en passant.
func (e *Engine) EnPassantCandidate() (*Piece, bool) { return e.board.EnPassantCandidate() }

// FEN returns the current position string.
func (e *Engine) FEN() string { return e.board.ToFEN() }

// LegalMoves lists the squares p may move to, in ascending order.
func (e *Engine) LegalMoves(p *Piece) []Square { return p.Moves.Squares() }

// IsInCheck reports whether the king of c is attacked.
func (e *Engine) IsInCheck(c Color) bool {
	return len(e.restraints[e.board.kings[c]]) > 0
}

// Checkers returns the pieces giving check to the king of c.
func (e *Engine) Checkers(c Color) []*Piece {
	ids := e.restraints[e.board.kings[c]]
	out := make([]*Piece, len(ids))
	for i, id := range ids {
		out[i] = e.board.Piece(id)
	}
	return out
}

// PinnedBy returns the piece pinning p against its king.
func (e *Engine) PinnedBy(p *Piece) (*Piece, bool) {
	if p.Type() == King {
		return nil, false
	}
	by := e.restraints[p.ID]
	if len(by) == 0 {
		return nil, false
	}
	return e.board.Piece(by[0]), true
}

// AttackersOf returns the live pieces controlling sq, both colors.
func (e *Engine) AttackersOf(sq Square) []*Piece {
	ids := e.attacks.At(sq).IDs()
	out := make([]*Piece, len(ids))
	for i, id := range ids {
		out[i] = e.board.Piece(id)
	}
	return out
}

// TotalLegalMoveCount sums the legal moves of every piece of c.
func (e *Engine) TotalLegalMoveCount(c Color) int {
	n := 0
	for _, p := range e.board.Pieces(c) {
		n += p.Moves.Count()
	}
	return n
}

// HasLegalMoves reports whether c has any legal move.
func (e *Engine) HasLegalMoves(c Color) bool {
	for _, p := range e.board.Pieces(c) {
		if p.Moves != 0 {
			return true
		}
	}
	return false
}

// GameStatus summarises the state of one side.
type GameStatus uint8

const (
	Ongoing GameStatus = iota
	Check
	Checkmate
	Stalemate
)

func (s GameStatus) String() string {
	switch s {
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	}
	return "ongoing"
}

// Status reports whether c is in check, mated or stalemated.
func (e *Engine) Status(c Color) GameStatus {
	inCheck := e.IsInCheck(c)
	if !e.HasLegalMoves(c) {
		if inCheck {
			return Checkmate
		}
		return Stalemate
	}
	if inCheck {
		return Check
	}
	return Ongoing
}

// InCheckmate reports whether c is checkmated.
func (e *Engine) InCheckmate(c Color) bool { return e.Status(c) == Checkmate }

// InStalemate reports whether c is stalemated.
func (e *Engine) InStalemate(c Color) bool { return e.Status(c) == Stalemate }

// enqueue schedules recomputation of every piece in set.
func (e *Engine) enqueue(set PieceSet) {
	for _, id := range set.IDs() {
		if e.queued.Has(id) {
			continue
		}
		e.queued = e.queued.Add(id)
		e.queue = append(e.queue, id)
	}
}

// drain recomputes queued pieces until nothing is pending. Pin registration
// during recomputation may queue more pieces; they are handled here too.
func (e *Engine) drain() {
	for len(e.queue) > 0 {
		id := e.queue[0]
		e.queue = e.queue[1:]
		e.queued = e.queued.Remove(id)
		e.recomputeControl(e.board.Piece(id))
	}
	e.queue = e.queue[:0]
}

// armyOf returns the handles of every live piece of c.
func (e *Engine) armyOf(c Color) PieceSet {
	var set PieceSet
	for _, t := range registryOrder {
		for _, id := range e.board.registry[Kind{c, t}] {
			set = set.Add(id)
		}
	}
	return set
}

// settle brings every derived set up to date once the pieces in dirty have
// seen their geometry change.
//
// Control sets depend on occupancy alone, so they are final after the first
// drain. Check state and pins are then derived from them; whatever they
// invalidate is recomputed, and both kings go last so their destinations are
// judged against a settled attack index.
func (e *Engine) settle(dirty PieceSet) {
	e.enqueue(dirty)
	e.drain()

	e.updateCheck(White)
	e.updateCheck(Black)

	e.filterPins()
	e.discoverPins()
	e.drain()

	var kings PieceSet
	kings = kings.Add(e.board.kings[White]).Add(e.board.kings[Black])
	e.enqueue(kings)
	e.drain()
}
