package legal

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// updateCheck re-reads the checkers of c's king from the attack index. When
// the check state changes, every piece of c is queued for recomputation since
// all of their legal moves depend on it.
func (e *Engine) updateCheck(c Color) bool {
	b := e.board
	king := b.King(c)

	var checkers []PieceID
	var sig Bitboard
	for _, id := range e.attacks.At(king.Square).IDs() {
		a := b.Piece(id)
		if a.Color() == c {
			continue
		}
		// pawns only threaten the adjacent files
		if a.Type() == Pawn && abs(a.Square.File()-king.Square.File()) != 1 {
			continue
		}
		checkers = append(checkers, id)
		sig = sig.Add(a.Square)
	}
	if len(checkers) > 0 {
		sig = sig.Add(king.Square)
	}

	prev := e.restraints[king.ID]
	if len(checkers) > 0 {
		e.restraints[king.ID] = checkers
	} else {
		delete(e.restraints, king.ID)
	}
	if !slices.Equal(prev, checkers) || sig != e.checkSig[c] {
		e.checkSig[c] = sig
		e.stats.Cascades++
		e.enqueue(e.armyOf(c))
	}
	return len(checkers) > 0
}

// findPinned walks from a sliding piece toward the enemy king. The single
// piece standing between them is pinned when it belongs to the king's side;
// an empty line or any second blocker means no pin.
func (e *Engine) findPinned(slider *Piece) (*Piece, bool) {
	if slider.Captured {
		return nil, false
	}
	b := e.board
	king := b.King(slider.Color().Other())
	if _, ok := slider.aims(king.Square); !ok {
		return nil, false
	}
	var pinned *Piece
	for _, sq := range between(slider.Square, king.Square).Squares() {
		q, ok := b.PieceAt(sq)
		if !ok {
			continue
		}
		if pinned != nil || q.Color() != king.Color() {
			return nil, false
		}
		pinned = q
	}
	return pinned, pinned != nil
}

// addPin records that pinner pins pinned, unless pinned is already held.
func (e *Engine) addPin(pinner, pinned *Piece) {
	if _, ok := e.restraints[pinned.ID]; ok {
		return
	}
	e.restraints[pinned.ID] = []PieceID{pinner.ID}
	e.stats.PinsAdded++
	var set PieceSet
	e.enqueue(set.Add(pinned.ID).Add(e.board.kings[pinned.Color()]))
}

// removePin releases pinned.
func (e *Engine) removePin(pinned *Piece) {
	delete(e.restraints, pinned.ID)
	e.stats.PinsRemoved++
	if pinned.Captured {
		return
	}
	var set PieceSet
	e.enqueue(set.Add(pinned.ID).Add(e.board.kings[pinned.Color()]))
}

// filterPins drops every pin whose pinner was captured or whose line no
// longer isolates the pinned piece.
func (e *Engine) filterPins() {
	ids := maps.Keys(e.restraints)
	slices.Sort(ids)
	for _, id := range ids {
		p := e.board.Piece(id)
		if p.Type() == King {
			continue
		}
		pinner := e.board.Piece(e.restraints[id][0])
		if p.Captured || pinner.Captured {
			e.removePin(p)
			continue
		}
		if still, ok := e.findPinned(pinner); !ok || still != p {
			e.removePin(p)
		}
	}
}

// discoverPins registers pins created without the pinner itself moving, such
// as a second blocker leaving the line.
func (e *Engine) discoverPins() {
	for _, c := range [...]Color{White, Black} {
		for _, t := range [...]PieceType{Bishop, Rook, Queen} {
			for _, slider := range e.board.PiecesOf(Kind{c, t}) {
				if pinned, ok := e.findPinned(slider); ok {
					e.addPin(slider, pinned)
				}
			}
		}
	}
}
