package legal

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Validate checks the engine's invariants: board bookkeeping, the duality
// between the attack index and control sets, pin cardinality, and agreement
// with an engine rebuilt from scratch on the same position.
func (e *Engine) Validate() error {
	b := e.board
	if err := b.validate(); err != nil {
		return err
	}

	for sq := Square(0); sq < 64; sq++ {
		for _, p := range b.pieces {
			indexed := e.attacks.At(sq).Has(p.ID)
			controls := p.Control.Has(sq) && !p.Captured
			if indexed != controls {
				return fmt.Errorf("attack index for %s disagrees with control set of %s", sq, p)
			}
		}
	}

	ids := maps.Keys(e.restraints)
	slices.Sort(ids)
	for _, id := range ids {
		p := b.Piece(id)
		if p.Type() != King && len(e.restraints[id]) != 1 {
			return fmt.Errorf("%s is pinned by %d pieces", p, len(e.restraints[id]))
		}
	}

	fresh, err := NewEngine(b.ToFEN())
	if err != nil {
		return fmt.Errorf("rebuild from %q: %w", b.ToFEN(), err)
	}
	for sq := Square(0); sq < 64; sq++ {
		p, ok := b.PieceAt(sq)
		if !ok {
			continue
		}
		q, _ := fresh.PieceAt(sq)
		if q == nil || q.Kind != p.Kind {
			return fmt.Errorf("rebuild lost %s", p)
		}
		if p.Control != q.Control {
			return fmt.Errorf("control of %s is %v, from scratch %v", p, p.Control.Squares(), q.Control.Squares())
		}
		if p.Moves != q.Moves {
			return fmt.Errorf("moves of %s are %v, from scratch %v", p, p.Moves.Squares(), q.Moves.Squares())
		}
		pinner, pinned := e.PinnedBy(p)
		freshPinner, freshPinned := fresh.PinnedBy(q)
		if pinned != freshPinned || (pinned && pinner.Square != freshPinner.Square) {
			return fmt.Errorf("pin state of %s differs from scratch", p)
		}
	}
	for _, c := range [...]Color{White, Black} {
		if !slices.Equal(squaresOf(e.Checkers(c)), squaresOf(fresh.Checkers(c))) {
			return fmt.Errorf("%s checkers %v, from scratch %v", c, squaresOf(e.Checkers(c)), squaresOf(fresh.Checkers(c)))
		}
	}
	return nil
}

func squaresOf(pieces []*Piece) []Square {
	out := make([]Square, len(pieces))
	for i, p := range pieces {
		out[i] = p.Square
	}
	slices.Sort(out)
	return out
}
