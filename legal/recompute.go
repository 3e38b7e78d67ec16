package legal

// recomputeControl re-derives the control and legal-move sets of p from the
// board, the en passant candidate and the restraint map, keeping the attack
// index in step.
func (e *Engine) recomputeControl(p *Piece) {
	e.stats.Recomputes++
	e.attacks.Remove(p)
	p.Control, p.Moves = 0, 0
	if p.Captured {
		return
	}

	b := e.board
	enemyKing := b.King(p.Color().Other())
	cur := p.Cursor()
	xray := false
	for sq, ok := cur.Next(); ok; sq, ok = cur.Next() {
		if cur.RayStart() {
			xray = false
		}
		occupied := !b.IsEmpty(sq)

		// Past the enemy king the ray only guards squares.
		if xray {
			p.Control = p.Control.Add(sq)
			if occupied {
				cur.StopRay()
			}
			continue
		}

		if p.Type() == Pawn {
			if sq.File() != p.Square.File() {
				p.Control = p.Control.Add(sq)
			}
			if e.isValidPawnMove(p, sq) && e.doesBlockCheck(p, sq) && e.doesHandlePin(p, sq) {
				p.Moves = p.Moves.Add(sq)
			}
			continue
		}

		p.Control = p.Control.Add(sq)
		if e.isLegalDestination(p, sq, enemyKing) {
			p.Moves = p.Moves.Add(sq)
		}
		if p.Sliding() && occupied {
			if sq == enemyKing.Square {
				xray = true
			} else {
				cur.StopRay()
			}
		}
	}
	e.attacks.Add(p)

	if p.Sliding() {
		if pinned, ok := e.findPinned(p); ok {
			e.addPin(p, pinned)
		}
	}
}

// isLegalDestination applies the occupancy, king-safety, check and pin
// filters to a non-pawn candidate square.
func (e *Engine) isLegalDestination(p *Piece, sq Square, enemyKing *Piece) bool {
	if e.board.isOwn(p.Color(), sq) || sq == enemyKing.Square {
		return false
	}
	if p.Type() == King && e.isAttacked(sq, p.Color().Other()) {
		return false
	}
	return e.doesBlockCheck(p, sq) && e.doesHandlePin(p, sq)
}

// isAttacked reports whether any piece of color by controls sq.
func (e *Engine) isAttacked(sq Square, by Color) bool {
	for _, id := range e.attacks.At(sq).IDs() {
		if e.board.Piece(id).Color() == by {
			return true
		}
	}
	return false
}

// isValidPawnMove checks the occupancy rules of a pawn candidate: pushes need
// empty squares, diagonals need an enemy piece or the en passant target.
func (e *Engine) isValidPawnMove(p *Piece, sq Square) bool {
	b := e.board
	if sq.File() == p.Square.File() {
		if !b.IsEmpty(sq) {
			return false
		}
		if abs(sq.Rank()-p.Square.Rank()) == 2 {
			return b.IsEmpty(NewSquare(sq.File(), p.Square.Rank()+p.forward()))
		}
		return true
	}
	target, ok := b.PieceAt(sq)
	if !ok {
		return e.isValidPawnCapture(p, sq)
	}
	return target.Color() != p.Color() && target.Type() != King
}

// doesBlockCheck reports whether moving p to dest copes with a check on its
// own king. Kings are judged by the attacked-square filter instead.
func (e *Engine) doesBlockCheck(p *Piece, dest Square) bool {
	b := e.board
	king := b.King(p.Color())
	checkers := e.restraints[king.ID]
	if len(checkers) == 0 || p.Type() == King {
		return true
	}
	if len(checkers) > 1 {
		return false
	}

	attacker := b.Piece(checkers[0])
	if dest == attacker.Square {
		return true
	}
	if p.Type() == Pawn && attacker.ID == b.epCandidate && dest == b.enPassantTarget() && dest.File() != p.Square.File() {
		return true
	}
	if !attacker.Sliding() {
		return false
	}
	return strictlyBetween(attacker.Square, king.Square, dest)
}

// strictlyBetween reports whether dest lies on the segment from a to k,
// excluding both ends.
func strictlyBetween(a, k, dest Square) bool {
	df, dr := k.File()-a.File(), k.Rank()-a.Rank()
	ddf, ddr := dest.File()-a.File(), dest.Rank()-a.Rank()
	if df*ddr != dr*ddf {
		return false
	}
	if df != 0 {
		return ddf*df > 0 && abs(ddf) < abs(df)
	}
	return ddr*dr > 0 && abs(ddr) < abs(dr)
}

// doesHandlePin reports whether moving p to dest keeps it on its pin line.
func (e *Engine) doesHandlePin(p *Piece, dest Square) bool {
	if p.Type() == King {
		return true
	}
	by := e.restraints[p.ID]
	if len(by) == 0 {
		return true
	}
	pinner := e.board.Piece(by[0])
	dir, ok := lineDirection(pinner.Square, p.Square)
	if !ok {
		return true
	}
	move, ok := lineDirection(p.Square, dest)
	if !ok {
		return false
	}
	return move == dir || move == dir.Opposite()
}
