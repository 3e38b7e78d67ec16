package legal

// isValidPawnCapture decides a diagonal pawn move onto an empty square: it is
// an en passant capture when an enemy pawn just advanced two squares onto the
// adjacent file of the capturer's rank and dest is the square it skipped.
func (e *Engine) isValidPawnCapture(p *Piece, dest Square) bool {
	b := e.board
	victim, ok := b.EnPassantCandidate()
	if !ok || victim.Color() == p.Color() {
		return false
	}
	if victim.Square.Rank() != p.Square.Rank() || victim.Square.File() != dest.File() {
		return false
	}
	if dest != b.enPassantTarget() {
		return false
	}
	return !e.isEpPseudopinned(p, victim, dest)
}

// isEpPseudopinned reports whether capturing victim en passant would expose
// the capturer's king. Both pawns leave their rank at once, so a rook or
// queen on that rank may see the king through the two vacated squares; the
// victim may also have been the only blocker on a diagonal. The occupancy
// after the capture is simulated and every line from the king is scanned.
func (e *Engine) isEpPseudopinned(capturer, victim *Piece, dest Square) bool {
	b := e.board
	king := b.King(capturer.Color())
	occ := b.Occupancy().Remove(capturer.Square).Remove(victim.Square).Add(dest)

	for _, dir := range queenDirections {
		f, r := king.Square.File()+dir.DF, king.Square.Rank()+dir.DR
		for inBounds(f, r) {
			sq := NewSquare(f, r)
			if occ.Has(sq) {
				if sq != dest {
					q, _ := b.PieceAt(sq)
					if q.Color() != king.Color() {
						if _, ok := q.aims(king.Square); ok {
							return true
						}
					}
				}
				break
			}
			f, r = f+dir.DF, r+dir.DR
		}
	}
	return false
}
