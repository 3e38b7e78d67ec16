package oracle

import (
	"fmt"

	"github.com/dylhunn/dragontoothmg"

	"chess-legality/legal"
)

// Dragontooth is the magic-bitboard generator from dragontoothmg.
type Dragontooth struct{}

func (Dragontooth) Name() string { return "dragontooth" }

func (Dragontooth) board(fen string) (b *dragontoothmg.Board, err error) {
	if err := checkFEN(fen); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dragontooth rejected %q: %v", fen, r)
		}
	}()
	parsed := dragontoothmg.ParseFen(fen)
	return &parsed, nil
}

func (d Dragontooth) LegalMoves(fen string) ([]legal.Move, error) {
	b, err := d.board(fen)
	if err != nil {
		return nil, err
	}
	moves := b.GenerateLegalMoves()
	out := make([]legal.Move, 0, len(moves))
	for _, m := range moves {
		out = append(out, legal.Move{
			From: squareFromIndex(int(m.From())),
			To:   squareFromIndex(int(m.To())),
		})
	}
	return dedupe(out), nil
}

func (d Dragontooth) InCheck(fen string) (bool, error) {
	b, err := d.board(fen)
	if err != nil {
		return false, err
	}
	return b.OurKingInCheck(), nil
}

func (d Dragontooth) Perft(fen string, depth int) (uint64, error) {
	b, err := d.board(fen)
	if err != nil {
		return 0, err
	}
	return dragontoothPerft(b, depth), nil
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range b.GenerateLegalMoves() {
		if p := m.Promote(); p != 0 && p != dragontoothmg.Queen {
			continue
		}
		if depth == 1 {
			nodes++
			continue
		}
		undo := b.Apply(m)
		nodes += dragontoothPerft(b, depth-1)
		undo()
	}
	return nodes
}
