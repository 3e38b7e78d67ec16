package oracle

import (
	"github.com/Oliverans/GooseEngineMG/goosemg"

	"chess-legality/legal"
)

// Goose is the pext-based generator from GooseEngineMG.
type Goose struct{}

func (Goose) Name() string { return "goose" }

func (Goose) board(fen string) (*goosemg.Board, error) {
	if err := checkFEN(fen); err != nil {
		return nil, err
	}
	return goosemg.ParseFEN(fen)
}

func (g Goose) LegalMoves(fen string) ([]legal.Move, error) {
	b, err := g.board(fen)
	if err != nil {
		return nil, err
	}
	moves := b.GenerateMoves()
	out := make([]legal.Move, 0, len(moves))
	for _, m := range moves {
		out = append(out, legal.Move{
			From: squareFromIndex(int(m.From())),
			To:   squareFromIndex(int(m.To())),
		})
	}
	return dedupe(out), nil
}

func (g Goose) InCheck(fen string) (bool, error) {
	b, err := g.board(fen)
	if err != nil {
		return false, err
	}
	return b.InCheck(b.SideToMove()), nil
}

func (g Goose) Perft(fen string, depth int) (uint64, error) {
	b, err := g.board(fen)
	if err != nil {
		return 0, err
	}
	return goosePerft(b, depth, make([][]goosemg.Move, depth+1)), nil
}

// goosePerft reuses one move buffer per depth.
func goosePerft(b *goosemg.Board, depth int, bufs [][]goosemg.Move) uint64 {
	if depth == 0 {
		return 1
	}
	bufs[depth] = b.GenerateMovesInto(bufs[depth][:0])
	var nodes uint64
	for _, m := range bufs[depth] {
		if pt := m.PromotionPieceType(); pt != goosemg.PieceTypeNone && pt != goosemg.PieceTypeQueen {
			continue
		}
		if ok, st := b.MakeMove(m); ok {
			nodes += goosePerft(b, depth-1, bufs)
			b.UnmakeMove(m, st)
		}
	}
	return nodes
}
