package bench

import (
	"testing"

	"chess-legality/legal"
)

const (
	endgameFEN    = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	middlegameFEN = "r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 w - - 0 10"
)

func benchNewEngine(b *testing.B, fen string) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := legal.NewEngine(fen); err != nil {
			b.Fatalf("NewEngine: %v", err)
		}
	}
}

func BenchmarkNewEngine_Initial(b *testing.B)    { benchNewEngine(b, legal.FENStartPos) }
func BenchmarkNewEngine_Middlegame(b *testing.B) { benchNewEngine(b, middlegameFEN) }

// benchMoves replays each root move on a fresh clone, so it measures one
// incremental update per move plus the clone.
func benchMoves(b *testing.B, fen string) {
	game, err := legal.NewEngine(fen)
	if err != nil {
		b.Fatalf("NewEngine: %v", err)
	}
	moves := game.LegalMoveList(game.SideToMove())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, m := range moves {
			child := game.Clone()
			if err := child.Play(m); err != nil {
				b.Fatalf("illegal move in cached list: %v", m)
			}
		}
	}
}

func BenchmarkMovePiece_AllMoves_Initial(b *testing.B)    { benchMoves(b, legal.FENStartPos) }
func BenchmarkMovePiece_AllMoves_Middlegame(b *testing.B) { benchMoves(b, middlegameFEN) }

func BenchmarkClone_Middlegame(b *testing.B) {
	game, err := legal.NewEngine(middlegameFEN)
	if err != nil {
		b.Fatalf("NewEngine: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = game.Clone()
	}
}

func BenchmarkTotalLegalMoveCount_Middlegame(b *testing.B) {
	game, err := legal.NewEngine(middlegameFEN)
	if err != nil {
		b.Fatalf("NewEngine: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = game.TotalLegalMoveCount(legal.White)
	}
}
