package legal_test

import (
	"math/rand"
	"testing"

	"chess-legality/legal"
	"chess-legality/oracle"
)

const endgameFEN = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"

func TestPerftInitialPosition(t *testing.T) {
	e := legal.NewGame()
	want := []uint64{1, 20, 400, 8902}
	if !testing.Short() {
		want = append(want, 197281)
	}
	for depth, n := range want {
		if got := legal.Perft(e, depth); got != n {
			t.Fatalf("perft depth%d: got %d want %d", depth, got, n)
		}
	}
}

func TestPerftEndgame(t *testing.T) {
	e := mustEngine(t, endgameFEN)
	want := []uint64{1, 14, 191, 2812, 43238}
	for depth, n := range want {
		if got := legal.Perft(e, depth); got != n {
			t.Fatalf("endgame perft depth%d: got %d want %d", depth, got, n)
		}
	}
	if e.FEN() != endgameFEN {
		t.Fatalf("perft changed the root position: %s", e.FEN())
	}
}

func TestPerftDivideSumsToPerft(t *testing.T) {
	e := mustEngine(t, endgameFEN)
	div := legal.PerftDivide(e, 3)
	if len(div) != 14 {
		t.Fatalf("root moves: got %d want %d", len(div), 14)
	}
	var sum uint64
	for _, n := range div {
		sum += n
	}
	if sum != 2812 {
		t.Fatalf("divide total: got %d want %d", sum, 2812)
	}
}

func TestPerftStatsCountsWork(t *testing.T) {
	nodes, stats := legal.PerftStats(legal.NewGame(), 3)
	if nodes != 8902 {
		t.Fatalf("nodes: got %d want %d", nodes, 8902)
	}
	// One move per interior node below the root.
	if stats.Moves != 20+400 {
		t.Fatalf("moves: got %d want %d", stats.Moves, 420)
	}
}

// Positions without promotions in reach, rich in pins, checks and en
// passant. Castling rights are dropped on load.
var crossCheckFENs = []string{
	legal.FENStartPos,
	endgameFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - - 0 1",
	"r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 w - - 0 10",
	"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w - f6 0 3",
	"8/8/8/2k5/2pP4/8/B7/4K3 b - d3 0 1",
	"4k3/8/8/8/1K1pP2q/8/8/8 b - e3 0 1",
	"3k4/3p4/8/K1P4r/8/8/8/8 b - - 0 1",
}

func TestPerftMatchesReference(t *testing.T) {
	depth := 3
	if testing.Short() {
		depth = 2
	}
	for _, name := range oracle.Names() {
		ref, err := oracle.Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		for _, fen := range crossCheckFENs {
			e := mustEngine(t, fen)
			want, err := ref.Perft(e.FEN(), depth)
			if err != nil {
				t.Fatalf("%s: %v", name, err)
			}
			if got := legal.Perft(e, depth); got != want {
				t.Fatalf("%s perft(%d) %q: got %d want %d", name, depth, e.FEN(), got, want)
			}
		}
	}
}

// TestRandomGamesMatchReference plays seeded random games and compares the
// full legal-move set with the reference generator after every move.
func TestRandomGamesMatchReference(t *testing.T) {
	ref, err := oracle.Lookup("dragontooth")
	if err != nil {
		t.Fatal(err)
	}
	games, plies := 40, 120
	if testing.Short() {
		games = 8
	}
	rng := rand.New(rand.NewSource(20240607))
	for g := 0; g < games; g++ {
		e := mustEngine(t, crossCheckFENs[g%len(crossCheckFENs)])
		for ply := 0; ply < plies; ply++ {
			if err := oracle.Diff(ref, e); err != nil {
				t.Fatalf("game %d ply %d: %v", g, ply, err)
			}
			if err := e.Validate(); err != nil {
				t.Fatalf("game %d ply %d: %v", g, ply, err)
			}
			moves := e.LegalMoveList(e.SideToMove())
			if len(moves) == 0 {
				break
			}
			m := moves[rng.Intn(len(moves))]
			if p, _ := e.PieceAt(m.From); p.Type() == legal.Pawn && (m.To.Rank() == 0 || m.To.Rank() == 7) {
				break
			}
			if err := e.Play(m); err != nil {
				t.Fatalf("game %d ply %d: play %s: %v", g, ply, m, err)
			}
		}
	}
}
