package legal_test

import (
	"errors"
	"testing"

	"chess-legality/legal"
)

func TestSquareLayout(t *testing.T) {
	cases := []struct {
		alg  string
		want legal.Square
	}{
		{"a1", 0}, {"a2", 1}, {"a8", 7}, {"b1", 8}, {"e4", 35}, {"h8", 63},
	}
	for _, c := range cases {
		sq, err := legal.ParseSquare(c.alg)
		if err != nil {
			t.Fatalf("ParseSquare(%q): %v", c.alg, err)
		}
		if sq != c.want {
			t.Fatalf("ParseSquare(%q): got %d want %d", c.alg, sq, c.want)
		}
		if sq.String() != c.alg {
			t.Fatalf("String(%d): got %q want %q", sq, sq.String(), c.alg)
		}
	}
	if legal.NoSquare.String() != "-" {
		t.Fatalf("NoSquare.String(): got %q", legal.NoSquare.String())
	}
}

func TestParseSquareRejects(t *testing.T) {
	for _, alg := range []string{"", "e", "i1", "a9", "a0", "e44", "E4"} {
		if _, err := legal.ParseSquare(alg); !errors.Is(err, legal.ErrInvalidNotation) {
			t.Fatalf("ParseSquare(%q): got %v want ErrInvalidNotation", alg, err)
		}
	}
}

func TestParseMove(t *testing.T) {
	m, err := legal.ParseMove(" E2E4 ")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if m.String() != "e2e4" {
		t.Fatalf("ParseMove: got %s want e2e4", m)
	}
	for _, s := range []string{"e2", "e2e4q", "e2e9", "z2e4"} {
		if _, err := legal.ParseMove(s); !errors.Is(err, legal.ErrInvalidNotation) {
			t.Fatalf("ParseMove(%q): got %v want ErrInvalidNotation", s, err)
		}
	}
}

func countCandidates(c *legal.Cursor, stopAfterFirst bool) (total, starts int) {
	for _, ok := c.Next(); ok; _, ok = c.Next() {
		total++
		if c.RayStart() {
			starts++
			if stopAfterFirst {
				c.StopRay()
			}
		}
	}
	return total, starts
}

func TestCursor(t *testing.T) {
	game := mustEngine(t, "4k3/8/8/8/3R4/8/P7/N3K3 w - - 0 1")

	rook := pieceOn(t, game, "d4")
	cur := rook.Cursor()
	if total, starts := countCandidates(cur, false); total != 14 || starts != 4 {
		t.Fatalf("rook d4: got %d squares %d rays want 14 and 4", total, starts)
	}
	cur.Reset()
	if total, _ := countCandidates(cur, true); total != 4 {
		t.Fatalf("rook d4 with StopRay: got %d want 4", total)
	}

	knight := pieceOn(t, game, "a1")
	if total, _ := countCandidates(knight.Cursor(), false); total != 2 {
		t.Fatalf("knight a1: got %d want 2", total)
	}

	// An unmoved pawn on the edge: two pushes and one diagonal.
	pawn := pieceOn(t, game, "a2")
	if total, _ := countCandidates(pawn.Cursor(), false); total != 3 {
		t.Fatalf("pawn a2: got %d want 3", total)
	}

	// StopRay is ignored by stepping pieces.
	king := pieceOn(t, game, "e1")
	if total, _ := countCandidates(king.Cursor(), true); total != 5 {
		t.Fatalf("king e1: got %d want 5", total)
	}
}
