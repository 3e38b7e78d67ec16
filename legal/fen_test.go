package legal_test

import (
	"errors"
	"testing"

	"chess-legality/legal"
)

func TestParseFENRoundTrip(t *testing.T) {
	cases := []struct{ in, out string }{
		{legal.FENStartPos, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"},
		{"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3", "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w - d6 0 3"},
		{"4k3/8/8/8/8/8/8/4K3", "4k3/8/8/8/8/8/8/4K3 w - - 0 1"},
		{"4k3/8/8/8/8/8/8/4K3 b", "4k3/8/8/8/8/8/8/4K3 b - - 0 1"},
	}
	for _, c := range cases {
		b, err := legal.ParseFEN(c.in)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", c.in, err)
		}
		if got := b.ToFEN(); got != c.out {
			t.Fatalf("ToFEN(%q): got %q want %q", c.in, got, c.out)
		}
	}
}

func TestParseFENEnPassantCandidate(t *testing.T) {
	b, err := legal.ParseFEN("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w - d6 0 3")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	p, ok := b.EnPassantCandidate()
	if !ok || p.Square.String() != "d5" || p.Kind != (legal.Kind{Color: legal.Black, Type: legal.Pawn}) {
		t.Fatalf("candidate: got %v %t want black pawn on d5", p, ok)
	}
}

func TestParseFENErrors(t *testing.T) {
	bad := []string{
		"",
		"8/8/8/8/8/8/8 w - - 0 1",          // seven ranks
		"4k3/8/8/8/8/8/8/4K4 w - - 0 1",    // nine files
		"4k3/8/8/8/8/8/8/4K2 w - - 0 1",    // seven files
		"4k3/8/8/8/8/8/8/4X3 w - - 0 1",    // unknown piece
		"4k3/8/8/8/8/8/8/4K3 x - - 0 1",    // side to move
		"4k3/8/8/8/8/8/8/4K3 w KX - 0 1",   // castling
		"4k3/8/8/8/8/8/8/4K3 w - e9 0 1",   // en passant square
		"4k3/8/8/8/8/8/8/4K3 w - e6 0 1",   // no pawn behind target
		"4k3/8/8/4p3/8/8/8/4K3 w - e3 0 1", // target on the wrong side
		"4k3/8/8/8/8/8/8/4K3 w - - x 1",    // halfmove clock
		"4k3/8/8/8/8/8/8/4K3 w - - 0 0",    // fullmove number
		"4k3/8/8/8/8/8/8/3KK3 w - - 0 1",   // two white kings
	}
	for _, fen := range bad {
		if _, err := legal.ParseFEN(fen); !errors.Is(err, legal.ErrInvalidNotation) {
			t.Fatalf("ParseFEN(%q): got %v want ErrInvalidNotation", fen, err)
		}
	}
}

func TestNewEngineRequiresBothKings(t *testing.T) {
	for _, fen := range []string{"8/8/8/8/8/8/8/4K3 w - - 0 1", "4k3/8/8/8/8/8/8/8 w - - 0 1"} {
		if _, err := legal.NewEngine(fen); !errors.Is(err, legal.ErrInvalidNotation) {
			t.Fatalf("NewEngine(%q): got %v want ErrInvalidNotation", fen, err)
		}
	}
}
