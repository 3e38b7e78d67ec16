package legal

import "testing"

func sq(alg string) Square {
	s, err := ParseSquare(alg)
	if err != nil {
		panic(err)
	}
	return s
}

func TestLineDirection(t *testing.T) {
	cases := []struct {
		from, to string
		want     Direction
		ok       bool
	}{
		{"a1", "a8", Direction{0, 1}, true},
		{"h1", "a1", Direction{-1, 0}, true},
		{"c1", "h6", Direction{1, 1}, true},
		{"e4", "b7", Direction{-1, 1}, true},
		{"e4", "f6", Direction{}, false},
		{"e4", "e4", Direction{}, false},
	}
	for _, c := range cases {
		got, ok := lineDirection(sq(c.from), sq(c.to))
		if ok != c.ok || got != c.want {
			t.Fatalf("lineDirection(%s, %s): got %v %t want %v %t", c.from, c.to, got, ok, c.want, c.ok)
		}
	}
}

func TestBetween(t *testing.T) {
	if got := between(sq("a1"), sq("a4")); got != Bitboard(0).Add(sq("a2")).Add(sq("a3")) {
		t.Fatalf("between a1 a4: got %v", got.Squares())
	}
	if got := between(sq("e4"), sq("e5")); got != 0 {
		t.Fatalf("adjacent squares: got %v", got.Squares())
	}
	if got := between(sq("b1"), sq("c3")); got != 0 {
		t.Fatalf("unaligned squares: got %v", got.Squares())
	}
}

func TestStrictlyBetween(t *testing.T) {
	cases := []struct {
		attacker, king, dest string
		want                 bool
	}{
		{"a8", "e8", "c8", true},
		{"a8", "e8", "a8", false},
		{"a8", "e8", "e8", false},
		{"a8", "e8", "f8", false},
		{"b5", "e8", "d7", true},
		{"b5", "e8", "a4", false},
		{"b5", "e8", "d6", false},
		{"e1", "e8", "e5", true},
	}
	for _, c := range cases {
		if got := strictlyBetween(sq(c.attacker), sq(c.king), sq(c.dest)); got != c.want {
			t.Fatalf("strictlyBetween(%s, %s, %s): got %t want %t", c.attacker, c.king, c.dest, got, c.want)
		}
	}
}

func TestAttackIndexFollowsControl(t *testing.T) {
	var idx AttackIndex
	p := &Piece{ID: 3, Control: Bitboard(0).Add(sq("d4")).Add(sq("h8"))}
	idx.Add(p)
	if !idx.At(sq("d4")).Has(3) || !idx.At(sq("h8")).Has(3) || idx.At(sq("a1")).Has(3) {
		t.Fatalf("index after Add out of step")
	}
	idx.Remove(p)
	for s := Square(0); s < 64; s++ {
		if idx.At(s) != 0 {
			t.Fatalf("index after Remove still holds %s", s)
		}
	}
}

func TestCheckSignatureFollowsKing(t *testing.T) {
	e, err := NewEngine("k7/8/8/8/4K3/8/8/4r3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	want := Bitboard(0).Add(sq("e1")).Add(sq("e4"))
	if e.checkSig[White] != want {
		t.Fatalf("signature: got %v want %v", e.checkSig[White].Squares(), want.Squares())
	}
	if e.checkSig[Black] != 0 {
		t.Fatalf("black signature: got %v", e.checkSig[Black].Squares())
	}
	if err := e.Play(Move{From: sq("e4"), To: sq("d4")}); err != nil {
		t.Fatal(err)
	}
	if e.checkSig[White] != 0 || e.IsInCheck(White) {
		t.Fatalf("check survived the king stepping aside")
	}
}
