// Package oracle wraps independent move generators so the incremental engine
// can be checked against them. Positions are exchanged as FEN strings; pass
// the engine's own FEN so castling rights are already stripped.
package oracle

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"chess-legality/legal"
)

// ErrUnknownReference is returned by Lookup for an unregistered name.
var ErrUnknownReference = errors.New("unknown reference generator")

// Reference is a move generator used as ground truth.
type Reference interface {
	Name() string
	// LegalMoves returns the legal moves of the side to move. Promotions
	// collapse to one move per source and destination.
	LegalMoves(fen string) ([]legal.Move, error)
	// InCheck reports whether the side to move is in check.
	InCheck(fen string) (bool, error)
	// Perft counts leaf nodes at depth, promotions counted once each.
	Perft(fen string, depth int) (uint64, error)
}

var references = map[string]Reference{
	"dragontooth": Dragontooth{},
	"goose":       Goose{},
}

// Lookup returns the reference generator registered under name.
func Lookup(name string) (Reference, error) {
	r, ok := references[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownReference, name, strings.Join(Names(), ", "))
	}
	return r, nil
}

// Names lists the registered generators in order.
func Names() []string {
	names := maps.Keys(references)
	slices.Sort(names)
	return names
}

// Diff compares the engine's legal moves for the side to move with ref and
// describes the first disagreement. It returns nil when both agree.
func Diff(ref Reference, e *legal.Engine) error {
	fen := e.FEN()
	want, err := ref.LegalMoves(fen)
	if err != nil {
		return err
	}
	got := e.LegalMoveList(e.SideToMove())
	sortMoves(got)

	var missing, extra []string
	for _, m := range want {
		if !slices.Contains(got, m) {
			missing = append(missing, m.String())
		}
	}
	for _, m := range got {
		if !slices.Contains(want, m) {
			extra = append(extra, m.String())
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		return fmt.Errorf("%s disagrees on %q: missing %v, extra %v", ref.Name(), fen, missing, extra)
	}

	check, err := ref.InCheck(fen)
	if err != nil {
		return err
	}
	if check != e.IsInCheck(e.SideToMove()) {
		return fmt.Errorf("%s disagrees on check in %q: reference %t", ref.Name(), fen, check)
	}
	return nil
}

// sortMoves orders moves by source then destination.
func sortMoves(ms []legal.Move) {
	keys := make([]int, len(ms))
	for i, m := range ms {
		keys[i] = int(m.From)<<6 | int(m.To)
	}
	slices.Sort(keys)
	for i, k := range keys {
		ms[i] = legal.Move{From: legal.Square(k >> 6), To: legal.Square(k & 63)}
	}
}

// dedupe drops repeated moves from a sorted slice.
func dedupe(ms []legal.Move) []legal.Move {
	sortMoves(ms)
	return slices.Compact(ms)
}

// squareFromIndex converts a rank-major index (a1=0, b1=1, ...) into a Square.
func squareFromIndex(idx int) legal.Square {
	return legal.NewSquare(idx%8, idx/8)
}

// checkFEN rejects positions the engine itself cannot load, so a malformed
// string never reaches a generator that panics on bad input.
func checkFEN(fen string) error {
	_, err := legal.ParseFEN(fen)
	return err
}
