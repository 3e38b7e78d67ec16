package main

import (
	"strings"
	"testing"
)

func runShell(t *testing.T, script string) string {
	t.Helper()
	var out strings.Builder
	shellLoop(strings.NewReader(script), &out)
	return out.String()
}

func TestShellPositionAndLegal(t *testing.T) {
	got := runShell(t, "position startpos moves e2e4 e7e5\nlegal g1\n")
	if !strings.Contains(got, "white knight on g1: e2 f3 h3") {
		t.Fatalf("legal g1: got %q", got)
	}
}

func TestShellFoolsMate(t *testing.T) {
	got := runShell(t, "move f2f3\nmove e7e5\nmove g2g4\nmove d8h4\nstatus\n")
	if !strings.Contains(got, "white: checkmate") {
		t.Fatalf("expected checkmate announcement, got %q", got)
	}
	if !strings.Contains(got, "white to move: checkmate") {
		t.Fatalf("status: got %q", got)
	}
}

func TestShellRejectsOutOfTurnMove(t *testing.T) {
	got := runShell(t, "move e7e5\nmove e2e5\nmove e2e4\nd\n")
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) < 2 || !strings.HasPrefix(lines[0], "error:") || !strings.HasPrefix(lines[1], "error:") {
		t.Fatalf("expected two errors first, got %q", got)
	}
	if !strings.Contains(got, "fen rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b - e3 0 1") {
		t.Fatalf("board after e2e4: got %q", got)
	}
}

func TestShellPerftAndReset(t *testing.T) {
	got := runShell(t, "position fen 8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1\nperft 2\nmove b4c4\nreset\nperft 1\nquit\nperft 1\n")
	want := "nodes 191\nnodes 14\n"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestShellUnknownCommand(t *testing.T) {
	got := runShell(t, "go depth 5\n")
	if !strings.HasPrefix(got, "error: unknown command") {
		t.Fatalf("got %q", got)
	}
}
