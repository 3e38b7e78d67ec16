package oracle

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"chess-legality/legal"
)

// SuiteEntry is one line of a perft suite: a position and the expected node
// count for each listed depth.
type SuiteEntry struct {
	FEN    string
	Line   int
	Depths []int
	Nodes  []uint64
}

// ParseSuite reads the usual perft suite layout, one position per line:
//
//	<fen> ;D1 20 ;D2 400 ;D3 8902
//
// Blank lines and lines starting with '#' are skipped.
func ParseSuite(r io.Reader) ([]SuiteEntry, error) {
	var entries []SuiteEntry
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, ";")
		entry := SuiteEntry{FEN: strings.TrimSpace(parts[0]), Line: lineNo}
		if _, err := legal.ParseFEN(entry.FEN); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		for _, field := range parts[1:] {
			fs := strings.Fields(field)
			if len(fs) != 2 || !strings.HasPrefix(fs[0], "D") {
				return nil, fmt.Errorf("line %d: %w: malformed depth field %q", lineNo, legal.ErrInvalidNotation, field)
			}
			depth, err := strconv.Atoi(fs[0][1:])
			if err != nil || depth < 1 {
				return nil, fmt.Errorf("line %d: %w: bad depth %q", lineNo, legal.ErrInvalidNotation, fs[0])
			}
			nodes, err := strconv.ParseUint(fs[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: bad node count %q", lineNo, legal.ErrInvalidNotation, fs[1])
			}
			entry.Depths = append(entry.Depths, depth)
			entry.Nodes = append(entry.Nodes, nodes)
		}
		entries = append(entries, entry)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Run checks every depth of the entry up to maxDepth against legal.Perft and
// returns a description of each mismatch.
func (s SuiteEntry) Run(maxDepth int) ([]string, error) {
	e, err := legal.NewEngine(s.FEN)
	if err != nil {
		return nil, err
	}
	var failures []string
	for i, depth := range s.Depths {
		if depth > maxDepth {
			continue
		}
		if got := legal.Perft(e, depth); got != s.Nodes[i] {
			failures = append(failures, fmt.Sprintf("line %d D%d: got %d want %d", s.Line, depth, got, s.Nodes[i]))
		}
	}
	return failures, nil
}
