package legal

import "fmt"

// Perft counts leaf nodes (move sequences) from the position for a given
// depth, starting with the side to move. Every child is played on a clone.
func Perft(e *Engine, depth int) uint64 {
	var stats Stats
	return perftRec(e, depth, &stats)
}

// PerftStats is Perft that also sums the engine counters of every node.
func PerftStats(e *Engine, depth int) (uint64, Stats) {
	var stats Stats
	nodes := perftRec(e, depth, &stats)
	return nodes, stats
}

func perftRec(e *Engine, depth int, stats *Stats) uint64 {
	if depth == 0 {
		return 1
	}
	side := e.SideToMove()
	if depth == 1 {
		return uint64(e.TotalLegalMoveCount(side))
	}
	var nodes uint64
	for _, m := range e.LegalMoveList(side) {
		child := e.Clone()
		if err := child.Play(m); err != nil {
			panic(fmt.Sprintf("legal: perft replay of %s failed: %v", m, err))
		}
		stats.Add(child.stats)
		nodes += perftRec(child, depth-1, stats)
	}
	return nodes
}

// PerftDivide returns a map from each legal root move to the number of leaf
// nodes reachable from that move at the given depth.
func PerftDivide(e *Engine, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range e.LegalMoveList(e.SideToMove()) {
		child := e.Clone()
		if err := child.Play(m); err != nil {
			panic(fmt.Sprintf("legal: perft replay of %s failed: %v", m, err))
		}
		result[m] = Perft(child, depth-1)
	}
	return result
}
