package legal

import (
	"fmt"
	"io"
)

// Stats counts the work done by the engine since creation or the last
// ResetStats.
type Stats struct {
	Moves       uint64
	Recomputes  uint64
	Cascades    uint64
	PinsAdded   uint64
	PinsRemoved uint64
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Moves += o.Moves
	s.Recomputes += o.Recomputes
	s.Cascades += o.Cascades
	s.PinsAdded += o.PinsAdded
	s.PinsRemoved += o.PinsRemoved
}

// Stats returns a snapshot of the counters.
func (e *Engine) Stats() Stats { return e.stats }

// ResetStats zeroes the counters.
func (e *Engine) ResetStats() { e.stats = Stats{} }

// WriteTo dumps the counters, one per line.
func (s Stats) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w,
		"moves: %d\nrecomputes: %d\ncheck cascades: %d\npins added: %d\npins removed: %d\n",
		s.Moves, s.Recomputes, s.Cascades, s.PinsAdded, s.PinsRemoved)
	return int64(n), err
}
