package evolve

import (
	"log/slog"
	"sync"
)

// Record is the published snapshot of one generation.
// Population is a private copy and must not be modified by readers.
type Record struct {
	Iteration  int
	Population []int
	Best       int
}

// newRecord copies population so the evolver can keep reusing its buffers.
func newRecord(iteration int, population []int, best int) Record {
	pop := make([]int, len(population))
	copy(pop, population)
	return Record{Iteration: iteration, Population: pop, Best: best}
}

// LogValue implements slog.LogValuer for structured logging.
func (r Record) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("iteration", r.Iteration),
		slog.Int("best", r.Best),
		slog.Any("population", r.Population),
	)
}

// History is an append-only log of generation records.
// A single writer appends; any number of readers may poll concurrently.
type History struct {
	mu      sync.RWMutex
	records []Record
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Append publishes a fully built record.
func (h *History) Append(r Record) {
	h.mu.Lock()
	h.records = append(h.records, r)
	h.mu.Unlock()
}

// Len returns the number of published records.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.records)
}

// Snapshot returns a copy of every published record.
func (h *History) Snapshot() []Record {
	return h.Since(0)
}

// Since returns a copy of the records published at index n and later.
// Returns nil if there is nothing new.
func (h *History) Since(n int) []Record {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if n < 0 {
		n = 0
	}
	if n >= len(h.records) {
		return nil
	}
	out := make([]Record, len(h.records)-n)
	copy(out, h.records[n:])
	return out
}

// Last returns the most recent record, if any.
func (h *History) Last() (Record, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.records) == 0 {
		return Record{}, false
	}
	return h.records[len(h.records)-1], true
}
