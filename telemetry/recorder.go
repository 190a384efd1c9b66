package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/pthm-cable/numevo/evolve"
)

// Recorder tails an evolver's history and turns each new generation into
// stats, CSV rows and log lines. It is the history's second reader next to
// the viewer and never writes to it.
type Recorder struct {
	history  *evolve.History
	desired  int
	output   *OutputManager
	perf     *PerfCollector
	logStats bool

	next int // index of the next unseen record
}

// NewRecorder creates a recorder. output and perf may be nil.
func NewRecorder(h *evolve.History, desired int, output *OutputManager, perf *PerfCollector, logStats bool) *Recorder {
	return &Recorder{
		history:  h,
		desired:  desired,
		output:   output,
		perf:     perf,
		logStats: logStats,
	}
}

// Poll processes records published since the last call and returns how many were handled.
func (r *Recorder) Poll() int {
	records := r.history.Since(r.next)
	for _, rec := range records {
		stats := ComputeGenerationStats(rec, r.desired)
		if r.logStats {
			stats.LogStats()
		}
		if err := r.output.WriteGeneration(stats); err != nil {
			slog.Error("failed to write generation", "iteration", rec.Iteration, "error", err)
		}
	}
	r.next += len(records)

	if len(records) > 0 && r.perf != nil {
		perf := r.perf.Stats()
		last := records[len(records)-1].Iteration
		if r.logStats {
			slog.Info("perf", "iteration", last, "stats", perf)
		}
		if err := r.output.WritePerf(perf, last); err != nil {
			slog.Error("failed to write perf", "iteration", last, "error", err)
		}
	}
	return len(records)
}

// Seen returns the number of records processed so far.
func (r *Recorder) Seen() int {
	return r.next
}

// Run polls every interval until ctx is cancelled or done is closed,
// then drains whatever is left.
func (r *Recorder) Run(ctx context.Context, done <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.Poll()
		case <-done:
			r.Poll()
			return
		case <-ctx.Done():
			r.Poll()
			return
		}
	}
}
