package telemetry

import (
	"sync"
	"testing"
	"time"

	"github.com/pthm-cable/numevo/evolve"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(evolve.PhaseSelect)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(evolve.PhaseBreed)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average generation duration")
	}
	if stats.Samples != 5 {
		t.Errorf("samples = %d, want 5", stats.Samples)
	}
	if _, ok := stats.PhaseAvg[evolve.PhaseSelect]; !ok {
		t.Error("expected select phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[evolve.PhaseBreed]; !ok {
		t.Error("expected breed phase to be tracked")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(evolve.PhaseScan)
		time.Sleep(10 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.Samples != 5 {
		t.Errorf("samples = %d, want window size 5", stats.Samples)
	}
	if stats.MinTickDuration > stats.MaxTickDuration {
		t.Error("min should not exceed max")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase("fast")
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase("slow")
		time.Sleep(2 * time.Millisecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.PhasePct["slow"] <= stats.PhasePct["fast"] {
		t.Errorf("slow (%.1f%%) should exceed fast (%.1f%%)", stats.PhasePct["slow"], stats.PhasePct["fast"])
	}
}

func TestPerfCollector_Empty(t *testing.T) {
	stats := NewPerfCollector(0).Stats()
	if stats.Samples != 0 || stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Errorf("unexpected empty stats: %+v", stats)
	}
}

func TestPerfCollector_ConcurrentStats(t *testing.T) {
	pc := NewPerfCollector(8)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			pc.StartTick()
			pc.StartPhase(evolve.PhaseBreed)
			pc.EndTick()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = pc.Stats()
		}
	}()
	wg.Wait()
}

func TestPerfStatsToCSV(t *testing.T) {
	s := PerfStats{
		AvgTickDuration: 1500 * time.Microsecond,
		PhasePct:        map[string]float64{evolve.PhaseBreed: 80, evolve.PhaseScan: 5},
	}
	row := s.ToCSV(12)
	if row.Iteration != 12 || row.AvgGenUS != 1500 || row.BreedPct != 80 || row.ScanPct != 5 {
		t.Errorf("unexpected csv row: %+v", row)
	}
}
