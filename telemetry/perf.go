package telemetry

import (
	"log/slog"
	"sync"
	"time"

	"github.com/pthm-cable/numevo/evolve"
)

// phases lists the evolver phases in execution order.
var phases = []string{
	evolve.PhaseSelect,
	evolve.PhaseBreed,
	evolve.PhaseScan,
	evolve.PhasePublish,
}

// PerfSample holds timing data for a single generation.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector tracks generation timing over a rolling window.
// It implements evolve.PhaseTimer; timing calls come from the evolution
// goroutine while Stats may be read from any goroutine.
type PerfCollector struct {
	mu sync.Mutex

	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	tickStart     time.Time
	phaseStart    time.Time
	lastPhase     string
}

var _ evolve.PhaseTimer = (*PerfCollector)(nil)

// NewPerfCollector creates a new performance collector.
// windowSize: number of generations to average over.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartTick begins timing a new generation.
func (p *PerfCollector) StartTick() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tickStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase.
func (p *PerfCollector) StartPhase(phase string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	// End previous phase if any
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndTick finishes timing the current generation and records the sample.
func (p *PerfCollector) EndTick() {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		TickDuration: now.Sub(p.tickStart),
		Phases:       p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total generation time
	PhasePct map[string]float64

	Samples int
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg: make(map[string]time.Duration),
			PhasePct: make(map[string]float64),
		}
	}

	var totalTick time.Duration
	var minTick, maxTick time.Duration
	phaseSum := make(map[string]time.Duration)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		totalTick += s.TickDuration

		if i == 0 || s.TickDuration < minTick {
			minTick = s.TickDuration
		}
		if s.TickDuration > maxTick {
			maxTick = s.TickDuration
		}

		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avgTick := totalTick / time.Duration(p.sampleCount)

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avgTick > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avgTick) * 100
		}
	}

	return PerfStats{
		AvgTickDuration: avgTick,
		MinTickDuration: minTick,
		MaxTickDuration: maxTick,
		PhaseAvg:        phaseAvg,
		PhasePct:        phasePct,
		Samples:         p.sampleCount,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_gen_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_gen_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_gen_us", s.MaxTickDuration.Microseconds()),
		slog.Int("samples", s.Samples),
	}
	for _, phase := range phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Iteration  int     `csv:"iteration"`
	AvgGenUS   int64   `csv:"avg_gen_us"`
	MinGenUS   int64   `csv:"min_gen_us"`
	MaxGenUS   int64   `csv:"max_gen_us"`
	SelectPct  float64 `csv:"select_pct"`
	BreedPct   float64 `csv:"breed_pct"`
	ScanPct    float64 `csv:"scan_pct"`
	PublishPct float64 `csv:"publish_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(iteration int) PerfStatsCSV {
	return PerfStatsCSV{
		Iteration:  iteration,
		AvgGenUS:   s.AvgTickDuration.Microseconds(),
		MinGenUS:   s.MinTickDuration.Microseconds(),
		MaxGenUS:   s.MaxTickDuration.Microseconds(),
		SelectPct:  s.PhasePct[evolve.PhaseSelect],
		BreedPct:   s.PhasePct[evolve.PhaseBreed],
		ScanPct:    s.PhasePct[evolve.PhaseScan],
		PublishPct: s.PhasePct[evolve.PhasePublish],
	}
}
