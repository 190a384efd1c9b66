package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/numevo/evolve"
)

// GenerationStats holds aggregated statistics for one generation.
type GenerationStats struct {
	Iteration    int `csv:"iteration"`
	Desired      int `csv:"desired"`
	Best         int `csv:"best"`
	BestDistance int `csv:"best_distance"`

	// Population distribution
	PopSize   int     `csv:"pop_size"`
	PopMean   float64 `csv:"pop_mean"`
	PopStd    float64 `csv:"pop_std"`
	PopMin    float64 `csv:"pop_min"`
	PopP50    float64 `csv:"pop_p50"`
	PopMax    float64 `csv:"pop_max"`
	Distinct  int     `csv:"distinct"`
	AtTarget  int     `csv:"at_target"`
	MeanError float64 `csv:"mean_error"` // Mean absolute distance to the target
}

// ComputeGenerationStats summarizes a published record against the target.
func ComputeGenerationStats(r evolve.Record, desired int) GenerationStats {
	s := GenerationStats{
		Iteration:    r.Iteration,
		Desired:      desired,
		Best:         r.Best,
		BestDistance: absInt(r.Best - desired),
		PopSize:      len(r.Population),
	}
	if len(r.Population) == 0 {
		return s
	}

	values := make([]float64, len(r.Population))
	errs := make([]float64, len(r.Population))
	seen := make(map[int]struct{}, len(r.Population))
	for i, n := range r.Population {
		values[i] = float64(n)
		errs[i] = math.Abs(float64(n - desired))
		seen[n] = struct{}{}
		if n == desired {
			s.AtTarget++
		}
	}
	s.Distinct = len(seen)

	if len(values) > 1 {
		s.PopMean, s.PopStd = stat.MeanStdDev(values, nil)
	} else {
		s.PopMean = values[0]
	}
	s.MeanError = stat.Mean(errs, nil)
	s.PopMin = floats.Min(values)
	s.PopMax = floats.Max(values)

	sort.Float64s(values)
	s.PopP50 = stat.Quantile(0.5, stat.Empirical, values, nil)

	return s
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("iteration", s.Iteration),
		slog.Int("desired", s.Desired),
		slog.Int("best", s.Best),
		slog.Int("best_distance", s.BestDistance),
		slog.Int("pop_size", s.PopSize),
		slog.Float64("pop_mean", s.PopMean),
		slog.Float64("pop_std", s.PopStd),
		slog.Float64("pop_min", s.PopMin),
		slog.Float64("pop_p50", s.PopP50),
		slog.Float64("pop_max", s.PopMax),
		slog.Int("distinct", s.Distinct),
		slog.Int("at_target", s.AtTarget),
		slog.Float64("mean_error", s.MeanError),
	)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	slog.Info("stats", "generation", s)
}
