package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/numevo/evolve"
)

func TestComputeGenerationStats(t *testing.T) {
	r := evolve.Record{Iteration: 3, Population: []int{2, 4, 4, 4, 5, 5, 7, 9}, Best: 5}
	s := ComputeGenerationStats(r, 5)

	if s.Iteration != 3 || s.Best != 5 || s.BestDistance != 0 {
		t.Errorf("unexpected header fields: %+v", s)
	}
	if s.PopSize != 8 {
		t.Errorf("pop_size = %d, want 8", s.PopSize)
	}
	if math.Abs(s.PopMean-5) > 1e-9 {
		t.Errorf("mean = %v, want 5", s.PopMean)
	}
	// Sample standard deviation of the classic 2,4,4,4,5,5,7,9 set
	if math.Abs(s.PopStd-2.138) > 0.001 {
		t.Errorf("std = %v, want ~2.138", s.PopStd)
	}
	if s.PopMin != 2 || s.PopMax != 9 {
		t.Errorf("min/max = %v/%v, want 2/9", s.PopMin, s.PopMax)
	}
	if s.PopP50 != 4 {
		t.Errorf("p50 = %v, want 4", s.PopP50)
	}
	if s.Distinct != 5 {
		t.Errorf("distinct = %d, want 5", s.Distinct)
	}
	if s.AtTarget != 2 {
		t.Errorf("at_target = %d, want 2", s.AtTarget)
	}
	// |2-5|+|4-5|*3+0+0+|7-5|+|9-5| = 3+3+2+4 = 12
	if math.Abs(s.MeanError-1.5) > 1e-9 {
		t.Errorf("mean_error = %v, want 1.5", s.MeanError)
	}
}

func TestComputeGenerationStatsBestDistance(t *testing.T) {
	s := ComputeGenerationStats(evolve.Record{Iteration: 1, Population: []int{10, 20}, Best: 20}, 30)
	if s.BestDistance != 10 {
		t.Errorf("best_distance = %d, want 10", s.BestDistance)
	}
}

func TestComputeGenerationStatsEmpty(t *testing.T) {
	s := ComputeGenerationStats(evolve.Record{Iteration: 1}, 5)
	if s.PopSize != 0 || s.PopMean != 0 || s.PopStd != 0 {
		t.Errorf("empty population should produce zero stats: %+v", s)
	}
}
