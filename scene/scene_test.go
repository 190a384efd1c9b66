package scene

import (
	"math"
	"testing"

	"github.com/pthm-cable/numevo/camera"
	"github.com/pthm-cable/numevo/components"
	"github.com/pthm-cable/numevo/evolve"
)

func testLayout() Layout {
	return Layout{
		OriginX:         100,
		ColumnWidth:     30,
		Band:            camera.Band{Max: 256, Top: 200, Bottom: 600},
		BestLabelY:      100,
		IterationLabelY: 125,
		PopulationTextY: 600,
	}
}

func TestIngestCreatesEntities(t *testing.T) {
	s := New(testLayout())
	s.Ingest(evolve.Record{Iteration: 1, Population: []int{0, 64, 128}, Best: 128})
	s.Ingest(evolve.Record{Iteration: 2, Population: []int{128, 130, 140}, Best: 140})

	dots := 0
	s.EachDot(func(pos components.Position, dot components.Dot) {
		dots++
		wantX := float32(100 + 30*dot.Iteration)
		if pos.X != wantX {
			t.Errorf("dot %+v at x=%v, want %v", dot, pos.X, wantX)
		}
		wantY := float32(camera.Level(float64(dot.Value), 256, 200, 600))
		if math.Abs(float64(pos.Y-wantY)) > 0.001 {
			t.Errorf("dot %+v at y=%v, want %v", dot, pos.Y, wantY)
		}
	})
	if dots != 6 {
		t.Errorf("got %d dots, want 6", dots)
	}

	bests := 0
	s.EachBest(func(pos components.Position, best components.Best) {
		bests++
	})
	if bests != 2 {
		t.Errorf("got %d best markers, want 2", bests)
	}

	labels := 0
	s.EachLabel(func(pos components.Position, label components.Label) {
		labels++
	})
	if labels != 6 {
		t.Errorf("got %d labels, want 6", labels)
	}

	if s.Generations() != 2 || s.Width() != 60 {
		t.Errorf("generations=%d width=%v, want 2 and 60", s.Generations(), s.Width())
	}
}

func TestSyncIsIncremental(t *testing.T) {
	h := evolve.NewHistory()
	h.Append(evolve.Record{Iteration: 1, Population: []int{1, 2}, Best: 2})
	s := New(testLayout())

	if n := s.Sync(h); n != 1 {
		t.Fatalf("first Sync = %d, want 1", n)
	}
	if n := s.Sync(h); n != 0 {
		t.Fatalf("repeat Sync = %d, want 0", n)
	}
	h.Append(evolve.Record{Iteration: 2, Population: []int{2, 3}, Best: 3})
	if n := s.Sync(h); n != 1 {
		t.Fatalf("third Sync = %d, want 1", n)
	}

	latest, ok := s.Latest()
	if !ok || latest.Iteration != 2 {
		t.Errorf("Latest() = %+v, %v", latest, ok)
	}
}

func TestPopulationText(t *testing.T) {
	got := PopulationText(evolve.Record{Iteration: 4, Population: []int{7, 150, 3}})
	want := "iteration: 4, population: [7, 150, 3]"
	if got != want {
		t.Errorf("PopulationText = %q, want %q", got, want)
	}
}

func TestPopulationLabelRows(t *testing.T) {
	s := New(testLayout())
	s.Ingest(evolve.Record{Iteration: 3, Population: []int{1}, Best: 1})

	found := false
	s.EachLabel(func(pos components.Position, label components.Label) {
		if label.Tone != components.TonePopulation {
			return
		}
		found = true
		if pos.X != 100 || pos.Y != 690 {
			t.Errorf("population label at (%v, %v), want (100, 690)", pos.X, pos.Y)
		}
		if label.Align != components.AlignRightOf {
			t.Errorf("population label align = %v, want AlignRightOf", label.Align)
		}
	})
	if !found {
		t.Error("no population label")
	}
}

func TestAt(t *testing.T) {
	s := New(testLayout())
	s.Ingest(evolve.Record{Iteration: 1, Population: []int{3, 9}, Best: 9})
	s.Ingest(evolve.Record{Iteration: 2, Population: []int{9, 12}, Best: 12})

	tests := []struct {
		name      string
		x, y      float32
		ok        bool
		iteration int
		value     float64
	}{
		{"on column 1", 130, 600, true, 1, 0},
		{"near column 2", 164, 400, true, 2, 128},
		{"before first", 100, 400, false, 0, 0},
		{"after last", 190, 400, false, 0, 0},
		{"above band", 130, 150, false, 0, 0},
		{"below band", 160, 650, false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := s.At(tt.x, tt.y)
			if ok != tt.ok {
				t.Fatalf("At(%v, %v) ok = %v, want %v", tt.x, tt.y, ok, tt.ok)
			}
			if !ok {
				return
			}
			if h.Iteration != tt.iteration || h.Record.Iteration != tt.iteration {
				t.Errorf("iteration = %d (record %d), want %d", h.Iteration, h.Record.Iteration, tt.iteration)
			}
			if math.Abs(h.Value-tt.value) > 0.01 {
				t.Errorf("value = %f, want %f", h.Value, tt.value)
			}
		})
	}
}
