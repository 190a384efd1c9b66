// Package scene holds the plotted generations as entities in an ECS world.
//
// Records are ingested once as they appear in the history; the viewer then
// walks every entity each frame, so the whole accumulated history is redrawn.
package scene

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/numevo/camera"
	"github.com/pthm-cable/numevo/components"
	"github.com/pthm-cable/numevo/evolve"
)

// Layout positions generations in scene pixels.
type Layout struct {
	OriginX         float32
	ColumnWidth     float32
	Band            camera.Band
	BestLabelY      float32
	IterationLabelY float32
	PopulationTextY float32
}

// ColumnX returns the x coordinate of a generation's column.
func (l Layout) ColumnX(iteration int) float32 {
	return l.OriginX + float32(iteration)*l.ColumnWidth
}

// Scene is the ECS world of plotted generations. Not safe for concurrent use;
// it belongs to the render loop.
type Scene struct {
	world  *ecs.World
	layout Layout

	dotMap   *ecs.Map2[components.Position, components.Dot]
	bestMap  *ecs.Map2[components.Position, components.Best]
	labelMap *ecs.Map2[components.Position, components.Label]

	dotFilter   *ecs.Filter2[components.Position, components.Dot]
	bestFilter  *ecs.Filter2[components.Position, components.Best]
	labelFilter *ecs.Filter2[components.Position, components.Label]

	generations int
	latest      evolve.Record
	records     []evolve.Record
}

// New creates an empty scene.
func New(layout Layout) *Scene {
	world := ecs.NewWorld()
	return &Scene{
		world:       world,
		layout:      layout,
		dotMap:      ecs.NewMap2[components.Position, components.Dot](world),
		bestMap:     ecs.NewMap2[components.Position, components.Best](world),
		labelMap:    ecs.NewMap2[components.Position, components.Label](world),
		dotFilter:   ecs.NewFilter2[components.Position, components.Dot](world),
		bestFilter:  ecs.NewFilter2[components.Position, components.Best](world),
		labelFilter: ecs.NewFilter2[components.Position, components.Label](world),
	}
}

// Layout returns the scene layout.
func (s *Scene) Layout() Layout {
	return s.layout
}

// Sync ingests every record published since the last call and returns how many were added.
func (s *Scene) Sync(h *evolve.History) int {
	records := h.Since(s.generations)
	for _, r := range records {
		s.Ingest(r)
	}
	return len(records)
}

// Ingest adds one generation to the scene.
func (s *Scene) Ingest(r evolve.Record) {
	x := s.layout.ColumnX(r.Iteration)
	band := s.layout.Band

	for _, n := range r.Population {
		s.dotMap.NewEntity(
			&components.Position{X: x, Y: band.Y(n)},
			&components.Dot{Iteration: r.Iteration, Value: n},
		)
	}

	s.bestMap.NewEntity(
		&components.Position{X: x, Y: band.Y(r.Best)},
		&components.Best{Iteration: r.Iteration, Value: r.Best},
	)

	s.labelMap.NewEntity(
		&components.Position{X: x, Y: s.layout.BestLabelY},
		&components.Label{Iteration: r.Iteration, Text: strconv.Itoa(r.Best), Tone: components.ToneBest},
	)
	s.labelMap.NewEntity(
		&components.Position{X: x, Y: s.layout.IterationLabelY},
		&components.Label{Iteration: r.Iteration, Text: strconv.Itoa(r.Iteration), Tone: components.ToneIteration},
	)
	s.labelMap.NewEntity(
		&components.Position{X: s.layout.OriginX, Y: s.layout.PopulationTextY + float32(r.Iteration)*s.layout.ColumnWidth},
		&components.Label{
			Iteration: r.Iteration,
			Text:      PopulationText(r),
			Align:     components.AlignRightOf,
			Tone:      components.TonePopulation,
		},
	)

	s.generations++
	s.latest = r
	s.records = append(s.records, r)
}

// PopulationText formats the one-line summary of a generation.
func PopulationText(r evolve.Record) string {
	parts := make([]string, len(r.Population))
	for i, n := range r.Population {
		parts[i] = strconv.Itoa(n)
	}
	return fmt.Sprintf("iteration: %d, population: [%s]", r.Iteration, strings.Join(parts, ", "))
}

// IterationAt returns the generation whose column is nearest scene x.
func (l Layout) IterationAt(x float32) int {
	return int(math.Round(float64((x - l.OriginX) / l.ColumnWidth)))
}

// Hover describes the plot under a scene position.
type Hover struct {
	Iteration int
	Value     float64 // value at the cursor height, not necessarily an individual
	Record    evolve.Record
}

// At returns the generation and value under scene position (x, y).
// ok is false outside the band or away from any ingested generation.
func (s *Scene) At(x, y float32) (h Hover, ok bool) {
	if !s.layout.Band.Contains(y) {
		return Hover{}, false
	}
	it := s.layout.IterationAt(x)
	i := slices.IndexFunc(s.records, func(r evolve.Record) bool { return r.Iteration == it })
	if i < 0 {
		return Hover{}, false
	}
	return Hover{
		Iteration: it,
		Value:     s.layout.Band.Value(y),
		Record:    s.records[i],
	}, true
}

// Generations returns the number of ingested generations.
func (s *Scene) Generations() int {
	return s.generations
}

// Latest returns the most recently ingested record.
func (s *Scene) Latest() (evolve.Record, bool) {
	return s.latest, s.generations > 0
}

// Width returns the horizontal extent of the history, used for threshold lines.
func (s *Scene) Width() float32 {
	return float32(s.generations) * s.layout.ColumnWidth
}

// EachDot calls fn for every plotted individual.
func (s *Scene) EachDot(fn func(pos components.Position, dot components.Dot)) {
	query := s.dotFilter.Query()
	for query.Next() {
		pos, dot := query.Get()
		fn(*pos, *dot)
	}
}

// EachBest calls fn for every best marker.
func (s *Scene) EachBest(fn func(pos components.Position, best components.Best)) {
	query := s.bestFilter.Query()
	for query.Next() {
		pos, best := query.Get()
		fn(*pos, *best)
	}
}

// EachLabel calls fn for every generation label.
func (s *Scene) EachLabel(fn func(pos components.Position, label components.Label)) {
	query := s.labelFilter.Query()
	for query.Next() {
		pos, label := query.Get()
		fn(*pos, *label)
	}
}
