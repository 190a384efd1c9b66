// Package evolve runs a genetic algorithm that breeds integers toward a
// target value and publishes every generation to an append-only History.
package evolve

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// ErrStopped is returned by Run when Stop was called before convergence.
var ErrStopped = errors.New("evolve: stopped")

// ErrRunning is returned by Run when the evolver is already running.
var ErrRunning = errors.New("evolve: already running")

// Phase names reported to a PhaseTimer for each generation.
const (
	PhaseSelect  = "select"
	PhaseBreed   = "breed"
	PhaseScan    = "scan"
	PhasePublish = "publish"
)

// PhaseTimer receives per-generation phase timings.
// Calls arrive from the evolution goroutine only.
type PhaseTimer interface {
	StartTick()
	StartPhase(phase string)
	EndTick()
}

// Params holds the evolution parameters. Out-of-range values are clamped by New.
type Params struct {
	DesiredNumber  int
	PopulationSize int
	MaxNumber      int
	CrossRange     int
	Sleep          time.Duration
	MaxGenerations int // 0 = unlimited
}

// state is owned by the evolution goroutine.
type state struct {
	desired    int
	population []int
	best       int
	hasBest    bool // false stands for "no candidate yet"
	iteration  int
}

// distanceToBest is zero for every value until a best exists,
// which keeps the stable sort in insertion order.
func (s *state) distanceToBest(n int) int {
	if !s.hasBest {
		return 0
	}
	return abs(n - s.best)
}

// consider replaces the best with n unless n is strictly further from the target.
func (s *state) consider(n int) {
	if !s.hasBest || abs(s.desired-n) <= abs(s.desired-s.best) {
		s.best = n
		s.hasBest = true
	}
}

func (s *state) converged() bool {
	return s.hasBest && s.best == s.desired
}

// Evolver breeds a fixed-size population toward a desired number.
type Evolver struct {
	params   Params
	bitWidth int
	poolSize int

	rng     *rand.Rand
	state   *state
	history *History
	timer   PhaseTimer

	running   atomic.Bool
	converged atomic.Bool
	stopCh    chan struct{}
	stopOnce  sync.Once
	done      chan struct{}
	err       error // valid once done is closed
}

// New creates an evolver with a random starting population.
// A nil rng uses a time-seeded source.
func New(p Params, rng *rand.Rand) *Evolver {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	p = clampParams(p)
	width := BitWidth(p.MaxNumber)

	pop := make([]int, p.PopulationSize)
	for i := range pop {
		pop[i] = rng.Intn(p.MaxNumber + 1)
	}
	slog.Info("initial population", "population", pop)

	return &Evolver{
		params:   p,
		bitWidth: width,
		poolSize: PoolSize(p.PopulationSize),
		rng:      rng,
		state:    &state{desired: p.DesiredNumber, population: pop},
		history:  NewHistory(),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// clampParams applies the silent range corrections.
func clampParams(p Params) Params {
	p.MaxNumber = max(p.MaxNumber, 1)
	p.DesiredNumber = min(max(p.DesiredNumber, 0), p.MaxNumber)
	p.PopulationSize = max(p.PopulationSize, 2)
	p.CrossRange = min(max(p.CrossRange, 0), BitWidth(p.MaxNumber)/2)
	p.Sleep = max(p.Sleep, 0)
	p.MaxGenerations = max(p.MaxGenerations, 0)
	return p
}

// PoolSize returns the breeding pool size for a population: a quarter, at least 2.
func PoolSize(populationSize int) int {
	return min(max(populationSize/4, 2), max(populationSize, 2))
}

// SetPhaseTimer installs a timer. Must be called before Start or Run.
func (e *Evolver) SetPhaseTimer(t PhaseTimer) {
	e.timer = t
}

// Params returns the clamped parameters in use.
func (e *Evolver) Params() Params { return e.params }

// Desired returns the clamped target value.
func (e *Evolver) Desired() int { return e.params.DesiredNumber }

// BitWidth returns the genome length in bits.
func (e *Evolver) BitWidth() int { return e.bitWidth }

// PoolSize returns the number of individuals kept for breeding.
func (e *Evolver) PoolSize() int { return e.poolSize }

// PopulationSize returns the clamped population size.
func (e *Evolver) PopulationSize() int { return e.params.PopulationSize }

// History returns the shared generation log.
func (e *Evolver) History() *History { return e.history }

// Converged reports whether the published best equals the target.
func (e *Evolver) Converged() bool { return e.converged.Load() }

// Start launches Run in a background goroutine. Subsequent calls are no-ops.
func (e *Evolver) Start(ctx context.Context) {
	if e.running.Load() {
		return
	}
	go func() {
		if err := e.Run(ctx); err != nil && !errors.Is(err, ErrRunning) {
			slog.Info("evolution ended", "reason", err)
		}
	}()
}

// Stop asks the evolution loop to exit at its next boundary. Safe to call repeatedly.
func (e *Evolver) Stop() {
	e.stopOnce.Do(func() { close(e.stopCh) })
}

// Done is closed once Run returns.
func (e *Evolver) Done() <-chan struct{} { return e.done }

// Wait blocks until Run returns and reports its error.
func (e *Evolver) Wait() error {
	<-e.done
	return e.err
}

// Run evolves until the target is matched, MaxGenerations is reached,
// ctx is cancelled (ctx.Err()) or Stop is called (ErrStopped).
func (e *Evolver) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer close(e.done)
	e.err = e.loop(ctx)
	return e.err
}

func (e *Evolver) loop(ctx context.Context) error {
	s := e.state
	for !s.converged() {
		if limit := e.params.MaxGenerations; limit > 0 && s.iteration >= limit {
			slog.Info("generation limit reached", "iteration", s.iteration, "best", s.best)
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.stopCh:
			return ErrStopped
		default:
		}

		if e.timer != nil {
			e.timer.StartTick()
		}
		rec := e.step(s)
		e.phase(PhasePublish)
		e.history.Append(rec)
		if e.timer != nil {
			e.timer.EndTick()
		}
		slog.Debug("generation", "record", rec)

		if s.converged() {
			e.converged.Store(true)
			slog.Info("target reached", "iteration", s.iteration, "best", s.best)
			return nil
		}
		if err := e.sleep(ctx); err != nil {
			return err
		}
	}
	return nil
}

// step produces the next generation and returns its record.
func (e *Evolver) step(s *state) Record {
	s.iteration++

	e.phase(PhaseSelect)
	pool := e.selectPool(s)

	e.phase(PhaseBreed)
	next := make([]int, 0, e.params.PopulationSize)
	for range e.params.PopulationSize {
		next = append(next, e.mate(s, pool))
	}
	s.population = next

	e.phase(PhaseScan)
	for _, n := range s.population {
		s.consider(n)
	}

	return newRecord(s.iteration, s.population, s.best)
}

// selectPool sorts the population by distance to the best and keeps the head.
func (e *Evolver) selectPool(s *state) []int {
	slices.SortStableFunc(s.population, func(a, b int) int {
		return cmp.Compare(s.distanceToBest(a), s.distanceToBest(b))
	})
	return slices.Clone(s.population[:e.poolSize])
}

// mate breeds two pool members and returns the child closer to the best.
func (e *Evolver) mate(s *state, pool []int) int {
	e.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	male := Encode(pool[0], e.bitWidth)
	female := Encode(pool[1], e.bitWidth)

	// Crossover: swap a contiguous block starting in the first half.
	if half := e.bitWidth / 2; half > 0 {
		cross := e.rng.Intn(half)
		for j := range e.params.CrossRange {
			male[cross+j], female[cross+j] = female[cross+j], male[cross+j]
		}
	}

	// Mutation: same bit in both offspring.
	bit := e.rng.Intn(e.bitWidth)
	male[bit] ^= 1
	female[bit] ^= 1

	a := min(Decode(male), e.params.MaxNumber)
	b := min(Decode(female), e.params.MaxNumber)
	if s.distanceToBest(b) < s.distanceToBest(a) {
		return b
	}
	return a
}

func (e *Evolver) phase(name string) {
	if e.timer != nil {
		e.timer.StartPhase(name)
	}
}

// sleep waits for the configured generation delay.
func (e *Evolver) sleep(ctx context.Context) error {
	if e.params.Sleep <= 0 {
		return nil
	}
	t := time.NewTimer(e.params.Sleep)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-e.stopCh:
		return ErrStopped
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
