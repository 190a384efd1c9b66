package evolve

import (
	"math/rand"
	"slices"
	"testing"
)

func TestConsiderPrefersNewerOnTie(t *testing.T) {
	s := &state{desired: 10}

	steps := []struct {
		candidate int
		wantBest  int
	}{
		{8, 8},   // first candidate always taken
		{12, 12}, // same distance, newer wins
		{7, 12},  // further away
		{13, 12}, // further away on the other side
		{8, 8},   // tie again
		{10, 10},
		{9, 10},
	}

	for i, st := range steps {
		s.consider(st.candidate)
		if !s.hasBest || s.best != st.wantBest {
			t.Fatalf("step %d: consider(%d) left best=%d, want %d", i, st.candidate, s.best, st.wantBest)
		}
	}
	if !s.converged() {
		t.Error("best equals desired, should be converged")
	}
}

// expectedChildren breeds male and female with integer masks: a block of
// crossRange bits starting at big-endian index cross is swapped, then
// big-endian bit index bit is flipped in both.
func expectedChildren(male, female, width, cross, crossRange, bit int) (int, int) {
	mask := 0
	for j := range crossRange {
		mask |= 1 << (width - 1 - (cross + j))
	}
	a := male&^mask | female&mask
	b := female&^mask | male&mask
	flip := 1 << (width - 1 - bit)
	return a ^ flip, b ^ flip
}

func TestMateMatchesHandBreeding(t *testing.T) {
	const maxNumber = 15 // 4 bits, crossover point in [0, 1]
	tests := []struct {
		name       string
		pool       []int
		crossRange int
		best       int
		hasBest    bool
	}{
		{"no best keeps first child", []int{12, 3}, 2, 0, false},
		{"single bit swap toward best", []int{12, 3}, 1, 5, true},
		{"two bit swap toward best", []int{9, 6}, 2, 14, true},
		{"no crossover", []int{10, 5}, 0, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := int64(1); seed <= 25; seed++ {
				e := newTestEvolver(Params{
					DesiredNumber:  7,
					PopulationSize: 4,
					MaxNumber:      maxNumber,
					CrossRange:     tt.crossRange,
				}, seed)
				s := &state{desired: 7, best: tt.best, hasBest: tt.hasBest}

				// Identically seeded sources replay the same draws.
				e.rng = rand.New(rand.NewSource(seed))
				replay := rand.New(rand.NewSource(seed))

				order := slices.Clone(tt.pool)
				replay.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
				cross := replay.Intn(e.bitWidth / 2)
				bit := replay.Intn(e.bitWidth)

				a, b := expectedChildren(order[0], order[1], e.bitWidth, cross, tt.crossRange, bit)
				want := a
				if s.distanceToBest(b) < s.distanceToBest(a) {
					want = b
				}

				got := e.mate(s, slices.Clone(tt.pool))
				if got != want {
					t.Fatalf("seed %d: mate(%v) = %d, want %d (parents %v, cross %d, bit %d)",
						seed, tt.pool, got, want, order, cross, bit)
				}
			}
		})
	}
}

func TestExpectedChildren(t *testing.T) {
	// 1100 x 0011 with a two-bit block at 0 gives 0000 and 1111;
	// flipping bit 3 in both gives 0001 and 1110.
	a, b := expectedChildren(12, 3, 4, 0, 2, 3)
	if a != 1 || b != 14 {
		t.Fatalf("expectedChildren = (%d, %d), want (1, 14)", a, b)
	}

	// Swapping bits between parents and flipping the same bit in both
	// children never changes where the two differ.
	for _, p := range [][2]int{{12, 3}, {9, 6}, {0, 15}, {5, 5}} {
		for cross := range 2 {
			for bit := range 4 {
				a, b := expectedChildren(p[0], p[1], 4, cross, 2, bit)
				if a^b != p[0]^p[1] {
					t.Errorf("parents %v cross %d bit %d: children %d, %d", p, cross, bit, a, b)
				}
			}
		}
	}
}
