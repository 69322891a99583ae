package genome

import (
	"math/rand"
)

// Resampler replaces the value of a DNA unit with a fresh random value
// drawn from the same domain used at genesis
type Resampler interface {
	Resample(d DNA, rng *rand.Rand)
}

// ResampleFunc adapts a function to the Resampler interface
type ResampleFunc func(d DNA, rng *rand.Rand)

// Resample calls f(d, rng)
func (f ResampleFunc) Resample(d DNA, rng *rand.Rand) {
	f(d, rng)
}

// PointMutator resamples randomly drawn positions. Positions are drawn from
// [0, L) and the loop stops at the first position drawn twice, so between 1
// and L units change per call. The seed advances on every call.
type PointMutator struct {
	seed      int64
	resampler Resampler
}

// NewPointMutator creates a point mutator
func NewPointMutator(seed int64, resampler Resampler) *PointMutator {
	return &PointMutator{
		seed:      seed,
		resampler: resampler,
	}
}

// Seed returns the current seed
func (m *PointMutator) Seed() int64 {
	return m.seed
}

// Mutate perturbs dna in place
func (m *PointMutator) Mutate(dna []DNA) {
	m.mutate(dna)
}

// mutate returns the number of distinct positions resampled
func (m *PointMutator) mutate(dna []DNA) int {
	if len(dna) == 0 || m.resampler == nil {
		return 0
	}

	rng := rand.New(rand.NewSource(m.seed))
	m.seed++

	drawn := make(map[int]struct{}, len(dna))
	for {
		point := rng.Intn(len(dna))
		if _, dup := drawn[point]; dup {
			break
		}
		drawn[point] = struct{}{}
		m.resampler.Resample(dna[point], rng)
	}

	return len(drawn)
}
