package genome

import (
	"fmt"
	"math/rand"
	"sort"
)

// MutatorFactory builds the mutator attached to a newly created offspring
type MutatorFactory func(seed int64) Mutator

// NPointCrossover exchanges a random number of segments between two parents.
// It is deterministic for a given seed and advances the seed on every call.
type NPointCrossover struct {
	seed       int64
	newMutator MutatorFactory
}

// NewNPointCrossover creates a crossover operator. newMutator may be nil,
// in which case offspring carry no mutator.
func NewNPointCrossover(seed int64, newMutator MutatorFactory) *NPointCrossover {
	return &NPointCrossover{
		seed:       seed,
		newMutator: newMutator,
	}
}

// Seed returns the current seed
func (c *NPointCrossover) Seed() int64 {
	return c.seed
}

// Recombine builds two children from parents a and b. Child one takes the
// first segment from a, child two from b, and the sources swap at every cut.
func (c *NPointCrossover) Recombine(a, b *Genome) (*Genome, *Genome, error) {
	if a == nil || b == nil {
		return nil, nil, ErrNilGenome
	}
	if a.Len() != b.Len() {
		return nil, nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, a.Len(), b.Len())
	}

	rng := rand.New(rand.NewSource(c.seed))
	c.seed++

	cuts := CutPoints(rng, a.Len())
	dna1, dna2 := exchange(a.dna, b.dna, cuts)

	c.seed += 2
	child1 := c.offspring(dna1, a, b)

	c.seed += 2
	child2 := c.offspring(dna2, a, b)

	return child1, child2, nil
}

// offspring wraps dna in a genome whose operators derive from the current seed
func (c *NPointCrossover) offspring(dna []DNA, a, b *Genome) *Genome {
	var mutator Mutator
	if c.newMutator != nil {
		mutator = c.newMutator(c.seed)
	}

	child := newGenome(dna, mutator, NewNPointCrossover(c.seed, c.newMutator))
	child.parents = [2]string{a.id, b.id}
	child.evaluator = a.evaluator
	return child
}

// CutPoints draws k distinct cut points, 1 <= k < length, uniformly from
// (0, length), sorts them and appends length as the final boundary.
// For length <= 1 the only boundary is length itself.
func CutPoints(rng *rand.Rand, length int) []int {
	if length <= 1 {
		return []int{length}
	}

	k := 1 + rng.Intn(length-1)
	return append(drawCutPoints(rng, k, length), length)
}

// drawCutPoints redraws on collision until k distinct points are collected
func drawCutPoints(rng *rand.Rand, k, length int) []int {
	seen := make(map[int]struct{}, k)
	points := make([]int, 0, k)
	for len(points) < k {
		p := 1 + rng.Intn(length-1)
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		points = append(points, p)
	}

	sort.Ints(points)
	return points
}

// exchange copies alternating segments of a and b into two fresh sequences
func exchange(a, b []DNA, cuts []int) ([]DNA, []DNA) {
	ch1 := make([]DNA, len(a))
	ch2 := make([]DNA, len(a))

	fromFirst := true
	start := 0
	for _, end := range cuts {
		for i := start; i < end; i++ {
			if fromFirst {
				ch1[i] = a[i].Clone()
				ch2[i] = b[i].Clone()
			} else {
				ch1[i] = b[i].Clone()
				ch2[i] = a[i].Clone()
			}
		}
		start = end
		fromFirst = !fromFirst
	}

	return ch1, ch2
}
