// Package onemax is the reference encoding: a genome is a row of integers in
// [Min, Max] and fitness is their sum, so with Min=0 and Max=1 the optimum
// is all ones.
package onemax

import (
	"context"
	"math/rand"
	"strconv"
	"strings"

	"github.com/ishanwen-byte/pfga-go/internal/types"
	"github.com/ishanwen-byte/pfga-go/pkg/genome"
)

// NumberDNA is a single integer gene
type NumberDNA struct {
	Num int
}

// CopyFrom takes the value of other when it is a NumberDNA
func (d *NumberDNA) CopyFrom(other genome.DNA) {
	if o, ok := other.(*NumberDNA); ok {
		d.Num = o.Num
	}
}

// Clone returns an independent copy
func (d *NumberDNA) Clone() genome.DNA {
	return &NumberDNA{Num: d.Num}
}

func (d *NumberDNA) String() string {
	return strconv.Itoa(d.Num)
}

// Make returns size genes drawn uniformly from [min, max]
func Make(size int, seed int64, min, max int) []genome.DNA {
	rng := rand.New(rand.NewSource(seed))
	dna := make([]genome.DNA, size)
	for i := range dna {
		dna[i] = &NumberDNA{Num: min + rng.Intn(max-min+1)}
	}
	return dna
}

// Resampler draws a new gene value from [Min, Max]
type Resampler struct {
	Min int
	Max int
}

// Resample implements genome.Resampler
func (r Resampler) Resample(d genome.DNA, rng *rand.Rand) {
	if n, ok := d.(*NumberDNA); ok {
		n.Num = r.Min + rng.Intn(r.Max-r.Min+1)
	}
}

// Sum adds up every gene of g
func Sum(g *genome.Genome) int {
	sum := 0
	for _, d := range g.DNA() {
		if n, ok := d.(*NumberDNA); ok {
			sum += n.Num
		}
	}
	return sum
}

// Evaluator caches the gene sum as the genome's fitness
type Evaluator struct{}

// Evaluate implements genome.Evaluator
func (Evaluator) Evaluate(ctx context.Context, g *genome.Genome) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.SetFitness(float64(Sum(g)))
	return nil
}

// RuleBook is the OneMax fitness rule and genome factory
type RuleBook struct {
	config    types.EncodingConfig
	seed      int64
	resampler Resampler
}

// NewRuleBook creates a rule book for the given encoding
func NewRuleBook(config types.EncodingConfig) *RuleBook {
	return &RuleBook{
		config:    config,
		seed:      config.Seed,
		resampler: Resampler{Min: config.Min, Max: config.Max},
	}
}

// Seed returns the seed the next genesis will use
func (rb *RuleBook) Seed() int64 {
	return rb.seed
}

// MutatorFactory returns the factory used for genesis and offspring mutators
func (rb *RuleBook) MutatorFactory() genome.MutatorFactory {
	resampler := rb.resampler
	return func(seed int64) genome.Mutator {
		return genome.NewPointMutator(seed, resampler)
	}
}

// CreateGenome builds a genome with random genes and advances the seed
func (rb *RuleBook) CreateGenome() *genome.Genome {
	factory := rb.MutatorFactory()
	g := genome.New(
		Make(rb.config.GenomeSize, rb.seed, rb.config.Min, rb.config.Max),
		factory(rb.seed),
		genome.NewNPointCrossover(rb.seed, factory),
	)
	g.SetEvaluator(Evaluator{})

	rb.seed++
	return g
}

// IsEligible accepts every genome whose last evaluation did not fail
func (rb *RuleBook) IsEligible(g *genome.Genome) bool {
	return g.Err() == nil
}

// CompareFitness is positive when a has the larger sum
func (rb *RuleBook) CompareFitness(a, b *genome.Genome) int {
	sa, sb := rb.Score(a), rb.Score(b)
	switch {
	case sa > sb:
		return 1
	case sa < sb:
		return -1
	default:
		return 0
	}
}

// Score returns the cached fitness, or the gene sum if none is cached
func (rb *RuleBook) Score(g *genome.Genome) float64 {
	if v, ok := g.Fitness(); ok {
		return v
	}
	return float64(Sum(g))
}

// Print renders the genes of g as a single string
func (rb *RuleBook) Print(g *genome.Genome) string {
	parts := make([]string, 0, g.Len())
	for _, d := range g.DNA() {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, "")
}
