package genome

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ishanwen-byte/pfga-go/internal/constants"
)

var (
	// ErrNilGenome is returned when an operator receives a nil genome
	ErrNilGenome = errors.New("genome is nil")

	// ErrLengthMismatch is returned when recombining parents of different lengths
	ErrLengthMismatch = errors.New("dna length mismatch")

	// ErrNoRecombiner is returned when recombining a genome without a recombiner
	ErrNoRecombiner = errors.New("genome has no recombiner")
)

// DNA is one unit of encoded data inside a genome
type DNA interface {
	// CopyFrom overwrites the receiver with the state of other
	CopyFrom(other DNA)
	// Clone returns an independent copy of the receiver
	Clone() DNA
	String() string
}

// Mutator perturbs a DNA sequence in place
type Mutator interface {
	Mutate(dna []DNA)
}

// Recombiner produces two offspring from two ordered parents
type Recombiner interface {
	Recombine(a, b *Genome) (*Genome, *Genome, error)
}

// Evaluator computes fitness for a genome. Implementations store their
// result with SetFitness and must tolerate being called more than once.
type Evaluator interface {
	Evaluate(ctx context.Context, g *Genome) error
}

// EvaluatorFunc adapts a function to the Evaluator interface
type EvaluatorFunc func(ctx context.Context, g *Genome) error

// Evaluate calls f(ctx, g)
func (f EvaluatorFunc) Evaluate(ctx context.Context, g *Genome) error {
	return f(ctx, g)
}

// Genome is a fixed-length DNA sequence with attached operators
type Genome struct {
	id      string
	parents [2]string
	dna     []DNA

	mutator    Mutator
	recombiner Recombiner
	evaluator  Evaluator

	mu        sync.RWMutex
	fitness   float64
	evaluated bool
	err       error
}

// New creates a genome from clones of the given DNA units. The mutator and
// recombiner are shared references, not owned by the genome.
func New(dna []DNA, mutator Mutator, recombiner Recombiner) *Genome {
	units := make([]DNA, len(dna))
	for i, d := range dna {
		units[i] = d.Clone()
	}

	return newGenome(units, mutator, recombiner)
}

// newGenome takes ownership of dna without cloning
func newGenome(dna []DNA, mutator Mutator, recombiner Recombiner) *Genome {
	return &Genome{
		id:         uuid.New().String(),
		dna:        dna,
		mutator:    mutator,
		recombiner: recombiner,
	}
}

// ID returns the unique identity of this genome
func (g *Genome) ID() string {
	return g.id
}

// Parents returns the ids of the genomes this one was recombined from.
// Both are empty for genesis genomes.
func (g *Genome) Parents() (string, string) {
	return g.parents[0], g.parents[1]
}

// DNA returns the genome's DNA units. The slice length is fixed.
func (g *Genome) DNA() []DNA {
	return g.dna
}

// Len returns the number of DNA units
func (g *Genome) Len() int {
	return len(g.dna)
}

// Mutator returns the attached mutator
func (g *Genome) Mutator() Mutator {
	return g.mutator
}

// Recombiner returns the attached recombiner
func (g *Genome) Recombiner() Recombiner {
	return g.recombiner
}

// SetEvaluator attaches the fitness evaluation hook
func (g *Genome) SetEvaluator(e Evaluator) {
	g.evaluator = e
}

// Recombine delegates to this genome's recombiner with (g, other) as parents
func (g *Genome) Recombine(other *Genome) (*Genome, *Genome, error) {
	if other == nil {
		return nil, nil, ErrNilGenome
	}
	if g.recombiner == nil {
		return nil, nil, ErrNoRecombiner
	}
	return g.recombiner.Recombine(g, other)
}

// Mutate applies the attached mutator to this genome's DNA in place.
// Any cached fitness is invalidated.
func (g *Genome) Mutate() {
	if g.mutator == nil {
		return
	}
	g.mutator.Mutate(g.dna)

	g.mu.Lock()
	g.evaluated = false
	g.err = nil
	g.mu.Unlock()
}

// Evaluate runs the evaluation hook. Without a hook it returns immediately.
// The returned error is also recorded and reported by Err.
func (g *Genome) Evaluate(ctx context.Context) error {
	if g.evaluator == nil {
		return nil
	}

	err := g.evaluator.Evaluate(ctx, g)
	g.mu.Lock()
	g.err = err
	g.mu.Unlock()
	return err
}

// SetFitness stores an evaluated fitness value
func (g *Genome) SetFitness(v float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.fitness = v
	g.evaluated = true
}

// Fitness returns the stored fitness and whether one has been set
func (g *Genome) Fitness() (float64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.fitness, g.evaluated
}

// Err returns the error of the most recent evaluation, if any
func (g *Genome) Err() error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.err
}

// Equal reports whether both genomes hold deeply equal DNA sequences
func (g *Genome) Equal(other *Genome) bool {
	if other == nil {
		return false
	}
	if g == other {
		return true
	}
	if len(g.dna) != len(other.dna) {
		return false
	}
	for i := range g.dna {
		if !reflect.DeepEqual(g.dna[i], other.dna[i]) {
			return false
		}
	}
	return true
}

// String concatenates the textual form of every DNA unit
func (g *Genome) String() string {
	var sb strings.Builder
	for _, d := range g.dna {
		sb.WriteString(d.String())
	}
	return sb.String()
}

// ShortID returns the id truncated for log fields
func ShortID(g *Genome) string {
	if g == nil {
		return ""
	}
	id := g.id
	if len(id) > constants.ShortIDLength {
		id = id[:constants.ShortIDLength]
	}
	return id
}
