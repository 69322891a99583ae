package genome

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// intDNA is a minimal DNA unit for tests
type intDNA struct {
	v int
}

func (d *intDNA) CopyFrom(other DNA) { d.v = other.(*intDNA).v }
func (d *intDNA) Clone() DNA         { return &intDNA{v: d.v} }
func (d *intDNA) String() string     { return strconv.Itoa(d.v) }

func sequence(values ...int) []DNA {
	dna := make([]DNA, len(values))
	for i, v := range values {
		dna[i] = &intDNA{v: v}
	}
	return dna
}

func valuesOf(g *Genome) []int {
	out := make([]int, g.Len())
	for i, d := range g.DNA() {
		out[i] = d.(*intDNA).v
	}
	return out
}

var bump = ResampleFunc(func(d DNA, rng *rand.Rand) {
	d.(*intDNA).v = 100 + rng.Intn(100)
})

func newTestGenome(seed int64, values ...int) *Genome {
	factory := func(s int64) Mutator { return NewPointMutator(s, bump) }
	return New(sequence(values...), factory(seed), NewNPointCrossover(seed, factory))
}

func TestNewClonesDNA(t *testing.T) {
	src := sequence(1, 2, 3)
	g := New(src, nil, nil)

	src[0].(*intDNA).v = 42
	assert.Equal(t, []int{1, 2, 3}, valuesOf(g))
	assert.Equal(t, 3, g.Len())
	assert.NotEmpty(t, g.ID())
}

func TestGenomeEqual(t *testing.T) {
	g1 := New(sequence(1, 0, 1), nil, nil)
	g2 := New(sequence(1, 0, 1), nil, nil)
	g3 := New(sequence(1, 1, 1), nil, nil)
	g4 := New(sequence(1, 0), nil, nil)

	assert.True(t, g1.Equal(g1))
	assert.True(t, g1.Equal(g2), "equality is by DNA value, not reference")
	assert.NotEqual(t, g1.ID(), g2.ID())
	assert.False(t, g1.Equal(g3))
	assert.False(t, g1.Equal(g4))
	assert.False(t, g1.Equal(nil))
}

func TestGenomeString(t *testing.T) {
	g := New(sequence(1, 0, 1, 1), nil, nil)
	assert.Equal(t, "1011", g.String())
}

func TestDNACloneThenCopyRoundTrip(t *testing.T) {
	orig := &intDNA{v: 7}
	clone := orig.Clone()
	target := &intDNA{v: 0}
	target.CopyFrom(clone)

	assert.Equal(t, orig.String(), target.String())

	clone.(*intDNA).v = 9
	assert.Equal(t, "7", orig.String())
}

func TestEvaluateWithoutHookIsNoop(t *testing.T) {
	g := New(sequence(1, 2), nil, nil)

	require.NoError(t, g.Evaluate(context.Background()))
	_, ok := g.Fitness()
	assert.False(t, ok)
	assert.NoError(t, g.Err())
}

func TestEvaluateRecordsFitnessAndError(t *testing.T) {
	g := New(sequence(1, 2), nil, nil)
	calls := 0
	g.SetEvaluator(EvaluatorFunc(func(ctx context.Context, g *Genome) error {
		calls++
		g.SetFitness(3)
		return nil
	}))

	require.NoError(t, g.Evaluate(context.Background()))
	require.NoError(t, g.Evaluate(context.Background()))
	assert.Equal(t, 2, calls)
	v, ok := g.Fitness()
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)

	boom := errors.New("boom")
	g.SetEvaluator(EvaluatorFunc(func(ctx context.Context, g *Genome) error { return boom }))
	assert.ErrorIs(t, g.Evaluate(context.Background()), boom)
	assert.ErrorIs(t, g.Err(), boom)
}

func TestMutateInvalidatesFitness(t *testing.T) {
	g := newTestGenome(1, 0, 0, 0, 0)
	g.SetFitness(10)

	g.Mutate()

	_, ok := g.Fitness()
	assert.False(t, ok)
	assert.NotEqual(t, []int{0, 0, 0, 0}, valuesOf(g))
}

func TestRecombineDelegatesToRecombiner(t *testing.T) {
	a := newTestGenome(5, 0, 2, 4, 6, 8, 10)
	b := newTestGenome(9, 1, 3, 5, 7, 9, 11)

	c1, c2, err := a.Recombine(b)
	require.NoError(t, err)

	pa1, pa2 := c1.Parents()
	assert.Equal(t, a.ID(), pa1)
	assert.Equal(t, b.ID(), pa2)
	assert.Equal(t, int64(5+1+2+2), a.Recombiner().(*NPointCrossover).Seed())
	assert.Equal(t, int64(9), b.Recombiner().(*NPointCrossover).Seed(), "only the receiver's recombiner advances")
	assert.Equal(t, a.Len(), c2.Len())
}

func TestRecombineErrors(t *testing.T) {
	a := newTestGenome(1, 1, 2, 3)

	_, _, err := a.Recombine(nil)
	assert.ErrorIs(t, err, ErrNilGenome)

	_, _, err = a.Recombine(newTestGenome(1, 1, 2))
	assert.ErrorIs(t, err, ErrLengthMismatch)

	bare := New(sequence(1, 2, 3), nil, nil)
	_, _, err = bare.Recombine(a)
	assert.ErrorIs(t, err, ErrNoRecombiner)
}

func TestShortID(t *testing.T) {
	g := New(sequence(1), nil, nil)
	assert.Len(t, ShortID(g), 8)
	assert.Equal(t, "", ShortID(nil))
}
