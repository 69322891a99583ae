package colony

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ishanwen-byte/pfga-go/internal/constants"
	"github.com/ishanwen-byte/pfga-go/internal/types"
	"github.com/ishanwen-byte/pfga-go/pkg/evaluator"
	"github.com/ishanwen-byte/pfga-go/pkg/genome"
	"github.com/ishanwen-byte/pfga-go/pkg/rulebook"
)

// ErrEmptyPopulation is returned when drawing from an empty colony
var ErrEmptyPopulation = errors.New("population is empty")

// Colony owns the population and runs family competition.
// It is not safe for concurrent use; one coordinator drives it.
type Colony struct {
	rules     *rulebook.RuleBook
	evaluator *evaluator.Evaluator

	// Population, unique by reference
	citizens []*genome.Genome

	// Draw seed, advanced on every draw
	seed int64

	logger *logrus.Logger
}

// member is a competing genome with its family class tag
type member struct {
	genome *genome.Genome
	tag    string
}

// New creates a colony ruled by rules. A zero config seed seeds from the
// clock. A nil evaluator evaluates sequentially without a timeout.
func New(config types.ColonyConfig, rules *rulebook.RuleBook, eval *evaluator.Evaluator) *Colony {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	if eval == nil {
		eval = evaluator.New(types.EvaluatorConfig{ParallelWorkers: 1})
	}

	return &Colony{
		rules:     rules,
		evaluator: eval,
		citizens:  make([]*genome.Genome, 0, config.InitialSize),
		seed:      seed,
		logger:    logger,
	}
}

// SetLogger replaces the colony's logger
func (c *Colony) SetLogger(logger *logrus.Logger) {
	c.logger = logger
}

// Add appends a genome to the population
func (c *Colony) Add(g *genome.Genome) {
	c.citizens = append(c.citizens, g)
}

// Len returns the population size
func (c *Colony) Len() int {
	return len(c.citizens)
}

// Citizens returns a copy of the population list
func (c *Colony) Citizens() []*genome.Genome {
	out := make([]*genome.Genome, len(c.citizens))
	copy(out, c.citizens)
	return out
}

// Seed returns the seed the next draw will use
func (c *Colony) Seed() int64 {
	return c.seed
}

// Reseed resets the draw seed so the draw sequence can be reproduced
func (c *Colony) Reseed(seed int64) {
	c.seed = seed
}

// Sort stable-sorts the population ascending by the rule book comparator
func (c *Colony) Sort() {
	sort.SliceStable(c.citizens, func(i, j int) bool {
		return c.rules.Compare(c.citizens[i], c.citizens[j]) < 0
	})
}

// Best returns the highest ranked genome without reordering the population
func (c *Colony) Best() (*genome.Genome, error) {
	if len(c.citizens) == 0 {
		return nil, ErrEmptyPopulation
	}

	best := c.citizens[0]
	for _, g := range c.citizens[1:] {
		if c.rules.Compare(g, best) > 0 {
			best = g
		}
	}
	return best, nil
}

// DrawRandom removes and returns a uniformly chosen genome
func (c *Colony) DrawRandom() (*genome.Genome, error) {
	if len(c.citizens) == 0 {
		return nil, ErrEmptyPopulation
	}

	rng := rand.New(rand.NewSource(c.seed))
	c.seed++

	idx := rng.Intn(len(c.citizens))
	g := c.citizens[idx]
	c.citizens = append(c.citizens[:idx], c.citizens[idx+1:]...)

	return g, nil
}

// CompeteFamily evaluates two parents and their two children, ranks them
// best first and returns survivors to the population by the verdict formed
// from the class tags of the top two:
//
//	CC  keep ranks 0, 1 and 3
//	PP  keep rank 0, request replacement if fewer than 2 citizens remain
//	PC  keep ranks 0 and 1
//	CP  keep rank 0, always request replacement
//
// The returned flag asks the caller to add one freshly created genome. If
// ctx is cancelled during evaluation both parents are put back and the
// context error is returned.
func (c *Colony) CompeteFamily(ctx context.Context, parents, children [2]*genome.Genome) (bool, error) {
	for _, g := range append(parents[:], children[:]...) {
		if g == nil {
			return false, fmt.Errorf("family competition: %w", genome.ErrNilGenome)
		}
	}

	if err := c.evaluator.EvaluateAll(ctx, parents[0], parents[1], children[0], children[1]); err != nil {
		c.Add(parents[0])
		c.Add(parents[1])
		return false, fmt.Errorf("family evaluation interrupted: %w", err)
	}

	family := []member{
		{parents[0], constants.TagParent},
		{parents[1], constants.TagParent},
		{children[0], constants.TagChild},
		{children[1], constants.TagChild},
	}
	sort.SliceStable(family, func(i, j int) bool {
		return c.rules.Descending(family[i].genome, family[j].genome) < 0
	})

	verdict := family[0].tag + family[1].tag
	request := false
	switch verdict {
	case constants.TagChild + constants.TagChild:
		c.Add(family[0].genome)
		c.Add(family[1].genome)
		c.Add(family[3].genome)
	case constants.TagParent + constants.TagParent:
		c.Add(family[0].genome)
		if len(c.citizens) < 2 {
			request = true
		}
	case constants.TagParent + constants.TagChild:
		c.Add(family[0].genome)
		c.Add(family[1].genome)
	case constants.TagChild + constants.TagParent:
		c.Add(family[0].genome)
		request = true
	}

	c.logger.WithFields(logrus.Fields{
		"verdict":     verdict,
		"winner":      genome.ShortID(family[0].genome),
		"population":  len(c.citizens),
		"replacement": request,
	}).Debug("Family competition settled")

	return request, nil
}
