// Package rulebook orders genomes by eligibility first and fitness second.
package rulebook

import (
	"github.com/ishanwen-byte/pfga-go/pkg/genome"
)

// Rule is supplied by a concrete encoding and defines what "better" means
type Rule interface {
	// IsEligible reports whether g can take part in fitness comparison
	IsEligible(g *genome.Genome) bool
	// CompareFitness is positive when a is fitter than b
	CompareFitness(a, b *genome.Genome) int
}

// Scorer is an optional Rule capability exposing a numeric fitness
type Scorer interface {
	Score(g *genome.Genome) float64
}

// RuleBook composes a Rule into a comparator
type RuleBook struct {
	rule Rule
}

// New creates a RuleBook for rule
func New(rule Rule) *RuleBook {
	return &RuleBook{rule: rule}
}

// Rule returns the underlying rule
func (rb *RuleBook) Rule() Rule {
	return rb.rule
}

// Compare ranks ineligible genomes below eligible ones. Two eligible genomes
// are ordered by CompareFitness and two ineligible genomes compare equal.
func (rb *RuleBook) Compare(a, b *genome.Genome) int {
	okA := rb.rule.IsEligible(a)
	okB := rb.rule.IsEligible(b)

	switch {
	case okA && okB:
		return rb.rule.CompareFitness(a, b)
	case !okA && okB:
		return -1
	case okA && !okB:
		return 1
	default:
		return 0
	}
}

// Descending is Compare with the sign inverted, for best-first ordering
func (rb *RuleBook) Descending(a, b *genome.Genome) int {
	return -rb.Compare(a, b)
}

// Score returns the numeric fitness of g when the rule is a Scorer
func (rb *RuleBook) Score(g *genome.Genome) (float64, bool) {
	s, ok := rb.rule.(Scorer)
	if !ok {
		return 0, false
	}
	return s.Score(g), true
}
