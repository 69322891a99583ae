package iteration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/ishanwen-byte/pfga-go/internal/types"
	"github.com/ishanwen-byte/pfga-go/pkg/colony"
	"github.com/ishanwen-byte/pfga-go/pkg/genome"
	"github.com/ishanwen-byte/pfga-go/pkg/rulebook"
)

// ErrPopulationTooSmall is returned when fewer than two genomes can be drawn
var ErrPopulationTooSmall = errors.New("population needs at least two genomes")

// Genesis creates fresh genomes with random DNA
type Genesis interface {
	CreateGenome() *genome.Genome
}

// IterationWorker drives the colony one generation at a time
type IterationWorker struct {
	config  types.ControllerConfig
	colony  *colony.Colony
	rules   *rulebook.RuleBook
	genesis Genesis
	rng     *rand.Rand
	logger  *logrus.Logger
}

// IterationResult represents the result of a single generation
type IterationResult struct {
	Generation  int                   `json:"generation"`
	Parents     [2]string             `json:"parents"`
	Children    [2]string             `json:"children"`
	Mutated     int                   `json:"mutated"`
	Replacement bool                  `json:"replacement"`
	Duration    time.Duration         `json:"duration"`
	Stats       types.GenerationStats `json:"stats"`
}

// RunResult summarises a complete run
type RunResult struct {
	Generations int                     `json:"generations"`
	Best        *genome.Genome          `json:"-"`
	BestDNA     string                  `json:"best_dna"`
	History     []types.GenerationStats `json:"history"`
	Duration    time.Duration           `json:"duration"`
}

// NewIterationWorker creates a new iteration worker
func NewIterationWorker(
	config types.ControllerConfig,
	col *colony.Colony,
	rules *rulebook.RuleBook,
	genesis Genesis,
) *IterationWorker {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	if config.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &IterationWorker{
		config:  config,
		colony:  col,
		rules:   rules,
		genesis: genesis,
		rng:     rand.New(rand.NewSource(seed)),
		logger:  logger,
	}
}

// SetLogger replaces the worker's logger
func (iw *IterationWorker) SetLogger(logger *logrus.Logger) {
	iw.logger = logger
}

// Logger returns the worker's logger so collaborators can share it
func (iw *IterationWorker) Logger() *logrus.Logger {
	return iw.logger
}

// Seed tops the colony up to size genomes from genesis
func (iw *IterationWorker) Seed(size int) {
	for iw.colony.Len() < size {
		iw.colony.Add(iw.genesis.CreateGenome())
	}

	iw.logger.WithField("population", iw.colony.Len()).Debug("Colony seeded")
}

// RunIteration executes a single generation: draw two parents, recombine
// them, mutate one child, let the family compete and top up on request
func (iw *IterationWorker) RunIteration(ctx context.Context, generation int) (*IterationResult, error) {
	startTime := time.Now()

	if iw.colony.Len() < 2 {
		return nil, fmt.Errorf("generation %d: %w", generation, ErrPopulationTooSmall)
	}

	adam, err := iw.colony.DrawRandom()
	if err != nil {
		return nil, fmt.Errorf("failed to draw first parent: %w", err)
	}
	eve, err := iw.colony.DrawRandom()
	if err != nil {
		iw.colony.Add(adam)
		return nil, fmt.Errorf("failed to draw second parent: %w", err)
	}

	ch1, ch2, err := adam.Recombine(eve)
	if err != nil {
		iw.colony.Add(adam)
		iw.colony.Add(eve)
		return nil, fmt.Errorf("failed to recombine parents: %w", err)
	}

	mutated := -1
	if iw.rng.Float64() < iw.config.MutationRate {
		if iw.rng.Intn(2) == 0 {
			ch1.Mutate()
			mutated = 0
		} else {
			ch2.Mutate()
			mutated = 1
		}
	}

	replacement, err := iw.colony.CompeteFamily(ctx, [2]*genome.Genome{adam, eve}, [2]*genome.Genome{ch1, ch2})
	if err != nil {
		return nil, fmt.Errorf("generation %d: %w", generation, err)
	}
	if replacement {
		iw.colony.Add(iw.genesis.CreateGenome())
	}

	result := &IterationResult{
		Generation:  generation,
		Parents:     [2]string{adam.ID(), eve.ID()},
		Children:    [2]string{ch1.ID(), ch2.ID()},
		Mutated:     mutated,
		Replacement: replacement,
		Duration:    time.Since(startTime),
	}
	result.Stats = iw.generationStats(generation, replacement)

	iw.logger.WithFields(logrus.Fields{
		"generation":  generation,
		"population":  result.Stats.PopulationSize,
		"replacement": replacement,
		"duration":    result.Duration,
	}).Debug("Generation completed")

	return result, nil
}

// Run seeds the colony and runs up to MaxGenerations generations. On
// cancellation the partial result is returned with the context error.
func (iw *IterationWorker) Run(ctx context.Context, initialSize int) (*RunResult, error) {
	startTime := time.Now()
	iw.Seed(initialSize)

	result := &RunResult{
		History: make([]types.GenerationStats, 0, iw.config.MaxGenerations),
	}

	var runErr error
	for gen := 1; gen <= iw.config.MaxGenerations; gen++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		it, err := iw.RunIteration(ctx, gen)
		if err != nil {
			runErr = err
			break
		}

		result.Generations = gen
		result.History = append(result.History, it.Stats)

		if iw.config.ReportInterval > 0 && gen%iw.config.ReportInterval == 0 {
			iw.logger.WithFields(logrus.Fields{
				"generation": gen,
				"population": it.Stats.PopulationSize,
				"best":       it.Stats.BestScore,
				"mean":       it.Stats.MeanScore,
				"stddev":     it.Stats.StdDevScore,
			}).Info("Generation report")
		}
	}

	if best, err := iw.colony.Best(); err == nil {
		result.Best = best
		result.BestDNA = best.String()
	}
	result.Duration = time.Since(startTime)

	iw.logger.WithFields(logrus.Fields{
		"generations": result.Generations,
		"best":        result.BestDNA,
		"duration":    result.Duration,
	}).Info("Run finished")

	return result, runErr
}

// generationStats summarises the colony. Scores are only filled when the
// rule book exposes a numeric score.
func (iw *IterationWorker) generationStats(generation int, replacement bool) types.GenerationStats {
	stats := types.GenerationStats{
		Generation:     generation,
		PopulationSize: iw.colony.Len(),
		Replacement:    replacement,
		Timestamp:      time.Now(),
	}

	best, err := iw.colony.Best()
	if err != nil {
		return stats
	}
	stats.BestID = best.ID()

	citizens := iw.colony.Citizens()
	scores := make([]float64, 0, len(citizens))
	for _, g := range citizens {
		s, ok := iw.rules.Score(g)
		if !ok {
			return stats
		}
		scores = append(scores, s)
	}

	stats.BestScore, _ = iw.rules.Score(best)
	if len(scores) > 1 {
		stats.MeanScore, stats.StdDevScore = stat.MeanStdDev(scores, nil)
	} else {
		stats.MeanScore = scores[0]
	}

	return stats
}

// ToJSON converts the iteration result to JSON
func (ir *IterationResult) ToJSON() ([]byte, error) {
	return json.MarshalIndent(ir, "", "  ")
}
