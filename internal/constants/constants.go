package constants

// Application constants
const (
	Name        = "PfGA-Go"
	Version     = "1.0.0"
	Description = "Go implementation of a steady-state family-competition genetic algorithm"

	// Default colony values
	DefaultInitialPopulation = 2
	DefaultColonySeed        = 0 // 0 means seed from the clock

	// Default evaluator values
	DefaultParallelWorkers = 1
	DefaultTimeout         = 0 // seconds, 0 disables the per-genome timeout

	// Default encoding values (OneMax)
	DefaultGenomeSize = 25
	DefaultGeneMin    = 0
	DefaultGeneMax    = 1

	// Default controller values
	DefaultMaxGenerations = 3000
	DefaultMutationRate   = 1.0
	DefaultReportInterval = 100

	// Log field width for genome ids
	ShortIDLength = 8

	// Exit codes
	ExitSuccess   = 0
	ExitError     = 1
	ExitInterrupt = 2
)

// Family class tags used by the family competition
const (
	TagParent = "P"
	TagChild  = "C"
)

// Environment variable overrides
const (
	EnvSeed            = "PFGA_SEED"
	EnvGenomeSize      = "PFGA_GENOME_SIZE"
	EnvMaxGenerations  = "PFGA_MAX_GENERATIONS"
	EnvParallelWorkers = "PFGA_PARALLEL_WORKERS"
	EnvVerbose         = "PFGA_VERBOSE"
)
