package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ishanwen-byte/pfga-go/internal/constants"
	"github.com/ishanwen-byte/pfga-go/internal/types"
)

// Manager handles configuration loading and validation
type Manager struct {
	config *types.Config
	path   string
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	return &Manager{
		config: getDefaultConfig(),
	}
}

// Load loads configuration from a file
func (m *Manager) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	config := getDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply environment variable overrides
	if err := m.applyEnvOverrides(config); err != nil {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	// Validate configuration
	if err := m.validate(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	m.path = path
	return nil
}

// Save saves configuration to a file
func (m *Manager) Save(path string) error {
	data, err := yaml.Marshal(m.config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfig returns the current configuration
func (m *Manager) GetConfig() *types.Config {
	return m.config
}

// SetConfig validates and installs a configuration
func (m *Manager) SetConfig(config *types.Config) error {
	if err := m.validate(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	m.config = config
	return nil
}

// GetPath returns the configuration file path
func (m *Manager) GetPath() string {
	return m.path
}

// applyEnvOverrides applies environment variable overrides to the configuration
func (m *Manager) applyEnvOverrides(config *types.Config) error {
	if seed := os.Getenv(constants.EnvSeed); seed != "" {
		var n int64
		if _, err := fmt.Sscanf(seed, "%d", &n); err != nil {
			return fmt.Errorf("invalid %s %q: %w", constants.EnvSeed, seed, err)
		}
		config.Colony.Seed = n
		config.Encoding.Seed = n
		config.Controller.Seed = n
	}

	if size := os.Getenv(constants.EnvGenomeSize); size != "" {
		var n int
		if _, err := fmt.Sscanf(size, "%d", &n); err != nil {
			return fmt.Errorf("invalid %s %q: %w", constants.EnvGenomeSize, size, err)
		}
		config.Encoding.GenomeSize = n
	}

	if maxGen := os.Getenv(constants.EnvMaxGenerations); maxGen != "" {
		var n int
		if _, err := fmt.Sscanf(maxGen, "%d", &n); err != nil {
			return fmt.Errorf("invalid %s %q: %w", constants.EnvMaxGenerations, maxGen, err)
		}
		config.Controller.MaxGenerations = n
	}

	if workers := os.Getenv(constants.EnvParallelWorkers); workers != "" {
		var n int
		if _, err := fmt.Sscanf(workers, "%d", &n); err != nil {
			return fmt.Errorf("invalid %s %q: %w", constants.EnvParallelWorkers, workers, err)
		}
		config.Evaluator.ParallelWorkers = n
	}

	if verbose := os.Getenv(constants.EnvVerbose); verbose != "" {
		config.Controller.Verbose = strings.ToLower(verbose) == "true"
	}

	return nil
}

// validate validates the configuration
func (m *Manager) validate(config *types.Config) error {
	// Validate colony configuration
	if config.Colony.InitialSize < 2 {
		return fmt.Errorf("initial population must be at least 2")
	}

	// Validate evaluator configuration
	if config.Evaluator.ParallelWorkers <= 0 {
		return fmt.Errorf("parallel workers must be positive")
	}
	if config.Evaluator.Timeout < 0 {
		return fmt.Errorf("evaluation timeout must not be negative")
	}

	// Validate encoding configuration
	if config.Encoding.GenomeSize <= 0 {
		return fmt.Errorf("genome size must be positive")
	}
	if config.Encoding.Min > config.Encoding.Max {
		return fmt.Errorf("gene min %d exceeds max %d", config.Encoding.Min, config.Encoding.Max)
	}

	// Validate controller configuration
	if config.Controller.MaxGenerations <= 0 {
		return fmt.Errorf("max generations must be positive")
	}
	if config.Controller.MutationRate < 0 || config.Controller.MutationRate > 1 {
		return fmt.Errorf("mutation rate must be within [0, 1]")
	}
	if config.Controller.ReportInterval < 0 {
		return fmt.Errorf("report interval must not be negative")
	}

	return nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *types.Config {
	return &types.Config{
		Colony: types.ColonyConfig{
			Seed:        constants.DefaultColonySeed,
			InitialSize: constants.DefaultInitialPopulation,
		},
		Evaluator: types.EvaluatorConfig{
			ParallelWorkers: constants.DefaultParallelWorkers,
			Timeout:         constants.DefaultTimeout,
		},
		Encoding: types.EncodingConfig{
			GenomeSize: constants.DefaultGenomeSize,
			Min:        constants.DefaultGeneMin,
			Max:        constants.DefaultGeneMax,
			Seed:       0,
		},
		Controller: types.ControllerConfig{
			MaxGenerations: constants.DefaultMaxGenerations,
			MutationRate:   constants.DefaultMutationRate,
			Seed:           0,
			Verbose:        false,
			ReportInterval: constants.DefaultReportInterval,
		},
	}
}

// CreateDefaultConfig creates a default configuration file
func CreateDefaultConfig(path string) error {
	manager := NewManager()
	return manager.Save(path)
}
