package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishanwen-byte/pfga-go/internal/constants"
	"github.com/ishanwen-byte/pfga-go/internal/types"
)

// clearEnv blanks every override so the host environment cannot leak in
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		constants.EnvSeed,
		constants.EnvGenomeSize,
		constants.EnvMaxGenerations,
		constants.EnvParallelWorkers,
		constants.EnvVerbose,
	} {
		t.Setenv(key, "")
	}
}

func TestNewManager(t *testing.T) {
	manager := NewManager()
	assert.NotNil(t, manager)
	assert.NotNil(t, manager.config)
	assert.Empty(t, manager.path)
}

func TestLoadAndSave(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	// Test saving default config
	manager := NewManager()
	err := manager.Save(configPath)
	require.NoError(t, err)

	_, err = os.Stat(configPath)
	require.NoError(t, err)

	// Test loading config
	newManager := NewManager()
	err = newManager.Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, manager.config, newManager.config)
	assert.Equal(t, configPath, newManager.GetPath())
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "partial.yaml")
	partial := "encoding:\n  genome_size: 40\n  max: 3\ncontroller:\n  max_generations: 50\n"
	require.NoError(t, os.WriteFile(configPath, []byte(partial), 0644))

	manager := NewManager()
	require.NoError(t, manager.Load(configPath))

	config := manager.GetConfig()
	assert.Equal(t, 40, config.Encoding.GenomeSize)
	assert.Equal(t, 3, config.Encoding.Max)
	assert.Equal(t, 50, config.Controller.MaxGenerations)
	assert.Equal(t, constants.DefaultInitialPopulation, config.Colony.InitialSize)
	assert.Equal(t, constants.DefaultMutationRate, config.Controller.MutationRate)
}

func TestLoadNonExistentFile(t *testing.T) {
	manager := NewManager()
	err := manager.Load("/non/existent/file.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestInvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid_config.yaml")

	invalidYAML := "invalid: yaml: content: ["
	err := os.WriteFile(configPath, []byte(invalidYAML), 0644)
	require.NoError(t, err)

	manager := NewManager()
	err = manager.Load(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "bad_values.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("colony:\n  initial_size: 1\n"), 0644))

	manager := NewManager()
	err := manager.Load(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
	assert.Empty(t, manager.GetPath())
}

func TestValidation(t *testing.T) {
	manager := NewManager()

	// Test valid config passes validation
	assert.NoError(t, manager.validate(getDefaultConfig()))

	tests := []struct {
		name    string
		mutate  func(c *types.Config)
		message string
	}{
		{"initial population", func(c *types.Config) { c.Colony.InitialSize = 1 }, "initial population must be at least 2"},
		{"workers", func(c *types.Config) { c.Evaluator.ParallelWorkers = 0 }, "parallel workers must be positive"},
		{"timeout", func(c *types.Config) { c.Evaluator.Timeout = -1 }, "evaluation timeout must not be negative"},
		{"genome size", func(c *types.Config) { c.Encoding.GenomeSize = 0 }, "genome size must be positive"},
		{"gene range", func(c *types.Config) { c.Encoding.Min = 2; c.Encoding.Max = 1 }, "gene min 2 exceeds max 1"},
		{"generations", func(c *types.Config) { c.Controller.MaxGenerations = 0 }, "max generations must be positive"},
		{"mutation rate", func(c *types.Config) { c.Controller.MutationRate = 1.5 }, "mutation rate must be within [0, 1]"},
		{"report interval", func(c *types.Config) { c.Controller.ReportInterval = -1 }, "report interval must not be negative"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := getDefaultConfig()
			test.mutate(config)

			err := manager.validate(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.message)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	manager := NewManager()
	config := getDefaultConfig()

	t.Setenv(constants.EnvSeed, "123")
	t.Setenv(constants.EnvGenomeSize, "64")
	t.Setenv(constants.EnvMaxGenerations, "500")
	t.Setenv(constants.EnvParallelWorkers, "4")
	t.Setenv(constants.EnvVerbose, "TRUE")

	err := manager.applyEnvOverrides(config)
	require.NoError(t, err)

	assert.Equal(t, int64(123), config.Colony.Seed)
	assert.Equal(t, int64(123), config.Encoding.Seed)
	assert.Equal(t, int64(123), config.Controller.Seed)
	assert.Equal(t, 64, config.Encoding.GenomeSize)
	assert.Equal(t, 500, config.Controller.MaxGenerations)
	assert.Equal(t, 4, config.Evaluator.ParallelWorkers)
	assert.True(t, config.Controller.Verbose)
}

func TestEnvOverridesRejectGarbage(t *testing.T) {
	manager := NewManager()
	t.Setenv(constants.EnvMaxGenerations, "many")

	err := manager.applyEnvOverrides(getDefaultConfig())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), constants.EnvMaxGenerations)
}

func TestGetSetConfig(t *testing.T) {
	manager := NewManager()

	config := manager.GetConfig()
	assert.NotNil(t, config)

	newConfig := getDefaultConfig()
	newConfig.Controller.MaxGenerations = 999
	require.NoError(t, manager.SetConfig(newConfig))
	assert.Equal(t, 999, manager.GetConfig().Controller.MaxGenerations)

	bad := getDefaultConfig()
	bad.Encoding.GenomeSize = 0
	assert.Error(t, manager.SetConfig(bad))
	assert.Equal(t, 999, manager.GetConfig().Controller.MaxGenerations)
}

func TestCreateDefaultConfig(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "default_config.yaml")

	err := CreateDefaultConfig(configPath)
	require.NoError(t, err)

	manager := NewManager()
	err = manager.Load(configPath)
	require.NoError(t, err)

	config := manager.GetConfig()
	assert.Equal(t, constants.DefaultGenomeSize, config.Encoding.GenomeSize)
	assert.Equal(t, constants.DefaultMaxGenerations, config.Controller.MaxGenerations)
	assert.Equal(t, constants.DefaultParallelWorkers, config.Evaluator.ParallelWorkers)
}
