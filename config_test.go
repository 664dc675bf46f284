package cloudlod

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	lodtest "github.com/arloliu/cloudlod/testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, 100_000, cfg.MaxParticlesOnScreen)
	require.Equal(t, 60_000, cfg.AveragePointsPerCluster)
	require.Equal(t, 50*time.Millisecond, cfg.PollInterval)
	require.True(t, cfg.Density.Enabled)
	require.Equal(t, 0.05, cfg.Density.MinDeltaForUpdate)
	require.Equal(t, 0.1, cfg.Density.HiddenDensity)
	require.Equal(t, 10*time.Millisecond, cfg.Density.PassBudget)
	require.Equal(t, 32, cfg.Clustering.MaxIterations)
	require.Zero(t, cfg.Clustering.Parallelism)
	require.Equal(t, 16384, cfg.Clustering.ChunkSize)
	require.NoError(t, cfg.Validate())
}

func TestSetDefaults(t *testing.T) {
	t.Run("applies defaults to empty config", func(t *testing.T) {
		cfg := Config{}
		SetDefaults(&cfg)

		require.Equal(t, 100_000, cfg.MaxParticlesOnScreen)
		require.Equal(t, 60_000, cfg.AveragePointsPerCluster)
		require.Equal(t, 50*time.Millisecond, cfg.PollInterval)
		require.Equal(t, 0.05, cfg.Density.MinDeltaForUpdate)
		require.Equal(t, 10*time.Millisecond, cfg.Density.PassBudget)
		require.Equal(t, 32, cfg.Clustering.MaxIterations)
		require.False(t, cfg.Density.Enabled, "booleans are not defaulted")
		require.NoError(t, cfg.Validate())
	})

	t.Run("preserves custom values", func(t *testing.T) {
		cfg := Config{
			MaxParticlesOnScreen:    5000,
			AveragePointsPerCluster: 250,
			PollInterval:            time.Second,
			Density: DensityConfig{
				Enabled:           true,
				MinDeltaForUpdate: 0.2,
				HiddenDensity:     0.5,
				PassBudget:        2 * time.Millisecond,
			},
			Clustering: ClusteringConfig{
				MaxIterations: 4,
				Parallelism:   2,
				ChunkSize:     64,
				Seed:          7,
			},
		}
		want := cfg
		SetDefaults(&cfg)

		require.Equal(t, want, cfg)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero screen budget", func(c *Config) { c.MaxParticlesOnScreen = 0 }, "MaxParticlesOnScreen"},
		{"negative cluster size", func(c *Config) { c.AveragePointsPerCluster = -1 }, "AveragePointsPerCluster"},
		{"zero poll interval", func(c *Config) { c.PollInterval = 0 }, "PollInterval"},
		{"delta too small", func(c *Config) { c.Density.MinDeltaForUpdate = 0.001 }, "Density.MinDeltaForUpdate"},
		{"delta too large", func(c *Config) { c.Density.MinDeltaForUpdate = 0.3 }, "Density.MinDeltaForUpdate"},
		{"hidden density zero", func(c *Config) { c.Density.HiddenDensity = 0 }, "Density.HiddenDensity"},
		{"hidden density above one", func(c *Config) { c.Density.HiddenDensity = 1.5 }, "Density.HiddenDensity"},
		{"negative pass budget", func(c *Config) { c.Density.PassBudget = -time.Millisecond }, "Density.PassBudget"},
		{"zero iterations", func(c *Config) { c.Clustering.MaxIterations = 0 }, "Clustering.MaxIterations"},
		{"negative parallelism", func(c *Config) { c.Clustering.Parallelism = -1 }, "Clustering.Parallelism"},
		{"zero chunk size", func(c *Config) { c.Clustering.ChunkSize = 0 }, "Clustering.ChunkSize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			require.Contains(t, err.Error(), tt.field)
		})
	}

	t.Run("boundaries are inclusive", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Density.MinDeltaForUpdate = 0.01
		cfg.Density.HiddenDensity = 1
		require.NoError(t, cfg.Validate())

		cfg.Density.MinDeltaForUpdate = 0.25
		require.NoError(t, cfg.Validate())
	})

	t.Run("reports every broken field", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxParticlesOnScreen = 0
		cfg.Clustering.ChunkSize = 0

		err := cfg.Validate()
		require.ErrorContains(t, err, "MaxParticlesOnScreen")
		require.ErrorContains(t, err, "Clustering.ChunkSize")
	})
}

func TestConfig_ValidateWithWarnings(t *testing.T) {
	t.Run("defaults are quiet", func(t *testing.T) {
		logger := lodtest.NewRecordingLogger()
		cfg := DefaultConfig()
		cfg.ValidateWithWarnings(logger)

		require.Empty(t, logger.Entries())
	})

	t.Run("flags risky values", func(t *testing.T) {
		logger := lodtest.NewRecordingLogger()
		cfg := DefaultConfig()
		cfg.AveragePointsPerCluster = cfg.MaxParticlesOnScreen + 1
		cfg.PollInterval = time.Millisecond
		cfg.Density.PassBudget = 20 * time.Millisecond
		cfg.ValidateWithWarnings(logger)

		require.Len(t, logger.Entries(), 3)
		require.True(t, logger.Contains("warn", "AveragePointsPerCluster"))
		require.True(t, logger.Contains("warn", "PollInterval"))
		require.True(t, logger.Contains("warn", "PassBudget"))
	})
}

// TestConfig_YAML checks that time.Duration fields decode from duration strings.
func TestConfig_YAML(t *testing.T) {
	yamlConfig := `
maxParticlesOnScreen: 50000
averagePointsPerCluster: 20000
pollInterval: 100ms
density:
  enabled: false
  minDeltaForUpdate: 0.1
  hiddenDensity: 0.2
  passBudget: 4ms
clustering:
  maxIterations: 12
  parallelism: 3
  chunkSize: 1024
  seed: 42
`

	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte(yamlConfig), &cfg))

	require.Equal(t, 50_000, cfg.MaxParticlesOnScreen)
	require.Equal(t, 20_000, cfg.AveragePointsPerCluster)
	require.Equal(t, 100*time.Millisecond, cfg.PollInterval)
	require.False(t, cfg.Density.Enabled)
	require.Equal(t, 0.1, cfg.Density.MinDeltaForUpdate)
	require.Equal(t, 0.2, cfg.Density.HiddenDensity)
	require.Equal(t, 4*time.Millisecond, cfg.Density.PassBudget)
	require.Equal(t, 12, cfg.Clustering.MaxIterations)
	require.Equal(t, 3, cfg.Clustering.Parallelism)
	require.Equal(t, 1024, cfg.Clustering.ChunkSize)
	require.Equal(t, uint64(42), cfg.Clustering.Seed)
}

func TestParseConfig(t *testing.T) {
	t.Run("partial document keeps defaults", func(t *testing.T) {
		cfg, err := ParseConfig([]byte("maxParticlesOnScreen: 20000\ndensity:\n  passBudget: 5ms\n"))
		require.NoError(t, err)

		require.Equal(t, 20_000, cfg.MaxParticlesOnScreen)
		require.Equal(t, 5*time.Millisecond, cfg.Density.PassBudget)
		require.Equal(t, 60_000, cfg.AveragePointsPerCluster)
		require.True(t, cfg.Density.Enabled)
		require.Equal(t, 0.1, cfg.Density.HiddenDensity)
	})

	t.Run("empty document is the default", func(t *testing.T) {
		cfg, err := ParseConfig(nil)
		require.NoError(t, err)
		require.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("invalid value", func(t *testing.T) {
		_, err := ParseConfig([]byte("density:\n  hiddenDensity: 2\n"))
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("malformed document", func(t *testing.T) {
		_, err := ParseConfig([]byte("pollInterval: [oops"))
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloudlod.yaml")
	require.NoError(t, os.WriteFile(path, []byte("averagePointsPerCluster: 1000\npollInterval: 20ms\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 1000, cfg.AveragePointsPerCluster)
	require.Equal(t, 20*time.Millisecond, cfg.PollInterval)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestClusterCount(t *testing.T) {
	tests := []struct {
		n, avg, want int
	}{
		{1_000_000, 60_000, 17},
		{60_000, 60_000, 1},
		{60_001, 60_000, 2},
		{1, 60_000, 1},
		{0, 60_000, 0},
		{-5, 60_000, 0},
		{100, 0, 0},
		{10_000, 600, 17},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, ClusterCount(tt.n, tt.avg), "n=%d avg=%d", tt.n, tt.avg)
	}
}

func TestBaseReductionFactor(t *testing.T) {
	require.InDelta(t, 0.1, BaseReductionFactor(1_000_000, 100_000), 1e-12)
	require.Equal(t, 1.0, BaseReductionFactor(50_000, 100_000))
	require.Equal(t, 1.0, BaseReductionFactor(100_000, 100_000))
	require.Equal(t, 1.0, BaseReductionFactor(0, 100_000))
}
