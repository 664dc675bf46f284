package cloudlod

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DensityConfig controls the per-tick density scheduler.
type DensityConfig struct {
	// Enabled turns dynamic density on. When false the scheduler stays Disabled and
	// every cluster keeps the density it was spawned with.
	Enabled bool `yaml:"enabled"`

	// MinDeltaForUpdate is the smallest density change worth a SetDensity call.
	// Changes below it are skipped for that cluster on that tick.
	//
	// Range: [0.01, 0.25]
	MinDeltaForUpdate float64 `yaml:"minDeltaForUpdate" validate:"gte=0.01,lte=0.25"`

	// HiddenDensity is the fixed density applied to hidden clusters.
	HiddenDensity float64 `yaml:"hiddenDensity" validate:"gt=0,lte=1"`

	// PassBudget is the wall-clock ceiling of each scheduler pass.
	// The visible and hidden passes each get their own budget.
	PassBudget time.Duration `yaml:"passBudget" validate:"gt=0"`
}

// ClusteringConfig controls the background clustering engine.
type ClusteringConfig struct {
	// MaxIterations caps the number of assign/recompute rounds.
	MaxIterations int `yaml:"maxIterations" validate:"gt=0"`

	// Parallelism limits concurrent assignment chunks (0 = GOMAXPROCS).
	Parallelism int `yaml:"parallelism" validate:"gte=0"`

	// ChunkSize is the number of points one assignment task handles.
	ChunkSize int `yaml:"chunkSize" validate:"gt=0"`

	// Seed feeds the empty-cluster re-seed hash. The default Random seeding
	// strategy is time-seeded when Seed is 0.
	Seed uint64 `yaml:"seed"`
}

// Config is the configuration for a Controller and a Field.
//
// All duration fields accept standard Go duration strings like "50ms", "10ms".
type Config struct {
	// MaxParticlesOnScreen is the visible particle ceiling across all clusters.
	// It also decides at startup whether the density scheduler arms at all.
	MaxParticlesOnScreen int `yaml:"maxParticlesOnScreen" validate:"gt=0"`

	// AveragePointsPerCluster is the target cluster size used to derive k.
	AveragePointsPerCluster int `yaml:"averagePointsPerCluster" validate:"gt=0"`

	// PollInterval is how often Tick checks the running job.
	PollInterval time.Duration `yaml:"pollInterval" validate:"gt=0"`

	// Density controls the density scheduler.
	Density DensityConfig `yaml:"density"`

	// Clustering controls the clustering engine.
	Clustering ClusteringConfig `yaml:"clustering"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		MaxParticlesOnScreen:    100_000,
		AveragePointsPerCluster: 60_000,
		PollInterval:            50 * time.Millisecond,
		Density: DensityConfig{
			Enabled:           true,
			MinDeltaForUpdate: 0.05,
			HiddenDensity:     0.1,
			PassBudget:        10 * time.Millisecond,
		},
		Clustering: ClusteringConfig{
			MaxIterations: 32,
			Parallelism:   0, // GOMAXPROCS
			ChunkSize:     16384,
		},
	}
}

// SetDefaults fills in missing configuration values with production defaults.
//
// Boolean fields are left alone; start from DefaultConfig to get Density.Enabled.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.MaxParticlesOnScreen == 0 {
		cfg.MaxParticlesOnScreen = defaults.MaxParticlesOnScreen
	}
	if cfg.AveragePointsPerCluster == 0 {
		cfg.AveragePointsPerCluster = defaults.AveragePointsPerCluster
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = defaults.PollInterval
	}
	if cfg.Density.MinDeltaForUpdate == 0 {
		cfg.Density.MinDeltaForUpdate = defaults.Density.MinDeltaForUpdate
	}
	if cfg.Density.HiddenDensity == 0 {
		cfg.Density.HiddenDensity = defaults.Density.HiddenDensity
	}
	if cfg.Density.PassBudget == 0 {
		cfg.Density.PassBudget = defaults.Density.PassBudget
	}
	if cfg.Clustering.MaxIterations == 0 {
		cfg.Clustering.MaxIterations = defaults.Clustering.MaxIterations
	}
	if cfg.Clustering.ChunkSize == 0 {
		cfg.Clustering.ChunkSize = defaults.Clustering.ChunkSize
	}
	// Note: Parallelism 0 means GOMAXPROCS and Seed 0 is a valid seed, so no defaults
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks configuration constraints and returns error for invalid values.
//
// Hard Validation Rules:
//   - MaxParticlesOnScreen > 0, AveragePointsPerCluster > 0, PollInterval > 0
//   - Density.MinDeltaForUpdate within [0.01, 0.25]
//   - Density.HiddenDensity within (0, 1]
//   - Density.PassBudget > 0
//   - Clustering.MaxIterations > 0, Clustering.ChunkSize > 0, Clustering.Parallelism >= 0
//
// Returns:
//   - error: Validation error wrapping ErrInvalidConfig, nil if valid
func (cfg *Config) Validate() error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, formatFieldError(fe))
	}

	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")

	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("%s must be > %s, got %v", field, fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be >= %s, got %v", field, fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("%s must be <= %s, got %v", field, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}

// ValidateWithWarnings checks configuration and logs warnings for non-recommended values.
//
// This is called after Validate() in NewController() to provide operator guidance.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	// Warn if each cluster alone would exceed the screen budget
	if cfg.AveragePointsPerCluster > cfg.MaxParticlesOnScreen {
		logger.Warn(
			"AveragePointsPerCluster exceeds MaxParticlesOnScreen, a single visible cluster will be reduced",
			"averagePointsPerCluster", cfg.AveragePointsPerCluster,
			"maxParticlesOnScreen", cfg.MaxParticlesOnScreen,
		)
	}

	// Warn if polling faster than a typical frame
	if cfg.PollInterval < 10*time.Millisecond {
		logger.Warn(
			"PollInterval is very short, polling may run every tick",
			"pollInterval", cfg.PollInterval,
			"recommended", "50ms",
		)
	}

	// Warn if a pass budget eats most of a 60Hz frame
	if cfg.Density.PassBudget > 16*time.Millisecond {
		logger.Warn(
			"PassBudget exceeds a 60Hz frame, density passes may stall the tick loop",
			"passBudget", cfg.Density.PassBudget,
			"recommended", "10ms or lower",
		)
	}
}

// TestConfig returns a configuration optimized for fast test execution.
//
// Polling happens every 5ms and the clustering engine uses small chunks so the
// parallel path is exercised with small inputs. Use DefaultConfig() in production.
//
// Returns:
//   - Config: Configuration with fast timings for tests
//
// Example:
//
//	cfg := cloudlod.TestConfig()
//	cfg.MaxParticlesOnScreen = 100
//	field, err := cloudlod.NewField(&cfg, spawner)
func TestConfig() Config {
	cfg := DefaultConfig()

	cfg.PollInterval = 5 * time.Millisecond // 10x faster
	cfg.Clustering.ChunkSize = 256
	cfg.Clustering.Seed = 1

	return cfg
}

// ParseConfig decodes a YAML document into a Config.
//
// Missing fields keep the values from DefaultConfig(). The result is validated.
//
// Parameters:
//   - data: YAML document
//
// Returns:
//   - Config: Parsed configuration
//   - error: Decode or validation error
//
// Example:
//
//	cfg, err := cloudlod.ParseConfig([]byte("maxParticlesOnScreen: 50000\npollInterval: 100ms\n"))
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	SetDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadConfig reads and parses a YAML configuration file.
//
// Parameters:
//   - path: Path to the YAML file
//
// Returns:
//   - Config: Parsed configuration
//   - error: Read, decode or validation error
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	return ParseConfig(data)
}

// ClusterCount derives the number of clusters for n points.
//
// Returns ceil(n / avgPointsPerCluster), or 0 when n or avgPointsPerCluster is not positive.
//
// Example:
//
//	k := cloudlod.ClusterCount(1_000_000, 60_000) // 17
func ClusterCount(n, avgPointsPerCluster int) int {
	if n <= 0 || avgPointsPerCluster <= 0 {
		return 0
	}

	return (n + avgPointsPerCluster - 1) / avgPointsPerCluster
}

// BaseReductionFactor returns the density every cluster is spawned with.
//
// Returns min(1, maxParticlesOnScreen / n), and 1 when n is not positive.
//
// Example:
//
//	f := cloudlod.BaseReductionFactor(1_000_000, 100_000) // 0.1
func BaseReductionFactor(n, maxParticlesOnScreen int) float64 {
	if n <= 0 {
		return 1
	}

	return math.Min(1, float64(maxParticlesOnScreen)/float64(n))
}
