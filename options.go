package cloudlod

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/cloudlod/internal/metrics"
)

// Option configures a Controller or a Field with optional dependencies.
type Option func(*options)

// options holds optional Controller and Field configuration.
type options struct {
	hooks   *Hooks
	metrics MetricsCollector
	logger  Logger
	seeder  SeedStrategy
	clock   func() time.Time
}

// WithHooks sets lifecycle event hooks.
//
// Parameters:
//   - hooks: Hooks structure with callback functions
//
// Returns:
//   - Option: Functional option for NewController and NewField
//
// Example:
//
//	hooks := &cloudlod.Hooks{
//	    OnPartitionReady: func(ctx context.Context, p cloudlod.ClusterPartition) error {
//	        return renderClusters(p.Clusters)
//	    },
//	}
//	field, err := cloudlod.NewField(&cfg, spawner, cloudlod.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *options) {
		o.hooks = hooks
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewController and NewField
//
// Example:
//
//	collector := cloudlod.NewPrometheusMetrics(prometheus.DefaultRegisterer, "")
//	field, err := cloudlod.NewField(&cfg, spawner, cloudlod.WithMetrics(collector))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *options) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (see NewZapLogger and NewSlogLogger)
//
// Returns:
//   - Option: Functional option for NewController and NewField
//
// Example:
//
//	logger := cloudlod.NewZapLogger(zap.NewExample())
//	field, err := cloudlod.NewField(&cfg, spawner, cloudlod.WithLogger(logger))
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSeedStrategy sets how a Field picks initial centroids.
//
// Defaults to strategy.NewRandom seeded from Config.Clustering.Seed (time-seeded
// when the seed is 0). Ignored by a bare Controller, which takes centroids directly.
//
// Parameters:
//   - seeder: SeedStrategy implementation
//
// Returns:
//   - Option: Functional option for NewField
//
// Example:
//
//	field, err := cloudlod.NewField(&cfg, spawner, cloudlod.WithSeedStrategy(strategy.NewStride()))
func WithSeedStrategy(seeder SeedStrategy) Option {
	return func(o *options) {
		o.seeder = seeder
	}
}

// WithClock sets the time source used to measure density pass budgets.
//
// Intended for tests; defaults to time.Now.
//
// Parameters:
//   - now: Function returning the current time
//
// Returns:
//   - Option: Functional option for NewField
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

// NewPrometheusMetrics creates a MetricsCollector backed by Prometheus.
//
// Metrics are registered lazily on first use.
//
// Parameters:
//   - reg: Registerer to register with (nil uses prometheus.DefaultRegisterer)
//   - namespace: Metric namespace (empty uses "cloudlod")
//
// Returns:
//   - MetricsCollector: Prometheus-backed collector
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) MetricsCollector {
	return metrics.NewPrometheus(reg, namespace)
}
