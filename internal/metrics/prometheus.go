package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/cloudlod/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors are created and registered lazily on first use so that an unused
// collector never touches the registry.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	// Clustering
	runDuration   *prometheus.HistogramVec
	runIterations prometheus.Histogram
	reseeds       prometheus.Counter

	// Controller
	jobOutcomes  *prometheus.CounterVec
	jobLatency   *prometheus.HistogramVec
	clusterCount prometheus.Gauge

	// Scheduler
	schedulerState  prometheus.Gauge
	transitions     *prometheus.CounterVec
	reductionFactor prometheus.Gauge
	passUpdates     *prometheus.CounterVec
	passDeferred    *prometheus.CounterVec
	passDuration    *prometheus.HistogramVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Metrics namespace (defaults to "cloudlod" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "cloudlod"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.runDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "clustering",
			Name:      "run_duration_seconds",
			Help:      "Background clustering run time in seconds by convergence.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms .. ~10s
		}, []string{"converged"})

		p.runIterations = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "clustering",
			Name:      "iterations",
			Help:      "Assign/recompute rounds per clustering run.",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 128},
		})

		p.reseeds = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "clustering",
			Name:      "reseeds_total",
			Help:      "Empty clusters re-seeded during refinement.",
		})

		p.jobOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "controller",
			Name:      "jobs_total",
			Help:      "Clustering jobs by outcome (ready, failed, discarded).",
		}, []string{"outcome"})

		p.jobLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "controller",
			Name:      "job_latency_seconds",
			Help:      "Wall-clock time from job start to observed completion.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms .. ~20s
		}, []string{"outcome"})

		p.clusterCount = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "controller",
			Name:      "clusters",
			Help:      "Number of clusters in the last delivered partition.",
		})

		p.schedulerState = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "scheduler",
			Name:      "state",
			Help:      "Current scheduler state (0=disabled, 1=armed, 2=active).",
		})

		p.transitions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "scheduler",
			Name:      "transitions_total",
			Help:      "Scheduler state transitions.",
		}, []string{"from", "to"})

		p.reductionFactor = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "scheduler",
			Name:      "reduction_factor",
			Help:      "Latest global reduction factor applied to visible clusters.",
		})

		p.passUpdates = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "scheduler",
			Name:      "density_updates_total",
			Help:      "SetDensity calls by pass (visible, hidden).",
		}, []string{"pass"})

		p.passDeferred = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "scheduler",
			Name:      "density_deferred_total",
			Help:      "Cluster updates deferred to the next tick by pass.",
		}, []string{"pass"})

		p.passDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "scheduler",
			Name:      "pass_duration_seconds",
			Help:      "Time spent in one density pass.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.02, 0.05},
		}, []string{"pass"})

		p.reg.MustRegister(p.runDuration)
		p.reg.MustRegister(p.runIterations)
		p.reg.MustRegister(p.reseeds)
		p.reg.MustRegister(p.jobOutcomes)
		p.reg.MustRegister(p.jobLatency)
		p.reg.MustRegister(p.clusterCount)
		p.reg.MustRegister(p.schedulerState)
		p.reg.MustRegister(p.transitions)
		p.reg.MustRegister(p.reductionFactor)
		p.reg.MustRegister(p.passUpdates)
		p.reg.MustRegister(p.passDeferred)
		p.reg.MustRegister(p.passDuration)
	})
}

// RecordClusteringRun observes run duration and iteration count.
func (p *PrometheusCollector) RecordClusteringRun(duration float64, iterations int, converged bool) {
	p.ensureRegistered()
	label := "false"
	if converged {
		label = "true"
	}
	p.runDuration.WithLabelValues(label).Observe(duration)
	p.runIterations.Observe(float64(iterations))
}

// RecordReseed increments the re-seed counter.
func (p *PrometheusCollector) RecordReseed() {
	p.ensureRegistered()
	p.reseeds.Inc()
}

// RecordJobOutcome counts the outcome and observes its latency.
func (p *PrometheusCollector) RecordJobOutcome(outcome string, duration float64) {
	p.ensureRegistered()
	p.jobOutcomes.WithLabelValues(outcome).Inc()
	p.jobLatency.WithLabelValues(outcome).Observe(duration)
}

// RecordClusterCount sets the cluster count gauge.
func (p *PrometheusCollector) RecordClusterCount(count int) {
	p.ensureRegistered()
	p.clusterCount.Set(float64(count))
}

// RecordSchedulerTransition counts the transition and updates the state gauge.
func (p *PrometheusCollector) RecordSchedulerTransition(from, to types.SchedulerState) {
	p.ensureRegistered()
	p.transitions.WithLabelValues(from.String(), to.String()).Inc()
	p.schedulerState.Set(float64(to))
}

// RecordReductionFactor sets the reduction factor gauge.
func (p *PrometheusCollector) RecordReductionFactor(factor float64) {
	p.ensureRegistered()
	p.reductionFactor.Set(factor)
}

// RecordDensityPass records updates, deferrals and pass latency.
func (p *PrometheusCollector) RecordDensityPass(pass string, updated, deferred int, duration float64) {
	p.ensureRegistered()
	p.passUpdates.WithLabelValues(pass).Add(float64(updated))
	p.passDeferred.WithLabelValues(pass).Add(float64(deferred))
	p.passDuration.WithLabelValues(pass).Observe(duration)
}
