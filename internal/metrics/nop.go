// Package metrics provides MetricsCollector implementations.
package metrics

import "github.com/arloliu/cloudlod/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Used by default and in tests.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// ClusteringMetrics implementation

// RecordClusteringRun discards the run metric.
func (n *NopMetrics) RecordClusteringRun(_ /* duration */ float64, _ /* iterations */ int, _ /* converged */ bool) {
	// No-op
}

// RecordReseed discards the re-seed counter.
func (n *NopMetrics) RecordReseed() {
	// No-op
}

// ControllerMetrics implementation

// RecordJobOutcome discards the job outcome metric.
func (n *NopMetrics) RecordJobOutcome(_ /* outcome */ string, _ /* duration */ float64) {
	// No-op
}

// RecordClusterCount discards the cluster count gauge.
func (n *NopMetrics) RecordClusterCount(_ /* count */ int) {
	// No-op
}

// SchedulerMetrics implementation

// RecordSchedulerTransition discards the transition metric.
func (n *NopMetrics) RecordSchedulerTransition(_ /* from */, _ /* to */ types.SchedulerState) {
	// No-op
}

// RecordReductionFactor discards the reduction factor gauge.
func (n *NopMetrics) RecordReductionFactor(_ /* factor */ float64) {
	// No-op
}

// RecordDensityPass discards the pass metric.
func (n *NopMetrics) RecordDensityPass(_ /* pass */ string, _ /* updated */, _ /* deferred */ int, _ /* duration */ float64) {
	// No-op
}
