package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// Clustering metrics are recorded from job goroutines; everything else is
// recorded from the tick goroutine. Implementations must be thread-safe.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	ClusteringMetrics
	ControllerMetrics
	SchedulerMetrics
}

// ClusteringMetrics defines metrics for the background clustering engine.
type ClusteringMetrics interface {
	// RecordClusteringRun records a finished engine run.
	//
	// Parameters:
	//   - duration: Time spent on the background goroutine, in seconds
	//   - iterations: Number of assign/recompute rounds
	//   - converged: true if assignments stabilized before the iteration cap
	RecordClusteringRun(duration float64, iterations int, converged bool)

	// RecordReseed records an empty cluster being re-seeded.
	RecordReseed()
}

// ControllerMetrics defines metrics for the job controller.
type ControllerMetrics interface {
	// RecordJobOutcome records how a job ended for its consumer.
	//
	// Parameters:
	//   - outcome: "ready", "failed" or "discarded"
	//   - duration: Wall-clock time from Start to completion, in seconds
	RecordJobOutcome(outcome string, duration float64)

	// RecordClusterCount sets the number of clusters of the last delivered partition (gauge).
	RecordClusterCount(count int)
}

// SchedulerMetrics defines metrics for the density scheduler.
type SchedulerMetrics interface {
	// RecordSchedulerTransition records a scheduler state change.
	RecordSchedulerTransition(from, to SchedulerState)

	// RecordReductionFactor sets the latest global reduction factor (gauge).
	RecordReductionFactor(factor float64)

	// RecordDensityPass records one time-boxed pass.
	//
	// Parameters:
	//   - pass: "visible" or "hidden"
	//   - updated: Sinks that received SetDensity
	//   - deferred: Sinks left for the next tick because the budget ran out
	//   - duration: Time spent in the pass, in seconds
	RecordDensityPass(pass string, updated, deferred int, duration float64)
}
