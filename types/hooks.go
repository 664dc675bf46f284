package types

import "context"

// Hooks defines callbacks for clustering and scheduling lifecycle events.
//
// All hooks are optional. Unlike background notifications, partition hooks are
// invoked synchronously on the goroutine that calls Tick, so a hook may spawn
// renderers or touch tick-owned state directly.
//
// Delivery guarantees:
//   - OnPartitionReady and OnPartitionFailed fire at most once per job
//   - They are mutually exclusive for a given job
//   - Nothing fires for a job that was superseded or whose owner was closed
//   - Hook errors are logged but never change the job outcome
//
// Example:
//
//	hooks := &cloudlod.Hooks{
//	    OnPartitionReady: func(ctx context.Context, p cloudlod.ClusterPartition) error {
//	        log.Printf("clustered into %d groups", p.Len())
//	        return nil
//	    },
//	}
type Hooks struct {
	// OnPartitionReady is called once when a job produced its partition.
	OnPartitionReady func(ctx context.Context, partition ClusterPartition) error

	// OnPartitionFailed is called once when a job could not produce a partition.
	OnPartitionFailed func(ctx context.Context, err error) error

	// OnSchedulerStateChanged is called when the density scheduler transitions.
	OnSchedulerStateChanged func(ctx context.Context, from, to SchedulerState) error

	// OnError is called when a recoverable error occurs (for example a failed spawn).
	OnError func(ctx context.Context, err error) error
}
