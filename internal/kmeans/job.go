package kmeans

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/arloliu/cloudlod/internal/logging"
	"github.com/arloliu/cloudlod/internal/metrics"
	"github.com/arloliu/cloudlod/types"
)

// ErrNotReady is returned by Job.Result while the job is still running.
var ErrNotReady = errors.New("clustering job not finished")

// Job is a clustering run executing on its own goroutine.
//
// The result fields are written exactly once, before the terminal state is
// stored and done is closed. Readers that observe a terminal state (Ready or
// State) or a closed Done channel may read them without further locking.
type Job struct {
	state   atomic.Int32 // types.JobState
	done    chan struct{}
	started time.Time

	result   *types.ClusterPartition
	err      error
	stats    Stats
	finished time.Time
}

// Start launches a clustering run in the background and returns immediately.
//
// Parameters:
//   - ctx: Cancels the run between rounds; the job then fails with context.Cause(ctx)
//   - req: Points, initial centroids and k
//   - cfg: Engine settings
//   - logger: Logger (nil discards)
//   - collector: Clustering metrics (nil discards)
//
// Returns:
//   - *Job: Handle to poll for completion
//
// Example:
//
//	job := kmeans.Start(ctx, kmeans.Request{Batch: batch, Centroids: seeds, K: k}, kmeans.Config{}, logger, nil)
//	for !job.Ready() {
//	    // do other work
//	}
//	partition, err := job.Result()
func Start(ctx context.Context, req Request, cfg Config, logger types.Logger, collector types.ClusteringMetrics) *Job {
	if logger == nil {
		logger = logging.NewNop()
	}
	if collector == nil {
		collector = metrics.NewNop()
	}

	// The caller keeps its own slice; the job owns this copy.
	req.Centroids = append([]types.Vec3(nil), req.Centroids...)

	j := &Job{
		done:    make(chan struct{}),
		started: time.Now(),
	}
	j.state.Store(int32(types.JobRunning))

	go func() {
		partition, stats, err := Run(ctx, req, cfg, logger)
		j.finish(partition, stats, err)

		if err == nil {
			collector.RecordClusteringRun(j.Duration().Seconds(), partition.Iterations, partition.Converged)
		}
		for range stats.Reseeds {
			collector.RecordReseed()
		}
	}()

	return j
}

func (j *Job) finish(partition *types.ClusterPartition, stats Stats, err error) {
	j.result = partition
	j.err = err
	j.stats = stats
	j.finished = time.Now()

	if err != nil {
		j.state.Store(int32(types.JobFailed))
	} else {
		j.state.Store(int32(types.JobDone))
	}
	close(j.done)
}

// State returns the current job state without blocking.
func (j *Job) State() types.JobState {
	return types.JobState(j.state.Load())
}

// Ready reports whether the job finished, successfully or not.
//
// It is a single atomic load and never blocks.
func (j *Job) Ready() bool {
	return j.State().Terminal()
}

// Done returns a channel closed when the job finishes.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Result returns the partition or failure of a finished job.
//
// Returns:
//   - *types.ClusterPartition: Partition when the job is Done
//   - error: Failure reason when the job is Failed, ErrNotReady while running
func (j *Job) Result() (*types.ClusterPartition, error) {
	if !j.Ready() {
		return nil, ErrNotReady
	}

	return j.result, j.err
}

// Stats returns run statistics of a finished job (zero while running).
func (j *Job) Stats() Stats {
	if !j.Ready() {
		return Stats{}
	}

	return j.stats
}

// Duration returns the run time so far, or the total run time once finished.
func (j *Job) Duration() time.Duration {
	if j.Ready() {
		return j.finished.Sub(j.started)
	}

	return time.Since(j.started)
}
