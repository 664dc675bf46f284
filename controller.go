package cloudlod

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v4"
	"golang.org/x/time/rate"

	"github.com/arloliu/cloudlod/internal/hooks"
	"github.com/arloliu/cloudlod/internal/kmeans"
	"github.com/arloliu/cloudlod/internal/logging"
	"github.com/arloliu/cloudlod/internal/metrics"
)

// Job outcomes reported to MetricsCollector.RecordJobOutcome.
const (
	outcomeReady     = "ready"
	outcomeFailed    = "failed"
	outcomeDiscarded = "discarded"
)

// jobEntry tracks one started job.
type jobEntry struct {
	handle JobHandle
	job    *kmeans.Job
	cancel context.CancelCauseFunc
	k      int
	points int
}

// Controller bridges background clustering jobs into a cooperative tick loop.
//
// Start launches a job and returns at once. Tick, called once per tick, checks
// the active job at most once per PollInterval and, when it has finished,
// delivers the outcome through Hooks exactly once:
//   - OnPartitionReady with the partition on success
//   - OnPartitionFailed with the reason on failure
//
// Never both, never twice. A job replaced by a newer Start, or still running
// when Close is called, is discarded and never delivered.
//
// Thread Safety:
//   - Poll is safe from any goroutine
//   - Start, Tick and Close are meant for the tick goroutine but are safe to call concurrently
//   - Hooks run synchronously on the goroutine calling Tick
type Controller struct {
	cfg     Config
	hooks   Hooks
	metrics MetricsCollector
	logger  Logger

	jobs    *xsync.Map[JobHandle, *jobEntry]
	limiter *rate.Limiter

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	active *jobEntry
	closed bool
}

// NewController creates a new Controller.
//
// Missing configuration values are filled with defaults before validation.
//
// Parameters:
//   - cfg: Configuration (modified in place by SetDefaults)
//   - opts: Optional configuration (hooks, metrics, logger)
//
// Returns:
//   - *Controller: Initialized controller
//   - error: ErrInvalidConfig if the configuration is invalid
//
// Example:
//
//	cfg := cloudlod.DefaultConfig()
//	ctrl, err := cloudlod.NewController(&cfg, cloudlod.WithHooks(hooks))
//	handle, err := ctrl.Start(ctx, batch, seeds, k)
//	for running {
//	    ctrl.Tick(time.Now())
//	}
func NewController(cfg *Config, opts ...Option) (*Controller, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}

	o := applyOptions(opts)

	return newController(cfg, o)
}

func applyOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	// Provide safe defaults for optional dependencies to avoid nil checks everywhere
	if o.metrics == nil {
		o.metrics = metrics.NewNop()
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}

	return o
}

func newController(cfg *Config, o *options) (*Controller, error) {
	// Fill in missing configuration values with defaults
	SetDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Validate with warnings after logger is available
	cfg.ValidateWithWarnings(o.logger)

	ctx, cancel := context.WithCancel(context.Background())

	return &Controller{
		cfg:     *cfg,
		hooks:   hooks.Fill(o.hooks),
		metrics: o.metrics,
		logger:  o.logger,
		jobs:    xsync.NewMap[JobHandle, *jobEntry](),
		limiter: rate.NewLimiter(rate.Every(cfg.PollInterval), 1),
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// Start launches a clustering job in the background and returns immediately.
//
// A job that is still pending delivery is superseded: its context is cancelled
// and its result will be discarded.
//
// Parameters:
//   - ctx: Parent context of the job; cancelling it aborts the run
//   - batch: Points to cluster (read-only for the job's lifetime)
//   - centroids: k initial centroid positions (copied)
//   - k: Number of clusters
//
// Returns:
//   - JobHandle: Handle to Poll
//   - error: ErrControllerClosed after Close
func (c *Controller) Start(ctx context.Context, batch PointBatch, centroids []Vec3, k int) (JobHandle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return "", ErrControllerClosed
	}

	if prev := c.active; prev != nil {
		c.discard(prev, ErrJobSuperseded)
	}
	c.sweep()

	jobCtx, cancel := context.WithCancelCause(ctx)
	entry := &jobEntry{
		handle: JobHandle(uuid.NewString()),
		cancel: cancel,
		k:      k,
		points: len(batch),
	}
	entry.job = kmeans.Start(jobCtx, kmeans.Request{Batch: batch, Centroids: centroids, K: k}, c.engineConfig(), c.logger, c.metrics)

	c.jobs.Store(entry.handle, entry)
	c.active = entry

	c.logger.Info("clustering job started",
		"job", entry.handle.String(),
		"points", entry.points,
		"k", k,
	)

	return entry.handle, nil
}

// Poll returns the state of a job without blocking.
//
// Unknown handles, including those of long-finished jobs that were swept after
// a later Start, report JobIdle. This method is safe for concurrent use.
func (c *Controller) Poll(handle JobHandle) JobState {
	entry, ok := c.jobs.Load(handle)
	if !ok {
		return JobIdle
	}

	return entry.job.State()
}

// Active returns the handle of the job awaiting delivery, if any.
func (c *Controller) Active() (JobHandle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil {
		return "", false
	}

	return c.active.handle, true
}

// Tick checks the active job and delivers its outcome once it has finished.
//
// The check runs at most once per PollInterval, measured against now; other
// calls return immediately. Tick never blocks on a running job.
//
// Parameters:
//   - now: Current time of the tick loop
func (c *Controller) Tick(now time.Time) {
	if !c.limiter.AllowN(now, 1) {
		return
	}

	c.mu.Lock()
	entry := c.active
	if entry == nil || c.closed || !entry.job.Ready() {
		c.mu.Unlock()
		return
	}
	// Clearing active before delivery makes delivery exactly-once.
	c.active = nil
	c.mu.Unlock()

	c.deliver(entry)
}

// Close cancels delivery of every pending job.
//
// Running jobs are cancelled and their results discarded. Start returns
// ErrControllerClosed afterwards. Close is idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true

	if c.active != nil {
		c.discard(c.active, ErrControllerClosed)
	}
	c.jobs.Range(func(_ JobHandle, e *jobEntry) bool {
		e.cancel(ErrControllerClosed)
		return true
	})
	c.cancel()
}

func (c *Controller) deliver(entry *jobEntry) {
	partition, err := entry.job.Result()
	duration := entry.job.Duration()
	entry.cancel(nil)

	if err != nil {
		c.logger.Warn("clustering job failed",
			"job", entry.handle.String(),
			"duration", duration,
			"error", err,
		)
		c.metrics.RecordJobOutcome(outcomeFailed, duration.Seconds())

		if hookErr := c.hooks.OnPartitionFailed(c.ctx, err); hookErr != nil {
			c.logger.Error("OnPartitionFailed hook failed", "job", entry.handle.String(), "error", hookErr)
		}

		return
	}

	c.logger.Info("clustering job finished",
		"job", entry.handle.String(),
		"duration", duration,
		"clusters", partition.Len(),
		"iterations", partition.Iterations,
		"converged", partition.Converged,
		"reseeds", entry.job.Stats().Reseeds,
	)
	c.metrics.RecordJobOutcome(outcomeReady, duration.Seconds())
	c.metrics.RecordClusterCount(partition.Len())

	if hookErr := c.hooks.OnPartitionReady(c.ctx, *partition); hookErr != nil {
		c.logger.Error("OnPartitionReady hook failed", "job", entry.handle.String(), "error", hookErr)
	}
}

// discard drops the active job without delivery. A job still running fails
// with cause. Caller holds c.mu.
func (c *Controller) discard(entry *jobEntry, cause error) {
	entry.cancel(cause)
	c.active = nil

	c.logger.Debug("clustering job discarded",
		"job", entry.handle.String(),
		"reason", cause.Error(),
		"state", entry.job.State().String(),
	)
	c.metrics.RecordJobOutcome(outcomeDiscarded, entry.job.Duration().Seconds())
}

// sweep forgets finished jobs that are no longer active. Caller holds c.mu.
func (c *Controller) sweep() {
	c.jobs.Range(func(h JobHandle, e *jobEntry) bool {
		if e != c.active && e.job.Ready() {
			c.jobs.Delete(h)
		}

		return true
	})
}

func (c *Controller) engineConfig() kmeans.Config {
	return kmeans.Config{
		MaxIterations: c.cfg.Clustering.MaxIterations,
		Parallelism:   c.cfg.Clustering.Parallelism,
		ChunkSize:     c.cfg.Clustering.ChunkSize,
		Seed:          c.cfg.Clustering.Seed,
	}
}
