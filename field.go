package cloudlod

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/arloliu/cloudlod/internal/density"
	"github.com/arloliu/cloudlod/internal/hooks"
	"github.com/arloliu/cloudlod/strategy"
)

// ClusterInfo describes one spawned cluster.
type ClusterInfo struct {
	// Index is the cluster's position in the partition.
	Index int

	// Sink is the renderer returned by the Spawner.
	Sink Sink

	// Points is the number of points handed to the sink.
	Points int

	// Centroid is the cluster's final centroid.
	Centroid Vec3
}

// Field clusters a point cloud in the background and keeps the density of the
// spawned clusters within the on-screen particle budget.
//
// Field is the main entry point of the cloudlod library. It handles:
//   - Deriving k from AveragePointsPerCluster and seeding centroids
//   - Running the clustering job through a Controller
//   - Spawning one Sink per cluster at the base reduction factor
//   - Re-budgeting sink densities every tick once every sink has spawned
//
// Lifecycle:
//   - Create with NewField()
//   - Call StartClustering() (or StartFromSource()) with the points
//   - Call Tick() once per frame from the tick goroutine
//   - Call Close() when the owner goes away
//
// Thread Safety:
//   - Tick, StartClustering and Close belong to the tick goroutine
//   - SchedulerState, Clusters and Poll are safe from any goroutine
type Field struct {
	cfg     Config
	spawner Spawner
	seeder  SeedStrategy
	hooks   Hooks
	logger  Logger

	controller *Controller
	scheduler  *density.Scheduler

	mu       sync.RWMutex
	clusters []ClusterInfo
}

// NewField creates a new Field.
//
// Parameters:
//   - cfg: Configuration (modified in place by SetDefaults)
//   - spawner: Creates one Sink per cluster once a partition is ready
//   - opts: Optional configuration (hooks, metrics, logger, seed strategy, clock)
//
// Returns:
//   - *Field: Initialized field
//   - error: ErrInvalidConfig or ErrSpawnerRequired
//
// Example:
//
//	cfg := cloudlod.DefaultConfig()
//	field, err := cloudlod.NewField(&cfg, spawner, cloudlod.WithLogger(logger))
//	if err != nil { /* handle */ }
//	defer field.Close()
//
//	field.StartClustering(ctx, points)
//	for frame := range frames {
//	    field.Tick(frame.Time)
//	}
func NewField(cfg *Config, spawner Spawner, opts ...Option) (*Field, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}
	if spawner == nil {
		return nil, ErrSpawnerRequired
	}

	o := applyOptions(opts)

	f := &Field{
		spawner: spawner,
		seeder:  o.seeder,
		hooks:   hooks.Fill(o.hooks),
		logger:  o.logger,
	}

	// The controller reports to the field, which forwards to the user hooks.
	ctrlOpts := *o
	ctrlOpts.hooks = &Hooks{
		OnPartitionReady:  f.onPartitionReady,
		OnPartitionFailed: f.onPartitionFailed,
	}
	controller, err := newController(cfg, &ctrlOpts)
	if err != nil {
		return nil, err
	}
	f.cfg = *cfg
	f.controller = controller

	if f.seeder == nil {
		if cfg.Clustering.Seed != 0 {
			f.seeder = strategy.NewRandom(strategy.WithSeed(cfg.Clustering.Seed))
		} else {
			f.seeder = strategy.NewRandom()
		}
	}

	scheduler, err := density.New(density.Config{
		MaxParticlesOnScreen: cfg.MaxParticlesOnScreen,
		Enabled:              cfg.Density.Enabled,
		MinDeltaForUpdate:    cfg.Density.MinDeltaForUpdate,
		HiddenDensity:        cfg.Density.HiddenDensity,
		PassBudget:           cfg.Density.PassBudget,
		Metrics:              o.metrics,
		Logger:               o.logger,
		Now:                  o.clock,
		OnStateChange:        f.onSchedulerStateChanged,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	f.scheduler = scheduler

	return f, nil
}

// StartClustering starts partitioning points in the background.
//
// k is ClusterCount(len(points), AveragePointsPerCluster) and the initial
// centroids come from the seed strategy. The density scheduler is armed when
// the point count exceeds MaxParticlesOnScreen, and disabled otherwise. An
// earlier job still pending is superseded; clusters spawned by an earlier run
// are forgotten (tearing down their sinks is up to the caller).
//
// An empty point set is not an error: it completes with zero clusters,
// nothing is spawned and the scheduler stays Disabled.
//
// Parameters:
//   - ctx: Context of the job
//   - points: Points to cluster (read-only from here on)
//
// Returns:
//   - JobHandle: Handle to Poll
//   - error: Seeding error or ErrControllerClosed
func (f *Field) StartClustering(ctx context.Context, points []Point) (JobHandle, error) {
	batch := PointBatch(points)
	n := len(batch)
	k := ClusterCount(n, f.cfg.AveragePointsPerCluster)

	var centroids []Vec3
	if n > 0 {
		var err error
		centroids, err = f.seeder.Seed(batch, k)
		if err != nil {
			return "", fmt.Errorf("failed to seed centroids: %w", err)
		}
	}

	f.mu.Lock()
	f.clusters = nil
	f.mu.Unlock()

	handle, err := f.controller.Start(ctx, batch, centroids, k)
	if err != nil {
		return "", err
	}

	f.scheduler.Arm(f.controller.ctx, n, k)

	return handle, nil
}

// StartFromSource reads the points from src and calls StartClustering.
//
// Returns:
//   - JobHandle: Handle to Poll
//   - error: ErrNoSource for a nil source, or the source's read error
func (f *Field) StartFromSource(ctx context.Context, src PointSource) (JobHandle, error) {
	if src == nil {
		return "", ErrNoSource
	}

	points, err := src.Points(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read points: %w", err)
	}

	return f.StartClustering(ctx, points)
}

// Tick drives the field for one frame.
//
// It polls the clustering job (at PollInterval cadence), which may spawn the
// cluster sinks, and then runs one density scheduler round.
//
// Parameters:
//   - now: Current time of the tick loop
func (f *Field) Tick(now time.Time) {
	f.controller.Tick(now)
	f.scheduler.Tick()
}

// Poll returns the state of a job started by this field.
func (f *Field) Poll(handle JobHandle) JobState {
	return f.controller.Poll(handle)
}

// SchedulerState returns the current density scheduler state.
func (f *Field) SchedulerState() SchedulerState {
	return f.scheduler.State()
}

// Clusters returns the spawned clusters in cluster order.
//
// Clusters whose spawn failed are absent.
func (f *Field) Clusters() []ClusterInfo {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return append([]ClusterInfo(nil), f.clusters...)
}

// Close cancels any pending job and stops density scheduling.
func (f *Field) Close() {
	f.controller.Close()
	f.scheduler.Disable(context.Background())
}

// onPartitionReady spawns the cluster sinks, then forwards to the user hook.
func (f *Field) onPartitionReady(ctx context.Context, partition ClusterPartition) error {
	base := BaseReductionFactor(partition.PointCount(), f.cfg.MaxParticlesOnScreen)

	spawned := make([]ClusterInfo, 0, partition.Len())
	for i, points := range partition.Clusters {
		sink, err := f.spawner.Spawn(ctx, i, points, base)
		if err == nil && sink == nil {
			err = errors.New("spawner returned no sink")
		}
		if err != nil {
			f.logger.Error("failed to spawn cluster", "cluster", i, "points", len(points), "error", err)
			f.scheduler.Abandon(ctx, i)
			if hookErr := f.hooks.OnError(ctx, fmt.Errorf("spawn cluster %d: %w", i, err)); hookErr != nil {
				f.logger.Error("OnError hook failed", "error", hookErr)
			}

			continue
		}

		spawned = append(spawned, ClusterInfo{
			Index:    i,
			Sink:     sink,
			Points:   len(points),
			Centroid: partition.Centroids[i],
		})
		f.scheduler.Register(ctx, i, sink, base)
	}

	f.mu.Lock()
	f.clusters = spawned
	f.mu.Unlock()

	f.logger.Info("clusters spawned",
		"clusters", len(spawned),
		"failed", partition.Len()-len(spawned),
		"baseReduction", base,
		"scheduler", f.scheduler.State().String(),
	)

	return f.hooks.OnPartitionReady(ctx, partition)
}

// onPartitionFailed disables scheduling, then forwards to the user hook.
func (f *Field) onPartitionFailed(ctx context.Context, err error) error {
	f.scheduler.Disable(ctx)

	return f.hooks.OnPartitionFailed(ctx, err)
}

func (f *Field) onSchedulerStateChanged(ctx context.Context, from, to SchedulerState) {
	if err := f.hooks.OnSchedulerStateChanged(ctx, from, to); err != nil {
		f.logger.Error("OnSchedulerStateChanged hook failed", "from", from.String(), "to", to.String(), "error", err)
	}
}
