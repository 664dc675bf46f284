package types

import "context"

// Sink is the per-cluster renderer consumed by the density scheduler.
//
// The renderer itself lives outside this library. The scheduler calls these
// methods only from the tick goroutine, so implementations need no locking
// unless they are shared elsewhere.
type Sink interface {
	// IsVisible reports whether the cluster is visible this tick.
	IsVisible() bool

	// ParticleCount returns the number of particles the cluster holds at full density.
	ParticleCount() int

	// SetDensity sets the fraction of particles to display, in (0, 1].
	SetDensity(factor float64)
}

// Spawner creates one Sink per cluster once a partition is ready.
//
// Spawn is invoked on the tick goroutine, once per cluster, in cluster order.
type Spawner interface {
	// Spawn creates the renderer for a single cluster.
	//
	// Parameters:
	//   - ctx: Context of the owning field
	//   - cluster: Cluster index in the partition
	//   - points: Points of the cluster; ownership moves to the spawner
	//   - density: Initial density factor in (0, 1]
	//
	// Returns:
	//   - Sink: The spawned sink
	//   - error: Spawn failure; the cluster is excluded from density scheduling
	Spawn(ctx context.Context, cluster int, points []Point, density float64) (Sink, error)
}

// SpawnerFunc adapts a function to the Spawner interface.
type SpawnerFunc func(ctx context.Context, cluster int, points []Point, density float64) (Sink, error)

// Spawn calls f.
func (f SpawnerFunc) Spawn(ctx context.Context, cluster int, points []Point, density float64) (Sink, error) {
	return f(ctx, cluster, points, density)
}
