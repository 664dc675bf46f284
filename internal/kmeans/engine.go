// Package kmeans implements the background clustering engine.
//
// The engine partitions a PointBatch into k spatially coherent clusters with
// Lloyd-style refinement: assign every point to its nearest centroid, move each
// centroid to the mean of its members, repeat until assignments stop changing or
// the iteration cap is reached. Only positions take part; colors ride along.
//
// All working state (assignments, centroids, partial sums) is owned by the job's
// goroutine tree. The only value that crosses back to the caller is the final
// ClusterPartition, published once through Job.
package kmeans

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/cloudlod/internal/hash"
	"github.com/arloliu/cloudlod/internal/logging"
	"github.com/arloliu/cloudlod/types"
)

// Default engine settings.
const (
	DefaultMaxIterations = 32
	DefaultChunkSize     = 16384
)

// Config tunes a single engine run.
type Config struct {
	// MaxIterations caps the number of assign/recompute rounds.
	MaxIterations int

	// Parallelism limits concurrent assignment chunks (0 = GOMAXPROCS).
	Parallelism int

	// ChunkSize is the number of points handled by one assignment task.
	ChunkSize int

	// Seed feeds the empty-cluster re-seed hash. Equal seeds give equal runs.
	Seed uint64
}

func (c Config) withDefaults() Config {
	if c.MaxIterations <= 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.Parallelism <= 0 {
		c.Parallelism = runtime.GOMAXPROCS(0)
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}

	return c
}

// Request is the input of one clustering run.
type Request struct {
	// Batch is shared read-only with the caller for the duration of the run.
	Batch types.PointBatch

	// Centroids are the k initial centroid positions. The engine copies them.
	Centroids []types.Vec3

	// K is the number of clusters.
	K int
}

// Stats describes a finished run beyond the partition itself.
type Stats struct {
	// Reseeds counts empty clusters that were re-seeded.
	Reseeds int
}

// vec is a float64 position used for sums and centroids.
type vec struct {
	x, y, z float64
}

func toVec(v types.Vec3) vec {
	return vec{x: float64(v.X), y: float64(v.Y), z: float64(v.Z)}
}

func (v vec) dist2(p types.Vec3) float64 {
	dx := float64(p.X) - v.x
	dy := float64(p.Y) - v.y
	dz := float64(p.Z) - v.z

	return dx*dx + dy*dy + dz*dz
}

// chunkState holds the per-task partial results of one assignment pass.
type chunkState struct {
	sums    []vec
	counts  []int
	changed int
}

type engine struct {
	cfg    Config
	logger types.Logger

	batch     types.PointBatch
	k         int
	centroids []vec
	assign    []int32
	sums      []vec
	counts    []int
	chunks    []chunkState
	reseeds   int
}

// Run executes a clustering request synchronously on the calling goroutine.
//
// Edge cases:
//   - Empty batch: succeeds with zero clusters, whatever k is
//   - k <= 0 or k > len(batch): ErrInvalidClusterCount
//   - len(Centroids) != k: ErrInvalidCentroids
//   - ctx cancelled: the cancellation cause (context.Cause), checked between rounds and chunks
//
// Parameters:
//   - ctx: Context for cancellation
//   - req: Points, initial centroids and k
//   - cfg: Engine settings (zero values use defaults)
//   - logger: Logger for re-seed diagnostics (nil discards)
//
// Returns:
//   - *types.ClusterPartition: Partition on success
//   - Stats: Run statistics
//   - error: Failure reason
func Run(ctx context.Context, req Request, cfg Config, logger types.Logger) (*types.ClusterPartition, Stats, error) {
	n := len(req.Batch)
	if n == 0 {
		return &types.ClusterPartition{
			Clusters:  [][]types.Point{},
			Centroids: []types.Vec3{},
			Converged: true,
		}, Stats{}, nil
	}
	if req.K <= 0 || req.K > n {
		return nil, Stats{}, fmt.Errorf("%w: k=%d points=%d", types.ErrInvalidClusterCount, req.K, n)
	}
	if len(req.Centroids) != req.K {
		return nil, Stats{}, fmt.Errorf("%w: got %d, want %d", types.ErrInvalidCentroids, len(req.Centroids), req.K)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	e := newEngine(req, cfg.withDefaults(), logger)
	partition, err := e.run(ctx)
	if err != nil {
		if cause := context.Cause(ctx); cause != nil {
			err = cause
		}

		return nil, Stats{Reseeds: e.reseeds}, err
	}

	return partition, Stats{Reseeds: e.reseeds}, nil
}

func newEngine(req Request, cfg Config, logger types.Logger) *engine {
	n := len(req.Batch)
	numChunks := (n + cfg.ChunkSize - 1) / cfg.ChunkSize

	e := &engine{
		cfg:       cfg,
		logger:    logger,
		batch:     req.Batch,
		k:         req.K,
		centroids: make([]vec, req.K),
		assign:    make([]int32, n),
		sums:      make([]vec, req.K),
		counts:    make([]int, req.K),
		chunks:    make([]chunkState, numChunks),
	}
	for i, c := range req.Centroids {
		e.centroids[i] = toVec(c)
	}
	for i := range e.assign {
		e.assign[i] = -1
	}
	for i := range e.chunks {
		e.chunks[i] = chunkState{sums: make([]vec, req.K), counts: make([]int, req.K)}
	}

	return e
}

func (e *engine) run(ctx context.Context) (*types.ClusterPartition, error) {
	inertia := make([]float64, 0, e.cfg.MaxIterations)
	converged := false
	iterations := 0

	for iter := 1; iter <= e.cfg.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		changed, err := e.assignStep(ctx)
		if err != nil {
			return nil, err
		}
		iterations = iter

		e.repairEmpty(iter)
		e.updateCentroids()

		cost, err := e.inertia(ctx)
		if err != nil {
			return nil, err
		}
		inertia = append(inertia, cost)

		if changed == 0 {
			converged = true
			break
		}
	}

	return e.partition(iterations, converged, inertia), nil
}

// forEachChunk runs fn over every chunk with bounded parallelism.
func (e *engine) forEachChunk(ctx context.Context, fn func(chunk, lo, hi int)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Parallelism)

	n := len(e.batch)
	for c := range e.chunks {
		lo := c * e.cfg.ChunkSize
		hi := min(lo+e.cfg.ChunkSize, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(c, lo, hi)

			return nil
		})
	}

	return g.Wait()
}

// assignStep moves every point to its nearest centroid and rebuilds sums and counts.
//
// Each chunk writes a disjoint range of e.assign and its own partial sums, so no
// locking is needed. Ties go to the lowest centroid index.
func (e *engine) assignStep(ctx context.Context) (int, error) {
	err := e.forEachChunk(ctx, func(chunk, lo, hi int) {
		st := &e.chunks[chunk]
		clear(st.sums)
		clear(st.counts)
		st.changed = 0

		for i := lo; i < hi; i++ {
			p := e.batch[i].Position
			best := int32(0)
			bestDist := e.centroids[0].dist2(p)
			for j := 1; j < e.k; j++ {
				if d := e.centroids[j].dist2(p); d < bestDist {
					best, bestDist = int32(j), d //nolint:gosec // G115: j < k which fits int32
				}
			}

			if e.assign[i] != best {
				e.assign[i] = best
				st.changed++
			}
			s := &st.sums[best]
			s.x += float64(p.X)
			s.y += float64(p.Y)
			s.z += float64(p.Z)
			st.counts[best]++
		}
	})
	if err != nil {
		return 0, err
	}

	clear(e.sums)
	clear(e.counts)
	changed := 0
	for c := range e.chunks {
		st := &e.chunks[c]
		changed += st.changed
		for j := 0; j < e.k; j++ {
			e.sums[j].x += st.sums[j].x
			e.sums[j].y += st.sums[j].y
			e.sums[j].z += st.sums[j].z
			e.counts[j] += st.counts[j]
		}
	}

	return changed, nil
}

// repairEmpty re-seeds every cluster that received no points this round.
//
// Re-seed rule: fold (seed, iteration, cluster) with xxh3 to pick a start index,
// then walk forward (wrapping) to the first point whose cluster still has at
// least two members. That point moves into the empty cluster and the centroid is
// placed on it. With n >= k a donor always exists, so one attempt suffices and
// the following mean never divides by zero.
func (e *engine) repairEmpty(iter int) {
	n := len(e.batch)
	for j := 0; j < e.k; j++ {
		if e.counts[j] > 0 {
			continue
		}

		start := int(reseedHash(e.cfg.Seed, iter, j) % uint64(n)) //nolint:gosec // G115: result < n
		for off := 0; off < n; off++ {
			i := (start + off) % n
			donor := e.assign[i]
			if e.counts[donor] < 2 {
				continue
			}

			p := e.batch[i].Position
			ds := &e.sums[donor]
			ds.x -= float64(p.X)
			ds.y -= float64(p.Y)
			ds.z -= float64(p.Z)
			e.counts[donor]--

			e.assign[i] = int32(j) //nolint:gosec // G115: j < k which fits int32
			e.sums[j] = toVec(p)
			e.counts[j] = 1
			e.centroids[j] = toVec(p)
			e.reseeds++

			e.logger.Debug("re-seeded empty cluster",
				"cluster", j,
				"iteration", iter,
				"point", i,
				"donor", donor,
			)

			break
		}
	}
}

func reseedHash(seed uint64, iter, cluster int) uint64 {
	return hash.Fold(seed, uint64(iter), uint64(cluster)) //nolint:gosec // G115: both are non-negative
}

// updateCentroids moves each centroid to the mean of its members.
func (e *engine) updateCentroids() {
	for j := 0; j < e.k; j++ {
		c := e.counts[j]
		if c == 0 {
			// Unreachable after repairEmpty; keep the previous centroid.
			continue
		}
		inv := 1 / float64(c)
		e.centroids[j] = vec{x: e.sums[j].x * inv, y: e.sums[j].y * inv, z: e.sums[j].z * inv}
	}
}

// inertia returns the total squared distance of every point to its centroid.
func (e *engine) inertia(ctx context.Context) (float64, error) {
	partial := make([]float64, len(e.chunks))
	err := e.forEachChunk(ctx, func(chunk, lo, hi int) {
		sum := 0.0
		for i := lo; i < hi; i++ {
			sum += e.centroids[e.assign[i]].dist2(e.batch[i].Position)
		}
		partial[chunk] = sum
	})
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, s := range partial {
		total += s
	}

	return total, nil
}

// partition materializes the final cluster sequences in input order.
func (e *engine) partition(iterations int, converged bool, inertia []float64) *types.ClusterPartition {
	clusters := make([][]types.Point, e.k)
	for j := range clusters {
		clusters[j] = make([]types.Point, 0, e.counts[j])
	}
	for i, a := range e.assign {
		clusters[a] = append(clusters[a], e.batch[i])
	}

	centroids := make([]types.Vec3, e.k)
	for j, c := range e.centroids {
		centroids[j] = types.Vec3{X: float32(c.x), Y: float32(c.y), Z: float32(c.z)}
	}

	return &types.ClusterPartition{
		Clusters:   clusters,
		Centroids:  centroids,
		Iterations: iterations,
		Converged:  converged,
		Inertia:    inertia,
	}
}
