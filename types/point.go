package types

import "math"

// Vec3 is a position in cluster space.
type Vec3 struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
	Z float32 `json:"z" yaml:"z"`
}

// DistanceSquared returns the squared Euclidean distance between v and o.
//
// Computed in float64 so sums over millions of points stay stable.
func (v Vec3) DistanceSquared(o Vec3) float64 {
	dx := float64(v.X) - float64(o.X)
	dy := float64(v.Y) - float64(o.Y)
	dz := float64(v.Z) - float64(o.Z)

	return dx*dx + dy*dy + dz*dz
}

// Color is a normalized RGBA color, each channel in [0, 1].
type Color struct {
	R float32 `json:"r" yaml:"r"`
	G float32 `json:"g" yaml:"g"`
	B float32 `json:"b" yaml:"b"`
	A float32 `json:"a" yaml:"a"`
}

// Clamp returns the color with every channel limited to [0, 1].
// NaN channels become 0.
func (c Color) Clamp() Color {
	return Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: clamp01(c.A)}
}

func clamp01(f float32) float32 {
	if math.IsNaN(float64(f)) || f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}

	return f
}

// Point is a single colored sample. Points are passed by value and never mutated.
//
// Only Position takes part in clustering; Color is carried along untouched.
type Point struct {
	Position Vec3  `json:"position" yaml:"position"`
	Color    Color `json:"color" yaml:"color"`
}

// PointBatch is the ordered input of one clustering request.
//
// A batch handed to a clustering job is shared read-only between the caller and
// the background goroutine; callers must not modify it afterwards.
type PointBatch []Point

// Positions returns the position component of every point in order.
//
// Returns:
//   - []Vec3: Newly allocated slice of length len(b)
func (b PointBatch) Positions() []Vec3 {
	out := make([]Vec3, len(b))
	for i := range b {
		out[i] = b[i].Position
	}

	return out
}

// ClusterPartition is the terminal output of a clustering job.
//
// Invariant: every input point appears in exactly one entry of Clusters and the
// sum of all cluster lengths equals the batch length. Once produced it is
// immutable; ownership moves from the job to the controller and then to consumers.
type ClusterPartition struct {
	// Clusters holds one ordered point sequence per cluster.
	Clusters [][]Point `json:"clusters"`

	// Centroids holds the final mean position of each cluster, index-aligned with Clusters.
	Centroids []Vec3 `json:"centroids"`

	// Iterations is the number of assign/recompute rounds that ran.
	Iterations int `json:"iterations"`

	// Converged reports whether assignments stopped changing before the iteration cap.
	Converged bool `json:"converged"`

	// Inertia is the total within-cluster squared distance recorded after each round.
	Inertia []float64 `json:"inertia"`
}

// Len returns the number of clusters.
func (p *ClusterPartition) Len() int {
	if p == nil {
		return 0
	}

	return len(p.Clusters)
}

// PointCount returns the total number of points across all clusters.
func (p *ClusterPartition) PointCount() int {
	if p == nil {
		return 0
	}

	total := 0
	for _, c := range p.Clusters {
		total += len(c)
	}

	return total
}
