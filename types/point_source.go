package types

import "context"

// PointSource provides the points to cluster.
//
// Implementations can read from any backend:
//   - Static: fixed in-memory batch
//   - Custom: files, scanners, procedural generators
type PointSource interface {
	// Points returns the full batch to cluster.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//
	// Returns:
	//   - PointBatch: Points to cluster (may be empty)
	//   - error: Read error (nil on success)
	Points(ctx context.Context) (PointBatch, error)
}
