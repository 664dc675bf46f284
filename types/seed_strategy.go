package types

// SeedStrategy picks the initial centroids of a clustering job.
//
// Strategies implement different seeding algorithms:
//   - Random: k uniform draws with replacement (duplicates allowed)
//   - Hashed: deterministic draws derived from a seed
//   - Stride: evenly spaced indices
//
// Strategy implementations should:
//   - Return exactly k centroids
//   - Only return positions taken from the batch
//   - Reject k <= 0 and k > len(batch) with ErrInvalidClusterCount
type SeedStrategy interface {
	// Seed returns k initial centroid positions drawn from batch.
	//
	// Parameters:
	//   - batch: Points to cluster
	//   - k: Number of clusters
	//
	// Returns:
	//   - []Vec3: Exactly k centroid positions
	//   - error: ErrInvalidClusterCount for out-of-range k
	Seed(batch PointBatch, k int) ([]Vec3, error)
}
