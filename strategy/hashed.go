package strategy

import (
	"github.com/arloliu/cloudlod/internal/hash"
	"github.com/arloliu/cloudlod/types"
)

// Hashed draws k centroids deterministically from an XXH3 hash sequence.
//
// Pick i is Index(len(batch), seed, i), so the picks depend only on the batch
// length, k and the seed. Like Random, picks may repeat.
type Hashed struct {
	hashSeed uint64
}

var _ types.SeedStrategy = (*Hashed)(nil)

// HashedOption configures a Hashed strategy.
type HashedOption func(*Hashed)

// NewHashed creates a new deterministic seeding strategy.
//
// Parameters:
//   - opts: Optional configuration (WithHashSeed)
//
// Returns:
//   - *Hashed: Initialized hashed strategy
//
// Example:
//
//	seeder := strategy.NewHashed(strategy.WithHashSeed(7))
func NewHashed(opts ...HashedOption) *Hashed {
	h := &Hashed{}
	for _, opt := range opts {
		opt(h)
	}

	return h
}

// WithHashSeed sets a custom hash seed.
//
// Parameters:
//   - seed: Hash seed value
//
// Returns:
//   - HashedOption: Configuration option
func WithHashSeed(seed uint64) HashedOption {
	return func(h *Hashed) {
		h.hashSeed = seed
	}
}

// Seed draws k positions from batch.
//
// Parameters:
//   - batch: Points to cluster
//   - k: Number of clusters
//
// Returns:
//   - []types.Vec3: Exactly k positions, possibly repeated
//   - error: ErrInvalidClusterCount for out-of-range k
func (h *Hashed) Seed(batch types.PointBatch, k int) ([]types.Vec3, error) {
	if err := checkClusterCount(len(batch), k); err != nil {
		return nil, err
	}

	seeds := make([]types.Vec3, k)
	for i := range seeds {
		seeds[i] = batch[hash.Index(len(batch), h.hashSeed, uint64(i))].Position //nolint:gosec // G115: i >= 0
	}

	return seeds, nil
}
