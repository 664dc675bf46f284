package strategy

import "github.com/arloliu/cloudlod/types"

// Stride picks k evenly spaced points: index i*n/k for i in [0, k).
//
// Indices are strictly increasing, so no point is picked twice.
type Stride struct{}

var _ types.SeedStrategy = (*Stride)(nil)

// NewStride creates a new stride seeding strategy.
//
// Returns:
//   - *Stride: Initialized stride strategy
func NewStride() *Stride {
	return &Stride{}
}

// Seed picks k evenly spaced positions from batch.
func (s *Stride) Seed(batch types.PointBatch, k int) ([]types.Vec3, error) {
	if err := checkClusterCount(len(batch), k); err != nil {
		return nil, err
	}

	n := len(batch)
	seeds := make([]types.Vec3, k)
	for i := range seeds {
		seeds[i] = batch[i*n/k].Position
	}

	return seeds, nil
}
