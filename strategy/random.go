package strategy

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/arloliu/cloudlod/types"
)

// Random draws k centroids uniformly at random with replacement.
//
// The same point may be chosen more than once. The clustering engine re-seeds
// the resulting empty clusters, so duplicates are accepted rather than filtered.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

var _ types.SeedStrategy = (*Random)(nil)

// RandomOption configures a Random strategy.
type RandomOption func(*randomOptions)

type randomOptions struct {
	seed    uint64
	hasSeed bool
}

// NewRandom creates a new uniform random seeding strategy.
//
// Parameters:
//   - opts: Optional configuration (WithSeed)
//
// Returns:
//   - *Random: Initialized random strategy
//
// Example:
//
//	seeder := strategy.NewRandom(strategy.WithSeed(42))
//	field, _ := cloudlod.NewField(&cfg, spawner, cloudlod.WithSeedStrategy(seeder))
func NewRandom(opts ...RandomOption) *Random {
	o := randomOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	seed := o.seed
	if !o.hasSeed {
		seed = uint64(time.Now().UnixNano()) //nolint:gosec // G115: any bit pattern is a fine seed
	}

	return &Random{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))} //nolint:gosec // G404: seeding is not security sensitive
}

// WithSeed makes the draws reproducible.
//
// Parameters:
//   - seed: PRNG seed
//
// Returns:
//   - RandomOption: Configuration option
func WithSeed(seed uint64) RandomOption {
	return func(o *randomOptions) {
		o.seed = seed
		o.hasSeed = true
	}
}

// Seed draws k positions from batch.
//
// Safe for concurrent use.
//
// Parameters:
//   - batch: Points to cluster
//   - k: Number of clusters
//
// Returns:
//   - []types.Vec3: Exactly k positions, possibly repeated
//   - error: ErrInvalidClusterCount for out-of-range k
func (r *Random) Seed(batch types.PointBatch, k int) ([]types.Vec3, error) {
	if err := checkClusterCount(len(batch), k); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	seeds := make([]types.Vec3, k)
	for i := range seeds {
		seeds[i] = batch[r.rng.IntN(len(batch))].Position
	}

	return seeds, nil
}
