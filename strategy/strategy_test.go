package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cloudlod/types"
)

func lineBatch(n int) types.PointBatch {
	batch := make(types.PointBatch, n)
	for i := range batch {
		batch[i] = types.Point{Position: types.Vec3{X: float32(i)}}
	}

	return batch
}

func contains(batch types.PointBatch, v types.Vec3) bool {
	for _, p := range batch {
		if p.Position == v {
			return true
		}
	}

	return false
}

// TestSeedStrategy_InvalidClusterCount verifies that every strategy rejects out-of-range k.
func TestSeedStrategy_InvalidClusterCount(t *testing.T) {
	strategies := map[string]types.SeedStrategy{
		"Random": NewRandom(WithSeed(1)),
		"Hashed": NewHashed(),
		"Stride": NewStride(),
	}

	for name, s := range strategies {
		t.Run(name, func(t *testing.T) {
			batch := lineBatch(5)
			for _, k := range []int{0, -1, 6} {
				seeds, err := s.Seed(batch, k)
				require.ErrorIs(t, err, types.ErrInvalidClusterCount, "k=%d", k)
				require.Nil(t, seeds)
			}

			_, err := s.Seed(nil, 1)
			require.ErrorIs(t, err, types.ErrInvalidClusterCount)
		})
	}
}

// TestSeedStrategy_PicksFromBatch verifies exactly k picks, all taken from the batch.
func TestSeedStrategy_PicksFromBatch(t *testing.T) {
	strategies := map[string]types.SeedStrategy{
		"Random": NewRandom(),
		"Hashed": NewHashed(WithHashSeed(3)),
		"Stride": NewStride(),
	}

	for name, s := range strategies {
		t.Run(name, func(t *testing.T) {
			batch := lineBatch(100)
			for _, k := range []int{1, 7, 100} {
				seeds, err := s.Seed(batch, k)
				require.NoError(t, err)
				require.Len(t, seeds, k)
				for _, c := range seeds {
					require.True(t, contains(batch, c), "%v not in batch", c)
				}
			}
		})
	}
}

func TestRandom_SameSeedSamePicks(t *testing.T) {
	batch := lineBatch(1000)

	a, err := NewRandom(WithSeed(42)).Seed(batch, 20)
	require.NoError(t, err)
	b, err := NewRandom(WithSeed(42)).Seed(batch, 20)
	require.NoError(t, err)

	require.Equal(t, a, b)
}

func TestRandom_AllowsDuplicates(t *testing.T) {
	// Drawing every point of a tiny batch with replacement repeats one sooner or later.
	batch := lineBatch(3)
	r := NewRandom(WithSeed(5))

	sawDuplicate := false
	for range 50 {
		seeds, err := r.Seed(batch, 3)
		require.NoError(t, err)
		if seeds[0] == seeds[1] || seeds[0] == seeds[2] || seeds[1] == seeds[2] {
			sawDuplicate = true
			break
		}
	}
	require.True(t, sawDuplicate)
}

func TestHashed_Deterministic(t *testing.T) {
	batch := lineBatch(1000)

	a, err := NewHashed(WithHashSeed(9)).Seed(batch, 17)
	require.NoError(t, err)
	b, err := NewHashed(WithHashSeed(9)).Seed(batch, 17)
	require.NoError(t, err)
	c, err := NewHashed(WithHashSeed(10)).Seed(batch, 17)
	require.NoError(t, err)

	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
}

func TestStride_EvenlySpacedWithoutDuplicates(t *testing.T) {
	batch := lineBatch(10)

	seeds, err := NewStride().Seed(batch, 4)
	require.NoError(t, err)
	require.Equal(t, []types.Vec3{{X: 0}, {X: 2}, {X: 5}, {X: 7}}, seeds)

	seeds, err = NewStride().Seed(batch, 10)
	require.NoError(t, err)
	seen := make(map[types.Vec3]bool)
	for _, s := range seeds {
		require.False(t, seen[s], "duplicate pick %v", s)
		seen[s] = true
	}
}
