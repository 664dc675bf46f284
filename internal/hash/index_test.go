package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFold(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		require.Equal(t, Fold(7, 1, 2, 3), Fold(7, 1, 2, 3))
	})

	t.Run("empty returns seed", func(t *testing.T) {
		require.Equal(t, uint64(42), Fold(42))
	})

	t.Run("order sensitive", func(t *testing.T) {
		require.NotEqual(t, Fold(0, 1, 2), Fold(0, 2, 1))
	})

	t.Run("seed sensitive", func(t *testing.T) {
		require.NotEqual(t, Fold(1, 5), Fold(2, 5))
	})
}

func TestIndex_Range(t *testing.T) {
	for _, n := range []int{1, 2, 7, 1000} {
		for i := range 500 {
			idx := Index(n, 99, uint64(i)) //nolint:gosec
			require.GreaterOrEqual(t, idx, 0)
			require.Less(t, idx, n)
		}
	}
}

func TestIndex_Distribution(t *testing.T) {
	const (
		n       = 10
		samples = 10_000
	)

	counts := make([]int, n)
	for i := range samples {
		counts[Index(n, 0, uint64(i))]++ //nolint:gosec
	}

	// Every bucket should be within 20% of the expected share.
	for b, c := range counts {
		require.InDelta(t, samples/n, c, samples/n*0.2, "bucket %d", b)
	}
}
