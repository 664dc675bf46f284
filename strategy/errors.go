package strategy

import (
	"fmt"

	"github.com/arloliu/cloudlod/types"
)

// checkClusterCount validates k against the batch size.
func checkClusterCount(n, k int) error {
	if k <= 0 || k > n {
		return fmt.Errorf("%w: k=%d points=%d", types.ErrInvalidClusterCount, k, n)
	}

	return nil
}
