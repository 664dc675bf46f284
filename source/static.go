package source

import (
	"context"
	"sync"

	"github.com/arloliu/cloudlod/types"
)

// Static implements a point source with a fixed batch.
type Static struct {
	mu    sync.RWMutex
	batch types.PointBatch
}

var _ types.PointSource = (*Static)(nil)

// NewStatic creates a new static point source.
//
// The batch is treated as read-only from here on and is handed out without
// copying; use Update to replace it rather than mutating it in place.
//
// Parameters:
//   - batch: Points to serve
//
// Returns:
//   - *Static: Initialized static source
//
// Example:
//
//	batch, _ := source.Combine(positions, colors)
//	src := source.NewStatic(batch)
//	handle, err := field.StartFromSource(ctx, src)
func NewStatic(batch types.PointBatch) *Static {
	return &Static{batch: batch}
}

// Points returns the current batch.
//
// Returns:
//   - types.PointBatch: The batch (shared, read-only)
//   - error: Context error if ctx is already done
func (s *Static) Points(ctx context.Context) (types.PointBatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.batch, nil
}

// Update replaces the batch.
//
// Jobs already started keep the batch they were given.
//
// Parameters:
//   - batch: New batch
func (s *Static) Update(batch types.PointBatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.batch = batch
}

// Func adapts a function to the PointSource interface.
type Func func(ctx context.Context) (types.PointBatch, error)

var _ types.PointSource = Func(nil)

// Points calls f.
func (f Func) Points(ctx context.Context) (types.PointBatch, error) {
	return f(ctx)
}
