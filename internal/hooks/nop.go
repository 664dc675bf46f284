// Package hooks provides default Hooks implementations.
package hooks

import (
	"context"

	"github.com/arloliu/cloudlod/types"
)

// NopHooks implements every hook callback as a no-op.
//
// This is the default used when no custom hooks are provided, eliminating
// nil checks at every delivery site.
type NopHooks struct{}

// Compile-time assertions that NopHooks provides every hook signature.
var _ func(context.Context, types.ClusterPartition) error = (*NopHooks)(nil).OnPartitionReady

var _ func(context.Context, error) error = (*NopHooks)(nil).OnPartitionFailed

var _ func(context.Context, types.SchedulerState, types.SchedulerState) error = (*NopHooks)(nil).OnSchedulerStateChanged

var _ func(context.Context, error) error = (*NopHooks)(nil).OnError

// NewNop creates hooks where every callback is a no-op.
//
// Returns:
//   - types.Hooks: Hooks with no-op implementations
func NewNop() types.Hooks {
	h := &NopHooks{}

	return types.Hooks{
		OnPartitionReady:        h.OnPartitionReady,
		OnPartitionFailed:       h.OnPartitionFailed,
		OnSchedulerStateChanged: h.OnSchedulerStateChanged,
		OnError:                 h.OnError,
	}
}

// Fill returns a copy of h with every nil callback replaced by a no-op.
//
// Parameters:
//   - h: User hooks (may be nil)
//
// Returns:
//   - types.Hooks: Hooks safe to call without nil checks
func Fill(h *types.Hooks) types.Hooks {
	out := NewNop()
	if h == nil {
		return out
	}

	if h.OnPartitionReady != nil {
		out.OnPartitionReady = h.OnPartitionReady
	}
	if h.OnPartitionFailed != nil {
		out.OnPartitionFailed = h.OnPartitionFailed
	}
	if h.OnSchedulerStateChanged != nil {
		out.OnSchedulerStateChanged = h.OnSchedulerStateChanged
	}
	if h.OnError != nil {
		out.OnError = h.OnError
	}

	return out
}

// OnPartitionReady is a no-op implementation.
func (h *NopHooks) OnPartitionReady(_ context.Context, _ types.ClusterPartition) error {
	return nil
}

// OnPartitionFailed is a no-op implementation.
func (h *NopHooks) OnPartitionFailed(_ context.Context, _ error) error {
	return nil
}

// OnSchedulerStateChanged is a no-op implementation.
func (h *NopHooks) OnSchedulerStateChanged(_ context.Context, _, _ types.SchedulerState) error {
	return nil
}

// OnError is a no-op implementation.
func (h *NopHooks) OnError(_ context.Context, _ error) error {
	return nil
}
