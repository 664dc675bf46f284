package density

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arloliu/cloudlod/internal/logging"
	"github.com/arloliu/cloudlod/internal/metrics"
	"github.com/arloliu/cloudlod/types"
)

// Default scheduler settings.
const (
	DefaultMinDeltaForUpdate = 0.05
	DefaultHiddenDensity     = 0.1
	DefaultPassBudget        = 10 * time.Millisecond
)

// Config holds scheduler configuration.
//
// Required fields must be set before calling New.
// Optional fields will be set to sensible defaults if zero-valued.
type Config struct {
	// Required configuration
	MaxParticlesOnScreen int // Visible particle ceiling across all clusters

	// Optional configuration (with defaults)
	Enabled           bool          // Dynamic density on/off; false keeps the scheduler Disabled
	MinDeltaForUpdate float64       // Smallest density change worth a SetDensity call (default: 0.05)
	HiddenDensity     float64       // Density applied to hidden clusters (default: 0.1)
	PassBudget        time.Duration // Wall-clock ceiling of each pass (default: 10ms)

	// Optional dependencies
	Metrics types.SchedulerMetrics // Metrics collector (default: no-op)
	Logger  types.Logger           // Logger (default: no-op)

	// Now returns the current time (default: time.Now). Tests inject a fake clock.
	Now func() time.Time

	// OnStateChange is called on the tick goroutine after every state transition.
	OnStateChange func(ctx context.Context, from, to types.SchedulerState)
}

// Validate checks configuration validity.
//
// Returns an error if any required field is missing or invalid.
func (c *Config) Validate() error {
	if c.MaxParticlesOnScreen <= 0 {
		return fmt.Errorf("MaxParticlesOnScreen must be positive, got %d", c.MaxParticlesOnScreen)
	}
	if c.MinDeltaForUpdate < 0 || c.MinDeltaForUpdate > 1 {
		return fmt.Errorf("MinDeltaForUpdate must be within [0, 1], got %v", c.MinDeltaForUpdate)
	}
	if c.HiddenDensity <= 0 || c.HiddenDensity > 1 {
		return fmt.Errorf("HiddenDensity must be within (0, 1], got %v", c.HiddenDensity)
	}
	if c.PassBudget < 0 {
		return errors.New("PassBudget must not be negative")
	}

	return nil
}

// setDefaults fills zero-valued optional fields.
func (c *Config) setDefaults() {
	if c.MinDeltaForUpdate == 0 {
		c.MinDeltaForUpdate = DefaultMinDeltaForUpdate
	}
	if c.HiddenDensity == 0 {
		c.HiddenDensity = DefaultHiddenDensity
	}
	if c.PassBudget == 0 {
		c.PassBudget = DefaultPassBudget
	}
	if c.Metrics == nil {
		c.Metrics = metrics.NewNop()
	}
	if c.Logger == nil {
		c.Logger = logging.NewNop()
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.OnStateChange == nil {
		c.OnStateChange = func(context.Context, types.SchedulerState, types.SchedulerState) {}
	}
}
