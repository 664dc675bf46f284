package density

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/arloliu/cloudlod/types"
)

// Pass names used in metrics and logs.
const (
	PassVisible = "visible"
	PassHidden  = "hidden"
)

// handle is the scheduler's record of one spawned cluster.
type handle struct {
	cluster   int
	sink      types.Sink
	visible   bool
	particles int
	density   float64
}

// HandleSnapshot is a copy of a handle's last-known values.
type HandleSnapshot struct {
	Cluster   int
	Visible   bool
	Particles int
	Density   float64
}

// PassReport summarizes one time-boxed pass.
type PassReport struct {
	Updated  int           // Sinks that received SetDensity
	Skipped  int           // Sinks whose change was below MinDeltaForUpdate
	Deferred int           // Sinks not reached before the budget ran out
	Elapsed  time.Duration // Time spent in the pass
}

// TickReport summarizes one scheduler tick.
type TickReport struct {
	// Ran is false when the tick was a no-op (scheduler not Active).
	Ran bool

	TotalVisible int
	Reduction    float64
	Visible      PassReport
	Hidden       PassReport
}

// Scheduler re-budgets cluster densities once per tick.
//
// State machine:
//   - Disabled: feature off, nothing to schedule, or point count within the screen cap
//   - ArmedWaitingForSpawn: waiting for every expected cluster to register a sink
//   - Active: runs both passes on every Tick
//
// Only the tick goroutine may call Arm, Disable, Register, Abandon and Tick.
type Scheduler struct {
	cfg   Config
	state atomic.Int32 // types.SchedulerState

	expected int
	handles  []*handle

	// Reused per tick to avoid allocations.
	visible []*handle
	hidden  []*handle
}

// New creates a scheduler in the Disabled state.
//
// Parameters:
//   - cfg: Scheduler configuration (optional fields defaulted)
//
// Returns:
//   - *Scheduler: New scheduler instance
//   - error: Validation error if configuration is invalid
func New(cfg Config) (*Scheduler, error) {
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid density scheduler config: %w", err)
	}

	s := &Scheduler{cfg: cfg}
	s.state.Store(int32(types.SchedulerDisabled))

	return s, nil
}

// State returns the current scheduler state.
//
// This method is thread-safe and can be called concurrently.
func (s *Scheduler) State() types.SchedulerState {
	return types.SchedulerState(s.state.Load())
}

// ReductionFactor returns the global density factor for a visible load.
//
// The result is min(maxOnScreen/totalVisible, 1), and 1 when nothing is visible.
func ReductionFactor(totalVisible, maxOnScreen int) float64 {
	if totalVisible <= 0 {
		return 1
	}

	return math.Min(float64(maxOnScreen)/float64(totalVisible), 1)
}

// Arm prepares the scheduler for a freshly started partition.
//
// Previously registered handles are dropped. The scheduler stays Disabled when
// the feature is off, when pointCount does not exceed the screen cap, or when
// no clusters are expected; otherwise it waits for expected registrations.
//
// Parameters:
//   - ctx: Context passed to the state change callback
//   - pointCount: Total number of points being clustered
//   - expected: Number of clusters that will be spawned
//
// Returns:
//   - types.SchedulerState: State after arming
func (s *Scheduler) Arm(ctx context.Context, pointCount, expected int) types.SchedulerState {
	s.reset()

	if !s.cfg.Enabled || pointCount <= s.cfg.MaxParticlesOnScreen || expected <= 0 {
		s.transition(ctx, types.SchedulerDisabled)
		return types.SchedulerDisabled
	}

	s.expected = expected
	s.transition(ctx, types.SchedulerArmed)

	return types.SchedulerArmed
}

// Disable drops every handle and moves the scheduler to Disabled.
func (s *Scheduler) Disable(ctx context.Context) {
	s.reset()
	s.transition(ctx, types.SchedulerDisabled)
}

// Register adds a spawned cluster sink.
//
// The scheduler turns Active once every expected cluster has either registered
// or been abandoned. Registration is ignored unless the scheduler is armed.
//
// Parameters:
//   - ctx: Context passed to the state change callback
//   - cluster: Cluster index
//   - sink: Spawned sink
//   - density: Density the sink was spawned with
//
// Returns:
//   - bool: true if the sink is now scheduled
func (s *Scheduler) Register(ctx context.Context, cluster int, sink types.Sink, density float64) bool {
	if s.State() != types.SchedulerArmed || sink == nil {
		return false
	}

	s.handles = append(s.handles, &handle{
		cluster:   cluster,
		sink:      sink,
		particles: sink.ParticleCount(),
		density:   density,
	})
	s.maybeActivate(ctx)

	return true
}

// Abandon records that a cluster will never register, for example after a
// failed spawn. The expected count shrinks so the scheduler cannot stay armed
// forever; when nothing is left to wait for and nothing registered, it disables.
func (s *Scheduler) Abandon(ctx context.Context, cluster int) {
	if s.State() != types.SchedulerArmed {
		return
	}

	s.expected--
	s.cfg.Logger.Warn("cluster abandoned by density scheduler",
		"cluster", cluster,
		"expected", s.expected,
		"registered", len(s.handles),
	)

	if s.expected <= 0 && len(s.handles) == 0 {
		s.transition(ctx, types.SchedulerDisabled)
		return
	}
	s.maybeActivate(ctx)
}

// Snapshot returns the last-known values of every handle in registration order.
func (s *Scheduler) Snapshot() []HandleSnapshot {
	out := make([]HandleSnapshot, len(s.handles))
	for i, h := range s.handles {
		out[i] = HandleSnapshot{
			Cluster:   h.cluster,
			Visible:   h.visible,
			Particles: h.particles,
			Density:   h.density,
		}
	}

	return out
}

// Tick runs one scheduling round.
//
// Steps:
//  1. No-op unless Active
//  2. Split handles by Sink.IsVisible and sum visible ParticleCount
//  3. Apply ReductionFactor to visible sinks in registration order (own budget)
//  4. Apply HiddenDensity to hidden sinks in registration order (own budget)
//
// In both passes SetDensity is skipped when the change is below
// MinDeltaForUpdate. A pass stops once its elapsed time exceeds PassBudget; the
// check runs after each sink, so a pass overshoots by at most one update.
//
// Returns:
//   - TickReport: What the tick did
func (s *Scheduler) Tick() TickReport {
	if s.State() != types.SchedulerActive {
		return TickReport{}
	}

	s.visible = s.visible[:0]
	s.hidden = s.hidden[:0]
	total := 0
	for _, h := range s.handles {
		h.visible = h.sink.IsVisible()
		h.particles = h.sink.ParticleCount()
		if h.visible {
			s.visible = append(s.visible, h)
			total += h.particles
		} else {
			s.hidden = append(s.hidden, h)
		}
	}

	reduction := ReductionFactor(total, s.cfg.MaxParticlesOnScreen)
	s.cfg.Metrics.RecordReductionFactor(reduction)

	report := TickReport{
		Ran:          true,
		TotalVisible: total,
		Reduction:    reduction,
		Visible:      s.pass(PassVisible, s.visible, reduction),
		Hidden:       s.pass(PassHidden, s.hidden, s.cfg.HiddenDensity),
	}

	return report
}

// pass pushes target to every handle until the budget runs out.
func (s *Scheduler) pass(name string, handles []*handle, target float64) PassReport {
	var r PassReport

	start := s.cfg.Now()
	for i, h := range handles {
		if math.Abs(target-h.density) < s.cfg.MinDeltaForUpdate {
			r.Skipped++
		} else {
			h.sink.SetDensity(target)
			h.density = target
			r.Updated++
		}

		r.Elapsed = s.cfg.Now().Sub(start)
		if r.Elapsed > s.cfg.PassBudget && i < len(handles)-1 {
			r.Deferred = len(handles) - i - 1
			break
		}
	}

	s.cfg.Metrics.RecordDensityPass(name, r.Updated, r.Deferred, r.Elapsed.Seconds())
	if r.Deferred > 0 {
		s.cfg.Logger.Debug("density pass over budget",
			"pass", name,
			"updated", r.Updated,
			"deferred", r.Deferred,
			"elapsed", r.Elapsed,
			"budget", s.cfg.PassBudget,
		)
	}

	return r
}

func (s *Scheduler) maybeActivate(ctx context.Context) {
	if len(s.handles) >= s.expected {
		s.transition(ctx, types.SchedulerActive)
	}
}

func (s *Scheduler) reset() {
	clear(s.handles)
	s.handles = s.handles[:0]
	s.expected = 0
}

func (s *Scheduler) transition(ctx context.Context, to types.SchedulerState) {
	from := types.SchedulerState(s.state.Swap(int32(to)))
	if from == to {
		return
	}

	s.cfg.Logger.Info("density scheduler state changed", "from", from.String(), "to", to.String())
	s.cfg.Metrics.RecordSchedulerTransition(from, to)
	s.cfg.OnStateChange(ctx, from, to)
}
