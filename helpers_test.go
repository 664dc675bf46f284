package cloudlod

import (
	"context"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// cloudPoints returns n points spread uniformly in a 100-unit cube.
func cloudPoints(n int) []Point {
	rng := rand.New(rand.NewPCG(1, 2))
	points := make([]Point, n)
	for i := range points {
		points[i] = Point{
			Position: Vec3{X: rng.Float32() * 100, Y: rng.Float32() * 100, Z: rng.Float32() * 100},
			Color:    Color{R: rng.Float32(), G: rng.Float32(), B: rng.Float32(), A: 1},
		}
	}

	return points
}

// hookRecorder counts deliveries; hooks may run on a goroutine other than the test's.
type hookRecorder struct {
	ready  atomic.Int32
	failed atomic.Int32
	errors atomic.Int32

	mu         sync.Mutex
	partitions []ClusterPartition
	failures   []error
	states     []SchedulerState
}

func (r *hookRecorder) hooks() *Hooks {
	return &Hooks{
		OnPartitionReady: func(_ context.Context, p ClusterPartition) error {
			r.mu.Lock()
			r.partitions = append(r.partitions, p)
			r.mu.Unlock()
			r.ready.Add(1)

			return nil
		},
		OnPartitionFailed: func(_ context.Context, err error) error {
			r.mu.Lock()
			r.failures = append(r.failures, err)
			r.mu.Unlock()
			r.failed.Add(1)

			return nil
		},
		OnSchedulerStateChanged: func(_ context.Context, _, to SchedulerState) error {
			r.mu.Lock()
			r.states = append(r.states, to)
			r.mu.Unlock()

			return nil
		},
		OnError: func(context.Context, error) error {
			r.errors.Add(1)
			return nil
		},
	}
}

func (r *hookRecorder) delivered() int32 {
	return r.ready.Load() + r.failed.Load()
}

func (r *hookRecorder) lastPartition(t *testing.T) *ClusterPartition {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.partitions)

	return &r.partitions[len(r.partitions)-1]
}

func (r *hookRecorder) lastFailure(t *testing.T) error {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.failures)

	return r.failures[len(r.failures)-1]
}

// tickUntil calls tick with the wall clock until cond holds.
func tickUntil(t *testing.T, tick func(time.Time), cond func() bool) {
	t.Helper()

	require.Eventually(t, func() bool {
		tick(time.Now())
		return cond()
	}, 10*time.Second, 2*time.Millisecond)
}

// recordingMetrics is a thread-safe MetricsCollector keeping what tests assert on.
type recordingMetrics struct {
	mu           sync.Mutex
	outcomes     map[string]int
	clusterCount int
	transitions  []SchedulerState
	passes       map[string]int
}

func (m *recordingMetrics) RecordClusteringRun(float64, int, bool) {}

func (m *recordingMetrics) RecordReseed() {}

func (m *recordingMetrics) RecordJobOutcome(outcome string, _ float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.outcomes == nil {
		m.outcomes = make(map[string]int)
	}
	m.outcomes[outcome]++
}

func (m *recordingMetrics) RecordClusterCount(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clusterCount = count
}

func (m *recordingMetrics) RecordSchedulerTransition(_, to SchedulerState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.transitions = append(m.transitions, to)
}

func (m *recordingMetrics) RecordReductionFactor(float64) {}

func (m *recordingMetrics) RecordDensityPass(pass string, _, _ int, _ float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.passes == nil {
		m.passes = make(map[string]int)
	}
	m.passes[pass]++
}

func (m *recordingMetrics) outcomeCount(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.outcomes[outcome]
}

func (m *recordingMetrics) lastClusterCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.clusterCount
}

func (m *recordingMetrics) passCount(pass string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.passes[pass]
}
