package testing

import (
	"context"
	"sync"

	"github.com/arloliu/cloudlod/types"
)

// FakeSink is an in-memory Sink.
//
// Visibility and particle count are scriptable. Every SetDensity call is
// recorded. All methods are safe for concurrent use so tests may inspect a
// sink while another goroutine drives ticks.
type FakeSink struct {
	mu        sync.Mutex
	cluster   int
	points    []types.Point
	visible   bool
	particles int
	initial   float64
	density   float64
	calls     []float64
}

var _ types.Sink = (*FakeSink)(nil)

// NewFakeSink creates a visible sink whose particle count is len(points).
//
// Parameters:
//   - cluster: Cluster index the sink renders
//   - points: Points of the cluster
//   - density: Density the sink is spawned with
//
// Returns:
//   - *FakeSink: New sink
func NewFakeSink(cluster int, points []types.Point, density float64) *FakeSink {
	return &FakeSink{
		cluster:   cluster,
		points:    points,
		visible:   true,
		particles: len(points),
		initial:   density,
		density:   density,
	}
}

// IsVisible implements types.Sink.
func (s *FakeSink) IsVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.visible
}

// ParticleCount implements types.Sink.
func (s *FakeSink) ParticleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.particles
}

// SetDensity implements types.Sink.
func (s *FakeSink) SetDensity(factor float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.density = factor
	s.calls = append(s.calls, factor)
}

// SetVisible changes what IsVisible reports.
func (s *FakeSink) SetVisible(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.visible = visible
}

// SetParticleCount changes what ParticleCount reports.
func (s *FakeSink) SetParticleCount(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.particles = n
}

// Cluster returns the cluster index the sink was spawned for.
func (s *FakeSink) Cluster() int {
	return s.cluster
}

// Points returns the points the sink was spawned with.
func (s *FakeSink) Points() []types.Point {
	return s.points
}

// InitialDensity returns the density passed at spawn time.
func (s *FakeSink) InitialDensity() float64 {
	return s.initial
}

// Density returns the current density.
func (s *FakeSink) Density() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.density
}

// DensityCalls returns a copy of every SetDensity argument in call order.
func (s *FakeSink) DensityCalls() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]float64(nil), s.calls...)
}

// FakeSpawner is a Spawner creating FakeSinks.
//
// Individual clusters can be set to fail with FailOn. Safe for concurrent use.
type FakeSpawner struct {
	mu      sync.Mutex
	sinks   []*FakeSink
	fail    map[int]error
	hidden  bool
	spawned int
}

var _ types.Spawner = (*FakeSpawner)(nil)

// NewFakeSpawner creates a spawner whose sinks start visible.
func NewFakeSpawner() *FakeSpawner {
	return &FakeSpawner{fail: make(map[int]error)}
}

// FailOn makes Spawn return err for the given cluster.
func (s *FakeSpawner) FailOn(cluster int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fail[cluster] = err
}

// SpawnHidden makes subsequently spawned sinks start hidden.
func (s *FakeSpawner) SpawnHidden(hidden bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hidden = hidden
}

// Spawn implements types.Spawner.
func (s *FakeSpawner) Spawn(_ context.Context, cluster int, points []types.Point, density float64) (types.Sink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.spawned++
	if err, ok := s.fail[cluster]; ok {
		return nil, err
	}

	sink := NewFakeSink(cluster, points, density)
	sink.visible = !s.hidden
	s.sinks = append(s.sinks, sink)

	return sink, nil
}

// Sinks returns the successfully spawned sinks in spawn order.
func (s *FakeSpawner) Sinks() []*FakeSink {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*FakeSink(nil), s.sinks...)
}

// SpawnCalls returns how many times Spawn was called, failures included.
func (s *FakeSpawner) SpawnCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.spawned
}
