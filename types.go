package cloudlod

import "github.com/arloliu/cloudlod/types"

// Re-export types from the internal types package.
//
// This file provides a stable public API for the library's core types and
// interfaces. It uses type aliases to re-export definitions from the `types`
// subpackage, so internal packages can depend on `types` without importing the
// root `cloudlod` package, while users still write `cloudlod.Point`,
// `cloudlod.Logger`, etc.
type (
	Vec3             = types.Vec3
	Color            = types.Color
	Point            = types.Point
	PointBatch       = types.PointBatch
	ClusterPartition = types.ClusterPartition
	JobHandle        = types.JobHandle
	JobState         = types.JobState
	SchedulerState   = types.SchedulerState
)

// Re-export interfaces from the internal types package for convenience.
type (
	Sink             = types.Sink
	Spawner          = types.Spawner
	SpawnerFunc      = types.SpawnerFunc
	PointSource      = types.PointSource
	SeedStrategy     = types.SeedStrategy
	MetricsCollector = types.MetricsCollector
	Logger           = types.Logger
	Hooks            = types.Hooks
)

// Re-export state constants from the internal types package.
const (
	JobIdle    = types.JobIdle
	JobRunning = types.JobRunning
	JobDone    = types.JobDone
	JobFailed  = types.JobFailed

	SchedulerDisabled = types.SchedulerDisabled
	SchedulerArmed    = types.SchedulerArmed
	SchedulerActive   = types.SchedulerActive
)
