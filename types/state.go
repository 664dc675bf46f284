package types

// JobState represents the lifecycle state of a clustering job.
//
// States follow a single forward progression:
//
//	JobIdle → JobRunning → JobDone | JobFailed
//
// JobDone and JobFailed are terminal.
type JobState int

const (
	// JobIdle indicates the job has not been started (or the handle is unknown).
	JobIdle JobState = iota

	// JobRunning indicates the job is executing on its background goroutine.
	JobRunning

	// JobDone indicates the job finished and produced a partition.
	JobDone

	// JobFailed indicates the job finished without a partition.
	JobFailed
)

// String returns the string representation of the job state.
func (s JobState) String() string {
	switch s {
	case JobIdle:
		return "Idle"
	case JobRunning:
		return "Running"
	case JobDone:
		return "Done"
	case JobFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the state can no longer change.
func (s JobState) Terminal() bool {
	return s == JobDone || s == JobFailed
}

// SchedulerState represents the state of the density scheduler.
//
// The scheduler transitions through these states:
//
//	Disabled (permanent)
//	ArmedWaitingForSpawn → Active
//
// Disabled is chosen when dynamic density is switched off or the point count
// never exceeded the on-screen cap. Active loops on the per-tick pass forever.
type SchedulerState int

const (
	// SchedulerDisabled indicates ticks are no-ops.
	SchedulerDisabled SchedulerState = iota

	// SchedulerArmed indicates the scheduler waits for every cluster sink to spawn.
	SchedulerArmed

	// SchedulerActive indicates the per-tick budget pass runs.
	SchedulerActive
)

// String returns the string representation of the scheduler state.
//
// Returns:
//   - string: Human-readable state name
func (s SchedulerState) String() string {
	switch s {
	case SchedulerDisabled:
		return "Disabled"
	case SchedulerArmed:
		return "ArmedWaitingForSpawn"
	case SchedulerActive:
		return "Active"
	default:
		return "Unknown"
	}
}
