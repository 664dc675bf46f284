package types

import "errors"

// Sentinel errors for the cloudlod library.
//
// These errors provide type-safe error checking using errors.Is() and errors.As().
// All components should use these sentinel errors for known error conditions
// and wrap external errors with context using fmt.Errorf("%s: %w", msg, err).

// Configuration and construction errors.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSpawnerRequired is returned when a Field is created without a spawner.
	ErrSpawnerRequired = errors.New("spawner is required")
)

// Clustering errors - reported once through OnPartitionFailed.
var (
	// ErrInvalidClusterCount is returned when k <= 0 or k exceeds the number of points.
	ErrInvalidClusterCount = errors.New("invalid cluster count")

	// ErrInvalidCentroids is returned when the initial centroid count does not match k.
	ErrInvalidCentroids = errors.New("initial centroid count does not match cluster count")
)

// Controller errors.
var (
	// ErrControllerClosed is returned when Start is called after Close.
	ErrControllerClosed = errors.New("controller closed")

	// ErrJobSuperseded is the failure recorded for a job replaced by a newer Start.
	// It is never delivered to hooks.
	ErrJobSuperseded = errors.New("clustering job superseded")
)

// Source errors.
var (
	// ErrLengthMismatch is returned when position and color slices differ in length.
	ErrLengthMismatch = errors.New("positions and colors differ in length")

	// ErrNoSource is returned when a nil point source is supplied.
	ErrNoSource = errors.New("point source is required")
)
