package cloudlod

import "github.com/arloliu/cloudlod/types"

// Sentinel errors re-exported from the types package.
//
// Check them with errors.Is:
//
//	if errors.Is(err, cloudlod.ErrInvalidClusterCount) { ... }
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrSpawnerRequired is returned when a Field is created without a spawner.
	ErrSpawnerRequired = types.ErrSpawnerRequired

	// ErrInvalidClusterCount is returned when k <= 0 or k exceeds the number of points.
	ErrInvalidClusterCount = types.ErrInvalidClusterCount

	// ErrInvalidCentroids is returned when the initial centroid count does not match k.
	ErrInvalidCentroids = types.ErrInvalidCentroids

	// ErrControllerClosed is returned when Start is called after Close.
	ErrControllerClosed = types.ErrControllerClosed

	// ErrJobSuperseded is recorded for a job replaced by a newer Start. Never delivered to hooks.
	ErrJobSuperseded = types.ErrJobSuperseded

	// ErrLengthMismatch is returned when position and color slices differ in length.
	ErrLengthMismatch = types.ErrLengthMismatch

	// ErrNoSource is returned when a nil point source is supplied.
	ErrNoSource = types.ErrNoSource
)
