// Package types provides core type definitions and interfaces for the cloudlod library.
//
// This package contains shared types that are used across multiple packages in the
// cloudlod library. By keeping these types in a separate package, we avoid import cycles
// between the main cloudlod package and its internal implementations.
//
// Key types:
//   - Point, PointBatch: Colored 3D input samples
//   - ClusterPartition: Terminal output of a clustering job
//   - JobState, SchedulerState: Lifecycle enums
//   - Sink, Spawner: Renderer-facing collaborator interfaces
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
