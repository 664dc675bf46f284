// Package testing provides test utilities for the cloudlod library.
//
// This package offers in-memory stand-ins for the collaborators the library
// consumes, so fields and controllers can be exercised without a renderer. It
// follows Go's convention of providing testing utilities in a dedicated package
// (similar to net/http/httptest).
//
// Key utilities:
//   - FakeSink: Scriptable Sink that records every SetDensity call
//   - FakeSpawner: Spawner that creates FakeSinks and can fail chosen clusters
//   - NewTestLogger: Logger writing to testing.T
//   - RecordingLogger: Logger that keeps entries for assertions
//
// Example usage:
//
//	import (
//	    "testing"
//	    lodtest "github.com/arloliu/cloudlod/testing"
//	)
//
//	func TestMyComponent(t *testing.T) {
//	    spawner := lodtest.NewFakeSpawner()
//	    field, _ := cloudlod.NewField(&cfg, spawner, cloudlod.WithLogger(lodtest.NewTestLogger(t)))
//	    // drive field.Tick and inspect spawner.Sinks()
//	}
package testing
