package types

// JobHandle identifies one clustering job started by a controller.
//
// Handles are opaque; the zero value never identifies a job.
type JobHandle string

// IsZero reports whether h is the zero handle.
func (h JobHandle) IsZero() bool {
	return h == ""
}

// String returns the handle identifier.
func (h JobHandle) String() string {
	return string(h)
}
