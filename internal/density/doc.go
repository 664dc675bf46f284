// Package density implements the per-tick particle density scheduler.
//
// The scheduler owns one handle per spawned cluster. Every tick it splits the
// handles into visible and hidden sets, derives a global reduction factor from
// the visible particle load, and pushes new density factors to the sinks in two
// time-boxed passes (visible first, then hidden). Each pass has its own budget;
// sinks past the deadline keep their previous density until a later tick.
//
// The scheduler is driven from a single tick goroutine. Only State is safe to
// call from other goroutines.
package density
