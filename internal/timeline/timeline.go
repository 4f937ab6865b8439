// Package timeline tracks the progress of a fixed-duration animation that
// is advanced once per rendered frame using presentation timestamps.
package timeline

import (
	"time"

	"github.com/jmylchreest/slidefx/internal/easing"
)

// Timeline accumulates elapsed time between presentation timestamps and
// reports eased progress against a fixed duration.
//
// The first call to Advance only records the reference timestamp; progress
// starts accumulating from the second frame. Timestamps that move backwards
// contribute nothing, so Value never decreases.
type Timeline struct {
	duration time.Duration
	curve    easing.Curve

	elapsed time.Duration
	last    time.Duration
	hasLast bool
}

// New creates a timeline of the given duration shaped by curve.
// A nil curve is treated as linear. A non-positive duration is done immediately.
func New(duration time.Duration, curve easing.Curve) *Timeline {
	if duration < 0 {
		duration = 0
	}
	return &Timeline{duration: duration, curve: curve}
}

// Advance moves the timeline forward to presentTime.
// Call it at most once per rendered frame.
func (t *Timeline) Advance(presentTime time.Duration) {
	if !t.hasLast {
		t.last = presentTime
		t.hasLast = true
		return
	}
	if delta := presentTime - t.last; delta > 0 {
		t.elapsed += delta
	}
	t.last = presentTime
	if t.elapsed > t.duration {
		t.elapsed = t.duration
	}
}

// Elapsed returns the accumulated time, capped at the duration.
func (t *Timeline) Elapsed() time.Duration {
	return t.elapsed
}

// Duration returns the configured duration.
func (t *Timeline) Duration() time.Duration {
	return t.duration
}

// Progress returns the linear fraction of completion in [0,1].
func (t *Timeline) Progress() float64 {
	if t.duration == 0 {
		return 1
	}
	return float64(t.elapsed) / float64(t.duration)
}

// Value returns the eased fraction of completion in [0,1].
func (t *Timeline) Value() float64 {
	return easing.Apply(t.curve, t.Progress())
}

// Done reports whether the elapsed time has reached the duration.
func (t *Timeline) Done() bool {
	return t.elapsed >= t.duration
}
