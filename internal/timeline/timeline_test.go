package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/slidefx/internal/easing"
)

func TestTimelineStartsAtZero(t *testing.T) {
	tl := New(200*time.Millisecond, easing.OutCubic)

	assert.Equal(t, 0.0, tl.Value())
	assert.False(t, tl.Done())

	// First advance only records the reference timestamp.
	tl.Advance(5 * time.Second)
	assert.Equal(t, 0.0, tl.Value())
	assert.Equal(t, time.Duration(0), tl.Elapsed())
}

func TestTimelineReachesDone(t *testing.T) {
	tl := New(200*time.Millisecond, easing.Linear)

	tl.Advance(0)
	tl.Advance(100 * time.Millisecond)
	assert.InDelta(t, 0.5, tl.Value(), 1e-9)
	assert.False(t, tl.Done())

	tl.Advance(199 * time.Millisecond)
	assert.False(t, tl.Done())

	tl.Advance(200 * time.Millisecond)
	assert.True(t, tl.Done())
	assert.Equal(t, 1.0, tl.Value())

	tl.Advance(400 * time.Millisecond)
	assert.True(t, tl.Done())
	assert.Equal(t, 1.0, tl.Value())
	assert.Equal(t, 200*time.Millisecond, tl.Elapsed())
}

func TestTimelineMonotonic(t *testing.T) {
	tl := New(160*time.Millisecond, easing.InCubic)

	prev := tl.Value()
	stamps := []time.Duration{0, 16, 32, 20, 48, 64, 64, 120, 170}
	for _, ms := range stamps {
		tl.Advance(ms * time.Millisecond)
		v := tl.Value()
		assert.GreaterOrEqual(t, v, prev, "at %dms", ms)
		prev = v
	}
	assert.True(t, tl.Done())
}

func TestTimelineBackwardsTimestampIgnored(t *testing.T) {
	tl := New(100*time.Millisecond, easing.Linear)

	tl.Advance(50 * time.Millisecond)
	tl.Advance(80 * time.Millisecond)
	tl.Advance(10 * time.Millisecond)
	assert.Equal(t, 30*time.Millisecond, tl.Elapsed())

	// Measured from the latest timestamp, not the highest.
	tl.Advance(30 * time.Millisecond)
	assert.Equal(t, 50*time.Millisecond, tl.Elapsed())
}

func TestZeroDurationIsDone(t *testing.T) {
	tl := New(0, easing.OutCubic)
	assert.True(t, tl.Done())
	assert.Equal(t, 1.0, tl.Value())

	neg := New(-time.Second, nil)
	assert.True(t, neg.Done())
	assert.Equal(t, time.Duration(0), neg.Duration())
}
