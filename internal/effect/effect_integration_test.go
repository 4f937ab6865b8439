package effect_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/slidefx/internal/edge"
	"github.com/jmylchreest/slidefx/internal/effect"
	"github.com/jmylchreest/slidefx/internal/geom"
	"github.com/jmylchreest/slidefx/internal/sim"
)

func newCompositor(t *testing.T) (*sim.Compositor, *effect.Controller) {
	t.Helper()
	comp := sim.NewCompositor(nil, sim.Output{Geometry: geom.Rect(0, 0, 1920, 1080)})
	ctrl := effect.NewController(comp, nil)
	ctrl.Reconfigure(effect.Options{Duration: 200 * time.Millisecond})
	comp.SetEffect(ctrl)
	return comp, ctrl
}

func translationOf(t *testing.T, f sim.Frame, id effect.WindowID) geom.PointF {
	t.Helper()
	for _, p := range f.Windows {
		if p.Window == id {
			return p.Translation
		}
	}
	t.Fatalf("window %s not painted at %v", id, f.PresentTime)
	return geom.PointF{}
}

func TestSlideInFromRightEdge(t *testing.T) {
	comp, ctrl := newCompositor(t)

	frame := sim.Place(geom.Rect(0, 0, 1920, 1080), edge.Right, 400, 100, 10)
	_, err := comp.Map(sim.WindowSpec{ID: "n1", Type: sim.TypeNotification, Frame: frame, Shadow: 10})
	require.NoError(t, err)
	require.True(t, ctrl.IsActive())

	a, ok := ctrl.Animation("n1")
	require.True(t, ok)
	clipWidth := a.Clip.Width
	assert.Equal(t, 420.0, clipWidth)

	frames := comp.RunUntilIdle(0, 20*time.Millisecond, 100)
	require.Len(t, frames, 11)

	first := frames[0]
	assert.InDelta(t, clipWidth, translationOf(t, first, "n1").X, 1e-9)

	last := frames[len(frames)-1]
	assert.Equal(t, 200*time.Millisecond, last.PresentTime)
	assert.InDelta(t, 0, translationOf(t, last, "n1").X, 1e-9)

	prev := clipWidth
	for _, f := range frames[:len(frames)-1] {
		assert.True(t, f.Active, "active at %v", f.PresentTime)
		x := translationOf(t, f, "n1").X
		assert.LessOrEqual(t, x, prev)
		prev = x
	}
	assert.False(t, last.Active)
	assert.False(t, ctrl.IsActive())

	w, ok := comp.Window("n1")
	require.True(t, ok)
	assert.False(t, w.ForcedBlur())
	assert.False(t, w.ForcedContrast())
	assert.Equal(t, 0, w.Refs())

	stats := comp.Stats()
	assert.Equal(t, stats.Acquired, stats.Released)
	assert.Zero(t, stats.DoubleReleases)
}

func TestSlideOutKeepsDeletedWindowUntilFinished(t *testing.T) {
	comp, ctrl := newCompositor(t)

	frame := sim.Place(geom.Rect(0, 0, 1920, 1080), edge.Left, 400, 100, 10)
	_, err := comp.Map(sim.WindowSpec{ID: "n1", Type: sim.TypeCriticalNotification, Frame: frame})
	require.NoError(t, err)
	comp.RunUntilIdle(0, 50*time.Millisecond, 10)
	require.False(t, ctrl.IsActive())

	require.NoError(t, comp.Close("n1"))
	assert.True(t, ctrl.IsActive())
	assert.Equal(t, 1, comp.WindowCount())

	frames := comp.RunUntilIdle(time.Second, 50*time.Millisecond, 10)
	require.Len(t, frames, 5)
	assert.InDelta(t, 0, translationOf(t, frames[0], "n1").X, 1e-9)
	assert.InDelta(t, -410, translationOf(t, frames[4], "n1").X, 1e-9)

	assert.Equal(t, 0, comp.WindowCount())
	stats := comp.Stats()
	assert.Equal(t, 2, stats.Acquired)
	assert.Equal(t, 2, stats.Released)
	assert.Equal(t, 1, stats.Finalized)
	assert.Zero(t, stats.DoubleReleases)
}

func TestCloseDuringSlideInReplacesAnimation(t *testing.T) {
	comp, ctrl := newCompositor(t)

	frame := sim.Place(geom.Rect(0, 0, 1920, 1080), edge.Right, 400, 100, 10)
	_, err := comp.Map(sim.WindowSpec{ID: "n1", Type: sim.TypeNotification, Frame: frame})
	require.NoError(t, err)
	comp.Paint(0)
	comp.Paint(100 * time.Millisecond)

	require.NoError(t, comp.Close("n1"))
	assert.Equal(t, 1, ctrl.Count())
	a, _ := ctrl.Animation("n1")
	assert.Equal(t, effect.SlideOut, a.Direction)

	comp.RunUntilIdle(200*time.Millisecond, 20*time.Millisecond, 50)
	assert.False(t, ctrl.IsActive())
	assert.Equal(t, 0, comp.WindowCount())

	stats := comp.Stats()
	assert.Equal(t, stats.Acquired, stats.Released)
	assert.Zero(t, stats.DoubleReleases)
}

func TestLockedScreenSkipsAnimation(t *testing.T) {
	comp, ctrl := newCompositor(t)
	comp.SetScreenLocked(true)

	frame := sim.Place(geom.Rect(0, 0, 1920, 1080), edge.Right, 400, 100, 10)
	_, err := comp.Map(sim.WindowSpec{ID: "n1", Type: sim.TypeNotification, Frame: frame})
	require.NoError(t, err)
	assert.False(t, ctrl.IsActive())

	require.NoError(t, comp.Close("n1"))
	assert.Equal(t, 0, comp.WindowCount())
	assert.Zero(t, comp.Stats().Acquired)
}

func TestLockDuringSlideInLetsItFinish(t *testing.T) {
	tests := []struct {
		name string
		gate func(c *sim.Compositor)
	}{
		{"screen locked", func(c *sim.Compositor) { c.SetScreenLocked(true) }},
		{"full screen effect", func(c *sim.Compositor) { c.SetFullScreenEffect(true) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp, ctrl := newCompositor(t)

			frame := sim.Place(geom.Rect(0, 0, 1920, 1080), edge.Right, 400, 100, 10)
			w, err := comp.Map(sim.WindowSpec{ID: "n1", Type: sim.TypeNotification, Frame: frame, Shadow: 10})
			require.NoError(t, err)
			comp.Paint(0)
			comp.Paint(100 * time.Millisecond)
			require.True(t, ctrl.IsActive())

			tt.gate(comp)
			frames := comp.RunUntilIdle(120*time.Millisecond, 20*time.Millisecond, 100)

			last := frames[len(frames)-1]
			assert.Equal(t, 200*time.Millisecond, last.PresentTime)
			assert.False(t, last.Active)
			assert.InDelta(t, 0, translationOf(t, last, "n1").X, 1e-9)
			for _, f := range frames {
				assert.Contains(t, f.Repaints, geom.Rect(1500, 0, 420, 120))
			}

			assert.Equal(t, 0, w.Refs())
			assert.False(t, w.ForcedBlur())
			stats := comp.Stats()
			assert.Equal(t, 1, stats.Acquired)
			assert.Equal(t, 1, stats.Released)
		})
	}
}
