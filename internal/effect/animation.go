package effect

import (
	"math"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/slidefx/internal/easing"
	"github.com/jmylchreest/slidefx/internal/edge"
	"github.com/jmylchreest/slidefx/internal/geom"
	"github.com/jmylchreest/slidefx/internal/timeline"
)

// Direction distinguishes entry from exit animations.
type Direction int

const (
	SlideIn Direction = iota
	SlideOut
)

func (d Direction) String() string {
	if d == SlideOut {
		return "out"
	}
	return "in"
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Animation is the slide state of one window.
type Animation struct {
	ID        ulid.ULID
	Window    Window
	Direction Direction
	Edge      edge.Edge

	Timeline *timeline.Timeline

	// Clip is in window-local coordinates and fixed for the animation's lifetime.
	Clip        geom.RectF
	StartOffset geom.PointF
	EndOffset   geom.PointF

	guard *Guard
}

// Translation returns the offset to paint the window at for the current progress.
func (a *Animation) Translation() geom.PointF {
	return geom.Lerp(a.StartOffset, a.EndOffset, a.Timeline.Value())
}

// ScreenClip returns the clip translated to the window's current position.
func (a *Animation) ScreenClip() geom.RectF {
	return a.Clip.Translated(a.Window.Pos())
}

// release drops the lifetime token and the forced blur/contrast overrides.
func (a *Animation) release() {
	a.Window.SetForcedBlur(false)
	a.Window.SetForcedContrast(false)
	a.guard.Release()
}

// slideGeometry computes the clip rectangle and the outward offset for a
// window sliding towards e. rect is the window's expanded geometry, pos its
// position and workArea the boundary it slides behind.
func slideGeometry(e edge.Edge, rect geom.RectF, pos geom.PointF, workArea geom.RectF) (clip geom.RectF, outward geom.PointF) {
	clip = rect.Translated(pos.Neg())

	switch e {
	case edge.Right:
		clip.Width = math.Max(0, workArea.Right()-rect.X)
		outward = geom.PointF{X: clip.Width}
	case edge.Left:
		clip.Width = math.Max(0, rect.Right()-workArea.X)
		outward = geom.PointF{X: -clip.Width}
	case edge.Top:
		clip.Height = math.Max(0, rect.Bottom()-workArea.Y)
		outward = geom.PointF{Y: -clip.Height}
	case edge.Bottom:
		clip.Height = math.Max(0, workArea.Bottom()-rect.Y)
		outward = geom.PointF{Y: clip.Height}
	}
	return clip, outward
}

func newAnimation(w Window, dir Direction, e edge.Edge, workArea geom.RectF, duration time.Duration) *Animation {
	curve := easing.OutCubic
	if dir == SlideOut {
		curve = easing.InCubic
	}

	clip, outward := slideGeometry(e, w.ExpandedGeometry(), w.Pos(), workArea)

	a := &Animation{
		ID:        ulid.Make(),
		Window:    w,
		Direction: dir,
		Edge:      e,
		Timeline:  timeline.New(duration, curve),
		Clip:      clip,
	}
	if dir == SlideIn {
		a.StartOffset = outward
	} else {
		a.EndOffset = outward
	}
	return a
}
