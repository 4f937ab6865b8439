package sim

import (
	"github.com/jmylchreest/slidefx/internal/effect"
	"github.com/jmylchreest/slidefx/internal/geom"
)

// WindowType classifies a simulated window.
type WindowType int

const (
	TypeNormal WindowType = iota
	TypeNotification
	TypeCriticalNotification
)

// WindowSpec describes a window to map.
type WindowSpec struct {
	ID    effect.WindowID
	Type  WindowType
	Frame geom.RectF
	// Shadow extends the expanded geometry beyond the frame on every side.
	Shadow float64
}

// Window is a simulated window. It implements effect.Window.
type Window struct {
	comp *Compositor
	spec WindowSpec

	deleted        bool
	refs           int
	grabs          map[effect.GrabRole]any
	forcedBlur     bool
	forcedContrast bool
	repaintsFull   int
}

// ID implements effect.Window.
func (w *Window) ID() effect.WindowID { return w.spec.ID }

// Pos implements effect.Window.
func (w *Window) Pos() geom.PointF { return w.spec.Frame.Pos() }

// FrameGeometry implements effect.Window.
func (w *Window) FrameGeometry() geom.RectF { return w.spec.Frame }

// ExpandedGeometry implements effect.Window.
func (w *Window) ExpandedGeometry() geom.RectF {
	s := w.spec.Shadow
	f := w.spec.Frame
	return geom.Rect(f.X-s, f.Y-s, f.Width+2*s, f.Height+2*s)
}

// IsNotification implements effect.Window.
func (w *Window) IsNotification() bool { return w.spec.Type == TypeNotification }

// IsCriticalNotification implements effect.Window.
func (w *Window) IsCriticalNotification() bool { return w.spec.Type == TypeCriticalNotification }

// IsDeleted implements effect.Window.
func (w *Window) IsDeleted() bool { return w.deleted }

// SetGrab implements effect.Window.
func (w *Window) SetGrab(role effect.GrabRole, owner any) {
	if owner == nil {
		delete(w.grabs, role)
		return
	}
	w.grabs[role] = owner
}

// SetForcedBlur implements effect.Window.
func (w *Window) SetForcedBlur(enabled bool) { w.forcedBlur = enabled }

// SetForcedContrast implements effect.Window.
func (w *Window) SetForcedContrast(enabled bool) { w.forcedContrast = enabled }

// AddRepaintFull implements effect.Window.
func (w *Window) AddRepaintFull() {
	w.repaintsFull++
	w.comp.AddRepaint(w.ExpandedGeometry())
}

// KeepAlive implements effect.Window.
func (w *Window) KeepAlive(reason effect.LifetimeReason) effect.Token {
	w.refs++
	w.comp.stats.Acquired++
	return &token{window: w, reason: reason}
}

// Grab returns the owner of role, or nil.
func (w *Window) Grab(role effect.GrabRole) any { return w.grabs[role] }

// ForcedBlur reports whether blur is forced on.
func (w *Window) ForcedBlur() bool { return w.forcedBlur }

// ForcedContrast reports whether background contrast is forced on.
func (w *Window) ForcedContrast() bool { return w.forcedContrast }

// Refs returns the number of outstanding lifetime tokens.
func (w *Window) Refs() int { return w.refs }

// FullRepaints returns how many full repaints were requested.
func (w *Window) FullRepaints() int { return w.repaintsFull }

type token struct {
	window   *Window
	reason   effect.LifetimeReason
	released bool
}

func (t *token) Release() {
	c := t.window.comp
	if t.released {
		c.stats.DoubleReleases++
		c.logger.Warn("lifetime token released twice", "window", t.window.ID(), "reason", t.reason)
		return
	}
	t.released = true
	t.window.refs--
	c.stats.Released++
	if t.window.deleted && t.window.refs == 0 {
		c.finalize(t.window)
	}
}
