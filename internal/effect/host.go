package effect

import (
	"github.com/jmylchreest/slidefx/internal/geom"
)

// WindowID identifies a window for the lifetime of the host session.
type WindowID string

// AreaKind selects which client area the host should report for a window.
type AreaKind int

const (
	// AreaScreen is the full geometry of the window's output.
	AreaScreen AreaKind = iota
	// AreaMaximize is the output's work area, excluding panels and docks.
	AreaMaximize
)

// GrabRole marks which lifecycle transition an effect has claimed on a window.
type GrabRole int

const (
	GrabWindowAdded GrabRole = iota
	GrabWindowClosed
)

func (r GrabRole) String() string {
	if r == GrabWindowClosed {
		return "window-closed"
	}
	return "window-added"
}

// LifetimeReason states why a window is being kept alive.
type LifetimeReason int

const (
	// LifetimeRef keeps a live window's paint resources around.
	LifetimeRef LifetimeReason = iota
	// LifetimeDeleted keeps a destroyed window paintable. The host
	// disables its normal painting until the token is released.
	LifetimeDeleted
)

func (r LifetimeReason) String() string {
	if r == LifetimeDeleted {
		return "deleted"
	}
	return "ref"
}

// Token defers destruction of a window's backing resources until released.
// Releasing the last token of a deleted window finalizes its removal.
type Token interface {
	Release()
}

// Window is the host compositor's view of a window.
type Window interface {
	ID() WindowID
	Pos() geom.PointF
	FrameGeometry() geom.RectF
	ExpandedGeometry() geom.RectF

	IsNotification() bool
	IsCriticalNotification() bool
	IsDeleted() bool

	// SetGrab claims (owner != nil) or releases a lifecycle transition.
	SetGrab(role GrabRole, owner any)
	SetForcedBlur(enabled bool)
	SetForcedContrast(enabled bool)

	AddRepaintFull()
	KeepAlive(reason LifetimeReason) Token
}

// Host is the compositor-wide query and mutation surface.
type Host interface {
	ClientArea(kind AreaKind, w Window) geom.RectF
	ActiveFullScreenEffect() bool
	IsScreenLocked() bool
	AddRepaint(region geom.RectF)
}

// PrePaintData is the per-frame window state gathered before painting.
type PrePaintData struct {
	// Transformed is set when the window is painted with a transform this frame.
	Transformed bool
}

// PaintData carries the region and transform a window is painted with.
type PaintData struct {
	Region      geom.RectF
	Translation geom.PointF
}

// Translate adds (dx, dy) to the paint translation.
func (d *PaintData) Translate(dx, dy float64) {
	d.Translation.X += dx
	d.Translation.Y += dy
}
