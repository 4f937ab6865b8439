package effect

import (
	"log/slog"
	"slices"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/slidefx/internal/edge"
)

// DefaultDuration is the slide duration used when none is configured.
const DefaultDuration = 200 * time.Millisecond

// Options holds the tunables applied on Reconfigure.
type Options struct {
	Duration time.Duration
	Policy   edge.Policy
}

// DefaultOptions returns the built-in options.
func DefaultOptions() Options {
	return Options{
		Duration: DefaultDuration,
		Policy:   edge.PolicyEdgeDistance,
	}
}

// Finished describes an animation that ran to completion.
type Finished struct {
	ID        ulid.ULID `json:"id" yaml:"id"`
	Window    WindowID  `json:"window" yaml:"window"`
	Direction Direction `json:"direction" yaml:"direction"`
	Edge      edge.Edge `json:"edge" yaml:"edge"`
}

// FinishedHandler is called from PostPaintScreen for each completed animation.
type FinishedHandler func(f Finished)

// Controller drives slide animations for notification windows.
type Controller struct {
	host   Host
	logger *slog.Logger
	opts   Options

	animations map[WindowID]*Animation
	onFinished FinishedHandler
}

// NewController creates a controller bound to host with default options.
func NewController(host Host, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		host:       host,
		logger:     logger,
		opts:       DefaultOptions(),
		animations: make(map[WindowID]*Animation),
	}
}

// SetFinishedHandler sets the handler called when an animation completes.
func (c *Controller) SetFinishedHandler(handler FinishedHandler) {
	c.onFinished = handler
}

// Reconfigure applies new options. Running animations keep their duration.
func (c *Controller) Reconfigure(opts Options) {
	if opts.Duration < 0 {
		opts.Duration = 0
	}
	if opts.Policy == "" {
		opts.Policy = edge.PolicyEdgeDistance
	}
	c.opts = opts
	c.logger.Debug("sliding notifications reconfigured", "duration", opts.Duration, "policy", opts.Policy)
}

// Options returns the options in effect.
func (c *Controller) Options() Options {
	return c.opts
}

// IsActive reports whether any window is animating.
func (c *Controller) IsActive() bool {
	return len(c.animations) > 0
}

// Count returns the number of running animations.
func (c *Controller) Count() int {
	return len(c.animations)
}

// Animation returns the running animation for id, if any.
func (c *Controller) Animation(id WindowID) (*Animation, bool) {
	a, ok := c.animations[id]
	return a, ok
}

// Animations returns the running animations, oldest first.
func (c *Controller) Animations() []*Animation {
	out := make([]*Animation, 0, len(c.animations))
	for _, a := range c.animations {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b *Animation) int {
		return a.ID.Compare(b.ID)
	})
	return out
}

// WindowAdded starts a slide-in animation for a newly mapped notification.
func (c *Controller) WindowAdded(w Window) {
	c.start(w, SlideIn)
}

// WindowClosed starts a slide-out animation for a closing notification.
func (c *Controller) WindowClosed(w Window) {
	c.start(w, SlideOut)
}

func (c *Controller) start(w Window, dir Direction) {
	if c.host.ActiveFullScreenEffect() || c.host.IsScreenLocked() {
		c.logger.Debug("not sliding, screen is busy", "window", w.ID(), "direction", dir)
		return
	}
	if !w.IsNotification() && !w.IsCriticalNotification() {
		return
	}

	e, ok := c.opts.Policy.Detect(w.FrameGeometry(), c.host.ClientArea(AreaScreen, w))
	if !ok {
		c.logger.Debug("not sliding, window is not anchored to an edge", "window", w.ID(), "direction", dir)
		return
	}

	role := GrabWindowAdded
	if dir == SlideOut {
		role = GrabWindowClosed
	}
	reason := LifetimeRef
	if w.IsDeleted() {
		reason = LifetimeDeleted
	}
	w.SetGrab(role, c)
	w.SetForcedBlur(true)
	w.SetForcedContrast(true)

	a := newAnimation(w, dir, e, c.host.ClientArea(AreaMaximize, w), c.opts.Duration)
	a.guard = NewGuard(w.KeepAlive(reason))

	if prev, ok := c.animations[w.ID()]; ok {
		// Overrides stay forced for the replacement; only the token goes.
		prev.guard.Release()
		c.logger.Debug("replacing slide animation", "window", w.ID(), "previous", prev.ID)
	}
	c.animations[w.ID()] = a

	c.logger.Debug("slide animation started",
		"id", a.ID,
		"window", w.ID(),
		"direction", dir,
		"edge", e,
		"clip", a.Clip,
		"duration", c.opts.Duration,
	)
	w.AddRepaintFull()
}

// PrePaintWindow marks an animating window as transformed and advances its
// timeline to presentTime. Windows without an animation are left alone.
func (c *Controller) PrePaintWindow(w Window, data *PrePaintData, presentTime time.Duration) {
	a, ok := c.animations[w.ID()]
	if !ok {
		return
	}
	data.Transformed = true
	a.Timeline.Advance(presentTime)
}

// PaintWindow clips an animating window's paint region and applies its
// slide translation before the host continues painting it.
func (c *Controller) PaintWindow(w Window, data *PaintData) {
	a, ok := c.animations[w.ID()]
	if !ok {
		return
	}
	data.Region = a.ScreenClip().Aligned()
	t := a.Translation()
	data.Translate(t.X, t.Y)
}

// PostPaintScreen schedules the next frame for every animating window and
// tears down animations that have finished. Finished handlers run after
// the sweep, so animations they start are left for the next frame.
func (c *Controller) PostPaintScreen() {
	var finished []Finished
	for id, a := range c.animations {
		c.host.AddRepaint(a.ScreenClip())

		if !a.Timeline.Done() {
			continue
		}
		a.release()
		delete(c.animations, id)

		c.logger.Debug("slide animation finished", "id", a.ID, "window", id, "direction", a.Direction)
		finished = append(finished, Finished{ID: a.ID, Window: id, Direction: a.Direction, Edge: a.Edge})
	}

	if c.onFinished == nil {
		return
	}
	for _, f := range finished {
		c.onFinished(f)
	}
}

// Close releases every running animation without completing it.
// Call it when the effect is unloaded.
func (c *Controller) Close() {
	for id, a := range c.animations {
		a.release()
		delete(c.animations, id)
	}
}
