package sim

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jmylchreest/slidefx/internal/effect"
	"github.com/jmylchreest/slidefx/internal/geom"
)

// Output is a simulated screen.
type Output struct {
	Geometry geom.RectF
	// WorkArea excludes panels. A zero WorkArea means the full geometry.
	WorkArea geom.RectF
}

// Effect is the set of hooks the compositor drives each frame.
// *effect.Controller satisfies it.
type Effect interface {
	WindowAdded(w effect.Window)
	WindowClosed(w effect.Window)
	PrePaintWindow(w effect.Window, data *effect.PrePaintData, presentTime time.Duration)
	PaintWindow(w effect.Window, data *effect.PaintData)
	PostPaintScreen()
	IsActive() bool
}

// Stats counts lifetime token traffic.
type Stats struct {
	Acquired       int
	Released       int
	DoubleReleases int
	Finalized      int
}

// Painted is one window as composited in a frame.
type Painted struct {
	Window      effect.WindowID `json:"window" yaml:"window"`
	Region      geom.RectF      `json:"region" yaml:"region"`
	Translation geom.PointF     `json:"translation" yaml:"translation"`
	Transformed bool            `json:"transformed" yaml:"transformed"`
}

// Frame is the result of one paint cycle. Repaints holds the damage
// requested since the previous frame, drained when the frame ends.
type Frame struct {
	PresentTime time.Duration `json:"present_time" yaml:"present_time"`
	Active      bool          `json:"active" yaml:"active"`
	Windows     []Painted     `json:"windows" yaml:"windows"`
	Repaints    []geom.RectF  `json:"repaints,omitempty" yaml:"repaints,omitempty"`
}

// Compositor is an in-memory host for the effect. It implements effect.Host.
type Compositor struct {
	logger  *slog.Logger
	outputs []Output
	effect  Effect

	windows  map[effect.WindowID]*Window
	stacking []effect.WindowID

	fullScreenEffect bool
	screenLocked     bool

	repaints []geom.RectF
	stats    Stats
}

// NewCompositor creates a compositor with the given outputs.
func NewCompositor(logger *slog.Logger, outputs ...Output) *Compositor {
	if logger == nil {
		logger = slog.Default()
	}
	if len(outputs) == 0 {
		outputs = []Output{{Geometry: geom.Rect(0, 0, 1920, 1080)}}
	}
	return &Compositor{
		logger:  logger,
		outputs: outputs,
		windows: make(map[effect.WindowID]*Window),
	}
}

// SetEffect installs the effect driven by the compositor.
func (c *Compositor) SetEffect(e Effect) {
	c.effect = e
}

// SetFullScreenEffect toggles the full-screen effect flag.
func (c *Compositor) SetFullScreenEffect(active bool) { c.fullScreenEffect = active }

// SetScreenLocked toggles the screen locker flag.
func (c *Compositor) SetScreenLocked(locked bool) { c.screenLocked = locked }

// ActiveFullScreenEffect implements effect.Host.
func (c *Compositor) ActiveFullScreenEffect() bool { return c.fullScreenEffect }

// IsScreenLocked implements effect.Host.
func (c *Compositor) IsScreenLocked() bool { return c.screenLocked }

// AddRepaint implements effect.Host.
func (c *Compositor) AddRepaint(region geom.RectF) {
	c.repaints = append(c.repaints, region)
}

// ClientArea implements effect.Host.
func (c *Compositor) ClientArea(kind effect.AreaKind, w effect.Window) geom.RectF {
	out := c.outputFor(w.FrameGeometry())
	if kind == effect.AreaMaximize && !out.WorkArea.IsEmpty() {
		return out.WorkArea
	}
	return out.Geometry
}

// outputFor returns the output containing the center of r, or the first.
func (c *Compositor) outputFor(r geom.RectF) Output {
	p := r.Center()
	for _, o := range c.outputs {
		g := o.Geometry
		if p.X >= g.Left() && p.X < g.Right() && p.Y >= g.Top() && p.Y < g.Bottom() {
			return o
		}
	}
	return c.outputs[0]
}

// Outputs returns the configured outputs.
func (c *Compositor) Outputs() []Output {
	return c.outputs
}

// Map creates a window and announces it to the effect.
func (c *Compositor) Map(spec WindowSpec) (*Window, error) {
	if spec.ID == "" {
		return nil, fmt.Errorf("window id is required")
	}
	if _, exists := c.windows[spec.ID]; exists {
		return nil, fmt.Errorf("window %s already mapped", spec.ID)
	}

	w := &Window{comp: c, spec: spec, grabs: make(map[effect.GrabRole]any)}
	c.windows[spec.ID] = w
	c.stacking = append(c.stacking, spec.ID)
	c.logger.Debug("window mapped", "window", spec.ID, "frame", spec.Frame)

	if c.effect != nil {
		c.effect.WindowAdded(w)
	}
	return w, nil
}

// Close destroys a window. It stays paintable while the effect keeps it alive.
func (c *Compositor) Close(id effect.WindowID) error {
	w, ok := c.windows[id]
	if !ok || w.deleted {
		return fmt.Errorf("window %s is not mapped", id)
	}

	w.deleted = true
	if c.effect != nil {
		c.effect.WindowClosed(w)
	}
	if w.refs == 0 {
		c.finalize(w)
	}
	return nil
}

// Window returns the window with id, including deleted windows still kept alive.
func (c *Compositor) Window(id effect.WindowID) (*Window, bool) {
	w, ok := c.windows[id]
	return w, ok
}

// WindowCount returns the number of windows still present.
func (c *Compositor) WindowCount() int {
	return len(c.windows)
}

func (c *Compositor) finalize(w *Window) {
	if _, ok := c.windows[w.ID()]; !ok {
		return
	}
	delete(c.windows, w.ID())
	for i, id := range c.stacking {
		if id == w.ID() {
			c.stacking = append(c.stacking[:i], c.stacking[i+1:]...)
			break
		}
	}
	c.stats.Finalized++
	c.logger.Debug("window removed", "window", w.ID())
}

// Stats returns the lifetime token counters.
func (c *Compositor) Stats() Stats {
	return c.stats
}

// TakeRepaints returns and clears the pending repaint regions.
// Paint calls it at the end of every frame.
func (c *Compositor) TakeRepaints() []geom.RectF {
	r := c.repaints
	c.repaints = nil
	return r
}

// Paint runs one paint cycle at presentTime.
func (c *Compositor) Paint(presentTime time.Duration) Frame {
	frame := Frame{PresentTime: presentTime}

	// Snapshot: finalizing during post-paint mutates the stacking order.
	order := append([]effect.WindowID(nil), c.stacking...)
	for _, id := range order {
		w := c.windows[id]
		var pre effect.PrePaintData
		if c.effect != nil {
			c.effect.PrePaintWindow(w, &pre, presentTime)
		}

		data := effect.PaintData{Region: w.ExpandedGeometry()}
		if c.effect != nil {
			c.effect.PaintWindow(w, &data)
		}
		frame.Windows = append(frame.Windows, Painted{
			Window:      id,
			Region:      data.Region,
			Translation: data.Translation,
			Transformed: pre.Transformed,
		})
	}

	if c.effect != nil {
		c.effect.PostPaintScreen()
		frame.Active = c.effect.IsActive()
	}
	frame.Repaints = c.TakeRepaints()
	return frame
}

// RunUntilIdle paints frames every step starting at start until the effect
// goes idle or limit frames have been painted. It returns the frames painted.
func (c *Compositor) RunUntilIdle(start, step time.Duration, limit int) []Frame {
	var frames []Frame
	now := start
	for range limit {
		f := c.Paint(now)
		frames = append(frames, f)
		if !f.Active {
			break
		}
		now += step
	}
	return frames
}
