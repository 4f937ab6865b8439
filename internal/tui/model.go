// Package tui provides a BubbleTea terminal preview of the slide animation.
// It hosts the effect on a simulated compositor and draws each painted
// frame as a scaled-down picture of the screen.
package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/slidefx/internal/edge"
	"github.com/jmylchreest/slidefx/internal/effect"
	"github.com/jmylchreest/slidefx/internal/geom"
	"github.com/jmylchreest/slidefx/internal/sim"
)

// frameInterval is the preview's refresh rate (~60fps).
const frameInterval = 16 * time.Millisecond

// Notification popup size in screen pixels.
const (
	popupWidth  = 400
	popupHeight = 100
	popupMargin = 10
	popupGap    = 10
	popupShadow = 8
)

var anchors = []edge.Edge{edge.Right, edge.Left, edge.Top, edge.Bottom}

// Options configures the preview.
type Options struct {
	Effect effect.Options
	Output sim.Output
	Logger *slog.Logger
}

// Model is the preview TUI model.
type Model struct {
	comp *sim.Compositor
	ctrl *effect.Controller

	keys     KeyMap
	help     help.Model
	progress progress.Model

	anchor  int
	live    []effect.WindowID
	spawned int

	start    time.Time
	offset   time.Duration
	paused   bool
	pausedAt time.Time
	frame    sim.Frame

	statusMsg string

	width  int
	height int
	ready  bool
}

type frameMsg time.Time

// New creates a preview model.
func New(opts Options) Model {
	if opts.Output.Geometry.IsEmpty() {
		opts.Output.Geometry = geom.Rect(0, 0, 1920, 1080)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	comp := sim.NewCompositor(logger, opts.Output)
	ctrl := effect.NewController(comp, logger)
	ctrl.Reconfigure(opts.Effect)
	comp.SetEffect(ctrl)

	return Model{
		comp:     comp,
		ctrl:     ctrl,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		start:    time.Now(),
	}
}

// Init starts the frame clock.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.progress.Width = max(10, msg.Width/3)
		return m, nil

	case frameMsg:
		if !m.paused {
			m.paint(time.Time(msg).Sub(m.start) - m.offset)
		}
		return m, tick()
	}

	return m, nil
}

// paint runs one compositor frame at presentTime.
func (m *Model) paint(presentTime time.Duration) {
	m.frame = m.comp.Paint(presentTime)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Spawn):
		m.spawn()

	case key.Matches(msg, m.keys.Dismiss):
		m.dismissOldest()

	case key.Matches(msg, m.keys.DismissAll):
		for len(m.live) > 0 {
			m.dismissOldest()
		}

	case key.Matches(msg, m.keys.NextEdge):
		m.anchor = (m.anchor + 1) % len(anchors)
		m.statusMsg = fmt.Sprintf("new notifications anchor %s", anchors[m.anchor])

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		if m.paused {
			m.pausedAt = time.Now()
			m.statusMsg = "paused"
		} else {
			// Frames resume where they stopped
			m.offset += time.Since(m.pausedAt)
			m.statusMsg = ""
		}
	}

	return m, nil
}

// spawn maps a notification stacked below the live ones at the current anchor.
func (m *Model) spawn() {
	m.spawned++
	id := effect.WindowID(fmt.Sprintf("notification-%d", m.spawned))

	out := m.comp.Outputs()[0]
	area := out.Geometry
	if !out.WorkArea.IsEmpty() {
		area = out.WorkArea
	}
	e := anchors[m.anchor]
	frame := sim.Place(area, e, popupWidth, popupHeight, popupMargin)

	stack := float64(len(m.live)) * (popupHeight + popupGap)
	if e == edge.Bottom {
		frame.Y -= stack
	} else {
		frame.Y += stack
	}

	if _, err := m.comp.Map(sim.WindowSpec{ID: id, Type: sim.TypeNotification, Frame: frame, Shadow: popupShadow}); err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.live = append(m.live, id)

	if _, ok := m.ctrl.Animation(id); !ok {
		m.statusMsg = fmt.Sprintf("%s is not anchored to an edge, shown without sliding", id)
		return
	}
	m.statusMsg = fmt.Sprintf("%s sliding in from the %s", id, e)
}

func (m *Model) dismissOldest() {
	if len(m.live) == 0 {
		return
	}
	id := m.live[0]
	m.live = m.live[1:]
	if err := m.comp.Close(id); err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.statusMsg = fmt.Sprintf("%s closed", id)
}
