package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/slidefx/internal/effect"
	"github.com/jmylchreest/slidefx/internal/geom"
	"github.com/jmylchreest/slidefx/internal/sim"
)

const (
	cellEmpty   = '·'
	cellWindow  = '█'
	cellSliding = '▓'
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	screenStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	idleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// View renders the preview.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	state := idleStyle.Render("idle")
	if m.ctrl.IsActive() {
		state = activeStyle.Render(fmt.Sprintf("active (%d)", m.ctrl.Count()))
	}
	opts := m.ctrl.Options()
	b.WriteString(titleStyle.Render("sliding notifications"))
	fmt.Fprintf(&b, "  %s  duration %s  policy %s  anchor %s\n", state, opts.Duration, opts.Policy, anchors[m.anchor])

	cols := max(20, m.width-2)
	rows := max(6, m.height-8)
	screen := m.comp.Outputs()[0].Geometry
	canvas := renderCanvas(m.frame, m.comp, screen, cols, rows)
	b.WriteString(screenStyle.Render(strings.Join(canvas, "\n")))
	b.WriteString("\n")

	for _, a := range m.ctrl.Animations() {
		fmt.Fprintf(&b, "%-16s %-3s %-6s %s\n",
			a.Window.ID(), a.Direction, a.Edge, m.progress.ViewAs(a.Timeline.Progress()))
	}

	if m.statusMsg != "" {
		b.WriteString(statusStyle.Render(m.statusMsg))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// windowLookup resolves the window painted in a frame.
type windowLookup interface {
	Window(id effect.WindowID) (*sim.Window, bool)
}

// renderCanvas draws the windows of frame onto a cols x rows grid scaled
// from screen. Windows painted with a transform are drawn translated and
// clipped to their paint region.
func renderCanvas(frame sim.Frame, windows windowLookup, screen geom.RectF, cols, rows int) []string {
	grid := make([][]rune, rows)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(string(cellEmpty), cols))
	}

	for _, p := range frame.Windows {
		w, ok := windows.Window(p.Window)
		if !ok {
			continue
		}

		r := w.FrameGeometry()
		cell := cellWindow
		if p.Transformed {
			r = r.Translated(p.Translation).Intersected(p.Region)
			cell = cellSliding
		}
		r = r.Intersected(screen)
		if r.IsEmpty() {
			continue
		}

		c0 := int(math.Floor((r.Left() - screen.X) * float64(cols) / screen.Width))
		c1 := int(math.Ceil((r.Right() - screen.X) * float64(cols) / screen.Width))
		r0 := int(math.Floor((r.Top() - screen.Y) * float64(rows) / screen.Height))
		r1 := int(math.Ceil((r.Bottom() - screen.Y) * float64(rows) / screen.Height))
		for y := max(0, r0); y < min(rows, r1); y++ {
			for x := max(0, c0); x < min(cols, c1); x++ {
				grid[y][x] = cell
			}
		}
	}

	lines := make([]string, rows)
	for y, row := range grid {
		lines[y] = string(row)
	}
	return lines
}
