package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/jmylchreest/slidefx/internal/geom"
	"github.com/jmylchreest/slidefx/internal/sim"
)

// TextFormatter formats traces as one line per painted window.
type TextFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// templateData is the data passed to custom line templates.
type templateData struct {
	Index       int
	Time        time.Duration
	Active      bool
	Window      string
	Translation geom.PointF
	Region      geom.RectF
	Transformed bool
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts FormatterOptions) (*TextFormatter, error) {
	f := &TextFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("text").Parse(opts.Template)
		if err != nil {
			return nil, fmt.Errorf("invalid template: %w", err)
		}
		f.template = tmpl
	}

	return f, nil
}

// Format writes the trace header, a line per painted window and the
// finished animations.
func (f *TextFormatter) Format(w io.Writer, trace *Trace) error {
	if _, err := fmt.Fprintf(w, "duration %s, policy %s, window %s\n",
		trace.Duration, trace.Policy, trace.Window); err != nil {
		return err
	}

	for i, frame := range f.opts.frames(trace) {
		for _, p := range frame.Windows {
			if err := f.formatWindow(w, i, frame, p); err != nil {
				return err
			}
		}
	}

	for _, fin := range trace.Finished {
		if _, err := fmt.Fprintf(w, "finished %s: %s slid %s (%s)\n",
			fin.ID, fin.Window, fin.Direction, fin.Edge); err != nil {
			return err
		}
	}
	return nil
}

// formatWindow formats one painted window of a frame.
func (f *TextFormatter) formatWindow(w io.Writer, index int, frame sim.Frame, p sim.Painted) error {
	if f.template != nil {
		data := templateData{
			Index:       index,
			Time:        frame.PresentTime,
			Active:      frame.Active,
			Window:      string(p.Window),
			Translation: p.Translation,
			Region:      p.Region,
			Transformed: p.Transformed,
		}
		if err := f.template.Execute(w, data); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%8s  active=%-5t  %s  translation=%s",
		frame.PresentTime, frame.Active, p.Window, p.Translation))
	if f.opts.ShowRegion {
		sb.WriteString(fmt.Sprintf("  region=%s", p.Region))
	}
	sb.WriteString("\n")

	_, err := w.Write([]byte(sb.String()))
	return err
}
