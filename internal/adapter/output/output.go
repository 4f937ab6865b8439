// Package output provides output formatters for simulation traces.
package output

import (
	"fmt"
	"io"
	"time"

	"github.com/jmylchreest/slidefx/internal/edge"
	"github.com/jmylchreest/slidefx/internal/effect"
	"github.com/jmylchreest/slidefx/internal/geom"
	"github.com/jmylchreest/slidefx/internal/sim"
)

// Trace is the recorded output of a simulation run.
type Trace struct {
	Duration time.Duration     `json:"duration" yaml:"duration"`
	Policy   edge.Policy       `json:"policy" yaml:"policy"`
	Window   geom.RectF        `json:"window" yaml:"window"`
	Frames   []sim.Frame       `json:"frames" yaml:"frames"`
	Finished []effect.Finished `json:"finished" yaml:"finished"`
}

// Formatter formats traces for output.
type Formatter interface {
	// Format writes the formatted trace to the writer.
	Format(w io.Writer, trace *Trace) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatText FormatType = "text"
	FormatJSON FormatType = "json"
	FormatYAML FormatType = "yaml"
)

// NewFormatter creates a formatter for the specified format type.
// An empty format selects text.
func NewFormatter(format FormatType, opts FormatterOptions) (Formatter, error) {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts), nil
	case FormatYAML:
		return NewYAMLFormatter(opts), nil
	case FormatText, "":
		return NewTextFormatter(opts)
	default:
		return nil, fmt.Errorf("unknown format: %s (use text, json or yaml)", format)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template   string // Custom per-window line template for text format
	ShowRegion bool   // Show the paint region in text format
	ActiveOnly bool   // Skip frames painted after the effect went idle
}

// DefaultFormatterOptions returns sensible defaults for text output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowRegion: true,
	}
}

// frames returns the frames the options select.
func (o FormatterOptions) frames(trace *Trace) []sim.Frame {
	if !o.ActiveOnly {
		return trace.Frames
	}
	var out []sim.Frame
	for _, f := range trace.Frames {
		if f.Active {
			out = append(out, f)
		}
	}
	return out
}
