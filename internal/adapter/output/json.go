package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter formats traces as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format writes the trace as an indented JSON object.
func (f *JSONFormatter) Format(w io.Writer, trace *Trace) error {
	t := *trace
	t.Frames = f.opts.frames(trace)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(t)
}
