package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats traces as YAML.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// Format writes the trace as a YAML document.
func (f *YAMLFormatter) Format(w io.Writer, trace *Trace) error {
	t := *trace
	t.Frames = f.opts.frames(trace)

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(t); err != nil {
		return err
	}
	return encoder.Close()
}
