package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/slidefx/internal/adapter/output"
	"github.com/jmylchreest/slidefx/internal/edge"
	"github.com/jmylchreest/slidefx/internal/effect"
	"github.com/jmylchreest/slidefx/internal/geom"
	"github.com/jmylchreest/slidefx/internal/sim"
)

var simulateOpts struct {
	anchor     string
	direction  string
	step       time.Duration
	screenW    float64
	screenH    float64
	panel      float64
	format     string
	template   string
	noRegion   bool
	activeOnly bool
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Trace a slide animation frame by frame",
	Long: `Map a notification on a simulated screen and record every frame the
effect paints until it goes idle.

The trace lists, per frame, the presentation time, whether the effect is
still active, and each window's paint region and translation.

Examples:
  slidefx simulate --anchor right
  slidefx simulate --anchor left --direction both --format yaml
  slidefx simulate --step 8ms --format json`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().StringVar(&simulateOpts.anchor, "anchor", "right",
		"Where the notification is placed (left, right, top, bottom)")
	simulateCmd.Flags().StringVar(&simulateOpts.direction, "direction", "in",
		"Which transition to trace (in, out, both)")
	simulateCmd.Flags().DurationVar(&simulateOpts.step, "step", 16*time.Millisecond,
		"Time between frames")
	simulateCmd.Flags().Float64Var(&simulateOpts.screenW, "screen-width", 1920,
		"Screen width in pixels")
	simulateCmd.Flags().Float64Var(&simulateOpts.screenH, "screen-height", 1080,
		"Screen height in pixels")
	simulateCmd.Flags().Float64Var(&simulateOpts.panel, "panel", 0,
		"Height of a panel reserved along the bottom of the screen")
	simulateCmd.Flags().StringVarP(&simulateOpts.format, "format", "f", "text",
		"Output format (text, json, yaml)")
	simulateCmd.Flags().StringVar(&simulateOpts.template, "template", "",
		"Custom Go template for each text line (e.g. '{{.Time}} {{.Translation.X}}')")
	simulateCmd.Flags().BoolVar(&simulateOpts.noRegion, "no-region", false,
		"Omit paint regions from text output")
	simulateCmd.Flags().BoolVar(&simulateOpts.activeOnly, "active-only", false,
		"Only output frames painted while the effect was active")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	anchor, err := parseAnchor(simulateOpts.anchor)
	if err != nil {
		return err
	}

	opts := output.DefaultFormatterOptions()
	opts.Template = simulateOpts.template
	opts.ShowRegion = !simulateOpts.noRegion
	opts.ActiveOnly = simulateOpts.activeOnly
	formatter, err := output.NewFormatter(output.FormatType(simulateOpts.format), opts)
	if err != nil {
		return err
	}

	screen := sim.Output{Geometry: geom.Rect(0, 0, simulateOpts.screenW, simulateOpts.screenH)}
	if simulateOpts.panel > 0 {
		screen.WorkArea = geom.Rect(0, 0, simulateOpts.screenW, simulateOpts.screenH-simulateOpts.panel)
	}

	trace, err := buildTrace(effectOptions(cfg), screen, anchor, simulateOpts.direction, simulateOpts.step)
	if err != nil {
		return err
	}
	return formatter.Format(os.Stdout, trace)
}

func parseAnchor(s string) (edge.Edge, error) {
	switch s {
	case "left":
		return edge.Left, nil
	case "right":
		return edge.Right, nil
	case "top":
		return edge.Top, nil
	case "bottom":
		return edge.Bottom, nil
	default:
		return edge.None, fmt.Errorf("invalid anchor %q, must be one of: left, right, top, bottom", s)
	}
}

// maxFrames bounds a simulation so a stuck effect cannot loop forever.
const maxFrames = 10000

// buildTrace runs the effect on a fresh compositor with a single notification.
func buildTrace(opts effect.Options, screen sim.Output, anchor edge.Edge, direction string, step time.Duration) (*output.Trace, error) {
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive, got %s", step)
	}
	slideIn, slideOut := false, false
	switch direction {
	case "in":
		slideIn = true
	case "out":
		slideOut = true
	case "both":
		slideIn, slideOut = true, true
	default:
		return nil, fmt.Errorf("invalid direction %q, must be one of: in, out, both", direction)
	}

	comp := sim.NewCompositor(logger, screen)
	ctrl := effect.NewController(comp, logger)
	ctrl.Reconfigure(opts)

	trace := &output.Trace{Duration: opts.Duration, Policy: ctrl.Options().Policy}
	ctrl.SetFinishedHandler(func(f effect.Finished) {
		trace.Finished = append(trace.Finished, f)
	})

	const id = effect.WindowID("notification")
	area := screen.WorkArea
	if area.IsEmpty() {
		area = screen.Geometry
	}
	trace.Window = sim.Place(area, anchor, 400, 100, 10)

	// Only the traced transitions see the effect.
	if slideIn {
		comp.SetEffect(ctrl)
	}
	if _, err := comp.Map(sim.WindowSpec{ID: id, Type: sim.TypeNotification, Frame: trace.Window, Shadow: 8}); err != nil {
		return nil, err
	}
	var now time.Duration
	if slideIn {
		trace.Frames = append(trace.Frames, comp.RunUntilIdle(now, step, maxFrames)...)
		now = trace.Frames[len(trace.Frames)-1].PresentTime + step
	}

	if slideOut {
		comp.SetEffect(ctrl)
		if err := comp.Close(id); err != nil {
			return nil, err
		}
		trace.Frames = append(trace.Frames, comp.RunUntilIdle(now, step, maxFrames)...)
	}

	ctrl.Close()
	if s := comp.Stats(); s.Acquired != s.Released || s.DoubleReleases > 0 {
		return nil, fmt.Errorf("lifetime tokens unbalanced: acquired %d, released %d, released twice %d",
			s.Acquired, s.Released, s.DoubleReleases)
	}
	return trace, nil
}
