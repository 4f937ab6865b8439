package main

import (
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/slidefx/internal/geom"
	"github.com/jmylchreest/slidefx/internal/sim"
	"github.com/jmylchreest/slidefx/internal/tui"
)

var previewOpts struct {
	screenW float64
	screenH float64
	panel   float64
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Watch notifications slide in an interactive preview",
	Long: `Launch a terminal preview of the effect on a simulated screen.

Popups are spawned against the selected edge and slide in; dismissing
them slides them back out before they are removed.

Key bindings:
  n, enter    Spawn a notification
  d           Dismiss the oldest notification
  D           Dismiss all notifications
  e, tab      Cycle the anchor edge
  space       Pause or resume the clock
  ?           Show help
  q           Quit`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().Float64Var(&previewOpts.screenW, "screen-width", 1920,
		"Simulated screen width in pixels")
	previewCmd.Flags().Float64Var(&previewOpts.screenH, "screen-height", 1080,
		"Simulated screen height in pixels")
	previewCmd.Flags().Float64Var(&previewOpts.panel, "panel", 40,
		"Height of a panel reserved along the bottom of the screen")
}

func runPreview(cmd *cobra.Command, args []string) error {
	output := sim.Output{Geometry: geom.Rect(0, 0, previewOpts.screenW, previewOpts.screenH)}
	if previewOpts.panel > 0 {
		output.WorkArea = geom.Rect(0, 0, previewOpts.screenW, previewOpts.screenH-previewOpts.panel)
	}

	// Log lines would tear the alt screen.
	previewLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if globalOpts.verbose {
		previewLogger = logger
	}

	p := tea.NewProgram(tui.New(tui.Options{
		Effect: effectOptions(cfg),
		Output: output,
		Logger: previewLogger,
	}), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
