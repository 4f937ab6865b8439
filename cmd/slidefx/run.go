package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/slidefx/internal/config"
	"github.com/jmylchreest/slidefx/internal/daemon"
	"github.com/jmylchreest/slidefx/internal/dbus"
	"github.com/jmylchreest/slidefx/internal/edge"
	"github.com/jmylchreest/slidefx/internal/effect"
	"github.com/jmylchreest/slidefx/internal/sim"
)

const frameInterval = time.Second / 60

var runOpts struct {
	noDBus   bool
	demo     time.Duration
	demoHold time.Duration
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the effect headless with a D-Bus control surface",
	Long: `Run the effect on a simulated compositor driven at 60 frames per second.

The effect is exported on the session bus so it can be reconfigured and
queried, and the config file is watched for changes. With --demo, a
notification is mapped on every interval and closed after --demo-hold,
cycling through the anchor edges.

D-Bus:
  bus name   ` + dbus.DBusBusName + `
  path       ` + dbus.DBusPath + `
  interface  ` + dbus.DBusInterface,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runOpts.noDBus, "no-dbus", false,
		"Do not export the effect on the session bus")
	runCmd.Flags().DurationVar(&runOpts.demo, "demo", 0,
		"Map a demo notification on this interval (0 disables)")
	runCmd.Flags().DurationVar(&runOpts.demoHold, "demo-hold", 2*time.Second,
		"How long demo notifications stay mapped")
}

func runRun(cmd *cobra.Command, args []string) error {
	logger.Info("starting slidefx", "version", version, "config", configPath())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	comp := sim.NewCompositor(logger)
	ctrl := effect.NewController(comp, logger)
	ctrl.Reconfigure(effectOptions(cfg))
	comp.SetEffect(ctrl)
	defer ctrl.Close()

	dispatcher := daemon.NewDispatcher(0)

	var server *dbus.EffectServer
	if !runOpts.noDBus {
		server = dbus.NewEffectServer(ctrl, dispatcher, logger)
		server.SetReconfigureHandler(func() error {
			newCfg, err := config.LoadConfig(globalOpts.configPath)
			if err != nil {
				return err
			}
			return dispatcher.Post(func() { applyConfig(ctrl, newCfg) })
		})
		if err := server.Start(); err != nil {
			return fmt.Errorf("failed to start D-Bus server: %w", err)
		}
		defer func() {
			if err := server.Stop(); err != nil {
				logger.Warn("error stopping D-Bus server", "error", err)
			}
		}()

		ctrl.SetFinishedHandler(func(f effect.Finished) {
			if err := server.EmitAnimationFinished(f); err != nil {
				logger.Warn("failed to emit signal", "error", err)
			}
		})
	}

	watcher, err := daemon.NewConfigWatcher(configPath(), logger)
	if err != nil {
		logger.Warn("failed to create config watcher", "error", err)
	} else {
		watcher.SetReloadCallback(func(newCfg *config.Config) {
			if err := dispatcher.Post(func() { applyConfig(ctrl, newCfg) }); err != nil {
				logger.Warn("dropped config reload", "error", err)
			}
		})
		watcher.SetErrorCallback(func(err error) {
			logger.Warn("config reload rejected", "error", err)
		})
		if err := watcher.Start(cfg); err != nil {
			logger.Warn("failed to watch config", "path", configPath(), "error", err)
		} else {
			defer func() {
				if err := watcher.Stop(); err != nil {
					logger.Warn("error stopping config watcher", "error", err)
				}
			}()
		}
	}

	logger.Info("slidefx ready")
	renderLoop(ctx, comp, dispatcher, newDemo(comp, ctrl, runOpts.demo, runOpts.demoHold, logger))
	logger.Info("slidefx stopped", "stats", fmt.Sprintf("%+v", comp.Stats()))
	return nil
}

// applyConfig must run on the render thread.
func applyConfig(ctrl *effect.Controller, c *config.Config) {
	opts := effectOptions(c)
	ctrl.Reconfigure(opts)
	logger.Info("configuration applied", "duration", opts.Duration, "edge_policy", opts.Policy)
}

// renderLoop is the render thread: it owns the compositor and the controller.
func renderLoop(ctx context.Context, comp *sim.Compositor, dispatcher *daemon.Dispatcher, spawner *demo) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			dispatcher.Drain()
			now := t.Sub(start)
			spawner.step(now)
			comp.Paint(now)
		}
	}
}

// demo maps and closes notifications on a fixed schedule.
type demo struct {
	comp     *sim.Compositor
	ctrl     *effect.Controller
	logger   *slog.Logger
	interval time.Duration
	hold     time.Duration

	next    time.Duration
	count   int
	pending []demoWindow
}

type demoWindow struct {
	id      effect.WindowID
	closeAt time.Duration
}

// Top and bottom placements are centered, so only the center policy slides them.
var (
	sideEdges = []edge.Edge{edge.Right, edge.Left}
	allEdges  = []edge.Edge{edge.Right, edge.Left, edge.Top, edge.Bottom}
)

// newDemo returns nil when interval disables the demo.
func newDemo(comp *sim.Compositor, ctrl *effect.Controller, interval, hold time.Duration, logger *slog.Logger) *demo {
	if interval <= 0 {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &demo{comp: comp, ctrl: ctrl, logger: logger, interval: interval, hold: hold}
}

// edges returns the anchors the current policy animates.
func (d *demo) edges() []edge.Edge {
	if d.ctrl.Options().Policy == edge.PolicyCenter {
		return allEdges
	}
	return sideEdges
}

func (d *demo) step(now time.Duration) {
	if d == nil {
		return
	}

	kept := d.pending[:0]
	for _, w := range d.pending {
		if now < w.closeAt {
			kept = append(kept, w)
			continue
		}
		if err := d.comp.Close(w.id); err != nil {
			d.logger.Warn("failed to close demo window", "window", w.id, "error", err)
		}
	}
	d.pending = kept

	if now < d.next {
		return
	}
	d.next = now + d.interval

	area := d.comp.Outputs()[0].Geometry
	if wa := d.comp.Outputs()[0].WorkArea; !wa.IsEmpty() {
		area = wa
	}
	edges := d.edges()
	e := edges[d.count%len(edges)]
	d.count++

	id := effect.WindowID(fmt.Sprintf("demo-%d", d.count))
	frame := sim.Place(area, e, 400, 100, 10)
	if _, err := d.comp.Map(sim.WindowSpec{ID: id, Type: sim.TypeNotification, Frame: frame, Shadow: 8}); err != nil {
		d.logger.Warn("failed to map demo window", "window", id, "error", err)
		return
	}
	d.pending = append(d.pending, demoWindow{id: id, closeAt: now + d.hold})
}
