package dbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

const (
	// DBusInterface is the effect control interface name.
	DBusInterface = "org.kde.kwin.Effect.SlidingNotifications1"
	// DBusPath is the effect object path.
	DBusPath = "/org/kde/KWin/Effect/SlidingNotifications"
	// DBusBusName is the bus name to claim.
	DBusBusName = "org.kde.slidefx"

	// callTimeout bounds how long a method call waits for the render thread.
	callTimeout = 2 * time.Second
)

// State is the read-only view of the effect served over the bus.
type State interface {
	IsActive() bool
	Count() int
}

// Scheduler runs functions on the render thread and waits for them.
type Scheduler interface {
	Do(ctx context.Context, fn func()) error
}

// ReconfigureHandler reloads configuration and applies it to the effect.
type ReconfigureHandler func() error

// EffectServer implements the effect control D-Bus interface.
type EffectServer struct {
	conn   *dbus.Conn
	logger *slog.Logger

	state     State
	scheduler Scheduler

	reconfigureHandler ReconfigureHandler

	mu      sync.RWMutex
	running bool
}

// NewEffectServer creates a server reading state through scheduler.
func NewEffectServer(state State, scheduler Scheduler, logger *slog.Logger) *EffectServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &EffectServer{
		logger:    logger,
		state:     state,
		scheduler: scheduler,
	}
}

// SetReconfigureHandler sets the handler called by the Reconfigure method.
func (s *EffectServer) SetReconfigureHandler(handler ReconfigureHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconfigureHandler = handler
}

// Start connects to the session bus and exports the effect object.
func (s *EffectServer) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.mu.Unlock()

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	s.conn = conn

	if err := conn.Export(s, DBusPath, DBusInterface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}

	node := &introspect.Node{
		Name: DBusPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    DBusInterface,
				Methods: effectMethods(),
				Signals: effectSignals(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), DBusPath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(DBusBusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken", DBusBusName)
	}

	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	s.logger.Info("D-Bus effect server started", "interface", DBusInterface, "path", DBusPath)
	return nil
}

// Stop releases the bus name.
func (s *EffectServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.conn != nil {
		if _, err := s.conn.ReleaseName(DBusBusName); err != nil {
			s.logger.Warn("failed to release bus name", "error", err)
		}
		// Don't close the connection as it's shared (SessionBus)
	}

	s.logger.Info("D-Bus effect server stopped")
	return nil
}

// Reconfigure reloads the configuration.
// D-Bus method: Reconfigure() -> nothing
func (s *EffectServer) Reconfigure() *dbus.Error {
	s.logger.Debug("Reconfigure called")

	s.mu.RLock()
	handler := s.reconfigureHandler
	s.mu.RUnlock()

	if handler == nil {
		return nil
	}
	if err := handler(); err != nil {
		s.logger.Warn("reconfigure failed", "error", err)
		return dbus.MakeFailedError(err)
	}
	return nil
}

// IsActive reports whether any notification is animating.
// D-Bus method: IsActive() -> b
func (s *EffectServer) IsActive() (bool, *dbus.Error) {
	var active bool
	if err := s.onRenderThread(func() { active = s.state.IsActive() }); err != nil {
		return false, dbus.MakeFailedError(err)
	}
	return active, nil
}

// ActiveAnimations returns the number of running animations.
// D-Bus method: ActiveAnimations() -> u
func (s *EffectServer) ActiveAnimations() (uint32, *dbus.Error) {
	var count int
	if err := s.onRenderThread(func() { count = s.state.Count() }); err != nil {
		return 0, dbus.MakeFailedError(err)
	}
	return uint32(count), nil
}

func (s *EffectServer) onRenderThread(fn func()) error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	if err := s.scheduler.Do(ctx, fn); err != nil {
		return fmt.Errorf("render thread did not respond: %w", err)
	}
	return nil
}

// effectMethods returns the D-Bus method introspection data.
func effectMethods() []introspect.Method {
	return []introspect.Method{
		{Name: "Reconfigure"},
		{
			Name: "IsActive",
			Args: []introspect.Arg{
				{Name: "active", Type: "b", Direction: "out"},
			},
		},
		{
			Name: "ActiveAnimations",
			Args: []introspect.Arg{
				{Name: "count", Type: "u", Direction: "out"},
			},
		},
	}
}

// effectSignals returns the D-Bus signal introspection data.
func effectSignals() []introspect.Signal {
	return []introspect.Signal{
		{
			Name: "AnimationFinished",
			Args: []introspect.Arg{
				{Name: "id", Type: "s"},
				{Name: "window", Type: "s"},
				{Name: "direction", Type: "s"},
			},
		},
	}
}
