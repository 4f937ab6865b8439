package dbus

import (
	"fmt"

	"github.com/jmylchreest/slidefx/internal/effect"
)

// EmitAnimationFinished emits the AnimationFinished signal.
func (s *EffectServer) EmitAnimationFinished(f effect.Finished) error {
	if s.conn == nil {
		return fmt.Errorf("not connected to D-Bus")
	}

	err := s.conn.Emit(DBusPath, DBusInterface+".AnimationFinished",
		f.ID.String(), string(f.Window), f.Direction.String())
	if err != nil {
		return fmt.Errorf("failed to emit AnimationFinished signal: %w", err)
	}

	s.logger.Debug("emitted AnimationFinished signal", "id", f.ID, "window", f.Window)
	return nil
}
