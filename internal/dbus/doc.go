// Package dbus exposes the sliding notifications effect on the session bus.
// It provides Reconfigure, IsActive and ActiveAnimations methods and emits
// an AnimationFinished signal whenever a slide completes.
package dbus
