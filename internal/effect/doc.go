// Package effect implements the sliding notifications compositor effect.
//
// The Controller reacts to notification windows appearing and closing,
// creates one slide animation per window, advances it from the host's
// pre-paint, paint and post-paint hooks, and releases every resource it
// holds on a window once that window's animation finishes.
//
// All Controller methods must be called from the compositor's render
// thread. Nothing in this package is safe for concurrent use.
package effect
