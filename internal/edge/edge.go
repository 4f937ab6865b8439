// Package edge decides which screen edge a notification window is anchored
// to, and therefore which direction it slides in from and out to.
package edge

import (
	"fmt"
	"math"

	"github.com/jmylchreest/slidefx/internal/geom"
)

// Edge is a screen-relative slide direction.
type Edge int

const (
	None Edge = iota
	Left
	Right
	Top
	Bottom
)

// String returns the lowercase name of the edge.
func (e Edge) String() string {
	switch e {
	case Left:
		return "left"
	case Right:
		return "right"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (e Edge) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// Detect classifies a window by its distance to the screen's vertical edges.
// A window whose left (right) side is within half its own width of the
// screen's left (right) side is anchored Left (Right). Anything else,
// typically a centered window, is not anchored and ok is false.
func Detect(window, screen geom.RectF) (e Edge, ok bool) {
	half := window.Width / 2
	if math.Abs(screen.Left()-window.Left()) < half {
		return Left, true
	}
	if math.Abs(screen.Right()-window.Right()) < half {
		return Right, true
	}
	return None, false
}

// DetectByCenter classifies a window against the screen's center lines.
// It always picks an edge: Left or Right when the window lies entirely on
// one side of the vertical center line, otherwise Top or Bottom depending
// on which side of the horizontal center line the window's center falls.
func DetectByCenter(window, screen geom.RectF) Edge {
	center := screen.Center()
	switch {
	case window.Right() < center.X:
		return Left
	case window.Left() > center.X:
		return Right
	case window.Center().Y < center.Y:
		return Top
	default:
		return Bottom
	}
}

// Policy selects an edge detection strategy.
type Policy string

const (
	// PolicyEdgeDistance uses Detect and skips unanchored windows.
	PolicyEdgeDistance Policy = "edge-distance"
	// PolicyCenter uses DetectByCenter and never skips.
	PolicyCenter Policy = "center"
)

// ValidPolicies returns all known policies.
func ValidPolicies() []Policy {
	return []Policy{PolicyEdgeDistance, PolicyCenter}
}

// ParsePolicy converts a configuration string into a Policy.
// The empty string selects PolicyEdgeDistance.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyEdgeDistance:
		return PolicyEdgeDistance, nil
	case PolicyCenter:
		return PolicyCenter, nil
	default:
		return "", fmt.Errorf("unknown edge policy %q, must be one of: %v", s, ValidPolicies())
	}
}

// Detect applies the policy.
func (p Policy) Detect(window, screen geom.RectF) (Edge, bool) {
	if p == PolicyCenter {
		return DetectByCenter(window, screen), true
	}
	return Detect(window, screen)
}
