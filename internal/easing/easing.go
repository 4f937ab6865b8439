// Package easing provides the shaping curves applied to animation progress.
package easing

// Curve maps linear progress in [0,1] to eased progress in [0,1].
type Curve func(t float64) float64

// Named curves.
var (
	// Linear applies no easing.
	Linear Curve = func(t float64) float64 { return t }

	// InCubic starts slowly and accelerates. Used when sliding out.
	InCubic Curve = func(t float64) float64 {
		return t * t * t
	}

	// OutCubic starts quickly and decelerates. Used when sliding in.
	OutCubic Curve = func(t float64) float64 {
		t1 := t - 1
		return t1*t1*t1 + 1
	}
)

// Apply evaluates c at t after clamping t to [0,1].
// A nil curve behaves like Linear.
func Apply(c Curve, t float64) float64 {
	switch {
	case t <= 0:
		t = 0
	case t >= 1:
		t = 1
	}
	if c == nil {
		return t
	}
	return c(t)
}
