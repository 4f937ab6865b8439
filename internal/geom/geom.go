package geom

import (
	"fmt"
	"math"
)

// PointF is a 2D vector in compositor coordinates.
type PointF struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Add returns p+q.
func (p PointF) Add(q PointF) PointF {
	return PointF{X: p.X + q.X, Y: p.Y + q.Y}
}

// Neg returns -p.
func (p PointF) Neg() PointF {
	return PointF{X: -p.X, Y: -p.Y}
}

// IsZero reports whether both components are zero.
func (p PointF) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

func (p PointF) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Lerp interpolates linearly between a and b. progress 0 yields a, 1 yields b.
func Lerp(a, b PointF, progress float64) PointF {
	return PointF{
		X: a.X*(1-progress) + b.X*progress,
		Y: a.Y*(1-progress) + b.Y*progress,
	}
}

// RectF is an axis-aligned rectangle with its origin at the top-left.
type RectF struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Rect is shorthand for building a RectF.
func Rect(x, y, w, h float64) RectF {
	return RectF{X: x, Y: y, Width: w, Height: h}
}

// Left returns the x coordinate of the left edge.
func (r RectF) Left() float64 { return r.X }

// Top returns the y coordinate of the top edge.
func (r RectF) Top() float64 { return r.Y }

// Right returns the x coordinate of the right edge.
func (r RectF) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r RectF) Bottom() float64 { return r.Y + r.Height }

// Center returns the center point of the rectangle.
func (r RectF) Center() PointF {
	return PointF{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Pos returns the top-left corner.
func (r RectF) Pos() PointF {
	return PointF{X: r.X, Y: r.Y}
}

// Translated returns r moved by d.
func (r RectF) Translated(d PointF) RectF {
	p := r.Pos().Add(d)
	r.X, r.Y = p.X, p.Y
	return r
}

// IsEmpty reports whether the rectangle covers no area.
func (r RectF) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersected returns the overlap of r and o, or an empty rectangle.
func (r RectF) Intersected(o RectF) RectF {
	x0 := math.Max(r.Left(), o.Left())
	y0 := math.Max(r.Top(), o.Top())
	x1 := math.Min(r.Right(), o.Right())
	y1 := math.Min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return RectF{}
	}
	return RectF{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Aligned returns the smallest integer-aligned rectangle containing r.
func (r RectF) Aligned() RectF {
	x := math.Floor(r.X)
	y := math.Floor(r.Y)
	return RectF{
		X:      x,
		Y:      y,
		Width:  math.Ceil(r.Right()) - x,
		Height: math.Ceil(r.Bottom()) - y,
	}
}

func (r RectF) String() string {
	return fmt.Sprintf("%gx%g+%g+%g", r.Width, r.Height, r.X, r.Y)
}
