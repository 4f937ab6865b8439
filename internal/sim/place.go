package sim

import (
	"github.com/jmylchreest/slidefx/internal/edge"
	"github.com/jmylchreest/slidefx/internal/geom"
)

// Place returns a frame of the given size anchored to e inside area,
// inset by margin. edge.None centers the window horizontally at the top.
func Place(area geom.RectF, e edge.Edge, width, height, margin float64) geom.RectF {
	switch e {
	case edge.Left:
		return geom.Rect(area.X+margin, area.Y+margin, width, height)
	case edge.Right:
		return geom.Rect(area.Right()-margin-width, area.Y+margin, width, height)
	case edge.Bottom:
		return geom.Rect(area.Center().X-width/2, area.Bottom()-margin-height, width, height)
	default:
		return geom.Rect(area.Center().X-width/2, area.Y+margin, width, height)
	}
}
