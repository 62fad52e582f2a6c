package input

import "github.com/GeneticxCln/Axiom-sub000/internal/geom"

// DefaultResizeGrip is how far (in logical pixels) from a window edge
// a click still counts as grabbing that edge for an interactive
// resize.
const DefaultResizeGrip = 8

// ResizeEdges reports which edges of rect the point p grabs: within
// grip pixels of a side selects that side, and a point near a corner
// selects both adjoining sides. EdgeNone means p is in the window's
// interior (a plain click, not a resize grab).
func ResizeEdges(p geom.Point, rect geom.Rect, grip int32) geom.Edge {
	if grip <= 0 {
		grip = DefaultResizeGrip
	}
	var e geom.Edge
	if p.X-rect.X < grip {
		e |= geom.EdgeLeft
	} else if rect.Right()-p.X <= grip {
		e |= geom.EdgeRight
	}
	if p.Y-rect.Y < grip {
		e |= geom.EdgeTop
	} else if rect.Bottom()-p.Y <= grip {
		e |= geom.EdgeBottom
	}
	return e
}
