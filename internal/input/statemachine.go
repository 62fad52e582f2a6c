package input

import (
	"github.com/GeneticxCln/Axiom-sub000/internal/geom"
	"github.com/GeneticxCln/Axiom-sub000/internal/ids"
)

// CursorMode is the pointer dispatch state (§4.5: "passthrough, move,
// resize — exactly one active at a time").
type CursorMode uint8

const (
	ModePassthrough CursorMode = iota
	ModeMoving
	ModeResizing
)

// Pointer button codes, numbered the way every X11/libinput-derived
// backend reports them.
const (
	ButtonLeft   uint8 = 1
	ButtonMiddle uint8 = 2
	ButtonRight  uint8 = 3
)

// Grab is the transient state for an in-progress move or resize,
// holding everything needed to compute the window's new geometry from
// the pointer's current position and to restore the original geometry
// on cancel.
type Grab struct {
	Mode     CursorMode
	Window   ids.WindowID
	StartPtr geom.Point
	StartGeo geom.Rect
	Edges    geom.Edge // which edges move during a resize; unused for a move
}

// BeginMove starts a move grab.
func BeginMove(win ids.WindowID, ptr geom.Point, geo geom.Rect) *Grab {
	return &Grab{Mode: ModeMoving, Window: win, StartPtr: ptr, StartGeo: geo}
}

// BeginResize starts a resize grab against the given edge set (the
// edges the pointer grabbed, e.g. bottom-right corner = EdgeBottom|EdgeRight).
func BeginResize(win ids.WindowID, ptr geom.Point, geo geom.Rect, edges geom.Edge) *Grab {
	return &Grab{Mode: ModeResizing, Window: win, StartPtr: ptr, StartGeo: geo, Edges: edges}
}

// Update computes the window's new geometry given the pointer's
// current position, clamped so a resize never inverts past its
// opposite edge.
func (g *Grab) Update(ptr geom.Point) geom.Rect {
	dx := ptr.X - g.StartPtr.X
	dy := ptr.Y - g.StartPtr.Y

	switch g.Mode {
	case ModeMoving:
		return geom.Rect{X: g.StartGeo.X + dx, Y: g.StartGeo.Y + dy, W: g.StartGeo.W, H: g.StartGeo.H}
	case ModeResizing:
		return g.resizeRect(dx, dy)
	default:
		return g.StartGeo
	}
}

func (g *Grab) resizeRect(dx, dy int32) geom.Rect {
	r := g.StartGeo
	const minSize = 1

	if g.Edges.Has(geom.EdgeLeft) {
		newX := r.X + dx
		newW := int64(r.W) - int64(dx)
		if newW < minSize {
			newW = minSize
			newX = r.Right() - minSize
		}
		r.X, r.W = newX, uint32(newW)
	} else if g.Edges.Has(geom.EdgeRight) {
		newW := int64(r.W) + int64(dx)
		if newW < minSize {
			newW = minSize
		}
		r.W = uint32(newW)
	}

	if g.Edges.Has(geom.EdgeTop) {
		newY := r.Y + dy
		newH := int64(r.H) - int64(dy)
		if newH < minSize {
			newH = minSize
			newY = r.Bottom() - minSize
		}
		r.Y, r.H = newY, uint32(newH)
	} else if g.Edges.Has(geom.EdgeBottom) {
		newH := int64(r.H) + int64(dy)
		if newH < minSize {
			newH = minSize
		}
		r.H = uint32(newH)
	}

	return r
}
