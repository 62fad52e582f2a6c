// Package geom holds the plain rectangle/size arithmetic shared by the
// tiling engine, the window manager and the layer-shell usable-area
// tracker. Nothing in here touches a window, a surface or the scene graph.
package geom

// Rect is an axis-aligned integer rectangle in output/logical-pixel space.
type Rect struct {
	X, Y int32
	W, H uint32
}

// Size is a plain width/height pair, used for constraints.
type Size struct {
	W, H uint32
}

// Insets describes a per-edge border/titlebar thickness.
type Insets struct {
	Top, Right, Bottom, Left uint32
}

// Inset shrinks r by the given insets, clamping to a zero-sized rectangle
// rather than going negative.
func (r Rect) Inset(in Insets) Rect {
	x := r.X + int32(in.Left)
	y := r.Y + int32(in.Top)
	w := shrink(r.W, in.Left+in.Right)
	h := shrink(r.H, in.Top+in.Bottom)
	return Rect{X: x, Y: y, W: w, H: h}
}

func shrink(v, by uint32) uint32 {
	if by >= v {
		return 0
	}
	return v - by
}

// Center returns the rectangle's center point.
func (r Rect) Center() (x, y int32) {
	return r.X + int32(r.W)/2, r.Y + int32(r.H)/2
}

// Right returns the x coordinate of the rectangle's right edge.
func (r Rect) Right() int32 { return r.X + int32(r.W) }

// Bottom returns the y coordinate of the rectangle's bottom edge.
func (r Rect) Bottom() int32 { return r.Y + int32(r.H) }

// Contains reports whether the point (x, y) lies within r.
func (r Rect) Contains(x, y int32) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Area returns the rectangle's area in square pixels.
func (r Rect) Area() int64 {
	return int64(r.W) * int64(r.H)
}

// Intersect returns the overlapping region of r and o, which may be
// zero-sized if they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max32(r.X, o.X), max32(r.Y, o.Y)
	x1, y1 := min32(r.Right(), o.Right()), min32(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: uint32(x1 - x0), H: uint32(y1 - y0)}
}

// Subtract removes the edge strip described by in from r, clamped to
// non-negative, and returns the remaining usable rectangle. This is the
// operation an output applies for every layer surface's exclusive zone.
func (r Rect) Subtract(in Insets) Rect {
	return r.Inset(in)
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// Point is a plain 2D integer point, used for pointer/cursor coordinates.
type Point struct {
	X, Y int32
}

// Edge identifies one rectangle edge or corner, used by the resize grab
// and the snapping engine.
type Edge uint8

const (
	EdgeNone   Edge = 0
	EdgeTop    Edge = 1 << 0
	EdgeBottom Edge = 1 << 1
	EdgeLeft   Edge = 1 << 2
	EdgeRight  Edge = 1 << 3
)

// Has reports whether e includes the bit o.
func (e Edge) Has(o Edge) bool { return e&o != 0 }
