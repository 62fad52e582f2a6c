package tiling

import "github.com/GeneticxCln/Axiom-sub000/internal/geom"

// binaryTree implements spec.md §4.2's binary-tree algorithm: recursive
// bisection of the window-index range, splitting the rectangle
// vertically at even depth and horizontally at odd depth, until each
// leaf holds exactly one window.
func binaryTree(ctx Context, out []Result) {
	gap, border := ctx.Gap, ctx.Border
	var assign func(r geom.Rect, lo, hi, depth int)
	assign = func(r geom.Rect, lo, hi, depth int) {
		if hi-lo == 1 {
			out[lo] = Result{Rect: insetAll(r, gap, border), Master: lo == 0, Algorithm: BinaryTree}
			return
		}
		mid := (lo + hi) / 2
		var a, b geom.Rect
		if depth%2 == 0 {
			half := r.W / 2
			a = geom.Rect{X: r.X, Y: r.Y, W: half, H: r.H}
			b = geom.Rect{X: r.X + int32(half), Y: r.Y, W: r.W - half, H: r.H}
		} else {
			half := r.H / 2
			a = geom.Rect{X: r.X, Y: r.Y, W: r.W, H: half}
			b = geom.Rect{X: r.X, Y: r.Y + int32(half), W: r.W, H: r.H - half}
		}
		assign(a, lo, mid, depth+1)
		assign(b, mid, hi, depth+1)
	}
	assign(ctx.Area, 0, ctx.Count, 0)
}
