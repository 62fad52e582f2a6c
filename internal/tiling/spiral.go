package tiling

import "github.com/GeneticxCln/Axiom-sub000/internal/geom"

// insetAll shrinks every side of r by gap+border. Spiral and
// binary-tree have no worked numeric scenario in §8 to match exactly
// (unlike master-stack and grid), so both use this single uniform
// inset: it keeps the outer margin consistent with the other two
// algorithms at the cost of a doubled gap between interior neighbors.
func insetAll(r geom.Rect, gap, border uint32) geom.Rect {
	m := gap + border
	return r.Inset(geom.Insets{Top: m, Right: m, Bottom: m, Left: m})
}

// spiral implements spec.md §4.2's spiral algorithm: the first window
// takes ctx.MasterRatio of the width at full height; every later
// window halves whatever rectangle remains, alternating the cut axis,
// until the final window absorbs the whole remainder instead of being
// halved again.
func spiral(ctx Context, out []Result) {
	n := ctx.Count
	area := ctx.Area
	gap, border := ctx.Gap, ctx.Border

	if n == 1 {
		out[0] = Result{Rect: insetAll(area, gap, border), Master: true, Algorithm: Spiral}
		return
	}

	ratio := ctx.MasterRatio
	if ratio <= 0 || ratio >= 1 {
		ratio = 0.5
	}
	masterW := uint32(float64(area.W) * ratio)
	out[0] = Result{
		Rect:      insetAll(geom.Rect{X: area.X, Y: area.Y, W: masterW, H: area.H}, gap, border),
		Master:    true,
		Algorithm: Spiral,
	}

	remainder := geom.Rect{X: area.X + int32(masterW), Y: area.Y, W: area.W - masterW, H: area.H}
	for i, step := 1, 1; i < n; i, step = i+1, step+1 {
		if i == n-1 {
			out[i] = Result{Rect: insetAll(remainder, gap, border), Algorithm: Spiral}
			break
		}
		var head, tail geom.Rect
		if step%2 == 1 {
			// odd step: vertical split (divide width)
			half := remainder.W / 2
			head = geom.Rect{X: remainder.X, Y: remainder.Y, W: half, H: remainder.H}
			tail = geom.Rect{X: remainder.X + int32(half), Y: remainder.Y, W: remainder.W - half, H: remainder.H}
		} else {
			// even step: horizontal split (divide height)
			half := remainder.H / 2
			head = geom.Rect{X: remainder.X, Y: remainder.Y, W: remainder.W, H: half}
			tail = geom.Rect{X: remainder.X, Y: remainder.Y + int32(half), W: remainder.W, H: remainder.H - half}
		}
		out[i] = Result{Rect: insetAll(head, gap, border), Algorithm: Spiral}
		remainder = tail
	}
}
