package tiling

import "github.com/GeneticxCln/Axiom-sub000/internal/geom"

// masterStack implements spec.md §4.2's master-stack algorithm: the
// first ctx.MasterCount windows form a master column occupying
// ctx.MasterRatio of the width (full width if there is no stack at
// all), the rest stack vertically in the remainder.
//
// The master column and the stack column are not mirror images of each
// other: the master column is a self-contained bordered box on both
// its outer and its stack-facing side, while the stack column treats
// its master-facing side as already separated (by the column gap) and
// only borders its own outward-facing side. This asymmetry matches the
// worked numbers in §8 scenario 1 exactly; see DESIGN.md for the
// derivation.
func masterStack(ctx Context, out []Result) {
	n := ctx.Count
	area := ctx.Area
	gap, border := ctx.Gap, ctx.Border

	nmaster := ctx.MasterCount
	if nmaster <= 0 {
		nmaster = 1
	}
	if nmaster > n {
		nmaster = n
	}
	nstack := n - nmaster

	var masterW uint32
	if nstack <= 0 {
		masterW = area.W
	} else {
		ratio := ctx.MasterRatio
		if ratio <= 0 || ratio >= 1 {
			ratio = 0.5
		}
		masterW = uint32(float64(area.W) * ratio)
	}

	masterRows := splitRange(area.Y, area.H, nmaster, gap, border)
	musable := int64(masterW) - 2*int64(gap)
	mx := area.X + int32(gap) + int32(border)
	mw := clampNonNeg(musable - 2*int64(border))
	for i := 0; i < nmaster; i++ {
		out[i] = Result{
			Rect:      geom.Rect{X: mx, Y: masterRows[i].offset, W: mw, H: masterRows[i].extent},
			Master:    true,
			Algorithm: MasterStack,
		}
	}

	if nstack <= 0 {
		return
	}

	stackPureW := int64(area.W) - int64(masterW)
	stackUsableW := stackPureW - 3*int64(gap)
	sx := area.X + int32(masterW) + int32(gap)
	sw := clampNonNeg(stackUsableW - int64(border))
	stackRows := splitRange(area.Y, area.H, nstack, gap, border)
	for i := 0; i < nstack; i++ {
		out[nmaster+i] = Result{
			Rect:      geom.Rect{X: sx, Y: stackRows[i].offset, W: sw, H: stackRows[i].extent},
			Master:    false,
			Algorithm: MasterStack,
		}
	}
}
