// Package tiling is the pure computation spec.md §4.2 describes: given a
// rectangle and a window-slot count, produce sub-rectangles. It never
// touches a window.Window, a scene node, or anything else stateful —
// every exported function here is a plain function of its arguments,
// which is what makes "same context => same layout" (§8) trivially true.
package tiling

import "github.com/GeneticxCln/Axiom-sub000/internal/geom"

// Algorithm selects one of the four tiling modes spec.md §4.2 names.
type Algorithm uint8

const (
	MasterStack Algorithm = iota
	Grid
	Spiral
	BinaryTree
)

func (a Algorithm) String() string {
	switch a {
	case MasterStack:
		return "master-stack"
	case Grid:
		return "grid"
	case Spiral:
		return "spiral"
	case BinaryTree:
		return "binary-tree"
	default:
		return "unknown"
	}
}

// Context is the transient value passed into the engine (§3).
type Context struct {
	Area        geom.Rect
	Count       int
	MasterRatio float64 // clamped to [0.1, 0.9] by the caller (wm package)
	MasterCount int     // clamped to [1, 10] by the caller
	Gap         uint32
	Border      uint32
}

// Result is one window's layout output (§3).
type Result struct {
	Rect      geom.Rect
	Master    bool
	Algorithm Algorithm
}

// Compute fills a Result slice of length ctx.Count for the given
// algorithm. It is deterministic: identical ctx and algorithm always produce identical
// output, byte for byte.
func Compute(ctx Context, algo Algorithm) []Result {
	out := make([]Result, ctx.Count)
	if ctx.Count == 0 {
		return out
	}
	switch algo {
	case MasterStack:
		masterStack(ctx, out)
	case Grid:
		grid(ctx, out)
	case Spiral:
		spiral(ctx, out)
	case BinaryTree:
		binaryTree(ctx, out)
	default:
		masterStack(ctx, out)
	}
	return out
}

// clampNonNeg guards against gap/border configurations larger than the
// available rectangle; rather than panic or go negative, windows
// collapse to zero size. Callers (wm.Manager) are responsible for
// sane config, but the engine itself must never produce a negative W/H.
func clampNonNeg(v int64) uint32 {
	if v < 0 {
		return 0
	}
	return uint32(v)
}
