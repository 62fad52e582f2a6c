package tiling

import (
	"math"

	"github.com/GeneticxCln/Axiom-sub000/internal/geom"
)

// grid implements spec.md §4.2's grid algorithm: columns = ceil(sqrt(n)),
// rows = ceil(n/columns); a short last row stretches its windows across
// the full width rather than leaving the missing columns as dead space.
func grid(ctx Context, out []Result) {
	n := ctx.Count
	area := ctx.Area
	gap, border := ctx.Gap, ctx.Border

	cols := int(math.Ceil(math.Sqrt(float64(n))))
	if cols < 1 {
		cols = 1
	}
	rows := (n + cols - 1) / cols

	rowBands := splitRange(area.Y, area.H, rows, gap, border)

	idx := 0
	for r := 0; r < rows && idx < n; r++ {
		remaining := n - idx
		colsInRow := cols
		if remaining < colsInRow {
			colsInRow = remaining
		}
		colBands := splitRange(area.X, area.W, colsInRow, gap, border)
		for c := 0; c < colsInRow; c++ {
			out[idx] = Result{
				Rect: geom.Rect{
					X: colBands[c].offset,
					Y: rowBands[r].offset,
					W: colBands[c].extent,
					H: rowBands[r].extent,
				},
				Master:    idx == 0,
				Algorithm: Grid,
			}
			idx++
		}
	}
}
