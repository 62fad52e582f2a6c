package tiling

// band is one 1-D slot produced by splitRange: an offset and an extent
// along whichever axis the caller is dividing.
type band struct {
	offset int32
	extent uint32
}

// splitRange divides a span of length `extent` starting at `origin` into
// `k` equal bands separated by `gap`, then shaves `border` off the two
// outermost faces (first band's leading face, last band's trailing
// face) — interior faces get no extra inset since the inter-band gap
// already separates them. k==1 shaves both faces off the single band.
//
// This is the shared shape behind every algorithm's row/column split;
// master-stack's column split does not use it (see masterstack.go)
// because its two columns are not equal-width.
func splitRange(origin int32, extent uint32, k int, gap, border uint32) []band {
	bands := make([]band, k)
	if k <= 0 {
		return bands
	}
	usable := int64(extent) - 2*int64(gap)
	if usable < 0 {
		usable = 0
	}
	per := (usable - int64(k-1)*int64(gap)) / int64(k)
	if per < 0 {
		per = 0
	}
	for i := 0; i < k; i++ {
		raw := origin + int32(gap) + int32(i)*(int32(per)+int32(gap))
		ext := per
		o := raw
		if i == 0 {
			o += int32(border)
			ext -= int64(border)
		}
		if i == k-1 {
			ext -= int64(border)
		}
		bands[i] = band{offset: o, extent: clampNonNeg(ext)}
	}
	return bands
}
