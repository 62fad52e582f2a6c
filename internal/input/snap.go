package input

import (
	"math"

	"github.com/GeneticxCln/Axiom-sub000/internal/geom"
)

// SnapThreshold is how close (in logical pixels) a moving window's
// edge must come to a candidate edge before it snaps, per
// original_source/src/window_snapping.c's default threshold.
const SnapThreshold = 12

// SnapReleaseThreshold is how far past the snapped position the
// pointer must move before the "stuck edge" releases — larger than
// SnapThreshold so a snap doesn't immediately re-trigger on the next
// pixel of movement (hysteresis, matching window_snapping.c's
// stuck-edge behavior).
const SnapReleaseThreshold = 24

// Snapper remembers which edge a move grab is currently stuck to, so a
// window that has snapped to an edge stays there until the pointer
// drags it past the release threshold rather than re-evaluating
// candidates every single pointer motion event. Threshold and
// ReleaseThreshold override the package defaults when non-zero,
// letting the [snapping] config section tune the magnetism.
type Snapper struct {
	Threshold        int32
	ReleaseThreshold int32

	// Magnetism is the interpolation weight applied when pulling the
	// window toward a snap target: 1 (the default for a zero value)
	// jumps flush in one motion event and engages the stuck-edge
	// hysteresis; a value in (0, 1) pulls that fraction of the
	// remaining distance per event instead, so the window glides onto
	// the target.
	Magnetism float64

	stuck     geom.Edge
	stuckAtX  int32 // the leading x coordinate the stuck X axis is pinned to
	stuckAtY  int32 // the leading y coordinate the stuck Y axis is pinned to
	hasStuckX bool
	hasStuckY bool
}

func (s *Snapper) threshold() int32 {
	if s.Threshold > 0 {
		return s.Threshold
	}
	return SnapThreshold
}

func (s *Snapper) releaseThreshold() int32 {
	if s.ReleaseThreshold > 0 {
		return s.ReleaseThreshold
	}
	return SnapReleaseThreshold
}

func (s *Snapper) magnetism() float64 {
	if s.Magnetism > 0 && s.Magnetism < 1 {
		return s.Magnetism
	}
	return 1
}

// Candidate is one position a window might snap to on an axis: a
// coordinate value (another window's edge or center, or a screen
// edge/center) plus the edge it represents (EdgeNone for a center).
type Candidate struct {
	Edge  geom.Edge
	Value int32
}

// Resolve adjusts proposed to snap against candidates, applying the
// stuck-edge hysteresis: once snapped on an axis, that axis stays
// pinned until the unsnapped (pre-snap) position would move more than
// the release threshold away from the stuck value.
func (s *Snapper) Resolve(proposed geom.Rect, xCandidates, yCandidates []Candidate) geom.Rect {
	proposed.X = s.resolveAxis(proposed.X, proposed.Right(), xCandidates, &s.hasStuckX, &s.stuckAtX, true)
	proposed.Y = s.resolveAxis(proposed.Y, proposed.Bottom(), yCandidates, &s.hasStuckY, &s.stuckAtY, false)
	return proposed
}

func (s *Snapper) resolveAxis(lead, trail int32, candidates []Candidate, stuckFlag *bool, stuckAt *int32, xAxis bool) int32 {
	if *stuckFlag {
		if abs32(lead-*stuckAt) <= s.releaseThreshold() {
			return *stuckAt
		}
		*stuckFlag = false
	}

	target, dist, found := bestCandidate(lead, trail, candidates)
	if !found || dist > s.threshold() {
		return lead
	}
	if w := s.magnetism(); w < 1 {
		// Partial pull: no hard jump, no stuck edge — the window keeps
		// gliding toward the target on every motion event.
		return lead + int32(math.Round(w*float64(target-lead)))
	}
	*stuckFlag = true
	*stuckAt = target
	if xAxis {
		s.stuck |= geom.EdgeLeft
	} else {
		s.stuck |= geom.EdgeTop
	}
	return target
}

// bestCandidate matches each candidate against the window's three
// reference coordinates on the axis — leading edge, center, trailing
// edge — and returns the leading-edge position that brings the
// matched reference flush with the nearest candidate. Matching on the
// reference and translating back is what makes "drag my right edge up
// to your left edge" land flush instead of teleporting the window's
// left edge onto the target. Ties (§9 Open Question 4) break toward
// the resulting position nearer the workspace's top-left.
func bestCandidate(lead, trail int32, candidates []Candidate) (targetLead, dist int32, found bool) {
	center := lead + (trail-lead)/2
	refs := [3]int32{lead, center, trail}

	best := int32(1<<31 - 1)
	var bestLead int32
	for _, c := range candidates {
		for _, ref := range refs {
			d := abs32(ref - c.Value)
			resulting := lead + (c.Value - ref)
			if d < best || (d == best && resulting < bestLead) {
				best = d
				bestLead = resulting
				found = true
			}
		}
	}
	return bestLead, best, found
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// Release clears both axes' stuck state, e.g. when the move grab
// ends. Configured thresholds survive.
func (s *Snapper) Release() {
	s.stuck = geom.EdgeNone
	s.stuckAtX = 0
	s.stuckAtY = 0
	s.hasStuckX = false
	s.hasStuckY = false
}
