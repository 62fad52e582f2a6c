// Package output implements spec.md §4.6's per-output frame loop: the
// vsync-driven frame callback, scene-graph layer ordering, frame-time
// EMA statistics, and the 1ms-coalesced deferred layout recompute.
package output

import (
	"time"

	"github.com/GeneticxCln/Axiom-sub000/internal/backend"
	"github.com/GeneticxCln/Axiom-sub000/internal/geom"
	"github.com/GeneticxCln/Axiom-sub000/internal/ids"
	"github.com/GeneticxCln/Axiom-sub000/internal/scene"
)

// RecomputeDelay is how long an arrange request waits before it
// actually runs, coalescing bursts of unmap/map/resize events that
// land within the same millisecond into one recompute (§4.6).
const RecomputeDelay = time.Millisecond

// SlowFrameThreshold is the frame duration past which a frame counts
// as slow (§4.6: "count of frames > 20 ms").
const SlowFrameThreshold = 20 * time.Millisecond

// FrameStats tracks a frame-time exponential moving average plus a
// count of slow frames (§4.6 frame step 3).
type FrameStats struct {
	alpha   float64
	average time.Duration
	samples int
	slow    int
}

// NewFrameStats returns a FrameStats using the given EMA smoothing
// factor (0 < alpha <= 1; higher weighs recent frames more heavily).
func NewFrameStats(alpha float64) *FrameStats {
	if alpha <= 0 || alpha > 1 {
		alpha = 0.2
	}
	return &FrameStats{alpha: alpha}
}

// Observe folds one frame's duration into the running average.
func (f *FrameStats) Observe(d time.Duration) {
	if f.samples == 0 {
		f.average = d
	} else {
		f.average = time.Duration(f.alpha*float64(d) + (1-f.alpha)*float64(f.average))
	}
	f.samples++
	if d > SlowFrameThreshold {
		f.slow++
	}
}

// Average returns the current smoothed frame time.
func (f *FrameStats) Average() time.Duration { return f.average }

// SlowFrames returns how many observed frames exceeded SlowFrameThreshold.
func (f *FrameStats) SlowFrames() int { return f.slow }

// Layers enumerates the scene-graph stacking order bottom to top
// (§4.6: "background, bottom, normal windows, top, fullscreen,
// overlay, cursor").
var Layers = []string{"background", "bottom", "windows", "top", "fullscreen", "overlay", "cursor"}

// Scene holds one tree per named layer, created once per output and
// reused for the output's lifetime; the window manager raises/lowers
// individual window subtrees within the "windows" tree but never needs
// to reorder the layer trees themselves, since Layers' order is fixed.
type Scene struct {
	root   scene.Root
	layers map[string]scene.Tree
}

// NewScene builds a Scene over root, creating one child tree per layer
// in stacking order (later NewTree calls render above earlier ones,
// per scene.Tree's doc comment).
func NewScene(root scene.Root) *Scene {
	s := &Scene{root: root, layers: make(map[string]scene.Tree, len(Layers))}
	for _, name := range Layers {
		s.layers[name] = root.NewTree()
	}
	return s
}

// Layer returns the scene tree for the named layer.
func (s *Scene) Layer(name string) scene.Tree { return s.layers[name] }

// Output is one physical display's frame-loop state.
type Output struct {
	ID     ids.OutputID
	Handle backend.OutputHandle
	Scene  *Scene
	Stats  *FrameStats

	usable geom.Rect // cached usable-area rect after layer-shell exclusion

	pendingArrange bool
	arrangeAt      time.Time
}

// New returns an Output wrapping handle, with a freshly built Scene.
func New(id ids.OutputID, handle backend.OutputHandle) *Output {
	return &Output{
		ID:     id,
		Handle: handle,
		Scene:  NewScene(handle.SceneRoot()),
		Stats:  NewFrameStats(0.2),
		usable: geom.Rect{X: 0, Y: 0, W: handle.Width(), H: handle.Height()},
	}
}

// Usable returns the output's current usable area (full output rect
// minus every mapped layer-shell surface's exclusive zone).
func (o *Output) Usable() geom.Rect { return o.usable }

// SetUsable updates the cached usable area, called after the layer
// manager re-runs layer.Arrange over every mapped surface on this output.
func (o *Output) SetUsable(r geom.Rect) { o.usable = r }

// RequestArrange schedules a coalesced layout recompute: repeated calls
// within RecomputeDelay of each other collapse into the single
// recompute that ShouldArrange reports ready at the latest requested
// deadline.
func (o *Output) RequestArrange(now time.Time) {
	o.pendingArrange = true
	o.arrangeAt = now.Add(RecomputeDelay)
}

// ShouldArrange reports whether a pending arrange request's coalescing
// window has elapsed, and clears the pending flag if so.
func (o *Output) ShouldArrange(now time.Time) bool {
	if !o.pendingArrange || now.Before(o.arrangeAt) {
		return false
	}
	o.pendingArrange = false
	return true
}

// OnFrame is called when the backend's vsync callback fires for this
// output (§4.6). It commits the scene graph's current state to the
// output, records the inter-frame duration, and re-arms the next
// frame request.
func (o *Output) OnFrame(now, lastFrame time.Time) {
	o.Handle.Commit()
	if !lastFrame.IsZero() {
		o.Stats.Observe(now.Sub(lastFrame))
	}
	o.Handle.RequestFrame()
}
