package output

import (
	"testing"
	"time"

	"github.com/GeneticxCln/Axiom-sub000/internal/geom"
	"github.com/GeneticxCln/Axiom-sub000/internal/scene"
)

type fakeNode struct{}

func (fakeNode) SetPosition(x, y int32)  {}
func (fakeNode) SetEnabled(enabled bool) {}
func (fakeNode) Destroy()                {}

type fakeTree struct{ fakeNode }

func (t fakeTree) NewTree() scene.Tree                          { return fakeTree{} }
func (t fakeTree) NewRect(w, h uint32, c scene.Color) scene.Rect { return nil }
func (t fakeTree) NewSurface(s scene.Surface) scene.SurfaceNode  { return nil }
func (t fakeTree) Raise(child scene.Node)                        {}

type fakeRoot struct{ fakeTree }

type fakeHandle struct {
	w, h    uint32
	reqs    int
	commits int
}

func (h *fakeHandle) Name() string          { return "fake-0" }
func (h *fakeHandle) Width() uint32         { return h.w }
func (h *fakeHandle) Height() uint32        { return h.h }
func (h *fakeHandle) SceneRoot() scene.Root { return fakeRoot{} }
func (h *fakeHandle) RequestFrame()         { h.reqs++ }
func (h *fakeHandle) Commit()               { h.commits++ }

func TestNewOutputUsableDefaultsToFullRect(t *testing.T) {
	h := &fakeHandle{w: 1920, h: 1080}
	o := New(1, h)
	if o.Usable() != (geom.Rect{X: 0, Y: 0, W: 1920, H: 1080}) {
		t.Fatalf("Usable() = %+v", o.Usable())
	}
}

func TestRequestArrangeCoalesces(t *testing.T) {
	h := &fakeHandle{w: 1920, h: 1080}
	o := New(1, h)
	base := time.Unix(0, 0)

	o.RequestArrange(base)
	if o.ShouldArrange(base) {
		t.Fatal("should not be ready immediately")
	}
	if !o.ShouldArrange(base.Add(2 * RecomputeDelay)) {
		t.Fatal("expected arrange to be ready after RecomputeDelay")
	}
	if o.ShouldArrange(base.Add(3 * RecomputeDelay)) {
		t.Fatal("ShouldArrange should clear the pending flag after firing")
	}
}

func TestOnFrameCommitsAndRequestsNextFrame(t *testing.T) {
	h := &fakeHandle{w: 800, h: 600}
	o := New(1, h)
	o.OnFrame(time.Unix(1, 0), time.Time{})
	if h.reqs != 1 {
		t.Fatalf("RequestFrame called %d times, want 1", h.reqs)
	}
	if h.commits != 1 {
		t.Fatalf("Commit called %d times, want 1", h.commits)
	}
}

func TestFrameStatsEMA(t *testing.T) {
	fs := NewFrameStats(0.5)
	fs.Observe(10 * time.Millisecond)
	fs.Observe(20 * time.Millisecond)
	if fs.Average() != 15*time.Millisecond {
		t.Fatalf("Average() = %v, want 15ms", fs.Average())
	}
}

func TestFrameStatsCountsSlowFrames(t *testing.T) {
	fs := NewFrameStats(0.2)
	fs.Observe(5 * time.Millisecond)
	fs.Observe(25 * time.Millisecond)
	fs.Observe(SlowFrameThreshold) // exactly at the threshold is not slow
	fs.Observe(40 * time.Millisecond)
	if got := fs.SlowFrames(); got != 2 {
		t.Fatalf("SlowFrames() = %d, want 2", got)
	}
}
