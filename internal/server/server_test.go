package server

import (
	"context"
	"testing"
	"time"

	"github.com/GeneticxCln/Axiom-sub000/config"
	"github.com/GeneticxCln/Axiom-sub000/internal/ids"
	"github.com/GeneticxCln/Axiom-sub000/internal/input"
	"github.com/GeneticxCln/Axiom-sub000/internal/layer"
	"github.com/GeneticxCln/Axiom-sub000/internal/logx"
	"github.com/GeneticxCln/Axiom-sub000/internal/output"
	"github.com/GeneticxCln/Axiom-sub000/internal/scene"
	"github.com/GeneticxCln/Axiom-sub000/internal/window"
)

type fakeNode struct{}

func (fakeNode) SetPosition(x, y int32)  {}
func (fakeNode) SetEnabled(enabled bool) {}
func (fakeNode) Destroy()                {}

type fakeTree struct{ fakeNode }

func (fakeTree) NewTree() scene.Tree                           { return fakeTree{} }
func (fakeTree) NewRect(w, h uint32, c scene.Color) scene.Rect { return nil }
func (fakeTree) NewSurface(s scene.Surface) scene.SurfaceNode  { return nil }
func (fakeTree) Raise(child scene.Node)                        {}

type fakeRoot struct{ fakeTree }

type fakeHandle struct{ w, h uint32 }

func (h fakeHandle) Name() string          { return "fake" }
func (h fakeHandle) Width() uint32         { return h.w }
func (h fakeHandle) Height() uint32        { return h.h }
func (h fakeHandle) SceneRoot() scene.Root { return fakeRoot{} }
func (h fakeHandle) RequestFrame()         {}
func (h fakeHandle) Commit()               {}

type fakeSurface struct {
	id       uint64
	serial   uint32
	closed   bool
	closeLog *[]uint64 // if set, Close appends id here
}

func (s *fakeSurface) ID() uint64                   { return s.id }
func (s *fakeSurface) Configure(w, h uint32) uint32 { s.serial++; return s.serial }
func (s *fakeSurface) Close() {
	s.closed = true
	if s.closeLog != nil {
		*s.closeLog = append(*s.closeLog, s.id)
	}
}

// scriptedSource replays a fixed slice of events, then blocks on ctx
// cancellation like a real backend would once it runs out of input.
type scriptedSource struct {
	events []Event
	i      int
}

func (s *scriptedSource) NextEvent(ctx context.Context) (Event, error) {
	if s.i < len(s.events) {
		ev := s.events[s.i]
		s.i++
		return ev, nil
	}
	<-ctx.Done()
	return Event{Kind: EventTerminate}, ctx.Err()
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	log := logx.New("test")
	log.SetOutput(nil)
	s, err := New(config.Default(), log, 64)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRunDispatchesKeyPressAndTerminates(t *testing.T) {
	s := newTestServer(t)
	src := &scriptedSource{events: []Event{
		{Kind: EventKeyPress, Mods: input.ModSuper, Key: keyQ},
		{Kind: EventTerminate},
	}}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Run(ctx, src); err != nil {
		t.Fatal(err)
	}
}

func TestRunMapsWindowAndArranges(t *testing.T) {
	s := newTestServer(t)
	out := output.New(1, fakeHandle{w: 1920, h: 1080})
	s.Manager.AddOutput(out)

	win := &window.Window{Output: out.ID, Surface: &fakeSurface{id: 1}}
	src := &scriptedSource{events: []Event{
		{Kind: EventWindowMap, Win: win},
		{Kind: EventTerminate},
	}}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Run(ctx, src); err != nil {
		t.Fatal(err)
	}
	if win.Geometry.W == 0 || win.Geometry.H == 0 {
		t.Fatalf("expected mapped window to be arranged, got geometry %+v", win.Geometry)
	}
}

func TestRunShutdownTearsDownWindowsInReverseOrder(t *testing.T) {
	s := newTestServer(t)
	out := output.New(1, fakeHandle{w: 1920, h: 1080})
	s.Manager.AddOutput(out)

	var closed []uint64
	a := &window.Window{Output: out.ID, Surface: &fakeSurface{id: 1, closeLog: &closed}}
	b := &window.Window{Output: out.ID, Surface: &fakeSurface{id: 2, closeLog: &closed}}
	idA := s.Manager.AddWindow(a)
	idB := s.Manager.AddWindow(b)
	if err := s.Manager.Map(idA); err != nil {
		t.Fatal(err)
	}
	if err := s.Manager.Map(idB); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	src := &scriptedSource{}
	cancel()

	if err := s.Run(ctx, src); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Manager.Window(idA); ok {
		t.Fatal("expected window a removed by shutdown")
	}
	if _, ok := s.Manager.Window(idB); ok {
		t.Fatal("expected window b removed by shutdown")
	}
	if len(closed) != 2 || closed[0] != 2 || closed[1] != 1 {
		t.Fatalf("close order = %v, want [2 1] (newest window first)", closed)
	}
}

func TestHandleUnknownEventKindErrors(t *testing.T) {
	s := newTestServer(t)
	err := s.handle(Event{Kind: EventKind(255)})
	if err == nil {
		t.Fatal("expected error for unknown event kind")
	}
}

func TestHandleConfigureAckRoutesToManager(t *testing.T) {
	s := newTestServer(t)
	out := output.New(1, fakeHandle{w: 1920, h: 1080})
	s.Manager.AddOutput(out)
	w := &window.Window{Output: out.ID}
	id := s.Manager.AddWindow(w)
	if err := s.Manager.Map(id); err != nil {
		t.Fatal(err)
	}

	if err := s.handle(Event{Kind: EventConfigureAck, Window: id, Serial: 1}); err != nil {
		t.Fatal(err)
	}
}

func TestQuitBindingEndsRun(t *testing.T) {
	s := newTestServer(t)
	// No EventTerminate follows: the quit binding alone must end Run.
	src := &scriptedSource{events: []Event{
		{Kind: EventKeyPress, Mods: input.ModSuper, Key: keyQ},
	}}
	// The timeout only unblocks the source if the quit path is broken;
	// Run must return before it expires.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Run(ctx, src); err != nil {
		t.Fatal(err)
	}
	if ctx.Err() != nil {
		t.Fatal("Run ended only when the context expired, not on the quit binding")
	}
}

func TestAltTabCommitsOnModifierRelease(t *testing.T) {
	s := newTestServer(t)
	out := output.New(1, fakeHandle{w: 1920, h: 1080})
	s.Manager.AddOutput(out)
	var winIDs []ids.WindowID
	for i := 0; i < 3; i++ {
		id := s.Manager.AddWindow(&window.Window{})
		if err := s.Manager.Map(id); err != nil {
			t.Fatal(err)
		}
		winIDs = append(winIDs, id)
	}
	// Focus order is now a, b, c; two Alt+Tab presses land on a.
	if err := s.handle(Event{Kind: EventKeyPress, Mods: input.ModAlt, Key: keyTab}); err != nil {
		t.Fatal(err)
	}
	if err := s.handle(Event{Kind: EventKeyPress, Mods: input.ModAlt, Key: keyTab}); err != nil {
		t.Fatal(err)
	}
	// Releasing a non-modifier key while Alt is still held must not commit.
	if err := s.handle(Event{Kind: EventKeyRelease, Mods: input.ModAlt, Key: keyTab}); err != nil {
		t.Fatal(err)
	}
	if !s.Manager.AltTabActive() {
		t.Fatal("cycle should survive while the modifier is held")
	}
	// Alt release commits.
	if err := s.handle(Event{Kind: EventKeyRelease, Mods: 0}); err != nil {
		t.Fatal(err)
	}
	w, _ := s.Manager.Window(winIDs[0])
	if !w.Flags.Has(window.FlagFocused) {
		t.Fatal("expected the cycle to land on the oldest window")
	}
}

func TestEscapeCancelsAltTab(t *testing.T) {
	s := newTestServer(t)
	out := output.New(1, fakeHandle{w: 1920, h: 1080})
	s.Manager.AddOutput(out)
	a := s.Manager.AddWindow(&window.Window{})
	b := s.Manager.AddWindow(&window.Window{})
	_ = s.Manager.Map(a)
	_ = s.Manager.Map(b)

	_ = s.handle(Event{Kind: EventKeyPress, Mods: input.ModAlt, Key: keyTab})
	_ = s.handle(Event{Kind: EventKeyPress, Mods: input.ModAlt, Key: keyEscape})
	if s.Manager.AltTabActive() {
		t.Fatal("Escape should cancel the cycle")
	}
	wb, _ := s.Manager.Window(b)
	if !wb.Flags.Has(window.FlagFocused) {
		t.Fatal("cancellation must leave the original window focused")
	}
}

func TestExclusiveLayerSurfaceBypassesBindings(t *testing.T) {
	s := newTestServer(t)
	out := output.New(1, fakeHandle{w: 1920, h: 1080})
	s.Manager.AddOutput(out)
	lock := &layer.Surface{Output: out.ID, Layer: layer.LayerOverlay, Keyboard: layer.KeyboardExclusive}
	if err := s.handle(Event{Kind: EventLayerMap, Layer: lock}); err != nil {
		t.Fatal(err)
	}
	// Super+Q would normally quit; with the lock mapped it must not.
	if err := s.handle(Event{Kind: EventKeyPress, Mods: input.ModSuper, Key: keyQ}); err != nil {
		t.Fatal(err)
	}
	if err := s.handle(Event{Kind: EventLayerUnmap, Layer: lock}); err != nil {
		t.Fatal(err)
	}
}
