package wm

import (
	"testing"

	"github.com/GeneticxCln/Axiom-sub000/internal/backend"
	"github.com/GeneticxCln/Axiom-sub000/internal/geom"
	"github.com/GeneticxCln/Axiom-sub000/internal/ids"
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
	id     uint64
	serial uint32
	closed bool
}

func (s *fakeSurface) ID() uint64 { return s.id }
func (s *fakeSurface) Configure(w, h uint32) uint32 {
	s.serial++
	return s.serial
}
func (s *fakeSurface) Close() { s.closed = true }

var _ backend.SurfaceConfigurer = (*fakeSurface)(nil)

func newTestManager(t *testing.T) (*Manager, ids.OutputID) {
	t.Helper()
	log := logx.New("test")
	log.SetOutput(nil)
	m, err := New(log, 64)
	if err != nil {
		t.Fatal(err)
	}
	out := output.New(1, fakeHandle{w: 1920, h: 1080})
	m.AddOutput(out)
	return m, out.ID
}

func TestMapAppliesTileVsFloatPolicy(t *testing.T) {
	m, _ := newTestManager(t)

	tiled := &window.Window{}
	id := m.AddWindow(tiled)
	if err := m.Map(id); err != nil {
		t.Fatal(err)
	}
	if tiled.Role != window.RoleTiled {
		t.Fatalf("expected RoleTiled, got %v", tiled.Role)
	}

	fixed := &window.Window{Constraints: window.Constraints{MinW: 400, MinH: 300, MaxW: 400, MaxH: 300}}
	id2 := m.AddWindow(fixed)
	if err := m.Map(id2); err != nil {
		t.Fatal(err)
	}
	if fixed.Role != window.RoleFloating {
		t.Fatalf("expected RoleFloating for fixed-size window, got %v", fixed.Role)
	}
}

func TestArrangeMasterStackThreeWindows(t *testing.T) {
	m, outID := newTestManager(t)
	surfaces := make([]*fakeSurface, 3)
	for i := range surfaces {
		surfaces[i] = &fakeSurface{id: uint64(i + 1)}
		w := &window.Window{Surface: surfaces[i]}
		id := m.AddWindow(w)
		if err := m.Map(id); err != nil {
			t.Fatal(err)
		}
	}
	ws := m.workspaces.Get(outID, m.CurrentTag())
	ws.Params.Gap = 10
	ws.Params.Border = 2

	if err := m.Arrange(outID, m.CurrentTag()); err != nil {
		t.Fatal(err)
	}

	var rects []geom.Rect
	for _, id := range m.WindowIDsByCreationOrder() {
		w, _ := m.Window(id)
		rects = append(rects, w.Geometry)
	}
	want := []geom.Rect{
		{X: 12, Y: 12, W: 1128, H: 1056},
		{X: 1162, Y: 12, W: 736, H: 523},
		{X: 1162, Y: 545, W: 736, H: 523},
	}
	for i, r := range rects {
		if r != want[i] {
			t.Fatalf("window %d geometry = %+v, want %+v", i, r, want[i])
		}
	}
	for _, s := range surfaces {
		if s.serial != 1 {
			t.Fatalf("expected exactly one configure per window, got %d", s.serial)
		}
	}
}

func TestUnmapRefocusesMostRecent(t *testing.T) {
	m, _ := newTestManager(t)
	a := m.AddWindow(&window.Window{})
	b := m.AddWindow(&window.Window{})
	_ = m.Map(a)
	_ = m.Map(b)

	m.Unmap(b)

	wa, _ := m.Window(a)
	if !wa.Flags.Has(window.FlagFocused) {
		t.Fatal("expected window a to be refocused after b unmapped")
	}
}

func TestRemoveOutputMigratesWorkspaces(t *testing.T) {
	m, out1 := newTestManager(t)
	out2 := output.New(2, fakeHandle{w: 1280, h: 720})
	m.AddOutput(out2)

	w := &window.Window{}
	id := m.AddWindow(w)
	_ = m.Map(id)
	if w.Output != out1 {
		t.Fatalf("expected window mapped onto active output %d, got %d", out1, w.Output)
	}

	if err := m.RemoveOutput(out1); err != nil {
		t.Fatal(err)
	}
	if w.Output != out2.ID {
		t.Fatalf("expected window migrated to output %d, got %d", out2.ID, w.Output)
	}
}

func TestMoveGrabLifecycle(t *testing.T) {
	m, outID := newTestManager(t)
	w := &window.Window{Geometry: geom.Rect{X: 100, Y: 100, W: 200, H: 150}, Role: window.RoleFloating}
	id := m.AddWindow(w)
	_ = m.Map(id)
	_ = outID

	if err := m.BeginMove(id, geom.Point{X: 500, Y: 500}); err != nil {
		t.Fatal(err)
	}
	if !w.Flags.Has(window.FlagBeingMoved) {
		t.Fatal("expected FlagBeingMoved set")
	}
	m.UpdatePointer(geom.Point{X: 520, Y: 480})
	if w.Geometry.X != 120 || w.Geometry.Y != 80 {
		t.Fatalf("geometry after move = %+v", w.Geometry)
	}
	m.EndGrab()
	if w.Flags.Has(window.FlagBeingMoved) {
		t.Fatal("expected FlagBeingMoved cleared after EndGrab")
	}
}

func TestCancelGrabRestoresGeometry(t *testing.T) {
	m, _ := newTestManager(t)
	original := geom.Rect{X: 10, Y: 10, W: 300, H: 200}
	w := &window.Window{Geometry: original, Role: window.RoleFloating}
	id := m.AddWindow(w)
	_ = m.Map(id)

	_ = m.BeginMove(id, geom.Point{X: 0, Y: 0})
	m.UpdatePointer(geom.Point{X: 999, Y: 999})
	m.CancelGrab()

	if w.Geometry != original {
		t.Fatalf("geometry after cancel = %+v, want %+v", w.Geometry, original)
	}
}

func TestDispatchTagView(t *testing.T) {
	m, _ := newTestManager(t)
	if err := m.Dispatch(ActionTagView, 3, ""); err != nil {
		t.Fatal(err)
	}
	if m.CurrentTag() != 3 {
		t.Fatalf("CurrentTag() = %d, want 3", m.CurrentTag())
	}
}

func TestDispatchUnknownActionErrors(t *testing.T) {
	m, _ := newTestManager(t)
	if err := m.Dispatch("not-a-real-action", 0, ""); err == nil {
		t.Fatal("expected error for unknown action")
	}
}

func TestAltTabCommitFocusesCursor(t *testing.T) {
	m, _ := newTestManager(t)
	a := m.AddWindow(&window.Window{})
	b := m.AddWindow(&window.Window{})
	c := m.AddWindow(&window.Window{})
	_ = m.Map(a)
	_ = m.Map(b)
	_ = m.Map(c)

	if err := m.Dispatch(ActionFocusNext, 0, ""); err != nil {
		t.Fatal(err)
	}
	m.EndAltTab()

	wb, _ := m.Window(b)
	if !wb.Flags.Has(window.FlagFocused) {
		t.Fatal("expected alt-tab to focus the previously-focused window (b)")
	}
}
