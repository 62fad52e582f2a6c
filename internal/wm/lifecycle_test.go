package wm

import (
	"errors"
	"testing"
	"time"

	"github.com/GeneticxCln/Axiom-sub000/internal/axiomerr"
	"github.com/GeneticxCln/Axiom-sub000/internal/geom"
	"github.com/GeneticxCln/Axiom-sub000/internal/input"
	"github.com/GeneticxCln/Axiom-sub000/internal/window"
)

func TestArrangeIsDeterministicAcrossRuns(t *testing.T) {
	m, outID := newTestManager(t)
	var wins []*window.Window
	for i := 0; i < 5; i++ {
		w := &window.Window{Surface: &fakeSurface{id: uint64(i + 1)}}
		wins = append(wins, w)
		if err := m.Map(m.AddWindow(w)); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.Arrange(outID, m.CurrentTag()); err != nil {
		t.Fatal(err)
	}
	first := make([]geom.Rect, len(wins))
	for i, w := range wins {
		first[i] = w.Geometry
	}
	// Invalidate the cache so the second pass recomputes from scratch.
	m.workspaces.Get(outID, m.CurrentTag()).Cache().Invalidate()
	if err := m.Arrange(outID, m.CurrentTag()); err != nil {
		t.Fatal(err)
	}
	for i, w := range wins {
		if w.Geometry != first[i] {
			t.Fatalf("window %d geometry changed across identical arranges: %+v vs %+v", i, first[i], w.Geometry)
		}
	}
}

func TestAddWindowAllocatesDefaultGeometry(t *testing.T) {
	m, _ := newTestManager(t)
	w := &window.Window{}
	m.AddWindow(w)
	if w.Geometry.W != window.MinWindowWidth || w.Geometry.H != window.MinWindowHeight {
		t.Fatalf("default geometry = %+v, want %dx%d", w.Geometry, window.MinWindowWidth, window.MinWindowHeight)
	}
}

func TestMapTwiceIsRejected(t *testing.T) {
	m, _ := newTestManager(t)
	id := m.AddWindow(&window.Window{})
	if err := m.Map(id); err != nil {
		t.Fatal(err)
	}
	err := m.Map(id)
	if !axiomerr.Is(err, axiomerr.KindInvalidArgument) {
		t.Fatalf("expected invalid-argument for double map, got %v", err)
	}
}

func TestMapCentersFloatingWindow(t *testing.T) {
	m, _ := newTestManager(t)
	w := &window.Window{Constraints: window.Constraints{MinW: 400, MinH: 300, MaxW: 400, MaxH: 300}}
	if err := m.Map(m.AddWindow(w)); err != nil {
		t.Fatal(err)
	}
	if w.Geometry.X != (1920-400)/2 || w.Geometry.Y != (1080-300)/2 {
		t.Fatalf("floating window not centered: %+v", w.Geometry)
	}
}

func TestMoveFloatingRejectsTiled(t *testing.T) {
	m, _ := newTestManager(t)
	id := m.AddWindow(&window.Window{})
	_ = m.Map(id)
	err := m.MoveFloating(id, 50, 50)
	if !axiomerr.Is(err, axiomerr.KindInvalidArgument) {
		t.Fatalf("expected invalid-argument moving a tiled window, got %v", err)
	}
}

func TestMoveFloatingClampsToOutput(t *testing.T) {
	m, _ := newTestManager(t)
	id := mapFloating(t, m, geom.Rect{X: 100, Y: 100, W: 400, H: 300}, &fakeSurface{id: 1})
	if err := m.MoveFloating(id, -5000, -5000); err != nil {
		t.Fatal(err)
	}
	w, _ := m.Window(id)
	if w.Geometry.X != -399 || w.Geometry.Y != -299 {
		t.Fatalf("clamped position = (%d,%d), want (-399,-299)", w.Geometry.X, w.Geometry.Y)
	}
}

func TestResizeFloatingAppliesConstraints(t *testing.T) {
	m, _ := newTestManager(t)
	id := mapFloating(t, m, geom.Rect{X: 100, Y: 100, W: 400, H: 300}, &fakeSurface{id: 1})
	w, _ := m.Window(id)
	w.Constraints = window.Constraints{MaxW: 500, MaxH: 500}

	if err := m.ResizeFloating(id, 10, 10); err != nil {
		t.Fatal(err)
	}
	if w.Geometry.W != window.MinWindowWidth || w.Geometry.H != window.MinWindowHeight {
		t.Fatalf("undersized resize = %dx%d, want compositor minimum", w.Geometry.W, w.Geometry.H)
	}
	if err := m.ResizeFloating(id, 9000, 9000); err != nil {
		t.Fatal(err)
	}
	if w.Geometry.W != 500 || w.Geometry.H != 500 {
		t.Fatalf("oversized resize = %dx%d, want client maximum 500x500", w.Geometry.W, w.Geometry.H)
	}
}

func TestMinimizeHandsFocusOn(t *testing.T) {
	m, outID := newTestManager(t)
	a := m.AddWindow(&window.Window{})
	b := m.AddWindow(&window.Window{})
	_ = m.Map(a)
	_ = m.Map(b)

	if err := m.Minimize(b); err != nil {
		t.Fatal(err)
	}
	wa, _ := m.Window(a)
	wb, _ := m.Window(b)
	if !wb.Flags.Has(window.FlagHidden) {
		t.Fatal("expected minimized window hidden")
	}
	if !wa.Flags.Has(window.FlagFocused) {
		t.Fatal("expected focus handed to the remaining window")
	}

	// A minimized window leaves the tiling set: arranging gives the
	// survivor the whole workspace.
	if err := m.Arrange(outID, m.CurrentTag()); err != nil {
		t.Fatal(err)
	}
	if wa.Geometry.W != 1920-2 || wb.Geometry.W == wa.Geometry.W {
		// default border of 1 insets each side of the lone window
		t.Fatalf("arrange after minimize: a=%+v b=%+v", wa.Geometry, wb.Geometry)
	}

	// Focusing it restores it.
	if err := m.Focus(b); err != nil {
		t.Fatal(err)
	}
	if wb.Flags.Has(window.FlagHidden) {
		t.Fatal("focusing a minimized window should restore it")
	}
}

func TestZeroSizedBufferExcludesFromTiling(t *testing.T) {
	m, outID := newTestManager(t)
	a := m.AddWindow(&window.Window{Surface: &fakeSurface{id: 1}})
	b := m.AddWindow(&window.Window{Surface: &fakeSurface{id: 2}})
	_ = m.Map(a)
	_ = m.Map(b)

	m.CommitBuffer(b, 0, 0)
	if err := m.Arrange(outID, m.CurrentTag()); err != nil {
		t.Fatal(err)
	}
	wa, _ := m.Window(a)
	wb, _ := m.Window(b)
	if wa.Geometry.W <= 1920/2 {
		t.Fatalf("survivor should get the whole workspace, got %+v", wa.Geometry)
	}
	if wb.Flags.Has(window.FlagMapped) == false {
		t.Fatal("misbehaving window must stay alive")
	}

	// A real buffer readmits it.
	m.CommitBuffer(b, 640, 480)
	m.workspaces.Get(outID, m.CurrentTag()).Cache().Invalidate()
	if err := m.Arrange(outID, m.CurrentTag()); err != nil {
		t.Fatal(err)
	}
	if wa.Geometry.W >= 1918 {
		t.Fatalf("after readmission the master column should shrink, got a=%+v", wa.Geometry)
	}
	if wb.Geometry.X <= wa.Geometry.X {
		t.Fatalf("readmitted window should occupy the stack column, got b=%+v", wb.Geometry)
	}
}

func TestUnackedConfigureTimesOut(t *testing.T) {
	m, outID := newTestManager(t)
	a := m.AddWindow(&window.Window{Surface: &fakeSurface{id: 1}})
	b := m.AddWindow(&window.Window{Surface: &fakeSurface{id: 2}})
	_ = m.Map(a)
	_ = m.Map(b)
	if err := m.Arrange(outID, m.CurrentTag()); err != nil {
		t.Fatal(err)
	}

	// a acks, b never does; past the timeout b leaves the tiling set.
	wa, _ := m.Window(a)
	m.AckConfigure(a, wa.Configure.Pending)
	future := time.Now().Add(ConfigureTimeout + time.Second)
	if err := m.OnFrame(outID, future, time.Time{}); err != nil {
		t.Fatal(err)
	}
	if _, bad := m.misbehaving[b]; !bad {
		t.Fatal("expected unresponsive window marked misbehaving")
	}
	if _, bad := m.misbehaving[a]; bad {
		t.Fatal("acked window must not be marked misbehaving")
	}

	// An eventual ack readmits it.
	wb, _ := m.Window(b)
	m.AckConfigure(b, wb.Configure.Pending)
	if _, bad := m.misbehaving[b]; bad {
		t.Fatal("ack should readmit the window")
	}
}

func TestRemoveLastOutputFallsBackToHeadless(t *testing.T) {
	m, outID := newTestManager(t)
	w := &window.Window{Surface: &fakeSurface{id: 1}}
	id := m.AddWindow(w)
	_ = m.Map(id)

	if err := m.RemoveOutput(outID); err != nil {
		t.Fatal(err)
	}
	if len(m.outputs) != 1 {
		t.Fatalf("expected exactly one fallback output, got %d", len(m.outputs))
	}
	if w.Output == outID {
		t.Fatal("window not migrated off the lost output")
	}
	// The fallback is fully usable: arranging on it works.
	if err := m.Arrange(w.Output, m.CurrentTag()); err != nil {
		t.Fatal(err)
	}
	if w.Geometry.W == 0 {
		t.Fatalf("window not arranged on fallback output: %+v", w.Geometry)
	}
}

func TestMarkUrgentAndFocusUrgent(t *testing.T) {
	m, _ := newTestManager(t)
	a := m.AddWindow(&window.Window{})
	b := m.AddWindow(&window.Window{})
	_ = m.Map(a)
	_ = m.Map(b) // b focused

	if err := m.MarkUrgent(a); err != nil {
		t.Fatal(err)
	}
	if m.UrgentCount() != 1 {
		t.Fatalf("UrgentCount = %d, want 1", m.UrgentCount())
	}
	// Marking the focused window is a no-op.
	if err := m.MarkUrgent(b); err != nil {
		t.Fatal(err)
	}
	if m.UrgentCount() != 1 {
		t.Fatalf("UrgentCount after marking focused = %d, want 1", m.UrgentCount())
	}

	if err := m.Dispatch(ActionFocusUrgent, 0, ""); err != nil {
		t.Fatal(err)
	}
	wa, _ := m.Window(a)
	if !wa.Flags.Has(window.FlagFocused) {
		t.Fatal("focus-urgent should focus the urgent window")
	}
	if m.UrgentCount() != 0 {
		t.Fatalf("urgency must clear on focus, UrgentCount = %d", m.UrgentCount())
	}
}

func TestKeyboardFocusRoutedToSeat(t *testing.T) {
	m, _ := newTestManager(t)
	seat := &fakeSeat{}
	m.SetSeat(seat)
	surf := &fakeSurface{id: 1}
	id := m.AddWindow(&window.Window{Surface: surf})
	_ = m.Map(id)
	if seat.keyboard != surf {
		t.Fatal("mapping with auto-focus should route keyboard focus to the surface")
	}
	m.Unmap(id)
	if seat.keyboard != nil {
		t.Fatal("unmapping the only window should clear keyboard focus")
	}
}

func TestViewSwitchResetsNonPersistentWorkspace(t *testing.T) {
	m, outID := newTestManager(t)
	ws := m.workspaces.Get(outID, 1)
	ws.Params.Gap = 42

	if err := m.Dispatch(ActionTagView, 2, ""); err != nil {
		t.Fatal(err)
	}
	if err := m.Dispatch(ActionTagView, 1, ""); err != nil {
		t.Fatal(err)
	}
	if got := m.workspaces.Get(outID, 1).Params.Gap; got == 42 {
		t.Fatal("non-persistent workspace should forget runtime layout changes on switch")
	}
}

func TestViewSwitchKeepsPersistentWorkspace(t *testing.T) {
	m, outID := newTestManager(t)
	ws := m.workspaces.Get(outID, 1)
	ws.PersistentLayout = true
	ws.Params.Gap = 42

	_ = m.Dispatch(ActionTagView, 2, "")
	_ = m.Dispatch(ActionTagView, 1, "")
	if got := m.workspaces.Get(outID, 1).Params.Gap; got != 42 {
		t.Fatalf("persistent workspace lost its params: gap = %d", got)
	}
}

func TestQuitActionReturnsSentinel(t *testing.T) {
	m, _ := newTestManager(t)
	if err := m.Dispatch(ActionQuit, 0, ""); !errors.Is(err, ErrQuit) {
		t.Fatalf("quit returned %v, want ErrQuit", err)
	}
}

func TestDispatchBindingRunsMacroSteps(t *testing.T) {
	m, _ := newTestManager(t)
	b := input.Binding{
		Mods:    input.ModSuper,
		Key:     'm',
		Action:  ActionMacro,
		Enabled: true,
		Macro: []input.MacroStep{
			{Action: ActionTagView, Param: 2},
			{Action: ActionTagView, Param: 3},
		},
	}
	if err := m.DispatchBinding(b); err != nil {
		t.Fatal(err)
	}
	if m.CurrentTag() != 3 {
		t.Fatalf("CurrentTag after macro = %d, want 3", m.CurrentTag())
	}
}

func TestDirectionalFocus(t *testing.T) {
	m, _ := newTestManager(t)
	left := mapFloating(t, m, geom.Rect{X: 0, Y: 0, W: 400, H: 400}, &fakeSurface{id: 1})
	right := mapFloating(t, m, geom.Rect{X: 800, Y: 0, W: 400, H: 400}, &fakeSurface{id: 2})

	if err := m.Focus(left); err != nil {
		t.Fatal(err)
	}
	if err := m.Dispatch(ActionFocusRight, 0, ""); err != nil {
		t.Fatal(err)
	}
	wr, _ := m.Window(right)
	if !wr.Flags.Has(window.FlagFocused) {
		t.Fatal("focus-right should land on the right-hand window")
	}
}
