package wm

import (
	"testing"

	"github.com/GeneticxCln/Axiom-sub000/internal/geom"
	"github.com/GeneticxCln/Axiom-sub000/internal/layer"
)

func TestAddLayerSurfaceReservesExclusiveZone(t *testing.T) {
	m, outID := newTestManager(t)
	target := &fakeSurface{id: 1}
	s := &layer.Surface{
		Output:        outID,
		Layer:         layer.LayerTop,
		Anchor:        layer.AnchorTop | layer.AnchorLeft | layer.AnchorRight,
		RequestedSize: geom.Size{W: 0, H: 40},
		ExclusiveZone: 40,
		Target:        target,
	}
	if err := m.AddLayerSurface(s); err != nil {
		t.Fatal(err)
	}
	if s.Geometry.H != 40 {
		t.Fatalf("Geometry.H = %d, want 40", s.Geometry.H)
	}
	if target.serial == 0 {
		t.Fatal("expected ArrangeLayers to push a Configure to the layer surface's target")
	}

	out := m.outputs[outID]
	usable := out.Usable()
	if usable.Y != 40 {
		t.Fatalf("usable.Y = %d, want 40 after reserving a 40px top exclusive zone", usable.Y)
	}

	if err := m.RemoveLayerSurface(s); err != nil {
		t.Fatal(err)
	}
	if out.Usable().Y != 0 {
		t.Fatalf("usable.Y = %d, want 0 after removing the layer surface", out.Usable().Y)
	}
}

func TestKeyboardGrabLayerPicksTopmostExclusive(t *testing.T) {
	m, outID := newTestManager(t)
	if _, ok := m.KeyboardGrabLayer(); ok {
		t.Fatal("no grab expected with no layer surfaces")
	}

	bar := &layer.Surface{Output: outID, Layer: layer.LayerTop, Keyboard: layer.KeyboardOnDemand}
	lock := &layer.Surface{Output: outID, Layer: layer.LayerOverlay, Keyboard: layer.KeyboardExclusive}
	launcher := &layer.Surface{Output: outID, Layer: layer.LayerTop, Keyboard: layer.KeyboardExclusive}
	for _, s := range []*layer.Surface{bar, launcher, lock} {
		if err := m.AddLayerSurface(s); err != nil {
			t.Fatal(err)
		}
	}

	got, ok := m.KeyboardGrabLayer()
	if !ok || got != lock {
		t.Fatalf("KeyboardGrabLayer = %v, want the overlay lock surface", got)
	}

	if err := m.RemoveLayerSurface(lock); err != nil {
		t.Fatal(err)
	}
	got, ok = m.KeyboardGrabLayer()
	if !ok || got != launcher {
		t.Fatal("after the overlay releases, the top-layer exclusive surface should grab")
	}
}
