package wm

import (
	"github.com/GeneticxCln/Axiom-sub000/internal/geom"
	"github.com/GeneticxCln/Axiom-sub000/internal/scene"
	"github.com/GeneticxCln/Axiom-sub000/internal/window"
)

// buttonSize is the side length of a title-bar button's hit/paint box.
const buttonSize uint32 = 16

// subClamp returns a-b, clamped at zero instead of wrapping (a and b
// are unsigned pixel extents).
func subClamp(a, b uint32) uint32 {
	if b >= a {
		return 0
	}
	return a - b
}

// sceneLayerFor returns which named output layer (internal/output.Layers)
// a window's scene subtree belongs in. Fullscreen windows sit in the
// "fullscreen" layer, between top and overlay layer-shell surfaces
// (§4.6, §9 open question 2); every other role sits in "windows".
func sceneLayerFor(w *window.Window) string {
	if w.Role == window.RoleFullscreen {
		return "fullscreen"
	}
	return "windows"
}

// placeInScene builds (or, on a layer change, rebuilds) w's scene
// subtree under its output's matching layer tree and syncs its
// geometry. scene.Tree has no reparent primitive (only NewTree/NewRect/
// NewSurface/Raise), so moving a window between layers destroys and
// recreates the subtree rather than detaching and reattaching it.
func (m *Manager) placeInScene(w *window.Window) {
	out, ok := m.outputs[w.Output]
	if !ok || out.Scene == nil {
		return
	}
	layerName := sceneLayerFor(w)
	if w.SceneTree != nil && m.sceneLayer[w.ID] == layerName {
		w.SceneTree.SetEnabled(true)
		m.syncSceneGeometry(w)
		return
	}
	if w.SceneTree != nil {
		w.SceneTree.Destroy()
	}

	tree := out.Scene.Layer(layerName).NewTree()
	w.SceneTree = tree
	m.sceneLayer[w.ID] = layerName

	if w.Surface != nil {
		tree.NewSurface(w.Surface)
	}
	m.buildDecoration(w, tree)
	tree.SetEnabled(true)
	m.syncSceneGeometry(w)
}

// buildDecoration creates the title bar, four border rects and three
// button rects as children of tree (§3 "three nested rectangles",
// "three button regions"). Fullscreen windows have no decoration
// (§4.1) and a zero-height title bar / zero border width skip their
// respective rects, matching a theme that disables them.
func (m *Manager) buildDecoration(w *window.Window, tree scene.Tree) {
	w.Decor = window.Decoration{}
	if w.Role == window.RoleFullscreen {
		return
	}
	th := m.theme
	if th.TitleBarHeight > 0 {
		w.Decor.TitleBar = tree.NewRect(1, th.TitleBarHeight, th.TitleBarColor)
	}
	if th.BorderWidth > 0 {
		color := th.Unfocused
		if w.Flags.Has(window.FlagFocused) {
			color = th.Focused
		}
		for i := range w.Decor.Borders {
			w.Decor.Borders[i] = tree.NewRect(1, 1, color)
		}
	}
	for i := range w.Decor.Buttons {
		w.Decor.Buttons[i] = tree.NewRect(buttonSize, buttonSize, th.TitleBarColor)
	}
}

// syncSceneGeometry pushes w.Geometry, and every decoration node's
// derived position/size, to the scene graph. Called whenever Geometry
// changes: placement, Arrange, move/resize grabs, role toggles — the
// scene graph is maintained incrementally, not re-traversed (§4.6).
func (m *Manager) syncSceneGeometry(w *window.Window) {
	if w.SceneTree == nil {
		return
	}
	w.SceneTree.SetPosition(w.Geometry.X, w.Geometry.Y)

	if w.Decor.TitleBar != nil {
		w.Decor.TitleBar.SetPosition(0, 0)
		w.Decor.TitleBar.SetSize(w.Geometry.W, m.theme.TitleBarHeight)
	}

	bw := m.theme.BorderWidth
	tbh := m.theme.TitleBarHeight
	if bw > 0 {
		below := subClamp(w.Geometry.H, tbh)
		// order matches window.Decoration's doc comment: top, right,
		// bottom, left.
		boxes := [4]geom.Rect{
			{X: 0, Y: int32(tbh), W: w.Geometry.W, H: bw},
			{X: int32(subClamp(w.Geometry.W, bw)), Y: int32(tbh), W: bw, H: below},
			{X: 0, Y: int32(subClamp(w.Geometry.H, bw)), W: w.Geometry.W, H: bw},
			{X: 0, Y: int32(tbh), W: bw, H: below},
		}
		for i, box := range boxes {
			if w.Decor.Borders[i] == nil {
				continue
			}
			w.Decor.Borders[i].SetPosition(box.X, box.Y)
			w.Decor.Borders[i].SetSize(box.W, box.H)
		}
	}

	if w.Role == window.RoleFullscreen {
		for i := range w.Decor.ButtonBox {
			w.Decor.ButtonBox[i] = geom.Rect{}
		}
		return
	}
	n := len(w.Decor.Buttons)
	for i := range w.Decor.Buttons {
		box := geom.Rect{
			X: int32(w.Geometry.W) - int32(buttonSize+4)*int32(n-i),
			Y: 4,
			W: buttonSize,
			H: buttonSize,
		}
		w.Decor.ButtonBox[i] = box
		if w.Decor.Buttons[i] != nil {
			w.Decor.Buttons[i].SetPosition(box.X, box.Y)
		}
	}
}

// setFocusDecoration recolors w's border rects for the active/inactive
// state (§4.3 "update decoration to inactive").
func (m *Manager) setFocusDecoration(w *window.Window, focused bool) {
	color := m.theme.Unfocused
	if focused {
		color = m.theme.Focused
	}
	for _, b := range w.Decor.Borders {
		if b != nil {
			b.SetColor(color)
		}
	}
}

// destroyScene tears down w's scene subtree entirely: a permanent
// window removal (§7 termination teardown), not a hide.
func (m *Manager) destroyScene(w *window.Window) {
	if w.SceneTree != nil {
		w.SceneTree.Destroy()
		w.SceneTree = nil
	}
	delete(m.sceneLayer, w.ID)
}
