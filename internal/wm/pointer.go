package wm

import (
	"fmt"

	"github.com/GeneticxCln/Axiom-sub000/internal/axiomerr"
	"github.com/GeneticxCln/Axiom-sub000/internal/geom"
	"github.com/GeneticxCln/Axiom-sub000/internal/ids"
	"github.com/GeneticxCln/Axiom-sub000/internal/input"
	"github.com/GeneticxCln/Axiom-sub000/internal/window"
)

// PointerMotion is the single entry point for cursor movement (§4.5's
// cursor-mode state machine): an active grab routes motion into the
// move/resize handler, otherwise the cursor is in passthrough mode and
// motion drives pointer focus and decoration hover state.
func (m *Manager) PointerMotion(ptr geom.Point) {
	if m.grab.grab != nil {
		m.UpdatePointer(ptr)
		return
	}
	m.passthroughMotion(ptr)
}

// passthroughMotion updates pointer focus (enter/leave) and title-bar
// button hover highlighting for the window under the cursor.
func (m *Manager) passthroughMotion(ptr geom.Point) {
	id, over := m.WindowAt(ptr)

	if m.pointerFocus != 0 && m.pointerFocus != id {
		if prev, ok := m.windows[m.pointerFocus]; ok {
			m.clearHover(prev)
		}
		if !over && m.seat != nil {
			m.seat.SetPointerFocus(nil, 0, 0)
		}
	}
	if !over {
		m.pointerFocus = 0
		return
	}

	w := m.windows[id]
	if m.pointerFocus != id && m.seat != nil && w.Surface != nil {
		m.seat.SetPointerFocus(w.Surface, ptr.X-w.Geometry.X, ptr.Y-w.Geometry.Y)
	}
	m.pointerFocus = id
	m.updateHover(w, ptr)
}

// updateHover recomputes each title-bar button's hover flag from the
// cursor position and recolors the button rect on transitions (§4.5:
// "hover state is tracked via cursor motion and recolors the button").
func (m *Manager) updateHover(w *window.Window, ptr geom.Point) {
	for i := range w.Decor.Hover {
		box := w.Decor.ButtonBox[i]
		box.X += w.Geometry.X
		box.Y += w.Geometry.Y
		hovered := box.W > 0 && box.Contains(ptr.X, ptr.Y)
		if hovered == w.Decor.Hover[i] {
			continue
		}
		w.Decor.Hover[i] = hovered
		if w.Decor.Buttons[i] == nil {
			continue
		}
		if hovered {
			w.Decor.Buttons[i].SetColor(m.theme.Focused)
		} else {
			w.Decor.Buttons[i].SetColor(m.theme.TitleBarColor)
		}
	}
}

func (m *Manager) clearHover(w *window.Window) {
	for i := range w.Decor.Hover {
		if !w.Decor.Hover[i] {
			continue
		}
		w.Decor.Hover[i] = false
		if w.Decor.Buttons[i] != nil {
			w.Decor.Buttons[i].SetColor(m.theme.TitleBarColor)
		}
	}
}

// WindowAt hit-tests the cursor against every visible mapped window,
// topmost first: the fullscreen layer beats the normal layer, then
// higher ZIndex beats lower, then later map order beats earlier.
func (m *Manager) WindowAt(ptr geom.Point) (ids.WindowID, bool) {
	selected := uint32(m.workspaces.Selection().Current())
	var best *window.Window
	for _, id := range m.idx.mapped {
		w, ok := m.windows[id]
		if !ok || !w.VisibleUnder(selected) || w.Flags.Has(window.FlagHidden) {
			continue
		}
		if !w.Geometry.Contains(ptr.X, ptr.Y) {
			continue
		}
		if best == nil || windowAbove(w, best) {
			best = w
		}
	}
	if best == nil {
		return 0, false
	}
	return best.ID, true
}

// windowAbove reports whether a renders at or above b; ties fall to a
// because the mapped index is walked in map order (later = above).
func windowAbove(a, b *window.Window) bool {
	af, bf := a.Role == window.RoleFullscreen, b.Role == window.RoleFullscreen
	if af != bf {
		return af
	}
	return a.ZIndex >= b.ZIndex
}

// PointerButton is §4.5's button dispatch: title-bar button regions,
// click-to-focus, Super+left drag-move, Super+right (or resize-edge
// click) drag-resize. A release in any mode ends the active grab. The
// returned bool reports whether the press was consumed by the
// compositor; an unconsumed press is the backend's to forward to the
// client under the cursor.
func (m *Manager) PointerButton(button uint8, pressed bool, ptr geom.Point, mods input.Modifier) (bool, error) {
	if !pressed {
		m.EndGrab()
		return false, nil
	}

	id, over := m.WindowAt(ptr)
	if !over {
		return false, nil
	}
	w := m.windows[id]

	if button == input.ButtonLeft {
		if region, hit := m.buttonRegionAt(w, ptr); hit {
			if w.IsFocusable() {
				m.focusWindow(id)
			}
			return true, m.pressTitleButton(w, region)
		}
	}

	if w.IsFocusable() {
		m.focusWindow(id)
	}

	super := mods&input.ModSuper != 0
	switch {
	case super && button == input.ButtonLeft:
		return true, m.BeginMove(id, ptr)
	case super && button == input.ButtonRight:
		edges := input.ResizeEdges(ptr, w.Geometry, int32(m.theme.BorderWidth)+input.DefaultResizeGrip)
		if edges == geom.EdgeNone {
			edges = quadrantEdges(ptr, w.Geometry)
		}
		return true, m.BeginResize(id, ptr, edges)
	case button == input.ButtonLeft && w.Role == window.RoleFloating:
		if edges := input.ResizeEdges(ptr, w.Geometry, int32(m.theme.BorderWidth)); edges != geom.EdgeNone {
			return true, m.BeginResize(id, ptr, edges)
		}
	}
	return false, nil
}

// buttonRegionAt maps the cursor onto one of the window's title-bar
// button boxes (window-relative boxes shifted to output coordinates).
func (m *Manager) buttonRegionAt(w *window.Window, ptr geom.Point) (window.Button, bool) {
	for i, box := range w.Decor.ButtonBox {
		box.X += w.Geometry.X
		box.Y += w.Geometry.Y
		if box.W > 0 && box.Contains(ptr.X, ptr.Y) {
			return window.Button(i), true
		}
	}
	return 0, false
}

// pressTitleButton executes a title-bar button's action (§4.5:
// "Left-click on a window's title-bar button region triggers
// close/minimize/maximize").
func (m *Manager) pressTitleButton(w *window.Window, region window.Button) error {
	switch region {
	case window.ButtonClose:
		if w.Surface != nil {
			w.Surface.Close()
			return nil
		}
		m.Unmap(w.ID)
		m.Remove(w.ID)
		return nil
	case window.ButtonMinimize:
		return m.Minimize(w.ID)
	case window.ButtonMaximize:
		return m.toggleRoleWindow(w.ID, window.RoleMaximized)
	default:
		return axiomerr.New(axiomerr.KindInvalidArgument, "pressTitleButton", fmt.Errorf("unknown button region %d", region))
	}
}

// quadrantEdges picks the resize edges for an interior Super+right
// grab from the pointer's position relative to the window center, so
// the drag naturally pulls the nearest corner.
func quadrantEdges(ptr geom.Point, r geom.Rect) geom.Edge {
	cx, cy := r.Center()
	var e geom.Edge
	if ptr.X < cx {
		e |= geom.EdgeLeft
	} else {
		e |= geom.EdgeRight
	}
	if ptr.Y < cy {
		e |= geom.EdgeTop
	} else {
		e |= geom.EdgeBottom
	}
	return e
}
