package wm

import (
	"github.com/GeneticxCln/Axiom-sub000/internal/axiomerr"
	"github.com/GeneticxCln/Axiom-sub000/internal/geom"
	"github.com/GeneticxCln/Axiom-sub000/internal/ids"
	"github.com/GeneticxCln/Axiom-sub000/internal/input"
	"github.com/GeneticxCln/Axiom-sub000/internal/window"
)

// grabState is the manager's transient move/resize tracking, one at a
// time (§4.5 invariant: passthrough, moving, resizing are mutually
// exclusive). Grounded on the teacher's wm/move.go, which threads
// move/resize state through the WM struct the same way.
type grabState struct {
	grab    *input.Grab
	snapper input.Snapper
}

// BeginMove starts a move grab on id at pointer position ptr (§4.5:
// "a window being interactively moved or resized is implicitly
// floating for the duration of the grab").
func (m *Manager) BeginMove(id ids.WindowID, ptr geom.Point) error {
	w, ok := m.windows[id]
	if !ok {
		return axiomerr.New(axiomerr.KindInvalidArgument, "BeginMove", nil)
	}
	w.Flags |= window.FlagBeingMoved
	m.grab.grab = input.BeginMove(id, ptr, w.Geometry)
	m.grab.snapper.Release()
	return nil
}

// BeginResize starts a resize grab on id against the given edges.
func (m *Manager) BeginResize(id ids.WindowID, ptr geom.Point, edges geom.Edge) error {
	w, ok := m.windows[id]
	if !ok {
		return axiomerr.New(axiomerr.KindInvalidArgument, "BeginResize", nil)
	}
	w.Flags |= window.FlagBeingResized
	m.grab.grab = input.BeginResize(id, ptr, w.Geometry, edges)
	m.grab.snapper.Release()
	return nil
}

// UpdatePointer recomputes the grabbed window's geometry from the
// pointer's new position, applying edge snapping against every other
// visible window's edges plus the output's usable-area edges (§4.5).
func (m *Manager) UpdatePointer(ptr geom.Point) {
	g := m.grab.grab
	if g == nil {
		return
	}
	w, ok := m.windows[g.Window]
	if !ok {
		return
	}
	proposed := g.Update(ptr)
	if g.Mode == input.ModeResizing {
		proposed = clampResize(proposed, w.Constraints, g.Edges)
	}
	xCand, yCand := m.snapCandidates(w.Output, g.Window)
	w.Geometry = m.grab.snapper.Resolve(proposed, xCand, yCand)
	if g.Mode == input.ModeResizing {
		w.Geometry = clampResize(w.Geometry, w.Constraints, g.Edges)
	}
	m.syncSceneGeometry(w)
}

// clampResize applies the window's size constraints (intersected with
// the compositor minima) to an in-progress resize, re-anchoring the
// opposite edge when a left/top-edge drag hits the limit so the
// stationary edge stays put (§8 scenario 5: the window stops at its
// minimum and shrinks no further until the cursor reverses).
func clampResize(r geom.Rect, c window.Constraints, edges geom.Edge) geom.Rect {
	w, h := c.Clamp(r.W, r.H)
	if edges.Has(geom.EdgeLeft) {
		r.X -= int32(w) - int32(r.W)
	}
	if edges.Has(geom.EdgeTop) {
		r.Y -= int32(h) - int32(r.H)
	}
	r.W, r.H = w, h
	return r
}

// snapCandidates builds the snap-target lists from every other mapped,
// visible window on the same output plus the output's usable
// rectangle, per §4.5: "for each screen and every other window,
// compute candidate snap positions (edges and centers)".
func (m *Manager) snapCandidates(outputID ids.OutputID, exclude ids.WindowID) (x, y []input.Candidate) {
	addRect := func(r geom.Rect) {
		cx, cy := r.Center()
		x = append(x,
			input.Candidate{Edge: geom.EdgeLeft, Value: r.X},
			input.Candidate{Edge: geom.EdgeRight, Value: r.Right()},
			input.Candidate{Edge: geom.EdgeNone, Value: cx},
		)
		y = append(y,
			input.Candidate{Edge: geom.EdgeTop, Value: r.Y},
			input.Candidate{Edge: geom.EdgeBottom, Value: r.Bottom()},
			input.Candidate{Edge: geom.EdgeNone, Value: cy},
		)
	}
	if out, ok := m.outputs[outputID]; ok {
		addRect(out.Usable())
	}
	selected := uint32(m.workspaces.Selection().Current())
	for id, w := range m.windows {
		if id == exclude || w.Output != outputID || !w.IsMapped() {
			continue
		}
		if !w.VisibleUnder(selected) || w.Flags.Has(window.FlagHidden) {
			continue
		}
		addRect(w.Geometry)
	}
	return x, y
}

// EndGrab commits the in-progress move/resize, clearing the transient
// flags and pushing a new configure to the client.
func (m *Manager) EndGrab() {
	g := m.grab.grab
	if g == nil {
		return
	}
	if w, ok := m.windows[g.Window]; ok {
		w.Flags &^= window.FlagBeingMoved | window.FlagBeingResized
		m.sendConfigure(w)
	}
	m.grab.grab = nil
	m.grab.snapper.Release()
}

// GrabActive reports whether a move/resize grab is in progress, the
// check the server's Escape handling needs (§4.5 cancellation).
func (m *Manager) GrabActive() bool { return m.grab.grab != nil }

// CancelGrab aborts an in-progress move/resize, restoring the
// window's pre-grab geometry (§4.5: "Escape cancels a move/resize,
// restoring the original geometry").
func (m *Manager) CancelGrab() {
	g := m.grab.grab
	if g == nil {
		return
	}
	if w, ok := m.windows[g.Window]; ok {
		w.Flags &^= window.FlagBeingMoved | window.FlagBeingResized
		w.Geometry = g.StartGeo
		m.syncSceneGeometry(w)
	}
	m.grab.grab = nil
	m.grab.snapper.Release()
}
