// Package focus implements spec.md §4.3: the focus stack, Alt-Tab
// cycling, urgency tracking and directional focus. It knows window IDs
// and rectangles, never window.Window values themselves, so it has no
// dependency on internal/window or internal/wm.
package focus

import (
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/GeneticxCln/Axiom-sub000/internal/geom"
	"github.com/GeneticxCln/Axiom-sub000/internal/ids"
)

// DefaultUrgencyTimeout is the default auto-clear delay for an urgency
// hint, per original_source/src/focus.h's AXIOM_URGENCY_TIMEOUT_MS.
const DefaultUrgencyTimeout = 5000 * time.Millisecond

// Stack is the most-recently-focused ordering the window manager
// consults for "focus the previous window" and Alt-Tab cycling. It is
// backed by an LRU cache whose eviction IS the spec'd behavior:
// promoting past the capacity drops the least-recent tail entry, so
// the focus history stays bounded at the configured depth.
type Stack struct {
	lru *lru.Cache

	urgent        map[ids.WindowID]time.Time
	urgentTimeout time.Duration
}

// New returns a Stack that can track up to capacity windows.
func New(capacity int) (*Stack, error) {
	c, err := lru.New(capacity)
	if err != nil {
		return nil, err
	}
	return &Stack{
		lru:           c,
		urgent:        make(map[ids.WindowID]time.Time),
		urgentTimeout: DefaultUrgencyTimeout,
	}, nil
}

// Focus moves id to the front of the recency ordering (the operation
// named "focus()" in §4.3).
func (s *Stack) Focus(id ids.WindowID) {
	s.lru.Add(id, struct{}{})
	delete(s.urgent, id)
}

// Remove drops id entirely, e.g. on unmap/destroy.
func (s *Stack) Remove(id ids.WindowID) {
	s.lru.Remove(id)
	delete(s.urgent, id)
}

// Contains reports whether id is currently tracked.
func (s *Stack) Contains(id ids.WindowID) bool {
	return s.lru.Contains(id)
}

// MostRecent returns the most recently focused window, if any.
func (s *Stack) MostRecent() (ids.WindowID, bool) {
	keys := s.lru.Keys() // oldest -> newest
	if len(keys) == 0 {
		return 0, false
	}
	return keys[len(keys)-1].(ids.WindowID), true
}

// Previous returns the second-most-recently-focused window — what
// "focus the previously focused window" (§4.3) targets when the
// current focus is unmapped.
func (s *Stack) Previous() (ids.WindowID, bool) {
	keys := s.lru.Keys()
	if len(keys) < 2 {
		return 0, false
	}
	return keys[len(keys)-2].(ids.WindowID), true
}

// Order returns the full recency ordering, most recent first.
func (s *Stack) Order() []ids.WindowID {
	keys := s.lru.Keys()
	out := make([]ids.WindowID, len(keys))
	for i, k := range keys {
		out[len(keys)-1-i] = k.(ids.WindowID)
	}
	return out
}

// --- Alt-Tab cycling (§4.3: "a snapshot is taken when the gesture
// starts; Tab/Shift+Tab move a cursor through it; releasing the
// modifier commits the cursor's window as focused; Escape cancels,
// leaving focus unchanged") ---

// AltTabSession is the transient cycling state. It never mutates the
// Stack until Commit is called, so Cancel needs no rollback logic.
type AltTabSession struct {
	order  []ids.WindowID
	cursor int
}

// BeginAltTab snapshots the current recency order and starts cycling
// at index 1 (the window behind the currently focused one), matching
// "first Tab press moves to the previously focused window".
func (s *Stack) BeginAltTab() *AltTabSession {
	order := s.Order()
	cursor := 0
	if len(order) > 1 {
		cursor = 1
	}
	return &AltTabSession{order: order, cursor: cursor}
}

// Next advances the cursor forward (wrapping) and returns the window
// now under it.
func (a *AltTabSession) Next() (ids.WindowID, bool) {
	if len(a.order) == 0 {
		return 0, false
	}
	a.cursor = (a.cursor + 1) % len(a.order)
	return a.order[a.cursor], true
}

// Prev moves the cursor backward (wrapping).
func (a *AltTabSession) Prev() (ids.WindowID, bool) {
	if len(a.order) == 0 {
		return 0, false
	}
	a.cursor = (a.cursor - 1 + len(a.order)) % len(a.order)
	return a.order[a.cursor], true
}

// Current returns the window currently under the cursor.
func (a *AltTabSession) Current() (ids.WindowID, bool) {
	if len(a.order) == 0 {
		return 0, false
	}
	return a.order[a.cursor], true
}

// CommitAltTab focuses whatever the session's cursor currently points
// at. Calling it with a nil-cursor (empty) session is a no-op.
func (s *Stack) CommitAltTab(a *AltTabSession) {
	if id, ok := a.Current(); ok {
		s.Focus(id)
	}
}

// --- Urgency (§4.3: "urgent windows are tracked with a timeout after
// which the hint is cleared automatically") ---

// MarkUrgent records id as urgent as of now.
func (s *Stack) MarkUrgent(id ids.WindowID, now time.Time) {
	s.urgent[id] = now
}

// ClearUrgent removes id's urgency hint, e.g. because it was focused.
func (s *Stack) ClearUrgent(id ids.WindowID) {
	delete(s.urgent, id)
}

// IsUrgent reports whether id carries an urgency hint that has not yet
// been cleared (by Focus, ClearUrgent, Remove or ExpireUrgent).
func (s *Stack) IsUrgent(id ids.WindowID) bool {
	_, ok := s.urgent[id]
	return ok
}

// UrgentCount reports how many windows currently carry an urgency
// hint, the number a status bar displays (§4.3).
func (s *Stack) UrgentCount() int { return len(s.urgent) }

// SetUrgentTimeout overrides the default urgency auto-clear delay.
func (s *Stack) SetUrgentTimeout(d time.Duration) {
	s.urgentTimeout = d
}

// ExpireUrgent clears and returns every urgency hint older than the
// configured timeout as of now. The caller (internal/wm's periodic
// tick) is expected to call this regularly.
func (s *Stack) ExpireUrgent(now time.Time) []ids.WindowID {
	var expired []ids.WindowID
	for id, marked := range s.urgent {
		if now.Sub(marked) >= s.urgentTimeout {
			expired = append(expired, id)
			delete(s.urgent, id)
		}
	}
	return expired
}

// --- Directional focus (§4.3: "nearest window in a direction, by
// angle then distance, from the focused window's center") ---

// Direction is a compass direction for directional focus movement.
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Nearest returns whichever candidate is the best match for moving
// focus in dir from the rectangle `from`, defined as: among candidates
// whose center lies within the +/-45 degree cone of dir from from's
// center, the one with the smallest Euclidean distance; ties (§8's
// tie-break convention used throughout this repo) favor the candidate
// nearer the top-left of the workspace.
func Nearest(from geom.Rect, candidates map[ids.WindowID]geom.Rect, dir Direction) (ids.WindowID, bool) {
	fx, fy := from.Center()

	var best ids.WindowID
	var bestDist float64
	found := false

	for id, rect := range candidates {
		cx, cy := rect.Center()
		dx := float64(cx - fx)
		dy := float64(cy - fy)
		if dx == 0 && dy == 0 {
			continue
		}
		if !inCone(dx, dy, dir) {
			continue
		}
		dist := dx*dx + dy*dy
		if !found || dist < bestDist ||
			(dist == bestDist && isTopLeftOf(rect, candidates[best])) {
			best, bestDist, found = id, dist, true
		}
	}
	return best, found
}

// inCone reports whether the vector (dx,dy) falls within the 90-degree
// cone centered on dir (i.e. the dominant axis matches and is at least
// as large in magnitude as the cross axis).
func inCone(dx, dy float64, dir Direction) bool {
	switch dir {
	case DirUp:
		return dy < 0 && -dy >= absf(dx)
	case DirDown:
		return dy > 0 && dy >= absf(dx)
	case DirLeft:
		return dx < 0 && -dx >= absf(dy)
	case DirRight:
		return dx > 0 && dx >= absf(dy)
	default:
		return false
	}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func isTopLeftOf(a, b geom.Rect) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}
