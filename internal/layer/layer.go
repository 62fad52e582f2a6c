// Package layer implements spec.md §4.6's layer-shell surfaces:
// background/bottom/top/overlay stacking, anchor+exclusive-zone usable
// area accounting, and the auto-hide timer original_source's
// enhanced_layer_shell.h adds on top of the base protocol.
package layer

import (
	"time"

	"github.com/GeneticxCln/Axiom-sub000/internal/backend"
	"github.com/GeneticxCln/Axiom-sub000/internal/geom"
	"github.com/GeneticxCln/Axiom-sub000/internal/ids"
	"github.com/GeneticxCln/Axiom-sub000/internal/scene"
)

// Layer is the stacking band a layer-shell surface requests.
type Layer uint8

const (
	LayerBackground Layer = iota
	LayerBottom
	LayerTop
	LayerOverlay
)

func (l Layer) String() string {
	switch l {
	case LayerBackground:
		return "background"
	case LayerBottom:
		return "bottom"
	case LayerTop:
		return "top"
	case LayerOverlay:
		return "overlay"
	default:
		return "unknown"
	}
}

// Anchor is a bitmask of which output edges a surface is anchored to.
type Anchor uint8

const (
	AnchorTop Anchor = 1 << iota
	AnchorBottom
	AnchorLeft
	AnchorRight
)

func (a Anchor) Has(bit Anchor) bool { return a&bit != 0 }

// Interactivity is the keyboard-interactivity mode a layer surface
// requests (§3: none, on-demand, exclusive).
type Interactivity uint8

const (
	// KeyboardNone: the surface never takes keyboard focus.
	KeyboardNone Interactivity = iota
	// KeyboardOnDemand: the surface takes focus when clicked, like a
	// window, and releases it the same way.
	KeyboardOnDemand
	// KeyboardExclusive: while mapped, every keyboard event routes to
	// this surface, bypassing the window focus manager entirely (§4.7 —
	// a lock screen or launcher overlay).
	KeyboardExclusive
)

// Surface is one mapped layer-shell client (a panel, dock, wallpaper,
// OSD, or lock-screen surface).
type Surface struct {
	ID     ids.OutputID // reuses the dense-id pool; see ids.Generator
	Output ids.OutputID
	Layer  Layer
	Anchor Anchor

	// RequestedSize is what the client asked for; zero on either axis
	// means "stretch to fill along the anchored edges".
	RequestedSize geom.Size

	// ExclusiveZone is how much space (in pixels, from the anchored
	// edge inward) this surface reserves from the output's usable area.
	// Negative means "do not reserve any space" (§4.6).
	ExclusiveZone int32

	// Keyboard is this surface's keyboard-interactivity request; see
	// Interactivity. KeyboardExclusive surfaces override window focus
	// routing entirely while mapped.
	Keyboard Interactivity

	// Margins push the surface away from the edges it is anchored to,
	// on top of whatever the exclusive-zone accounting reserves.
	Margins geom.Insets

	Geometry geom.Rect

	Target backend.SurfaceConfigurer

	// SceneNode is the scene-graph node wrapping Target, created once
	// this surface is registered with internal/wm and placed under its
	// output's Layer.String() tree; nil until then.
	SceneNode scene.SurfaceNode

	// AutoHide, when non-zero, is how long after Hide the surface waits
	// before ExpireAutoHide reports true.
	AutoHide time.Duration
	hideAt   time.Time
	hidden   bool
}

// Arrange computes geometry for surface within the output's current
// usable rectangle and returns the updated usable rectangle after this
// surface's exclusive zone is subtracted (§4.6: surfaces are processed
// one at a time, each consuming the previous one's output usable area).
func Arrange(s *Surface, usable geom.Rect) geom.Rect {
	rect := placement(s, usable)
	s.Geometry = rect

	if s.ExclusiveZone <= 0 {
		return usable
	}
	return subtractExclusive(usable, s.Anchor, uint32(s.ExclusiveZone))
}

func placement(s *Surface, usable geom.Rect) geom.Rect {
	usable = usable.Inset(s.Margins)
	w, h := s.RequestedSize.W, s.RequestedSize.H
	x, y := usable.X, usable.Y

	switch {
	case s.Anchor.Has(AnchorLeft) && s.Anchor.Has(AnchorRight):
		w = usable.W
		x = usable.X
	case s.Anchor.Has(AnchorRight):
		x = usable.Right() - int32(w)
	case s.Anchor.Has(AnchorLeft):
		x = usable.X
	default:
		x = usable.X + int32(usable.W/2) - int32(w/2)
	}

	switch {
	case s.Anchor.Has(AnchorTop) && s.Anchor.Has(AnchorBottom):
		h = usable.H
		y = usable.Y
	case s.Anchor.Has(AnchorBottom):
		y = usable.Bottom() - int32(h)
	case s.Anchor.Has(AnchorTop):
		y = usable.Y
	default:
		y = usable.Y + int32(usable.H/2) - int32(h/2)
	}

	return geom.Rect{X: x, Y: y, W: w, H: h}
}

func subtractExclusive(usable geom.Rect, anchor Anchor, zone uint32) geom.Rect {
	var in geom.Insets
	switch {
	case anchor.Has(AnchorTop) && !anchor.Has(AnchorBottom):
		in.Top = zone
	case anchor.Has(AnchorBottom) && !anchor.Has(AnchorTop):
		in.Bottom = zone
	case anchor.Has(AnchorLeft) && !anchor.Has(AnchorRight):
		in.Left = zone
	case anchor.Has(AnchorRight) && !anchor.Has(AnchorLeft):
		in.Right = zone
	default:
		return usable
	}
	return usable.Subtract(in)
}

// Hide marks the surface hidden as of now; it stays hidden until Show
// is called. ExpireAutoHide reports once AutoHide has elapsed since
// this call; it does not re-show the surface.
func (s *Surface) Hide(now time.Time) {
	s.hidden = true
	s.hideAt = now
}

// Show clears the hidden state, e.g. on pointer entry or keyboard focus.
func (s *Surface) Show() {
	s.hidden = false
}

// Hidden reports the current auto-hide state.
func (s *Surface) Hidden() bool { return s.hidden }

// ExpireAutoHide reports whether this surface's auto-hide window has
// elapsed as of now (the surface should be fully hidden/minimized
// rather than just logically marked so).
func (s *Surface) ExpireAutoHide(now time.Time) bool {
	if !s.hidden || s.AutoHide <= 0 {
		return false
	}
	return now.Sub(s.hideAt) >= s.AutoHide
}
