// Package window holds the Window value type: everything spec.md §3 says
// a mapped client toplevel carries. Per §9's redesign flags, a Window
// never holds a pointer back to its manager or to other windows — all
// cross-references are ids.WindowID, and state lives in one flag set
// instead of scattered booleans plus a separate bitfield.
package window

import (
	"github.com/GeneticxCln/Axiom-sub000/internal/backend"
	"github.com/GeneticxCln/Axiom-sub000/internal/geom"
	"github.com/GeneticxCln/Axiom-sub000/internal/ids"
	"github.com/GeneticxCln/Axiom-sub000/internal/scene"
)

// Kind distinguishes the two window payloads the spec recognizes (§3,
// §9: "sum type: a window has a kind-specific payload distinct from the
// common window data").
type Kind uint8

const (
	KindNative Kind = iota
	KindLegacyX
)

// LegacyXData is the additional payload a legacy-X-compat window carries.
// It is nil for KindNative windows.
type LegacyXData struct {
	// XWindowID is the opaque reference into the legacy-compat subsystem
	// (an XWayland surface ID in a real backend).
	XWindowID uint32
	// OverrideRedirect windows (menus, tooltips) bypass the tiling/focus
	// policy entirely but still need to be tracked for destroy events.
	OverrideRedirect bool
}

// Role is the mutually exclusive layout role every mapped window has
// exactly one of (§3 invariants).
type Role uint8

const (
	RoleTiled Role = iota
	RoleFloating
	RoleMaximized
	RoleFullscreen
)

func (r Role) String() string {
	switch r {
	case RoleTiled:
		return "tiled"
	case RoleFloating:
		return "floating"
	case RoleMaximized:
		return "maximized"
	case RoleFullscreen:
		return "fullscreen"
	default:
		return "unknown"
	}
}

// Flags is the single state-flag set §9 asks for, replacing a bitfield
// plus ad hoc booleans. Role is tracked separately since it is an
// exclusive choice, not an independently-settable bit.
type Flags uint16

const (
	FlagMapped Flags = 1 << iota
	FlagConfigured
	FlagFocused
	FlagUrgent
	FlagSticky
	FlagHidden
	FlagBeingMoved
	FlagBeingResized
	FlagAlwaysOnTop
)

func (f Flags) Has(bit Flags) bool { return f&bit != 0 }

// Constraints are the client-declared size/aspect limits, intersected
// with compositor minima before use (§3).
type Constraints struct {
	MinW, MinH uint32
	MaxW, MaxH uint32 // zero means unbounded
	// AspectNum/AspectDen express an optional w:h aspect ratio; AspectDen
	// of zero means "no aspect constraint".
	AspectNum, AspectDen uint32
}

// HasFixedSize reports whether the client's constraints pin both axes to
// a single value, the tile-vs-float policy's first floatable trigger
// (spec.md §4.1).
func (c Constraints) HasFixedSize() bool {
	return c.MaxW != 0 && c.MaxH != 0 && c.MinW == c.MaxW && c.MinH == c.MaxH
}

// Clamp fits w,h within the constraints (and the compositor-wide minimum),
// matching §8's "windows smaller than minimum are enlarged to minimum".
func (c Constraints) Clamp(w, h uint32) (uint32, uint32) {
	minW, minH := c.MinW, c.MinH
	if minW < MinWindowWidth {
		minW = MinWindowWidth
	}
	if minH < MinWindowHeight {
		minH = MinWindowHeight
	}
	if w < minW {
		w = minW
	}
	if h < minH {
		h = minH
	}
	if c.MaxW != 0 && w > c.MaxW {
		w = c.MaxW
	}
	if c.MaxH != 0 && h > c.MaxH {
		h = c.MaxH
	}
	return w, h
}

// Compositor-wide size minima (spec.md §4.1: "min 320x240").
const (
	MinWindowWidth  uint32 = 320
	MinWindowHeight uint32 = 240
)

// Decoration-geometry defaults (spec.md §4.1).
const (
	DefaultTitleBarHeight uint32 = 30
	DefaultBorderWidth    uint32 = 2
)

// Button identifies a title-bar button region (§3 "three button
// regions").
type Button uint8

const (
	ButtonClose Button = iota
	ButtonMinimize
	ButtonMaximize
	buttonCount
)

// Decoration holds the server-side title bar, border and button scene
// nodes plus their hit-test rectangles and hover state.
type Decoration struct {
	TitleBar  scene.Rect
	Borders   [4]scene.Rect // top, right, bottom, left
	Buttons   [buttonCount]scene.Rect
	ButtonBox [buttonCount]geom.Rect
	Hover     [buttonCount]bool
}

// ConfigureLedger tracks the configure/ack serial handshake (§3, §4.1).
type ConfigureLedger struct {
	Pending uint32 // last serial sent to the client
	Acked   uint32 // last serial the client acknowledged
}

// Stale reports whether a commit carrying ackedSerial is behind the
// currently pending configure. Per §7/§9 this is informational only: the
// caller logs it and treats the commit as current regardless.
func (c ConfigureLedger) Stale(ackedSerial uint32) bool {
	return ackedSerial != c.Pending
}

// Window is one mapped (or not-yet-mapped) client toplevel.
type Window struct {
	ID   ids.WindowID
	Kind Kind
	X11  *LegacyXData // non-nil iff Kind == KindLegacyX

	Surface backend.SurfaceConfigurer // non-owning

	Geometry      geom.Rect // current (x,y,w,h)
	SavedGeometry geom.Rect // saved for restore-from-maximize/fullscreen

	Constraints Constraints
	Role        Role
	Flags       Flags
	Tags        uint32 // N-bit set, never zero once assigned (§3)

	// Output is which output this window is placed on. A window's
	// workspace is therefore the pair (Output, Tags): it belongs to
	// whichever of its output's per-tag workspaces its Tags bits select.
	Output ids.OutputID

	Configure ConfigureLedger
	Decor     Decoration

	// ZIndex orders same-layer windows within a workspace (§4.6 "sorted
	// by ... per-window z-index").
	ZIndex int

	// SceneTree is the per-window scene subtree the window manager
	// positions; it owns TitleBar/Borders/Buttons as children.
	SceneTree scene.Tree
}

// Theme holds the decoration sizing/colors internal/wm's scene-building
// code uses to construct a window's title bar, border and button nodes
// (§3 "Decoration handles"). Populated from config.Appearance at
// startup; DefaultTheme covers a Manager built without one.
type Theme struct {
	TitleBarHeight uint32
	BorderWidth    uint32
	Focused        scene.Color
	Unfocused      scene.Color
	TitleBarColor  scene.Color
}

// DefaultTheme mirrors config.Default()'s appearance section.
func DefaultTheme() Theme {
	return Theme{
		TitleBarHeight: DefaultTitleBarHeight,
		BorderWidth:    DefaultBorderWidth,
		Focused:        scene.Color{R: 0x5e, G: 0x81, B: 0xac, A: 0xff},
		Unfocused:      scene.Color{R: 0x3b, G: 0x42, B: 0x52, A: 0xff},
		TitleBarColor:  scene.Color{R: 0x2e, G: 0x34, B: 0x40, A: 0xff},
	}
}

// IsMapped reports the mapped flag.
func (w *Window) IsMapped() bool { return w.Flags.Has(FlagMapped) }

// IsFocusable reports whether the window can receive keyboard focus:
// mapped, not hidden behind an override-redirect/legacy quirk.
func (w *Window) IsFocusable() bool {
	if !w.IsMapped() {
		return false
	}
	if w.Kind == KindLegacyX && w.X11 != nil && w.X11.OverrideRedirect {
		return false
	}
	return true
}

// VisibleUnder reports whether the window should be shown given the
// current tag selection, per §4.4: (tags & selected != 0) || sticky.
func (w *Window) VisibleUnder(selected uint32) bool {
	if w.Flags.Has(FlagSticky) {
		return true
	}
	return w.Tags&selected != 0
}

// DecorationInsets returns the title-bar+border thickness this window's
// decoration currently occupies, zero for a window with no decoration
// (e.g. fullscreen).
func DecorationInsets(titleBarHeight, borderWidth uint32) geom.Insets {
	top := borderWidth
	if titleBarHeight > 0 {
		top += titleBarHeight
	}
	return geom.Insets{Top: top, Right: borderWidth, Bottom: borderWidth, Left: borderWidth}
}

// ContentRect returns the client-area rectangle inside the window's full
// (including-decoration) rectangle, per §4.1's "three nested rectangles".
func ContentRect(full geom.Rect, insets geom.Insets) geom.Rect {
	return full.Inset(insets)
}
