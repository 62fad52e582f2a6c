// Package backend declares the interfaces the core consumes from the
// display-server library spec.md §1 places out of scope: socket
// transport, surface-protocol bookkeeping, and raw backend/output access.
// Nothing in this repo implements these against real wlroots/Wayland wire
// bytes — the interfaces exist so the core can be exercised against a
// test double, exactly as §6 describes the boundary.
package backend

import "github.com/GeneticxCln/Axiom-sub000/internal/scene"

// OutputHandle is one physical or virtual display surface the core can
// position windows on and request frames from.
type OutputHandle interface {
	Name() string
	Width() uint32
	Height() uint32
	// SceneRoot returns the per-output scene graph root this output's
	// window/layer geometry should be pushed into.
	SceneRoot() scene.Root
	// RequestFrame arms one vsync-driven frame callback; when it fires,
	// the server's frame event handling calls wm.Manager.OnFrame (§4.6).
	RequestFrame()
	// Commit presents the current scene-graph state on this output
	// (§4.6 frame step 2). The scene is maintained incrementally, so
	// this is a presentation step, not a re-traversal.
	Commit()
}

// DeviceType classifies an attached input device (§5 "on attach, wrap
// in the appropriate device state").
type DeviceType uint8

const (
	DeviceKeyboard DeviceType = iota
	DevicePointer
	DeviceTouch
)

func (t DeviceType) String() string {
	switch t {
	case DeviceKeyboard:
		return "keyboard"
	case DevicePointer:
		return "pointer"
	case DeviceTouch:
		return "touch"
	default:
		return "unknown"
	}
}

// Device is one dynamically attached input device. The core registers
// it on attach and must unregister it before the backend frees it on
// detach (§5 "shared resources").
type Device interface {
	Name() string
	Type() DeviceType
}

// SurfaceConfigurer is the subset of a client toplevel surface the core
// needs to drive the configure/ack protocol (§4.1's "configure flow").
type SurfaceConfigurer interface {
	scene.Surface
	// Configure proposes a new size/state to the client and returns the
	// serial the client is expected to ack.
	Configure(w, h uint32) (serial uint32)
	// Close requests graceful client shutdown (§7 termination handling).
	Close()
}

// Seat is the external input-routing collaborator: it owns the actual
// keyboard/pointer device state and is told who has focus. A nil
// target clears the corresponding focus entirely.
type Seat interface {
	SetKeyboardFocus(target scene.Surface)
	// SetPointerFocus routes pointer events to target; sx, sy are the
	// cursor's surface-local coordinates at the moment of entry.
	SetPointerFocus(target scene.Surface, sx, sy int32)
	SetCursorPosition(x, y int32)
}
