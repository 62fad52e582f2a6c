// Package ids hands out dense integer identifiers for windows and outputs.
// spec.md §9 flags the teacher's pervasive intrusive linked lists and
// back-pointers as needing re-architecture: windows never move in memory
// but must not hold raw pointers to each other, so every cross-reference
// in this repo (focus stack, tag manager, workspace membership) is by ID.
package ids

import "sync/atomic"

// WindowID identifies a window for the lifetime of the process. Zero is
// never issued and is used as an explicit "no window" sentinel, replacing
// the teacher's null-pointer-as-sentinel idiom (§9).
type WindowID uint64

// OutputID identifies an output for the lifetime of the process.
type OutputID uint64

// Generator issues monotonically increasing, never-reused IDs.
type Generator struct {
	next uint64
}

// NewGenerator returns a Generator whose first Next() call returns 1.
func NewGenerator() *Generator {
	return &Generator{next: 0}
}

// Next returns the next WindowID.
func (g *Generator) Next() WindowID {
	return WindowID(atomic.AddUint64(&g.next, 1))
}

// NextOutput returns the next OutputID, drawn from the same counter space
// as WindowID so a log line never confuses the two when printed bare.
func (g *Generator) NextOutput() OutputID {
	return OutputID(atomic.AddUint64(&g.next, 1))
}
