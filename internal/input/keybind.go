// Package input implements spec.md §4.5: the keybinding table, the
// pointer move/resize state machines, and the snapping engine. It
// knows nothing about window.Window or internal/wm's Manager — actions
// are opaque identifiers the caller (internal/wm) dispatches.
package input

import (
	"fmt"
	"time"
)

// Modifier is a bitmask of held modifier keys.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

// MeaningfulMods is the subset of modifier state a binding lookup
// compares against (§4.5: "Meaningful modifiers are Shift, Ctrl, Alt,
// Super"); lock-type modifiers a backend might report are masked off
// by Lookup.
const MeaningfulMods = ModShift | ModControl | ModAlt | ModSuper

// KeySym is a platform keysym value (deliberately opaque here — the
// backend supplies the numbering, e.g. X11 keysyms or a Wayland
// xkbcommon keysym; this package only ever compares values for
// equality).
type KeySym uint32

// Action is an opaque action identifier the keybinding engine
// resolves a (modifier, keysym) pair to; internal/wm owns the actual
// action => behavior dispatch table.
type Action string

// MacroStep is one entry of a macro binding's inline step list: an
// action plus the same integer parameter and command string a
// standalone binding carries.
type MacroStep struct {
	Action  Action
	Param   int
	Command string
}

// Binding is one keybinding-table entry (§3: modifier bitmask, keysym,
// action tag, parameter int, optional command string, optional macro
// step list, enabled flag).
type Binding struct {
	Mods    Modifier
	Key     KeySym
	Action  Action
	Param   int
	Command string
	Macro   []MacroStep
	Enabled bool
}

// MaxBindings is the keybinding table's capacity (§4.5: "no more than
// 128 bindings"); a linear scan over that many entries on every key
// press is cheap enough not to need anything cleverer.
const MaxBindings = 128

// Table is the keybinding table. Lookup is a deliberately simple
// linear scan: with at most MaxBindings entries, a hash map buys
// nothing a human can notice.
type Table struct {
	bindings []Binding
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{bindings: make([]Binding, 0, MaxBindings)}
}

// Bind adds a binding. A binding for the same (mods, key) pair already
// in the table is a collision and is rejected, leaving the table
// unchanged — callers that want replacement semantics Unbind first. A
// macro step list longer than MaxMacroSteps, or a full table, is also
// rejected.
func (t *Table) Bind(b Binding) error {
	if len(b.Macro) > MaxMacroSteps {
		return fmt.Errorf("input: binding macro has %d steps, max is %d", len(b.Macro), MaxMacroSteps)
	}
	for _, existing := range t.bindings {
		if existing.Mods == b.Mods && existing.Key == b.Key {
			return fmt.Errorf("input: binding collision for mods=%#x key=%#x", b.Mods, b.Key)
		}
	}
	if len(t.bindings) >= MaxBindings {
		return fmt.Errorf("input: keybinding table full (%d entries)", MaxBindings)
	}
	t.bindings = append(t.bindings, b)
	return nil
}

// Unbind removes any binding for (mods, key).
func (t *Table) Unbind(mods Modifier, key KeySym) {
	for i, b := range t.bindings {
		if b.Mods == mods && b.Key == key {
			t.bindings = append(t.bindings[:i], t.bindings[i+1:]...)
			return
		}
	}
}

// SetEnabled flips a binding's enabled flag in place, reporting
// whether the binding exists.
func (t *Table) SetEnabled(mods Modifier, key KeySym, enabled bool) bool {
	for i, b := range t.bindings {
		if b.Mods == mods && b.Key == key {
			t.bindings[i].Enabled = enabled
			return true
		}
	}
	return false
}

// Lookup returns the enabled binding for (mods, key), if any. mods is
// masked to MeaningfulMods before comparison and the comparison is
// exact (§4.5). A disabled binding does not match, so the key press
// falls through to the focused surface instead.
func (t *Table) Lookup(mods Modifier, key KeySym) (Binding, bool) {
	mods &= MeaningfulMods
	for _, b := range t.bindings {
		if b.Mods == mods && b.Key == key && b.Enabled {
			return b, true
		}
	}
	return Binding{}, false
}

// Len reports how many bindings are currently registered.
func (t *Table) Len() int { return len(t.bindings) }

// MaxMacroSteps bounds a single macro's action count (§4.5).
const MaxMacroSteps = 16

// MacroStepDelay is the pause between consecutive macro steps, giving
// each action's side effects (e.g. a workspace switch) time to settle
// before the next one dispatches.
const MacroStepDelay = 50 * time.Millisecond

// Macro is a bounded sequence of steps executed back to back.
type Macro struct {
	Steps []MacroStep
}

// NewMacro validates step count and returns a Macro.
func NewMacro(steps []MacroStep) (*Macro, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("input: macro must have at least one step")
	}
	if len(steps) > MaxMacroSteps {
		return nil, fmt.Errorf("input: macro has %d steps, max is %d", len(steps), MaxMacroSteps)
	}
	return &Macro{Steps: append([]MacroStep(nil), steps...)}, nil
}

// Run executes the macro by calling dispatch for each step in order,
// sleeping MacroStepDelay between steps. It stops and returns the
// first error dispatch reports.
func (m *Macro) Run(dispatch func(MacroStep) error) error {
	for i, step := range m.Steps {
		if err := dispatch(step); err != nil {
			return fmt.Errorf("input: macro step %d (%s): %w", i, step.Action, err)
		}
		if i < len(m.Steps)-1 {
			time.Sleep(MacroStepDelay)
		}
	}
	return nil
}
