package wm

import (
	"errors"
	"fmt"

	"github.com/GeneticxCln/Axiom-sub000/internal/axiomerr"
	"github.com/GeneticxCln/Axiom-sub000/internal/focus"
	"github.com/GeneticxCln/Axiom-sub000/internal/geom"
	"github.com/GeneticxCln/Axiom-sub000/internal/ids"
	"github.com/GeneticxCln/Axiom-sub000/internal/input"
	"github.com/GeneticxCln/Axiom-sub000/internal/tags"
	"github.com/GeneticxCln/Axiom-sub000/internal/tiling"
	"github.com/GeneticxCln/Axiom-sub000/internal/window"
)

// The action identifiers spec.md §4.5 names. internal/input only ever
// carries these as an opaque Action string; this package is the one
// place that knows what each one means, grounded on the teacher's
// wm.go initActions()/action.act() dispatch table (one function per
// keybinding, resolved by a linear scan over the bound actions).
const (
	ActionSpawnCommand    input.Action = "spawn-command"
	ActionCloseWindow     input.Action = "close-window"
	ActionKillWindow      input.Action = "kill-window"
	ActionFullscreen      input.Action = "fullscreen"
	ActionMaximize        input.Action = "maximize"
	ActionFloating        input.Action = "floating"
	ActionSticky          input.Action = "sticky"
	ActionLayoutCycle     input.Action = "layout-cycle"
	ActionLayoutSet       input.Action = "layout-set"
	ActionMasterRatioInc  input.Action = "master-ratio-inc"
	ActionMasterRatioDec  input.Action = "master-ratio-dec"
	ActionMasterCountInc  input.Action = "master-count-inc"
	ActionMasterCountDec  input.Action = "master-count-dec"
	ActionGapsInc         input.Action = "gaps-inc"
	ActionGapsDec         input.Action = "gaps-dec"
	ActionTagView         input.Action = "tag-view"
	ActionTagToggleView   input.Action = "tag-toggle-view"
	ActionTagViewAll      input.Action = "tag-view-all"
	ActionTagViewPrevious input.Action = "tag-view-previous"
	ActionWindowTag       input.Action = "window-tag"
	ActionWindowTagToggle input.Action = "window-tag-toggle"
	ActionFocusNext       input.Action = "focus-next"
	ActionFocusPrev       input.Action = "focus-prev"
	ActionFocusUrgent     input.Action = "focus-urgent"
	ActionFocusLeft       input.Action = "focus-left"
	ActionFocusRight      input.Action = "focus-right"
	ActionFocusUp         input.Action = "focus-up"
	ActionFocusDown       input.Action = "focus-down"
	ActionQuit            input.Action = "quit"
	ActionReloadConfig    input.Action = "reload-config"
	ActionMacro           input.Action = "macro"
)

// ErrQuit is returned by the quit action; the event loop treats it as
// the termination signal rather than a failure (§5 cancellation).
var ErrQuit = errors.New("wm: quit requested")

// masterRatioStep and gapStep are the increments the master-ratio and
// gaps inc/dec actions apply per press; spec.md leaves the exact step unspecified,
// so these match original_source's keybindings.c defaults.
const (
	masterRatioStep = 0.05
	gapStep         = 2
)

// altTabState is the live Alt-Tab cycling session, non-nil only
// between a focus-next/focus-prev press and the modifier release that
// commits it. mods remembers which modifiers started the cycle, so
// the server can commit on exactly their release.
type altTabState struct {
	session *focus.AltTabSession
	mods    input.Modifier
}

// DispatchBinding executes a resolved keybinding: macro bindings run
// their step list sequentially, everything else goes straight to
// Dispatch with the binding's parameter and command.
func (m *Manager) DispatchBinding(b input.Binding) error {
	if b.Action == ActionMacro || len(b.Macro) > 0 {
		macro, err := input.NewMacro(b.Macro)
		if err != nil {
			return axiomerr.New(axiomerr.KindInvalidArgument, "DispatchBinding", err)
		}
		return macro.Run(func(step input.MacroStep) error {
			if step.Action == ActionMacro {
				return axiomerr.New(axiomerr.KindInvalidArgument, "DispatchBinding", fmt.Errorf("macro action cannot be nested"))
			}
			return m.dispatchWithMods(step.Action, step.Param, step.Command, b.Mods)
		})
	}
	return m.dispatchWithMods(b.Action, b.Param, b.Command, b.Mods)
}

// Dispatch resolves a bound action to a Manager operation (§4.5: "look
// up in the keybinding table; if found and enabled, execute and
// consume"). arg is the binding's integer parameter, cmd its optional
// command string — both unused by actions that don't need them.
func (m *Manager) Dispatch(action input.Action, arg int, cmd string) error {
	return m.dispatchWithMods(action, arg, cmd, 0)
}

func (m *Manager) dispatchWithMods(action input.Action, arg int, cmd string, mods input.Modifier) error {
	switch action {
	case ActionSpawnCommand:
		return m.dispatchSpawn(cmd)
	case ActionCloseWindow, ActionKillWindow:
		return m.dispatchClose(action)
	case ActionFullscreen:
		return m.toggleRoleFocused(window.RoleFullscreen)
	case ActionMaximize:
		return m.toggleRoleFocused(window.RoleMaximized)
	case ActionFloating:
		return m.toggleRoleFocused(window.RoleFloating)
	case ActionSticky:
		return m.toggleStickyFocused()
	case ActionLayoutCycle:
		return m.layoutCycle(arg)
	case ActionLayoutSet:
		return m.layoutSet(tiling.Algorithm(arg))
	case ActionMasterRatioInc:
		return m.adjustMasterRatio(masterRatioStep)
	case ActionMasterRatioDec:
		return m.adjustMasterRatio(-masterRatioStep)
	case ActionMasterCountInc:
		return m.adjustMasterCount(1)
	case ActionMasterCountDec:
		return m.adjustMasterCount(-1)
	case ActionGapsInc:
		return m.adjustGap(gapStep)
	case ActionGapsDec:
		return m.adjustGap(-gapStep)
	case ActionTagView:
		m.viewChange(func(s *tags.Selection) { s.View(arg) })
		return nil
	case ActionTagToggleView:
		m.viewChange(func(s *tags.Selection) { s.ToggleView(arg) })
		return nil
	case ActionTagViewAll:
		m.viewChange(func(s *tags.Selection) { s.ViewMask(tags.All) })
		return nil
	case ActionTagViewPrevious:
		m.viewChange(func(s *tags.Selection) { s.ViewPrevious() })
		return nil
	case ActionWindowTag:
		err := m.setFocusedTags(tags.Bit(arg))
		m.refreshVisibility()
		return err
	case ActionWindowTagToggle:
		err := m.toggleFocusedTag(arg)
		m.refreshVisibility()
		return err
	case ActionFocusNext:
		return m.altTabAdvance(true, mods)
	case ActionFocusPrev:
		return m.altTabAdvance(false, mods)
	case ActionFocusUrgent:
		return m.focusUrgent()
	case ActionFocusLeft:
		return m.focusDirectional(focus.DirLeft)
	case ActionFocusRight:
		return m.focusDirectional(focus.DirRight)
	case ActionFocusUp:
		return m.focusDirectional(focus.DirUp)
	case ActionFocusDown:
		return m.focusDirectional(focus.DirDown)
	case ActionQuit:
		return ErrQuit
	case ActionReloadConfig:
		if m.ReloadFunc == nil {
			return nil
		}
		return m.ReloadFunc()
	case ActionMacro:
		// A macro binding's steps run through DispatchBinding; a bare
		// macro action with no step list is a binding misconfiguration.
		return axiomerr.New(axiomerr.KindInvalidArgument, "Dispatch", fmt.Errorf("macro action without steps"))
	default:
		return axiomerr.New(axiomerr.KindInvalidArgument, "Dispatch", fmt.Errorf("unknown action %q", action))
	}
}

// viewChange wraps a tag-selection mutation with the bookkeeping every
// view operation shares: workspaces losing visibility forget their
// non-persistent layout changes (§4.4's persistent_layout), and
// window visibility plus arrangement refresh afterwards.
func (m *Manager) viewChange(mutate func(*tags.Selection)) {
	sel := m.workspaces.Selection()
	before := sel.Current()
	mutate(sel)
	after := sel.Current()
	if before == after {
		return
	}
	for t := 1; t <= tags.Count; t++ {
		if before.Has(t) && !after.Has(t) {
			m.workspaces.OnSwitch(m.activeOutput, t)
		}
	}
	m.refreshVisibility()
}

// EndAltTab commits the in-progress Alt-Tab cycle (modifier release),
// a no-op if no cycle is active.
func (m *Manager) EndAltTab() {
	if m.altTab.session == nil {
		return
	}
	m.focusStack.CommitAltTab(m.altTab.session)
	if id, ok := m.altTab.session.Current(); ok {
		m.focusWindow(id)
	}
	m.altTab.session = nil
	m.altTab.mods = 0
}

// MaybeEndAltTab commits the cycle once the modifiers that started it
// are no longer held; heldMods is the modifier state after the
// release being processed.
func (m *Manager) MaybeEndAltTab(heldMods input.Modifier) {
	if m.altTab.session == nil {
		return
	}
	if heldMods&m.altTab.mods != m.altTab.mods {
		m.EndAltTab()
	}
}

// AltTabActive reports whether a cycle is in progress.
func (m *Manager) AltTabActive() bool { return m.altTab.session != nil }

// CancelAltTab discards the in-progress cycle without committing
// (Escape), leaving focus exactly as it was (§4.3).
func (m *Manager) CancelAltTab() {
	m.altTab.session = nil
	m.altTab.mods = 0
}

// altTabAdvance handles one focus-next/focus-prev press. The first
// press of a cycle only snapshots and lands on the cursor's starting
// position (§4.3: "first Tab press moves to the previously focused
// window" — BeginAltTab's cursor already points there); every
// subsequent press while the cycle is active actually steps it.
func (m *Manager) altTabAdvance(forward bool, mods input.Modifier) error {
	if m.altTab.session == nil {
		m.altTab.session = m.focusStack.BeginAltTab()
		m.altTab.mods = mods &^ input.ModShift // Shift distinguishes prev, it is not the holding modifier
		return nil
	}
	if forward {
		m.altTab.session.Next()
	} else {
		m.altTab.session.Prev()
	}
	return nil
}

// focusUrgent focuses the oldest urgent window, in creation order so
// repeated presses walk the urgent set deterministically.
func (m *Manager) focusUrgent() error {
	for _, id := range m.idx.all {
		if _, urgent := m.idx.urgent[id]; urgent {
			return m.Focus(id)
		}
	}
	return nil
}

// focusDirectional moves focus to the nearest visible window in the
// given direction from the focused window (§4.3 directional focus).
func (m *Manager) focusDirectional(dir focus.Direction) error {
	id, ok := m.focusStack.MostRecent()
	if !ok {
		return nil
	}
	w, ok := m.windows[id]
	if !ok {
		return nil
	}
	candidates := m.VisibleWindowRects(uint32(m.workspaces.Selection().Current()))
	delete(candidates, id)
	target, found := focus.Nearest(w.Geometry, candidates, dir)
	if !found {
		return nil
	}
	return m.Focus(target)
}

// dispatchSpawn forwards to the manager's injected SpawnFunc. Process
// spawning itself lives outside this package (cmd/axiomd supplies the
// hook); the action identifier and dispatch path live here, so the
// hook exists for an embedder to wire a real exec.Command call into.
func (m *Manager) dispatchSpawn(cmd string) error {
	if m.SpawnFunc == nil {
		m.log.Debugf("spawn-command %q: no SpawnFunc configured, ignoring", cmd)
		return nil
	}
	return m.SpawnFunc(cmd)
}

func (m *Manager) dispatchClose(action input.Action) error {
	id, ok := m.focusStack.MostRecent()
	if !ok {
		return nil
	}
	w, ok := m.windows[id]
	if !ok {
		return nil
	}
	if action == ActionKillWindow || w.Surface == nil {
		m.Unmap(id)
		m.Remove(id)
		return nil
	}
	w.Surface.Close()
	return nil
}

// toggleRoleFocused flips the focused window between RoleTiled and the
// given role.
func (m *Manager) toggleRoleFocused(role window.Role) error {
	id, ok := m.focusStack.MostRecent()
	if !ok {
		return nil
	}
	return m.toggleRoleWindow(id, role)
}

// toggleRoleWindow flips a window between RoleTiled and the given
// role, restoring its prior geometry when toggled back off (§4.1's
// role invariant: exactly one of tiled/floating/maximized/fullscreen
// at a time).
func (m *Manager) toggleRoleWindow(id ids.WindowID, role window.Role) error {
	w, ok := m.windows[id]
	if !ok {
		return axiomerr.New(axiomerr.KindInvalidArgument, "toggleRoleWindow", fmt.Errorf("unknown window %d", id))
	}
	if w.Role == role {
		w.Role = window.RoleTiled
		w.Geometry = w.SavedGeometry
	} else {
		w.SavedGeometry = w.Geometry
		w.Role = role
		switch role {
		case window.RoleMaximized:
			if out, ok := m.outputs[w.Output]; ok {
				w.Geometry = out.Usable()
			}
		case window.RoleFullscreen:
			if out, ok := m.outputs[w.Output]; ok {
				w.Geometry = geom.Rect{X: 0, Y: 0, W: out.Handle.Width(), H: out.Handle.Height()}
			}
		}
	}
	m.idx.indexRole(id, w.Role)
	m.sendConfigure(w)
	m.placeInScene(w)
	m.requestArrange(w.Output)
	return nil
}

func (m *Manager) toggleStickyFocused() error {
	id, ok := m.focusStack.MostRecent()
	if !ok {
		return nil
	}
	if err := m.ToggleSticky(id); err != nil {
		return err
	}
	m.refreshVisibility()
	return nil
}

func (m *Manager) setFocusedTags(mask tags.Mask) error {
	id, ok := m.focusStack.MostRecent()
	if !ok {
		return nil
	}
	return m.SetTags(id, mask)
}

func (m *Manager) toggleFocusedTag(tag int) error {
	id, ok := m.focusStack.MostRecent()
	if !ok {
		return nil
	}
	w, ok := m.windows[id]
	if !ok {
		return nil
	}
	w.Tags = uint32(tags.ToggleTag(tags.Mask(w.Tags), tag))
	return nil
}

// layoutCycle advances the active workspace's algorithm through the
// four tiling modes in a fixed order; arg is a direction (>=0 forward,
// <0 backward), matching original_source's layout_cycle() semantics.
func (m *Manager) layoutCycle(arg int) error {
	ws := m.workspaces.Get(m.activeOutput, m.currentTag())
	order := []tiling.Algorithm{tiling.MasterStack, tiling.Grid, tiling.Spiral, tiling.BinaryTree}
	idx := 0
	for i, a := range order {
		if a == ws.Params.Algorithm {
			idx = i
			break
		}
	}
	if arg < 0 {
		idx = (idx - 1 + len(order)) % len(order)
	} else {
		idx = (idx + 1) % len(order)
	}
	ws.Params.Algorithm = order[idx]
	ws.Cache().Invalidate()
	m.requestArrange(m.activeOutput)
	return nil
}

func (m *Manager) layoutSet(algo tiling.Algorithm) error {
	ws := m.workspaces.Get(m.activeOutput, m.currentTag())
	ws.Params.Algorithm = algo
	ws.Cache().Invalidate()
	m.requestArrange(m.activeOutput)
	return nil
}

func (m *Manager) adjustMasterRatio(delta float64) error {
	ws := m.workspaces.Get(m.activeOutput, m.currentTag())
	r := ws.Params.MasterRatio + delta
	if r < 0.1 {
		r = 0.1
	}
	if r > 0.9 {
		r = 0.9
	}
	ws.Params.MasterRatio = r
	ws.Cache().Invalidate()
	m.requestArrange(m.activeOutput)
	return nil
}

func (m *Manager) adjustMasterCount(delta int) error {
	ws := m.workspaces.Get(m.activeOutput, m.currentTag())
	c := ws.Params.MasterCount + delta
	if c < 1 {
		c = 1
	}
	if c > 10 {
		c = 10
	}
	ws.Params.MasterCount = c
	ws.Cache().Invalidate()
	m.requestArrange(m.activeOutput)
	return nil
}

func (m *Manager) adjustGap(delta int32) error {
	ws := m.workspaces.Get(m.activeOutput, m.currentTag())
	g := int64(ws.Params.Gap) + int64(delta)
	if g < 0 {
		g = 0
	}
	ws.Params.Gap = uint32(g)
	ws.Cache().Invalidate()
	m.requestArrange(m.activeOutput)
	return nil
}

// CurrentTag returns the lowest-numbered tag in the current selection,
// the workspace the active output's layout actions and a freshly
// mapped window's initial arrange target apply to.
func (m *Manager) CurrentTag() int {
	return m.currentTag()
}

// currentTag is CurrentTag's unexported implementation, used directly
// by this package's own dispatch handlers.
func (m *Manager) currentTag() int {
	sel := m.workspaces.Selection().Current()
	for t := 1; t <= tags.Count; t++ {
		if sel.Has(t) {
			return t
		}
	}
	return 1
}
