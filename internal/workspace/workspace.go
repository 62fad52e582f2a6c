// Package workspace binds tiling parameters to an (output, tag) pair
// and keeps them persistent across tag switches (§4.4's "workspace" is
// the per-output, per-tag tiling configuration the tag/view operations
// select between), plus output-loss migration (original_source's
// monitor_manager.c: when an output disappears, every workspace bound
// to it moves to the next remaining output rather than being dropped).
package workspace

import (
	"github.com/GeneticxCln/Axiom-sub000/internal/ids"
	"github.com/GeneticxCln/Axiom-sub000/internal/tags"
	"github.com/GeneticxCln/Axiom-sub000/internal/tiling"
)

// Params is the persistent per-workspace tiling configuration a user
// can change live (algorithm, ratio, master count, gap, border) and
// which sticks around when the workspace is hidden and re-shown.
type Params struct {
	Algorithm   tiling.Algorithm
	MasterRatio float64
	MasterCount int
	Gap         uint32
	Border      uint32
}

// DefaultParams matches spec.md §4.2's stated defaults.
func DefaultParams() Params {
	return Params{
		Algorithm:   tiling.MasterStack,
		MasterRatio: 0.6,
		MasterCount: 1,
		Gap:         0,
		Border:      1,
	}
}

// Workspace is one (output, tag) slot's persistent state.
type Workspace struct {
	Output ids.OutputID
	Tag    int // 1..tags.Count
	Params Params

	// PersistentLayout keeps runtime Params changes (algorithm, master
	// ratio, gaps) across tag switches (§4.4). When false, switching
	// away from this workspace discards them: the next switch back
	// starts from the manager defaults again.
	PersistentLayout bool

	cache tiling.Cache
}

// Cache returns the workspace's private layout cache, so repeated
// arrange passes with an unchanged Params/window-count hit it instead
// of recomputing (§4.2).
func (w *Workspace) Cache() *tiling.Cache { return &w.cache }

// key identifies a workspace slot.
type key struct {
	output ids.OutputID
	tag    int
}

// Manager owns every (output, tag) workspace and the global tag
// selection (§9 Open Question 1: selection is process-wide, not
// per-output).
type Manager struct {
	workspaces map[key]*Workspace
	selection  *tags.Selection
	defaults   Params
	persistent bool
}

// NewManager returns an empty Manager with the default tag selected
// and spec.md §4.2's built-in tiling defaults.
func NewManager() *Manager {
	return &Manager{
		workspaces: make(map[key]*Workspace),
		selection:  tags.NewSelection(),
		defaults:   DefaultParams(),
	}
}

// SetDefaults replaces the params newly-created workspaces start
// from, e.g. the loaded config's [tiling] section. It has no effect
// on workspaces created before the call.
func (m *Manager) SetDefaults(p Params) { m.defaults = p }

// Selection returns the process-wide tag selection.
func (m *Manager) Selection() *tags.Selection { return m.selection }

// Get returns the workspace for (output, tag), creating it with the
// manager's default params (see SetDefaults) on first use.
func (m *Manager) Get(output ids.OutputID, tag int) *Workspace {
	k := key{output, tag}
	ws, ok := m.workspaces[k]
	if !ok {
		ws = &Workspace{Output: output, Tag: tag, Params: m.defaults, PersistentLayout: m.persistent}
		m.workspaces[k] = ws
	}
	return ws
}

// SetPersistentDefault controls whether newly created workspaces keep
// their runtime layout changes across switches (config's
// workspaces.persistent_layout).
func (m *Manager) SetPersistentDefault(persistent bool) { m.persistent = persistent }

// OnSwitch is called when the tag selection moves away from (output,
// tag). A workspace without PersistentLayout forgets its runtime
// layout changes at that moment, so the next visit starts from the
// defaults again; one with the flag keeps them, which is the "restored
// on workspace switch" behavior §4.4 names.
func (m *Manager) OnSwitch(output ids.OutputID, tag int) {
	ws, ok := m.workspaces[key{output, tag}]
	if !ok || ws.PersistentLayout {
		return
	}
	ws.Params = m.defaults
	ws.cache.Invalidate()
}

// Migrate moves every workspace bound to `from` onto `to`, used when
// an output is lost (§7 "output loss"). Workspaces already present on
// `to` for a given tag are left as-is; the migrated workspace's window
// membership is the caller's responsibility (internal/wm tracks which
// window belongs to which workspace by ID, not the reverse).
func (m *Manager) Migrate(from, to ids.OutputID) []*Workspace {
	var moved []*Workspace
	for k, ws := range m.workspaces {
		if k.output != from {
			continue
		}
		delete(m.workspaces, k)
		ws.Output = to
		newKey := key{to, k.tag}
		if _, exists := m.workspaces[newKey]; !exists {
			m.workspaces[newKey] = ws
		}
		moved = append(moved, ws)
	}
	return moved
}

// ForOutput returns every workspace currently bound to output, in no
// particular order.
func (m *Manager) ForOutput(output ids.OutputID) []*Workspace {
	var out []*Workspace
	for k, ws := range m.workspaces {
		if k.output == output {
			out = append(out, ws)
		}
	}
	return out
}
