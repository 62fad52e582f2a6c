// Package wm is the window manager core: it owns every mapped window,
// drives the tile-vs-float policy, arranges workspaces through
// internal/tiling, and delegates focus bookkeeping to internal/focus.
// Grounded on funkycode-marwind's manager.Manager/wm.WM (the event
// loop shape, the add/delete-window lifecycle, findFrame-by-id
// lookups), restructured per §9: one Manager field set replaces the
// teacher's module-level globals, and every cross-reference is an
// ids.WindowID instead of a pointer into another struct.
package wm

import (
	"fmt"
	"sort"
	"time"

	"github.com/GeneticxCln/Axiom-sub000/internal/axiomerr"
	"github.com/GeneticxCln/Axiom-sub000/internal/backend"
	"github.com/GeneticxCln/Axiom-sub000/internal/focus"
	"github.com/GeneticxCln/Axiom-sub000/internal/geom"
	"github.com/GeneticxCln/Axiom-sub000/internal/ids"
	"github.com/GeneticxCln/Axiom-sub000/internal/input"
	"github.com/GeneticxCln/Axiom-sub000/internal/logx"
	"github.com/GeneticxCln/Axiom-sub000/internal/output"
	"github.com/GeneticxCln/Axiom-sub000/internal/tags"
	"github.com/GeneticxCln/Axiom-sub000/internal/tiling"
	"github.com/GeneticxCln/Axiom-sub000/internal/window"
	"github.com/GeneticxCln/Axiom-sub000/internal/workspace"
)

// ConfigureTimeout is how long a mapped window may leave a configure
// unacknowledged before it is treated as misbehaving and excluded from
// tiling (§7 "client misbehavior"). The window stays alive; an ack at
// any later point readmits it.
const ConfigureTimeout = 5 * time.Second

// Manager is the single top-level value every subsystem hangs off of
// (§9: "lift global mutable state into one explicitly-passed value").
type Manager struct {
	log *logx.Logger

	idgen *ids.Generator

	windows map[ids.WindowID]*window.Window
	outputs map[ids.OutputID]*output.Output
	idx     windowIndexes

	workspaces *workspace.Manager
	focusStack *focus.Stack

	keys   *input.Table
	grab   grabState
	altTab altTabState
	layers layerRegistry

	// seat is the external input router keyboard/pointer focus is
	// pushed into; nil in tests that only exercise geometry.
	seat backend.Seat

	// pointerFocus is the window currently under the cursor in
	// passthrough mode, zero when the cursor is over no window.
	pointerFocus ids.WindowID

	// activeOutput is where new windows land and where keyboard focus
	// is currently routed.
	activeOutput ids.OutputID

	// autoFocus controls whether a freshly mapped, focusable window
	// takes keyboard focus immediately (§4.1 map()).
	autoFocus bool

	// theme is the decoration sizing/colors used when building a
	// window's scene subtree (see scene.go); SetTheme overrides the
	// default with config.Appearance's values.
	theme window.Theme

	// sceneLayer records which named output layer (internal/output.Layers)
	// each window's SceneTree currently lives under, so a role change
	// that crosses layers (e.g. entering fullscreen) is detected.
	sceneLayer map[ids.WindowID]string

	// pendingSince records when each window's oldest unacked configure
	// was sent, feeding the ConfigureTimeout misbehavior check.
	pendingSince map[ids.WindowID]time.Time

	// misbehaving windows are kept alive but skipped by Arrange (§7).
	misbehaving map[ids.WindowID]struct{}

	// SpawnFunc, if set, is called for the spawn-command action.
	// Process spawning lives outside this package; cmd/axiomd sets
	// this hook so keybindings actually launch programs.
	SpawnFunc func(cmd string) error

	// ReloadFunc, if set, is called for the reload-config action.
	ReloadFunc func() error
}

// New returns an empty Manager. focusCapacity bounds the focus stack's
// backing LRU cache (internal/focus.New).
func New(log *logx.Logger, focusCapacity int) (*Manager, error) {
	stack, err := focus.New(focusCapacity)
	if err != nil {
		return nil, fmt.Errorf("wm: building focus stack: %w", err)
	}
	return &Manager{
		log:          log,
		idgen:        ids.NewGenerator(),
		windows:      make(map[ids.WindowID]*window.Window),
		outputs:      make(map[ids.OutputID]*output.Output),
		idx:          newWindowIndexes(),
		workspaces:   workspace.NewManager(),
		focusStack:   stack,
		keys:         input.NewTable(),
		autoFocus:    true,
		theme:        window.DefaultTheme(),
		sceneLayer:   make(map[ids.WindowID]string),
		pendingSince: make(map[ids.WindowID]time.Time),
		misbehaving:  make(map[ids.WindowID]struct{}),
	}, nil
}

// SetTheme overrides the decoration theme used for windows placed into
// the scene graph from this point on; already-mapped windows keep
// their existing decoration nodes until their next placeInScene call
// (role toggle or re-map).
func (m *Manager) SetTheme(th window.Theme) { m.theme = th }

// SetSeat attaches the external input router focus changes are pushed
// into.
func (m *Manager) SetSeat(seat backend.Seat) { m.seat = seat }

// SetAutoFocus controls whether mapping a window focuses it (§4.1).
func (m *Manager) SetAutoFocus(enabled bool) { m.autoFocus = enabled }

// SetSnapping overrides the move/resize snap thresholds and magnetism
// strength from config's [snapping] section; zero values keep the
// built-in defaults.
func (m *Manager) SetSnapping(threshold, release int32, magnetism float64) {
	m.grab.snapper.Threshold = threshold
	m.grab.snapper.ReleaseThreshold = release
	m.grab.snapper.Magnetism = magnetism
}

// SetDefaultTilingParams sets the params newly-created workspaces
// start from, e.g. the loaded config's [tiling] section. Workspaces
// already created (via a prior AddOutput/Arrange) keep their existing
// params.
func (m *Manager) SetDefaultTilingParams(p workspace.Params) {
	m.workspaces.SetDefaults(p)
}

// SetWorkspacePersistence controls whether workspaces keep runtime
// layout changes across tag switches (§4.4's persistent_layout flag).
func (m *Manager) SetWorkspacePersistence(persistent bool) {
	m.workspaces.SetPersistentDefault(persistent)
}

// Keys returns the manager's keybinding table, so the server's input
// layer can populate it from config at startup.
func (m *Manager) Keys() *input.Table { return m.keys }

// AddOutput registers a newly connected output (§4.6).
func (m *Manager) AddOutput(out *output.Output) {
	m.outputs[out.ID] = out
	if m.activeOutput == 0 {
		m.activeOutput = out.ID
	}
}

// RemoveOutput unregisters out, migrating every workspace bound to it
// onto another remaining output (§7 "output loss"). If out was the
// last output, a headless fallback output is created so the system
// keeps running with windows intact until a real display returns.
func (m *Manager) RemoveOutput(id ids.OutputID) error {
	if _, ok := m.outputs[id]; !ok {
		return axiomerr.New(axiomerr.KindOutputLoss, "RemoveOutput", fmt.Errorf("unknown output %d", id))
	}
	lost := m.outputs[id]
	delete(m.outputs, id)

	var fallback ids.OutputID
	for oid := range m.outputs {
		fallback = oid
		break
	}
	if fallback == 0 {
		w, h := lost.Handle.Width(), lost.Handle.Height()
		headless := output.New(m.idgen.NextOutput(), backend.NewHeadlessOutput("headless-fallback", w, h))
		m.outputs[headless.ID] = headless
		fallback = headless.ID
		m.log.Warnf("last output %d lost, running headless at %dx%d", id, w, h)
	}

	m.workspaces.Migrate(id, fallback)
	for _, w := range m.windows {
		if w.Output == id {
			w.Output = fallback
			// The old subtree hangs off the lost output's scene graph;
			// rebuild under the new output's.
			m.destroyScene(w)
			if w.IsMapped() {
				m.placeInScene(w)
			}
		}
	}
	if m.activeOutput == id {
		m.activeOutput = fallback
	}
	m.requestArrange(fallback)
	return nil
}

// AddWindow registers a newly created (not yet mapped) window and
// returns the ID it was assigned. A window that arrives with no
// geometry gets the compositor minimum (§4.1 add()).
func (m *Manager) AddWindow(w *window.Window) ids.WindowID {
	id := m.idgen.Next()
	w.ID = id
	if w.Geometry.W == 0 || w.Geometry.H == 0 {
		w.Geometry.W, w.Geometry.H = w.Constraints.Clamp(window.MinWindowWidth, window.MinWindowHeight)
	}
	m.windows[id] = w
	m.idx.all = append(m.idx.all, id)
	m.log.Debugf("window %d added (kind=%v)", id, w.Kind)
	return id
}

// Window looks up a window by ID.
func (m *Manager) Window(id ids.WindowID) (*window.Window, bool) {
	w, ok := m.windows[id]
	return w, ok
}

// Map marks a window mapped, assigns it an output and workspace (the
// active output's currently selected tag) if it has none, applies the
// tile-vs-float policy, computes initial geometry, and — when
// auto-focus is on — focuses it (§4.1 map()).
func (m *Manager) Map(id ids.WindowID) error {
	w, ok := m.windows[id]
	if !ok {
		return axiomerr.New(axiomerr.KindInvalidArgument, "Map", fmt.Errorf("unknown window %d", id))
	}
	if w.IsMapped() {
		return axiomerr.New(axiomerr.KindInvalidArgument, "Map", fmt.Errorf("window %d is already mapped", id))
	}
	w.Flags |= window.FlagMapped
	w.Flags &^= window.FlagHidden

	if w.Output == 0 {
		w.Output = m.activeOutput
	}
	if w.Tags == 0 {
		w.Tags = uint32(m.workspaces.Selection().Current())
	}
	m.applyTileVsFloatPolicy(w)
	m.idx.mapped = appendID(m.idx.mapped, id)
	m.idx.indexRole(id, w.Role)

	if w.Role == window.RoleFloating {
		m.centerOnOutput(w)
		m.sendConfigure(w)
	}
	m.placeInScene(w)

	if m.autoFocus && w.IsFocusable() {
		m.focusWindow(id)
	}
	m.requestArrange(w.Output)
	return nil
}

// centerOnOutput places a floating window in the middle of its
// output's usable area, sized within its constraints (§4.1: floating
// windows are centered on the output).
func (m *Manager) centerOnOutput(w *window.Window) {
	out, ok := m.outputs[w.Output]
	if !ok {
		return
	}
	usable := out.Usable()
	w.Geometry.W, w.Geometry.H = w.Constraints.Clamp(w.Geometry.W, w.Geometry.H)
	w.Geometry.X = usable.X + (int32(usable.W)-int32(w.Geometry.W))/2
	w.Geometry.Y = usable.Y + (int32(usable.H)-int32(w.Geometry.H))/2
}

// applyTileVsFloatPolicy decides RoleTiled vs RoleFloating for a
// freshly mapped window (§4.1): fixed-size windows, and legacy
// override-redirect windows, float; everything else tiles.
func (m *Manager) applyTileVsFloatPolicy(w *window.Window) {
	switch {
	case w.Kind == window.KindLegacyX && w.X11 != nil && w.X11.OverrideRedirect:
		w.Role = window.RoleFloating
	case w.Constraints.HasFixedSize():
		w.Role = window.RoleFloating
	default:
		w.Role = window.RoleTiled
	}
}

// Unmap marks a window unmapped and re-focuses whatever the focus
// stack now reports as most recent (§4.3's "focus the previously
// focused window").
func (m *Manager) Unmap(id ids.WindowID) {
	w, ok := m.windows[id]
	if !ok {
		return
	}
	wasFocused := w.Flags.Has(window.FlagFocused)
	w.Flags &^= window.FlagMapped | window.FlagFocused
	m.idx.dropMapped(id)
	m.focusStack.Remove(id)
	if m.pointerFocus == id {
		m.pointerFocus = 0
	}
	if w.SceneTree != nil {
		w.SceneTree.SetEnabled(false)
	}

	if wasFocused {
		if next, ok := m.focusStack.MostRecent(); ok {
			m.focusWindow(next)
		} else {
			m.clearFocus()
		}
	}
	m.requestArrange(w.Output)
}

// requestArrange schedules a coalesced layout recompute for outputID,
// matching §4.6's "deferred as a timer (1ms) to coalesce multiple
// state changes per frame"; the actual recompute happens the next time
// OnFrame observes the delay has elapsed.
func (m *Manager) requestArrange(outputID ids.OutputID) {
	if out, ok := m.outputs[outputID]; ok {
		out.RequestArrange(time.Now())
	}
}

// refreshVisibility recomputes which windows are visible under the
// current tag selection, immediately enabling/disabling their scene
// subtrees (§4.4 "toggles the corresponding scene node's enabled
// flag") and scheduling a layout recompute on every output so newly
// visible tiled windows get arranged ("Rearranges tiled windows of
// newly visible tags").
func (m *Manager) refreshVisibility() {
	selected := uint32(m.workspaces.Selection().Current())
	for _, w := range m.windows {
		if w.SceneTree != nil {
			visible := w.IsMapped() && w.VisibleUnder(selected) && !w.Flags.Has(window.FlagHidden)
			w.SceneTree.SetEnabled(visible)
		}
	}
	for outputID := range m.outputs {
		m.requestArrange(outputID)
	}
}

// OnFrame runs §4.6's per-output frame steps in order: (1) a pending
// layout recompute whose coalescing delay has elapsed, (2) scene
// commit, (3) frame-time statistics. It also drives the two timers §5
// hangs off the frame cadence: urgency expiry and the
// never-acked-configure misbehavior check.
func (m *Manager) OnFrame(outputID ids.OutputID, now, lastFrame time.Time) error {
	out, ok := m.outputs[outputID]
	if !ok {
		return axiomerr.New(axiomerr.KindOutputLoss, "OnFrame", fmt.Errorf("unknown output %d", outputID))
	}
	var arrangeErr error
	if out.ShouldArrange(now) {
		arrangeErr = m.Arrange(outputID, m.currentTag())
	}
	out.OnFrame(now, lastFrame)

	for _, id := range m.focusStack.ExpireUrgent(now) {
		if w, ok := m.windows[id]; ok {
			w.Flags &^= window.FlagUrgent
		}
		delete(m.idx.urgent, id)
		m.log.Debugf("window %d urgency expired", id)
	}
	m.expireConfigures(now)
	return arrangeErr
}

// expireConfigures moves windows whose oldest configure has gone
// unacknowledged past ConfigureTimeout into the misbehaving set (§7:
// kept alive, excluded from tiling until they ack).
func (m *Manager) expireConfigures(now time.Time) {
	for id, since := range m.pendingSince {
		if now.Sub(since) < ConfigureTimeout {
			continue
		}
		if _, already := m.misbehaving[id]; !already {
			m.log.Warnf("window %d never acked configure sent %v ago, excluding from tiling", id, now.Sub(since).Round(time.Millisecond))
			m.misbehaving[id] = struct{}{}
			if w, ok := m.windows[id]; ok {
				m.requestArrange(w.Output)
			}
		}
	}
}

// Remove destroys bookkeeping for a window entirely (post-unmap
// destroy); idempotent per §4.1.
func (m *Manager) Remove(id ids.WindowID) {
	if w, ok := m.windows[id]; ok {
		m.destroyScene(w)
	}
	delete(m.windows, id)
	m.idx.drop(id)
	m.focusStack.Remove(id)
	delete(m.pendingSince, id)
	delete(m.misbehaving, id)
	if m.pointerFocus == id {
		m.pointerFocus = 0
	}
}

// sendConfigure proposes the window's current geometry to the client
// and records the pending serial plus the send time for the
// misbehavior timeout (§4.1 configure flow).
func (m *Manager) sendConfigure(w *window.Window) {
	if w.Surface == nil {
		return
	}
	serial := w.Surface.Configure(w.Geometry.W, w.Geometry.H)
	w.Configure.Pending = serial
	if _, waiting := m.pendingSince[w.ID]; !waiting {
		m.pendingSince[w.ID] = time.Now()
	}
}

// focusWindow sets the focused flag on id and clears it from every
// other window, keeping "exactly one focused window" true (§3
// invariant), routes keyboard focus to the window's surface, and
// clears its urgency. Focusing a minimized window restores it.
func (m *Manager) focusWindow(id ids.WindowID) {
	target, ok := m.windows[id]
	if !ok {
		return
	}
	if target.Flags.Has(window.FlagHidden) {
		target.Flags &^= window.FlagHidden
		if target.SceneTree != nil {
			target.SceneTree.SetEnabled(true)
		}
		m.requestArrange(target.Output)
	}
	for wid, w := range m.windows {
		if wid == id {
			w.Flags |= window.FlagFocused
			m.setFocusDecoration(w, true)
		} else if w.Flags.Has(window.FlagFocused) {
			w.Flags &^= window.FlagFocused
			m.setFocusDecoration(w, false)
		}
	}
	target.Flags &^= window.FlagUrgent
	delete(m.idx.urgent, id)
	m.focusStack.Focus(id)
	m.focusStack.ClearUrgent(id)
	m.activeOutput = target.Output
	if m.seat != nil {
		m.seat.SetKeyboardFocus(target.Surface)
	}
}

// clearFocus drops keyboard focus entirely (§4.3: "If window is null,
// clear keyboard focus").
func (m *Manager) clearFocus() {
	for _, w := range m.windows {
		if w.Flags.Has(window.FlagFocused) {
			w.Flags &^= window.FlagFocused
			m.setFocusDecoration(w, false)
		}
	}
	if m.seat != nil {
		m.seat.SetKeyboardFocus(nil)
	}
}

// Focus is the public, validated entry point for focusWindow.
func (m *Manager) Focus(id ids.WindowID) error {
	w, ok := m.windows[id]
	if !ok {
		return axiomerr.New(axiomerr.KindInvalidArgument, "Focus", fmt.Errorf("unknown window %d", id))
	}
	if !w.IsFocusable() {
		return axiomerr.New(axiomerr.KindInvalidArgument, "Focus", fmt.Errorf("window %d is not focusable", id))
	}
	m.focusWindow(id)
	return nil
}

// FocusedWindow returns the currently focused window's ID, if any.
func (m *Manager) FocusedWindow() (ids.WindowID, bool) {
	return m.focusStack.MostRecent()
}

// MarkUrgent flags a window urgent (client attention request); a
// focused window never becomes urgent (§4.3: urgency clears on focus).
func (m *Manager) MarkUrgent(id ids.WindowID) error {
	w, ok := m.windows[id]
	if !ok {
		return axiomerr.New(axiomerr.KindInvalidArgument, "MarkUrgent", fmt.Errorf("unknown window %d", id))
	}
	if w.Flags.Has(window.FlagFocused) {
		return nil
	}
	w.Flags |= window.FlagUrgent
	m.idx.urgent[id] = struct{}{}
	m.focusStack.MarkUrgent(id, time.Now())
	return nil
}

// UrgentCount reports how many windows currently request attention,
// exposed for status bars (§4.3).
func (m *Manager) UrgentCount() int { return len(m.idx.urgent) }

// Minimize hides a window without unmapping it: its scene subtree is
// disabled, it leaves the tiling set and the focus stack, and focus
// moves on. A later Focus call (taskbar activation, focus-urgent)
// restores it.
func (m *Manager) Minimize(id ids.WindowID) error {
	w, ok := m.windows[id]
	if !ok {
		return axiomerr.New(axiomerr.KindInvalidArgument, "Minimize", fmt.Errorf("unknown window %d", id))
	}
	w.Flags |= window.FlagHidden
	if w.SceneTree != nil {
		w.SceneTree.SetEnabled(false)
	}
	wasFocused := w.Flags.Has(window.FlagFocused)
	w.Flags &^= window.FlagFocused
	m.focusStack.Remove(id)
	if wasFocused {
		if next, ok := m.focusStack.MostRecent(); ok {
			m.focusWindow(next)
		} else {
			m.clearFocus()
		}
	}
	m.requestArrange(w.Output)
	return nil
}

// MoveFloating repositions a floating window (§4.1 move()): tiled,
// maximized and fullscreen windows are driven by the layout engine and
// reject manual moves. The new position is clamped so at least part of
// the window stays on its output.
func (m *Manager) MoveFloating(id ids.WindowID, x, y int32) error {
	w, ok := m.windows[id]
	if !ok {
		return axiomerr.New(axiomerr.KindInvalidArgument, "MoveFloating", fmt.Errorf("unknown window %d", id))
	}
	if w.Role != window.RoleFloating {
		return axiomerr.New(axiomerr.KindInvalidArgument, "MoveFloating", fmt.Errorf("window %d is %v, not floating", id, w.Role))
	}
	if out, ok := m.outputs[w.Output]; ok {
		usable := out.Usable()
		x = clampInt32(x, usable.X-int32(w.Geometry.W)+1, usable.Right()-1)
		y = clampInt32(y, usable.Y-int32(w.Geometry.H)+1, usable.Bottom()-1)
	}
	w.Geometry.X, w.Geometry.Y = x, y
	m.syncSceneGeometry(w)
	return nil
}

// ResizeFloating resizes a floating window within its constraints and
// its output's bounds (§4.1 resize()).
func (m *Manager) ResizeFloating(id ids.WindowID, width, height uint32) error {
	w, ok := m.windows[id]
	if !ok {
		return axiomerr.New(axiomerr.KindInvalidArgument, "ResizeFloating", fmt.Errorf("unknown window %d", id))
	}
	if w.Role != window.RoleFloating {
		return axiomerr.New(axiomerr.KindInvalidArgument, "ResizeFloating", fmt.Errorf("window %d is %v, not floating", id, w.Role))
	}
	width, height = w.Constraints.Clamp(width, height)
	if out, ok := m.outputs[w.Output]; ok {
		usable := out.Usable()
		if width > usable.W {
			width = usable.W
		}
		if height > usable.H {
			height = usable.H
		}
	}
	w.Geometry.W, w.Geometry.H = width, height
	m.sendConfigure(w)
	m.syncSceneGeometry(w)
	return nil
}

func clampInt32(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Arrange recomputes and applies tiling layout for every tiled,
// visible window on the given (output, tag) workspace, in map order
// (the deterministic ordering the tiled index maintains). Floating,
// fullscreen, maximized, minimized and misbehaving windows keep their
// own geometry and are skipped (§4.1, §7).
func (m *Manager) Arrange(outputID ids.OutputID, tag int) error {
	out, ok := m.outputs[outputID]
	if !ok {
		return axiomerr.New(axiomerr.KindOutputLoss, "Arrange", fmt.Errorf("unknown output %d", outputID))
	}
	ws := m.workspaces.Get(outputID, tag)
	tagMask := uint32(tags.Bit(tag))

	var tiled []*window.Window
	for _, id := range m.idx.tiled {
		w, ok := m.windows[id]
		if !ok || w.Output != outputID || !w.IsMapped() {
			continue
		}
		if !w.VisibleUnder(tagMask) || w.Flags.Has(window.FlagHidden) {
			continue
		}
		if _, bad := m.misbehaving[id]; bad {
			continue
		}
		tiled = append(tiled, w)
	}
	if len(tiled) == 0 {
		return nil
	}

	ctx := tiling.Context{
		Area:        out.Usable(),
		Count:       len(tiled),
		MasterRatio: ws.Params.MasterRatio,
		MasterCount: ws.Params.MasterCount,
		Gap:         ws.Params.Gap,
		Border:      ws.Params.Border,
	}
	results := tiling.ComputeCached(ws.Cache(), ctx, ws.Params.Algorithm)
	for i, w := range tiled {
		if w.Geometry != results[i].Rect {
			w.Geometry = results[i].Rect
			m.sendConfigure(w)
		}
		m.syncSceneGeometry(w)
	}
	m.restackLayer(outputID, "windows")
	return nil
}

// restackLayer re-establishes the draw order of every mapped window
// currently placed in the named layer, lowest ZIndex first, by calling
// scene.Tree.Raise in ascending order (§4.6 "sorted by ... per-window
// z-index"; scene.Tree's doc comment: later Raise calls render above
// earlier ones). ZIndex ties preserve map order.
func (m *Manager) restackLayer(outputID ids.OutputID, layerName string) {
	out, ok := m.outputs[outputID]
	if !ok || out.Scene == nil {
		return
	}
	var ordered []*window.Window
	for _, id := range m.idx.mapped {
		w, ok := m.windows[id]
		if !ok || w.Output != outputID || w.SceneTree == nil || m.sceneLayer[id] != layerName {
			continue
		}
		ordered = append(ordered, w)
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ZIndex < ordered[j].ZIndex })
	tree := out.Scene.Layer(layerName)
	for _, w := range ordered {
		tree.Raise(w.SceneTree)
	}
}

// SetTags applies the spec.md §4.4 "set-tags" operation to a window,
// scheduling a re-arrange of both its old and new workspaces.
func (m *Manager) SetTags(id ids.WindowID, mask tags.Mask) error {
	w, ok := m.windows[id]
	if !ok {
		return axiomerr.New(axiomerr.KindInvalidArgument, "SetTags", fmt.Errorf("unknown window %d", id))
	}
	w.Tags = uint32(tags.SetTags(tags.Mask(w.Tags), mask))
	m.requestArrange(w.Output)
	return nil
}

// ToggleSticky flips FlagSticky on a window (§4.4).
func (m *Manager) ToggleSticky(id ids.WindowID) error {
	w, ok := m.windows[id]
	if !ok {
		return axiomerr.New(axiomerr.KindInvalidArgument, "ToggleSticky", fmt.Errorf("unknown window %d", id))
	}
	w.Flags ^= window.FlagSticky
	return nil
}

// AckConfigure records a client's configure acknowledgement, logging
// (but not rejecting) a stale serial per §7/§9 Open Question 3. An ack
// also readmits a previously misbehaving window to tiling.
func (m *Manager) AckConfigure(id ids.WindowID, serial uint32) {
	w, ok := m.windows[id]
	if !ok {
		return
	}
	if w.Configure.Stale(serial) {
		m.log.Warnf("window %d acked stale configure serial %d (pending %d)", id, serial, w.Configure.Pending)
	}
	w.Configure.Acked = serial
	w.Flags |= window.FlagConfigured
	delete(m.pendingSince, id)
	if _, bad := m.misbehaving[id]; bad {
		delete(m.misbehaving, id)
		m.requestArrange(w.Output)
	}
}

// CommitBuffer records a client's buffer commit. A zero-sized buffer
// is client misbehavior (§7): the window stays alive but leaves the
// tiling set until a real buffer arrives.
func (m *Manager) CommitBuffer(id ids.WindowID, width, height uint32) {
	w, ok := m.windows[id]
	if !ok {
		return
	}
	if width == 0 || height == 0 {
		if _, bad := m.misbehaving[id]; !bad {
			m.log.Warnf("window %d committed a zero-sized buffer, excluding from tiling", id)
			m.misbehaving[id] = struct{}{}
			m.requestArrange(w.Output)
		}
		return
	}
	if _, bad := m.misbehaving[id]; bad {
		delete(m.misbehaving, id)
		m.requestArrange(w.Output)
	}
}

// WindowIDsByCreationOrder returns every tracked window ID oldest
// first. The caller tears down in reverse (§7 termination handling).
func (m *Manager) WindowIDsByCreationOrder() []ids.WindowID {
	return append([]ids.WindowID(nil), m.idx.all...)
}

// VisibleWindowRects returns mapped, currently-visible windows' geometry
// keyed by ID, the input internal/focus.Nearest needs for directional
// focus.
func (m *Manager) VisibleWindowRects(selected uint32) map[ids.WindowID]geom.Rect {
	out := make(map[ids.WindowID]geom.Rect)
	for id, w := range m.windows {
		if w.IsMapped() && w.VisibleUnder(selected) && !w.Flags.Has(window.FlagHidden) {
			out[id] = w.Geometry
		}
	}
	return out
}
