package wm

import (
	"github.com/GeneticxCln/Axiom-sub000/internal/ids"
	"github.com/GeneticxCln/Axiom-sub000/internal/window"
)

// windowIndexes is the manager's membership bookkeeping (§4.1): every
// window participates in several indexes at once without duplicating
// identity. The teacher threads intrusive list links through its frame
// structs for the same purpose; here the indexes are ID slices kept in
// insertion order, which doubles as the deterministic ordering the
// tiling engine consumes.
type windowIndexes struct {
	all      []ids.WindowID // creation order
	mapped   []ids.WindowID // map order
	tiled    []ids.WindowID
	floating []ids.WindowID
	urgent   map[ids.WindowID]struct{}
}

func newWindowIndexes() windowIndexes {
	return windowIndexes{urgent: make(map[ids.WindowID]struct{})}
}

func appendID(list []ids.WindowID, id ids.WindowID) []ids.WindowID {
	for _, existing := range list {
		if existing == id {
			return list
		}
	}
	return append(list, id)
}

func removeID(list []ids.WindowID, id ids.WindowID) []ids.WindowID {
	for i, existing := range list {
		if existing == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// indexRole places id in the tiled or floating index matching w.Role,
// removing it from the other. Maximized and fullscreen windows keep
// their underlying membership out of both: they re-enter a role index
// when toggled back.
func (ix *windowIndexes) indexRole(id ids.WindowID, role window.Role) {
	switch role {
	case window.RoleTiled:
		ix.tiled = appendID(ix.tiled, id)
		ix.floating = removeID(ix.floating, id)
	case window.RoleFloating:
		ix.floating = appendID(ix.floating, id)
		ix.tiled = removeID(ix.tiled, id)
	default:
		ix.tiled = removeID(ix.tiled, id)
		ix.floating = removeID(ix.floating, id)
	}
}

// dropMapped removes id from the mapped/tiled/floating indexes but not
// from all: the window still exists, it just is not mapped.
func (ix *windowIndexes) dropMapped(id ids.WindowID) {
	ix.mapped = removeID(ix.mapped, id)
	ix.tiled = removeID(ix.tiled, id)
	ix.floating = removeID(ix.floating, id)
}

// drop removes id from every index.
func (ix *windowIndexes) drop(id ids.WindowID) {
	ix.all = removeID(ix.all, id)
	ix.dropMapped(id)
	delete(ix.urgent, id)
}
