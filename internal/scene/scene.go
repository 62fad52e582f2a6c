// Package scene defines the narrow interface the core uses to drive the
// external scene graph (spec.md §6: "scene-graph node primitives: tree,
// rectangle, surface, position, enable, destroy"). The core is the
// exclusive writer to any node it creates (§5); it never owns the
// rendering pipeline behind Node, which is supplied by the display-server
// library this spec keeps out of scope (§1).
package scene

// Node is anything the core can position, show/hide and destroy. Trees,
// rectangles and surfaces all satisfy it.
type Node interface {
	SetPosition(x, y int32)
	SetEnabled(enabled bool)
	Destroy()
}

// Tree is a grouping node; children stack in the order they are added,
// later additions rendering above earlier ones. This backs a window's
// decoration tree and the overall per-output layer ordering (§4.6).
type Tree interface {
	Node
	NewTree() Tree
	NewRect(w, h uint32, color Color) Rect
	NewSurface(surface Surface) SurfaceNode
	Raise(child Node)
}

// Rect is a solid-color rectangle node, used for borders, title bars and
// button backgrounds.
type Rect interface {
	Node
	SetSize(w, h uint32)
	SetColor(color Color)
}

// SurfaceNode wraps a client surface inside the scene graph.
type SurfaceNode interface {
	Node
}

// Surface is the client-owned drawable a window renders into. The core
// never destroys it; destruction is requested through the protocol layer
// (§3 "Surface reference ... non-owning; client owns lifetime").
type Surface interface {
	ID() uint64
}

// Color is a simple RGBA color used for decoration rectangles.
type Color struct {
	R, G, B, A uint8
}

// Root is the scene graph's top-level entry point, supplied once per
// output by the external backend.
type Root interface {
	Tree
}
