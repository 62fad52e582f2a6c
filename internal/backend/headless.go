package backend

import "github.com/GeneticxCln/Axiom-sub000/internal/scene"

// NewHeadlessOutput returns an OutputHandle with no display behind it.
// It exists for exactly one situation: the last real output
// disconnected and the compositor must keep running so windows have
// somewhere to live until a monitor comes back (§7 "output loss"). Its
// scene nodes record positions and enabled flags but present nothing.
func NewHeadlessOutput(name string, w, h uint32) OutputHandle {
	return &headlessOutput{name: name, w: w, h: h}
}

type headlessOutput struct {
	name string
	w, h uint32
}

func (o *headlessOutput) Name() string          { return o.name }
func (o *headlessOutput) Width() uint32         { return o.w }
func (o *headlessOutput) Height() uint32        { return o.h }
func (o *headlessOutput) SceneRoot() scene.Root { return &headlessTree{} }
func (o *headlessOutput) RequestFrame()         {}
func (o *headlessOutput) Commit()               {}

type headlessNode struct {
	x, y    int32
	enabled bool
}

func (n *headlessNode) SetPosition(x, y int32)  { n.x, n.y = x, y }
func (n *headlessNode) SetEnabled(enabled bool) { n.enabled = enabled }
func (n *headlessNode) Destroy()                {}

type headlessTree struct{ headlessNode }

func (t *headlessTree) NewTree() scene.Tree { return &headlessTree{} }
func (t *headlessTree) NewRect(w, h uint32, c scene.Color) scene.Rect {
	return &headlessRect{w: w, h: h, color: c}
}
func (t *headlessTree) NewSurface(s scene.Surface) scene.SurfaceNode { return &headlessNode{} }
func (t *headlessTree) Raise(child scene.Node)                       {}

type headlessRect struct {
	headlessNode
	w, h  uint32
	color scene.Color
}

func (r *headlessRect) SetSize(w, h uint32)        { r.w, r.h = w, h }
func (r *headlessRect) SetColor(color scene.Color) { r.color = color }
