package wm

import (
	"fmt"

	"github.com/GeneticxCln/Axiom-sub000/internal/axiomerr"
	"github.com/GeneticxCln/Axiom-sub000/internal/geom"
	"github.com/GeneticxCln/Axiom-sub000/internal/ids"
	"github.com/GeneticxCln/Axiom-sub000/internal/layer"
)

// layerRegistry holds every mapped layer-shell surface per output,
// tracked separately from window.Window since a layer surface never
// tiles, floats or takes keyboard focus by default (§4.6).
type layerRegistry struct {
	surfaces map[ids.OutputID][]*layer.Surface
}

// AddLayerSurface registers a newly mapped layer-shell surface, places
// it into its output's matching scene layer tree (background/bottom/
// top/overlay all share their name with internal/output.Layers), and
// re-arranges its output's usable area around it.
func (m *Manager) AddLayerSurface(s *layer.Surface) error {
	if m.layers.surfaces == nil {
		m.layers.surfaces = make(map[ids.OutputID][]*layer.Surface)
	}
	out, ok := m.outputs[s.Output]
	if !ok {
		return axiomerr.New(axiomerr.KindOutputLoss, "AddLayerSurface", fmt.Errorf("unknown output %d", s.Output))
	}
	m.layers.surfaces[s.Output] = append(m.layers.surfaces[s.Output], s)
	if out.Scene != nil && s.Target != nil {
		s.SceneNode = out.Scene.Layer(s.Layer.String()).NewSurface(s.Target)
	}
	return m.ArrangeLayers(s.Output)
}

// RemoveLayerSurface unregisters a layer-shell surface by identity,
// destroys its scene node and re-arranges its output.
func (m *Manager) RemoveLayerSurface(s *layer.Surface) error {
	list := m.layers.surfaces[s.Output]
	for i, candidate := range list {
		if candidate == s {
			m.layers.surfaces[s.Output] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if s.SceneNode != nil {
		s.SceneNode.Destroy()
		s.SceneNode = nil
	}
	return m.ArrangeLayers(s.Output)
}

// ArrangeLayers recomputes out's usable area from scratch (the
// output's full rectangle minus every mapped, non-hidden layer-shell
// surface's exclusive zone, folded in registration order per §4.6:
// "surfaces are processed one at a time, each consuming the previous
// one's output usable area"), then re-arranges the output's tiled
// windows against the new usable rectangle.
func (m *Manager) ArrangeLayers(outputID ids.OutputID) error {
	out, ok := m.outputs[outputID]
	if !ok {
		return axiomerr.New(axiomerr.KindOutputLoss, "ArrangeLayers", fmt.Errorf("unknown output %d", outputID))
	}

	full := geom.Rect{X: 0, Y: 0, W: out.Handle.Width(), H: out.Handle.Height()}
	for _, s := range m.layers.surfaces[outputID] {
		if s.Hidden() {
			if s.SceneNode != nil {
				s.SceneNode.SetEnabled(false)
			}
			continue
		}
		full = layer.Arrange(s, full)
		if s.SceneNode != nil {
			s.SceneNode.SetEnabled(true)
			s.SceneNode.SetPosition(s.Geometry.X, s.Geometry.Y)
		}
		if s.Target != nil {
			s.Target.Configure(s.Geometry.W, s.Geometry.H)
		}
	}
	out.SetUsable(full)

	return m.Arrange(outputID, m.currentTag())
}

// KeyboardGrabLayer returns the topmost mapped layer surface (overlay
// beats top beats bottom beats background) requesting exclusive
// keyboard interactivity, if any. While one exists, every keyboard
// event bypasses the window focus manager and routes to it (§4.7).
func (m *Manager) KeyboardGrabLayer() (*layer.Surface, bool) {
	var best *layer.Surface
	for _, list := range m.layers.surfaces {
		for _, s := range list {
			if s.Keyboard != layer.KeyboardExclusive || s.Hidden() {
				continue
			}
			if best == nil || s.Layer > best.Layer {
				best = s
			}
		}
	}
	return best, best != nil
}
