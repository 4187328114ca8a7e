// Package scene holds the simulation plugins and the ordered renderer that
// drives them.
//
// A [Simulation] pairs a physics model (Compute) with a render-command
// list (Layers). [Render] evaluates the model once per frame and walks the
// layers in stage order:
//
//	background → overlays → apparatus → bodies → info
//
// Overlays are gated by their own toggle and suppressed when the result is
// invalid; every other layer still draws, so a short circuit or an object
// at the focal point degrades to a missing overlay rather than a blank
// frame.
package scene

import (
	"sort"

	"github.com/san-kum/scisim/internal/dynamo"
	"github.com/san-kum/scisim/internal/surface"
)

// Stage orders layers within a frame.
type Stage int

const (
	Background Stage = iota
	Overlay
	Apparatus
	Bodies
	Info
)

func (s Stage) String() string {
	switch s {
	case Background:
		return "background"
	case Overlay:
		return "overlay"
	case Apparatus:
		return "apparatus"
	case Bodies:
		return "bodies"
	case Info:
		return "info"
	}
	return "unknown"
}

// Frame is what a layer reads while drawing.
type Frame struct {
	dynamo.Frame
	Result  dynamo.Result
	Palette Palette
}

// Valid reports whether derived quantities may be drawn.
func (f *Frame) Valid() bool { return f.Result != nil && f.Result.Valid() }

// Layer is one entry of a simulation's render-command list.
type Layer struct {
	Name  string
	Stage Stage
	// Toggle names the boolean param that shows the layer; empty means
	// always shown.
	Toggle string
	// Derived layers draw model output and are skipped for invalid results.
	Derived bool
	Draw    func(s surface.Surface, f *Frame)
}

// Visible reports whether the layer draws this frame.
func (l Layer) Visible(f *Frame) bool {
	if l.Toggle != "" && !f.Params.Toggle(l.Toggle) {
		return false
	}
	if l.Derived && !f.Valid() {
		return false
	}
	return l.Draw != nil
}

// Simulation is one interactive screen: a schema, a pure model and a list
// of layers.
type Simulation interface {
	ID() string
	Title() string
	Schema() dynamo.Schema
	// BaseRate is the state advance per frame at speed 1.
	BaseRate() float64
	Compute(p dynamo.Params, anim dynamo.AnimationState) dynamo.Result
	Layers() []Layer
}

// Ordered returns the layers sorted by stage, keeping declaration order
// within a stage.
func Ordered(sim Simulation) []Layer {
	layers := append([]Layer(nil), sim.Layers()...)
	sort.SliceStable(layers, func(i, j int) bool { return layers[i].Stage < layers[j].Stage })
	return layers
}

// Render draws one complete frame and returns the model result. Each layer
// runs between Push and Pop so transforms never leak across layers.
func Render(s surface.Surface, sim Simulation, f dynamo.Frame, pal Palette) dynamo.Result {
	f.Camera.Clamp()
	res := sim.Compute(f.Params, f.Anim)
	fr := &Frame{Frame: f, Result: res, Palette: pal}
	s.Clear(pal.Background)
	for _, l := range Ordered(sim) {
		if !l.Visible(fr) {
			continue
		}
		surface.Mark(s, l.Name)
		s.Push()
		l.Draw(s, fr)
		s.Pop()
	}
	return res
}
