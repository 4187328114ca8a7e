package scene

import (
	"math"

	"github.com/san-kum/scisim/internal/dynamo"
	"github.com/san-kum/scisim/internal/physics"
	"github.com/san-kum/scisim/internal/surface"
)

// Optics is the mirror and lens imaging screen.
type Optics struct{}

func (Optics) ID() string        { return "optics" }
func (Optics) Title() string     { return "Mirrors and Lenses" }
func (Optics) BaseRate() float64 { return 0.02 }

func (Optics) Schema() dynamo.Schema {
	return dynamo.Schema{
		{Name: "element", Label: "Element", Kind: dynamo.KindEnum, Options: physics.Elements, DefaultOption: string(physics.ConvergingLens)},
		{Name: "focal", Label: "Focal length", Unit: "cm", Kind: dynamo.KindFloat, Min: 5, Max: 60, Step: 1, Default: 20},
		{Name: "object_distance", Label: "Object distance", Unit: "cm", Kind: dynamo.KindFloat, Min: 2, Max: 140, Step: 1, Default: 30},
		{Name: "object_height", Label: "Object height", Unit: "cm", Kind: dynamo.KindFloat, Min: 1, Max: 30, Step: 0.5, Default: 8},
		{Name: "show_rays", Label: "Principal rays", Kind: dynamo.KindToggle, DefaultOn: true},
		{Name: "show_focal", Label: "Focal points", Kind: dynamo.KindToggle, DefaultOn: true},
		{Name: "show_image", Label: "Image", Kind: dynamo.KindToggle, DefaultOn: true},
	}
}

// rayLength is how far outgoing rays run past the element, cm.
const rayLength = 170

func (Optics) model(p dynamo.Params) physics.Optics {
	return physics.Optics{
		Element:        physics.Element(p.Enum("element")),
		Focal:          p.Float("focal"),
		ObjectDistance: p.Float("object_distance"),
		ObjectHeight:   p.Float("object_height"),
	}
}

func (o Optics) Compute(p dynamo.Params, _ dynamo.AnimationState) dynamo.Result {
	return o.model(p).Solve(rayLength)
}

// benchView: element at x = 400, axis at y = 330, 2.5 px/cm.
var benchView = View{Origin: dynamo.Pt(400, 330), Scale: 2.5}

func upArrow(s surface.Surface, base, top dynamo.Point) {
	a, b := benchView.Screen(base), benchView.Screen(top)
	Arrow(s, a.X, a.Y, b.X, b.Y, 10)
}

// drawElement draws the lens or mirror symbol at the origin.
func drawElement(s surface.Surface, e physics.Element, pal Palette) {
	const half = 70.0
	x, y := benchView.X(0), benchView.Y(0)
	s.SetLineWidth(3)
	s.SetColor(pal.Secondary)
	switch e {
	case physics.ConvergingLens, physics.DivergingLens:
		s.DrawLine(x, y-half, x, y+half)
		s.Stroke()
		up, down := -math.Pi/2, math.Pi/2
		if e == physics.DivergingLens {
			up, down = down, up
		}
		ArrowHead(s, x, y-half, up, 12)
		ArrowHead(s, x, y+half, down, 12)
		return
	}
	// Mirror: concave edges lean toward the object.
	bend := 0.0
	switch e {
	case physics.ConcaveMirror:
		bend = -0.004
	case physics.ConvexMirror:
		bend = 0.004
	}
	curve := func(dy float64) float64 { return x + bend*dy*dy }
	s.MoveTo(curve(-half), y-half)
	for dy := -half + 5; dy <= half; dy += 5 {
		s.LineTo(curve(dy), y+dy)
	}
	s.Stroke()
	s.SetColor(pal.Muted)
	s.SetLineWidth(1)
	for dy := -half; dy < half; dy += 10 {
		s.DrawLine(curve(dy)+2, y+dy, curve(dy)+10, y+dy+8)
	}
	s.Stroke()
}

func (o Optics) Layers() []Layer {
	return []Layer{
		backgroundLayer(50),
		{
			Name: "axis", Stage: Background,
			Draw: func(s surface.Surface, f *Frame) {
				s.SetColor(f.Palette.Muted)
				s.SetLineWidth(1)
				s.SetDash(10, 5)
				s.DrawLine(0, benchView.Y(0), surface.Width, benchView.Y(0))
				s.Stroke()
			},
		},
		{
			Name: "focal-points", Stage: Overlay, Toggle: "show_focal",
			Draw: func(s surface.Surface, f *Frame) {
				sf := o.model(f.Params).SignedFocal()
				if physics.Element(f.Params.Enum("element")) == physics.PlaneMirror {
					return
				}
				s.SetColor(f.Palette.Accent)
				for _, k := range []float64{-2, -1, 1, 2} {
					x := benchView.X(k * sf)
					s.DrawCircle(x, benchView.Y(0), 4)
					s.Fill()
					label := "F"
					if k == 2 || k == -2 {
						label = "2F"
					}
					s.DrawText(label, x, benchView.Y(0)+10, 0.5, 0)
				}
			},
		},
		{
			Name: "rays", Stage: Overlay, Toggle: "show_rays", Derived: true,
			Draw: func(s surface.Surface, f *Frame) {
				res := f.Result.(physics.OpticsResult)
				s.SetLineWidth(1.5)
				for _, r := range res.Rays {
					a, b := benchView.Screen(r.From), benchView.Screen(r.To)
					if r.Virtual {
						s.SetColor(surface.WithAlpha(f.Palette.Warning, 160))
						s.SetDash(6, 4)
					} else {
						s.SetColor(f.Palette.Warning)
						s.SetDash()
					}
					s.DrawLine(a.X, a.Y, b.X, b.Y)
					s.Stroke()
				}
				s.SetDash()
			},
		},
		{
			Name: "element", Stage: Apparatus,
			Draw: func(s surface.Surface, f *Frame) {
				drawElement(s, physics.Element(f.Params.Enum("element")), f.Palette)
			},
		},
		{
			Name: "object", Stage: Apparatus,
			Draw: func(s surface.Surface, f *Frame) {
				u, h := f.Params.Float("object_distance"), f.Params.Float("object_height")
				s.SetColor(f.Palette.Primary)
				s.SetLineWidth(3)
				upArrow(s, dynamo.Pt(-u, 0), dynamo.Pt(-u, h))
			},
		},
		{
			Name: "image", Stage: Bodies, Toggle: "show_image", Derived: true,
			Draw: func(s surface.Surface, f *Frame) {
				res := f.Result.(physics.OpticsResult)
				s.SetColor(f.Palette.Success)
				s.SetLineWidth(3)
				if !res.Real {
					s.SetDash(5, 4)
				}
				upArrow(s, dynamo.Pt(res.ImageX, 0), dynamo.Pt(res.ImageX, res.ImageH))
				s.SetDash()
				s.DrawText(res.Nature(), benchView.X(res.ImageX), benchView.Y(0)+24, 0.5, 0)
			},
		},
		{
			Name: "photons", Stage: Bodies, Toggle: "show_rays", Derived: true,
			Draw: func(s surface.Surface, f *Frame) {
				res := f.Result.(physics.OpticsResult)
				s.SetColor(f.Palette.Text)
				for _, r := range res.Rays {
					if r.Virtual {
						continue
					}
					path := Path{benchView.Screen(r.From), benchView.Screen(r.To)}
					for _, p := range path.FlowPoints(2, f.Anim.ElapsedTime, 0.6) {
						s.DrawCircle(p.X, p.Y, 2.5)
					}
				}
				s.Fill()
			},
		},
		InfoLayer(o.Title()),
	}
}
