package scene

import (
	"fmt"
	"image/color"
	"math"

	"github.com/san-kum/scisim/internal/dynamo"
	"github.com/san-kum/scisim/internal/physics"
	"github.com/san-kum/scisim/internal/surface"
)

// Reflection is the single-ray reflection and refraction screen.
type Reflection struct{}

func (Reflection) ID() string        { return "reflection" }
func (Reflection) Title() string     { return "Reflection and Refraction" }
func (Reflection) BaseRate() float64 { return 0.02 }

func (Reflection) Schema() dynamo.Schema {
	return dynamo.Schema{
		{Name: "material", Label: "Surface", Kind: dynamo.KindEnum, Options: physics.Materials, DefaultOption: string(physics.Mirror)},
		{Name: "incidence", Label: "Angle of incidence", Kind: dynamo.KindAngle, Min: 0, Max: deg(85), Step: deg(1), Default: deg(30)},
		{Name: "from_inside", Label: "Ray from inside", Kind: dynamo.KindToggle},
		{Name: "show_normal", Label: "Normal", Kind: dynamo.KindToggle, DefaultOn: true},
		{Name: "show_angles", Label: "Angles", Kind: dynamo.KindToggle, DefaultOn: true},
	}
}

func (Reflection) Compute(p dynamo.Params, _ dynamo.AnimationState) dynamo.Result {
	return physics.Boundary{
		Material:   physics.Material(p.Enum("material")),
		Incidence:  p.Float("incidence"),
		FromInside: p.Toggle("from_inside"),
	}.Solve()
}

// Point of incidence and ray length, surface coordinates.
const (
	hitX   = 400.0
	hitY   = 320.0
	rayLen = 240.0
)

// rayEnd returns the end of a ray leaving the hit point at angle a from
// the normal; up selects the upper half plane.
func rayEnd(a, length float64, up bool) (float64, float64) {
	if up {
		return hitX + length*math.Sin(a), hitY - length*math.Cos(a)
	}
	return hitX + length*math.Sin(a), hitY + length*math.Cos(a)
}

func mediumColor(m physics.Material, pal Palette) color.Color {
	switch m {
	case physics.Glass:
		return surface.WithAlpha(pal.Secondary, 70)
	case physics.Water:
		return surface.WithAlpha(pal.South, 90)
	}
	return pal.Muted
}

func angleLabel(s surface.Surface, name string, a, radius, at float64, pal Palette) {
	s.SetColor(pal.Accent)
	s.DrawText(fmt.Sprintf("%s = %.0f°", name, a*180/math.Pi), hitX+radius*math.Cos(at), hitY+radius*math.Sin(at), 0.5, 0.5)
}

func (r Reflection) Layers() []Layer {
	return []Layer{
		{
			Name: "media", Stage: Background,
			Draw: func(s surface.Surface, f *Frame) {
				mat := physics.Material(f.Params.Enum("material"))
				c := mediumColor(mat, f.Palette)
				y, h := hitY, surface.Height-hitY
				if f.Params.Toggle("from_inside") && (mat == physics.Glass || mat == physics.Water) {
					y, h = 0, hitY
				}
				s.SetColor(c)
				s.DrawRect(0, y, surface.Width, h)
				s.Fill()
				s.SetColor(f.Palette.Wire)
				s.SetLineWidth(2)
				s.DrawLine(0, hitY, surface.Width, hitY)
				s.Stroke()
				s.SetColor(f.Palette.Muted)
				s.DrawText(string(mat), surface.Width-16, hitY+16, 1, 0)
			},
		},
		{
			Name: "normal", Stage: Overlay, Toggle: "show_normal",
			Draw: func(s surface.Surface, f *Frame) {
				s.SetColor(f.Palette.Muted)
				s.SetLineWidth(1)
				s.SetDash(6, 4)
				s.DrawLine(hitX, hitY-200, hitX, hitY+200)
				s.Stroke()
				s.SetDash()
			},
		},
		{
			Name: "angles", Stage: Overlay, Toggle: "show_angles", Derived: true,
			Draw: func(s surface.Surface, f *Frame) {
				res := f.Result.(physics.BoundaryResult)
				up := -math.Pi / 2
				s.SetColor(f.Palette.Accent)
				s.SetLineWidth(1.5)
				s.DrawArc(hitX, hitY, 50, up-res.Incidence, up)
				s.Stroke()
				s.DrawArc(hitX, hitY, 60, up, up+res.Reflection)
				s.Stroke()
				angleLabel(s, "i", res.Incidence, 80, up-res.Incidence/2-0.2, f.Palette)
				angleLabel(s, "r", res.Reflection, 90, up+res.Reflection/2+0.2, f.Palette)
				if res.Transmits {
					down := math.Pi / 2
					s.DrawArc(hitX, hitY, 50, down-res.Refraction, down)
					s.Stroke()
					angleLabel(s, "t", res.Refraction, 80, down-res.Refraction/2, f.Palette)
				}
				if res.TIR {
					s.SetColor(f.Palette.Error)
					s.DrawText("total internal reflection", hitX, hitY+40, 0.5, 0)
				}
			},
		},
		{
			Name: "rays", Stage: Apparatus, Derived: true,
			Draw: func(s surface.Surface, f *Frame) {
				res := f.Result.(physics.BoundaryResult)
				s.SetLineWidth(3)
				s.SetColor(f.Palette.Warning)
				ix, iy := rayEnd(-res.Incidence, rayLen, true)
				Arrow(s, ix, iy, hitX-(hitX-ix)*0.5, hitY-(hitY-iy)*0.5, 12)
				s.DrawLine(ix, iy, hitX, hitY)
				s.Stroke()

				refl := uint8(60 + 195*res.Reflectance)
				if len(res.Scatter) > 0 {
					s.SetLineWidth(1.5)
					s.SetColor(surface.WithAlpha(f.Palette.Warning, 150))
					for _, a := range res.Scatter {
						x, y := rayEnd(a, rayLen*0.6, true)
						Arrow(s, hitX, hitY, x, y, 8)
					}
				} else {
					s.SetColor(surface.WithAlpha(f.Palette.Warning, refl))
					x, y := rayEnd(res.Reflection, rayLen, true)
					Arrow(s, hitX, hitY, x, y, 12)
				}
				if res.Transmits {
					s.SetLineWidth(3)
					s.SetColor(surface.WithAlpha(f.Palette.Warning, 255-refl/2))
					x, y := rayEnd(res.Refraction, rayLen, false)
					Arrow(s, hitX, hitY, x, y, 12)
				}
			},
		},
		{
			Name: "photons", Stage: Bodies, Derived: true,
			Draw: func(s surface.Surface, f *Frame) {
				res := f.Result.(physics.BoundaryResult)
				ix, iy := rayEnd(-res.Incidence, rayLen, true)
				path := Path{dynamo.Pt(ix, iy), dynamo.Pt(hitX, hitY)}
				if res.Transmits {
					x, y := rayEnd(res.Refraction, rayLen, false)
					path = append(path, dynamo.Pt(x, y))
				} else if len(res.Scatter) == 0 {
					x, y := rayEnd(res.Reflection, rayLen, true)
					path = append(path, dynamo.Pt(x, y))
				}
				s.SetColor(f.Palette.Text)
				for _, p := range path.FlowPoints(5, f.Anim.ElapsedTime, 0.4) {
					s.DrawCircle(p.X, p.Y, 3)
				}
				s.Fill()
			},
		},
		InfoLayer(r.Title()),
	}
}
