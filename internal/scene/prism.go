package scene

import (
	"image/color"
	"math"

	"github.com/san-kum/scisim/internal/dynamo"
	"github.com/san-kum/scisim/internal/physics"
	"github.com/san-kum/scisim/internal/surface"
)

// Prism is the dispersion and coloured-object screen.
type Prism struct{}

func (Prism) ID() string        { return "prism" }
func (Prism) Title() string     { return "Prism and Colour" }
func (Prism) BaseRate() float64 { return 0.02 }

func (Prism) Schema() dynamo.Schema {
	return dynamo.Schema{
		{Name: "light", Label: "Light", Kind: dynamo.KindEnum, Options: physics.LightOptions, DefaultOption: string(physics.White)},
		{Name: "surface", Label: "Object colour", Kind: dynamo.KindEnum, Options: physics.SurfaceColors, DefaultOption: "white"},
		{Name: "show_spectrum", Label: "Spectrum", Kind: dynamo.KindToggle, DefaultOn: true},
		{Name: "show_reflection", Label: "Reflection", Kind: dynamo.KindToggle, DefaultOn: true},
	}
}

func (Prism) Compute(p dynamo.Params, _ dynamo.AnimationState) dynamo.Result {
	return physics.DefaultPrism().Disperse(physics.Light(p.Enum("light")), p.Enum("surface"))
}

var (
	prismTop   = dynamo.Pt(330, 220)
	prismLeft  = dynamo.Pt(230, 400)
	prismRight = dynamo.Pt(430, 400)
	beamStart  = dynamo.Pt(40, 330)
	entry      = dynamo.Pt(285, 320)
	exit       = dynamo.Pt(372, 320)
)

const screenX = 700.0

// fanAngle turns a deviation into a surface direction angle below the
// horizontal.
func fanAngle(dev float64) float64 { return dev - deg(30) }

// landing is where a dispersed ray meets the target screen.
func landing(dev float64) dynamo.Point {
	a := fanAngle(dev)
	return dynamo.Pt(screenX, exit.Y+(screenX-exit.X)*math.Tan(a))
}

func lightColor(light string) color.Color {
	if i := physics.SpectralIndex(light); i >= 0 {
		return physics.Spectrum[i].Color
	}
	return color.RGBA{255, 255, 255, 255}
}

func surfaceColor(name string, pal Palette) color.Color {
	switch name {
	case "white":
		return color.RGBA{240, 240, 240, 255}
	case "black":
		return color.RGBA{20, 20, 20, 255}
	}
	if i := physics.SpectralIndex(name); i >= 0 {
		return physics.Spectrum[i].Color
	}
	return pal.Muted
}

func (p Prism) Layers() []Layer {
	return []Layer{
		backgroundLayer(50),
		{
			Name: "spectrum", Stage: Overlay, Toggle: "show_spectrum", Derived: true,
			Draw: func(s surface.Surface, f *Frame) {
				res := f.Result.(physics.DispersionResult)
				s.SetLineWidth(2.5)
				for _, r := range res.Rays {
					end := landing(r.Deviation)
					s.SetColor(r.Band.Color)
					s.DrawLine(exit.X, exit.Y, end.X, end.Y)
					s.Stroke()
				}
			},
		},
		{
			Name: "reflection", Stage: Overlay, Toggle: "show_reflection", Derived: true,
			Draw: func(s surface.Surface, f *Frame) {
				res := f.Result.(physics.DispersionResult)
				s.SetLineWidth(2)
				for _, r := range res.Rays {
					if !r.Reflected {
						continue
					}
					end := landing(r.Deviation)
					s.SetColor(r.Band.Color)
					Arrow(s, end.X, end.Y, end.X-50, end.Y-20, 8)
				}
				s.SetColor(res.Perceived)
				s.DrawRect(screenX-20, 520, 60, 40)
				s.Fill()
				s.SetColor(f.Palette.Text)
				s.DrawText("seen as", screenX+10, 510, 0.5, 1)
			},
		},
		{
			Name: "prism", Stage: Apparatus,
			Draw: func(s surface.Surface, f *Frame) {
				s.SetLinearGradient(prismLeft.X, 0, prismRight.X, 0,
					surface.Stop{Offset: 0, Color: surface.WithAlpha(f.Palette.Secondary, 60)},
					surface.Stop{Offset: 1, Color: surface.WithAlpha(f.Palette.Secondary, 20)},
				)
				s.MoveTo(prismTop.X, prismTop.Y)
				s.LineTo(prismRight.X, prismRight.Y)
				s.LineTo(prismLeft.X, prismLeft.Y)
				s.ClosePath()
				s.Fill()
				s.SetColor(f.Palette.Secondary)
				s.SetLineWidth(2)
				s.MoveTo(prismTop.X, prismTop.Y)
				s.LineTo(prismRight.X, prismRight.Y)
				s.LineTo(prismLeft.X, prismLeft.Y)
				s.ClosePath()
				s.Stroke()

				s.SetColor(lightColor(f.Params.Enum("light")))
				s.SetLineWidth(4)
				s.DrawLine(beamStart.X, beamStart.Y, entry.X, entry.Y)
				s.DrawLine(entry.X, entry.Y, exit.X, exit.Y)
				s.Stroke()

				s.SetColor(surfaceColor(f.Params.Enum("surface"), f.Palette))
				s.DrawRect(screenX, 260, 24, 240)
				s.Fill()
				s.SetColor(f.Palette.Wire)
				s.SetLineWidth(1)
				s.DrawRect(screenX, 260, 24, 240)
				s.Stroke()
			},
		},
		{
			Name: "photons", Stage: Bodies,
			Draw: func(s surface.Surface, f *Frame) {
				s.SetColor(lightColor(f.Params.Enum("light")))
				beam := Path{beamStart, entry, exit}
				for _, pt := range beam.FlowPoints(6, f.Anim.ElapsedTime, 0.5) {
					s.DrawCircle(pt.X, pt.Y, 3)
				}
				s.Fill()
			},
		},
		InfoLayer(p.Title()),
	}
}
