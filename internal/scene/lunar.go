package scene

import (
	"image/color"
	"math"

	"github.com/san-kum/scisim/internal/dynamo"
	"github.com/san-kum/scisim/internal/physics"
	"github.com/san-kum/scisim/internal/surface"
)

// LunarPhases is the top-down Sun–Earth–Moon screen.
type LunarPhases struct{}

func (LunarPhases) ID() string    { return "lunar-phases" }
func (LunarPhases) Title() string { return "Phases of the Moon" }

// BaseRate is in days per frame.
func (LunarPhases) BaseRate() float64 { return 0.05 }

func lunarSchema(extra ...dynamo.ParamSpec) dynamo.Schema {
	s := dynamo.Schema{
		{Name: "start_day", Label: "Start day", Unit: "d", Kind: dynamo.KindFloat, Min: 0, Max: 365, Step: 1, Default: 0},
		{Name: "show_orbit", Label: "Orbits", Kind: dynamo.KindToggle, DefaultOn: true},
		{Name: "show_labels", Label: "Labels", Kind: dynamo.KindToggle, DefaultOn: true},
		{Name: "show_inset", Label: "Phase as seen from Earth", Kind: dynamo.KindToggle, DefaultOn: true},
	}
	return append(s, extra...)
}

func (LunarPhases) Schema() dynamo.Schema { return lunarSchema() }

// lunarDay is the simulated day of a frame.
func lunarDay(p dynamo.Params, anim dynamo.AnimationState) float64 {
	return p.Float("start_day") + anim.ElapsedTime
}

func (LunarPhases) Compute(p dynamo.Params, anim dynamo.AnimationState) dynamo.Result {
	return physics.Lunar{Day: lunarDay(p, anim)}.Evaluate()
}

const (
	sunRadius   = 38.0
	earthOrbit  = 225.0
	moonOrbit   = 52.0
	earthRadius = 14.0
	moonRadius  = 7.0
)

var orbitCentre = dynamo.Pt(400, 300)

// onScreen places a body on an orbit of radius r around c; angles are
// counter-clockwise with y up.
func onScreen(c dynamo.Point, r, a float64) dynamo.Point {
	return dynamo.Pt(c.X+r*math.Cos(a), c.Y-r*math.Sin(a))
}

// litBody draws a disc whose half facing toward sun is lit.
func litBody(s surface.Surface, at, sun dynamo.Point, r float64, day, night color.Color) {
	s.SetColor(night)
	s.DrawCircle(at.X, at.Y, r)
	s.Fill()
	a := math.Atan2(sun.Y-at.Y, sun.X-at.X)
	s.SetColor(day)
	s.MoveTo(at.X+r*math.Cos(a-math.Pi/2), at.Y+r*math.Sin(a-math.Pi/2))
	s.DrawArc(at.X, at.Y, r, a-math.Pi/2, a+math.Pi/2)
	s.ClosePath()
	s.Fill()
}

// drawPhaseInset draws the Moon as seen from Earth: a lit half disc on the
// waxing or waning side, corrected by the terminator ellipse.
func drawPhaseInset(s surface.Surface, f *Frame, res physics.LunarResult) {
	const cx, cy, r = 700.0, 500.0, 50.0
	lit := surface.Hex("#f4f1e0")
	dark := surface.Hex("#2a2a33")
	s.SetColor(f.Palette.Grid)
	s.DrawRect(cx-r-14, cy-r-14, 2*r+28, 2*r+44)
	s.Fill()
	s.SetColor(dark)
	s.DrawCircle(cx, cy, r)
	s.Fill()

	// Northern-hemisphere view: waxing light is on the right.
	start := -math.Pi / 2
	if !res.Waxing {
		start = math.Pi / 2
	}
	s.SetColor(lit)
	s.MoveTo(cx, cy-r)
	s.DrawArc(cx, cy, r, start, start+math.Pi)
	s.ClosePath()
	s.Fill()

	w := physics.TerminatorWidth(res.Elongation)
	if w > 0 {
		s.SetColor(dark)
	} else {
		s.SetColor(lit)
	}
	if rx := math.Abs(w) * r; rx > 0.5 {
		s.DrawEllipse(cx, cy, rx, r)
		s.Fill()
	}
	s.SetColor(f.Palette.Text)
	s.DrawText(res.Phase.String(), cx, cy+r+8, 0.5, 0)
}

func (l LunarPhases) Layers() []Layer {
	return []Layer{
		{
			Name: "stars", Stage: Background,
			Draw: func(s surface.Surface, f *Frame) {
				s.SetColor(f.Palette.Muted)
				for i := 0; i < 60; i++ {
					x := math.Mod(float64(i)*137.5, surface.Width)
					y := math.Mod(float64(i)*89.3+float64(i*i)*0.7, surface.Height)
					s.DrawCircle(x, y, 1)
				}
				s.Fill()
			},
		},
		{
			Name: "orbits", Stage: Overlay, Toggle: "show_orbit", Derived: true,
			Draw: func(s surface.Surface, f *Frame) {
				res := f.Result.(physics.LunarResult)
				earth := onScreen(orbitCentre, earthOrbit, res.Earth)
				s.SetColor(f.Palette.Grid)
				s.SetLineWidth(1)
				s.SetDash(4, 4)
				s.DrawCircle(orbitCentre.X, orbitCentre.Y, earthOrbit)
				s.Stroke()
				s.DrawCircle(earth.X, earth.Y, moonOrbit)
				s.Stroke()
				s.SetDash()
			},
		},
		{
			Name: "sun", Stage: Apparatus,
			Draw: func(s surface.Surface, f *Frame) {
				c := orbitCentre
				s.SetRadialGradient(c.X, c.Y, 0, sunRadius*1.8,
					surface.Stop{Offset: 0, Color: surface.Hex("#fff6c0")},
					surface.Stop{Offset: 0.5, Color: surface.Hex("#ffc030")},
					surface.Stop{Offset: 1, Color: surface.WithAlpha(surface.Hex("#ff8000"), 0)},
				)
				s.DrawCircle(c.X, c.Y, sunRadius*1.8)
				s.Fill()
			},
		},
		{
			Name: "bodies", Stage: Bodies, Derived: true,
			Draw: func(s surface.Surface, f *Frame) {
				res := f.Result.(physics.LunarResult)
				earth := onScreen(orbitCentre, earthOrbit, res.Earth)
				moon := onScreen(earth, moonOrbit, res.Moon)
				litBody(s, earth, orbitCentre, earthRadius, surface.Hex("#3a8ee6"), surface.Hex("#0d2340"))
				litBody(s, moon, orbitCentre, moonRadius, surface.Hex("#e8e6dc"), surface.Hex("#3a3a40"))
			},
		},
		{
			Name: "labels", Stage: Bodies, Toggle: "show_labels", Derived: true,
			Draw: func(s surface.Surface, f *Frame) {
				res := f.Result.(physics.LunarResult)
				earth := onScreen(orbitCentre, earthOrbit, res.Earth)
				moon := onScreen(earth, moonOrbit, res.Moon)
				s.SetColor(f.Palette.Text)
				s.DrawText("Sun", orbitCentre.X, orbitCentre.Y+sunRadius*1.8+4, 0.5, 0)
				s.DrawText("Earth", earth.X, earth.Y+earthRadius+4, 0.5, 0)
				s.DrawText("Moon", moon.X, moon.Y-moonRadius-4, 0.5, 1)
			},
		},
		{
			Name: "inset", Stage: Info, Toggle: "show_inset", Derived: true,
			Draw: func(s surface.Surface, f *Frame) {
				drawPhaseInset(s, f, f.Result.(physics.LunarResult))
			},
		},
		InfoLayer(l.Title()),
	}
}
