package scene

import (
	"math"

	"github.com/san-kum/scisim/internal/dynamo"
	"github.com/san-kum/scisim/internal/physics"
	"github.com/san-kum/scisim/internal/surface"
)

// Sunspots is the rotating solar disc screen.
type Sunspots struct{}

func (Sunspots) ID() string    { return "sunspots" }
func (Sunspots) Title() string { return "Sunspots and Solar Rotation" }

// BaseRate is in days per frame.
func (Sunspots) BaseRate() float64 { return 0.1 }

func (Sunspots) Schema() dynamo.Schema {
	return dynamo.Schema{
		{Name: "count", Label: "Sunspots", Kind: dynamo.KindFloat, Min: 0, Max: 40, Step: 1, Default: 12},
		{Name: "seed", Label: "Seed", Kind: dynamo.KindFloat, Min: 1, Max: 999, Step: 1, Default: 7},
		{Name: "tilt", Label: "Axis tilt", Kind: dynamo.KindAngle, Min: deg(-7.25), Max: deg(7.25), Step: deg(0.25), Default: 0},
		{Name: "limb", Label: "Limb darkening", Kind: dynamo.KindFloat, Min: 0, Max: 1, Step: 0.05, Default: 0.6},
		{Name: "differential", Label: "Differential rotation", Kind: dynamo.KindToggle, DefaultOn: true},
		{Name: "show_limb", Label: "Limb darkening", Kind: dynamo.KindToggle, DefaultOn: true},
		{Name: "show_granulation", Label: "Granulation", Kind: dynamo.KindToggle},
		{Name: "show_grid", Label: "Heliographic grid", Kind: dynamo.KindToggle},
	}
}

func (Sunspots) model(p dynamo.Params, anim dynamo.AnimationState) physics.Sun {
	limb := p.Float("limb")
	if !p.Toggle("show_limb") {
		limb = 0
	}
	return physics.Sun{
		Day:          anim.ElapsedTime,
		Count:        int(p.Float("count")),
		Seed:         int64(p.Float("seed")),
		Tilt:         p.Float("tilt"),
		Limb:         limb,
		Differential: p.Toggle("differential"),
	}
}

func (s Sunspots) Compute(p dynamo.Params, anim dynamo.AnimationState) dynamo.Result {
	return s.model(p, anim).Evaluate()
}

const discRadius = 220.0

var discView = View{Origin: dynamo.Pt(400, 310), Scale: discRadius}

func (sp Sunspots) Layers() []Layer {
	return []Layer{
		{
			Name: "disc", Stage: Background,
			Draw: func(s surface.Surface, f *Frame) {
				c := discView.Origin
				base := surface.Hex("#ffcf5a")
				sun := sp.model(f.Params, f.Anim)
				const rings = 24
				for i := 0; i < rings; i++ {
					rho := 1 - float64(i)/rings
					mu := math.Sqrt(math.Max(0, 1-rho*rho))
					k := physics.LimbDarkening(math.Max(mu, 0.05), sun.Limb)
					s.SetColor(surface.Scale(base, k))
					s.DrawCircle(c.X, c.Y, rho*discRadius)
					s.Fill()
				}
			},
		},
		{
			Name: "granulation", Stage: Overlay, Toggle: "show_granulation",
			Draw: func(s surface.Surface, f *Frame) {
				ph := physics.NewPhotosphere(int64(f.Params.Float("seed")))
				const step = 0.045
				for y := -1.0; y <= 1; y += step {
					for x := -1.0; x <= 1; x += step {
						if x*x+y*y >= 0.97 {
							continue
						}
						g := ph.Granulation(x, y, f.Anim.ElapsedTime)
						p := discView.Screen(dynamo.Pt(x, y))
						if g > 0 {
							s.SetColor(surface.WithAlpha(surface.Hex("#fff3c0"), uint8(90*g)))
						} else {
							s.SetColor(surface.WithAlpha(surface.Hex("#a05010"), uint8(-90*g)))
						}
						s.DrawCircle(p.X, p.Y, 4)
						s.Fill()
					}
				}
			},
		},
		{
			Name: "grid", Stage: Overlay, Toggle: "show_grid",
			Draw: func(s surface.Surface, f *Frame) {
				b0 := f.Params.Float("tilt")
				spin := physics.SnodgrassRate(0) * f.Anim.ElapsedTime
				s.SetColor(surface.WithAlpha(f.Palette.Muted, 160))
				s.SetLineWidth(1)
				trace := func(at func(t float64) (lat, lon float64)) {
					pen := false
					for i := 0; i <= 64; i++ {
						lat, lon := at(float64(i) / 64)
						p, mu := physics.ProjectSpot(lat, lon, b0)
						q := discView.Screen(p)
						switch {
						case mu <= 0:
							pen = false
						case pen:
							s.LineTo(q.X, q.Y)
						default:
							s.MoveTo(q.X, q.Y)
							pen = true
						}
					}
					s.Stroke()
				}
				for lat := -60.0; lat <= 60; lat += 30 {
					la := deg(lat)
					trace(func(t float64) (float64, float64) { return la, t * dynamo.TwoPi })
				}
				for lon := 0.0; lon < 360; lon += 30 {
					lo := deg(lon) + spin
					trace(func(t float64) (float64, float64) { return (t - 0.5) * math.Pi, lo })
				}
			},
		},
		{
			Name: "spots", Stage: Bodies, Derived: true,
			Draw: func(s surface.Surface, f *Frame) {
				res := f.Result.(physics.SunResult)
				for _, spot := range res.Spots {
					if !spot.Visible {
						continue
					}
					p := discView.Screen(spot.Pos)
					r := math.Sin(spot.Radius) * discRadius
					a := math.Atan2(p.Y-discView.Origin.Y, p.X-discView.Origin.X)
					s.Push()
					s.Translate(p.X, p.Y)
					s.Rotate(a)
					s.SetColor(surface.Scale(surface.Hex("#c07020"), spot.Brightness+0.3))
					s.DrawEllipse(0, 0, r*spot.Mu, r)
					s.Fill()
					s.SetColor(surface.Scale(surface.Hex("#502008"), spot.Brightness+0.2))
					s.DrawEllipse(0, 0, r*0.5*spot.Mu, r*0.5)
					s.Fill()
					s.Pop()
				}
			},
		},
		{
			Name: "limb", Stage: Apparatus,
			Draw: func(s surface.Surface, f *Frame) {
				c := discView.Origin
				s.SetColor(surface.Hex("#ff9a30"))
				s.SetLineWidth(2)
				s.DrawCircle(c.X, c.Y, discRadius)
				s.Stroke()
			},
		},
		InfoLayer(sp.Title()),
	}
}
