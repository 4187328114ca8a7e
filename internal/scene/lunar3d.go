package scene

import (
	"image/color"
	"math"
	"sort"

	"github.com/san-kum/scisim/internal/dynamo"
	"github.com/san-kum/scisim/internal/physics"
	"github.com/san-kum/scisim/internal/surface"
)

// Lunar3D is the orbit-camera view of Earth, Moon and the sunlight
// direction.
type Lunar3D struct{}

func (Lunar3D) ID() string        { return "lunar-3d" }
func (Lunar3D) Title() string     { return "Earth and Moon in 3D" }
func (Lunar3D) BaseRate() float64 { return 0.05 }

func (Lunar3D) Schema() dynamo.Schema {
	return lunarSchema(
		dynamo.ParamSpec{Name: "tilt", Label: "Orbital tilt", Kind: dynamo.KindToggle},
		dynamo.ParamSpec{Name: "show_terminator", Label: "Terminator", Kind: dynamo.KindToggle, DefaultOn: true},
		dynamo.ParamSpec{Name: "show_axes", Label: "Axes", Kind: dynamo.KindToggle},
	)
}

func (Lunar3D) Compute(p dynamo.Params, anim dynamo.AnimationState) dynamo.Result {
	return physics.Lunar{Day: lunarDay(p, anim), Tilted: p.Toggle("tilt")}.Evaluate()
}

// World sizes of the 3D view.
const (
	globeRadius = 30.0
	moonGlobe   = 9.0
	moonDist    = 110.0
	sunDist     = 420.0
)

// splat is one projected surface sample of a sphere.
type splat struct {
	x, y, depth, size float64
	c                 color.RGBA
}

// sphereSplats samples a sphere on a lat/lon lattice, culls samples facing
// away from the camera and shades the rest by the sun direction. tint
// picks the surface colour of a sample from its body-fixed lat/lon.
func sphereSplats(cam dynamo.Camera, w, h float64, centre dynamo.Vec3, r, spin float64, sun dynamo.Vec3, night color.RGBA, tint func(lat, lon float64) color.RGBA) []splat {
	const rows, cols = 14, 28
	var out []splat
	for i := 0; i < rows; i++ {
		lat := -math.Pi/2 + (float64(i)+0.5)*math.Pi/rows
		for j := 0; j < cols; j++ {
			lon := (float64(j) + 0.5) * dynamo.TwoPi / cols
			n := dynamo.Vec3{X: math.Cos(lat) * math.Cos(lon), Y: math.Sin(lat), Z: math.Cos(lat) * math.Sin(lon)}.RotateY(spin)
			p := centre.Add(n.Scale(r))
			if !cam.Facing(p, n) {
				continue
			}
			x, y, depth, ok := cam.Project(p, w, h)
			if !ok {
				continue
			}
			light := math.Max(0, n.Dot(sun))
			c := surface.Mix(night, tint(lat, lon), 0.15+0.85*light)
			size := r * 0.16 * (h / 2) / (depth * math.Tan(cam.FOV/2))
			out = append(out, splat{x, y, depth, math.Max(1, size), c})
		}
	}
	return out
}

func earthTint(lat, lon float64) color.RGBA {
	if math.Abs(lat) > 1.25 {
		return color.RGBA{235, 240, 250, 255}
	}
	if math.Sin(3*lon)*math.Cos(2*lat)+0.4*math.Sin(5*lat+lon) > 0.35 {
		return color.RGBA{70, 160, 80, 255}
	}
	return color.RGBA{40, 100, 210, 255}
}

func moonTint(lat, lon float64) color.RGBA {
	if math.Sin(4*lon+1)*math.Cos(3*lat) > 0.55 {
		return color.RGBA{150, 150, 150, 255}
	}
	return color.RGBA{215, 213, 205, 255}
}

// projectedPath strokes world points, breaking the line where a point is
// behind the camera.
func projectedPath(s surface.Surface, cam dynamo.Camera, w, h float64, pts []dynamo.Vec3) {
	pen := false
	for _, p := range pts {
		x, y, _, ok := cam.Project(p, w, h)
		switch {
		case !ok:
			pen = false
		case pen:
			s.LineTo(x, y)
		default:
			s.MoveTo(x, y)
			pen = true
		}
	}
	s.Stroke()
}

func (l Lunar3D) model(f *Frame) physics.Lunar {
	return physics.Lunar{Day: lunarDay(f.Params, f.Anim), Tilted: f.Params.Toggle("tilt")}
}

func (l Lunar3D) Layers() []Layer {
	return []Layer{
		{
			Name: "sunlight", Stage: Background,
			Draw: func(s surface.Surface, f *Frame) {
				w, h := s.Size()
				sun := l.model(f).SunDirection3D().Scale(sunDist)
				x, y, _, ok := f.Camera.Project(sun, w, h)
				if !ok {
					return
				}
				s.SetRadialGradient(x, y, 0, 60,
					surface.Stop{Offset: 0, Color: surface.Hex("#fff6c0")},
					surface.Stop{Offset: 1, Color: surface.WithAlpha(surface.Hex("#ffb000"), 0)},
				)
				s.DrawCircle(x, y, 60)
				s.Fill()
			},
		},
		{
			Name: "axes", Stage: Overlay, Toggle: "show_axes",
			Draw: func(s surface.Surface, f *Frame) {
				w, h := s.Size()
				s.SetLineWidth(1)
				for _, ax := range []struct {
					v    dynamo.Vec3
					name string
					c    color.RGBA
				}{
					{dynamo.Vec3{X: 70}, "x", f.Palette.North},
					{dynamo.Vec3{Y: 70}, "y", f.Palette.Success},
					{dynamo.Vec3{Z: 70}, "z", f.Palette.South},
				} {
					s.SetColor(ax.c)
					projectedPath(s, f.Camera, w, h, []dynamo.Vec3{{}, ax.v})
					if x, y, _, ok := f.Camera.Project(ax.v, w, h); ok {
						s.DrawText(ax.name, x+4, y, 0, 0.5)
					}
				}
			},
		},
		{
			Name: "orbit", Stage: Overlay, Toggle: "show_orbit",
			Draw: func(s surface.Surface, f *Frame) {
				w, h := s.Size()
				tilted := f.Params.Toggle("tilt")
				var pts []dynamo.Vec3
				for i := 0; i <= 72; i++ {
					a := dynamo.TwoPi * float64(i) / 72
					p := dynamo.Vec3{X: moonDist * math.Cos(a), Z: -moonDist * math.Sin(a)}
					if tilted {
						p = p.RotateX(physics.LunarInclination)
					}
					pts = append(pts, p)
				}
				s.SetColor(f.Palette.Muted)
				s.SetLineWidth(1)
				s.SetDash(4, 4)
				projectedPath(s, f.Camera, w, h, pts)
				s.SetDash()
			},
		},
		{
			Name: "globes", Stage: Bodies, Derived: true,
			Draw: func(s surface.Surface, f *Frame) {
				w, h := s.Size()
				m := l.model(f)
				sun := m.SunDirection3D()
				night := color.RGBA{10, 12, 24, 255}
				moon := m.MoonPosition3D(moonDist)
				splats := sphereSplats(f.Camera, w, h, dynamo.Vec3{}, globeRadius, m.EarthSpin(), sun, night, earthTint)
				splats = append(splats, sphereSplats(f.Camera, w, h, moon, moonGlobe, m.MoonSpin(), sun, night, moonTint)...)
				sort.Slice(splats, func(i, j int) bool { return splats[i].depth > splats[j].depth })
				for _, p := range splats {
					s.SetColor(p.c)
					s.DrawCircle(p.x, p.y, p.size)
					s.Fill()
				}
			},
		},
		{
			Name: "terminator", Stage: Bodies, Toggle: "show_terminator", Derived: true,
			Draw: func(s surface.Surface, f *Frame) {
				w, h := s.Size()
				eye := f.Camera.Eye()
				s.SetColor(f.Palette.Warning)
				s.SetLineWidth(1.5)
				// The terminator of a body lit along x is its great circle
				// in the plane x = 0. Only the near half is drawn.
				pen := false
				for i := 0; i <= 96; i++ {
					a := dynamo.TwoPi * float64(i) / 96
					n := dynamo.Vec3{Y: math.Sin(a), Z: math.Cos(a)}
					p := n.Scale(globeRadius * 1.01)
					x, y, _, ok := f.Camera.Project(p, w, h)
					if !ok || n.Dot(eye.Sub(p)) <= 0 {
						pen = false
						continue
					}
					if pen {
						s.LineTo(x, y)
					} else {
						s.MoveTo(x, y)
						pen = true
					}
				}
				s.Stroke()
			},
		},
		{
			Name: "labels", Stage: Bodies, Toggle: "show_labels", Derived: true,
			Draw: func(s surface.Surface, f *Frame) {
				w, h := s.Size()
				s.SetColor(f.Palette.Text)
				if x, y, _, ok := f.Camera.Project(dynamo.Vec3{Y: -globeRadius - 8}, w, h); ok {
					s.DrawText("Earth", x, y, 0.5, 0)
				}
				moon := l.model(f).MoonPosition3D(moonDist)
				if x, y, _, ok := f.Camera.Project(moon.Add(dynamo.Vec3{Y: moonGlobe + 6}), w, h); ok {
					s.DrawText("Moon", x, y, 0.5, 1)
				}
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
