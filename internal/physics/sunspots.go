package physics

import (
	"math"

	"github.com/aquilax/go-perlin"

	"github.com/san-kum/scisim/internal/dynamo"
)

const deg = math.Pi / 180

// SnodgrassRate is the sidereal rotation rate of the solar surface at a
// latitude, in radians per day: 14.713 − 2.396 sin²φ − 1.787 sin⁴φ °/day.
func SnodgrassRate(latitude float64) float64 {
	s2 := math.Sin(latitude)
	s2 *= s2
	return (14.713 - 2.396*s2 - 1.787*s2*s2) * deg
}

// Sunspot is a dark region fixed in the rotating photosphere.
type Sunspot struct {
	Latitude  float64 // radians
	Longitude float64 // radians at day 0
	Radius    float64 // angular radius, radians
	Darkness  float64 // 0..1
}

// noise wraps a perlin generator seeded for reproducible spot layouts.
type noise struct {
	p *perlin.Perlin
}

func newNoise(seed int64) noise {
	return noise{perlin.NewPerlin(2, 2, 3, seed)}
}

// unit maps perlin output (roughly [-1, 1]) into [0, 1].
func (n noise) unit(x, y float64) float64 {
	v := (n.p.Noise2D(x, y) + 1) / 2
	return math.Max(0, math.Min(1, v))
}

// GenerateSunspots lays out count spots in the two activity belts between
// 5° and 35° latitude. The same seed always yields the same layout.
func GenerateSunspots(count int, seed int64) []Sunspot {
	if count <= 0 {
		return nil
	}
	n := newNoise(seed)
	const golden = 0.6180339887
	spots := make([]Sunspot, 0, count)
	for i := 0; i < count; i++ {
		x := float64(i)*0.37 + 0.11
		belt := 5 + 30*n.unit(x, 0.5)
		if i%2 == 1 {
			belt = -belt
		}
		lon := math.Mod(float64(i)*golden+n.unit(x, 7.3), 1) * dynamo.TwoPi
		spots = append(spots, Sunspot{
			Latitude:  belt * deg,
			Longitude: lon,
			Radius:    (1.5 + 3*n.unit(x, 13.9)) * deg,
			Darkness:  0.55 + 0.4*n.unit(x, 21.2),
		})
	}
	return spots
}

// Photosphere textures the solar disc with perlin granulation.
type Photosphere struct {
	n noise
}

func NewPhotosphere(seed int64) *Photosphere {
	return &Photosphere{newNoise(seed)}
}

// Granulation is a small brightness perturbation at a disc point (unit
// radius) and time, in roughly [-1, 1].
func (p *Photosphere) Granulation(x, y, t float64) float64 {
	return p.n.p.Noise3D(x*9, y*9, t*0.05)
}

// ProjectSpot maps a heliographic position to the visible disc (unit
// radius, y up). b0 tilts the rotation axis toward the viewer. mu is the
// cosine of the angle between the surface normal and the line of sight;
// points with mu ≤ 0 are on the far side.
func ProjectSpot(latitude, longitude, b0 float64) (p dynamo.Point, mu float64) {
	cl := math.Cos(latitude)
	v := dynamo.Vec3{X: cl * math.Sin(longitude), Y: math.Sin(latitude), Z: cl * math.Cos(longitude)}
	v = v.RotateX(-b0)
	return dynamo.Pt(v.X, v.Y), v.Z
}

// LimbDarkening is the linear law I(μ)/I(1) = 1 − u(1 − μ), zero beyond
// the limb.
func LimbDarkening(mu, u float64) float64 {
	if mu <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, 1-u*(1-mu)))
}

// Sun is the parameter set of the sunspot model.
type Sun struct {
	Day          float64
	Count        int
	Seed         int64
	Tilt         float64 // B0, radians
	Limb         float64 // linear limb-darkening coefficient u
	Differential bool
}

// ProjectedSpot is a sunspot placed on the disc for one frame.
type ProjectedSpot struct {
	Sunspot
	Pos     dynamo.Point
	Mu      float64
	Visible bool
	// Brightness folds limb darkening into the spot's own darkness.
	Brightness float64
}

// SunResult is one frame of the sunspot model.
type SunResult struct {
	Day     float64
	Spots   []ProjectedSpot
	Visible int
	// Period is the equatorial rotation period in days.
	Period float64
	err    error
}

func (r SunResult) Valid() bool { return r.err == nil }
func (r SunResult) Err() error  { return r.err }

func (r SunResult) Quantities() []dynamo.Quantity {
	return []dynamo.Quantity{
		{Name: "day", Label: "Day", Unit: "d", Value: r.Day},
		{Name: "visible", Label: "Visible spots", Value: float64(r.Visible)},
		{Name: "period", Label: "Equatorial period", Unit: "d", Value: r.Period},
	}
}

// Evaluate rotates every spot to s.Day and projects it onto the disc.
func (s Sun) Evaluate() SunResult {
	res := SunResult{Day: s.Day, Period: dynamo.TwoPi / SnodgrassRate(0)}
	for _, spot := range GenerateSunspots(s.Count, s.Seed) {
		rate := SnodgrassRate(0)
		if s.Differential {
			rate = SnodgrassRate(spot.Latitude)
		}
		lon := dynamo.NormalizeAngle(spot.Longitude + rate*s.Day)
		pos, mu := ProjectSpot(spot.Latitude, lon, s.Tilt)
		ps := ProjectedSpot{Sunspot: spot, Pos: pos, Mu: mu, Visible: mu > 0}
		if ps.Visible {
			ps.Brightness = (1 - spot.Darkness) * LimbDarkening(mu, s.Limb)
			res.Visible++
		}
		res.Spots = append(res.Spots, ps)
	}
	if !dynamo.Finite(res.Period) {
		res.err = dynamo.ErrNonFinite
	}
	return res
}
