package physics

import (
	"math"

	"github.com/san-kum/scisim/internal/dynamo"
)

// Orbital periods in days.
const (
	EarthYear        = 365.256
	SynodicMonth     = 29.530
	SiderealMonth    = 27.322
	SiderealDay      = 0.99727
	LunarInclination = 5.14 * math.Pi / 180
)

// EarthAngle is Earth's heliocentric longitude after t days.
func EarthAngle(t float64) float64 {
	return dynamo.NormalizeAngle(dynamo.TwoPi * t / EarthYear)
}

// MoonAngle is the Moon's geocentric longitude after t days. At t = 0 the
// Moon sits between Earth and Sun.
func MoonAngle(t float64) float64 {
	return dynamo.NormalizeAngle(math.Pi + dynamo.TwoPi*t/SiderealMonth)
}

// Elongation is the Sun–Earth–Moon angle measured eastward from the Sun as
// seen from Earth, in [0, 2π): 0 at new moon, π at full.
func Elongation(earth, moon float64) float64 {
	sunFromEarth := earth + math.Pi
	return dynamo.NormalizeAngle(moon - sunFromEarth)
}

// PhaseAngle is the Sun–Moon–observer angle θ = π − ψ, folded into [0, π].
func PhaseAngle(elongation float64) float64 {
	return math.Abs(dynamo.AngleDiff(0, math.Pi-elongation))
}

// IlluminatedFraction is f(θ) = (1 + cos θ)/2: 1 when θ = 0 (full), 0 when
// θ = π (new).
func IlluminatedFraction(theta float64) float64 {
	return (1 + math.Cos(theta)) / 2
}

// Phase is one of the eight named lunar phases.
type Phase int

const (
	NewMoon Phase = iota
	WaxingCrescent
	FirstQuarter
	WaxingGibbous
	FullMoon
	WaningGibbous
	LastQuarter
	WaningCrescent
)

var phaseNames = [...]string{
	"New Moon", "Waxing Crescent", "First Quarter", "Waxing Gibbous",
	"Full Moon", "Waning Gibbous", "Last Quarter", "Waning Crescent",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "Unknown"
	}
	return phaseNames[p]
}

// PhaseOf buckets an elongation into eight equal sectors, each centred on
// its principal phase.
func PhaseOf(elongation float64) Phase {
	sector := math.Floor(dynamo.NormalizeAngle(elongation+math.Pi/8) / (math.Pi / 4))
	return Phase(int(sector) % 8)
}

// Waxing reports whether the lit side is growing, i.e. ψ in (0, π).
func Waxing(elongation float64) bool {
	e := dynamo.NormalizeAngle(elongation)
	return e > 0 && e < math.Pi
}

// TerminatorWidth is the signed half-width of the terminator ellipse as a
// fraction of the disc radius: cos ψ. Together with Waxing it is enough to
// draw the lit region of the disc.
func TerminatorWidth(elongation float64) float64 {
	return math.Cos(elongation)
}

// Lunar is the parameter set of the Sun–Earth–Moon model.
type Lunar struct {
	// Day is the simulated time in days.
	Day float64
	// Tilted applies the lunar orbital inclination in the 3D view.
	Tilted bool
}

// MoonPosition3D places the Moon around an Earth at the origin, radius r,
// in the orbital plane y = 0 unless Tilted.
func (l Lunar) MoonPosition3D(r float64) dynamo.Vec3 {
	a := MoonAngle(l.Day) - EarthAngle(l.Day)
	p := dynamo.Vec3{X: r * math.Cos(a), Z: -r * math.Sin(a)}
	if l.Tilted {
		p = p.RotateX(LunarInclination)
	}
	return p
}

// SunDirection3D is the unit vector from Earth toward the Sun in the
// geocentric frame where the Sun sits on −x at t = 0.
func (l Lunar) SunDirection3D() dynamo.Vec3 {
	return dynamo.Vec3{X: -1}
}

// EarthSpin is Earth's rotation angle about its axis.
func (l Lunar) EarthSpin() float64 {
	return dynamo.NormalizeAngle(dynamo.TwoPi * l.Day / SiderealDay)
}

// MoonSpin is the Moon's rotation about its axis. The Moon is tidally
// locked, so body longitude 0 always faces Earth.
func (l Lunar) MoonSpin() float64 {
	return dynamo.NormalizeAngle(MoonAngle(l.Day) - EarthAngle(l.Day) + math.Pi)
}

// LunarResult is one frame of the orbital model.
type LunarResult struct {
	Day        float64
	Earth      float64
	Moon       float64
	Elongation float64
	PhaseAngle float64
	Fraction   float64
	Phase      Phase
	Waxing     bool
	err        error
}

func (r LunarResult) Valid() bool { return r.err == nil }
func (r LunarResult) Err() error  { return r.err }

func (r LunarResult) Quantities() []dynamo.Quantity {
	return []dynamo.Quantity{
		{Name: "day", Label: "Day", Unit: "d", Value: r.Day},
		{Name: "elongation", Label: "Elongation", Unit: "°", Value: r.Elongation * 180 / math.Pi},
		{Name: "illuminated", Label: "Illuminated", Unit: "%", Value: r.Fraction * 100},
		{Name: "phase", Label: "Phase index", Value: float64(r.Phase)},
	}
}

// Evaluate computes the positions, phase and illumination at l.Day.
func (l Lunar) Evaluate() LunarResult {
	res := LunarResult{Day: l.Day}
	res.Earth = EarthAngle(l.Day)
	res.Moon = MoonAngle(l.Day)
	res.Elongation = Elongation(res.Earth, res.Moon)
	res.PhaseAngle = PhaseAngle(res.Elongation)
	res.Fraction = IlluminatedFraction(res.PhaseAngle)
	res.Phase = PhaseOf(res.Elongation)
	res.Waxing = Waxing(res.Elongation)
	if !dynamo.Finite(res.Earth, res.Moon, res.Fraction) {
		res.err = dynamo.ErrNonFinite
	}
	return res
}
