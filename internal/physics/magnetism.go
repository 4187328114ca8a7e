package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/scisim/internal/dynamo"
)

// Apparatus is the source of a magnetic field.
type Apparatus string

const (
	BarMagnet     Apparatus = "bar"
	Horseshoe     Apparatus = "horseshoe"
	Electromagnet Apparatus = "electromagnet"
	StraightWire  Apparatus = "wire"
	CurrentLoop   Apparatus = "loop"
)

// Apparatuses lists the field sources in control order.
var Apparatuses = []string{string(BarMagnet), string(Horseshoe), string(Electromagnet), string(StraightWire), string(CurrentLoop)}

// CurrentDirection is the direction of a current relative to the page.
type CurrentDirection string

const (
	OutOfPage CurrentDirection = "out"
	IntoPage  CurrentDirection = "into"
)

// Sign is +1 for current flowing toward the viewer.
func (d CurrentDirection) Sign() float64 {
	if d == IntoPage {
		return -1
	}
	return 1
}

// Winding is the coil winding sense seen from the north end.
type Winding string

const (
	CounterClockwise Winding = "ccw"
	Clockwise        Winding = "cw"
)

func (w Winding) Sign() float64 {
	if w == Clockwise {
		return -1
	}
	return 1
}

const (
	// mu0Over2Pi is μ₀/2π in T·m/A.
	mu0Over2Pi = 2e-7
	// unitsPerMetre converts world units (centimetres) to metres.
	unitsPerMetre = 100.0
	// poleReach is the distance from a pole, in world units, at which a
	// pole charge alone produces its nominal strength.
	poleReach = 40.0
	// electromagnetGain maps turns × amperes to tesla.
	electromagnetGain = 1e-3
	softening         = 4.0
)

// Pole is a point magnetic charge: +1 north, -1 south.
type Pole struct {
	Pos    dynamo.Point
	Charge float64
}

// Magnetic is the parameter set of a field source. Positions are world
// units with y pointing up, centred on the apparatus.
type Magnetic struct {
	Apparatus Apparatus
	Strength  float64 // tesla, permanent magnets
	Current   float64 // amperes, wires and coils
	Direction CurrentDirection
	Turns     float64
	Winding   Winding
	Length    float64 // pole separation, or loop diameter
}

// Polarity is +1 when the north pole sits on the +x side.
func (m Magnetic) Polarity() float64 {
	if m.Apparatus != Electromagnet {
		return 1
	}
	switch {
	case m.Current > 0:
		return m.Winding.Sign()
	case m.Current < 0:
		return -m.Winding.Sign()
	}
	return 0
}

// PoleStrength is the effective strength of the pole charges.
func (m Magnetic) PoleStrength() float64 {
	if m.Apparatus == Electromagnet {
		return electromagnetGain * m.Turns * math.Abs(m.Current)
	}
	return m.Strength
}

// Poles returns the pole charges of magnet-like sources; nil for wires.
func (m Magnetic) Poles() []Pole {
	half := m.Length / 2
	p := m.Polarity()
	switch m.Apparatus {
	case BarMagnet, Electromagnet:
		if p == 0 {
			return nil
		}
		return []Pole{{dynamo.Pt(half*p, 0), 1}, {dynamo.Pt(-half*p, 0), -1}}
	case Horseshoe:
		// Arms point up; north tip on the left.
		return []Pole{{dynamo.Pt(-half, 0), 1}, {dynamo.Pt(half, 0), -1}}
	}
	return nil
}

// Wire is a straight conductor perpendicular to the page.
type Wire struct {
	Pos  dynamo.Point
	Sign float64
}

// Wires returns the conductors of wire-like sources; nil for magnets.
// A loop is modelled as its two crossings of the page, carrying opposite
// currents, with Direction describing the left crossing.
func (m Magnetic) Wires() []Wire {
	s := m.Direction.Sign()
	switch m.Apparatus {
	case StraightWire:
		return []Wire{{dynamo.Pt(0, 0), s}}
	case CurrentLoop:
		r := m.Length / 2
		return []Wire{{dynamo.Pt(-r, 0), s}, {dynamo.Pt(r, 0), -s}}
	}
	return nil
}

// FieldAt evaluates B (tesla) at world point p.
func (m Magnetic) FieldAt(p dynamo.Point) dynamo.Point {
	var b dynamo.Point
	if poles := m.Poles(); poles != nil {
		k := m.PoleStrength() * poleReach * poleReach
		for _, pole := range poles {
			d := p.Sub(pole.Pos)
			r2 := d.Dot(d) + softening
			b = b.Add(d.Scale(pole.Charge * k / (r2 * math.Sqrt(r2))))
		}
		return b
	}
	for _, w := range m.Wires() {
		b = b.Add(WireField(w, m.Current, p))
	}
	return b
}

// WireField is the field of one long straight wire: magnitude μ₀I/2πr,
// counter-clockwise for current out of the page.
func WireField(w Wire, current float64, p dynamo.Point) dynamo.Point {
	d := p.Sub(w.Pos)
	r2 := d.Dot(d)
	if r2 < softening {
		r2 = softening
	}
	// |B| = μ₀I/(2πr) with r in metres; d.Perp()/r2 carries the 1/r.
	k := mu0Over2Pi * current * w.Sign * unitsPerMetre
	return d.Perp().Scale(k / r2)
}

// WireForce is the magnitude of the force on a straight conductor of
// length L metres in a perpendicular field: F = B·I·L.
func WireForce(b, current, length float64) float64 {
	return b * current * length
}

// ForceOnWire returns F = I L × B for a conductor perpendicular to the page.
func ForceOnWire(dir CurrentDirection, b dynamo.Point, current, length float64) dynamo.Point {
	k := dir.Sign() * current * length
	return dynamo.Pt(-b.Y*k, b.X*k)
}

// Field is anything that can be sampled for a 2D field vector.
type Field interface {
	FieldAt(p dynamo.Point) dynamo.Point
}

// TraceOptions bounds a field line walk.
type TraceOptions struct {
	Step     float64
	MaxSteps int
	// HalfWidth and HalfHeight bound the walk around the origin.
	HalfWidth  float64
	HalfHeight float64
	// Sinks end the walk when the line comes within Step of one.
	Sinks []dynamo.Point
	// Backward follows -B.
	Backward bool
}

// DefaultTraceOptions fits an 800×600 view centred on the apparatus.
func DefaultTraceOptions() TraceOptions {
	return TraceOptions{Step: 4, MaxSteps: 600, HalfWidth: 400, HalfHeight: 300}
}

// TraceFieldLine follows the field direction from start using midpoint
// steps. The walk ends outside the bounds, at a sink, where the field
// vanishes or goes non-finite, or when it closes back on start.
func TraceFieldLine(f Field, start dynamo.Point, opts TraceOptions) []dynamo.Point {
	if opts.Step <= 0 || opts.MaxSteps <= 0 {
		return nil
	}
	sign := 1.0
	if opts.Backward {
		sign = -1
	}
	dir := func(p dynamo.Point) (dynamo.Point, bool) {
		b := f.FieldAt(p)
		if !b.IsFinite() || b.Len() < 1e-12 {
			return dynamo.Point{}, false
		}
		return b.Normalize().Scale(sign), true
	}

	line := []dynamo.Point{start}
	p := start
	for i := 0; i < opts.MaxSteps; i++ {
		d1, ok := dir(p)
		if !ok {
			break
		}
		mid := p.Add(d1.Scale(opts.Step / 2))
		d2, ok := dir(mid)
		if !ok {
			break
		}
		p = p.Add(d2.Scale(opts.Step))
		line = append(line, p)

		if math.Abs(p.X) > opts.HalfWidth || math.Abs(p.Y) > opts.HalfHeight {
			break
		}
		if nearAny(p, opts.Sinks, opts.Step) {
			break
		}
		if i > 8 && p.Dist(start) < opts.Step {
			line = append(line, start)
			break
		}
	}
	return line
}

func nearAny(p dynamo.Point, pts []dynamo.Point, r float64) bool {
	for _, q := range pts {
		if p.Dist(q) < r {
			return true
		}
	}
	return false
}

// Compass is one needle of a compass grid.
type Compass struct {
	Pos      dynamo.Point
	Angle    float64 // direction of B in [0, 2π)
	Strength float64
}

// CompassGrid samples field direction on an nx×ny lattice spanning the
// rectangle [-hw, hw]×[-hh, hh]. Points where the field vanishes are skipped.
func CompassGrid(f Field, hw, hh float64, nx, ny int) []Compass {
	if nx < 1 || ny < 1 {
		return nil
	}
	out := make([]Compass, 0, nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			p := dynamo.Pt(
				-hw+(float64(i)+0.5)*2*hw/float64(nx),
				-hh+(float64(j)+0.5)*2*hh/float64(ny),
			)
			b := f.FieldAt(p)
			if !b.IsFinite() || b.Len() < 1e-12 {
				continue
			}
			out = append(out, Compass{Pos: p, Angle: dynamo.NormalizeAngle(math.Atan2(b.Y, b.X)), Strength: b.Len()})
		}
	}
	return out
}

// FieldLineSeeds picks starting points spread around the sources.
func (m Magnetic) FieldLineSeeds(n int) []dynamo.Point {
	if n <= 0 {
		return nil
	}
	var seeds []dynamo.Point
	if poles := m.Poles(); poles != nil {
		north := poles[0].Pos
		for i := 0; i < n; i++ {
			a := dynamo.TwoPi * (float64(i) + 0.5) / float64(n)
			seeds = append(seeds, north.Add(dynamo.Polar(6, a)))
		}
		return seeds
	}
	wires := m.Wires()
	if len(wires) == 0 {
		return nil
	}
	if len(wires) == 1 {
		for i := 1; i <= n; i++ {
			seeds = append(seeds, wires[0].Pos.Add(dynamo.Pt(float64(i)*28, 0)))
		}
		return seeds
	}
	// Loop: seeds on the axis between and beside the crossings.
	r := m.Length / 2
	for i := 0; i < n; i++ {
		x := -r + (float64(i)+0.5)*2*r/float64(n)
		seeds = append(seeds, dynamo.Pt(x, 0))
	}
	return seeds
}

// MagneticResult is the evaluated field of one apparatus.
type MagneticResult struct {
	Apparatus Apparatus
	Polarity  float64
	Poles     []Pole
	Wires     []Wire
	Lines     [][]dynamo.Point
	Compasses []Compass
	// Probe is B at the apparatus centre, or between the poles.
	Probe dynamo.Point
	// Force acts on a 10 cm test conductor carrying TestCurrent at the probe.
	Force       dynamo.Point
	TestCurrent float64
	err         error
}

func (r MagneticResult) Valid() bool { return r.err == nil }
func (r MagneticResult) Err() error  { return r.err }

func (r MagneticResult) Quantities() []dynamo.Quantity {
	return []dynamo.Quantity{
		{Name: "field", Label: "B at centre", Unit: "T", Value: r.Probe.Len()},
		{Name: "force", Label: "Force on wire", Unit: "N", Value: r.Force.Len()},
		{Name: "polarity", Label: "Polarity", Value: r.Polarity},
	}
}

// Evaluate samples the field for drawing: lines field lines, plus a
// cols×rows compass grid when cols and rows are positive.
func (m Magnetic) Evaluate(lines, cols, rows int, testCurrent float64) MagneticResult {
	res := MagneticResult{
		Apparatus:   m.Apparatus,
		Polarity:    m.Polarity(),
		Poles:       m.Poles(),
		Wires:       m.Wires(),
		TestCurrent: testCurrent,
	}
	switch m.Apparatus {
	case BarMagnet, Horseshoe, Electromagnet, StraightWire, CurrentLoop:
	default:
		res.err = fmt.Errorf("%w: apparatus %q", dynamo.ErrInvalidConfig, m.Apparatus)
		return res
	}
	if m.Length <= 0 && m.Apparatus != StraightWire {
		res.err = fmt.Errorf("%w: length must be positive", dynamo.ErrInvalidConfig)
		return res
	}

	probe := dynamo.Pt(0, 0)
	if m.Apparatus == StraightWire {
		probe = dynamo.Pt(poleReach, 0)
	}
	res.Probe = m.FieldAt(probe)
	res.Force = ForceOnWire(OutOfPage, res.Probe, testCurrent, 0.1)

	opts := DefaultTraceOptions()
	for _, p := range res.Poles {
		if p.Charge < 0 {
			opts.Sinks = append(opts.Sinks, p.Pos)
		}
	}
	for _, s := range m.FieldLineSeeds(lines) {
		res.Lines = append(res.Lines, TraceFieldLine(m, s, opts))
		if m.Apparatus == CurrentLoop {
			back := opts
			back.Backward = true
			res.Lines = append(res.Lines, TraceFieldLine(m, s, back))
		}
	}
	if cols > 0 && rows > 0 {
		res.Compasses = CompassGrid(m, 360, 260, cols, rows)
	}

	if !res.Probe.IsFinite() || !res.Force.IsFinite() {
		res.err = dynamo.ErrNonFinite
	}
	return res
}
