package physics

import (
	"math"

	"github.com/san-kum/scisim/internal/dynamo"
)

// Motor is a single rectangular coil turning in a uniform field B along +x.
// Side A and side B are the two conductors parallel to the axle.
type Motor struct {
	Field   float64 // tesla
	Current float64 // amperes
	Length  float64 // conductor length, metres
	Width   float64 // coil width, metres
	Turns   float64
	// Commutator selects a split ring. With slip rings the current never
	// reverses and the torque changes sign every half turn.
	Commutator bool
}

// CommutatorPolarity is the current sign through side A at rotor angle θ:
// +1 on [0, π), -1 on [π, 2π).
func CommutatorPolarity(theta float64) float64 {
	if dynamo.NormalizeAngle(theta) < math.Pi {
		return 1
	}
	return -1
}

// Polarity applies the commutator choice.
func (m Motor) Polarity(theta float64) float64 {
	if !m.Commutator {
		return 1
	}
	return CommutatorPolarity(theta)
}

// Area is the coil area in m².
func (m Motor) Area() float64 { return m.Length * m.Width }

// SideForce is the magnitude of F = B·I·L on one conductor of the coil.
func (m Motor) SideForce() float64 {
	return WireForce(m.Field, m.Current, m.Length) * m.Turns
}

// Torque is τ = p(θ)·N·B·I·A·sin θ. With the commutator it is never
// negative in the lab frame.
func (m Motor) Torque(theta float64) float64 {
	theta = dynamo.NormalizeAngle(theta)
	return m.Polarity(theta) * m.Turns * m.Field * m.Current * m.Area() * math.Sin(theta)
}

// SidePositions returns the coil sides in the rotor plane, in metres:
// side A sits at r·(-sin θ, cos θ), side B opposite.
func (m Motor) SidePositions(theta float64) (a, b dynamo.Point) {
	r := m.Width / 2
	s, c := math.Sincos(theta)
	a = dynamo.Pt(-r*s, r*c)
	return a, a.Scale(-1)
}

// SideForces returns the force vectors on side A and side B. The field
// points along +x and side A carries current into the page when the
// polarity is +1, so F_A = -p·I·L·B·ŷ.
func (m Motor) SideForces(theta float64) (fa, fb dynamo.Point) {
	f := m.Polarity(theta) * m.SideForce()
	fa = dynamo.Pt(0, -f)
	return fa, fa.Scale(-1)
}

// CountCommutations counts polarity reversals as the rotor moves from
// angle from to angle to (to ≥ from, unnormalised radians).
func CountCommutations(from, to float64) int {
	if to <= from {
		return 0
	}
	// Flips sit at every multiple of π.
	return int(math.Floor(to/math.Pi) - math.Floor(from/math.Pi))
}

// MotorResult is one frame of the motor model.
type MotorResult struct {
	Angle    float64
	Polarity float64
	Torque   float64
	Force    float64
	SideA    dynamo.Point
	SideB    dynamo.Point
	ForceA   dynamo.Point
	ForceB   dynamo.Point
	// Flips is the number of commutations since time zero.
	Flips int
	err   error
}

func (r MotorResult) Valid() bool { return r.err == nil }
func (r MotorResult) Err() error  { return r.err }

func (r MotorResult) Quantities() []dynamo.Quantity {
	return []dynamo.Quantity{
		{Name: "angle", Label: "Rotor angle", Unit: "°", Value: r.Angle * 180 / math.Pi},
		{Name: "torque", Label: "Torque", Unit: "N·m", Value: r.Torque},
		{Name: "force", Label: "Force per side", Unit: "N", Value: r.Force},
		{Name: "polarity", Label: "Polarity", Value: r.Polarity},
		{Name: "flips", Label: "Commutations", Value: float64(r.Flips)},
	}
}

// Evaluate computes the motor state at rotor angle theta. travelled is the
// total unwrapped rotation, used for the commutation count.
func (m Motor) Evaluate(theta, travelled float64) MotorResult {
	theta = dynamo.NormalizeAngle(theta)
	res := MotorResult{
		Angle:    theta,
		Polarity: m.Polarity(theta),
		Torque:   m.Torque(theta),
		Force:    m.SideForce(),
	}
	res.SideA, res.SideB = m.SidePositions(theta)
	res.ForceA, res.ForceB = m.SideForces(theta)
	if m.Commutator {
		res.Flips = CountCommutations(0, travelled)
	}
	if !dynamo.Finite(res.Torque, res.Force) {
		res.err = dynamo.ErrNonFinite
	}
	return res
}
