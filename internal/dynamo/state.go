package dynamo

import (
	"math"
)

// AnimationState is the time-varying state advanced by the frame stepper.
// ElapsedAngle is kept in [0, 2π); ElapsedTime grows without bound.
type AnimationState struct {
	Running      bool
	ElapsedAngle float64
	ElapsedTime  float64
	Speed        float64
}

// Advance returns the state after one tick of delta = Speed × baseRate.
func (a AnimationState) Advance(baseRate float64) AnimationState {
	delta := a.Speed * baseRate
	a.ElapsedAngle = NormalizeAngle(a.ElapsedAngle + delta)
	a.ElapsedTime += delta
	return a
}

// Quantity is one named scalar output of a physics model.
type Quantity struct {
	Name  string
	Label string
	Unit  string
	Value float64
}

// Result is the pure, per-frame output of a physics model.
type Result interface {
	// Valid reports whether the derived overlays may be drawn this frame.
	Valid() bool
	// Err explains an invalid result; nil when Valid.
	Err() error
	// Quantities lists the scalar outputs in display order.
	Quantities() []Quantity
}

// Finite reports whether every value is neither NaN nor Inf.
func Finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Lookup returns the value of the named quantity.
func Lookup(r Result, name string) (float64, bool) {
	if r == nil {
		return 0, false
	}
	for _, q := range r.Quantities() {
		if q.Name == name {
			return q.Value, true
		}
	}
	return 0, false
}

// Frame bundles everything a renderer reads for one frame.
type Frame struct {
	Params Params
	Anim   AnimationState
	Camera Camera
	Width  float64
	Height float64
	Index  int
}
