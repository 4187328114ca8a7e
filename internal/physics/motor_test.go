package physics

import (
	"math"
	"testing"
)

func testMotor() Motor {
	return Motor{Field: 0.5, Current: 2, Length: 0.1, Width: 0.05, Turns: 20, Commutator: true}
}

func TestCommutationParity(t *testing.T) {
	m := testMotor()
	const steps = 3600
	start := 0.01
	flips := 0
	prev := m.Polarity(start)
	for i := 1; i <= steps; i++ {
		theta := start + 2*math.Pi*float64(i)/steps
		p := m.Polarity(theta)
		if p != prev {
			flips++
			near0 := math.Abs(math.Remainder(theta, 2*math.Pi)) < 0.01
			nearPi := math.Abs(math.Remainder(theta-math.Pi, 2*math.Pi)) < 0.01
			if !near0 && !nearPi {
				t.Errorf("flip at %f, expected near 0 or π", theta)
			}
		}
		prev = p
		if tau := m.Torque(theta); tau < -1e-12 {
			t.Fatalf("torque went negative at %f: %g", theta, tau)
		}
	}
	if flips != 2 {
		t.Errorf("expected 2 flips per revolution, got %d", flips)
	}
	if n := CountCommutations(start, start+2*math.Pi); n != 2 {
		t.Errorf("expected CountCommutations 2, got %d", n)
	}
}

func TestSlipRingsReverseTorque(t *testing.T) {
	m := testMotor()
	m.Commutator = false
	if m.Torque(math.Pi/2) <= 0 {
		t.Error("expected positive torque in the first half turn")
	}
	if m.Torque(3*math.Pi/2) >= 0 {
		t.Error("expected negative torque in the second half turn without a commutator")
	}
}

func TestTorqueMatchesSideForces(t *testing.T) {
	m := testMotor()
	for _, theta := range []float64{0.3, 1.2, 2.5, 3.6, 5.1} {
		a, b := m.SidePositions(theta)
		fa, fb := m.SideForces(theta)
		// τ = Σ r × F about the axle.
		tau := a.Cross(fa) + b.Cross(fb)
		if math.Abs(tau-m.Torque(theta)) > 1e-12 {
			t.Errorf("θ=%f: expected torque %g from forces, got %g", theta, m.Torque(theta), tau)
		}
	}
}

func TestMotorEvaluate(t *testing.T) {
	m := testMotor()
	res := m.Evaluate(5*math.Pi/2, 5*math.Pi/2)
	if !res.Valid() {
		t.Fatalf("expected valid, got %v", res.Err())
	}
	if math.Abs(res.Angle-math.Pi/2) > 1e-12 {
		t.Errorf("expected normalised angle π/2, got %f", res.Angle)
	}
	if res.Flips != 2 {
		t.Errorf("expected 2 flips after 1.25 turns, got %d", res.Flips)
	}
	want := 20 * 0.5 * 2 * 0.1
	if math.Abs(res.Force-want) > 1e-12 {
		t.Errorf("expected side force %f, got %f", want, res.Force)
	}
}
