package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/scisim/internal/dynamo"
	"github.com/san-kum/scisim/internal/physics"
)

func frameAt(t float64) dynamo.Frame {
	return dynamo.Frame{Anim: dynamo.AnimationState{ElapsedTime: t}}
}

func TestValidity(t *testing.T) {
	m := NewValidity()
	if m.Value() != 1 {
		t.Errorf("expected 1 with no samples, got %f", m.Value())
	}
	good := physics.Circuit{Topology: physics.Series, Voltage: 9, R1: 3, R2: 6}.Solve()
	short := physics.Circuit{Topology: physics.Series, Voltage: 9}.Solve()
	m.Observe(frameAt(0), good)
	m.Observe(frameAt(0), good)
	m.Observe(frameAt(0), good)
	m.Observe(frameAt(0), short)
	if math.Abs(m.Value()-0.75) > 1e-12 {
		t.Errorf("expected 0.75, got %f", m.Value())
	}
	m.Reset()
	if m.Value() != 1 {
		t.Errorf("expected 1 after reset, got %f", m.Value())
	}
}

func TestEnergyIntegratesPower(t *testing.T) {
	m := NewEnergy("power")
	res := physics.Circuit{Topology: physics.Series, Voltage: 9, R1: 3, R2: 6}.Solve()
	for i := 0; i <= 10; i++ {
		m.Observe(frameAt(float64(i)*0.5), res)
	}
	if math.Abs(m.Value()-45) > 1e-9 {
		t.Errorf("expected 9 W for 5 s = 45 J, got %f", m.Value())
	}
	m.Reset()
	m.Observe(frameAt(3), res)
	if m.Value() != 0 {
		t.Errorf("expected no energy from a single frame, got %f", m.Value())
	}
}

func TestEnergySkipsShortCircuit(t *testing.T) {
	m := NewEnergy("power")
	short := physics.Circuit{Topology: physics.Parallel, Voltage: 9, R1: 0, R2: 6}.Solve()
	m.Observe(frameAt(0), short)
	m.Observe(frameAt(1), short)
	if m.Value() != 0 {
		t.Errorf("expected 0, got %f", m.Value())
	}
}

func TestPeakAndMean(t *testing.T) {
	peak := NewPeak("torque")
	mean := NewMean("torque")
	motor := physics.Motor{Field: 0.5, Current: 2, Length: 0.1, Width: 0.08, Turns: 10, Commutator: true}
	for i := 0; i < 360; i++ {
		th := float64(i) * math.Pi / 180
		res := motor.Evaluate(th, th)
		peak.Observe(frameAt(th), res)
		mean.Observe(frameAt(th), res)
	}
	want := 10 * 0.5 * 2 * 0.1 * 0.08
	if math.Abs(peak.Value()-want) > 1e-9 {
		t.Errorf("expected peak %f, got %f", want, peak.Value())
	}
	if mean.Value() <= 0 {
		t.Errorf("expected positive mean torque with a commutator, got %f", mean.Value())
	}
	if peak.Name() != "peak_torque" || mean.Name() != "mean_torque" {
		t.Errorf("unexpected names %s, %s", peak.Name(), mean.Name())
	}
}

func TestForSimulation(t *testing.T) {
	ms := ForSimulation("circuit")
	if len(ms) != 3 {
		t.Fatalf("expected 3 metrics, got %d", len(ms))
	}
	if ms[2].Name() != "energy" {
		t.Errorf("expected energy metric, got %s", ms[2].Name())
	}
	if len(ForSimulation("unknown")) != 2 {
		t.Error("expected the common metrics only")
	}
}
