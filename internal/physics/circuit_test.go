package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/scisim/internal/dynamo"
)

func TestSeriesBasic(t *testing.T) {
	res := Circuit{Topology: Series, Voltage: 9, R1: 3, R2: 6}.Solve()
	if !res.Valid() {
		t.Fatalf("expected valid result, got %v", res.Err())
	}
	if math.Abs(res.Total-9) > 1e-12 {
		t.Errorf("expected R_total 9, got %f", res.Total)
	}
	if math.Abs(res.Current-1) > 1e-12 {
		t.Errorf("expected I 1, got %f", res.Current)
	}
	if math.Abs(res.Power-9) > 1e-12 {
		t.Errorf("expected P 9, got %f", res.Power)
	}
	if len(res.Branches) != 2 {
		t.Fatalf("expected 2 branches, got %d", len(res.Branches))
	}
	if math.Abs(res.Branches[0].Voltage-3) > 1e-12 || math.Abs(res.Branches[1].Voltage-6) > 1e-12 {
		t.Errorf("expected drops 3V and 6V, got %f and %f", res.Branches[0].Voltage, res.Branches[1].Voltage)
	}
}

func TestSeriesParallelOrdering(t *testing.T) {
	pairs := [][2]float64{{1, 1}, {3, 6}, {0.1, 100}, {47, 2.2}, {1e-3, 1e3}}
	for _, p := range pairs {
		par := ParallelResistance(p[0], p[1])
		ser := SeriesResistance(p[0], p[1])
		lo := math.Min(p[0], p[1])
		if par > lo+1e-12 {
			t.Errorf("parallel(%v) = %f exceeds min %f", p, par, lo)
		}
		if lo > ser {
			t.Errorf("min %f exceeds series(%v) = %f", lo, p, ser)
		}
	}
}

func TestPowerIdentity(t *testing.T) {
	cases := []Circuit{
		{Topology: Series, Voltage: 12, R1: 2, R2: 10},
		{Topology: Parallel, Voltage: 6, R1: 4, R2: 12},
		{Topology: Complex, Voltage: 9, R1: 1, R2: 6, R3: 3},
	}
	for _, c := range cases {
		res := c.Solve()
		if !res.Valid() {
			t.Errorf("%s: expected valid, got %v", c.Topology, res.Err())
			continue
		}
		if math.Abs(res.Power-res.Voltage*res.Current) > 1e-9 {
			t.Errorf("%s: expected P = V·I, got P=%f V·I=%f", c.Topology, res.Power, res.Voltage*res.Current)
		}
		// Branch powers add up to the total.
		sum := 0.0
		for _, b := range res.Branches {
			sum += b.Voltage * b.Current
		}
		if math.Abs(sum-res.Power) > 1e-9 {
			t.Errorf("%s: expected branch power %f, got %f", c.Topology, res.Power, sum)
		}
	}
}

func TestComplexTopology(t *testing.T) {
	res := Circuit{Topology: Complex, Voltage: 9, R1: 1, R2: 6, R3: 3}.Solve()
	if math.Abs(res.Total-3) > 1e-12 {
		t.Errorf("expected R_total 3, got %f", res.Total)
	}
	if math.Abs(res.Branches[1].Current+res.Branches[2].Current-res.Current) > 1e-12 {
		t.Error("parallel branch currents should sum to the series current")
	}
}

func TestShortCircuit(t *testing.T) {
	cases := []Circuit{
		{Topology: Series, Voltage: 9},
		{Topology: Parallel, Voltage: 9, R1: 0, R2: 5},
		{Topology: Complex, Voltage: 9, R1: 0, R2: 0, R3: 4},
	}
	for _, c := range cases {
		res := c.Solve()
		if res.Valid() {
			t.Errorf("%s: expected invalid result", c.Topology)
		}
		if !errors.Is(res.Err(), dynamo.ErrShortCircuit) {
			t.Errorf("%s: expected ErrShortCircuit, got %v", c.Topology, res.Err())
		}
		if _, ok := dynamo.Lookup(res, "current"); ok {
			t.Errorf("%s: invalid result should not report a current", c.Topology)
		}
	}
}

func TestUnknownTopology(t *testing.T) {
	res := Circuit{Topology: "mesh", Voltage: 1, R1: 1, R2: 1}.Solve()
	if !errors.Is(res.Err(), dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", res.Err())
	}
}

func TestComplexShortedPair(t *testing.T) {
	res := Circuit{Topology: Complex, Voltage: 12, R1: 4, R2: 0, R3: 6}.Solve()
	if !res.Valid() {
		t.Fatalf("expected valid result, got %v", res.Err())
	}
	if res.Current != 3 {
		t.Errorf("expected 3 A, got %f", res.Current)
	}
	if res.Branches[1].Current != 3 {
		t.Errorf("expected the shorted branch to carry 3 A, got %f", res.Branches[1].Current)
	}
	if res.Branches[2].Current != 0 {
		t.Errorf("expected no current through R3, got %f", res.Branches[2].Current)
	}
}
