package physics

import (
	"fmt"

	"github.com/san-kum/scisim/internal/dynamo"
)

// Topology selects how the resistors are wired.
type Topology string

const (
	Series   Topology = "series"
	Parallel Topology = "parallel"
	// Complex wires R1 in series with the parallel pair R2 ∥ R3.
	Complex Topology = "complex"
)

// Topologies lists the wiring options in control order.
var Topologies = []string{string(Series), string(Parallel), string(Complex)}

// Circuit is the parameter set of the resistive network.
type Circuit struct {
	Topology Topology
	Voltage  float64
	R1       float64
	R2       float64
	R3       float64
}

// Branch is one resistor's share of the network.
type Branch struct {
	Name       string
	Resistance float64
	Current    float64
	Voltage    float64
}

// CircuitResult is the solved network.
type CircuitResult struct {
	Topology Topology
	Voltage  float64
	Total    float64
	Current  float64
	Power    float64
	Branches []Branch
	err      error
}

func (r CircuitResult) Valid() bool { return r.err == nil }
func (r CircuitResult) Err() error  { return r.err }

func (r CircuitResult) Quantities() []dynamo.Quantity {
	q := []dynamo.Quantity{
		{Name: "voltage", Label: "Voltage", Unit: "V", Value: r.Voltage},
		{Name: "resistance", Label: "Total R", Unit: "Ω", Value: r.Total},
	}
	if !r.Valid() {
		return q
	}
	q = append(q,
		dynamo.Quantity{Name: "current", Label: "Current", Unit: "A", Value: r.Current},
		dynamo.Quantity{Name: "power", Label: "Power", Unit: "W", Value: r.Power},
	)
	for _, b := range r.Branches {
		q = append(q, dynamo.Quantity{Name: "i_" + b.Name, Label: "I " + b.Name, Unit: "A", Value: b.Current})
	}
	return q
}

// SeriesResistance is Σrᵢ.
func SeriesResistance(rs ...float64) float64 {
	total := 0.0
	for _, r := range rs {
		total += r
	}
	return total
}

// ParallelResistance is 1/Σ(1/rᵢ). A non-positive branch shorts the whole
// group, so the result is 0 rather than a division by zero.
func ParallelResistance(rs ...float64) float64 {
	if len(rs) == 0 {
		return 0
	}
	inv := 0.0
	for _, r := range rs {
		if r <= 0 {
			return 0
		}
		inv += 1 / r
	}
	return 1 / inv
}

// TotalResistance returns the equivalent resistance of the configured topology.
func (c Circuit) TotalResistance() (float64, error) {
	switch c.Topology {
	case Series:
		return SeriesResistance(c.R1, c.R2), nil
	case Parallel:
		return ParallelResistance(c.R1, c.R2), nil
	case Complex:
		return SeriesResistance(c.R1, ParallelResistance(c.R2, c.R3)), nil
	}
	return 0, fmt.Errorf("%w: topology %q", dynamo.ErrInvalidConfig, c.Topology)
}

// Solve computes total resistance, current, power and the per-resistor split.
// A network whose total resistance is not positive yields an invalid result
// carrying dynamo.ErrShortCircuit.
func (c Circuit) Solve() CircuitResult {
	res := CircuitResult{Topology: c.Topology, Voltage: c.Voltage}

	total, err := c.TotalResistance()
	if err != nil {
		res.err = err
		return res
	}
	res.Total = total
	if total <= 0 {
		res.err = dynamo.ErrShortCircuit
		return res
	}

	res.Current = c.Voltage / total
	res.Power = c.Voltage * res.Current

	switch c.Topology {
	case Series:
		res.Branches = []Branch{
			{Name: "R1", Resistance: c.R1, Current: res.Current, Voltage: res.Current * c.R1},
			{Name: "R2", Resistance: c.R2, Current: res.Current, Voltage: res.Current * c.R2},
		}
	case Parallel:
		res.Branches = []Branch{
			{Name: "R1", Resistance: c.R1, Current: c.Voltage / c.R1, Voltage: c.Voltage},
			{Name: "R2", Resistance: c.R2, Current: c.Voltage / c.R2, Voltage: c.Voltage},
		}
	case Complex:
		v1 := res.Current * c.R1
		vp := c.Voltage - v1
		b := []Branch{{Name: "R1", Resistance: c.R1, Current: res.Current, Voltage: v1}}
		if ParallelResistance(c.R2, c.R3) <= 0 {
			// A shorted branch carries all of R1's current; the other carries none.
			shorted := 0
			for _, r := range []float64{c.R2, c.R3} {
				if r <= 0 {
					shorted++
				}
			}
			share := func(r float64) float64 {
				if r <= 0 {
					return res.Current / float64(shorted)
				}
				return 0
			}
			b = append(b,
				Branch{Name: "R2", Resistance: c.R2, Current: share(c.R2)},
				Branch{Name: "R3", Resistance: c.R3, Current: share(c.R3)},
			)
		} else {
			b = append(b,
				Branch{Name: "R2", Resistance: c.R2, Current: vp / c.R2, Voltage: vp},
				Branch{Name: "R3", Resistance: c.R3, Current: vp / c.R3, Voltage: vp},
			)
		}
		res.Branches = b
	}

	if !dynamo.Finite(res.Current, res.Power) {
		res.err = dynamo.ErrNonFinite
	}
	return res
}
