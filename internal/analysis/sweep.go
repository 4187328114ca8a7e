package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/scisim/internal/control"
	"github.com/san-kum/scisim/internal/dynamo"
	"github.com/san-kum/scisim/internal/scene"
)

// Sweep evaluates a simulation at evenly spaced values of one numeric
// parameter. Angles are given in degrees. Other parameters come from Base,
// or the schema defaults when Base is nil.
type Sweep struct {
	Sim      scene.Simulation
	Param    string
	From, To float64
	Steps    int
	Quantity string
	Base     *control.Panel
	Anim     dynamo.AnimationState
}

// Point is one sample. Y is NaN when the result was invalid.
type Point struct {
	X     float64
	Y     float64
	Valid bool
	Err   error
}

func (s Sweep) Run(ctx context.Context) ([]Point, error) {
	if s.Sim == nil {
		return nil, fmt.Errorf("%w: no simulation", dynamo.ErrInvalidConfig)
	}
	if s.Steps < 2 {
		return nil, fmt.Errorf("%w: sweep needs at least 2 steps, got %d", dynamo.ErrInvalidConfig, s.Steps)
	}
	spec, ok := s.Sim.Schema().Lookup(s.Param)
	if !ok {
		return nil, fmt.Errorf("%w: %q", dynamo.ErrUnknownParam, s.Param)
	}
	if spec.Kind != dynamo.KindFloat && spec.Kind != dynamo.KindAngle {
		return nil, fmt.Errorf("%w: %q is %s", dynamo.ErrParamKind, s.Param, spec.Kind)
	}

	panel := control.NewPanel(s.Sim.Schema())
	if s.Base != nil {
		panel = s.Base.Clone()
	}

	step := (s.To - s.From) / float64(s.Steps-1)
	points := make([]Point, 0, s.Steps)
	for i := 0; i < s.Steps; i++ {
		if err := ctx.Err(); err != nil {
			return points, err
		}
		x := s.From + float64(i)*step
		v := x
		if spec.Kind == dynamo.KindAngle {
			v = x * math.Pi / 180
		}
		if _, err := panel.SetFloat(s.Param, v); err != nil {
			return points, err
		}

		res := s.Sim.Compute(panel.Params(), s.Anim)
		pt := Point{X: x, Y: math.NaN(), Err: res.Err()}
		if res.Valid() {
			y, ok := dynamo.Lookup(res, s.Quantity)
			if !ok {
				return points, fmt.Errorf("%w: %s reports no quantity %q", dynamo.ErrUnknownParam, s.Sim.ID(), s.Quantity)
			}
			pt.Y, pt.Valid = y, true
		}
		points = append(points, pt)
	}
	return points, nil
}

// Extremes returns the valid samples with the smallest and largest Y.
// ok is false when no sample is valid.
func Extremes(points []Point) (lo, hi Point, ok bool) {
	best, worst := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		if !p.Valid {
			continue
		}
		if p.Y < best {
			best, lo = p.Y, p
		}
		if p.Y > worst {
			worst, hi = p.Y, p
		}
		ok = true
	}
	return lo, hi, ok
}
