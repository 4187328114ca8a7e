package control

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/scisim/internal/dynamo"
)

// Panel holds the parameter set of one mounted simulation.
type Panel struct {
	schema dynamo.Schema
	params dynamo.Params
}

// NewPanel starts from the schema defaults.
func NewPanel(schema dynamo.Schema) *Panel {
	return &Panel{schema: schema, params: schema.Defaults()}
}

func (p *Panel) Schema() dynamo.Schema { return p.schema }

// Params returns the current immutable snapshot.
func (p *Panel) Params() dynamo.Params { return p.params }

// Clone returns an independent panel with the same values.
func (p *Panel) Clone() *Panel {
	return &Panel{schema: p.schema, params: p.params}
}

// Reset restores every default.
func (p *Panel) Reset() { p.params = p.schema.Defaults() }

func (p *Panel) lookup(name string, kinds ...dynamo.Kind) (dynamo.ParamSpec, error) {
	spec, ok := p.schema.Lookup(name)
	if !ok {
		return spec, fmt.Errorf("%w: %q", dynamo.ErrUnknownParam, name)
	}
	for _, k := range kinds {
		if spec.Kind == k {
			return spec, nil
		}
	}
	return spec, fmt.Errorf("%w: %q is %s", dynamo.ErrParamKind, name, spec.Kind)
}

// Clamp brings v into the legal range of spec. Angles spanning a full turn
// wrap instead of clamping. An angle range with a negative minimum is
// signed: v is read in (-π, π] before clamping. Angles are always stored
// in [0, 2π).
func Clamp(spec dynamo.ParamSpec, v float64) float64 {
	if spec.Kind == dynamo.KindAngle && spec.Max-spec.Min >= dynamo.TwoPi-1e-9 {
		if math.IsInf(v, 0) {
			return spec.Default
		}
		return dynamo.NormalizeAngle(v)
	}
	if spec.Kind == dynamo.KindAngle && spec.Min < 0 {
		v = dynamo.SignedAngle(v)
	}
	if spec.Max > spec.Min {
		v = math.Max(spec.Min, math.Min(spec.Max, v))
	}
	if spec.Kind == dynamo.KindAngle {
		v = dynamo.NormalizeAngle(v)
	}
	return v
}

// SetFloat stores a numeric or angle value, clamped, and returns what was
// stored. NaN is rejected.
func (p *Panel) SetFloat(name string, v float64) (float64, error) {
	spec, err := p.lookup(name, dynamo.KindFloat, dynamo.KindAngle)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) {
		return p.params.Float(name), fmt.Errorf("%w: %s is NaN", dynamo.ErrInvalidConfig, name)
	}
	v = Clamp(spec, v)
	p.params = p.params.WithFloat(name, v)
	return v, nil
}

// Nudge moves a numeric value by steps × its step size.
func (p *Panel) Nudge(name string, steps int) (float64, error) {
	spec, err := p.lookup(name, dynamo.KindFloat, dynamo.KindAngle)
	if err != nil {
		return 0, err
	}
	step := spec.Step
	if step <= 0 {
		step = (spec.Max - spec.Min) / 100
	}
	return p.SetFloat(name, p.params.Float(name)+float64(steps)*step)
}

// SetEnum stores one of the declared options.
func (p *Panel) SetEnum(name, v string) error {
	spec, err := p.lookup(name, dynamo.KindEnum)
	if err != nil {
		return err
	}
	if !spec.HasOption(v) {
		return fmt.Errorf("%w: %q for %s (want one of %s)", dynamo.ErrInvalidOption, v, name, strings.Join(spec.Options, ", "))
	}
	p.params = p.params.WithEnum(name, v)
	return nil
}

// CycleEnum moves to the next (delta > 0) or previous option, wrapping.
func (p *Panel) CycleEnum(name string, delta int) (string, error) {
	spec, err := p.lookup(name, dynamo.KindEnum)
	if err != nil || len(spec.Options) == 0 {
		return "", err
	}
	cur := 0
	for i, o := range spec.Options {
		if o == p.params.Enum(name) {
			cur = i
		}
	}
	n := len(spec.Options)
	next := spec.Options[((cur+delta)%n+n)%n]
	p.params = p.params.WithEnum(name, next)
	return next, nil
}

// SetToggle switches an overlay or option on or off.
func (p *Panel) SetToggle(name string, on bool) error {
	if _, err := p.lookup(name, dynamo.KindToggle); err != nil {
		return err
	}
	p.params = p.params.WithToggle(name, on)
	return nil
}

// Flip inverts a toggle and returns the new state.
func (p *Panel) Flip(name string) (bool, error) {
	if _, err := p.lookup(name, dynamo.KindToggle); err != nil {
		return false, err
	}
	on := !p.params.Toggle(name)
	p.params = p.params.WithToggle(name, on)
	return on, nil
}

// Set parses a textual value by the parameter's kind. Angles are read in
// degrees; toggles accept anything strconv.ParseBool does.
func (p *Panel) Set(name, raw string) error {
	spec, ok := p.schema.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", dynamo.ErrUnknownParam, name)
	}
	raw = strings.TrimSpace(raw)
	switch spec.Kind {
	case dynamo.KindFloat, dynamo.KindAngle:
		v, err := strconv.ParseFloat(strings.TrimSuffix(raw, "deg"), 64)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		if spec.Kind == dynamo.KindAngle {
			v *= math.Pi / 180
		}
		_, err = p.SetFloat(name, v)
		return err
	case dynamo.KindEnum:
		return p.SetEnum(name, raw)
	case dynamo.KindToggle:
		on, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		return p.SetToggle(name, on)
	}
	return fmt.Errorf("%w: %q", dynamo.ErrParamKind, name)
}

// Assign parses a "name=value" pair.
func (p *Panel) Assign(kv string) error {
	name, val, ok := strings.Cut(kv, "=")
	if !ok {
		return fmt.Errorf("%w: expected name=value, got %q", dynamo.ErrInvalidConfig, kv)
	}
	return p.Set(strings.TrimSpace(name), val)
}

// Display formats the current value for a control label.
func (p *Panel) Display(name string) string {
	spec, ok := p.schema.Lookup(name)
	if !ok {
		return "?"
	}
	switch spec.Kind {
	case dynamo.KindAngle:
		v := p.params.Float(name)
		if spec.Min < 0 {
			v = dynamo.SignedAngle(v)
		}
		return fmt.Sprintf("%.1f°", v*180/math.Pi)
	case dynamo.KindEnum:
		return p.params.Enum(name)
	case dynamo.KindToggle:
		if p.params.Toggle(name) {
			return "on"
		}
		return "off"
	}
	s := strconv.FormatFloat(p.params.Float(name), 'f', decimals(spec.Step), 64)
	if spec.Unit != "" {
		s += " " + spec.Unit
	}
	return s
}

func decimals(step float64) int {
	switch {
	case step <= 0 || step >= 1:
		return 0
	case step >= 0.1:
		return 1
	case step >= 0.01:
		return 2
	}
	return 3
}
