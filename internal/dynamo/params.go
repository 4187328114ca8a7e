package dynamo

import (
	"fmt"
	"sort"
)

// Kind classifies a parameter for the control surface.
type Kind int

const (
	KindFloat Kind = iota
	KindAngle
	KindEnum
	KindToggle
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindAngle:
		return "angle"
	case KindEnum:
		return "enum"
	case KindToggle:
		return "toggle"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParamSpec describes one user-adjustable input of a simulation.
// Angle params are declared and stored in radians.
type ParamSpec struct {
	Name    string
	Label   string
	Unit    string
	Kind    Kind
	Min     float64
	Max     float64
	Step    float64
	Default float64

	Options       []string
	DefaultOption string
	DefaultOn     bool
}

// HasOption reports whether v is one of the spec's enum options.
func (s ParamSpec) HasOption(v string) bool {
	for _, o := range s.Options {
		if o == v {
			return true
		}
	}
	return false
}

// Schema is the ordered parameter list of a simulation.
type Schema []ParamSpec

// Lookup finds a spec by name.
func (s Schema) Lookup(name string) (ParamSpec, bool) {
	for _, spec := range s {
		if spec.Name == name {
			return spec, true
		}
	}
	return ParamSpec{}, false
}

// Toggles returns the names of all toggle params in declaration order.
func (s Schema) Toggles() []string {
	var names []string
	for _, spec := range s {
		if spec.Kind == KindToggle {
			names = append(names, spec.Name)
		}
	}
	return names
}

// Defaults builds the initial parameter set for a freshly mounted screen.
func (s Schema) Defaults() Params {
	var p Params
	for _, spec := range s {
		switch spec.Kind {
		case KindFloat:
			p = p.WithFloat(spec.Name, spec.Default)
		case KindAngle:
			p = p.WithFloat(spec.Name, NormalizeAngle(spec.Default))
		case KindEnum:
			opt := spec.DefaultOption
			if opt == "" && len(spec.Options) > 0 {
				opt = spec.Options[0]
			}
			p = p.WithEnum(spec.Name, opt)
		case KindToggle:
			p = p.WithToggle(spec.Name, spec.DefaultOn)
		}
	}
	return p
}

// Params is an immutable parameter set. The zero value is empty and usable.
type Params struct {
	floats  map[string]float64
	enums   map[string]string
	toggles map[string]bool
}

func (p Params) Float(name string) float64 { return p.floats[name] }
func (p Params) Enum(name string) string   { return p.enums[name] }
func (p Params) Toggle(name string) bool   { return p.toggles[name] }

// HasFloat reports whether a numeric value was set for name.
func (p Params) HasFloat(name string) bool {
	_, ok := p.floats[name]
	return ok
}

func (p Params) clone() Params {
	c := Params{
		floats:  make(map[string]float64, len(p.floats)+1),
		enums:   make(map[string]string, len(p.enums)+1),
		toggles: make(map[string]bool, len(p.toggles)+1),
	}
	for k, v := range p.floats {
		c.floats[k] = v
	}
	for k, v := range p.enums {
		c.enums[k] = v
	}
	for k, v := range p.toggles {
		c.toggles[k] = v
	}
	return c
}

// WithFloat returns a copy of p with name set to v.
func (p Params) WithFloat(name string, v float64) Params {
	c := p.clone()
	c.floats[name] = v
	return c
}

// WithEnum returns a copy of p with name set to v.
func (p Params) WithEnum(name, v string) Params {
	c := p.clone()
	c.enums[name] = v
	return c
}

// WithToggle returns a copy of p with name set to on.
func (p Params) WithToggle(name string, on bool) Params {
	c := p.clone()
	c.toggles[name] = on
	return c
}

// Floats returns a copy of the numeric values.
func (p Params) Floats() map[string]float64 {
	out := make(map[string]float64, len(p.floats))
	for k, v := range p.floats {
		out[k] = v
	}
	return out
}

// Enums returns a copy of the enum values.
func (p Params) Enums() map[string]string {
	out := make(map[string]string, len(p.enums))
	for k, v := range p.enums {
		out[k] = v
	}
	return out
}

// Toggles returns a copy of the toggle values.
func (p Params) Toggles() map[string]bool {
	out := make(map[string]bool, len(p.toggles))
	for k, v := range p.toggles {
		out[k] = v
	}
	return out
}

// String renders the set in a stable order, mostly for logs.
func (p Params) String() string {
	keys := make([]string, 0, len(p.floats)+len(p.enums)+len(p.toggles))
	vals := make(map[string]string, cap(keys))
	for k, v := range p.floats {
		keys = append(keys, k)
		vals[k] = fmt.Sprintf("%g", v)
	}
	for k, v := range p.enums {
		keys = append(keys, k)
		vals[k] = v
	}
	for k, v := range p.toggles {
		keys = append(keys, k)
		vals[k] = fmt.Sprintf("%t", v)
	}
	sort.Strings(keys)
	s := ""
	for i, k := range keys {
		if i > 0 {
			s += " "
		}
		s += k + "=" + vals[k]
	}
	return s
}
