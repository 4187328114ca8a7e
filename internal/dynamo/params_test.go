package dynamo

import (
	"math"
	"testing"
)

func testSchema() Schema {
	return Schema{
		{Name: "voltage", Kind: KindFloat, Min: 0, Max: 24, Default: 9},
		{Name: "angle", Kind: KindAngle, Min: 0, Max: TwoPi, Default: -math.Pi / 2},
		{Name: "topology", Kind: KindEnum, Options: []string{"series", "parallel"}},
		{Name: "showFlow", Kind: KindToggle, DefaultOn: true},
		{Name: "showLabels", Kind: KindToggle},
	}
}

func TestSchemaDefaults(t *testing.T) {
	p := testSchema().Defaults()

	if p.Float("voltage") != 9 {
		t.Errorf("expected voltage 9, got %v", p.Float("voltage"))
	}
	if got := p.Float("angle"); math.Abs(got-3*math.Pi/2) > 1e-12 {
		t.Errorf("expected angle normalized to 3π/2, got %v", got)
	}
	if p.Enum("topology") != "series" {
		t.Errorf("expected first option as default, got %q", p.Enum("topology"))
	}
	if !p.Toggle("showFlow") || p.Toggle("showLabels") {
		t.Errorf("unexpected toggle defaults: %v", p.Toggles())
	}
}

func TestParamsImmutable(t *testing.T) {
	base := testSchema().Defaults()
	changed := base.WithFloat("voltage", 12).WithEnum("topology", "parallel").WithToggle("showFlow", false)

	if base.Float("voltage") != 9 || base.Enum("topology") != "series" || !base.Toggle("showFlow") {
		t.Error("With* mutated the original params")
	}
	if changed.Float("voltage") != 12 || changed.Enum("topology") != "parallel" || changed.Toggle("showFlow") {
		t.Errorf("With* did not apply: %s", changed)
	}
}

func TestZeroParams(t *testing.T) {
	var p Params
	if p.Float("x") != 0 || p.Enum("x") != "" || p.Toggle("x") {
		t.Error("zero Params should read as empty")
	}
	if p.HasFloat("x") {
		t.Error("zero Params should not report values")
	}
	if p.WithFloat("x", 1).Float("x") != 1 {
		t.Error("WithFloat on zero Params failed")
	}
}

func TestSchemaLookupAndToggles(t *testing.T) {
	s := testSchema()
	if _, ok := s.Lookup("voltage"); !ok {
		t.Error("expected voltage spec")
	}
	if _, ok := s.Lookup("missing"); ok {
		t.Error("did not expect spec for missing")
	}
	toggles := s.Toggles()
	if len(toggles) != 2 || toggles[0] != "showFlow" {
		t.Errorf("unexpected toggles %v", toggles)
	}
}

func TestParamsString(t *testing.T) {
	p := Params{}.WithFloat("b", 2).WithEnum("a", "x").WithToggle("c", true)
	if got := p.String(); got != "a=x b=2 c=true" {
		t.Errorf("String() = %q", got)
	}
}
