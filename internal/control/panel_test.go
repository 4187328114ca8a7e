package control

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/scisim/internal/dynamo"
)

func testSchema() dynamo.Schema {
	return dynamo.Schema{
		{Name: "voltage", Unit: "V", Kind: dynamo.KindFloat, Min: 0, Max: 24, Step: 0.5, Default: 9},
		{Name: "spin", Kind: dynamo.KindAngle, Min: 0, Max: dynamo.TwoPi, Default: 0},
		{Name: "incidence", Kind: dynamo.KindAngle, Min: 0, Max: 85 * math.Pi / 180, Step: math.Pi / 180, Default: math.Pi / 6},
		{Name: "topology", Kind: dynamo.KindEnum, Options: []string{"series", "parallel", "complex"}},
		{Name: "show_current", Kind: dynamo.KindToggle, DefaultOn: true},
	}
}

func TestPanelDefaults(t *testing.T) {
	p := NewPanel(testSchema())
	params := p.Params()
	if params.Float("voltage") != 9 {
		t.Errorf("expected voltage 9, got %f", params.Float("voltage"))
	}
	if params.Enum("topology") != "series" {
		t.Errorf("expected first option, got %q", params.Enum("topology"))
	}
	if !params.Toggle("show_current") {
		t.Error("expected toggle on by default")
	}
}

func TestSetFloatClamps(t *testing.T) {
	p := NewPanel(testSchema())
	cases := []struct {
		in, want float64
	}{
		{12, 12},
		{-5, 0},
		{1e9, 24},
		{math.Inf(1), 24},
		{math.Inf(-1), 0},
	}
	for _, tc := range cases {
		got, err := p.SetFloat("voltage", tc.in)
		if err != nil {
			t.Fatalf("SetFloat(%f): %v", tc.in, err)
		}
		if got != tc.want || p.Params().Float("voltage") != tc.want {
			t.Errorf("SetFloat(%f): expected %f, got %f", tc.in, tc.want, got)
		}
	}
}

func TestSetFloatRejectsNaN(t *testing.T) {
	p := NewPanel(testSchema())
	if _, err := p.SetFloat("voltage", math.NaN()); err == nil {
		t.Error("expected error for NaN")
	}
	if p.Params().Float("voltage") != 9 {
		t.Error("NaN should leave the previous value")
	}
}

func TestAngleWrapsOrClamps(t *testing.T) {
	p := NewPanel(testSchema())
	got, _ := p.SetFloat("spin", -math.Pi/2)
	if math.Abs(got-3*math.Pi/2) > 1e-12 {
		t.Errorf("expected full-turn angle to wrap to 3π/2, got %f", got)
	}
	got, _ = p.SetFloat("spin", 5*math.Pi)
	if math.Abs(got-math.Pi) > 1e-9 {
		t.Errorf("expected 5π to wrap to π, got %f", got)
	}
	got, _ = p.SetFloat("incidence", math.Pi/2)
	if math.Abs(got-85*math.Pi/180) > 1e-12 {
		t.Errorf("expected limited angle to clamp at 85°, got %f", got)
	}
}

func TestSetEnum(t *testing.T) {
	p := NewPanel(testSchema())
	if err := p.SetEnum("topology", "parallel"); err != nil {
		t.Fatal(err)
	}
	err := p.SetEnum("topology", "mesh")
	if !errors.Is(err, dynamo.ErrInvalidOption) {
		t.Errorf("expected ErrInvalidOption, got %v", err)
	}
	if p.Params().Enum("topology") != "parallel" {
		t.Error("rejected option should leave the previous value")
	}
	next, _ := p.CycleEnum("topology", 2)
	if next != "series" {
		t.Errorf("expected cycling to wrap to series, got %q", next)
	}
	prev, _ := p.CycleEnum("topology", -1)
	if prev != "complex" {
		t.Errorf("expected cycling back to complex, got %q", prev)
	}
}

func TestKindAndNameErrors(t *testing.T) {
	p := NewPanel(testSchema())
	if _, err := p.SetFloat("topology", 1); !errors.Is(err, dynamo.ErrParamKind) {
		t.Errorf("expected ErrParamKind, got %v", err)
	}
	if err := p.SetToggle("missing", true); !errors.Is(err, dynamo.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestToggleIndependence(t *testing.T) {
	p := NewPanel(testSchema())
	before := p.Params()
	on, err := p.Flip("show_current")
	if err != nil || on {
		t.Fatalf("expected toggle off, got %t %v", on, err)
	}
	if !before.Toggle("show_current") {
		t.Error("earlier snapshot must not change")
	}
	if p.Params().Float("voltage") != 9 {
		t.Error("toggling should not touch other params")
	}
}

func TestAssign(t *testing.T) {
	p := NewPanel(testSchema())
	for _, kv := range []string{"voltage=6", "incidence=45", "topology=complex", "show_current=false"} {
		if err := p.Assign(kv); err != nil {
			t.Fatalf("Assign(%q): %v", kv, err)
		}
	}
	params := p.Params()
	if params.Float("voltage") != 6 || params.Enum("topology") != "complex" || params.Toggle("show_current") {
		t.Errorf("unexpected params %s", params)
	}
	if math.Abs(params.Float("incidence")-math.Pi/4) > 1e-12 {
		t.Errorf("expected degrees to be converted, got %f", params.Float("incidence"))
	}
	if err := p.Assign("voltage"); err == nil {
		t.Error("expected error without '='")
	}
	if err := p.Assign("voltage=abc"); err == nil {
		t.Error("expected parse error")
	}
}

func TestNudgeAndDisplay(t *testing.T) {
	p := NewPanel(testSchema())
	got, _ := p.Nudge("voltage", 3)
	if got != 10.5 {
		t.Errorf("expected 10.5, got %f", got)
	}
	if d := p.Display("voltage"); d != "10.5 V" {
		t.Errorf("unexpected display %q", d)
	}
	if d := p.Display("incidence"); d != "30.0°" {
		t.Errorf("unexpected display %q", d)
	}
	if d := p.Display("show_current"); d != "on" {
		t.Errorf("unexpected display %q", d)
	}
}

func TestClone(t *testing.T) {
	p := NewPanel(testSchema())
	p.SetFloat("voltage", 12)
	c := p.Clone()
	c.SetFloat("voltage", 3)
	if p.Params().Float("voltage") != 12 {
		t.Errorf("expected original to keep 12, got %f", p.Params().Float("voltage"))
	}
	if c.Params().Float("voltage") != 3 {
		t.Errorf("expected clone to hold 3, got %f", c.Params().Float("voltage"))
	}
}

func TestSignedAngleRange(t *testing.T) {
	limit := 7.25 * math.Pi / 180
	step := 0.25 * math.Pi / 180
	p := NewPanel(dynamo.Schema{
		{Name: "tilt", Kind: dynamo.KindAngle, Min: -limit, Max: limit, Step: step, Default: 0},
	})

	got, err := p.SetFloat("tilt", -0.05)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-(dynamo.TwoPi-0.05)) > 1e-12 {
		t.Errorf("expected -0.05 stored as %v, got %v", dynamo.TwoPi-0.05, got)
	}
	if got < 0 || got >= dynamo.TwoPi {
		t.Errorf("expected stored angle in [0, 2π), got %v", got)
	}

	got, _ = p.SetFloat("tilt", -1)
	if math.Abs(dynamo.SignedAngle(got)+limit) > 1e-12 {
		t.Errorf("expected clamp to -%v, got %v", limit, dynamo.SignedAngle(got))
	}
	if d := p.Display("tilt"); d != "-7.2°" && d != "-7.3°" {
		t.Errorf("expected signed display, got %q", d)
	}

	p.Reset()
	if _, err := p.Nudge("tilt", -2); err != nil {
		t.Fatal(err)
	}
	if got := dynamo.SignedAngle(p.Params().Float("tilt")); math.Abs(got+2*step) > 1e-12 {
		t.Errorf("expected nudge to -%v, got %v", 2*step, got)
	}
	if _, err := p.Nudge("tilt", 1); err != nil {
		t.Fatal(err)
	}
	if got := dynamo.SignedAngle(p.Params().Float("tilt")); math.Abs(got+step) > 1e-12 {
		t.Errorf("expected nudge back to -%v, got %v", step, got)
	}

	got, _ = p.SetFloat("tilt", 1)
	if math.Abs(got-limit) > 1e-12 {
		t.Errorf("expected clamp to %v, got %v", limit, got)
	}
}
