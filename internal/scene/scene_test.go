package scene

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/scisim/internal/dynamo"
	"github.com/san-kum/scisim/internal/surface"
)

// staticResult is a fixed model output for the stage-ordering fixture.
type staticResult struct{ err error }

func (r staticResult) Valid() bool                   { return r.err == nil }
func (r staticResult) Err() error                    { return r.err }
func (r staticResult) Quantities() []dynamo.Quantity { return nil }

type shuffled struct{ err error }

func (shuffled) ID() string            { return "shuffled" }
func (shuffled) Title() string         { return "Shuffled" }
func (shuffled) BaseRate() float64     { return 0.01 }
func (shuffled) Schema() dynamo.Schema { return nil }

func (s shuffled) Compute(dynamo.Params, dynamo.AnimationState) dynamo.Result {
	return staticResult{s.err}
}

func (shuffled) Layers() []Layer {
	dot := func(sf surface.Surface, f *Frame) {
		sf.DrawCircle(10, 10, 2)
		sf.Fill()
	}
	return []Layer{
		{Name: "info", Stage: Info, Draw: dot},
		{Name: "body", Stage: Bodies, Draw: dot},
		{Name: "overlay", Stage: Overlay, Derived: true, Draw: dot},
		{Name: "bg", Stage: Background, Draw: dot},
		{Name: "apparatus", Stage: Apparatus, Draw: dot},
		{Name: "body-2", Stage: Bodies, Draw: dot},
	}
}

func render(sim Simulation, p dynamo.Params, anim dynamo.AnimationState) (*surface.Recorder, dynamo.Result) {
	rec := surface.NewRecorder()
	res := Render(rec, sim, dynamo.Frame{Params: p, Anim: anim, Width: surface.Width, Height: surface.Height}, PaletteMinimal)
	return rec, res
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestRenderOrdersLayersByStage(t *testing.T) {
	rec, _ := render(shuffled{}, dynamo.Params{}, dynamo.AnimationState{})
	got := strings.Join(rec.Layers(), ",")
	want := "bg,overlay,apparatus,body,body-2,info"
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	if rec.Ops[0].Kind != "clear" {
		t.Errorf("expected clear first, got %s", rec.Ops[0].Kind)
	}
}

func TestInvalidResultSkipsDerivedOnly(t *testing.T) {
	rec, _ := render(shuffled{err: dynamo.ErrInvalidConfig}, dynamo.Params{}, dynamo.AnimationState{})
	got := strings.Join(rec.Layers(), ",")
	if got != "bg,apparatus,body,body-2,info" {
		t.Errorf("expected overlay suppressed, got %s", got)
	}
}

func TestToggleSkipsOnlyItsLayer(t *testing.T) {
	c := Circuit{}
	p := c.Schema().Defaults().WithToggle("show_labels", false)
	rec, _ := render(c, p, dynamo.AnimationState{})
	layers := rec.Layers()
	if contains(layers, "labels") {
		t.Error("expected labels hidden")
	}
	for _, name := range []string{"background", "network", "current", "info"} {
		if !contains(layers, name) {
			t.Errorf("expected layer %s, got %v", name, layers)
		}
	}

	p = c.Schema().Defaults().WithToggle("show_current", false)
	rec, _ = render(c, p, dynamo.AnimationState{})
	if contains(rec.Layers(), "current") {
		t.Error("expected current flow hidden")
	}
	if !contains(rec.Layers(), "labels") {
		t.Error("expected labels to stay visible")
	}
}

func TestShortCircuitKeepsApparatus(t *testing.T) {
	c := Circuit{}
	p := c.Schema().Defaults().WithEnum("topology", "parallel").WithFloat("r1", 0)
	rec, res := render(c, p, dynamo.AnimationState{ElapsedTime: 3})
	if res.Valid() {
		t.Fatal("expected invalid result")
	}
	if !errors.Is(res.Err(), dynamo.ErrShortCircuit) {
		t.Errorf("expected ErrShortCircuit, got %v", res.Err())
	}
	if contains(rec.Layers(), "current") {
		t.Error("expected no current particles on a short circuit")
	}
	if rec.Count("network") == 0 {
		t.Error("expected the network to be drawn")
	}
	if !contains(rec.Texts(), "short circuit") {
		t.Errorf("expected status line, got %v", rec.Texts())
	}
}

func TestSeriesEndToEnd(t *testing.T) {
	c := Circuit{}
	p := c.Schema().Defaults().
		WithEnum("topology", "series").
		WithFloat("voltage", 9).WithFloat("r1", 3).WithFloat("r2", 6)
	_, res := render(c, p, dynamo.AnimationState{})
	for name, want := range map[string]float64{"resistance": 9, "current": 1, "power": 9} {
		got, ok := dynamo.Lookup(res, name)
		if !ok || math.Abs(got-want) > 1e-9 {
			t.Errorf("expected %s = %v, got %v", name, want, got)
		}
	}
}

func TestOpticsAtFocusHidesImage(t *testing.T) {
	o := Optics{}
	p := o.Schema().Defaults().WithFloat("focal", 20).WithFloat("object_distance", 20)
	rec, res := render(o, p, dynamo.AnimationState{})
	if !errors.Is(res.Err(), dynamo.ErrImageAtInfinity) {
		t.Fatalf("expected ErrImageAtInfinity, got %v", res.Err())
	}
	for _, name := range []string{"image", "rays", "photons"} {
		if contains(rec.Layers(), name) {
			t.Errorf("expected %s suppressed", name)
		}
	}
	for _, name := range []string{"element", "object", "focal-points"} {
		if !contains(rec.Layers(), name) {
			t.Errorf("expected %s drawn", name)
		}
	}
	for _, pt := range rec.Points() {
		if !pt.IsFinite() {
			t.Fatalf("expected finite geometry, got %v", pt)
		}
	}
}

func TestEverySimulationRenders(t *testing.T) {
	anim := dynamo.AnimationState{ElapsedAngle: 1.2, ElapsedTime: 7.5, Speed: 1}
	for _, sim := range All() {
		t.Run(sim.ID(), func(t *testing.T) {
			rec, res := render(sim, sim.Schema().Defaults(), anim)
			if !res.Valid() {
				t.Errorf("expected valid defaults, got %v", res.Err())
			}
			if rec.Count("info") == 0 {
				t.Error("expected an info panel")
			}
			for _, pt := range rec.Points() {
				if !pt.IsFinite() {
					t.Fatalf("expected finite geometry, got %v", pt)
				}
			}
		})
	}
}

func TestEverySimulationRendersToBraille(t *testing.T) {
	for _, sim := range All() {
		b := surface.NewBraille(80, 24)
		Render(b, sim, dynamo.Frame{Params: sim.Schema().Defaults(), Camera: dynamo.DefaultCamera()}, PaletteCyberpunk)
		if strings.TrimSpace(strings.ReplaceAll(b.String(), "⠀", "")) == "" {
			t.Errorf("expected %s to draw something", sim.ID())
		}
	}
}

func TestSchemaDefaultsAreLegal(t *testing.T) {
	for _, sim := range All() {
		for _, spec := range sim.Schema() {
			switch spec.Kind {
			case dynamo.KindFloat, dynamo.KindAngle:
				if spec.Default < spec.Min || spec.Default > spec.Max {
					t.Errorf("%s.%s: default %v outside [%v, %v]", sim.ID(), spec.Name, spec.Default, spec.Min, spec.Max)
				}
				if spec.Step <= 0 {
					t.Errorf("%s.%s: expected positive step", sim.ID(), spec.Name)
				}
			case dynamo.KindEnum:
				if len(spec.Options) == 0 {
					t.Errorf("%s.%s: expected options", sim.ID(), spec.Name)
				}
				if spec.DefaultOption != "" && !spec.HasOption(spec.DefaultOption) {
					t.Errorf("%s.%s: default %q not an option", sim.ID(), spec.Name, spec.DefaultOption)
				}
			}
		}
		for _, l := range sim.Layers() {
			if l.Toggle == "" {
				continue
			}
			spec, ok := sim.Schema().Lookup(l.Toggle)
			if !ok || spec.Kind != dynamo.KindToggle {
				t.Errorf("%s: layer %s gated by unknown toggle %q", sim.ID(), l.Name, l.Toggle)
			}
		}
	}
}

func TestRegistry(t *testing.T) {
	if len(IDs()) != 9 {
		t.Errorf("expected 9 simulations, got %d", len(IDs()))
	}
	sim, err := Get("lunar-3d")
	if err != nil {
		t.Fatal(err)
	}
	if !Uses3D(sim) {
		t.Error("expected lunar-3d to use the camera")
	}
	if _, err := Get("pendulum"); !errors.Is(err, dynamo.ErrUnknownSimulation) {
		t.Errorf("expected ErrUnknownSimulation, got %v", err)
	}
}

func TestMotorFlipsTwicePerTurn(t *testing.T) {
	m := Motor{}
	p := m.Schema().Defaults()
	anim := dynamo.AnimationState{Running: true, Speed: 1}
	last := 0.0
	flips := 0
	// Run slightly past a full turn so the wrap back to +1 is seen.
	for anim.ElapsedTime < dynamo.TwoPi+0.1 {
		pol, _ := dynamo.Lookup(m.Compute(p, anim), "polarity")
		if last != 0 && pol != last {
			flips++
		}
		last = pol
		anim = anim.Advance(m.BaseRate())
	}
	if flips != 2 {
		t.Errorf("expected 2 flips, got %d", flips)
	}
}

func TestLunarViewsAgree(t *testing.T) {
	flat, solid := LunarPhases{}, Lunar3D{}
	for day := 0.0; day < 60; day += 3.7 {
		anim := dynamo.AnimationState{ElapsedTime: day}
		a, _ := dynamo.Lookup(flat.Compute(flat.Schema().Defaults(), anim), "illuminated")
		b, _ := dynamo.Lookup(solid.Compute(solid.Schema().Defaults(), anim), "illuminated")
		if math.Abs(a-b) > 1e-9 {
			t.Errorf("day %.1f: expected %v, got %v", day, a, b)
		}
	}
}

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		q    dynamo.Quantity
		want string
	}{
		{dynamo.Quantity{Label: "Current", Unit: "A", Value: 1}, "Current: 1.00 A"},
		{dynamo.Quantity{Label: "Angle", Unit: "°", Value: 30}, "Angle: 30.0°"},
		{dynamo.Quantity{Name: "flips", Value: 0}, "flips: 0"},
		{dynamo.Quantity{Label: "B", Unit: "T", Value: 0.0001}, "B: 1.00e-04 T"},
	}
	for _, tt := range tests {
		if got := FormatQuantity(tt.q); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestGetPaletteFallsBack(t *testing.T) {
	if GetPalette("ocean").Name != "ocean" {
		t.Error("expected ocean palette")
	}
	if GetPalette("nope").Name != "cyberpunk" {
		t.Error("expected cyberpunk fallback")
	}
}

func TestSunspotTiltIsSignedAngle(t *testing.T) {
	spec, ok := Sunspots{}.Schema().Lookup("tilt")
	if !ok || spec.Kind != dynamo.KindAngle {
		t.Fatalf("expected tilt to be an angle, got %+v", spec)
	}
	if spec.Min >= 0 || spec.Max <= 0 {
		t.Errorf("expected a signed range, got [%v, %v]", spec.Min, spec.Max)
	}

	anim := dynamo.AnimationState{ElapsedTime: 3}
	params := Sunspots{}.Schema().Defaults().WithFloat("tilt", dynamo.NormalizeAngle(deg(-5)))
	got := Sunspots{}.model(params, anim).Evaluate()

	want := Sunspots{}.model(Sunspots{}.Schema().Defaults(), anim)
	want.Tilt = deg(-5)
	ref := want.Evaluate()

	if got.Visible != ref.Visible || len(got.Spots) != len(ref.Spots) {
		t.Fatalf("expected %d visible of %d, got %d of %d", ref.Visible, len(ref.Spots), got.Visible, len(got.Spots))
	}
	for i := range got.Spots {
		g, r := got.Spots[i], ref.Spots[i]
		if math.Abs(g.Pos.X-r.Pos.X) > 1e-9 || math.Abs(g.Pos.Y-r.Pos.Y) > 1e-9 || math.Abs(g.Mu-r.Mu) > 1e-9 {
			t.Errorf("spot %d: expected %+v, got %+v", i, r, g)
		}
	}
}
