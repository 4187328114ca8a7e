package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/scisim/internal/dynamo"
)

func TestConvergingLensBranches(t *testing.T) {
	cases := []struct {
		u, v float64
		real bool
	}{
		{30, 60, true},
		{10, -20, false},
		{60, 30, true},
	}
	for _, tc := range cases {
		res := Optics{Element: ConvergingLens, Focal: 20, ObjectDistance: tc.u, ObjectHeight: 5}.Solve(300)
		if !res.Valid() {
			t.Fatalf("u=%f: expected valid, got %v", tc.u, res.Err())
		}
		if math.Abs(res.V-tc.v) > 1e-9 {
			t.Errorf("u=%f: expected v=%f, got %f", tc.u, tc.v, res.V)
		}
		if res.Real != tc.real {
			t.Errorf("u=%f: expected real=%t", tc.u, tc.real)
		}
	}
}

func TestMagnificationAndOrientation(t *testing.T) {
	real := Optics{Element: ConvergingLens, Focal: 20, ObjectDistance: 30, ObjectHeight: 5}.Solve(300)
	if math.Abs(real.M-2) > 1e-9 || math.Abs(real.ImageH+10) > 1e-9 {
		t.Errorf("expected m=2 h'=-10, got m=%f h'=%f", real.M, real.ImageH)
	}
	if real.Nature() != "real, inverted, magnified" {
		t.Errorf("unexpected nature %q", real.Nature())
	}

	virtual := Optics{Element: ConvergingLens, Focal: 20, ObjectDistance: 10, ObjectHeight: 5}.Solve(300)
	if virtual.ImageH <= 0 {
		t.Errorf("expected upright virtual image, got h'=%f", virtual.ImageH)
	}
}

func TestDivergingAndConvexAlwaysVirtual(t *testing.T) {
	for _, e := range []Element{DivergingLens, ConvexMirror} {
		for _, u := range []float64{5, 20, 80} {
			res := Optics{Element: e, Focal: 20, ObjectDistance: u, ObjectHeight: 4}.Solve(300)
			if res.V >= 0 || res.Real {
				t.Errorf("%s u=%f: expected virtual image, got v=%f", e, u, res.V)
			}
			if math.Abs(res.ImageH) >= 4 {
				t.Errorf("%s u=%f: expected diminished image, got %f", e, u, res.ImageH)
			}
		}
	}
}

func TestObjectAtFocalPoint(t *testing.T) {
	res := Optics{Element: ConcaveMirror, Focal: 20, ObjectDistance: 20, ObjectHeight: 5}.Solve(300)
	if res.Valid() {
		t.Fatal("expected invalid result at the focal point")
	}
	if !errors.Is(res.Err(), dynamo.ErrImageAtInfinity) {
		t.Errorf("expected ErrImageAtInfinity, got %v", res.Err())
	}
	if !res.AtInfinity {
		t.Error("expected AtInfinity to be set")
	}
	for _, q := range res.Quantities() {
		if !dynamo.Finite(q.Value) {
			t.Errorf("quantity %s is not finite", q.Name)
		}
		if q.Name == "v" {
			t.Error("image distance should not be reported at infinity")
		}
	}
}

func TestPlaneMirror(t *testing.T) {
	res := Optics{Element: PlaneMirror, ObjectDistance: 40, ObjectHeight: 6}.Solve(200)
	if res.V != -40 || res.ImageH != 6 || res.ImageX != 40 {
		t.Errorf("expected v=-40 h'=6 x=40, got v=%f h'=%f x=%f", res.V, res.ImageH, res.ImageX)
	}
}

func TestRaysMeetAtRealImage(t *testing.T) {
	for _, e := range []Element{ConvergingLens, ConcaveMirror} {
		res := Optics{Element: e, Focal: 20, ObjectDistance: 50, ObjectHeight: 8}.Solve(1000)
		image := dynamo.Pt(res.ImageX, res.ImageH)
		outgoing := 0
		for i := 1; i < len(res.Rays); i += 2 {
			r := res.Rays[i]
			// Distance from the image point to the outgoing segment's line.
			d := r.To.Sub(r.From).Normalize()
			off := math.Abs(d.Cross(image.Sub(r.From)))
			if off > 1e-6 {
				t.Errorf("%s: ray %d misses the image by %g", e, i, off)
			}
			outgoing++
		}
		if outgoing != 3 {
			t.Errorf("%s: expected 3 principal rays, got %d", e, outgoing)
		}
	}
}

func TestSnell(t *testing.T) {
	r, tir := Refract(math.Pi/6, 1, 1.5)
	if tir {
		t.Fatal("unexpected total internal reflection entering glass")
	}
	if math.Abs(math.Sin(r)*1.5-0.5) > 1e-12 {
		t.Errorf("Snell's law violated: sin r = %f", math.Sin(r))
	}

	crit, ok := CriticalAngle(1.5, 1)
	if !ok {
		t.Fatal("expected a critical angle from glass to air")
	}
	if _, tir := Refract(crit+0.01, 1.5, 1); !tir {
		t.Error("expected TIR beyond the critical angle")
	}
	if _, tir := Refract(crit-0.01, 1.5, 1); tir {
		t.Error("unexpected TIR below the critical angle")
	}
	if _, ok := CriticalAngle(1, 1.5); ok {
		t.Error("no critical angle entering a denser medium")
	}
}

func TestBoundarySolve(t *testing.T) {
	res := Boundary{Material: Water, Incidence: 1.2, FromInside: true}.Solve()
	if !res.TIR || res.Transmits {
		t.Error("expected TIR leaving water at 69°")
	}
	if res.Reflectance != 1 {
		t.Errorf("expected full reflectance under TIR, got %f", res.Reflectance)
	}

	mirror := Boundary{Material: Mirror, Incidence: 0.4}.Solve()
	if mirror.Reflection != 0.4 || mirror.Transmits {
		t.Errorf("expected mirror reflection at 0.4 without transmission, got %+v", mirror)
	}

	rough := Boundary{Material: Rough, Incidence: 0.4}.Solve()
	if len(rough.Scatter) != 7 {
		t.Errorf("expected 7 scattered rays, got %d", len(rough.Scatter))
	}

	if (Boundary{Material: Glass, Incidence: math.Pi / 2}).Solve().Valid() {
		t.Error("expected grazing incidence to be rejected")
	}
}
