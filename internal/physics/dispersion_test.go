package physics

import (
	"errors"
	"image/color"
	"testing"

	"github.com/san-kum/scisim/internal/dynamo"
)

func TestDeviationDecreasesWithWavelength(t *testing.T) {
	res := DefaultPrism().Disperse(White, "white")
	if len(res.Rays) != 7 {
		t.Fatalf("expected 7 rays, got %d", len(res.Rays))
	}
	if res.Rays[0].Band.Name != "violet" || res.Rays[6].Band.Name != "red" {
		t.Errorf("expected violet first and red last, got %s..%s", res.Rays[0].Band.Name, res.Rays[6].Band.Name)
	}
	for i := 1; i < len(res.Rays); i++ {
		if res.Rays[i].Band.Wavelength <= res.Rays[i-1].Band.Wavelength {
			t.Errorf("band %d not in ascending wavelength", i)
		}
		if res.Rays[i].Deviation >= res.Rays[i-1].Deviation {
			t.Errorf("band %s deviates no less than %s", res.Rays[i].Band.Name, res.Rays[i-1].Band.Name)
		}
	}
}

func TestSurfaceResponse(t *testing.T) {
	cases := []struct {
		light   Light
		surface string
		want    int
		only    string
	}{
		{White, "white", 7, ""},
		{White, "black", 0, ""},
		{White, "red", 1, "red"},
		{White, "green", 1, "green"},
		{"red", "green", 0, ""},
		{"blue", "blue", 1, "blue"},
		{"blue", "white", 1, "blue"},
	}
	for _, tc := range cases {
		got, err := SurfaceResponse(tc.light, tc.surface)
		if err != nil {
			t.Fatalf("%s on %s: %v", tc.light, tc.surface, err)
		}
		n := 0
		for i, on := range got {
			if on {
				n++
				if tc.only != "" && Spectrum[i].Name != tc.only {
					t.Errorf("%s on %s: unexpected %s reflected", tc.light, tc.surface, Spectrum[i].Name)
				}
			}
		}
		if n != tc.want {
			t.Errorf("%s on %s: expected %d reflected, got %d", tc.light, tc.surface, tc.want, n)
		}
	}
}

func TestSurfaceResponseRejectsUnknown(t *testing.T) {
	if _, err := SurfaceResponse(White, "plaid"); !errors.Is(err, dynamo.ErrInvalidOption) {
		t.Errorf("expected ErrInvalidOption, got %v", err)
	}
	if res := DefaultPrism().Disperse("ultraviolet", "white"); res.Valid() {
		t.Error("expected invalid result for unknown light")
	}
}

func TestPerceivedColor(t *testing.T) {
	res := DefaultPrism().Disperse(White, "black")
	if res.Perceived != (color.RGBA{A: 255}) {
		t.Errorf("expected black, got %v", res.Perceived)
	}
	res = DefaultPrism().Disperse(White, "white")
	if res.Perceived != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("expected white, got %v", res.Perceived)
	}
	res = DefaultPrism().Disperse(White, "red")
	if res.Perceived != Spectrum[6].Color {
		t.Errorf("expected red, got %v", res.Perceived)
	}
}
