package physics

import (
	"fmt"
	"image/color"
	"math"

	"github.com/san-kum/scisim/internal/dynamo"
)

// Spectral is one band of visible light, ordered by ascending wavelength
// index: violet is 0.
type Spectral struct {
	Name       string
	Wavelength float64 // nanometres
	Color      color.RGBA
}

// Spectrum holds the seven classic bands, violet to red.
var Spectrum = []Spectral{
	{"violet", 410, color.RGBA{148, 0, 211, 255}},
	{"indigo", 445, color.RGBA{75, 0, 130, 255}},
	{"blue", 475, color.RGBA{0, 90, 255, 255}},
	{"green", 520, color.RGBA{0, 200, 0, 255}},
	{"yellow", 575, color.RGBA{255, 230, 0, 255}},
	{"orange", 600, color.RGBA{255, 140, 0, 255}},
	{"red", 680, color.RGBA{230, 0, 0, 255}},
}

// SpectralIndex returns the position of a named band, or -1.
func SpectralIndex(name string) int {
	for i, s := range Spectrum {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// Prism is the parameter set of the dispersion model.
type Prism struct {
	// MaxDeviation is the bend of the violet ray, radians.
	MaxDeviation float64
	// Spread is the deviation lost per band toward red, radians.
	Spread float64
}

// DefaultPrism gives a visible fan for an 800×600 view.
func DefaultPrism() Prism {
	return Prism{MaxDeviation: 48 * math.Pi / 180, Spread: 1.5 * math.Pi / 180}
}

// Deviation is the refraction angle of band i: maxDev − i·spread, so it
// strictly decreases with wavelength.
func (p Prism) Deviation(i int) float64 {
	return p.MaxDeviation - float64(i)*p.Spread
}

// DispersedRay is one band leaving the prism.
type DispersedRay struct {
	Band      Spectral
	Deviation float64
	// Reflected is true when the target surface sends this band back.
	Reflected bool
}

// Light is the incident beam colour: "white" or a band name.
type Light string

const White Light = "white"

// SurfaceColors lists the target surfaces in control order.
var SurfaceColors = []string{"white", "black", "red", "orange", "yellow", "green", "blue", "indigo", "violet"}

// LightOptions lists the beam colours in control order.
var LightOptions = []string{"white", "red", "orange", "yellow", "green", "blue", "indigo", "violet"}

// SurfaceResponse reports, per spectral band, whether a surface of the
// given colour reflects it. White reflects every band, black none, and a
// coloured surface only its own band. Bands absent from the light are
// never reflected.
func SurfaceResponse(light Light, surface string) ([]bool, error) {
	out := make([]bool, len(Spectrum))
	if light != White && SpectralIndex(string(light)) < 0 {
		return out, fmt.Errorf("%w: light %q", dynamo.ErrInvalidOption, light)
	}
	own := SpectralIndex(surface)
	if surface != "white" && surface != "black" && own < 0 {
		return out, fmt.Errorf("%w: surface %q", dynamo.ErrInvalidOption, surface)
	}
	for i, band := range Spectrum {
		present := light == White || string(light) == band.Name
		if !present {
			continue
		}
		switch surface {
		case "white":
			out[i] = true
		case "black":
		default:
			out[i] = i == own
		}
	}
	return out, nil
}

// PerceivedColor mixes the reflected bands into the colour the eye sees;
// black when nothing is reflected.
func PerceivedColor(reflected []bool) color.RGBA {
	var r, g, b, n int
	for i, on := range reflected {
		if !on || i >= len(Spectrum) {
			continue
		}
		c := Spectrum[i].Color
		r, g, b = r+int(c.R), g+int(c.G), b+int(c.B)
		n++
	}
	switch {
	case n == 0:
		return color.RGBA{A: 255}
	case n == len(Spectrum):
		return color.RGBA{255, 255, 255, 255}
	}
	return color.RGBA{uint8(r / n), uint8(g / n), uint8(b / n), 255}
}

// DispersionResult is one frame of the prism model.
type DispersionResult struct {
	Light     Light
	Surface   string
	Rays      []DispersedRay
	Perceived color.RGBA
	err       error
}

func (r DispersionResult) Valid() bool { return r.err == nil }
func (r DispersionResult) Err() error  { return r.err }

func (r DispersionResult) Quantities() []dynamo.Quantity {
	reflected := 0
	for _, ray := range r.Rays {
		if ray.Reflected {
			reflected++
		}
	}
	q := []dynamo.Quantity{
		{Name: "bands", Label: "Bands", Value: float64(len(r.Rays))},
		{Name: "reflected", Label: "Reflected bands", Value: float64(reflected)},
	}
	if len(r.Rays) > 1 {
		spread := r.Rays[0].Deviation - r.Rays[len(r.Rays)-1].Deviation
		q = append(q, dynamo.Quantity{Name: "spread", Label: "Fan width", Unit: "°", Value: spread * 180 / math.Pi})
	}
	return q
}

// Disperse splits the beam into its bands and applies the surface.
func (p Prism) Disperse(light Light, surface string) DispersionResult {
	res := DispersionResult{Light: light, Surface: surface}
	refl, err := SurfaceResponse(light, surface)
	if err != nil {
		res.err = err
		return res
	}
	for i, band := range Spectrum {
		if light != White && string(light) != band.Name {
			continue
		}
		res.Rays = append(res.Rays, DispersedRay{Band: band, Deviation: p.Deviation(i), Reflected: refl[i]})
	}
	res.Perceived = PerceivedColor(refl)
	return res
}
