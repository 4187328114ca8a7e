package surface

import (
	"fmt"
	"image/color"
	"strconv"
)

// Hex parses "#rrggbb" or "#rrggbbaa". Malformed input yields magenta so
// mistakes show up on screen.
func Hex(s string) color.RGBA {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{255, 0, 255, 255}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{255, 0, 255, 255}
	}
	if len(s) == 6 {
		return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}
	}
	return color.RGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}
}

// WithAlpha returns c with its alpha replaced, colour channels
// un-premultiplied first.
func WithAlpha(c color.Color, a uint8) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = a
	return n
}

// Luminance is the relative luminance of c in [0, 1], alpha ignored.
func Luminance(c color.Color) float64 {
	if c == nil {
		return 0
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return (0.2126*float64(n.R) + 0.7152*float64(n.G) + 0.0722*float64(n.B)) / 255
}

// Mix blends a toward b by t in [0, 1].
func Mix(a, b color.Color, t float64) color.RGBA {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	x := color.NRGBAModel.Convert(a).(color.NRGBA)
	y := color.NRGBAModel.Convert(b).(color.NRGBA)
	lerp := func(p, q uint8) uint8 { return uint8(float64(p) + (float64(q)-float64(p))*t + 0.5) }
	return color.RGBA{lerp(x.R, y.R), lerp(x.G, y.G), lerp(x.B, y.B), lerp(x.A, y.A)}
}

// Scale multiplies the colour channels of c by k, keeping alpha.
func Scale(c color.Color, k float64) color.RGBA {
	return Mix(color.RGBA{A: 255}, c, k)
}

// CSS renders c as an SVG paint value and opacity.
func CSS(c color.Color) (string, float64) {
	if c == nil {
		return "none", 1
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B), float64(n.A) / 255
}
