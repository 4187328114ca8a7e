package scene

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/scisim/internal/dynamo"
	"github.com/san-kum/scisim/internal/surface"
)

// View maps world coordinates (y up) onto the 800×600 surface (y down).
type View struct {
	Origin dynamo.Point
	Scale  float64
}

// CenteredView puts the world origin at the middle of the surface.
func CenteredView(scale float64) View {
	return View{Origin: dynamo.Pt(surface.Width/2, surface.Height/2), Scale: scale}
}

func (v View) X(x float64) float64 { return v.Origin.X + x*v.Scale }
func (v View) Y(y float64) float64 { return v.Origin.Y - y*v.Scale }

// Screen maps a world point to surface coordinates.
func (v View) Screen(p dynamo.Point) dynamo.Point {
	return dynamo.Pt(v.X(p.X), v.Y(p.Y))
}

// World is the inverse of Screen.
func (v View) World(p dynamo.Point) dynamo.Point {
	return dynamo.Pt((p.X-v.Origin.X)/v.Scale, (v.Origin.Y-p.Y)/v.Scale)
}

// Polyline strokes a world-space path.
func (v View) Polyline(s surface.Surface, pts []dynamo.Point) {
	if len(pts) < 2 {
		return
	}
	p := v.Screen(pts[0])
	s.MoveTo(p.X, p.Y)
	for _, q := range pts[1:] {
		p = v.Screen(q)
		s.LineTo(p.X, p.Y)
	}
	s.Stroke()
}

// Arrow draws a line from (x1, y1) to (x2, y2) in surface coordinates with
// a filled head of the given size.
func Arrow(s surface.Surface, x1, y1, x2, y2, head float64) {
	s.DrawLine(x1, y1, x2, y2)
	s.Stroke()
	ArrowHead(s, x2, y2, math.Atan2(y2-y1, x2-x1), head)
}

// ArrowHead fills a triangle pointing along angle (surface coordinates).
func ArrowHead(s surface.Surface, x, y, angle, size float64) {
	const spread = 0.45
	s.MoveTo(x, y)
	s.LineTo(x-size*math.Cos(angle-spread), y-size*math.Sin(angle-spread))
	s.LineTo(x-size*math.Cos(angle+spread), y-size*math.Sin(angle+spread))
	s.ClosePath()
	s.Fill()
}

// Grid strokes a square lattice over the whole surface.
func Grid(s surface.Surface, pal Palette, spacing float64) {
	w, h := s.Size()
	s.SetColor(pal.Grid)
	s.SetLineWidth(1)
	for x := spacing; x < w; x += spacing {
		s.DrawLine(x, 0, x, h)
	}
	for y := spacing; y < h; y += spacing {
		s.DrawLine(0, y, w, y)
	}
	s.Stroke()
}

// FormatQuantity renders "Label: value unit" with a precision suited to
// the magnitude.
func FormatQuantity(q dynamo.Quantity) string {
	v := q.Value
	var num string
	switch a := math.Abs(v); {
	case a == 0:
		num = "0"
	case a >= 1000:
		num = fmt.Sprintf("%.0f", v)
	case a >= 10:
		num = fmt.Sprintf("%.1f", v)
	case a >= 0.01:
		num = fmt.Sprintf("%.2f", v)
	default:
		num = fmt.Sprintf("%.2e", v)
	}
	label := q.Label
	if label == "" {
		label = q.Name
	}
	if q.Unit == "" {
		return label + ": " + num
	}
	if q.Unit == "°" || q.Unit == "%" {
		return label + ": " + num + q.Unit
	}
	return label + ": " + num + " " + q.Unit
}

// Status is the one-line state shown for an invalid result.
func Status(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, dynamo.ErrShortCircuit):
		return "short circuit"
	case errors.Is(err, dynamo.ErrImageAtInfinity):
		return "image at infinity"
	}
	return strings.TrimPrefix(err.Error(), "scisim: ")
}

// InfoLayer draws the title, the quantities of the result and, for an
// invalid result, its status line.
func InfoLayer(title string) Layer {
	return Layer{
		Name:  "info",
		Stage: Info,
		Draw: func(s surface.Surface, f *Frame) {
			const x, line = 14.0, 16.0
			y := 14.0
			s.SetColor(f.Palette.Text)
			s.DrawText(title, x, y, 0, 0)
			y += line * 1.4
			if f.Result == nil {
				return
			}
			s.SetColor(f.Palette.Muted)
			for _, q := range f.Result.Quantities() {
				s.DrawText(FormatQuantity(q), x, y, 0, 0)
				y += line
			}
			if !f.Result.Valid() {
				s.SetColor(f.Palette.Error)
				s.DrawText(Status(f.Result.Err()), x, y, 0, 0)
			}
		},
	}
}

// backgroundLayer clears to the palette background and draws a grid.
func backgroundLayer(spacing float64) Layer {
	return Layer{
		Name:  "background",
		Stage: Background,
		Draw: func(s surface.Surface, f *Frame) {
			Grid(s, f.Palette, spacing)
		},
	}
}

func deg(v float64) float64 { return v * math.Pi / 180 }
