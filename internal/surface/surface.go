// Package surface is the drawing surface every scene renders onto.
//
// The [Surface] interface follows a path model: shape calls add to the
// current path, and [Surface.Stroke] or [Surface.Fill] paints and clears
// it. Coordinates are logical units (800×600 for every simulation) under
// a transform stack saved and restored with Push and Pop.
//
// Backends:
//
//   - [Raster]: anti-aliased RGBA image, PNG/GIF export and window pixels
//   - [Braille]: monochrome terminal canvas of Unicode braille cells
//   - [SVG]: vector document
//   - [Recorder]: call log, used to check draw ordering
package surface

import (
	"image/color"
)

// Logical size of every simulation viewport.
const (
	Width  = 800
	Height = 600
)

// Stop is one colour stop of a gradient, Offset in [0, 1].
type Stop struct {
	Offset float64
	Color  color.Color
}

// Surface is a canvas-like drawing target.
type Surface interface {
	Size() (w, h float64)
	// Clear paints the whole surface and discards the current path.
	Clear(c color.Color)

	Push()
	Pop()
	Translate(x, y float64)
	Rotate(angle float64)
	Scale(sx, sy float64)

	SetColor(c color.Color)
	SetLineWidth(w float64)
	// SetDash sets a dash pattern for strokes; no arguments means solid.
	SetDash(dashes ...float64)
	SetLinearGradient(x0, y0, x1, y1 float64, stops ...Stop)
	SetRadialGradient(cx, cy, r0, r1 float64, stops ...Stop)

	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	DrawLine(x1, y1, x2, y2 float64)
	DrawRect(x, y, w, h float64)
	DrawCircle(x, y, r float64)
	DrawEllipse(x, y, rx, ry float64)
	// DrawArc continues the current path along a circular arc from angle
	// a1 to a2, radians, clockwise on screen for a2 > a1.
	DrawArc(x, y, r, a1, a2 float64)

	Stroke()
	Fill()

	// DrawText places s with its anchor (ax, ay) at (x, y); (0, 0) is the
	// top left of the text, (0.5, 0.5) its centre.
	DrawText(s string, x, y, ax, ay float64)
}

// Marker is implemented by surfaces that want to know where each render
// layer starts.
type Marker interface {
	Mark(layer string)
}

// Mark tells s that a named layer begins, if s cares.
func Mark(s Surface, layer string) {
	if m, ok := s.(Marker); ok {
		m.Mark(layer)
	}
}
