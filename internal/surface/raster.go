package surface

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"
)

// Raster draws anti-aliased into an RGBA image through gg.
type Raster struct {
	dc   *gg.Context
	w, h float64
}

// NewRaster allocates a w×h pixel surface. When the pixel size differs
// from the logical 800×600 viewport the base transform scales to fit.
func NewRaster(w, h int) *Raster {
	dc := gg.NewContext(w, h)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	r := &Raster{dc: dc, w: Width, h: Height}
	if w != Width || h != Height {
		dc.Scale(float64(w)/Width, float64(h)/Height)
	}
	return r
}

func (r *Raster) Size() (float64, float64) { return r.w, r.h }

// Pixels is the device size in pixels.
func (r *Raster) Pixels() (int, int) { return r.dc.Width(), r.dc.Height() }

func (r *Raster) Clear(c color.Color) {
	r.dc.ClearPath()
	r.dc.SetColor(c)
	r.dc.Clear()
}

func (r *Raster) Push()                  { r.dc.Push() }
func (r *Raster) Pop()                   { r.dc.Pop() }
func (r *Raster) Translate(x, y float64) { r.dc.Translate(x, y) }
func (r *Raster) Rotate(a float64)       { r.dc.Rotate(a) }
func (r *Raster) Scale(sx, sy float64)   { r.dc.Scale(sx, sy) }

func (r *Raster) SetColor(c color.Color) { r.dc.SetColor(c) }
func (r *Raster) SetLineWidth(w float64) { r.dc.SetLineWidth(w * r.scaleFactor()) }
func (r *Raster) SetDash(d ...float64) {
	k := r.scaleFactor()
	scaled := make([]float64, len(d))
	for i, v := range d {
		scaled[i] = v * k
	}
	r.dc.SetDash(scaled...)
}

// scaleFactor is the current user-to-device scale; gg applies line widths
// and dashes in device units.
func (r *Raster) scaleFactor() float64 {
	x0, y0 := r.dc.TransformPoint(0, 0)
	x1, y1 := r.dc.TransformPoint(1, 0)
	x2, y2 := r.dc.TransformPoint(0, 1)
	return math.Sqrt(math.Abs((x1-x0)*(y2-y0) - (y1-y0)*(x2-x0)))
}

// Gradients in gg are sampled in device space, so the endpoints are mapped
// through the current transform here.
func (r *Raster) SetLinearGradient(x0, y0, x1, y1 float64, stops ...Stop) {
	dx0, dy0 := r.dc.TransformPoint(x0, y0)
	dx1, dy1 := r.dc.TransformPoint(x1, y1)
	g := gg.NewLinearGradient(dx0, dy0, dx1, dy1)
	for _, s := range stops {
		g.AddColorStop(s.Offset, s.Color)
	}
	r.dc.SetFillStyle(g)
	r.dc.SetStrokeStyle(g)
}

func (r *Raster) SetRadialGradient(cx, cy, r0, r1 float64, stops ...Stop) {
	dx, dy := r.dc.TransformPoint(cx, cy)
	k := r.scaleFactor()
	g := gg.NewRadialGradient(dx, dy, r0*k, dx, dy, r1*k)
	for _, s := range stops {
		g.AddColorStop(s.Offset, s.Color)
	}
	r.dc.SetFillStyle(g)
	r.dc.SetStrokeStyle(g)
}

func (r *Raster) MoveTo(x, y float64) { r.dc.MoveTo(x, y) }
func (r *Raster) LineTo(x, y float64) { r.dc.LineTo(x, y) }
func (r *Raster) ClosePath()          { r.dc.ClosePath() }

func (r *Raster) DrawLine(x1, y1, x2, y2 float64)   { r.dc.DrawLine(x1, y1, x2, y2) }
func (r *Raster) DrawRect(x, y, w, h float64)       { r.dc.DrawRectangle(x, y, w, h) }
func (r *Raster) DrawCircle(x, y, rad float64)      { r.dc.DrawCircle(x, y, rad) }
func (r *Raster) DrawEllipse(x, y, rx, ry float64)  { r.dc.DrawEllipse(x, y, rx, ry) }
func (r *Raster) DrawArc(x, y, rad, a1, a2 float64) { r.dc.DrawArc(x, y, rad, a1, a2) }

func (r *Raster) Stroke() { r.dc.Stroke() }
func (r *Raster) Fill()   { r.dc.Fill() }

func (r *Raster) DrawText(s string, x, y, ax, ay float64) {
	r.dc.DrawStringAnchored(s, x, y, ax, ay)
}

// Image returns the backing image. It is reused by later frames.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// RGBA returns the backing pixels for hosts that upload them directly.
func (r *Raster) RGBA() *image.RGBA {
	if im, ok := r.dc.Image().(*image.RGBA); ok {
		return im
	}
	b := r.dc.Image().Bounds()
	im := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			im.Set(x, y, r.dc.Image().At(x, y))
		}
	}
	return im
}

// EncodePNG writes the current frame as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	if err := r.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
