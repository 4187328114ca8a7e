package surface

import (
	"image/color"

	"github.com/san-kum/scisim/internal/dynamo"
)

// Op is one recorded call.
type Op struct {
	Kind  string
	Layer string
	Text  string
	Color color.Color
	// Points holds the device-space path painted by stroke and fill.
	Points []dynamo.Point
}

// Recorder logs every paint call with the layer it happened in. Path
// building calls are folded into the stroke or fill that consumes them.
type Recorder struct {
	Ops   []Op
	p     pather
	layer string
}

func NewRecorder() *Recorder {
	return &Recorder{p: newPather(dynamo.Identity())}
}

// Reset drops the log.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	r.layer = ""
	r.p = newPather(dynamo.Identity())
}

func (r *Recorder) Mark(layer string) {
	r.layer = layer
	r.Ops = append(r.Ops, Op{Kind: "mark", Layer: layer})
}

func (r *Recorder) record(kind, text string, pts []dynamo.Point) {
	r.Ops = append(r.Ops, Op{Kind: kind, Layer: r.layer, Text: text, Color: r.p.cur.paint.color, Points: pts})
}

func (r *Recorder) Size() (float64, float64) { return Width, Height }

func (r *Recorder) Clear(c color.Color) {
	r.p.take()
	r.p.setColor(c)
	r.record("clear", "", nil)
}

func (r *Recorder) Push()                  { r.p.push() }
func (r *Recorder) Pop()                   { r.p.pop() }
func (r *Recorder) Translate(x, y float64) { r.p.translate(x, y) }
func (r *Recorder) Rotate(a float64)       { r.p.rotate(a) }
func (r *Recorder) Scale(sx, sy float64)   { r.p.scale(sx, sy) }

func (r *Recorder) SetColor(c color.Color) { r.p.setColor(c) }
func (r *Recorder) SetLineWidth(w float64) { r.p.cur.width = w }
func (r *Recorder) SetDash(d ...float64)   { r.p.cur.dash = d }

func (r *Recorder) SetLinearGradient(x0, y0, x1, y1 float64, stops ...Stop) {
	r.p.setGradient(&gradient{x0: x0, y0: y0, x1: x1, y1: y1, stops: stops})
}

func (r *Recorder) SetRadialGradient(cx, cy, r0, r1 float64, stops ...Stop) {
	r.p.setGradient(&gradient{radial: true, x0: cx, y0: cy, x1: r0, y1: r1, stops: stops})
}

func (r *Recorder) MoveTo(x, y float64)              { r.p.moveTo(x, y) }
func (r *Recorder) LineTo(x, y float64)              { r.p.lineTo(x, y) }
func (r *Recorder) ClosePath()                       { r.p.closePath() }
func (r *Recorder) DrawLine(x1, y1, x2, y2 float64)  { r.p.line(x1, y1, x2, y2) }
func (r *Recorder) DrawRect(x, y, w, h float64)      { r.p.rect(x, y, w, h) }
func (r *Recorder) DrawCircle(x, y, rad float64)     { r.p.ellipse(x, y, rad, rad) }
func (r *Recorder) DrawEllipse(x, y, rx, ry float64) { r.p.ellipse(x, y, rx, ry) }
func (r *Recorder) DrawArc(x, y, rad, a1, a2 float64) {
	r.p.arc(x, y, rad, a1, a2)
}

func flatten(path []subpath) []dynamo.Point {
	var pts []dynamo.Point
	for _, sp := range path {
		pts = append(pts, sp.pts...)
	}
	return pts
}

func (r *Recorder) Stroke() { r.record("stroke", "", flatten(r.p.take())) }
func (r *Recorder) Fill()   { r.record("fill", "", flatten(r.p.take())) }

func (r *Recorder) DrawText(s string, x, y, ax, ay float64) {
	r.record("text", s, []dynamo.Point{r.p.dev(x, y)})
}

// Layers returns the marked layer names in order.
func (r *Recorder) Layers() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == "mark" {
			out = append(out, op.Layer)
		}
	}
	return out
}

// Count returns how many paint calls happened in layer; "" counts all.
func (r *Recorder) Count(layer string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == "mark" {
			continue
		}
		if layer == "" || op.Layer == layer {
			n++
		}
	}
	return n
}

// Texts returns every string drawn, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

// Points returns every painted device-space point.
func (r *Recorder) Points() []dynamo.Point {
	var out []dynamo.Point
	for _, op := range r.Ops {
		out = append(out, op.Points...)
	}
	return out
}
