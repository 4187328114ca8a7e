package surface

import (
	"image/color"
	"math"

	"github.com/san-kum/scisim/internal/dynamo"
)

// paint is the current fill or stroke style of a vector backend.
type paint struct {
	color    color.Color
	gradient *gradient
}

type gradient struct {
	radial         bool
	x0, y0, x1, y1 float64 // linear: endpoints; radial: centre and (r0, r1)
	stops          []Stop
}

type gstate struct {
	tr    dynamo.Transform
	paint paint
	width float64
	dash  []float64
}

// subpath is a flattened polyline in device coordinates.
type subpath struct {
	pts    []dynamo.Point
	closed bool
}

// pather keeps the transform stack and flattens the current path for the
// backends that do not have a native path model.
type pather struct {
	cur   gstate
	stack []gstate
	path  []subpath
}

func newPather(base dynamo.Transform) pather {
	return pather{cur: gstate{tr: base, paint: paint{color: color.White}, width: 1}}
}

func (p *pather) push() { p.stack = append(p.stack, p.cur) }

func (p *pather) pop() {
	if len(p.stack) == 0 {
		return
	}
	p.cur = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
}

func (p *pather) translate(x, y float64) { p.cur.tr = p.cur.tr.Translate(x, y) }
func (p *pather) rotate(a float64)       { p.cur.tr = p.cur.tr.Rotate(a) }
func (p *pather) scale(x, y float64)     { p.cur.tr = p.cur.tr.Scale(x, y) }

func (p *pather) setColor(c color.Color) { p.cur.paint = paint{color: c} }

func (p *pather) setGradient(g *gradient) {
	first := color.Color(color.White)
	if len(g.stops) > 0 {
		first = g.stops[0].Color
	}
	p.cur.paint = paint{color: first, gradient: g}
}

func (p *pather) dev(x, y float64) dynamo.Point {
	return p.cur.tr.Apply(dynamo.Pt(x, y))
}

func (p *pather) moveTo(x, y float64) {
	p.path = append(p.path, subpath{pts: []dynamo.Point{p.dev(x, y)}})
}

func (p *pather) lineTo(x, y float64) {
	if len(p.path) == 0 || p.path[len(p.path)-1].closed {
		p.moveTo(x, y)
		return
	}
	last := &p.path[len(p.path)-1]
	last.pts = append(last.pts, p.dev(x, y))
}

func (p *pather) closePath() {
	if len(p.path) > 0 {
		p.path[len(p.path)-1].closed = true
	}
}

func (p *pather) line(x1, y1, x2, y2 float64) {
	p.moveTo(x1, y1)
	p.lineTo(x2, y2)
}

func (p *pather) rect(x, y, w, h float64) {
	p.moveTo(x, y)
	p.lineTo(x+w, y)
	p.lineTo(x+w, y+h)
	p.lineTo(x, y+h)
	p.closePath()
}

// segments picks a flattening resolution for an arc of the given sweep and
// device radius.
func segments(sweep, r float64) int {
	n := int(math.Ceil(math.Abs(sweep) * math.Max(r, 1) / 6))
	if n < 8 {
		n = 8
	}
	if n > 96 {
		n = 96
	}
	return n
}

func (p *pather) ellipticalArc(x, y, rx, ry, a1, a2 float64, newSub bool) {
	n := segments(a2-a1, math.Max(rx, ry)*p.cur.tr.ScaleFactor())
	for i := 0; i <= n; i++ {
		a := a1 + (a2-a1)*float64(i)/float64(n)
		s, c := math.Sincos(a)
		px, py := x+rx*c, y+ry*s
		if i == 0 && newSub {
			p.moveTo(px, py)
			continue
		}
		p.lineTo(px, py)
	}
}

func (p *pather) ellipse(x, y, rx, ry float64) {
	p.ellipticalArc(x, y, rx, ry, 0, 2*math.Pi, true)
	p.closePath()
}

func (p *pather) arc(x, y, r, a1, a2 float64) {
	p.ellipticalArc(x, y, r, r, a1, a2, len(p.path) == 0 || p.path[len(p.path)-1].closed)
}

// take returns the current path and starts a new one.
func (p *pather) take() []subpath {
	path := p.path
	p.path = nil
	return path
}

// lineWidth is the stroke width in device units.
func (p *pather) lineWidth() float64 {
	return p.cur.width * p.cur.tr.ScaleFactor()
}
