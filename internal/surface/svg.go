package surface

import (
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/san-kum/scisim/internal/dynamo"
)

// SVG records draw calls as an SVG document in logical units.
type SVG struct {
	p     pather
	defs  strings.Builder
	body  strings.Builder
	nGrad int
}

func NewSVG() *SVG {
	return &SVG{p: newPather(dynamo.Identity())}
}

func (s *SVG) Size() (float64, float64) { return Width, Height }

func (s *SVG) Clear(c color.Color) {
	s.p.take()
	s.defs.Reset()
	s.body.Reset()
	s.nGrad = 0
	fill, op := CSS(c)
	fmt.Fprintf(&s.body, `<rect width="100%%" height="100%%" fill="%s" fill-opacity="%.3g"/>`+"\n", fill, op)
}

func (s *SVG) Push()                  { s.p.push() }
func (s *SVG) Pop()                   { s.p.pop() }
func (s *SVG) Translate(x, y float64) { s.p.translate(x, y) }
func (s *SVG) Rotate(a float64)       { s.p.rotate(a) }
func (s *SVG) Scale(sx, sy float64)   { s.p.scale(sx, sy) }

func (s *SVG) SetColor(c color.Color) { s.p.setColor(c) }
func (s *SVG) SetLineWidth(w float64) { s.p.cur.width = w }
func (s *SVG) SetDash(d ...float64)   { s.p.cur.dash = append([]float64(nil), d...) }

func (s *SVG) SetLinearGradient(x0, y0, x1, y1 float64, stops ...Stop) {
	a, b := s.p.dev(x0, y0), s.p.dev(x1, y1)
	s.p.setGradient(&gradient{x0: a.X, y0: a.Y, x1: b.X, y1: b.Y, stops: stops})
}

func (s *SVG) SetRadialGradient(cx, cy, r0, r1 float64, stops ...Stop) {
	c := s.p.dev(cx, cy)
	k := s.p.cur.tr.ScaleFactor()
	s.p.setGradient(&gradient{radial: true, x0: c.X, y0: c.Y, x1: r0 * k, y1: r1 * k, stops: stops})
}

func (s *SVG) MoveTo(x, y float64)              { s.p.moveTo(x, y) }
func (s *SVG) LineTo(x, y float64)              { s.p.lineTo(x, y) }
func (s *SVG) ClosePath()                       { s.p.closePath() }
func (s *SVG) DrawLine(x1, y1, x2, y2 float64)  { s.p.line(x1, y1, x2, y2) }
func (s *SVG) DrawRect(x, y, w, h float64)      { s.p.rect(x, y, w, h) }
func (s *SVG) DrawCircle(x, y, r float64)       { s.p.ellipse(x, y, r, r) }
func (s *SVG) DrawEllipse(x, y, rx, ry float64) { s.p.ellipse(x, y, rx, ry) }
func (s *SVG) DrawArc(x, y, r, a1, a2 float64)  { s.p.arc(x, y, r, a1, a2) }

func pathData(path []subpath) string {
	var sb strings.Builder
	for _, sp := range path {
		for i, pt := range sp.pts {
			if i == 0 {
				fmt.Fprintf(&sb, "M%.1f,%.1f", pt.X, pt.Y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", pt.X, pt.Y)
			}
		}
		if sp.closed {
			sb.WriteString(" Z")
		}
	}
	return sb.String()
}

// paintRef returns the paint attribute value, writing a gradient
// definition when needed.
func (s *SVG) paintRef() (string, float64) {
	g := s.p.cur.paint.gradient
	if g == nil {
		return CSS(s.p.cur.paint.color)
	}
	s.nGrad++
	id := fmt.Sprintf("g%d", s.nGrad)
	if g.radial {
		fmt.Fprintf(&s.defs, `<radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%.1f" cy="%.1f" r="%.1f">`,
			id, g.x0, g.y0, g.y1)
	} else {
		fmt.Fprintf(&s.defs, `<linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f">`,
			id, g.x0, g.y0, g.x1, g.y1)
	}
	for _, st := range g.stops {
		off := st.Offset
		if g.radial && g.y1 > 0 {
			off = (g.x1 + st.Offset*(g.y1-g.x1)) / g.y1
		}
		c, op := CSS(st.Color)
		fmt.Fprintf(&s.defs, `<stop offset="%.3f" stop-color="%s" stop-opacity="%.3g"/>`, off, c, op)
	}
	if g.radial {
		s.defs.WriteString("</radialGradient>\n")
	} else {
		s.defs.WriteString("</linearGradient>\n")
	}
	return "url(#" + id + ")", 1
}

func (s *SVG) Stroke() {
	path := s.p.take()
	if len(path) == 0 {
		return
	}
	c, op := s.paintRef()
	fmt.Fprintf(&s.body, `<path d="%s" fill="none" stroke="%s" stroke-opacity="%.3g" stroke-width="%.2f" stroke-linecap="round"`,
		pathData(path), c, op, s.p.lineWidth())
	if len(s.p.cur.dash) > 0 {
		k := s.p.cur.tr.ScaleFactor()
		parts := make([]string, len(s.p.cur.dash))
		for i, d := range s.p.cur.dash {
			parts[i] = fmt.Sprintf("%.1f", d*k)
		}
		fmt.Fprintf(&s.body, ` stroke-dasharray="%s"`, strings.Join(parts, ","))
	}
	s.body.WriteString("/>\n")
}

func (s *SVG) Fill() {
	path := s.p.take()
	if len(path) == 0 {
		return
	}
	c, op := s.paintRef()
	fmt.Fprintf(&s.body, `<path d="%s" fill="%s" fill-opacity="%.3g" fill-rule="evenodd"/>`+"\n", pathData(path), c, op)
}

func (s *SVG) DrawText(text string, x, y, ax, ay float64) {
	p := s.p.dev(x, y)
	anchor := "start"
	switch {
	case ax >= 0.75:
		anchor = "end"
	case ax >= 0.25:
		anchor = "middle"
	}
	// Shift from the top of the text to its baseline.
	const fontSize = 13
	baseline := p.Y + fontSize*(1-ay) - 3
	c, op := CSS(s.p.cur.paint.color)
	var esc strings.Builder
	_ = xml.EscapeText(&esc, []byte(text))
	fmt.Fprintf(&s.body, `<text x="%.1f" y="%.1f" font-family="monospace" font-size="%d" fill="%s" fill-opacity="%.3g" text-anchor="%s">%s</text>`+"\n",
		p.X, baseline, fontSize, c, op, anchor, esc.String())
}

// String returns the complete document.
func (s *SVG) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`, Width, Height, Width, Height)
	if s.defs.Len() > 0 {
		sb.WriteString("<defs>\n")
		sb.WriteString(s.defs.String())
		sb.WriteString("</defs>\n")
	}
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteTo writes the document to w.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}
