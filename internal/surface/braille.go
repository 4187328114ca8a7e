package surface

import (
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/san-kum/scisim/internal/dynamo"
)

// Braille cells are 2×4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// starting at U+2800.
const brailleBlank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// darkThreshold separates paint that erases dots from paint that sets them.
const darkThreshold = 0.2

type label struct {
	col, row int
	text     string
}

// Braille renders onto a monochrome grid of braille cells. Dark paint
// erases dots, everything else sets them.
type Braille struct {
	Cols, Rows int
	Grid       [][]rune

	p      pather
	labels []label
}

// NewBraille maps the logical viewport onto cols×rows terminal cells.
func NewBraille(cols, rows int) *Braille {
	b := &Braille{Cols: cols, Rows: rows, Grid: make([][]rune, rows)}
	for i := range b.Grid {
		b.Grid[i] = make([]rune, cols)
	}
	sx := float64(cols*2) / Width
	sy := float64(rows*4) / Height
	b.p = newPather(dynamo.Scaling(sx, sy))
	b.blank()
	return b
}

func (b *Braille) blank() {
	for i := range b.Grid {
		for j := range b.Grid[i] {
			b.Grid[i][j] = brailleBlank
		}
	}
	b.labels = b.labels[:0]
}

// Set turns on the dot at sub-cell coordinates (x, y); the grid is
// (Cols*2)×(Rows*4) dots.
func (b *Braille) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= b.Cols || row >= b.Rows {
		return
	}
	b.Grid[row][col] |= pixelMap[y%4][x%2]
}

// Unset turns off the dot at (x, y).
func (b *Braille) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= b.Cols || row >= b.Rows {
		return
	}
	b.Grid[row][col] &^= pixelMap[y%4][x%2]
}

// Dot reports whether the dot at (x, y) is on.
func (b *Braille) Dot(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= b.Cols || y/4 >= b.Rows {
		return false
	}
	return b.Grid[y/4][x/2]&pixelMap[y%4][x%2] != 0
}

func (b *Braille) plot(x, y int, on bool) {
	if on {
		b.Set(x, y)
	} else {
		b.Unset(x, y)
	}
}

// line draws with Bresenham's algorithm, honouring a dash pattern
// measured in dots.
func (b *Braille) line(x0, y0, x1, y1 int, on bool, dash []int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	period := 0
	for _, d := range dash {
		period += d
	}
	for n := 0; ; n++ {
		if period == 0 || dashOn(n%period, dash) {
			b.plot(x0, y0, on)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func dashOn(n int, dash []int) bool {
	on := true
	for _, d := range dash {
		if n < d {
			return on
		}
		n -= d
		on = !on
	}
	return on
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (b *Braille) Size() (float64, float64) { return Width, Height }

func (b *Braille) Clear(c color.Color) {
	b.p.take()
	b.blank()
	if Luminance(c) >= darkThreshold {
		for y := 0; y < b.Rows*4; y++ {
			for x := 0; x < b.Cols*2; x++ {
				b.Set(x, y)
			}
		}
	}
}

func (b *Braille) Push()                  { b.p.push() }
func (b *Braille) Pop()                   { b.p.pop() }
func (b *Braille) Translate(x, y float64) { b.p.translate(x, y) }
func (b *Braille) Rotate(a float64)       { b.p.rotate(a) }
func (b *Braille) Scale(sx, sy float64)   { b.p.scale(sx, sy) }

func (b *Braille) SetColor(c color.Color) { b.p.setColor(c) }
func (b *Braille) SetLineWidth(w float64) { b.p.cur.width = w }
func (b *Braille) SetDash(d ...float64)   { b.p.cur.dash = append([]float64(nil), d...) }

// Gradients collapse to their brightest stop: the grid has one colour.
func (b *Braille) SetLinearGradient(x0, y0, x1, y1 float64, stops ...Stop) {
	b.p.setColor(brightest(stops))
}

func (b *Braille) SetRadialGradient(cx, cy, r0, r1 float64, stops ...Stop) {
	b.p.setColor(brightest(stops))
}

func brightest(stops []Stop) color.Color {
	var best color.Color = color.Black
	for _, s := range stops {
		if Luminance(s.Color) > Luminance(best) {
			best = s.Color
		}
	}
	return best
}

func (b *Braille) MoveTo(x, y float64)             { b.p.moveTo(x, y) }
func (b *Braille) LineTo(x, y float64)             { b.p.lineTo(x, y) }
func (b *Braille) ClosePath()                      { b.p.closePath() }
func (b *Braille) DrawLine(x1, y1, x2, y2 float64) { b.p.line(x1, y1, x2, y2) }
func (b *Braille) DrawRect(x, y, w, h float64)     { b.p.rect(x, y, w, h) }
func (b *Braille) DrawCircle(x, y, r float64)      { b.p.ellipse(x, y, r, r) }
func (b *Braille) DrawEllipse(x, y, rx, ry float64) {
	b.p.ellipse(x, y, rx, ry)
}
func (b *Braille) DrawArc(x, y, r, a1, a2 float64) { b.p.arc(x, y, r, a1, a2) }

func (b *Braille) on() bool {
	return Luminance(b.p.cur.paint.color) >= darkThreshold
}

func (b *Braille) Stroke() {
	on := b.on()
	var dash []int
	if len(b.p.cur.dash) > 0 {
		k := b.p.cur.tr.ScaleFactor()
		for _, d := range b.p.cur.dash {
			dash = append(dash, max(1, int(math.Round(d*k))))
		}
	}
	for _, sp := range b.p.take() {
		pts := sp.pts
		if sp.closed && len(pts) > 1 {
			pts = append(pts, pts[0])
		}
		if len(pts) == 1 {
			b.plot(round(pts[0].X), round(pts[0].Y), on)
		}
		for i := 1; i < len(pts); i++ {
			b.line(round(pts[i-1].X), round(pts[i-1].Y), round(pts[i].X), round(pts[i].Y), on, dash)
		}
	}
}

// Fill scan-converts the path with the even-odd rule at dot resolution.
func (b *Braille) Fill() {
	on := b.on()
	path := b.p.take()
	h := b.Rows * 4
	var xs []float64
	for y := 0; y < h; y++ {
		cy := float64(y) + 0.5
		xs = xs[:0]
		for _, sp := range path {
			n := len(sp.pts)
			for i := 0; i < n; i++ {
				a, c := sp.pts[i], sp.pts[(i+1)%n]
				if (a.Y <= cy) == (c.Y <= cy) {
					continue
				}
				xs = append(xs, a.X+(cy-a.Y)*(c.X-a.X)/(c.Y-a.Y))
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i] - 0.5)); float64(x)+0.5 <= xs[i+1]; x++ {
				b.plot(x, y, on)
			}
		}
	}
}

// DrawText overlays s on the cell grid; labels are written over dots when
// the canvas is rendered.
func (b *Braille) DrawText(s string, x, y, ax, ay float64) {
	p := b.p.dev(x, y)
	n := len([]rune(s))
	col := int(math.Round(p.X/2 - ax*float64(n)))
	row := int(math.Round(p.Y/4 - ay))
	if row < 0 || row >= b.Rows {
		return
	}
	b.labels = append(b.labels, label{col: col, row: row, text: s})
}

func round(v float64) int { return int(math.Round(v)) }

// String renders the grid, one line per row.
func (b *Braille) String() string {
	rows := make([][]rune, b.Rows)
	for i, r := range b.Grid {
		rows[i] = append([]rune(nil), r...)
	}
	for _, l := range b.labels {
		for i, ch := range []rune(l.text) {
			if c := l.col + i; c >= 0 && c < b.Cols {
				rows[l.row][c] = ch
			}
		}
	}
	var sb strings.Builder
	for _, r := range rows {
		sb.WriteString(string(r))
		sb.WriteByte('\n')
	}
	return sb.String()
}
