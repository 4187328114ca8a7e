package scene

import (
	"math"

	"github.com/san-kum/scisim/internal/dynamo"
	"github.com/san-kum/scisim/internal/physics"
	"github.com/san-kum/scisim/internal/surface"
)

// MagneticField shows the field of magnets and current-carrying wires.
type MagneticField struct{}

func (MagneticField) ID() string        { return "magnetic-field" }
func (MagneticField) Title() string     { return "Magnetic Field" }
func (MagneticField) BaseRate() float64 { return 0.02 }

func (MagneticField) Schema() dynamo.Schema {
	return dynamo.Schema{
		{Name: "apparatus", Label: "Apparatus", Kind: dynamo.KindEnum, Options: physics.Apparatuses, DefaultOption: string(physics.BarMagnet)},
		{Name: "strength", Label: "Magnet strength", Unit: "T", Kind: dynamo.KindFloat, Min: 0, Max: 1, Step: 0.05, Default: 0.3},
		{Name: "current", Label: "Current", Unit: "A", Kind: dynamo.KindFloat, Min: 0, Max: 10, Step: 0.5, Default: 5},
		{Name: "direction", Label: "Current direction", Kind: dynamo.KindEnum, Options: []string{string(physics.OutOfPage), string(physics.IntoPage)}},
		{Name: "turns", Label: "Turns", Kind: dynamo.KindFloat, Min: 10, Max: 500, Step: 10, Default: 100},
		{Name: "winding", Label: "Winding", Kind: dynamo.KindEnum, Options: []string{string(physics.CounterClockwise), string(physics.Clockwise)}},
		{Name: "length", Label: "Length", Unit: "cm", Kind: dynamo.KindFloat, Min: 60, Max: 240, Step: 10, Default: 160},
		{Name: "show_lines", Label: "Field lines", Kind: dynamo.KindToggle, DefaultOn: true},
		{Name: "show_compass", Label: "Compass grid", Kind: dynamo.KindToggle},
		{Name: "show_force", Label: "Force on wire", Kind: dynamo.KindToggle},
	}
}

func (MagneticField) model(p dynamo.Params) physics.Magnetic {
	return physics.Magnetic{
		Apparatus: physics.Apparatus(p.Enum("apparatus")),
		Strength:  p.Float("strength"),
		Current:   p.Float("current"),
		Direction: physics.CurrentDirection(p.Enum("direction")),
		Turns:     p.Float("turns"),
		Winding:   physics.Winding(p.Enum("winding")),
		Length:    p.Float("length"),
	}
}

func (m MagneticField) Compute(p dynamo.Params, _ dynamo.AnimationState) dynamo.Result {
	lines, cols, rows := 0, 0, 0
	if p.Toggle("show_lines") {
		lines = 12
	}
	if p.Toggle("show_compass") {
		cols, rows = 12, 9
	}
	return m.model(p).Evaluate(lines, cols, rows, p.Float("current"))
}

var fieldView = CenteredView(1)

// needle draws a compass needle of half-length r centred on c, north tip
// along the world angle a.
func needle(s surface.Surface, v View, c dynamo.Point, a, r float64, pal Palette) {
	tip := v.Screen(c.Add(dynamo.Polar(r, a)))
	tail := v.Screen(c.Add(dynamo.Polar(r, a+math.Pi)))
	mid := v.Screen(c)
	side := v.Screen(c.Add(dynamo.Polar(r*0.3, a+math.Pi/2)))
	other := v.Screen(c.Add(dynamo.Polar(r*0.3, a-math.Pi/2)))

	s.SetColor(pal.North)
	s.MoveTo(tip.X, tip.Y)
	s.LineTo(side.X, side.Y)
	s.LineTo(other.X, other.Y)
	s.ClosePath()
	s.Fill()
	s.SetColor(pal.South)
	s.MoveTo(tail.X, tail.Y)
	s.LineTo(side.X, side.Y)
	s.LineTo(other.X, other.Y)
	s.ClosePath()
	s.Fill()
	s.SetColor(pal.Text)
	s.DrawCircle(mid.X, mid.Y, 1.5)
	s.Fill()
}

// conductor draws a wire end-on: a dot for current out of the page, a
// cross for current into it.
func conductor(s surface.Surface, x, y, r float64, sign float64, pal Palette) {
	s.SetColor(pal.Wire)
	s.SetLineWidth(2)
	s.DrawCircle(x, y, r)
	s.Stroke()
	s.SetColor(pal.Accent)
	if sign > 0 {
		s.DrawCircle(x, y, r*0.3)
		s.Fill()
		return
	}
	d := r * 0.6
	s.DrawLine(x-d, y-d, x+d, y+d)
	s.DrawLine(x-d, y+d, x+d, y-d)
	s.Stroke()
}

func drawBar(s surface.Surface, half, polarity float64, pal Palette, core bool) {
	const h = 22.0
	x0, x1 := fieldView.X(-half), fieldView.X(half)
	y := fieldView.Y(0)
	if core {
		s.SetColor(pal.Muted)
		s.DrawRect(x0, y-h, x1-x0, 2*h)
		s.Fill()
		s.SetColor(pal.Wire)
		s.SetLineWidth(2)
		for x := x0 + 10; x < x1-5; x += 12 {
			s.DrawEllipse(x, y, 4, h+6)
			s.Stroke()
		}
	} else {
		pos, neg := pal.North, pal.South
		if polarity < 0 {
			pos, neg = neg, pos
		}
		mid := (x0 + x1) / 2
		s.SetColor(neg)
		s.DrawRect(x0, y-h, mid-x0, 2*h)
		s.Fill()
		s.SetColor(pos)
		s.DrawRect(mid, y-h, x1-mid, 2*h)
		s.Fill()
	}
	if polarity == 0 {
		return
	}
	n, sLabel := x1-14, x0+14
	if polarity < 0 {
		n, sLabel = sLabel, n
	}
	s.SetColor(pal.Text)
	s.DrawText("N", n, y, 0.5, 0.5)
	s.DrawText("S", sLabel, y, 0.5, 0.5)
}

func drawHorseshoe(s surface.Surface, half float64, pal Palette) {
	const arm, depth = 26.0, 120.0
	x0, x1 := fieldView.X(-half), fieldView.X(half)
	y := fieldView.Y(0)
	s.SetColor(pal.North)
	s.DrawRect(x0-arm/2, y, arm, depth)
	s.Fill()
	s.SetColor(pal.South)
	s.DrawRect(x1-arm/2, y, arm, depth)
	s.Fill()
	s.SetColor(pal.Muted)
	s.DrawRect(x0-arm/2, y+depth, x1-x0+arm, arm)
	s.Fill()
	s.SetColor(pal.Text)
	s.DrawText("N", x0, y+14, 0.5, 0.5)
	s.DrawText("S", x1, y+14, 0.5, 0.5)
}

func (m MagneticField) Layers() []Layer {
	return []Layer{
		backgroundLayer(50),
		{
			Name: "field-lines", Stage: Overlay, Toggle: "show_lines", Derived: true,
			Draw: func(s surface.Surface, f *Frame) {
				res := f.Result.(physics.MagneticResult)
				s.SetColor(surface.WithAlpha(f.Palette.Secondary, 200))
				s.SetLineWidth(1.5)
				for _, line := range res.Lines {
					fieldView.Polyline(s, line)
				}
				for _, line := range res.Lines {
					if len(line) < 12 {
						continue
					}
					i := len(line) / 3
					a := fieldView.Screen(line[i])
					b := fieldView.Screen(line[i+1])
					ArrowHead(s, b.X, b.Y, math.Atan2(b.Y-a.Y, b.X-a.X), 8)
				}
			},
		},
		{
			Name: "compass-grid", Stage: Overlay, Toggle: "show_compass", Derived: true,
			Draw: func(s surface.Surface, f *Frame) {
				for _, c := range f.Result.(physics.MagneticResult).Compasses {
					needle(s, fieldView, c.Pos, c.Angle, 12, f.Palette)
				}
			},
		},
		{
			Name: "apparatus", Stage: Apparatus,
			Draw: func(s surface.Surface, f *Frame) {
				mag := m.model(f.Params)
				half := mag.Length / 2
				switch mag.Apparatus {
				case physics.BarMagnet:
					drawBar(s, half, 1, f.Palette, false)
				case physics.Electromagnet:
					drawBar(s, half, mag.Polarity(), f.Palette, true)
				case physics.Horseshoe:
					drawHorseshoe(s, half, f.Palette)
				case physics.StraightWire, physics.CurrentLoop:
					if mag.Apparatus == physics.CurrentLoop {
						s.SetColor(f.Palette.Muted)
						s.SetDash(6, 4)
						s.DrawEllipse(fieldView.X(0), fieldView.Y(0), half*fieldView.Scale, 24)
						s.Stroke()
						s.SetDash()
					}
					for _, w := range mag.Wires() {
						p := fieldView.Screen(w.Pos)
						conductor(s, p.X, p.Y, 12, w.Sign, f.Palette)
					}
				}
			},
		},
		{
			Name: "force", Stage: Bodies, Toggle: "show_force", Derived: true,
			Draw: func(s surface.Surface, f *Frame) {
				res := f.Result.(physics.MagneticResult)
				probe := dynamo.Pt(0, 0)
				if res.Apparatus == physics.StraightWire {
					probe = dynamo.Pt(40, 0)
				}
				p := fieldView.Screen(probe)
				if res.Apparatus != physics.StraightWire {
					conductor(s, p.X, p.Y, 8, 1, f.Palette)
				}
				if res.Force.Len() == 0 {
					return
				}
				d := res.Force.Normalize().Scale(70)
				q := fieldView.Screen(probe.Add(d))
				s.SetColor(f.Palette.Warning)
				s.SetLineWidth(3)
				Arrow(s, p.X, p.Y, q.X, q.Y, 12)
				s.DrawText("F", q.X+8, q.Y, 0, 0.5)
			},
		},
		{
			Name: "probe-compass", Stage: Bodies, Derived: true,
			Draw: func(s surface.Surface, f *Frame) {
				mag := m.model(f.Params)
				c := dynamo.Polar(mag.Length/2+90, f.Anim.ElapsedAngle)
				b := mag.FieldAt(c)
				if b.Len() == 0 || !b.IsFinite() {
					return
				}
				p := fieldView.Screen(c)
				s.SetColor(f.Palette.Wire)
				s.SetLineWidth(1.5)
				s.DrawCircle(p.X, p.Y, 20)
				s.Stroke()
				needle(s, fieldView, c, math.Atan2(b.Y, b.X), 17, f.Palette)
			},
		},
		InfoLayer(m.Title()),
	}
}
