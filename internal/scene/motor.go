package scene

import (
	"math"

	"github.com/san-kum/scisim/internal/dynamo"
	"github.com/san-kum/scisim/internal/physics"
	"github.com/san-kum/scisim/internal/surface"
)

// Motor is the DC motor screen, drawn end-on along the axle.
type Motor struct{}

func (Motor) ID() string        { return "motor" }
func (Motor) Title() string     { return "DC Motor" }
func (Motor) BaseRate() float64 { return 0.04 }

func (Motor) Schema() dynamo.Schema {
	return dynamo.Schema{
		{Name: "field", Label: "Field", Unit: "T", Kind: dynamo.KindFloat, Min: 0, Max: 1, Step: 0.05, Default: 0.5},
		{Name: "current", Label: "Current", Unit: "A", Kind: dynamo.KindFloat, Min: 0, Max: 5, Step: 0.1, Default: 2},
		{Name: "turns", Label: "Turns", Kind: dynamo.KindFloat, Min: 1, Max: 50, Step: 1, Default: 10},
		{Name: "commutator", Label: "Split-ring commutator", Kind: dynamo.KindToggle, DefaultOn: true},
		{Name: "show_forces", Label: "Forces", Kind: dynamo.KindToggle, DefaultOn: true},
		{Name: "show_field", Label: "Field lines", Kind: dynamo.KindToggle, DefaultOn: true},
		{Name: "show_current", Label: "Current flow", Kind: dynamo.KindToggle, DefaultOn: true},
	}
}

// Coil dimensions in metres.
const (
	coilLength = 0.1
	coilWidth  = 0.08
)

func (Motor) model(p dynamo.Params) physics.Motor {
	return physics.Motor{
		Field:      p.Float("field"),
		Current:    p.Float("current"),
		Length:     coilLength,
		Width:      coilWidth,
		Turns:      p.Float("turns"),
		Commutator: p.Toggle("commutator"),
	}
}

func (m Motor) Compute(p dynamo.Params, anim dynamo.AnimationState) dynamo.Result {
	return m.model(p).Evaluate(anim.ElapsedAngle, anim.ElapsedTime)
}

// rotorView puts the axle at the centre of the surface, 3000 px/m.
var rotorView = View{Origin: dynamo.Pt(360, 310), Scale: 3000}

const poleGap = 190.0

func (m Motor) Layers() []Layer {
	return []Layer{
		backgroundLayer(40),
		{
			Name: "field", Stage: Overlay, Toggle: "show_field",
			Draw: func(s surface.Surface, f *Frame) {
				c := rotorView.Origin
				s.SetColor(surface.WithAlpha(f.Palette.Secondary, 140))
				s.SetLineWidth(1)
				s.SetDash(8, 6)
				for dy := -150.0; dy <= 150; dy += 37.5 {
					s.DrawLine(c.X-poleGap+30, c.Y+dy, c.X+poleGap-30, c.Y+dy)
					s.Stroke()
					ArrowHead(s, c.X+poleGap-30, c.Y+dy, 0, 7)
				}
				s.SetDash()
			},
		},
		{
			Name: "poles", Stage: Apparatus,
			Draw: func(s surface.Surface, f *Frame) {
				c := rotorView.Origin
				s.SetColor(f.Palette.North)
				s.DrawRect(c.X-poleGap-60, c.Y-170, 90, 340)
				s.Fill()
				s.SetColor(f.Palette.South)
				s.DrawRect(c.X+poleGap-30, c.Y-170, 90, 340)
				s.Fill()
				s.SetColor(f.Palette.Text)
				s.DrawText("N", c.X-poleGap-15, c.Y, 0.5, 0.5)
				s.DrawText("S", c.X+poleGap+15, c.Y, 0.5, 0.5)
			},
		},
		{
			Name: "rotor", Stage: Apparatus,
			Draw: func(s surface.Surface, f *Frame) {
				mot := m.model(f.Params)
				theta := f.Anim.ElapsedAngle
				a, b := mot.SidePositions(theta)
				pa, pb := rotorView.Screen(a), rotorView.Screen(b)
				c := rotorView.Origin

				s.SetColor(f.Palette.Muted)
				s.SetLineWidth(1)
				s.DrawCircle(c.X, c.Y, coilWidth/2*rotorView.Scale)
				s.Stroke()

				s.SetColor(f.Palette.Wire)
				s.SetLineWidth(4)
				s.DrawLine(pa.X, pa.Y, pb.X, pb.Y)
				s.Stroke()

				// Side A carries current into the page at polarity +1.
				p := mot.Polarity(theta)
				conductor(s, pa.X, pa.Y, 14, -p, f.Palette)
				conductor(s, pb.X, pb.Y, 14, p, f.Palette)
				s.SetColor(f.Palette.Text)
				s.DrawText("A", pa.X+18, pa.Y-18, 0.5, 0.5)
				s.DrawText("B", pb.X+18, pb.Y-18, 0.5, 0.5)

				drawCommutator(s, c, theta, mot.Commutator, f.Palette)
			},
		},
		{
			Name: "forces", Stage: Bodies, Toggle: "show_forces", Derived: true,
			Draw: func(s surface.Surface, f *Frame) {
				res := f.Result.(physics.MotorResult)
				if res.Force == 0 {
					return
				}
				s.SetColor(f.Palette.Warning)
				s.SetLineWidth(3)
				for _, side := range []struct{ at, force dynamo.Point }{{res.SideA, res.ForceA}, {res.SideB, res.ForceB}} {
					from := rotorView.Screen(side.at)
					d := side.force.Normalize().Scale(80)
					Arrow(s, from.X, from.Y, from.X+d.X, from.Y-d.Y, 12)
				}
			},
		},
		{
			Name: "coil-current", Stage: Bodies, Toggle: "show_current", Derived: true,
			Draw: func(s surface.Surface, f *Frame) {
				res := f.Result.(physics.MotorResult)
				drawCoilInset(s, f, res)
			},
		},
		InfoLayer(m.Title()),
	}
}

// drawCommutator draws the ring at the axle with two fixed brushes. A
// split ring has two segments that turn with the rotor.
func drawCommutator(s surface.Surface, c dynamo.Point, theta float64, split bool, pal Palette) {
	const r = 26.0
	s.SetLineWidth(6)
	if split {
		gap := 0.2
		// Surface angles run clockwise, so the rotor angle is negated.
		start := -theta + math.Pi/2
		s.SetColor(pal.Accent)
		s.DrawArc(c.X, c.Y, r, start+gap, start+math.Pi-gap)
		s.Stroke()
		s.SetColor(pal.Warning)
		s.DrawArc(c.X, c.Y, r, start+math.Pi+gap, start+dynamo.TwoPi-gap)
		s.Stroke()
	} else {
		s.SetColor(pal.Accent)
		s.DrawCircle(c.X, c.Y, r)
		s.Stroke()
	}
	s.SetColor(pal.Muted)
	s.DrawRect(c.X-r-14, c.Y-5, 10, 10)
	s.DrawRect(c.X+r+4, c.Y-5, 10, 10)
	s.Fill()
}

// drawCoilInset shows the coil face-on, foreshortened by the rotor angle,
// with charges running around it in the current direction.
func drawCoilInset(s surface.Surface, f *Frame, res physics.MotorResult) {
	const cx, cy, h = 670.0, 470.0, 90.0
	w := 70 * math.Abs(math.Cos(res.Angle))
	if w < 4 {
		w = 4
	}
	loop := Path{
		dynamo.Pt(cx-w/2, cy-h/2), dynamo.Pt(cx+w/2, cy-h/2),
		dynamo.Pt(cx+w/2, cy+h/2), dynamo.Pt(cx-w/2, cy+h/2),
		dynamo.Pt(cx-w/2, cy-h/2),
	}
	s.SetColor(f.Palette.Wire)
	s.SetLineWidth(2)
	s.MoveTo(loop[0].X, loop[0].Y)
	for _, p := range loop[1:] {
		s.LineTo(p.X, p.Y)
	}
	s.Stroke()
	s.SetColor(f.Palette.Secondary)
	speed := res.Polarity * flowSpeed(f.Params.Float("current"))
	for _, p := range loop.FlowPoints(12, f.Anim.ElapsedTime, speed) {
		s.DrawCircle(p.X, p.Y, 3)
	}
	s.Fill()
	s.SetColor(f.Palette.Muted)
	s.DrawText("coil", cx, cy+h/2+14, 0.5, 0)
}
