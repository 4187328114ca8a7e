package scene

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/scisim/internal/dynamo"
	"github.com/san-kum/scisim/internal/physics"
	"github.com/san-kum/scisim/internal/surface"
)

// Circuit is the resistive network screen.
type Circuit struct{}

func (Circuit) ID() string        { return "circuit" }
func (Circuit) Title() string     { return "Electric Circuit" }
func (Circuit) BaseRate() float64 { return 0.02 }

func (Circuit) Schema() dynamo.Schema {
	return dynamo.Schema{
		{Name: "voltage", Label: "Voltage", Unit: "V", Kind: dynamo.KindFloat, Min: 0, Max: 24, Step: 0.5, Default: 9},
		{Name: "r1", Label: "R1", Unit: "Ω", Kind: dynamo.KindFloat, Min: 0, Max: 50, Step: 0.5, Default: 3},
		{Name: "r2", Label: "R2", Unit: "Ω", Kind: dynamo.KindFloat, Min: 0, Max: 50, Step: 0.5, Default: 6},
		{Name: "r3", Label: "R3", Unit: "Ω", Kind: dynamo.KindFloat, Min: 0, Max: 50, Step: 0.5, Default: 6},
		{Name: "topology", Label: "Topology", Kind: dynamo.KindEnum, Options: physics.Topologies, DefaultOption: string(physics.Series)},
		{Name: "show_current", Label: "Current flow", Kind: dynamo.KindToggle, DefaultOn: true},
		{Name: "show_labels", Label: "Labels", Kind: dynamo.KindToggle, DefaultOn: true},
	}
}

func (Circuit) model(p dynamo.Params) physics.Circuit {
	return physics.Circuit{
		Topology: physics.Topology(p.Enum("topology")),
		Voltage:  p.Float("voltage"),
		R1:       p.Float("r1"),
		R2:       p.Float("r2"),
		R3:       p.Float("r3"),
	}
}

func (c Circuit) Compute(p dynamo.Params, _ dynamo.AnimationState) dynamo.Result {
	return c.model(p).Solve()
}

// Rails of the drawn loop, surface coordinates.
const (
	railLeft   = 160.0
	railRight  = 640.0
	railTop    = 170.0
	railBottom = 450.0
	cellTop    = 280.0
	cellBottom = 340.0
)

type resistorGlyph struct {
	name string
	a, b dynamo.Point
}

// circuitLayout is the fixed geometry of one topology. Each branch path
// runs from the positive terminal back to the negative one, in the
// direction of conventional current.
type circuitLayout struct {
	branches  []Path
	carries   []string
	resistors []resistorGlyph
}

func loopThrough(xs ...float64) Path {
	p := Path{dynamo.Pt(railLeft, cellTop), dynamo.Pt(railLeft, railTop)}
	for _, x := range xs {
		p = append(p, dynamo.Pt(x, railTop))
	}
	last := xs[len(xs)-1]
	return append(p, dynamo.Pt(last, railBottom), dynamo.Pt(railLeft, railBottom), dynamo.Pt(railLeft, cellBottom))
}

func layoutFor(t physics.Topology) circuitLayout {
	switch t {
	case physics.Parallel:
		return circuitLayout{
			branches: []Path{loopThrough(440), loopThrough(railRight)},
			carries:  []string{"R1", "R2"},
			resistors: []resistorGlyph{
				{"R1", dynamo.Pt(440, 250), dynamo.Pt(440, 370)},
				{"R2", dynamo.Pt(railRight, 250), dynamo.Pt(railRight, 370)},
			},
		}
	case physics.Complex:
		return circuitLayout{
			branches: []Path{loopThrough(480), loopThrough(railRight)},
			carries:  []string{"R2", "R3"},
			resistors: []resistorGlyph{
				{"R1", dynamo.Pt(250, railTop), dynamo.Pt(370, railTop)},
				{"R2", dynamo.Pt(480, 250), dynamo.Pt(480, 370)},
				{"R3", dynamo.Pt(railRight, 250), dynamo.Pt(railRight, 370)},
			},
		}
	}
	return circuitLayout{
		branches: []Path{loopThrough(railRight)},
		carries:  []string{""},
		resistors: []resistorGlyph{
			{"R1", dynamo.Pt(340, railTop), dynamo.Pt(460, railTop)},
			{"R2", dynamo.Pt(railRight, 250), dynamo.Pt(railRight, 370)},
		},
	}
}

// zigzag draws a resistor symbol between a and b over a blanked gap.
func zigzag(s surface.Surface, a, b dynamo.Point, pal Palette) {
	d := b.Sub(a)
	n := d.Normalize().Perp().Scale(10)
	s.SetColor(pal.Background)
	s.MoveTo(a.X+n.X, a.Y+n.Y)
	s.LineTo(b.X+n.X, b.Y+n.Y)
	s.LineTo(b.X-n.X, b.Y-n.Y)
	s.LineTo(a.X-n.X, a.Y-n.Y)
	s.ClosePath()
	s.Fill()

	const teeth = 6
	s.SetColor(pal.Accent)
	s.SetLineWidth(2.5)
	s.MoveTo(a.X, a.Y)
	for i := 0; i < teeth; i++ {
		p := a.Add(d.Scale((float64(i) + 0.5) / teeth))
		side := 1.0
		if i%2 == 1 {
			side = -1
		}
		p = p.Add(n.Scale(side))
		s.LineTo(p.X, p.Y)
	}
	s.LineTo(b.X, b.Y)
	s.Stroke()
}

func drawCell(s surface.Surface, pal Palette) {
	const plus, minus = 300.0, 316.0
	s.SetColor(pal.Background)
	s.DrawRect(railLeft-30, cellTop+1, 60, cellBottom-cellTop-2)
	s.Fill()
	s.SetColor(pal.Wire)
	s.SetLineWidth(2)
	s.DrawLine(railLeft, cellTop, railLeft, plus)
	s.DrawLine(railLeft, minus, railLeft, cellBottom)
	s.Stroke()
	s.SetLineWidth(3)
	s.DrawLine(railLeft-24, plus, railLeft+24, plus)
	s.DrawLine(railLeft-12, minus, railLeft+12, minus)
	s.Stroke()
	s.SetColor(pal.North)
	s.DrawText("+", railLeft+30, plus, 0, 0.5)
	s.SetColor(pal.South)
	s.DrawText("−", railLeft+30, minus, 0, 0.5)
}

func (c Circuit) Layers() []Layer {
	return []Layer{
		backgroundLayer(40),
		{
			Name: "labels", Stage: Overlay, Toggle: "show_labels",
			Draw: func(s surface.Surface, f *Frame) {
				l := layoutFor(physics.Topology(f.Params.Enum("topology")))
				s.SetColor(f.Palette.Text)
				for _, r := range l.resistors {
					mid := r.a.Lerp(r.b, 0.5)
					off := r.b.Sub(r.a).Normalize().Perp().Scale(-26)
					label := fmt.Sprintf("%s = %.1f Ω", r.name, f.Params.Float(strings.ToLower(r.name)))
					s.DrawText(label, mid.X+off.X, mid.Y+off.Y, 0.5, 0.5)
				}
				s.DrawText(fmt.Sprintf("%.1f V", f.Params.Float("voltage")), railLeft-40, (cellTop+cellBottom)/2, 1, 0.5)
			},
		},
		{
			Name: "network", Stage: Apparatus,
			Draw: func(s surface.Surface, f *Frame) {
				l := layoutFor(physics.Topology(f.Params.Enum("topology")))
				s.SetColor(f.Palette.Wire)
				s.SetLineWidth(2)
				for _, b := range l.branches {
					s.MoveTo(b[0].X, b[0].Y)
					for _, p := range b[1:] {
						s.LineTo(p.X, p.Y)
					}
					s.Stroke()
				}
				for _, r := range l.resistors {
					zigzag(s, r.a, r.b, f.Palette)
				}
				drawCell(s, f.Palette)
			},
		},
		{
			Name: "current", Stage: Bodies, Toggle: "show_current", Derived: true,
			Draw: func(s surface.Surface, f *Frame) {
				res, ok := f.Result.(physics.CircuitResult)
				if !ok {
					return
				}
				l := layoutFor(res.Topology)
				s.SetColor(f.Palette.Secondary)
				for i, b := range l.branches {
					current := res.Current
					for _, br := range res.Branches {
						if br.Name == l.carries[i] {
							current = br.Current
						}
					}
					for _, p := range b.FlowPoints(16, f.Anim.ElapsedTime, flowSpeed(current)) {
						s.DrawCircle(p.X, p.Y, 3.5)
					}
				}
				s.Fill()
			},
		},
		InfoLayer(c.Title()),
	}
}

// flowSpeed maps amperes to loops per unit of elapsed time.
func flowSpeed(current float64) float64 {
	return math.Max(-2, math.Min(2, current*0.25))
}
