package metrics

import (
	"math"

	"github.com/san-kum/scisim/internal/dynamo"
)

// Peak tracks the largest magnitude a quantity reaches.
type Peak struct {
	name     string
	quantity string
	peak     float64
}

func NewPeak(quantity string) *Peak {
	return &Peak{name: "peak_" + quantity, quantity: quantity}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(f dynamo.Frame, r dynamo.Result) {
	if v, ok := dynamo.Lookup(r, p.quantity); ok && dynamo.Finite(v) {
		p.peak = math.Max(p.peak, math.Abs(v))
	}
}

func (p *Peak) Value() float64 { return p.peak }
func (p *Peak) Reset()         { p.peak = 0 }

// Mean averages a quantity over the frames that report it.
type Mean struct {
	name     string
	quantity string
	sum      float64
	samples  int
}

func NewMean(quantity string) *Mean {
	return &Mean{name: "mean_" + quantity, quantity: quantity}
}

func (m *Mean) Name() string { return m.name }

func (m *Mean) Observe(f dynamo.Frame, r dynamo.Result) {
	if v, ok := dynamo.Lookup(r, m.quantity); ok && dynamo.Finite(v) {
		m.sum += v
		m.samples++
	}
}

func (m *Mean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Mean) Reset() {
	m.sum = 0
	m.samples = 0
}

// Energy integrates a power quantity (watts) over elapsed animation time,
// giving joules.
type Energy struct {
	name     string
	quantity string
	total    float64
	lastT    float64
	started  bool
}

func NewEnergy(quantity string) *Energy {
	return &Energy{name: "energy", quantity: quantity}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(f dynamo.Frame, r dynamo.Result) {
	t := f.Anim.ElapsedTime
	p, ok := dynamo.Lookup(r, e.quantity)
	if e.started && ok && dynamo.Finite(p) && t > e.lastT {
		e.total += p * (t - e.lastT)
	}
	e.lastT = t
	e.started = true
}

func (e *Energy) Value() float64 { return e.total }

func (e *Energy) Reset() {
	e.total = 0
	e.lastT = 0
	e.started = false
}
