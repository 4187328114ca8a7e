package metrics

import (
	"github.com/san-kum/scisim/internal/dynamo"
)

// Validity is the fraction of frames whose result could be fully drawn.
type Validity struct {
	name    string
	invalid int
	samples int
}

func NewValidity() *Validity {
	return &Validity{name: "validity"}
}

func (v *Validity) Name() string {
	return v.name
}

func (v *Validity) Observe(f dynamo.Frame, r dynamo.Result) {
	v.samples++
	if r == nil || !r.Valid() {
		v.invalid++
	}
}

func (v *Validity) Value() float64 {
	if v.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(v.invalid)/float64(v.samples)
}

func (v *Validity) Reset() {
	v.invalid = 0
	v.samples = 0
}
