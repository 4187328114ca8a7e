// Package metrics holds per-frame statistics that an Engine feeds with
// every drawn frame.
package metrics

import (
	"github.com/san-kum/scisim/internal/dynamo"
	"github.com/san-kum/scisim/internal/sim"
)

// FrameCount counts drawn frames.
type FrameCount struct {
	name   string
	frames int
}

func NewFrameCount() *FrameCount {
	return &FrameCount{name: "frames"}
}

func (c *FrameCount) Name() string { return c.name }

func (c *FrameCount) Observe(f dynamo.Frame, r dynamo.Result) { c.frames++ }

func (c *FrameCount) Value() float64 { return float64(c.frames) }

func (c *FrameCount) Reset() { c.frames = 0 }

// ForSimulation returns the default metric set for a simulation id.
func ForSimulation(id string) []sim.Metric {
	ms := []sim.Metric{NewFrameCount(), NewValidity()}
	switch id {
	case "circuit":
		ms = append(ms, NewEnergy("power"))
	case "magnetic-field":
		ms = append(ms, NewPeak("field"))
	case "motor":
		ms = append(ms, NewMean("torque"), NewPeak("flips"))
	case "optics":
		ms = append(ms, NewPeak("m"))
	case "reflection":
		ms = append(ms, NewMean("reflectance"))
	case "prism":
		ms = append(ms, NewPeak("reflected"))
	case "lunar-phases", "lunar-3d":
		ms = append(ms, NewMean("illuminated"))
	case "sunspots":
		ms = append(ms, NewPeak("visible"))
	}
	return ms
}
