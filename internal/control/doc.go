// Package control is the parameter surface of a mounted simulation.
//
// A [Panel] owns the current [dynamo.Params] and is the only writer of
// it. Every setter clamps or validates before storing, so physics models
// can assume in-range inputs:
//
//	p := control.NewPanel(sim.Schema())
//	p.SetFloat("voltage", 1e9)  // clamped to the slider maximum
//	p.SetEnum("topology", "parallel")
//	p.SetToggle("show_current", false)
//	params := p.Params()        // immutable snapshot for the next frame
//
// Setters never block; a rejected value leaves the previous one in place
// and returns an error describing why.
package control
