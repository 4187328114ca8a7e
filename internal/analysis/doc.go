// Package analysis sweeps one parameter of a simulation and charts how a
// reported quantity responds.
//
//	sw := analysis.Sweep{Sim: sim, Param: "r2", From: 1, To: 50, Steps: 50, Quantity: "current"}
//	pts, err := sw.Run(ctx)
//	p, err := analysis.Chart(pts, "Current against R2", "R2 (Ω)", "I (A)")
//	err = analysis.SavePNG(p, 8, 6, "current.png")
//
// Frames whose result is invalid (a short circuit, an image at infinity)
// appear as gaps in the chart rather than as zeros.
package analysis
