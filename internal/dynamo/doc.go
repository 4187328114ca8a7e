// Package dynamo provides the shared vocabulary of the visualization engine.
//
// Every simulation screen is built from the same handful of values:
//
//   - [Params]: the immutable-per-frame parameter set (sliders, selects, toggles)
//   - [Schema]: the per-simulation description of those parameters
//   - [AnimationState]: the stepper-owned elapsed angle and time
//   - [Result]: the pure output of a physics model for one frame
//   - [Camera]: the orbit camera used by 3D views
//   - [Frame]: everything a renderer needs to draw one frame
//
// Angles are radians and are normalised into [0, 2π) with [NormalizeAngle]
// before they are used in any trigonometric projection.
//
// # Example
//
//	schema := dynamo.Schema{{Name: "voltage", Kind: dynamo.KindFloat, Min: 0, Max: 24, Default: 9}}
//	p := schema.Defaults().WithFloat("voltage", 12)
//	v := p.Float("voltage")
//
// # Thread Safety
//
// Params is a value type; every With* method returns a copy, so a Params
// snapshot handed to a renderer never changes underneath it.
package dynamo
