// Package physics provides the closed-form models behind each simulation.
//
// Every model is a pure value type with an evaluation method returning a
// result that implements [dynamo.Result]:
//
//   - [Circuit]: series, parallel and complex resistive networks
//   - [Magnetic]: bar, horseshoe, electromagnet, straight wire and loop fields
//   - [Motor]: DC motor torque with a split-ring commutator
//   - [Lunar]: Sun–Earth–Moon angles, illuminated fraction and phase name
//   - [Optics]: mirror and lens imaging with principal rays
//   - [Boundary]: reflection, refraction and total internal reflection
//   - [Prism]: white-light dispersion and coloured-surface reflection
//   - [Sun]: differential rotation, sunspot projection and limb darkening
//
// Models never clamp their inputs; the control panel does that. A
// configuration a model cannot evaluate (zero total resistance, an object
// at the focal point) produces a result whose Valid method reports false,
// so the renderer can drop the dependent overlay and keep drawing the rest:
//
//	res := physics.Circuit{Topology: physics.Parallel, Voltage: 9}.Solve()
//	if !res.Valid() {
//	    // errors.Is(res.Err(), dynamo.ErrShortCircuit)
//	}
package physics
