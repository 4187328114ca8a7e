// Package viz is the terminal front end: a live view of one simulation
// drawn in braille cells, and a menu over the simulation catalog.
//
// Both are Bubble Tea programs. The live [Model] owns a [sim.Engine] on a
// [sim.LoopHost] and fires the host once per tick, so the engine runs on
// the program's goroutine.
//
// # Key Bindings
//
//	Space  - Pause/Resume animation
//	r / R  - Reset time / parameters
//	←/→    - Adjust the selected control
//	[ ]    - Seek backward / forward
//	w a s d, z x - Orbit and zoom the 3D camera
//	t      - Cycle color themes
//	g      - Toggle GIF recording
//	?      - Show help overlay
package viz
