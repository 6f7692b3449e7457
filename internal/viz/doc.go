// Package viz renders simulations in the terminal.
//
// The package implements an interactive view using the Bubble Tea framework:
//
//   - [Model]: live view that owns and steps a simulator
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - [Camera]: rotatable, zoomable perspective projection
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	B     - Toggle Barnes-Hut vs direct summation
//	T     - Toggle trajectory trails
//	W/S   - Speed up / slow down time
//	A/D   - Zoom out / in
//	X/Y/Z - Rotate the camera (shifted keys reverse)
//	R     - Rebuild the scene
//	?     - Show help overlay
//
// RadiusSeries, CoordinateSeries, and RenderSeries plot stored runs as
// asciigraph charts for the CLI.
package viz
