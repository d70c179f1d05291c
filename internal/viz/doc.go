// Package viz draws the particle field in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live view of one simulator with a metrics side panel
//   - [Canvas]: Braille-based pixel canvas with per-cell shade
//   - [BrailleSurface]: field.Surface backed by a Canvas
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reseed the field
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// Mouse motion over the canvas repels nearby particles and a left click
// fires a burst.
//
// # Recording
//
// G records through an export.RasterSurface at full colour depth and
// writes neuralgrid.gif when recording stops.
package viz
