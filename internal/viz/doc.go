// Package viz renders a particle field in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: drives a [field.Scheduler] from terminal ticks, mouse and focus events
//   - [Canvas]: Braille-based pixel canvas, 2x4 dots per cell
//   - [Surface]: adapts a Canvas to the field's drawing surface
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	M     - Toggle motion and remember the choice
//	T     - Cycle color themes
//	Q/Esc - Quit
//
// Moving the mouse over the canvas pushes nearby particles away. Leaving the
// canvas or the terminal window releases them.
package viz
