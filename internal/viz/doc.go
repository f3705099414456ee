// Package viz provides terminal previews of compositions.
//
//   - [Canvas]: Braille dot grid that outlines a display list
//   - [Preview]: Bubble Tea model that scrubs a composition frame by frame
//   - [Theme]: lipgloss color schemes, cycled with T
//
// # Key Bindings
//
//	Space - Play/Pause
//	←/→   - Step one frame
//	[ ]   - Step one second
//	n/p   - Jump to next/previous sequence start
//	g/G   - First/last frame
//	T     - Cycle color themes
//	?     - Show help
package viz
