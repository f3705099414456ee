// Package motion provides the core primitives shared by the frame-driven
// animation engine.
//
// Every animated value in a scene is a pure function of an integer frame
// index. The package defines the pieces the rest of the engine agrees on:
//
//   - [Context]: the explicit evaluation inputs (frame, rate, canvas size)
//   - the error taxonomy ([ErrConfiguration], [ErrOutOfRange],
//     [ErrDuplicateID], [ErrNotFound]) and its typed wrappers
//   - [Random]: a seeded, stateless pseudo-random source for scene code
//
// # Example
//
//	ctx := motion.Context{Frame: 42, FPS: 30, Width: 1920, Height: 1080}
//	v, _ := interp.Interpolate(float64(ctx.Frame), []float64{0, 30}, []float64{0, 1}, interp.Options{})
//
// # Thread Safety
//
// Nothing in the evaluation path holds mutable state. A Context is a plain
// value; any number of goroutines may evaluate any frames in any order.
package motion
