// Package analysis characterizes sampled animation curves.
//
// The tools work on plain sample slices, usually a spring or track
// evaluated at every frame:
//
//   - [DominantFrequency]: strongest oscillation frequency via FFT
//   - [SettleFrame]: first frame after which a curve stays near its target
//   - [Overshoot]: how far a curve passes its target, relative to the span
//   - [AnalyzeSpring]: all of the above for a spring, beside the analytic values
//   - [NewPortrait]: value/velocity phase portrait, with ASCII rendering
//
// # Checking a spring
//
// The closed-form spring should oscillate at its damped natural frequency:
//
//	rep, err := analysis.AnalyzeSpring(60, spring.Params(4, 100), 600)
//	if math.Abs(rep.MeasuredHz-rep.AnalyticHz) > 0.05 {
//	    // sampling or formula error
//	}
package analysis
