package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// padFactor oversamples the spectrum so the peak can be located between
// the raw bins.
const padFactor = 4

// PowerSpectrum returns the one-sided magnitude spectrum of data after
// removing its mean and zero-padding to a power of two.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	n := nextPow2(len(data) * padFactor)
	buf := make([]float64, n)
	for i, v := range data {
		buf[i] = v - mean
	}

	spec := fft.FFTReal(buf)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantFrequency returns the frequency in Hz of the strongest
// non-constant component of samples taken at fps.
func DominantFrequency(samples []float64, fps int) (float64, error) {
	if fps <= 0 {
		return 0, errors.New("fps must be positive")
	}
	if len(samples) < 4 {
		return 0, errors.New("need at least 4 samples")
	}
	ps := PowerSpectrum(samples)
	peak := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[peak] {
			peak = i
		}
	}
	if ps[peak] == 0 {
		return 0, nil
	}

	// Parabolic interpolation around the peak bin.
	offset := 0.0
	if peak+1 < len(ps) {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if d := a - 2*b + c; d != 0 {
			offset = 0.5 * (a - c) / d
		}
	}
	n := len(ps) * 2
	return (float64(peak) + offset) * float64(fps) / float64(n), nil
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << uint(math.Ceil(math.Log2(float64(n))))
}
