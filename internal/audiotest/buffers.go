// SPDX-License-Identifier: EPL-2.0

package audiotest

import "math"

// Sine returns n mono samples of a sine at freq Hz with peak amplitude amp.
func Sine(n, sampleRate int, freq, amp float64) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(amp * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
	}

	return out
}

// Ramp returns 1, 2, ..., n scaled by step. Handy for tracking which
// samples survive a crop.
func Ramp(n int, step float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(i+1) * step
	}

	return out
}

// Peak is the maximum absolute sample value.
func Peak(x []float32) float32 {
	var p float32
	for _, v := range x {
		if v < 0 {
			v = -v
		}
		if v > p {
			p = v
		}
	}

	return p
}
