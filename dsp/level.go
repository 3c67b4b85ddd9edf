// SPDX-License-Identifier: EPL-2.0

package dsp

import "math"

// Peak returns max |x|.
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

// RMS returns the root mean square of x, or 0 for an empty buffer.
func RMS(x []float32) float64 {
	if len(x) == 0 {
		return 0
	}

	var sum float64
	for _, v := range x {
		sum += float64(v) * float64(v)
	}

	return math.Sqrt(sum / float64(len(x)))
}

// Scale multiplies x by g in place.
func Scale(x []float32, g float32) {
	for i := range x {
		x[i] *= g
	}
}

// Clip limits x to [-1, 1] in place.
func Clip(x []float32) {
	for i, v := range x {
		x[i] = max(-1, min(1, v))
	}
}

// Mix adds b*gain into a, up to the shorter length.
func Mix(a, b []float32, gain float32) {
	for i := range min(len(a), len(b)) {
		a[i] += b[i] * gain
	}
}
