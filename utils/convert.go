// SPDX-License-Identifier: EPL-2.0

package utils

// PCM16Scale is the factor between float samples in [-1, 1] and 16-bit PCM.
const PCM16Scale = 32767.0

// Float32ToInt16 clamps x to [-1, 1] and scales it to 16-bit PCM (truncating).
func Float32ToInt16(x float32) int16 {
	switch {
	case x > 1:
		x = 1
	case x < -1:
		x = -1
	}

	return int16(x * PCM16Scale)
}

// Int16ToFloat32 is the inverse of Float32ToInt16.
func Int16ToFloat32(v int16) float32 {
	return float32(v) / PCM16Scale
}

// FloatsToPCM16 converts a whole buffer. dst is reused when it has enough capacity.
func FloatsToPCM16(dst []int16, src []float32) []int16 {
	if cap(dst) < len(src) {
		dst = make([]int16, len(src))
	}
	dst = dst[:len(src)]

	for i, x := range src {
		dst[i] = Float32ToInt16(x)
	}

	return dst
}

// PCM16ToFloats converts a whole buffer. dst is reused when it has enough capacity.
func PCM16ToFloats(dst []float32, src []int16) []float32 {
	if cap(dst) < len(src) {
		dst = make([]float32, len(src))
	}
	dst = dst[:len(src)]

	for i, v := range src {
		dst[i] = Int16ToFloat32(v)
	}

	return dst
}
