// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"errors"
	"fmt"

	algofft "github.com/cwbudde/algo-fft"
)

var ErrEmptyInput = errors.New("empty input")

// Convolve returns the full linear convolution of signal and kernel, of
// length len(signal)+len(kernel)-1, computed by FFT.
func Convolve(signal, kernel []float32) ([]float32, error) {
	if len(signal) == 0 || len(kernel) == 0 {
		return nil, ErrEmptyInput
	}

	out := make([]float32, len(signal)+len(kernel)-1)
	if err := algofft.ConvolveReal(out, signal, kernel); err != nil {
		return nil, fmt.Errorf("fft convolution: %w", err)
	}

	return out, nil
}
