// SPDX-License-Identifier: EPL-2.0

// Package dsp collects the buffer-level signal processing the augmentations
// and the normaliser share: RBJ biquads and Butterworth band filters,
// FFT convolution (github.com/cwbudde/algo-fft), band-limited resampling
// (github.com/cwbudde/algo-dsp) and level helpers.
package dsp
