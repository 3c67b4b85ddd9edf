// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"fmt"

	dspresample "github.com/cwbudde/algo-dsp/dsp/resample"
)

// Resample converts a mono buffer between rates with the band-limited
// polyphase resampler. Equal rates return a copy.
func Resample(in []float32, fromRate, toRate int) ([]float32, error) {
	if fromRate <= 0 || toRate <= 0 {
		return nil, fmt.Errorf("resample %d -> %d: invalid rate", fromRate, toRate)
	}
	if fromRate == toRate || len(in) == 0 {
		return append([]float32(nil), in...), nil
	}

	r, err := dspresample.NewForRates(
		float64(fromRate),
		float64(toRate),
		dspresample.WithQuality(dspresample.QualityBest),
	)
	if err != nil {
		return nil, fmt.Errorf("resample %d -> %d: %w", fromRate, toRate, err)
	}

	in64 := make([]float64, len(in))
	for i, v := range in {
		in64[i] = float64(v)
	}

	out64 := r.Process(in64)
	out := make([]float32, len(out64))
	for i, v := range out64 {
		out[i] = float32(v)
	}

	return out, nil
}
