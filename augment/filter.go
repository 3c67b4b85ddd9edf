// SPDX-License-Identifier: EPL-2.0

package augment

import (
	"math"
	"math/rand"

	"github.com/ik5/audaug/dsp"
)

// band holds the shared draw of BandPassFilter and BandStopFilter.
type band struct {
	MinCenter, MaxCenter       float64
	MinBandwidth, MaxBandwidth float64
	P                          float64

	state
}

func (b *band) pick(rng *rand.Rand, name string) (center, fraction float64, ok bool, err error) {
	if err := checkRange(name+" center", b.MinCenter, b.MaxCenter); err != nil {
		return 0, 0, false, err
	}
	if err := checkRange(name+" bandwidth", b.MinBandwidth, b.MaxBandwidth); err != nil {
		return 0, 0, false, err
	}
	if !b.draw(rng, b.P) {
		return 0, 0, false, nil
	}

	// centers are drawn evenly on a log scale
	center = b.MinCenter
	if b.MinCenter > 0 && b.MaxCenter > b.MinCenter {
		center = b.MinCenter * math.Pow(b.MaxCenter/b.MinCenter, rng.Float64())
	}
	fraction = uniform(rng, b.MinBandwidth, b.MaxBandwidth)

	b.set("center_freq", center)
	b.set("bandwidth_fraction", fraction)

	return center, fraction, true, nil
}

// BandPassFilter keeps a random band of the spectrum.
type BandPassFilter struct{ band }

// NewBandPassFilter draws centers in [minCenter, maxCenter] Hz and
// bandwidths as a fraction of the center in [minFraction, maxFraction].
func NewBandPassFilter(minCenter, maxCenter, minFraction, maxFraction, p float64) *BandPassFilter {
	return &BandPassFilter{band{minCenter, maxCenter, minFraction, maxFraction, p, state{}}}
}

func (*BandPassFilter) Name() string { return "BandPassFilter" }

func (f *BandPassFilter) Apply(rng *rand.Rand, samples []float32, sampleRate int) ([]float32, error) {
	center, fraction, ok, err := f.pick(rng, "band pass")
	if err != nil {
		return nil, err
	}
	if !ok {
		return samples, nil
	}

	low, high := dsp.BandEdges(center, fraction, float64(sampleRate))
	dsp.NewButterworthBandpass(low, high, float64(sampleRate)).ProcessBuffer(samples)

	return samples, nil
}

// BandStopFilter removes a random band of the spectrum.
type BandStopFilter struct{ band }

// NewBandStopFilter takes the same ranges as NewBandPassFilter.
func NewBandStopFilter(minCenter, maxCenter, minFraction, maxFraction, p float64) *BandStopFilter {
	return &BandStopFilter{band{minCenter, maxCenter, minFraction, maxFraction, p, state{}}}
}

func (*BandStopFilter) Name() string { return "BandStopFilter" }

func (f *BandStopFilter) Apply(rng *rand.Rand, samples []float32, sampleRate int) ([]float32, error) {
	center, fraction, ok, err := f.pick(rng, "band stop")
	if err != nil {
		return nil, err
	}
	if !ok {
		return samples, nil
	}

	low, high := dsp.BandEdges(center, fraction, float64(sampleRate))
	dsp.NewBandstop(low, high, float64(sampleRate)).ProcessBuffer(samples)

	return samples, nil
}
