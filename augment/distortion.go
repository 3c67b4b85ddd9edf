// SPDX-License-Identifier: EPL-2.0

package augment

import (
	"math"
	"math/rand"
	"slices"

	"github.com/ik5/audaug/dsp"
)

// TanhDistortion soft-clips the clip through tanh. The drive follows a
// random amount in [MinDistortion, MaxDistortion) within [0, 1], and the
// output keeps the input RMS.
type TanhDistortion struct {
	MinDistortion, MaxDistortion float64
	P                            float64

	state
}

func (*TanhDistortion) Name() string { return "TanhDistortion" }

func (t *TanhDistortion) Apply(rng *rand.Rand, samples []float32, _ int) ([]float32, error) {
	if err := checkRange("tanh distortion", t.MinDistortion, t.MaxDistortion); err != nil {
		return nil, err
	}
	if !t.draw(rng, t.P) || len(samples) == 0 {
		return samples, nil
	}

	amount := uniform(rng, t.MinDistortion, t.MaxDistortion)
	t.set("distortion_amount", amount)

	threshold := percentile(samples, 100-99*amount)
	gain := 0.5 / (threshold + 1e-6)

	before := dsp.RMS(samples)
	for i, v := range samples {
		samples[i] = float32(math.Tanh(gain * float64(v)))
	}

	if after := dsp.RMS(samples); after > 0 {
		dsp.Scale(samples, float32(before/after))
	}

	return samples, nil
}

// percentile of |x| with linear interpolation between ranks.
func percentile(x []float32, q float64) float64 {
	abs := make([]float64, len(x))
	for i, v := range x {
		abs[i] = math.Abs(float64(v))
	}
	slices.Sort(abs)

	pos := max(0, min(1, q/100)) * float64(len(abs)-1)
	lo := int(math.Floor(pos))
	hi := min(lo+1, len(abs)-1)

	return abs[lo] + (abs[hi]-abs[lo])*(pos-float64(lo))
}

// AmplitudeModulation multiplies the second half of the clip by the
// envelope 1 + sin(2 pi f t), with f drawn from [MinFrequency,
// MaxFrequency) Hz, and clips the result to [-1, 1].
type AmplitudeModulation struct {
	MinFrequency, MaxFrequency float64
	P                          float64

	state
}

func (*AmplitudeModulation) Name() string { return "AmplitudeModulation" }

func (a *AmplitudeModulation) Apply(rng *rand.Rand, samples []float32, sampleRate int) ([]float32, error) {
	if err := checkRange("amplitude modulation", a.MinFrequency, a.MaxFrequency); err != nil {
		return nil, err
	}
	if !a.draw(rng, a.P) {
		return samples, nil
	}

	f := uniform(rng, a.MinFrequency, a.MaxFrequency)
	a.set("mod_freq", f)

	Modulate(samples, sampleRate, f)

	return samples, nil
}

// Modulate applies the sine envelope of AmplitudeModulation in place.
func Modulate(x []float32, sampleRate int, freq float64) {
	for i := len(x) / 2; i < len(x); i++ {
		t := float64(i) / float64(sampleRate)
		x[i] *= float32(1 + math.Sin(2*math.Pi*freq*t))
	}

	dsp.Clip(x)
}
