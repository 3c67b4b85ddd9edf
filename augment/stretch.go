// SPDX-License-Identifier: EPL-2.0

package augment

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/ik5/audaug/dsp"
)

const (
	olaFrame     = 1024
	olaHop       = olaFrame / 4
	olaTolerance = olaHop / 2
)

var olaWindow = func() []float32 {
	w := make([]float32, olaFrame)
	for i := range w {
		w[i] = float32(0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/olaFrame))
	}
	return w
}()

// Stretch changes the duration of x by 1/rate without changing its pitch,
// using waveform-similarity overlap-add. rate > 1 shortens the clip.
func Stretch(x []float32, rate float64) []float32 {
	if rate <= 0 || len(x) == 0 {
		return append([]float32(nil), x...)
	}

	at := func(i int) float32 {
		if i < 0 || i >= len(x) {
			return 0
		}
		return x[i]
	}

	outLen := int(math.Round(float64(len(x)) / rate))
	out := make([]float32, outLen)
	norm := make([]float32, outLen)

	const half = olaFrame / 2
	prev := -half

	for k := 0; k*olaHop-half < outLen; k++ {
		outPos := k*olaHop - half
		in := int(math.Round(float64(k)*olaHop*rate)) - half

		// pick the offset that best continues the previous segment
		if k > 0 {
			next := prev + olaHop
			best, bestScore := 0, math.Inf(-1)
			for d := -olaTolerance; d <= olaTolerance; d++ {
				var score float64
				for j := 0; j < olaHop; j++ {
					score += float64(at(in+d+j) * at(next+j))
				}
				if score > bestScore {
					best, bestScore = d, score
				}
			}
			in += best
		}
		prev = in

		for j, w := range olaWindow {
			o := outPos + j
			if o < 0 || o >= outLen {
				continue
			}
			out[o] += at(in+j) * w
			norm[o] += w
		}
	}

	for i, n := range norm {
		if n > 1e-3 {
			out[i] /= n
		}
	}

	return out
}

// fit pads x with zeros or crops it to n samples.
func fit(x []float32, n int) []float32 {
	if len(x) >= n {
		return x[:n]
	}

	return append(x, make([]float32, n-len(x))...)
}

// TimeStretch speeds the clip up or down by a random rate in
// [MinRate, MaxRate) and then restores the original length.
type TimeStretch struct {
	MinRate, MaxRate float64
	P                float64

	state
}

func (*TimeStretch) Name() string { return "TimeStretch" }

func (t *TimeStretch) Apply(rng *rand.Rand, samples []float32, _ int) ([]float32, error) {
	if err := checkRange("time stretch rate", t.MinRate, t.MaxRate); err != nil {
		return nil, err
	}
	if t.MinRate <= 0 {
		return nil, fmt.Errorf("time stretch: %w: rate %v", ErrInvalidRange, t.MinRate)
	}
	if !t.draw(rng, t.P) {
		return samples, nil
	}

	rate := uniform(rng, t.MinRate, t.MaxRate)
	t.set("rate", rate)

	return fit(Stretch(samples, rate), len(samples)), nil
}

// pitchRateStep keeps intermediate rates on a coarse grid so the resampler
// works with a small rational ratio.
const pitchRateStep = 100

// PitchShift moves the pitch by a random number of semitones in
// [MinSemitones, MaxSemitones) keeping the duration.
type PitchShift struct {
	MinSemitones, MaxSemitones float64
	P                          float64

	state
}

func (*PitchShift) Name() string { return "PitchShift" }

func (p *PitchShift) Apply(rng *rand.Rand, samples []float32, sampleRate int) ([]float32, error) {
	if err := checkRange("pitch shift", p.MinSemitones, p.MaxSemitones); err != nil {
		return nil, err
	}
	if !p.draw(rng, p.P) || len(samples) == 0 {
		return samples, nil
	}

	semitones := uniform(rng, p.MinSemitones, p.MaxSemitones)
	p.set("num_semitones", semitones)

	out, err := ShiftPitch(samples, sampleRate, semitones)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ShiftPitch stretches x by the pitch ratio and resamples it back, so the
// result has the same length and a pitch moved by semitones.
func ShiftPitch(x []float32, sampleRate int, semitones float64) ([]float32, error) {
	ratio := math.Pow(2, semitones/12)

	from := int(math.Round(float64(sampleRate)*ratio/pitchRateStep)) * pitchRateStep
	if from <= 0 {
		return nil, fmt.Errorf("pitch shift by %v semitones: %w", semitones, ErrInvalidRange)
	}
	if from == sampleRate {
		return x, nil
	}

	stretched := Stretch(x, float64(sampleRate)/float64(from))

	out, err := dsp.Resample(stretched, from, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("pitch shift: %w", err)
	}

	return fit(out, len(x)), nil
}
