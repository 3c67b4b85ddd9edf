// SPDX-License-Identifier: EPL-2.0

package augment

import (
	"fmt"
	"math/rand"

	"github.com/ik5/audaug/dsp"
	"github.com/ik5/audaug/utils"
)

// Gain multiplies the clip by a random gain in [MinDB, MaxDB).
type Gain struct {
	MinDB, MaxDB float64
	P            float64

	state
}

func (*Gain) Name() string { return "Gain" }

func (g *Gain) Apply(rng *rand.Rand, samples []float32, _ int) ([]float32, error) {
	if err := checkRange("gain", g.MinDB, g.MaxDB); err != nil {
		return nil, err
	}
	if !g.draw(rng, g.P) {
		return samples, nil
	}

	ratio := utils.DBToAmplitude(uniform(rng, g.MinDB, g.MaxDB))
	g.set("amplitude_ratio", ratio)
	dsp.Scale(samples, float32(ratio))

	return samples, nil
}

// GainTransition fades from one random gain to another. The fade lasts a
// random fraction of the clip in [MinFraction, MaxFraction) and is linear
// in decibels.
type GainTransition struct {
	MinDB, MaxDB             float64
	MinFraction, MaxFraction float64
	P                        float64

	state
}

func (*GainTransition) Name() string { return "GainTransition" }

func (g *GainTransition) Apply(rng *rand.Rand, samples []float32, _ int) ([]float32, error) {
	if err := checkRange("gain transition", g.MinDB, g.MaxDB); err != nil {
		return nil, err
	}
	if err := checkRange("gain transition duration", g.MinFraction, g.MaxFraction); err != nil {
		return nil, err
	}
	if !g.draw(rng, g.P) || len(samples) == 0 {
		return samples, nil
	}

	n := len(samples)
	fade := max(1, min(n, int(uniform(rng, g.MinFraction, g.MaxFraction)*float64(n))))
	// the fade may start before the clip or run past its end
	t0 := rng.Intn(n+fade-1) - fade + 1
	startDB := uniform(rng, g.MinDB, g.MaxDB)
	endDB := uniform(rng, g.MinDB, g.MaxDB)

	g.set("fade_time_samples", fade)
	g.set("t0", t0)
	g.set("start_gain_db", startDB)
	g.set("end_gain_db", endDB)

	for i := range samples {
		var db float64
		switch {
		case i < t0:
			db = startDB
		case i >= t0+fade:
			db = endDB
		default:
			db = startDB + (endDB-startDB)*float64(i-t0)/float64(fade)
		}
		samples[i] *= float32(utils.DBToAmplitude(db))
	}

	return samples, nil
}

// NormalizeTarget selects which clips Normalize touches.
type NormalizeTarget string

const (
	NormalizeAll       NormalizeTarget = "all"
	NormalizeTooLoud   NormalizeTarget = "only_too_loud_sounds"
	defaultNormalizeTo                 = NormalizeAll
)

// Normalize scales the clip so its peak is 1. With NormalizeTooLoud only
// clips peaking above 1 are scaled.
type Normalize struct {
	ApplyTo NormalizeTarget
	P       float64

	state
}

func (*Normalize) Name() string { return "Normalize" }

func (n *Normalize) Apply(rng *rand.Rand, samples []float32, _ int) ([]float32, error) {
	target := n.ApplyTo
	if target == "" {
		target = defaultNormalizeTo
	}
	if target != NormalizeAll && target != NormalizeTooLoud {
		return nil, fmt.Errorf("%w: %q", ErrUnknownApplyTo, target)
	}
	if !n.draw(rng, n.P) {
		return samples, nil
	}

	peak := dsp.Peak(samples)
	n.set("max_amplitude", float64(peak))

	if peak > 0 && (target == NormalizeAll || peak > 1) {
		dsp.Scale(samples, 1/peak)
	}

	return samples, nil
}
