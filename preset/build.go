// SPDX-License-Identifier: EPL-2.0

package preset

import (
	"fmt"

	"github.com/ik5/audaug/augment"
)

func or(v *float64, def float64) float64 {
	if v == nil {
		return def
	}

	return *v
}

// Build turns a preset into a Compose of its steps and the augmenter
// configuration.
func Build(f *File) (*augment.Compose, augment.Config, error) {
	cfg := augment.DefaultConfig()

	if f.Duration != nil {
		cfg.Duration = augment.Seconds(*f.Duration)
	}
	if f.NoDuration {
		cfg.Duration = nil
	}
	cfg.MinJitter = or(f.MinJitter, cfg.MinJitter)
	cfg.MaxJitter = or(f.MaxJitter, cfg.MaxJitter)
	cfg.TruncateRandomly = f.TruncateRandomly

	if cfg.MinJitter > cfg.MaxJitter {
		return nil, cfg, fmt.Errorf("%w: %v > %v", augment.ErrJitterRange, cfg.MinJitter, cfg.MaxJitter)
	}

	ts, err := buildSteps(f.Transforms, "transforms")
	if err != nil {
		return nil, cfg, err
	}

	return augment.NewCompose(or(f.P, 1), ts...), cfg, nil
}

func buildSteps(steps []Step, at string) ([]augment.Transform, error) {
	out := make([]augment.Transform, 0, len(steps))

	for i, s := range steps {
		t, err := buildStep(s, fmt.Sprintf("%s[%d]", at, i))
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	return out, nil
}

func buildStep(s Step, at string) (augment.Transform, error) {
	p := or(s.P, 0.5)

	switch s.Type {
	case "Compose", "OneOf", "SomeOf":
		children, err := buildSteps(s.Transforms, at+".transforms")
		if err != nil {
			return nil, err
		}

		switch s.Type {
		case "Compose":
			return augment.NewCompose(or(s.P, 1), children...), nil
		case "OneOf":
			return augment.NewOneOf(or(s.P, 1), children...), nil
		default:
			return augment.NewSomeOf(s.MinTransforms, s.MaxTransforms, or(s.P, 1), children...), nil
		}

	case "Gain":
		return &augment.Gain{MinDB: or(s.MinGainDB, -12), MaxDB: or(s.MaxGainDB, 12), P: p}, nil

	case "GainTransition":
		return &augment.GainTransition{
			MinDB:       or(s.MinGainDB, -24),
			MaxDB:       or(s.MaxGainDB, 6),
			MinFraction: or(s.MinFraction, 0.2),
			MaxFraction: or(s.MaxFraction, 0.5),
			P:           p,
		}, nil

	case "AddColorNoise":
		colors := make([]augment.NoiseColor, 0, len(s.Colors))
		for _, c := range s.Colors {
			color, err := augment.ParseColor(c)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", at, err)
			}
			colors = append(colors, color)
		}

		return &augment.AddColorNoise{MinSNR: or(s.MinSNR, 5), MaxSNR: or(s.MaxSNR, 40), Colors: colors, P: p}, nil

	case "AddBackgroundNoise":
		t, err := augment.NewAddBackgroundNoise(s.SoundsPath, or(s.MinSNR, 3), or(s.MaxSNR, 30), p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", at, err)
		}
		return t, nil

	case "ApplyImpulseResponse":
		t, err := augment.NewApplyImpulseResponse(s.IRPath, p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", at, err)
		}
		return t, nil

	case "BandPassFilter":
		return augment.NewBandPassFilter(
			or(s.MinCenter, 200), or(s.MaxCenter, 4000),
			or(s.MinBandwidth, 0.5), or(s.MaxBandwidth, 1.99), p,
		), nil

	case "BandStopFilter":
		return augment.NewBandStopFilter(
			or(s.MinCenter, 200), or(s.MaxCenter, 4000),
			or(s.MinBandwidth, 0.5), or(s.MaxBandwidth, 1.99), p,
		), nil

	case "PitchShift":
		return &augment.PitchShift{MinSemitones: or(s.MinSemitones, -4), MaxSemitones: or(s.MaxSemitones, 4), P: p}, nil

	case "TimeStretch":
		return &augment.TimeStretch{MinRate: or(s.MinRate, 0.8), MaxRate: or(s.MaxRate, 1.25), P: p}, nil

	case "Shift":
		rollover := true
		if s.Rollover != nil {
			rollover = *s.Rollover
		}
		return &augment.Shift{MinFraction: or(s.MinFraction, -0.5), MaxFraction: or(s.MaxFraction, 0.5), Rollover: rollover, P: p}, nil

	case "Normalize":
		target := augment.NormalizeTarget(s.ApplyTo)
		if target != "" && target != augment.NormalizeAll && target != augment.NormalizeTooLoud {
			return nil, fmt.Errorf("%s: %w: %q", at, augment.ErrUnknownApplyTo, s.ApplyTo)
		}
		return &augment.Normalize{ApplyTo: target, P: p}, nil

	case "TanhDistortion":
		return &augment.TanhDistortion{MinDistortion: or(s.MinDistortion, 0.01), MaxDistortion: or(s.MaxDistortion, 0.7), P: p}, nil

	case "AmplitudeModulation":
		return &augment.AmplitudeModulation{MinFrequency: or(s.MinModFreq, 0.5), MaxFrequency: or(s.MaxModFreq, 1), P: p}, nil
	}

	return nil, fmt.Errorf("%s: %w: %q", at, ErrUnknownType, s.Type)
}
