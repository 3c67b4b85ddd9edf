// SPDX-License-Identifier: EPL-2.0

package augment

import "math/rand"

// DefaultConfig is the positioning used by the built-in presets: 3.2 s
// clips ending about 0.2 s before the end.
func DefaultConfig() Config {
	return Config{Duration: Seconds(3.2), MinJitter: 0.195, MaxJitter: 0.205}
}

func voiceNature() Transform {
	return NewOneOf(0.9,
		&PitchShift{MinSemitones: -1, MaxSemitones: 2, P: 1},
		&TimeStretch{MinRate: 0.9, MaxRate: 1.1, P: 1},
	)
}

func deviceAndLevel() []Transform {
	return []Transform{
		NewBandPassFilter(300, 4000, 0.7, 1.2, 0.4),
		&Gain{MinDB: -3, MaxDB: 3, P: 0.8},
		&Shift{MinFraction: -0.2, MaxFraction: 0.2, Rollover: true, P: 0.5},
		&Normalize{ApplyTo: NormalizeTooLoud, P: 1},
	}
}

// Aggressive changes the voice, places it in a noisy reverberant room and
// simulates a cheap microphone.
func Aggressive(backgroundDirs, irDirs []string) (*Compose, error) {
	background, err := NewAddBackgroundNoise(backgroundDirs, 0, 15, 0.9)
	if err != nil {
		return nil, err
	}

	ir, err := NewApplyImpulseResponse(irDirs, 0.7)
	if err != nil {
		return nil, err
	}

	ts := []Transform{
		voiceNature(),
		background,
		ir,
		&AddColorNoise{MinSNR: 10, MaxSNR: 30, Colors: Colors(), P: 0.5},
	}

	return NewCompose(1, append(ts, deviceAndLevel()...)...), nil
}

// AggressiveNoNoise is Aggressive without background noise, reverb and
// color noise.
func AggressiveNoNoise() *Compose {
	return NewCompose(1, append([]Transform{voiceNature()}, deviceAndLevel()...)...)
}

// CustomPreset runs fn and then tames clips that went above full scale.
func CustomPreset(fn CustomFunc) *Compose {
	return NewCompose(1,
		&Custom{Fn: fn, P: 1},
		&Normalize{ApplyTo: NormalizeTooLoud, P: 1},
	)
}

// ModulationTest modulates the second half of every clip.
func ModulationTest() *Compose {
	return NewCompose(1,
		&AmplitudeModulation{MinFrequency: 0.5, MaxFrequency: 1, P: 1},
		&Normalize{ApplyTo: NormalizeTooLoud, P: 1},
	)
}

// NewAggressiveAugmenter wraps Aggressive in DefaultConfig.
func NewAggressiveAugmenter(backgroundDirs, irDirs []string, rng *rand.Rand) (*Augmenter, error) {
	t, err := Aggressive(backgroundDirs, irDirs)
	if err != nil {
		return nil, err
	}

	return NewAugmenter(t, DefaultConfig(), rng)
}

// NewAggressiveNoNoiseAugmenter wraps AggressiveNoNoise in DefaultConfig.
func NewAggressiveNoNoiseAugmenter(rng *rand.Rand) (*Augmenter, error) {
	return NewAugmenter(AggressiveNoNoise(), DefaultConfig(), rng)
}

// NewCustomAugmenter wraps CustomPreset(fn) in DefaultConfig.
func NewCustomAugmenter(fn CustomFunc, rng *rand.Rand) (*Augmenter, error) {
	return NewAugmenter(CustomPreset(fn), DefaultConfig(), rng)
}

// NewModulationAugmenter wraps ModulationTest in DefaultConfig.
func NewModulationAugmenter(rng *rand.Rand) (*Augmenter, error) {
	return NewAugmenter(ModulationTest(), DefaultConfig(), rng)
}
