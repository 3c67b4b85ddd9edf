// SPDX-License-Identifier: EPL-2.0

package augment

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/ik5/audaug/dsp"
	"github.com/ik5/audaug/utils"
)

// NoiseColor is the spectral slope of generated noise.
type NoiseColor string

const (
	White  NoiseColor = "white"
	Pink   NoiseColor = "pink"
	Brown  NoiseColor = "brown"
	Blue   NoiseColor = "blue"
	Violet NoiseColor = "violet"
)

// Colors lists every supported noise color.
func Colors() []NoiseColor { return []NoiseColor{White, Pink, Brown, Blue, Violet} }

// ParseColor validates a color name.
func ParseColor(s string) (NoiseColor, error) {
	c := NoiseColor(s)
	switch c {
	case White, Pink, Brown, Blue, Violet:
		return c, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

// snrGain is the factor that brings noise with RMS noiseRMS to signalRMS
// reduced by snrDB.
func snrGain(signalRMS, noiseRMS, snrDB float64) float32 {
	return float32(signalRMS / utils.DBToAmplitude(snrDB) / noiseRMS)
}

// AddColorNoise mixes in generated noise of a random color at a random SNR.
// Colors empty means white noise only.
type AddColorNoise struct {
	MinSNR, MaxSNR float64
	Colors         []NoiseColor
	P              float64

	state
}

func (*AddColorNoise) Name() string { return "AddColorNoise" }

func (a *AddColorNoise) Apply(rng *rand.Rand, samples []float32, _ int) ([]float32, error) {
	if err := checkRange("color noise snr", a.MinSNR, a.MaxSNR); err != nil {
		return nil, err
	}
	if !a.draw(rng, a.P) {
		return samples, nil
	}

	color := White
	if len(a.Colors) > 0 {
		color = a.Colors[rng.Intn(len(a.Colors))]
	}
	snr := uniform(rng, a.MinSNR, a.MaxSNR)
	a.set("snr_db", snr)
	a.set("color", string(color))

	noise, err := ColoredNoise(rng, color, len(samples))
	if err != nil {
		return nil, err
	}

	signal, level := dsp.RMS(samples), dsp.RMS(noise)
	if signal == 0 || level == 0 {
		return samples, nil
	}

	dsp.Mix(samples, noise, snrGain(signal, level, snr))

	return samples, nil
}

// ColoredNoise returns n samples of Gaussian noise shaped to color. The
// level is arbitrary; callers scale it.
func ColoredNoise(rng *rand.Rand, color NoiseColor, n int) ([]float32, error) {
	out := make([]float32, n)

	switch color {
	case White:
		for i := range out {
			out[i] = float32(rng.NormFloat64())
		}
	case Pink:
		pink(rng, out)
	case Brown:
		// leaky integrator, -6 dB/octave above a few Hz
		var y float64
		for i := range out {
			y = 0.995*y + 0.1*rng.NormFloat64()
			out[i] = float32(y)
		}
	case Blue:
		// differentiated pink, +3 dB/octave
		pink(rng, out)
		differentiate(out)
	case Violet:
		for i := range out {
			out[i] = float32(rng.NormFloat64())
		}
		differentiate(out)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownColor, color)
	}

	return out, nil
}

// pink fills out using Paul Kellet's refined -3 dB/octave filter.
func pink(rng *rand.Rand, out []float32) {
	var b0, b1, b2, b3, b4, b5, b6 float64

	for i := range out {
		w := rng.NormFloat64()
		b0 = 0.99886*b0 + w*0.0555179
		b1 = 0.99332*b1 + w*0.0750759
		b2 = 0.96900*b2 + w*0.1538520
		b3 = 0.86650*b3 + w*0.3104856
		b4 = 0.55000*b4 + w*0.5329522
		b5 = -0.7616*b5 - w*0.0168980
		out[i] = float32(b0 + b1 + b2 + b3 + b4 + b5 + b6 + w*0.5362)
		b6 = w * 0.115926
	}
}

func differentiate(x []float32) {
	var prev float32
	for i, v := range x {
		x[i] = v - prev
		prev = v
	}
}

// AddBackgroundNoise mixes in a random file from a set of directories at a
// random SNR. Short noise files are looped, long ones are cropped at a
// random offset.
type AddBackgroundNoise struct {
	MinSNR, MaxSNR float64
	P              float64
	Logger         *slog.Logger

	files *fileSet
	state
}

// NewAddBackgroundNoise indexes the audio files under dirs. With no dirs
// the transform never changes its input.
func NewAddBackgroundNoise(dirs []string, minSNR, maxSNR, p float64) (*AddBackgroundNoise, error) {
	if err := checkRange("background noise snr", minSNR, maxSNR); err != nil {
		return nil, err
	}

	files, err := newFileSet(dirs)
	if err != nil {
		return nil, fmt.Errorf("background noise: %w", err)
	}

	return &AddBackgroundNoise{MinSNR: minSNR, MaxSNR: maxSNR, P: p, files: files}, nil
}

func (*AddBackgroundNoise) Name() string { return "AddBackgroundNoise" }

func (a *AddBackgroundNoise) Apply(rng *rand.Rand, samples []float32, sampleRate int) ([]float32, error) {
	if a.files.empty() {
		a.reset()
		return samples, nil
	}
	if !a.draw(rng, a.P) || len(samples) == 0 {
		return samples, nil
	}

	snr := uniform(rng, a.MinSNR, a.MaxSNR)
	path := a.files.paths[rng.Intn(len(a.files.paths))]
	a.set("snr_db", snr)
	a.set("noise_file_path", path)

	noise, err := a.files.load(path, sampleRate)
	if err != nil {
		return nil, err
	}

	start := 0
	if len(noise) > len(samples) {
		start = rng.Intn(len(noise) - len(samples) + 1)
	}
	a.set("noise_start_index", start)
	a.set("noise_end_index", start+len(samples))

	if len(noise) == 0 {
		a.logger().Warn("empty background noise file", "path", path)
		return samples, nil
	}

	window := make([]float32, len(samples))
	if len(noise) >= len(samples) {
		copy(window, noise[start:])
	} else {
		for i := range window {
			window[i] = noise[i%len(noise)]
		}
	}

	signal, level := dsp.RMS(samples), dsp.RMS(window)
	if level == 0 {
		a.logger().Warn("background noise is silent", "path", path)
		return samples, nil
	}
	if signal == 0 {
		return samples, nil
	}

	dsp.Mix(samples, window, snrGain(signal, level, snr))

	return samples, nil
}

func (a *AddBackgroundNoise) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}

	return slog.Default()
}
