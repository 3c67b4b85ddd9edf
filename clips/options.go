// SPDX-License-Identifier: EPL-2.0

package clips

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/ik5/audaug/vad"
)

// SampleRate every clip is converted to when it is read.
const SampleRate = 16000

// Options tune loading and per-clip processing. The zero value loads every
// matching file unfiltered, unsplit and untouched.
type Options struct {
	// MinDuration and MaxDuration (seconds) filter clips by length, keeping
	// only min < d < max. Zero disables a bound.
	MinDuration float64
	MaxDuration float64

	// RepeatMinDuration repeats a clip until it is at least this long.
	RepeatMinDuration float64

	// RemoveSilence keeps only voiced frames, see vad.RemoveSilence.
	RemoveSilence bool
	// Detector used by RemoveSilence. Nil means WebRTC in mode 0.
	Detector vad.Detector

	// SplitSeed enables the train/test/validation split.
	SplitSeed *int64
	// SplitCount is the share of clips in each of test and validation: a
	// fraction when below 1, a clip count otherwise. Zero means 0.1.
	SplitCount float64

	// TrimDuration cuts clips longer than this many seconds.
	TrimDuration float64
	// TrimZeros strips exact zeros from both ends.
	TrimZeros bool

	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}

	return slog.Default()
}

func (o Options) filtering() bool {
	return o.MinDuration > 0 || (o.MaxDuration > 0 && !math.IsInf(o.MaxDuration, 1))
}

func (o Options) keep(d float64) bool {
	maxD := o.MaxDuration
	if maxD <= 0 {
		maxD = math.Inf(1)
	}

	return o.MinDuration < d && d < maxD
}

// processor applies the per-clip pipeline shared by Clips and Clip.
type processor struct {
	opts     Options
	detector vad.Detector
}

func newProcessor(opts Options) (*processor, error) {
	p := &processor{opts: opts, detector: opts.Detector}

	if opts.RemoveSilence && p.detector == nil {
		d, err := vad.NewWebRTC(0)
		if err != nil {
			return nil, err
		}
		p.detector = d
	}

	return p, nil
}

// process runs silence removal, zero trimming, truncation and repetition in
// that order.
func (p *processor) process(samples []float32) ([]float32, error) {
	var err error

	if p.opts.RemoveSilence {
		samples, err = vad.RemoveSilence(p.detector, samples, vad.Options{SampleRate: SampleRate})
		if err != nil {
			return nil, fmt.Errorf("removing silence: %w", err)
		}
	}

	if p.opts.TrimZeros {
		samples = vad.TrimZeros(samples)
	}

	if p.opts.TrimDuration > 0 {
		if n := int(p.opts.TrimDuration * SampleRate); len(samples) > n {
			samples = samples[:n]
		}
	}

	return Repeat(samples, int(p.opts.RepeatMinDuration*SampleRate)), nil
}

// Repeat appends copies of samples to itself until it holds at least
// minSamples. Empty input is returned unchanged.
func Repeat(samples []float32, minSamples int) []float32 {
	if len(samples) == 0 || len(samples) >= minSamples {
		return samples
	}

	out := make([]float32, 0, (minSamples/len(samples)+1)*len(samples))
	for len(out) < minSamples {
		out = append(out, samples...)
	}

	return out
}
