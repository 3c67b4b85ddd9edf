// SPDX-License-Identifier: EPL-2.0

package vad

import (
	"fmt"
	"math"

	"github.com/ik5/audaug/utils"
)

// Options controls RemoveSilence.
type Options struct {
	// FrameDuration in seconds. Zero means 30 ms.
	FrameDuration float64
	// SampleRate of the input. Zero means 16 kHz.
	SampleRate int
	// MinStart samples at the head are always kept. Negative keeps none,
	// zero means 2000.
	MinStart int
}

func (o Options) withDefaults() Options {
	if o.FrameDuration <= 0 {
		o.FrameDuration = 0.030
	}
	if o.SampleRate <= 0 {
		o.SampleRate = 16000
	}
	if o.MinStart == 0 {
		o.MinStart = 2000
	}
	if o.MinStart < 0 {
		o.MinStart = 0
	}

	return o
}

// RemoveSilence keeps the first MinStart samples, then walks the rest in
// non-overlapping frames and keeps only the frames d marks as speech. The
// trailing partial frame, and the last whole frame when it ends exactly at
// the buffer end, are dropped. Samples go through 16-bit quantisation.
func RemoveSilence(d Detector, samples []float32, opts Options) ([]float32, error) {
	opts = opts.withDefaults()

	pcm := utils.FloatsToPCM16(nil, samples)
	step := int(float64(opts.SampleRate) * opts.FrameDuration)
	head := min(opts.MinStart, len(pcm))

	kept := make([]int16, 0, len(pcm))
	kept = append(kept, pcm[:head]...)

	if step > 0 {
		for i := opts.MinStart; i < len(pcm)-step; i += step {
			frame := pcm[i : i+step]

			speech, err := d.IsSpeech(frame, opts.SampleRate)
			if err != nil {
				return nil, fmt.Errorf("frame at %d: %w", i, err)
			}
			if speech {
				kept = append(kept, frame...)
			}
		}
	}

	return utils.PCM16ToFloats(nil, kept), nil
}

// TrimZeros drops exact zeros from both ends.
func TrimZeros(samples []float32) []float32 {
	start := 0
	for start < len(samples) && samples[start] == 0 {
		start++
	}

	end := len(samples)
	for end > start && samples[end-1] == 0 {
		end--
	}

	return samples[start:end]
}

// TrimSilence drops samples whose magnitude is at or below threshold from
// both ends. A fully silent buffer yields an empty slice.
func TrimSilence(samples []float32, threshold float32) []float32 {
	quiet := func(v float32) bool {
		return float32(math.Abs(float64(v))) <= threshold
	}

	start := 0
	for start < len(samples) && quiet(samples[start]) {
		start++
	}

	end := len(samples)
	for end > start && quiet(samples[end-1]) {
		end--
	}

	return samples[start:end]
}
