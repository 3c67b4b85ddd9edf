// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// SliceSource serves an in-memory interleaved buffer as a Source.
type SliceSource struct {
	samples    []float32
	sampleRate int
	channels   int
	off        int
}

// NewSliceSource wraps samples. The slice is not copied.
func NewSliceSource(sampleRate, channels int, samples []float32) (*SliceSource, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}
	if len(samples)%channels != 0 {
		return nil, ErrInvalidDstSize
	}

	return &SliceSource{samples: samples, sampleRate: sampleRate, channels: channels}, nil
}

func (s *SliceSource) SampleRate() int { return s.sampleRate }
func (s *SliceSource) Channels() int   { return s.channels }
func (s *SliceSource) BufSize() int    { return 4096 - 4096%s.channels }
func (s *SliceSource) Close() error    { return nil }

func (s *SliceSource) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if s.off >= len(s.samples) {
		return 0, io.EOF
	}

	n := copy(dst, s.samples[s.off:])
	s.off += n

	if s.off >= len(s.samples) {
		return n, io.EOF
	}

	return n, nil
}
