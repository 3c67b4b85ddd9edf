// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds synthetic sources and buffers shared by tests.
package audiotest

import (
	"errors"
	"io"
	"math"
)

// Waveform returns the value of frame i on channel ch.
type Waveform func(i, ch int) float32

// MockSource generates frames on demand. It satisfies audio.Source without
// importing it.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int
	pos        int
	wave       Waveform

	Closed bool
}

// NewMockSource creates a source of frames frames produced by wave.
func NewMockSource(sampleRate, channels, frames int, wave Waveform) *MockSource {
	return &MockSource{sampleRate: sampleRate, channels: channels, frames: frames, wave: wave}
}

func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 { return 0 })
}

func NewSineSource(sampleRate, channels, frames int, freq float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(i, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate)))
	})
}

func NewConstantSource(sampleRate, channels, frames int, v float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 { return v })
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.Closed = true
	return nil
}

// Reset rewinds the source.
func (m *MockSource) Reset() { m.pos = 0 }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.pos >= m.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/m.channels, m.frames-m.pos)
	for f := range n {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.wave(m.pos+f, ch)
		}
	}
	m.pos += n

	if m.pos >= m.frames {
		return n * m.channels, io.EOF
	}

	return n * m.channels, nil
}

// ErrBroken is returned by FailingSource.
var ErrBroken = errors.New("audiotest: broken source")

// FailingSource returns ErrBroken after serving frames frames of silence.
type FailingSource struct {
	*MockSource
}

func NewFailingSource(sampleRate, channels, frames int) *FailingSource {
	return &FailingSource{NewSilentSource(sampleRate, channels, frames)}
}

func (f *FailingSource) ReadSamples(dst []float32) (int, error) {
	n, err := f.MockSource.ReadSamples(dst)
	if errors.Is(err, io.EOF) {
		return n, ErrBroken
	}

	return n, err
}
