// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audaug/audio"
)

var ErrUnknownLength = errors.New("ogg vorbis stream length is unknown")

// oggReader is the part of oggvorbis.Reader the source needs.
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read returns a count of interleaved values, always a multiple of
	// Channels().
	Read([]float32) (int, error)
}

type source struct {
	dec      oggReader
	channels int
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 - 4096%s.channels }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst)
	if errors.Is(err, io.EOF) {
		return n, io.EOF
	}
	if err != nil {
		return n, fmt.Errorf("decoding ogg vorbis: %w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}

	return n, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening ogg vorbis stream: %w", err)
	}

	return &source{dec: dec, channels: dec.Channels()}, nil
}

// Duration reads the stream length from the last Ogg page.
func Duration(r io.ReadSeeker) (time.Duration, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return 0, fmt.Errorf("opening ogg vorbis stream: %w", err)
	}

	return duration(dec.Length(), dec.SampleRate())
}

func duration(frames int64, sampleRate int) (time.Duration, error) {
	if frames <= 0 || sampleRate <= 0 {
		return 0, ErrUnknownLength
	}

	return time.Duration(float64(frames) / float64(sampleRate) * float64(time.Second)), nil
}
