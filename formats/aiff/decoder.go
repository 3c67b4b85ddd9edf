// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audaug/audio"
)

// aiffReader is the part of aiff.Decoder the source needs.
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type source struct {
	dec        aiffReader
	sampleRate int
	channels   int
	scale      float32
	ints       *goaudio.IntBuffer
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

func (s *source) BufSize() int {
	if s.ints != nil && cap(s.ints.Data) > 0 {
		return cap(s.ints.Data)
	}

	return 4096 - 4096%s.channels
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.ints == nil || cap(s.ints.Data) < len(dst) {
		s.ints = &goaudio.IntBuffer{Data: make([]int, len(dst)), Format: s.dec.Format()}
	}
	s.ints.Data = s.ints.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.ints)
	for i, v := range s.ints.Data[:n] {
		dst[i] = float32(v) * s.scale
	}

	switch {
	case errors.Is(err, io.EOF):
		return n, io.EOF
	case err != nil:
		return n, fmt.Errorf("decoding aiff: %w", err)
	case n == 0:
		return 0, io.EOF
	}

	return n, nil
}

// scaleFor maps signed big-endian PCM of the given depth to [-1, 1).
func scaleFor(bitDepth int) (float32, error) {
	switch bitDepth {
	case 8:
		return 1.0 / 128, nil
	case 16:
		return 1.0 / 32768, nil
	case 24:
		return 1.0 / 8388608, nil
	case 32:
		return 1.0 / 2147483648, nil
	}

	return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := open(r)
	if err != nil {
		return nil, err
	}

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	scale, err := scaleFor(int(dec.BitDepth))
	if err != nil {
		return nil, err
	}

	return &source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		scale:      scale,
	}, nil
}

// Duration reads the playing time from the COMM chunk.
func Duration(r io.ReadSeeker) (time.Duration, error) {
	dec, err := open(r)
	if err != nil {
		return 0, err
	}

	d, err := dec.Duration()
	if err != nil {
		return 0, fmt.Errorf("aiff duration: %w", err)
	}

	return d, nil
}

func open(r io.Reader) (*aiff.Decoder, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		// go-audio/aiff needs to seek between chunks
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	return dec, nil
}
