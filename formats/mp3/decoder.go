// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audaug/audio"
)

// go-mp3 always emits interleaved stereo 16-bit little-endian PCM.
const (
	channels       = 2
	bytesPerSample = 2
	bytesPerFrame  = channels * bytesPerSample
)

var ErrUnknownLength = errors.New("mp3 stream length is unknown")

// mp3Reader is the part of gomp3.Decoder the source needs.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	pending    int // bytes of a split sample carried to the next read
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / bytesPerSample }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * bytesPerSample
	if cap(s.buf) < need {
		buf := make([]byte, need)
		copy(buf, s.buf[:s.pending])
		s.buf = buf
	}
	s.buf = s.buf[:need]

	n, err := s.dec.Read(s.buf[s.pending:])
	n += s.pending

	samples := n / bytesPerSample
	for i := range samples {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(s.buf[2*i:]))) / 32768
	}

	s.pending = copy(s.buf, s.buf[samples*bytesPerSample:n])

	if errors.Is(err, io.EOF) || (err == nil && n == 0) {
		if samples == 0 {
			return 0, io.EOF
		}
		return samples, io.EOF
	}
	if err != nil {
		return samples, fmt.Errorf("decoding mp3: %w", err)
	}

	return samples, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("opening mp3 stream: %w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}, nil
}

// Duration derives the playing time from the decoded length. r must be
// seekable for go-mp3 to know the length up front.
func Duration(r io.ReadSeeker) (time.Duration, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return 0, fmt.Errorf("opening mp3 stream: %w", err)
	}

	return duration(dec.Length(), dec.SampleRate())
}

func duration(length int64, sampleRate int) (time.Duration, error) {
	if length < 0 || sampleRate <= 0 {
		return 0, ErrUnknownLength
	}

	frames := float64(length / bytesPerFrame)

	return time.Duration(frames / float64(sampleRate) * float64(time.Second)), nil
}
