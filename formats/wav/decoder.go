// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"
	"time"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/audaug/audio"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

// Header describes the stream layout of a WAV file.
type Header struct {
	SampleRate int
	Channels   int
	BitDepth   int
	// PCMBytes is the size of the data chunk.
	PCMBytes int64
}

// SampleWidth is the size of one sample in bytes.
func (h Header) SampleWidth() int { return (h.BitDepth + 7) / 8 }

// Frames is the number of sample frames in the data chunk.
func (h Header) Frames() int64 {
	frame := int64(h.SampleWidth() * h.Channels)
	if frame == 0 {
		return 0
	}

	return h.PCMBytes / frame
}

// Duration of the data chunk.
func (h Header) Duration() time.Duration {
	if h.SampleRate <= 0 {
		return 0
	}

	return time.Duration(float64(h.Frames()) / float64(h.SampleRate) * float64(time.Second))
}

// pcmReader is the part of gowav.Decoder the source needs.
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type source struct {
	dec        pcmReader
	sampleRate int
	channels   int
	scale      float32
	offset     int
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
		s.ints = &goaudio.IntBuffer{Data: make([]int, len(dst))}
	}
	s.ints.Data = s.ints.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.ints)
	if err != nil {
		return 0, fmt.Errorf("reading WAV data: %w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}

	for i, v := range s.ints.Data[:n] {
		dst[i] = float32(v-s.offset) * s.scale
	}

	return n, nil
}

// Decoder reads integer PCM WAV files of 8, 16, 24 or 32 bits with any chunk
// layout.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := asReadSeeker(r)
	if err != nil {
		return nil, err
	}

	dec, hdr, err := open(rs)
	if err != nil {
		return nil, err
	}

	s := &source{
		dec:        dec,
		sampleRate: hdr.SampleRate,
		channels:   hdr.Channels,
	}

	switch hdr.BitDepth {
	case 8:
		// 8-bit WAV is unsigned around 128
		s.offset = 128
		s.scale = 1.0 / 128
	case 16:
		s.scale = 1.0 / 32768
	case 24:
		s.scale = 1.0 / 8388608
	case 32:
		s.scale = 1.0 / 2147483648
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, hdr.BitDepth)
	}

	return s, nil
}

// ReadHeader parses the format and data chunks without decoding samples.
func ReadHeader(r io.ReadSeeker) (Header, error) {
	_, hdr, err := open(r)
	return hdr, err
}

// Duration reports the playing time of the WAV data chunk.
func Duration(r io.ReadSeeker) (time.Duration, error) {
	hdr, err := ReadHeader(r)
	if err != nil {
		return 0, err
	}

	return hdr.Duration(), nil
}

func open(rs io.ReadSeeker) (*gowav.Decoder, Header, error) {
	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, Header{}, ErrNotWavFile
	}

	if dec.WavAudioFormat != formatPCM && dec.WavAudioFormat != formatExtensible {
		return nil, Header{}, fmt.Errorf("%w: format tag %d", ErrUnsupportedEncoding, dec.WavAudioFormat)
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, Header{}, fmt.Errorf("%w: %w", ErrMissingData, err)
	}

	hdr := Header{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
		PCMBytes:   dec.PCMLen(),
	}

	return dec, hdr, nil
}

// asReadSeeker buffers r in memory when it cannot seek; go-audio/wav needs
// to hop between chunks.
func asReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering WAV input: %w", err)
	}

	return bytes.NewReader(data), nil
}
