// SPDX-License-Identifier: EPL-2.0

// Package formats wires the format decoders into a registry keyed by file
// extension and offers path based helpers on top of it.
package formats

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ik5/audaug/audio"
	"github.com/ik5/audaug/formats/aiff"
	"github.com/ik5/audaug/formats/mp3"
	"github.com/ik5/audaug/formats/vorbis"
	"github.com/ik5/audaug/formats/wav"
)

var ErrUnsupportedFormat = errors.New("unsupported audio format")

type durationFunc func(io.ReadSeeker) (time.Duration, error)

var probes = map[string]durationFunc{
	"wav":  wav.Duration,
	"mp3":  mp3.Duration,
	"ogg":  vorbis.Duration,
	"aif":  aiff.Duration,
	"aiff": aiff.Duration,
}

var defaultRegistry = NewRegistry()

// NewRegistry returns a registry with every built-in decoder.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})

	return reg
}

// Default is the shared registry used by Open.
func Default() *audio.Registry { return defaultRegistry }

// Extensions lists the supported extensions with a leading dot.
func Extensions() []string {
	keys := defaultRegistry.Formats()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = "." + k
	}

	return out
}

func extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// IsSupported reports whether path has an extension with a decoder.
func IsSupported(path string) bool {
	_, ok := defaultRegistry.Get(extension(path))
	return ok
}

// File is an opened audio file. Closing it closes the decoded stream and the
// underlying file.
type File struct {
	audio.Source
	f *os.File
}

func (f *File) Close() error {
	return errors.Join(f.Source.Close(), f.f.Close())
}

// Open decodes path with the decoder registered for its extension.
func Open(path string) (*File, error) {
	dec, ok := defaultRegistry.Get(extension(path))
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	src, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return &File{Source: src, f: f}, nil
}

// Duration reads the playing time of path from its container headers
// without decoding the audio.
func Duration(path string) (time.Duration, error) {
	probe, ok := probes[extension(path)]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	d, err := probe(f)
	if err != nil {
		return 0, fmt.Errorf("probing %s: %w", path, err)
	}

	return d, nil
}

// LoadMono decodes path, resamples it to rate and folds it to mono.
func LoadMono(path string, rate int) ([]float32, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	samples, err := audio.ReadMono(f, rate, 0)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	return samples, nil
}

// Load decodes path at its native rate and channel layout.
func Load(path string) (samples []float32, sampleRate, channels int, err error) {
	f, err := Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	samples, err = audio.ReadAll(f, 0)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("loading %s: %w", path, err)
	}

	return samples, f.SampleRate(), f.Channels(), nil
}
