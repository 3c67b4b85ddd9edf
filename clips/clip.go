// SPDX-License-Identifier: EPL-2.0

package clips

import (
	"fmt"
	"io"
	"os"

	"github.com/ik5/audaug/formats"
)

// DefaultSegmentDuration is the window length, in seconds, used by Segments
// when none is given.
const DefaultSegmentDuration = 3.2

// Clip is a single audio file served through the same generators as Clips.
type Clip struct {
	path string
	proc *processor
}

// NewClip prepares path for retrieval. Duration filtering and splitting
// options do not apply to a single file and are ignored.
func NewClip(path string, opts Options) (*Clip, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoClips, err)
	}

	proc, err := newProcessor(opts)
	if err != nil {
		return nil, err
	}

	opts.logger().Info("loaded clip", "path", path)

	return &Clip{path: path, proc: proc}, nil
}

// Path returns the file the clip is read from.
func (c *Clip) Path() string { return c.path }

// Sequential yields the processed clip repeat times.
func (c *Clip) Sequential(repeat int) Generator {
	return sequential(c.proc, []string{c.path}, repeat)
}

// Segments yields consecutive windows of seconds length cut from the
// decoded 16 kHz clip. A trailing partial window is dropped; a clip
// shorter than one window fails with ErrEmptyClip.
func (c *Clip) Segments(seconds float64) (Generator, error) {
	if seconds <= 0 {
		seconds = DefaultSegmentDuration
	}

	samples, err := formats.LoadMono(c.path, SampleRate)
	if err != nil {
		return nil, err
	}

	size := int(seconds * SampleRate)
	if size <= 0 || len(samples) < size {
		return nil, fmt.Errorf("%w: %s has %d samples, segment is %d", ErrEmptyClip, c.path, len(samples), size)
	}

	i := 0

	return GeneratorFunc(func() (Sample, error) {
		start, end := i*size, (i+1)*size
		if end > len(samples) {
			return Sample{}, io.EOF
		}
		i++

		return Sample{
			Samples: samples[start:end],
			Origin:  Origin{Path: c.path, Range: &Range{Start: start, End: end}},
		}, nil
	}), nil
}
