// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audaug/utils"
)

// Resampler converts a Source to another sample rate with Catmull-Rom
// interpolation, keeping the channel layout. When downsampling, incoming
// frames pass through a one-pole low-pass first.
//
// Output frame k sits at source position k*srcRate/dstRate, so a stream of
// N source frames yields ceil(N*dstRate/srcRate) frames.
type Resampler struct {
	src      Source
	channels int
	srcRate  int64
	dstRate  int

	// hist[1] is the source frame at index base; hist[0] precedes it and
	// hist[2], hist[3] follow. live marks slots holding real frames.
	hist     [4][]float32
	live     [4]bool
	base     int64
	produced int64
	primed   bool
	srcEOF   bool
	done     bool

	lowpass bool
	lpState []float32
	lpSeed  bool

	frame []float32
}

const resamplerLowpassAlpha = 0.5

// NewResampler converts src to dstRate frames per second.
func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()

	r := &Resampler{
		src:      src,
		channels: channels,
		dstRate:  dstRate,
		frame:    make([]float32, channels),
		lpState:  make([]float32, channels),
	}
	r.srcRate = int64(src.SampleRate())
	r.lowpass = dstRate > 0 && r.srcRate > int64(dstRate)

	for i := range r.hist {
		r.hist[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing resampler source: %w", err)
	}

	return nil
}

// passthrough reports whether no conversion is needed.
func (r *Resampler) passthrough() bool {
	return r.src.SampleRate() == r.dstRate
}

// readFrame loads one source frame into dst. It returns false once the
// source is exhausted.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	if r.srcEOF {
		return false, nil
	}

	got := 0
	for got < r.channels {
		n, err := r.src.ReadSamples(r.frame[got:])
		got += n

		if errors.Is(err, io.EOF) {
			r.srcEOF = true
			break
		}
		if err != nil {
			return false, fmt.Errorf("resampler source: %w", err)
		}
		if n == 0 {
			// a source that makes no progress is treated as finished
			r.srcEOF = true
			break
		}
	}

	if got < r.channels {
		return false, nil
	}

	copy(dst, r.frame)

	if r.lowpass {
		if !r.lpSeed {
			copy(r.lpState, dst)
			r.lpSeed = true
		}
		for c := range dst {
			dst[c] = resamplerLowpassAlpha*dst[c] + (1-resamplerLowpassAlpha)*r.lpState[c]
			r.lpState[c] = dst[c]
		}
	}

	return true, nil
}

func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.readFrame(r.hist[1])
	if err != nil {
		return err
	}
	if !ok {
		r.done = true
		return nil
	}
	copy(r.hist[0], r.hist[1])
	r.live[0], r.live[1] = true, true

	for i := 2; i < 4; i++ {
		ok, err := r.readFrame(r.hist[i])
		if err != nil {
			return err
		}
		r.live[i] = ok
	}

	return nil
}

// advance moves the window one source frame forward.
func (r *Resampler) advance() error {
	first := r.hist[0]
	copy(r.hist[:], r.hist[1:])
	r.hist[3] = first
	copy(r.live[:], r.live[1:])
	r.base++

	ok, err := r.readFrame(r.hist[3])
	r.live[3] = ok

	return err
}

func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if r.channels <= 0 || len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.dstRate <= 0 {
		return 0, ErrInvalidSampleRate
	}
	if r.passthrough() {
		return r.src.ReadSamples(dst)
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	n := 0

	for n < frames && !r.done {
		// position is num/dstRate source frames
		num := r.produced * r.srcRate
		idx := num / int64(r.dstRate)

		for r.base < idx && r.live[1] {
			if err := r.advance(); err != nil {
				return n * r.channels, err
			}
		}

		if !r.live[1] {
			r.done = true
			break
		}

		t := float32(num%int64(r.dstRate)) / float32(r.dstRate)
		out := dst[n*r.channels : (n+1)*r.channels]

		for c := range out {
			p1 := r.hist[1][c]
			p0, p2, p3 := p1, p1, p1
			if r.live[0] {
				p0 = r.hist[0][c]
			}
			if r.live[2] {
				p2, p3 = r.hist[2][c], r.hist[2][c]
			}
			if r.live[3] {
				p3 = r.hist[3][c]
			}
			out[c] = utils.CubicInterpolate(p0, p1, p2, p3, t)
		}

		n++
		r.produced++
	}

	if r.done {
		return n * r.channels, io.EOF
	}

	return n * r.channels, nil
}
