// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

const defaultBufSize = 4096

// ReadAll drains src and returns every interleaved sample it produced.
// bufSize <= 0 falls back to src.BufSize(). src is not closed.
func ReadAll(src Source, bufSize int) ([]float32, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}

	if bufSize <= 0 {
		bufSize = src.BufSize()
	}
	if bufSize <= 0 {
		bufSize = defaultBufSize
	}
	bufSize -= bufSize % channels
	if bufSize == 0 {
		bufSize = channels
	}

	buf := make([]float32, bufSize)
	var out []float32

	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)

		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("reading samples: %w", err)
		}
	}
}

// ReadMono resamples src to rate, folds it down to one channel and collects
// the result.
func ReadMono(src Source, rate, bufSize int) ([]float32, error) {
	if rate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	return ReadAll(NewMonoMixer(NewResampler(src, rate)), bufSize)
}
