// SPDX-License-Identifier: EPL-2.0

package augment

import (
	"fmt"
	"math/rand"

	"github.com/ik5/audaug/dsp"
)

// ApplyImpulseResponse convolves the clip with a random impulse response
// from a set of directories. The output keeps the input length.
type ApplyImpulseResponse struct {
	P float64

	files *fileSet
	state
}

// NewApplyImpulseResponse indexes the impulse responses under dirs. With
// no dirs the transform never changes its input.
func NewApplyImpulseResponse(dirs []string, p float64) (*ApplyImpulseResponse, error) {
	files, err := newFileSet(dirs)
	if err != nil {
		return nil, fmt.Errorf("impulse responses: %w", err)
	}

	return &ApplyImpulseResponse{P: p, files: files}, nil
}

func (*ApplyImpulseResponse) Name() string { return "ApplyImpulseResponse" }

func (a *ApplyImpulseResponse) Apply(rng *rand.Rand, samples []float32, sampleRate int) ([]float32, error) {
	if a.files.empty() {
		a.reset()
		return samples, nil
	}
	if !a.draw(rng, a.P) || len(samples) == 0 {
		return samples, nil
	}

	path := a.files.paths[rng.Intn(len(a.files.paths))]
	a.set("ir_file_path", path)

	ir, err := a.files.load(path, sampleRate)
	if err != nil {
		return nil, err
	}
	if len(ir) == 0 {
		return samples, nil
	}

	wet, err := dsp.Convolve(samples, ir)
	if err != nil {
		return nil, fmt.Errorf("convolving with %s: %w", path, err)
	}

	return wet[:len(samples)], nil
}
