// SPDX-License-Identifier: EPL-2.0

package augment

import (
	"fmt"
	"math/rand"
)

// Parameters are the values a transform drew on its last Apply. The key
// "should_apply" is always present.
type Parameters map[string]any

// Transform is one augmentation step. Apply may modify samples in place and
// returns the result, which can have a different backing array.
//
// Transforms remember the parameters of their last Apply and are therefore
// not safe for concurrent use.
type Transform interface {
	Name() string
	Apply(rng *rand.Rand, samples []float32, sampleRate int) ([]float32, error)
	Parameters() Parameters
}

// resetter is implemented by transforms that can forget their last draw,
// so that a skipped container does not report stale parameters.
type resetter interface {
	reset()
}

func reset(t Transform) {
	if r, ok := t.(resetter); ok {
		r.reset()
	}
}

// state holds the last drawn parameters of a transform.
type state struct {
	params Parameters
}

func (s *state) Parameters() Parameters {
	if s.params == nil {
		return Parameters{"should_apply": false}
	}

	return s.params
}

func (s *state) reset() { s.params = Parameters{"should_apply": false} }

// draw decides whether the transform runs this time.
func (s *state) draw(rng *rand.Rand, p float64) bool {
	apply := rng.Float64() < p
	s.params = Parameters{"should_apply": apply}

	return apply
}

func (s *state) set(key string, v any) { s.params[key] = v }

// uniform draws from [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func checkRange(name string, lo, hi float64) error {
	if lo > hi {
		return fmt.Errorf("%s: %w (%v > %v)", name, ErrInvalidRange, lo, hi)
	}

	return nil
}

func checkProbability(name string, p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("%s: %w: %v", name, ErrInvalidProbability, p)
	}

	return nil
}

// CustomFunc is a user supplied effect.
type CustomFunc func(samples []float32, sampleRate int) ([]float32, error)

// Custom runs Fn with probability P.
type Custom struct {
	Fn CustomFunc
	P  float64

	state
}

func (*Custom) Name() string { return "AddCustomFunction" }

func (c *Custom) Apply(rng *rand.Rand, samples []float32, sampleRate int) ([]float32, error) {
	if !c.draw(rng, c.P) || c.Fn == nil {
		return samples, nil
	}

	out, err := c.Fn(samples, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("custom function: %w", err)
	}

	return out, nil
}
