// SPDX-License-Identifier: EPL-2.0

package augment

import (
	"fmt"
	"math/rand"
	"slices"
)

// Compose runs every child in order when its own draw passes. Children
// still draw their own probability.
type Compose struct {
	Transforms []Transform
	P          float64

	state
}

// NewCompose runs transforms in order with probability p.
func NewCompose(p float64, transforms ...Transform) *Compose {
	return &Compose{Transforms: transforms, P: p}
}

func (*Compose) Name() string { return "Compose" }

func (c *Compose) Apply(rng *rand.Rand, samples []float32, sampleRate int) ([]float32, error) {
	if err := checkProbability("compose", c.P); err != nil {
		return nil, err
	}
	if !c.draw(rng, c.P) {
		for _, t := range c.Transforms {
			reset(t)
		}
		return samples, nil
	}

	return runAll(c.Transforms, rng, samples, sampleRate)
}

func (c *Compose) reset() {
	c.state.reset()
	for _, t := range c.Transforms {
		reset(t)
	}
}

func runAll(ts []Transform, rng *rand.Rand, samples []float32, sampleRate int) ([]float32, error) {
	var err error

	for _, t := range ts {
		if samples, err = t.Apply(rng, samples, sampleRate); err != nil {
			return nil, fmt.Errorf("%s: %w", t.Name(), err)
		}
	}

	return samples, nil
}

// OneOf runs exactly one uniformly chosen child.
type OneOf struct {
	Transforms []Transform
	P          float64

	state
}

// NewOneOf picks one of transforms with probability p.
func NewOneOf(p float64, transforms ...Transform) *OneOf {
	return &OneOf{Transforms: transforms, P: p}
}

func (*OneOf) Name() string { return "OneOf" }

func (o *OneOf) Apply(rng *rand.Rand, samples []float32, sampleRate int) ([]float32, error) {
	for _, t := range o.Transforms {
		reset(t)
	}

	if err := checkProbability("one of", o.P); err != nil {
		return nil, err
	}
	if !o.draw(rng, o.P) {
		return samples, nil
	}
	if len(o.Transforms) == 0 {
		return nil, ErrEmptyContainer
	}

	idx := rng.Intn(len(o.Transforms))
	o.set("transform_index", idx)

	return runAll(o.Transforms[idx:idx+1], rng, samples, sampleRate)
}

func (o *OneOf) reset() {
	o.state.reset()
	for _, t := range o.Transforms {
		reset(t)
	}
}

// SomeOf runs between Min and Max distinct children, keeping their order.
// Max <= 0 means all of them.
type SomeOf struct {
	Transforms []Transform
	Min, Max   int
	P          float64

	state
}

// NewSomeOf picks between minN and maxN of transforms with probability p.
func NewSomeOf(minN, maxN int, p float64, transforms ...Transform) *SomeOf {
	return &SomeOf{Transforms: transforms, Min: minN, Max: maxN, P: p}
}

func (*SomeOf) Name() string { return "SomeOf" }

func (s *SomeOf) Apply(rng *rand.Rand, samples []float32, sampleRate int) ([]float32, error) {
	for _, t := range s.Transforms {
		reset(t)
	}

	if err := checkProbability("some of", s.P); err != nil {
		return nil, err
	}
	if !s.draw(rng, s.P) {
		return samples, nil
	}
	if len(s.Transforms) == 0 {
		return nil, ErrEmptyContainer
	}

	hi := s.Max
	if hi <= 0 || hi > len(s.Transforms) {
		hi = len(s.Transforms)
	}
	lo := max(0, min(s.Min, hi))

	n := lo + rng.Intn(hi-lo+1)
	idx := rng.Perm(len(s.Transforms))[:n]
	slices.Sort(idx)
	s.set("transform_indexes", idx)

	picked := make([]Transform, n)
	for i, j := range idx {
		picked[i] = s.Transforms[j]
	}

	return runAll(picked, rng, samples, sampleRate)
}

func (s *SomeOf) reset() {
	s.state.reset()
	for _, t := range s.Transforms {
		reset(t)
	}
}
