// SPDX-License-Identifier: EPL-2.0

package augment

import (
	"fmt"
	"math/rand"

	"github.com/ik5/audaug/clips"
)

// SampleRate of the clips the augmenter works on.
const SampleRate = clips.SampleRate

// Config positions a clip inside the augmented output.
type Config struct {
	// Duration of the output in seconds. Nil keeps the jittered length.
	Duration *float64
	// MinJitter and MaxJitter bound the silence, in seconds, appended after
	// the clip so it does not always end at the same point.
	MinJitter, MaxJitter float64
	// TruncateRandomly cuts too long clips at a random offset instead of
	// dropping their start.
	TruncateRandomly bool
}

// Seconds is a helper for Config.Duration.
func Seconds(s float64) *float64 { return &s }

// Result is an augmented clip with the parameters that produced it.
type Result struct {
	Samples []float32
	Applied []AppliedTransform
}

// Augmenter pads or crops clips to a fixed size and runs a transform over
// them. It is not safe for concurrent use.
type Augmenter struct {
	transform Transform
	rng       *rand.Rand

	minJitter, maxJitter int
	size                 int
	truncateRandomly     bool
}

// NewAugmenter fails with ErrJitterRange when MinJitter is above MaxJitter.
func NewAugmenter(t Transform, cfg Config, rng *rand.Rand) (*Augmenter, error) {
	a := &Augmenter{
		transform:        t,
		rng:              rng,
		minJitter:        int(cfg.MinJitter * SampleRate),
		maxJitter:        int(cfg.MaxJitter * SampleRate),
		size:             -1,
		truncateRandomly: cfg.TruncateRandomly,
	}

	if a.minJitter > a.maxJitter {
		return nil, fmt.Errorf("%w: %v > %v", ErrJitterRange, cfg.MinJitter, cfg.MaxJitter)
	}
	if cfg.Duration != nil {
		a.size = int(*cfg.Duration * SampleRate)
	}

	return a, nil
}

// Transform returns the transform applied by Augment.
func (a *Augmenter) Transform() Transform { return a.transform }

// AddJitter pads x on the right with a random amount of silence.
func (a *Augmenter) AddJitter(x []float32) []float32 {
	n := a.minJitter
	if a.minJitter < a.maxJitter {
		n += a.rng.Intn(a.maxJitter - a.minJitter)
	}

	out := make([]float32, len(x)+n)
	copy(out, x)

	return out
}

// FixedSize crops or left-pads x to the configured duration.
func (a *Augmenter) FixedSize(x []float32) []float32 {
	if a.size < 0 {
		return x
	}

	if a.size < len(x) {
		if a.truncateRandomly {
			start := a.rng.Intn(len(x) - a.size)
			return x[start : start+a.size]
		}

		return x[len(x)-a.size:]
	}

	out := make([]float32, a.size)
	copy(out[a.size-len(x):], x)

	return out
}

// Augment jitters, sizes and transforms x.
func (a *Augmenter) Augment(x []float32) (Result, error) {
	x = a.FixedSize(a.AddJitter(x))

	out, err := a.transform.Apply(a.rng, x, SampleRate)
	if err != nil {
		return Result{}, fmt.Errorf("augmenting: %w", err)
	}

	return Result{Samples: out, Applied: Applied(a.transform)}, nil
}

// Augmented is a Result paired with the clip it came from.
type Augmented struct {
	Result
	Origin clips.Origin
}

// Generator augments every sample of a clip generator.
type Generator struct {
	a   *Augmenter
	src clips.Generator
}

// Generator wraps src so every clip it yields is augmented.
func (a *Augmenter) Generator(src clips.Generator) *Generator {
	return &Generator{a: a, src: src}
}

// Next returns io.EOF once src is exhausted.
func (g *Generator) Next() (Augmented, error) {
	s, err := g.src.Next()
	if err != nil {
		return Augmented{}, err
	}

	res, err := g.a.Augment(s.Samples)
	if err != nil {
		return Augmented{}, fmt.Errorf("%s: %w", s.Origin.Path, err)
	}

	return Augmented{Result: res, Origin: s.Origin}, nil
}
