// SPDX-License-Identifier: EPL-2.0

package augment

import (
	"math"
	"math/rand"
)

// Shift moves the clip in time by a random fraction of its length in
// [MinFraction, MaxFraction). Positive values shift right. With Rollover
// the samples pushed out re-enter on the other side, otherwise the gap is
// silent.
type Shift struct {
	MinFraction, MaxFraction float64
	Rollover                 bool
	P                        float64

	state
}

func (*Shift) Name() string { return "Shift" }

func (s *Shift) Apply(rng *rand.Rand, samples []float32, _ int) ([]float32, error) {
	if err := checkRange("shift", s.MinFraction, s.MaxFraction); err != nil {
		return nil, err
	}
	if !s.draw(rng, s.P) {
		return samples, nil
	}

	places := int(math.Round(uniform(rng, s.MinFraction, s.MaxFraction) * float64(len(samples))))
	s.set("num_places_to_shift", places)
	s.set("rollover", s.Rollover)

	return ShiftSamples(samples, places, s.Rollover), nil
}

// ShiftSamples returns x moved by places samples.
func ShiftSamples(x []float32, places int, rollover bool) []float32 {
	n := len(x)
	out := make([]float32, n)
	if n == 0 {
		return out
	}

	if rollover {
		places = ((places % n) + n) % n
		copy(out[places:], x[:n-places])
		copy(out[:places], x[n-places:])

		return out
	}

	switch {
	case places >= n || -places >= n:
	case places >= 0:
		copy(out[places:], x[:n-places])
	default:
		copy(out[:n+places], x[-places:])
	}

	return out
}
