// SPDX-License-Identifier: EPL-2.0

package clips

import (
	"encoding/json"
	"io"
)

// Range is a half-open sample interval [Start, End).
type Range struct {
	Start int
	End   int
}

// Origin tells where a sample came from.
type Origin struct {
	Path string
	// Repetition is the pass over the clip list, counting from 0.
	Repetition int
	// Range is set for segments cut out of a longer clip.
	Range *Range
}

// MarshalJSON encodes the origin as [path, repetition], or
// [path, [start, end]] for segments.
func (o Origin) MarshalJSON() ([]byte, error) {
	if o.Range != nil {
		return json.Marshal([]any{o.Path, [2]int{o.Range.Start, o.Range.End}})
	}

	return json.Marshal([]any{o.Path, o.Repetition})
}

// Sample is one retrieved clip: 16 kHz mono samples plus their origin.
type Sample struct {
	Samples []float32
	Origin  Origin
}

// Generator yields samples until it returns io.EOF.
type Generator interface {
	Next() (Sample, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func() (Sample, error)

func (f GeneratorFunc) Next() (Sample, error) { return f() }

// Collect drains g.
func Collect(g Generator) ([]Sample, error) {
	var out []Sample

	for {
		s, err := g.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, s)
	}
}
