// SPDX-License-Identifier: EPL-2.0

package clips

import (
	"math"
	"testing"

	"github.com/ik5/audaug/vad"
)

func TestRepeat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      []float32
		min     int
		wantLen int
	}{
		{"long enough", []float32{1, 2, 3}, 2, 3},
		{"exact", []float32{1, 2, 3}, 3, 3},
		{"repeated", []float32{1, 2, 3}, 7, 9},
		{"empty stays empty", nil, 10, 0},
		{"disabled", []float32{1}, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Repeat(tt.in, tt.min)
			if len(got) != tt.wantLen {
				t.Fatalf("len(Repeat()) = %d, want %d", len(got), tt.wantLen)
			}
			for i, v := range got {
				if v != tt.in[i%len(tt.in)] {
					t.Errorf("sample %d = %v, want %v", i, v, tt.in[i%len(tt.in)])
				}
			}
		})
	}
}

func TestProcessor_Order(t *testing.T) {
	t.Parallel()

	// zeros are trimmed before truncation, truncation happens before repeat
	in := make([]float32, 0, 20000)
	in = append(in, make([]float32, 100)...)
	for range 19800 {
		in = append(in, 0.25)
	}
	in = append(in, make([]float32, 100)...)

	p, err := newProcessor(Options{TrimZeros: true, TrimDuration: 0.5, RepeatMinDuration: 1.2})
	if err != nil {
		t.Fatal(err)
	}

	got, err := p.process(in)
	if err != nil {
		t.Fatal(err)
	}

	// 8000 samples after truncation, repeated 3x to pass 19200
	if len(got) != 24000 {
		t.Errorf("len = %d, want 24000", len(got))
	}
	if got[0] != 0.25 || got[len(got)-1] != 0.25 {
		t.Errorf("edges = %v, %v, want 0.25", got[0], got[len(got)-1])
	}
}

func TestProcessor_RemoveSilence(t *testing.T) {
	t.Parallel()

	in := make([]float32, 16000)
	for i := 8000; i < 12000; i++ {
		in[i] = 0.5
	}

	p, err := newProcessor(Options{RemoveSilence: true, Detector: vad.Energy{ThresholdDB: -40}})
	if err != nil {
		t.Fatal(err)
	}

	got, err := p.process(in)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) == 0 || len(got) >= len(in) {
		t.Errorf("len = %d, want voiced part only", len(got))
	}
}

func TestOptions_Keep(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts Options
		d    float64
		want bool
	}{
		{"inside", Options{MinDuration: 1, MaxDuration: 3}, 2, true},
		{"on min", Options{MinDuration: 1, MaxDuration: 3}, 1, false},
		{"on max", Options{MinDuration: 1, MaxDuration: 3}, 3, false},
		{"no max", Options{MinDuration: 1}, 1e6, true},
		{"inf max", Options{MaxDuration: math.Inf(1)}, 1e6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.opts.keep(tt.d); got != tt.want {
				t.Errorf("keep(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}
