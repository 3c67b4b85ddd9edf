// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{"zero", 0, 0},
		{"full scale", 1, 32767},
		{"negative full scale", -1, -32767},
		{"half", 0.5, 16383},
		{"clamp above", 1.5, 32767},
		{"clamp below", -7, -32767},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToInt16(tt.input); got != tt.want {
				t.Errorf("Float32ToInt16(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestPCM16RoundTrip(t *testing.T) {
	t.Parallel()

	in := []float32{0, 0.25, -0.25, 0.999, -0.999}
	pcm := FloatsToPCM16(nil, in)
	out := PCM16ToFloats(nil, pcm)

	for i := range in {
		if diff := math.Abs(float64(in[i] - out[i])); diff > 1.0/PCM16Scale {
			t.Errorf("sample %d: got %v, want %v", i, out[i], in[i])
		}
	}
}

func TestFloatsToPCM16_ReusesBuffer(t *testing.T) {
	t.Parallel()

	dst := make([]int16, 0, 16)
	got := FloatsToPCM16(dst, []float32{0.1, 0.2})

	if &got[0] != &dst[:1][0] {
		t.Error("FloatsToPCM16 reallocated a buffer with enough capacity")
	}
}

func TestDecibels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		db  float64
		amp float64
	}{
		{0, 1},
		{-6.0206, 0.5},
		{20, 10},
		{-20, 0.1},
	}

	for _, tt := range tests {
		if got := DBToAmplitude(tt.db); math.Abs(got-tt.amp) > 1e-4 {
			t.Errorf("DBToAmplitude(%v) = %v, want %v", tt.db, got, tt.amp)
		}
		if got := AmplitudeToDB(tt.amp); math.Abs(got-tt.db) > 1e-3 {
			t.Errorf("AmplitudeToDB(%v) = %v, want %v", tt.amp, got, tt.db)
		}
	}

	if got := AmplitudeToDB(0); !math.IsInf(got, -1) {
		t.Errorf("AmplitudeToDB(0) = %v, want -Inf", got)
	}
}

func TestCubicInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		p0, p1, p2, p3 float32
		x              float32
		want           float32
	}{
		{"start returns p1", 0, 1, 2, 3, 0, 1},
		{"end returns p2", 0, 1, 2, 3, 1, 2},
		{"linear ramp", 1, 2, 3, 4, 0.25, 2.25},
		{"flat", 0, 0, 0, 0, 0.5, 0},
		{"symmetric", -1, -0.5, 0.5, 1, 0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CubicInterpolate(tt.p0, tt.p1, tt.p2, tt.p3, tt.x)
			if math.Abs(float64(got-tt.want)) > 1e-5 {
				t.Errorf("CubicInterpolate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func BenchmarkCubicInterpolate(b *testing.B) {
	var out float32

	b.ReportAllocs()

	for i := range b.N {
		out = CubicInterpolate(0.5, 1, 0.8, 0.3, float32(i%100)/100)
	}

	_ = out
}

func TestFloat32ToInt16_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	buf := make([]int16, 1024)
	src := make([]float32, 1024)

	allocs := testing.AllocsPerRun(100, func() {
		_ = FloatsToPCM16(buf, src)
	})

	if allocs > 0 {
		t.Errorf("FloatsToPCM16 allocated %v times, want 0", allocs)
	}
}
