// SPDX-License-Identifier: EPL-2.0

package augment

import (
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/ik5/audaug/dsp"
	"github.com/ik5/audaug/internal/audiotest"
)

func newRand() *rand.Rand { return rand.New(rand.NewSource(1)) }

func TestProbability(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		p    float64
		want bool
	}{
		{"never", 0, false},
		{"always", 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := &Gain{MinDB: -6, MaxDB: -6, P: tt.p}
			in := []float32{0.5, -0.5}

			out, err := g.Apply(newRand(), slices.Clone(in), 16000)
			if err != nil {
				t.Fatal(err)
			}
			if got := g.Parameters()["should_apply"]; got != tt.want {
				t.Errorf("should_apply = %v, want %v", got, tt.want)
			}
			if changed := out[0] != in[0]; changed != tt.want {
				t.Errorf("changed = %v, want %v", changed, tt.want)
			}
		})
	}
}

func TestGain(t *testing.T) {
	t.Parallel()

	g := &Gain{MinDB: -20, MaxDB: -20, P: 1}

	out, err := g.Apply(newRand(), []float32{1, -0.5}, 16000)
	if err != nil {
		t.Fatal(err)
	}

	ratio := g.Parameters()["amplitude_ratio"].(float64)
	if math.Abs(ratio-0.1) > 1e-9 {
		t.Errorf("amplitude_ratio = %v, want 0.1", ratio)
	}
	if math.Abs(float64(out[0])-0.1) > 1e-6 || math.Abs(float64(out[1])+0.05) > 1e-6 {
		t.Errorf("out = %v", out)
	}

	if _, err := (&Gain{MinDB: 3, MaxDB: -3, P: 1}).Apply(newRand(), out, 16000); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("inverted range error = %v, want ErrInvalidRange", err)
	}
}

func TestGainTransition(t *testing.T) {
	t.Parallel()

	g := &GainTransition{MinDB: -12, MaxDB: 0, MinFraction: 0.2, MaxFraction: 0.5, P: 1}
	in := make([]float32, 1000)
	for i := range in {
		in[i] = 0.5
	}

	out, err := g.Apply(newRand(), in, 16000)
	if err != nil {
		t.Fatal(err)
	}

	params := g.Parameters()
	for _, k := range []string{"fade_time_samples", "t0", "start_gain_db", "end_gain_db"} {
		if _, ok := params[k]; !ok {
			t.Errorf("missing parameter %q", k)
		}
	}
	if peak := audiotest.Peak(out); peak > 0.5+1e-6 {
		t.Errorf("peak = %v, gains are all <= 0 dB", peak)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		applyTo NormalizeTarget
		in      []float32
		want    float32
	}{
		{"all quiet", NormalizeAll, []float32{0.25, -0.5}, 1},
		{"all loud", NormalizeAll, []float32{2, -1}, 1},
		{"too loud only, quiet", NormalizeTooLoud, []float32{0.25, -0.5}, 0.5},
		{"too loud only, loud", NormalizeTooLoud, []float32{2, -1}, 1},
		{"silence", NormalizeAll, []float32{0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			n := &Normalize{ApplyTo: tt.applyTo, P: 1}

			out, err := n.Apply(newRand(), tt.in, 16000)
			if err != nil {
				t.Fatal(err)
			}
			if got := dsp.Peak(out); math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("peak = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := (&Normalize{ApplyTo: "loudest", P: 1}).Apply(newRand(), nil, 16000); !errors.Is(err, ErrUnknownApplyTo) {
		t.Errorf("error = %v, want ErrUnknownApplyTo", err)
	}
}

func TestAddColorNoise_SNR(t *testing.T) {
	t.Parallel()

	for _, color := range Colors() {
		t.Run(string(color), func(t *testing.T) {
			t.Parallel()

			clean := audiotest.Sine(16000, 16000, 440, 0.5)
			a := &AddColorNoise{MinSNR: 20, MaxSNR: 20, Colors: []NoiseColor{color}, P: 1}

			out, err := a.Apply(newRand(), slices.Clone(clean), 16000)
			if err != nil {
				t.Fatal(err)
			}

			noise := make([]float32, len(out))
			for i := range out {
				noise[i] = out[i] - clean[i]
			}

			if dsp.RMS(noise) == 0 {
				t.Fatal("no noise was added")
			}

			snr := 20 * math.Log10(dsp.RMS(clean)/dsp.RMS(noise))
			if math.Abs(snr-20) > 0.01 {
				t.Errorf("measured SNR = %.3f dB, want 20", snr)
			}
			if a.Parameters()["color"] != string(color) {
				t.Errorf("color = %v", a.Parameters()["color"])
			}
		})
	}
}

func TestColoredNoise_Unknown(t *testing.T) {
	t.Parallel()

	if _, err := ColoredNoise(newRand(), "grey", 10); !errors.Is(err, ErrUnknownColor) {
		t.Errorf("error = %v, want ErrUnknownColor", err)
	}
	if _, err := ParseColor("pink"); err != nil {
		t.Errorf("ParseColor(pink) error = %v", err)
	}
}

func TestShiftSamples(t *testing.T) {
	t.Parallel()

	in := []float32{1, 2, 3, 4, 5}

	tests := []struct {
		name     string
		places   int
		rollover bool
		want     []float32
	}{
		{"right rollover", 2, true, []float32{4, 5, 1, 2, 3}},
		{"left rollover", -1, true, []float32{2, 3, 4, 5, 1}},
		{"full turn", 5, true, []float32{1, 2, 3, 4, 5}},
		{"right fill", 2, false, []float32{0, 0, 1, 2, 3}},
		{"left fill", -2, false, []float32{3, 4, 5, 0, 0}},
		{"beyond length", 9, false, []float32{0, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ShiftSamples(in, tt.places, tt.rollover); !slices.Equal(got, tt.want) {
				t.Errorf("ShiftSamples() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStretch_Length(t *testing.T) {
	t.Parallel()

	in := audiotest.Sine(16000, 16000, 300, 0.5)

	tests := []struct {
		rate float64
		want int
	}{
		{1, 16000},
		{2, 8000},
		{0.8, 20000},
	}

	for _, tt := range tests {
		if got := Stretch(in, tt.rate); len(got) != tt.want {
			t.Errorf("len(Stretch(rate=%v)) = %d, want %d", tt.rate, len(got), tt.want)
		}
	}
}

func TestTimeStretch_KeepsLength(t *testing.T) {
	t.Parallel()

	ts := &TimeStretch{MinRate: 0.9, MaxRate: 1.1, P: 1}
	in := audiotest.Sine(8000, 16000, 300, 0.5)

	out, err := ts.Apply(newRand(), in, 16000)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(in) {
		t.Errorf("len = %d, want %d", len(out), len(in))
	}
	if rate := ts.Parameters()["rate"].(float64); rate < 0.9 || rate >= 1.1 {
		t.Errorf("rate = %v", rate)
	}
}

func TestTanhDistortion_KeepsRMS(t *testing.T) {
	t.Parallel()

	in := audiotest.Sine(4000, 16000, 200, 0.8)
	want := dsp.RMS(in)

	d := &TanhDistortion{MinDistortion: 0.5, MaxDistortion: 0.5, P: 1}
	out, err := d.Apply(newRand(), slices.Clone(in), 16000)
	if err != nil {
		t.Fatal(err)
	}

	if got := dsp.RMS(out); math.Abs(got-want) > 1e-4 {
		t.Errorf("RMS = %v, want %v", got, want)
	}
	if d.Parameters()["distortion_amount"] != 0.5 {
		t.Errorf("distortion_amount = %v", d.Parameters()["distortion_amount"])
	}
}

func TestModulate(t *testing.T) {
	t.Parallel()

	in := make([]float32, 16000)
	for i := range in {
		in[i] = 0.75
	}

	Modulate(in, 16000, 1)

	if in[0] != 0.75 || in[7999] != 0.75 {
		t.Errorf("first half changed: %v %v", in[0], in[7999])
	}
	if p := dsp.Peak(in); p > 1 {
		t.Errorf("peak = %v, want clipped to 1", p)
	}
}

func TestCustom(t *testing.T) {
	t.Parallel()

	var called int
	c := &Custom{P: 1, Fn: func(x []float32, rate int) ([]float32, error) {
		called++
		if rate != 16000 {
			t.Errorf("rate = %d", rate)
		}
		return append(x, 1), nil
	}}

	out, err := c.Apply(newRand(), []float32{0}, 16000)
	if err != nil {
		t.Fatal(err)
	}
	if called != 1 || len(out) != 2 {
		t.Errorf("called %d times, len %d", called, len(out))
	}

	boom := errors.New("boom")
	c.Fn = func([]float32, int) ([]float32, error) { return nil, boom }
	if _, err := c.Apply(newRand(), nil, 16000); !errors.Is(err, boom) {
		t.Errorf("error = %v, want boom", err)
	}
}

func TestAppliedJSON(t *testing.T) {
	t.Parallel()

	c := NewCompose(1,
		&Gain{MinDB: 0, MaxDB: 0, P: 1},
		NewOneOf(1, &Shift{P: 1}, &Normalize{P: 1}),
	)

	if _, err := c.Apply(newRand(), []float32{0.5, 0.25}, 16000); err != nil {
		t.Fatal(err)
	}

	applied := Applied(c)
	if len(applied) != 2 {
		t.Fatalf("len(Applied) = %d, want 2", len(applied))
	}
	if applied[0].Name != "Gain" || applied[1].Name != "OneOf" {
		t.Errorf("names = %s, %s", applied[0].Name, applied[1].Name)
	}

	children, ok := applied[1].Parameters.([]AppliedTransform)
	if !ok || len(children) != 2 {
		t.Fatalf("OneOf parameters = %#v", applied[1].Parameters)
	}

	var ran int
	for _, ch := range children {
		if ch.Parameters.(Parameters)["should_apply"] == true {
			ran++
		}
	}
	if ran != 1 {
		t.Errorf("%d OneOf children ran, want 1", ran)
	}

	data, err := json.Marshal(applied[0])
	if err != nil {
		t.Fatal(err)
	}
	if want := `["Gain",{"amplitude_ratio":1,"should_apply":true}]`; string(data) != want {
		t.Errorf("JSON = %s, want %s", data, want)
	}

	var back AppliedTransform
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Name != "Gain" {
		t.Errorf("decoded name = %q", back.Name)
	}
}

func TestCompose_SkippedResetsChildren(t *testing.T) {
	t.Parallel()

	g := &Gain{MinDB: -1, MaxDB: -1, P: 1}
	c := NewCompose(1, g)

	if _, err := c.Apply(newRand(), []float32{1}, 16000); err != nil {
		t.Fatal(err)
	}
	if g.Parameters()["should_apply"] != true {
		t.Fatal("gain did not run")
	}

	c.P = 0
	if _, err := c.Apply(newRand(), []float32{1}, 16000); err != nil {
		t.Fatal(err)
	}
	if g.Parameters()["should_apply"] != false {
		t.Error("skipped compose kept stale child parameters")
	}
}

func TestSomeOf(t *testing.T) {
	t.Parallel()

	children := []Transform{&Gain{P: 1}, &Gain{P: 1}, &Gain{P: 1}, &Gain{P: 1}}
	s := NewSomeOf(2, 3, 1, children...)

	for seed := range int64(20) {
		if _, err := s.Apply(rand.New(rand.NewSource(seed)), []float32{1}, 16000); err != nil {
			t.Fatal(err)
		}

		idx := s.Parameters()["transform_indexes"].([]int)
		if len(idx) < 2 || len(idx) > 3 || !slices.IsSorted(idx) {
			t.Errorf("seed %d: indexes = %v", seed, idx)
		}

		var ran int
		for _, c := range children {
			if c.Parameters()["should_apply"] == true {
				ran++
			}
		}
		if ran != len(idx) {
			t.Errorf("seed %d: %d children ran, want %d", seed, ran, len(idx))
		}
	}

	if _, err := NewSomeOf(1, 1, 1).Apply(newRand(), nil, 16000); !errors.Is(err, ErrEmptyContainer) {
		t.Errorf("empty SomeOf error = %v", err)
	}
}

func TestContainers_InvalidProbability(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tr   Transform
	}{
		{"compose above one", NewCompose(1.5, &Gain{P: 1})},
		{"one of negative", NewOneOf(-0.1, &Gain{P: 1})},
		{"some of above one", NewSomeOf(1, 1, 2, &Gain{P: 1})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tt.tr.Apply(rand.New(rand.NewSource(1)), []float32{0.1, 0.2}, SampleRate)
			if !errors.Is(err, ErrInvalidProbability) {
				t.Errorf("Apply() error = %v, want ErrInvalidProbability", err)
			}
		})
	}
}

// risingCrossings estimates the frequency of a tone from its positive
// going zero crossings.
func risingCrossings(x []float32, sampleRate int) float64 {
	n := 0
	for i := 1; i < len(x); i++ {
		if x[i-1] < 0 && x[i] >= 0 {
			n++
		}
	}

	return float64(n) * float64(sampleRate) / float64(len(x))
}

func TestPitchShift_MovesTone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		semitones float64
	}{
		{"one down", -1},
		{"two up", 2},
		{"fourth up", 5},
		{"octave down", -12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := audiotest.Sine(SampleRate, SampleRate, 440, 0.5)
			ps := &PitchShift{MinSemitones: tt.semitones, MaxSemitones: tt.semitones, P: 1}

			out, err := ps.Apply(newRand(), slices.Clone(in), SampleRate)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if len(out) != len(in) {
				t.Fatalf("len = %d, want %d", len(out), len(in))
			}

			want := 440 * math.Pow(2, tt.semitones/12)
			got := risingCrossings(out[SampleRate/4:3*SampleRate/4], SampleRate)
			if math.Abs(got-want)/want > 0.03 {
				t.Errorf("tone at %.1f Hz, want %.1f", got, want)
			}
			if ps.Parameters()["num_semitones"] != tt.semitones {
				t.Errorf("num_semitones = %v, want %v", ps.Parameters()["num_semitones"], tt.semitones)
			}
		})
	}
}

func TestShiftPitch_ZeroIsIdentity(t *testing.T) {
	t.Parallel()

	in := audiotest.Sine(1000, SampleRate, 440, 0.5)

	out, err := ShiftPitch(in, SampleRate, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(out, in) {
		t.Error("ShiftPitch(0) changed the signal")
	}
}

func TestBandFilters(t *testing.T) {
	t.Parallel()

	// center 1000 Hz, bandwidth 1000 Hz: the band is [500, 1500]
	bandPass := func() Transform { return NewBandPassFilter(1000, 1000, 1, 1, 1) }
	bandStop := func() Transform { return NewBandStopFilter(1000, 1000, 1, 1, 1) }

	tests := []struct {
		name     string
		filter   func() Transform
		freq     float64
		min, max float64
	}{
		{"band pass keeps center", bandPass, 1000, 0.8, 1.05},
		{"band pass cuts high", bandPass, 6000, 0, 0.1},
		{"band pass cuts low", bandPass, 60, 0, 0.1},
		{"band stop cuts center", bandStop, 1000, 0, 0.1},
		{"band stop keeps low", bandStop, 100, 0.9, 1.05},
		{"band stop keeps high", bandStop, 6000, 0.9, 1.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := audiotest.Sine(SampleRate, SampleRate, tt.freq, 0.5)
			f := tt.filter()

			out, err := f.Apply(newRand(), slices.Clone(in), SampleRate)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}

			gain := dsp.RMS(out[len(out)/2:]) / dsp.RMS(in[len(in)/2:])
			if gain < tt.min || gain > tt.max {
				t.Errorf("gain at %v Hz = %.3f, want [%v, %v]", tt.freq, gain, tt.min, tt.max)
			}

			params := f.Parameters()
			if params["center_freq"] != 1000.0 || params["bandwidth_fraction"] != 1.0 {
				t.Errorf("parameters = %v", params)
			}
		})
	}
}

func TestShift_RecordsPlaces(t *testing.T) {
	t.Parallel()

	in := audiotest.Ramp(1000, 0.001)

	tests := []struct {
		name     string
		fraction float64
		rollover bool
		places   int
	}{
		{"quarter right", 0.25, true, 250},
		{"tenth left", -0.1, true, -100},
		{"quarter right silent", 0.25, false, 250},
		{"none", 0, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := &Shift{MinFraction: tt.fraction, MaxFraction: tt.fraction, Rollover: tt.rollover, P: 1}

			out, err := s.Apply(newRand(), in, SampleRate)
			if err != nil {
				t.Fatal(err)
			}

			if got := s.Parameters()["num_places_to_shift"]; got != tt.places {
				t.Errorf("num_places_to_shift = %v, want %d", got, tt.places)
			}
			if s.Parameters()["rollover"] != tt.rollover {
				t.Errorf("rollover = %v, want %v", s.Parameters()["rollover"], tt.rollover)
			}
			if !slices.Equal(out, ShiftSamples(in, tt.places, tt.rollover)) {
				t.Error("output does not match ShiftSamples")
			}
		})
	}
}
