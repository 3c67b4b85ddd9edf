// SPDX-License-Identifier: EPL-2.0

package clips

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ik5/audaug/formats/wav"
	"github.com/ik5/audaug/internal/audiotest"
)

func writeClip(t *testing.T, path string, samples []float32) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := wav.WriteFloat(f, SampleRate, 1, samples); err != nil {
		t.Fatal(err)
	}
}

// clipDir writes one 16 kHz sine clip per duration (seconds).
func clipDir(t *testing.T, durations ...float64) string {
	t.Helper()

	dir := t.TempDir()
	for i, d := range durations {
		name := filepath.Join(dir, fmt.Sprintf("clip_%02d.wav", i))
		writeClip(t, name, audiotest.Sine(int(d*SampleRate), SampleRate, 440, 0.5))
	}

	return dir
}

func seed(v int64) *int64 { return &v }

func TestNew_NoMatch(t *testing.T) {
	t.Parallel()

	if _, err := New(t.TempDir(), "*.wav", Options{}); !errors.Is(err, ErrNoClips) {
		t.Errorf("New() error = %v, want ErrNoClips", err)
	}
}

func TestNew_DurationFilter(t *testing.T) {
	t.Parallel()

	dir := clipDir(t, 0.5, 1, 2)

	tests := []struct {
		name    string
		pattern string
		opts    Options
		want    []string
	}{
		{"no filter", "*.wav", Options{}, []string{"clip_00.wav", "clip_01.wav", "clip_02.wav"}},
		{"size estimate", "*.wav", Options{MinDuration: 0.6, MaxDuration: 1.5}, []string{"clip_01.wav"}},
		{"header probe", "clip_*", Options{MinDuration: 0.6, MaxDuration: 1.5}, []string{"clip_01.wav"}},
		{"min only", "*.wav", Options{MinDuration: 0.75}, []string{"clip_01.wav", "clip_02.wav"}},
		{"bounds are strict", "*.wav", Options{MinDuration: 0.5, MaxDuration: 2}, []string{"clip_01.wav"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := New(dir, tt.pattern, tt.opts)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			paths, _ := c.Paths(SplitAll)
			got := make([]string, len(paths))
			for i, p := range paths {
				got[i] = filepath.Base(p)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("kept %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNew_Split(t *testing.T) {
	t.Parallel()

	durations := make([]float64, 20)
	for i := range durations {
		durations[i] = 0.1
	}
	dir := clipDir(t, durations...)

	tests := []struct {
		name                   string
		count                  float64
		train, test, validated int
		wantErr                error
	}{
		{"default fraction", 0, 16, 2, 2, nil},
		{"fraction rounds up", 0.12, 15, 3, 2, nil},
		{"absolute count", 3, 14, 3, 3, nil},
		{"nothing left to train", 0.5, 0, 0, 0, ErrSplitSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := New(dir, "*.wav", Options{SplitSeed: seed(10), SplitCount: tt.count})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}

			seen := map[string]Split{}
			for _, s := range []Split{SplitTrain, SplitTest, SplitValidation} {
				paths, err := c.Paths(s)
				if err != nil {
					t.Fatalf("Paths(%q) error = %v", s, err)
				}
				for _, p := range paths {
					if prev, dup := seen[p]; dup {
						t.Errorf("%s in both %q and %q", p, prev, s)
					}
					seen[p] = s
				}
			}
			if len(seen) != 20 {
				t.Errorf("splits cover %d clips, want 20", len(seen))
			}

			for s, want := range map[Split]int{SplitTrain: tt.train, SplitTest: tt.test, SplitValidation: tt.validated} {
				if got, _ := c.Paths(s); len(got) != want {
					t.Errorf("len(%q) = %d, want %d", s, len(got), want)
				}
			}
		})
	}
}

func TestNew_SplitIsReproducible(t *testing.T) {
	t.Parallel()

	dir := clipDir(t, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1)

	a, err := New(dir, "*.wav", Options{SplitSeed: seed(42), SplitCount: 2})
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(dir, "*.wav", Options{SplitSeed: seed(42), SplitCount: 2})
	if err != nil {
		t.Fatal(err)
	}

	for _, s := range []Split{SplitTrain, SplitTest, SplitValidation} {
		pa, _ := a.Paths(s)
		pb, _ := b.Paths(s)
		if !slices.Equal(pa, pb) {
			t.Errorf("split %q differs between loads: %v vs %v", s, pa, pb)
		}
	}
}

func TestClips_SplitErrors(t *testing.T) {
	t.Parallel()

	c, err := New(clipDir(t, 0.1, 0.1), "*.wav", Options{})
	if err != nil {
		t.Fatal(err)
	}

	if c.Splits() {
		t.Error("Splits() = true without a seed")
	}
	if _, err := c.Sequential(SplitTrain, 1); !errors.Is(err, ErrNotSplit) {
		t.Errorf("Sequential(train) error = %v, want ErrNotSplit", err)
	}

	c, err = New(clipDir(t, 0.1, 0.1, 0.1, 0.1), "*.wav", Options{SplitSeed: seed(1), SplitCount: 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Paths("holdout"); !errors.Is(err, ErrUnknownSplit) {
		t.Errorf("Paths(holdout) error = %v, want ErrUnknownSplit", err)
	}
}

func TestClips_Sequential(t *testing.T) {
	t.Parallel()

	c, err := New(clipDir(t, 0.25, 0.5), "*.wav", Options{})
	if err != nil {
		t.Fatal(err)
	}

	gen, err := c.Sequential(SplitAll, 2)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Collect(gen)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	want := []struct {
		name string
		rep  int
		n    int
	}{
		{"clip_00.wav", 0, 4000},
		{"clip_01.wav", 0, 8000},
		{"clip_00.wav", 1, 4000},
		{"clip_01.wav", 1, 8000},
	}
	if len(got) != len(want) {
		t.Fatalf("yielded %d samples, want %d", len(got), len(want))
	}
	for i, w := range want {
		if filepath.Base(got[i].Origin.Path) != w.name || got[i].Origin.Repetition != w.rep {
			t.Errorf("sample %d origin = %+v, want %s rep %d", i, got[i].Origin, w.name, w.rep)
		}
		if len(got[i].Samples) != w.n {
			t.Errorf("sample %d has %d samples, want %d", i, len(got[i].Samples), w.n)
		}
	}

	if _, err := gen.Next(); err != io.EOF {
		t.Errorf("Next() after end = %v, want io.EOF", err)
	}
}

func TestClips_Random(t *testing.T) {
	t.Parallel()

	c, err := New(clipDir(t, 0.1, 0.1, 0.1), "*.wav", Options{})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		maxClips int
		want     int
	}{
		{"capped", 2, 2},
		{"cap above count", 10, 3},
		{"no cap", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Collect(c.Random(rand.New(rand.NewSource(7)), tt.maxClips))
			if err != nil {
				t.Fatalf("Collect() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("yielded %d clips, want %d", len(got), tt.want)
			}
			for _, s := range got {
				if !c.contains(s.Origin.Path) {
					t.Errorf("unknown clip %s", s.Origin.Path)
				}
			}
		})
	}
}

func (c *Clips) contains(path string) bool { return slices.Contains(c.paths, path) }

func TestClip_Segments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "long.wav")
	writeClip(t, path, audiotest.Sine(int(7.5*SampleRate), SampleRate, 220, 0.5))

	c, err := NewClip(path, Options{})
	if err != nil {
		t.Fatalf("NewClip() error = %v", err)
	}

	gen, err := c.Segments(0)
	if err != nil {
		t.Fatalf("Segments() error = %v", err)
	}

	got, err := Collect(gen)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("yielded %d segments, want 2", len(got))
	}

	for i, s := range got {
		want := Range{Start: i * 51200, End: (i + 1) * 51200}
		if s.Origin.Range == nil || *s.Origin.Range != want {
			t.Errorf("segment %d range = %v, want %v", i, s.Origin.Range, want)
		}
		if len(s.Samples) != 51200 {
			t.Errorf("segment %d has %d samples", i, len(s.Samples))
		}
	}

	whole, err := Collect(c.Sequential(3))
	if err != nil {
		t.Fatal(err)
	}
	if len(whole) != 3 || len(whole[0].Samples) != int(7.5*SampleRate) {
		t.Errorf("Sequential(3) yielded %d clips", len(whole))
	}
}

func TestNewClip_Missing(t *testing.T) {
	t.Parallel()

	if _, err := NewClip(filepath.Join(t.TempDir(), "nope.wav"), Options{}); !errors.Is(err, ErrNoClips) {
		t.Errorf("NewClip() error = %v, want ErrNoClips", err)
	}
}

func TestOrigin_MarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		origin Origin
		want   string
	}{
		{"repetition", Origin{Path: "a.wav", Repetition: 2}, `["a.wav",2]`},
		{"range", Origin{Path: "b.wav", Range: &Range{Start: 0, End: 51200}}, `["b.wav",[0,51200]]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := json.Marshal(tt.origin)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClips_FilteredToNothing(t *testing.T) {
	t.Parallel()

	c, err := New(clipDir(t, 0.5), "*.wav", Options{MinDuration: 5})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", c.Len())
	}

	rng := rand.New(rand.NewSource(1))
	if _, err := c.RandomClip(rng); !errors.Is(err, ErrNoClips) {
		t.Errorf("RandomClip() error = %v, want ErrNoClips", err)
	}
	if _, err := c.Random(rng, 0).Next(); err != io.EOF {
		t.Errorf("Random().Next() error = %v, want io.EOF", err)
	}
}

func TestClip_SegmentsShorterThanWindow(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "short.wav")
	writeClip(t, path, audiotest.Sine(SampleRate, SampleRate, 220, 0.5))

	c, err := NewClip(path, Options{})
	if err != nil {
		t.Fatalf("NewClip() error = %v", err)
	}

	if _, err := c.Segments(DefaultSegmentDuration); !errors.Is(err, ErrEmptyClip) {
		t.Errorf("Segments() error = %v, want ErrEmptyClip", err)
	}
}

func TestClips_RemoveSilenceWithWebRTC(t *testing.T) {
	t.Parallel()

	c, err := New(clipDir(t, 1), "*.wav", Options{RemoveSilence: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	gen, err := c.Sequential(SplitAll, 1)
	if err != nil {
		t.Fatal(err)
	}

	s, err := gen.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if len(s.Samples) < 2000 || len(s.Samples) > SampleRate {
		t.Errorf("kept %d samples, want between 2000 and %d", len(s.Samples), SampleRate)
	}
}
