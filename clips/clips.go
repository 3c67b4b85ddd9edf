// SPDX-License-Identifier: EPL-2.0

package clips

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ik5/audaug/formats"
	"github.com/ik5/audaug/formats/wav"
)

// Split names a partition of the loaded clips.
type Split string

const (
	// SplitAll selects every loaded clip.
	SplitAll        Split = ""
	SplitTrain      Split = "train"
	SplitTest       Split = "test"
	SplitValidation Split = "validation"
)

// Clips is a folder of audio clips, optionally filtered by duration and
// split into train/test/validation. Audio is decoded on every retrieval.
type Clips struct {
	paths  []string
	splits map[Split][]string
	proc   *processor
	logger *slog.Logger
}

// New loads the files in dir matching the glob pattern.
func New(dir, pattern string, opts Options) (*Clips, error) {
	logger := opts.logger()

	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("globbing %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoClips, filepath.Join(dir, pattern))
	}
	slices.Sort(paths)

	if opts.filtering() {
		total := len(paths)

		if strings.HasSuffix(pattern, "wav") {
			paths, err = filterWAVBySize(paths, opts)
		} else {
			paths = filterByHeader(paths, opts, logger)
		}
		if err != nil {
			return nil, err
		}

		logger.Info("filtered clips by duration",
			"kept", len(paths), "total", total,
			"min_s", opts.MinDuration, "max_s", opts.MaxDuration)
	}

	proc, err := newProcessor(opts)
	if err != nil {
		return nil, err
	}

	c := &Clips{paths: paths, proc: proc, logger: logger}

	if opts.SplitSeed != nil {
		if c.splits, err = split(paths, *opts.SplitSeed, opts.SplitCount); err != nil {
			return nil, err
		}
	}

	logger.Info("loaded clips", "dir", dir, "pattern", pattern, "count", len(paths))

	return c, nil
}

// filterWAVBySize estimates durations from file sizes. Every file is assumed
// to share the first file's layout and header size.
func filterWAVBySize(paths []string, opts Options) ([]string, error) {
	f, err := os.Open(paths[0])
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", paths[0], err)
	}
	defer f.Close()

	hdr, err := wav.ReadHeader(f)
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", paths[0], err)
	}

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", paths[0], err)
	}

	bytesPerSecond := float64(hdr.SampleRate * hdr.SampleWidth() * hdr.Channels)
	if bytesPerSecond == 0 {
		return nil, fmt.Errorf("%s: %w", paths[0], wav.ErrNotWavFile)
	}
	correction := info.Size() - hdr.Frames()*int64(hdr.SampleWidth()*hdr.Channels)

	kept := make([]string, 0, len(paths))
	for _, p := range paths {
		st, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}

		if opts.keep(float64(st.Size()-correction) / bytesPerSecond) {
			kept = append(kept, p)
		}
	}

	return kept, nil
}

// filterByHeader reads each file's duration from its container. Files whose
// duration cannot be read are skipped.
func filterByHeader(paths []string, opts Options, logger *slog.Logger) []string {
	kept := make([]string, 0, len(paths))

	for _, p := range paths {
		d, err := formats.Duration(p)
		if err != nil {
			logger.Warn("skipping clip without readable duration", "path", p, "error", err)
			continue
		}

		if opts.keep(d.Seconds()) {
			kept = append(kept, p)
		}
	}

	return kept
}

// split shuffles paths with seed and carves out test+validation, half each
// (test takes the odd one). The inner split draws from the same generator.
func split(paths []string, seed int64, count float64) (map[Split][]string, error) {
	if count <= 0 {
		count = 0.1
	}

	n := len(paths)
	var held int
	if size := 2 * count; count < 1 {
		held = int(math.Ceil(size * float64(n)))
	} else {
		held = int(size)
	}
	if held <= 0 || held >= n {
		return nil, fmt.Errorf("%w: %d of %d clips held out", ErrSplitSize, held, n)
	}

	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)
	heldOut, train := perm[:held], perm[held:]

	inner := rng.Perm(held)
	nTest := int(math.Ceil(float64(held) / 2))

	pick := func(idx []int) []string {
		out := make([]string, len(idx))
		for i, j := range idx {
			out[i] = paths[j]
		}
		return out
	}

	test := make([]int, nTest)
	validation := make([]int, held-nTest)
	for i, j := range inner {
		if i < nTest {
			test[i] = heldOut[j]
		} else {
			validation[i-nTest] = heldOut[j]
		}
	}

	return map[Split][]string{
		SplitTrain:      pick(train),
		SplitTest:       pick(test),
		SplitValidation: pick(validation),
	}, nil
}

// Len is the number of clips that passed the filter.
func (c *Clips) Len() int { return len(c.paths) }

// Splits reports whether the clips were split.
func (c *Clips) Splits() bool { return c.splits != nil }

// Paths lists the clips of a split.
func (c *Clips) Paths(s Split) ([]string, error) {
	if s == SplitAll {
		return slices.Clone(c.paths), nil
	}
	if c.splits == nil {
		return nil, ErrNotSplit
	}

	p, ok := c.splits[s]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSplit, s)
	}

	return slices.Clone(p), nil
}

// Load decodes path at 16 kHz mono and applies the configured processing.
func (c *Clips) Load(path string) ([]float32, error) {
	return load(c.proc, path)
}

func load(p *processor, path string) ([]float32, error) {
	samples, err := formats.LoadMono(path, SampleRate)
	if err != nil {
		return nil, err
	}

	return p.process(samples)
}

// Sequential yields every clip of the split in order, repeat times over.
func (c *Clips) Sequential(s Split, repeat int) (Generator, error) {
	paths, err := c.Paths(s)
	if err != nil {
		return nil, err
	}

	return sequential(c.proc, paths, repeat), nil
}

func sequential(p *processor, paths []string, repeat int) Generator {
	rep, idx := 0, 0

	return GeneratorFunc(func() (Sample, error) {
		if idx >= len(paths) {
			rep++
			idx = 0
		}
		if rep >= repeat || len(paths) == 0 {
			return Sample{}, io.EOF
		}

		path := paths[idx]
		idx++

		samples, err := load(p, path)
		if err != nil {
			return Sample{}, err
		}

		return Sample{Samples: samples, Origin: Origin{Path: path, Repetition: rep}}, nil
	})
}

// RandomClip returns one uniformly chosen clip. Repeated calls draw with
// replacement. It fails with ErrNoClips when the duration filter kept
// nothing.
func (c *Clips) RandomClip(rng *rand.Rand) (Sample, error) {
	if len(c.paths) == 0 {
		return Sample{}, ErrNoClips
	}

	path := c.paths[rng.Intn(len(c.paths))]

	samples, err := c.Load(path)
	if err != nil {
		return Sample{}, err
	}

	return Sample{Samples: samples, Origin: Origin{Path: path}}, nil
}

// Random yields min(Len(), maxClips) random clips; maxClips <= 0 means
// Len().
func (c *Clips) Random(rng *rand.Rand, maxClips int) Generator {
	n := len(c.paths)
	if maxClips > 0 {
		n = min(n, maxClips)
	}

	return GeneratorFunc(func() (Sample, error) {
		if n <= 0 {
			return Sample{}, io.EOF
		}
		n--

		return c.RandomClip(rng)
	})
}
