// SPDX-License-Identifier: EPL-2.0

// Package export writes augmented clips and their parameter manifest.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audaug/augment"
	"github.com/ik5/audaug/clips"
	"github.com/ik5/audaug/formats/wav"
)

// ManifestName is the file listing the parameters of every written clip.
const ManifestName = "applied_parameters_per_clip.json"

// Source yields augmented clips until io.EOF.
type Source interface {
	Next() (augment.Augmented, error)
}

// Entry is one manifest record.
type Entry struct {
	Path       string                     `json:"path"`
	SourcePath clips.Origin               `json:"source_path"`
	Parameters []augment.AppliedTransform `json:"parameters"`
}

// Summary reports what Run wrote.
type Summary struct {
	Written  int
	Manifest string
}

// Writer stores augmented clips as augmented_<n>.wav in OutDir.
type Writer struct {
	OutDir string
	// SampleRate of the written files. Zero means 16 kHz.
	SampleRate int
	// ProgressEvery logs progress after that many clips. Zero means 100.
	ProgressEvery int
	Logger        *slog.Logger
}

func (w *Writer) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}

	return slog.Default()
}

// Run drains src, writing one WAV per clip, and then the manifest. On
// cancellation the manifest covers the clips written so far.
func (w *Writer) Run(ctx context.Context, src Source) (Summary, error) {
	rate := w.SampleRate
	if rate == 0 {
		rate = clips.SampleRate
	}
	every := w.ProgressEvery
	if every <= 0 {
		every = 100
	}

	if err := os.MkdirAll(w.OutDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("creating %s: %w", w.OutDir, err)
	}

	entries := []Entry{}
	var runErr error

	for {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		a, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			runErr = err
			break
		}

		path := filepath.Join(w.OutDir, fmt.Sprintf("augmented_%d.wav", len(entries)))
		if err := writeWAV(path, rate, a.Samples); err != nil {
			runErr = err
			break
		}

		entries = append(entries, Entry{Path: path, SourcePath: a.Origin, Parameters: a.Applied})

		if len(entries)%every == 0 {
			w.logger().Info("augmenting clips", "count", len(entries))
		}
	}

	sum := Summary{Written: len(entries), Manifest: filepath.Join(w.OutDir, ManifestName)}

	if err := writeManifest(sum.Manifest, entries); err != nil {
		return sum, errors.Join(runErr, err)
	}

	w.logger().Info("wrote augmented clips", "count", sum.Written, "manifest", sum.Manifest)

	return sum, runErr
}

func writeWAV(path string, rate int, samples []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := wav.WriteFloat(f, rate, 1, samples); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return f.Close()
}

func writeManifest(path string, entries []Entry) error {
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}

	return nil
}

// ReadManifest loads a manifest written by Run.
func ReadManifest(path string) ([]ManifestEntry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var out []ManifestEntry
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return out, nil
}

// ManifestEntry is the decoded form of Entry. SourcePath keeps the raw
// [path, repetition] or [path, [start, end]] pair.
type ManifestEntry struct {
	Path       string                     `json:"path"`
	SourcePath []any                      `json:"source_path"`
	Parameters []augment.AppliedTransform `json:"parameters"`
}

// CopyOriginals copies the .wav files directly inside srcDir to outDir and
// returns how many were copied.
func CopyOriginals(srcDir, outDir string) (int, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return 0, fmt.Errorf("listing %s: %w", srcDir, err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating %s: %w", outDir, err)
	}

	n := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".wav") {
			continue
		}

		if err := copyFile(filepath.Join(srcDir, e.Name()), filepath.Join(outDir, e.Name())); err != nil {
			return n, err
		}
		n++
	}

	return n, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s: %w", src, err)
	}

	return out.Close()
}
