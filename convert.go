// SPDX-License-Identifier: EPL-2.0

package audaug

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audaug/clips"
	"github.com/ik5/audaug/formats"
	"github.com/ik5/audaug/formats/wav"
)

// ConvertToWAV decodes any supported file and writes it as a mono 16-bit
// WAV at rate. Zero rate means 16 kHz.
func ConvertToWAV(in, out string, rate int) error {
	if rate == 0 {
		rate = clips.SampleRate
	}

	samples, err := formats.LoadMono(in, rate)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(out), err)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}

	if err := wav.WriteFloat(f, rate, 1, samples); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", out, err)
	}

	return f.Close()
}

// ConvertFolder converts every supported non-WAV file below in into a
// 16 kHz WAV under out with the same relative path. WAV files are left to
// the clip loader, which resamples on read. It returns the written paths.
func ConvertFolder(in, out string, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		written []string
		errs    []error
	)

	err := filepath.WalkDir(in, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !formats.IsSupported(path) || strings.EqualFold(filepath.Ext(path), ".wav") {
			return nil
		}

		rel, err := filepath.Rel(in, path)
		if err != nil {
			return err
		}
		dst := filepath.Join(out, strings.TrimSuffix(rel, filepath.Ext(rel))+".wav")

		if err := ConvertToWAV(path, dst, clips.SampleRate); err != nil {
			logger.Error("converting clip", "path", path, "error", err)
			errs = append(errs, err)
			return nil
		}

		written = append(written, dst)

		return nil
	})
	if err != nil {
		return written, fmt.Errorf("walking %s: %w", in, err)
	}

	logger.Info("converted clips to wav", "count", len(written), "failed", len(errs))

	return written, errors.Join(errs...)
}
