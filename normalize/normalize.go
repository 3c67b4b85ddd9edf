// SPDX-License-Identifier: EPL-2.0

// Package normalize scales audio files to a peak level.
package normalize

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audaug/dsp"
	"github.com/ik5/audaug/formats"
	"github.com/ik5/audaug/formats/wav"
	"github.com/ik5/audaug/utils"
)

// DefaultHeadroom in dB below full scale.
const DefaultHeadroom = 1.0

// Suffix added to the base name of normalized files.
const Suffix = "_norm"

// Extensions handled by Folder and Watch.
var Extensions = []string{".ogg", ".mp3", ".wav", ".aif", ".aiff"}

// IsAudio reports whether path has one of Extensions, ignoring case.
func IsAudio(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}

	return false
}

// Peak is the largest absolute sample.
func Peak(samples []float32) float32 { return dsp.Peak(samples) }

// PeakDB is the peak in dBFS rounded to two decimals, -Inf for silence.
func PeakDB(samples []float32) float64 {
	db := utils.AmplitudeToDB(float64(Peak(samples)))
	if math.IsInf(db, -1) {
		return db
	}

	return math.Round(db*100) / 100
}

// ToPeak scales samples in place so that the peak sits headroomDB below
// full scale. Silence is left alone.
func ToPeak(samples []float32, headroomDB float64) []float32 {
	peak := Peak(samples)
	if peak == 0 {
		return samples
	}

	target := utils.DBToAmplitude(-headroomDB)
	dsp.Scale(samples, float32(target/float64(peak)))

	return samples
}

// Report describes one normalized file.
type Report struct {
	Input, Output    string
	OriginalPeakDB   float64
	NormalizedPeakDB float64
}

// Normalizer holds the settings shared by File, Folder and Watch.
type Normalizer struct {
	HeadroomDB float64
	Logger     *slog.Logger
}

func (n *Normalizer) logger() *slog.Logger {
	if n.Logger != nil {
		return n.Logger
	}

	return slog.Default()
}

// File normalizes in and writes a 16-bit WAV to out, keeping the sample
// rate and channel layout.
func (n *Normalizer) File(in, out string) (Report, error) {
	samples, rate, channels, err := formats.Load(in)
	if err != nil {
		return Report{}, err
	}

	r := Report{Input: in, Output: out, OriginalPeakDB: PeakDB(samples)}
	ToPeak(samples, n.HeadroomDB)
	r.NormalizedPeakDB = PeakDB(samples)

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return r, fmt.Errorf("creating %s: %w", filepath.Dir(out), err)
	}

	f, err := os.Create(out)
	if err != nil {
		return r, fmt.Errorf("creating %s: %w", out, err)
	}

	if err := wav.WriteFloat(f, rate, channels, samples); err != nil {
		f.Close()
		return r, fmt.Errorf("writing %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return r, err
	}

	n.logger().Info("normalized audio peak",
		"path", in, "output", out,
		"original_peak_db", r.OriginalPeakDB, "peak_db", r.NormalizedPeakDB)

	return r, nil
}

// OutputPath maps a file under inRoot to outRoot/<rel>/<name>_norm.wav.
func OutputPath(inRoot, outRoot, path string) (string, error) {
	rel, err := filepath.Rel(inRoot, path)
	if err != nil {
		return "", err
	}

	base := strings.TrimSuffix(rel, filepath.Ext(rel))

	return filepath.Join(outRoot, base+Suffix+".wav"), nil
}

// Folder normalizes every audio file below in into out, mirroring the
// directory layout. A failing file is logged and skipped; the failures
// are returned joined.
func (n *Normalizer) Folder(in, out string) ([]Report, error) {
	n.logger().Info("normalizing folder", "path", in, "output", out, "headroom_db", n.HeadroomDB)

	var (
		reports []Report
		errs    []error
	)

	err := filepath.WalkDir(in, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsAudio(path) {
			return nil
		}

		dst, err := OutputPath(in, out, path)
		if err != nil {
			return err
		}

		r, err := n.File(path, dst)
		if err != nil {
			n.logger().Error("normalizing file", "path", path, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			return nil
		}
		reports = append(reports, r)

		return nil
	})
	if err != nil {
		return reports, fmt.Errorf("walking %s: %w", in, err)
	}

	n.logger().Info("normalized folder", "count", len(reports), "failed", len(errs))

	return reports, errors.Join(errs...)
}

// File normalizes one file with the default logger.
func File(in, out string, headroomDB float64) (Report, error) {
	return (&Normalizer{HeadroomDB: headroomDB}).File(in, out)
}

// Folder normalizes a directory tree with the default logger.
func Folder(in, out string, headroomDB float64) ([]Report, error) {
	return (&Normalizer{HeadroomDB: headroomDB}).Folder(in, out)
}
