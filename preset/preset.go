// SPDX-License-Identifier: EPL-2.0

// Package preset reads augmentation chains from JSON or YAML files.
package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownFormat = errors.New("unknown preset format")
	ErrUnknownType   = errors.New("unknown transform type")
	ErrUnknownPreset = errors.New("unknown preset")
)

// Format of a preset file.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// File is the preset schema. Missing values fall back to the defaults of
// the built-in presets.
type File struct {
	Duration         *float64 `json:"duration_s" yaml:"duration_s"`
	MinJitter        *float64 `json:"min_jitter_s" yaml:"min_jitter_s"`
	MaxJitter        *float64 `json:"max_jitter_s" yaml:"max_jitter_s"`
	TruncateRandomly bool     `json:"truncate_randomly" yaml:"truncate_randomly"`
	// NoDuration keeps clips at their jittered length.
	NoDuration bool     `json:"no_duration" yaml:"no_duration"`
	P          *float64 `json:"p" yaml:"p"`
	Transforms []Step   `json:"transforms" yaml:"transforms"`
}

// Step is one transform. Only the fields of its Type are read.
type Step struct {
	Type string   `json:"type" yaml:"type"`
	P    *float64 `json:"p" yaml:"p"`

	MinGainDB *float64 `json:"min_gain_db,omitempty" yaml:"min_gain_db,omitempty"`
	MaxGainDB *float64 `json:"max_gain_db,omitempty" yaml:"max_gain_db,omitempty"`

	MinFraction *float64 `json:"min_fraction,omitempty" yaml:"min_fraction,omitempty"`
	MaxFraction *float64 `json:"max_fraction,omitempty" yaml:"max_fraction,omitempty"`
	Rollover    *bool    `json:"rollover,omitempty" yaml:"rollover,omitempty"`

	MinSNR     *float64 `json:"min_snr_db,omitempty" yaml:"min_snr_db,omitempty"`
	MaxSNR     *float64 `json:"max_snr_db,omitempty" yaml:"max_snr_db,omitempty"`
	Colors     []string `json:"colors,omitempty" yaml:"colors,omitempty"`
	SoundsPath []string `json:"sounds_path,omitempty" yaml:"sounds_path,omitempty"`
	IRPath     []string `json:"ir_path,omitempty" yaml:"ir_path,omitempty"`

	MinCenter    *float64 `json:"min_center_freq,omitempty" yaml:"min_center_freq,omitempty"`
	MaxCenter    *float64 `json:"max_center_freq,omitempty" yaml:"max_center_freq,omitempty"`
	MinBandwidth *float64 `json:"min_bandwidth_fraction,omitempty" yaml:"min_bandwidth_fraction,omitempty"`
	MaxBandwidth *float64 `json:"max_bandwidth_fraction,omitempty" yaml:"max_bandwidth_fraction,omitempty"`

	MinSemitones *float64 `json:"min_semitones,omitempty" yaml:"min_semitones,omitempty"`
	MaxSemitones *float64 `json:"max_semitones,omitempty" yaml:"max_semitones,omitempty"`
	MinRate      *float64 `json:"min_rate,omitempty" yaml:"min_rate,omitempty"`
	MaxRate      *float64 `json:"max_rate,omitempty" yaml:"max_rate,omitempty"`

	ApplyTo string `json:"apply_to,omitempty" yaml:"apply_to,omitempty"`

	MinDistortion *float64 `json:"min_distortion,omitempty" yaml:"min_distortion,omitempty"`
	MaxDistortion *float64 `json:"max_distortion,omitempty" yaml:"max_distortion,omitempty"`
	MinModFreq    *float64 `json:"min_mod_freq,omitempty" yaml:"min_mod_freq,omitempty"`
	MaxModFreq    *float64 `json:"max_mod_freq,omitempty" yaml:"max_mod_freq,omitempty"`

	MinTransforms int    `json:"min_transforms,omitempty" yaml:"min_transforms,omitempty"`
	MaxTransforms int    `json:"max_transforms,omitempty" yaml:"max_transforms,omitempty"`
	Transforms    []Step `json:"transforms,omitempty" yaml:"transforms,omitempty"`
}

// Parse decodes a preset in the given format.
func Parse(data []byte, format Format) (*File, error) {
	var f File

	switch format {
	case JSON:
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decoding json preset: %w", err)
		}
	case YAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decoding yaml preset: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return &f, nil
}

// Load reads a preset file. Relative sound and impulse response
// directories are resolved against the file's directory.
func Load(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	f, err := Parse(b, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	f.resolve(filepath.Dir(path))

	return f, nil
}

func (f *File) resolve(base string) {
	var walk func(steps []Step)
	walk = func(steps []Step) {
		for i := range steps {
			resolveDirs(base, steps[i].SoundsPath)
			resolveDirs(base, steps[i].IRPath)
			walk(steps[i].Transforms)
		}
	}

	walk(f.Transforms)
}

func resolveDirs(base string, dirs []string) {
	for i, d := range dirs {
		d = strings.TrimSpace(d)
		if !filepath.IsAbs(d) {
			d = filepath.Clean(filepath.Join(base, d))
		}
		dirs[i] = d
	}
}

// SetDirs fills every background noise step without sounds_path with
// sounds, and every impulse response step without ir_path with irs.
func (f *File) SetDirs(sounds, irs []string) {
	var walk func(steps []Step)
	walk = func(steps []Step) {
		for i := range steps {
			s := &steps[i]
			switch s.Type {
			case "AddBackgroundNoise":
				if len(s.SoundsPath) == 0 {
					s.SoundsPath = sounds
				}
			case "ApplyImpulseResponse":
				if len(s.IRPath) == 0 {
					s.IRPath = irs
				}
			}
			walk(s.Transforms)
		}
	}

	walk(f.Transforms)
}
