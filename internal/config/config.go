// SPDX-License-Identifier: EPL-2.0

// Package config holds command settings. Defaults come from AUDAUG_*
// environment variables and can be overridden by flags.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
)

// Augment configures the augment-clips command.
type Augment struct {
	ClipsDir         string
	OutDir           string
	Pattern          string
	Repeat           int
	IncludeOriginals bool

	// Preset is a built-in name or a path to a JSON or YAML file.
	Preset         string
	BackgroundDirs []string
	IRDirs         []string

	Seed       int64
	SplitSeed  int64
	SplitCount float64
	Split      string

	MinDuration       float64
	MaxDuration       float64
	RepeatMinDuration float64
	TrimDuration      float64
	TrimZeros         bool
	RemoveSilence     bool
	VADMode           int

	// Segments cuts a single input file into windows of this many seconds
	// instead of reading a folder.
	Segments float64

	LogLevel string
}

// LoadAugment reads the AUDAUG_* environment on top of the defaults.
func LoadAugment() *Augment {
	return &Augment{
		Pattern:           getEnv("AUDAUG_PATTERN", "*.wav"),
		Repeat:            getEnvInt("AUDAUG_REPEAT", 1),
		IncludeOriginals:  getEnvBool("AUDAUG_INCLUDE_ORIGINALS", false),
		Preset:            getEnv("AUDAUG_PRESET", "aggressive-no-noise"),
		BackgroundDirs:    getEnvList("AUDAUG_BACKGROUND_DIRS", nil),
		IRDirs:            getEnvList("AUDAUG_IR_DIRS", nil),
		Seed:              getEnvInt64("AUDAUG_SEED", 1),
		SplitSeed:         getEnvInt64("AUDAUG_SPLIT_SEED", 10),
		SplitCount:        getEnvFloat("AUDAUG_SPLIT_COUNT", 0.1),
		Split:             getEnv("AUDAUG_SPLIT", ""),
		MinDuration:       getEnvFloat("AUDAUG_MIN_DURATION", 0),
		MaxDuration:       getEnvFloat("AUDAUG_MAX_DURATION", 0),
		RepeatMinDuration: getEnvFloat("AUDAUG_REPEAT_MIN_DURATION", 0),
		TrimDuration:      getEnvFloat("AUDAUG_TRIM_DURATION", 0),
		TrimZeros:         getEnvBool("AUDAUG_TRIM_ZEROS", false),
		RemoveSilence:     getEnvBool("AUDAUG_REMOVE_SILENCE", false),
		VADMode:           getEnvInt("AUDAUG_VAD_MODE", 0),
		LogLevel:          getEnv("AUDAUG_LOG_LEVEL", "info"),
	}
}

// Bind registers flags for every field, using the current values as
// defaults.
func (c *Augment) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "Glob for clip files inside the clips folder")
	fs.IntVar(&c.Repeat, "repeat", c.Repeat, "Times every clip is augmented")
	fs.BoolVar(&c.IncludeOriginals, "include-originals", c.IncludeOriginals, "Copy the source WAV files to the output folder")
	fs.StringVar(&c.Preset, "preset", c.Preset, "Built-in preset name or preset file (.json, .yaml)")
	fs.Var(&listFlag{dst: &c.BackgroundDirs}, "background", "Background noise folder (repeatable)")
	fs.Var(&listFlag{dst: &c.IRDirs}, "ir", "Impulse response folder (repeatable)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "Random seed for augmentation")
	fs.Int64Var(&c.SplitSeed, "split-seed", c.SplitSeed, "Seed of the train/test/validation split, negative disables it")
	fs.Float64Var(&c.SplitCount, "split-count", c.SplitCount, "Test and validation share: fraction below 1, count otherwise")
	fs.StringVar(&c.Split, "split", c.Split, "Only augment this split (train, test, validation)")
	fs.Float64Var(&c.MinDuration, "min-duration", c.MinDuration, "Skip clips not longer than this (s)")
	fs.Float64Var(&c.MaxDuration, "max-duration", c.MaxDuration, "Skip clips not shorter than this (s), 0 disables")
	fs.Float64Var(&c.RepeatMinDuration, "repeat-min-duration", c.RepeatMinDuration, "Repeat clips shorter than this (s)")
	fs.Float64Var(&c.TrimDuration, "trim-duration", c.TrimDuration, "Cut clips longer than this (s)")
	fs.BoolVar(&c.TrimZeros, "trim-zeros", c.TrimZeros, "Strip leading and trailing zeros")
	fs.BoolVar(&c.RemoveSilence, "remove-silence", c.RemoveSilence, "Drop non-speech frames with the WebRTC VAD")
	fs.IntVar(&c.VADMode, "vad-mode", c.VADMode, "WebRTC VAD aggressiveness 0-3")
	fs.Float64Var(&c.Segments, "segments", c.Segments, "Treat the input as one file cut into windows of this length (s)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
}

// Normalize configures the normalize command.
type Normalize struct {
	Input    string
	Output   string
	Headroom float64
	Watch    bool
	LogLevel string
}

// LoadNormalize reads the AUDAUG_* environment on top of the defaults.
func LoadNormalize() *Normalize {
	return &Normalize{
		Headroom: getEnvFloat("AUDAUG_HEADROOM", 1.0),
		Watch:    getEnvBool("AUDAUG_WATCH", false),
		LogLevel: getEnv("AUDAUG_LOG_LEVEL", "info"),
	}
}

// Bind registers the normalize flags on fs, defaulting to the loaded values.
func (c *Normalize) Bind(fs *flag.FlagSet) {
	fs.Float64Var(&c.Headroom, "headroom", c.Headroom, "Peak target in dB below full scale")
	fs.BoolVar(&c.Watch, "watch", c.Watch, "Keep running and normalize files added to the input folder")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
}

// listFlag collects a repeatable or comma separated flag. The first use
// replaces the environment default.
type listFlag struct {
	dst *[]string
	set bool
}

func (l *listFlag) String() string {
	if l.dst == nil {
		return ""
	}
	return strings.Join(*l.dst, ",")
}

func (l *listFlag) Set(v string) error {
	if !l.set {
		*l.dst = nil
		l.set = true
	}
	*l.dst = append(*l.dst, splitList(v)...)
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true" || v == "1"
	}
	return def
}

func getEnvList(key string, def []string) []string {
	if v := os.Getenv(key); v != "" {
		return splitList(v)
	}
	return def
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			result = append(result, t)
		}
	}
	return result
}
