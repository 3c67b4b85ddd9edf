// SPDX-License-Identifier: EPL-2.0

// Command augment-clips writes augmented copies of a folder of speech clips
// together with a JSON manifest of the parameters applied to each one.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/ik5/audaug/augment"
	"github.com/ik5/audaug/clips"
	"github.com/ik5/audaug/export"
	"github.com/ik5/audaug/internal/config"
	"github.com/ik5/audaug/internal/logging"
	"github.com/ik5/audaug/preset"
	"github.com/ik5/audaug/vad"
)

func main() {
	cfg := config.LoadAugment()
	cfg.Bind(flag.CommandLine)

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: augment-clips [flags] <clips folder|clip file> <out folder>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	cfg.ClipsDir, cfg.OutDir = flag.Arg(0), flag.Arg(1)

	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "augment-clips: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("augmentation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Augment, logger *slog.Logger) error {
	transform, acfg, err := loadPreset(cfg)
	if err != nil {
		return err
	}

	augmenter, err := augment.NewAugmenter(transform, acfg, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return err
	}

	src, err := source(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("augmenting", "preset", cfg.Preset, "steps", len(augment.Applied(augmenter.Transform())), "out", cfg.OutDir)

	w := &export.Writer{OutDir: cfg.OutDir, Logger: logger}
	sum, err := w.Run(ctx, augmenter.Generator(src))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("interrupted", "count", sum.Written)
		}
		return err
	}

	if cfg.IncludeOriginals && cfg.Segments <= 0 {
		n, err := export.CopyOriginals(cfg.ClipsDir, cfg.OutDir)
		if err != nil {
			return err
		}
		logger.Info("copied originals", "count", n)
	}

	return nil
}

func loadPreset(cfg *config.Augment) (*augment.Compose, augment.Config, error) {
	var (
		f   *preset.File
		err error
	)

	if _, ferr := preset.FormatOf(cfg.Preset); ferr == nil {
		f, err = preset.Load(cfg.Preset)
	} else {
		f, err = preset.Named(cfg.Preset)
	}
	if err != nil {
		return nil, augment.Config{}, err
	}

	f.SetDirs(cfg.BackgroundDirs, cfg.IRDirs)

	return preset.Build(f)
}

func clipOptions(cfg *config.Augment, logger *slog.Logger) (clips.Options, error) {
	opts := clips.Options{
		MinDuration:       cfg.MinDuration,
		MaxDuration:       cfg.MaxDuration,
		RepeatMinDuration: cfg.RepeatMinDuration,
		RemoveSilence:     cfg.RemoveSilence,
		TrimDuration:      cfg.TrimDuration,
		TrimZeros:         cfg.TrimZeros,
		SplitCount:        cfg.SplitCount,
		Logger:            logger,
	}

	if cfg.RemoveSilence {
		d, err := vad.NewWebRTC(cfg.VADMode)
		if err != nil {
			return opts, err
		}
		opts.Detector = d
	}

	if cfg.SplitSeed >= 0 {
		seed := cfg.SplitSeed
		opts.SplitSeed = &seed
	}

	return opts, nil
}

func source(cfg *config.Augment, logger *slog.Logger) (clips.Generator, error) {
	opts, err := clipOptions(cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Segments > 0 {
		c, err := clips.NewClip(cfg.ClipsDir, opts)
		if err != nil {
			return nil, err
		}
		return c.Segments(cfg.Segments)
	}

	c, err := clips.New(cfg.ClipsDir, cfg.Pattern, opts)
	if err != nil {
		return nil, err
	}

	return c.Sequential(clips.Split(cfg.Split), cfg.Repeat)
}
