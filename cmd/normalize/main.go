// SPDX-License-Identifier: EPL-2.0

// Command normalize peak-normalizes an audio file or a folder tree.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ik5/audaug/internal/config"
	"github.com/ik5/audaug/internal/logging"
	"github.com/ik5/audaug/normalize"
)

func main() {
	cfg := config.LoadNormalize()
	cfg.Bind(flag.CommandLine)

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: normalize [flags] <input file|folder> <output file|folder>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	cfg.Input, cfg.Output = flag.Arg(0), flag.Arg(1)

	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "normalize: %v\n", err)
		os.Exit(2)
	}

	info, err := os.Stat(cfg.Input)
	if err != nil {
		logger.Error("reading input", "path", cfg.Input, "error", err)
		os.Exit(1)
	}

	n := &normalize.Normalizer{HeadroomDB: cfg.Headroom, Logger: logger}

	switch {
	case !info.IsDir():
		_, err = n.File(cfg.Input, cfg.Output)
	case cfg.Watch:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		err = n.Watch(ctx, cfg.Input, cfg.Output, normalize.DefaultSettle, nil)
	default:
		_, err = n.Folder(cfg.Input, cfg.Output)
	}

	if err != nil {
		logger.Error("normalization failed", "error", err)
		os.Exit(1)
	}
}
