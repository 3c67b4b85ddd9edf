// SPDX-License-Identifier: EPL-2.0

// Command to-wav16k converts audio files to mono 16-bit WAV, 16 kHz by
// default, the layout the clip loader works with.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ik5/audaug"
	"github.com/ik5/audaug/clips"
	"github.com/ik5/audaug/internal/logging"
)

func main() {
	rate := flag.Int("rate", clips.SampleRate, "Output sample rate")
	level := flag.String("log-level", "info", "debug, info, warn or error")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: to-wav16k [flags] <input.{wav|mp3|ogg|aif|aiff}|folder> <output.wav|folder>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	in, out := flag.Arg(0), flag.Arg(1)

	logger, err := logging.New(*level, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "to-wav16k: %v\n", err)
		os.Exit(2)
	}

	info, err := os.Stat(in)
	if err != nil {
		logger.Error("reading input", "path", in, "error", err)
		os.Exit(1)
	}

	if info.IsDir() {
		if _, err := audaug.ConvertFolder(in, out, logger); err != nil {
			logger.Error("conversion failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := audaug.ConvertToWAV(in, out, *rate); err != nil {
		logger.Error("conversion failed", "path", in, "error", err)
		os.Exit(1)
	}

	logger.Info("wrote", "path", out, "rate", *rate)
}
