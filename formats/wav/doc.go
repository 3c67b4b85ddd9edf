// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE files.
//
// # Decoding
//
// Decoder parses the container with github.com/go-audio/wav, so chunks such
// as LIST or bext may appear before the data chunk. Integer PCM of 8, 16, 24
// and 32 bits is supported; 8-bit data is unsigned as the format requires.
// Samples come out as float32 in [-1, 1):
//
//	src, err := wav.Decoder{}.Decode(f)
//	n, err := src.ReadSamples(buf)
//
// Inputs that cannot seek are buffered in memory first.
//
// # Headers
//
// ReadHeader returns the layout and the data chunk size without touching
// the samples. The clip loader relies on it to estimate durations of large
// WAV folders from file sizes alone.
//
// # Writing
//
// WritePCM16 emits a canonical 44-byte header followed by little-endian
// 16-bit samples, writing the payload in 8192-sample chunks. WriteWAV16 is
// its mono shorthand and WriteFloat converts float buffers on the way.
package wav
