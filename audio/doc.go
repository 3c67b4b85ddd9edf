// SPDX-License-Identifier: EPL-2.0

// Package audio defines the streaming primitives every decoder and
// processing stage speaks.
//
// A Source yields interleaved float32 samples in [-1, 1] until io.EOF.
// Stages wrap a Source and are themselves Sources, so a pipeline is built by
// nesting:
//
//	src, _ := wav.Decoder{}.Decode(f)
//	mono := audio.NewMonoMixer(audio.NewResampler(src, 16000))
//
// ReadAll drains a pipeline into memory and ReadMono builds the resample
// and mono fold used when loading clips.
//
// # Resampling
//
// Resampler uses Catmull-Rom interpolation over a four-frame window. Output
// frame k maps to source position k*srcRate/dstRate, computed exactly, so
// N input frames always give ceil(N*dstRate/srcRate) output frames. When
// downsampling a one-pole low-pass (alpha 0.5) runs on the input. Equal
// rates pass straight through.
//
// # Registry
//
// Registry maps format keys (file extensions) to Decoders. It is safe for
// concurrent use; see package formats for the default set.
package audio
