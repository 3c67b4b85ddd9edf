// SPDX-License-Identifier: EPL-2.0

// Package audaug builds augmented speech datasets from folders of clips.
//
// The work is split across subpackages:
//   - audio: the streaming Source interface, resampler and mono mixer
//   - formats: decoders for WAV, MP3, Ogg Vorbis and AIFF behind one registry
//   - clips: folder loading, duration filtering and train/test/validation splits
//   - vad: WebRTC voice activity detection and silence trimming
//   - augment: randomized transforms, containers and the clip augmenter
//   - preset: augmentation chains stored as JSON or YAML
//   - export: WAV output with a manifest of applied parameters
//   - normalize: peak normalization of files and folders
//
// # Quick Start
//
// Load a folder, pick a preset and write the results:
//
//	c, err := clips.New("speech", "*.wav", clips.Options{})
//	if err != nil {
//		return err
//	}
//	src, err := c.Sequential(clips.SplitAll, 1)
//	if err != nil {
//		return err
//	}
//
//	a, err := augment.NewAggressiveNoNoiseAugmenter(rand.New(rand.NewSource(1)))
//	if err != nil {
//		return err
//	}
//
//	w := &export.Writer{OutDir: "out"}
//	_, err = w.Run(ctx, a.Generator(src))
//
// # Conversion
//
// Clips are always read as 16 kHz mono. ResampleToMono16 does the same for
// any audio.Source and returns 16-bit PCM, and ConvertToWAV turns a file
// of any supported format into a 16 kHz WAV:
//
//	f, _ := formats.Open("take.mp3")
//	pcm, rate, err := audaug.ResampleToMono16(f, 16000, 4096)
package audaug
