// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio using
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces interleaved 16-bit stereo, so every Source from
// this package reports two channels regardless of the file. Mono files come
// out with identical channels; fold them with audio.MonoMixer.
//
// Duration needs a seekable input, otherwise go-mp3 cannot compute the
// stream length and ErrUnknownLength is returned.
package mp3
