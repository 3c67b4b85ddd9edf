// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams through
// github.com/jfreymuth/oggvorbis. Buffers passed to ReadSamples must hold
// whole frames.
package vorbis
