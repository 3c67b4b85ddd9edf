// SPDX-License-Identifier: EPL-2.0

package augment

import "errors"

var (
	ErrInvalidRange       = errors.New("minimum is greater than maximum")
	ErrJitterRange        = errors.New("minimum jitter is greater than maximum jitter")
	ErrInvalidProbability = errors.New("probability outside [0, 1]")
	ErrNoFiles            = errors.New("no audio files found")
	ErrUnknownColor       = errors.New("unknown noise color")
	ErrUnknownApplyTo     = errors.New("unknown normalization target")
	ErrEmptyContainer     = errors.New("container has no transforms")
)
