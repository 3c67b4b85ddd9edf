// SPDX-License-Identifier: EPL-2.0

package clips

import "errors"

var (
	ErrNoClips      = errors.New("no clips matched")
	ErrNotSplit     = errors.New("clips were loaded without a split seed")
	ErrUnknownSplit = errors.New("unknown split")
	ErrSplitSize    = errors.New("split count leaves an empty partition")
	ErrEmptyClip    = errors.New("clip is shorter than one segment")
)
