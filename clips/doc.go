// SPDX-License-Identifier: EPL-2.0

/*
Package clips loads folders of audio clips for augmentation.

A Clips value holds the paths that matched a glob, optionally filtered by
duration and split into train, test and validation sets with a seeded
shuffle. Audio is only decoded when a clip is retrieved: every retrieval
converts the file to 16 kHz mono and runs the configured processing
(silence removal, zero trimming, truncation, repetition).

Retrieval is pull based:

	c, err := clips.New("speech", "*.wav", clips.Options{MaxDuration: 5})
	if err != nil {
		return err
	}

	gen, err := c.Sequential(clips.SplitAll, 2)
	if err != nil {
		return err
	}

	for {
		s, err := gen.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		// s.Samples, s.Origin
	}

Clip serves a single file, either whole or cut into fixed-length segments.
*/
package clips
