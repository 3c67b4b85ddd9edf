// SPDX-License-Identifier: EPL-2.0

package audaug

import (
	"fmt"

	"github.com/ik5/audaug/audio"
	"github.com/ik5/audaug/utils"
)

// ResampleToMono16 resamples src to targetRate, folds it to mono and
// returns the whole stream as 16-bit PCM together with the output rate.
// bufferSize is the read chunk in samples; zero picks the source's size.
func ResampleToMono16(src audio.Source, targetRate, bufferSize int) ([]int16, int, error) {
	samples, err := audio.ReadMono(src, targetRate, bufferSize)
	if err != nil {
		return nil, targetRate, fmt.Errorf("resampling to %d Hz mono: %w", targetRate, err)
	}

	return utils.FloatsToPCM16(nil, samples), targetRate, nil
}
