// SPDX-License-Identifier: EPL-2.0

/*
Package augment randomizes speech clips for training data.

Transforms draw their parameters from a caller supplied *rand.Rand, so a
fixed seed reproduces a run. Each transform has a probability P of running
and remembers what it drew:

	t := augment.NewCompose(1,
		&augment.Gain{MinDB: -6, MaxDB: 0, P: 1},
		&augment.AddColorNoise{MinSNR: 10, MaxSNR: 30, Colors: augment.Colors(), P: 0.5},
	)

	out, err := t.Apply(rng, samples, 16000)
	if err != nil {
		return err
	}

	for _, a := range augment.Applied(t) {
		fmt.Println(a.Name, a.Parameters)
	}

An Augmenter places clips in a fixed-size window with some trailing jitter
before running its transform, and Generator does that for every sample of
a clips.Generator.
*/
package augment
