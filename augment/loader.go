// SPDX-License-Identifier: EPL-2.0

package augment

import (
	"fmt"
	"sync"

	"github.com/ik5/audaug/formats"
)

// fileSet is a fixed list of audio files with a small cache of decoded
// buffers, enough to avoid re-decoding when the same file is drawn twice
// in a row.
type fileSet struct {
	paths []string

	mu    sync.Mutex
	cache map[cacheKey][]float32
	order []cacheKey
}

type cacheKey struct {
	path string
	rate int
}

const fileCacheSize = 2

func newFileSet(dirs []string) (*fileSet, error) {
	if len(dirs) == 0 {
		return &fileSet{}, nil
	}

	paths, err := formats.Find(dirs...)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %v", ErrNoFiles, dirs)
	}

	return &fileSet{paths: paths, cache: make(map[cacheKey][]float32, fileCacheSize)}, nil
}

func (f *fileSet) empty() bool { return f == nil || len(f.paths) == 0 }

// load returns the mono samples of path at rate. Callers must not modify
// the result.
func (f *fileSet) load(path string, rate int) ([]float32, error) {
	key := cacheKey{path, rate}

	f.mu.Lock()
	if s, ok := f.cache[key]; ok {
		f.mu.Unlock()
		return s, nil
	}
	f.mu.Unlock()

	s, err := formats.LoadMono(path, rate)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.cache[key]; !ok {
		if len(f.order) == fileCacheSize {
			delete(f.cache, f.order[0])
			f.order = f.order[1:]
		}
		f.cache[key] = s
		f.order = append(f.order, key)
	}

	return s, nil
}
