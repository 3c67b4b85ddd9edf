// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
)

// Find walks dirs and returns every supported audio file below them,
// sorted. Missing directories are an error.
func Find(dirs ...string) ([]string, error) {
	var out []string

	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && IsSupported(path) {
				out = append(out, path)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("searching %s: %w", dir, err)
		}
	}

	slices.Sort(out)

	return out, nil
}
