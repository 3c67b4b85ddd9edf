// SPDX-License-Identifier: EPL-2.0

package preset

import (
	"embed"
	"fmt"
	"path"
	"slices"
	"strings"
)

//go:embed builtin/*.yaml
var builtin embed.FS

// Names lists the built-in presets.
func Names() []string {
	entries, _ := builtin.ReadDir("builtin")

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	slices.Sort(out)

	return out
}

// Named returns a built-in preset. Its background noise and impulse
// response steps have no directories; fill them with SetDirs.
func Named(name string) (*File, error) {
	b, err := builtin.ReadFile(path.Join("builtin", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownPreset, name, Names())
	}

	return Parse(b, YAML)
}
