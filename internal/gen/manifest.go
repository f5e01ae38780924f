package gen

import (
	"fmt"
	"slices"
	"strings"
)

// BuildManifest returns the include manifest for paths: one
// `include "<path>"` line per distinct path, sorted lexicographically, each
// line newline-terminated.
func BuildManifest(paths []string) []byte {
	sorted := slices.Clone(paths)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	var b strings.Builder
	for _, p := range sorted {
		fmt.Fprintf(&b, "include \"%s\"\n", p)
	}

	return []byte(b.String())
}
