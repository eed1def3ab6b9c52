package adapters

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqmerge/internal/types"
)

// ManifestFileAdapter writes the consolidated manifest: one dependency
// per line, opaque lines preserved verbatim, everything sorted
// lexicographically and deduplicated.
type ManifestFileAdapter struct{}

func NewManifestFileAdapter() ManifestFileAdapter {
	return ManifestFileAdapter{}
}

func (a ManifestFileAdapter) Write(path string, requirements []types.Requirement, opaque []string) error {
	lines := make([]string, 0, len(requirements)+len(opaque))
	for _, req := range requirements {
		lines = append(lines, req.Name+req.Specifier)
	}
	lines = append(lines, opaque...)
	sort.Strings(lines)
	lines = dedupeSorted(lines)

	content := strings.Join(lines, "\n")
	if content != "" {
		content += "\n"
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create manifest directory").
				WithCause(err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write consolidated manifest").
			WithCause(err)
	}
	return nil
}

func dedupeSorted(lines []string) []string {
	out := lines[:0]
	var last string
	for i, line := range lines {
		if i > 0 && line == last {
			continue
		}
		out = append(out, line)
		last = line
	}
	return out
}
