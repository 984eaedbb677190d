// Package filesystem resolves candidate files on disk and watches them
// for changes.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/reglet-dev/drillspec/internal/application/ports"
)

// CandidateExtensions are the file extensions picked up when a directory
// is given instead of a file or pattern.
var CandidateExtensions = []string{".yaml", ".yml"}

var _ ports.PathResolver = (*PathResolver)(nil)

// PathResolver expands files, directories and doublestar patterns such as
// "sets/**/*.yaml" into a sorted list of candidate files.
type PathResolver struct{}

// NewPathResolver creates a new path resolver.
func NewPathResolver() *PathResolver {
	return &PathResolver{}
}

// Expand resolves every pattern. A plain path must exist; a pattern that
// matches nothing contributes no files. Duplicates are removed.
func (r *PathResolver) Expand(ctx context.Context, patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(paths ...string) {
		for _, p := range paths {
			p = filepath.Clean(p)
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			files = append(files, p)
		}
	}

	for _, pattern := range patterns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if isPattern(pattern) {
			matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
			}
			add(matches...)
			continue
		}

		info, err := os.Stat(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to access %s: %w", pattern, err)
		}
		if !info.IsDir() {
			add(pattern)
			continue
		}

		matches, err := candidatesIn(pattern)
		if err != nil {
			return nil, err
		}
		add(matches...)
	}

	slices.Sort(files)
	return files, nil
}

// candidatesIn lists candidate files below dir, recursively.
func candidatesIn(dir string) ([]string, error) {
	exts := make([]string, 0, len(CandidateExtensions))
	for _, ext := range CandidateExtensions {
		exts = append(exts, strings.TrimPrefix(ext, "."))
	}
	pattern := "**/*.{" + strings.Join(exts, ",") + "}"

	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, filepath.Join(dir, filepath.FromSlash(m)))
	}
	return out, nil
}

func isPattern(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}
