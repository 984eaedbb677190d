package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte("parameters: {}\n"), 0o600))
	}
}

func TestPathResolver_Expand(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFiles(t, root,
		"a.yaml",
		"b.yml",
		"notes.txt",
		"sets/c.yaml",
		"sets/deep/d.yaml",
	)

	tests := []struct {
		name     string
		patterns []string
		expected []string
	}{
		{
			name:     "single file",
			patterns: []string{filepath.Join(root, "a.yaml")},
			expected: []string{"a.yaml"},
		},
		{
			name:     "directory recurses",
			patterns: []string{filepath.Join(root, "sets")},
			expected: []string{"sets/c.yaml", "sets/deep/d.yaml"},
		},
		{
			name:     "doublestar pattern",
			patterns: []string{filepath.Join(root, "**", "*.yaml")},
			expected: []string{"a.yaml", "sets/c.yaml", "sets/deep/d.yaml"},
		},
		{
			name:     "alternatives",
			patterns: []string{filepath.Join(root, "*.{yaml,yml}")},
			expected: []string{"a.yaml", "b.yml"},
		},
		{
			name: "duplicates removed",
			patterns: []string{
				filepath.Join(root, "a.yaml"),
				filepath.Join(root, "*.yaml"),
			},
			expected: []string{"a.yaml"},
		},
		{
			name:     "pattern without matches",
			patterns: []string{filepath.Join(root, "*.json")},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			files, err := NewPathResolver().Expand(context.Background(), tt.patterns)
			require.NoError(t, err)

			var rel []string
			for _, f := range files {
				r, err := filepath.Rel(root, f)
				require.NoError(t, err)
				rel = append(rel, filepath.ToSlash(r))
			}
			assert.Equal(t, tt.expected, rel)
		})
	}
}

func TestPathResolver_Expand_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := NewPathResolver().Expand(context.Background(), []string{filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to access")
}

func TestPathResolver_Expand_Cancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewPathResolver().Expand(ctx, []string{"a.yaml"})
	require.ErrorIs(t, err, context.Canceled)
}
