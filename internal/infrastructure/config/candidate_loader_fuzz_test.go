package config

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/text/language"
)

// FuzzCandidateLoading fuzzes candidate parsing for panics on malformed input.
func FuzzCandidateLoading(f *testing.F) {
	seeds := []string{
		"parameters:\n  diameter: 10\n  clearance_cone: true\n",
		strings.Repeat("nested:\n  ", 1000) + "value: 1",
		"parameters:\n  diameter: \xff\xfe",
		"parameters: &anchor\n  name: test\n  ref: *anchor",
		"name: test\x00null",
		"",
	}
	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	loader := NewCandidateLoader(language.Russian)
	f.Fuzz(func(t *testing.T, data []byte) {
		_, _ = loader.LoadCandidateFromReader(bytes.NewReader(data), "fuzz")
	})
}
