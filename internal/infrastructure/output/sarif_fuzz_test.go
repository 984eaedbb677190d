package output

import (
	"bytes"
	"testing"

	"github.com/reglet-dev/drillspec/internal/domain/entities"
	"github.com/reglet-dev/drillspec/internal/domain/execution"
)

// FuzzSARIFGeneration fuzzes SARIF output generation with arbitrary input text.
func FuzzSARIFGeneration(f *testing.F) {
	seeds := []string{
		"10",
		"",
		"1,5e3",
		"\xff\xfe",
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, text string) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("PANIC on input %q: %v", text, r)
			}
		}()

		res := execution.NewRunResult("dev", execution.ModeCommit, "ru")
		res.AddSetResult(evaluate(0, entities.CandidateSet{
			Name:       text,
			Source:     "fuzz.yaml",
			Parameters: entities.RawParameters{Diameter: text, WorkingLength: text},
		}))
		res.Finalize()

		buf := &bytes.Buffer{}
		_ = NewSARIFFormatter(buf).Format(res)
	})
}
