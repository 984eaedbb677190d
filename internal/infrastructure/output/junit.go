package output

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/reglet-dev/drillspec/internal/domain/execution"
	"github.com/reglet-dev/drillspec/internal/domain/values"
)

// JUnitFormatter formats run results as JUnit XML: one testsuite per
// parameter set and one testcase per field.
type JUnitFormatter struct {
	writer io.Writer
}

// NewJUnitFormatter creates a new JUnit formatter.
func NewJUnitFormatter(w io.Writer) *JUnitFormatter {
	return &JUnitFormatter{
		writer: w,
	}
}

// JUnitTestSuites JUnit XML structures
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Name       string           `xml:"name,attr"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

type JUnitTestSuite struct {
	XMLName   xml.Name        `xml:"testsuite"`
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	Errors    int             `xml:"errors,attr"`
	Skipped   int             `xml:"skipped,attr"`
	Time      float64         `xml:"time,attr"`
	TestCases []JUnitTestCase `xml:"testcase"`
}

type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr,omitempty"`
	Content string `xml:",chardata"`
}

type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// Format writes the run result as JUnit XML.
func (f *JUnitFormatter) Format(result *execution.RunResult) error {
	suites := JUnitTestSuites{
		Name: "drillspec validation",
		Time: result.Duration.Seconds(),
	}

	for _, set := range result.Sets {
		suite := buildSuite(set)
		suites.Tests += suite.Tests
		suites.Failures += suite.Failures
		suites.TestSuites = append(suites.TestSuites, suite)
	}

	_, err := f.writer.Write([]byte(xml.Header))
	if err != nil {
		return err
	}

	encoder := xml.NewEncoder(f.writer)
	encoder.Indent("", "  ")
	if err := encoder.Encode(suites); err != nil {
		return err
	}

	_, err = f.writer.Write([]byte("\n"))
	return err
}

func buildSuite(set execution.SetResult) JUnitTestSuite {
	suite := JUnitTestSuite{
		Name:  set.Name,
		Tests: len(set.Fields),
		Time:  set.Duration.Seconds(),
	}

	for _, field := range set.Fields {
		c := JUnitTestCase{
			Name:      field.Field.String(),
			ClassName: set.Name,
		}

		switch field.Status {
		case values.StatusFail:
			suite.Failures++
			c.Failure = &JUnitFailure{
				Message: field.Message,
				Type:    field.Kind.String(),
				Content: fieldMessages(set, field.Field),
			}
		case values.StatusSkipped:
			suite.Skipped++
			c.Skipped = &JUnitSkipped{
				Message: fmt.Sprintf("%s is not selected", field.Field.Feature()),
			}
		}

		suite.TestCases = append(suite.TestCases, c)
	}
	return suite
}

// fieldMessages lists every violation of the set that names field.
func fieldMessages(set execution.SetResult, field values.FieldID) string {
	var out strings.Builder
	for _, v := range set.Violations {
		if v.Field == field {
			fmt.Fprintf(&out, "%s\n", v.Message)
		}
	}
	return out.String()
}
