package domain

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	m "covrun.dev/pkg/covrun/internal/model"
)

// junitTestSuites is the top level XML element of a JUnit result.
type junitTestSuites struct {
	XMLName  xml.Name          `xml:"testsuites"`
	Name     string            `xml:"name,attr,omitempty"`
	Tests    int               `xml:"tests,attr"`
	Failures int               `xml:"failures,attr"`
	Errors   int               `xml:"errors,attr"`
	Skipped  int               `xml:"skipped,attr"`
	Time     string            `xml:"time,attr"`
	Suites   []*junitTestSuite `xml:"testsuite"`
}

// junitTestSuite holds the cases of one Go package.
// Errors is always zero: go test only distinguishes pass, fail and skip, so
// every problem is reported as a failure.
type junitTestSuite struct {
	Name       string           `xml:"name,attr"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Skipped    int              `xml:"skipped,attr"`
	Time       string           `xml:"time,attr"`
	Timestamp  string           `xml:"timestamp,attr,omitempty"`
	Properties *junitProperties `xml:"properties,omitempty"`
	TestCases  []*junitTestCase `xml:"testcase"`
	SystemOut  *junitOutput     `xml:"system-out,omitempty"`
}

type junitProperties struct {
	Property []junitProperty `xml:"property"`
}

type junitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type junitTestCase struct {
	Classname string        `xml:"classname,attr"`
	Name      string        `xml:"name,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *junitFailure `xml:"failure,omitempty"`
	Skipped   *junitSkipped `xml:"skipped,omitempty"`
	SystemOut *junitOutput  `xml:"system-out,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr,omitempty"`
	Type    string `xml:"type,attr,omitempty"`
	Details string `xml:",cdata"`
}

type junitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

type junitOutput struct {
	Data string `xml:",cdata"`
}

// MarshalJUnit renders package results as a JUnit XML document with one
// testsuite per package.
func MarshalJUnit(results []m.PackageResult) ([]byte, error) {
	suites := junitTestSuites{Name: "go test"}

	var total time.Duration

	for _, pkg := range results {
		suite := newJUnitSuite(pkg)
		suites.Suites = append(suites.Suites, suite)
		suites.Tests += suite.Tests
		suites.Failures += suite.Failures
		suites.Skipped += suite.Skipped
		total += pkg.Elapsed
	}

	suites.Time = formatSeconds(total)

	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return nil, err
	}

	return append([]byte(xml.Header), append(data, '\n')...), nil
}

func newJUnitSuite(pkg m.PackageResult) *junitTestSuite {
	tests, failures, skipped := pkg.Counts()

	suite := &junitTestSuite{
		Name:     pkg.ImportPath,
		Tests:    tests,
		Failures: failures,
		Skipped:  skipped,
		Time:     formatSeconds(pkg.Elapsed),
	}

	if !pkg.Started.IsZero() {
		suite.Timestamp = pkg.Started.UTC().Format(time.RFC3339)
	}

	if pkg.HasCover {
		suite.Properties = &junitProperties{Property: []junitProperty{
			{Name: "coverage.statements.pct", Value: fmt.Sprintf("%.1f", pkg.Coverage)},
		}}
	}

	if out := sanitizeXML(pkg.Output); out != "" {
		suite.SystemOut = &junitOutput{Data: out}
	}

	for _, tc := range pkg.Cases {
		suite.TestCases = append(suite.TestCases, newJUnitCase(tc))
	}

	return suite
}

func newJUnitCase(tc m.TestCase) *junitTestCase {
	testCase := &junitTestCase{
		Classname: tc.Package,
		Name:      tc.Name,
		Time:      formatSeconds(tc.Duration),
	}

	output := sanitizeXML(tc.Output)

	switch tc.Status {
	case m.StatusFailed:
		testCase.Failure = &junitFailure{
			Message: "Failed",
			Details: output,
		}
	case m.StatusSkipped:
		testCase.Skipped = &junitSkipped{Message: skipMessage(output)}
	case m.StatusPassed:
		if output != "" {
			testCase.SystemOut = &junitOutput{Data: output}
		}
	}

	return testCase
}

// skipMessage picks the reason logged by t.Skip, the last log line printed
// before the "--- SKIP" header.
func skipMessage(output string) string {
	var reason string

	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "--- SKIP"):
			return reason
		case trimmed == "", strings.HasPrefix(trimmed, "=== "), strings.HasPrefix(trimmed, "--- "):
		default:
			reason = trimmed
		}
	}

	return reason
}

// formatSeconds keeps a decimal point so consumers do not read the value as
// nanoseconds.
func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}

// sanitizeXML drops runes that XML 1.0 does not allow, such as the escape
// codes of colored test output.
func sanitizeXML(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t', r == '\n', r == '\r':
			return r
		case r < 0x20, r == 0xFFFE, r == 0xFFFF:
			return -1
		case r >= 0xD800 && r <= 0xDFFF:
			return -1
		}

		return r
	}, s)
}
