package domain_test

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"covrun.dev/pkg/covrun/internal/domain"
	m "covrun.dev/pkg/covrun/internal/model"
)

type parsedSuites struct {
	Tests    int `xml:"tests,attr"`
	Failures int `xml:"failures,attr"`
	Skipped  int `xml:"skipped,attr"`
	Suites   []struct {
		Name      string `xml:"name,attr"`
		Tests     int    `xml:"tests,attr"`
		Failures  int    `xml:"failures,attr"`
		Errors    int    `xml:"errors,attr"`
		Skipped   int    `xml:"skipped,attr"`
		Time      string `xml:"time,attr"`
		Timestamp string `xml:"timestamp,attr"`
		Property  []struct {
			Name  string `xml:"name,attr"`
			Value string `xml:"value,attr"`
		} `xml:"properties>property"`
		Cases []struct {
			Classname string `xml:"classname,attr"`
			Name      string `xml:"name,attr"`
			Time      string `xml:"time,attr"`
			Failure   *struct {
				Message string `xml:"message,attr"`
				Body    string `xml:",chardata"`
			} `xml:"failure"`
			Skipped *struct {
				Message string `xml:"message,attr"`
			} `xml:"skipped"`
		} `xml:"testcase"`
	} `xml:"testsuite"`
}

func sampleResults() []m.PackageResult {
	return []m.PackageResult{
		{
			ImportPath: "example.com/demo",
			Status:     m.StatusFailed,
			Started:    time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
			Elapsed:    1500 * time.Millisecond,
			Coverage:   50,
			HasCover:   true,
			Output:     "FAIL\n",
			Cases: []m.TestCase{
				{Name: "TestAdd", Package: "example.com/demo", Status: m.StatusPassed, Duration: 10 * time.Millisecond},
				{Name: "TestMul", Package: "example.com/demo", Status: m.StatusFailed, Output: "    calc_test.go:9: got <5>, want 6 & more\n--- FAIL: TestMul (0.00s)\n"},
				{Name: "TestSkipped", Package: "example.com/demo", Status: m.StatusSkipped, Output: "=== RUN   TestSkipped\n    calc_test.go:20: not relevant here\n--- SKIP: TestSkipped (0.00s)\n"},
			},
		},
		{
			ImportPath: "example.com/demo/util",
			Status:     m.StatusPassed,
			Elapsed:    250 * time.Millisecond,
			Cases: []m.TestCase{
				{Name: "TestUtil", Package: "example.com/demo/util", Status: m.StatusPassed},
			},
		},
	}
}

func TestMarshalJUnit_Counts(t *testing.T) {
	data, err := domain.MarshalJUnit(sampleResults())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), xml.Header))

	var parsed parsedSuites
	require.NoError(t, xml.Unmarshal(data, &parsed))

	assert.Equal(t, 4, parsed.Tests)
	assert.Equal(t, 1, parsed.Failures)
	assert.Equal(t, 1, parsed.Skipped)

	require.Len(t, parsed.Suites, 2)

	demo := parsed.Suites[0]
	assert.Equal(t, "example.com/demo", demo.Name)
	assert.Equal(t, 3, demo.Tests)
	assert.Equal(t, 1, demo.Failures)
	assert.Equal(t, 0, demo.Errors)
	assert.Equal(t, 1, demo.Skipped)
	assert.Equal(t, "1.500", demo.Time)
	assert.Equal(t, "2024-05-01T10:00:00Z", demo.Timestamp)
	require.Len(t, demo.Property, 1)
	assert.Equal(t, "coverage.statements.pct", demo.Property[0].Name)
	assert.Equal(t, "50.0", demo.Property[0].Value)

	util := parsed.Suites[1]
	assert.Empty(t, util.Timestamp)
	assert.Empty(t, util.Property)
}

func TestMarshalJUnit_FailureOutputPreserved(t *testing.T) {
	data, err := domain.MarshalJUnit(sampleResults())
	require.NoError(t, err)

	assert.Contains(t, string(data), "<![CDATA[")

	var parsed parsedSuites
	require.NoError(t, xml.Unmarshal(data, &parsed))

	cases := parsed.Suites[0].Cases
	require.Len(t, cases, 3)

	assert.Equal(t, "example.com/demo", cases[0].Classname)
	assert.Equal(t, "TestAdd", cases[0].Name)
	assert.Equal(t, "0.010", cases[0].Time)
	assert.Nil(t, cases[0].Failure)

	require.NotNil(t, cases[1].Failure)
	assert.Equal(t, "Failed", cases[1].Failure.Message)
	assert.Contains(t, cases[1].Failure.Body, "got <5>, want 6 & more")

	require.NotNil(t, cases[2].Skipped)
	assert.Equal(t, "calc_test.go:20: not relevant here", cases[2].Skipped.Message)
}

func TestMarshalJUnit_StripsInvalidXMLRunes(t *testing.T) {
	results := []m.PackageResult{{
		ImportPath: "example.com/demo",
		Status:     m.StatusFailed,
		Cases: []m.TestCase{
			{Name: "TestColor", Package: "example.com/demo", Status: m.StatusFailed, Output: "\x1b[31mred\x1b[0m\n"},
		},
	}}

	data, err := domain.MarshalJUnit(results)
	require.NoError(t, err)

	var parsed parsedSuites
	require.NoError(t, xml.Unmarshal(data, &parsed))
	assert.Equal(t, "[31mred[0m\n", parsed.Suites[0].Cases[0].Failure.Body)
}

func TestMarshalJUnit_Empty(t *testing.T) {
	data, err := domain.MarshalJUnit(nil)
	require.NoError(t, err)

	var parsed parsedSuites
	require.NoError(t, xml.Unmarshal(data, &parsed))
	assert.Zero(t, parsed.Tests)
	assert.Empty(t, parsed.Suites)
}
