package model

import "time"

// Status is the outcome of a test case or a package.
type Status string

const (
	// StatusPassed marks a test that ran and passed.
	StatusPassed Status = "passed"
	// StatusFailed marks a test that failed, crashed or did not build.
	StatusFailed Status = "failed"
	// StatusSkipped marks a test that called t.Skip or had no test files.
	StatusSkipped Status = "skipped"
)

// TestCase is the collected outcome of one test or subtest.
type TestCase struct {
	Name     string        `yaml:"name"`
	Package  string        `yaml:"package"`
	Status   Status        `yaml:"status"`
	Duration time.Duration `yaml:"duration"`
	Output   string        `yaml:"-"`
}

// PackageResult is the collected outcome of one package.
type PackageResult struct {
	ImportPath string        `yaml:"import_path"`
	Status     Status        `yaml:"status"`
	Started    time.Time     `yaml:"started"`
	Elapsed    time.Duration `yaml:"elapsed"`
	Coverage   float64       `yaml:"coverage"`
	HasCover   bool          `yaml:"has_coverage"`
	Output     string        `yaml:"-"`
	Cases      []TestCase    `yaml:"cases,omitempty"`
}

// Counts returns the number of cases, failures and skips in the package.
func (p PackageResult) Counts() (tests, failures, skipped int) {
	for _, c := range p.Cases {
		tests++

		switch c.Status {
		case StatusFailed:
			failures++
		case StatusSkipped:
			skipped++
		case StatusPassed:
		}
	}

	return tests, failures, skipped
}

// Totals aggregates counts over every package of a run.
type Totals struct {
	Packages int `yaml:"packages"`
	Tests    int `yaml:"tests"`
	Failures int `yaml:"failures"`
	Skipped  int `yaml:"skipped"`
}

// Summary is the persisted record of a single run.
type Summary struct {
	RunID        string          `yaml:"run_id"`
	Started      time.Time       `yaml:"started"`
	Finished     time.Time       `yaml:"finished"`
	ExitCode     int             `yaml:"exit_code"`
	LineRate     float64         `yaml:"line_rate"`
	LinesCovered int             `yaml:"lines_covered"`
	LinesValid   int             `yaml:"lines_valid"`
	Totals       Totals          `yaml:"totals"`
	Artifacts    []Path          `yaml:"artifacts"`
	Packages     []PackageResult `yaml:"packages"`
}

// ComputeTotals fills Totals from the package results.
func (s *Summary) ComputeTotals() {
	totals := Totals{Packages: len(s.Packages)}

	for _, pkg := range s.Packages {
		tests, failures, skipped := pkg.Counts()
		totals.Tests += tests
		totals.Failures += failures
		totals.Skipped += skipped
	}

	s.Totals = totals
}

// Passed reports whether the underlying test process succeeded.
func (s *Summary) Passed() bool {
	return s.ExitCode == 0
}
