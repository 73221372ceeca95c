package model

import "path/filepath"

// Fixed artifact names inside the language directory.
const (
	CoberturaFileName = "cobertura.xml"
	JUnitFileName     = "test-report.xml"
	HTMLDirName       = "html"
	HTMLIndexName     = "index.html"
	ProfileFileName   = "coverage.out"
	SummaryFileName   = "summary.yaml"
	LockFileName      = ".covrun.lock"
)

// Layout describes where a run writes its artifacts: <Root>/<Lang>/...
type Layout struct {
	Root Path
	Lang string
}

// NewLayout returns the layout for the given output root and language.
func NewLayout(root Path, lang string) Layout {
	return Layout{Root: root, Lang: lang}
}

// Dir is the language directory every artifact lives in.
func (l Layout) Dir() Path {
	return Path(filepath.Join(string(l.Root), l.Lang))
}

// CoberturaPath is the Cobertura XML coverage report.
func (l Layout) CoberturaPath() Path {
	return l.join(CoberturaFileName)
}

// JUnitPath is the JUnit XML test report.
func (l Layout) JUnitPath() Path {
	return l.join(JUnitFileName)
}

// HTMLDir is the HTML coverage report directory.
func (l Layout) HTMLDir() Path {
	return l.join(HTMLDirName)
}

// HTMLIndexPath is the entry page of the HTML coverage report.
func (l Layout) HTMLIndexPath() Path {
	return l.join(HTMLDirName, HTMLIndexName)
}

// ProfilePath is the raw coverage profile written by go test.
func (l Layout) ProfilePath() Path {
	return l.join(ProfileFileName)
}

// SummaryPath is the persisted run summary.
func (l Layout) SummaryPath() Path {
	return l.join(SummaryFileName)
}

// LockPath guards the language directory against concurrent runs.
func (l Layout) LockPath() Path {
	return l.join(LockFileName)
}

// Artifacts lists the report files a run produces, in a stable order.
func (l Layout) Artifacts() []Path {
	return []Path{l.CoberturaPath(), l.JUnitPath(), l.HTMLIndexPath()}
}

func (l Layout) join(elem ...string) Path {
	return Path(filepath.Join(append([]string{string(l.Dir())}, elem...)...))
}
