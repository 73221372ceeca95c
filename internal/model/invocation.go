package model

import "time"

// CoverMode is the go test -covermode value.
type CoverMode string

// Supported cover modes.
const (
	CoverModeSet    CoverMode = "set"
	CoverModeCount  CoverMode = "count"
	CoverModeAtomic CoverMode = "atomic"
)

// Valid reports whether the mode is one go test accepts.
func (c CoverMode) Valid() bool {
	switch c {
	case CoverModeSet, CoverModeCount, CoverModeAtomic:
		return true
	}

	return false
}

// TestInvocation describes one go test run.
type TestInvocation struct {
	Dir       Path
	Packages  []string
	CoverPkg  []string
	CoverMode CoverMode
	Profile   Path
	Timeout   time.Duration
	Race      bool
	Tags      []string
}
