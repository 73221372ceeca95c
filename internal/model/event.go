package model

import "time"

// Action is the kind of a go test -json event.
type Action string

// Actions emitted by test2json.
const (
	ActionStart       Action = "start"
	ActionRun         Action = "run"
	ActionPause       Action = "pause"
	ActionCont        Action = "cont"
	ActionPass        Action = "pass"
	ActionFail        Action = "fail"
	ActionSkip        Action = "skip"
	ActionBench       Action = "bench"
	ActionOutput      Action = "output"
	ActionBuildOutput Action = "build-output"
	ActionBuildFail   Action = "build-fail"
)

// IsTerminal reports whether the action ends a test or a package.
func (a Action) IsTerminal() bool {
	return a == ActionPass || a == ActionFail || a == ActionSkip
}

// TestEvent is a single record of the go test -json stream.
type TestEvent struct {
	Time        time.Time `json:",omitempty"`
	Action      Action
	Package     string  `json:",omitempty"`
	Test        string  `json:",omitempty"`
	Elapsed     float64 `json:",omitempty"`
	Output      string  `json:",omitempty"`
	ImportPath  string  `json:",omitempty"`
	FailedBuild string  `json:",omitempty"`
}

// IsPackageLevel reports whether the event concerns the package rather than a test.
func (e TestEvent) IsPackageLevel() bool {
	return e.Test == ""
}
