package model

import "testing"

func TestSummary_ComputeTotals(t *testing.T) {
	summary := Summary{
		Packages: []PackageResult{
			{
				ImportPath: "example.com/a",
				Cases: []TestCase{
					{Name: "TestA", Status: StatusPassed},
					{Name: "TestB", Status: StatusFailed},
					{Name: "TestC", Status: StatusSkipped},
				},
			},
			{
				ImportPath: "example.com/b",
				Cases:      []TestCase{{Name: "TestD", Status: StatusFailed}},
			},
			{ImportPath: "example.com/c"},
		},
	}

	summary.ComputeTotals()

	want := Totals{Packages: 3, Tests: 4, Failures: 2, Skipped: 1}
	if summary.Totals != want {
		t.Errorf("Totals = %+v, want %+v", summary.Totals, want)
	}
}

func TestSummary_Passed(t *testing.T) {
	if !(&Summary{ExitCode: 0}).Passed() {
		t.Error("exit code 0 should pass")
	}

	if (&Summary{ExitCode: 2}).Passed() {
		t.Error("exit code 2 should not pass")
	}
}

func TestCoverMode_Valid(t *testing.T) {
	for _, mode := range []CoverMode{CoverModeSet, CoverModeCount, CoverModeAtomic} {
		if !mode.Valid() {
			t.Errorf("%q should be valid", mode)
		}
	}

	for _, mode := range []CoverMode{"", "ATOMIC", "sometimes"} {
		if mode.Valid() {
			t.Errorf("%q should be invalid", mode)
		}
	}
}

func TestAction_IsTerminal(t *testing.T) {
	terminal := map[Action]bool{
		ActionPass:   true,
		ActionFail:   true,
		ActionSkip:   true,
		ActionRun:    false,
		ActionOutput: false,
		ActionStart:  false,
	}

	for action, want := range terminal {
		if got := action.IsTerminal(); got != want {
			t.Errorf("%q.IsTerminal() = %v, want %v", action, got, want)
		}
	}
}
