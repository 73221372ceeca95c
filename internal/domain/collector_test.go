package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"covrun.dev/pkg/covrun/internal/domain"
	m "covrun.dev/pkg/covrun/internal/model"
)

const demoPkg = "example.com/demo"

func feed(events ...m.TestEvent) []m.PackageResult {
	collector := domain.NewCollector()
	for _, event := range events {
		collector.Add(event)
	}

	return collector.Results()
}

func TestCollector_PassFailSkip(t *testing.T) {
	started := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	results := feed(
		m.TestEvent{Time: started, Action: m.ActionStart, Package: demoPkg},
		m.TestEvent{Action: m.ActionRun, Package: demoPkg, Test: "TestAdd"},
		m.TestEvent{Action: m.ActionOutput, Package: demoPkg, Test: "TestAdd", Output: "=== RUN   TestAdd\n"},
		m.TestEvent{Action: m.ActionPass, Package: demoPkg, Test: "TestAdd", Elapsed: 0.25},
		m.TestEvent{Action: m.ActionRun, Package: demoPkg, Test: "TestMul"},
		m.TestEvent{Action: m.ActionOutput, Package: demoPkg, Test: "TestMul", Output: "    calc_test.go:9: got 5, want 6\n"},
		m.TestEvent{Action: m.ActionFail, Package: demoPkg, Test: "TestMul", Elapsed: 0.5},
		m.TestEvent{Action: m.ActionRun, Package: demoPkg, Test: "TestSkipped"},
		m.TestEvent{Action: m.ActionSkip, Package: demoPkg, Test: "TestSkipped"},
		m.TestEvent{Action: m.ActionOutput, Package: demoPkg, Output: "FAIL\n"},
		m.TestEvent{Action: m.ActionFail, Package: demoPkg, Elapsed: 1.5},
	)

	require.Len(t, results, 1)
	pkg := results[0]

	assert.Equal(t, demoPkg, pkg.ImportPath)
	assert.Equal(t, m.StatusFailed, pkg.Status)
	assert.Equal(t, started, pkg.Started)
	assert.Equal(t, 1500*time.Millisecond, pkg.Elapsed)
	assert.Equal(t, "FAIL\n", pkg.Output)

	require.Len(t, pkg.Cases, 3)
	assert.Equal(t, m.TestCase{Name: "TestAdd", Package: demoPkg, Status: m.StatusPassed, Duration: 250 * time.Millisecond, Output: "=== RUN   TestAdd\n"}, pkg.Cases[0])
	assert.Equal(t, m.StatusFailed, pkg.Cases[1].Status)
	assert.Contains(t, pkg.Cases[1].Output, "got 5, want 6")
	assert.Equal(t, m.StatusSkipped, pkg.Cases[2].Status)

	tests, failures, skipped := pkg.Counts()
	assert.Equal(t, 3, tests)
	assert.Equal(t, 1, failures)
	assert.Equal(t, 1, skipped)
}

func TestCollector_Subtests(t *testing.T) {
	results := feed(
		m.TestEvent{Action: m.ActionRun, Package: demoPkg, Test: "TestAbs"},
		m.TestEvent{Action: m.ActionRun, Package: demoPkg, Test: "TestAbs/negative"},
		m.TestEvent{Action: m.ActionPass, Package: demoPkg, Test: "TestAbs/negative"},
		m.TestEvent{Action: m.ActionPass, Package: demoPkg, Test: "TestAbs"},
		m.TestEvent{Action: m.ActionPass, Package: demoPkg},
	)

	require.Len(t, results, 1)
	require.Len(t, results[0].Cases, 2)
	assert.Equal(t, "TestAbs", results[0].Cases[0].Name)
	assert.Equal(t, "TestAbs/negative", results[0].Cases[1].Name)
	assert.Equal(t, m.StatusPassed, results[0].Status)
}

func TestCollector_CoverageFromPackageOutput(t *testing.T) {
	results := feed(
		m.TestEvent{Action: m.ActionOutput, Package: demoPkg, Output: "coverage: 66.7% of statements in example.com/...\n"},
		m.TestEvent{Action: m.ActionPass, Package: demoPkg},
	)

	require.Len(t, results, 1)
	assert.True(t, results[0].HasCover)
	assert.InDelta(t, 66.7, results[0].Coverage, 1e-9)
}

func TestCollector_UnfinishedTestIsFailed(t *testing.T) {
	results := feed(
		m.TestEvent{Action: m.ActionRun, Package: demoPkg, Test: "TestHang"},
		m.TestEvent{Action: m.ActionOutput, Package: demoPkg, Test: "TestHang", Output: "panic: test timed out after 1s\n"},
	)

	require.Len(t, results, 1)
	assert.Equal(t, m.StatusFailed, results[0].Status)
	require.Len(t, results[0].Cases, 1)
	assert.Equal(t, m.StatusFailed, results[0].Cases[0].Status)
	assert.Contains(t, results[0].Cases[0].Output, "timed out")
}

func TestCollector_BuildFailureBecomesSyntheticCase(t *testing.T) {
	results := feed(
		m.TestEvent{Action: m.ActionBuildOutput, ImportPath: demoPkg + " [" + demoPkg + ".test]", Output: "# example.com/demo\n"},
		m.TestEvent{Action: m.ActionBuildOutput, ImportPath: demoPkg + " [" + demoPkg + ".test]", Output: "./calc.go:4:9: undefined: undefinedIdentifier\n"},
		m.TestEvent{Action: m.ActionBuildFail, ImportPath: demoPkg + " [" + demoPkg + ".test]"},
		m.TestEvent{Action: m.ActionStart, Package: demoPkg},
		m.TestEvent{Action: m.ActionOutput, Package: demoPkg, Output: "FAIL\texample.com/demo [build failed]\n"},
		m.TestEvent{Action: m.ActionFail, Package: demoPkg, FailedBuild: demoPkg + " [" + demoPkg + ".test]"},
	)

	require.Len(t, results, 1)
	pkg := results[0]

	assert.Equal(t, m.StatusFailed, pkg.Status)
	assert.Contains(t, pkg.Output, "undefined: undefinedIdentifier")
	require.Len(t, pkg.Cases, 1)
	assert.Equal(t, demoPkg, pkg.Cases[0].Name)
	assert.Equal(t, m.StatusFailed, pkg.Cases[0].Status)
	assert.Contains(t, pkg.Cases[0].Output, "[build failed]")
}

func TestCollector_StrayOutputAttachesToLastPackage(t *testing.T) {
	results := feed(
		m.TestEvent{Action: m.ActionOutput, Output: "dropped\n"},
		m.TestEvent{Action: m.ActionStart, Package: demoPkg},
		m.TestEvent{Action: m.ActionOutput, Output: "stray line\n"},
		m.TestEvent{Action: m.ActionPass, Package: demoPkg},
	)

	require.Len(t, results, 1)
	assert.Equal(t, "stray line\n", results[0].Output)
}

func TestCollector_ResultsSortedByImportPath(t *testing.T) {
	results := feed(
		m.TestEvent{Action: m.ActionSkip, Package: "example.com/z"},
		m.TestEvent{Action: m.ActionPass, Package: "example.com/a"},
	)

	require.Len(t, results, 2)
	assert.Equal(t, "example.com/a", results[0].ImportPath)
	assert.Equal(t, "example.com/z", results[1].ImportPath)
	assert.Equal(t, m.StatusSkipped, results[1].Status)
	assert.Empty(t, results[1].Cases)
}
