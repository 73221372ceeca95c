package domain

import (
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	m "covrun.dev/pkg/covrun/internal/model"
)

var coverageLine = regexp.MustCompile(`coverage: (\d+(?:\.\d+)?)% of statements`)

// Collector folds go test -json events into per-package results. Events must
// be added in stream order.
type Collector struct {
	packages    map[string]*packageState
	builds      map[string]*strings.Builder
	lastPackage string
}

type packageState struct {
	result    m.PackageResult
	output    strings.Builder
	tests     map[string]*testState
	testOrder []string
	done      bool
}

type testState struct {
	tc     m.TestCase
	output strings.Builder
	done   bool
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{
		packages: make(map[string]*packageState),
		builds:   make(map[string]*strings.Builder),
	}
}

// Add records a single event.
func (c *Collector) Add(event m.TestEvent) {
	switch event.Action {
	case m.ActionBuildOutput:
		c.build(event.ImportPath).WriteString(event.Output)
		return
	case m.ActionBuildFail:
		return
	default:
	}

	name := event.Package
	if name == "" {
		name = c.lastPackage
	}

	if name == "" {
		slog.Debug("dropping output outside of any package", "output", event.Output)
		return
	}

	c.lastPackage = name
	pkg := c.pkg(name, event.Time)

	if event.IsPackageLevel() {
		c.addPackageEvent(pkg, event)
		return
	}

	c.addTestEvent(pkg, event)
}

func (c *Collector) addPackageEvent(pkg *packageState, event m.TestEvent) {
	switch event.Action {
	case m.ActionStart:
		if !event.Time.IsZero() {
			pkg.result.Started = event.Time
		}
	case m.ActionOutput:
		pkg.output.WriteString(event.Output)

		if match := coverageLine.FindStringSubmatch(event.Output); match != nil {
			if pct, err := strconv.ParseFloat(match[1], 64); err == nil {
				pkg.result.Coverage = pct
				pkg.result.HasCover = true
			}
		}
	case m.ActionPass, m.ActionFail, m.ActionSkip:
		pkg.result.Status = statusOf(event.Action)
		pkg.result.Elapsed = seconds(event.Elapsed)
		pkg.done = true

		if event.FailedBuild != "" {
			if build, ok := c.builds[event.FailedBuild]; ok {
				pkg.output.WriteString(build.String())
			}
		}
	default:
	}
}

func (c *Collector) addTestEvent(pkg *packageState, event m.TestEvent) {
	test := pkg.test(event.Test)

	switch event.Action {
	case m.ActionOutput:
		test.output.WriteString(event.Output)
	case m.ActionPass, m.ActionFail, m.ActionSkip:
		test.tc.Status = statusOf(event.Action)
		test.tc.Duration = seconds(event.Elapsed)
		test.done = true
	default:
	}
}

// Results returns the collected package results sorted by import path. Tests
// and packages that never reported a terminal action are marked failed, and a
// failed package without a failed test gets a synthetic case so the failure
// shows up in test reports.
func (c *Collector) Results() []m.PackageResult {
	names := make([]string, 0, len(c.packages))
	for name := range c.packages {
		names = append(names, name)
	}

	sort.Strings(names)

	results := make([]m.PackageResult, 0, len(names))
	for _, name := range names {
		results = append(results, c.packages[name].finish())
	}

	return results
}

func (p *packageState) finish() m.PackageResult {
	result := p.result
	result.Output = p.output.String()
	result.Cases = make([]m.TestCase, 0, len(p.testOrder))

	if !p.done {
		result.Status = m.StatusFailed
	}

	failedCase := false

	for _, name := range p.testOrder {
		test := p.tests[name]
		tc := test.tc
		tc.Output = test.output.String()

		if !test.done {
			tc.Status = m.StatusFailed
		}

		if tc.Status == m.StatusFailed {
			failedCase = true
		}

		result.Cases = append(result.Cases, tc)
	}

	if result.Status == m.StatusFailed && !failedCase {
		result.Cases = append(result.Cases, m.TestCase{
			Name:     result.ImportPath,
			Package:  result.ImportPath,
			Status:   m.StatusFailed,
			Duration: result.Elapsed,
			Output:   result.Output,
		})
	}

	return result
}

func (c *Collector) pkg(name string, at time.Time) *packageState {
	pkg, ok := c.packages[name]
	if !ok {
		pkg = &packageState{
			result: m.PackageResult{ImportPath: name, Started: at},
			tests:  make(map[string]*testState),
		}
		c.packages[name] = pkg
	}

	return pkg
}

func (c *Collector) build(importPath string) *strings.Builder {
	build, ok := c.builds[importPath]
	if !ok {
		build = &strings.Builder{}
		c.builds[importPath] = build
	}

	return build
}

func (p *packageState) test(name string) *testState {
	test, ok := p.tests[name]
	if !ok {
		test = &testState{tc: m.TestCase{Name: name, Package: p.result.ImportPath}}
		p.tests[name] = test
		p.testOrder = append(p.testOrder, name)
	}

	return test
}

func statusOf(action m.Action) m.Status {
	switch action {
	case m.ActionPass:
		return m.StatusPassed
	case m.ActionSkip:
		return m.StatusSkipped
	default:
		return m.StatusFailed
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
