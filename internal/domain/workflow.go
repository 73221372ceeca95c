// Package domain implements the covrun workflows: running tests with coverage
// and turning the results into report artifacts.
package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/cover"

	"covrun.dev/pkg/covrun/internal/adapter"
	"covrun.dev/pkg/covrun/internal/controller"
	m "covrun.dev/pkg/covrun/internal/model"
	"covrun.dev/pkg/covrun/pkg"
)

// RunArgs contains the arguments of a test run.
type RunArgs struct {
	Layout m.Layout
	// Dir is the directory go test runs in; it must be inside a Go module.
	Dir       m.Path
	Packages  []string
	CoverPkg  []string
	CoverMode m.CoverMode
	Timeout   time.Duration
	Race      bool
	Tags      []string
	// Stderr receives the diagnostics of go test unchanged.
	Stderr io.Writer
}

// CleanArgs contains the arguments for erasing coverage data.
type CleanArgs struct {
	Layout m.Layout
}

// ViewArgs contains the arguments for showing the last run.
type ViewArgs struct {
	Layout m.Layout
}

// Workflow defines the covrun use cases.
type Workflow interface {
	// Run executes the tests and writes every artifact of args.Layout. When
	// go test exits non-zero the artifacts are still written and an
	// *ExitError carrying its code is returned.
	Run(ctx context.Context, args RunArgs) error
	// Clean erases the coverage profile and artifacts of args.Layout.
	Clean(ctx context.Context, args CleanArgs) error
	// View displays the summary stored by the last run.
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ReportStore
	controller.UI
	runner Runner
	module adapter.ModuleAdapter
	cover  adapter.CoverToolAdapter
	now    func() time.Time
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	runner Runner,
	moduleAdapter adapter.ModuleAdapter,
	coverAdapter adapter.CoverToolAdapter,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		UI:              ui,
		runner:          runner,
		module:          moduleAdapter,
		cover:           coverAdapter,
		now:             time.Now,
	}
}

func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	if args.CoverMode != "" && !args.CoverMode.Valid() {
		return fmt.Errorf("invalid cover mode %q", args.CoverMode)
	}

	if err := w.prepareOutput(ctx, args.Layout); err != nil {
		return err
	}

	unlock, err := w.Lock(ctx, args.Layout.LockPath())
	if err != nil {
		slog.Error("Failed to lock output directory", "path", args.Layout.LockPath(), "error", err)
		return fmt.Errorf("lock output: %w", err)
	}

	defer func() {
		if err := unlock(); err != nil {
			slog.Error("Failed to unlock output directory", "error", err)
		}
	}()

	if err := w.erase(ctx, args.Layout); err != nil {
		return err
	}

	if err := w.EnsureDir(ctx, args.Layout.HTMLDir()); err != nil {
		return fmt.Errorf("create html dir: %w", err)
	}

	root, modulePath, err := w.resolveModule(ctx, args.Dir)
	if err != nil {
		return err
	}

	coverPkg := args.CoverPkg
	if len(coverPkg) == 0 {
		coverPkg = []string{modulePath + "/..."}
	}

	if err := w.Start(ctx, controller.WithRunMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	w.DisplayRunInfo(ctx, controller.RunInfo{
		Packages:  args.Packages,
		CoverPkg:  coverPkg,
		CoverMode: args.CoverMode,
		Layout:    args.Layout,
	})

	started := w.now()

	spill, err := pkg.NewFileSpill[m.TestEvent]("")
	if err != nil {
		return fmt.Errorf("create event spill: %w", err)
	}

	defer func() {
		if err := spill.Close(); err != nil {
			slog.Error("Failed to close event spill", "error", err)
		}
	}()

	code, runErr := w.runner.Run(ctx, RunnerArgs{
		Invocation: m.TestInvocation{
			Dir:       args.Dir,
			Packages:  args.Packages,
			CoverPkg:  coverPkg,
			CoverMode: args.CoverMode,
			Profile:   args.Layout.ProfilePath(),
			Timeout:   args.Timeout,
			Race:      args.Race,
			Tags:      args.Tags,
		},
		Stderr: args.Stderr,
	}, func(event m.TestEvent) error {
		w.DisplayEvent(ctx, event)
		return spill.Append(event)
	})
	if runErr != nil {
		slog.Error("go test did not run cleanly", "exitCode", code, "error", runErr)
	}

	summary, reportErr := w.writeReports(ctx, args.Layout, reportInput{
		root:       root,
		modulePath: modulePath,
		spill:      spill,
		started:    started,
		exitCode:   code,
		runErr:     runErr,
	})

	w.DisplaySummary(ctx, summary)
	w.DisplayArtifacts(ctx, args.Layout.Artifacts())

	if code != 0 {
		return &ExitError{Code: code, Err: errors.Join(runErr, reportErr)}
	}

	return errors.Join(runErr, reportErr)
}

func (w *workflow) Clean(ctx context.Context, args CleanArgs) error {
	if err := w.EnsureDir(ctx, args.Layout.Dir()); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	unlock, err := w.Lock(ctx, args.Layout.LockPath())
	if err != nil {
		return fmt.Errorf("lock output: %w", err)
	}

	defer func() {
		if err := unlock(); err != nil {
			slog.Error("Failed to unlock output directory", "error", err)
		}
	}()

	return w.erase(ctx, args.Layout)
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	summary, err := w.LoadSummary(ctx, args.Layout.SummaryPath())
	if err != nil {
		slog.Error("Failed to load summary", "path", args.Layout.SummaryPath(), "error", err)
		return fmt.Errorf("load summary: %w", err)
	}

	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		return err
	}
	defer w.Close(ctx)

	w.DisplaySummary(ctx, summary)
	w.DisplayArtifacts(ctx, summary.Artifacts)

	return nil
}

// prepareOutput creates the language and html directories. Parents are
// created as needed and existing directories are left alone.
func (w *workflow) prepareOutput(ctx context.Context, layout m.Layout) error {
	for _, dir := range []m.Path{layout.Dir(), layout.HTMLDir()} {
		if err := w.EnsureDir(ctx, dir); err != nil {
			slog.Error("Failed to create output directory", "path", dir, "error", err)
			return fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}

	return nil
}

// erase removes coverage data and artifacts of a previous run so nothing
// leaks into the next report.
func (w *workflow) erase(ctx context.Context, layout m.Layout) error {
	files := []m.Path{
		layout.ProfilePath(),
		layout.CoberturaPath(),
		layout.JUnitPath(),
		layout.SummaryPath(),
	}

	for _, file := range files {
		if err := w.Remove(ctx, file); err != nil {
			slog.Error("Failed to erase previous artifact", "path", file, "error", err)
			return fmt.Errorf("erase %s: %w", file, err)
		}
	}

	if err := w.RemoveAll(ctx, layout.HTMLDir()); err != nil {
		slog.Error("Failed to erase previous html report", "path", layout.HTMLDir(), "error", err)
		return fmt.Errorf("erase %s: %w", layout.HTMLDir(), err)
	}

	slog.Debug("erased previous coverage data", "dir", layout.Dir())

	return nil
}

func (w *workflow) resolveModule(ctx context.Context, dir m.Path) (m.Path, string, error) {
	if dir == "" {
		dir = "."
	}

	root, err := w.FindProjectRoot(ctx, dir)
	if err != nil {
		slog.Error("Failed to find module root", "dir", dir, "error", err)
		return "", "", fmt.Errorf("find module root: %w", err)
	}

	modulePath, err := w.module.ModulePath(ctx, root)
	if err != nil {
		slog.Error("Failed to read module path", "root", root, "error", err)
		return "", "", fmt.Errorf("read module path: %w", err)
	}

	return root, modulePath, nil
}

type reportInput struct {
	root       m.Path
	modulePath string
	spill      pkg.FileSpill[m.TestEvent]
	started    time.Time
	exitCode   int
	runErr     error
}

// writeReports builds every artifact from the spilled events and the
// coverage profile. Writers run concurrently and all of them run even when
// one fails.
func (w *workflow) writeReports(ctx context.Context, layout m.Layout, in reportInput) (m.Summary, error) {
	collector := NewCollector()
	if err := in.spill.Range(func(_ uint64, event m.TestEvent) error {
		collector.Add(event)
		return nil
	}); err != nil {
		slog.Error("Failed to replay test events", "error", err)
	}

	results := collector.Results()
	finished := w.now()
	coverage, coverErr := w.buildCoverage(ctx, layout, in, finished)

	var (
		group                           errgroup.Group
		junitErr, coberturaErr, htmlErr error
	)

	group.Go(func() error {
		junitErr = w.writeJUnit(ctx, layout, results)
		return nil
	})

	group.Go(func() error {
		coberturaErr = w.writeCobertura(ctx, layout, coverage)
		return nil
	})

	group.Go(func() error {
		htmlErr = w.writeHTML(ctx, layout, in, coverage, coverErr, finished)
		return nil
	})

	_ = group.Wait()

	summary := m.Summary{
		RunID:        uuid.NewString(),
		Started:      in.started,
		Finished:     finished,
		ExitCode:     in.exitCode,
		LineRate:     coverage.LineRate,
		LinesCovered: coverage.LinesCovered,
		LinesValid:   coverage.LinesValid,
		Artifacts:    layout.Artifacts(),
		Packages:     results,
	}
	summary.ComputeTotals()

	summaryErr := w.SaveSummary(ctx, layout.SummaryPath(), summary)
	if summaryErr != nil {
		slog.Error("Failed to save summary", "path", layout.SummaryPath(), "error", summaryErr)
	}

	return summary, errors.Join(junitErr, coberturaErr, htmlErr, summaryErr)
}

// buildCoverage parses the profile written by go test. The returned report is
// never nil; it is empty when there is no usable profile.
func (w *workflow) buildCoverage(ctx context.Context, layout m.Layout, in reportInput, at time.Time) (*Cobertura, error) {
	opts := CoberturaOptions{
		SourceRoot: in.root,
		ModulePath: in.modulePath,
		Timestamp:  at,
	}

	if _, err := w.FileInfo(ctx, layout.ProfilePath()); err != nil {
		slog.Warn("No coverage profile", "path", layout.ProfilePath(), "error", err)
		return BuildCobertura(nil, opts), fmt.Errorf("no coverage profile at %s", layout.ProfilePath())
	}

	profiles, err := cover.ParseProfiles(string(layout.ProfilePath()))
	if err != nil {
		slog.Error("Failed to parse coverage profile", "path", layout.ProfilePath(), "error", err)
		return BuildCobertura(nil, opts), fmt.Errorf("parse coverage profile: %w", err)
	}

	importPaths := profileImportPaths(profiles)

	dirs, err := w.module.PackageDirs(ctx, in.root, importPaths)
	if err != nil {
		slog.Warn("Failed to resolve package directories, falling back to module-relative names", "error", err)
	}

	opts.PackageDirs = dirs

	return BuildCobertura(profiles, opts), nil
}

func profileImportPaths(profiles []*cover.Profile) []string {
	seen := make(map[string]bool)
	paths := make([]string, 0)

	for _, profile := range profiles {
		importPath := path.Dir(profile.FileName)
		if !seen[importPath] {
			seen[importPath] = true
			paths = append(paths, importPath)
		}
	}

	return paths
}

func (w *workflow) writeJUnit(ctx context.Context, layout m.Layout, results []m.PackageResult) error {
	data, err := MarshalJUnit(results)
	if err != nil {
		return fmt.Errorf("encode junit report: %w", err)
	}

	if err := w.WriteFileAtomic(ctx, layout.JUnitPath(), data); err != nil {
		slog.Error("Failed to write junit report", "path", layout.JUnitPath(), "error", err)
		return fmt.Errorf("write junit report: %w", err)
	}

	return nil
}

func (w *workflow) writeCobertura(ctx context.Context, layout m.Layout, coverage *Cobertura) error {
	data, err := coverage.Marshal()
	if err != nil {
		return fmt.Errorf("encode cobertura report: %w", err)
	}

	if err := w.WriteFileAtomic(ctx, layout.CoberturaPath(), data); err != nil {
		slog.Error("Failed to write cobertura report", "path", layout.CoberturaPath(), "error", err)
		return fmt.Errorf("write cobertura report: %w", err)
	}

	return nil
}

// writeHTML renders the profile with go tool cover. Without a profile a
// placeholder page keeps the report path valid.
func (w *workflow) writeHTML(ctx context.Context, layout m.Layout, in reportInput, coverage *Cobertura, coverErr error, generated time.Time) error {
	if coverErr == nil && len(coverage.Packages.Package) > 0 {
		if err := w.cover.RenderHTML(ctx, in.root, layout.ProfilePath(), layout.HTMLIndexPath()); err != nil {
			slog.Error("Failed to render html report", "error", err)
			return fmt.Errorf("render html report: %w", err)
		}

		return nil
	}

	reason := "go test did not write a coverage profile."
	if coverErr != nil {
		reason = coverErr.Error()
	}

	data, err := RenderPlaceholderHTML(reason, generated)
	if err != nil {
		return fmt.Errorf("render html placeholder: %w", err)
	}

	if err := w.WriteFileAtomic(ctx, layout.HTMLIndexPath(), data); err != nil {
		return fmt.Errorf("write html placeholder: %w", err)
	}

	return nil
}
