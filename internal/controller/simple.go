package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "covrun.dev/pkg/covrun/internal/model"
)

// SimpleUI implements UI using cobra Command's output writer. It prints one
// line per finished package and the output of failing tests, like go test
// without -v.
type SimpleUI struct {
	cmd *cobra.Command

	mu      sync.Mutex
	pending map[string]*strings.Builder
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{
		cmd:     cmd,
		pending: make(map[string]*strings.Builder),
	}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	return ctx.Err()
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = make(map[string]*strings.Builder)
}

// DisplayRunInfo prints what is about to run and where reports go.
func (s *SimpleUI) DisplayRunInfo(ctx context.Context, info RunInfo) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n", formatRunInfo(info))
}

// DisplayEvent prints finished packages and the output of failed tests.
func (s *SimpleUI) DisplayEvent(ctx context.Context, event m.TestEvent) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if event.IsPackageLevel() {
		if event.Action.IsTerminal() {
			s.printf("%s %s\t%s\n", statusLabel(actionStatus(event.Action)), event.Package, formatElapsed(event.Elapsed))
		}

		return
	}

	key := event.Package + "\x00" + event.Test

	switch event.Action {
	case m.ActionOutput:
		buf, ok := s.pending[key]
		if !ok {
			buf = &strings.Builder{}
			s.pending[key] = buf
		}

		buf.WriteString(event.Output)
	case m.ActionFail:
		if buf, ok := s.pending[key]; ok {
			s.printf("%s", buf.String())
		}

		delete(s.pending, key)
	case m.ActionPass, m.ActionSkip:
		delete(s.pending, key)
	default:
	}
}

// DisplaySummary prints the per-package table and the run totals.
func (s *SimpleUI) DisplaySummary(ctx context.Context, summary m.Summary) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("\n%s", renderSummaryTable(summary))
	s.printf("%s\n", formatVerdict(summary))
}

// DisplayArtifacts lists the report files.
func (s *SimpleUI) DisplayArtifacts(ctx context.Context, artifacts []m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n", formatArtifacts(artifacts))
}

func (s *SimpleUI) printf(format string, args ...any) {
	fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func formatRunInfo(info RunInfo) string {
	packages := info.Packages
	if len(packages) == 0 {
		packages = []string{"./..."}
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Testing %s", strings.Join(packages, " "))

	if len(info.CoverPkg) > 0 {
		fmt.Fprintf(&b, " (coverage of %s", strings.Join(info.CoverPkg, ","))

		if info.CoverMode != "" {
			fmt.Fprintf(&b, ", mode %s", info.CoverMode)
		}

		b.WriteString(")")
	}

	fmt.Fprintf(&b, "\nReports: %s", info.Layout.Dir())

	return b.String()
}

func renderSummaryTable(summary m.Summary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Package", "Status", "Tests", "Failed", "Skipped", "Coverage", "Time"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	for _, pkg := range summary.Packages {
		tests, failures, skipped := pkg.Counts()

		coverage := "-"
		if pkg.HasCover {
			coverage = fmt.Sprintf("%.1f%%", pkg.Coverage)
		}

		table.Append([]string{
			pkg.ImportPath,
			string(pkg.Status),
			fmt.Sprintf("%d", tests),
			fmt.Sprintf("%d", failures),
			fmt.Sprintf("%d", skipped),
			coverage,
			pkg.Elapsed.Round(time.Millisecond).String(),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Packages %d", summary.Totals.Packages),
		"",
		fmt.Sprintf("%d", summary.Totals.Tests),
		fmt.Sprintf("%d", summary.Totals.Failures),
		fmt.Sprintf("%d", summary.Totals.Skipped),
		fmt.Sprintf("%.1f%%", summary.LineRate*100),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

func formatVerdict(summary m.Summary) string {
	lines := fmt.Sprintf("lines covered %d/%d", summary.LinesCovered, summary.LinesValid)
	if summary.Passed() {
		return fmt.Sprintf("%s all tests passed, %s", passStyle.Render("PASS"), lines)
	}

	return fmt.Sprintf("%s go test exited with code %d, %s", failStyle.Render("FAIL"), summary.ExitCode, lines)
}

func formatArtifacts(artifacts []m.Path) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Artifacts:"))

	for _, artifact := range artifacts {
		fmt.Fprintf(&b, "\n  %s", artifact)
	}

	return b.String()
}

func formatElapsed(seconds float64) string {
	return fmt.Sprintf("%.3fs", seconds)
}
