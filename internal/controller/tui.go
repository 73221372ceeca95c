package controller

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	m "covrun.dev/pkg/covrun/internal/model"
)

// recentPackages is how many finished packages the live view keeps on screen.
const recentPackages = 8

// TUI implements UI with a Bubble Tea live view while tests run. The final
// summary is printed like SimpleUI once the live view has stopped.
type TUI struct {
	cmd    *cobra.Command
	simple *SimpleUI

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{
		cmd:    cmd,
		simple: NewSimpleUI(cmd),
	}
}

// Start launches the live view in run mode. View mode prints only.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if newStartConfig(options...).mode != ModeRun {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.program != nil {
		return nil
	}

	t.program = tea.NewProgram(newRunModel(),
		tea.WithOutput(t.cmd.OutOrStdout()),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	t.done = make(chan struct{})

	go func(program *tea.Program, done chan struct{}) {
		defer close(done)

		_, _ = program.Run()
	}(t.program, t.done)

	return nil
}

// Close stops the live view if it is still running.
func (t *TUI) Close(_ context.Context) {
	t.stop()
	t.simple.Close(context.Background())
}

// DisplayRunInfo shows what is about to run.
func (t *TUI) DisplayRunInfo(ctx context.Context, info RunInfo) {
	if !t.send(runInfoMsg{info: info}) {
		t.simple.DisplayRunInfo(ctx, info)
	}
}

// DisplayEvent feeds a test event to the live view.
func (t *TUI) DisplayEvent(ctx context.Context, event m.TestEvent) {
	if err := ctx.Err(); err != nil {
		return
	}

	if !t.send(eventMsg{event: event}) {
		t.simple.DisplayEvent(ctx, event)
	}
}

// DisplaySummary stops the live view and prints the summary table.
func (t *TUI) DisplaySummary(ctx context.Context, summary m.Summary) {
	t.stop()
	t.simple.DisplaySummary(ctx, summary)
}

// DisplayArtifacts prints the report files.
func (t *TUI) DisplayArtifacts(ctx context.Context, artifacts []m.Path) {
	t.stop()
	t.simple.DisplayArtifacts(ctx, artifacts)
}

func (t *TUI) send(msg tea.Msg) bool {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program == nil {
		return false
	}

	program.Send(msg)

	return true
}

func (t *TUI) stop() {
	t.mu.Lock()
	program, done := t.program, t.done
	t.program, t.done = nil, nil
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Send(finishMsg{})
	<-done
}

type runInfoMsg struct{ info RunInfo }

type eventMsg struct{ event m.TestEvent }

type finishMsg struct{}

type finishedPackage struct {
	name    string
	status  m.Status
	elapsed float64
}

// runModel is the Bubble Tea model of a live test run.
type runModel struct {
	spinner  spinner.Model
	info     string
	running  map[string]bool
	current  string
	recent   []finishedPackage
	failures []string
	passed   int
	failed   int
	skipped  int
	quitting bool
}

func newRunModel() runModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return runModel{
		spinner: s,
		running: make(map[string]bool),
	}
}

func (rm runModel) Init() tea.Cmd {
	return rm.spinner.Tick
}

func (rm runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runInfoMsg:
		rm.info = formatRunInfo(msg.info)
		return rm, nil

	case eventMsg:
		return rm.handleEvent(msg.event), nil

	case finishMsg:
		rm.quitting = true
		return rm, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		rm.spinner, cmd = rm.spinner.Update(msg)

		return rm, cmd
	}

	return rm, nil
}

func (rm runModel) handleEvent(event m.TestEvent) runModel {
	if event.Package == "" {
		return rm
	}

	if event.IsPackageLevel() {
		switch {
		case event.Action == m.ActionStart:
			rm.running[event.Package] = true
			rm.current = event.Package
		case event.Action.IsTerminal():
			delete(rm.running, event.Package)

			rm.recent = append(rm.recent, finishedPackage{
				name:    event.Package,
				status:  actionStatus(event.Action),
				elapsed: event.Elapsed,
			})
			if len(rm.recent) > recentPackages {
				rm.recent = rm.recent[len(rm.recent)-recentPackages:]
			}

			if rm.current == event.Package {
				rm.current = ""
			}
		}

		return rm
	}

	rm.current = event.Package

	switch event.Action {
	case m.ActionPass:
		rm.passed++
	case m.ActionFail:
		rm.failed++
		rm.failures = append(rm.failures, event.Package+"."+event.Test)
	case m.ActionSkip:
		rm.skipped++
	default:
	}

	return rm
}

func (rm runModel) View() string {
	var b strings.Builder

	if rm.info != "" {
		b.WriteString(rm.info)
		b.WriteString("\n\n")
	}

	for _, pkg := range rm.recent {
		fmt.Fprintf(&b, "%s %s\t%s\n", statusLabel(pkg.status), pkg.name, formatElapsed(pkg.elapsed))
	}

	for _, name := range rm.failures {
		fmt.Fprintf(&b, "%s %s\n", failStyle.Render("--- FAIL:"), name)
	}

	if rm.quitting {
		return b.String()
	}

	current := rm.current
	if current == "" {
		current = "building"
	}

	fmt.Fprintf(&b, "\n%s %s  %s %s %s\n",
		rm.spinner.View(),
		titleStyle.Render(current),
		passStyle.Render(fmt.Sprintf("%d passed", rm.passed)),
		failStyle.Render(fmt.Sprintf("%d failed", rm.failed)),
		skipStyle.Render(fmt.Sprintf("%d skipped", rm.skipped)),
	)
	b.WriteString(faintStyle.Render(fmt.Sprintf("%d package(s) running", len(rm.running))))
	b.WriteString("\n")

	return b.String()
}
