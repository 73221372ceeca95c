package domain_test

import (
	"bytes"
	"context"
	"encoding/xml"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"covrun.dev/pkg/covrun/internal/adapter"
	"covrun.dev/pkg/covrun/internal/controller"
	"covrun.dev/pkg/covrun/internal/domain"
	m "covrun.dev/pkg/covrun/internal/model"
)

func TestWorkflowIntegration_ExampleModules(t *testing.T) {
	if testing.Short() {
		t.Skip("runs go test on the example modules")
	}

	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go toolchain not available")
	}

	tests := []struct {
		name         string
		wantExitCode int
		wantCoverage bool
	}{
		{name: "passing", wantExitCode: 0, wantCoverage: true},
		{name: "failing", wantExitCode: 1, wantCoverage: true},
		{name: "broken", wantExitCode: 1, wantCoverage: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, err := filepath.Abs(filepath.Join("..", "..", "examples", tt.name))
			require.NoError(t, err)

			cmd := &cobra.Command{}
			out := &bytes.Buffer{}
			cmd.SetOut(out)

			fsAdapter := adapter.NewLocalSourceFSAdapter()
			wf := domain.NewWorkflow(
				fsAdapter,
				adapter.NewReportStore(fsAdapter),
				controller.NewSimpleUI(cmd),
				domain.NewRunner(adapter.NewLocalTestRunnerAdapter()),
				adapter.NewLocalModuleAdapter(),
				adapter.NewLocalCoverToolAdapter("go"),
			)

			layout := m.NewLayout(m.Path(filepath.Join(t.TempDir(), "output")), "go")

			err = wf.Run(context.Background(), domain.RunArgs{
				Layout:    layout,
				Dir:       m.Path(dir),
				Packages:  []string{"./..."},
				CoverMode: m.CoverModeAtomic,
				Stderr:    &bytes.Buffer{},
			})
			assert.Equal(t, tt.wantExitCode, domain.ExitCode(err), "error: %v\noutput:\n%s", err, out.String())

			for _, artifact := range layout.Artifacts() {
				assert.FileExists(t, string(artifact))
			}

			data, err := os.ReadFile(string(layout.CoberturaPath()))
			require.NoError(t, err)

			var report domain.Cobertura
			require.NoError(t, xml.Unmarshal(data, &report))
			assert.Equal(t, tt.wantCoverage, report.LinesValid > 0)

			junit, err := os.ReadFile(string(layout.JUnitPath()))
			require.NoError(t, err)
			assert.Contains(t, string(junit), "examples/"+tt.name)
		})
	}
}
