package adapter

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	m "covrun.dev/pkg/covrun/internal/model"
)

func TestReportStore_SaveAndLoad(t *testing.T) {
	store := NewReportStore(NewLocalSourceFSAdapter())
	path := m.Path(filepath.Join(t.TempDir(), "go", "summary.yaml"))
	started := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

	summary := m.Summary{
		RunID:    "run-1",
		Started:  started,
		Finished: started.Add(3 * time.Second),
		ExitCode: 1,
		LineRate: 0.5,
		Packages: []m.PackageResult{{
			ImportPath: "example.com/x",
			Status:     m.StatusFailed,
			Elapsed:    1500 * time.Millisecond,
			Cases: []m.TestCase{
				{Name: "TestA", Package: "example.com/x", Status: m.StatusFailed, Duration: time.Second},
			},
		}},
	}
	summary.ComputeTotals()

	if err := store.SaveSummary(context.Background(), path, summary); err != nil {
		t.Fatalf("SaveSummary() error = %v", err)
	}

	got, err := store.LoadSummary(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadSummary() error = %v", err)
	}

	if got.RunID != "run-1" || got.ExitCode != 1 || got.Totals.Failures != 1 {
		t.Fatalf("LoadSummary() = %+v, want the saved summary", got)
	}

	if got.Packages[0].Elapsed != 1500*time.Millisecond {
		t.Fatalf("LoadSummary() elapsed = %v, want 1.5s", got.Packages[0].Elapsed)
	}
}

func TestReportStore_LoadMissing(t *testing.T) {
	store := NewReportStore(NewLocalSourceFSAdapter())

	if _, err := store.LoadSummary(context.Background(), m.Path(filepath.Join(t.TempDir(), "summary.yaml"))); err == nil {
		t.Fatalf("LoadSummary() expected error for a missing file")
	}
}
