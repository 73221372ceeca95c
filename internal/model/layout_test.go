package model

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLayout_Paths(t *testing.T) {
	layout := NewLayout("output", "go")
	dir := filepath.Join("output", "go")

	tests := []struct {
		name string
		got  Path
		want string
	}{
		{name: "dir", got: layout.Dir(), want: dir},
		{name: "cobertura", got: layout.CoberturaPath(), want: filepath.Join(dir, "cobertura.xml")},
		{name: "junit", got: layout.JUnitPath(), want: filepath.Join(dir, "test-report.xml")},
		{name: "html dir", got: layout.HTMLDir(), want: filepath.Join(dir, "html")},
		{name: "html index", got: layout.HTMLIndexPath(), want: filepath.Join(dir, "html", "index.html")},
		{name: "profile", got: layout.ProfilePath(), want: filepath.Join(dir, "coverage.out")},
		{name: "summary", got: layout.SummaryPath(), want: filepath.Join(dir, "summary.yaml")},
		{name: "lock", got: layout.LockPath(), want: filepath.Join(dir, ".covrun.lock")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.String() != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestLayout_Artifacts(t *testing.T) {
	layout := NewLayout(Path(filepath.Join("build", "reports")), "go")

	artifacts := layout.Artifacts()
	if len(artifacts) != 3 {
		t.Fatalf("got %d artifacts, want 3", len(artifacts))
	}

	for _, artifact := range artifacts {
		rel, err := filepath.Rel(string(layout.Dir()), string(artifact))
		if err != nil || strings.HasPrefix(rel, "..") {
			t.Errorf("artifact %q is outside %q", artifact, layout.Dir())
		}
	}
}
