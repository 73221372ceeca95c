package adapter

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	m "covrun.dev/pkg/covrun/internal/model"
)

func TestLocalCoverToolAdapter_RenderHTML(t *testing.T) {
	dir := examplePath(t, "passing")
	tmp := t.TempDir()
	profile := filepath.Join(tmp, "coverage.out")
	out := filepath.Join(tmp, "html", "index.html")

	code, err := NewLocalTestRunnerAdapter().RunGoTest(context.Background(), m.TestInvocation{
		Dir:     m.Path(dir),
		Profile: m.Path(profile),
	}, &bytes.Buffer{}, &bytes.Buffer{})
	if err != nil || code != 0 {
		t.Fatalf("RunGoTest() code = %d, error = %v", code, err)
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	adapter := NewLocalCoverToolAdapter("")
	if err := adapter.RenderHTML(context.Background(), m.Path(dir), m.Path(profile), m.Path(out)); err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}

	content, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if !strings.Contains(string(content), "calc.go") {
		t.Fatalf("RenderHTML() output does not reference the covered file")
	}
}

func TestLocalCoverToolAdapter_RenderHTML_MissingProfile(t *testing.T) {
	tmp := t.TempDir()
	adapter := NewLocalCoverToolAdapter("")

	err := adapter.RenderHTML(context.Background(), m.Path(examplePath(t, "passing")),
		m.Path(filepath.Join(tmp, "missing.out")), m.Path(filepath.Join(tmp, "index.html")))
	if err == nil {
		t.Fatalf("RenderHTML() expected error for a missing profile")
	}
}
