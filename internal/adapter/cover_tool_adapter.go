package adapter

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	m "covrun.dev/pkg/covrun/internal/model"
)

// CoverToolAdapter renders coverage profiles with 'go tool cover'.
type CoverToolAdapter interface {
	// RenderHTML writes the HTML view of profile to out. dir must be inside the
	// module the profile was recorded for so the tool can locate the sources.
	RenderHTML(ctx context.Context, dir, profile, out m.Path) error
}

// LocalCoverToolAdapter runs the go tool found on PATH.
type LocalCoverToolAdapter struct {
	goBinary string
}

// NewLocalCoverToolAdapter constructs a LocalCoverToolAdapter.
func NewLocalCoverToolAdapter(goBinary string) *LocalCoverToolAdapter {
	if goBinary == "" {
		goBinary = "go"
	}

	return &LocalCoverToolAdapter{goBinary: goBinary}
}

// RenderHTML runs 'go tool cover -html=<profile> -o <out>'.
func (a *LocalCoverToolAdapter) RenderHTML(ctx context.Context, dir, profile, out m.Path) error {
	absProfile, err := filepath.Abs(string(profile))
	if err != nil {
		return err
	}

	absOut, err := filepath.Abs(string(out))
	if err != nil {
		return err
	}

	// #nosec G204 - arguments are paths from the configured layout
	cmd := exec.CommandContext(ctx, a.goBinary, "tool", "cover", "-html="+absProfile, "-o", absOut)
	cmd.Dir = string(dir)

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	slog.Debug("rendering html coverage", "profile", absProfile, "out", absOut)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("go tool cover: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return nil
}
