package adapter

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	m "covrun.dev/pkg/covrun/internal/model"
)

// ReportStore persists run summaries.
type ReportStore interface {
	SaveSummary(ctx context.Context, path m.Path, summary m.Summary) error
	LoadSummary(ctx context.Context, path m.Path) (m.Summary, error)
}

type yamlReportStore struct {
	fs SourceFSAdapter
}

// NewReportStore returns a ReportStore that keeps summaries as YAML files.
func NewReportStore(fs SourceFSAdapter) ReportStore {
	return &yamlReportStore{fs: fs}
}

func (s *yamlReportStore) SaveSummary(ctx context.Context, path m.Path, summary m.Summary) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	return s.fs.WriteFileAtomic(ctx, path, data)
}

func (s *yamlReportStore) LoadSummary(ctx context.Context, path m.Path) (m.Summary, error) {
	data, err := s.fs.ReadFile(ctx, path)
	if err != nil {
		return m.Summary{}, fmt.Errorf("read summary: %w", err)
	}

	var summary m.Summary
	if err := yaml.Unmarshal(data, &summary); err != nil {
		return m.Summary{}, fmt.Errorf("parse summary %s: %w", path, err)
	}

	return summary, nil
}
