// Package store persists the screening run audit trail. Results are never
// served from persistence; the store exists so operators can inspect what
// ran, when, and what it produced.
package store

import (
	"context"

	"github.com/sells-group/screen-cli/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status  model.RunStatus `json:"status,omitempty"`
	Company string          `json:"company,omitempty"`
	Limit   int             `json:"limit,omitempty"`
	Offset  int             `json:"offset,omitempty"`
}

// Store defines the audit persistence interface.
type Store interface {
	CreateRun(ctx context.Context, company model.Company) (*model.Run, error)
	UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error
	UpdateRunResult(ctx context.Context, runID string, result *model.ScreenResult) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	Migrate(ctx context.Context) error
	Close() error
}
