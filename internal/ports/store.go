package ports

import (
	"context"

	"github.com/baditaflorin/go_titular_frequency/internal/core/domain"
)

// ReportStore defines the interface for persisting frequency reports.
type ReportStore interface {
	// SaveReport persists a report and returns its run identifier.
	SaveReport(ctx context.Context, report domain.Report) (int64, error)
	// LoadReport loads a previously saved report by run identifier.
	LoadReport(ctx context.Context, runID int64) (domain.Report, error)
	Close() error
}
