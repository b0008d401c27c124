package ports

import (
	"context"
	"io"

	"github.com/baditaflorin/go_titular_frequency/internal/core/domain"
)

// StreamCounter defines the interface for counting titles read from a
// stream, one raw title per line.
type StreamCounter interface {
	// CountStream reads titles from reader until EOF and returns the
	// aggregated frequency report.
	CountStream(ctx context.Context, reader io.Reader) (domain.Report, error)
}
