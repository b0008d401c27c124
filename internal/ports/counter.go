package ports

import (
	"context"

	"github.com/baditaflorin/go_titular_frequency/internal/core/domain"
)

// FrequencyCounter defines the interface for aggregating raw titles into
// a ranked frequency report.
type FrequencyCounter interface {
	Count(ctx context.Context, titles []string) domain.Report
}

// Comparator defines the interface for pairwise lexical comparison of
// two raw titles.
type Comparator interface {
	Compare(ctx context.Context, a, b string) domain.Comparison
}
