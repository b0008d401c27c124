package frequency

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/baditaflorin/go_titular_frequency/internal/core/domain"
	"github.com/baditaflorin/go_titular_frequency/internal/ports"
)

// Config holds configuration for the frequency counter.
type Config struct {
	// TopN limits the report to the N most frequent titles. Zero keeps
	// every entry.
	TopN int
	// MinCount drops entries with fewer occurrences. Zero or one keeps
	// every entry.
	MinCount int
	// KeepEmpty counts raw titles that normalize to the empty string
	// under the "" key instead of skipping them.
	KeepEmpty bool
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.TopN < 0 {
		return errors.New("topN must not be negative")
	}
	if c.MinCount < 0 {
		return errors.New("minCount must not be negative")
	}
	return nil
}

// Counter aggregates raw titles into a ranked frequency report.
type Counter struct {
	config     Config
	logger     ports.Logger
	normalizer ports.Normalizer
}

// NewCounter creates a new frequency counter.
func NewCounter(config Config, logger ports.Logger, normalizer ports.Normalizer) (*Counter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Counter{
		config:     config,
		logger:     logger,
		normalizer: normalizer,
	}, nil
}

// Count normalizes every title and aggregates occurrences per distinct
// normalized value. The input is not mutated; an empty input yields an
// empty report.
func (c *Counter) Count(ctx context.Context, titles []string) domain.Report {
	start := time.Now()
	c.logger.Debug("Starting frequency count", "titles", len(titles))

	details := make(map[string]interface{})
	counts := make(map[string]int, len(titles))
	skipped := 0

	for i, title := range titles {
		// Check for context cancellation between batches.
		if i%1024 == 0 {
			select {
			case <-ctx.Done():
				c.logger.Error("Count cancelled", "error", ctx.Err(), "processed", i)
				details["error"] = "count cancelled"
				return domain.Report{
					Details:        details,
					ProcessingTime: time.Since(start),
				}
			default:
				// continue
			}
		}

		normalized := c.normalizer.Normalize(title)
		if normalized == "" && !c.config.KeepEmpty {
			skipped++
			continue
		}
		counts[normalized]++
	}

	report := c.buildReport(counts, len(titles), skipped, details)
	report.ProcessingTime = time.Since(start)

	c.logger.Debug("Computed frequency report",
		"total", report.TotalTitles,
		"distinct", report.DistinctTitles,
		"skipped_empty", report.SkippedEmpty,
		"duration", report.ProcessingTime,
	)

	return report
}

// Tally aggregates one partition of titles into a count map. It is the
// building block for parallel counting; partial maps from several
// partitions are combined with Merge.
func (c *Counter) Tally(titles []string) (counts map[string]int, skipped int) {
	counts = make(map[string]int, len(titles))
	for _, title := range titles {
		normalized := c.normalizer.Normalize(title)
		if normalized == "" && !c.config.KeepEmpty {
			skipped++
			continue
		}
		counts[normalized]++
	}
	return counts, skipped
}

// Merge folds the src partial counts into dst.
func Merge(dst, src map[string]int) {
	for title, n := range src {
		dst[title] += n
	}
}

// FromCounts builds a ranked report from an already aggregated count
// map, applying the MinCount and TopN limits.
func (c *Counter) FromCounts(counts map[string]int, total, skipped int) domain.Report {
	return c.buildReport(counts, total, skipped, make(map[string]interface{}))
}

func (c *Counter) buildReport(counts map[string]int, total, skipped int, details map[string]interface{}) domain.Report {
	entries := make([]domain.Entry, 0, len(counts))
	for title, n := range counts {
		if c.config.MinCount > 1 && n < c.config.MinCount {
			continue
		}
		entries = append(entries, domain.Entry{Title: title, Count: n})
	}

	// Rank by count descending; equal counts order lexicographically by
	// title so the ranking is deterministic.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Title < entries[j].Title
	})

	if c.config.TopN > 0 && len(entries) > c.config.TopN {
		entries = entries[:c.config.TopN]
	}

	details["distinct"] = len(counts)
	details["skipped_empty"] = skipped

	return domain.Report{
		Entries:        entries,
		TotalTitles:    total,
		DistinctTitles: len(counts),
		SkippedEmpty:   skipped,
		Details:        details,
	}
}
