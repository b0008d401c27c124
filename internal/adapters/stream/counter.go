package stream

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/baditaflorin/go_titular_frequency/internal/core/domain"
	"github.com/baditaflorin/go_titular_frequency/internal/core/frequency"
	"github.com/baditaflorin/go_titular_frequency/internal/ports"
)

const (
	// DefaultBatchSize is the number of lines handed to the core
	// counter at a time.
	DefaultBatchSize = 1000

	// MaxScannerBufferSize defines the maximum buffer size for the scanner.
	// This helps prevent "token too long" errors on pathological lines.
	MaxScannerBufferSize = 1024 * 1024 // 1MB
)

// Config holds configuration for the stream counter.
type Config struct {
	// BatchSize is the number of lines per tally batch.
	BatchSize int
	// Workers is the number of concurrent tally workers. Zero or one
	// selects the sequential path.
	Workers int
}

// Counter reads raw titles from a stream, one per line, and aggregates
// them with the core frequency counter.
type Counter struct {
	logger  ports.Logger
	counter *frequency.Counter
	config  Config
}

// NewCounter creates a new stream counter.
func NewCounter(logger ports.Logger, counter *frequency.Counter, config Config) *Counter {
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultBatchSize
	}
	return &Counter{
		logger:  logger,
		counter: counter,
		config:  config,
	}
}

// CountStream reads titles from reader until EOF and returns the
// aggregated frequency report. An empty stream yields an empty report.
func (c *Counter) CountStream(ctx context.Context, reader io.Reader) (domain.Report, error) {
	start := time.Now()

	if reader == nil {
		c.logger.Error("Nil reader provided")
		return domain.Report{}, io.ErrUnexpectedEOF
	}

	var (
		report domain.Report
		err    error
	)
	if c.config.Workers > 1 {
		report, err = c.countParallel(ctx, reader)
	} else {
		report, err = c.countSequential(ctx, reader)
	}
	if err != nil {
		c.logger.Error("Stream counting error", "error", err)
		return report, err
	}

	report.ProcessingTime = time.Since(start)
	c.logger.Debug("Stream counting completed",
		"total", report.TotalTitles,
		"distinct", report.DistinctTitles,
		"duration", report.ProcessingTime,
	)

	return report, nil
}

func (c *Counter) countSequential(ctx context.Context, reader io.Reader) (domain.Report, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, MaxScannerBufferSize), MaxScannerBufferSize)

	counts := make(map[string]int)
	total := 0
	skipped := 0
	batch := make([]string, 0, c.config.BatchSize)

	flush := func() {
		partial, s := c.counter.Tally(batch)
		frequency.Merge(counts, partial)
		skipped += s
		batch = batch[:0]
	}

	for scanner.Scan() {
		// Check context for cancellation between batches.
		if len(batch) == 0 {
			select {
			case <-ctx.Done():
				c.logger.Warn("Counting cancelled by context", "error", ctx.Err())
				return domain.Report{}, ctx.Err()
			default:
				// continue
			}
		}

		batch = append(batch, scanner.Text())
		total++
		if len(batch) == c.config.BatchSize {
			flush()
		}
	}
	if err := scanner.Err(); err != nil {
		c.logger.Warn("Error scanning input", "error", err)
		return domain.Report{}, err
	}
	flush()

	return c.counter.FromCounts(counts, total, skipped), nil
}
