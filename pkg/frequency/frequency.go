// Package frequency exposes the streaming frequency counter: raw
// titles are read from an io.Reader, one per line, normalized and
// aggregated into a ranked report.
package frequency

import (
	"context"
	"io"
	"strings"

	"github.com/baditaflorin/l"

	"github.com/baditaflorin/go_titular_frequency/internal/adapters/logger"
	"github.com/baditaflorin/go_titular_frequency/internal/adapters/normalizer"
	"github.com/baditaflorin/go_titular_frequency/internal/adapters/stream"
	"github.com/baditaflorin/go_titular_frequency/internal/core/domain"
	corefrequency "github.com/baditaflorin/go_titular_frequency/internal/core/frequency"
	"github.com/baditaflorin/go_titular_frequency/internal/ports"
)

type streamingConfig struct {
	BatchSize  int
	Workers    int
	TopN       int
	MinCount   int
	KeepEmpty  bool
	Logger     ports.Logger
	Normalizer ports.Normalizer
}

// StreamingOption defines a functional option for configuring the
// streaming counter.
type StreamingOption func(*streamingConfig)

// WithBatchSize sets the number of lines tallied per batch.
func WithBatchSize(n int) StreamingOption {
	return func(cfg *streamingConfig) {
		cfg.BatchSize = n
	}
}

// WithParallel enables parallel tallying with the given number of
// workers; the per-key partial counts are merged at the end.
func WithParallel(workers int) StreamingOption {
	return func(cfg *streamingConfig) {
		cfg.Workers = workers
	}
}

// WithTopN limits the report to the N most frequent titles.
func WithTopN(n int) StreamingOption {
	return func(cfg *streamingConfig) {
		cfg.TopN = n
	}
}

// WithMinCount drops entries with fewer occurrences.
func WithMinCount(n int) StreamingOption {
	return func(cfg *streamingConfig) {
		cfg.MinCount = n
	}
}

// WithKeepEmpty counts titles normalizing to the empty string.
func WithKeepEmpty() StreamingOption {
	return func(cfg *streamingConfig) {
		cfg.KeepEmpty = true
	}
}

// WithStreamingLogger sets a custom logger.
func WithStreamingLogger(lg l.Logger) StreamingOption {
	return func(cfg *streamingConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithNormalizer sets a custom normalizer.
func WithNormalizer(n ports.Normalizer) StreamingOption {
	return func(cfg *streamingConfig) {
		cfg.Normalizer = n
	}
}

// WithSoftStandardization uses the duplicate-detection normalizer.
func WithSoftStandardization() StreamingOption {
	return func(cfg *streamingConfig) {
		factory := normalizer.NewNormalizerFactory()
		cfg.Normalizer = factory.CreateNormalizer(normalizer.SoftStandardNormalizerType)
	}
}

// StreamingFrequency counts titles from streams.
type StreamingFrequency struct {
	counter ports.StreamCounter
	logger  ports.Logger
}

// NewStreamingFrequency creates a new streaming counter with the
// provided functional options.
func NewStreamingFrequency(opts ...StreamingOption) (*StreamingFrequency, error) {
	cfg := &streamingConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		stdLogger, err := logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
		cfg.Logger = stdLogger
	}
	if cfg.Normalizer == nil {
		cfg.Normalizer = normalizer.NewOptimizedNormalizer()
	}

	core, err := corefrequency.NewCounter(corefrequency.Config{
		TopN:      cfg.TopN,
		MinCount:  cfg.MinCount,
		KeepEmpty: cfg.KeepEmpty,
	}, cfg.Logger, cfg.Normalizer)
	if err != nil {
		return nil, err
	}

	return &StreamingFrequency{
		counter: stream.NewCounter(cfg.Logger, core, stream.Config{
			BatchSize: cfg.BatchSize,
			Workers:   cfg.Workers,
		}),
		logger: cfg.Logger,
	}, nil
}

// CountFromReader reads raw titles from reader until EOF, one per line,
// and returns the ranked report.
func (sf *StreamingFrequency) CountFromReader(ctx context.Context, reader io.Reader) (domain.Report, error) {
	return sf.counter.CountStream(ctx, reader)
}

// CountFromString counts titles from a newline-separated string.
func (sf *StreamingFrequency) CountFromString(ctx context.Context, titles string) (domain.Report, error) {
	return sf.counter.CountStream(ctx, strings.NewReader(titles))
}
