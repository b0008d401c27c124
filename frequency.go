package titularfrequency

import (
	"context"

	"github.com/baditaflorin/l"

	"github.com/baditaflorin/go_titular_frequency/internal/adapters/logger"
	"github.com/baditaflorin/go_titular_frequency/internal/adapters/normalizer"
	"github.com/baditaflorin/go_titular_frequency/internal/core/domain"
	"github.com/baditaflorin/go_titular_frequency/internal/core/frequency"
	"github.com/baditaflorin/go_titular_frequency/internal/ports"
)

// Config holds configuration options for the frequency counter.
type Config struct {
	TopN      int
	MinCount  int
	KeepEmpty bool
	// Logger for tracing computation steps.
	Logger ports.Logger
	// Normalizer applied to every raw title.
	Normalizer ports.Normalizer
}

// Option defines a functional option for configuring the counter.
type Option func(*Config)

// WithTopN limits the report to the N most frequent titles.
func WithTopN(n int) Option {
	return func(cfg *Config) {
		cfg.TopN = n
	}
}

// WithMinCount drops entries with fewer occurrences.
func WithMinCount(n int) Option {
	return func(cfg *Config) {
		cfg.MinCount = n
	}
}

// WithKeepEmpty counts titles normalizing to the empty string instead
// of skipping them.
func WithKeepEmpty() Option {
	return func(cfg *Config) {
		cfg.KeepEmpty = true
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithNormalizer sets a custom normalizer.
func WithNormalizer(n ports.Normalizer) Option {
	return func(cfg *Config) {
		cfg.Normalizer = n
	}
}

// WithSoftStandardization uses the duplicate-detection normalizer that
// also drops stopwords, mercantile terms and single-letter residue.
func WithSoftStandardization() Option {
	return func(cfg *Config) {
		factory := normalizer.NewNormalizerFactory()
		cfg.Normalizer = factory.CreateNormalizer(normalizer.SoftStandardNormalizerType)
	}
}

// FrequencyCounter aggregates collections of raw titles into ranked
// frequency reports.
type FrequencyCounter struct {
	counter *frequency.Counter
	logger  ports.Logger
}

// New creates a new FrequencyCounter with the provided functional options.
// If no logger is provided, a default logger is created.
func New(opts ...Option) (*FrequencyCounter, error) {
	cfg := &Config{}
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

	counter, err := frequency.NewCounter(frequency.Config{
		TopN:      cfg.TopN,
		MinCount:  cfg.MinCount,
		KeepEmpty: cfg.KeepEmpty,
	}, cfg.Logger, cfg.Normalizer)
	if err != nil {
		return nil, err
	}

	return &FrequencyCounter{
		counter: counter,
		logger:  cfg.Logger,
	}, nil
}

// Count normalizes every title and returns the ranked report.
func (fc *FrequencyCounter) Count(ctx context.Context, titles []string) domain.Report {
	return fc.counter.Count(ctx, titles)
}

// CountWithDefaults aggregates titles using a counter with default
// configuration.
func CountWithDefaults(titles []string) (domain.Report, error) {
	fc, err := New()
	if err != nil {
		return domain.Report{}, err
	}
	return fc.Count(context.Background(), titles), nil
}
