// Package lexical exposes the pairwise lexical comparison of raw
// titles: Jaro-Winkler and token-set similarity over the raw strings,
// Jaccard and cosine q-gram similarity over softly standardized
// versions, combined into a conservative same/different/indeterminate
// verdict.
package lexical

import (
	"context"

	"github.com/baditaflorin/l"

	"github.com/baditaflorin/go_titular_frequency/internal/adapters/logger"
	"github.com/baditaflorin/go_titular_frequency/internal/adapters/normalizer"
	"github.com/baditaflorin/go_titular_frequency/internal/core/domain"
	corelexical "github.com/baditaflorin/go_titular_frequency/internal/core/lexical"
	"github.com/baditaflorin/go_titular_frequency/internal/ports"
)

type comparatorConfig struct {
	QGram            int
	PrefilterBaseAbs int
	PrefilterRelLong float64
	Precision        int
	Logger           ports.Logger
	SoftNormalizer   ports.Normalizer
}

// ComparatorOption defines a functional option for configuring the
// comparator.
type ComparatorOption func(*comparatorConfig)

// WithQGram sets the character n-gram size for the cosine metric.
func WithQGram(q int) ComparatorOption {
	return func(cfg *comparatorConfig) {
		cfg.QGram = q
	}
}

// WithPrefilter sets the length-prefilter thresholds.
func WithPrefilter(baseAbs int, relLong float64) ComparatorOption {
	return func(cfg *comparatorConfig) {
		cfg.PrefilterBaseAbs = baseAbs
		cfg.PrefilterRelLong = relLong
	}
}

// WithPrecision sets a custom precision for rounding computed metrics.
func WithPrecision(p int) ComparatorOption {
	return func(cfg *comparatorConfig) {
		cfg.Precision = p
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) ComparatorOption {
	return func(cfg *comparatorConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithSoftNormalizer sets the normalizer used for the standardized
// metrics.
func WithSoftNormalizer(n ports.Normalizer) ComparatorOption {
	return func(cfg *comparatorConfig) {
		cfg.SoftNormalizer = n
	}
}

// Comparator decides whether two raw titles name the same holder.
type Comparator struct {
	comparator ports.Comparator
	logger     ports.Logger
}

// NewComparator creates a new comparator with the provided functional
// options. Returns an error if the configuration is invalid.
func NewComparator(opts ...ComparatorOption) (*Comparator, error) {
	defaults := corelexical.DefaultConfig()
	cfg := &comparatorConfig{
		QGram:            defaults.QGram,
		PrefilterBaseAbs: defaults.PrefilterBaseAbs,
		PrefilterRelLong: defaults.PrefilterRelLong,
		Precision:        defaults.Precision,
	}
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
	if cfg.SoftNormalizer == nil {
		cfg.SoftNormalizer = normalizer.NewTokenFilterNormalizer(nil, normalizer.TokenFilterConfig{
			DropStopwords:  true,
			DropMercantile: true,
			MinTokenLen:    2,
		})
	}

	core, err := corelexical.NewComparator(corelexical.Config{
		QGram:            cfg.QGram,
		PrefilterBaseAbs: cfg.PrefilterBaseAbs,
		PrefilterRelLong: cfg.PrefilterRelLong,
		Precision:        cfg.Precision,
	}, cfg.Logger, cfg.SoftNormalizer)
	if err != nil {
		return nil, err
	}

	return &Comparator{comparator: core, logger: cfg.Logger}, nil
}

// Compare computes the lexical metrics for a pair of raw titles.
func (c *Comparator) Compare(ctx context.Context, a, b string) domain.Comparison {
	return c.comparator.Compare(ctx, a, b)
}
