package titularfrequency

import (
	"context"

	"github.com/baditaflorin/go_titular_frequency/internal/adapters/logger"
	"github.com/baditaflorin/go_titular_frequency/internal/adapters/normalizer"
	"github.com/baditaflorin/go_titular_frequency/internal/core/domain"
	"github.com/baditaflorin/go_titular_frequency/internal/core/lexical"
)

// Compare runs the pairwise lexical comparison of two raw titles with
// default configuration, deciding whether they name the same holder.
func Compare(ctx context.Context, a, b string) (domain.Comparison, error) {
	defaultLogger, err := createDefaultLogger()
	if err != nil {
		return domain.Comparison{}, err
	}

	soft := normalizer.NewTokenFilterNormalizer(nil, normalizer.TokenFilterConfig{
		DropStopwords:  true,
		DropMercantile: true,
		MinTokenLen:    2,
	})
	comparator, err := lexical.NewComparator(lexical.DefaultConfig(), logger.FromExisting(defaultLogger), soft)
	if err != nil {
		return domain.Comparison{}, err
	}

	return comparator.Compare(ctx, a, b), nil
}
