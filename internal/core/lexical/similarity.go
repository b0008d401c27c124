package lexical

import (
	"context"
	"errors"
	"math"

	"github.com/baditaflorin/go_titular_frequency/internal/core/domain"
	"github.com/baditaflorin/go_titular_frequency/internal/ports"
)

// Config holds configuration for the pairwise lexical comparator.
type Config struct {
	// QGram is the character n-gram size for the cosine metric.
	QGram int
	// PrefilterBaseAbs is the minimum absolute length gap considered
	// suspicious by the length prefilter.
	PrefilterBaseAbs int
	// PrefilterRelLong is the relative gap threshold applied to longer
	// standardized strings.
	PrefilterRelLong float64
	// Precision for rounding the reported metric values.
	Precision int
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		QGram:            3,
		PrefilterBaseAbs: 5,
		PrefilterRelLong: 0.5,
		Precision:        2,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.QGram <= 0 {
		return errors.New("qgram must be greater than 0")
	}
	if c.PrefilterBaseAbs < 0 {
		return errors.New("prefilter base must not be negative")
	}
	if c.PrefilterRelLong <= 0 || c.PrefilterRelLong > 1 {
		return errors.New("prefilter relative threshold must be in (0,1]")
	}
	return nil
}

// Comparator decides whether two raw titles name the same holder. The
// metrics over standardized text use the soft normalizer; Jaro-Winkler
// and the token-set ratio run over the raw strings, which keeps them
// sensitive to the encoding differences under investigation.
type Comparator struct {
	config Config
	logger ports.Logger
	soft   ports.Normalizer
}

// NewComparator creates a new lexical comparator. The soft normalizer
// should apply stopword and mercantile filtering on top of the base
// normalization.
func NewComparator(config Config, logger ports.Logger, soft ports.Normalizer) (*Comparator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Comparator{
		config: config,
		logger: logger,
		soft:   soft,
	}, nil
}

// Compare computes the lexical metrics for a pair of raw titles and
// classifies the pair as same, different or indeterminate.
func (c *Comparator) Compare(ctx context.Context, a, b string) domain.Comparison {
	c.logger.Debug("Starting lexical comparison", "a", a, "b", b)

	details := make(map[string]interface{})

	aStd := c.soft.Normalize(a)
	bStd := c.soft.Normalize(b)
	details["a_std"] = aStd
	details["b_std"] = bStd

	// Check context cancellation.
	select {
	case <-ctx.Done():
		c.logger.Error("Comparison cancelled", "error", ctx.Err())
		details["error"] = "comparison cancelled"
		return domain.Comparison{
			Name:    "lexical_comparison",
			Class:   domain.ClassIndeterminate,
			Details: details,
		}
	default:
		// continue
	}

	// A large length gap between the standardized strings settles the
	// pair before any metric runs.
	if c.lengthPrefilter(aStd, bStd) {
		c.logger.Debug("Pair rejected by length prefilter",
			"a_std", aStd,
			"b_std", bStd,
		)
		details["prefilter"] = "length gap"
		return domain.Comparison{
			Name:        "lexical_comparison",
			Score:       0,
			Class:       domain.ClassDifferent,
			Prefiltered: true,
			Details:     details,
		}
	}

	jw := jaroWinkler(a, b) * 100.0
	ts := tokenSetRatio(a, b) * 100.0
	cq := cosineQGrams(aStd, bStd, c.config.QGram) * 100.0
	jac := jaccard(aStd, bStd) * 100.0

	// Conservative rules: agreement of two strong signals declares the
	// pair the same holder, two weak signals declare it different,
	// anything else goes to the human reviewer.
	same := (jw >= 93 && ts >= 93) ||
		(ts >= 95 && cq >= 92) ||
		(jw >= 90 && jac >= 75)
	diff := jw < 85 && ts < 85

	class := domain.ClassIndeterminate
	if same {
		class = domain.ClassSame
	} else if diff {
		class = domain.ClassDifferent
	}

	score := 0.4*jw + 0.4*ts + 0.2*cq

	var conflicts []domain.ConflictPair
	if class == domain.ClassSame {
		conflicts = conflictPairs(a, b)
	}

	comparison := domain.Comparison{
		Name:          "lexical_comparison",
		Score:         c.round(score),
		Class:         class,
		JaroWinkler:   c.round(jw),
		TokenSetRatio: c.round(ts),
		CosineQGrams:  c.round(cq),
		Jaccard:       c.round(jac),
		Conflicts:     conflicts,
		Details:       details,
	}

	c.logger.Debug("Computed lexical comparison",
		"score", comparison.Score,
		"class", comparison.Class.String(),
		"jaro_winkler", comparison.JaroWinkler,
		"token_set_ratio", comparison.TokenSetRatio,
		"cosine_qgrams", comparison.CosineQGrams,
		"jaccard", comparison.Jaccard,
	)

	return comparison
}

// lengthPrefilter reports whether the standardized strings differ so
// much in length that the pair cannot be the same holder.
func (c *Comparator) lengthPrefilter(aStd, bStd string) bool {
	lenA := len([]rune(aStd))
	lenB := len([]rune(bStd))
	lmax := lenA
	if lenB > lmax {
		lmax = lenB
	}
	if lmax <= 3 {
		return false
	}

	absThr := c.config.PrefilterBaseAbs
	if scaled := int(math.Round(0.20 * float64(lmax))); scaled > absThr {
		absThr = scaled
	}
	relThr := c.config.PrefilterRelLong
	if lmax < 10 {
		relThr = 0.40
	}

	gapAbs := lenA - lenB
	if gapAbs < 0 {
		gapAbs = -gapAbs
	}
	gapRel := float64(gapAbs) / float64(lmax)
	return gapAbs > absThr && gapRel > relThr
}

func (c *Comparator) round(v float64) float64 {
	factor := math.Pow(10, float64(c.config.Precision))
	return math.Round(v*factor) / factor
}
