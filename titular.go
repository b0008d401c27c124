// Package titularfrequency canonicalizes water-rights titular names and
// ranks the normalized values by frequency so that likely duplicate or
// inconsistently encoded records surface at the top of the list.
//
// Normalization strips diacritics ("JOSÉ MARÍA" -> "JOSE MARIA"), folds
// "Ø" to "O", expands "&" to "Y", drops punctuation, collapses
// whitespace and uppercases. The transformation is pure, total and
// idempotent; the frequency count is a stateless aggregation whose
// output is sorted by count descending with lexicographic tie-breaks.
package titularfrequency

import (
	"github.com/baditaflorin/go_titular_frequency/internal/adapters/normalizer"
	"github.com/baditaflorin/go_titular_frequency/internal/ports"
)

var defaultNormalizer = normalizer.NewOptimizedNormalizer()

// Normalize maps a raw titular to its canonical form using the default
// normalizer. It never fails; unrecognized characters are dropped.
func Normalize(text string) string {
	return defaultNormalizer.Normalize(text)
}

// NewNormalizer creates a standalone normalizer. Soft standardization
// additionally removes stopwords, mercantile terms and single-letter
// residue, which is the variant used for duplicate detection.
func NewNormalizer(soft bool) ports.Normalizer {
	factory := normalizer.NewNormalizerFactory()
	if soft {
		return factory.CreateNormalizer(normalizer.SoftStandardNormalizerType)
	}
	return factory.CreateNormalizer(normalizer.OptimizedNormalizerType)
}
