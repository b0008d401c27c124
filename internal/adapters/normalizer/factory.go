package normalizer

import (
	"github.com/baditaflorin/go_titular_frequency/internal/ports"
)

// NormalizerFactory creates the appropriate normalizer based on performance requirements
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// Type of normalizer to create
type NormalizerType int

const (
	// DefaultNormalizerType is the rune-based reference normalizer
	DefaultNormalizerType NormalizerType = iota
	// OptimizedNormalizerType uses an ASCII decision table and buffer pooling
	OptimizedNormalizerType
	// SoftStandardNormalizerType additionally drops stopwords, mercantile
	// terms and single-letter residue, for duplicate detection
	SoftStandardNormalizerType
)

// CreateNormalizer creates a normalizer of the specified type
func (f *NormalizerFactory) CreateNormalizer(normalizerType NormalizerType) ports.Normalizer {
	switch normalizerType {
	case OptimizedNormalizerType:
		return NewOptimizedNormalizer()
	case SoftStandardNormalizerType:
		return NewTokenFilterNormalizer(NewOptimizedNormalizer(), TokenFilterConfig{
			DropStopwords:  true,
			DropMercantile: true,
			MinTokenLen:    2,
		})
	default:
		return NewDefaultNormalizer()
	}
}
