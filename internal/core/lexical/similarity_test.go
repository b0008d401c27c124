package lexical

import (
	"context"
	"testing"

	"github.com/baditaflorin/go_titular_frequency/internal/adapters/normalizer"
	"github.com/baditaflorin/go_titular_frequency/internal/core/domain"
	"github.com/baditaflorin/go_titular_frequency/internal/ports"
)

var _ ports.Comparator = (*Comparator)(nil)

// nopLogger silences log output in tests.
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Close() error                 { return nil }

func newTestComparator(t *testing.T) *Comparator {
	t.Helper()
	soft := normalizer.NewTokenFilterNormalizer(nil, normalizer.TokenFilterConfig{
		DropStopwords:  true,
		DropMercantile: true,
		MinTokenLen:    2,
	})
	comparator, err := NewComparator(DefaultConfig(), nopLogger{}, soft)
	if err != nil {
		t.Fatalf("NewComparator: %v", err)
	}
	return comparator
}

func TestCompareIdentical(t *testing.T) {
	c := newTestComparator(t)

	result := c.Compare(context.Background(), "JUAN PEREZ GARCIA", "JUAN PEREZ GARCIA")
	if result.Class != domain.ClassSame {
		t.Fatalf("expected same, got %s (%+v)", result.Class, result)
	}
	if result.Score != 100 {
		t.Errorf("expected score 100, got %v", result.Score)
	}
	if len(result.Conflicts) != 0 {
		t.Errorf("expected no conflicts for identical strings, got %v", result.Conflicts)
	}
}

func TestCompareCaseOnlyDifference(t *testing.T) {
	c := newTestComparator(t)

	// Jaro-Winkler over the raw strings is case sensitive, but the
	// token-set ratio and the standardized metrics recognize the pair.
	result := c.Compare(context.Background(), "JOSE PEREZ", "jose perez")
	if result.Class != domain.ClassSame {
		t.Fatalf("expected same, got %s (%+v)", result.Class, result)
	}
	if result.TokenSetRatio != 100 {
		t.Errorf("expected token-set ratio 100, got %v", result.TokenSetRatio)
	}
	if result.Jaccard != 100 {
		t.Errorf("expected Jaccard 100 over standardized strings, got %v", result.Jaccard)
	}
}

func TestComparePunctuationDifference(t *testing.T) {
	c := newTestComparator(t)

	result := c.Compare(context.Background(), "GARCIA S.A.", "GARCIA SA")
	if result.Class != domain.ClassSame {
		t.Fatalf("expected same, got %s (%+v)", result.Class, result)
	}
	found := false
	for _, conflict := range result.Conflicts {
		if conflict.From == "." && conflict.To == "∅" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a dot deletion conflict, got %v", result.Conflicts)
	}
}

func TestCompareDifferentHolders(t *testing.T) {
	c := newTestComparator(t)

	result := c.Compare(context.Background(), "JUAN PEREZ", "PEDRO GOMEZ")
	if result.Class != domain.ClassDifferent {
		t.Fatalf("expected different, got %s (%+v)", result.Class, result)
	}
	if len(result.Conflicts) != 0 {
		t.Errorf("conflicts are only reported for same pairs, got %v", result.Conflicts)
	}
}

func TestCompareLengthPrefilter(t *testing.T) {
	c := newTestComparator(t)

	result := c.Compare(context.Background(), "JUAN PEREZ", "COMISION FEDERAL DE ELECTRICIDAD")
	if !result.Prefiltered {
		t.Fatalf("expected prefiltered pair, got %+v", result)
	}
	if result.Class != domain.ClassDifferent || result.Score != 0 {
		t.Errorf("prefiltered pairs are different with score 0, got %+v", result)
	}
}

func TestCompareAccentedIndeterminate(t *testing.T) {
	c := newTestComparator(t)

	// Accents lower both raw-string metrics below the conservative
	// thresholds, so accent-only variants land with the human reviewer
	// instead of being auto-merged.
	result := c.Compare(context.Background(), "JOSÉ MARÍA PÉREZ", "JOSE MARIA PEREZ")
	if result.Class != domain.ClassIndeterminate {
		t.Fatalf("expected indeterminate, got %s (%+v)", result.Class, result)
	}
	if result.CosineQGrams != 100 || result.Jaccard != 100 {
		t.Errorf("standardized metrics should be 100, got cq=%v jac=%v",
			result.CosineQGrams, result.Jaccard)
	}
}

func TestCompareCancelled(t *testing.T) {
	c := newTestComparator(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := c.Compare(ctx, "JUAN", "JUAN")
	if result.Class != domain.ClassIndeterminate {
		t.Errorf("expected indeterminate after cancellation, got %s", result.Class)
	}
	if result.Details["error"] == nil {
		t.Error("expected cancellation recorded in details")
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (Config{QGram: 0, PrefilterBaseAbs: 5, PrefilterRelLong: 0.5}).Validate(); err == nil {
		t.Error("expected error for zero qgram")
	}
	if err := (Config{QGram: 3, PrefilterBaseAbs: -1, PrefilterRelLong: 0.5}).Validate(); err == nil {
		t.Error("expected error for negative prefilter base")
	}
	if err := (Config{QGram: 3, PrefilterBaseAbs: 5, PrefilterRelLong: 1.5}).Validate(); err == nil {
		t.Error("expected error for out-of-range relative threshold")
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
