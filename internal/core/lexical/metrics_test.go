package lexical

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-4
}

func TestJaroWinkler(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{"Identical", "GARCIA", "GARCIA", 1.0},
		{"Empty vs nonempty", "", "GARCIA", 0.0},
		{"Both empty", "", "", 1.0},
		// Classic transposition pair: jaro 0.9444, prefix 3.
		{"Transposition", "MARTHA", "MARHTA", 0.9611},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := jaroWinkler(tc.a, tc.b); !almostEqual(got, tc.expected) {
				t.Errorf("jaroWinkler(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.expected)
			}
		})
	}
}

func TestJaroWinklerBoostThreshold(t *testing.T) {
	// A shared prefix on an otherwise dissimilar pair gets no boost:
	// below a Jaro score of 0.7 Jaro-Winkler must equal plain Jaro.
	a, b := "ABCDEF", "ABZZZZZZZZ"

	jaro := jaroSimilarity(a, b)
	if jaro > 0.7 {
		t.Fatalf("pair unexpectedly similar: jaro = %v", jaro)
	}
	if got := jaroWinkler(a, b); got != jaro {
		t.Errorf("jaroWinkler(%q, %q) = %v, want unboosted %v", a, b, got, jaro)
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		a, b     string
		expected float64
	}{
		{"JUAN PEREZ", "JUAN PEREZ", 1.0},
		{"JUAN PEREZ", "PEREZ JUAN", 1.0},
		{"JUAN PEREZ", "JUAN GOMEZ", 1.0 / 3.0},
		{"JUAN", "PEDRO", 0.0},
		{"", "", 0.0},
	}
	for _, tc := range tests {
		if got := jaccard(tc.a, tc.b); !almostEqual(got, tc.expected) {
			t.Errorf("jaccard(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.expected)
		}
	}
}

func TestTokenSetRatioIgnoresOrderAndCase(t *testing.T) {
	if got := tokenSetRatio("Perez, Juan", "JUAN PEREZ"); !almostEqual(got, 1.0) {
		t.Errorf("tokenSetRatio = %v, want 1.0", got)
	}
}

func TestCosineQGrams(t *testing.T) {
	if got := cosineQGrams("GARCIA", "GARCIA", 3); !almostEqual(got, 1.0) {
		t.Errorf("identical strings should score 1.0, got %v", got)
	}
	if got := cosineQGrams("GARCIA", "ZZZZZZ", 3); got != 0.0 {
		t.Errorf("disjoint trigrams should score 0.0, got %v", got)
	}
	if got := cosineQGrams("AB", "GARCIA", 3); got != 0.0 {
		t.Errorf("string shorter than q should score 0.0, got %v", got)
	}
}
