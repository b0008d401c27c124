// titular_test.go
package titularfrequency

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Diacritic folding",
			input:    "JOSÉ MARÍA",
			expected: "JOSE MARIA",
		},
		{
			name:     "Lowercase input",
			input:    "jose maria",
			expected: "JOSE MARIA",
		},
		{
			name:     "Slashed O substitution",
			input:    "ØSCAR",
			expected: "OSCAR",
		},
		{
			name:     "Punctuation removal",
			input:    `"GARCÍA, S.A." (FILIAL)`,
			expected: "GARCIA SA FILIAL",
		},
		{
			name:     "Whitespace collapsing",
			input:    "  JUAN   PEREZ ",
			expected: "JUAN PEREZ",
		},
		{
			name:     "Ampersand expansion",
			input:    "NÚÑEZ & HIJOS",
			expected: "NUNEZ Y HIJOS",
		},
		{
			name:     "Enye folding",
			input:    "peña",
			expected: "PENA",
		},
		{
			name:     "Empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "Only punctuation",
			input:    `..,()"`,
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.input)
			if got != tc.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"JOSÉ MARÍA PÉREZ",
		`"GARCÍA, S.A." (FILIAL)`,
		"  ØSCAR   NÚÑEZ & HIJOS ",
		"jose perez",
		"",
	}
	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestNormalizeCaseInsensitive(t *testing.T) {
	if Normalize("abc") != "ABC" || Normalize("ABC") != "ABC" {
		t.Errorf("expected both casings of abc to normalize to ABC, got %q and %q",
			Normalize("abc"), Normalize("ABC"))
	}
}

func TestNewNormalizerSoft(t *testing.T) {
	soft := NewNormalizer(true)
	got := soft.Normalize("AGRÍCOLA DEL VALLE, S.A. DE C.V.")
	want := "AGRICOLA VALLE"
	if got != want {
		t.Errorf("soft normalization = %q, want %q", got, want)
	}
}
