package normalizer

import (
	"sync"
	"testing"
)

func TestVariantsAgree(t *testing.T) {
	def := NewDefaultNormalizer()
	opt := NewOptimizedNormalizer()

	inputs := []string{
		"",
		"JOSE PEREZ",
		"josé maría pérez garcía",
		`"GARCÍA, S.A." (FILIAL)`,
		"ØSCAR NÚÑEZ & HIJOS",
		"  JUAN   PEREZ ",
		"EJIDO SAN JUAN (MUNICIPIO DE TEPIC)",
		"H. AYUNTAMIENTO DE CULIACÁN",
		"1A PRIVADA DE LOS NOGALES #12",
		"müller & söhne",
		"&",
		"...",
		"\tcolumna\ncon saltos\r\n",
	}

	for _, input := range inputs {
		d := def.Normalize(input)
		o := opt.Normalize(input)
		if d != o {
			t.Errorf("variants disagree for %q: default %q, optimized %q", input, d, o)
		}
	}
}

func TestDefaultNormalize(t *testing.T) {
	n := NewDefaultNormalizer()

	tests := []struct {
		input    string
		expected string
	}{
		{"Á É Í Ó Ú Ü Ñ", "A E I O U U N"},
		{"ØSCAR", "OSCAR"},
		{"øscar", "OSCAR"},
		{"PÉREZ & GARCÍA", "PEREZ Y GARCIA"},
		{"A&B", "A Y B"},
		{"S.A. DE C.V.", "SA DE CV"},
		{"  doble   espacio  ", "DOBLE ESPACIO"},
		{"curly “quotes” and – dashes", "CURLY QUOTES AND DASHES"},
		{"número 12-B", "NUMERO 12B"},
		{"& SOLO", "Y SOLO"},
		{"SOLO &", "SOLO Y"},
	}

	for _, tc := range tests {
		if got := n.Normalize(tc.input); got != tc.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	factory := NewNormalizerFactory()
	for _, typ := range []NormalizerType{DefaultNormalizerType, OptimizedNormalizerType, SoftStandardNormalizerType} {
		n := factory.CreateNormalizer(typ)
		for _, input := range []string{
			"JOSÉ MARÍA PÉREZ GARCÍA",
			`"AGRÍCOLA DEL VALLE, S.A. DE C.V."`,
			"ØSCAR   NÚÑEZ & HIJOS",
		} {
			once := n.Normalize(input)
			twice := n.Normalize(once)
			if once != twice {
				t.Errorf("type %d not idempotent for %q: first %q, second %q", typ, input, once, twice)
			}
		}
	}
}

func TestNormalizeConcurrent(t *testing.T) {
	// Both variants share pooled builders across goroutines; concurrent
	// callers must still get independent, correct results.
	for name, n := range map[string]interface{ Normalize(string) string }{
		"default":   NewDefaultNormalizer(),
		"optimized": NewOptimizedNormalizer(),
	} {
		t.Run(name, func(t *testing.T) {
			inputs := map[string]string{
				"JOSÉ MARÍA PÉREZ":        "JOSE MARIA PEREZ",
				"GARCIA HNOS. S.A.":       "GARCIA HNOS SA",
				"ØSCAR NÚÑEZ & HIJOS":     "OSCAR NUNEZ Y HIJOS",
				"  comisión   de  aguas ": "COMISION DE AGUAS",
			}

			var wg sync.WaitGroup
			errs := make(chan string, 64)
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < 200; j++ {
						for input, want := range inputs {
							if got := n.Normalize(input); got != want {
								select {
								case errs <- got + " != " + want:
								default:
								}
								return
							}
						}
					}
				}()
			}
			wg.Wait()
			close(errs)
			for e := range errs {
				t.Errorf("concurrent normalization mismatch: %s", e)
			}
		})
	}
}

func TestTokenFilterNormalizer(t *testing.T) {
	tests := []struct {
		name     string
		config   TokenFilterConfig
		input    string
		expected string
	}{
		{
			name:     "Stopwords dropped",
			config:   TokenFilterConfig{DropStopwords: true},
			input:    "JUNTA DE AGUAS DEL VALLE",
			expected: "JUNTA AGUAS VALLE",
		},
		{
			name:     "Mercantile terms dropped",
			config:   TokenFilterConfig{DropMercantile: true},
			input:    "AGRICOLA SA CV",
			expected: "AGRICOLA",
		},
		{
			name:     "Single letter residue dropped",
			config:   TokenFilterConfig{MinTokenLen: 2},
			input:    "GARCIA S A DE C V",
			expected: "GARCIA DE",
		},
		{
			name:     "Joined tokens",
			config:   TokenFilterConfig{JoinTokens: true},
			input:    "JUAN PEREZ",
			expected: "JUANPEREZ",
		},
		{
			name: "Everything normalizes away",
			config: TokenFilterConfig{
				DropStopwords:  true,
				DropMercantile: true,
				MinTokenLen:    2,
			},
			input:    "S.A. DE C.V.",
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n := NewTokenFilterNormalizer(nil, tc.config)
			if got := n.Normalize(tc.input); got != tc.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}
