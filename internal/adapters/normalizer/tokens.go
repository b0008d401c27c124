package normalizer

import (
	"strings"

	"github.com/baditaflorin/go_titular_frequency/internal/ports"
)

// Stopwords are connective tokens that carry no identity information in
// a titular ("JUNTA DE AGUAS DEL VALLE" vs "JUNTA AGUAS VALLE").
var Stopwords = map[string]struct{}{
	"DE": {}, "DEL": {}, "LA": {}, "EL": {}, "LOS": {}, "LAS": {},
	"Y": {}, "E": {}, "AL": {}, "A": {}, "EN": {}, "POR": {},
	"PARA": {}, "CON": {},
}

// MercantileTerms are corporate-form and institutional tokens common in
// Mexican water-rights titulars (S.A. de C.V. residue, ejidal and
// municipal qualifiers). They distinguish legal form, not the holder.
var MercantileTerms = map[string]struct{}{
	"SA": {}, "SAPI": {}, "CV": {}, "RL": {}, "SRL": {}, "SC": {},
	"AC": {}, "SCL": {}, "SNC": {}, "SPR": {},
	"SOCIEDAD": {}, "ANONIMA": {}, "RESPONSABILIDAD": {}, "LIMITADA": {},
	"PROMOTORA": {}, "INVERSION": {}, "COOPERATIVA": {}, "COOP": {},
	"CAPITAL": {}, "VARIABLE": {},
	"H": {}, "AYUNTAMIENTO": {}, "MUNICIPAL": {}, "MUNICIPIO": {},
	"LOC": {}, "EJIDO": {}, "COMUNIDAD": {}, "COLONIA": {},
	"DELEGACION": {}, "ALCALDIA": {},
}

// TokenFilterConfig controls the soft-standardization pass applied on
// top of a base normalizer.
type TokenFilterConfig struct {
	// DropStopwords removes connective tokens.
	DropStopwords bool
	// DropMercantile removes corporate-form and institutional tokens.
	DropMercantile bool
	// MinTokenLen drops tokens shorter than this many runes. A value of
	// 2 removes the single-letter residue of abbreviations like
	// "S.A. DE C.V.". Zero keeps everything.
	MinTokenLen int
	// JoinTokens removes the spaces between tokens entirely, for the
	// strictest comparisons.
	JoinTokens bool
}

// TokenFilterNormalizer wraps a base normalizer and filters the
// resulting tokens. It keeps the NormalizedTitle invariant: the output
// is still uppercase alphanumeric with single spaces.
type TokenFilterNormalizer struct {
	base   ports.Normalizer
	config TokenFilterConfig
}

// NewTokenFilterNormalizer creates a token-filtering normalizer on top
// of base. A nil base uses the default normalizer.
func NewTokenFilterNormalizer(base ports.Normalizer, config TokenFilterConfig) ports.Normalizer {
	if base == nil {
		base = NewDefaultNormalizer()
	}
	return &TokenFilterNormalizer{base: base, config: config}
}

// Normalize applies the base normalization and then the token filters.
func (n *TokenFilterNormalizer) Normalize(text string) string {
	normalized := n.base.Normalize(text)
	if normalized == "" {
		return ""
	}

	tokens := strings.Split(normalized, " ")
	kept := tokens[:0]
	for _, tok := range tokens {
		if n.config.DropMercantile {
			if _, ok := MercantileTerms[tok]; ok {
				continue
			}
		}
		if n.config.DropStopwords {
			if _, ok := Stopwords[tok]; ok {
				continue
			}
		}
		if n.config.MinTokenLen > 0 && len([]rune(tok)) < n.config.MinTokenLen {
			continue
		}
		kept = append(kept, tok)
	}

	if n.config.JoinTokens {
		return strings.Join(kept, "")
	}
	return strings.Join(kept, " ")
}
