package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/baditaflorin/go_titular_frequency/internal/pool"
	"github.com/baditaflorin/go_titular_frequency/internal/ports"
)

// DefaultNormalizer implements the canonical titular normalization:
// diacritics are stripped (NFD decomposition, combining marks removed),
// "Ø" folds to "O", "&" expands to the connective "Y", every remaining
// rune that is not an ASCII letter, digit or space is dropped, runs of
// whitespace collapse to a single space and the result is uppercased.
// The transformation is total and idempotent.
type DefaultNormalizer struct {
	builderPool *pool.StringBuilderPool
}

// NewDefaultNormalizer creates a new default normalizer.
func NewDefaultNormalizer() ports.Normalizer {
	return &DefaultNormalizer{
		builderPool: pool.NewStringBuilderPool(),
	}
}

// stripMarks removes combining diacritical marks after NFD decomposition,
// so that "Á" becomes "A" and "ñ" becomes "n".
func stripMarks(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, text)
	if err != nil {
		// The chain never fails on valid UTF-8; fall back to the input
		// so the normalizer stays total.
		return text
	}
	return stripped
}

// Normalize maps a raw titular to its canonical form.
func (n *DefaultNormalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	// Reuse a pooled builder across calls.
	sb := n.builderPool.Get()
	defer n.builderPool.Put(sb)

	sb.Grow(len(text))
	appendFolded(sb, stripMarks(text))
	return strings.TrimRight(sb.String(), " ")
}

// appendFolded writes the folded form of a mark-stripped string. Leading
// and doubled spaces are collapsed while writing; the caller trims the
// trailing one.
func appendFolded(sb *strings.Builder, text string) {
	lastWasSpace := true
	for _, r := range text {
		switch {
		case r == 'Ø' || r == 'ø':
			sb.WriteByte('O')
			lastWasSpace = false
		case r == '&':
			if !lastWasSpace {
				sb.WriteByte(' ')
			}
			sb.WriteByte('Y')
			sb.WriteByte(' ')
			lastWasSpace = true
		case unicode.IsSpace(r):
			if !lastWasSpace {
				sb.WriteByte(' ')
				lastWasSpace = true
			}
		case r >= '0' && r <= '9', r >= 'A' && r <= 'Z':
			sb.WriteByte(byte(r))
			lastWasSpace = false
		case r >= 'a' && r <= 'z':
			sb.WriteByte(byte(r) - ('a' - 'A'))
			lastWasSpace = false
		default:
			// Punctuation, symbols and non-ASCII leftovers are dropped.
		}
	}
}
