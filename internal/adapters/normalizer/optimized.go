package normalizer

import (
	"strings"

	"github.com/baditaflorin/go_titular_frequency/internal/pool"
	"github.com/baditaflorin/go_titular_frequency/internal/ports"
)

// ascii table actions
const (
	actionDrop byte = iota
	actionSpace
	actionKeep
	actionUpper
	actionAmpersand
)

// OptimizedNormalizer implements the same normalization as
// DefaultNormalizer with a precomputed ASCII decision table and buffer
// pooling for the common all-ASCII case.
type OptimizedNormalizer struct {
	asciiTable  [128]byte
	bytePool    *pool.BufferPool
	builderPool *pool.StringBuilderPool
}

// NewOptimizedNormalizer creates a new optimized normalizer
func NewOptimizedNormalizer() ports.Normalizer {
	n := &OptimizedNormalizer{
		bytePool:    pool.NewBufferPool(8192), // 8K bytes initial capacity
		builderPool: pool.NewStringBuilderPool(),
	}

	for i := 0; i < 128; i++ {
		b := byte(i)
		switch {
		case b >= '0' && b <= '9', b >= 'A' && b <= 'Z':
			n.asciiTable[i] = actionKeep
		case b >= 'a' && b <= 'z':
			n.asciiTable[i] = actionUpper
		case b == ' ', b == '\t', b == '\n', b == '\v', b == '\f', b == '\r':
			n.asciiTable[i] = actionSpace
		case b == '&':
			n.asciiTable[i] = actionAmpersand
		default:
			n.asciiTable[i] = actionDrop
		}
	}

	return n
}

// Normalize maps a raw titular to its canonical form.
func (n *OptimizedNormalizer) Normalize(text string) string {
	// Fast path for empty strings
	if len(text) == 0 {
		return ""
	}

	// Check for ASCII-only string first (optimization)
	asciiOnly := true
	for i := 0; i < len(text); i++ {
		if text[i] >= 128 {
			asciiOnly = false
			break
		}
	}

	if !asciiOnly {
		// Diacritics and special letters need the transform chain;
		// delegate to the rune-based path.
		sb := n.builderPool.Get()
		defer n.builderPool.Put(sb)

		sb.Grow(len(text))
		appendFolded(sb, stripMarks(text))
		return strings.TrimRight(sb.String(), " ")
	}

	// Get a reusable buffer from the pool
	buffer := n.bytePool.Get()
	defer n.bytePool.Put(buffer)

	// Ensure the buffer has adequate capacity
	if cap(*buffer) < len(text)+2 {
		*buffer = make([]byte, 0, len(text)+2)
	}
	*buffer = (*buffer)[:0] // Reset length while keeping capacity

	lastWasSpace := true
	for i := 0; i < len(text); i++ {
		b := text[i]
		switch n.asciiTable[b] {
		case actionKeep:
			*buffer = append(*buffer, b)
			lastWasSpace = false
		case actionUpper:
			*buffer = append(*buffer, b-('a'-'A'))
			lastWasSpace = false
		case actionSpace:
			if !lastWasSpace {
				*buffer = append(*buffer, ' ')
				lastWasSpace = true
			}
		case actionAmpersand:
			if !lastWasSpace {
				*buffer = append(*buffer, ' ')
			}
			*buffer = append(*buffer, 'Y', ' ')
			lastWasSpace = true
		case actionDrop:
			// skip
		}
	}

	// Trim the single trailing space left by a collapse or "&".
	for len(*buffer) > 0 && (*buffer)[len(*buffer)-1] == ' ' {
		*buffer = (*buffer)[:len(*buffer)-1]
	}

	return string(*buffer)
}
