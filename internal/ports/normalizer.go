package ports

// Normalizer defines the interface for titular text normalization.
type Normalizer interface {
	Normalize(text string) string
}
