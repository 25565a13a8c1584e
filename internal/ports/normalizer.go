package ports

// Normalizer defines the interface for whitespace normalization.
type Normalizer interface {
	Normalize(text string) string
}
