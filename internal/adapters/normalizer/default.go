package normalizer

import (
	"strings"

	"github.com/baditaflorin/go_text_formatter/internal/ports"
)

// DefaultNormalizer implements the default whitespace normalization strategy.
type DefaultNormalizer struct{}

// NewDefaultNormalizer creates a new default normalizer.
func NewDefaultNormalizer() ports.Normalizer {
	return &DefaultNormalizer{}
}

// Normalize splits the text on runs of whitespace and rejoins the
// non-empty tokens with a single space.
func (n *DefaultNormalizer) Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
