package normalizer

import (
	"unicode"
	"unicode/utf8"

	"github.com/baditaflorin/go_text_formatter/internal/pool"
	"github.com/baditaflorin/go_text_formatter/internal/ports"
)

// OptimizedNormalizer collapses whitespace in a single pass over the input,
// using a lookup table for ASCII and a pooled output buffer.
type OptimizedNormalizer struct {
	// Pre-computed whitespace table for ASCII characters (0-127)
	asciiSpace [utf8.RuneSelf]bool

	bytePool *pool.BufferPool
}

// NewOptimizedNormalizer creates a new optimized normalizer
func NewOptimizedNormalizer() ports.Normalizer {
	n := &OptimizedNormalizer{
		bytePool: pool.NewBufferPool(4096),
	}

	for i := 0; i < utf8.RuneSelf; i++ {
		n.asciiSpace[i] = unicode.IsSpace(rune(i))
	}

	return n
}

// Normalize produces the same output as DefaultNormalizer without
// allocating the intermediate token slice.
func (n *OptimizedNormalizer) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}

	buffer := n.bytePool.Get()
	defer n.bytePool.Put(buffer)

	if cap(*buffer) < len(text) {
		*buffer = make([]byte, 0, len(text))
	}
	out := (*buffer)[:0]

	// A separator is only emitted once the next token starts, which
	// trims both ends for free.
	pendingSpace := false
	for i := 0; i < len(text); {
		b := text[i]
		if b < utf8.RuneSelf {
			if n.asciiSpace[b] {
				pendingSpace = len(out) > 0
			} else {
				if pendingSpace {
					out = append(out, ' ')
					pendingSpace = false
				}
				out = append(out, b)
			}
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(r) {
			pendingSpace = len(out) > 0
		} else {
			if pendingSpace {
				out = append(out, ' ')
				pendingSpace = false
			}
			out = append(out, text[i:i+size]...)
		}
		i += size
	}

	*buffer = out
	return string(out)
}

// NormalizerFactory creates the appropriate normalizer based on performance requirements
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// NormalizerType selects a normalizer implementation.
type NormalizerType int

const (
	// DefaultNormalizerType splits and rejoins with strings.Fields
	DefaultNormalizerType NormalizerType = iota
	// OptimizedNormalizerType uses a lookup table and buffer pooling
	OptimizedNormalizerType
)

// CreateNormalizer creates a normalizer of the specified type
func (f *NormalizerFactory) CreateNormalizer(normalizerType NormalizerType) ports.Normalizer {
	switch normalizerType {
	case OptimizedNormalizerType:
		return NewOptimizedNormalizer()
	default:
		return NewDefaultNormalizer()
	}
}
