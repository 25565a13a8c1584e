// text_formatter.go
// Package textformatter normalizes whitespace in a text and re-cases it
// according to one of four modes:
//
//	sentence  capitalize the first character of every sentence (default)
//	upper     uppercase everything
//	lower     lowercase everything
//	title     capitalize the first letter of every word, lowercase the rest
//
// Every mode first collapses runs of whitespace into a single space and trims
// both ends. All functions are pure and safe for concurrent use.
package textformatter

import (
	"github.com/baditaflorin/go_text_formatter/internal/adapters/normalizer"
	"github.com/baditaflorin/go_text_formatter/internal/core/domain"
	"github.com/baditaflorin/go_text_formatter/internal/core/format"
	"github.com/baditaflorin/go_text_formatter/internal/ports"
)

// Mode is a formatting strategy.
type Mode = domain.Mode

// Supported modes.
const (
	Sentence = domain.Sentence
	Upper    = domain.Upper
	Lower    = domain.Lower
	Title    = domain.Title
)

// ErrInvalidFormatType is returned (wrapped) for any unknown format_type.
var ErrInvalidFormatType = domain.ErrInvalidFormatType

// TextFormatter formats text with a configurable whitespace normalizer.
type TextFormatter struct {
	formatter *format.Formatter
}

// TextFormatterOption defines a functional option for configuring TextFormatter.
type TextFormatterOption func(*textFormatterConfig)

type textFormatterConfig struct {
	Normalizer ports.Normalizer
}

// WithNormalizer sets a custom whitespace normalizer.
func WithNormalizer(n ports.Normalizer) TextFormatterOption {
	return func(cfg *textFormatterConfig) {
		cfg.Normalizer = n
	}
}

// WithOptimizedNormalizer selects the single-pass pooled normalizer.
func WithOptimizedNormalizer() TextFormatterOption {
	return func(cfg *textFormatterConfig) {
		cfg.Normalizer = normalizer.NewNormalizerFactory().CreateNormalizer(normalizer.OptimizedNormalizerType)
	}
}

// New creates a new TextFormatter instance.
func New(opts ...TextFormatterOption) *TextFormatter {
	cfg := &textFormatterConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Normalizer == nil {
		cfg.Normalizer = normalizer.NewDefaultNormalizer()
	}
	return &TextFormatter{formatter: format.NewFormatter(cfg.Normalizer)}
}

// Format applies the mode named by formatType. See ParseMode for the accepted tokens.
func (tf *TextFormatter) Format(text, formatType string) (string, error) {
	return tf.formatter.Format(text, formatType)
}

// FormatMode applies an already parsed mode. Only Sentence, Upper, Lower and
// Title are valid; any other value returns "" and ErrInvalidFormatType.
func (tf *TextFormatter) FormatMode(text string, mode Mode) (string, error) {
	return tf.formatter.FormatMode(text, mode)
}

var defaultFormatter = New()

// ParseMode resolves a case-insensitive format_type token; "" means Sentence.
func ParseMode(formatType string) (Mode, error) {
	return domain.ParseMode(formatType)
}

// NormalizeWhitespace collapses whitespace runs into single spaces and trims both ends.
func NormalizeWhitespace(text string) string {
	return defaultFormatter.formatter.Normalize(text)
}

// FormatSentence capitalizes the first character of every sentence.
func FormatSentence(text string) string {
	return defaultFormatter.formatter.Sentence(text)
}

// FormatUpper uppercases every character.
func FormatUpper(text string) string {
	return defaultFormatter.formatter.Upper(text)
}

// FormatLower lowercases every character.
func FormatLower(text string) string {
	return defaultFormatter.formatter.Lower(text)
}

// FormatTitle capitalizes the first letter of every word and lowercases the rest.
func FormatTitle(text string) string {
	return defaultFormatter.formatter.Title(text)
}

// Format applies the mode named by formatType using the default normalizer.
// On error the returned text is empty.
func Format(text, formatType string) (string, error) {
	return defaultFormatter.Format(text, formatType)
}
