// Package format implements the text re-casing modes on top of a
// whitespace normalizer.
package format

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/baditaflorin/go_text_formatter/internal/core/domain"
	"github.com/baditaflorin/go_text_formatter/internal/pool"
	"github.com/baditaflorin/go_text_formatter/internal/ports"
)

// Formatter dispatches text to one of the formatting modes. It holds no
// per-call state and is safe for concurrent use.
type Formatter struct {
	normalizer ports.Normalizer
	builders   *pool.StringBuilderPool
}

// NewFormatter creates a Formatter that normalizes whitespace with n.
func NewFormatter(n ports.Normalizer) *Formatter {
	return &Formatter{
		normalizer: n,
		builders:   pool.NewStringBuilderPool(),
	}
}

// Normalize collapses whitespace runs into single spaces and trims both ends.
func (f *Formatter) Normalize(text string) string {
	return f.normalizer.Normalize(text)
}

// Format resolves formatType and applies the matching mode. On an unknown
// formatType the returned text is always empty.
func (f *Formatter) Format(text, formatType string) (string, error) {
	mode, err := domain.ParseMode(formatType)
	if err != nil {
		return "", err
	}
	return f.FormatMode(text, mode)
}

// FormatMode applies mode to text. A value outside the four declared modes
// yields "" and an error matching domain.ErrInvalidFormatType.
func (f *Formatter) FormatMode(text string, mode domain.Mode) (string, error) {
	switch mode {
	case domain.Sentence:
		return f.Sentence(text), nil
	case domain.Upper:
		return f.Upper(text), nil
	case domain.Lower:
		return f.Lower(text), nil
	case domain.Title:
		return f.Title(text), nil
	default:
		return "", &domain.InvalidFormatTypeError{Given: mode.String()}
	}
}

// Upper normalizes whitespace and uppercases every character.
func (f *Formatter) Upper(text string) string {
	// Casers are stateful, so each call gets its own.
	return cases.Upper(language.Und).String(f.normalizer.Normalize(text))
}

// Lower normalizes whitespace and lowercases every character.
func (f *Formatter) Lower(text string) string {
	return cases.Lower(language.Und).String(f.normalizer.Normalize(text))
}

// Sentence normalizes whitespace and uppercases the first character of every
// sentence. A sentence ends right after each '.', '!' or '?', so "..." yields
// three one-character sentences. Everything else is preserved.
func (f *Formatter) Sentence(text string) string {
	normalized := f.normalizer.Normalize(text)
	if normalized == "" {
		return ""
	}

	sb := f.builders.Get()
	defer f.builders.Put(sb)
	sb.Grow(len(normalized) + 8)

	start := 0
	for i := 0; i < len(normalized); i++ {
		if !isTerminator(normalized[i]) {
			continue
		}
		writeSpan(sb, normalized[start:i+1])
		start = i + 1
	}
	writeSpan(sb, normalized[start:])

	return sb.String()
}

// Title normalizes whitespace, then in every space-delimited word uppercases
// the first letter and lowercases everything else. Leading non-letters are
// kept, so "(hello" becomes "(Hello" and "3RD" becomes "3Rd".
func (f *Formatter) Title(text string) string {
	normalized := f.normalizer.Normalize(text)
	if normalized == "" {
		return ""
	}

	sb := f.builders.Get()
	defer f.builders.Put(sb)
	sb.Grow(len(normalized))

	for i, word := range strings.Split(normalized, " ") {
		if i > 0 {
			sb.WriteByte(' ')
		}
		capitalized := false
		for _, r := range word {
			if !capitalized && unicode.IsLetter(r) {
				sb.WriteRune(unicode.ToUpper(r))
				capitalized = true
				continue
			}
			sb.WriteRune(unicode.ToLower(r))
		}
	}

	return sb.String()
}

func isTerminator(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

// writeSpan trims span, capitalizes its first rune and appends it to sb,
// separated from any previous span by one space.
func writeSpan(sb *pool.StringBuilder, span string) {
	span = strings.TrimSpace(span)
	if span == "" {
		return
	}
	if sb.Len() > 0 {
		sb.WriteByte(' ')
	}

	r, size := utf8.DecodeRuneInString(span)
	if r == utf8.RuneError {
		sb.WriteString(span)
		return
	}
	sb.WriteRune(unicode.ToUpper(r))
	sb.WriteString(span[size:])
}
