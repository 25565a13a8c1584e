package ports

import "github.com/baditaflorin/go_text_formatter/internal/core/domain"

// Formatter re-cases text according to a format_type token.
type Formatter interface {
	Format(text, formatType string) (string, error)
	FormatMode(text string, mode domain.Mode) (string, error)
}
