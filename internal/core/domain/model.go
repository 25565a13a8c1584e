package domain

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Mode is a closed set of formatting strategies.
type Mode int

const (
	// Sentence capitalizes the first character of every sentence.
	Sentence Mode = iota
	// Upper uppercases every character.
	Upper
	// Lower lowercases every character.
	Lower
	// Title capitalizes the first letter of every word and lowercases the rest.
	Title
)

// DefaultFormatType is used when a request does not name a mode.
const DefaultFormatType = "sentence"

var modeNames = map[Mode]string{
	Sentence: "sentence",
	Upper:    "upper",
	Lower:    "lower",
	Title:    "title",
}

// String returns the wire token of the mode.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ErrInvalidFormatType is matched by every error returned for an unknown format_type.
var ErrInvalidFormatType = errors.New("invalid format_type")

// InvalidFormatTypeError reports a format_type outside the closed set.
// Given holds the lowercased value as received.
type InvalidFormatTypeError struct {
	Given string
}

func (e *InvalidFormatTypeError) Error() string {
	return fmt.Sprintf("Invalid format_type: '%s'. Valid options: 'sentence', 'upper', 'lower', 'title'", e.Given)
}

// Is lets errors.Is match ErrInvalidFormatType.
func (e *InvalidFormatTypeError) Is(target error) bool {
	return target == ErrInvalidFormatType
}

// ParseMode resolves a format_type token. Matching is case-insensitive,
// and an empty token selects the default mode.
func ParseMode(formatType string) (Mode, error) {
	formatType = strings.ToLower(formatType)
	if formatType == "" {
		formatType = DefaultFormatType
	}

	switch formatType {
	case "sentence":
		return Sentence, nil
	case "upper":
		return Upper, nil
	case "lower":
		return Lower, nil
	case "title":
		return Title, nil
	default:
		return Sentence, &InvalidFormatTypeError{Given: formatType}
	}
}

// FormatRequest is the decoded request payload.
type FormatRequest struct {
	Text       string
	FormatType string
}

// FormatResult is the response payload. FormattedText is always encoded,
// Error only on failure.
type FormatResult struct {
	FormattedText string `json:"formatted_text"`
	Error         string `json:"error,omitempty"`
}

// Outcome classifies how a request was resolved.
type Outcome string

const (
	OutcomeOK            Outcome = "ok"
	OutcomeInvalidFormat Outcome = "invalid_format"
	OutcomeInvalidJSON   Outcome = "invalid_json"
	OutcomeServerError   Outcome = "server_error"
)

// Outcomes lists every outcome, in a stable order.
func Outcomes() []Outcome {
	return []Outcome{OutcomeOK, OutcomeInvalidFormat, OutcomeInvalidJSON, OutcomeServerError}
}
