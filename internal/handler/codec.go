package handler

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/baditaflorin/go_text_formatter/internal/core/domain"
)

// fallbackBody is sent when a response cannot be encoded.
const fallbackBody = `{"formatted_text": "", "error": "Server error: failed to encode response"}`

// InvalidJSONError reports a payload that is not well-formed JSON.
type InvalidJSONError struct {
	Err error
}

func (e *InvalidJSONError) Error() string {
	return "Invalid JSON: " + e.Err.Error()
}

func (e *InvalidJSONError) Unwrap() error {
	return e.Err
}

// Decode parses a request payload. Malformed JSON yields *InvalidJSONError;
// well-formed payloads with the wrong shape yield a plain error.
// A missing or non-string text is treated as "", a missing or null
// format_type as "".
func Decode(payload []byte) (domain.FormatRequest, error) {
	var raw interface{}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return domain.FormatRequest{}, &InvalidJSONError{Err: err}
	}

	obj, ok := raw.(map[string]interface{})
	if !ok {
		return domain.FormatRequest{}, errors.Errorf("request must be a JSON object, got %s", kindOf(raw))
	}

	var req domain.FormatRequest
	if text, ok := obj["text"].(string); ok {
		req.Text = text
	}

	switch v := obj["format_type"].(type) {
	case nil:
	case string:
		req.FormatType = v
	default:
		return domain.FormatRequest{}, errors.Errorf("format_type must be a string, got %s", kindOf(v))
	}

	return req, nil
}

// Encode serializes a result without HTML escaping.
func Encode(result domain.FormatResult) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return nil, errors.Wrap(err, "encode response")
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func kindOf(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return "unknown"
	}
}
