// Package handler turns a raw request payload into exactly one response
// payload: decode, format, encode. Every failure becomes a structured
// error response.
package handler

import (
	"time"

	"github.com/pkg/errors"

	"github.com/baditaflorin/go_text_formatter/internal/adapters/logger"
	"github.com/baditaflorin/go_text_formatter/internal/adapters/metrics"
	"github.com/baditaflorin/go_text_formatter/internal/core/domain"
	"github.com/baditaflorin/go_text_formatter/internal/ports"
)

// Reply is the result of handling one request.
type Reply struct {
	Body    []byte
	Result  domain.FormatResult
	Outcome domain.Outcome
}

// Handler decodes requests, formats text and encodes responses.
// It is stateless and safe for concurrent use.
type Handler struct {
	formatter ports.Formatter
	observer  ports.Observer
	logger    ports.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithObserver sets the observer notified after every request.
func WithObserver(o ports.Observer) Option {
	return func(h *Handler) {
		h.observer = o
	}
}

// WithLogger sets the logger used for unexpected failures.
func WithLogger(l ports.Logger) Option {
	return func(h *Handler) {
		h.logger = l
	}
}

// New creates a Handler around formatter.
func New(formatter ports.Formatter, opts ...Option) *Handler {
	h := &Handler{
		formatter: formatter,
		observer:  metrics.Nop{},
		logger:    logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle processes one payload and always returns a reply.
func (h *Handler) Handle(payload []byte) (reply Reply) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			reply = h.respond(domain.OutcomeServerError, serverError(errors.Errorf("%v", r)))
		}
		h.observer.Observe(reply.Outcome, time.Since(start))
	}()

	req, err := Decode(payload)
	if err != nil {
		var invalid *InvalidJSONError
		if errors.As(err, &invalid) {
			return h.respond(domain.OutcomeInvalidJSON, domain.FormatResult{Error: invalid.Error()})
		}
		return h.respond(domain.OutcomeServerError, serverError(err))
	}

	formatted, err := h.formatter.Format(req.Text, req.FormatType)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFormatType) {
			return h.respond(domain.OutcomeInvalidFormat, domain.FormatResult{Error: err.Error()})
		}
		return h.respond(domain.OutcomeServerError, serverError(err))
	}

	return h.respond(domain.OutcomeOK, domain.FormatResult{FormattedText: formatted})
}

func (h *Handler) respond(outcome domain.Outcome, result domain.FormatResult) Reply {
	if outcome == domain.OutcomeServerError {
		h.logger.Error("Request failed", "error", result.Error)
	}

	body, err := Encode(result)
	if err != nil {
		h.logger.Error("Error marshaling JSON response", "error", err)
		return Reply{
			Body:    []byte(fallbackBody),
			Result:  domain.FormatResult{Error: "Server error: failed to encode response"},
			Outcome: domain.OutcomeServerError,
		}
	}

	return Reply{Body: body, Result: result, Outcome: outcome}
}

func serverError(err error) domain.FormatResult {
	return domain.FormatResult{Error: "Server error: " + err.Error()}
}
