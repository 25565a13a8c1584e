// Package httpgw exposes the format contract over HTTP with fasthttp, next to
// health and Prometheus metrics endpoints.
package httpgw

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/baditaflorin/go_text_formatter/internal/adapters/logger"
	"github.com/baditaflorin/go_text_formatter/internal/core/domain"
	"github.com/baditaflorin/go_text_formatter/internal/handler"
	"github.com/baditaflorin/go_text_formatter/internal/ports"
)

// Default configuration
const (
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 10 * 1024 * 1024 // 10MB
)

// Gateway routes HTTP requests to the format handler.
type Gateway struct {
	handler *handler.Handler
	metrics fasthttp.RequestHandler
	logger  ports.Logger
	server  *fasthttp.Server
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger sets the access logger.
func WithLogger(l ports.Logger) Option {
	return func(g *Gateway) {
		g.logger = l
	}
}

// WithMetricsHandler serves h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(g *Gateway) {
		g.metrics = fasthttpadaptor.NewFastHTTPHandler(h)
	}
}

// New creates a Gateway around h.
func New(h *handler.Handler, opts ...Option) *Gateway {
	g := &Gateway{
		handler: h,
		logger:  logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.server = &fasthttp.Server{
		Handler:            g.requestHandler,
		Name:               "TextFormatter",
		ReadTimeout:        DefaultReadTimeout,
		WriteTimeout:       DefaultWriteTimeout,
		MaxRequestBodySize: DefaultMaxRequestSize,
	}
	return g
}

// ListenAndServe serves on addr until Shutdown is called.
func (g *Gateway) ListenAndServe(addr string) error {
	g.logger.Info("HTTP gateway listening", "address", addr)
	if err := g.server.ListenAndServe(addr); err != nil {
		return errors.Wrapf(err, "serve http on %s", addr)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (g *Gateway) Shutdown() error {
	return g.server.Shutdown()
}

func (g *Gateway) requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	switch string(ctx.Path()) {
	case "/health":
		g.handleHealthCheck(ctx)
	case "/format":
		g.handleFormat(ctx)
	case "/metrics":
		if g.metrics == nil {
			writeJSONError(ctx, fasthttp.StatusNotFound, "Not found")
			break
		}
		g.metrics(ctx)
	default:
		writeJSONError(ctx, fasthttp.StatusNotFound, "Not found")
	}

	g.logger.Debug("HTTP request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

func (g *Gateway) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBodyString(`{"status":"ok","time":"` + time.Now().Format(time.RFC3339) + `"}`)
}

func (g *Gateway) handleFormat(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		writeJSONError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	reply := g.handler.Handle(ctx.PostBody())

	ctx.SetContentType("application/json")
	ctx.SetStatusCode(statusFor(reply.Outcome))
	ctx.SetBody(reply.Body)
}

func statusFor(outcome domain.Outcome) int {
	switch outcome {
	case domain.OutcomeOK:
		return fasthttp.StatusOK
	case domain.OutcomeInvalidFormat, domain.OutcomeInvalidJSON:
		return fasthttp.StatusBadRequest
	default:
		return fasthttp.StatusInternalServerError
	}
}

// writeJSONError writes a contract-shaped error body.
func writeJSONError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, err := handler.Encode(domain.FormatResult{Error: message})
	if err != nil {
		body = []byte(`{"formatted_text":"","error":"Internal server error"}`)
		status = fasthttp.StatusInternalServerError
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
