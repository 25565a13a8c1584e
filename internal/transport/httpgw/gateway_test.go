package httpgw

import (
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_text_formatter/internal/adapters/metrics"
	"github.com/baditaflorin/go_text_formatter/internal/adapters/normalizer"
	"github.com/baditaflorin/go_text_formatter/internal/core/format"
	"github.com/baditaflorin/go_text_formatter/internal/handler"
)

func newGateway() (*Gateway, *metrics.Prometheus) {
	prom := metrics.NewPrometheus(metrics.DefaultPrometheusConfig())
	h := handler.New(
		format.NewFormatter(normalizer.NewDefaultNormalizer()),
		handler.WithObserver(prom),
	)
	return New(h, WithMetricsHandler(prom.Handler())), prom
}

func do(g *Gateway, method, path, body string) *fasthttp.RequestCtx {
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	ctx.Request.SetBodyString(body)
	g.requestHandler(&ctx)
	return &ctx
}

func TestFormatEndpoint(t *testing.T) {
	g, _ := newGateway()

	tests := []struct {
		name   string
		body   string
		status int
		text   string
		errMsg string
	}{
		{name: "ok", body: `{"text": "  hello world  ", "format_type": "upper"}`, status: 200, text: "HELLO WORLD"},
		{name: "invalid format", body: `{"text": "x", "format_type": "emojis"}`, status: 400, errMsg: "Invalid format_type: 'emojis'. Valid options: 'sentence', 'upper', 'lower', 'title'"},
		{name: "invalid json", body: `{`, status: 400},
		{name: "not an object", body: `[1]`, status: 500},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := do(g, "POST", "/format", tc.body)
			assert.Equal(t, tc.status, ctx.Response.StatusCode())

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(ctx.Response.Body(), &body))
			assert.Equal(t, tc.text, body["formatted_text"])
			if tc.errMsg != "" {
				assert.Equal(t, tc.errMsg, body["error"])
			}
		})
	}
}

func TestFormatEndpointRequiresPost(t *testing.T) {
	g, _ := newGateway()

	ctx := do(g, "GET", "/format", "")
	assert.Equal(t, fasthttp.StatusMethodNotAllowed, ctx.Response.StatusCode())
}

func TestHealthAndNotFound(t *testing.T) {
	g, _ := newGateway()

	ctx := do(g, "GET", "/health", "")
	assert.Equal(t, 200, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), `"status":"ok"`)

	ctx = do(g, "GET", "/nope", "")
	assert.Equal(t, 404, ctx.Response.StatusCode())
}

func TestMetricsEndpoint(t *testing.T) {
	g, prom := newGateway()
	do(g, "POST", "/format", `{"text": "a"}`)

	ctx := do(g, "GET", "/metrics", "")
	assert.Equal(t, 200, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), `textformatter_requests_total{outcome="ok"} 1`)

	// One series per outcome, created up front.
	n, err := testutil.GatherAndCount(prom.Registry(), "textformatter_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestMetricsDisabled(t *testing.T) {
	h := handler.New(format.NewFormatter(normalizer.NewDefaultNormalizer()))
	ctx := do(New(h), "GET", "/metrics", "")
	assert.Equal(t, 404, ctx.Response.StatusCode())
}
