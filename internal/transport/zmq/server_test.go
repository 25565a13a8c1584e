package zmq

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_text_formatter/internal/adapters/metrics"
	"github.com/baditaflorin/go_text_formatter/internal/adapters/normalizer"
	"github.com/baditaflorin/go_text_formatter/internal/core/domain"
	"github.com/baditaflorin/go_text_formatter/internal/core/format"
	"github.com/baditaflorin/go_text_formatter/internal/handler"
)

// startServer runs a server on an ephemeral loopback port and returns a
// client for it. The server is stopped when the test ends.
func startServer(t *testing.T, counter *metrics.Counter) *Client {
	t.Helper()

	h := handler.New(
		format.NewFormatter(normalizer.NewOptimizedNormalizer()),
		handler.WithObserver(counter),
	)
	srv := NewServer(Endpoint("127.0.0.1", 0), h)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.ListenAndServe(ctx)
	}()

	addrCtx, addrCancel := context.WithTimeout(ctx, 5*time.Second)
	defer addrCancel()
	addr, err := srv.Addr(addrCtx)
	require.NoError(t, err)

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
	})

	return NewClient(fmt.Sprintf("tcp://%s", addr.String()), 5*time.Second)
}

func TestRoundTrip(t *testing.T) {
	counter := metrics.NewCounter()
	client := startServer(t, counter)
	ctx := context.Background()

	tests := []struct {
		name string
		req  domain.FormatRequest
		want domain.FormatResult
	}{
		{
			name: "sentence",
			req:  domain.FormatRequest{Text: "  hello world.  goodbye world.  ", FormatType: "sentence"},
			want: domain.FormatResult{FormattedText: "Hello world. Goodbye world."},
		},
		{
			name: "title",
			req:  domain.FormatRequest{Text: "  hello world  ", FormatType: "title"},
			want: domain.FormatResult{FormattedText: "Hello World"},
		},
		{
			name: "invalid",
			req:  domain.FormatRequest{Text: "  hello world  ", FormatType: "something_invalid"},
			want: domain.FormatResult{Error: "Invalid format_type: 'something_invalid'. Valid options: 'sentence', 'upper', 'lower', 'title'"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := client.Format(ctx, tc.req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	// The loop keeps serving after a malformed payload.
	body, err := client.Send(ctx, []byte("{not json"))
	require.NoError(t, err)
	assert.Contains(t, string(body), "Invalid JSON: ")

	got, err := client.Format(ctx, domain.FormatRequest{Text: "still  up", FormatType: "upper"})
	require.NoError(t, err)
	assert.Equal(t, "STILL UP", got.FormattedText)

	assert.Equal(t, int64(5), counter.Total())
}

func TestEndpoint(t *testing.T) {
	assert.Equal(t, "tcp://*:5555", Endpoint("*", DefaultPort))
	assert.Equal(t, "tcp://[::1]:6000", Endpoint("::1", 6000))
}

func TestListenAndServeBindError(t *testing.T) {
	h := handler.New(format.NewFormatter(normalizer.NewDefaultNormalizer()))
	err := NewServer("bogus://nowhere", h).ListenAndServe(context.Background())
	assert.Error(t, err)
}
