package metrics

import (
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_text_formatter/internal/core/domain"
)

func TestCounterConcurrent(t *testing.T) {
	c := NewCounter()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Observe(domain.OutcomeOK, time.Millisecond)
			}
		}()
	}
	wg.Wait()

	c.Observe(domain.OutcomeInvalidJSON, 0)
	c.Observe(domain.Outcome("unknown"), 0)

	assert.Equal(t, int64(802), c.Total())
	assert.Equal(t, int64(800), c.Count(domain.OutcomeOK))
	assert.Equal(t, int64(1), c.Count(domain.OutcomeInvalidJSON))
	assert.Equal(t, int64(0), c.Count(domain.OutcomeServerError))
	assert.Equal(t, int64(0), c.Count(domain.Outcome("unknown")))
}

func TestPrometheusObserver(t *testing.T) {
	p := NewPrometheus(DefaultPrometheusConfig())

	p.Observe(domain.OutcomeOK, 2*time.Millisecond)
	p.Observe(domain.OutcomeOK, time.Millisecond)
	p.Observe(domain.OutcomeInvalidFormat, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(p.requests.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.requests.WithLabelValues("invalid_format")))
	assert.Equal(t, 0.0, testutil.ToFloat64(p.requests.WithLabelValues("server_error")))

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `textformatter_requests_total{outcome="ok"} 2`)
}

func TestMultiFansOut(t *testing.T) {
	a, b := NewCounter(), NewCounter()
	m := Multi{a, b, Nop{}}

	m.Observe(domain.OutcomeServerError, 0)

	assert.Equal(t, int64(1), a.Count(domain.OutcomeServerError))
	assert.Equal(t, int64(1), b.Total())
}
