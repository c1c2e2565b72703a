package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestObserveReorder(t *testing.T) {
	m := New()
	m.ObserveReorder("tasks", 3, nil)
	m.ObserveReorder("tasks", 2, errors.New("missing"))
	m.ObserveReorder("sections", 1, nil)

	body := scrape(t, m)
	assert.Contains(t, body, `paratus_reorder_batches_total{family="tasks",result="ok"} 1`)
	assert.Contains(t, body, `paratus_reorder_batches_total{family="tasks",result="error"} 1`)
	assert.Contains(t, body, `paratus_reorder_batches_total{family="sections",result="ok"} 1`)
	assert.Contains(t, body, `paratus_reorder_batch_size_count{family="tasks"} 2`)

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.ObserveReorder("tasks", 1, nil) })
}

func TestMiddleware(t *testing.T) {
	m := New()
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := scrape(t, m)
	assert.Contains(t, body, `http_requests_total{method="GET",path="/ping",status="200"} 1`)
	assert.Contains(t, body, `http_request_duration_seconds_count{method="GET",path="/ping"} 1`)
}
