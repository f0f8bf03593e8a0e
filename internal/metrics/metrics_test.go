package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsRequests(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/employees/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/employees/:id", "204"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees/abc", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	after := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/employees/:id", "204"))
	assert.Equal(t, before+1, after)
}

func TestObserveUpstreamAndFallback(t *testing.T) {
	before := testutil.ToFloat64(upstreamCalls.WithLabelValues("find_all", "ok"))
	ObserveUpstream("find_all", "ok", 20*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(upstreamCalls.WithLabelValues("find_all", "ok")))

	fb := testutil.ToFloat64(upstreamFallbacks.WithLabelValues("find_by_id"))
	RecordFallback("find_by_id")
	assert.Equal(t, fb+1, testutil.ToFloat64(upstreamFallbacks.WithLabelValues("find_by_id")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	ObserveUpstream("create", "ok", time.Millisecond)

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "employee_api_upstream_calls_total")
}
