package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestMetricsMiddlewareCountsRequests(t *testing.T) {
	// A private registry keeps the test isolated from the global one.
	registry := prometheus.NewRegistry()
	globalMetricsMu.Lock()
	globalMetrics = initMetrics(MetricsConfig{
		Namespace: "test",
		Buckets:   prometheus.DefBuckets,
		Registry:  registry,
	})
	globalMetricsMu.Unlock()

	mw := Metrics()
	handler := mw(okHandler())

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/upcast", nil))
	}

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	var found bool
	for _, f := range families {
		if f.GetName() == "test_requests_total" {
			found = true
			if got := f.GetMetric()[0].GetCounter().GetValue(); got != 3 {
				t.Errorf("requests_total = %v, want 3", got)
			}
		}
	}
	if !found {
		t.Error("requests_total metric not registered")
	}
}

func TestStatusRecorderCapturesStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: rec, status: http.StatusOK}
	sr.WriteHeader(http.StatusTeapot)
	if sr.status != http.StatusTeapot {
		t.Errorf("status = %d, want %d", sr.status, http.StatusTeapot)
	}
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := Logging(logger)(okHandler())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/upcast", nil))

	out := buf.String()
	for _, want := range []string{"component=http", "method=POST", "path=/v1/upcast", "status=200"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
}

func TestTracingMiddlewarePassesThrough(t *testing.T) {
	// Without a configured provider the global tracer is a no-op; the
	// middleware must still serve the request.
	handler := Tracing()(okHandler())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestTracingFilterSkips(t *testing.T) {
	var served bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		served = true
	})
	handler := Tracing(WithRequestFilter(func(r *http.Request) bool { return false }))(inner)
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !served {
		t.Error("filtered request was not served")
	}
}
