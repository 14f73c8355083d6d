package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	testCases := []struct {
		name       string
		method     string
		path       string
		statusCode int
	}{
		{
			name:       "normalizes record path",
			method:     http.MethodPut,
			path:       "/api/transactions/123",
			statusCode: http.StatusConflict,
		},
		{
			name:       "keeps non-matching path as-is",
			method:     http.MethodGet,
			path:       "/health",
			statusCode: http.StatusOK,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			httpRequestsTotal.Reset()
			httpRequestDuration.Reset()
			httpRequestsInFlight.Set(0)

			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				w.WriteHeader(tc.statusCode)
			})

			req := httptest.NewRequest(tc.method, tc.path, nil)
			rr := httptest.NewRecorder()

			Metrics(next).ServeHTTP(rr, req)

			if !handlerCalled {
				t.Fatalf("next handler was not invoked")
			}

			if got := testutil.ToFloat64(httpRequestsInFlight); got != 0 {
				t.Fatalf("expected in-flight gauge to return to 0, got %v", got)
			}

			normalized := normalizePath(tc.path)
			counter := httpRequestsTotal.WithLabelValues(tc.method, normalized, strconv.Itoa(tc.statusCode))
			if got := testutil.ToFloat64(counter); got != 1 {
				t.Fatalf("expected counter to be 1, got %v", got)
			}
		})
	}
}

func TestMetricsMiddlewareUsesRoutePattern(t *testing.T) {
	httpRequestsTotal.Reset()

	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/api/transactions/{id}", func(w http.ResponseWriter, r *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/transactions/7", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/transactions/8", nil))

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/transactions/{id}", "200")
	if got := testutil.ToFloat64(counter); got != 2 {
		t.Fatalf("expected both requests under the route pattern, got %v", got)
	}
}

func TestNormalizePath(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "record path",
			input:    "/api/transactions/42",
			expected: "/api/transactions/{id}",
		},
		{
			name:     "record path with suffix",
			input:    "/api/transactions/42/history",
			expected: "/api/transactions/{id}/history",
		},
		{
			name:     "collection path",
			input:    "/api/transactions",
			expected: "/api/transactions",
		},
		{
			name:     "collection path with trailing slash",
			input:    "/api/transactions/",
			expected: "/api/transactions/",
		},
		{
			name:     "non-matching path",
			input:    "/metrics",
			expected: "/metrics",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizePath(tc.input); got != tc.expected {
				t.Fatalf("normalizePath(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}
