package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestMiddlewareCountsRequests(t *testing.T) {
	m := NewHTTPMetrics()

	r := chi.NewRouter()
	r.Use(m.Middleware())
	r.Get("/all-estimates", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/all-estimates", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	scrape := httptest.NewRecorder()
	m.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := scrape.Body.String()
	if !strings.Contains(body, "http_requests_total") {
		t.Fatalf("expected counter in scrape output:\n%s", body)
	}
	if !strings.Contains(body, `route="/all-estimates"`) {
		t.Fatalf("expected route label in scrape output:\n%s", body)
	}
}

func TestNilMetricsMiddlewarePassesThrough(t *testing.T) {
	var m *HTTPMetrics
	handler := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected passthrough status, got %d", rec.Code)
	}
}
