package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/api/blog/{slug}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Post("/api/subscribe", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	r.Delete("/api/blog/{slug}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

func serve(r http.Handler, method, target string) int {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(method, target, http.NoBody))
	return rr.Code
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := newRouter()
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/blog/{slug}", "200"))

	serve(r, http.MethodGet, "/api/blog/first-post")
	serve(r, http.MethodGet, "/api/blog/second-post")

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/blog/{slug}", "200"))
	if after-before != 2 {
		t.Errorf("expected 2 requests under the route pattern, got %v", after-before)
	}
	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected duration observations")
	}
}

func TestMiddleware_StatusCodes(t *testing.T) {
	r := newRouter()
	tests := []struct {
		method string
		target string
		route  string
		status string
	}{
		{http.MethodPost, "/api/subscribe", "/api/subscribe", "429"},
		{http.MethodDelete, "/api/blog/x", "/api/blog/{slug}", "204"},
	}
	for _, tc := range tests {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			serve(r, tc.method, tc.target)
			if v := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(tc.method, tc.route, tc.status)); v < 1 {
				t.Errorf("expected a %s count for %s, got %v", tc.status, tc.route, v)
			}
		})
	}
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	r := newRouter()
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", unmatchedRoute, "404"))

	if code := serve(r, http.MethodGet, "/wp-admin/setup.php"); code != http.StatusNotFound {
		t.Fatalf("status = %d", code)
	}

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", unmatchedRoute, "404"))
	if after-before != 1 {
		t.Errorf("unmatched requests must share one label, delta %v", after-before)
	}
}

func TestMiddleware_InFlightReturnsToZero(t *testing.T) {
	r := newRouter()
	serve(r, http.MethodGet, "/api/blog/x")
	if v := testutil.ToFloat64(httpRequestsInFlight); v != 0 {
		t.Errorf("in flight = %v after the request finished", v)
	}
}

func TestStatusClass(t *testing.T) {
	tests := []struct {
		status int
		err    error
		want   string
	}{
		{200, nil, "2xx"},
		{404, nil, "4xx"},
		{503, nil, "5xx"},
		{0, http.ErrHandlerTimeout, "error"},
		{0, nil, "unknown"},
	}
	for _, tc := range tests {
		if got := statusClass(tc.status, tc.err); got != tc.want {
			t.Errorf("statusClass(%d, %v) = %q, want %q", tc.status, tc.err, got, tc.want)
		}
	}
}

func TestObserveDocstoreRequest(t *testing.T) {
	before := testutil.ToFloat64(DocstoreRequestsTotal.WithLabelValues("get", "2xx"))
	ObserveDocstoreRequest("get", 200, nil, 0)
	if got := testutil.ToFloat64(DocstoreRequestsTotal.WithLabelValues("get", "2xx")) - before; got != 1 {
		t.Errorf("delta = %v", got)
	}
}
