package middlewarectx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
)

type recordedRequest struct {
	method, route string
	code          int
}

type fakeRecorder struct {
	mu   sync.Mutex
	reqs []recordedRequest
}

func (f *fakeRecorder) HTTPRequest(method, route string, code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, recordedRequest{method, route, code})
}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRateLimitMiddleware(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := RateLimitMiddleware(log, 1, 2)(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimitMiddleware_Disabled(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := RateLimitMiddleware(log, 0, 0)(http.HandlerFunc(okHandler))

	for i := 0; i < 50; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestMetricsMiddleware(t *testing.T) {
	rec := &fakeRecorder{}

	r := chi.NewRouter()
	r.Use(MetricsMiddleware(rec))
	r.Get("/subscriptions/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/subscriptions/42", "/health"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, []recordedRequest{
		{http.MethodGet, "/subscriptions/{id}", http.StatusNotFound},
		{http.MethodGet, "/health", http.StatusOK},
	}, rec.reqs)
}
