package middlewarectx

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// RequestRecorder учитывает обработанные запросы.
type RequestRecorder interface {
	HTTPRequest(method, route string, code int)
}

// MetricsMiddleware передаёт в rec метод, шаблон маршрута и код ответа.
// Шаблон берётся из контекста chi после обработки, чтобы не плодить метки по ID.
func MetricsMiddleware(rec RequestRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			code := ww.Status()
			if code == 0 {
				code = http.StatusOK
			}
			rec.HTTPRequest(r.Method, route, code)
		})
	}
}
