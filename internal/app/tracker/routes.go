package tracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/subscription-tracker/internal/config"
	// Регистрация OpenAPI-описания для /docs.
	_ "github.com/magabrotheeeer/subscription-tracker/internal/docs"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/health"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/payment/paymentcreate"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/payment/paymentlist"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/stats"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/create"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/due"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/list"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/read"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/remove"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/update"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, core *Core, cfg config.HTTPServer) {
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.MetricsMiddleware(core.Metrics),
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger, cfg.RequestRate(), cfg.RateBurst))

		r.Get("/health", health.New(logger, core.DB).ServeHTTP)
		r.Get("/stats", stats.New(logger, core.Stats).ServeHTTP)

		r.Route("/subscriptions", func(r chi.Router) {
			r.Post("/", create.New(logger, core.Subscriptions).ServeHTTP)
			r.Get("/", list.New(logger, core.Subscriptions).ServeHTTP)
			r.Get("/due", due.New(logger, core.Subscriptions).ServeHTTP)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", read.New(logger, core.Subscriptions).ServeHTTP)
				r.Delete("/", remove.New(logger, core.Subscriptions).ServeHTTP)
				r.Post("/archive", update.NewArchive(logger, core.Subscriptions).ServeHTTP)
				r.Post("/unarchive", update.NewUnarchive(logger, core.Subscriptions).ServeHTTP)
				r.Post("/pay", paymentcreate.New(logger, core.Billing).ServeHTTP)
				r.Get("/payments", paymentlist.New(logger, core.Subscriptions).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.HandlerFor(core.Metrics.Registry, promhttp.HandlerOpts{}))
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
