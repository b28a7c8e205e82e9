// Package trainerworkload предоставляет маршруты для основного приложения.
package trainerworkload

import (
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/trainer-workload/internal/http/handlers/workload/health"
	"github.com/magabrotheeeer/trainer-workload/internal/http/handlers/workload/hours"
	"github.com/magabrotheeeer/trainer-workload/internal/http/handlers/workload/process"
	"github.com/magabrotheeeer/trainer-workload/internal/http/middlewarectx"
	"github.com/magabrotheeeer/trainer-workload/internal/lib/jwt"
	dispatchservice "github.com/magabrotheeeer/trainer-workload/internal/services/dispatch"
	workloadservice "github.com/magabrotheeeer/trainer-workload/internal/services/workload"

	"log/slog"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, dispatcher *dispatchservice.Dispatcher,
	workloadService *workloadservice.WorkloadService, maker jwt.Maker) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(maker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/trainings", process.New(logger, dispatcher).ServeHTTP)
			r.Get("/trainers/{username}/hours", hours.New(logger, workloadService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
