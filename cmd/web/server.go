package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/histafrica/sharedkernel/application/seedwork"
	"github.com/histafrica/sharedkernel/domain/category"
)

func NewServer(
	logger *slog.Logger,
	registry *prometheus.Registry,
	categories category.Repository,
	clock seedwork.Clock,
) http.Handler {
	m := newMetrics(registry)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(metricsMiddleware(m))

	addRoutes(r, logger, registry, m, categories, clock)
	return r
}

func requestLoggerMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.InfoContext(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status(ww),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

func addRoutes(
	r chi.Router,
	logger *slog.Logger,
	registry *prometheus.Registry,
	m *metrics,
	categories category.Repository,
	clock seedwork.Clock,
) {
	h := &categoryHandler{logger: logger, metrics: m, categories: categories, clock: clock}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}
