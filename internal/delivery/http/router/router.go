package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/user/mina-service/internal/delivery/http/handler"
	"github.com/user/mina-service/internal/delivery/http/middleware"
	"github.com/user/mina-service/pkg/metrics"
)

func New(h *handler.Handler, log *zap.Logger, requestTimeout time.Duration) http.Handler {
	metrics.Init()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	if requestTimeout > 0 {
		r.Use(chimw.Timeout(requestTimeout))
	}

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HandleHealthCheck)
		r.Get("/search", h.HandleSearchQuery)
		r.Post("/search", h.HandleSearchBody)
		r.Post("/extract", h.HandleExtract)
		r.Get("/insights", h.HandleInsights)
	})

	return r
}
