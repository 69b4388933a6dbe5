package api

import (
	"net/http"

	"frvn-service/internal/api/handlers"
	"frvn-service/internal/platform/obs"
	"frvn-service/internal/services"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RouterConfig carries the dependencies handlers need.
type RouterConfig struct {
	ProjectName string
	Env         string
	Health      *services.HealthService
	Page        *handlers.PageHandler
	Logger      *zap.Logger
	Metrics     *obs.Metrics
	Gatherer    prometheus.Gatherer
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	if cfg.Metrics != nil {
		// Use only covers matched routes.
		r.Use(metricsMiddleware(cfg.Metrics))
		r.NotFoundHandler = metricsMiddleware(cfg.Metrics)(r.NotFoundHandler)
	}

	healthHandler := &handlers.HealthHandler{Service: cfg.Health}
	infoHandler := &handlers.ServiceInfoHandler{ProjectName: cfg.ProjectName, Env: cfg.Env}

	r.HandleFunc("/healthz", healthHandler.Get)
	r.HandleFunc("/api/healthz", healthHandler.Get)
	r.HandleFunc("/api/", infoHandler.Get)
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}
	if cfg.Page != nil {
		r.HandleFunc("/", cfg.Page.Show)
	}

	return alice.New(requestIDMiddleware(logger), loggingMiddleware).Then(r)
}
