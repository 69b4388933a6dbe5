package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"frvn-service/internal/adapters/backend"
	"frvn-service/internal/adapters/database"
	"frvn-service/internal/api"
	"frvn-service/internal/api/handlers"
	"frvn-service/internal/config"
	"frvn-service/internal/platform/db"
	"frvn-service/internal/platform/obs"
	"frvn-service/internal/ports"
	"frvn-service/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// Server is the assembled HTTP service.
type Server struct {
	Settings config.Settings
	Logger   *zap.Logger
	HTTP     *http.Server

	db *sql.DB
}

// BuildServer wires concrete adapters behind ports and prepares the HTTP server.
// The database is only opened when DATABASE_URL is set.
func BuildServer(ctx context.Context, settings config.Settings, logger *zap.Logger) (*Server, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := obs.NewMetrics(reg)

	s := &Server{Settings: settings, Logger: logger}

	var checkers []ports.DependencyChecker
	if settings.DatabaseURL != "" {
		conn, err := db.Open(ctx, settings.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("build server: %w", err)
		}
		s.db = conn
		checkers = append(checkers, database.NewSQLChecker(conn))
		logger.Info("database health check enabled", zap.String("driver", db.DriverFor(settings.DatabaseURL)))
	}

	backendURL := settings.BackendURL
	if backendURL == "" {
		backendURL = settings.LocalURL()
	}

	client := backend.NewHTTPClient(settings.HealthTimeout)
	page := &handlers.PageHandler{
		Sources: func(origin string) (ports.HealthSource, error) {
			return backend.NewHTTPHealthSource(client, origin, logger)
		},
		BackendURL: backendURL,
		RenderWait: settings.RenderWait,
		Metrics:    metrics,
	}

	router := api.NewRouter(api.RouterConfig{
		ProjectName: settings.ProjectName,
		Env:         settings.Env,
		Health:      services.NewHealthService(logger, checkers...),
		Page:        page,
		Logger:      logger,
		Metrics:     metrics,
		Gatherer:    reg,
	})

	s.HTTP = &http.Server{
		Addr:              settings.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      settings.RenderWait + settings.HealthTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s, nil
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("server listening", zap.String("addr", s.HTTP.Addr), zap.String("env", s.Settings.Env))
		errCh <- s.HTTP.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("run server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.Logger.Info("server shutting down")
	if err := s.HTTP.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("run server: shutdown: %w", err)
	}
	return nil
}

func (s *Server) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
