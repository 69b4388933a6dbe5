package services

import (
	"context"
	"time"

	"frvn-service/internal/domain"
	"frvn-service/internal/platform/obs"
	"frvn-service/internal/ports"

	"go.uber.org/zap"
)

// Per-checker bound so a hung dependency cannot stall the health route.
const checkTimeout = 2 * time.Second

// HealthReport is the backend's answer to a health request.
type HealthReport struct {
	Status       domain.HealthStatus
	Dependencies map[string]string
}

// HealthService aggregates dependency checks into a HealthReport.
type HealthService struct {
	Checkers []ports.DependencyChecker
	Logger   *zap.Logger
}

func NewHealthService(logger *zap.Logger, checkers ...ports.DependencyChecker) *HealthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthService{Checkers: checkers, Logger: logger}
}

// Report runs every checker in order. The status is degraded if any fails.
// With no checkers the report carries only the default status.
func (s *HealthService) Report(ctx context.Context) HealthReport {
	report := HealthReport{Status: domain.StatusDefault}
	if len(s.Checkers) == 0 {
		return report
	}

	report.Dependencies = make(map[string]string, len(s.Checkers))
	for _, c := range s.Checkers {
		err := s.check(ctx, c)
		if err != nil {
			report.Status = domain.StatusDegraded
			report.Dependencies[c.Name()] = err.Error()
			continue
		}
		report.Dependencies[c.Name()] = string(domain.StatusDefault)
	}

	return report
}

func (s *HealthService) check(ctx context.Context, c ports.DependencyChecker) (err error) {
	defer obs.Time(ctx, s.Logger, "health.check."+c.Name())(&err)

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	return c.Check(ctx)
}
