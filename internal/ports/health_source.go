package ports

import (
	"context"
	"frvn-service/internal/domain"
)

// Contract for retrieving the backend's reported health.
type HealthSource interface {
	// Return the resolved status, or an error when the request or its body is unusable.
	FetchHealth(ctx context.Context) (domain.HealthStatus, error)
}
