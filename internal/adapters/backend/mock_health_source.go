package backend

import (
	"context"
	"sync/atomic"

	"frvn-service/internal/domain"
)

// MockHealthSource returns a fixed result and counts calls.
// When Gate is non-nil, FetchHealth blocks until Gate is closed or ctx is done.
type MockHealthSource struct {
	Status domain.HealthStatus
	Err    error
	Gate   chan struct{}

	calls atomic.Int32
}

func NewMockHealthSource(status domain.HealthStatus, err error) *MockHealthSource {
	return &MockHealthSource{Status: status, Err: err}
}

func (m *MockHealthSource) FetchHealth(ctx context.Context) (domain.HealthStatus, error) {
	m.calls.Add(1)

	if m.Gate != nil {
		select {
		case <-m.Gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if m.Err != nil {
		return "", m.Err
	}
	return m.Status, nil
}

func (m *MockHealthSource) Calls() int {
	return int(m.calls.Load())
}
