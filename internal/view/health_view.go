package view

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"sync"

	"frvn-service/internal/domain"
	"frvn-service/internal/platform/obs"
	"frvn-service/internal/ports"

	"go.uber.org/zap"
)

//go:embed templates/health.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/health.html"))

type pageData struct {
	Title string
	Line  string
}

// HealthView displays backend liveness.
//
// A view starts with the placeholder status. Mount issues a single request
// to its HealthSource; the first result moves the view to a terminal state.
// Unmount cancels the request, and any result arriving afterwards is dropped.
// A view instance is never remounted.
type HealthView struct {
	source  ports.HealthSource
	logger  *zap.Logger
	metrics *obs.Metrics

	mu      sync.Mutex
	status  domain.HealthStatus
	mounted bool
	cancel  context.CancelFunc

	mountOnce sync.Once
	done      chan struct{}
}

// NewHealthView creates an unmounted view. logger and metrics may be nil.
func NewHealthView(source ports.HealthSource, logger *zap.Logger, metrics *obs.Metrics) *HealthView {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthView{
		source:  source,
		logger:  logger,
		metrics: metrics,
		status:  domain.StatusPlaceholder,
		done:    make(chan struct{}),
	}
}

// Mount schedules the health request. Only the first call has any effect.
func (v *HealthView) Mount(ctx context.Context) {
	v.mountOnce.Do(func() {
		fetchCtx, cancel := context.WithCancel(ctx)

		v.mu.Lock()
		v.mounted = true
		v.cancel = cancel
		v.mu.Unlock()

		go v.fetch(fetchCtx)
	})
}

func (v *HealthView) fetch(ctx context.Context) {
	defer close(v.done)

	status, err := v.source.FetchHealth(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	// A canceled mount context means the owner is tearing the view down.
	if !v.mounted || ctx.Err() != nil {
		v.metrics.ObserveFetch(obs.OutcomeDiscarded)
		v.logger.Debug("health result discarded after unmount", zap.String("req_id", obs.RequestID(ctx)))
		return
	}

	if err != nil {
		v.status = domain.StatusUnavailable
		v.metrics.ObserveFetch(obs.OutcomeFailed)
		return
	}

	v.status = status
	v.metrics.ObserveFetch(obs.OutcomeResolved)
}

// Unmount tears the view down. The state it holds at this point is final.
func (v *HealthView) Unmount() {
	// An unmounted view cannot be mounted later.
	v.mountOnce.Do(func() {})

	v.mu.Lock()
	defer v.mu.Unlock()

	v.mounted = false
	if v.cancel != nil {
		v.cancel()
	}
}

func (v *HealthView) Status() domain.HealthStatus {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

// Text is the health line as displayed.
func (v *HealthView) Text() string {
	return domain.Line(v.Status())
}

// Done is closed once the mounted request has settled, whether or not its
// result was applied. It never closes for a view that was not mounted.
func (v *HealthView) Done() <-chan struct{} {
	return v.done
}

// Render writes the page markup for the current state. It never issues a request.
func (v *HealthView) Render(w io.Writer) error {
	if w == nil {
		return errors.New("render health view: writer is nil")
	}

	data := pageData{
		Title: domain.PageTitle,
		Line:  v.Text(),
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render health view: %w", err)
	}
	return nil
}
