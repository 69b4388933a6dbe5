package handlers

import (
	"bytes"
	"net/http"
	"time"

	"frvn-service/internal/platform/obs"
	"frvn-service/internal/ports"
	"frvn-service/internal/view"

	"go.uber.org/zap"
)

// SourceFactory builds the HealthSource a page view reads from, given the backend origin.
type SourceFactory func(origin string) (ports.HealthSource, error)

// PageHandler renders the health page. Each request mounts one HealthView.
type PageHandler struct {
	Sources SourceFactory
	// Backend origin the view reads from. Never derived from the request.
	BackendURL string
	// Longest time to wait for the view to settle. Zero waits until it does.
	RenderWait time.Duration
	Metrics    *obs.Metrics
}

func (h *PageHandler) Show(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r) {
		return
	}

	ctx := r.Context()
	logger := obs.Logger(ctx)

	origin := h.BackendURL
	if origin == "" {
		logger.Error("page handler has no backend origin")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	source, err := h.Sources(origin)
	if err != nil {
		logger.Error("build health source failed", zap.String("origin", origin), zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	v := view.NewHealthView(source, logger, h.Metrics)
	v.Mount(ctx)
	defer v.Unmount()

	var deadline <-chan time.Time
	if h.RenderWait > 0 {
		timer := time.NewTimer(h.RenderWait)
		defer timer.Stop()
		deadline = timer.C
	}

	select {
	case <-v.Done():
	case <-deadline:
	case <-ctx.Done():
	}
	if ctx.Err() != nil {
		// Client went away; nothing left to render for.
		return
	}

	var buf bytes.Buffer
	if err := v.Render(&buf); err != nil {
		logger.Error("render page failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Debug("write page failed", zap.Error(err))
	}
}
