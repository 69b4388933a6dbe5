package view

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"frvn-service/internal/adapters/backend"
	"frvn-service/internal/domain"
	"frvn-service/internal/platform/obs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitSettled(t *testing.T, v *HealthView) {
	t.Helper()
	select {
	case <-v.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("health view did not settle")
	}
}

// newBackend serves body at the health path and counts requests.
func newBackend(t *testing.T, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestHealthViewDisplaysBackendStatus(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "reported", body: `{"status":"ready"}`, want: "Backend health: ready"},
		{name: "empty object", body: `{}`, want: "Backend health: ok"},
		{name: "null status", body: `{"status":null}`, want: "Backend health: ok"},
		{name: "invalid json", body: `not json`, want: "Backend health: unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newBackend(t, tt.body)
			source, err := backend.NewHTTPHealthSource(srv.Client(), srv.URL, nil)
			require.NoError(t, err)

			v := NewHealthView(source, nil, nil)
			v.Mount(context.Background())
			waitSettled(t, v)

			assert.Equal(t, tt.want, v.Text())
		})
	}
}

func TestHealthViewNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	source, err := backend.NewHTTPHealthSource(backend.NewHTTPClient(time.Second), url, nil)
	require.NoError(t, err)

	v := NewHealthView(source, nil, nil)
	v.Mount(context.Background())
	waitSettled(t, v)

	assert.Equal(t, "Backend health: unavailable", v.Text())
}

func TestHealthViewPlaceholderBeforeSettle(t *testing.T) {
	source := backend.NewMockHealthSource("ready", nil)
	source.Gate = make(chan struct{})

	v := NewHealthView(source, nil, nil)
	assert.Equal(t, "Backend health: ...", v.Text())

	v.Mount(context.Background())
	assert.Equal(t, "Backend health: ...", v.Text())

	close(source.Gate)
	waitSettled(t, v)
	assert.Equal(t, "Backend health: ready", v.Text())
}

func TestHealthViewIssuesOneRequestPerMount(t *testing.T) {
	srv, hits := newBackend(t, `{"status":"ready"}`)
	source, err := backend.NewHTTPHealthSource(srv.Client(), srv.URL, nil)
	require.NoError(t, err)

	v := NewHealthView(source, nil, nil)
	v.Mount(context.Background())
	v.Mount(context.Background())
	waitSettled(t, v)

	for i := 0; i < 5; i++ {
		var buf bytes.Buffer
		require.NoError(t, v.Render(&buf))
		v.Mount(context.Background())
	}

	assert.Equal(t, int32(1), hits.Load())
}

func TestHealthViewDiscardsResultAfterUnmount(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := obs.NewMetrics(reg)

	source := backend.NewMockHealthSource("ready", nil)
	source.Gate = make(chan struct{})

	v := NewHealthView(source, nil, metrics)
	v.Mount(context.Background())
	v.Unmount()

	waitSettled(t, v)

	assert.Equal(t, domain.StatusPlaceholder, v.Status())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.HealthFetches.WithLabelValues(obs.OutcomeDiscarded)))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.HealthFetches.WithLabelValues(obs.OutcomeResolved)))
}

func TestHealthViewUnmountedViewIsNeverMounted(t *testing.T) {
	source := backend.NewMockHealthSource("ready", nil)

	v := NewHealthView(source, nil, nil)
	v.Unmount()
	v.Mount(context.Background())

	select {
	case <-v.Done():
		t.Fatal("unmounted view must not fetch")
	case <-time.After(50 * time.Millisecond):
	}
	assert.Equal(t, 0, source.Calls())
}

func TestHealthViewStateIsTerminal(t *testing.T) {
	source := backend.NewMockHealthSource("", errors.New("dial tcp: refused"))

	v := NewHealthView(source, nil, nil)
	v.Mount(context.Background())
	waitSettled(t, v)
	v.Unmount()

	assert.Equal(t, domain.StatusUnavailable, v.Status())
	assert.Equal(t, 1, source.Calls())
}

func TestHealthViewRender(t *testing.T) {
	source := backend.NewMockHealthSource("<ready>", nil)

	v := NewHealthView(source, nil, nil)
	v.Mount(context.Background())
	waitSettled(t, v)

	var buf bytes.Buffer
	require.NoError(t, v.Render(&buf))

	html := buf.String()
	assert.Contains(t, html, "<h1>FRVN Template</h1>")
	assert.Contains(t, html, "Backend health: &lt;ready&gt;")
	assert.True(t, strings.Contains(html, `class="card"`))
}
