package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"frvn-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHealthServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != HealthPath {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPHealthSourceFetchHealth(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    domain.HealthStatus
		wantErr bool
	}{
		{name: "reported status", status: http.StatusOK, body: `{"status":"ready"}`, want: "ready"},
		{name: "missing status", status: http.StatusOK, body: `{}`, want: domain.StatusDefault},
		{name: "null status", status: http.StatusOK, body: `{"status":null}`, want: domain.StatusDefault},
		{name: "extra fields ignored", status: http.StatusOK, body: `{"status":"ok","uptime":12}`, want: "ok"},
		{name: "numeric status", status: http.StatusOK, body: `{"status":5}`, want: "5"},
		{name: "numeric status normalized", status: http.StatusOK, body: `{"status":1.50}`, want: "1.5"},
		{name: "boolean status renders empty", status: http.StatusOK, body: `{"status":true}`, want: ""},
		{name: "field name is case sensitive", status: http.StatusOK, body: `{"Status":"ready"}`, want: domain.StatusDefault},
		{name: "upper case field ignored", status: http.StatusOK, body: `{"STATUS":"down"}`, want: domain.StatusDefault},
		{name: "exact key wins over other casing", status: http.StatusOK, body: `{"status":"a","Status":"b"}`, want: "a"},
		{name: "non-object body", status: http.StatusOK, body: `[1,2]`, want: domain.StatusDefault},
		{name: "invalid json", status: http.StatusOK, body: `<html>oops</html>`, wantErr: true},
		{name: "empty body", status: http.StatusOK, body: ``, wantErr: true},
		{name: "null body", status: http.StatusOK, body: `null`, wantErr: true},
		{name: "object status", status: http.StatusOK, body: `{"status":{"db":"ok"}}`, wantErr: true},
		{name: "server error", status: http.StatusServiceUnavailable, body: `{"status":"down"}`, wantErr: true},
		{name: "not found", status: http.StatusNotFound, body: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newHealthServer(t, tt.status, tt.body)

			source, err := NewHTTPHealthSource(srv.Client(), srv.URL+"/", nil)
			require.NoError(t, err)

			got, err := source.FetchHealth(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTTPHealthSourceRejectsOversizedBody(t *testing.T) {
	body := `{"status":"ok","pad":"` + strings.Repeat("x", maxHealthBody) + `"}`
	srv := newHealthServer(t, http.StatusOK, body)

	source, err := NewHTTPHealthSource(srv.Client(), srv.URL, nil)
	require.NoError(t, err)

	_, err = source.FetchHealth(context.Background())
	assert.Error(t, err)
}

func TestFormatNumber(t *testing.T) {
	cases := map[float64]string{
		0:       "0",
		5:       "5",
		1.5:     "1.5",
		-2.25:   "-2.25",
		1e20:    "100000000000000000000",
		1e21:    "1e+21",
		1.5e-7:  "1.5e-7",
		0.00001: "0.00001",
	}
	for in, want := range cases {
		if got := formatNumber(in); got != want {
			t.Errorf("formatNumber(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestHTTPHealthSourceStatusError(t *testing.T) {
	srv := newHealthServer(t, http.StatusBadGateway, "  upstream down \n")

	source, err := NewHTTPHealthSource(srv.Client(), srv.URL, nil)
	require.NoError(t, err)

	_, err = source.FetchHealth(context.Background())

	var he *httpStatusError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusBadGateway, he.Code)
	assert.Equal(t, "upstream down", he.Body)
}

func TestHTTPHealthSourceConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	source, err := NewHTTPHealthSource(NewHTTPClient(time.Second), url, nil)
	require.NoError(t, err)

	_, err = source.FetchHealth(context.Background())
	assert.Error(t, err)
}

func TestHTTPHealthSourceContextCanceled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	source, err := NewHTTPHealthSource(srv.Client(), srv.URL, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = source.FetchHealth(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewHTTPHealthSourceRequiresBaseURL(t *testing.T) {
	_, err := NewHTTPHealthSource(nil, "  ", nil)
	assert.Error(t, err)
}
