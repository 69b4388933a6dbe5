package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"frvn-service/internal/adapters/backend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunHealthCheck(t *testing.T) {
	var out bytes.Buffer

	err := runHealthCheck(context.Background(), &out, backend.NewMockHealthSource("ready", nil))
	require.NoError(t, err)
	assert.Equal(t, "Backend health: ready\n", out.String())
}

func TestRunHealthCheckUnavailable(t *testing.T) {
	var out bytes.Buffer

	err := runHealthCheck(context.Background(), &out, backend.NewMockHealthSource("", errors.New("refused")))
	assert.ErrorIs(t, err, errUnavailable)
	assert.Equal(t, "Backend health: unavailable\n", out.String())
}

func TestHealthCommandAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"health", "--url", srv.URL, "--env-file", ""})

	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Equal(t, "Backend health: ok\n", out.String())
}

func TestRunDoctor(t *testing.T) {
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })

	lookPath = func(file string) (string, error) {
		if file == "gcloud" {
			return "", errors.New("not found")
		}
		return "/usr/bin/" + file, nil
	}

	var out bytes.Buffer
	err := runDoctor(&out, DefaultTools)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gcloud")

	lookPath = func(file string) (string, error) { return "/usr/bin/" + file, nil }
	out.Reset()
	require.NoError(t, runDoctor(&out, DefaultTools))
	assert.Equal(t, "All required tools are available.\n", out.String())
}

func TestConfigCommandPrintsYAML(t *testing.T) {
	t.Setenv("PROJECT_NAME", "myapp")
	t.Setenv("DATABASE_URL", "postgres://app:secret@db:5432/app")
	t.Setenv("RENDER_WAIT", "2s")

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"config", "--env-file", ""})

	require.NoError(t, root.ExecuteContext(context.Background()))

	yml := out.String()
	assert.Contains(t, yml, "project_name: myapp")
	assert.Contains(t, yml, "render_wait: 2s")
	assert.NotContains(t, yml, "secret")
}
