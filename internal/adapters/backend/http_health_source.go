package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"frvn-service/internal/domain"
	"frvn-service/internal/platform/obs"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// Upper bound on a health body; larger bodies are treated as a failure.
const maxHealthBody = 64 << 10

// HealthPath is the backend route the page view reads, relative to the origin.
const HealthPath = "/api/healthz"

// HTTPHealthSource implements HealthSource against a backend's health route.
//
// It performs a single GET per FetchHealth call. There is no retry;
// every failure is returned to the caller unchanged.
type HTTPHealthSource struct {
	session *http.Client
	baseURL string
	logger  *zap.Logger
}

// NewHTTPClient returns a traced client suitable for HTTPHealthSource.
// A zero timeout leaves requests bounded only by their context.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

func NewHTTPHealthSource(client *http.Client, baseURL string, logger *zap.Logger) (*HTTPHealthSource, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("health source: base URL is empty")
	}
	if client == nil {
		client = NewHTTPClient(10 * time.Second)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &HTTPHealthSource{
		session: client,
		baseURL: baseURL,
		logger:  logger,
	}, nil
}

func (s *HTTPHealthSource) FetchHealth(ctx context.Context) (_ domain.HealthStatus, err error) {
	defer obs.Time(ctx, s.logger, "backend.fetchHealth")(&err)

	req, err := s.newRequest(ctx, http.MethodGet, s.baseURL+HealthPath)
	if err != nil {
		return "", fmt.Errorf("fetch health: %w", err)
	}

	resp, err := s.do(req)
	if err != nil {
		return "", fmt.Errorf("fetch health: execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxHealthBody+1))
	if err != nil {
		return "", fmt.Errorf("fetch health: read body: %w", err)
	}
	if len(body) > maxHealthBody {
		return "", fmt.Errorf("fetch health: body exceeds %d bytes", maxHealthBody)
	}

	status, err := decodeHealth(body)
	if err != nil {
		return "", fmt.Errorf("fetch health: %w", err)
	}
	return status, nil
}

// decodeHealth reads the optional status field of a health body.
//
// A body that is valid JSON but not an object has no status field and
// resolves to the default, except a literal null which has no fields to read.
// The field name is matched exactly. Scalar status values are shown the way a
// browser would display them; structured ones are rejected.
func decodeHealth(body []byte) (domain.HealthStatus, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("decode health response: %w", err)
	}

	trimmed := bytes.TrimSpace(raw)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		return "", errors.New("decode health response: body is null")
	case trimmed[0] != '{':
		return domain.StatusDefault, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return "", fmt.Errorf("decode health response: %w", err)
	}

	field := bytes.TrimSpace(fields["status"])
	if len(field) == 0 || bytes.Equal(field, []byte("null")) {
		return domain.ResolveStatus(nil), nil
	}

	switch field[0] {
	case '"':
		var s string
		if err := json.Unmarshal(field, &s); err != nil {
			return "", fmt.Errorf("decode health status: %w", err)
		}
		return domain.ResolveStatus(&s), nil
	case '{', '[':
		return "", fmt.Errorf("decode health status: unsupported value %s", field)
	case 't', 'f':
		// Booleans render as nothing.
		empty := ""
		return domain.ResolveStatus(&empty), nil
	default:
		var f float64
		if err := json.Unmarshal(field, &f); err != nil {
			return "", fmt.Errorf("decode health status: %w", err)
		}
		s := formatNumber(f)
		return domain.ResolveStatus(&s), nil
	}
}

// formatNumber prints f the way JavaScript's String(number) does:
// plain decimal between 1e-6 and 1e21, exponent form outside it.
func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}
