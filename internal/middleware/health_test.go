package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func getHealth(t *testing.T, h http.HandlerFunc) (int, HealthStatus) {
	t.Helper()
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	var body HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealthHandler_DisabledIsNotUnhealthy(t *testing.T) {
	h := HealthHandler(map[string]HealthChecker{
		"database": &PingChecker{Target: pingFunc(func(context.Context) error { return nil })},
		"ai":       CheckFunc(func(context.Context) error { return ErrCheckDisabled }),
	})

	code, body := getHealth(t, h)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "healthy", body.Checks["database"].Status)
	assert.Equal(t, "disabled", body.Checks["ai"].Status)
}

func TestHealthHandler_Unhealthy(t *testing.T) {
	h := HealthHandler(map[string]HealthChecker{
		"object_store": &PingChecker{Target: pingFunc(func(context.Context) error { return errors.New("bucket gone") })},
	})

	code, body := getHealth(t, h)

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, "bucket gone", body.Checks["object_store"].Message)
}

func TestLivenessHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	LivenessHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, "ok", rec.Body.String())
}
