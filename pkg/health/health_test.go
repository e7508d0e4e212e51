package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func up(context.Context) error { return nil }

func down(msg string) Checker {
	return func(context.Context) error { return fmt.Errorf("%s", msg) }
}

func serveReady(t *testing.T, h *Handler) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec, resp
}

func TestLivenessHandler_AlwaysReturns200(t *testing.T) {
	h := NewHandler()
	h.Register("redis", down("connection refused"))

	rec := httptest.NewRecorder()
	h.LivenessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, StatusUp, resp.Status)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestReadinessHandler(t *testing.T) {
	tests := []struct {
		name     string
		register func(h *Handler)
		code     int
		status   Status
	}{
		{
			name:     "no checkers",
			register: func(*Handler) {},
			code:     http.StatusOK,
			status:   StatusUp,
		},
		{
			name: "all up",
			register: func(h *Handler) {
				h.RegisterCritical("redis", up)
				h.RegisterNonCritical("kafka", up)
			},
			code:   http.StatusOK,
			status: StatusUp,
		},
		{
			name: "critical down",
			register: func(h *Handler) {
				h.RegisterCritical("redis", down("connection refused"))
				h.RegisterNonCritical("kafka", up)
			},
			code:   http.StatusServiceUnavailable,
			status: StatusDown,
		},
		{
			name: "non-critical down is degraded",
			register: func(h *Handler) {
				h.RegisterCritical("redis", up)
				h.RegisterNonCritical("kafka", down("broker unreachable"))
				h.RegisterNonCritical("gateway", down("timeout"))
			},
			code:   http.StatusOK,
			status: StatusDegraded,
		},
		{
			name: "critical wins over degraded",
			register: func(h *Handler) {
				h.RegisterNonCritical("kafka", down("broker unreachable"))
				h.Register("redis", down("connection refused"))
			},
			code:   http.StatusServiceUnavailable,
			status: StatusDown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler()
			tt.register(h)

			rec, resp := serveReady(t, h)
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.status, resp.Status)
		})
	}
}

func TestReadinessHandler_ReportsEachCheck(t *testing.T) {
	h := NewHandler()
	h.RegisterCritical("redis", up)
	h.RegisterNonCritical("kafka", down("broker unreachable"))

	_, resp := serveReady(t, h)

	assert.Equal(t, StatusUp, resp.Checks["redis"].Status)
	assert.True(t, resp.Checks["redis"].Critical)
	assert.Equal(t, StatusDown, resp.Checks["kafka"].Status)
	assert.False(t, resp.Checks["kafka"].Critical)
	assert.Equal(t, "broker unreachable", resp.Checks["kafka"].Error)
}

func TestRegister_Overwrites(t *testing.T) {
	h := NewHandler()
	h.Register("redis", down("fail"))
	h.Register("redis", up)

	rec, resp := serveReady(t, h)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, StatusUp, resp.Checks["redis"].Status)
}

func TestCheck_TimesOutSlowChecker(t *testing.T) {
	h := NewHandler()
	h.timeout = 20 * time.Millisecond
	h.Register("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	resp := h.Check(context.Background())
	assert.Equal(t, StatusDown, resp.Status)
	assert.Contains(t, resp.Checks["slow"].Error, "deadline exceeded")
}
