package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dailyjobboost/api/internal/mocks"
	"github.com/dailyjobboost/api/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func healthResult(status ports.HealthStatus, checks map[string]*ports.CheckResult) *ports.HealthResult {
	return &ports.HealthResult{Status: status, Checks: checks}
}

func TestNewBuildInfo(t *testing.T) {
	bi := NewBuildInfo("1.4.0", "9f3c2aa", "2026-08-01T06:30:00Z")

	assert.Equal(t, "1.4.0", bi.Version)
	assert.Equal(t, "9f3c2aa", bi.Commit)
	assert.Equal(t, "2026-08-01T06:30:00Z", bi.BuildTime)
	assert.Equal(t, runtime.Version(), bi.GoVersion)
}

func TestHealthHandler_Liveness(t *testing.T) {
	handler := NewHealthHandler(mocks.NewMockHealthRegistry(t), BuildInfo{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/-/live", nil)

	handler.Liveness(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name       string
		result     *ports.HealthResult
		wantStatus int
		wantBody   string
	}{
		{
			name: "all dependencies healthy",
			result: healthResult(ports.HealthStatusHealthy, map[string]*ports.CheckResult{
				"postgres": {Status: ports.HealthStatusHealthy},
				"smtp":     {Status: ports.HealthStatusHealthy},
			}),
			wantStatus: http.StatusOK,
			wantBody:   "healthy",
		},
		{
			name: "smtp down",
			result: healthResult(ports.HealthStatusUnhealthy, map[string]*ports.CheckResult{
				"postgres": {Status: ports.HealthStatusHealthy},
				"smtp":     {Status: ports.HealthStatusUnhealthy, Message: "connection refused"},
			}),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "connection refused",
		},
		{
			name:       "nothing registered",
			result:     healthResult(ports.HealthStatusHealthy, map[string]*ports.CheckResult{}),
			wantStatus: http.StatusOK,
			wantBody:   "healthy",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			registry := mocks.NewMockHealthRegistry(t)
			registry.EXPECT().CheckAll(mock.Anything).Return(tt.result)

			handler := NewHealthHandler(registry, BuildInfo{})

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/-/ready", nil)

			handler.Readiness(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestHealthHandler_BuildInfoHandler(t *testing.T) {
	buildInfo := BuildInfo{
		Version:   "1.4.0",
		Commit:    "9f3c2aa",
		BuildTime: "2026-08-01T06:30:00Z",
		GoVersion: "go1.24.0",
	}

	handler := NewHealthHandler(mocks.NewMockHealthRegistry(t), buildInfo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/-/build", nil)

	handler.BuildInfoHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp BuildInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, buildInfo, resp)
}

func TestMetricsHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/-/metrics", nil)

	MetricsHandler().ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestHealthHandler_RegisterHealthRoutesOnEngine(t *testing.T) {
	registry := mocks.NewMockHealthRegistry(t)
	registry.EXPECT().CheckAll(mock.Anything).
		Return(healthResult(ports.HealthStatusHealthy, map[string]*ports.CheckResult{})).
		Maybe()

	handler := NewHealthHandler(registry, BuildInfo{Version: "test"})

	router := gin.New()
	handler.RegisterHealthRoutesOnEngine(router)

	registered := make(map[string]bool)
	for _, r := range router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{"GET /-/live", "GET /-/ready", "GET /-/build", "GET /-/metrics"} {
		assert.True(t, registered[want], "missing route: %s", want)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/-/live", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
