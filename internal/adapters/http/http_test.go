package http

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailyjobboost/api/internal/adapters/http/handlers"
	"github.com/dailyjobboost/api/internal/platform/config"
	"github.com/dailyjobboost/api/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testServerConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Port:            0,
		Host:            "127.0.0.1",
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		IdleTimeout:     30 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		MaxRequestSize:  1 << 20,
	}
}

func testHealthHandler() *handlers.HealthHandler {
	registry := ports.NewHealthRegistry()
	buildInfo := handlers.NewBuildInfo("test", "abc123", "2026-01-01T00:00:00Z")

	return handlers.NewHealthHandler(registry, buildInfo)
}

func TestServerNew(t *testing.T) {
	server := New(testServerConfig(), testLogger())

	require.NotNil(t, server)
	assert.NotNil(t, server.Engine())
	assert.Equal(t, "127.0.0.1:0", server.Addr())
	assert.Equal(t, 5*time.Second, server.Config().ReadTimeout)
}

func TestServerStartShutdown(t *testing.T) {
	cfg := testServerConfig()
	server := New(cfg, testLogger())

	errCh := server.Start()

	// Give ListenAndServe a moment to bind
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, server.Shutdown(ctx))

	select {
	case err, ok := <-errCh:
		if ok {
			require.NoError(t, err)
		}
	case <-time.After(time.Second):
		t.Fatal("server did not stop after shutdown")
	}
}

func TestMaxBodySize(t *testing.T) {
	cfg := testServerConfig()
	cfg.MaxRequestSize = 16

	server := New(cfg, testLogger())
	server.Engine().POST("/echo", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatus(http.StatusRequestEntityTooLarge)
			return
		}
		c.String(http.StatusOK, string(body))
	})

	t.Run("within limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("small"))
		server.Engine().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "small", w.Body.String())
	})

	t.Run("over limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/echo",
			bytes.NewReader(bytes.Repeat([]byte("x"), 64)))
		server.Engine().ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}

func TestSetupRouter_HealthRoutes(t *testing.T) {
	engine := gin.New()
	SetupRouter(engine, RouterConfig{
		Logger:        testLogger(),
		AppConfig:     &config.AppConfig{Name: "daily-job-boost", Version: "test", Environment: "test"},
		HealthHandler: testHealthHandler(),
	})

	for _, path := range []string{"/-/live", "/-/ready", "/-/build", "/-/metrics"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, w.Code, "path %s", path)
	}
}

func TestSetupRouter_UnknownRoute(t *testing.T) {
	engine := gin.New()
	SetupRouter(engine, RouterConfig{
		Logger:    testLogger(),
		AppConfig: &config.AppConfig{Name: "daily-job-boost", Version: "test", Environment: "test"},
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetupMinimalRouter(t *testing.T) {
	engine := gin.New()
	SetupMinimalRouter(engine, testLogger(), testHealthHandler())

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/live", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupMinimalRouter_NilHealthHandler(t *testing.T) {
	engine := gin.New()
	SetupMinimalRouter(engine, testLogger(), nil)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/live", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
