package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	cfgpkg "github.com/taoyao-code/meshmsg/internal/config"
	appmetrics "github.com/taoyao-code/meshmsg/internal/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(ready bool, logger *zap.Logger) *Server {
	cfg := cfgpkg.HTTPConfig{Addr: ":0", ReadTimeout: time.Second, WriteTimeout: time.Second}
	reg := appmetrics.NewRegistry()
	return New(cfg, "/metrics", appmetrics.Handler(reg), func() bool { return ready }, logger)
}

func get(h http.Handler, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealthzReadyzMetrics(t *testing.T) {
	srv := newTestServer(true, nil)

	assert.Equal(t, http.StatusOK, get(srv.Handler(), "/healthz", nil).Code)
	assert.Equal(t, http.StatusOK, get(srv.Handler(), "/readyz", nil).Code)

	rr := get(srv.Handler(), "/metrics", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}

func TestReadyzNotReady(t *testing.T) {
	srv := newTestServer(false, nil)
	assert.Equal(t, http.StatusServiceUnavailable, get(srv.Handler(), "/readyz", nil).Code)
}

func TestRequestID(t *testing.T) {
	srv := newTestServer(true, nil)

	rr := get(srv.Handler(), "/healthz", nil)
	assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))

	rr = get(srv.Handler(), "/healthz", map[string]string{RequestIDHeader: "req-123"})
	assert.Equal(t, "req-123", rr.Header().Get(RequestIDHeader))
}

func TestRegisterAndAccessLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	srv := newTestServer(true, zap.New(core))
	srv.Register(func(r *gin.Engine) {
		r.GET("/api/v1/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	})

	rr := get(srv.Handler(), "/api/v1/ping", map[string]string{RequestIDHeader: "abc"})
	assert.Equal(t, http.StatusOK, rr.Code)

	// 探针路径不记录
	get(srv.Handler(), "/healthz", nil)

	entries := logs.FilterMessage("http request").All()
	if assert.Len(t, entries, 1) {
		ctx := entries[0].ContextMap()
		assert.Equal(t, "/api/v1/ping", ctx["path"])
		assert.Equal(t, "abc", ctx["request_id"])
		assert.Equal(t, int64(http.StatusOK), ctx["status"])
	}
}
