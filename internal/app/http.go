package app

import (
	"net/http"

	"go.uber.org/zap"

	cfgpkg "github.com/taoyao-code/meshmsg/internal/config"
	"github.com/taoyao-code/meshmsg/internal/httpserver"
)

// NewHTTPServer 根据配置创建 HTTP 服务器；指标关闭时不挂载 /metrics
func NewHTTPServer(cfg *cfgpkg.Config, metricsHandler http.Handler, readyFn func() bool, logger *zap.Logger) *httpserver.Server {
	if !cfg.Metrics.Enable {
		metricsHandler = nil
	}
	return httpserver.New(cfg.HTTP, cfg.Metrics.Path, metricsHandler, readyFn, logger)
}
