package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterHTTPRoutes 注册健康检查HTTP路由
func RegisterHTTPRoutes(r *gin.Engine, aggregator *Aggregator) {
	// GET /health/live 存活探针
	r.GET("/health/live", func(c *gin.Context) {
		if !aggregator.Alive() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"alive": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"alive": true})
	})

	// GET /health 详细检查，Degraded 仍返回200
	r.GET("/health", func(c *gin.Context) {
		report := aggregator.Report(c.Request.Context())

		code := http.StatusOK
		if report.Status == StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, report)
	})
}
