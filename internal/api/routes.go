package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taoyao-code/meshmsg/internal/api/middleware"
)

// RegisterMessageRoutes 注册消息组装路由
func RegisterMessageRoutes(
	r *gin.Engine,
	handler *MessageHandler,
	authCfg middleware.AuthConfig,
	limiter *middleware.RateLimiter,
	onRateLimited func(),
	logger *zap.Logger,
) {
	if r == nil || handler == nil {
		return
	}

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(limiter, onRateLimited))
	if authCfg.Enabled {
		v1.Use(middleware.APIKeyAuth(authCfg, logger))
		logger.Info("api authentication enabled", zap.Int("api_keys_count", len(authCfg.APIKeys)))
	} else {
		logger.Warn("api authentication disabled - only for development!")
	}

	v1.GET("/opcodes", handler.ListOpcodes)
	v1.POST("/messages", handler.Assemble)
	v1.POST("/messages/batch", handler.AssembleBatch)
	v1.GET("/outbound/stats", handler.QueueStats)

	logger.Info("message routes registered", zap.Int("endpoints", 4))
}
