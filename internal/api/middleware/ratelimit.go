package middleware

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter 基于Token Bucket的速率限流器
type RateLimiter struct {
	limiter       *rate.Limiter
	ratePerSec    int
	burst         int
	allowedCount  atomic.Int64
	rejectedCount atomic.Int64
}

// NewRateLimiter 创建速率限流器
// ratePerSec: 每秒允许的请求数（稳定速率）
// burst: 突发容量（桶的大小）
func NewRateLimiter(ratePerSec int, burst int) *RateLimiter {
	if ratePerSec <= 0 {
		ratePerSec = 100
	}
	if burst <= 0 {
		burst = ratePerSec * 2
	}

	return &RateLimiter{
		limiter:    rate.NewLimiter(rate.Limit(ratePerSec), burst),
		ratePerSec: ratePerSec,
		burst:      burst,
	}
}

// Allow 检查是否允许请求（非阻塞）
func (l *RateLimiter) Allow() bool {
	if l.limiter.Allow() {
		l.allowedCount.Add(1)
		return true
	}
	l.rejectedCount.Add(1)
	return false
}

// Wait 等待直到允许请求（阻塞，受 ctx 控制）
func (l *RateLimiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		l.rejectedCount.Add(1)
		return err
	}
	l.allowedCount.Add(1)
	return nil
}

// Stats 获取统计信息
func (l *RateLimiter) Stats() RateLimiterStats {
	return RateLimiterStats{
		RatePerSecond: l.ratePerSec,
		Burst:         l.burst,
		AllowedTotal:  l.allowedCount.Load(),
		RejectedTotal: l.rejectedCount.Load(),
	}
}

// RateLimiterStats 速率限流器统计信息
type RateLimiterStats struct {
	RatePerSecond int   `json:"rate_per_second"`
	Burst         int   `json:"burst"`
	AllowedTotal  int64 `json:"allowed_total"`
	RejectedTotal int64 `json:"rejected_total"`
}

// RateLimit 限流中间件，onReject 可为空（用于指标计数）
func RateLimit(l *RateLimiter, onReject func()) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil || l.Allow() {
			c.Next()
			return
		}
		if onReject != nil {
			onReject()
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":   "rate_limited",
			"message": "请求过于频繁，请稍后重试",
		})
	}
}
