package health

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	redisstorage "github.com/taoyao-code/meshmsg/internal/storage/redis"
)

// RedisClient RedisChecker 依赖的最小接口（*redisstorage.Client 满足）
type RedisClient interface {
	HealthCheck(ctx context.Context) error
	PoolStats() *redis.PoolStats
}

// QueueStatter 下行队列统计
type QueueStatter interface {
	Stats(ctx context.Context) (*redisstorage.QueueStats, error)
}

// RedisChecker Redis 与下行队列健康检查器
type RedisChecker struct {
	client    RedisClient
	queue     QueueStatter
	deadLimit int64
}

// NewRedisChecker 创建Redis健康检查器；queue 可为空，deadLimit<=0 不检查死信积压
func NewRedisChecker(client RedisClient, queue QueueStatter, deadLimit int64) *RedisChecker {
	return &RedisChecker{client: client, queue: queue, deadLimit: deadLimit}
}

// Name 返回检查器名称
func (c *RedisChecker) Name() string {
	return "redis"
}

// Check 执行健康检查
func (c *RedisChecker) Check(ctx context.Context) CheckResult {
	start := time.Now()

	if err := c.client.HealthCheck(ctx); err != nil {
		return CheckResult{
			Status:  StatusUnhealthy,
			Message: fmt.Sprintf("ping failed: %v", err),
			Latency: time.Since(start),
		}
	}

	stats := c.client.PoolStats()
	utilization := 0.0
	if stats.TotalConns > 0 {
		utilization = float64(stats.TotalConns-stats.IdleConns) / float64(stats.TotalConns)
	}

	status := StatusHealthy
	message := "ok"
	details := map[string]interface{}{
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
		"hits":        stats.Hits,
		"misses":      stats.Misses,
		"timeouts":    stats.Timeouts,
		"utilization": fmt.Sprintf("%.1f%%", utilization*100),
	}

	if utilization > 0.9 {
		status = StatusDegraded
		message = "connection pool near limit"
	}

	if c.queue != nil {
		qs, err := c.queue.Stats(ctx)
		if err != nil {
			status = StatusDegraded
			message = fmt.Sprintf("queue stats failed: %v", err)
		} else {
			details["queue_pending"] = qs.Pending
			details["queue_processing"] = qs.Processing
			details["queue_dead"] = qs.Dead
			if c.deadLimit > 0 && qs.Dead >= c.deadLimit {
				status = StatusDegraded
				message = "dead letter backlog"
			}
		}
	}

	return CheckResult{
		Status:  status,
		Message: message,
		Details: details,
		Latency: time.Since(start),
	}
}
