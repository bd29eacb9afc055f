package app

import (
	"go.uber.org/zap"

	cfgpkg "github.com/taoyao-code/meshmsg/internal/config"
	"github.com/taoyao-code/meshmsg/internal/health"
	"github.com/taoyao-code/meshmsg/internal/outbound"
	redisstorage "github.com/taoyao-code/meshmsg/internal/storage/redis"
)

// deadLetterDegradeLimit 死信达到该数量时健康检查降级
const deadLetterDegradeLimit = 100

// NewRedisClient 创建Redis客户端，未启用返回 nil, nil
func NewRedisClient(cfg cfgpkg.RedisConfig, logger *zap.Logger) (*redisstorage.Client, error) {
	if !cfg.Enabled {
		logger.Info("redis is disabled, outbound queue unavailable")
		return nil, nil
	}

	client, err := redisstorage.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	logger.Info("redis client initialized",
		zap.String("addr", cfg.Addr),
		zap.Int("pool_size", cfg.PoolSize))

	return client, nil
}

// NewRedisOutboundQueue 创建Redis下行队列
func NewRedisOutboundQueue(client *redisstorage.Client, cfg cfgpkg.OutboundConfig) *redisstorage.OutboundQueue {
	return redisstorage.NewOutboundQueue(client, cfg.KeyPrefix)
}

// NewRedisWorker 创建下行Worker，Sender 外包熔断；未接入传输层时使用日志 Sender
func NewRedisWorker(queue outbound.Queue, sender outbound.Sender, cfg cfgpkg.OutboundConfig, logger *zap.Logger) *outbound.RedisWorker {
	if sender == nil {
		sender = outbound.LogSender(logger)
	}
	guarded := outbound.NewBreaker(sender, cfg.BreakerThreshold, cfg.BreakerCooldown, logger)
	return outbound.NewRedisWorker(queue, guarded, cfg.ThrottleMs, logger)
}

// AddRedisChecker 添加Redis检查器到聚合器
func AddRedisChecker(aggregator *health.Aggregator, client *redisstorage.Client, queue *redisstorage.OutboundQueue) {
	if client != nil {
		aggregator.AddChecker(health.NewRedisChecker(client, queue, deadLetterDegradeLimit))
	}
}
