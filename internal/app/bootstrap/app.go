package bootstrap

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taoyao-code/meshmsg/internal/api"
	"github.com/taoyao-code/meshmsg/internal/api/middleware"
	"github.com/taoyao-code/meshmsg/internal/app"
	cfgpkg "github.com/taoyao-code/meshmsg/internal/config"
	"github.com/taoyao-code/meshmsg/internal/health"
	"github.com/taoyao-code/meshmsg/internal/logging"
	"github.com/taoyao-code/meshmsg/internal/mesh/message"
	"github.com/taoyao-code/meshmsg/internal/metrics"
)

// Run 统一启动流程，收到 SIGINT/SIGTERM 后优雅关闭
func Run(cfg *cfgpkg.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return run(ctx, cfg, log)
}

func run(ctx context.Context, cfg *cfgpkg.Config, log *zap.Logger) error {
	log.Info("starting mesh message service", zap.String("app", cfg.App.Name), zap.String("env", cfg.App.Env))

	// ========== 阶段1: 指标与组装观察者 ==========
	reg, appm := app.NewMetrics()
	observers := []message.Observer{appm.Observer()}
	if cfg.Logging.LogAssembly {
		observers = append(observers, logging.AssemblyObserver(log))
	}
	message.SetObserver(metrics.Observers(observers...))
	defer message.SetObserver(nil)

	healthAgg := health.NewAggregator(health.NewAssemblerChecker())

	// ========== 阶段2: Redis 下行队列（可选）==========
	redisClient, err := app.NewRedisClient(cfg.Redis, log)
	if err != nil {
		log.Error("redis initialization failed", zap.Error(err))
		return err
	}

	var queue api.OutboundQueue
	if redisClient != nil {
		defer redisClient.Close()

		redisQueue := app.NewRedisOutboundQueue(redisClient, cfg.Outbound)
		queue = redisQueue
		app.AddRedisChecker(healthAgg, redisClient, redisQueue)

		worker := app.NewRedisWorker(redisQueue, nil, cfg.Outbound, log)
		go worker.Start(ctx)
		log.Info("outbound worker started", zap.String("key_prefix", cfg.Outbound.KeyPrefix))
	}

	// ========== 阶段3: HTTP ==========
	readyFn := func() bool {
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return healthAgg.Ready(rctx)
	}
	httpSrv := app.NewHTTPServer(cfg, metrics.Handler(reg), readyFn, log)

	handler := api.NewMessageHandler(queue, cfg.Outbound.MaxRetry, cfg.Outbound.Timeout, appm, log)
	var limiter *middleware.RateLimiter
	if cfg.HTTP.RateLimit.Enable {
		limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimit.RatePerSec, cfg.HTTP.RateLimit.Burst)
	}
	authCfg := middleware.AuthConfig{
		APIKeys: cfg.API.Auth.APIKeys,
		Enabled: cfg.API.Auth.Enabled,
	}
	httpSrv.Register(func(r *gin.Engine) {
		api.RegisterMessageRoutes(r, handler, authCfg, limiter, appm.RateLimitedTotal.Inc, log)
		api.RegisterDocRoutes(r)
		health.RegisterHTTPRoutes(r, healthAgg)
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.Start()
	}()
	log.Info("http server started", zap.String("addr", cfg.HTTP.Addr))

	// ========== 阶段4: 等待关闭 ==========
	select {
	case <-ctx.Done():
		log.Info("received shutdown signal, gracefully shutting down...")
	case err := <-errCh:
		if err != nil {
			log.Error("http server error", zap.Error(err))
			return err
		}
		return errors.New("http server exited unexpectedly")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown error", zap.Error(err))
	}
	log.Info("shutdown complete")
	return nil
}
