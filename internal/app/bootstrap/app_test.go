package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	cfgpkg "github.com/taoyao-code/meshmsg/internal/config"
)

func TestRun_GracefulShutdown(t *testing.T) {
	cfg, err := cfgpkg.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.HTTP.Addr = "127.0.0.1:0"
	cfg.Redis.Enabled = false
	cfg.Logging.LogAssembly = true

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, zaptest.NewLogger(t)) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestRun_RedisUnavailable(t *testing.T) {
	cfg, err := cfgpkg.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.HTTP.Addr = "127.0.0.1:0"
	cfg.Redis.Enabled = true
	cfg.Redis.Addr = "127.0.0.1:1"
	cfg.Redis.DialTimeout = 100 * time.Millisecond

	err = run(context.Background(), cfg, zaptest.NewLogger(t))
	assert.Error(t, err)
}
