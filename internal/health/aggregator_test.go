package health

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taoyao-code/meshmsg/internal/mesh/message"
	"github.com/taoyao-code/meshmsg/internal/mesh/security"
	redisstorage "github.com/taoyao-code/meshmsg/internal/storage/redis"
)

// mockChecker 模拟检查器
type mockChecker struct {
	name   string
	status Status
}

func (m *mockChecker) Name() string { return m.name }

func (m *mockChecker) Check(context.Context) CheckResult {
	return CheckResult{Status: m.status, Message: "mock", Latency: time.Millisecond}
}

func TestAggregator(t *testing.T) {
	tests := []struct {
		name   string
		second Status
		want   Status
		ready  bool
	}{
		{"全部健康", StatusHealthy, StatusHealthy, true},
		{"部分降级", StatusDegraded, StatusDegraded, true},
		{"部分不健康", StatusUnhealthy, StatusUnhealthy, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := NewAggregator(
				&mockChecker{"assembler", StatusHealthy},
				&mockChecker{"redis", tt.second},
			)
			assert.Equal(t, tt.want, agg.OverallStatus(context.Background()))
			assert.Equal(t, tt.ready, agg.Ready(context.Background()))
		})
	}

	t.Run("动态添加检查器", func(t *testing.T) {
		agg := NewAggregator(&mockChecker{"initial", StatusHealthy})
		agg.AddChecker(&mockChecker{"added", StatusHealthy})
		assert.Len(t, agg.CheckAll(context.Background()), 2)
	})

	t.Run("空聚合器健康且存活", func(t *testing.T) {
		agg := NewAggregator()
		assert.Equal(t, StatusHealthy, agg.OverallStatus(context.Background()))
		assert.True(t, agg.Alive())
	})

	t.Run("报告", func(t *testing.T) {
		agg := NewAggregator(&mockChecker{"a", StatusDegraded})
		report := agg.Report(context.Background())
		assert.Equal(t, StatusDegraded, report.Status)
		assert.Contains(t, report.Checks, "a")
		assert.False(t, report.Timestamp.IsZero())
	})
}

func TestAssemblerChecker(t *testing.T) {
	c := NewAssemblerChecker()
	assert.Equal(t, "assembler", c.Name())

	res := c.Check(context.Background())
	assert.Equal(t, StatusHealthy, res.Status)
	aid, err := security.K4(make([]byte, 16))
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("0x%02X", aid), res.Details["aid"])
}

func TestAssemblerChecker_NotObserved(t *testing.T) {
	observed := 0
	message.SetObserver(message.ObserverFunc(func(message.Event) { observed++ }))
	t.Cleanup(func() { message.SetObserver(nil) })

	c := NewAssemblerChecker()
	for i := 0; i < 3; i++ {
		assert.Equal(t, StatusHealthy, c.Check(context.Background()).Status)
	}
	assert.Zero(t, observed)
}

type fakeRedis struct {
	err   error
	stats redis.PoolStats
}

func (f *fakeRedis) HealthCheck(context.Context) error { return f.err }
func (f *fakeRedis) PoolStats() *redis.PoolStats      { return &f.stats }

type fakeQueue struct {
	stats redisstorage.QueueStats
	err   error
}

func (f *fakeQueue) Stats(context.Context) (*redisstorage.QueueStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &f.stats, nil
}

func TestRedisChecker(t *testing.T) {
	ctx := context.Background()

	t.Run("ping失败", func(t *testing.T) {
		c := NewRedisChecker(&fakeRedis{err: errors.New("refused")}, nil, 0)
		assert.Equal(t, StatusUnhealthy, c.Check(ctx).Status)
	})

	t.Run("健康", func(t *testing.T) {
		c := NewRedisChecker(&fakeRedis{stats: redis.PoolStats{TotalConns: 10, IdleConns: 8}}, &fakeQueue{}, 10)
		res := c.Check(ctx)
		assert.Equal(t, StatusHealthy, res.Status)
		assert.Equal(t, int64(0), res.Details["queue_dead"])
	})

	t.Run("连接池接近上限", func(t *testing.T) {
		c := NewRedisChecker(&fakeRedis{stats: redis.PoolStats{TotalConns: 10, IdleConns: 0}}, nil, 0)
		assert.Equal(t, StatusDegraded, c.Check(ctx).Status)
	})

	t.Run("死信积压", func(t *testing.T) {
		q := &fakeQueue{stats: redisstorage.QueueStats{Dead: 10}}
		c := NewRedisChecker(&fakeRedis{}, q, 10)
		res := c.Check(ctx)
		assert.Equal(t, StatusDegraded, res.Status)
		assert.Equal(t, "dead letter backlog", res.Message)
	})

	t.Run("队列统计失败", func(t *testing.T) {
		c := NewRedisChecker(&fakeRedis{}, &fakeQueue{err: errors.New("boom")}, 0)
		assert.Equal(t, StatusDegraded, c.Check(ctx).Status)
	})
}

func TestHTTPRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	RegisterHTTPRoutes(r, NewAggregator(&mockChecker{"redis", StatusUnhealthy}))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), `"unhealthy"`)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
