package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 使用测试用Redis（需要真实Redis实例，不可用时跳过）
func setupTestQueue(t *testing.T) *OutboundQueue {
	rdb := goredis.NewClient(&goredis.Options{
		Addr: "localhost:6379",
		DB:   15, // 测试专用数据库
	})

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		t.Skip("Redis not available, skipping test")
		return nil
	}
	rdb.FlushDB(ctx)

	t.Cleanup(func() {
		rdb.FlushDB(ctx)
		_ = rdb.Close()
	})

	return NewOutboundQueue(&Client{Client: rdb}, "test:outbound")
}

func newMsg(id string, priority int, created time.Time) *OutboundMessage {
	return &OutboundMessage{
		ID:         id,
		Dst:        0xC000,
		Opcode:     0x8247,
		OpcodeName: "SCENE_STORE_UNACKNOWLEDGED",
		AID:        0x26,
		Parameters: []byte{0x04, 0x00},
		Priority:   priority,
		MaxRetry:   2,
		CreatedAt:  created,
		Timeout:    1000,
	}
}

func TestOutboundQueue_PriorityOrder(t *testing.T) {
	q := setupTestQueue(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, q.Enqueue(ctx, newMsg("low", 4, now)))
	require.NoError(t, q.Enqueue(ctx, newMsg("high-late", 1, now.Add(time.Second))))
	require.NoError(t, q.Enqueue(ctx, newMsg("high-early", 1, now)))

	for _, want := range []string{"high-early", "high-late", "low"} {
		msg, err := q.Dequeue(ctx)
		require.NoError(t, err)
		require.NotNil(t, msg)
		assert.Equal(t, want, msg.ID)
	}

	msg, err := q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Nil(t, msg)
}

func TestOutboundQueue_RetryThenDead(t *testing.T) {
	q := setupTestQueue(t)
	ctx := context.Background()

	msg := newMsg("m1", 2, time.Now())
	require.NoError(t, q.MarkProcessing(ctx, msg))

	stats, err := q.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Processing)

	require.NoError(t, q.Nack(ctx, msg, "timeout"))
	stats, err = q.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Pending)
	assert.Equal(t, int64(0), stats.Processing)

	again, err := q.Dequeue(ctx)
	require.NoError(t, err)
	require.NoError(t, q.Nack(ctx, again, "timeout"))

	stats, err = q.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Pending)
	assert.Equal(t, int64(1), stats.Dead)
}

func TestOutboundQueue_ZeroTimeoutKeepsProcessing(t *testing.T) {
	q := setupTestQueue(t)
	ctx := context.Background()

	msg := newMsg("no-timeout", 2, time.Now())
	msg.Timeout = 0
	require.NoError(t, q.MarkProcessing(ctx, msg))

	ttl, err := q.client.TTL(ctx, q.processingKey(msg.Dst)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	stats, err := q.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Processing)
}

func TestOutboundQueue_RequeueKeepsRetries(t *testing.T) {
	q := setupTestQueue(t)
	ctx := context.Background()

	msg := newMsg("m2", 2, time.Now())
	require.NoError(t, q.MarkProcessing(ctx, msg))
	require.NoError(t, q.Requeue(ctx, msg))

	stats, err := q.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Pending)
	assert.Equal(t, int64(0), stats.Processing)

	again, err := q.Dequeue(ctx)
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, 0, again.Retries)
}

func TestOutboundQueue_EnqueueBatch(t *testing.T) {
	q := setupTestQueue(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, q.EnqueueBatch(ctx, nil))
	require.NoError(t, q.EnqueueBatch(ctx, []*OutboundMessage{
		newMsg("b1", 3, now),
		newMsg("b2", 1, now),
	}))

	stats, err := q.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Pending)

	first, err := q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b2", first.ID)
}

func TestProcessingTTL(t *testing.T) {
	tests := []struct {
		name    string
		timeout int
		want    time.Duration
	}{
		{"两倍超时", 1500, 3 * time.Second},
		{"未设置超时", 0, defaultProcessingTTL},
		{"负数超时", -1, defaultProcessingTTL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := newMsg("x", 1, time.Now())
			msg.Timeout = tt.timeout
			assert.Equal(t, tt.want, processingTTL(msg))
		})
	}
}

func TestScoreOrdersByPriorityFirst(t *testing.T) {
	now := time.Now()
	urgent := newMsg("a", 1, now.Add(time.Hour))
	normal := newMsg("b", 3, now)
	assert.Less(t, score(urgent), score(normal))

	early := newMsg("c", 3, now)
	late := newMsg("d", 3, now.Add(time.Millisecond))
	assert.Less(t, score(early), score(late))
}

func TestParseMessage(t *testing.T) {
	msg, err := parseMessage(`{"id":"x","dst":49152,"opcode":33351,"parameters":"BAA="}`)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xC000), msg.Dst)
	assert.Equal(t, []byte{0x04, 0x00}, msg.Parameters)

	_, err = parseMessage(`{"dst":1}`)
	assert.Error(t, err)
	_, err = parseMessage("garbage")
	assert.Error(t, err)
}
