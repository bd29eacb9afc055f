package outbound

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taoyao-code/meshmsg/internal/mesh/message"
	redisstorage "github.com/taoyao-code/meshmsg/internal/storage/redis"
)

// Queue 下行队列（由 redisstorage.OutboundQueue 实现）
type Queue interface {
	Enqueue(ctx context.Context, msg *redisstorage.OutboundMessage) error
	Dequeue(ctx context.Context) (*redisstorage.OutboundMessage, error)
	MarkProcessing(ctx context.Context, msg *redisstorage.OutboundMessage) error
	Requeue(ctx context.Context, msg *redisstorage.OutboundMessage) error
	Ack(ctx context.Context, msg *redisstorage.OutboundMessage) error
	Nack(ctx context.Context, msg *redisstorage.OutboundMessage, errMsg string) error
	Stats(ctx context.Context) (*redisstorage.QueueStats, error)
}

// Sender 加密/传输层：接收组装好的元组并负责上层传输加密与分段
type Sender interface {
	Send(ctx context.Context, msg *redisstorage.OutboundMessage) error
}

// Gate 出队前的放行判断，Breaker 实现；不放行时本轮不出队
type Gate interface {
	Allow() bool
}

// SenderFunc 函数适配
type SenderFunc func(ctx context.Context, msg *redisstorage.OutboundMessage) error

func (f SenderFunc) Send(ctx context.Context, msg *redisstorage.OutboundMessage) error {
	return f(ctx, msg)
}

// NewOutboundMessage 将已组装消息包装为队列消息
func NewOutboundMessage(m message.Message, dst uint16, appKeyIndex, maxRetry int, timeout time.Duration) *redisstorage.OutboundMessage {
	now := time.Now()
	return &redisstorage.OutboundMessage{
		ID:          uuid.NewString(),
		Dst:         dst,
		AppKeyIndex: appKeyIndex,
		Opcode:      uint32(m.Opcode()),
		OpcodeName:  m.Opcode().String(),
		AID:         m.AID(),
		Parameters:  m.Parameters(),
		Priority:    GetCommandPriority(m.Opcode()),
		MaxRetry:    maxRetry,
		CreatedAt:   now,
		UpdatedAt:   now,
		Timeout:     int(timeout / time.Millisecond),
	}
}

// RedisWorker 下行队列Worker：出队后交给 Sender
type RedisWorker struct {
	queue      Queue
	sender     Sender
	logger     *zap.Logger
	throttleMs int
	stopC      chan struct{}

	// 统计
	sent      atomic.Int64
	failed    atomic.Int64
	retried   atomic.Int64
	deadCount atomic.Int64
	deferred  atomic.Int64 // 熔断拒绝后放回队列
}

// NewRedisWorker 创建Worker
func NewRedisWorker(queue Queue, sender Sender, throttleMs int, logger *zap.Logger) *RedisWorker {
	if throttleMs <= 0 {
		throttleMs = 50
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisWorker{
		queue:      queue,
		sender:     sender,
		throttleMs: throttleMs,
		logger:     logger,
		stopC:      make(chan struct{}),
	}
}

// Start 启动Worker（阻塞直到 ctx 取消或 Stop）
func (w *RedisWorker) Start(ctx context.Context) {
	w.logger.Info("outbound worker started")

	ticker := time.NewTicker(time.Duration(w.throttleMs) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("outbound worker stopping")
			return
		case <-w.stopC:
			w.logger.Info("outbound worker stopped")
			return
		case <-ticker.C:
			w.processOne(ctx)
		}
	}
}

// Stop 停止Worker
func (w *RedisWorker) Stop() {
	close(w.stopC)
}

// processOne 处理一条消息，队列为空返回 false
func (w *RedisWorker) processOne(ctx context.Context) bool {
	if g, ok := w.sender.(Gate); ok && !g.Allow() {
		return false
	}

	msg, err := w.queue.Dequeue(ctx)
	if err != nil {
		w.logger.Error("dequeue failed", zap.Error(err))
		return false
	}
	if msg == nil {
		return false
	}

	if err := w.queue.MarkProcessing(ctx, msg); err != nil {
		w.logger.Error("mark processing failed",
			zap.String("msg_id", msg.ID),
			zap.Error(err))
		return true
	}

	if w.sender == nil {
		w.nack(ctx, msg, "sender not set")
		return true
	}

	sendCtx := ctx
	if msg.Timeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, time.Duration(msg.Timeout)*time.Millisecond)
		defer cancel()
	}

	if err := w.sender.Send(sendCtx, msg); err != nil {
		// 熔断拒绝：消息未到达传输层，不消耗重试次数
		if errors.Is(err, ErrCircuitOpen) || errors.Is(err, ErrTooManyProbes) {
			w.requeue(ctx, msg, err)
			return true
		}
		w.logger.Warn("send failed",
			zap.String("msg_id", msg.ID),
			zap.String("opcode", msg.OpcodeName),
			zap.Uint16("dst", msg.Dst),
			zap.Error(err))
		w.nack(ctx, msg, fmt.Sprintf("send failed: %v", err))
		return true
	}

	if err := w.queue.Ack(ctx, msg); err != nil {
		w.logger.Error("ack failed",
			zap.String("msg_id", msg.ID),
			zap.Error(err))
		return true
	}

	w.sent.Add(1)
	w.logger.Debug("outbound message sent",
		zap.String("msg_id", msg.ID),
		zap.String("opcode", msg.OpcodeName),
		zap.Uint16("dst", msg.Dst),
		zap.Int("bytes", len(msg.Parameters)))
	return true
}

func (w *RedisWorker) requeue(ctx context.Context, msg *redisstorage.OutboundMessage, cause error) {
	if err := w.queue.Requeue(ctx, msg); err != nil {
		w.logger.Error("requeue failed",
			zap.String("msg_id", msg.ID),
			zap.NamedError("cause", cause),
			zap.Error(err))
		return
	}
	w.deferred.Add(1)
	w.logger.Debug("message deferred",
		zap.String("msg_id", msg.ID),
		zap.Error(cause))
}

// nack 标记失败
func (w *RedisWorker) nack(ctx context.Context, msg *redisstorage.OutboundMessage, errMsg string) {
	// Nack 会递增 Retries，先记录判断依据
	dead := msg.Retries+1 >= msg.MaxRetry

	if err := w.queue.Nack(ctx, msg, errMsg); err != nil {
		w.logger.Error("nack failed",
			zap.String("msg_id", msg.ID),
			zap.Error(err))
		return
	}

	if dead {
		w.deadCount.Add(1)
		w.logger.Warn("message moved to dead queue",
			zap.String("msg_id", msg.ID),
			zap.String("opcode", msg.OpcodeName),
			zap.String("error", errMsg))
	} else {
		w.retried.Add(1)
		w.logger.Debug("message retrying",
			zap.String("msg_id", msg.ID),
			zap.Int("retry", msg.Retries))
	}

	w.failed.Add(1)
}

// Stats 获取统计信息
func (w *RedisWorker) Stats(ctx context.Context) map[string]interface{} {
	queueStats, _ := w.queue.Stats(ctx)

	return map[string]interface{}{
		"sent":       w.sent.Load(),
		"failed":     w.failed.Load(),
		"retried":    w.retried.Load(),
		"dead_count": w.deadCount.Load(),
		"deferred":   w.deferred.Load(),
		"queue":      queueStats,
	}
}

// LogSender 仅记录线路元组的 Sender，未接入传输层时使用
func LogSender(logger *zap.Logger) Sender {
	return SenderFunc(func(_ context.Context, msg *redisstorage.OutboundMessage) error {
		logger.Info("outbound tuple",
			zap.String("msg_id", msg.ID),
			zap.Uint16("dst", msg.Dst),
			zap.Int("app_key_index", msg.AppKeyIndex),
			zap.String("opcode", msg.OpcodeName),
			zap.Uint8("aid", msg.AID),
			zap.String("params_hex", fmt.Sprintf("%x", msg.Parameters)))
		return nil
	})
}
