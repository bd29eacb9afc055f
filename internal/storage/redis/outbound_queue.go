package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// 键布局（prefix 默认 mesh:outbound）
//   {prefix}:queue              待处理（Sorted Set，按优先级+时间排序）
//   {prefix}:processing:{dst}   处理中（Hash，目标地址维度）
//   {prefix}:dead               死信（List）

// priorityScale 优先级权重，需大于毫秒时间戳量级
const priorityScale = 1e13

// defaultProcessingTTL Timeout 未设置时处理中标记的保留时间
const defaultProcessingTTL = time.Minute

// OutboundMessage 已组装、等待加密/传输层发送的访问消息
type OutboundMessage struct {
	ID          string    `json:"id"`            // 消息ID（uuid）
	Dst         uint16    `json:"dst"`           // 目标单播/组播地址
	AppKeyIndex int       `json:"app_key_index"` // 加密层按索引取 AppKey，队列内不存密钥
	Opcode      uint32    `json:"opcode"`
	OpcodeName  string    `json:"opcode_name"`
	AID         byte      `json:"aid"`
	Parameters  []byte    `json:"parameters"`
	Priority    int       `json:"priority"`  // 数值越小越先发送
	Retries     int       `json:"retries"`   // 已重试次数
	MaxRetry    int       `json:"max_retry"` // 最大重试次数
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Timeout     int       `json:"timeout"` // 处理超时（毫秒）
}

// QueueStats 队列统计
type QueueStats struct {
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Dead       int64 `json:"dead"`
}

// OutboundQueue Redis下行队列
type OutboundQueue struct {
	client *Client
	prefix string
}

// NewOutboundQueue 创建Redis下行队列
func NewOutboundQueue(client *Client, prefix string) *OutboundQueue {
	if prefix == "" {
		prefix = "mesh:outbound"
	}
	return &OutboundQueue{client: client, prefix: prefix}
}

func (q *OutboundQueue) queueKey() string { return q.prefix + ":queue" }
func (q *OutboundQueue) deadKey() string  { return q.prefix + ":dead" }
func (q *OutboundQueue) processingKey(dst uint16) string {
	return fmt.Sprintf("%s:processing:%04x", q.prefix, dst)
}

// score 优先级优先，同优先级按入队时间先后
func score(msg *OutboundMessage) float64 {
	return float64(msg.Priority)*priorityScale + float64(msg.CreatedAt.UnixMilli())
}

// processingTTL 处理超时的两倍；Expire 传 0 会立即删除键，未设置超时时取默认值
func processingTTL(msg *OutboundMessage) time.Duration {
	if msg.Timeout <= 0 {
		return defaultProcessingTTL
	}
	return time.Duration(msg.Timeout) * time.Millisecond * 2
}

func member(msg *OutboundMessage) (redis.Z, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return redis.Z{}, fmt.Errorf("marshal message: %w", err)
	}
	return redis.Z{Score: score(msg), Member: string(data)}, nil
}

// Enqueue 入队
func (q *OutboundQueue) Enqueue(ctx context.Context, msg *OutboundMessage) error {
	z, err := member(msg)
	if err != nil {
		return err
	}
	return q.client.ZAdd(ctx, q.queueKey(), z).Err()
}

// EnqueueBatch 批量入队（MULTI/EXEC），要么全部入队要么都不入队
func (q *OutboundQueue) EnqueueBatch(ctx context.Context, msgs []*OutboundMessage) error {
	if len(msgs) == 0 {
		return nil
	}
	members := make([]redis.Z, 0, len(msgs))
	for _, msg := range msgs {
		z, err := member(msg)
		if err != nil {
			return err
		}
		members = append(members, z)
	}
	_, err := q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, q.queueKey(), members...)
		return nil
	})
	return err
}

// Dequeue 出队（ZPOPMIN 原子取出最高优先级消息），队列为空返回 nil, nil
func (q *OutboundQueue) Dequeue(ctx context.Context) (*OutboundMessage, error) {
	result, err := q.client.ZPopMin(ctx, q.queueKey(), 1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	if len(result) == 0 {
		return nil, nil
	}

	member, ok := result[0].Member.(string)
	if !ok {
		return nil, fmt.Errorf("unexpected member type %T", result[0].Member)
	}
	msg, err := parseMessage(member)
	if err != nil {
		return nil, fmt.Errorf("parse message: %w", err)
	}
	return msg, nil
}

// MarkProcessing 标记消息为处理中，TTL 防止进程崩溃导致永久占用
func (q *OutboundQueue) MarkProcessing(ctx context.Context, msg *OutboundMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	key := q.processingKey(msg.Dst)
	pipe := q.client.Pipeline()
	pipe.HSet(ctx, key, msg.ID, data)
	pipe.Expire(ctx, key, processingTTL(msg))
	_, err = pipe.Exec(ctx)
	return err
}

// Ack 发送成功，移出处理中
func (q *OutboundQueue) Ack(ctx context.Context, msg *OutboundMessage) error {
	return q.client.HDel(ctx, q.processingKey(msg.Dst), msg.ID).Err()
}

// Requeue 未交给传输层（如熔断中），放回队列且不计重试次数
func (q *OutboundQueue) Requeue(ctx context.Context, msg *OutboundMessage) error {
	if err := q.client.HDel(ctx, q.processingKey(msg.Dst), msg.ID).Err(); err != nil {
		return err
	}
	return q.Enqueue(ctx, msg)
}

// Nack 发送失败：未超过重试上限则重新入队，否则进入死信
func (q *OutboundQueue) Nack(ctx context.Context, msg *OutboundMessage, errMsg string) error {
	if err := q.client.HDel(ctx, q.processingKey(msg.Dst), msg.ID).Err(); err != nil {
		return err
	}

	msg.Retries++
	msg.UpdatedAt = time.Now()

	if msg.Retries < msg.MaxRetry {
		return q.Enqueue(ctx, msg)
	}

	data, err := json.Marshal(map[string]interface{}{
		"message":   msg,
		"error":     errMsg,
		"failed_at": msg.UpdatedAt,
	})
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.deadKey(), data).Err()
}

// Stats 获取队列统计信息
func (q *OutboundQueue) Stats(ctx context.Context) (*QueueStats, error) {
	pending, err := q.client.ZCard(ctx, q.queueKey()).Result()
	if err != nil {
		return nil, err
	}
	dead, err := q.client.LLen(ctx, q.deadKey()).Result()
	if err != nil {
		return nil, err
	}

	var processing int64
	var cursor uint64
	for {
		keys, next, err := q.client.Scan(ctx, cursor, q.prefix+":processing:*", 100).Result()
		if err != nil {
			return nil, err
		}
		for _, key := range keys {
			n, err := q.client.HLen(ctx, key).Result()
			if err != nil {
				return nil, err
			}
			processing += n
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	return &QueueStats{Pending: pending, Processing: processing, Dead: dead}, nil
}

func parseMessage(member string) (*OutboundMessage, error) {
	var msg OutboundMessage
	if err := json.Unmarshal([]byte(member), &msg); err != nil {
		return nil, err
	}
	if msg.ID == "" {
		return nil, fmt.Errorf("message without id")
	}
	return &msg, nil
}
