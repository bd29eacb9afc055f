package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taoyao-code/meshmsg/internal/mesh/command"
	"github.com/taoyao-code/meshmsg/internal/mesh/message"
	"github.com/taoyao-code/meshmsg/internal/mesh/opcode"
	"github.com/taoyao-code/meshmsg/internal/metrics"
	"github.com/taoyao-code/meshmsg/internal/outbound"
	redisstorage "github.com/taoyao-code/meshmsg/internal/storage/redis"
)

// 业务错误码（StandardResponse.Code）
const (
	CodeOK                = 0
	CodeInvalidArgument   = 40001
	CodeUnsupportedOpcode = 40002
	CodeQueueDisabled     = 50301
	CodeInternal          = 50001
)

// maxBatchSize 单次批量组装上限
const maxBatchSize = 256

// StandardResponse 标准响应格式
type StandardResponse struct {
	Code      int         `json:"code"`           // 0=成功, >0=错误码
	Message   string      `json:"message"`        // 消息
	Data      interface{} `json:"data,omitempty"` // 业务数据
	RequestID string      `json:"request_id"`     // 请求追踪ID
	Timestamp int64       `json:"timestamp"`
}

// OutboundQueue 下行队列（Redis 未启用时为 nil）
type OutboundQueue interface {
	Enqueue(ctx context.Context, msg *redisstorage.OutboundMessage) error
	EnqueueBatch(ctx context.Context, msgs []*redisstorage.OutboundMessage) error
	Stats(ctx context.Context) (*redisstorage.QueueStats, error)
}

// AssembleRequest 组装请求
type AssembleRequest struct {
	command.Command
	Enqueue bool `json:"enqueue"`
}

// AssembleResponse 组装结果
type AssembleResponse struct {
	ID string `json:"id,omitempty"` // 入队后的消息ID
	command.Result
	Dst      string `json:"dst,omitempty"`
	Priority int    `json:"priority"`
	Enqueued bool   `json:"enqueued"`
}

// OpcodeInfo 操作码目录项
type OpcodeInfo struct {
	Name         string `json:"name"`
	Hex          string `json:"hex"`
	Model        string `json:"model"`
	Acknowledged bool   `json:"acknowledged"`
	Size         int    `json:"size"`
	Priority     int    `json:"priority"`
}

// MessageHandler 消息组装API
type MessageHandler struct {
	queue    OutboundQueue
	maxRetry int
	timeout  time.Duration
	metrics  *metrics.AppMetrics
	logger   *zap.Logger
}

// NewMessageHandler 创建处理器；queue、appm 可为空
func NewMessageHandler(queue OutboundQueue, maxRetry int, timeout time.Duration, appm *metrics.AppMetrics, logger *zap.Logger) *MessageHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageHandler{
		queue:    queue,
		maxRetry: maxRetry,
		timeout:  timeout,
		metrics:  appm,
		logger:   logger,
	}
}

// Assemble 组装单条消息
// @Summary 组装访问层消息
// @Tags 消息
// @Accept json
// @Produce json
// @Param body body AssembleRequest true "组装请求"
// @Success 200 {object} StandardResponse
// @Failure 400 {object} StandardResponse "参数错误或不支持的操作码"
// @Router /api/v1/messages [post]
func (h *MessageHandler) Assemble(c *gin.Context) {
	var req AssembleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, CodeInvalidArgument, err.Error())
		return
	}

	p, status, code, err := h.prepare(req)
	if err != nil {
		h.fail(c, status, code, err.Error())
		return
	}
	if p.msg != nil {
		if err := h.enqueue(c.Request.Context(), []*prepared{&p}); err != nil {
			h.fail(c, http.StatusInternalServerError, CodeInternal, err.Error())
			return
		}
	}
	h.ok(c, p.resp)
}

// AssembleBatch 批量组装，任一条失败则整体失败并指出序号
// 全部组装成功后才一次性入队
// @Summary 批量组装访问层消息
// @Tags 消息
// @Accept json
// @Produce json
// @Param body body []AssembleRequest true "组装请求列表"
// @Success 200 {object} StandardResponse
// @Router /api/v1/messages/batch [post]
func (h *MessageHandler) AssembleBatch(c *gin.Context) {
	var reqs []AssembleRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		h.fail(c, http.StatusBadRequest, CodeInvalidArgument, err.Error())
		return
	}
	if len(reqs) == 0 || len(reqs) > maxBatchSize {
		h.fail(c, http.StatusBadRequest, CodeInvalidArgument, "batch size must be 1..256")
		return
	}

	items := make([]prepared, len(reqs))
	var pending []*prepared
	for i, req := range reqs {
		p, status, code, err := h.prepare(req)
		if err != nil {
			h.fail(c, status, code, "item "+strconv.Itoa(i)+": "+err.Error())
			return
		}
		items[i] = p
		if p.msg != nil {
			pending = append(pending, &items[i])
		}
	}

	if err := h.enqueue(c.Request.Context(), pending); err != nil {
		h.fail(c, http.StatusInternalServerError, CodeInternal, err.Error())
		return
	}

	out := make([]AssembleResponse, len(items))
	for i := range items {
		out[i] = items[i].resp
	}
	h.ok(c, out)
}

// ListOpcodes 支持的操作码目录
// @Summary 操作码目录
// @Tags 消息
// @Produce json
// @Success 200 {object} StandardResponse
// @Router /api/v1/opcodes [get]
func (h *MessageHandler) ListOpcodes(c *gin.Context) {
	ops := opcode.All()
	list := make([]OpcodeInfo, 0, len(ops))
	for _, op := range ops {
		list = append(list, OpcodeInfo{
			Name:         op.String(),
			Hex:          command.OpcodeHex(op),
			Model:        string(op.Model()),
			Acknowledged: op.Acknowledged(),
			Size:         op.Size(),
			Priority:     outbound.GetCommandPriority(op),
		})
	}
	h.ok(c, list)
}

// QueueStats 下行队列统计
// @Summary 下行队列统计
// @Tags 下行
// @Produce json
// @Success 200 {object} StandardResponse
// @Failure 503 {object} StandardResponse "队列未启用"
// @Router /api/v1/outbound/stats [get]
func (h *MessageHandler) QueueStats(c *gin.Context) {
	if h.queue == nil {
		h.fail(c, http.StatusServiceUnavailable, CodeQueueDisabled, "outbound queue is not enabled")
		return
	}
	stats, err := h.queue.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("queue stats failed", zap.Error(err))
		h.fail(c, http.StatusInternalServerError, CodeInternal, "queue stats failed")
		return
	}
	h.ok(c, stats)
}

// prepared 校验并组装完成的请求；msg 非空表示待入队
type prepared struct {
	resp AssembleResponse
	msg  *redisstorage.OutboundMessage
}

// prepare 只做校验与组装，不产生副作用
func (h *MessageHandler) prepare(req AssembleRequest) (prepared, int, int, error) {
	dst, err := command.ParseDst(req.Dst)
	if err != nil {
		h.countError(err)
		return prepared{}, http.StatusBadRequest, CodeInvalidArgument, err
	}

	m, err := req.Build()
	if err != nil {
		h.countError(err)
		status, code := mapError(err)
		return prepared{}, status, code, err
	}

	p := prepared{resp: AssembleResponse{
		Result:   command.NewResult(m),
		Dst:      req.Dst,
		Priority: outbound.GetCommandPriority(m.Opcode()),
	}}
	if !req.Enqueue {
		return p, http.StatusOK, CodeOK, nil
	}

	if h.queue == nil {
		return prepared{}, http.StatusServiceUnavailable, CodeQueueDisabled, errors.New("outbound queue is not enabled")
	}
	if dst == command.UnassignedAddress {
		err := errors.New("dst is required and must not be the unassigned address when enqueue is true")
		return prepared{}, http.StatusBadRequest, CodeInvalidArgument, err
	}

	p.msg = outbound.NewOutboundMessage(m, dst, req.AppKeyIndex, h.maxRetry, h.timeout)
	return p, http.StatusOK, CodeOK, nil
}

// enqueue 入队并回填消息ID；多条时整体入队
func (h *MessageHandler) enqueue(ctx context.Context, items []*prepared) error {
	if len(items) == 0 {
		return nil
	}

	var err error
	if len(items) == 1 {
		err = h.queue.Enqueue(ctx, items[0].msg)
	} else {
		msgs := make([]*redisstorage.OutboundMessage, len(items))
		for i, p := range items {
			msgs[i] = p.msg
		}
		err = h.queue.EnqueueBatch(ctx, msgs)
	}
	if err != nil {
		h.countOutbound("error", len(items))
		h.logger.Error("enqueue failed",
			zap.Int("count", len(items)),
			zap.String("opcode", items[0].msg.OpcodeName),
			zap.Uint16("dst", items[0].msg.Dst),
			zap.Error(err))
		return errors.New("enqueue failed")
	}
	h.countOutbound("ok", len(items))

	for _, p := range items {
		p.resp.ID = p.msg.ID
		p.resp.Enqueued = true
	}
	return nil
}

// mapError 输入类错误 400，其余 500
func mapError(err error) (int, int) {
	switch {
	case errors.Is(err, message.ErrInvalidArgument):
		return http.StatusBadRequest, CodeInvalidArgument
	case errors.Is(err, message.ErrUnsupportedOpcode):
		return http.StatusBadRequest, CodeUnsupportedOpcode
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, message.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, message.ErrUnsupportedOpcode):
		return "unsupported_opcode"
	case errors.Is(err, message.ErrSerialization):
		return "serialization"
	default:
		return "other"
	}
}

func (h *MessageHandler) countError(err error) {
	if h.metrics != nil {
		h.metrics.AssembleErrorTotal.WithLabelValues(errorReason(err)).Inc()
	}
}

func (h *MessageHandler) countOutbound(result string, n int) {
	if h.metrics != nil {
		h.metrics.OutboundTotal.WithLabelValues(result).Add(float64(n))
	}
}

func (h *MessageHandler) ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, StandardResponse{
		Code:      CodeOK,
		Message:   "success",
		Data:      data,
		RequestID: requestid.Get(c),
		Timestamp: time.Now().Unix(),
	})
}

func (h *MessageHandler) fail(c *gin.Context, status, code int, msg string) {
	c.JSON(status, StandardResponse{
		Code:      code,
		Message:   msg,
		RequestID: requestid.Get(c),
		Timestamp: time.Now().Unix(),
	})
}
