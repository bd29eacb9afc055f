package outbound

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	redisstorage "github.com/taoyao-code/meshmsg/internal/storage/redis"
)

// State 熔断器状态
type State int

const (
	StateClosed   State = iota // 正常发送
	StateOpen                  // 传输层持续失败，直接拒绝
	StateHalfOpen              // 试探恢复
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

var (
	// ErrCircuitOpen 熔断打开，消息不交给传输层
	ErrCircuitOpen = errors.New("outbound: circuit breaker is open")
	// ErrTooManyProbes 半开状态试探数已满
	ErrTooManyProbes = errors.New("outbound: too many probes in half-open state")
)

// Breaker 包装 Sender：连续失败达到阈值后熔断，超时后半开试探
type Breaker struct {
	mu        sync.Mutex
	next      Sender
	state     State
	failures  int // 连续失败
	probes    int // 半开状态已放行
	successes int // 半开状态成功
	openedAt  time.Time
	trips     int64

	threshold int
	cooldown  time.Duration
	probeMax  int
	now       func() time.Time
	logger    *zap.Logger
}

// NewBreaker 创建熔断 Sender
func NewBreaker(next Sender, threshold int, cooldown time.Duration, logger *zap.Logger) *Breaker {
	if threshold <= 0 {
		threshold = 5
	}
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Breaker{
		next:      next,
		threshold: threshold,
		cooldown:  cooldown,
		probeMax:  3,
		now:       time.Now,
		logger:    logger,
	}
}

// Send 受熔断保护的发送
func (b *Breaker) Send(ctx context.Context, msg *redisstorage.OutboundMessage) error {
	if err := b.before(); err != nil {
		return err
	}
	err := b.next.Send(ctx, msg)
	b.after(err)
	return err
}

func (b *Breaker) before() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateOpen:
		if b.now().Sub(b.openedAt) < b.cooldown {
			return ErrCircuitOpen
		}
		b.transition(StateHalfOpen)
		b.probes, b.successes = 0, 0
		fallthrough
	case StateHalfOpen:
		if b.probes >= b.probeMax {
			return ErrTooManyProbes
		}
		b.probes++
	}
	return nil
}

func (b *Breaker) after(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.failures++
		if b.state == StateHalfOpen || b.failures >= b.threshold {
			b.open()
		}
		return
	}

	b.failures = 0
	if b.state == StateHalfOpen {
		b.successes++
		if b.successes >= b.probeMax {
			b.transition(StateClosed)
		}
	}
}

func (b *Breaker) open() {
	b.openedAt = b.now()
	b.trips++
	b.transition(StateOpen)
}

func (b *Breaker) transition(to State) {
	if b.state == to {
		return
	}
	b.logger.Warn("outbound breaker state changed",
		zap.String("from", b.state.String()),
		zap.String("to", to.String()))
	b.state = to
}

// Allow 下一次发送是否会被放行（只读，不占用试探名额）
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateOpen:
		return b.now().Sub(b.openedAt) >= b.cooldown
	case StateHalfOpen:
		return b.probes < b.probeMax
	default:
		return true
	}
}

// State 当前状态
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Trips 累计熔断次数
func (b *Breaker) Trips() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.trips
}
