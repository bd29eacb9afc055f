package message

import (
	"fmt"

	"github.com/taoyao-code/meshmsg/internal/mesh/opcode"
)

// Message 已组装完成的访问层消息，构造成功即不可变
type Message interface {
	Opcode() opcode.Opcode
	AID() byte
	Parameters() []byte
}

// validator 消息级业务范围校验（在组装前执行）
type validator interface {
	validate() error
}

// base 保存构造时一次性计算的 AID 与参数，供各消息嵌入
type base struct {
	aid    byte
	params []byte
}

// AID AppKey 派生的6位认证标识
func (b *base) AID() byte { return b.aid }

// Parameters 参数字节副本
func (b *base) Parameters() []byte {
	out := make([]byte, len(b.params))
	copy(out, b.params)
	return out
}

func (b *base) assemble(appKey []byte, l Layout) error {
	if v, ok := l.(validator); ok {
		if err := v.validate(); err != nil {
			return err
		}
	}
	a, err := Assemble(appKey, l)
	if err != nil {
		return err
	}
	b.aid = a.AID
	b.params = a.Parameters
	return nil
}

// AccessPayload 访问层 PDU：操作码(大端) + 参数
func AccessPayload(m Message) []byte {
	op := m.Opcode().Bytes()
	params := m.Parameters()
	out := make([]byte, 0, len(op)+len(params))
	out = append(out, op...)
	return append(out, params...)
}

// Encode 交给加密/传输层的线路元组：操作码(大端) + AID(1B) + 参数(小端字段)
func Encode(m Message) []byte {
	op := m.Opcode().Bytes()
	params := m.Parameters()
	out := make([]byte, 0, len(op)+1+len(params))
	out = append(out, op...)
	out = append(out, m.AID())
	return append(out, params...)
}

// Transition 可选渐变参数：Transition Time(步数+分辨率) 与 Delay
type Transition struct {
	Steps      int // 0x00-0x3E，0x3F 表示未知，不可下发
	Resolution int // 0:100ms 1:1s 2:10s 3:10min
	Delay      int // 5ms 为单位
}

const (
	maxTransitionSteps      = 0x3E
	maxTransitionResolution = 0x03
)

func validateTransitionTime(steps, resolution int) error {
	if steps < 0 || steps > maxTransitionSteps {
		return fmt.Errorf("%w: transition steps %d out of range [0, %d]", ErrInvalidArgument, steps, maxTransitionSteps)
	}
	if resolution < 0 || resolution > maxTransitionResolution {
		return fmt.Errorf("%w: transition resolution %d out of range [0, %d]", ErrInvalidArgument, resolution, maxTransitionResolution)
	}
	return nil
}

// encodeTransitionTime bit7-6 分辨率，bit5-0 步数
func encodeTransitionTime(steps, resolution int) int64 {
	return int64(resolution<<6 | steps)
}

func (t *Transition) validate() error {
	if t == nil {
		return nil
	}
	return validateTransitionTime(t.Steps, t.Resolution)
}

// fields 有渐变时追加 Transition Time 与 Delay 两个字节
func (t *Transition) fields() []Field {
	if t == nil {
		return nil
	}
	return []Field{
		U8("transitionTime", encodeTransitionTime(t.Steps, t.Resolution)),
		U8("delay", int64(t.Delay)),
	}
}

func copyTransition(t *Transition) *Transition {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// transactional 带 TID 与可选渐变的 Set 类消息共用尾部
type transactional struct {
	tid        int
	transition *Transition
}

func (t *transactional) TID() int { return t.tid }

func (t *transactional) Transition() *Transition { return copyTransition(t.transition) }

func (t *transactional) tail() []Field {
	return append([]Field{U8("tid", int64(t.tid))}, t.transition.fields()...)
}
