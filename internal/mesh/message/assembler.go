package message

import (
	"fmt"

	"github.com/taoyao-code/meshmsg/internal/mesh/opcode"
	"github.com/taoyao-code/meshmsg/internal/mesh/security"
)

// Layout 每种消息提供固定操作码与有序字段列表，由 Assemble 统一序列化
type Layout interface {
	Opcode() opcode.Opcode
	Fields() []Field
}

// Assembled 组装结果：交给上层传输/加密层的三元组
type Assembled struct {
	Opcode     opcode.Opcode
	AID        byte
	Parameters []byte
}

// Assemble 派生 AID 并按声明顺序、宽度、小端序写出参数
// 缓冲区长度恰好等于各字段宽度之和（无填充、无长度前缀）
func Assemble(appKey []byte, l Layout) (*Assembled, error) {
	a, err := assemble(appKey, l)
	if err != nil {
		return nil, err
	}
	notify(a)
	return a, nil
}

// AssembleUnobserved 与 Assemble 相同但不通知观察者，供自检等内部调用
func AssembleUnobserved(appKey []byte, l Layout) (*Assembled, error) {
	return assemble(appKey, l)
}

func assemble(appKey []byte, l Layout) (*Assembled, error) {
	if err := checkAppKey(appKey); err != nil {
		return nil, err
	}
	op := l.Opcode()
	if !op.Valid() {
		return nil, fmt.Errorf("%w: 0x%X", ErrUnsupportedOpcode, uint32(op))
	}

	aid, err := security.K4(appKey)
	if err != nil {
		return nil, fmt.Errorf("%w: derive aid: %v", ErrInvalidArgument, err)
	}

	fields := l.Fields()
	size := 0
	for _, f := range fields {
		if err := f.checkLayout(); err != nil {
			return nil, err
		}
		if err := f.checkRange(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		size += f.Size()
	}

	buf := make([]byte, size)
	off := 0
	for _, f := range fields {
		if off+f.Size() > len(buf) {
			return nil, fmt.Errorf("%w: %s overflows %d-byte buffer", ErrSerialization, f.Name, len(buf))
		}
		off += f.put(buf[off:])
	}
	if off != len(buf) {
		return nil, fmt.Errorf("%w: wrote %d of %d bytes", ErrSerialization, off, len(buf))
	}

	return &Assembled{Opcode: op, AID: aid, Parameters: buf}, nil
}

func checkAppKey(appKey []byte) error {
	if len(appKey) == 0 {
		return fmt.Errorf("%w: app key is required", ErrInvalidArgument)
	}
	if len(appKey) != security.KeySize {
		return fmt.Errorf("%w: app key must be %d bytes, got %d", ErrInvalidArgument, security.KeySize, len(appKey))
	}
	return nil
}
