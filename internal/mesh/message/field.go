package message

import (
	"fmt"
	"math"
)

// Order 字段字节序。Mesh 访问层参数一律小端，BigEndian 仅用于声明错误检测
type Order uint8

const (
	LittleEndian Order = iota
	BigEndian
)

// Field 参数字段描述：值、位宽、有无符号、字节序
// 字段按声明顺序写入，不允许重排
type Field struct {
	Name   string
	Value  int64
	Bits   uint8
	Signed bool
	Order  Order
}

// U8 无符号8位字段
func U8(name string, v int64) Field { return Field{Name: name, Value: v, Bits: 8} }

// U16 无符号16位小端字段
func U16(name string, v int64) Field { return Field{Name: name, Value: v, Bits: 16} }

// S16 有符号16位小端字段
func S16(name string, v int64) Field { return Field{Name: name, Value: v, Bits: 16, Signed: true} }

// S32 有符号32位小端字段
func S32(name string, v int64) Field { return Field{Name: name, Value: v, Bits: 32, Signed: true} }

// Size 字段字节数
func (f Field) Size() int { return int(f.Bits) / 8 }

// checkLayout 校验字段声明本身（组装器缺陷）
func (f Field) checkLayout() error {
	switch f.Bits {
	case 8, 16, 24, 32, 64:
	default:
		return fmt.Errorf("%w: field %s declares %d bits", ErrSerialization, f.Name, f.Bits)
	}
	if f.Order != LittleEndian {
		return fmt.Errorf("%w: field %s must be little-endian", ErrSerialization, f.Name)
	}
	return nil
}

// checkRange 值必须能被声明位宽完整表示，不做静默截断
func (f Field) checkRange() error {
	lo, hi := f.Bounds()
	if f.Signed {
		if f.Value < lo || f.Value > hi {
			return fmt.Errorf("%w: %s=%d out of range [%d, %d]", ErrInvalidArgument, f.Name, f.Value, lo, hi)
		}
		return nil
	}
	if f.Value < 0 || (f.Bits < 64 && f.Value > hi) {
		return fmt.Errorf("%w: %s=%d out of range [0, %d]", ErrInvalidArgument, f.Name, f.Value, hi)
	}
	return nil
}

// Bounds 字段可表示的取值范围
func (f Field) Bounds() (lo, hi int64) {
	if f.Bits >= 64 {
		if f.Signed {
			return math.MinInt64, math.MaxInt64
		}
		return 0, math.MaxInt64
	}
	if f.Signed {
		return -(1 << (f.Bits - 1)), 1<<(f.Bits-1) - 1
	}
	return 0, 1<<f.Bits - 1
}

// put 小端写入，返回写入字节数
func (f Field) put(dst []byte) int {
	u := uint64(f.Value)
	n := f.Size()
	for i := 0; i < n; i++ {
		dst[i] = byte(u >> (8 * i))
	}
	return n
}
