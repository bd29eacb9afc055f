package message

import "errors"

var (
	// ErrInvalidArgument 调用方输入错误：AppKey 缺失/长度不符，或参数超出字段范围
	ErrInvalidArgument = errors.New("message: invalid argument")
	// ErrSerialization 组装器内部不一致（字段宽度非法、写入长度与分配不符），属于实现缺陷
	ErrSerialization = errors.New("message: serialization error")
	// ErrUnsupportedOpcode 操作码不在支持目录内
	ErrUnsupportedOpcode = errors.New("message: unsupported opcode")
)
