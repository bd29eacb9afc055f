// Package command 以名称描述的组装请求（HTTP 请求体、YAML 批量文件共用）
package command

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taoyao-code/meshmsg/internal/mesh/message"
	"github.com/taoyao-code/meshmsg/internal/mesh/opcode"
)

const (
	// MaxAppKeyIndex AppKey 索引为 12 位
	MaxAppKeyIndex = 0x0FFF
	// UnassignedAddress 未分配地址，不能作为发送目标
	UnassignedAddress uint16 = 0x0000
)

// Command 一条组装请求
type Command struct {
	AppKey      string           `json:"app_key" yaml:"app_key" binding:"required"`
	Opcode      string           `json:"opcode" yaml:"opcode" binding:"required"`
	Params      map[string]int64 `json:"params" yaml:"params"`
	Dst         string           `json:"dst,omitempty" yaml:"dst,omitempty"`
	AppKeyIndex int              `json:"app_key_index,omitempty" yaml:"app_key_index,omitempty"`
}

// Build 解析 AppKey/操作码 并组装消息
// 输入格式错误统一包装为 message.ErrInvalidArgument / message.ErrUnsupportedOpcode
func (c Command) Build() (message.Message, error) {
	if c.AppKeyIndex < 0 || c.AppKeyIndex > MaxAppKeyIndex {
		return nil, fmt.Errorf("%w: app_key_index %d out of range 0..%d", message.ErrInvalidArgument, c.AppKeyIndex, MaxAppKeyIndex)
	}
	key, err := ParseAppKey(c.AppKey)
	if err != nil {
		return nil, err
	}
	op, err := opcode.Parse(c.Opcode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", message.ErrUnsupportedOpcode, err)
	}
	return message.Build(key, op, message.Params(c.Params))
}

// ParseAppKey 十六进制 AppKey，允许空格与 0x 前缀
func ParseAppKey(s string) ([]byte, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: app_key is not hex: %v", message.ErrInvalidArgument, err)
	}
	return key, nil
}

// ParseDst 目标地址，支持十进制或 0x 前缀十六进制；空串返回 0
func ParseDst(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: dst %q: %v", message.ErrInvalidArgument, s, err)
	}
	return uint16(v), nil
}

// Result 组装结果的可读形式
type Result struct {
	Opcode        string `json:"opcode" yaml:"opcode"`
	OpcodeHex     string `json:"opcode_hex" yaml:"opcode_hex"`
	AID           string `json:"aid" yaml:"aid"`
	Parameters    string `json:"parameters" yaml:"parameters"`
	AccessPayload string `json:"access_payload" yaml:"access_payload"`
	Wire          string `json:"wire" yaml:"wire"`
	Acknowledged  bool   `json:"acknowledged" yaml:"acknowledged"`
}

// NewResult 渲染组装结果
func NewResult(m message.Message) Result {
	op := m.Opcode()
	return Result{
		Opcode:        op.String(),
		OpcodeHex:     OpcodeHex(op),
		AID:           fmt.Sprintf("0x%02X", m.AID()),
		Parameters:    hex.EncodeToString(m.Parameters()),
		AccessPayload: hex.EncodeToString(message.AccessPayload(m)),
		Wire:          hex.EncodeToString(message.Encode(m)),
		Acknowledged:  op.Acknowledged(),
	}
}

// OpcodeHex 按线路宽度输出十六进制，如 0x8247
func OpcodeHex(op opcode.Opcode) string {
	return fmt.Sprintf("0x%0*X", op.Size()*2, uint32(op))
}

// Batch YAML 批量文件
//
//	defaults:
//	  app_key: 000102...0f
//	commands:
//	  - opcode: SCENE_STORE_UNACKNOWLEDGED
//	    params: {scene: 4}
type Batch struct {
	Defaults struct {
		AppKey string `yaml:"app_key"`
		Dst    string `yaml:"dst"`
	} `yaml:"defaults"`
	Commands []Command `yaml:"commands"`
}

// Decode 读取批量文件并填充缺省 AppKey/目标地址
func Decode(r io.Reader) ([]Command, error) {
	var b Batch
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&b); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode batch: %w", err)
	}

	cmds := make([]Command, len(b.Commands))
	for i, c := range b.Commands {
		if c.AppKey == "" {
			c.AppKey = b.Defaults.AppKey
		}
		if c.Dst == "" {
			c.Dst = b.Defaults.Dst
		}
		cmds[i] = c
	}
	return cmds, nil
}

// LoadFile 从文件读取批量命令
func LoadFile(path string) ([]Command, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
