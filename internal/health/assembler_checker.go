package health

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/taoyao-code/meshmsg/internal/mesh/message"
	"github.com/taoyao-code/meshmsg/internal/mesh/opcode"
)

// selfCheckLayout Scene Store Unacknowledged, 场景 4
type selfCheckLayout struct{}

func (selfCheckLayout) Opcode() opcode.Opcode { return opcode.SceneStoreUnacknowledged }
func (selfCheckLayout) Fields() []message.Field {
	return []message.Field{message.U16("scene", 4)}
}

// AssemblerChecker 组装自检：用全零 AppKey 组装一条已知报文并比对
// 走不通知观察者的路径，探活不计入组装指标
type AssemblerChecker struct{}

// NewAssemblerChecker 创建组装自检器
func NewAssemblerChecker() *AssemblerChecker { return &AssemblerChecker{} }

// Name 返回检查器名称
func (c *AssemblerChecker) Name() string { return "assembler" }

// Check 执行自检
func (c *AssemblerChecker) Check(ctx context.Context) CheckResult {
	start := time.Now()

	a, err := message.AssembleUnobserved(make([]byte, 16), selfCheckLayout{})
	if err != nil {
		return CheckResult{
			Status:  StatusUnhealthy,
			Message: fmt.Sprintf("assemble failed: %v", err),
			Latency: time.Since(start),
		}
	}

	want := []byte{0x82, 0x47, 0x04, 0x00}
	got := append(a.Opcode.Bytes(), a.Parameters...)
	if !bytes.Equal(got, want) {
		return CheckResult{
			Status:  StatusUnhealthy,
			Message: fmt.Sprintf("unexpected payload %x", got),
			Latency: time.Since(start),
		}
	}

	return CheckResult{
		Status:  StatusHealthy,
		Message: "ok",
		Details: map[string]interface{}{"aid": fmt.Sprintf("0x%02X", a.AID)},
		Latency: time.Since(start),
	}
}
