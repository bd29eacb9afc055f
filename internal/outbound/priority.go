package outbound

import "github.com/taoyao-code/meshmsg/internal/mesh/opcode"

// 下行消息优先级定义
// 注意: 数值越小=优先级越高（Redis ZPOPMIN取最小score）
const (
	// PriorityEmergency 紧急（场景/开关的非确认控制，需即时生效）
	PriorityEmergency = 1

	// PriorityHigh 其他非确认控制
	PriorityHigh = 2

	// PriorityNormal 确认型设置
	PriorityNormal = 3

	// PriorityLow 状态查询
	PriorityLow = 4

	// PriorityBackground 后台查询（电量、时间）
	PriorityBackground = 5
)

// GetCommandPriority 根据操作码返回优先级
func GetCommandPriority(op opcode.Opcode) int {
	if !op.Valid() {
		return PriorityNormal
	}

	switch op.Kind() {
	case opcode.KindSetUnacknowledged:
		switch op.Model() {
		case opcode.ModelScene, opcode.ModelGenericOnOff:
			return PriorityEmergency
		}
		return PriorityHigh

	case opcode.KindSet:
		return PriorityNormal

	default:
		switch op.Model() {
		case opcode.ModelGenericBattery, opcode.ModelTime:
			return PriorityBackground
		}
		return PriorityLow
	}
}
