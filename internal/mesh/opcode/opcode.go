package opcode

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Opcode 应用层消息操作码（Mesh Model 规范分配）
// 1字节: 0x00-0x7E；2字节: 0x8000-0xBFFF；3字节: 0xC00000-0xFFFFFF（厂商）
type Opcode uint32

// Generic OnOff
const (
	GenericOnOffGet               Opcode = 0x8201
	GenericOnOffSet               Opcode = 0x8202
	GenericOnOffSetUnacknowledged Opcode = 0x8203
)

// Generic Level
const (
	GenericLevelGet               Opcode = 0x8205
	GenericLevelSet               Opcode = 0x8206
	GenericLevelSetUnacknowledged Opcode = 0x8207
	GenericDeltaSet               Opcode = 0x8209
	GenericDeltaSetUnacknowledged Opcode = 0x820A
	GenericMoveSet                Opcode = 0x820B
	GenericMoveSetUnacknowledged  Opcode = 0x820C
)

// Generic Default Transition Time
const (
	GenericDefaultTransitionTimeGet               Opcode = 0x820D
	GenericDefaultTransitionTimeSet               Opcode = 0x820E
	GenericDefaultTransitionTimeSetUnacknowledged Opcode = 0x820F
)

// Generic Power OnOff
const (
	GenericOnPowerUpGet               Opcode = 0x8211
	GenericOnPowerUpSet               Opcode = 0x8213
	GenericOnPowerUpSetUnacknowledged Opcode = 0x8214
)

// Generic Power Level
const (
	GenericPowerLevelGet               Opcode = 0x8215
	GenericPowerLevelSet               Opcode = 0x8216
	GenericPowerLevelSetUnacknowledged Opcode = 0x8217
)

// Generic Battery / Time
const (
	GenericBatteryGet Opcode = 0x8223
	TimeGet           Opcode = 0x8237
)

// Scene
const (
	SceneGet                  Opcode = 0x8241
	SceneRecall               Opcode = 0x8242
	SceneRecallUnacknowledged Opcode = 0x8243
	SceneRegisterGet          Opcode = 0x8244
	SceneStore                Opcode = 0x8246
	SceneStoreUnacknowledged  Opcode = 0x8247
	SceneDelete               Opcode = 0x829E
	SceneDeleteUnacknowledged Opcode = 0x829F
)

// Light Lightness
const (
	LightLightnessGet                     Opcode = 0x824B
	LightLightnessSet                     Opcode = 0x824C
	LightLightnessSetUnacknowledged       Opcode = 0x824D
	LightLightnessLinearGet               Opcode = 0x824F
	LightLightnessLinearSet               Opcode = 0x8250
	LightLightnessLinearSetUnacknowledged Opcode = 0x8251
)

// Light CTL
const (
	LightCtlGet                          Opcode = 0x825D
	LightCtlSet                          Opcode = 0x825E
	LightCtlSetUnacknowledged            Opcode = 0x825F
	LightCtlTemperatureGet               Opcode = 0x8261
	LightCtlTemperatureRangeGet          Opcode = 0x8262
	LightCtlTemperatureSet               Opcode = 0x8264
	LightCtlTemperatureSetUnacknowledged Opcode = 0x8265
)

// Light HSL
const (
	LightHslGet                         Opcode = 0x826D
	LightHslHueGet                      Opcode = 0x826E
	LightHslHueSet                      Opcode = 0x826F
	LightHslHueSetUnacknowledged        Opcode = 0x8270
	LightHslSaturationGet               Opcode = 0x8272
	LightHslSaturationSet               Opcode = 0x8273
	LightHslSaturationSetUnacknowledged Opcode = 0x8274
	LightHslSet                         Opcode = 0x8276
	LightHslSetUnacknowledged           Opcode = 0x8277
)

// Model 操作码所属的模型族
type Model string

const (
	ModelGenericOnOff             Model = "generic_onoff"
	ModelGenericLevel             Model = "generic_level"
	ModelGenericDefaultTransition Model = "generic_default_transition_time"
	ModelGenericPowerOnOff        Model = "generic_power_onoff"
	ModelGenericPowerLevel        Model = "generic_power_level"
	ModelGenericBattery           Model = "generic_battery"
	ModelTime                     Model = "time"
	ModelScene                    Model = "scene"
	ModelLightLightness           Model = "light_lightness"
	ModelLightCtl                 Model = "light_ctl"
	ModelLightHsl                 Model = "light_hsl"
)

// Kind 请求类型，决定是否期待状态应答
type Kind uint8

const (
	KindGet Kind = iota
	KindSet
	KindSetUnacknowledged
)

type info struct {
	name  string
	model Model
	kind  Kind
}

// catalog 全量支持的操作码表（封闭集合，新增操作码必须同步此表）
var catalog = map[Opcode]info{
	GenericOnOffGet:               {"GENERIC_ON_OFF_GET", ModelGenericOnOff, KindGet},
	GenericOnOffSet:               {"GENERIC_ON_OFF_SET", ModelGenericOnOff, KindSet},
	GenericOnOffSetUnacknowledged: {"GENERIC_ON_OFF_SET_UNACKNOWLEDGED", ModelGenericOnOff, KindSetUnacknowledged},

	GenericLevelGet:               {"GENERIC_LEVEL_GET", ModelGenericLevel, KindGet},
	GenericLevelSet:               {"GENERIC_LEVEL_SET", ModelGenericLevel, KindSet},
	GenericLevelSetUnacknowledged: {"GENERIC_LEVEL_SET_UNACKNOWLEDGED", ModelGenericLevel, KindSetUnacknowledged},
	GenericDeltaSet:               {"GENERIC_DELTA_SET", ModelGenericLevel, KindSet},
	GenericDeltaSetUnacknowledged: {"GENERIC_DELTA_SET_UNACKNOWLEDGED", ModelGenericLevel, KindSetUnacknowledged},
	GenericMoveSet:                {"GENERIC_MOVE_SET", ModelGenericLevel, KindSet},
	GenericMoveSetUnacknowledged:  {"GENERIC_MOVE_SET_UNACKNOWLEDGED", ModelGenericLevel, KindSetUnacknowledged},

	GenericDefaultTransitionTimeGet:               {"GENERIC_DEFAULT_TRANSITION_TIME_GET", ModelGenericDefaultTransition, KindGet},
	GenericDefaultTransitionTimeSet:               {"GENERIC_DEFAULT_TRANSITION_TIME_SET", ModelGenericDefaultTransition, KindSet},
	GenericDefaultTransitionTimeSetUnacknowledged: {"GENERIC_DEFAULT_TRANSITION_TIME_SET_UNACKNOWLEDGED", ModelGenericDefaultTransition, KindSetUnacknowledged},

	GenericOnPowerUpGet:               {"GENERIC_ON_POWER_UP_GET", ModelGenericPowerOnOff, KindGet},
	GenericOnPowerUpSet:               {"GENERIC_ON_POWER_UP_SET", ModelGenericPowerOnOff, KindSet},
	GenericOnPowerUpSetUnacknowledged: {"GENERIC_ON_POWER_UP_SET_UNACKNOWLEDGED", ModelGenericPowerOnOff, KindSetUnacknowledged},

	GenericPowerLevelGet:               {"GENERIC_POWER_LEVEL_GET", ModelGenericPowerLevel, KindGet},
	GenericPowerLevelSet:               {"GENERIC_POWER_LEVEL_SET", ModelGenericPowerLevel, KindSet},
	GenericPowerLevelSetUnacknowledged: {"GENERIC_POWER_LEVEL_SET_UNACKNOWLEDGED", ModelGenericPowerLevel, KindSetUnacknowledged},

	GenericBatteryGet: {"GENERIC_BATTERY_GET", ModelGenericBattery, KindGet},
	TimeGet:           {"TIME_GET", ModelTime, KindGet},

	SceneGet:                  {"SCENE_GET", ModelScene, KindGet},
	SceneRecall:               {"SCENE_RECALL", ModelScene, KindSet},
	SceneRecallUnacknowledged: {"SCENE_RECALL_UNACKNOWLEDGED", ModelScene, KindSetUnacknowledged},
	SceneRegisterGet:          {"SCENE_REGISTER_GET", ModelScene, KindGet},
	SceneStore:                {"SCENE_STORE", ModelScene, KindSet},
	SceneStoreUnacknowledged:  {"SCENE_STORE_UNACKNOWLEDGED", ModelScene, KindSetUnacknowledged},
	SceneDelete:               {"SCENE_DELETE", ModelScene, KindSet},
	SceneDeleteUnacknowledged: {"SCENE_DELETE_UNACKNOWLEDGED", ModelScene, KindSetUnacknowledged},

	LightLightnessGet:                     {"LIGHT_LIGHTNESS_GET", ModelLightLightness, KindGet},
	LightLightnessSet:                     {"LIGHT_LIGHTNESS_SET", ModelLightLightness, KindSet},
	LightLightnessSetUnacknowledged:       {"LIGHT_LIGHTNESS_SET_UNACKNOWLEDGED", ModelLightLightness, KindSetUnacknowledged},
	LightLightnessLinearGet:               {"LIGHT_LIGHTNESS_LINEAR_GET", ModelLightLightness, KindGet},
	LightLightnessLinearSet:               {"LIGHT_LIGHTNESS_LINEAR_SET", ModelLightLightness, KindSet},
	LightLightnessLinearSetUnacknowledged: {"LIGHT_LIGHTNESS_LINEAR_SET_UNACKNOWLEDGED", ModelLightLightness, KindSetUnacknowledged},

	LightCtlGet:                          {"LIGHT_CTL_GET", ModelLightCtl, KindGet},
	LightCtlSet:                          {"LIGHT_CTL_SET", ModelLightCtl, KindSet},
	LightCtlSetUnacknowledged:            {"LIGHT_CTL_SET_UNACKNOWLEDGED", ModelLightCtl, KindSetUnacknowledged},
	LightCtlTemperatureGet:               {"LIGHT_CTL_TEMPERATURE_GET", ModelLightCtl, KindGet},
	LightCtlTemperatureRangeGet:          {"LIGHT_CTL_TEMPERATURE_RANGE_GET", ModelLightCtl, KindGet},
	LightCtlTemperatureSet:               {"LIGHT_CTL_TEMPERATURE_SET", ModelLightCtl, KindSet},
	LightCtlTemperatureSetUnacknowledged: {"LIGHT_CTL_TEMPERATURE_SET_UNACKNOWLEDGED", ModelLightCtl, KindSetUnacknowledged},

	LightHslGet:                         {"LIGHT_HSL_GET", ModelLightHsl, KindGet},
	LightHslHueGet:                      {"LIGHT_HSL_HUE_GET", ModelLightHsl, KindGet},
	LightHslHueSet:                      {"LIGHT_HSL_HUE_SET", ModelLightHsl, KindSet},
	LightHslHueSetUnacknowledged:        {"LIGHT_HSL_HUE_SET_UNACKNOWLEDGED", ModelLightHsl, KindSetUnacknowledged},
	LightHslSaturationGet:               {"LIGHT_HSL_SATURATION_GET", ModelLightHsl, KindGet},
	LightHslSaturationSet:               {"LIGHT_HSL_SATURATION_SET", ModelLightHsl, KindSet},
	LightHslSaturationSetUnacknowledged: {"LIGHT_HSL_SATURATION_SET_UNACKNOWLEDGED", ModelLightHsl, KindSetUnacknowledged},
	LightHslSet:                         {"LIGHT_HSL_SET", ModelLightHsl, KindSet},
	LightHslSetUnacknowledged:           {"LIGHT_HSL_SET_UNACKNOWLEDGED", ModelLightHsl, KindSetUnacknowledged},
}

var byName = func() map[string]Opcode {
	m := make(map[string]Opcode, len(catalog))
	for op, in := range catalog {
		m[in.name] = op
	}
	return m
}()

// All 返回全部支持的操作码（按数值升序）
func All() []Opcode {
	ops := make([]Opcode, 0, len(catalog))
	for op := range catalog {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}

// Valid 是否为目录内的操作码
func (o Opcode) Valid() bool {
	_, ok := catalog[o]
	return ok
}

// String 协议名称，未知操作码输出十六进制
func (o Opcode) String() string {
	if in, ok := catalog[o]; ok {
		return in.name
	}
	return fmt.Sprintf("UNKNOWN_0x%X", uint32(o))
}

// Model 所属模型族
func (o Opcode) Model() Model {
	return catalog[o].model
}

// Kind 请求类型
func (o Opcode) Kind() Kind {
	return catalog[o].kind
}

// Acknowledged 是否期待接收方回复状态消息
// Get 与确认型 Set 均会触发 Status 应答
func (o Opcode) Acknowledged() bool {
	return o.Valid() && catalog[o].kind != KindSetUnacknowledged
}

// Size 操作码在线路上占用的字节数（Mesh Profile 3.7.3.1）
func (o Opcode) Size() int {
	switch {
	case o <= 0x7E:
		return 1
	case o >= 0x8000 && o <= 0xBFFF:
		return 2
	default:
		return 3
	}
}

// Bytes 操作码线路编码（大端）
func (o Opcode) Bytes() []byte {
	switch o.Size() {
	case 1:
		return []byte{byte(o)}
	case 2:
		return []byte{byte(o >> 8), byte(o)}
	default:
		return []byte{byte(o >> 16), byte(o >> 8), byte(o)}
	}
}

// Parse 按协议名称或十六进制（0x8247）解析操作码
func Parse(s string) (Opcode, error) {
	s = strings.TrimSpace(s)
	if op, ok := byName[strings.ToUpper(s)]; ok {
		return op, nil
	}
	// 十六进制需整串匹配，尾随字符视为非法
	if digits, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		if v, err := strconv.ParseUint(digits, 16, 32); err == nil {
			if op := Opcode(v); op.Valid() {
				return op, nil
			}
		}
	}
	return 0, fmt.Errorf("unknown opcode %q", s)
}
