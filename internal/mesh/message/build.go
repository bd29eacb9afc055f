package message

import (
	"fmt"

	"github.com/taoyao-code/meshmsg/internal/mesh/opcode"
)

// 参数名（HTTP/YAML 输入使用）
const (
	ParamScene                = "scene"
	ParamOnOff                = "onOff"
	ParamTID                  = "tid"
	ParamLevel                = "level"
	ParamDelta                = "delta"
	ParamDeltaLevel           = "deltaLevel"
	ParamPower                = "power"
	ParamOnPowerUp            = "onPowerUp"
	ParamLightness            = "lightness"
	ParamTemperature          = "temperature"
	ParamDeltaUV              = "deltaUV"
	ParamHue                  = "hue"
	ParamSaturation           = "saturation"
	ParamTransitionSteps      = "transitionSteps"
	ParamTransitionResolution = "transitionResolution"
	ParamDelay                = "delay"
)

// Params 按名称传入的消息参数
type Params map[string]int64

func (p Params) int(name string) (int, bool, error) {
	v, ok := p[name]
	if !ok {
		return 0, false, nil
	}
	if int64(int(v)) != v {
		return 0, true, fmt.Errorf("%w: %s=%d overflows int", ErrInvalidArgument, name, v)
	}
	return int(v), true, nil
}

func (p Params) required(name string) (int, error) {
	v, ok, err := p.int(name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: missing param %q", ErrInvalidArgument, name)
	}
	return v, nil
}

func (p Params) optional(name string, def int) (int, error) {
	v, ok, err := p.int(name)
	if err != nil || !ok {
		return def, err
	}
	return v, nil
}

// transition 仅在提供 transitionSteps 时生成渐变参数，分辨率与延时缺省为0
func (p Params) transition() (*Transition, error) {
	steps, ok, err := p.int(ParamTransitionSteps)
	if err != nil || !ok {
		return nil, err
	}
	res, err := p.optional(ParamTransitionResolution, 0)
	if err != nil {
		return nil, err
	}
	delay, err := p.optional(ParamDelay, 0)
	if err != nil {
		return nil, err
	}
	return &Transition{Steps: steps, Resolution: res, Delay: delay}, nil
}

// Build 按操作码分发构造消息，覆盖操作码目录中的全部条目
func Build(appKey []byte, op opcode.Opcode, p Params) (Message, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("%w: 0x%X", ErrUnsupportedOpcode, uint32(op))
	}

	switch op {
	// 无参数 Get
	case opcode.GenericOnOffGet:
		return wrap(NewGenericOnOffGet(appKey))
	case opcode.GenericLevelGet:
		return wrap(NewGenericLevelGet(appKey))
	case opcode.GenericDefaultTransitionTimeGet:
		return wrap(NewGenericDefaultTransitionTimeGet(appKey))
	case opcode.GenericOnPowerUpGet:
		return wrap(NewGenericOnPowerUpGet(appKey))
	case opcode.GenericPowerLevelGet:
		return wrap(NewGenericPowerLevelGet(appKey))
	case opcode.GenericBatteryGet:
		return wrap(NewGenericBatteryGet(appKey))
	case opcode.TimeGet:
		return wrap(NewTimeGet(appKey))
	case opcode.SceneGet:
		return wrap(NewSceneGet(appKey))
	case opcode.SceneRegisterGet:
		return wrap(NewSceneRegisterGet(appKey))
	case opcode.LightLightnessGet:
		return wrap(NewLightLightnessGet(appKey))
	case opcode.LightLightnessLinearGet:
		return wrap(NewLightLightnessLinearGet(appKey))
	case opcode.LightCtlGet:
		return wrap(NewLightCtlGet(appKey))
	case opcode.LightCtlTemperatureGet:
		return wrap(NewLightCtlTemperatureGet(appKey))
	case opcode.LightCtlTemperatureRangeGet:
		return wrap(NewLightCtlTemperatureRangeGet(appKey))
	case opcode.LightHslGet:
		return wrap(NewLightHslGet(appKey))
	case opcode.LightHslHueGet:
		return wrap(NewLightHslHueGet(appKey))
	case opcode.LightHslSaturationGet:
		return wrap(NewLightHslSaturationGet(appKey))

	case opcode.SceneStore, opcode.SceneStoreUnacknowledged,
		opcode.SceneDelete, opcode.SceneDeleteUnacknowledged:
		return buildSceneNumber(appKey, op, p)

	case opcode.GenericDefaultTransitionTimeSet, opcode.GenericDefaultTransitionTimeSetUnacknowledged:
		steps, err := p.required(ParamTransitionSteps)
		if err != nil {
			return nil, err
		}
		res, err := p.optional(ParamTransitionResolution, 0)
		if err != nil {
			return nil, err
		}
		if op == opcode.GenericDefaultTransitionTimeSet {
			return wrap(NewGenericDefaultTransitionTimeSet(appKey, steps, res))
		}
		return wrap(NewGenericDefaultTransitionTimeSetUnacknowledged(appKey, steps, res))

	case opcode.GenericOnPowerUpSet, opcode.GenericOnPowerUpSetUnacknowledged:
		v, err := p.required(ParamOnPowerUp)
		if err != nil {
			return nil, err
		}
		if op == opcode.GenericOnPowerUpSet {
			return wrap(NewGenericOnPowerUpSet(appKey, v))
		}
		return wrap(NewGenericOnPowerUpSetUnacknowledged(appKey, v))
	}

	// 其余均为 [主参数...][TID]{[TT][Delay]} 结构
	tid, err := p.optional(ParamTID, 0)
	if err != nil {
		return nil, err
	}
	t, err := p.transition()
	if err != nil {
		return nil, err
	}

	switch op {
	case opcode.SceneRecall, opcode.SceneRecallUnacknowledged:
		scene, err := p.required(ParamScene)
		if err != nil {
			return nil, err
		}
		if op == opcode.SceneRecall {
			return wrap(NewSceneRecall(appKey, scene, tid, t))
		}
		return wrap(NewSceneRecallUnacknowledged(appKey, scene, tid, t))

	case opcode.GenericOnOffSet, opcode.GenericOnOffSetUnacknowledged:
		v, err := p.required(ParamOnOff)
		if err != nil {
			return nil, err
		}
		if v != 0 && v != 1 {
			return nil, fmt.Errorf("%w: onOff must be 0 or 1, got %d", ErrInvalidArgument, v)
		}
		if op == opcode.GenericOnOffSet {
			return wrap(NewGenericOnOffSet(appKey, v == 1, tid, t))
		}
		return wrap(NewGenericOnOffSetUnacknowledged(appKey, v == 1, tid, t))

	case opcode.GenericLevelSet, opcode.GenericLevelSetUnacknowledged:
		v, err := p.required(ParamLevel)
		if err != nil {
			return nil, err
		}
		if op == opcode.GenericLevelSet {
			return wrap(NewGenericLevelSet(appKey, v, tid, t))
		}
		return wrap(NewGenericLevelSetUnacknowledged(appKey, v, tid, t))

	case opcode.GenericDeltaSet, opcode.GenericDeltaSetUnacknowledged:
		v, err := p.required(ParamDelta)
		if err != nil {
			return nil, err
		}
		if op == opcode.GenericDeltaSet {
			return wrap(NewGenericDeltaSet(appKey, v, tid, t))
		}
		return wrap(NewGenericDeltaSetUnacknowledged(appKey, v, tid, t))

	case opcode.GenericMoveSet, opcode.GenericMoveSetUnacknowledged:
		v, err := p.required(ParamDeltaLevel)
		if err != nil {
			return nil, err
		}
		if op == opcode.GenericMoveSet {
			return wrap(NewGenericMoveSet(appKey, v, tid, t))
		}
		return wrap(NewGenericMoveSetUnacknowledged(appKey, v, tid, t))

	case opcode.GenericPowerLevelSet, opcode.GenericPowerLevelSetUnacknowledged:
		v, err := p.required(ParamPower)
		if err != nil {
			return nil, err
		}
		if op == opcode.GenericPowerLevelSet {
			return wrap(NewGenericPowerLevelSet(appKey, v, tid, t))
		}
		return wrap(NewGenericPowerLevelSetUnacknowledged(appKey, v, tid, t))

	case opcode.LightLightnessSet, opcode.LightLightnessSetUnacknowledged,
		opcode.LightLightnessLinearSet, opcode.LightLightnessLinearSetUnacknowledged:
		v, err := p.required(ParamLightness)
		if err != nil {
			return nil, err
		}
		switch op {
		case opcode.LightLightnessSet:
			return wrap(NewLightLightnessSet(appKey, v, tid, t))
		case opcode.LightLightnessSetUnacknowledged:
			return wrap(NewLightLightnessSetUnacknowledged(appKey, v, tid, t))
		case opcode.LightLightnessLinearSet:
			return wrap(NewLightLightnessLinearSet(appKey, v, tid, t))
		default:
			return wrap(NewLightLightnessLinearSetUnacknowledged(appKey, v, tid, t))
		}

	case opcode.LightCtlSet, opcode.LightCtlSetUnacknowledged:
		var s CtlState
		if s.Lightness, err = p.required(ParamLightness); err != nil {
			return nil, err
		}
		if s.Temperature, err = p.required(ParamTemperature); err != nil {
			return nil, err
		}
		if s.DeltaUV, err = p.optional(ParamDeltaUV, 0); err != nil {
			return nil, err
		}
		if op == opcode.LightCtlSet {
			return wrap(NewLightCtlSet(appKey, s, tid, t))
		}
		return wrap(NewLightCtlSetUnacknowledged(appKey, s, tid, t))

	case opcode.LightCtlTemperatureSet, opcode.LightCtlTemperatureSetUnacknowledged:
		temp, err := p.required(ParamTemperature)
		if err != nil {
			return nil, err
		}
		duv, err := p.optional(ParamDeltaUV, 0)
		if err != nil {
			return nil, err
		}
		if op == opcode.LightCtlTemperatureSet {
			return wrap(NewLightCtlTemperatureSet(appKey, temp, duv, tid, t))
		}
		return wrap(NewLightCtlTemperatureSetUnacknowledged(appKey, temp, duv, tid, t))

	case opcode.LightHslSet, opcode.LightHslSetUnacknowledged:
		var s HslState
		if s.Lightness, err = p.required(ParamLightness); err != nil {
			return nil, err
		}
		if s.Hue, err = p.required(ParamHue); err != nil {
			return nil, err
		}
		if s.Saturation, err = p.required(ParamSaturation); err != nil {
			return nil, err
		}
		if op == opcode.LightHslSet {
			return wrap(NewLightHslSet(appKey, s, tid, t))
		}
		return wrap(NewLightHslSetUnacknowledged(appKey, s, tid, t))

	case opcode.LightHslHueSet, opcode.LightHslHueSetUnacknowledged:
		v, err := p.required(ParamHue)
		if err != nil {
			return nil, err
		}
		if op == opcode.LightHslHueSet {
			return wrap(NewLightHslHueSet(appKey, v, tid, t))
		}
		return wrap(NewLightHslHueSetUnacknowledged(appKey, v, tid, t))

	case opcode.LightHslSaturationSet, opcode.LightHslSaturationSetUnacknowledged:
		v, err := p.required(ParamSaturation)
		if err != nil {
			return nil, err
		}
		if op == opcode.LightHslSaturationSet {
			return wrap(NewLightHslSaturationSet(appKey, v, tid, t))
		}
		return wrap(NewLightHslSaturationSetUnacknowledged(appKey, v, tid, t))
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOpcode, op)
}

func buildSceneNumber(appKey []byte, op opcode.Opcode, p Params) (Message, error) {
	scene, err := p.required(ParamScene)
	if err != nil {
		return nil, err
	}
	switch op {
	case opcode.SceneStore:
		return wrap(NewSceneStore(appKey, scene))
	case opcode.SceneStoreUnacknowledged:
		return wrap(NewSceneStoreUnacknowledged(appKey, scene))
	case opcode.SceneDelete:
		return wrap(NewSceneDelete(appKey, scene))
	default:
		return wrap(NewSceneDeleteUnacknowledged(appKey, scene))
	}
}

// wrap 避免 typed nil 指针装箱为非 nil 接口
func wrap[T Message](m T, err error) (Message, error) {
	if err != nil {
		return nil, err
	}
	return m, nil
}
