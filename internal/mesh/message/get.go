package message

import "github.com/taoyao-code/meshmsg/internal/mesh/opcode"

// noParams Get 类消息无参数，参数长度为0
type noParams struct{ base }

func (*noParams) Fields() []Field { return nil }

// GenericOnOffGet 读取开关状态
type GenericOnOffGet struct{ noParams }

func (*GenericOnOffGet) Opcode() opcode.Opcode { return opcode.GenericOnOffGet }

func NewGenericOnOffGet(appKey []byte) (*GenericOnOffGet, error) {
	m := &GenericOnOffGet{}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

// GenericLevelGet 读取 Level
type GenericLevelGet struct{ noParams }

func (*GenericLevelGet) Opcode() opcode.Opcode { return opcode.GenericLevelGet }

func NewGenericLevelGet(appKey []byte) (*GenericLevelGet, error) {
	m := &GenericLevelGet{}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

// GenericDefaultTransitionTimeGet 读取默认渐变时间
type GenericDefaultTransitionTimeGet struct{ noParams }

func (*GenericDefaultTransitionTimeGet) Opcode() opcode.Opcode { return opcode.GenericDefaultTransitionTimeGet }

func NewGenericDefaultTransitionTimeGet(appKey []byte) (*GenericDefaultTransitionTimeGet, error) {
	m := &GenericDefaultTransitionTimeGet{}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

// GenericOnPowerUpGet 读取上电行为
type GenericOnPowerUpGet struct{ noParams }

func (*GenericOnPowerUpGet) Opcode() opcode.Opcode { return opcode.GenericOnPowerUpGet }

func NewGenericOnPowerUpGet(appKey []byte) (*GenericOnPowerUpGet, error) {
	m := &GenericOnPowerUpGet{}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

// GenericPowerLevelGet 读取功率等级
type GenericPowerLevelGet struct{ noParams }

func (*GenericPowerLevelGet) Opcode() opcode.Opcode { return opcode.GenericPowerLevelGet }

func NewGenericPowerLevelGet(appKey []byte) (*GenericPowerLevelGet, error) {
	m := &GenericPowerLevelGet{}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

// GenericBatteryGet 读取电池状态
type GenericBatteryGet struct{ noParams }

func (*GenericBatteryGet) Opcode() opcode.Opcode { return opcode.GenericBatteryGet }

func NewGenericBatteryGet(appKey []byte) (*GenericBatteryGet, error) {
	m := &GenericBatteryGet{}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

// TimeGet 读取 TAI 时间
type TimeGet struct{ noParams }

func (*TimeGet) Opcode() opcode.Opcode { return opcode.TimeGet }

func NewTimeGet(appKey []byte) (*TimeGet, error) {
	m := &TimeGet{}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

// SceneGet 读取当前场景
type SceneGet struct{ noParams }

func (*SceneGet) Opcode() opcode.Opcode { return opcode.SceneGet }

func NewSceneGet(appKey []byte) (*SceneGet, error) {
	m := &SceneGet{}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

// SceneRegisterGet 读取场景注册表
type SceneRegisterGet struct{ noParams }

func (*SceneRegisterGet) Opcode() opcode.Opcode { return opcode.SceneRegisterGet }

func NewSceneRegisterGet(appKey []byte) (*SceneRegisterGet, error) {
	m := &SceneRegisterGet{}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

type LightLightnessGet struct{ noParams }

func (*LightLightnessGet) Opcode() opcode.Opcode { return opcode.LightLightnessGet }

func NewLightLightnessGet(appKey []byte) (*LightLightnessGet, error) {
	m := &LightLightnessGet{}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

type LightLightnessLinearGet struct{ noParams }

func (*LightLightnessLinearGet) Opcode() opcode.Opcode { return opcode.LightLightnessLinearGet }

func NewLightLightnessLinearGet(appKey []byte) (*LightLightnessLinearGet, error) {
	m := &LightLightnessLinearGet{}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

type LightCtlGet struct{ noParams }

func (*LightCtlGet) Opcode() opcode.Opcode { return opcode.LightCtlGet }

func NewLightCtlGet(appKey []byte) (*LightCtlGet, error) {
	m := &LightCtlGet{}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

type LightCtlTemperatureGet struct{ noParams }

func (*LightCtlTemperatureGet) Opcode() opcode.Opcode { return opcode.LightCtlTemperatureGet }

func NewLightCtlTemperatureGet(appKey []byte) (*LightCtlTemperatureGet, error) {
	m := &LightCtlTemperatureGet{}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

type LightCtlTemperatureRangeGet struct{ noParams }

func (*LightCtlTemperatureRangeGet) Opcode() opcode.Opcode { return opcode.LightCtlTemperatureRangeGet }

func NewLightCtlTemperatureRangeGet(appKey []byte) (*LightCtlTemperatureRangeGet, error) {
	m := &LightCtlTemperatureRangeGet{}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

type LightHslGet struct{ noParams }

func (*LightHslGet) Opcode() opcode.Opcode { return opcode.LightHslGet }

func NewLightHslGet(appKey []byte) (*LightHslGet, error) {
	m := &LightHslGet{}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

type LightHslHueGet struct{ noParams }

func (*LightHslHueGet) Opcode() opcode.Opcode { return opcode.LightHslHueGet }

func NewLightHslHueGet(appKey []byte) (*LightHslHueGet, error) {
	m := &LightHslHueGet{}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

type LightHslSaturationGet struct{ noParams }

func (*LightHslSaturationGet) Opcode() opcode.Opcode { return opcode.LightHslSaturationGet }

func NewLightHslSaturationGet(appKey []byte) (*LightHslSaturationGet, error) {
	m := &LightHslSaturationGet{}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}
