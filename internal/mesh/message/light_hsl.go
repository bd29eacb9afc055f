package message

import "github.com/taoyao-code/meshmsg/internal/mesh/opcode"

// HslState Light HSL Set 目标状态
type HslState struct {
	Lightness  int
	Hue        int
	Saturation int
}

// hslSet 参数: [Lightness 2B][Hue 2B][Saturation 2B][TID 1B]{[TT 1B][Delay 1B]}
type hslSet struct {
	base
	transactional
	state HslState
}

func (m *hslSet) State() HslState { return m.state }

func (m *hslSet) validate() error { return m.transition.validate() }

func (m *hslSet) Fields() []Field {
	return append([]Field{
		U16("lightness", int64(m.state.Lightness)),
		U16("hue", int64(m.state.Hue)),
		U16("saturation", int64(m.state.Saturation)),
	}, m.tail()...)
}

func newHslSet(s HslState, tid int, t *Transition) hslSet {
	return hslSet{transactional: transactional{tid: tid, transition: copyTransition(t)}, state: s}
}

type LightHslSet struct{ hslSet }

func (*LightHslSet) Opcode() opcode.Opcode { return opcode.LightHslSet }

func NewLightHslSet(appKey []byte, s HslState, tid int, t *Transition) (*LightHslSet, error) {
	m := &LightHslSet{newHslSet(s, tid, t)}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

type LightHslSetUnacknowledged struct{ hslSet }

func (*LightHslSetUnacknowledged) Opcode() opcode.Opcode { return opcode.LightHslSetUnacknowledged }

func NewLightHslSetUnacknowledged(appKey []byte, s HslState, tid int, t *Transition) (*LightHslSetUnacknowledged, error) {
	m := &LightHslSetUnacknowledged{newHslSet(s, tid, t)}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

// hslComponentSet Hue/Saturation 单分量设置: [值 2B][TID 1B]{[TT 1B][Delay 1B]}
type hslComponentSet struct {
	base
	transactional
	name  string
	value int
}

func (m *hslComponentSet) Value() uint16 { return uint16(m.value) }

func (m *hslComponentSet) validate() error { return m.transition.validate() }

func (m *hslComponentSet) Fields() []Field {
	return append([]Field{U16(m.name, int64(m.value))}, m.tail()...)
}

func newHslComponentSet(name string, v, tid int, t *Transition) hslComponentSet {
	return hslComponentSet{
		transactional: transactional{tid: tid, transition: copyTransition(t)},
		name:          name,
		value:         v,
	}
}

type LightHslHueSet struct{ hslComponentSet }

func (*LightHslHueSet) Opcode() opcode.Opcode { return opcode.LightHslHueSet }

func NewLightHslHueSet(appKey []byte, hue, tid int, t *Transition) (*LightHslHueSet, error) {
	m := &LightHslHueSet{newHslComponentSet("hue", hue, tid, t)}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

type LightHslHueSetUnacknowledged struct{ hslComponentSet }

func (*LightHslHueSetUnacknowledged) Opcode() opcode.Opcode {
	return opcode.LightHslHueSetUnacknowledged
}

func NewLightHslHueSetUnacknowledged(appKey []byte, hue, tid int, t *Transition) (*LightHslHueSetUnacknowledged, error) {
	m := &LightHslHueSetUnacknowledged{newHslComponentSet("hue", hue, tid, t)}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

type LightHslSaturationSet struct{ hslComponentSet }

func (*LightHslSaturationSet) Opcode() opcode.Opcode { return opcode.LightHslSaturationSet }

func NewLightHslSaturationSet(appKey []byte, saturation, tid int, t *Transition) (*LightHslSaturationSet, error) {
	m := &LightHslSaturationSet{newHslComponentSet("saturation", saturation, tid, t)}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

type LightHslSaturationSetUnacknowledged struct{ hslComponentSet }

func (*LightHslSaturationSetUnacknowledged) Opcode() opcode.Opcode {
	return opcode.LightHslSaturationSetUnacknowledged
}

func NewLightHslSaturationSetUnacknowledged(appKey []byte, saturation, tid int, t *Transition) (*LightHslSaturationSetUnacknowledged, error) {
	m := &LightHslSaturationSetUnacknowledged{newHslComponentSet("saturation", saturation, tid, t)}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}
