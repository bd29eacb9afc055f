package message

import "github.com/taoyao-code/meshmsg/internal/mesh/opcode"

// lightnessSet 参数: [Lightness 2B LE][TID 1B]{[TT 1B][Delay 1B]}
// Actual 与 Linear 两种刻度布局相同
type lightnessSet struct {
	base
	transactional
	lightness int
}

func (m *lightnessSet) Lightness() uint16 { return uint16(m.lightness) }

func (m *lightnessSet) validate() error { return m.transition.validate() }

func (m *lightnessSet) Fields() []Field {
	return append([]Field{U16("lightness", int64(m.lightness))}, m.tail()...)
}

func newLightnessSet(lightness, tid int, t *Transition) lightnessSet {
	return lightnessSet{transactional: transactional{tid: tid, transition: copyTransition(t)}, lightness: lightness}
}

type LightLightnessSet struct{ lightnessSet }

func (*LightLightnessSet) Opcode() opcode.Opcode { return opcode.LightLightnessSet }

func NewLightLightnessSet(appKey []byte, lightness, tid int, t *Transition) (*LightLightnessSet, error) {
	m := &LightLightnessSet{newLightnessSet(lightness, tid, t)}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

type LightLightnessSetUnacknowledged struct{ lightnessSet }

func (*LightLightnessSetUnacknowledged) Opcode() opcode.Opcode {
	return opcode.LightLightnessSetUnacknowledged
}

func NewLightLightnessSetUnacknowledged(appKey []byte, lightness, tid int, t *Transition) (*LightLightnessSetUnacknowledged, error) {
	m := &LightLightnessSetUnacknowledged{newLightnessSet(lightness, tid, t)}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

type LightLightnessLinearSet struct{ lightnessSet }

func (*LightLightnessLinearSet) Opcode() opcode.Opcode { return opcode.LightLightnessLinearSet }

func NewLightLightnessLinearSet(appKey []byte, lightness, tid int, t *Transition) (*LightLightnessLinearSet, error) {
	m := &LightLightnessLinearSet{newLightnessSet(lightness, tid, t)}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

type LightLightnessLinearSetUnacknowledged struct{ lightnessSet }

func (*LightLightnessLinearSetUnacknowledged) Opcode() opcode.Opcode {
	return opcode.LightLightnessLinearSetUnacknowledged
}

func NewLightLightnessLinearSetUnacknowledged(appKey []byte, lightness, tid int, t *Transition) (*LightLightnessLinearSetUnacknowledged, error) {
	m := &LightLightnessLinearSetUnacknowledged{newLightnessSet(lightness, tid, t)}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}
