package message

import "github.com/taoyao-code/meshmsg/internal/mesh/opcode"

// genericOnOffSet 参数: [OnOff 1B][TID 1B]{[TransitionTime 1B][Delay 1B]}
type genericOnOffSet struct {
	base
	transactional
	on bool
}

// On 目标开关状态
func (m *genericOnOffSet) On() bool { return m.on }

func (m *genericOnOffSet) validate() error { return m.transition.validate() }

func (m *genericOnOffSet) Fields() []Field {
	var v int64
	if m.on {
		v = 1
	}
	return append([]Field{U8("onOff", v)}, m.tail()...)
}

func newGenericOnOffSet(on bool, tid int, t *Transition) genericOnOffSet {
	return genericOnOffSet{transactional: transactional{tid: tid, transition: copyTransition(t)}, on: on}
}

// GenericOnOffSet 设置开关状态（需要 Generic OnOff Status 应答）
type GenericOnOffSet struct{ genericOnOffSet }

func (*GenericOnOffSet) Opcode() opcode.Opcode { return opcode.GenericOnOffSet }

func NewGenericOnOffSet(appKey []byte, on bool, tid int, t *Transition) (*GenericOnOffSet, error) {
	m := &GenericOnOffSet{newGenericOnOffSet(on, tid, t)}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

// GenericOnOffSetUnacknowledged 设置开关状态，不需要应答
type GenericOnOffSetUnacknowledged struct{ genericOnOffSet }

func (*GenericOnOffSetUnacknowledged) Opcode() opcode.Opcode {
	return opcode.GenericOnOffSetUnacknowledged
}

func NewGenericOnOffSetUnacknowledged(appKey []byte, on bool, tid int, t *Transition) (*GenericOnOffSetUnacknowledged, error) {
	m := &GenericOnOffSetUnacknowledged{newGenericOnOffSet(on, tid, t)}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}
