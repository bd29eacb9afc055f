package message

import "github.com/taoyao-code/meshmsg/internal/mesh/opcode"

// levelSet Generic Level 三类 Set 共用布局: [值 nB LE 有符号][TID 1B]{[TT 1B][Delay 1B]}
// Level/Move 为 int16，Delta 为 int32
type levelSet struct {
	base
	transactional
	value int
	field func(string, int64) Field
	name  string
}

func (m *levelSet) validate() error { return m.transition.validate() }

func (m *levelSet) Fields() []Field {
	return append([]Field{m.field(m.name, int64(m.value))}, m.tail()...)
}

func newLevelSet(name string, field func(string, int64) Field, v, tid int, t *Transition) levelSet {
	return levelSet{
		transactional: transactional{tid: tid, transition: copyTransition(t)},
		value:         v,
		field:         field,
		name:          name,
	}
}

// GenericLevelSet 设置 Level 绝对值（-32768..32767）
type GenericLevelSet struct{ levelSet }

func (*GenericLevelSet) Opcode() opcode.Opcode { return opcode.GenericLevelSet }

// Level 目标值
func (m *GenericLevelSet) Level() int16 { return int16(m.value) }

func NewGenericLevelSet(appKey []byte, level, tid int, t *Transition) (*GenericLevelSet, error) {
	m := &GenericLevelSet{newLevelSet("level", S16, level, tid, t)}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

type GenericLevelSetUnacknowledged struct{ levelSet }

func (*GenericLevelSetUnacknowledged) Opcode() opcode.Opcode {
	return opcode.GenericLevelSetUnacknowledged
}

func (m *GenericLevelSetUnacknowledged) Level() int16 { return int16(m.value) }

func NewGenericLevelSetUnacknowledged(appKey []byte, level, tid int, t *Transition) (*GenericLevelSetUnacknowledged, error) {
	m := &GenericLevelSetUnacknowledged{newLevelSet("level", S16, level, tid, t)}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

// GenericDeltaSet 相对当前 Level 的增量（int32）
type GenericDeltaSet struct{ levelSet }

func (*GenericDeltaSet) Opcode() opcode.Opcode { return opcode.GenericDeltaSet }

func (m *GenericDeltaSet) Delta() int32 { return int32(m.value) }

func NewGenericDeltaSet(appKey []byte, delta, tid int, t *Transition) (*GenericDeltaSet, error) {
	m := &GenericDeltaSet{newLevelSet("delta", S32, delta, tid, t)}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

type GenericDeltaSetUnacknowledged struct{ levelSet }

func (*GenericDeltaSetUnacknowledged) Opcode() opcode.Opcode {
	return opcode.GenericDeltaSetUnacknowledged
}

func (m *GenericDeltaSetUnacknowledged) Delta() int32 { return int32(m.value) }

func NewGenericDeltaSetUnacknowledged(appKey []byte, delta, tid int, t *Transition) (*GenericDeltaSetUnacknowledged, error) {
	m := &GenericDeltaSetUnacknowledged{newLevelSet("delta", S32, delta, tid, t)}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

// GenericMoveSet 以 deltaLevel/每个渐变步 持续移动
type GenericMoveSet struct{ levelSet }

func (*GenericMoveSet) Opcode() opcode.Opcode { return opcode.GenericMoveSet }

func (m *GenericMoveSet) DeltaLevel() int16 { return int16(m.value) }

func NewGenericMoveSet(appKey []byte, deltaLevel, tid int, t *Transition) (*GenericMoveSet, error) {
	m := &GenericMoveSet{newLevelSet("deltaLevel", S16, deltaLevel, tid, t)}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

type GenericMoveSetUnacknowledged struct{ levelSet }

func (*GenericMoveSetUnacknowledged) Opcode() opcode.Opcode {
	return opcode.GenericMoveSetUnacknowledged
}

func (m *GenericMoveSetUnacknowledged) DeltaLevel() int16 { return int16(m.value) }

func NewGenericMoveSetUnacknowledged(appKey []byte, deltaLevel, tid int, t *Transition) (*GenericMoveSetUnacknowledged, error) {
	m := &GenericMoveSetUnacknowledged{newLevelSet("deltaLevel", S16, deltaLevel, tid, t)}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}
