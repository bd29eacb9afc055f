package message

import (
	"fmt"

	"github.com/taoyao-code/meshmsg/internal/mesh/opcode"
)

// ===== Generic Default Transition Time =====

type defaultTransitionTimeSet struct {
	base
	steps      int
	resolution int
}

func (m *defaultTransitionTimeSet) TransitionSteps() int      { return m.steps }
func (m *defaultTransitionTimeSet) TransitionResolution() int { return m.resolution }

func (m *defaultTransitionTimeSet) validate() error {
	return validateTransitionTime(m.steps, m.resolution)
}

func (m *defaultTransitionTimeSet) Fields() []Field {
	return []Field{U8("transitionTime", encodeTransitionTime(m.steps, m.resolution))}
}

type GenericDefaultTransitionTimeSet struct{ defaultTransitionTimeSet }

func (*GenericDefaultTransitionTimeSet) Opcode() opcode.Opcode {
	return opcode.GenericDefaultTransitionTimeSet
}

func NewGenericDefaultTransitionTimeSet(appKey []byte, steps, resolution int) (*GenericDefaultTransitionTimeSet, error) {
	m := &GenericDefaultTransitionTimeSet{defaultTransitionTimeSet{steps: steps, resolution: resolution}}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

type GenericDefaultTransitionTimeSetUnacknowledged struct{ defaultTransitionTimeSet }

func (*GenericDefaultTransitionTimeSetUnacknowledged) Opcode() opcode.Opcode {
	return opcode.GenericDefaultTransitionTimeSetUnacknowledged
}

func NewGenericDefaultTransitionTimeSetUnacknowledged(appKey []byte, steps, resolution int) (*GenericDefaultTransitionTimeSetUnacknowledged, error) {
	m := &GenericDefaultTransitionTimeSetUnacknowledged{defaultTransitionTimeSet{steps: steps, resolution: resolution}}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ===== Generic Power OnOff (OnPowerUp) =====

// OnPowerUp 上电行为
const (
	OnPowerUpOff     = 0x00
	OnPowerUpDefault = 0x01
	OnPowerUpRestore = 0x02
)

type onPowerUpSet struct {
	base
	onPowerUp int
}

func (m *onPowerUpSet) OnPowerUp() int { return m.onPowerUp }

func (m *onPowerUpSet) validate() error {
	if m.onPowerUp < OnPowerUpOff || m.onPowerUp > OnPowerUpRestore {
		return fmt.Errorf("%w: onPowerUp %d out of range [0, 2]", ErrInvalidArgument, m.onPowerUp)
	}
	return nil
}

func (m *onPowerUpSet) Fields() []Field {
	return []Field{U8("onPowerUp", int64(m.onPowerUp))}
}

type GenericOnPowerUpSet struct{ onPowerUpSet }

func (*GenericOnPowerUpSet) Opcode() opcode.Opcode { return opcode.GenericOnPowerUpSet }

func NewGenericOnPowerUpSet(appKey []byte, onPowerUp int) (*GenericOnPowerUpSet, error) {
	m := &GenericOnPowerUpSet{onPowerUpSet{onPowerUp: onPowerUp}}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

type GenericOnPowerUpSetUnacknowledged struct{ onPowerUpSet }

func (*GenericOnPowerUpSetUnacknowledged) Opcode() opcode.Opcode {
	return opcode.GenericOnPowerUpSetUnacknowledged
}

func NewGenericOnPowerUpSetUnacknowledged(appKey []byte, onPowerUp int) (*GenericOnPowerUpSetUnacknowledged, error) {
	m := &GenericOnPowerUpSetUnacknowledged{onPowerUpSet{onPowerUp: onPowerUp}}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ===== Generic Power Level =====

// powerLevelSet 参数: [Power 2B LE][TID 1B]{[TT 1B][Delay 1B]}
type powerLevelSet struct {
	base
	transactional
	power int
}

func (m *powerLevelSet) Power() uint16 { return uint16(m.power) }

func (m *powerLevelSet) validate() error { return m.transition.validate() }

func (m *powerLevelSet) Fields() []Field {
	return append([]Field{U16("power", int64(m.power))}, m.tail()...)
}

func newPowerLevelSet(power, tid int, t *Transition) powerLevelSet {
	return powerLevelSet{transactional: transactional{tid: tid, transition: copyTransition(t)}, power: power}
}

type GenericPowerLevelSet struct{ powerLevelSet }

func (*GenericPowerLevelSet) Opcode() opcode.Opcode { return opcode.GenericPowerLevelSet }

func NewGenericPowerLevelSet(appKey []byte, power, tid int, t *Transition) (*GenericPowerLevelSet, error) {
	m := &GenericPowerLevelSet{newPowerLevelSet(power, tid, t)}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

type GenericPowerLevelSetUnacknowledged struct{ powerLevelSet }

func (*GenericPowerLevelSetUnacknowledged) Opcode() opcode.Opcode {
	return opcode.GenericPowerLevelSetUnacknowledged
}

func NewGenericPowerLevelSetUnacknowledged(appKey []byte, power, tid int, t *Transition) (*GenericPowerLevelSetUnacknowledged, error) {
	m := &GenericPowerLevelSetUnacknowledged{newPowerLevelSet(power, tid, t)}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}
