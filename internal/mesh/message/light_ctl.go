package message

import (
	"fmt"

	"github.com/taoyao-code/meshmsg/internal/mesh/opcode"
)

// CTL 色温有效范围（开尔文）
const (
	MinCtlTemperature = 0x0320
	MaxCtlTemperature = 0x4E20
)

func validateTemperature(temperature int) error {
	if temperature < MinCtlTemperature || temperature > MaxCtlTemperature {
		return fmt.Errorf("%w: temperature %d out of range [%d, %d]",
			ErrInvalidArgument, temperature, MinCtlTemperature, MaxCtlTemperature)
	}
	return nil
}

// CtlState Light CTL Set 目标状态
type CtlState struct {
	Lightness   int
	Temperature int
	DeltaUV     int
}

// ctlSet 参数: [Lightness 2B][Temperature 2B][DeltaUV 2B 有符号][TID 1B]{[TT 1B][Delay 1B]}
type ctlSet struct {
	base
	transactional
	state CtlState
}

func (m *ctlSet) State() CtlState { return m.state }

func (m *ctlSet) validate() error {
	if err := validateTemperature(m.state.Temperature); err != nil {
		return err
	}
	return m.transition.validate()
}

func (m *ctlSet) Fields() []Field {
	return append([]Field{
		U16("lightness", int64(m.state.Lightness)),
		U16("temperature", int64(m.state.Temperature)),
		S16("deltaUV", int64(m.state.DeltaUV)),
	}, m.tail()...)
}

func newCtlSet(s CtlState, tid int, t *Transition) ctlSet {
	return ctlSet{transactional: transactional{tid: tid, transition: copyTransition(t)}, state: s}
}

type LightCtlSet struct{ ctlSet }

func (*LightCtlSet) Opcode() opcode.Opcode { return opcode.LightCtlSet }

func NewLightCtlSet(appKey []byte, s CtlState, tid int, t *Transition) (*LightCtlSet, error) {
	m := &LightCtlSet{newCtlSet(s, tid, t)}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

type LightCtlSetUnacknowledged struct{ ctlSet }

func (*LightCtlSetUnacknowledged) Opcode() opcode.Opcode { return opcode.LightCtlSetUnacknowledged }

func NewLightCtlSetUnacknowledged(appKey []byte, s CtlState, tid int, t *Transition) (*LightCtlSetUnacknowledged, error) {
	m := &LightCtlSetUnacknowledged{newCtlSet(s, tid, t)}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ctlTemperatureSet 参数: [Temperature 2B][DeltaUV 2B 有符号][TID 1B]{[TT 1B][Delay 1B]}
type ctlTemperatureSet struct {
	base
	transactional
	temperature int
	deltaUV     int
}

func (m *ctlTemperatureSet) Temperature() uint16 { return uint16(m.temperature) }
func (m *ctlTemperatureSet) DeltaUV() int16      { return int16(m.deltaUV) }

func (m *ctlTemperatureSet) validate() error {
	if err := validateTemperature(m.temperature); err != nil {
		return err
	}
	return m.transition.validate()
}

func (m *ctlTemperatureSet) Fields() []Field {
	return append([]Field{
		U16("temperature", int64(m.temperature)),
		S16("deltaUV", int64(m.deltaUV)),
	}, m.tail()...)
}

func newCtlTemperatureSet(temperature, deltaUV, tid int, t *Transition) ctlTemperatureSet {
	return ctlTemperatureSet{
		transactional: transactional{tid: tid, transition: copyTransition(t)},
		temperature:   temperature,
		deltaUV:       deltaUV,
	}
}

type LightCtlTemperatureSet struct{ ctlTemperatureSet }

func (*LightCtlTemperatureSet) Opcode() opcode.Opcode { return opcode.LightCtlTemperatureSet }

func NewLightCtlTemperatureSet(appKey []byte, temperature, deltaUV, tid int, t *Transition) (*LightCtlTemperatureSet, error) {
	m := &LightCtlTemperatureSet{newCtlTemperatureSet(temperature, deltaUV, tid, t)}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

type LightCtlTemperatureSetUnacknowledged struct{ ctlTemperatureSet }

func (*LightCtlTemperatureSetUnacknowledged) Opcode() opcode.Opcode {
	return opcode.LightCtlTemperatureSetUnacknowledged
}

func NewLightCtlTemperatureSetUnacknowledged(appKey []byte, temperature, deltaUV, tid int, t *Transition) (*LightCtlTemperatureSetUnacknowledged, error) {
	m := &LightCtlTemperatureSetUnacknowledged{newCtlTemperatureSet(temperature, deltaUV, tid, t)}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}
