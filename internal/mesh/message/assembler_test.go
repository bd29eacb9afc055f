package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taoyao-code/meshmsg/internal/mesh/opcode"
)

type testLayout struct {
	op     opcode.Opcode
	fields []Field
}

func (l testLayout) Opcode() opcode.Opcode { return l.op }
func (l testLayout) Fields() []Field      { return l.fields }

func TestAssemble_FieldOrderAndEndianness(t *testing.T) {
	a, err := Assemble(zeroAppKey, testLayout{
		op: opcode.LightCtlSet,
		fields: []Field{
			U16("lightness", 0x1234),
			U8("tid", 0xAB),
			S16("deltaUV", -2),
			S32("delta", -1),
			{Name: "u24", Value: 0x010203, Bits: 24},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x34, 0x12,
		0xAB,
		0xFE, 0xFF,
		0xFF, 0xFF, 0xFF, 0xFF,
		0x03, 0x02, 0x01,
	}, a.Parameters)
	assert.Equal(t, opcode.LightCtlSet, a.Opcode)
}

func TestAssemble_EmptyFields(t *testing.T) {
	a, err := Assemble(zeroAppKey, testLayout{op: opcode.SceneGet})
	require.NoError(t, err)
	assert.NotNil(t, a.Parameters)
	assert.Empty(t, a.Parameters)
}

func TestAssemble_SerializationErrors(t *testing.T) {
	tests := []struct {
		name  string
		field Field
	}{
		{"位宽非字节对齐", Field{Name: "x", Value: 1, Bits: 12}},
		{"位宽为0", Field{Name: "x", Value: 0, Bits: 0}},
		{"大端声明", Field{Name: "x", Value: 1, Bits: 16, Order: BigEndian}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Assemble(zeroAppKey, testLayout{op: opcode.SceneStore, fields: []Field{tt.field}})
			assert.ErrorIs(t, err, ErrSerialization)
			assert.Nil(t, a)
		})
	}
}

func TestAssemble_RangeChecks(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		ok    bool
	}{
		{"u8上界", U8("v", 255), true},
		{"u8溢出", U8("v", 256), false},
		{"u8负数", U8("v", -1), false},
		{"s16下界", S16("v", -32768), true},
		{"s16上界", S16("v", 32767), true},
		{"s16溢出", S16("v", 32768), false},
		{"s16下溢", S16("v", -32769), false},
		{"s32上界", S32("v", 1<<31-1), true},
		{"s32溢出", S32("v", 1<<31), false},
		{"u16上界", U16("v", 0xFFFF), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Assemble(zeroAppKey, testLayout{op: opcode.SceneStore, fields: []Field{tt.field}})
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidArgument)
			}
		})
	}
}

func TestAssemble_UnsupportedOpcode(t *testing.T) {
	_, err := Assemble(zeroAppKey, testLayout{op: opcode.Opcode(0x8204)})
	assert.ErrorIs(t, err, ErrUnsupportedOpcode)
}

func TestAssemble_InvalidKey(t *testing.T) {
	_, err := Assemble(nil, testLayout{op: opcode.SceneGet})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = Assemble(make([]byte, 17), testLayout{op: opcode.SceneGet})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestEncodeAndAccessPayload(t *testing.T) {
	m, err := NewSceneStoreUnacknowledged(zeroAppKey, 4)
	require.NoError(t, err)

	assert.Equal(t, []byte{0x82, 0x47, 0x04, 0x00}, AccessPayload(m))
	assert.Equal(t, []byte{0x82, 0x47, m.AID(), 0x04, 0x00}, Encode(m))
}

func TestAssemble_Concurrent(t *testing.T) {
	ref, err := NewLightHslSet(zeroAppKey, HslState{Lightness: 1, Hue: 2, Saturation: 3}, 4, nil)
	require.NoError(t, err)

	const n = 32
	results := make(chan []byte, n)
	for i := 0; i < n; i++ {
		go func() {
			m, err := NewLightHslSet(zeroAppKey, HslState{Lightness: 1, Hue: 2, Saturation: 3}, 4, nil)
			if err != nil {
				results <- nil
				return
			}
			results <- Encode(m)
		}()
	}
	for i := 0; i < n; i++ {
		assert.Equal(t, Encode(ref), <-results)
	}
}
