package opcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpcodeSize(t *testing.T) {
	tests := []struct {
		name string
		op   Opcode
		size int
		wire []byte
	}{
		{"单字节", Opcode(0x5E), 1, []byte{0x5E}},
		{"双字节", SceneStoreUnacknowledged, 2, []byte{0x82, 0x47}},
		{"双字节上界", Opcode(0xBFFF), 2, []byte{0xBF, 0xFF}},
		{"厂商三字节", Opcode(0xC15900), 3, []byte{0xC1, 0x59, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.size, tt.op.Size())
			assert.Equal(t, tt.wire, tt.op.Bytes())
		})
	}
}

func TestCatalogNamesUnique(t *testing.T) {
	seen := make(map[string]Opcode)
	for _, op := range All() {
		name := op.String()
		prev, dup := seen[name]
		require.False(t, dup, "名称 %s 重复: 0x%04X / 0x%04X", name, uint32(prev), uint32(op))
		seen[name] = op
		assert.NotEmpty(t, op.Model(), "0x%04X 缺少模型族", uint32(op))
	}
	assert.Len(t, seen, len(catalog))
}

func TestAllSorted(t *testing.T) {
	ops := All()
	for i := 1; i < len(ops); i++ {
		assert.Less(t, ops[i-1], ops[i])
	}
}

func TestAcknowledged(t *testing.T) {
	assert.True(t, SceneGet.Acknowledged())
	assert.True(t, SceneStore.Acknowledged())
	assert.False(t, SceneStoreUnacknowledged.Acknowledged())
	assert.False(t, Opcode(0x1234).Acknowledged())
}

func TestParse(t *testing.T) {
	op, err := Parse("SCENE_STORE_UNACKNOWLEDGED")
	require.NoError(t, err)
	assert.Equal(t, SceneStoreUnacknowledged, op)

	op, err = Parse("scene_store_unacknowledged")
	require.NoError(t, err)
	assert.Equal(t, SceneStoreUnacknowledged, op)

	op, err = Parse("0x8247")
	require.NoError(t, err)
	assert.Equal(t, SceneStoreUnacknowledged, op)

	op, err = Parse(" 0X8247 ")
	require.NoError(t, err)
	assert.Equal(t, SceneStoreUnacknowledged, op)

	for _, bad := range []string{"0x1234", "SCENE_TELEPORT", "0x8247zz", "0x8247 junk", "0x", "8247", "0x-8247"} {
		t.Run(bad, func(t *testing.T) {
			_, err := Parse(bad)
			assert.Error(t, err)
		})
	}
}

func TestStringUnknown(t *testing.T) {
	assert.Equal(t, "UNKNOWN_0x1234", Opcode(0x1234).String())
}
