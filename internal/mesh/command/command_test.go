package command

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taoyao-code/meshmsg/internal/mesh/message"
	"github.com/taoyao-code/meshmsg/internal/mesh/opcode"
)

const zeroKey = "00000000000000000000000000000000"

func TestCommandBuild(t *testing.T) {
	m, err := Command{
		AppKey: zeroKey,
		Opcode: "SCENE_STORE_UNACKNOWLEDGED",
		Params: map[string]int64{"scene": 4},
	}.Build()
	require.NoError(t, err)
	assert.Equal(t, opcode.SceneStoreUnacknowledged, m.Opcode())
	assert.Equal(t, []byte{0x04, 0x00}, m.Parameters())

	// 索引上界
	_, err = Command{AppKey: zeroKey, Opcode: "SCENE_GET", AppKeyIndex: MaxAppKeyIndex}.Build()
	require.NoError(t, err)

	// 十六进制操作码
	m, err = Command{AppKey: zeroKey, Opcode: "0x8241"}.Build()
	require.NoError(t, err)
	assert.Equal(t, opcode.SceneGet, m.Opcode())
}

func TestCommandBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want error
	}{
		{"非十六进制Key", Command{AppKey: "zz", Opcode: "SCENE_GET"}, message.ErrInvalidArgument},
		{"Key长度不符", Command{AppKey: "0011", Opcode: "SCENE_GET"}, message.ErrInvalidArgument},
		{"未知操作码", Command{AppKey: zeroKey, Opcode: "SCENE_TELEPORT"}, message.ErrUnsupportedOpcode},
		{"缺少参数", Command{AppKey: zeroKey, Opcode: "SCENE_STORE"}, message.ErrInvalidArgument},
		{"超出范围", Command{AppKey: zeroKey, Opcode: "SCENE_STORE", Params: map[string]int64{"scene": 70000}}, message.ErrInvalidArgument},
		{"AppKey索引超出12位", Command{AppKey: zeroKey, Opcode: "SCENE_GET", AppKeyIndex: 4096}, message.ErrInvalidArgument},
		{"AppKey索引为负", Command{AppKey: zeroKey, Opcode: "SCENE_GET", AppKeyIndex: -1}, message.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.cmd.Build()
			assert.Nil(t, m)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseAppKey(t *testing.T) {
	key, err := ParseAppKey("0x00112233 44556677 8899aabb ccddeeff")
	require.NoError(t, err)
	assert.Len(t, key, 16)
	assert.Equal(t, byte(0xff), key[15])
}

func TestParseDst(t *testing.T) {
	tests := []struct {
		in   string
		want uint16
		ok   bool
	}{
		{"", 0, true},
		{"0xC000", 0xC000, true},
		{"49152", 0xC000, true},
		{"0x10000", 0, false},
		{"group", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDst(tt.in)
			if !tt.ok {
				assert.ErrorIs(t, err, message.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewResult(t *testing.T) {
	m, err := message.NewSceneStoreUnacknowledged(make([]byte, 16), 4)
	require.NoError(t, err)

	r := NewResult(m)
	assert.Equal(t, "SCENE_STORE_UNACKNOWLEDGED", r.Opcode)
	assert.Equal(t, "0x8247", r.OpcodeHex)
	assert.Equal(t, "0400", r.Parameters)
	assert.Equal(t, "82470400", r.AccessPayload)
	assert.True(t, strings.HasPrefix(r.Wire, "8247"))
	assert.True(t, strings.HasSuffix(r.Wire, "0400"))
	assert.Len(t, r.Wire, 10)
	assert.False(t, r.Acknowledged)
}

func TestDecode(t *testing.T) {
	src := `
defaults:
  app_key: "` + zeroKey + `"
  dst: "0xC000"
commands:
  - opcode: SCENE_STORE_UNACKNOWLEDGED
    params: {scene: 4}
  - opcode: GENERIC_ON_OFF_SET
    app_key: "0102030405060708090a0b0c0d0e0f10"
    dst: "0x0001"
    params: {onOff: 1, tid: 7}
`
	cmds, err := Decode(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, cmds, 2)

	assert.Equal(t, zeroKey, cmds[0].AppKey)
	assert.Equal(t, "0xC000", cmds[0].Dst)
	assert.Equal(t, int64(4), cmds[0].Params["scene"])

	assert.Equal(t, "0102030405060708090a0b0c0d0e0f10", cmds[1].AppKey)
	assert.Equal(t, "0x0001", cmds[1].Dst)

	for _, c := range cmds {
		_, err := c.Build()
		assert.NoError(t, err)
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(strings.NewReader("commands:\n  - opcode: SCENE_GET\n    colour: red\n"))
	assert.Error(t, err, "未知字段应报错")

	cmds, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, cmds)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("commands:\n  - app_key: "+zeroKey+"\n    opcode: TIME_GET\n"), 0o644))

	cmds, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.Equal(t, "TIME_GET", cmds[0].Opcode)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
