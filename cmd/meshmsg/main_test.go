package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const batch = `
defaults:
  app_key: "00000000000000000000000000000000"
commands:
  - opcode: SCENE_STORE_UNACKNOWLEDGED
    params: {scene: 4}
  - opcode: LIGHT_LIGHTNESS_SET
    dst: "0xC000"
    params: {lightness: 0x1234, tid: 1}
`

func writeBatch(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_Text(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"-f", writeBatch(t, batch)}, &out, &errOut)
	require.Equal(t, 0, code, errOut.String())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "SCENE_STORE_UNACKNOWLEDGED opcode=0x8247")
	assert.Contains(t, lines[0], "params=0400")
	assert.Contains(t, lines[1], "LIGHT_LIGHTNESS_SET opcode=0x824C")
	assert.Contains(t, lines[1], "params=341201")
}

func TestRun_JSON(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"-f", writeBatch(t, batch), "-o", "json"}, &out, &errOut)
	require.Equal(t, 0, code, errOut.String())

	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "82470400", items[0]["result"].(map[string]interface{})["access_payload"])
	assert.Equal(t, "0xC000", items[1]["dst"])
}

func TestRun_YAML(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"-f", writeBatch(t, batch), "-o", "yaml"}, &out, &errOut)
	require.Equal(t, 0, code, errOut.String())

	var items []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "0400", items[0]["result"].(map[string]interface{})["parameters"])
}

func TestRun_DefaultAppKeyFlag(t *testing.T) {
	content := "commands:\n  - opcode: SCENE_GET\n"
	var out, errOut bytes.Buffer
	code := run([]string{"-f", writeBatch(t, content), "--app-key", "000102030405060708090a0b0c0d0e0f"}, &out, &errOut)
	require.Equal(t, 0, code, errOut.String())
	assert.Contains(t, out.String(), "SCENE_GET")
}

func TestRun_Errors(t *testing.T) {
	t.Run("缺少文件参数", func(t *testing.T) {
		var out, errOut bytes.Buffer
		assert.Equal(t, 2, run(nil, &out, &errOut))
	})

	t.Run("文件不存在", func(t *testing.T) {
		var out, errOut bytes.Buffer
		assert.Equal(t, 1, run([]string{"-f", filepath.Join(t.TempDir(), "none.yaml")}, &out, &errOut))
	})

	t.Run("部分失败", func(t *testing.T) {
		content := batch + "  - opcode: SCENE_STORE\n    params: {scene: 70000}\n"
		var out, errOut bytes.Buffer
		assert.Equal(t, 1, run([]string{"-f", writeBatch(t, content)}, &out, &errOut))
		assert.Contains(t, out.String(), "#2 ERROR")
	})

	t.Run("未知输出格式", func(t *testing.T) {
		var out, errOut bytes.Buffer
		assert.Equal(t, 1, run([]string{"-f", writeBatch(t, batch), "-o", "xml"}, &out, &errOut))
	})
}
