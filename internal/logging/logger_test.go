package logging

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	cfgpkg "github.com/taoyao-code/meshmsg/internal/config"
	"github.com/taoyao-code/meshmsg/internal/mesh/message"
	"github.com/taoyao-code/meshmsg/internal/mesh/opcode"
)

func TestInitLogger(t *testing.T) {
	logger, err := InitLogger(cfgpkg.LoggingConfig{
		Level:  "debug",
		Format: "console",
		File:   cfgpkg.LumberjackConfig{Filename: filepath.Join(t.TempDir(), "test.log"), MaxSizeMB: 1},
	})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	logger.Info("hello")
	_ = logger.Sync()
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, parseLevel("WARNING"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("bogus"))
}

func TestAssemblyObserver(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	obs := AssemblyObserver(zap.New(core))

	obs.OnAssembled(message.Event{
		Opcode:     opcode.SceneStoreUnacknowledged,
		AID:        0x26,
		Parameters: []byte{0x04, 0x00},
	})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "mesh message assembled", entry.Message)
	assert.Equal(t, "SCENE_STORE_UNACKNOWLEDGED", entry.ContextMap()["opcode"])
	assert.Equal(t, "0400", entry.ContextMap()["params"])
}
