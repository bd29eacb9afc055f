package logging

import (
	"encoding/hex"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	cfgpkg "github.com/taoyao-code/meshmsg/internal/config"
	"github.com/taoyao-code/meshmsg/internal/mesh/message"
)

// InitLogger 初始化 zap 日志器（支持 lumberjack 滚动文件）
// 未配置文件名时只输出到 stdout
func InitLogger(cfg cfgpkg.LoggingConfig) (*zap.Logger, error) {
	level := parseLevel(cfg.Level)

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     func(t time.Time, enc zapcore.PrimitiveArrayEncoder) { enc.AppendString(t.Format(time.RFC3339Nano)) },
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if strings.ToLower(cfg.Format) == "console" {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	ws := zapcore.AddSync(os.Stdout)
	if cfg.File.Filename != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.File.Filename,
			MaxSize:    cfg.File.MaxSizeMB,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAgeDays,
			Compress:   cfg.File.Compress,
		}
		// 控制台 + 文件双写
		ws = zapcore.NewMultiWriteSyncer(ws, zapcore.AddSync(lj))
	}
	core := zapcore.NewCore(encoder, ws, level)

	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	return logger, nil
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// AssemblyObserver 组装成功时输出 debug 日志（旁路，不参与组装）
func AssemblyObserver(logger *zap.Logger) message.Observer {
	return message.ObserverFunc(func(e message.Event) {
		if ce := logger.Check(zapcore.DebugLevel, "mesh message assembled"); ce != nil {
			ce.Write(
				zap.String("opcode", e.Opcode.String()),
				zap.Uint8("aid", e.AID),
				zap.String("params", hex.EncodeToString(e.Parameters)),
			)
		}
	})
}
