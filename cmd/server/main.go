package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/taoyao-code/meshmsg/internal/app/bootstrap"
	cfgpkg "github.com/taoyao-code/meshmsg/internal/config"
	"github.com/taoyao-code/meshmsg/internal/logging"
)

// @title Mesh Message API
// @version 1.0
// @description Bluetooth mesh 访问层消息组装服务
// @BasePath /
func main() {
	// 1) 加载配置（MESH_CONFIG 指定路径）
	cfg, err := cfgpkg.Load("")
	if err != nil {
		panic(err)
	}

	// 2) 初始化日志
	logger, err := logging.InitLogger(cfg.Logging)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	// 3) 启动
	if err := bootstrap.Run(cfg, zap.L()); err != nil {
		zap.L().Error("service exited", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}
