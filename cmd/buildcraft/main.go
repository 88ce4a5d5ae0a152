package main

import (
	"os"
	"runtime"

	"buildcraft/internal/config"
	"buildcraft/internal/logger"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(logger.Options{
		Level:      cfg.Logging.Level,
		File:       cfg.Logging.LogFile,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		Console:    os.Stdout,
	}); err != nil {
		panic(err)
	}
	defer logger.Sync()
	config.Apply(cfg)

	if err := glfw.Init(); err != nil {
		logger.Fatal("glfw init failed", zap.Error(err))
	}
	defer glfw.Terminate()

	window, err := setupWindow(cfg.Window)
	if err != nil {
		logger.Fatal("window creation failed", zap.Error(err))
	}
	defer window.Destroy()

	game, err := setupGame(window, cfg)
	if err != nil {
		logger.Error("game setup failed", zap.Error(err))
		return
	}
	defer game.Close()

	im := game.Input
	loop := NewGameLoop(window, game, im)
	setupInputHandlers(window, loop, game, im)

	logger.Info("BuildCraft started",
		zap.String("strategy", game.Renderer.Active().Name()),
		zap.String("generator", cfg.World.Generator),
		zap.Int("chunkRadius", config.GetChunkRadius()))

	loop.Run()
}
