package main

import (
	"time"

	"buildcraft/internal/config"
	"buildcraft/internal/input"
	"buildcraft/internal/logger"
	"buildcraft/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// evictInterval paces the removal of chunks outside the view radius.
const evictInterval = 750 * time.Millisecond

// GameLoop manages the main game loop state
type GameLoop struct {
	window *glfw.Window
	game   *Game
	input  *input.InputManager

	mouseCaptured bool
	logProfiling  bool
	renderErrors  int
	fpsLimiter    *FPSLimiter

	// Timing
	frames           int
	lastFPSCheckTime time.Time
	lastTime         time.Time
	lastEvict        time.Time
}

// NewGameLoop creates a new game loop with all components
func NewGameLoop(window *glfw.Window, game *Game, im *input.InputManager) *GameLoop {
	now := time.Now()
	return &GameLoop{
		window:           window,
		game:             game,
		input:            im,
		mouseCaptured:    true,
		fpsLimiter:       NewFPSLimiter(),
		lastFPSCheckTime: now,
		lastTime:         now,
		lastEvict:        now,
	}
}

// Run starts the main game loop
func (gl *GameLoop) Run() {
	for !gl.window.ShouldClose() {
		gl.tick()
	}
}

func (gl *GameLoop) tick() {
	profiling.ResetFrame()
	now := time.Now()
	dt := now.Sub(gl.lastTime).Seconds()
	gl.lastTime = now

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	gl.handleActions()
	if gl.mouseCaptured {
		func() { defer profiling.Track("player.Update")(); gl.game.Player.UpdatePosition(dt, gl.input) }()
	}
	gl.processWorldUpdates(now)

	gl.renderFrame()

	func() { defer profiling.Track("glfw.SwapBuffers")(); gl.window.SwapBuffers() }()

	gl.input.PostUpdate()
	gl.updateProfiling(now)

	gl.fpsLimiter.Wait(config.GetFPSLimit())
}

func (gl *GameLoop) handleActions() {
	if gl.input.JustPressed(input.ActionQuit) {
		gl.window.SetShouldClose(true)
	}
	if gl.input.JustPressed(input.ActionToggleStrategy) {
		gl.game.Renderer.SetStrategy(config.ToggleStrategy())
	}
	if gl.input.JustPressed(input.ActionToggleProfiling) {
		gl.logProfiling = !gl.logProfiling
	}
	if gl.input.JustPressed(input.ActionReleaseMouse) {
		gl.setMouseCaptured(false)
	}
	if !gl.mouseCaptured && gl.input.JustPressed(input.ActionMouseLeft) {
		gl.setMouseCaptured(true)
	}
}

func (gl *GameLoop) setMouseCaptured(captured bool) {
	gl.mouseCaptured = captured
	if captured {
		gl.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		gl.game.Player.ResetMouse()
	} else {
		gl.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

func (gl *GameLoop) processWorldUpdates(now time.Time) {
	center := gl.game.Player.ChunkCoord()
	radius := config.GetChunkRadius()
	gl.game.World.EnsureRadius(center, radius)

	if now.Sub(gl.lastEvict) > evictInterval {
		gl.game.World.Store().EvictFarChunks(center.X, center.Z, radius+2)
		gl.lastEvict = now
	}
}

func (gl *GameLoop) renderFrame() {
	g := gl.game
	err := g.Renderer.RenderWorld(g.World, g.Player.ChunkCoord(), config.GetChunkRadius(), g.Player)
	if err != nil {
		// Only the first few failures are logged; the rest are counted.
		gl.renderErrors++
		if gl.renderErrors <= 3 {
			logger.Error("frame failed", zap.Error(err))
		}
	}
	if g.Capture != nil && g.Capture.Recording() {
		if err := g.Capture.EndFrame(); err != nil {
			logger.Warn("capture frame", zap.Error(err))
		}
	}
	gl.frames++
}

func (gl *GameLoop) updateProfiling(now time.Time) {
	if time.Since(gl.lastFPSCheckTime) < time.Second {
		return
	}
	stats := gl.game.Renderer.Stats()
	fields := []zap.Field{
		zap.Int("fps", gl.frames),
		zap.String("strategy", gl.game.Renderer.Active().Name()),
		zap.Int("quads", stats.Quads),
		zap.Int("drawCalls", stats.DrawCalls),
		zap.Int("flushes", stats.Flushes),
		zap.Int("textureBinds", stats.TextureBinds),
		zap.Int("renderErrors", gl.renderErrors),
	}
	if gl.logProfiling {
		fields = append(fields, zap.String("top", profiling.TopN(5)))
		fields = append(fields, profiling.Fields()...)
		logger.Info("frame stats", fields...)
	} else {
		logger.Debug("frame stats", fields...)
	}
	gl.frames = 0
	gl.lastFPSCheckTime = now
}
