package main

import (
	"errors"
	"fmt"

	"buildcraft/internal/config"
	"buildcraft/internal/graphics"
	"buildcraft/internal/graphics/camera"
	"buildcraft/internal/graphics/gpu"
	"buildcraft/internal/graphics/renderables/chunks"
	"buildcraft/internal/graphics/renderables/cubes"
	"buildcraft/internal/graphics/renderer"
	"buildcraft/internal/graphics/textures"
	"buildcraft/internal/input"
	"buildcraft/internal/logger"
	"buildcraft/internal/player"
	"buildcraft/internal/world"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

func setupWindow(cfg config.WindowConfig) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	return window, nil
}

// newGenerator builds the terrain generator named by the world config.
func newGenerator(cfg config.WorldConfig) (world.TerrainGenerator, error) {
	fill, ok := world.ParseBlockType(cfg.FillBlock)
	if !ok {
		return nil, fmt.Errorf("unknown fill block %q", cfg.FillBlock)
	}
	surface, ok := world.ParseBlockType(cfg.SurfaceBlock)
	if !ok {
		return nil, fmt.Errorf("unknown surface block %q", cfg.SurfaceBlock)
	}

	switch cfg.Generator {
	case config.GeneratorFlat:
		return &world.FlatGenerator{Height: cfg.FillHeight, FillBlock: fill, SurfaceBlock: surface}, nil
	case config.GeneratorHills:
		g := world.NewHillsGenerator(cfg.Seed, cfg.FillHeight)
		g.FillBlock, g.SurfaceBlock = fill, surface
		return g, nil
	}
	return nil, fmt.Errorf("unknown world generator %q", cfg.Generator)
}

// Game holds all the initialized game components
type Game struct {
	Device   gpu.Device
	Capture  *gpu.Capture
	Textures *textures.Manager
	Renderer *renderer.Renderer
	World    *world.World
	Player   *player.Player
	Input    *input.InputManager

	closers []func() error
}

func setupGame(window *glfw.Window, cfg *config.Config) (_ *Game, err error) {
	g := &Game{Input: input.NewInputManager()}
	defer func() {
		if err != nil {
			g.Close()
		}
	}()

	glDev, err := graphics.NewGLDevice()
	if err != nil {
		return nil, err
	}
	g.Device = glDev

	if cfg.Capture.Path != "" {
		capture, err := gpu.OpenCapture(glDev, cfg.Capture.Path, cfg.Capture.Frames)
		if err != nil {
			return nil, err
		}
		g.Capture = capture
		g.Device = capture
		g.closers = append(g.closers, capture.Close)
		logger.Info("capturing device calls",
			zap.String("path", cfg.Capture.Path),
			zap.Int("frames", cfg.Capture.Frames))
	}

	fbWidth, fbHeight := window.GetFramebufferSize()
	g.Device.SetViewport(fbWidth, fbHeight)

	g.Textures, err = textures.Load(g.Device, cfg.Assets.TexturesDir, cfg.Assets.TextureSize)
	if err != nil {
		return nil, fmt.Errorf("loading textures: %w", err)
	}
	g.closers = append(g.closers, func() error { g.Textures.Close(); return nil })

	proj := camera.NewProjection(fbWidth, fbHeight, cfg.Camera.FOVDegrees, cfg.Camera.Near, cfg.Camera.Far)
	batched, err := chunks.New(g.Device, g.Textures, proj, chunks.Options{
		MaxQuads:        cfg.Render.MaxQuads,
		MaxTextureUnits: cfg.Render.MaxTextureUnits,
		AllocRetries:    cfg.Render.AllocRetries,
		ClearColor:      cfg.Render.ClearColor,
	})
	if err != nil {
		return nil, fmt.Errorf("batched renderer: %w", err)
	}
	immediate, err := cubes.New(g.Device, g.Textures, proj, cfg.Render.ClearColor)
	if err != nil {
		_ = batched.Close()
		return nil, fmt.Errorf("immediate renderer: %w", err)
	}
	g.Renderer, err = renderer.NewRenderer(g.Device, proj, batched, immediate)
	if err != nil {
		_ = immediate.Close()
		_ = batched.Close()
		return nil, err
	}
	g.closers = append(g.closers, g.Renderer.Close)
	g.Renderer.SetStrategy(config.GetStrategy())

	gen, err := newGenerator(cfg.World)
	if err != nil {
		return nil, err
	}
	g.World = world.New(gen)

	pos := mgl32.Vec3(cfg.Camera.Position)
	g.Player = player.New(pos, cfg.Camera.MoveSpeed, float64(cfg.Camera.TurnSpeed))
	created := g.World.EnsureRadius(g.Player.ChunkCoord(), config.GetChunkRadius())
	logger.Info("world ready",
		zap.Int("chunks", created),
		zap.Int("surface", g.World.SurfaceHeightAt(int(pos.X()), int(pos.Z()))))

	return g, nil
}

// Close releases the components in reverse order of creation.
func (g *Game) Close() {
	var errs []error
	for i := len(g.closers) - 1; i >= 0; i-- {
		if err := g.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	g.closers = nil
	if err := errors.Join(errs...); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}
