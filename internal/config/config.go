// Package config handles configuration loading, validation and the
// render settings that can change while the game runs.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Renderer strategies.
const (
	StrategyBatched   = "batched"
	StrategyImmediate = "immediate"
)

// Terrain generators.
const (
	GeneratorFlat  = "flat"
	GeneratorHills = "hills"
)

// Config holds all settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Render  RenderConfig  `yaml:"render"`
	Camera  CameraConfig  `yaml:"camera"`
	World   WorldConfig   `yaml:"world"`
	Assets  AssetsConfig  `yaml:"assets"`
	Logging LoggingConfig `yaml:"logging"`
	Capture CaptureConfig `yaml:"capture"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
	MaxFPS int    `yaml:"max_fps"`
}

// RenderConfig sizes the block renderer.
type RenderConfig struct {
	Strategy        string     `yaml:"strategy"`
	MaxQuads        int        `yaml:"max_quads"`
	MaxTextureUnits int        `yaml:"max_texture_units"`
	AllocRetries    int        `yaml:"alloc_retries"`
	ClearColor      [4]float32 `yaml:"clear_color"`
}

// CameraConfig holds projection and fly camera settings.
type CameraConfig struct {
	FOVDegrees float32    `yaml:"fov_degrees"`
	Near       float32    `yaml:"near"`
	Far        float32    `yaml:"far"`
	MoveSpeed  float32    `yaml:"move_speed"`
	TurnSpeed  float32    `yaml:"turn_speed"`
	Position   [3]float32 `yaml:"position"`
}

// WorldConfig drives the demo world.
type WorldConfig struct {
	Generator    string `yaml:"generator"`
	Seed         int64  `yaml:"seed"`
	ChunkRadius  int    `yaml:"chunk_radius"`
	FillHeight   int    `yaml:"fill_height"`
	FillBlock    string `yaml:"fill_block"`
	SurfaceBlock string `yaml:"surface_block"`
}

// AssetsConfig holds asset locations.
type AssetsConfig struct {
	TexturesDir string `yaml:"textures_dir"`
	TextureSize int    `yaml:"texture_size"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// CaptureConfig enables recording of device calls for the first frames.
type CaptureConfig struct {
	Path   string `yaml:"path"`
	Frames int    `yaml:"frames"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "BuildCraft",
			VSync:  true,
		},
		Render: RenderConfig{
			Strategy:        StrategyBatched,
			MaxQuads:        100000,
			MaxTextureUnits: 16,
			AllocRetries:    3,
			ClearColor:      [4]float32{0.53, 0.81, 0.92, 1.0},
		},
		Camera: CameraConfig{
			FOVDegrees: 45,
			Near:       0.1,
			Far:        100,
			MoveSpeed:  10,
			TurnSpeed:  0.1,
			Position:   [3]float32{8, 70, 30},
		},
		World: WorldConfig{
			Generator:    GeneratorFlat,
			Seed:         1337,
			ChunkRadius:  1,
			FillHeight:   64,
			FillBlock:    "dirt",
			SurfaceBlock: "cobblestone",
		},
		Assets: AssetsConfig{
			TexturesDir: "assets/textures",
			TextureSize: 16,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  20,
			MaxBackups: 3,
		},
		Capture: CaptureConfig{
			Frames: 1,
		},
	}
}

// Validate checks rules that span more than one field.
func (c *Config) Validate() error {
	switch c.Render.Strategy {
	case StrategyBatched, StrategyImmediate:
	default:
		return fmt.Errorf("%w: unknown render strategy %q", ErrInvalid, c.Render.Strategy)
	}
	if c.Render.MaxQuads < 1 {
		return fmt.Errorf("%w: render.max_quads must be at least 1, got %d", ErrInvalid, c.Render.MaxQuads)
	}
	if c.Render.MaxTextureUnits < 1 {
		return fmt.Errorf("%w: render.max_texture_units must be at least 1, got %d", ErrInvalid, c.Render.MaxTextureUnits)
	}
	if c.Render.AllocRetries < 1 {
		return fmt.Errorf("%w: render.alloc_retries must be at least 1, got %d", ErrInvalid, c.Render.AllocRetries)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: camera clip planes near=%v far=%v", ErrInvalid, c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.FOVDegrees <= 0 || c.Camera.FOVDegrees >= 180 {
		return fmt.Errorf("%w: camera.fov_degrees must be in (0,180), got %v", ErrInvalid, c.Camera.FOVDegrees)
	}
	switch c.World.Generator {
	case GeneratorFlat, GeneratorHills:
	default:
		return fmt.Errorf("%w: unknown world generator %q", ErrInvalid, c.World.Generator)
	}
	if c.World.FillHeight < 0 || c.World.FillHeight > 256 {
		return fmt.Errorf("%w: world.fill_height must be in [0,256], got %d", ErrInvalid, c.World.FillHeight)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Capture.Path != "" && c.Capture.Frames < 1 {
		return fmt.Errorf("%w: capture.frames must be at least 1 when capture.path is set", ErrInvalid)
	}
	return nil
}
