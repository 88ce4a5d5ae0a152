package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Render.Strategy != StrategyBatched {
		t.Errorf("expected batched strategy, got %s", cfg.Render.Strategy)
	}
	if cfg.Render.MaxQuads != 100000 {
		t.Errorf("expected max quads 100000, got %d", cfg.Render.MaxQuads)
	}
	if cfg.Render.MaxTextureUnits != 16 {
		t.Errorf("expected 16 texture units, got %d", cfg.Render.MaxTextureUnits)
	}
	if cfg.Camera.FOVDegrees != 45 {
		t.Errorf("expected fov 45, got %v", cfg.Camera.FOVDegrees)
	}
	if cfg.Camera.Near != 0.1 || cfg.Camera.Far != 100 {
		t.Errorf("expected clip 0.1/100, got %v/%v", cfg.Camera.Near, cfg.Camera.Far)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestDecodeMergesWithDefaults(t *testing.T) {
	cfg := Default()
	data := []byte(`
render:
  strategy: immediate
  max_quads: 512
logging:
  level: debug
`)
	if err := Decode(cfg, data); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if cfg.Render.Strategy != StrategyImmediate {
		t.Errorf("strategy = %s, want immediate", cfg.Render.Strategy)
	}
	if cfg.Render.MaxQuads != 512 {
		t.Errorf("max_quads = %d, want 512", cfg.Render.MaxQuads)
	}
	// untouched keys keep defaults
	if cfg.Render.MaxTextureUnits != 16 {
		t.Errorf("max_texture_units = %d, want default 16", cfg.Render.MaxTextureUnits)
	}
	if cfg.Window.Width != 1280 {
		t.Errorf("window width = %d, want default 1280", cfg.Window.Width)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging level = %s, want debug", cfg.Logging.Level)
	}
}

func TestDecodeRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown strategy", "render:\n  strategy: deferred\n"},
		{"zero quads", "render:\n  max_quads: 0\n"},
		{"too many units", "render:\n  max_texture_units: 1000\n"},
		{"unknown section", "shadows:\n  enabled: true\n"},
		{"unknown key", "render:\n  quads: 10\n"},
		{"bad level", "logging:\n  level: loud\n"},
		{"short clear color", "render:\n  clear_color: [1, 0, 1]\n"},
		{"wrong type", "window:\n  width: wide\n"},
		{"unknown generator", "world:\n  generator: caves\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			err := Decode(cfg, []byte(tt.yaml))
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("Decode err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestDecodeEmptyDocument(t *testing.T) {
	cfg := Default()
	if err := Decode(cfg, []byte("")); err != nil {
		t.Fatalf("empty document should be accepted: %v", err)
	}
	if cfg.Render.MaxQuads != 100000 {
		t.Errorf("empty document changed defaults")
	}
}

func TestValidateCrossField(t *testing.T) {
	cfg := Default()
	cfg.Camera.Near = 10
	cfg.Camera.Far = 5
	if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("far < near: err = %v, want ErrInvalid", err)
	}

	cfg = Default()
	cfg.Capture.Path = "frames.jsonl.zst"
	cfg.Capture.Frames = 0
	if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("capture without frames: err = %v, want ErrInvalid", err)
	}

	cfg = Default()
	cfg.World.Generator = ""
	if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("empty generator: err = %v, want ErrInvalid", err)
	}
}

func TestDecodeWorldGenerator(t *testing.T) {
	cfg := Default()
	if err := Decode(cfg, []byte("world:\n  generator: hills\n  seed: -42\n")); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cfg.World.Generator != GeneratorHills || cfg.World.Seed != -42 {
		t.Errorf("world = %+v, want hills seeded -42", cfg.World)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Render.Strategy = StrategyImmediate
	cfg.Render.MaxQuads = 2048
	cfg.World.ChunkRadius = 3
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file missing: %v", err)
	}

	loaded := Default()
	if err := LoadFile(loaded, path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Render.Strategy != StrategyImmediate || loaded.Render.MaxQuads != 2048 || loaded.World.ChunkRadius != 3 {
		t.Errorf("round trip mismatch: %+v", loaded.Render)
	}
}

func TestRuntimeSettings(t *testing.T) {
	defer Apply(Default())

	cfg := Default()
	cfg.Render.Strategy = StrategyImmediate
	cfg.World.ChunkRadius = 4
	cfg.Window.MaxFPS = 144
	Apply(cfg)

	if got := GetFPSLimit(); got != 144 {
		t.Errorf("GetFPSLimit = %d, want 144", got)
	}

	if got := GetStrategy(); got != StrategyImmediate {
		t.Errorf("GetStrategy = %s, want immediate", got)
	}
	if got := ToggleStrategy(); got != StrategyBatched {
		t.Errorf("ToggleStrategy = %s, want batched", got)
	}
	SetStrategy("bogus")
	if got := GetStrategy(); got != StrategyBatched {
		t.Errorf("unknown strategy should be ignored, got %s", got)
	}

	if got := GetChunkRadius(); got != 4 {
		t.Errorf("GetChunkRadius = %d, want 4", got)
	}
	SetChunkRadius(100)
	if got := GetChunkRadius(); got != 32 {
		t.Errorf("radius should clamp to 32, got %d", got)
	}

	SetFPSLimit(-5)
	if got := GetFPSLimit(); got != 0 {
		t.Errorf("negative fps limit should disable the cap, got %d", got)
	}
}
