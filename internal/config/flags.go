package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagStrategy  = flag.String("strategy", "", "Block renderer strategy (batched|immediate)")
	flagMaxQuads  = flag.Int("max-quads", 0, "Quads per batch")
	flagWidth     = flag.Int("width", 0, "Window width")
	flagHeight    = flag.Int("height", 0, "Window height")
	flagCapture   = flag.String("capture", "", "Write device calls of the first frames to this .jsonl.zst file")
	flagChunkDist = flag.Int("chunks", -1, "Chunk radius around the origin")
	flagGenerator = flag.String("generator", "", "Terrain generator (flat|hills)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagStrategy != "" {
		cfg.Render.Strategy = *flagStrategy
	}
	if *flagMaxQuads > 0 {
		cfg.Render.MaxQuads = *flagMaxQuads
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagCapture != "" {
		cfg.Capture.Path = *flagCapture
	}
	if *flagGenerator != "" {
		cfg.World.Generator = *flagGenerator
	}
	if *flagChunkDist >= 0 {
		cfg.World.ChunkRadius = *flagChunkDist
	}
}
