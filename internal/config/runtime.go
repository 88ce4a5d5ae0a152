package config

import "sync"

// RenderSettings holds render settings that may change between frames.
type RenderSettings struct {
	mu          sync.RWMutex
	strategy    string
	chunkRadius int
	fpsLimit    int
}

var globalRenderSettings = &RenderSettings{
	strategy:    StrategyBatched,
	chunkRadius: 1,
}

// Apply seeds the runtime settings from a loaded config.
func Apply(cfg *Config) {
	SetStrategy(cfg.Render.Strategy)
	SetChunkRadius(cfg.World.ChunkRadius)
	SetFPSLimit(cfg.Window.MaxFPS)
}

// GetFPSLimit returns the frame rate cap; 0 means unlimited.
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame rate cap. Negative values disable it.
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.fpsLimit = max(limit, 0)
}

// GetStrategy returns the active block renderer strategy.
func GetStrategy() string {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.strategy
}

// SetStrategy switches the block renderer strategy. Unknown values are ignored.
func SetStrategy(strategy string) {
	if strategy != StrategyBatched && strategy != StrategyImmediate {
		return
	}
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.strategy = strategy
}

// ToggleStrategy flips between the batched and immediate strategies and
// returns the new one.
func ToggleStrategy() string {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	if globalRenderSettings.strategy == StrategyBatched {
		globalRenderSettings.strategy = StrategyImmediate
	} else {
		globalRenderSettings.strategy = StrategyBatched
	}
	return globalRenderSettings.strategy
}

// GetChunkRadius returns the chunk radius drawn around the origin.
func GetChunkRadius() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.chunkRadius
}

// SetChunkRadius sets the chunk radius, clamped to [0,32].
func SetChunkRadius(radius int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if radius < 0 {
		radius = 0
	}
	if radius > 32 {
		radius = 32
	}

	globalRenderSettings.chunkRadius = radius
}
