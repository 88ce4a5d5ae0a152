package renderer

import (
	"errors"
	"fmt"

	"buildcraft/internal/graphics/camera"
	"buildcraft/internal/graphics/gpu"
	"buildcraft/internal/logger"
	"buildcraft/internal/profiling"
	"buildcraft/internal/world"

	"go.uber.org/zap"
)

// Renderer orchestrates block rendering through one of several
// interchangeable strategies.
type Renderer struct {
	dev        gpu.Device
	projection *camera.Projection
	strategies []BlockRenderer
	active     int

	chunks []*world.Chunk
	stats  FrameStats
	closed bool
}

// NewRenderer creates a renderer over the given strategies. The first one
// is active until SetStrategy picks another. proj must be the projection
// the strategies were built with so viewport changes reach them.
func NewRenderer(dev gpu.Device, proj *camera.Projection, strategies ...BlockRenderer) (*Renderer, error) {
	if len(strategies) == 0 {
		return nil, errors.New("renderer: no block renderer strategies")
	}
	seen := make(map[string]bool, len(strategies))
	for _, s := range strategies {
		if seen[s.Name()] {
			return nil, fmt.Errorf("renderer: duplicate strategy %q", s.Name())
		}
		seen[s.Name()] = true
	}
	return &Renderer{
		dev:        dev,
		projection: proj,
		strategies: strategies,
	}, nil
}

// Active returns the strategy used by RenderWorld.
func (r *Renderer) Active() BlockRenderer {
	return r.strategies[r.active]
}

// Strategies returns the names of all strategies in registration order.
func (r *Renderer) Strategies() []string {
	names := make([]string, len(r.strategies))
	for i, s := range r.strategies {
		names[i] = s.Name()
	}
	return names
}

// SetStrategy activates the strategy with the given name and reports
// whether it exists.
func (r *Renderer) SetStrategy(name string) bool {
	for i, s := range r.strategies {
		if s.Name() == name {
			if i != r.active {
				r.active = i
				logger.Info("block renderer switched", zap.String("strategy", name))
			}
			return true
		}
	}
	logger.Warn("unknown block renderer", zap.String("strategy", name))
	return false
}

// RenderWorld draws every chunk within radius of center as one scene. The
// first device error stops emission; the scene is still ended.
func (r *Renderer) RenderWorld(w *world.World, center world.ChunkCoord, radius int, viewer camera.Viewer) error {
	if r.closed {
		panic("renderer: RenderWorld after Close")
	}
	defer profiling.Track("renderer.RenderWorld")()

	r.chunks = w.ChunksAround(center, radius, r.chunks[:0])

	s := r.Active()
	s.BeginScene(viewer)
	for _, c := range r.chunks {
		if err := s.EmitChunk(c); err != nil {
			break
		}
	}
	err := s.EndScene()

	r.stats = s.Stats()
	profiling.Add("renderer.chunks", int64(len(r.chunks)))
	if err != nil {
		return fmt.Errorf("render %d chunks with %s: %w", len(r.chunks), s.Name(), err)
	}
	return nil
}

// Stats returns the counters of the last rendered frame.
func (r *Renderer) Stats() FrameStats {
	return r.stats
}

// Projection returns the shared projection.
func (r *Renderer) Projection() *camera.Projection {
	return r.projection
}

// UpdateViewport follows a framebuffer resize. A minimized window (zero
// size) leaves the viewport unchanged.
func (r *Renderer) UpdateViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.projection.SetViewport(width, height)
	r.dev.SetViewport(width, height)
}

// Close closes every strategy in reverse order. It is safe to call more
// than once.
func (r *Renderer) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	var errs []error
	for i := len(r.strategies) - 1; i >= 0; i-- {
		if err := r.strategies[i].Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", r.strategies[i].Name(), err))
		}
	}
	return errors.Join(errs...)
}
