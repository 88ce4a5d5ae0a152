package renderer

import (
	"buildcraft/internal/graphics/camera"
	"buildcraft/internal/graphics/gpu"
	"buildcraft/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// TextureResolver maps a block face to its texture. A nil result means the
// face is not drawn.
type TextureResolver interface {
	Resolve(t world.BlockType, face world.BlockFace) gpu.Texture
}

// FrameStats counts the work done by one scene.
type FrameStats struct {
	Quads        int
	DrawCalls    int
	Flushes      int
	TextureBinds int
}

// BlockRenderer draws block faces between BeginScene and EndScene.
//
// Misuse (emitting outside a scene, beginning twice, ending while idle, an
// invalid face or a nil texture) panics. Device failures are returned; the
// first one is kept for the rest of the scene and returned again by
// EndScene.
type BlockRenderer interface {
	Name() string
	BeginScene(viewer camera.Viewer)
	EmitFace(pos mgl32.Vec3, face world.BlockFace, tex gpu.Texture) error
	EmitBlock(pos mgl32.Vec3, t world.BlockType) error
	EmitChunk(c *world.Chunk) error
	EndScene() error
	Stats() FrameStats
	Close() error
}
