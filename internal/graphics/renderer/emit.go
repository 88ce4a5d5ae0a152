package renderer

import (
	"buildcraft/internal/graphics/gpu"
	"buildcraft/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// FaceEmitter accepts single faces.
type FaceEmitter interface {
	EmitFace(pos mgl32.Vec3, face world.BlockFace, tex gpu.Texture) error
}

// BlockEmitter accepts whole blocks.
type BlockEmitter interface {
	EmitBlock(pos mgl32.Vec3, t world.BlockType) error
}

// EmitBlockFaces emits the six faces of a block in face order, skipping
// faces the resolver has no texture for. It stops at the first error.
func EmitBlockFaces(e FaceEmitter, textures TextureResolver, pos mgl32.Vec3, t world.BlockType) error {
	for face := range world.BlockFace(world.FaceCount) {
		tex := textures.Resolve(t, face)
		if gpu.Missing(tex) {
			continue
		}
		if err := e.EmitFace(pos, face, tex); err != nil {
			return err
		}
	}
	return nil
}

// EmitChunkBlocks walks the whole chunk grid, x outermost and z innermost,
// and emits every non-air block at the chunk's base position plus its local
// coordinates.
func EmitChunkBlocks(e BlockEmitter, c *world.Chunk) error {
	base := c.BasePosition()
	for x := range world.ChunkSizeX {
		for y := range world.ChunkSizeY {
			for z := range world.ChunkSizeZ {
				b := c.At(x, y, z)
				if b.IsAir() {
					continue
				}
				pos := base.Add(mgl32.Vec3{float32(x), float32(y), float32(z)})
				if err := e.EmitBlock(pos, b.Type); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
