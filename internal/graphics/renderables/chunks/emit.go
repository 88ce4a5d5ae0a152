package chunks

import (
	"fmt"

	"buildcraft/internal/graphics/gpu"
	"buildcraft/internal/graphics/renderer"
	"buildcraft/internal/profiling"
	"buildcraft/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// EmitFace appends one face at pos textured with tex. The face is always
// recorded; if it filled the batch or took the last texture unit the batch
// is flushed right after.
func (r *Renderer) EmitFace(pos mgl32.Vec3, face world.BlockFace, tex gpu.Texture) error {
	r.mustBeActive("EmitFace")
	if !face.Valid() {
		panic(fmt.Sprintf("chunks: invalid block face %d", face))
	}
	if gpu.Missing(tex) {
		panic("chunks: EmitFace with nil texture")
	}

	slot, newlyBound, slotsFull := r.slots.resolve(tex)
	if newlyBound {
		r.stats.TextureBinds++
	}

	q := faceTemplates[face]
	placeQuad(&q, pos[0], pos[1], pos[2], slot)
	r.buffers.writeQuad(&q)
	r.stats.Quads++

	if slotsFull || r.buffers.full() {
		if err := r.Flush(); err != nil {
			return err
		}
	}
	return r.err
}

// EmitBlock emits the six faces of a block, skipping faces without a
// texture.
func (r *Renderer) EmitBlock(pos mgl32.Vec3, t world.BlockType) error {
	return renderer.EmitBlockFaces(r, r.textures, pos, t)
}

// EmitChunk emits every non-air block of c. No faces are culled.
func (r *Renderer) EmitChunk(c *world.Chunk) error {
	defer profiling.Track("chunks.EmitChunk")()
	r.mustBeActive("EmitChunk")
	return renderer.EmitChunkBlocks(r, c)
}
