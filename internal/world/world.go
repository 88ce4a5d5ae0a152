package world

import (
	"math"

	"buildcraft/internal/logger"
	"buildcraft/internal/profiling"

	"go.uber.org/zap"
)

// World couples the chunk store with the generator that fills new chunks.
type World struct {
	store     *ChunkStore
	generator TerrainGenerator
}

// New creates an empty world filled on demand by gen.
func New(gen TerrainGenerator) *World {
	return &World{
		store:     NewChunkStore(),
		generator: gen,
	}
}

// Store exposes the underlying chunk store.
func (w *World) Store() *ChunkStore {
	return w.store
}

// Get returns the block type at world coordinates.
func (w *World) Get(x, y, z int) BlockType {
	return w.store.Get(x, y, z)
}

// Set places a block at world coordinates.
func (w *World) Set(x, y, z int, t BlockType) {
	w.store.Set(x, y, z, t)
}

// SurfaceHeightAt returns the generator's surface height.
func (w *World) SurfaceHeightAt(x, z int) int {
	return w.generator.HeightAt(x, z)
}

// ChunkAtWorld converts a world position to chunk coordinates.
func ChunkAtWorld(x, z float32) ChunkCoord {
	return ChunkCoord{
		X: floorDiv(int(math.Floor(float64(x))), ChunkSizeX),
		Z: floorDiv(int(math.Floor(float64(z))), ChunkSizeZ),
	}
}

// EnsureRadius generates every missing chunk within radius of the center
// chunk. It returns the number of chunks it created.
func (w *World) EnsureRadius(center ChunkCoord, radius int) int {
	defer profiling.Track("world.EnsureRadius")()
	created := 0
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			if dx*dx+dz*dz > radius*radius {
				continue
			}
			coord := ChunkCoord{X: center.X + dx, Z: center.Z + dz}
			if w.store.HasChunk(coord) {
				continue
			}
			ch := NewChunk(coord.X, coord.Z)
			w.generator.PopulateChunk(ch)
			if w.store.AddChunk(ch) {
				created++
			}
		}
	}
	if created > 0 {
		logger.Debug("generated chunks",
			zap.Int("created", created),
			zap.Int("centerX", center.X),
			zap.Int("centerZ", center.Z),
			zap.Int("radius", radius))
	}
	return created
}

// ChunksAround returns the loaded chunks within radius, appended to dst.
func (w *World) ChunksAround(center ChunkCoord, radius int, dst []*Chunk) []*Chunk {
	return w.store.AppendChunksInRadiusXZ(center.X, center.Z, radius, dst)
}
