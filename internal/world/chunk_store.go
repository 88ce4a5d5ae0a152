package world

import (
	"slices"
	"sync"

	"buildcraft/internal/profiling"
)

// ChunkStore manages the storage and retrieval of chunks.
type ChunkStore struct {
	chunks map[ChunkCoord]*Chunk
	mu     sync.RWMutex
}

// NewChunkStore creates a new chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: make(map[ChunkCoord]*Chunk),
	}
}

// GetChunk returns the chunk at the specified chunk coordinates.
// If the chunk doesn't exist and create is true, it will be created (but NOT populated).
func (cs *ChunkStore) GetChunk(chunkX, chunkZ int, create bool) *Chunk {
	coord := ChunkCoord{X: chunkX, Z: chunkZ}
	cs.mu.RLock()
	chunk, exists := cs.chunks[coord]
	cs.mu.RUnlock()
	if !exists && create {
		cs.mu.Lock()
		// Double-check locking: another goroutine might have created it while we were waiting for the lock
		if existing, ok := cs.chunks[coord]; ok {
			cs.mu.Unlock()
			return existing
		}
		chunk = NewChunk(chunkX, chunkZ)
		cs.chunks[coord] = chunk
		cs.mu.Unlock()
	}
	return chunk
}

// GetChunkFromBlockCoords returns the chunk containing the block at the specified world coordinates.
func (cs *ChunkStore) GetChunkFromBlockCoords(x, z int, create bool) *Chunk {
	return cs.GetChunk(floorDiv(x, ChunkSizeX), floorDiv(z, ChunkSizeZ), create)
}

// Get returns the block type at the specified world coordinates.
func (cs *ChunkStore) Get(x, y, z int) BlockType {
	chunk := cs.GetChunkFromBlockCoords(x, z, false)
	if chunk == nil {
		return BlockTypeAir
	}
	return chunk.GetBlock(mod(x, ChunkSizeX), y, mod(z, ChunkSizeZ))
}

// IsAir checks if the block at the specified world coordinates is air.
func (cs *ChunkStore) IsAir(x, y, z int) bool {
	return cs.Get(x, y, z) == BlockTypeAir
}

// Set sets the block type at the specified world coordinates.
func (cs *ChunkStore) Set(x, y, z int, val BlockType) {
	if y < 0 || y >= ChunkSizeY {
		return
	}
	chunk := cs.GetChunkFromBlockCoords(x, z, true)
	chunk.SetBlock(mod(x, ChunkSizeX), y, mod(z, ChunkSizeZ), val)
}

// AddChunk adds a pre-generated chunk to the store. An existing chunk at
// the same coordinates is kept.
func (cs *ChunkStore) AddChunk(chunk *Chunk) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if _, ok := cs.chunks[chunk.coord]; ok {
		return false
	}
	cs.chunks[chunk.coord] = chunk
	return true
}

// HasChunk checks if a chunk exists without creating it.
func (cs *ChunkStore) HasChunk(coord ChunkCoord) bool {
	cs.mu.RLock()
	_, exists := cs.chunks[coord]
	cs.mu.RUnlock()
	return exists
}

// Len returns the number of loaded chunks.
func (cs *ChunkStore) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.chunks)
}

// AppendChunksInRadiusXZ appends all loaded chunks within a radius (in chunks)
// around a center chunk coordinate (cx, cz) into dst and returns the resulting slice.
// Chunks are ordered by X then Z so frames submit them in a stable order.
func (cs *ChunkStore) AppendChunksInRadiusXZ(cx, cz, radius int, dst []*Chunk) []*Chunk {
	defer profiling.Track("world.AppendChunksInRadiusXZ")()
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	start := len(dst)
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			if dx*dx+dz*dz > radius*radius {
				continue
			}
			if ch, ok := cs.chunks[ChunkCoord{X: cx + dx, Z: cz + dz}]; ok {
				dst = append(dst, ch)
			}
		}
	}
	// The loops already visit in X-then-Z order; keep the guarantee explicit.
	slices.SortStableFunc(dst[start:], func(a, b *Chunk) int {
		if a.coord.X != b.coord.X {
			return a.coord.X - b.coord.X
		}
		return a.coord.Z - b.coord.Z
	})
	return dst
}

// EvictFarChunks removes chunks outside the given radius from the store.
// Returns number of removed chunks.
func (cs *ChunkStore) EvictFarChunks(cx, cz, radius int) int {
	defer profiling.Track("world.EvictFarChunks")()
	removed := 0
	cs.mu.Lock()
	for coord := range cs.chunks {
		dx := coord.X - cx
		dz := coord.Z - cz
		if dx*dx+dz*dz > radius*radius {
			delete(cs.chunks, coord)
			removed++
		}
	}
	cs.mu.Unlock()
	return removed
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
