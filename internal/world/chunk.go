package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// Chunk dimensions
	ChunkSizeX = 16
	ChunkSizeY = 256
	ChunkSizeZ = 16

	BlocksPerChunk = ChunkSizeX * ChunkSizeY * ChunkSizeZ
)

// ChunkCoord addresses a chunk column in chunk units.
type ChunkCoord struct {
	X, Z int
}

// Chunk is a dense 16x256x16 grid of blocks. Chunks span the full world
// height, so only X and Z locate them.
type Chunk struct {
	coord  ChunkCoord
	blocks []Block
}

// NewChunk creates an all-air chunk at the given chunk coordinates.
func NewChunk(x, z int) *Chunk {
	return &Chunk{
		coord:  ChunkCoord{X: x, Z: z},
		blocks: make([]Block, BlocksPerChunk),
	}
}

// Coord returns the chunk coordinates.
func (c *Chunk) Coord() ChunkCoord {
	return c.coord
}

// BasePosition returns the world position of local block (0,0,0).
func (c *Chunk) BasePosition() mgl32.Vec3 {
	return mgl32.Vec3{float32(c.coord.X * ChunkSizeX), 0, float32(c.coord.Z * ChunkSizeZ)}
}

// index lays blocks out x-fastest, then y, then z.
func index(x, y, z int) int {
	return x + y*ChunkSizeX + z*ChunkSizeX*ChunkSizeY
}

func inBounds(x, y, z int) bool {
	return x >= 0 && x < ChunkSizeX && y >= 0 && y < ChunkSizeY && z >= 0 && z < ChunkSizeZ
}

// At returns the block at local coordinates. Out-of-range reads return air.
func (c *Chunk) At(x, y, z int) Block {
	if !inBounds(x, y, z) {
		return Block{Type: BlockTypeAir}
	}
	return c.blocks[index(x, y, z)]
}

// GetBlock returns the block type at local coordinates.
func (c *Chunk) GetBlock(x, y, z int) BlockType {
	return c.At(x, y, z).Type
}

// Set stores a block at local coordinates. Out-of-range writes are ignored.
func (c *Chunk) Set(x, y, z int, b Block) {
	if !inBounds(x, y, z) {
		return
	}
	c.blocks[index(x, y, z)] = b
}

// SetBlock stores a block of type t.
func (c *Chunk) SetBlock(x, y, z int, t BlockType) {
	c.Set(x, y, z, Block{Type: t})
}

// Fill sets every block of the chunk to t.
func (c *Chunk) Fill(t BlockType) {
	b := Block{Type: t}
	for i := range c.blocks {
		c.blocks[i] = b
	}
}

// FillLayers sets layers [fromY, toY) to t.
func (c *Chunk) FillLayers(fromY, toY int, t BlockType) {
	fromY = max(fromY, 0)
	toY = min(toY, ChunkSizeY)
	b := Block{Type: t}
	for z := range ChunkSizeZ {
		for y := fromY; y < toY; y++ {
			row := index(0, y, z)
			for x := range ChunkSizeX {
				c.blocks[row+x] = b
			}
		}
	}
}

// IsAir checks if the block at the specified local coordinates is air
func (c *Chunk) IsAir(x, y, z int) bool {
	return c.At(x, y, z).IsAir()
}

// SolidCount returns the number of non-air blocks.
func (c *Chunk) SolidCount() int {
	n := 0
	for _, b := range c.blocks {
		if !b.IsAir() {
			n++
		}
	}
	return n
}
