package world

import "math"

// TerrainGenerator fills freshly created chunks.
type TerrainGenerator interface {
	PopulateChunk(c *Chunk)
	HeightAt(worldX, worldZ int) int
}

// FlatGenerator builds a flat world Height layers thick: FillBlock with a
// single SurfaceBlock layer on top.
type FlatGenerator struct {
	Height       int
	FillBlock    BlockType
	SurfaceBlock BlockType
}

// NewFlatGenerator returns a dirt world with a grass surface at height.
func NewFlatGenerator(height int) *FlatGenerator {
	return &FlatGenerator{
		Height:       height,
		FillBlock:    BlockTypeDirt,
		SurfaceBlock: BlockTypeGrass,
	}
}

// HeightAt returns the surface height, which is the same everywhere.
func (g *FlatGenerator) HeightAt(worldX, worldZ int) int {
	return g.Height
}

// PopulateChunk fills the chunk's layers.
func (g *FlatGenerator) PopulateChunk(c *Chunk) {
	if g.Height <= 0 {
		return
	}
	top := min(g.Height, ChunkSizeY) - 1
	c.FillLayers(0, top, g.FillBlock)
	c.FillLayers(top, top+1, g.SurfaceBlock)
}

// SolidGenerator fills every cell of a chunk with one block type.
type SolidGenerator struct {
	Block BlockType
}

// HeightAt returns the top of the chunk.
func (g SolidGenerator) HeightAt(worldX, worldZ int) int {
	return ChunkSizeY - 1
}

// PopulateChunk fills the chunk completely.
func (g SolidGenerator) PopulateChunk(c *Chunk) {
	c.Fill(g.Block)
}

// HillsGenerator shapes the surface with octave value noise.
type HillsGenerator struct {
	seed         int64
	scale        float64
	baseHeight   int
	amp          float64
	octaves      int
	persistence  float64
	lacunarity   float64
	FillBlock    BlockType
	SurfaceBlock BlockType
}

// NewHillsGenerator returns a noise generator whose surface rolls around
// baseHeight.
func NewHillsGenerator(seed int64, baseHeight int) *HillsGenerator {
	return &HillsGenerator{
		seed:         seed,
		scale:        1.0 / 64.0,
		baseHeight:   baseHeight,
		amp:          16,
		octaves:      4,
		persistence:  0.5,
		lacunarity:   2.0,
		FillBlock:    BlockTypeDirt,
		SurfaceBlock: BlockTypeGrass,
	}
}

// HeightAt computes world surface height (block Y) at world X,Z.
func (g *HillsGenerator) HeightAt(worldX, worldZ int) int {
	n := octaveNoise2D(float64(worldX)*g.scale, float64(worldZ)*g.scale, g.seed, g.octaves, g.persistence, g.lacunarity)
	h := int(math.Floor(float64(g.baseHeight) + (n-0.5)*g.amp))
	return min(max(h, 0), ChunkSizeY-1)
}

// PopulateChunk fills each column up to its noise height.
func (g *HillsGenerator) PopulateChunk(c *Chunk) {
	base := c.BasePosition()
	for lx := range ChunkSizeX {
		for lz := range ChunkSizeZ {
			top := g.HeightAt(int(base.X())+lx, int(base.Z())+lz)
			for ly := 0; ly < top; ly++ {
				c.SetBlock(lx, ly, lz, g.FillBlock)
			}
			c.SetBlock(lx, top, lz, g.SurfaceBlock)
		}
	}
}
