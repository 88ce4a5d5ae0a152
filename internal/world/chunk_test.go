package world

import "testing"

func TestChunkIndexLayout(t *testing.T) {
	cases := []struct {
		x, y, z int
		want    int
	}{
		{0, 0, 0, 0},
		{1, 0, 0, 1},
		{0, 1, 0, 16},
		{0, 0, 1, 16 * 256},
		{15, 255, 15, 15 + 255*16 + 15*16*256},
	}
	for _, c := range cases {
		if got := index(c.x, c.y, c.z); got != c.want {
			t.Errorf("index(%d,%d,%d) = %d, want %d", c.x, c.y, c.z, got, c.want)
		}
	}
	if index(15, 255, 15) != BlocksPerChunk-1 {
		t.Errorf("last index %d, want %d", index(15, 255, 15), BlocksPerChunk-1)
	}
}

func TestChunkSetGet(t *testing.T) {
	c := NewChunk(0, 0)
	c.SetBlock(3, 10, 7, BlockTypeCobblestone)

	if got := c.GetBlock(3, 10, 7); got != BlockTypeCobblestone {
		t.Fatalf("GetBlock = %v, want Cobblestone", got)
	}
	if !c.IsAir(3, 11, 7) {
		t.Error("neighbor should still be air")
	}
	if c.SolidCount() != 1 {
		t.Errorf("SolidCount = %d, want 1", c.SolidCount())
	}
}

func TestChunkOutOfRange(t *testing.T) {
	c := NewChunk(0, 0)
	c.SetBlock(-1, 0, 0, BlockTypeDirt)
	c.SetBlock(0, ChunkSizeY, 0, BlockTypeDirt)
	c.SetBlock(0, 0, ChunkSizeZ, BlockTypeDirt)

	if c.SolidCount() != 0 {
		t.Fatalf("out of range writes landed: %d solid", c.SolidCount())
	}
	if !c.At(99, 99, 99).IsAir() {
		t.Error("out of range read should be air")
	}
}

func TestChunkBasePosition(t *testing.T) {
	c := NewChunk(2, -3)
	got := c.BasePosition()
	if got.X() != 32 || got.Y() != 0 || got.Z() != -48 {
		t.Fatalf("BasePosition = %v, want (32,0,-48)", got)
	}
}

func TestChunkAirIsOneValue(t *testing.T) {
	c := NewChunk(0, 0)
	fresh := c.At(4, 4, 4)
	if fresh != (Block{Type: BlockTypeAir}) {
		t.Fatalf("new chunk holds %+v, want plain air", fresh)
	}

	c.SetBlock(4, 4, 4, BlockTypeAir)
	if got := c.At(4, 4, 4); got != fresh {
		t.Errorf("air written over air = %+v, want %+v", got, fresh)
	}
	c.SetBlock(4, 4, 4, BlockTypeDirt)
	c.SetBlock(4, 4, 4, BlockTypeAir)
	if got := c.At(4, 4, 4); got != fresh {
		t.Errorf("cleared block = %+v, want %+v", got, fresh)
	}
	if got := c.At(-1, 0, 0); got != fresh {
		t.Errorf("out of range read = %+v, want %+v", got, fresh)
	}

	c.Fill(BlockTypeDirt)
	c.FillLayers(0, ChunkSizeY, BlockTypeAir)
	if c.At(0, 0, 0) != fresh || c.SolidCount() != 0 {
		t.Errorf("FillLayers air left %d solid, block %+v", c.SolidCount(), c.At(0, 0, 0))
	}
}

func TestFillLayers(t *testing.T) {
	c := NewChunk(0, 0)
	c.FillLayers(-5, 2, BlockTypeDirt)

	if c.SolidCount() != 2*ChunkSizeX*ChunkSizeZ {
		t.Fatalf("SolidCount = %d, want %d", c.SolidCount(), 2*ChunkSizeX*ChunkSizeZ)
	}
	if !c.IsAir(0, 2, 0) {
		t.Error("layer 2 should be air")
	}
}

func TestBlockTypeNames(t *testing.T) {
	for _, bt := range SolidBlockTypes() {
		got, ok := ParseBlockType(bt.String())
		if !ok || got != bt {
			t.Errorf("ParseBlockType(%q) = %v,%v", bt.String(), got, ok)
		}
	}
	if got, ok := ParseBlockType("COBBLESTONE"); !ok || got != BlockTypeCobblestone {
		t.Errorf("case-insensitive parse failed: %v,%v", got, ok)
	}
	if _, ok := ParseBlockType("lava"); ok {
		t.Error("unknown name should not parse")
	}
	if BlockType(99).String() != "Unknown" {
		t.Error("out of range type should print Unknown")
	}
}

func TestBlockFaces(t *testing.T) {
	for f := BlockFace(0); f < FaceCount; f++ {
		if !f.Valid() {
			t.Errorf("face %d should be valid", f)
		}
		if f.String() == "Invalid" {
			t.Errorf("face %d has no name", f)
		}
	}
	if BlockFace(FaceCount).Valid() {
		t.Error("FaceCount should not be a valid face")
	}
	if BlockFace(FaceCount).String() != "Invalid" {
		t.Error("out of range face should print Invalid")
	}
}
