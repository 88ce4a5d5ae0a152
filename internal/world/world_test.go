package world

import (
	"sync"
	"testing"
)

func TestEnsureRadius(t *testing.T) {
	w := New(NewFlatGenerator(2))

	created := w.EnsureRadius(ChunkCoord{}, 1)
	// radius 1 circle: center plus 4 neighbors
	if created != 5 {
		t.Fatalf("created = %d, want 5", created)
	}
	if again := w.EnsureRadius(ChunkCoord{}, 1); again != 0 {
		t.Fatalf("second EnsureRadius created %d", again)
	}
	if w.Store().Len() != 5 {
		t.Fatalf("Len = %d, want 5", w.Store().Len())
	}
	if w.Get(-1, 1, 0) != BlockTypeGrass {
		t.Errorf("surface at (-1,1,0) = %v, want Grass", w.Get(-1, 1, 0))
	}
}

func TestChunksAroundOrdered(t *testing.T) {
	w := New(NewFlatGenerator(1))
	w.EnsureRadius(ChunkCoord{X: 3, Z: -2}, 2)

	chunks := w.ChunksAround(ChunkCoord{X: 3, Z: -2}, 2, nil)
	if len(chunks) != 13 {
		t.Fatalf("len = %d, want 13", len(chunks))
	}
	for i := 1; i < len(chunks); i++ {
		a, b := chunks[i-1].Coord(), chunks[i].Coord()
		if a.X > b.X || (a.X == b.X && a.Z >= b.Z) {
			t.Fatalf("chunks out of order at %d: %v then %v", i, a, b)
		}
	}
}

func TestWorldSetGetNegative(t *testing.T) {
	w := New(NewFlatGenerator(0))
	w.Set(-17, 5, -1, BlockTypeCobblestone)

	if got := w.Get(-17, 5, -1); got != BlockTypeCobblestone {
		t.Fatalf("Get = %v, want Cobblestone", got)
	}
	ch := w.Store().GetChunk(-2, -1, false)
	if ch == nil {
		t.Fatal("chunk (-2,-1) not created")
	}
	if ch.GetBlock(15, 5, 15) != BlockTypeCobblestone {
		t.Error("block stored at wrong local coordinates")
	}
	w.Set(0, -1, 0, BlockTypeDirt)
	if w.Store().HasChunk(ChunkCoord{}) {
		t.Error("out of range Y should not create a chunk")
	}
}

func TestChunkAtWorld(t *testing.T) {
	cases := []struct {
		x, z float32
		want ChunkCoord
	}{
		{0, 0, ChunkCoord{0, 0}},
		{15.9, 16, ChunkCoord{0, 1}},
		{-1, -16, ChunkCoord{-1, -1}},
		{-0.5, 0.5, ChunkCoord{-1, 0}},
		{-17, 40, ChunkCoord{-2, 2}},
	}
	for _, c := range cases {
		if got := ChunkAtWorld(c.x, c.z); got != c.want {
			t.Errorf("ChunkAtWorld(%v,%v) = %v, want %v", c.x, c.z, got, c.want)
		}
	}
}

func TestEvictFarChunks(t *testing.T) {
	w := New(NewFlatGenerator(1))
	w.EnsureRadius(ChunkCoord{}, 3)
	before := w.Store().Len()

	removed := w.Store().EvictFarChunks(0, 0, 1)
	if removed == 0 || w.Store().Len() != before-removed {
		t.Fatalf("removed %d of %d, %d left", removed, before, w.Store().Len())
	}
	if w.Store().Len() != 5 {
		t.Errorf("Len = %d, want 5", w.Store().Len())
	}
	if w.Store().HasChunk(ChunkCoord{X: 2, Z: 0}) {
		t.Error("chunk outside the radius survived")
	}
}

func TestGetChunkConcurrentCreate(t *testing.T) {
	cs := NewChunkStore()
	var wg sync.WaitGroup
	got := make([]*Chunk, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = cs.GetChunk(4, 4, true)
		}(i)
	}
	wg.Wait()
	for i := range got {
		if got[i] != got[0] {
			t.Fatal("concurrent GetChunk returned different chunks")
		}
	}
	if cs.Len() != 1 {
		t.Fatalf("Len = %d, want 1", cs.Len())
	}
}
