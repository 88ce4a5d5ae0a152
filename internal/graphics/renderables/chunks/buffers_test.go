package chunks

import (
	"slices"
	"testing"

	"buildcraft/internal/world"
)

func TestBatchBuffersWriteQuad(t *testing.T) {
	b, err := newBatchBuffers(3, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer b.free()

	q := FaceTemplate(world.FaceTop)
	b.writeQuad(&q)
	b.writeQuad(&q)

	if b.vertexCursor != 2*floatsPerQuad || b.indexCursor != 12 || b.quads() != 2 {
		t.Fatalf("cursors = %d/%d", b.vertexCursor, b.indexCursor)
	}
	idx := b.indices.Slice()[:b.indexCursor]
	if !slices.Equal(idx, []uint32{0, 1, 2, 2, 3, 0, 4, 5, 6, 6, 7, 4}) {
		t.Fatalf("indices = %v", idx)
	}
	if len(b.vertexBytes()) != 2*floatsPerQuad*4 || len(b.indexBytes()) != 12*4 {
		t.Fatalf("byte views = %d/%d", len(b.vertexBytes()), len(b.indexBytes()))
	}
	if b.full() {
		t.Fatal("full with one quad left")
	}
	b.writeQuad(&q)
	if !b.full() {
		t.Fatal("not full at capacity")
	}

	b.reset()
	if !b.empty() || b.full() {
		t.Fatal("reset did not empty the batch")
	}
}

func TestBatchBuffersOverflowPanics(t *testing.T) {
	b, err := newBatchBuffers(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer b.free()

	q := FaceTemplate(world.FaceLeft)
	b.writeQuad(&q)
	defer func() {
		if recover() == nil {
			t.Fatal("expected overflow panic")
		}
	}()
	b.writeQuad(&q)
}

func TestBatchBuffersFreeTwice(t *testing.T) {
	b, err := newBatchBuffers(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.free(); err != nil {
		t.Fatal(err)
	}
	if err := b.free(); err == nil {
		t.Fatal("second free should report an error")
	}
}
