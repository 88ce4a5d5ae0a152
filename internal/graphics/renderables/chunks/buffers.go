package chunks

import (
	"errors"
	"fmt"

	"buildcraft/internal/logger"
	"buildcraft/internal/nativemem"

	"go.uber.org/zap"
)

// batchBuffers is the CPU side of one batch: vertex floats and quad indices
// in off-heap memory, each with a write cursor.
type batchBuffers struct {
	vertices *nativemem.Array[float32]
	indices  *nativemem.Array[uint32]

	vertexCursor int // floats written
	indexCursor  int // indices written
}

func newBatchBuffers(maxQuads, attempts int) (*batchBuffers, error) {
	onRetry := func(attempt int, err error) {
		logger.Warn("batch buffer allocation failed, retrying",
			zap.Int("attempt", attempt),
			zap.Int("maxQuads", maxQuads),
			zap.Error(err))
	}
	vertices, err := nativemem.NewWithRetry[float32](maxQuads*floatsPerQuad, attempts, onRetry)
	if err != nil {
		return nil, fmt.Errorf("allocate vertex buffer: %w", err)
	}
	indices, err := nativemem.NewWithRetry[uint32](maxQuads*indicesPerQuad, attempts, onRetry)
	if err != nil {
		_ = vertices.Free()
		return nil, fmt.Errorf("allocate index buffer: %w", err)
	}
	return &batchBuffers{vertices: vertices, indices: indices}, nil
}

// writeQuad appends q and its six indices. The index base is derived from
// the index cursor so it always matches the quad's first vertex.
func (b *batchBuffers) writeQuad(q *Quad) {
	if b.vertexCursor+floatsPerQuad > b.vertices.Len() || b.indexCursor+indicesPerQuad > b.indices.Len() {
		panic(fmt.Sprintf("chunks: batch overflow at vertex %d/%d index %d/%d",
			b.vertexCursor, b.vertices.Len(), b.indexCursor, b.indices.Len()))
	}
	copy(b.vertices.Slice()[b.vertexCursor:], q[:])

	base := uint32(b.indexCursor / indicesPerQuad * verticesPerQuad)
	idx := QuadIndices(base)
	copy(b.indices.Slice()[b.indexCursor:], idx[:])

	b.vertexCursor += floatsPerQuad
	b.indexCursor += indicesPerQuad
}

// full reports whether either buffer reached capacity.
func (b *batchBuffers) full() bool {
	return b.vertexCursor == b.vertices.Len() || b.indexCursor == b.indices.Len()
}

func (b *batchBuffers) empty() bool {
	return b.indexCursor == 0
}

func (b *batchBuffers) quads() int {
	return b.indexCursor / indicesPerQuad
}

func (b *batchBuffers) reset() {
	b.vertexCursor = 0
	b.indexCursor = 0
}

// vertexBytes is the written part of the vertex buffer.
func (b *batchBuffers) vertexBytes() []byte {
	return b.vertices.Bytes(b.vertexCursor)
}

// indexBytes is the written part of the index buffer.
func (b *batchBuffers) indexBytes() []byte {
	return b.indices.Bytes(b.indexCursor)
}

func (b *batchBuffers) free() error {
	return errors.Join(b.vertices.Free(), b.indices.Free())
}
