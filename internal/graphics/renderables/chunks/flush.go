package chunks

import (
	"fmt"

	"buildcraft/internal/graphics/gpu"
	"buildcraft/internal/logger"
	"buildcraft/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Flush uploads the written part of the batch and draws it with one call.
// The cursors and texture slots are reset even when the device fails, so the
// next batch starts clean. An empty batch issues no draw.
func (r *Renderer) Flush() error {
	if r.closed {
		panic("chunks: Flush on a closed renderer")
	}
	defer profiling.Track("chunks.flush")()
	defer r.slots.reset()

	if r.buffers.empty() {
		return nil
	}
	quads := r.buffers.quads()
	indexCount := r.buffers.indexCursor
	r.stats.Flushes++

	err := r.drawBatch(indexCount)
	r.buffers.reset()
	if err != nil {
		err = fmt.Errorf("flush %d quads: %w", quads, err)
		logger.Error("batch flush failed", zap.Int("quads", quads), zap.Error(err))
		if r.err == nil {
			r.err = err
		}
		return err
	}

	r.stats.DrawCalls++
	profiling.Add("chunks.drawCalls", 1)
	profiling.Add("chunks.quads", int64(quads))
	return nil
}

func (r *Renderer) drawBatch(indexCount int) error {
	r.vao.Bind()
	r.vbo.Bind()
	if err := r.dev.UploadSubData(r.vbo, 0, r.buffers.vertexBytes()); err != nil {
		return fmt.Errorf("upload vertices: %w", err)
	}
	r.ibo.Bind()
	if err := r.dev.UploadSubData(r.ibo, 0, r.buffers.indexBytes()); err != nil {
		return fmt.Errorf("upload indices: %w", err)
	}
	r.program.SetUniformMat4("u_Model", mgl32.Ident4())
	if err := r.dev.DrawIndexed(gpu.Triangles, indexCount, 0); err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	return nil
}
