// Package chunks draws blocks in large batches: faces from many blocks are
// written into one vertex/index buffer pair and drawn with a single call,
// with textures spread across the available texture units.
package chunks

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"buildcraft/internal/graphics/camera"
	"buildcraft/internal/graphics/gpu"
	"buildcraft/internal/graphics/renderer"
	"buildcraft/internal/logger"

	"go.uber.org/zap"
)

// Name identifies the batched strategy.
const Name = "batched"

var (
	//go:embed shaders/chunk.vert
	vertexShader string
	//go:embed shaders/chunk.frag
	fragmentShader string
)

// Options size the renderer.
type Options struct {
	MaxQuads        int
	MaxTextureUnits int
	AllocRetries    int
	ClearColor      [4]float32
}

// DefaultOptions match the defaults of the render config section.
func DefaultOptions() Options {
	return Options{
		MaxQuads:        100000,
		MaxTextureUnits: 16,
		AllocRetries:    3,
		ClearColor:      [4]float32{0.53, 0.81, 0.92, 1.0},
	}
}

// fragmentSource sizes the sampler array to units and expands the slot
// lookup into one case per unit.
func fragmentSource(units int) string {
	var cases strings.Builder
	for i := range units {
		fmt.Fprintf(&cases, "    case %d: return textureGrad(u_Textures[%d], uv, dx, dy);\n", i, i)
	}
	src := strings.ReplaceAll(fragmentShader, "MAX_TEXTURE_UNITS", strconv.Itoa(units))
	return strings.Replace(src, "SAMPLE_CASES\n", cases.String(), 1)
}

// Renderer is the batched BlockRenderer.
type Renderer struct {
	dev        gpu.Device
	textures   renderer.TextureResolver
	projection *camera.Projection
	clearColor [4]float32

	program gpu.Program
	vao     gpu.VertexArray
	vbo     gpu.Buffer
	ibo     gpu.Buffer

	buffers     *batchBuffers
	slots       *slotAssigner
	unitIndices []int32
	maxQuads    int

	active bool
	viewer camera.Viewer
	err    error
	stats  renderer.FrameStats
	closed bool
}

var _ renderer.BlockRenderer = (*Renderer)(nil)

// New allocates the batch buffers and the GPU objects drawing them. The
// texture unit count is clamped to what the device supports.
func New(dev gpu.Device, textures renderer.TextureResolver, proj *camera.Projection, opts Options) (_ *Renderer, err error) {
	if opts.MaxQuads < 1 {
		return nil, fmt.Errorf("chunks: max quads must be at least 1, got %d", opts.MaxQuads)
	}
	units := opts.MaxTextureUnits
	if limit := dev.MaxTextureUnits(); limit > 0 && units > limit {
		logger.Warn("texture units clamped to device limit",
			zap.Int("requested", units),
			zap.Int("limit", limit))
		units = limit
	}
	if units < 1 {
		return nil, fmt.Errorf("chunks: texture units must be at least 1, got %d", units)
	}

	r := &Renderer{
		dev:        dev,
		textures:   textures,
		projection: proj,
		clearColor: opts.ClearColor,
		slots:      newSlotAssigner(dev, units),
		maxQuads:   opts.MaxQuads,
	}
	defer func() {
		if err != nil {
			_ = r.release()
		}
	}()

	r.buffers, err = newBatchBuffers(opts.MaxQuads, max(opts.AllocRetries, 1))
	if err != nil {
		return nil, err
	}

	if r.program, err = dev.CreateProgram(vertexShader, fragmentSource(units)); err != nil {
		return nil, fmt.Errorf("chunks: program: %w", err)
	}
	if r.vao, err = dev.CreateVertexArray(); err != nil {
		return nil, fmt.Errorf("chunks: vertex array: %w", err)
	}
	r.vao.Bind()
	if r.vbo, err = dev.CreateVertexBuffer(opts.MaxQuads*floatsPerQuad*4, VertexLayout); err != nil {
		return nil, fmt.Errorf("chunks: vertex buffer: %w", err)
	}
	if r.ibo, err = dev.CreateIndexBuffer(opts.MaxQuads * indicesPerQuad * 4); err != nil {
		return nil, fmt.Errorf("chunks: index buffer: %w", err)
	}

	r.unitIndices = make([]int32, units)
	for i := range r.unitIndices {
		r.unitIndices[i] = int32(i)
	}

	logger.Info("batched block renderer ready",
		zap.Int("maxQuads", opts.MaxQuads),
		zap.Int("textureUnits", units),
		zap.Int("vertexBytes", opts.MaxQuads*floatsPerQuad*4),
		zap.Int("indexBytes", opts.MaxQuads*indicesPerQuad*4))
	return r, nil
}

// Name returns the strategy name.
func (r *Renderer) Name() string { return Name }

// MaxQuads returns the batch capacity in quads.
func (r *Renderer) MaxQuads() int { return r.maxQuads }

// TextureUnits returns the number of units a batch may use.
func (r *Renderer) TextureUnits() int { return r.slots.max }

// Stats returns the counters of the current or last scene.
func (r *Renderer) Stats() renderer.FrameStats { return r.stats }

// BeginScene clears the target, uploads the camera matrices and starts an
// empty batch.
func (r *Renderer) BeginScene(viewer camera.Viewer) {
	if r.closed {
		panic("chunks: BeginScene on a closed renderer")
	}
	if r.active {
		panic("chunks: BeginScene called while a scene is active")
	}
	r.active = true
	r.viewer = viewer
	r.err = nil
	r.stats = renderer.FrameStats{}

	r.dev.SetClearColor(r.clearColor)
	r.dev.Clear(gpu.ColorBit | gpu.DepthBit)
	r.vao.Bind()
	r.program.Bind()
	r.program.SetUniformIntArray("u_Textures", r.unitIndices)
	r.program.SetUniformMat4("u_View", viewer.ViewMatrix())
	r.program.SetUniformMat4("u_Projection", r.projection.Matrix())

	r.buffers.reset()
	r.slots.reset()
}

// EndScene flushes the remaining batch and returns to idle, also when the
// flush fails. It returns the first device error of the scene.
func (r *Renderer) EndScene() error {
	if !r.active {
		panic("chunks: EndScene called without an active scene")
	}
	_ = r.Flush()
	r.active = false
	r.viewer = nil
	err := r.err
	r.err = nil
	return err
}

func (r *Renderer) mustBeActive(op string) {
	if !r.active {
		panic("chunks: " + op + " called outside a scene")
	}
}

// Close releases the GPU objects and the batch memory. It is safe to call
// more than once.
func (r *Renderer) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.active = false
	r.viewer = nil
	return r.release()
}

func (r *Renderer) release() error {
	if r.ibo != nil {
		r.dev.DeleteBuffer(r.ibo)
		r.ibo = nil
	}
	if r.vbo != nil {
		r.dev.DeleteBuffer(r.vbo)
		r.vbo = nil
	}
	if r.vao != nil {
		r.dev.DeleteVertexArray(r.vao)
		r.vao = nil
	}
	if r.program != nil {
		r.dev.DeleteProgram(r.program)
		r.program = nil
	}
	if r.buffers == nil {
		return nil
	}
	err := r.buffers.free()
	r.buffers = nil
	if err != nil {
		return fmt.Errorf("chunks: release buffers: %w", err)
	}
	return nil
}
