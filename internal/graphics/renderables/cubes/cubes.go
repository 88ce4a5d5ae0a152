// Package cubes draws blocks one face at a time from a static cube mesh.
// It is the simple reference strategy next to the batched one.
package cubes

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"

	"buildcraft/internal/graphics/camera"
	"buildcraft/internal/graphics/gpu"
	"buildcraft/internal/graphics/renderables/chunks"
	"buildcraft/internal/graphics/renderer"
	"buildcraft/internal/logger"
	"buildcraft/internal/profiling"
	"buildcraft/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Name identifies the immediate strategy.
const Name = "immediate"

var (
	//go:embed shaders/cube.vert
	vertexShader string
	//go:embed shaders/cube.frag
	fragmentShader string
)

const (
	cubeVertices = world.FaceCount * 4
	cubeIndices  = world.FaceCount * 6
)

// Renderer is the immediate BlockRenderer: one draw call per face.
type Renderer struct {
	dev        gpu.Device
	textures   renderer.TextureResolver
	projection *camera.Projection
	clearColor [4]float32

	program gpu.Program
	vao     gpu.VertexArray
	vbo     gpu.Buffer
	ibo     gpu.Buffer

	bound  gpu.Texture
	active bool
	viewer camera.Viewer
	err    error
	stats  renderer.FrameStats
	closed bool
}

var _ renderer.BlockRenderer = (*Renderer)(nil)

// cubeMesh lays the six face templates out back to back; face f owns
// vertices [4f, 4f+4) and indices [6f, 6f+6).
func cubeMesh() ([]byte, []byte) {
	vertices := make([]byte, 0, cubeVertices*chunks.VertexLayout.Stride())
	indices := make([]byte, 0, cubeIndices*4)
	for face := range world.BlockFace(world.FaceCount) {
		q := chunks.FaceTemplate(face)
		for _, f := range q {
			vertices = binary.NativeEndian.AppendUint32(vertices, math.Float32bits(f))
		}
		for _, i := range chunks.QuadIndices(uint32(face) * 4) {
			indices = binary.NativeEndian.AppendUint32(indices, i)
		}
	}
	return vertices, indices
}

// New uploads the static cube once.
func New(dev gpu.Device, textures renderer.TextureResolver, proj *camera.Projection, clearColor [4]float32) (_ *Renderer, err error) {
	r := &Renderer{
		dev:        dev,
		textures:   textures,
		projection: proj,
		clearColor: clearColor,
	}
	defer func() {
		if err != nil {
			r.release()
		}
	}()

	if r.program, err = dev.CreateProgram(vertexShader, fragmentShader); err != nil {
		return nil, fmt.Errorf("cubes: program: %w", err)
	}
	if r.vao, err = dev.CreateVertexArray(); err != nil {
		return nil, fmt.Errorf("cubes: vertex array: %w", err)
	}
	r.vao.Bind()

	vertices, indices := cubeMesh()
	if r.vbo, err = dev.CreateVertexBuffer(len(vertices), chunks.VertexLayout); err != nil {
		return nil, fmt.Errorf("cubes: vertex buffer: %w", err)
	}
	if err = dev.UploadSubData(r.vbo, 0, vertices); err != nil {
		return nil, fmt.Errorf("cubes: upload vertices: %w", err)
	}
	if r.ibo, err = dev.CreateIndexBuffer(len(indices)); err != nil {
		return nil, fmt.Errorf("cubes: index buffer: %w", err)
	}
	if err = dev.UploadSubData(r.ibo, 0, indices); err != nil {
		return nil, fmt.Errorf("cubes: upload indices: %w", err)
	}

	logger.Info("immediate block renderer ready", zap.Int("cubeVertices", cubeVertices))
	return r, nil
}

// Name returns the strategy name.
func (r *Renderer) Name() string { return Name }

// Stats returns the counters of the current or last scene.
func (r *Renderer) Stats() renderer.FrameStats { return r.stats }

// BeginScene clears the target and uploads the camera matrices.
func (r *Renderer) BeginScene(viewer camera.Viewer) {
	if r.closed {
		panic("cubes: BeginScene on a closed renderer")
	}
	if r.active {
		panic("cubes: BeginScene called while a scene is active")
	}
	r.active = true
	r.viewer = viewer
	r.err = nil
	r.bound = nil
	r.stats = renderer.FrameStats{}

	r.dev.SetClearColor(r.clearColor)
	r.dev.Clear(gpu.ColorBit | gpu.DepthBit)
	r.vao.Bind()
	r.program.Bind()
	r.program.SetUniformInt("u_Texture", 0)
	r.program.SetUniformMat4("u_View", viewer.ViewMatrix())
	r.program.SetUniformMat4("u_Projection", r.projection.Matrix())
}

// EmitFace draws one face right away, translated to pos.
func (r *Renderer) EmitFace(pos mgl32.Vec3, face world.BlockFace, tex gpu.Texture) error {
	if !r.active {
		panic("cubes: EmitFace called outside a scene")
	}
	if !face.Valid() {
		panic(fmt.Sprintf("cubes: invalid block face %d", face))
	}
	if gpu.Missing(tex) {
		panic("cubes: EmitFace with nil texture")
	}

	if tex != r.bound {
		r.dev.BindTexture(tex, 0)
		r.bound = tex
		r.stats.TextureBinds++
	}
	r.program.SetUniformMat4("u_Model", mgl32.Translate3D(pos[0], pos[1], pos[2]))
	r.stats.Quads++
	if err := r.dev.DrawIndexed(gpu.Triangles, 6, int(face)*6); err != nil {
		err = fmt.Errorf("draw %v face: %w", face, err)
		if r.err == nil {
			logger.Error("immediate draw failed", zap.Error(err))
			r.err = err
		}
		return err
	}
	r.stats.DrawCalls++
	profiling.Add("cubes.drawCalls", 1)
	return r.err
}

// EmitBlock draws every textured face of a block.
func (r *Renderer) EmitBlock(pos mgl32.Vec3, t world.BlockType) error {
	return renderer.EmitBlockFaces(r, r.textures, pos, t)
}

// EmitChunk draws every non-air block of c.
func (r *Renderer) EmitChunk(c *world.Chunk) error {
	defer profiling.Track("cubes.EmitChunk")()
	if !r.active {
		panic("cubes: EmitChunk called outside a scene")
	}
	return renderer.EmitChunkBlocks(r, c)
}

// EndScene returns to idle and reports the first draw error of the scene.
func (r *Renderer) EndScene() error {
	if !r.active {
		panic("cubes: EndScene called without an active scene")
	}
	r.active = false
	r.viewer = nil
	err := r.err
	r.err = nil
	return err
}

// Close deletes the cube mesh and program. It is safe to call more than once.
func (r *Renderer) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.active = false
	r.release()
	return nil
}

func (r *Renderer) release() {
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
}
