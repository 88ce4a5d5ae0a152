// Package graphics implements gpu.Device on OpenGL 4.1 core.
package graphics

import (
	"fmt"
	"image"

	"buildcraft/internal/graphics/gpu"
	"buildcraft/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// GLDevice draws through the current OpenGL context. All methods must be
// called on the thread that owns the context.
type GLDevice struct {
	bound    *VertexArray
	maxUnits int
}

// NewGLDevice loads the GL function pointers of the current context and
// sets the fixed pipeline state: depth testing and alpha blending.
func NewGLDevice() (*GLDevice, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("%w: gl init: %v", gpu.ErrDevice, err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	var units int32
	gl.GetIntegerv(gl.MAX_TEXTURE_IMAGE_UNITS, &units)

	logger.Info("OpenGL device ready",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.Int32("textureUnits", units))

	return &GLDevice{maxUnits: int(units)}, checkError("init")
}

var glErrorNames = map[uint32]string{
	gl.INVALID_ENUM:                  "INVALID_ENUM",
	gl.INVALID_VALUE:                 "INVALID_VALUE",
	gl.INVALID_OPERATION:             "INVALID_OPERATION",
	gl.INVALID_FRAMEBUFFER_OPERATION: "INVALID_FRAMEBUFFER_OPERATION",
	gl.OUT_OF_MEMORY:                 "OUT_OF_MEMORY",
}

// checkError drains the GL error queue and reports the first entry.
func checkError(op string) error {
	var first uint32
	for {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		if first == 0 {
			first = code
		}
	}
	if first == 0 {
		return nil
	}
	name, ok := glErrorNames[first]
	if !ok {
		name = fmt.Sprintf("0x%x", first)
	}
	return fmt.Errorf("%w: %s: %s", gpu.ErrDevice, op, name)
}

// VertexArray is a GL vertex array object.
type VertexArray struct {
	id        uint32
	dev       *GLDevice
	nextAttr  uint32
	hasVertex bool
	hasIndex  bool
}

func (v *VertexArray) ID() uint32 { return v.id }

func (v *VertexArray) Bind() {
	gl.BindVertexArray(v.id)
	v.dev.bound = v
}

// Buffer is a GL buffer with a fixed capacity allocated up front.
type Buffer struct {
	id     uint32
	kind   gpu.BufferKind
	size   int
	target uint32
}

func (b *Buffer) ID() uint32           { return b.id }
func (b *Buffer) Kind() gpu.BufferKind { return b.kind }
func (b *Buffer) Size() int            { return b.size }
func (b *Buffer) Bind()                { gl.BindBuffer(b.target, b.id) }

func (d *GLDevice) CreateVertexArray() (gpu.VertexArray, error) {
	var id uint32
	gl.GenVertexArrays(1, &id)
	if err := checkError("create vertex array"); err != nil {
		return nil, err
	}
	return &VertexArray{id: id, dev: d}, nil
}

func (d *GLDevice) newBuffer(kind gpu.BufferKind, target uint32, capacityBytes int) (*Buffer, error) {
	if capacityBytes <= 0 {
		return nil, fmt.Errorf("%w: %s buffer capacity %d", gpu.ErrDevice, kind, capacityBytes)
	}
	b := &Buffer{kind: kind, size: capacityBytes, target: target}
	gl.GenBuffers(1, &b.id)
	gl.BindBuffer(target, b.id)
	gl.BufferData(target, capacityBytes, nil, gl.DYNAMIC_DRAW)
	if err := checkError("create " + kind.String() + " buffer"); err != nil {
		gl.DeleteBuffers(1, &b.id)
		return nil, err
	}
	return b, nil
}

// CreateVertexBuffer allocates a dynamic vertex buffer and, when a vertex
// array is bound, records layout as its attribute pointers.
func (d *GLDevice) CreateVertexBuffer(capacityBytes int, layout gpu.BufferLayout) (gpu.Buffer, error) {
	b, err := d.newBuffer(gpu.VertexBuffer, gl.ARRAY_BUFFER, capacityBytes)
	if err != nil {
		return nil, err
	}
	if vao := d.bound; vao != nil {
		vao.nextAttr = setAttributes(vao.nextAttr, layout)
		vao.hasVertex = true
		if err := checkError("vertex attributes"); err != nil {
			d.DeleteBuffer(b)
			return nil, err
		}
	}
	return b, nil
}

// setAttributes enables one attribute per layout element starting at index
// and returns the next free index. Matrices take one index per column.
func setAttributes(index uint32, layout gpu.BufferLayout) uint32 {
	stride := int32(layout.Stride())
	for _, e := range layout.Elements() {
		switch e.Type {
		case gpu.ShaderFloat, gpu.ShaderFloat2, gpu.ShaderFloat3, gpu.ShaderFloat4:
			gl.EnableVertexAttribArray(index)
			gl.VertexAttribPointerWithOffset(index, int32(e.Type.ComponentCount()), gl.FLOAT, e.Normalized, stride, uintptr(e.Offset))
			index++
		case gpu.ShaderInt, gpu.ShaderInt2, gpu.ShaderInt3, gpu.ShaderInt4:
			gl.EnableVertexAttribArray(index)
			gl.VertexAttribIPointer(index, int32(e.Type.ComponentCount()), gl.INT, stride, gl.PtrOffset(e.Offset))
			index++
		case gpu.ShaderBool:
			gl.EnableVertexAttribArray(index)
			gl.VertexAttribIPointer(index, 1, gl.UNSIGNED_BYTE, stride, gl.PtrOffset(e.Offset))
			index++
		case gpu.ShaderMat3, gpu.ShaderMat4:
			cols := 3
			if e.Type == gpu.ShaderMat4 {
				cols = 4
			}
			for c := range cols {
				gl.EnableVertexAttribArray(index)
				offset := e.Offset + c*cols*4
				gl.VertexAttribPointerWithOffset(index, int32(cols), gl.FLOAT, e.Normalized, stride, uintptr(offset))
				gl.VertexAttribDivisor(index, 1)
				index++
			}
		default:
			logger.Warn("skipping vertex attribute of unknown type",
				zap.String("name", e.Name), zap.Stringer("type", e.Type))
		}
	}
	return index
}

// CreateIndexBuffer allocates a dynamic uint32 index buffer. Created while
// a vertex array is bound, it becomes that array's element buffer.
func (d *GLDevice) CreateIndexBuffer(capacityBytes int) (gpu.Buffer, error) {
	b, err := d.newBuffer(gpu.IndexBuffer, gl.ELEMENT_ARRAY_BUFFER, capacityBytes)
	if err != nil {
		return nil, err
	}
	if d.bound != nil {
		d.bound.hasIndex = true
	}
	return b, nil
}

func (d *GLDevice) CreateProgram(vertexSrc, fragmentSrc string) (gpu.Program, error) {
	return NewShader(vertexSrc, fragmentSrc)
}

func (d *GLDevice) CreateTexture(img *image.RGBA) (gpu.Texture, error) {
	return uploadTexture(img)
}

func (d *GLDevice) UploadSubData(buf gpu.Buffer, offsetBytes int, data []byte) error {
	if offsetBytes < 0 || offsetBytes+len(data) > buf.Size() {
		return fmt.Errorf("%w: upload of %d bytes at %d overflows %s buffer of %d",
			gpu.ErrDevice, len(data), offsetBytes, buf.Kind(), buf.Size())
	}
	if len(data) == 0 {
		return nil
	}
	target := uint32(gl.ARRAY_BUFFER)
	if buf.Kind() == gpu.IndexBuffer {
		target = gl.ELEMENT_ARRAY_BUFFER
	}
	gl.BindBuffer(target, buf.ID())
	gl.BufferSubData(target, offsetBytes, len(data), gl.Ptr(data))
	return checkError("upload " + buf.Kind().String() + " data")
}

func (d *GLDevice) DrawIndexed(kind gpu.Primitive, indexCount, firstIndex int) error {
	vao := d.bound
	if vao == nil || !vao.hasVertex || !vao.hasIndex {
		return fmt.Errorf("%w: draw without a complete vertex array", gpu.ErrDevice)
	}
	mode := uint32(gl.TRIANGLES)
	if kind == gpu.Lines {
		mode = gl.LINES
	}
	gl.DrawElementsWithOffset(mode, int32(indexCount), gl.UNSIGNED_INT, uintptr(firstIndex*4))
	return checkError("draw " + kind.String())
}

func (d *GLDevice) BindTexture(tex gpu.Texture, unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, tex.ID())
}

func (d *GLDevice) SetClearColor(c [4]float32) { gl.ClearColor(c[0], c[1], c[2], c[3]) }

func (d *GLDevice) Clear(mask gpu.ClearMask) {
	var bits uint32
	if mask&gpu.ColorBit != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&gpu.DepthBit != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (d *GLDevice) SetViewport(width, height int) { gl.Viewport(0, 0, int32(width), int32(height)) }
func (d *GLDevice) MaxTextureUnits() int          { return d.maxUnits }

func (d *GLDevice) DeleteBuffer(buf gpu.Buffer) {
	id := buf.ID()
	gl.DeleteBuffers(1, &id)
}

func (d *GLDevice) DeleteVertexArray(vao gpu.VertexArray) {
	id := vao.ID()
	if d.bound != nil && d.bound.id == id {
		gl.BindVertexArray(0)
		d.bound = nil
	}
	gl.DeleteVertexArrays(1, &id)
}

func (d *GLDevice) DeleteProgram(p gpu.Program) { gl.DeleteProgram(p.ID()) }

func (d *GLDevice) DeleteTexture(tex gpu.Texture) {
	id := tex.ID()
	gl.DeleteTextures(1, &id)
}
