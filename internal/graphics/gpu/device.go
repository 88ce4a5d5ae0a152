// Package gpu defines the graphics device boundary the renderers draw
// through. The OpenGL implementation lives in internal/graphics; tests use
// the recording fake in gputest.
package gpu

import (
	"errors"
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrDevice is wrapped by every error a Device reports.
var ErrDevice = errors.New("graphics device error")

// Primitive selects how indices are assembled.
type Primitive uint8

const (
	Triangles Primitive = iota
	Lines
)

func (p Primitive) String() string {
	switch p {
	case Triangles:
		return "triangles"
	case Lines:
		return "lines"
	default:
		return "unknown"
	}
}

// ClearMask selects which targets Clear resets.
type ClearMask uint8

const (
	ColorBit ClearMask = 1 << iota
	DepthBit
)

// BufferKind tells vertex and index buffers apart.
type BufferKind uint8

const (
	VertexBuffer BufferKind = iota
	IndexBuffer
)

func (k BufferKind) String() string {
	if k == IndexBuffer {
		return "index"
	}
	return "vertex"
}

// Texture is an opaque GPU-resident texture. Implementations must be
// comparable so textures can key maps. ID 0 never names a live texture and
// a nil pointer implementation must report it.
type Texture interface {
	ID() uint32
}

// Missing reports whether t is nil or a nil handle of some implementation.
func Missing(t Texture) bool {
	return t == nil || t.ID() == 0
}

// Buffer is a fixed-capacity GPU buffer.
type Buffer interface {
	ID() uint32
	Kind() BufferKind
	Size() int
	Bind()
}

// VertexArray records attribute layouts and the bound index buffer.
type VertexArray interface {
	ID() uint32
	Bind()
}

// Program is a linked shader program.
type Program interface {
	ID() uint32
	Bind()
	SetUniformMat4(name string, m mgl32.Mat4)
	SetUniformInt(name string, v int32)
	SetUniformIntArray(name string, v []int32)
}

// Device is everything the renderers need from the graphics API.
//
// Buffers created while a vertex array is bound are attached to it, the way
// OpenGL records attribute pointers and the element buffer into the current
// vertex array.
type Device interface {
	CreateVertexArray() (VertexArray, error)
	CreateVertexBuffer(capacityBytes int, layout BufferLayout) (Buffer, error)
	CreateIndexBuffer(capacityBytes int) (Buffer, error)
	CreateProgram(vertexSrc, fragmentSrc string) (Program, error)
	CreateTexture(img *image.RGBA) (Texture, error)

	// UploadSubData copies data into buf starting at offsetBytes.
	UploadSubData(buf Buffer, offsetBytes int, data []byte) error
	// DrawIndexed draws indexCount indices starting at firstIndex from the
	// index buffer of the bound vertex array.
	DrawIndexed(kind Primitive, indexCount, firstIndex int) error
	BindTexture(tex Texture, unit int)

	SetClearColor(c [4]float32)
	Clear(mask ClearMask)
	SetViewport(width, height int)
	MaxTextureUnits() int

	DeleteBuffer(buf Buffer)
	DeleteVertexArray(vao VertexArray)
	DeleteProgram(p Program)
	DeleteTexture(tex Texture)
}
