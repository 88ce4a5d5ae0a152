package gpu

import "fmt"

// ShaderDataType is the type of one vertex attribute.
type ShaderDataType uint8

const (
	ShaderNone ShaderDataType = iota
	ShaderFloat
	ShaderFloat2
	ShaderFloat3
	ShaderFloat4
	ShaderMat3
	ShaderMat4
	ShaderInt
	ShaderInt2
	ShaderInt3
	ShaderInt4
	ShaderBool
)

// Size returns the attribute size in bytes.
func (t ShaderDataType) Size() int {
	switch t {
	case ShaderFloat, ShaderInt:
		return 4
	case ShaderFloat2, ShaderInt2:
		return 8
	case ShaderFloat3, ShaderInt3:
		return 12
	case ShaderFloat4, ShaderInt4:
		return 16
	case ShaderMat3:
		return 4 * 3 * 3
	case ShaderMat4:
		return 4 * 4 * 4
	case ShaderBool:
		return 1
	}
	return 0
}

// ComponentCount returns the number of scalars in the attribute.
func (t ShaderDataType) ComponentCount() int {
	switch t {
	case ShaderFloat, ShaderInt, ShaderBool:
		return 1
	case ShaderFloat2, ShaderInt2:
		return 2
	case ShaderFloat3, ShaderInt3:
		return 3
	case ShaderFloat4, ShaderInt4:
		return 4
	case ShaderMat3:
		return 3 * 3
	case ShaderMat4:
		return 4 * 4
	}
	return 0
}

// IsInteger reports whether the attribute is read as integers by the shader.
func (t ShaderDataType) IsInteger() bool {
	switch t {
	case ShaderInt, ShaderInt2, ShaderInt3, ShaderInt4, ShaderBool:
		return true
	}
	return false
}

func (t ShaderDataType) String() string {
	names := [...]string{"None", "Float", "Float2", "Float3", "Float4", "Mat3", "Mat4", "Int", "Int2", "Int3", "Int4", "Bool"}
	if int(t) < len(names) {
		return names[t]
	}
	return fmt.Sprintf("ShaderDataType(%d)", t)
}

// BufferElement is one named attribute in an interleaved vertex.
type BufferElement struct {
	Name       string
	Type       ShaderDataType
	Normalized bool
	Offset     int
}

// Attr declares an attribute for NewBufferLayout.
func Attr(t ShaderDataType, name string) BufferElement {
	return BufferElement{Name: name, Type: t}
}

// BufferLayout describes an interleaved vertex format.
type BufferLayout struct {
	elements []BufferElement
	stride   int
}

// NewBufferLayout packs the elements in order and computes their offsets
// and the vertex stride.
func NewBufferLayout(elements ...BufferElement) BufferLayout {
	l := BufferLayout{elements: make([]BufferElement, len(elements))}
	offset := 0
	for i, e := range elements {
		e.Offset = offset
		offset += e.Type.Size()
		l.elements[i] = e
	}
	l.stride = offset
	return l
}

// Elements returns the attributes with their computed offsets.
func (l BufferLayout) Elements() []BufferElement {
	return l.elements
}

// Stride returns the size of one vertex in bytes.
func (l BufferLayout) Stride() int {
	return l.stride
}

// Floats returns the size of one vertex in float32 units. It panics if the
// layout is not float aligned.
func (l BufferLayout) Floats() int {
	if l.stride%4 != 0 {
		panic(fmt.Sprintf("gpu: layout stride %d is not a multiple of 4", l.stride))
	}
	return l.stride / 4
}
