// Package gputest provides a recording gpu.Device for tests that run
// without a graphics context.
package gputest

import (
	"encoding/binary"
	"fmt"
	"image"
	"math"

	"buildcraft/internal/graphics/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

// Texture is a fake texture handle.
type Texture struct {
	id     uint32
	Width  int
	Height int
}

func (t *Texture) ID() uint32 {
	if t == nil {
		return 0
	}
	return t.id
}

// Buffer keeps a CPU copy of everything uploaded into it.
type Buffer struct {
	id        uint32
	kind      gpu.BufferKind
	Layout    gpu.BufferLayout
	Contents  []byte
	uploadEnd int
}

func (b *Buffer) ID() uint32           { return b.id }
func (b *Buffer) Kind() gpu.BufferKind { return b.kind }
func (b *Buffer) Size() int            { return len(b.Contents) }
func (b *Buffer) Bind()                {}

// VertexArray remembers the buffers created while it was bound.
type VertexArray struct {
	id     uint32
	Vertex *Buffer
	Index  *Buffer
	rec    *Recorder
}

func (v *VertexArray) ID() uint32 { return v.id }

func (v *VertexArray) Bind() {
	v.rec.bound = v
	v.rec.VertexArrayBinds++
}

// Uniform is one recorded uniform upload.
type Uniform struct {
	Name  string
	Value any
}

// Program records uniform uploads.
type Program struct {
	id             uint32
	VertexSource   string
	FragmentSource string
	Uniforms       map[string]any
	History        []Uniform
	Binds          int
	rec            *Recorder
}

func (p *Program) ID() uint32 { return p.id }

func (p *Program) Bind() {
	p.Binds++
	p.rec.program = p
}

func (p *Program) set(name string, v any) {
	p.Uniforms[name] = v
	p.History = append(p.History, Uniform{Name: name, Value: v})
}

func (p *Program) SetUniformMat4(name string, m mgl32.Mat4) { p.set(name, m) }
func (p *Program) SetUniformInt(name string, v int32)       { p.set(name, v) }

func (p *Program) SetUniformIntArray(name string, v []int32) {
	p.set(name, append([]int32(nil), v...))
}

// Bind is one recorded texture bind.
type Bind struct {
	Texture gpu.Texture
	Unit    int
}

// Upload is one recorded sub-data upload.
type Upload struct {
	Buffer *Buffer
	Offset int
	Size   int
}

// Draw is one recorded draw call together with the geometry it consumed.
type Draw struct {
	Kind       gpu.Primitive
	Count      int
	First      int
	Vertices   []float32 // floats of the most recent vertex upload
	Indices    []uint32  // the indices the draw covered
	Textures   map[int]gpu.Texture
	Model      mgl32.Mat4
	HasModel   bool
	ProgramID  uint32
	DrawNumber int
}

// Recorder implements gpu.Device by recording every call.
type Recorder struct {
	MaxUnits int

	// Optional failure hooks, called with the 1-based call number.
	OnUpload func(n int) error
	OnDraw   func(n int) error

	// SkipGeometry leaves Draw.Vertices and Draw.Indices empty, for tests
	// that only count draws over very large batches.
	SkipGeometry bool

	Draws            []Draw
	Uploads          []Upload
	Binds            []Bind
	Clears           []gpu.ClearMask
	ClearColor       [4]float32
	Viewport         [2]int
	VertexArrayBinds int

	Buffers      []*Buffer
	VertexArrays []*VertexArray
	Programs     []*Program
	Textures     []*Texture

	uploadCalls int
	drawCalls   int
	deleted     map[uint32]bool
	units       map[int]gpu.Texture
	bound       *VertexArray
	program     *Program
	nextID      uint32
}

var _ gpu.Device = (*Recorder)(nil)

// NewRecorder returns a recorder reporting 16 texture units.
func NewRecorder() *Recorder {
	return &Recorder{
		MaxUnits: 16,
		deleted:  make(map[uint32]bool),
		units:    make(map[int]gpu.Texture),
	}
}

func (r *Recorder) id() uint32 {
	r.nextID++
	return r.nextID
}

// NewTexture creates a texture without going through an image.
func (r *Recorder) NewTexture() *Texture {
	t := &Texture{id: r.id(), Width: 1, Height: 1}
	r.Textures = append(r.Textures, t)
	return t
}

func (r *Recorder) CreateVertexArray() (gpu.VertexArray, error) {
	v := &VertexArray{id: r.id(), rec: r}
	r.VertexArrays = append(r.VertexArrays, v)
	return v, nil
}

func (r *Recorder) newBuffer(kind gpu.BufferKind, capacityBytes int) (*Buffer, error) {
	if capacityBytes <= 0 {
		return nil, fmt.Errorf("%w: buffer capacity %d", gpu.ErrDevice, capacityBytes)
	}
	b := &Buffer{id: r.id(), kind: kind, Contents: make([]byte, capacityBytes)}
	r.Buffers = append(r.Buffers, b)
	return b, nil
}

func (r *Recorder) CreateVertexBuffer(capacityBytes int, layout gpu.BufferLayout) (gpu.Buffer, error) {
	b, err := r.newBuffer(gpu.VertexBuffer, capacityBytes)
	if err != nil {
		return nil, err
	}
	b.Layout = layout
	if r.bound != nil {
		r.bound.Vertex = b
	}
	return b, nil
}

func (r *Recorder) CreateIndexBuffer(capacityBytes int) (gpu.Buffer, error) {
	b, err := r.newBuffer(gpu.IndexBuffer, capacityBytes)
	if err != nil {
		return nil, err
	}
	if r.bound != nil {
		r.bound.Index = b
	}
	return b, nil
}

func (r *Recorder) CreateProgram(vertexSrc, fragmentSrc string) (gpu.Program, error) {
	p := &Program{
		id:             r.id(),
		VertexSource:   vertexSrc,
		FragmentSource: fragmentSrc,
		Uniforms:       make(map[string]any),
		rec:            r,
	}
	r.Programs = append(r.Programs, p)
	return p, nil
}

func (r *Recorder) CreateTexture(img *image.RGBA) (gpu.Texture, error) {
	b := img.Bounds()
	t := &Texture{id: r.id(), Width: b.Dx(), Height: b.Dy()}
	r.Textures = append(r.Textures, t)
	return t, nil
}

func (r *Recorder) UploadSubData(buf gpu.Buffer, offsetBytes int, data []byte) error {
	r.uploadCalls++
	if r.OnUpload != nil {
		if err := r.OnUpload(r.uploadCalls); err != nil {
			return fmt.Errorf("%w: %w", gpu.ErrDevice, err)
		}
	}
	b := buf.(*Buffer)
	if offsetBytes < 0 || offsetBytes+len(data) > len(b.Contents) {
		return fmt.Errorf("%w: upload [%d,%d) outside buffer of %d bytes",
			gpu.ErrDevice, offsetBytes, offsetBytes+len(data), len(b.Contents))
	}
	copy(b.Contents[offsetBytes:], data)
	b.uploadEnd = offsetBytes + len(data)
	r.Uploads = append(r.Uploads, Upload{Buffer: b, Offset: offsetBytes, Size: len(data)})
	return nil
}

func (r *Recorder) DrawIndexed(kind gpu.Primitive, indexCount, firstIndex int) error {
	r.drawCalls++
	n := r.drawCalls
	if r.OnDraw != nil {
		if err := r.OnDraw(n); err != nil {
			return fmt.Errorf("%w: %w", gpu.ErrDevice, err)
		}
	}
	if r.bound == nil || r.bound.Vertex == nil || r.bound.Index == nil {
		return fmt.Errorf("%w: draw without a complete vertex array", gpu.ErrDevice)
	}
	ib := r.bound.Index
	if (firstIndex+indexCount)*4 > len(ib.Contents) {
		return fmt.Errorf("%w: draw past index buffer end", gpu.ErrDevice)
	}
	d := Draw{
		Kind:       kind,
		Count:      indexCount,
		First:      firstIndex,
		Textures:   make(map[int]gpu.Texture, len(r.units)),
		DrawNumber: n,
	}
	if !r.SkipGeometry {
		d.Vertices = Float32s(r.bound.Vertex.Contents[:r.bound.Vertex.uploadEnd])
		d.Indices = Uint32s(ib.Contents[firstIndex*4 : (firstIndex+indexCount)*4])
	}
	for u, t := range r.units {
		d.Textures[u] = t
	}
	if r.program != nil {
		d.ProgramID = r.program.id
		if m, ok := r.program.Uniforms["u_Model"].(mgl32.Mat4); ok {
			d.Model = m
			d.HasModel = true
		}
	}
	r.Draws = append(r.Draws, d)
	return nil
}

func (r *Recorder) BindTexture(tex gpu.Texture, unit int) {
	r.units[unit] = tex
	r.Binds = append(r.Binds, Bind{Texture: tex, Unit: unit})
}

func (r *Recorder) SetClearColor(c [4]float32) { r.ClearColor = c }
func (r *Recorder) Clear(mask gpu.ClearMask)   { r.Clears = append(r.Clears, mask) }
func (r *Recorder) SetViewport(w, h int)       { r.Viewport = [2]int{w, h} }
func (r *Recorder) MaxTextureUnits() int       { return r.MaxUnits }

func (r *Recorder) del(id uint32) {
	if r.deleted[id] {
		panic(fmt.Sprintf("gputest: object %d deleted twice", id))
	}
	r.deleted[id] = true
}

func (r *Recorder) DeleteBuffer(buf gpu.Buffer)           { r.del(buf.ID()) }
func (r *Recorder) DeleteVertexArray(vao gpu.VertexArray) { r.del(vao.ID()) }
func (r *Recorder) DeleteProgram(p gpu.Program)           { r.del(p.ID()) }
func (r *Recorder) DeleteTexture(tex gpu.Texture)         { r.del(tex.ID()) }

// Deleted reports whether the object with id has been deleted.
func (r *Recorder) Deleted(id uint32) bool {
	return r.deleted[id]
}

// Live returns the number of created objects not yet deleted.
func (r *Recorder) Live() int {
	return int(r.nextID) - len(r.deleted)
}

// TotalIndices sums the index counts of every recorded draw.
func (r *Recorder) TotalIndices() int {
	n := 0
	for _, d := range r.Draws {
		n += d.Count
	}
	return n
}

// Program returns the most recently bound program.
func (r *Recorder) Program() *Program {
	return r.program
}

// Float32s decodes native-endian float32 values.
func Float32s(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.NativeEndian.Uint32(b[i*4:]))
	}
	return out
}

// Uint32s decodes native-endian uint32 values.
func Uint32s(b []byte) []uint32 {
	out := make([]uint32, len(b)/4)
	for i := range out {
		out[i] = binary.NativeEndian.Uint32(b[i*4:])
	}
	return out
}
