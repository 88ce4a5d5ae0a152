package gpu

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sync"

	"buildcraft/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"
)

// CaptureRecord is one device call as written to a capture file.
type CaptureRecord struct {
	Frame   int    `json:"frame"`
	Seq     int    `json:"seq"`
	Op      string `json:"op"`
	ID      uint32 `json:"id,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Offset  int    `json:"offset,omitempty"`
	Bytes   int    `json:"bytes,omitempty"`
	Count   int    `json:"count,omitempty"`
	First   int    `json:"first,omitempty"`
	Unit    *int   `json:"unit,omitempty"`
	Uniform string `json:"uniform,omitempty"`
	Err     string `json:"err,omitempty"`
}

// Capture is a Device that forwards every call to an inner device and
// writes a JSONL record of it, zstd compressed, for the first few frames.
type Capture struct {
	inner  Device
	frames int

	mu    sync.Mutex
	frame int
	seq   int
	done  bool
	f     *os.File
	enc   *zstd.Encoder
	w     *bufio.Writer
}

// OpenCapture creates the capture file at path and starts recording.
func OpenCapture(inner Device, path string, frames int) (*Capture, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create capture dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create capture file: %w", err)
	}
	c, err := NewCapture(inner, f, frames)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	c.f = f
	return c, nil
}

// NewCapture records into w. The caller keeps ownership of w.
func NewCapture(inner Device, w io.Writer, frames int) (*Capture, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	return &Capture{
		inner:  inner,
		frames: max(frames, 1),
		enc:    enc,
		w:      bufio.NewWriterSize(enc, 64*1024),
	}, nil
}

// Recording reports whether calls are still being written.
func (c *Capture) Recording() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.done
}

// EndFrame marks a frame boundary. Recording stops, and the file is
// finalized, once the configured number of frames has been captured.
func (c *Capture) EndFrame() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return nil
	}
	c.frame++
	c.seq = 0
	if c.frame < c.frames {
		return c.w.Flush()
	}
	logger.Info("device capture finished", zap.Int("frames", c.frame))
	return c.finishLocked()
}

// Close stops recording and finalizes the capture file.
func (c *Capture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return nil
	}
	return c.finishLocked()
}

func (c *Capture) finishLocked() error {
	c.done = true
	errFlush := c.w.Flush()
	errEnc := c.enc.Close()
	var errFile error
	if c.f != nil {
		errFile = c.f.Close()
		c.f = nil
	}
	return errors.Join(errFlush, errEnc, errFile)
}

func (c *Capture) record(r CaptureRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return
	}
	r.Frame = c.frame
	r.Seq = c.seq
	c.seq++

	b, err := json.Marshal(r)
	if err == nil {
		_, err = c.w.Write(b)
	}
	if err == nil {
		err = c.w.WriteByte('\n')
	}
	if err != nil {
		logger.Warn("device capture stopped", zap.Error(err))
		_ = c.finishLocked()
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func (c *Capture) CreateVertexArray() (VertexArray, error) {
	vao, err := c.inner.CreateVertexArray()
	r := CaptureRecord{Op: "createVertexArray", Err: errString(err)}
	if err == nil {
		r.ID = vao.ID()
	}
	c.record(r)
	return vao, err
}

func (c *Capture) CreateVertexBuffer(capacityBytes int, layout BufferLayout) (Buffer, error) {
	buf, err := c.inner.CreateVertexBuffer(capacityBytes, layout)
	r := CaptureRecord{Op: "createBuffer", Kind: VertexBuffer.String(), Bytes: capacityBytes, Err: errString(err)}
	if err == nil {
		r.ID = buf.ID()
	}
	c.record(r)
	return buf, err
}

func (c *Capture) CreateIndexBuffer(capacityBytes int) (Buffer, error) {
	buf, err := c.inner.CreateIndexBuffer(capacityBytes)
	r := CaptureRecord{Op: "createBuffer", Kind: IndexBuffer.String(), Bytes: capacityBytes, Err: errString(err)}
	if err == nil {
		r.ID = buf.ID()
	}
	c.record(r)
	return buf, err
}

func (c *Capture) CreateProgram(vertexSrc, fragmentSrc string) (Program, error) {
	p, err := c.inner.CreateProgram(vertexSrc, fragmentSrc)
	r := CaptureRecord{Op: "createProgram", Err: errString(err)}
	if err != nil {
		c.record(r)
		return nil, err
	}
	r.ID = p.ID()
	c.record(r)
	return &capturedProgram{Program: p, c: c}, nil
}

func (c *Capture) CreateTexture(img *image.RGBA) (Texture, error) {
	tex, err := c.inner.CreateTexture(img)
	r := CaptureRecord{Op: "createTexture", Err: errString(err)}
	if err == nil {
		r.ID = tex.ID()
		r.Bytes = len(img.Pix)
	}
	c.record(r)
	return tex, err
}

func (c *Capture) UploadSubData(buf Buffer, offsetBytes int, data []byte) error {
	err := c.inner.UploadSubData(buf, offsetBytes, data)
	c.record(CaptureRecord{
		Op:     "upload",
		ID:     buf.ID(),
		Kind:   buf.Kind().String(),
		Offset: offsetBytes,
		Bytes:  len(data),
		Err:    errString(err),
	})
	return err
}

func (c *Capture) DrawIndexed(kind Primitive, indexCount, firstIndex int) error {
	err := c.inner.DrawIndexed(kind, indexCount, firstIndex)
	c.record(CaptureRecord{Op: "draw", Kind: kind.String(), Count: indexCount, First: firstIndex, Err: errString(err)})
	return err
}

func (c *Capture) BindTexture(tex Texture, unit int) {
	c.inner.BindTexture(tex, unit)
	c.record(CaptureRecord{Op: "bindTexture", ID: tex.ID(), Unit: &unit})
}

func (c *Capture) SetClearColor(col [4]float32) {
	c.inner.SetClearColor(col)
}

func (c *Capture) Clear(mask ClearMask) {
	c.inner.Clear(mask)
	c.record(CaptureRecord{Op: "clear", Count: int(mask)})
}

func (c *Capture) SetViewport(width, height int) {
	c.inner.SetViewport(width, height)
	c.record(CaptureRecord{Op: "viewport", Count: width * height})
}

func (c *Capture) MaxTextureUnits() int {
	return c.inner.MaxTextureUnits()
}

func (c *Capture) DeleteBuffer(buf Buffer) {
	c.record(CaptureRecord{Op: "deleteBuffer", ID: buf.ID()})
	c.inner.DeleteBuffer(buf)
}

func (c *Capture) DeleteVertexArray(vao VertexArray) {
	c.record(CaptureRecord{Op: "deleteVertexArray", ID: vao.ID()})
	c.inner.DeleteVertexArray(vao)
}

func (c *Capture) DeleteProgram(p Program) {
	if cp, ok := p.(*capturedProgram); ok {
		p = cp.Program
	}
	c.record(CaptureRecord{Op: "deleteProgram", ID: p.ID()})
	c.inner.DeleteProgram(p)
}

func (c *Capture) DeleteTexture(tex Texture) {
	c.record(CaptureRecord{Op: "deleteTexture", ID: tex.ID()})
	c.inner.DeleteTexture(tex)
}

// capturedProgram records uniform uploads by name.
type capturedProgram struct {
	Program
	c *Capture
}

func (p *capturedProgram) Bind() {
	p.Program.Bind()
	p.c.record(CaptureRecord{Op: "bindProgram", ID: p.Program.ID()})
}

func (p *capturedProgram) SetUniformMat4(name string, m mgl32.Mat4) {
	p.Program.SetUniformMat4(name, m)
	p.c.record(CaptureRecord{Op: "uniform", Kind: "mat4", Uniform: name})
}

func (p *capturedProgram) SetUniformInt(name string, v int32) {
	p.Program.SetUniformInt(name, v)
	p.c.record(CaptureRecord{Op: "uniform", Kind: "int", Uniform: name})
}

func (p *capturedProgram) SetUniformIntArray(name string, v []int32) {
	p.Program.SetUniformIntArray(name, v)
	p.c.record(CaptureRecord{Op: "uniform", Kind: "int[]", Uniform: name, Count: len(v)})
}

// ReadCapture decodes every record of a capture stream.
func ReadCapture(r io.Reader) ([]CaptureRecord, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	var out []CaptureRecord
	jd := json.NewDecoder(dec)
	for {
		var rec CaptureRecord
		if err := jd.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, fmt.Errorf("decode capture record %d: %w", len(out), err)
		}
		out = append(out, rec)
	}
}
