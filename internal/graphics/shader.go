package graphics

import (
	"fmt"
	"strings"

	"buildcraft/internal/graphics/gpu"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Shader represents an OpenGL shader program
type Shader struct {
	id        uint32
	locations map[string]int32
}

// NewShader compiles and links a shader program from vertex and fragment
// shader sources.
func NewShader(vertexSrc, fragmentSrc string) (*Shader, error) {
	program, err := compileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	return &Shader{id: program, locations: make(map[string]int32)}, nil
}

func (s *Shader) ID() uint32 { return s.id }

// Bind activates the shader program
func (s *Shader) Bind() {
	gl.UseProgram(s.id)
}

// location caches uniform lookups; a missing uniform resolves to -1, which
// GL ignores on upload.
func (s *Shader) location(name string) int32 {
	if loc, ok := s.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(s.id, gl.Str(name+"\x00"))
	s.locations[name] = loc
	return loc
}

// SetUniformInt sets an integer uniform
func (s *Shader) SetUniformInt(name string, value int32) {
	gl.Uniform1i(s.location(name), value)
}

// SetUniformIntArray sets an int array uniform such as a sampler array
func (s *Shader) SetUniformIntArray(name string, values []int32) {
	if len(values) == 0 {
		return
	}
	gl.Uniform1iv(s.location(name), int32(len(values)), &values[0])
}

// SetUniformMat4 sets a 4x4 matrix uniform
func (s *Shader) SetUniformMat4(name string, value mgl32.Mat4) {
	gl.UniformMatrix4fv(s.location(name), 1, false, &value[0])
}

// Helper functions
func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("%w: failed to link program: %v", gpu.ErrDevice, log)
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("%w: failed to compile shader: %v", gpu.ErrDevice, log)
	}
	return shader, nil
}
