// Package camera holds the view and projection inputs of a scene.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Viewer supplies the view matrix for a scene.
type Viewer interface {
	ViewMatrix() mgl32.Mat4
}

// Fixed is a Viewer with a constant view matrix.
type Fixed mgl32.Mat4

func (f Fixed) ViewMatrix() mgl32.Mat4 { return mgl32.Mat4(f) }

// LookAt returns a fixed viewer at eye looking at center with +Y up.
func LookAt(eye, center mgl32.Vec3) Fixed {
	return Fixed(mgl32.LookAtV(eye, center, mgl32.Vec3{0, 1, 0}))
}

// Projection handles the perspective matrix. The vertical field of view and
// clip planes are fixed; the aspect ratio follows the viewport.
type Projection struct {
	AspectRatio float32
	FOV         float32 // degrees
	NearPlane   float32
	FarPlane    float32
}

// NewProjection creates a projection for a width x height viewport.
func NewProjection(width, height int, fovDegrees, near, far float32) *Projection {
	p := &Projection{
		FOV:       fovDegrees,
		NearPlane: near,
		FarPlane:  far,
	}
	p.SetViewport(width, height)
	return p
}

// SetViewport updates the aspect ratio. A zero height (minimized window)
// keeps the previous ratio.
func (p *Projection) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		if p.AspectRatio == 0 {
			p.AspectRatio = 1
		}
		return
	}
	p.AspectRatio = float32(width) / float32(height)
}

// Matrix returns the projection matrix.
func (p *Projection) Matrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(p.FOV), p.AspectRatio, p.NearPlane, p.FarPlane)
}
