package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var worldUp = mgl32.Vec3{0, 1, 0}

// HandleMouseMovement turns the camera by the cursor delta since the last
// call. The first call only records the position.
func (p *Player) HandleMouseMovement(xpos, ypos float64) {
	if p.FirstMouse {
		p.LastMouseX = xpos
		p.LastMouseY = ypos
		p.FirstMouse = false
		return
	}

	xoffset := xpos - p.LastMouseX
	yoffset := p.LastMouseY - ypos
	p.LastMouseX = xpos
	p.LastMouseY = ypos

	p.CamYaw += xoffset * p.Sensitivity
	p.CamPitch += yoffset * p.Sensitivity

	// Constrain pitch
	p.CamPitch = max(-MaxPitch, min(MaxPitch, p.CamPitch))
}

// ResetMouse makes the next HandleMouseMovement a fresh start, e.g. after
// the cursor was released and recaptured.
func (p *Player) ResetMouse() {
	p.FirstMouse = true
}

func (p *Player) GetFrontVector() mgl32.Vec3 {
	y := mgl32.DegToRad(float32(p.CamYaw))
	pt := mgl32.DegToRad(float32(p.CamPitch))
	fx := float32(math.Cos(float64(y)) * math.Cos(float64(pt)))
	fy := float32(math.Sin(float64(pt)))
	fz := float32(math.Sin(float64(y)) * math.Cos(float64(pt)))
	return mgl32.Vec3{fx, fy, fz}.Normalize()
}

// GetRightVector returns the horizontal right direction of the view.
func (p *Player) GetRightVector() mgl32.Vec3 {
	return p.GetFrontVector().Cross(worldUp).Normalize()
}

// ViewMatrix looks from the player position along the front vector.
func (p *Player) ViewMatrix() mgl32.Mat4 {
	front := p.GetFrontVector()
	return mgl32.LookAtV(p.Position, p.Position.Add(front), worldUp)
}
