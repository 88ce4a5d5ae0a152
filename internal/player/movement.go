package player

import (
	"buildcraft/internal/input"

	"github.com/go-gl/mathgl/mgl32"
)

// Controls reports which actions are held.
type Controls interface {
	IsActive(action input.Action) bool
}

// UpdatePosition flies the player along the view direction. Forward and
// back follow the camera including pitch; up and down move along world Y.
func (p *Player) UpdatePosition(dt float64, c Controls) {
	p.IsSprinting = c.IsActive(input.ActionSprint)

	front := p.GetFrontVector()
	right := p.GetRightVector()

	var dir mgl32.Vec3
	if c.IsActive(input.ActionMoveForward) {
		dir = dir.Add(front)
	}
	if c.IsActive(input.ActionMoveBackward) {
		dir = dir.Sub(front)
	}
	if c.IsActive(input.ActionMoveLeft) {
		dir = dir.Sub(right)
	}
	if c.IsActive(input.ActionMoveRight) {
		dir = dir.Add(right)
	}
	if c.IsActive(input.ActionMoveUp) {
		dir = dir.Add(worldUp)
	}
	if c.IsActive(input.ActionMoveDown) {
		dir = dir.Sub(worldUp)
	}
	if dir.Len() < 1e-6 {
		return
	}

	speed := p.MoveSpeed * float32(dt)
	if p.IsSprinting {
		speed *= SprintMultiplier
	}
	p.Position = p.Position.Add(dir.Normalize().Mul(speed))
}
