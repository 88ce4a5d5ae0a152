// Package player implements the free-flying camera the world is viewed
// through.
package player

import (
	"buildcraft/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	SprintMultiplier = 3.0

	// DefaultYaw looks down -Z.
	DefaultYaw = -90.0
	MaxPitch   = 89.0
)

// Player is a flying observer with no collision or gravity.
type Player struct {
	Position mgl32.Vec3

	CamYaw     float64 // degrees
	CamPitch   float64 // degrees
	LastMouseX float64
	LastMouseY float64
	FirstMouse bool

	MoveSpeed   float32 // blocks per second
	Sensitivity float64 // degrees per pixel
	IsSprinting bool
}

// New returns a player at pos facing -Z.
func New(pos mgl32.Vec3, moveSpeed float32, sensitivity float64) *Player {
	return &Player{
		Position:    pos,
		CamYaw:      DefaultYaw,
		FirstMouse:  true,
		MoveSpeed:   moveSpeed,
		Sensitivity: sensitivity,
	}
}

// ChunkCoord returns the chunk column the player is in.
func (p *Player) ChunkCoord() world.ChunkCoord {
	return world.ChunkAtWorld(p.Position.X(), p.Position.Z())
}
