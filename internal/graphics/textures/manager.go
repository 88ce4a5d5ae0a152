package textures

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"path/filepath"

	"buildcraft/internal/graphics/gpu"
	"buildcraft/internal/logger"
	"buildcraft/internal/world"

	"go.uber.org/zap"
)

type faceKey struct {
	block world.BlockType
	face  world.BlockFace
}

// Manager owns one texture per block type and face.
type Manager struct {
	dev      gpu.Device
	textures map[faceKey]gpu.Texture
	owned    []gpu.Texture
	fallback int
}

// FileName is the texture file name of a block face, e.g.
// BlockTexture-1-Dirt-Top.png.
func FileName(t world.BlockType, face world.BlockFace) string {
	return fmt.Sprintf("BlockTexture-%d-%s-%s.png", t, t, face)
}

// fallbackColors tint generated textures when no file exists.
var fallbackColors = map[world.BlockType]color.RGBA{
	world.BlockTypeDirt:        {R: 134, G: 96, B: 67, A: 255},
	world.BlockTypeCobblestone: {R: 122, G: 122, B: 122, A: 255},
	world.BlockTypeGrass:       {R: 95, G: 159, B: 53, A: 255},
}

// shade darkens side and bottom faces of generated textures.
func shade(c color.RGBA, face world.BlockFace) color.RGBA {
	f := 1.0
	switch face {
	case world.FaceBottom:
		f = 0.55
	case world.FaceBack, world.FaceFront:
		f = 0.8
	case world.FaceLeft, world.FaceRight:
		f = 0.7
	}
	return color.RGBA{R: uint8(float64(c.R) * f), G: uint8(float64(c.G) * f), B: uint8(float64(c.B) * f), A: c.A}
}

// Load uploads a texture for every face of every solid block type. Files
// are read from dir and scaled to size; a missing file is replaced with a
// generated solid texture. Air has no textures.
func Load(dev gpu.Device, dir string, size int) (*Manager, error) {
	m := &Manager{
		dev:      dev,
		textures: make(map[faceKey]gpu.Texture),
	}
	for _, t := range world.SolidBlockTypes() {
		for face := range world.BlockFace(world.FaceCount) {
			img, err := m.image(dir, size, t, face)
			if err != nil {
				m.Close()
				return nil, err
			}
			tex, err := dev.CreateTexture(img)
			if err != nil {
				m.Close()
				return nil, fmt.Errorf("upload %s: %w", FileName(t, face), err)
			}
			m.textures[faceKey{t, face}] = tex
			m.owned = append(m.owned, tex)
		}
	}
	logger.Info("block textures loaded",
		zap.String("dir", dir),
		zap.Int("textures", len(m.owned)),
		zap.Int("generated", m.fallback))
	return m, nil
}

func (m *Manager) image(dir string, size int, t world.BlockType, face world.BlockFace) (*image.RGBA, error) {
	path := filepath.Join(dir, FileName(t, face))
	img, err := Decode(path)
	if errors.Is(err, fs.ErrNotExist) {
		m.fallback++
		logger.Debug("texture missing, using generated color", zap.String("path", path))
		c, ok := fallbackColors[t]
		if !ok {
			c = color.RGBA{R: 255, G: 0, B: 255, A: 255}
		}
		return Solid(shade(c, face), size), nil
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("texture loaded", zap.String("path", path))
	return ToRGBA(img, size), nil
}

// Resolve returns the texture of a block face, or nil for air and unknown
// types.
func (m *Manager) Resolve(t world.BlockType, face world.BlockFace) gpu.Texture {
	return m.textures[faceKey{t, face}]
}

// Len returns the number of loaded textures.
func (m *Manager) Len() int {
	return len(m.owned)
}

// Generated returns how many textures were generated instead of loaded.
func (m *Manager) Generated() int {
	return m.fallback
}

// Close deletes every texture.
func (m *Manager) Close() {
	for _, tex := range m.owned {
		m.dev.DeleteTexture(tex)
	}
	m.owned = nil
	clear(m.textures)
}
