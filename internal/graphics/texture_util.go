package graphics

import (
	"fmt"
	"image"

	"buildcraft/internal/graphics/gpu"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Texture is a GL 2D texture.
type Texture struct {
	id            uint32
	Width, Height int
}

func (t *Texture) ID() uint32 {
	if t == nil {
		return 0
	}
	return t.id
}

// uploadTexture creates a mipmapped, repeating 2D texture from rgba. Rows
// are uploaded as given; callers flip images beforehand.
func uploadTexture(rgba *image.RGBA) (*Texture, error) {
	size := rgba.Rect.Size()
	if size.X == 0 || size.Y == 0 {
		return nil, fmt.Errorf("%w: empty texture image", gpu.ErrDevice)
	}

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(rgba.Stride/4))
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(size.X),
		int32(size.Y),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba.Pix),
	)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)

	if err := checkError("upload texture"); err != nil {
		gl.DeleteTextures(1, &texture)
		return nil, err
	}
	return &Texture{id: texture, Width: size.X, Height: size.Y}, nil
}
