// Package textures loads block textures and maps block faces to them.
package textures

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Decode reads a png, bmp or webp image from path.
func Decode(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// ToRGBA scales img to size x size with nearest-neighbor sampling, keeping
// the pixel look of block art, and flips it vertically so row 0 is the
// bottom row as OpenGL expects. A size of zero keeps the source size.
func ToRGBA(img image.Image, size int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if size > 0 {
		w, h = size, size
	}
	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, b, draw.Src, nil)

	flipped := image.NewRGBA(scaled.Bounds())
	stride := scaled.Stride
	for y := range h {
		copy(flipped.Pix[y*stride:(y+1)*stride], scaled.Pix[(h-1-y)*stride:(h-y)*stride])
	}
	return flipped
}

// Solid returns a size x size texture of one color with a darker one pixel
// border so block edges stay visible.
func Solid(c color.RGBA, size int) *image.RGBA {
	size = max(size, 1)
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	edge := color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: c.A}
	for y := range size {
		for x := range size {
			if size > 2 && (x == 0 || y == 0 || x == size-1 || y == size-1) {
				img.SetRGBA(x, y, edge)
			} else {
				img.SetRGBA(x, y, c)
			}
		}
	}
	return img
}
