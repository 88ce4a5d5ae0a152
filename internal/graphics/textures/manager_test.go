package textures

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"buildcraft/internal/graphics/gpu/gputest"
	"buildcraft/internal/world"

	"golang.org/x/image/bmp"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestFileName(t *testing.T) {
	got := FileName(world.BlockTypeDirt, world.FaceTop)
	if got != "BlockTexture-1-Dirt-Top.png" {
		t.Fatalf("FileName = %q", got)
	}
}

func TestLoadGeneratesMissingTextures(t *testing.T) {
	rec := gputest.NewRecorder()
	m, err := Load(rec, t.TempDir(), 8)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer m.Close()

	want := len(world.SolidBlockTypes()) * world.FaceCount
	if m.Len() != want {
		t.Fatalf("Len = %d, want %d", m.Len(), want)
	}
	if m.Generated() != want {
		t.Fatalf("Generated = %d, want %d", m.Generated(), want)
	}
	for _, tex := range rec.Textures {
		if tex.Width != 8 || tex.Height != 8 {
			t.Fatalf("texture size %dx%d, want 8x8", tex.Width, tex.Height)
		}
	}
}

func TestResolveIsDistinctPerFace(t *testing.T) {
	rec := gputest.NewRecorder()
	m, err := Load(rec, t.TempDir(), 4)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer m.Close()

	seen := make(map[uint32]bool)
	for _, bt := range world.SolidBlockTypes() {
		for face := range world.BlockFace(world.FaceCount) {
			tex := m.Resolve(bt, face)
			if tex == nil {
				t.Fatalf("Resolve(%s, %s) = nil", bt, face)
			}
			if seen[tex.ID()] {
				t.Fatalf("texture %d resolved twice", tex.ID())
			}
			seen[tex.ID()] = true
		}
	}
	if m.Resolve(world.BlockTypeAir, world.FaceTop) != nil {
		t.Fatal("air should have no texture")
	}
}

func TestLoadReadsFiles(t *testing.T) {
	dir := t.TempDir()
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	writePNG(t, filepath.Join(dir, FileName(world.BlockTypeGrass, world.FaceTop)), src)

	rec := gputest.NewRecorder()
	m, err := Load(rec, dir, 16)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer m.Close()

	want := len(world.SolidBlockTypes())*world.FaceCount - 1
	if m.Generated() != want {
		t.Fatalf("Generated = %d, want %d", m.Generated(), want)
	}
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName(world.BlockTypeDirt, world.FaceBack))
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := gputest.NewRecorder()
	if _, err := Load(rec, dir, 4); err == nil {
		t.Fatal("expected decode error")
	}
	if rec.Live() != 0 {
		t.Fatalf("%d resources leaked after failed load", rec.Live())
	}
}

func TestCloseDeletesTextures(t *testing.T) {
	rec := gputest.NewRecorder()
	m, err := Load(rec, t.TempDir(), 4)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m.Close()
	for _, tex := range rec.Textures {
		if !rec.Deleted(tex.ID()) {
			t.Fatalf("texture %d not deleted", tex.ID())
		}
	}
	if m.Resolve(world.BlockTypeDirt, world.FaceTop) != nil {
		t.Fatal("Resolve after Close should return nil")
	}
}

func TestToRGBAFlipsVertically(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 2))
	top := color.RGBA{R: 255, A: 255}
	bottom := color.RGBA{B: 255, A: 255}
	src.SetRGBA(0, 0, top)
	src.SetRGBA(0, 1, bottom)

	out := ToRGBA(src, 0)
	if out.RGBAAt(0, 0) != bottom || out.RGBAAt(0, 1) != top {
		t.Fatalf("rows not flipped: %v %v", out.RGBAAt(0, 0), out.RGBAAt(0, 1))
	}
}

func TestToRGBAScales(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	out := ToRGBA(src, 16)
	if b := out.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Fatalf("bounds = %v, want 16x16", b)
	}
}

func TestSolidBorder(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	img := Solid(c, 4)
	if img.RGBAAt(1, 1) != c {
		t.Fatalf("center = %v, want %v", img.RGBAAt(1, 1), c)
	}
	if img.RGBAAt(0, 0) == c {
		t.Fatal("border should be darker than the fill")
	}
}

func TestDecodeBMP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stone.bmp")
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.SetRGBA(2, 1, color.RGBA{G: 200, A: 255})

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(f, src); err != nil {
		t.Fatalf("bmp.Encode: %v", err)
	}
	f.Close()

	img, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("bounds = %v, want 3x2", b)
	}
	r, g, _, _ := img.At(2, 1).RGBA()
	if r != 0 || g>>8 != 200 {
		t.Fatalf("pixel = %v", img.At(2, 1))
	}
}
