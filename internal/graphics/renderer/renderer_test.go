package renderer_test

import (
	"errors"
	"slices"
	"testing"

	"buildcraft/internal/graphics/camera"
	"buildcraft/internal/graphics/gpu"
	"buildcraft/internal/graphics/gpu/gputest"
	"buildcraft/internal/graphics/renderables/chunks"
	"buildcraft/internal/graphics/renderables/cubes"
	"buildcraft/internal/graphics/renderer"
	"buildcraft/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

type blockTextures map[world.BlockType]gpu.Texture

func (b blockTextures) Resolve(t world.BlockType, _ world.BlockFace) gpu.Texture {
	return b[t]
}

var viewer = camera.LookAt(mgl32.Vec3{8, 20, 40}, mgl32.Vec3{8, 0, 8})

type setup struct {
	rec  *gputest.Recorder
	proj *camera.Projection
	r    *renderer.Renderer
}

func newSetup(t *testing.T, maxQuads int) *setup {
	t.Helper()
	rec := gputest.NewRecorder()
	textures := blockTextures{
		world.BlockTypeDirt:  rec.NewTexture(),
		world.BlockTypeGrass: rec.NewTexture(),
	}
	proj := camera.NewProjection(800, 600, 45, 0.1, 100)

	opts := chunks.DefaultOptions()
	opts.MaxQuads = maxQuads
	batched, err := chunks.New(rec, textures, proj, opts)
	if err != nil {
		t.Fatalf("chunks.New: %v", err)
	}
	immediate, err := cubes.New(rec, textures, proj, opts.ClearColor)
	if err != nil {
		t.Fatalf("cubes.New: %v", err)
	}
	r, err := renderer.NewRenderer(rec, proj, batched, immediate)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return &setup{rec: rec, proj: proj, r: r}
}

func flatWorld(height, radius int) *world.World {
	w := world.New(world.NewFlatGenerator(height))
	w.EnsureRadius(world.ChunkCoord{}, radius)
	return w
}

func TestRenderWorldBatched(t *testing.T) {
	s := newSetup(t, 10000)
	w := flatWorld(2, 0)

	if err := s.r.RenderWorld(w, world.ChunkCoord{}, 0, viewer); err != nil {
		t.Fatalf("RenderWorld: %v", err)
	}

	const quads = 16 * 16 * 2 * world.FaceCount
	stats := s.r.Stats()
	if stats.Quads != quads {
		t.Errorf("Quads = %d, want %d", stats.Quads, quads)
	}
	if stats.DrawCalls != 1 {
		t.Errorf("DrawCalls = %d, want 1", stats.DrawCalls)
	}
	if got := s.rec.TotalIndices(); got != quads*6 {
		t.Errorf("indices drawn = %d, want %d", got, quads*6)
	}
}

func TestStrategiesDrawSameQuads(t *testing.T) {
	s := newSetup(t, 1000)
	w := flatWorld(1, 1)

	if err := s.r.RenderWorld(w, world.ChunkCoord{}, 1, viewer); err != nil {
		t.Fatalf("batched: %v", err)
	}
	batched := s.r.Stats()

	if !s.r.SetStrategy(cubes.Name) {
		t.Fatal("SetStrategy(immediate) = false")
	}
	if err := s.r.RenderWorld(w, world.ChunkCoord{}, 1, viewer); err != nil {
		t.Fatalf("immediate: %v", err)
	}
	immediate := s.r.Stats()

	if batched.Quads != immediate.Quads {
		t.Fatalf("quads differ: batched %d, immediate %d", batched.Quads, immediate.Quads)
	}
	if immediate.DrawCalls != immediate.Quads {
		t.Errorf("immediate DrawCalls = %d, want one per quad (%d)", immediate.DrawCalls, immediate.Quads)
	}
	if batched.DrawCalls >= immediate.DrawCalls {
		t.Errorf("batched DrawCalls = %d, want fewer than %d", batched.DrawCalls, immediate.DrawCalls)
	}
}

func TestRenderWorldReportsDeviceError(t *testing.T) {
	s := newSetup(t, 100)
	w := flatWorld(1, 0)

	boom := errors.New("context lost")
	s.rec.OnDraw = func(n int) error {
		if n == 2 {
			return boom
		}
		return nil
	}

	err := s.r.RenderWorld(w, world.ChunkCoord{}, 0, viewer)
	if !errors.Is(err, boom) {
		t.Fatalf("RenderWorld err = %v, want %v", err, boom)
	}

	// The next frame starts clean.
	s.rec.OnDraw = nil
	if err := s.r.RenderWorld(w, world.ChunkCoord{}, 0, viewer); err != nil {
		t.Fatalf("frame after error: %v", err)
	}
}

func TestSetStrategyUnknown(t *testing.T) {
	s := newSetup(t, 100)
	if s.r.SetStrategy("deferred") {
		t.Fatal("SetStrategy(deferred) = true")
	}
	if s.r.Active().Name() != chunks.Name {
		t.Fatalf("active = %s, want %s", s.r.Active().Name(), chunks.Name)
	}
	if got := s.r.Strategies(); !slices.Equal(got, []string{chunks.Name, cubes.Name}) {
		t.Fatalf("Strategies = %v", got)
	}
}

func TestUpdateViewport(t *testing.T) {
	s := newSetup(t, 100)

	s.r.UpdateViewport(1000, 500)
	if s.proj.AspectRatio != 2 {
		t.Errorf("aspect = %v, want 2", s.proj.AspectRatio)
	}
	if s.rec.Viewport != [2]int{1000, 500} {
		t.Errorf("viewport = %v", s.rec.Viewport)
	}

	s.r.UpdateViewport(0, 0)
	if s.proj.AspectRatio != 2 || s.rec.Viewport != [2]int{1000, 500} {
		t.Error("minimized window changed the viewport")
	}
}

func TestCloseReleasesEverything(t *testing.T) {
	s := newSetup(t, 100)
	textures := 2
	if err := s.r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.r.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if live := s.rec.Live(); live != textures {
		t.Fatalf("%d objects alive after Close, want only the %d textures", live, textures)
	}
}

type fakeStrategy struct {
	name   string
	closed *[]string
}

func (f fakeStrategy) Name() string                                            { return f.name }
func (f fakeStrategy) BeginScene(camera.Viewer)                                {}
func (f fakeStrategy) EmitFace(mgl32.Vec3, world.BlockFace, gpu.Texture) error { return nil }
func (f fakeStrategy) EmitBlock(mgl32.Vec3, world.BlockType) error             { return nil }
func (f fakeStrategy) EmitChunk(*world.Chunk) error                            { return nil }
func (f fakeStrategy) EndScene() error                                         { return nil }
func (f fakeStrategy) Stats() renderer.FrameStats                              { return renderer.FrameStats{} }

func (f fakeStrategy) Close() error {
	*f.closed = append(*f.closed, f.name)
	return nil
}

func TestNewRendererValidates(t *testing.T) {
	rec := gputest.NewRecorder()
	proj := camera.NewProjection(1, 1, 45, 0.1, 10)
	if _, err := renderer.NewRenderer(rec, proj); err == nil {
		t.Error("expected error without strategies")
	}
	var closed []string
	a := fakeStrategy{name: "a", closed: &closed}
	if _, err := renderer.NewRenderer(rec, proj, a, a); err == nil {
		t.Error("expected error for duplicate names")
	}
}

func TestCloseOrder(t *testing.T) {
	var closed []string
	r, err := renderer.NewRenderer(gputest.NewRecorder(), camera.NewProjection(1, 1, 45, 0.1, 10),
		fakeStrategy{name: "a", closed: &closed},
		fakeStrategy{name: "b", closed: &closed})
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !slices.Equal(closed, []string{"b", "a"}) {
		t.Fatalf("close order = %v, want [b a]", closed)
	}
}
