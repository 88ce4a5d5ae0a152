package gpu_test

import (
	"testing"

	"buildcraft/internal/graphics/gpu"
	"buildcraft/internal/graphics/gpu/gputest"
)

func TestMissingTexture(t *testing.T) {
	var typedNil *gputest.Texture
	if !gpu.Missing(nil) {
		t.Error("nil interface should be missing")
	}
	if !gpu.Missing(typedNil) {
		t.Error("nil *gputest.Texture should be missing")
	}
	if gpu.Missing(gputest.NewRecorder().NewTexture()) {
		t.Error("created texture reported missing")
	}
}
