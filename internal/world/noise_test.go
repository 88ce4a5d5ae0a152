package world

import "testing"

func TestOctaveNoiseRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		x := float64(i) * 0.37
		z := float64(i) * -0.53
		v := octaveNoise2D(x, z, 1234, 4, 0.5, 2.0)
		if v < 0 || v > 1 {
			t.Fatalf("noise(%v,%v) = %v, outside [0,1]", x, z, v)
		}
	}
}

func TestValueNoiseMatchesLattice(t *testing.T) {
	// At integer coordinates the interpolation weights are zero.
	for x := int64(-3); x <= 3; x++ {
		for z := int64(-3); z <= 3; z++ {
			want := latticeValue(x, z, 9)
			if got := valueNoise2D(float64(x), float64(z), 9); got != want {
				t.Errorf("noise(%d,%d) = %v, want %v", x, z, got, want)
			}
		}
	}
}

func TestHash2Distinct(t *testing.T) {
	if hash2(1, 2, 0) == hash2(2, 1, 0) {
		t.Error("hash2 should not be symmetric in x and z")
	}
	if hash2(1, 1, 1) == hash2(1, 1, 2) {
		t.Error("hash2 should depend on the seed")
	}
}

func TestOctaveNoiseZeroOctaves(t *testing.T) {
	if v := octaveNoise2D(1, 1, 0, 0, 0.5, 2); v != 0 {
		t.Fatalf("zero octaves = %v, want 0", v)
	}
}
