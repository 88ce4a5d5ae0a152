package main

import (
	"testing"

	"buildcraft/internal/config"
	"buildcraft/internal/world"
)

func TestNewGeneratorFlat(t *testing.T) {
	cfg := config.Default().World
	cfg.FillHeight = 4
	cfg.FillBlock = "cobblestone"
	cfg.SurfaceBlock = "Grass"

	gen, err := newGenerator(cfg)
	if err != nil {
		t.Fatalf("newGenerator: %v", err)
	}
	c := world.NewChunk(0, 0)
	gen.PopulateChunk(c)
	if got := c.GetBlock(3, 0, 3); got != world.BlockTypeCobblestone {
		t.Errorf("fill = %s, want Cobblestone", got)
	}
	if got := c.GetBlock(3, 3, 3); got != world.BlockTypeGrass {
		t.Errorf("surface = %s, want Grass", got)
	}
	if got := c.GetBlock(3, 4, 3); got != world.BlockTypeAir {
		t.Errorf("above surface = %s, want Air", got)
	}
}

func TestNewGeneratorHills(t *testing.T) {
	cfg := config.Default().World
	cfg.Generator = config.GeneratorHills
	cfg.Seed = 7

	gen, err := newGenerator(cfg)
	if err != nil {
		t.Fatalf("newGenerator: %v", err)
	}
	if _, ok := gen.(*world.HillsGenerator); !ok {
		t.Fatalf("generator = %T, want *world.HillsGenerator", gen)
	}
}

func TestNewGeneratorRejectsUnknownNames(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.WorldConfig)
	}{
		{"generator", func(c *config.WorldConfig) { c.Generator = "caves" }},
		{"fill block", func(c *config.WorldConfig) { c.FillBlock = "lava" }},
		{"surface block", func(c *config.WorldConfig) { c.SurfaceBlock = "snow" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default().World
			tt.mutate(&cfg)
			if _, err := newGenerator(cfg); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
