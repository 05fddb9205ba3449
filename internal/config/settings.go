package config

import (
	"fmt"
	"math"
)

// Limits applied by Clamp.
const (
	MinNoiseScale     = 0.01
	MaxNoiseScale     = 1.0
	MinMaxHeight      = 1
	MinChunkHeight    = 16
	MaxChunkHeight    = 64
	MinRenderDistance = 1
	MaxRenderDistance = 30

	// NoiseScaleStep is the increment used by the runtime controls.
	NoiseScaleStep = 0.01
)

// WorldSettings are the parameters that shape the streamed world. Any change
// to them invalidates every built chunk.
type WorldSettings struct {
	Seed           int64   `yaml:"seed"`
	NoiseScale     float64 `yaml:"noise_scale"`
	MaxHeight      int     `yaml:"max_height"`
	ChunkHeight    int     `yaml:"chunk_height"`
	RenderDistance int     `yaml:"render_distance"`
}

// DefaultWorldSettings returns the stock world.
func DefaultWorldSettings() WorldSettings {
	return WorldSettings{
		Seed:           0,
		NoiseScale:     0.05,
		MaxHeight:      20,
		ChunkHeight:    32,
		RenderDistance: 5,
	}
}

// Clamp returns s with every field forced into its valid range, plus one
// human-readable note per adjusted field. Generation never sees unclamped values.
func (s WorldSettings) Clamp() (WorldSettings, []string) {
	var notes []string
	adjust := func(name string, from, to any) {
		notes = append(notes, fmt.Sprintf("%s %v out of range, using %v", name, from, to))
	}

	out := s
	if math.IsNaN(out.NoiseScale) {
		adjust("noise_scale", out.NoiseScale, DefaultWorldSettings().NoiseScale)
		out.NoiseScale = DefaultWorldSettings().NoiseScale
	}
	if v := min(max(out.NoiseScale, MinNoiseScale), MaxNoiseScale); v != out.NoiseScale {
		adjust("noise_scale", out.NoiseScale, v)
		out.NoiseScale = v
	}
	if v := min(max(out.ChunkHeight, MinChunkHeight), MaxChunkHeight); v != out.ChunkHeight {
		adjust("chunk_height", out.ChunkHeight, v)
		out.ChunkHeight = v
	}
	if v := min(max(out.MaxHeight, MinMaxHeight), out.ChunkHeight); v != out.MaxHeight {
		adjust("max_height", out.MaxHeight, v)
		out.MaxHeight = v
	}
	if v := min(max(out.RenderDistance, MinRenderDistance), MaxRenderDistance); v != out.RenderDistance {
		adjust("render_distance", out.RenderDistance, v)
		out.RenderDistance = v
	}
	return out, notes
}

// Window returns the side length of the square chunk window, 2*r+1.
func (s WorldSettings) Window() int {
	return 2*s.RenderDistance + 1
}
