package world

import (
	"github.com/aquilax/go-perlin"
)

// Perlin parameters: alpha is the per-octave amplitude divisor, beta the
// per-octave frequency multiplier. A single octave keeps Sample inside [-1,1],
// so HeightAt never has to clip peaks.
const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = int32(1)
)

// NoiseField is a deterministic 2D height function over world coordinates. It
// samples 3D gradient noise on the z=0 slice. The permutation tables are built
// once and only read afterwards, so a field is safe for concurrent use.
type NoiseField struct {
	seed  int64
	scale float64
	p     *perlin.Perlin
}

// NewNoiseField creates a field for the given seed and horizontal scale.
// Smaller scale gives smoother, lower-frequency terrain.
func NewNoiseField(seed int64, scale float64) *NoiseField {
	return &NoiseField{
		seed:  seed,
		scale: scale,
		p:     perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed),
	}
}

func (n *NoiseField) Seed() int64 { return n.seed }
func (n *NoiseField) Scale() float64 { return n.scale }

// Sample returns the raw noise value at (worldX*scale, worldZ*scale, 0),
// nominally in [-1,1].
func (n *NoiseField) Sample(worldX, worldZ int) float64 {
	return n.p.Noise3D(float64(worldX)*n.scale, float64(worldZ)*n.scale, 0)
}

// HeightAt returns the normalized height in [0,1] for a world column.
func (n *NoiseField) HeightAt(worldX, worldZ int) float64 {
	h := (n.Sample(worldX, worldZ) + 1) / 2
	if h < 0 {
		return 0
	}
	if h > 1 {
		return 1
	}
	return h
}
