package world

import "math"

// RandomInt returns a deterministic pseudo-random integer in [1, maxValue] for a
// world column. It is a cheap spatial hash for decoration density, not a source
// of secure randomness. All arithmetic wraps at 32 bits.
func RandomInt(worldX, worldZ, maxValue int) int {
	if maxValue < 1 {
		maxValue = 1
	}
	if maxValue > math.MaxInt32 {
		maxValue = math.MaxInt32
	}

	seed := int32(worldX)*374761393 + int32(worldZ)*668265263
	seed = (seed ^ (seed >> 13)) * 1274126177
	seed ^= seed >> 16

	r := seed % int32(maxValue)
	if r < 0 {
		r = -r
	}
	return int(r) + 1
}
