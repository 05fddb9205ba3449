package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkCoordOfFloorsNegatives(t *testing.T) {
	cases := []struct {
		wx, wz int
		want   ChunkCoord
	}{
		{0, 0, ChunkCoord{0, 0}},
		{15, 15, ChunkCoord{0, 0}},
		{16, 0, ChunkCoord{1, 0}},
		{-1, -1, ChunkCoord{-1, -1}},
		{-16, -17, ChunkCoord{-1, -2}},
		{-17, 31, ChunkCoord{-2, 1}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ChunkCoordOf(tc.wx, tc.wz), "world (%d,%d)", tc.wx, tc.wz)
	}
}

func TestChunkCoordFromPosition(t *testing.T) {
	assert.Equal(t, ChunkCoord{0, 0}, ChunkCoordFromPosition(mgl32.Vec3{0.5, 100, 15.9}))
	assert.Equal(t, ChunkCoord{-1, 0}, ChunkCoordFromPosition(mgl32.Vec3{-0.1, 0, 3}))
	assert.Equal(t, ChunkCoord{1, -2}, ChunkCoordFromPosition(mgl32.Vec3{16, 0, -17}))
}

// Every local cell maps to a distinct world cell, and mapping back recovers the
// chunk and local coordinates.
func TestLocalWorldBijection(t *testing.T) {
	const height = 32
	for _, c := range []ChunkCoord{{0, 0}, {3, -7}, {-1, -1}, {-12, 5}} {
		seen := make(map[[3]int]struct{}, ChunkWidth*height*ChunkWidth)
		for lx := 0; lx < ChunkWidth; lx++ {
			for lz := 0; lz < ChunkWidth; lz++ {
				wx, wz := c.LocalToWorld(lx, lz)
				back, bx, bz := WorldToLocal(wx, wz)
				require.Equal(t, c, back)
				require.Equal(t, lx, bx)
				require.Equal(t, lz, bz)
				for y := 0; y < height; y++ {
					seen[[3]int{wx, y, wz}] = struct{}{}
				}
			}
		}
		assert.Len(t, seen, ChunkWidth*height*ChunkWidth, "chunk %v", c)
	}
}

func TestChebyshevDistance(t *testing.T) {
	a := ChunkCoord{1, 1}
	assert.Equal(t, 0, a.ChebyshevDistance(a))
	assert.Equal(t, 3, a.ChebyshevDistance(ChunkCoord{-2, 2}))
	assert.Equal(t, 4, a.ChebyshevDistance(ChunkCoord{2, 5}))
}
