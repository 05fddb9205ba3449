package world

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkWidth is the size of a chunk along X and Z in blocks.
const ChunkWidth = 16

// ChunkCoord identifies a chunk column on the XZ plane.
type ChunkCoord struct {
	X, Z int
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Z)
}

// Origin returns the world-space block coordinates of the chunk's (0,0) local column.
func (c ChunkCoord) Origin() (x, z int) {
	return c.X * ChunkWidth, c.Z * ChunkWidth
}

// LocalToWorld converts local block coordinates inside this chunk to world coordinates.
// Y is shared between both spaces.
func (c ChunkCoord) LocalToWorld(lx, lz int) (wx, wz int) {
	ox, oz := c.Origin()
	return ox + lx, oz + lz
}

// ChebyshevDistance returns max(|dx|, |dz|) between two chunk coordinates.
func (c ChunkCoord) ChebyshevDistance(o ChunkCoord) int {
	return max(abs(c.X-o.X), abs(c.Z-o.Z))
}

// ChunkCoordOf returns the chunk that contains the given world block column.
func ChunkCoordOf(wx, wz int) ChunkCoord {
	return ChunkCoord{X: floorDiv(wx, ChunkWidth), Z: floorDiv(wz, ChunkWidth)}
}

// ChunkCoordFromPosition floors a continuous world position to its chunk coordinate.
// Only X and Z are used.
func ChunkCoordFromPosition(pos mgl32.Vec3) ChunkCoord {
	x := int(math.Floor(float64(pos.X()) / ChunkWidth))
	z := int(math.Floor(float64(pos.Z()) / ChunkWidth))
	return ChunkCoord{X: x, Z: z}
}

// WorldToLocal splits a world block column into its chunk and local coordinates.
func WorldToLocal(wx, wz int) (ChunkCoord, int, int) {
	return ChunkCoordOf(wx, wz), mod(wx, ChunkWidth), mod(wz, ChunkWidth)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
