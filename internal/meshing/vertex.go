package meshing

import (
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is a decoded view of one vertex of a mesh slice.
type Vertex struct {
	Pos   mgl32.Vec3
	UV    mgl32.Vec2
	Face  world.BlockFace
	Block world.BlockType
}

// VertexCount returns the number of vertices stored in a mesh slice.
func VertexCount(vertices []float32) int {
	return len(vertices) / VertexStride
}

// At decodes vertex i of a mesh slice.
func At(vertices []float32, i int) Vertex {
	v := vertices[i*VertexStride : (i+1)*VertexStride]
	return Vertex{
		Pos:   mgl32.Vec3{v[0], v[1], v[2]},
		UV:    mgl32.Vec2{v[3], v[4]},
		Face:  world.BlockFace(v[5]),
		Block: world.BlockType(v[6]),
	}
}

// Bounds returns the axis-aligned box enclosing every vertex. ok is false for an
// empty mesh.
func Bounds(vertices []float32) (minV, maxV mgl32.Vec3, ok bool) {
	n := VertexCount(vertices)
	if n == 0 {
		return minV, maxV, false
	}
	minV = At(vertices, 0).Pos
	maxV = minV
	for i := 1; i < n; i++ {
		p := At(vertices, i).Pos
		for k := 0; k < 3; k++ {
			minV[k] = min(minV[k], p[k])
			maxV[k] = max(maxV[k], p[k])
		}
	}
	return minV, maxV, true
}
