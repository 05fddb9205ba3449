package meshing

import (
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"
)

// VertexStride is the number of float32 per vertex: pos.xyz, uv, face, block.
const VertexStride = 7

// VerticesPerFace is two triangles per exposed face.
const VerticesPerFace = 6

// Corner offsets for each face, indexed by world.BlockFace. Each row is two
// counter-clockwise triangles seen from outside the block.
var faceCorners = [world.FaceCount][VerticesPerFace][3]float32{
	world.FaceTop:    {{1, 1, 0}, {0, 1, 0}, {0, 1, 1}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}},
	world.FaceBottom: {{1, 0, 0}, {1, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 0}, {1, 0, 0}},
	world.FaceFront:  {{1, 1, 1}, {0, 1, 1}, {0, 0, 1}, {0, 0, 1}, {1, 0, 1}, {1, 1, 1}},
	world.FaceBack:   {{0, 1, 0}, {1, 1, 0}, {1, 0, 0}, {1, 0, 0}, {0, 0, 0}, {0, 1, 0}},
	world.FaceLeft:   {{0, 1, 1}, {0, 1, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 1}, {0, 1, 1}},
	world.FaceRight:  {{1, 1, 0}, {1, 1, 1}, {1, 0, 1}, {1, 0, 1}, {1, 0, 0}, {1, 1, 0}},
}

// faceUV is shared by every face.
var faceUV = [VerticesPerFace][2]float32{
	{1, 1}, {0, 1}, {0, 0}, {0, 0}, {1, 0}, {1, 1},
}

// faceOrder is the order neighbours are tested for each block.
var faceOrder = [world.FaceCount]world.BlockFace{
	world.FaceTop,
	world.FaceBottom,
	world.FaceRight,
	world.FaceLeft,
	world.FaceFront,
	world.FaceBack,
}

// BuildMesh converts a grid into a flat triangle list, emitting only faces that
// touch air. Cells outside the grid count as air: neighbouring chunks are never
// consulted, so faces on the chunk border are always emitted.
// Vertex positions are in world space. An all-air grid yields an empty slice.
func BuildMesh(g *world.Grid) []float32 {
	defer profiling.Track("meshing.BuildMesh")()

	faces := CountFaces(g)
	vertices := make([]float32, 0, faces*VerticesPerFace*VertexStride)
	if faces == 0 {
		return vertices
	}

	baseX, baseZ := g.Coord.Origin()
	for x := 0; x < world.ChunkWidth; x++ {
		for y := 0; y < g.Height(); y++ {
			for z := 0; z < world.ChunkWidth; z++ {
				bt := g.Get(x, y, z)
				if bt == world.BlockTypeAir {
					continue
				}
				for _, face := range faceOrder {
					dx, dy, dz := face.Normal()
					if !g.IsAir(x+dx, y+dy, z+dz) {
						continue
					}
					vertices = appendFace(vertices, face, float32(baseX+x), float32(y), float32(baseZ+z), bt)
				}
			}
		}
	}
	return vertices
}

// CountFaces returns the number of faces BuildMesh would emit for g.
func CountFaces(g *world.Grid) int {
	n := 0
	for x := 0; x < world.ChunkWidth; x++ {
		for y := 0; y < g.Height(); y++ {
			for z := 0; z < world.ChunkWidth; z++ {
				if g.IsAir(x, y, z) {
					continue
				}
				for _, face := range faceOrder {
					dx, dy, dz := face.Normal()
					if g.IsAir(x+dx, y+dy, z+dz) {
						n++
					}
				}
			}
		}
	}
	return n
}

func appendFace(dst []float32, face world.BlockFace, x, y, z float32, bt world.BlockType) []float32 {
	corners := &faceCorners[face]
	for i := 0; i < VerticesPerFace; i++ {
		c := corners[i]
		uv := faceUV[i]
		dst = append(dst,
			c[0]+x, c[1]+y, c[2]+z,
			uv[0], uv[1],
			float32(face),
			float32(bt),
		)
	}
	return dst
}
