package meshing

import (
	"context"
	"testing"

	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyGridMesh(t *testing.T) {
	g := world.NewGrid(world.ChunkCoord{}, 32)
	verts := BuildMesh(g)
	assert.Empty(t, verts)
	assert.Zero(t, CountFaces(g))
}

func TestSingleBlockMesh(t *testing.T) {
	g := world.NewGrid(world.ChunkCoord{}, 32)
	g.Set(8, 10, 8, world.BlockTypeStone)

	verts := BuildMesh(g)
	require.Len(t, verts, 36*VertexStride, "6 faces x 6 vertices")
	assert.Equal(t, 36, VertexCount(verts))

	faces := make(map[world.BlockFace]int)
	for i := 0; i < VertexCount(verts); i++ {
		v := At(verts, i)
		assert.Equal(t, world.BlockTypeStone, v.Block)
		faces[v.Face]++
	}
	for f := world.BlockFace(0); f < world.BlockFace(world.FaceCount); f++ {
		assert.Equal(t, VerticesPerFace, faces[f], "face %v", f)
	}
}

func TestTwoTouchingBlocksCullSharedFaces(t *testing.T) {
	g := world.NewGrid(world.ChunkCoord{}, 32)
	g.Set(4, 4, 4, world.BlockTypeDirt)
	g.Set(5, 4, 4, world.BlockTypeDirt)

	// 12 faces minus the two touching ones.
	assert.Equal(t, 10, CountFaces(g))
	assert.Len(t, BuildMesh(g), 10*VerticesPerFace*VertexStride)
}

func TestFullySolidChunkEmitsOnlyBoundary(t *testing.T) {
	for _, h := range []int{16, 32} {
		g := world.NewGrid(world.ChunkCoord{X: -2, Z: 3}, h)
		g.Fill(world.BlockTypeStone)

		wantFaces := 2*(world.ChunkWidth*world.ChunkWidth) + 4*(world.ChunkWidth*h)
		verts := BuildMesh(g)
		assert.Equal(t, wantFaces*VerticesPerFace, VertexCount(verts), "height %d", h)
	}
}

func TestBlockOnChunkEdgeIsOpen(t *testing.T) {
	g := world.NewGrid(world.ChunkCoord{}, 16)
	g.Set(0, 0, 0, world.BlockTypeBedrock)
	assert.Equal(t, 6, CountFaces(g))
}

func TestMeshIdempotent(t *testing.T) {
	gen := world.NewGenerator(world.NewNoiseField(1337, 0.05), 20, 32)
	g, err := gen.Generate(context.Background(), world.ChunkCoord{X: 1, Z: -1})
	require.NoError(t, err)

	a := BuildMesh(g)
	b := BuildMesh(g)
	require.NotEmpty(t, a)
	assert.Equal(t, a, b)
	assert.Equal(t, CountFaces(g)*VerticesPerFace, VertexCount(a))
}

func TestMeshPositionsInWorldSpace(t *testing.T) {
	coord := world.ChunkCoord{X: 2, Z: -1}
	g := world.NewGrid(coord, 16)
	g.Set(3, 5, 7, world.BlockTypeLog)

	minV, maxV, ok := Bounds(BuildMesh(g))
	require.True(t, ok)
	ox, oz := coord.Origin()
	assert.Equal(t, mgl32.Vec3{float32(ox + 3), 5, float32(oz + 7)}, minV)
	assert.Equal(t, mgl32.Vec3{float32(ox + 4), 6, float32(oz + 8)}, maxV)
}

func TestFaceCornersLieOnFacePlane(t *testing.T) {
	for f := world.BlockFace(0); f < world.BlockFace(world.FaceCount); f++ {
		dx, dy, dz := f.Normal()
		normal := [3]int{dx, dy, dz}
		for _, c := range faceCorners[f] {
			for axis, n := range normal {
				switch n {
				case 1:
					assert.Equal(t, float32(1), c[axis], "face %v", f)
				case -1:
					assert.Equal(t, float32(0), c[axis], "face %v", f)
				}
			}
		}
	}
}

// Triangles wind counter-clockwise when viewed from outside, so their
// geometric normal points along the face normal.
func TestFaceWindingFacesOutward(t *testing.T) {
	for f := world.BlockFace(0); f < world.BlockFace(world.FaceCount); f++ {
		dx, dy, dz := f.Normal()
		want := mgl32.Vec3{float32(dx), float32(dy), float32(dz)}
		corners := faceCorners[f]
		for tri := 0; tri < VerticesPerFace; tri += 3 {
			a := mgl32.Vec3(corners[tri])
			b := mgl32.Vec3(corners[tri+1])
			c := mgl32.Vec3(corners[tri+2])
			n := b.Sub(a).Cross(c.Sub(a)).Normalize()
			assert.True(t, n.ApproxEqual(want), "face %v triangle %d normal %v", f, tri/3, n)
		}
	}
}

func BenchmarkBuildMesh(b *testing.B) {
	gen := world.NewGenerator(world.NewNoiseField(1337, 0.05), 20, 32)
	g, err := gen.Generate(context.Background(), world.ChunkCoord{})
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = BuildMesh(g)
	}
}
