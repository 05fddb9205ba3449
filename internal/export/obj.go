// Package export writes chunk meshes as Wavefront OBJ with an MTL palette.
package export

import (
	"bufio"
	"fmt"
	"io"

	"mini-voxel/internal/meshing"
	"mini-voxel/internal/world"
)

// quadCorners picks the four distinct corners of a face's six vertices, in
// winding order.
var quadCorners = [4]int{0, 1, 2, 4}

// ObjWriter streams meshes into one OBJ document. Each chunk becomes an
// object; each face becomes a quad. Errors are sticky and reported by Flush.
type ObjWriter struct {
	w        *bufio.Writer
	err      error
	vertices int
	faces    int
	material world.BlockType
}

// NewObjWriter starts an OBJ document. A non-empty mtlLib is referenced with
// mtllib so viewers pick up the materials.
func NewObjWriter(w io.Writer, mtlLib string) *ObjWriter {
	o := &ObjWriter{w: bufio.NewWriterSize(w, 1024*1024), material: world.BlockTypeAir}
	if mtlLib != "" {
		o.printf("mtllib %s\n", mtlLib)
	}
	return o
}

func (o *ObjWriter) printf(format string, args ...any) {
	if o.err != nil {
		return
	}
	_, o.err = fmt.Fprintf(o.w, format, args...)
}

// WriteChunk appends the mesh of one chunk.
func (o *ObjWriter) WriteChunk(coord world.ChunkCoord, vertices []float32) error {
	if len(vertices)%(meshing.VertexStride*meshing.VerticesPerFace) != 0 {
		return fmt.Errorf("chunk %v: mesh length %d is not a whole number of faces", coord, len(vertices))
	}
	o.printf("o chunk_%d_%d\n", coord.X, coord.Z)

	n := meshing.VertexCount(vertices)
	for first := 0; first < n; first += meshing.VerticesPerFace {
		block := meshing.At(vertices, first).Block
		if block != o.material {
			o.printf("usemtl %s\n", MaterialName(block))
			o.material = block
		}
		for _, k := range quadCorners {
			v := meshing.At(vertices, first+k)
			o.printf("v %g %g %g\nvt %g %g\n", v.Pos.X(), v.Pos.Y(), v.Pos.Z(), v.UV.X(), v.UV.Y())
		}
		a := o.vertices + 1
		o.printf("f %d/%d %d/%d %d/%d %d/%d\n", a, a, a+1, a+1, a+2, a+2, a+3, a+3)
		o.vertices += len(quadCorners)
		o.faces++
	}
	return o.err
}

// Flush writes buffered output and returns the first error seen.
func (o *ObjWriter) Flush() error {
	if o.err != nil {
		return o.err
	}
	return o.w.Flush()
}

// Vertices returns the number of OBJ vertices written.
func (o *ObjWriter) Vertices() int { return o.vertices }

// Faces returns the number of quads written.
func (o *ObjWriter) Faces() int { return o.faces }
