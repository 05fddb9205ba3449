// Package cull tests chunk bounding boxes against the camera frustum.
package cull

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Margin inflates every box before testing, in blocks.
const Margin float32 = 1.0

type plane struct {
	a, b, c, d float32
}

// Frustum holds the six clip planes of a projection*view matrix, in the order
// left, right, bottom, top, near, far. Normals point inward.
type Frustum struct {
	planes [6]plane
}

// FromMatrix extracts the frustum of clip = projection * view.
func FromMatrix(clip mgl32.Mat4) Frustum {
	row := func(i int) plane {
		// mgl32 matrices are column-major.
		return plane{clip[i], clip[4+i], clip[8+i], clip[12+i]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)
	add := func(p, q plane) plane { return normalize(plane{p.a + q.a, p.b + q.b, p.c + q.c, p.d + q.d}) }
	sub := func(p, q plane) plane { return normalize(plane{p.a - q.a, p.b - q.b, p.c - q.c, p.d - q.d}) }

	return Frustum{planes: [6]plane{
		add(r3, r0),
		sub(r3, r0),
		add(r3, r1),
		sub(r3, r1),
		add(r3, r2),
		sub(r3, r2),
	}}
}

func normalize(p plane) plane {
	l := float32(math.Sqrt(float64(p.a*p.a + p.b*p.b + p.c*p.c)))
	if l == 0 {
		return p
	}
	return plane{p.a / l, p.b / l, p.c / l, p.d / l}
}

// Visible reports whether the box [minV, maxV], inflated by Margin, touches
// the frustum. It may report false positives near corners, never false negatives.
func (f Frustum) Visible(minV, maxV mgl32.Vec3) bool {
	m := mgl32.Vec3{Margin, Margin, Margin}
	minV, maxV = minV.Sub(m), maxV.Add(m)
	for _, p := range f.planes {
		// Farthest corner along the plane normal.
		px, py, pz := maxV.X(), maxV.Y(), maxV.Z()
		if p.a < 0 {
			px = minV.X()
		}
		if p.b < 0 {
			py = minV.Y()
		}
		if p.c < 0 {
			pz = minV.Z()
		}
		if p.a*px+p.b*py+p.c*pz+p.d < 0 {
			return false
		}
	}
	return true
}
