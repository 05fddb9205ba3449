package cull

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func lookingDownNegZ() Frustum {
	proj := mgl32.Perspective(mgl32.DegToRad(45), 16.0/9.0, 0.1, 500)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	return FromMatrix(proj.Mul4(view))
}

func TestBoxInFrontIsVisible(t *testing.T) {
	f := lookingDownNegZ()
	assert.True(t, f.Visible(mgl32.Vec3{-8, -8, -40}, mgl32.Vec3{8, 8, -24}))
}

func TestBoxBehindIsCulled(t *testing.T) {
	f := lookingDownNegZ()
	assert.False(t, f.Visible(mgl32.Vec3{-8, -8, 24}, mgl32.Vec3{8, 8, 40}))
}

func TestBoxBeyondFarPlaneIsCulled(t *testing.T) {
	f := lookingDownNegZ()
	assert.False(t, f.Visible(mgl32.Vec3{-8, -8, -900}, mgl32.Vec3{8, 8, -800}))
}

func TestBoxFarToTheSideIsCulled(t *testing.T) {
	f := lookingDownNegZ()
	assert.False(t, f.Visible(mgl32.Vec3{200, -8, -20}, mgl32.Vec3{216, 8, -4}))
}

func TestBoxAroundCameraIsVisible(t *testing.T) {
	f := lookingDownNegZ()
	assert.True(t, f.Visible(mgl32.Vec3{-16, -16, -16}, mgl32.Vec3{16, 16, 16}))
}
