package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGridIsEmpty(t *testing.T) {
	g := NewGrid(ChunkCoord{2, -3}, 32)
	assert.Equal(t, StageEmpty, g.Stage())
	assert.Equal(t, ChunkWidth*32*ChunkWidth, g.Volume())
	assert.Zero(t, g.CountSolid())
}

func TestGridSetGet(t *testing.T) {
	g := NewGrid(ChunkCoord{}, 16)
	g.Set(3, 4, 5, BlockTypeStone)
	assert.Equal(t, BlockTypeStone, g.Get(3, 4, 5))
	assert.False(t, g.IsAir(3, 4, 5))
	assert.True(t, g.IsAir(5, 4, 3))
	assert.Equal(t, 1, g.CountSolid())
}

func TestGridOutOfBoundsIsAir(t *testing.T) {
	g := NewGrid(ChunkCoord{}, 16)
	g.Fill(BlockTypeStone)

	for _, p := range [][3]int{{-1, 0, 0}, {16, 0, 0}, {0, -1, 0}, {0, 16, 0}, {0, 0, -1}, {0, 0, 16}} {
		assert.True(t, g.IsAir(p[0], p[1], p[2]), "cell %v", p)
		g.Set(p[0], p[1], p[2], BlockTypeLog) // dropped
	}
	assert.Equal(t, g.Volume(), g.CountSolid())
}

func TestGridIndexLayout(t *testing.T) {
	g := NewGrid(ChunkCoord{}, 8)
	g.Set(1, 0, 0, BlockTypeDirt)
	g.Set(0, 1, 0, BlockTypeGrass)
	g.Set(0, 0, 1, BlockTypeLog)

	assert.Equal(t, BlockTypeDirt, g.blocks[1])
	assert.Equal(t, BlockTypeGrass, g.blocks[ChunkWidth])
	assert.Equal(t, BlockTypeLog, g.blocks[ChunkWidth*8])
}
