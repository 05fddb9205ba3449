package world

import (
	"context"
)

const (
	// dirtDepth is the number of dirt layers directly under the grass.
	dirtDepth = 3

	// treeChance is compared against RandomInt(x, z, treeRoll); a roll below it
	// places a tree (~0.5% of columns).
	treeRoll   = 1000
	treeChance = 6

	minTrunkHeight = 4
	maxTrunkHeight = 7
	leafReach      = 2
)

// Generator fills chunk grids from a noise field plus sparse tree decoration.
// A Generator is immutable and may be shared by any number of goroutines.
type Generator struct {
	noise       *NoiseField
	maxHeight   int
	chunkHeight int
}

// NewGenerator creates a generator. maxHeight is the terrain amplitude in blocks
// and chunkHeight the vertical grid size; both are clamped to sane values.
func NewGenerator(noise *NoiseField, maxHeight, chunkHeight int) *Generator {
	if chunkHeight < 1 {
		chunkHeight = 1
	}
	if maxHeight < 1 {
		maxHeight = 1
	}
	if maxHeight > chunkHeight {
		maxHeight = chunkHeight
	}
	return &Generator{
		noise:       noise,
		maxHeight:   maxHeight,
		chunkHeight: chunkHeight,
	}
}

func (g *Generator) Noise() *NoiseField { return g.noise }
func (g *Generator) MaxHeight() int { return g.maxHeight }
func (g *Generator) ChunkHeight() int { return g.chunkHeight }

// TerrainHeight returns the Y of the grass layer for a world column. Terrain
// occupies the top maxHeight layers of the chunk; the result is always inside
// [0, chunkHeight).
func (g *Generator) TerrainHeight(worldX, worldZ int) int {
	h := int(g.noise.HeightAt(worldX, worldZ) * float64(g.maxHeight))
	y := h + (g.chunkHeight - g.maxHeight)
	if y < 0 {
		return 0
	}
	if y >= g.chunkHeight {
		return g.chunkHeight - 1
	}
	return y
}

// Generate allocates and populates the grid for a chunk.
func (g *Generator) Generate(ctx context.Context, coord ChunkCoord) (*Grid, error) {
	grid := NewGrid(coord, g.chunkHeight)
	if err := g.Populate(ctx, grid); err != nil {
		return nil, err
	}
	return grid, nil
}

// Populate fills grid in two passes: terrain for every column, then features.
// Features run after the whole terrain pass because trees write leaves into
// neighbouring columns, which a later terrain fill would otherwise erase.
// It stops early with ctx.Err() if ctx is cancelled between rows.
func (g *Generator) Populate(ctx context.Context, grid *Grid) error {
	var heights [ChunkWidth][ChunkWidth]int

	for lx := 0; lx < ChunkWidth; lx++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for lz := 0; lz < ChunkWidth; lz++ {
			wx, wz := grid.Coord.LocalToWorld(lx, lz)
			heights[lx][lz] = g.TerrainHeight(wx, wz)
			fillColumn(grid, lx, lz, heights[lx][lz])
		}
	}
	grid.stage = StageTerrain

	for lx := 0; lx < ChunkWidth; lx++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for lz := 0; lz < ChunkWidth; lz++ {
			wx, wz := grid.Coord.LocalToWorld(lx, lz)
			g.decorate(grid, wx, wz, heights[lx][lz])
		}
	}
	grid.stage = StageFeatures
	return nil
}

func fillColumn(grid *Grid, lx, lz, terrainY int) {
	for y := 0; y < grid.height; y++ {
		var b BlockType
		switch {
		case y == terrainY:
			b = BlockTypeGrass
		case y == 0:
			b = BlockTypeBedrock
		case y < terrainY && y >= terrainY-dirtDepth:
			b = BlockTypeDirt
		case y < terrainY-dirtDepth:
			b = BlockTypeStone
		default:
			b = BlockTypeAir
		}
		grid.Set(lx, y, lz, b)
	}
}

// decorate rolls for a tree at the world column and places it when the roll hits.
func (g *Generator) decorate(grid *Grid, worldX, worldZ, terrainY int) {
	if RandomInt(worldX, worldZ, treeRoll) >= treeChance {
		return
	}
	trunk := TrunkHeight(worldX, worldZ)
	_, lx, lz := WorldToLocal(worldX, worldZ)
	PlaceTree(grid, lx, lz, terrainY, trunk)
}

// TrunkHeight returns the trunk height for a tree rooted at a world column.
func TrunkHeight(worldX, worldZ int) int {
	return RandomInt(worldX, worldZ, maxTrunkHeight-minTrunkHeight+1) + minTrunkHeight - 1
}

// PlaceTree writes a trunk of logs standing on (lx, groundY, lz) whose top
// layer, groundY+trunkHeight, is a row of leaves along X centred on the trunk.
// Trees only replace air. Writes outside the grid are dropped, so trees near a
// chunk edge or the ceiling are clipped.
func PlaceTree(grid *Grid, lx, lz, groundY, trunkHeight int) {
	leafY := groundY + trunkHeight
	for y := groundY + 1; y < leafY; y++ {
		if y >= grid.height {
			break
		}
		setIfAir(grid, lx, y, lz, BlockTypeLog)
	}

	if leafY >= grid.height {
		return
	}
	for x := lx - leafReach; x <= lx+leafReach; x++ {
		if x < 0 || x >= ChunkWidth {
			continue
		}
		setIfAir(grid, x, leafY, lz, BlockTypeLeaves)
	}
}

func setIfAir(grid *Grid, x, y, z int, b BlockType) {
	if grid.InBounds(x, y, z) && grid.IsAir(x, y, z) {
		grid.Set(x, y, z, b)
	}
}
