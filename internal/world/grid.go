package world

// GridStage tracks how far generation has progressed on a grid.
type GridStage uint8

const (
	StageEmpty GridStage = iota
	StageTerrain
	StageFeatures
)

func (s GridStage) String() string {
	switch s {
	case StageEmpty:
		return "empty"
	case StageTerrain:
		return "terrain"
	case StageFeatures:
		return "features"
	}
	return "unknown"
}

// Grid is the dense block array of one chunk: ChunkWidth x Height x ChunkWidth.
// Blocks live in a flat slice indexed by x + y*W + z*W*H.
type Grid struct {
	Coord  ChunkCoord
	height int
	stage  GridStage
	blocks []BlockType
}

// NewGrid allocates an all-air grid for the chunk at coord.
func NewGrid(coord ChunkCoord, height int) *Grid {
	if height < 1 {
		height = 1
	}
	return &Grid{
		Coord:  coord,
		height: height,
		blocks: make([]BlockType, ChunkWidth*height*ChunkWidth),
	}
}

// Height returns the grid's vertical size in blocks.
func (g *Grid) Height() int { return g.height }

// Stage returns the generation stage reached so far.
func (g *Grid) Stage() GridStage { return g.stage }

// Volume returns the number of cells in the grid.
func (g *Grid) Volume() int { return len(g.blocks) }

// InBounds reports whether local coordinates address a cell of this grid.
func (g *Grid) InBounds(x, y, z int) bool {
	return x >= 0 && x < ChunkWidth && y >= 0 && y < g.height && z >= 0 && z < ChunkWidth
}

func (g *Grid) index(x, y, z int) int {
	return x + y*ChunkWidth + z*ChunkWidth*g.height
}

// Get returns the block at local coordinates. Out-of-bounds reads return air.
func (g *Grid) Get(x, y, z int) BlockType {
	if !g.InBounds(x, y, z) {
		return BlockTypeAir
	}
	return g.blocks[g.index(x, y, z)]
}

// Set writes a block at local coordinates. Out-of-bounds writes are dropped.
func (g *Grid) Set(x, y, z int, b BlockType) {
	if !g.InBounds(x, y, z) {
		return
	}
	g.blocks[g.index(x, y, z)] = b
}

// IsAir reports whether the cell is air. Cells outside the grid count as air,
// so chunk borders are always treated as open.
func (g *Grid) IsAir(x, y, z int) bool {
	return g.Get(x, y, z) == BlockTypeAir
}

// Fill sets every cell to b.
func (g *Grid) Fill(b BlockType) {
	for i := range g.blocks {
		g.blocks[i] = b
	}
}

// CountSolid returns the number of non-air cells.
func (g *Grid) CountSolid() int {
	n := 0
	for _, b := range g.blocks {
		if b != BlockTypeAir {
			n++
		}
	}
	return n
}
