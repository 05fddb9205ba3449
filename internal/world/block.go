package world

type BlockType uint8

const (
	BlockTypeAir BlockType = iota
	BlockTypeGrass
	BlockTypeDirt
	BlockTypeStone
	BlockTypeBedrock
	BlockTypeLog
	BlockTypeLeaves

	blockTypeCount
)

var blockNames = [blockTypeCount]string{
	BlockTypeAir:     "air",
	BlockTypeGrass:   "grass",
	BlockTypeDirt:    "dirt",
	BlockTypeStone:   "stone",
	BlockTypeBedrock: "bedrock",
	BlockTypeLog:     "log",
	BlockTypeLeaves:  "leaves",
}

func (b BlockType) String() string {
	if b < blockTypeCount {
		return blockNames[b]
	}
	return "unknown"
}

// IsSolid reports whether the block carries visible geometry.
func (b BlockType) IsSolid() bool {
	return b != BlockTypeAir
}

// BlockTypes lists every block type in id order.
func BlockTypes() []BlockType {
	out := make([]BlockType, 0, blockTypeCount)
	for b := BlockType(0); b < blockTypeCount; b++ {
		out = append(out, b)
	}
	return out
}

// BlockFace identifies a face of a block. The numeric values are written into
// every mesh vertex and read back by the shader, so the order must not change.
type BlockFace uint8

const (
	FaceTop BlockFace = iota
	FaceBottom
	FaceFront // +Z
	FaceBack  // -Z
	FaceLeft  // -X
	FaceRight // +X

	FaceCount = 6
)

// Normal returns the unit offset toward the neighbour this face looks at.
func (f BlockFace) Normal() (dx, dy, dz int) {
	switch f {
	case FaceTop:
		return 0, 1, 0
	case FaceBottom:
		return 0, -1, 0
	case FaceFront:
		return 0, 0, 1
	case FaceBack:
		return 0, 0, -1
	case FaceLeft:
		return -1, 0, 0
	case FaceRight:
		return 1, 0, 0
	}
	return 0, 0, 0
}

func (f BlockFace) String() string {
	switch f {
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	case FaceFront:
		return "front"
	case FaceBack:
		return "back"
	case FaceLeft:
		return "left"
	case FaceRight:
		return "right"
	}
	return "unknown"
}
