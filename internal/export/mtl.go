package export

import (
	"fmt"
	"image/color"
	"io"

	"mini-voxel/internal/world"
)

var blockColors = map[world.BlockType]color.RGBA{
	world.BlockTypeGrass:   {0x5c, 0xa8, 0x40, 0xff},
	world.BlockTypeDirt:    {0x87, 0x61, 0x3d, 0xff},
	world.BlockTypeStone:   {0x85, 0x85, 0x85, 0xff},
	world.BlockTypeBedrock: {0x33, 0x33, 0x38, 0xff},
	world.BlockTypeLog:     {0x66, 0x4d, 0x2b, 0xff},
	world.BlockTypeLeaves:  {0x38, 0x80, 0x29, 0xff},
}

// BlockColor returns the diffuse colour used for a block type.
func BlockColor(b world.BlockType) color.RGBA {
	if c, ok := blockColors[b]; ok {
		return c
	}
	return color.RGBA{0x7f, 0x7f, 0x7f, 0xff}
}

// MaterialName is the MTL material written for a block type.
func MaterialName(b world.BlockType) string {
	return b.String()
}

// WriteMTL writes one material per visible block type.
func WriteMTL(w io.Writer) error {
	for _, b := range world.BlockTypes() {
		if !b.IsSolid() {
			continue
		}
		c := BlockColor(b)
		_, err := fmt.Fprintf(w, "newmtl %s\nKd %.4f %.4f %.4f\nd %.4f\nillum 1\n\n",
			MaterialName(b),
			float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255,
		)
		if err != nil {
			return fmt.Errorf("write material %s: %w", b, err)
		}
	}
	return nil
}
