// Package preview renders the noise field as a coloured terrain map, either
// as ANSI blocks for a terminal or as an image.
package preview

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"mini-voxel/internal/world"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const ansiReset = "\033[0m"

// Band is one elevation class. A level belongs to the first band whose Min
// it reaches.
type Band struct {
	Name  string
	Min   float64
	ANSI  string
	Color color.RGBA
}

// Bands is ordered from highest to lowest. Levels are in [0, 10).
var Bands = []Band{
	{"snow", 9, "\033[37m", color.RGBA{0xf2, 0xf2, 0xf2, 0xff}},
	{"extreme", 8, "\033[38;5;52m", color.RGBA{0x5f, 0x00, 0x00, 0xff}},
	{"very high", 7, "\033[38;5;94m", color.RGBA{0x87, 0x5f, 0x00, 0xff}},
	{"mountain", 6, "\033[38;5;214m", color.RGBA{0xff, 0xaf, 0x00, 0xff}},
	{"hilltop", 5, "\033[38;5;130m", color.RGBA{0xaf, 0x5f, 0x00, 0xff}},
	{"high plains", 4, "\033[38;5;226m", color.RGBA{0xff, 0xff, 0x00, 0xff}},
	{"grassland", 3, "\033[38;5;82m", color.RGBA{0x5f, 0xff, 0x00, 0xff}},
	{"water", 2, "\033[38;5;81m", color.RGBA{0x5f, 0xd7, 0xff, 0xff}},
	{"lowland", 0, "", color.RGBA{0x10, 0x18, 0x30, 0xff}},
}

// MaxLevel is the level a normalized height of 1 maps to.
const MaxLevel = 10

// BandFor returns the band of a level.
func BandFor(level float64) Band {
	for _, b := range Bands {
		if level >= b.Min {
			return b
		}
	}
	return Bands[len(Bands)-1]
}

// Heightmap is a grid of levels sampled from a noise field, row-major by Z.
type Heightmap struct {
	Width, Depth int
	OriginX      int
	OriginZ      int
	levels       []float64
}

// Sample reads a width x depth block of columns starting at (originX, originZ).
func Sample(noise *world.NoiseField, originX, originZ, width, depth int) *Heightmap {
	h := &Heightmap{
		Width:   max(width, 0),
		Depth:   max(depth, 0),
		OriginX: originX,
		OriginZ: originZ,
	}
	h.levels = make([]float64, h.Width*h.Depth)
	for z := 0; z < h.Depth; z++ {
		for x := 0; x < h.Width; x++ {
			h.levels[z*h.Width+x] = noise.HeightAt(originX+x, originZ+z) * MaxLevel
		}
	}
	return h
}

// Level returns the level at a map cell.
func (h *Heightmap) Level(x, z int) float64 {
	return h.levels[z*h.Width+x]
}

// Histogram counts cells per band name.
func (h *Heightmap) Histogram() map[string]int {
	out := make(map[string]int, len(Bands))
	for _, l := range h.levels {
		out[BandFor(l).Name]++
	}
	return out
}

// WriteANSI prints one coloured block per cell and one line per row. The
// lowest band prints as a space.
func (h *Heightmap) WriteANSI(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for z := 0; z < h.Depth; z++ {
		for x := 0; x < h.Width; x++ {
			b := BandFor(h.Level(x, z))
			if b.ANSI == "" {
				bw.WriteByte(' ')
				continue
			}
			bw.WriteString(b.ANSI)
			bw.WriteString("■")
			bw.WriteString(ansiReset)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Image renders one pixel per cell, upscaled by scale with nearest-neighbour
// filtering so cells stay crisp.
func (h *Heightmap) Image(scale int) *image.RGBA {
	scale = max(scale, 1)
	src := image.NewRGBA(image.Rect(0, 0, h.Width, h.Depth))
	for z := 0; z < h.Depth; z++ {
		for x := 0; x < h.Width; x++ {
			src.SetRGBA(x, z, BandFor(h.Level(x, z)).Color)
		}
	}
	if scale == 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, h.Width*scale, h.Depth*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// WritePNG encodes Image(scale) with an optional caption in the top-left corner.
func (h *Heightmap) WritePNG(w io.Writer, scale int, caption string) error {
	img := h.Image(scale)
	if caption != "" {
		drawCaption(img, caption)
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode heightmap: %w", err)
	}
	return nil
}

func drawCaption(img *image.RGBA, text string) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	bg := image.Rect(0, 0, width+6, face.Height+4).Intersect(img.Bounds())
	draw.Draw(img, bg, image.NewUniform(color.RGBA{0, 0, 0, 0xb0}), image.Point{}, draw.Over)

	d := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(3, face.Ascent+2),
	}
	d.DrawString(text)
}
