// Command heightmap prints a coloured terrain map of the noise field to the
// terminal, or writes it as a PNG.
package main

import (
	"flag"
	"fmt"
	"os"

	"mini-voxel/internal/config"
	"mini-voxel/internal/preview"
	"mini-voxel/internal/world"
)

func main() {
	var (
		logLevel = flag.String("log-level", "info", "debug, info, warn or error")
		seed     = flag.Int64("seed", 0, "noise seed")
		scale    = flag.Float64("scale", 0.1, "noise scale; lower is smoother")
		width    = flag.Int("width", 100, "columns along X")
		depth    = flag.Int("depth", 100, "rows along Z")
		x        = flag.Int("x", 0, "world X of the top-left column")
		z        = flag.Int("z", 0, "world Z of the top-left column")
		pngOut   = flag.String("png", "", "write a PNG here instead of printing")
		pixels   = flag.Int("pixels", 4, "PNG pixels per column")
	)
	flag.Parse()

	logger, err := config.NewLogger(os.Stderr, *logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	hm := preview.Sample(world.NewNoiseField(*seed, *scale), *x, *z, *width, *depth)

	if *pngOut == "" {
		if err := hm.WriteANSI(os.Stdout); err != nil {
			logger.Error("print heightmap", "err", err)
			os.Exit(1)
		}
		return
	}

	f, err := os.Create(*pngOut)
	if err != nil {
		logger.Error("create png", "err", err)
		os.Exit(1)
	}
	caption := fmt.Sprintf("seed %d  scale %.3f  origin %d,%d", *seed, *scale, *x, *z)
	if err := hm.WritePNG(f, *pixels, caption); err != nil {
		f.Close()
		logger.Error("write png", "err", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		logger.Error("write png", "err", err)
		os.Exit(1)
	}
	logger.Info("heightmap written", "path", *pngOut, "bands", hm.Histogram())
}
