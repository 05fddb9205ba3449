// Command meshdump streams the chunk window around a point without a window,
// waits for every chunk to build and writes the meshes as Wavefront OBJ.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mini-voxel/internal/config"
	"mini-voxel/internal/export"
	"mini-voxel/internal/streaming"

	"github.com/go-gl/mathgl/mgl32"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (default $"+config.EnvConfigPath+")")
		logLevel   = flag.String("log-level", "info", "debug, info, warn or error")
		out        = flag.String("out", "world.obj", "output OBJ path; the MTL file is written next to it")
		seed       = flag.Int64("seed", 0, "world seed, overrides the config file")
		distance   = flag.Int("render-distance", 0, "render distance in chunks, overrides the config file")
		x          = flag.Float64("x", 0, "world X of the centre")
		z          = flag.Float64("z", 0, "world Z of the centre")
		timeout    = flag.Duration("timeout", time.Minute, "give up if the chunks are not built in time")
	)
	flag.Parse()

	logger, err := config.NewLogger(os.Stderr, *logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.World.Seed = *seed
		case "render-distance":
			cfg.World.RenderDistance = *distance
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pos := mgl32.Vec3{float32(*x), 0, float32(*z)}
	err = run(ctx, cfg, pos, *out, logger)
	cancel()
	if err != nil {
		logger.Error("meshdump failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.File, pos mgl32.Vec3, out string, logger *slog.Logger) error {
	m, err := streaming.NewManager(streaming.Options{Workers: cfg.Workers, Logger: logger})
	if err != nil {
		return err
	}
	defer m.Close()

	start := time.Now()
	m.Update(streaming.FrameContext{PlayerPos: pos, Settings: cfg.World})
	if err := m.Wait(ctx); err != nil {
		return fmt.Errorf("wait for %d chunks: %w", m.Len(), err)
	}
	logger.Info("chunks built", "chunks", m.Len(), "center", m.Center(), "took", time.Since(start))

	mtlPath := strings.TrimSuffix(out, filepath.Ext(out)) + ".mtl"
	if err := writeFile(mtlPath, export.WriteMTL); err != nil {
		return err
	}

	var faces, vertices int
	err = writeFile(out, func(w io.Writer) error {
		o := export.NewObjWriter(w, filepath.Base(mtlPath))
		for _, coord := range m.Coords() {
			ch, _ := m.Chunk(coord)
			if err := o.WriteChunk(coord, ch.Vertices()); err != nil {
				return err
			}
		}
		faces, vertices = o.Faces(), o.Vertices()
		return o.Flush()
	})
	if err != nil {
		return err
	}
	logger.Info("mesh written", "obj", out, "mtl", mtlPath, "faces", faces, "vertices", vertices)
	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
