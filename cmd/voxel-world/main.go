package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"mini-voxel/internal/config"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (default $"+config.EnvConfigPath+")")
		logLevel   = flag.String("log-level", "info", "debug, info, warn or error")
		seed       = flag.Int64("seed", 0, "world seed, overrides the config file")
		distance   = flag.Int("render-distance", 0, "render distance in chunks, overrides the config file")
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
	settings, notes := cfg.World.Clamp()
	for _, n := range notes {
		logger.Warn("config clamped", "detail", n)
	}
	cfg.World = settings

	if err := glfw.Init(); err != nil {
		logger.Error("init glfw", "err", err)
		os.Exit(1)
	}

	app, err := newApp(cfg, logger)
	if err != nil {
		logger.Error("start viewer", "err", err)
		glfw.Terminate()
		os.Exit(1)
	}

	// On SIGINT/SIGTERM closer runs this from its own goroutine; GL teardown
	// has to happen here on the main thread, so ask the loop to stop and wait.
	closer.Bind(app.requestStop)

	app.run()
	app.close()
	closer.Close()
}
