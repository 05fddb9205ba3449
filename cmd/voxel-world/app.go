package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"mini-voxel/internal/config"
	"mini-voxel/internal/graphics"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/streaming"
	"mini-voxel/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// slowFrame is the frame time above which the top profiling sections are logged.
const slowFrame = 50 * time.Millisecond

type app struct {
	cfg    *config.File
	logger *slog.Logger

	window   *glfw.Window
	camera   *graphics.FlyCamera
	renderer *graphics.ChunkRenderer
	manager  *streaming.Manager
	tunables *config.Tunables
	metrics  *http.Server
	limiter  fpsLimiter

	captured bool
	revision uint64
	stop     *stopGate
}

func newApp(cfg *config.File, logger *slog.Logger) (*app, error) {
	window, err := setupWindow(cfg.Window)
	if err != nil {
		return nil, err
	}

	renderer, err := graphics.NewChunkRenderer()
	if err != nil {
		window.Destroy()
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	manager, err := streaming.NewManager(streaming.Options{
		Workers:    cfg.Workers,
		Logger:     logger,
		Registerer: reg,
	})
	if err != nil {
		renderer.Delete()
		window.Destroy()
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		logger:   logger,
		window:   window,
		renderer: renderer,
		manager:  manager,
		tunables: config.NewTunables(cfg.World),
		stop:     newStopGate(5 * time.Second),
	}
	_, a.revision = a.tunables.Snapshot()

	width, height := window.GetFramebufferSize()
	a.camera = graphics.NewFlyCamera(spawnPoint(cfg.World), width, height)
	a.resize(width, height)
	a.setupInput()
	a.setCaptured(true)

	if cfg.MetricsAddr != "" {
		a.serveMetrics(reg)
	}

	logger.Info("viewer started",
		"seed", cfg.World.Seed,
		"render_distance", cfg.World.RenderDistance,
		"workers", cfg.Workers,
		"spawn", a.camera.Position,
	)
	return a, nil
}

func setupWindow(wc config.WindowConfig) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(wc.Width, wc.Height, "mini-voxel", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, fmt.Errorf("init gl: %w", err)
	}

	if wc.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.ClearColor(graphics.SkyColor.X(), graphics.SkyColor.Y(), graphics.SkyColor.Z(), 1)
	return window, nil
}

// spawnPoint puts the camera a few blocks above the terrain of the origin column.
func spawnPoint(s config.WorldSettings) mgl32.Vec3 {
	gen := world.NewGenerator(world.NewNoiseField(s.Seed, s.NoiseScale), s.MaxHeight, s.ChunkHeight)
	const x, z = world.ChunkWidth / 2, world.ChunkWidth / 2
	return mgl32.Vec3{x, float32(gen.TerrainHeight(x, z) + 4), z}
}

func (a *app) resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	if a.camera != nil {
		a.camera.SetViewport(width, height)
	}
}

func (a *app) serveMetrics(reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	a.metrics = &http.Server{Addr: a.cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		a.logger.Info("serving metrics", "addr", a.cfg.MetricsAddr)
		if err := a.metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server", "err", err)
		}
	}()
}

func (a *app) run() {
	frames := 0
	lastFPS := time.Now()
	last := time.Now()

	for !a.window.ShouldClose() {
		profiling.ResetFrame()
		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now

		if a.captured {
			a.camera.PollKeys(a.window, dt)
		}
		a.frame()

		func() { defer profiling.Track("glfw.SwapBuffers")(); a.window.SwapBuffers() }()
		func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

		frames++
		if time.Since(lastFPS) >= time.Second {
			a.logger.Debug("fps",
				"fps", frames,
				"active", a.manager.Len(),
				"ready", a.manager.ReadyCount(),
				"drawn", a.renderer.DrawnChunks,
				"culled", a.renderer.CulledChunks,
			)
			frames = 0
			lastFPS = time.Now()
		}

		if took := time.Since(now); took > slowFrame {
			a.logger.Warn("slow frame", "took", took, "top", profiling.TopN(3))
		}
		a.limiter.wait(a.cfg.Window.TargetFPS)
	}
}

// frame streams chunks around the camera and draws them.
func (a *app) frame() {
	settings, rev := a.tunables.Snapshot()
	if rev != a.revision {
		a.revision = rev
		if settings == a.manager.Settings() {
			a.manager.Reload()
		} else {
			a.logger.Info("settings changed",
				"noise_scale", settings.NoiseScale,
				"max_height", settings.MaxHeight,
				"render_distance", settings.RenderDistance,
			)
		}
	}

	a.manager.Update(streaming.FrameContext{PlayerPos: a.camera.Position, Settings: settings})

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	fogEnd := float32(settings.RenderDistance * world.ChunkWidth)
	a.renderer.Begin(a.camera.View(), a.camera.Projection(), a.camera.Position, fogEnd)
	if err := a.manager.Render(a.renderer); err != nil {
		a.logger.Warn("chunk upload failed, retrying next frame", "err", err)
	}
}

func (a *app) logStats() {
	s := a.manager.Settings()
	a.logger.Info("stats",
		"position", a.camera.Position,
		"chunk", a.manager.Center(),
		"active", a.manager.Len(),
		"ready", a.manager.ReadyCount(),
		"pending", a.manager.Pending(),
		"noise_scale", s.NoiseScale,
		"max_height", s.MaxHeight,
		"render_distance", s.RenderDistance,
		"top", profiling.TopN(5),
	)
}

// requestStop asks the frame loop to exit and waits until close has run.
func (a *app) requestStop() {
	a.stop.request(func() { a.window.SetShouldClose(true) })
}

// close tears down GL state and terminates glfw on the main thread. A pending
// requestStop only returns after it, so the signal path cannot exit mid-teardown.
func (a *app) close() {
	a.stop.release(func() {
		a.manager.Close()
		a.renderer.Delete()
		if a.metrics != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := a.metrics.Shutdown(ctx); err != nil {
				a.logger.Warn("metrics server shutdown", "err", err)
			}
		}
		a.window.Destroy()
		glfw.Terminate()
		a.logger.Info("viewer stopped")
	})
}
