package streaming

import (
	"context"
	"errors"
	"log/slog"

	"mini-voxel/internal/config"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"

	"github.com/prometheus/client_golang/prometheus"
)

// Options configures a Manager.
type Options struct {
	// Workers is the build pool size; <= 0 means one per CPU.
	Workers int
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Registerer receives the streaming metrics; nil skips registration.
	Registerer prometheus.Registerer
}

// Manager keeps the active chunk set equal to the square window of
// RenderDistance chunks around the player. It is not safe for concurrent use:
// one goroutine calls Update, Render, Reload and Close. Background builds
// never touch the active set.
type Manager struct {
	store   *chunkStore
	builder *Builder
	metrics *Metrics
	logger  *slog.Logger

	gen      *world.Generator
	settings config.WorldSettings
	center   world.ChunkCoord
	started  bool
	closed   bool
}

// NewManager creates an empty manager. Nothing is streamed until the first Update.
func NewManager(opts Options) (*Manager, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics, err := NewMetrics(opts.Registerer)
	if err != nil {
		return nil, err
	}
	return &Manager{
		store:   newChunkStore(),
		builder: NewBuilder(opts.Workers, logger, metrics),
		metrics: metrics,
		logger:  logger,
	}, nil
}

// Update recomputes the player's chunk. When neither the chunk nor the world
// settings changed it does nothing and returns false. Otherwise it fills the
// new window and evicts everything outside it; a settings change first drops
// every chunk so the world is rebuilt from scratch.
func (m *Manager) Update(fc FrameContext) bool {
	if m.closed {
		return false
	}
	defer profiling.Track("streaming.Update")()

	settings, notes := fc.Settings.Clamp()
	center := fc.PlayerChunk()
	if m.started && center == m.center && settings == m.settings {
		return false
	}

	if !m.started || settings != m.settings {
		for _, n := range notes {
			m.logger.Warn("world setting clamped", "detail", n)
		}
		if m.started {
			m.logger.Info("world settings changed, rebuilding",
				"seed", settings.Seed,
				"noise_scale", settings.NoiseScale,
				"max_height", settings.MaxHeight,
				"chunk_height", settings.ChunkHeight,
				"render_distance", settings.RenderDistance,
			)
			m.dropAll()
			m.metrics.rebuilds.Inc()
		}
		m.settings = settings
		m.gen = world.NewGenerator(
			world.NewNoiseField(settings.Seed, settings.NoiseScale),
			settings.MaxHeight,
			settings.ChunkHeight,
		)
	}

	m.center = center
	m.started = true
	m.handleChunks()
	return true
}

// Reload destroys every chunk and streams the current window again.
func (m *Manager) Reload() {
	if m.closed || !m.started {
		return
	}
	m.logger.Info("reloading chunks", "center", m.center)
	m.dropAll()
	m.metrics.rebuilds.Inc()
	m.handleChunks()
}

// handleChunks creates the missing chunks of the window, then evicts the
// chunks outside it. Creating first keeps the boundary from ever going empty.
func (m *Manager) handleChunks() {
	r := m.settings.RenderDistance
	c := m.center

	created := 0
	for z := c.Z - r; z <= c.Z+r; z++ {
		for x := c.X - r; x <= c.X+r; x++ {
			coord := world.ChunkCoord{X: x, Z: z}
			if m.store.has(coord) {
				continue
			}
			ch := newChunk(coord)
			m.store.add(ch)
			m.builder.Schedule(ch, m.gen)
			created++
		}
	}

	far := m.store.outside(c, r)
	for _, ch := range far {
		m.store.remove(ch.Coord)
		ch.destroy()
	}

	m.metrics.chunksCreated.Add(float64(created))
	m.metrics.chunksEvicted.Add(float64(len(far)))
	m.metrics.activeChunks.Set(float64(m.store.len()))
	m.logger.Debug("chunk window updated",
		"center", c,
		"created", created,
		"evicted", len(far),
		"active", m.store.len(),
	)
}

func (m *Manager) dropAll() {
	for _, ch := range m.store.clear() {
		ch.destroy()
	}
	m.metrics.activeChunks.Set(0)
	m.metrics.readyChunks.Set(0)
}

// Render polls every active chunk: ready meshes are uploaded once, uploaded
// meshes are drawn, chunks still building are skipped. Upload failures are
// joined into the returned error and retried on the next call.
func (m *Manager) Render(up Uploader) error {
	defer profiling.Track("streaming.Render")()

	var errs []error
	ready := 0
	for _, ch := range m.store.chunks {
		uploading := ch.State() == StateReady
		if err := ch.Render(up); err != nil {
			m.metrics.uploadErrors.Inc()
			errs = append(errs, err)
		} else if uploading {
			m.metrics.uploads.Inc()
		}
		if ch.Built() {
			ready++
		}
	}
	m.metrics.readyChunks.Set(float64(ready))
	return errors.Join(errs...)
}

// Wait blocks until every active chunk has finished building or ctx ends.
func (m *Manager) Wait(ctx context.Context) error {
	for _, ch := range m.store.chunks {
		select {
		case <-ch.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Close destroys every chunk and stops the build pool. The manager is
// unusable afterwards.
func (m *Manager) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.dropAll()
	m.builder.Close()
}

// Len returns the number of active chunks.
func (m *Manager) Len() int { return m.store.len() }

// Chunk returns the active chunk at coord.
func (m *Manager) Chunk(coord world.ChunkCoord) (*Chunk, bool) {
	return m.store.get(coord)
}

// Coords returns the active coordinates ordered by Z then X.
func (m *Manager) Coords() []world.ChunkCoord { return m.store.coords() }

// Center returns the player chunk of the last Update.
func (m *Manager) Center() world.ChunkCoord { return m.center }

// Settings returns the clamped settings currently in effect.
func (m *Manager) Settings() config.WorldSettings { return m.settings }

// Generator returns the generator used for current builds, nil before the first Update.
func (m *Manager) Generator() *world.Generator { return m.gen }

// ReadyCount returns how many active chunks have a built mesh.
func (m *Manager) ReadyCount() int {
	n := 0
	for _, ch := range m.store.chunks {
		if ch.Built() {
			n++
		}
	}
	return n
}

// Pending returns how many builds are queued or running.
func (m *Manager) Pending() int {
	return int(m.builder.Waiting()) + int(m.builder.Running())
}
