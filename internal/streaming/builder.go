package streaming

import (
	"log/slog"
	"runtime"
	"time"

	"mini-voxel/internal/world"

	"github.com/alitto/pond/v2"
)

// Builder runs chunk builds on a bounded worker pool. Schedule never blocks;
// tasks queue until a worker is free.
type Builder struct {
	pool    pond.Pool
	logger  *slog.Logger
	metrics *Metrics
}

// NewBuilder starts a pool of the given size. workers <= 0 means one per CPU.
func NewBuilder(workers int, logger *slog.Logger, metrics *Metrics) *Builder {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = newMetrics()
	}
	return &Builder{
		pool:    pond.NewPool(workers),
		logger:  logger,
		metrics: metrics,
	}
}

// Schedule queues the build of c with gen.
func (b *Builder) Schedule(c *Chunk, gen *world.Generator) {
	if b.pool.Stopped() {
		c.destroy()
		c.finish()
		return
	}
	b.pool.Submit(func() {
		defer c.finish()
		start := time.Now()
		n, ok := c.build(gen)
		if !ok {
			b.metrics.buildsDiscarded.Inc()
			b.logger.Debug("chunk build discarded", "coord", c.Coord)
			return
		}
		elapsed := time.Since(start)
		b.metrics.buildsCompleted.Inc()
		b.metrics.buildDuration.Observe(elapsed.Seconds())
		b.metrics.meshVertices.Observe(float64(n))
		b.logger.Debug("chunk built", "coord", c.Coord, "vertices", n, "took", elapsed)
	})
}

// Running returns the number of busy workers.
func (b *Builder) Running() int64 { return b.pool.RunningWorkers() }

// Waiting returns the number of queued builds.
func (b *Builder) Waiting() uint64 { return b.pool.WaitingTasks() }

// Close waits for queued builds and stops the workers.
func (b *Builder) Close() {
	b.pool.StopAndWait()
}
