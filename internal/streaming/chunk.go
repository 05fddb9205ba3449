package streaming

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"mini-voxel/internal/meshing"
	"mini-voxel/internal/world"
)

// State is a chunk's position in its lifecycle.
type State int32

const (
	StateCreated State = iota
	StateGenerating
	StateReady
	StateUploaded
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateGenerating:
		return "generating"
	case StateReady:
		return "ready"
	case StateUploaded:
		return "uploaded"
	case StateDestroyed:
		return "destroyed"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

type buildResult struct {
	grid     *world.Grid
	vertices []float32
}

// Chunk is one streamed column of the world. Its grid and mesh are built once
// by a background task and published atomically; everything else belongs to
// the goroutine that owns the Manager.
type Chunk struct {
	Coord world.ChunkCoord

	state  atomic.Int32
	result atomic.Pointer[buildResult]

	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	doneOnce sync.Once

	// Owned by the render goroutine.
	buffer Buffer
}

func newChunk(coord world.ChunkCoord) *Chunk {
	ctx, cancel := context.WithCancel(context.Background())
	return &Chunk{
		Coord:  coord,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

func (c *Chunk) State() State { return State(c.state.Load()) }

// Done is closed once the background task has finished, whatever the outcome.
// Metrics and logs for the build are recorded before it closes.
func (c *Chunk) Done() <-chan struct{} { return c.done }

// Built reports whether the grid and mesh are available.
func (c *Chunk) Built() bool {
	s := c.State()
	return s == StateReady || s == StateUploaded
}

// Grid returns the generated grid, or nil until the chunk is built.
func (c *Chunk) Grid() *world.Grid {
	if r := c.built(); r != nil {
		return r.grid
	}
	return nil
}

// Vertices returns the mesh, or nil until the chunk is built. The slice must
// not be modified.
func (c *Chunk) Vertices() []float32 {
	if r := c.built(); r != nil {
		return r.vertices
	}
	return nil
}

func (c *Chunk) built() *buildResult {
	if !c.Built() {
		return nil
	}
	return c.result.Load()
}

// build runs generate then mesh and publishes the result, returning the
// vertex count. ok is false when the chunk was destroyed first and the work
// was thrown away.
func (c *Chunk) build(gen *world.Generator) (vertices int, ok bool) {
	if !c.start() {
		return 0, false
	}
	grid, err := gen.Generate(c.ctx, c.Coord)
	if err != nil {
		return 0, false
	}
	mesh := meshing.BuildMesh(grid)
	if !c.publish(grid, mesh) {
		return 0, false
	}
	return meshing.VertexCount(mesh), true
}

// start claims the chunk for a build. It fails once the chunk was destroyed.
func (c *Chunk) start() bool {
	return c.state.CompareAndSwap(int32(StateCreated), int32(StateGenerating))
}

// publish stores the result and moves the chunk to Ready. If the chunk was
// destroyed while generating, the result is dropped and publish returns false.
func (c *Chunk) publish(grid *world.Grid, vertices []float32) bool {
	c.result.Store(&buildResult{grid: grid, vertices: vertices})
	if !c.state.CompareAndSwap(int32(StateGenerating), int32(StateReady)) {
		c.result.Store(nil)
		return false
	}
	return true
}

func (c *Chunk) finish() {
	c.doneOnce.Do(func() { close(c.done) })
}

// Render is the per-frame poll. A ready chunk is uploaded exactly once and
// then drawn every frame; a chunk still building is skipped without error.
// A failed upload leaves the chunk ready so the next frame tries again.
func (c *Chunk) Render(up Uploader) error {
	switch c.State() {
	case StateReady:
		buf, err := up.Upload(c.result.Load().vertices)
		if err != nil {
			return fmt.Errorf("upload chunk %v: %w", c.Coord, err)
		}
		c.buffer = buf
		c.state.Store(int32(StateUploaded))
		buf.Draw()
	case StateUploaded:
		c.buffer.Draw()
	}
	return nil
}

// destroy tombstones the chunk, cancels an in-flight build and frees the GPU
// buffer. The background task, if any, sees the tombstone and drops its result.
func (c *Chunk) destroy() {
	prev := State(c.state.Swap(int32(StateDestroyed)))
	if prev == StateDestroyed {
		return
	}
	c.cancel()
	c.result.Store(nil)
	if c.buffer != nil {
		c.buffer.Release()
		c.buffer = nil
	}
}
