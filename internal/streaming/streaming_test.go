package streaming

import (
	"context"
	"errors"
	"testing"
	"time"

	"mini-voxel/internal/config"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBuffer struct {
	vertices int
	draws    int
	released bool
}

func (b *fakeBuffer) Draw()    { b.draws++ }
func (b *fakeBuffer) Release() { b.released = true }

type fakeUploader struct {
	fail    error
	buffers []*fakeBuffer
}

func (u *fakeUploader) Upload(vertices []float32) (Buffer, error) {
	if u.fail != nil {
		return nil, u.fail
	}
	b := &fakeBuffer{vertices: meshing.VertexCount(vertices)}
	u.buffers = append(u.buffers, b)
	return b, nil
}

func testSettings(renderDistance int) config.WorldSettings {
	s := config.DefaultWorldSettings()
	s.Seed = 1337
	s.ChunkHeight = 16
	s.MaxHeight = 10
	s.RenderDistance = renderDistance
	return s
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(Options{Workers: 4})
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func waitBuilt(t *testing.T, m *Manager) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, m.Wait(ctx))
}

func requireWindow(t *testing.T, m *Manager, center world.ChunkCoord, r int) {
	t.Helper()
	side := 2*r + 1
	require.Equal(t, side*side, m.Len())
	for _, coord := range m.Coords() {
		assert.LessOrEqual(t, coord.ChebyshevDistance(center), r, "chunk %v outside window", coord)
	}
	for z := center.Z - r; z <= center.Z+r; z++ {
		for x := center.X - r; x <= center.X+r; x++ {
			_, ok := m.Chunk(world.ChunkCoord{X: x, Z: z})
			assert.True(t, ok, "missing chunk (%d,%d)", x, z)
		}
	}
}

func TestWindowFollowsPlayer(t *testing.T) {
	m := newTestManager(t)
	s := testSettings(2)

	require.True(t, m.Update(FrameContext{PlayerPos: mgl32.Vec3{8, 40, 8}, Settings: s}))
	assert.Equal(t, world.ChunkCoord{}, m.Center())
	requireWindow(t, m, world.ChunkCoord{}, 2)

	require.True(t, m.Update(FrameContext{PlayerPos: mgl32.Vec3{24, 40, 8}, Settings: s}))
	assert.Equal(t, world.ChunkCoord{X: 1}, m.Center())
	requireWindow(t, m, world.ChunkCoord{X: 1}, 2)

	for z := -2; z <= 2; z++ {
		_, ok := m.Chunk(world.ChunkCoord{X: -2, Z: z})
		assert.False(t, ok, "x=-2 should be evicted")
		_, ok = m.Chunk(world.ChunkCoord{X: 4, Z: z})
		assert.False(t, ok)
	}
}

func TestUpdateIsNoOpInsideSameChunk(t *testing.T) {
	m := newTestManager(t)
	s := testSettings(1)

	require.True(t, m.Update(FrameContext{PlayerPos: mgl32.Vec3{1, 0, 1}, Settings: s}))
	before, ok := m.Chunk(world.ChunkCoord{})
	require.True(t, ok)

	assert.False(t, m.Update(FrameContext{PlayerPos: mgl32.Vec3{15.9, 80, 0.1}, Settings: s}))
	after, _ := m.Chunk(world.ChunkCoord{})
	assert.Same(t, before, after)
}

func TestNegativePositionsFloor(t *testing.T) {
	m := newTestManager(t)
	m.Update(FrameContext{PlayerPos: mgl32.Vec3{-0.5, 0, -16.5}, Settings: testSettings(1)})
	assert.Equal(t, world.ChunkCoord{X: -1, Z: -2}, m.Center())
	requireWindow(t, m, world.ChunkCoord{X: -1, Z: -2}, 1)
}

func TestRenderUploadsExactlyOnce(t *testing.T) {
	m := newTestManager(t)
	m.Update(FrameContext{Settings: testSettings(1)})
	waitBuilt(t, m)
	assert.Equal(t, 9, m.ReadyCount())

	up := &fakeUploader{}
	require.NoError(t, m.Render(up))
	require.NoError(t, m.Render(up))
	require.NoError(t, m.Render(up))

	require.Len(t, up.buffers, 9)
	for _, b := range up.buffers {
		assert.Equal(t, 3, b.draws)
		assert.Positive(t, b.vertices)
	}
	for _, coord := range m.Coords() {
		ch, _ := m.Chunk(coord)
		assert.Equal(t, StateUploaded, ch.State())
	}
}

func TestRenderRetriesFailedUpload(t *testing.T) {
	m := newTestManager(t)
	m.Update(FrameContext{Settings: testSettings(1)})
	waitBuilt(t, m)

	boom := errors.New("out of video memory")
	err := m.Render(&fakeUploader{fail: boom})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	for _, coord := range m.Coords() {
		ch, _ := m.Chunk(coord)
		assert.Equal(t, StateReady, ch.State())
	}

	up := &fakeUploader{}
	require.NoError(t, m.Render(up))
	assert.Len(t, up.buffers, 9)
}

func TestEvictionReleasesBuffers(t *testing.T) {
	m := newTestManager(t)
	s := testSettings(1)
	m.Update(FrameContext{Settings: s})
	waitBuilt(t, m)

	up := &fakeUploader{}
	require.NoError(t, m.Render(up))

	// Jump far enough that no chunk survives.
	m.Update(FrameContext{PlayerPos: mgl32.Vec3{16 * 10, 0, 0}, Settings: s})
	requireWindow(t, m, world.ChunkCoord{X: 10}, 1)
	for _, b := range up.buffers {
		assert.True(t, b.released)
	}
}

func TestSettingsChangeRebuildsWorld(t *testing.T) {
	m := newTestManager(t)
	s := testSettings(1)
	m.Update(FrameContext{Settings: s})
	old, _ := m.Chunk(world.ChunkCoord{})

	s.Seed++
	require.True(t, m.Update(FrameContext{Settings: s}), "same chunk, new settings")
	requireWindow(t, m, world.ChunkCoord{}, 1)
	fresh, _ := m.Chunk(world.ChunkCoord{})
	assert.NotSame(t, old, fresh)
	assert.Equal(t, StateDestroyed, old.State())
	assert.Equal(t, s.Seed, m.Generator().Noise().Seed())

	s.RenderDistance = 2
	require.True(t, m.Update(FrameContext{Settings: s}))
	requireWindow(t, m, world.ChunkCoord{}, 2)
}

func TestSettingsAreClamped(t *testing.T) {
	m := newTestManager(t)
	s := testSettings(0)
	m.Update(FrameContext{Settings: s})
	assert.Equal(t, config.MinRenderDistance, m.Settings().RenderDistance)
	requireWindow(t, m, world.ChunkCoord{}, 1)
}

func TestReload(t *testing.T) {
	m := newTestManager(t)
	m.Reload()
	assert.Zero(t, m.Len(), "reload before the first update is a no-op")

	m.Update(FrameContext{Settings: testSettings(1)})
	old, _ := m.Chunk(world.ChunkCoord{})
	m.Reload()
	requireWindow(t, m, world.ChunkCoord{}, 1)
	fresh, _ := m.Chunk(world.ChunkCoord{})
	assert.NotSame(t, old, fresh)
	assert.Equal(t, StateDestroyed, old.State())
}

func TestBuiltChunkMatchesGenerator(t *testing.T) {
	m := newTestManager(t)
	coord := world.ChunkCoord{X: 2, Z: -3}
	m.Update(FrameContext{PlayerPos: mgl32.Vec3{2*16 + 1, 0, -3*16 + 1}, Settings: testSettings(1)})
	waitBuilt(t, m)

	ch, ok := m.Chunk(coord)
	require.True(t, ok)
	want, err := m.Generator().Generate(context.Background(), coord)
	require.NoError(t, err)
	assert.Equal(t, want, ch.Grid())
	assert.Equal(t, meshing.BuildMesh(want), ch.Vertices())
}

func TestCloseDestroysEverything(t *testing.T) {
	m, err := NewManager(Options{Workers: 2})
	require.NoError(t, err)
	m.Update(FrameContext{Settings: testSettings(2)})
	chunks := make([]*Chunk, 0, m.Len())
	for _, coord := range m.Coords() {
		ch, _ := m.Chunk(coord)
		chunks = append(chunks, ch)
	}

	m.Close()
	m.Close()
	assert.Zero(t, m.Len())
	assert.False(t, m.Update(FrameContext{Settings: testSettings(2)}))
	for _, ch := range chunks {
		assert.Equal(t, StateDestroyed, ch.State())
		select {
		case <-ch.Done():
		default:
			t.Fatalf("chunk %v task not finished after Close", ch.Coord)
		}
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewManager(Options{Workers: 2, Registerer: reg})
	require.NoError(t, err)
	t.Cleanup(m.Close)

	s := testSettings(1)
	m.Update(FrameContext{Settings: s})
	waitBuilt(t, m)
	require.NoError(t, m.Render(&fakeUploader{}))

	assert.Equal(t, 9.0, testutil.ToFloat64(m.metrics.chunksCreated))
	assert.Equal(t, 9.0, testutil.ToFloat64(m.metrics.activeChunks))
	assert.Equal(t, 9.0, testutil.ToFloat64(m.metrics.readyChunks))
	assert.Equal(t, 9.0, testutil.ToFloat64(m.metrics.uploads))
	assert.Equal(t, 9.0, testutil.ToFloat64(m.metrics.buildsCompleted))

	m.Update(FrameContext{PlayerPos: mgl32.Vec3{16, 0, 0}, Settings: s})
	assert.Equal(t, 3.0, testutil.ToFloat64(m.metrics.chunksEvicted))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.metrics.chunksCreated))

	n, err := testutil.GatherAndCount(reg, "voxel_streaming_build_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = NewManager(Options{Registerer: reg})
	assert.Error(t, err, "duplicate registration")
}
