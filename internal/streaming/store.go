package streaming

import (
	"cmp"
	"slices"

	"mini-voxel/internal/world"
)

// chunkStore is the active set keyed by chunk coordinate. It has no lock:
// only the Manager's goroutine reads or writes it.
type chunkStore struct {
	chunks map[world.ChunkCoord]*Chunk
}

func newChunkStore() *chunkStore {
	return &chunkStore{chunks: make(map[world.ChunkCoord]*Chunk)}
}

func (s *chunkStore) get(coord world.ChunkCoord) (*Chunk, bool) {
	c, ok := s.chunks[coord]
	return c, ok
}

func (s *chunkStore) has(coord world.ChunkCoord) bool {
	_, ok := s.chunks[coord]
	return ok
}

func (s *chunkStore) add(c *Chunk) {
	s.chunks[c.Coord] = c
}

func (s *chunkStore) remove(coord world.ChunkCoord) {
	delete(s.chunks, coord)
}

func (s *chunkStore) len() int { return len(s.chunks) }

// outside returns every chunk farther than radius from center (Chebyshev).
func (s *chunkStore) outside(center world.ChunkCoord, radius int) []*Chunk {
	var out []*Chunk
	for coord, c := range s.chunks {
		if coord.ChebyshevDistance(center) > radius {
			out = append(out, c)
		}
	}
	return out
}

// coords returns the stored coordinates ordered by Z then X.
func (s *chunkStore) coords() []world.ChunkCoord {
	out := make([]world.ChunkCoord, 0, len(s.chunks))
	for coord := range s.chunks {
		out = append(out, coord)
	}
	slices.SortFunc(out, func(a, b world.ChunkCoord) int {
		if c := cmp.Compare(a.Z, b.Z); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
	return out
}

func (s *chunkStore) clear() []*Chunk {
	out := make([]*Chunk, 0, len(s.chunks))
	for _, c := range s.chunks {
		out = append(out, c)
	}
	clear(s.chunks)
	return out
}
