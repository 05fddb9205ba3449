package streaming

import (
	"mini-voxel/internal/config"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// FrameContext is the per-frame input to Manager.Update.
type FrameContext struct {
	// PlayerPos is the viewpoint in world space. Only X and Z are used.
	PlayerPos mgl32.Vec3
	Settings  config.WorldSettings
}

// PlayerChunk returns the chunk the player stands in.
func (fc FrameContext) PlayerChunk() world.ChunkCoord {
	return world.ChunkCoordFromPosition(fc.PlayerPos)
}
