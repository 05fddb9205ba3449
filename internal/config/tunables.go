package config

import (
	"math"
	"sync"
)

// Tunables holds the world settings that can change while the viewer runs.
// Setters clamp their input. Every change bumps the revision so a frame loop
// can tell that the world must be rebuilt.
type Tunables struct {
	mu       sync.RWMutex
	settings WorldSettings
	revision uint64
}

// NewTunables returns tunables seeded with s, clamped.
func NewTunables(s WorldSettings) *Tunables {
	s, _ = s.Clamp()
	return &Tunables{settings: s}
}

// Snapshot returns the current settings and their revision.
func (t *Tunables) Snapshot() (WorldSettings, uint64) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.settings, t.revision
}

// Settings returns the current settings.
func (t *Tunables) Settings() WorldSettings {
	s, _ := t.Snapshot()
	return s
}

// Update applies fn to a copy of the settings, clamps the result and stores
// it. The revision only moves when something actually changed.
func (t *Tunables) Update(fn func(*WorldSettings)) WorldSettings {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := t.settings
	fn(&next)
	next, _ = next.Clamp()
	if next != t.settings {
		t.settings = next
		t.revision++
	}
	return t.settings
}

// RequestReload bumps the revision without changing any setting.
func (t *Tunables) RequestReload() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.revision++
	return t.revision
}

// AdjustNoiseScale moves the noise scale by delta and snaps it to a multiple
// of NoiseScaleStep, so stepping down to the floor and back up lands on the
// same values.
func (t *Tunables) AdjustNoiseScale(delta float64) WorldSettings {
	return t.Update(func(s *WorldSettings) {
		s.NoiseScale = math.Round((s.NoiseScale+delta)/NoiseScaleStep) * NoiseScaleStep
	})
}

func (t *Tunables) AdjustMaxHeight(delta int) WorldSettings {
	return t.Update(func(s *WorldSettings) { s.MaxHeight += delta })
}

func (t *Tunables) AdjustRenderDistance(delta int) WorldSettings {
	return t.Update(func(s *WorldSettings) { s.RenderDistance += delta })
}
