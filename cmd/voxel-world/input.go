package main

import (
	"mini-voxel/internal/config"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Debug keys:
//
//	Esc      release / capture the cursor
//	R        reload chunks
//	N / M    noise scale down / up
//	[ / ]    max height down / up
//	- / =    render distance down / up
//	F3       log streaming stats
func (a *app) setupInput() {
	a.window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if a.captured {
			a.camera.HandleCursor(x, y)
		}
	})

	a.window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		a.resize(width, height)
	})

	a.window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press && action != glfw.Repeat {
			return
		}
		switch key {
		case glfw.KeyEscape:
			if action == glfw.Press {
				a.setCaptured(!a.captured)
			}
		case glfw.KeyR:
			if action == glfw.Press {
				a.tunables.RequestReload()
			}
		case glfw.KeyN:
			a.tunables.AdjustNoiseScale(-config.NoiseScaleStep)
		case glfw.KeyM:
			a.tunables.AdjustNoiseScale(config.NoiseScaleStep)
		case glfw.KeyLeftBracket:
			a.tunables.AdjustMaxHeight(-1)
		case glfw.KeyRightBracket:
			a.tunables.AdjustMaxHeight(1)
		case glfw.KeyMinus:
			a.tunables.AdjustRenderDistance(-1)
		case glfw.KeyEqual:
			a.tunables.AdjustRenderDistance(1)
		case glfw.KeyF3:
			if action == glfw.Press {
				a.logStats()
			}
		}
	})
}

func (a *app) setCaptured(captured bool) {
	a.captured = captured
	if captured {
		a.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		a.camera.ResetMouse()
		return
	}
	a.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
}
