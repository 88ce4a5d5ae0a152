package main

import (
	"buildcraft/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func setupInputHandlers(window *glfw.Window, loop *GameLoop, game *Game, im *input.InputManager) {
	im.SetCallbacks(window)

	// Mouse position callback
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if loop.mouseCaptured {
			game.Player.HandleMouseMovement(xpos, ypos)
		}
	})

	// Framebuffer size callback
	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		game.Renderer.UpdateViewport(fbWidth, fbHeight)
	})

	// Refresh callback (called during window resize to prevent visual glitches)
	window.SetRefreshCallback(func(w *glfw.Window) {
		loop.renderFrame()
		w.SwapBuffers()
	})
}
