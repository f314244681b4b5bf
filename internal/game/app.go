package game

import (
	"mirror-scene/internal/graphics/renderer"
	"mirror-scene/internal/input"
	"mirror-scene/internal/logger"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// App owns the window loop: one driver tick per refresh, skipped while
// the window is iconified.
type App struct {
	window     *glfw.Window
	input      *input.InputManager
	renderer   *renderer.Renderer
	driver     *Driver
	controls   *controls
	fpsLimiter *FPSLimiter

	iconified bool
}

// NewApp wires the driver to the window and installs its callbacks
func NewApp(window *glfw.Window, r *renderer.Renderer, driver *Driver) *App {
	im := input.NewInputManager()
	a := &App{
		window:     window,
		input:      im,
		renderer:   r,
		driver:     driver,
		controls:   &controls{im: im, driver: driver},
		fpsLimiter: NewFPSLimiter(),
	}

	fbW, fbH := window.GetFramebufferSize()
	a.resize(fbW, fbH)
	a.setupCallbacks()
	return a
}

func (a *App) setupCallbacks() {
	a.input.SetKeyCallback(a.window)

	// Targets keep their startup size; only the viewport and aspect follow.
	a.window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		a.resize(width, height)
	})

	a.window.SetIconifyCallback(func(w *glfw.Window, iconified bool) {
		a.iconified = iconified
		logger.Log.Debug("iconify", zap.Bool("iconified", iconified))
	})

	a.window.SetRefreshCallback(func(w *glfw.Window) {
		if !a.iconified {
			a.driver.Tick()
			w.SwapBuffers()
		}
	})
}

func (a *App) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.renderer.SetViewport(width, height)
	a.driver.SetViewport(width, height)
}

// Run blocks until the window is closed
func (a *App) Run() {
	for !a.window.ShouldClose() {
		a.tick()
	}
}

func (a *App) tick() {
	glfw.PollEvents()

	if a.controls.apply() {
		a.window.SetShouldClose(true)
	}
	a.input.PostUpdate()

	// The clock keeps running while iconified, so motion jumps on restore.
	if !a.iconified {
		a.driver.Tick()
		a.window.SwapBuffers()
	}

	a.fpsLimiter.Wait(a.iconified)
}
