package game

import (
	"mirror-scene/internal/graphics"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// SetupWindow opens a window with a current GL 4.1 core context
func SetupWindow(width, height int, title string) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	if err := graphics.Init(); err != nil {
		window.Destroy()
		return nil, err
	}

	// Disable V-Sync; frame pacing is done by FPSLimiter
	glfw.SwapInterval(0)

	graphics.ConfigureDefaultState()
	return window, nil
}
