package game

import (
	"testing"

	"mirror-scene/internal/config"
	"mirror-scene/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func press(im *input.InputManager, key glfw.Key) {
	im.HandleKeyEvent(key, glfw.Press)
}

func release(im *input.InputManager, key glfw.Key) {
	im.HandleKeyEvent(key, glfw.Release)
	im.PostUpdate()
}

func TestControlsToggleSettings(t *testing.T) {
	defer config.SetShadowsEnabled(config.GetShadowsEnabled())
	defer config.SetFPSLimit(config.GetFPSLimit())
	defer config.SetDistortionStrength(config.GetDistortionStrength())

	im := input.NewInputManager()
	c := &controls{im: im}

	config.SetShadowsEnabled(true)
	press(im, glfw.KeyH)
	assert.False(t, c.apply())
	assert.False(t, config.GetShadowsEnabled())
	release(im, glfw.KeyH)

	config.SetFPSLimit(144)
	press(im, glfw.KeyL)
	c.apply()
	assert.Equal(t, 0, config.GetFPSLimit())
	release(im, glfw.KeyL)
	press(im, glfw.KeyL)
	c.apply()
	assert.Equal(t, 144, config.GetFPSLimit())
	release(im, glfw.KeyL)

	config.SetDistortionStrength(0.05)
	press(im, glfw.KeyEqual)
	c.apply()
	assert.InDelta(t, 0.06, config.GetDistortionStrength(), 1e-6)
	release(im, glfw.KeyEqual)
	press(im, glfw.KeyMinus)
	c.apply()
	release(im, glfw.KeyMinus)
	press(im, glfw.KeyMinus)
	c.apply()
	assert.InDelta(t, 0.04, config.GetDistortionStrength(), 1e-6)
}

func TestControlsUncappedStartUsesDefaultCap(t *testing.T) {
	defer config.SetFPSLimit(config.GetFPSLimit())
	config.SetFPSLimit(0)

	im := input.NewInputManager()
	c := &controls{im: im}
	press(im, glfw.KeyL)
	c.apply()
	assert.Equal(t, defaultFPSCap, config.GetFPSLimit())
}

func TestControlsQuit(t *testing.T) {
	im := input.NewInputManager()
	c := &controls{im: im}
	assert.False(t, c.apply())
	press(im, glfw.KeyEscape)
	assert.True(t, c.apply())
}
