package game

import (
	"mirror-scene/internal/config"
	"mirror-scene/internal/input"
	"mirror-scene/internal/logger"

	"go.uber.org/zap"
)

const (
	distortionStep = 0.01
	defaultFPSCap  = 60
)

// controls applies the viewer's key actions to the runtime settings
type controls struct {
	im       *input.InputManager
	driver   *Driver
	savedCap int
}

// apply handles the actions pressed this frame and reports whether the
// viewer should quit
func (c *controls) apply() bool {
	im := c.im
	if im.JustPressed(input.ActionQuit) {
		return true
	}

	if im.JustPressed(input.ActionToggleShadows) {
		on := !config.GetShadowsEnabled()
		config.SetShadowsEnabled(on)
		logger.Log.Info("shadows", zap.Bool("enabled", on))
	}

	if im.JustPressed(input.ActionToggleFPSCap) {
		if limit := config.GetFPSLimit(); limit > 0 {
			c.savedCap = limit
			config.SetFPSLimit(0)
		} else {
			if c.savedCap == 0 {
				c.savedCap = defaultFPSCap
			}
			config.SetFPSLimit(c.savedCap)
		}
		logger.Log.Info("fps cap", zap.Int("limit", config.GetFPSLimit()))
	}

	if im.JustPressed(input.ActionDistortionUp) {
		config.SetDistortionStrength(config.GetDistortionStrength() + distortionStep)
	}
	if im.JustPressed(input.ActionDistortionDown) {
		config.SetDistortionStrength(config.GetDistortionStrength() - distortionStep)
	}

	if im.JustPressed(input.ActionToggleOverlay) && c.driver != nil {
		c.driver.ToggleOverlay()
	}
	return false
}
