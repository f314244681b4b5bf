package config

import "sync"

// RenderSettings holds settings that may change while the scene is running
type RenderSettings struct {
	mu                 sync.RWMutex
	fpsLimit           int // 0 means uncapped
	distortionStrength float32
	shadowsEnabled     bool
}

var globalRenderSettings = &RenderSettings{
	fpsLimit:           0,
	distortionStrength: 0.05,
	shadowsEnabled:     true,
}

// GetFPSLimit returns the frame rate cap, 0 when uncapped
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame rate cap. Values <= 0 disable the cap.
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}

	globalRenderSettings.fpsLimit = limit
}

// GetDistortionStrength returns the horizontal ripple offset scale of the mirror
func GetDistortionStrength() float32 {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.distortionStrength
}

// SetDistortionStrength sets the ripple offset scale, clamped to [0, 0.5]
func SetDistortionStrength(strength float32) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if strength < 0 {
		strength = 0
	}
	if strength > 0.5 {
		strength = 0.5
	}

	globalRenderSettings.distortionStrength = strength
}

// GetShadowsEnabled reports whether the shadow pass runs
func GetShadowsEnabled() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.shadowsEnabled
}

// SetShadowsEnabled toggles the shadow pass
func SetShadowsEnabled(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.shadowsEnabled = enabled
}
