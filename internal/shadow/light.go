// Package shadow holds the light-space camera of the shadow pass and a CPU
// reference of its depth rendering and comparison sampling.
package shadow

import (
	"mirror-scene/internal/config"
	"mirror-scene/internal/transform"

	"github.com/go-gl/mathgl/mgl32"
)

// DepthBias is subtracted from the reference depth before comparison
const DepthBias = 0.0005

// LightCamera looks from the shadow light toward a fixed target with a
// narrow perspective frustum. The shadow map is square, so aspect is 1.
type LightCamera struct {
	camera transform.Camera
}

func NewLightCamera(cfg config.ShadowConfig) LightCamera {
	return LightCamera{
		camera: transform.Camera{
			Position: cfg.Position,
			Target:   cfg.Target,
			Up:       cfg.Up,
			FOV:      mgl32.DegToRad(cfg.FOVDegrees),
			Aspect:   1,
			Near:     cfg.Near,
			Far:      cfg.Far,
		},
	}
}

// State returns the light's view and projection
func (l LightCamera) State() transform.CameraState {
	return l.camera.State()
}

// ViewProjection returns the light's world-to-clip matrix
func (l LightCamera) ViewProjection() mgl32.Mat4 {
	return l.camera.State().ViewProjection()
}

// TextureMatrix maps world space to shadow-map texture space: xy in [0,1]
// for texel lookup and z the window depth to compare against.
func TextureMatrix(viewProj mgl32.Mat4) mgl32.Mat4 {
	bias := mgl32.Translate3D(0.5, 0.5, 0.5).Mul4(mgl32.Scale3D(0.5, 0.5, 0.5))
	return bias.Mul4(viewProj)
}
