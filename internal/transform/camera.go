package transform

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective look-at camera. FOV is the vertical angle in radians.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	FOV      float32
	Aspect   float32
	Near     float32
	Far      float32
}

// View returns the world-to-eye matrix
func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// Projection returns the eye-to-clip matrix
func (c Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

// State resolves the camera into the matrices a pass consumes
func (c Camera) State() CameraState {
	return CameraState{
		View:       c.View(),
		Projection: c.Projection(),
		Position:   c.Position,
	}
}

// CameraState is a camera resolved for one frame
type CameraState struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Position   mgl32.Vec3
}

// ViewProjection returns Projection * View
func (s CameraState) ViewProjection() mgl32.Mat4 {
	return s.Projection.Mul4(s.View)
}

// WithoutTranslation drops the translation of a view matrix, keeping only its
// rotation. Geometry drawn with it stays centered on the eye, so it appears
// infinitely far away.
func WithoutTranslation(view mgl32.Mat4) mgl32.Mat4 {
	return view.Mat3().Mat4()
}
