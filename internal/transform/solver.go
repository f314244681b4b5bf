// Package transform derives the per-frame camera and object matrices from
// simulation time. Results are values; nothing is mutated across frames.
package transform

import (
	"mirror-scene/internal/config"

	"github.com/go-gl/mathgl/mgl32"
)

// Frame holds every matrix derived from the clock for one tick.
// It is a value: nothing in it is reused by the next frame.
type Frame struct {
	Time   float32
	Camera CameraState
	Models []mgl32.Mat4 // indexed like Scene.Objects
	Mirror mgl32.Mat4
}

// Solver derives per-frame cameras and model matrices from simulation time.
// It holds only static configuration and is safe to call repeatedly with any t.
type Solver struct {
	camera  config.CameraConfig
	objects []config.TransformConfig
	mirror  config.TransformConfig
}

// NewSolver captures the static parameters of a scene
func NewSolver(scene config.Scene) *Solver {
	objects := make([]config.TransformConfig, len(scene.Objects))
	for i, o := range scene.Objects {
		objects[i] = o.Transform
	}
	return &Solver{
		camera:  scene.Camera,
		objects: objects,
		mirror:  scene.Mirror.Transform,
	}
}

// CameraAt returns the primary camera at time t. The camera orbits the pivot
// about the vertical axis at the configured angular rate.
func (s *Solver) CameraAt(t, aspect float32) Camera {
	c := s.camera
	offset := mgl32.Rotate3DY(c.AngularRate * t).Mul3x1(c.Offset)
	return Camera{
		Position: c.Pivot.Add(offset),
		Target:   c.Target,
		Up:       c.Up,
		FOV:      mgl32.DegToRad(c.FOVDegrees),
		Aspect:   aspect,
		Near:     c.Near,
		Far:      c.Far,
	}
}

// Solve computes the frame's camera and all model matrices
func (s *Solver) Solve(t, aspect float32) Frame {
	models := make([]mgl32.Mat4, len(s.objects))
	for i, cfg := range s.objects {
		models[i] = At(cfg, t).Matrix()
	}
	return Frame{
		Time:   t,
		Camera: s.CameraAt(t, aspect).State(),
		Models: models,
		Mirror: At(s.mirror, t).Matrix(),
	}
}
