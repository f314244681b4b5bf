// Package lights animates a fixed set of point lights orbiting a pivot and
// exposes them as flat buffers for shader upload.
package lights

import (
	"mirror-scene/internal/config"

	"github.com/go-gl/mathgl/mgl32"
)

// Light is a point light. Index order within a Set is shading order.
type Light struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
}

// Set is a fixed-capacity, ordered collection of point lights whose
// positions circle a pivot. The light count never changes after New.
type Set struct {
	initial   []mgl32.Vec3
	pivot     mgl32.Vec3
	axis      mgl32.Vec3
	rate      float32
	positions []float32 // 3*N, rewritten by Update
	colors    []float32 // 3*N, immutable
	time      float32
}

// New builds a light set from configuration. The axis is normalized here;
// config.Scene.Validate rejects a zero axis.
func New(cfg config.LightsConfig) *Set {
	n := len(cfg.Lights)
	s := &Set{
		initial:   make([]mgl32.Vec3, n),
		pivot:     cfg.Pivot,
		axis:      cfg.Axis.Normalize(),
		rate:      cfg.AngularRate,
		positions: make([]float32, 3*n),
		colors:    make([]float32, 3*n),
	}
	for i, l := range cfg.Lights {
		s.initial[i] = l.Position
		copy(s.positions[3*i:], l.Position[:])
		copy(s.colors[3*i:], l.Color[:])
	}
	return s
}

// Len returns the light count
func (s *Set) Len() int {
	return len(s.initial)
}

// Update places every light at its initial position rotated about the pivot
// by rate*t. Positions are a function of t alone.
func (s *Set) Update(t float32) {
	rot := mgl32.HomogRotate3D(s.rate*t, s.axis).Mat3()
	for i, p := range s.initial {
		world := s.pivot.Add(rot.Mul3x1(p.Sub(s.pivot)))
		copy(s.positions[3*i:3*i+3], world[:])
	}
	s.time = t
}

// Time returns the simulation time of the last Update
func (s *Set) Time() float32 {
	return s.time
}

// Positions returns the flattened position buffer of length 3*N.
// The slice is owned by the set and rewritten by the next Update.
func (s *Set) Positions() []float32 {
	return s.positions
}

// Colors returns the flattened color buffer of length 3*N
func (s *Set) Colors() []float32 {
	return s.colors
}

// At returns light i as currently positioned
func (s *Set) At(i int) Light {
	return Light{
		Position: mgl32.Vec3{s.positions[3*i], s.positions[3*i+1], s.positions[3*i+2]},
		Color:    mgl32.Vec3{s.colors[3*i], s.colors[3*i+1], s.colors[3*i+2]},
	}
}

// Snapshot copies both buffers so a frame can keep them past the next Update
func (s *Set) Snapshot() (positions, colors []float32) {
	positions = append([]float32(nil), s.positions...)
	colors = append([]float32(nil), s.colors...)
	return positions, colors
}
