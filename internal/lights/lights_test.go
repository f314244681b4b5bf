package lights

import (
	"math"
	"testing"

	"mirror-scene/internal/config"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoLights() config.LightsConfig {
	return config.LightsConfig{
		Pivot:       mgl32.Vec3{0, 1, 0},
		Axis:        mgl32.Vec3{0, 2, 0},
		AngularRate: 0.5,
		Lights: []config.LightConfig{
			{Position: mgl32.Vec3{2, 3, 0}, Color: mgl32.Vec3{1, 0.5, 0.25}},
			{Position: mgl32.Vec3{0, 1, -1}, Color: mgl32.Vec3{0, 0, 1}},
		},
	}
}

func TestBuffersHaveFixedLength(t *testing.T) {
	s := New(twoLights())
	require.Equal(t, 2, s.Len())
	assert.Len(t, s.Positions(), 6)
	assert.Len(t, s.Colors(), 6)

	s.Update(10)
	assert.Len(t, s.Positions(), 6)
	assert.Equal(t, 2, s.Len())
}

func TestUpdateIsDeterministic(t *testing.T) {
	a := New(twoLights())
	b := New(twoLights())

	a.Update(7.5)
	posA, colA := a.Snapshot()

	// Advance b elsewhere first; the result must not depend on history
	b.Update(1)
	b.Update(7.5)
	posB, colB := b.Snapshot()

	assert.Equal(t, posA, posB)
	assert.Equal(t, colA, colB)

	a.Update(7.5)
	assert.Equal(t, posA, a.Positions())
}

func TestUpdateRotatesAboutPivot(t *testing.T) {
	s := New(twoLights())
	s.Update(math.Pi) // rate 0.5 -> quarter turn

	l := s.At(0)
	// (2,3,0) relative to pivot is (2,2,0); a quarter turn about +Y sends +X to -Z
	assert.True(t, l.Position.ApproxEqualThreshold(mgl32.Vec3{0, 3, -2}, 1e-5), "got %v", l.Position)
	assert.Equal(t, mgl32.Vec3{1, 0.5, 0.25}, l.Color)

	// Distance to the pivot never changes
	for _, tm := range []float32{0, 0.4, 3, 100} {
		s.Update(tm)
		for i := 0; i < s.Len(); i++ {
			d := s.At(i).Position.Sub(mgl32.Vec3{0, 1, 0}).Len()
			d0 := twoLights().Lights[i].Position.Sub(mgl32.Vec3{0, 1, 0}).Len()
			assert.InDelta(t, d0, d, 1e-4)
		}
	}
}

func TestColorsAreImmutable(t *testing.T) {
	s := New(twoLights())
	before := append([]float32(nil), s.Colors()...)
	s.Update(42)
	assert.Equal(t, before, s.Colors())
}

func TestLightOnAxisStaysPut(t *testing.T) {
	cfg := twoLights()
	cfg.Lights[0].Position = mgl32.Vec3{0, 9, 0}
	s := New(cfg)
	s.Update(5)
	assert.True(t, s.At(0).Position.ApproxEqual(mgl32.Vec3{0, 9, 0}))
	assert.Equal(t, float32(5), s.Time())
}
