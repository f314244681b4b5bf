package config

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSceneIsValid(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
}

func TestValidateReportsConfigurationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Scene)
		want   error
	}{
		{"near equals far", func(s *Scene) { s.Camera.Near, s.Camera.Far = 5, 5 }, ErrInvalidClipRange},
		{"near beyond far", func(s *Scene) { s.Shadow.Near, s.Shadow.Far = 10, 1 }, ErrInvalidClipRange},
		{"zero near", func(s *Scene) { s.Camera.Near = 0 }, ErrInvalidClipRange},
		{"fov too wide", func(s *Scene) { s.Camera.FOVDegrees = 180 }, ErrInvalidFOV},
		{"up along view", func(s *Scene) { s.Camera.Offset = mgl32.Vec3{0, 3, 0} }, ErrDegenerateCamera},
		{"zero mirror normal", func(s *Scene) { s.Mirror.LocalNormal = mgl32.Vec3{} }, ErrZeroNormal},
		{"zero light axis", func(s *Scene) { s.Lights.Axis = mgl32.Vec3{} }, ErrZeroNormal},
		{"no lights", func(s *Scene) { s.Lights.Lights = nil }, ErrLightCount},
		{"too many lights", func(s *Scene) { s.Lights.Lights = make([]LightConfig, MaxLights+1) }, ErrLightCount},
		{"shadow map not power of two", func(s *Scene) { s.Shadow.MapSize = 500 }, ErrShadowMapSize},
		{"negative resolution factor", func(s *Scene) { s.Reflection.ResolutionFactor = -1 }, ErrResolutionFactor},
		{"unknown wrap", func(s *Scene) { s.Objects[0].Material.WrapS = "tile" }, ErrMaterial},
		{"five faces", func(s *Scene) { s.Backdrop.Faces = make([]string, 5) }, ErrBackdropFaces},
		{"half specular", func(s *Scene) { s.Composite.SpecularSign = 0.5 }, ErrSpecularSign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default().Clone()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), tt.want)
		})
	}
}

func TestValidateJoinsAllErrors(t *testing.T) {
	s := Default()
	s.Camera.Near = -1
	s.Lights.Lights = nil

	err := s.Validate()
	assert.ErrorIs(t, err, ErrInvalidClipRange)
	assert.ErrorIs(t, err, ErrLightCount)
}

func TestDisabledMirrorSkipsMirrorChecks(t *testing.T) {
	s := Default()
	s.Mirror.Enabled = false
	s.Mirror.LocalNormal = mgl32.Vec3{}
	s.Reflection.ResolutionFactor = 0
	assert.NoError(t, s.Validate())
}

func TestNormalizeFillsDefaults(t *testing.T) {
	s := Scene{Objects: []ObjectConfig{{Name: "x", Mesh: "cube"}}}
	s.Normalize()

	o := s.Objects[0]
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, o.Transform.Scale)
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, o.Material.BaseColor)
	assert.Equal(t, WrapRepeat, o.Material.WrapS)
	assert.Equal(t, FilterLinear, o.Material.Filter)
	assert.Equal(t, float32(200), o.Material.Shininess)
	assert.Equal(t, float32(1), s.Reflection.ResolutionFactor)
	assert.Equal(t, float32(1), s.Composite.SpecularSign)
	assert.Equal(t, 512, s.Shadow.MapSize)
}

func TestTargetSize(t *testing.T) {
	tests := []struct {
		factor       float32
		w, h         int
		wantW, wantH int
	}{
		{1, 900, 600, 900, 600},
		{0.5, 900, 600, 450, 300},
		{0.5, 901, 601, 451, 301},
		{2, 900, 600, 1800, 1200},
		{0.25, 3, 2, 1, 1},
	}
	for _, tt := range tests {
		w, h := ReflectionConfig{ResolutionFactor: tt.factor}.TargetSize(tt.w, tt.h)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("TargetSize(%d,%d) at %v = %dx%d, want %dx%d", tt.w, tt.h, tt.factor, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestCloneDoesNotShareSlices(t *testing.T) {
	a := Default()
	b := a.Clone()
	b.Objects[0].Name = "changed"
	b.Lights.Lights[0].Color = mgl32.Vec3{}

	assert.Equal(t, "ball", a.Objects[0].Name)
	assert.NotEqual(t, mgl32.Vec3{}, a.Lights.Lights[0].Color)
}

func TestRenderSettingsClamp(t *testing.T) {
	defer SetDistortionStrength(GetDistortionStrength())
	defer SetFPSLimit(GetFPSLimit())

	SetDistortionStrength(3)
	assert.Equal(t, float32(0.5), GetDistortionStrength())
	SetDistortionStrength(-1)
	assert.Equal(t, float32(0), GetDistortionStrength())

	SetFPSLimit(-20)
	assert.Equal(t, 0, GetFPSLimit())
	SetFPSLimit(144)
	assert.Equal(t, 144, GetFPSLimit())
}
